package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Domyślne parametry ekstrakcji słów kluczowych
const (
	DefaultMaxKeywords  = 12
	DefaultMinFrequency = 2

	minTokenLen = 4  // krótsze tokeny to zwykle słowa funkcyjne
	maxTokenLen = 19 // dłuższe to najczęściej śmieci z OCR
)

// polskie stop words - słowa funkcyjne pomijane przy ekstrakcji
var stopWords = map[string]struct{}{
	"i": {}, "a": {}, "w": {}, "na": {}, "do": {}, "z": {}, "ze": {},
	"się": {}, "że": {}, "przez": {}, "dla": {}, "od": {}, "o": {},
	"po": {}, "przy": {}, "bardzo": {}, "tylko": {}, "oraz": {},
	"także": {}, "również": {}, "jest": {}, "są": {}, "będzie": {},
	"może": {}, "można": {}, "tym": {}, "tej": {}, "ten": {}, "ta": {},
	"to": {}, "te": {}, "ich": {}, "jego": {}, "jej": {}, "jako": {},
	"ale": {}, "lub": {}, "albo": {}, "gdy": {}, "jak": {}, "więc": {},
	"czyli": {}, "został": {}, "która": {}, "który": {}, "które": {},
}

var (
	nonWordPattern = regexp.MustCompile(`[^a-ząćęłńóśźż0-9_\s]`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// IsStopWord sprawdza, czy słowo należy do listy stop words
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// KeywordExtractor wyodrębnia słowa kluczowe z tekstu na podstawie
// częstości występowania
type KeywordExtractor struct {
	MaxKeywords  int
	MinFrequency int
}

// NewKeywordExtractor tworzy ekstraktor z domyślnymi parametrami
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{
		MaxKeywords:  DefaultMaxKeywords,
		MinFrequency: DefaultMinFrequency,
	}
}

// Extract zwraca słowa kluczowe posortowane malejąco po częstości.
// Remisy rozstrzyga kolejność pierwszego wystąpienia w tekście, dzięki
// czemu wynik jest deterministyczny.
func (e *KeywordExtractor) Extract(text string) []string {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}

	counts := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, ok := firstSeen[tok]; !ok {
			firstSeen[tok] = i
		}
		counts[tok]++
	}

	keywords := e.rank(counts, firstSeen, e.MinFrequency)
	if len(keywords) == 0 && e.MinFrequency > 1 {
		// Krótkie dokumenty: tłumienie szumu zostawiłoby pustą listę,
		// więc wracamy do progu częstości 1
		keywords = e.rank(counts, firstSeen, 1)
	}

	max := e.MaxKeywords
	if max <= 0 {
		max = DefaultMaxKeywords
	}
	if len(keywords) > max {
		keywords = keywords[:max]
	}
	return keywords
}

func (e *KeywordExtractor) rank(counts map[string]int, firstSeen map[string]int, minFreq int) []string {
	var words []string
	for w, c := range counts {
		if c >= minFreq {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})
	return words
}

// Tokenize rozbija tekst na znormalizowane tokeny: małe litery, bez
// znaków spoza polskiego alfabetu, bez stop words, bez tokenów czysto
// liczbowych i bez tokenów o długości poza przedziałem 4-19 znaków.
func Tokenize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len([]rune(word)) < minTokenLen || len([]rune(word)) > maxTokenLen {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if numericPattern.MatchString(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// CountMatches liczy, ile słów kluczowych występuje w zdaniu
// (dopasowanie podciągu bez rozróżniania wielkości liter)
func CountMatches(sentence string, keywords []string) int {
	lower := strings.ToLower(sentence)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}
