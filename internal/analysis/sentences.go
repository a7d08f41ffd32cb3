package analysis

import (
	"regexp"
	"strings"
)

// Progi długości zdań dla poszczególnych odbiorców
const (
	MinSentenceLen = 20 // mapa myśli, quiz
	MinSummaryLen  = 30 // streszczenie
	MinParagraph   = 50
)

var (
	sentenceSplit  = regexp.MustCompile(`[.!?]+`)
	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Sentence to jedno zdanie z zachowanym indeksem w dokumencie.
// Indeks pozwala odtworzyć oryginalną kolejność po selekcji.
type Sentence struct {
	Index int
	Text  string
}

// Segment dzieli tekst na zdania po znakach `.`, `!`, `?` i odrzuca
// fragmenty krótsze niż minLen znaków (po przycięciu białych znaków).
// Świadomie nie rozpoznajemy skrótów ani liczb dziesiętnych.
func Segment(text string, minLen int) []Sentence {
	if minLen <= 0 {
		minLen = MinSentenceLen
	}

	var sentences []Sentence
	idx := 0
	for _, raw := range sentenceSplit.Split(text, -1) {
		trimmed := strings.TrimSpace(raw)
		if len(trimmed) <= minLen {
			continue
		}
		sentences = append(sentences, Sentence{Index: idx, Text: trimmed})
		idx++
	}
	return sentences
}

// SentenceTexts zwraca same teksty zdań (pomocnicze dla quizu i mapy myśli)
func SentenceTexts(sentences []Sentence) []string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	return texts
}

// Paragraphs dzieli tekst na akapity po pustych liniach i odrzuca
// akapity krótsze niż 50 znaków
func Paragraphs(text string) []string {
	var paragraphs []string
	for _, raw := range paragraphSplit.Split(text, -1) {
		trimmed := strings.TrimSpace(raw)
		if len(trimmed) < MinParagraph {
			continue
		}
		paragraphs = append(paragraphs, trimmed)
	}
	return paragraphs
}

// WordCount liczy słowa w zdaniu
func WordCount(sentence string) int {
	return len(strings.Fields(sentence))
}
