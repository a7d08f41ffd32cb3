package generator

import (
	"strings"
	"unicode"

	"edulearn/internal/analysis"
	"edulearn/internal/models"
)

// FallbackCentral to etykieta używana, gdy dokument nie ma żadnych
// słów kluczowych
const FallbackCentral = "Główny temat"

// Parametry budowy mapy myśli
const (
	maxBranches         = 5
	maxRelatedSentences = 5
	maxSubtopics        = 4
	keyPhraseWords      = 4
	wholePhraseLimit    = 6
)

// szablony podtematów na wypadek braku pasujących zdań - pusta gałąź
// byłaby naruszeniem niezmiennika
var backfillTemplates = []string{
	"Najważniejsze aspekty: %s",
	"Definicja pojęcia: %s",
}

// BuildMindMap buduje mapę myśli: temat centralny to najczęstsze słowo
// kluczowe, gałęzie powstają z kolejnych pięciu słów w kolejności rang.
func BuildMindMap(text string, keywords []string) models.MindMap {
	if len(keywords) == 0 {
		return models.MindMap{Central: FallbackCentral}
	}

	sentences := analysis.SentenceTexts(analysis.Segment(text, analysis.MinSentenceLen))

	mindMap := models.MindMap{Central: CapitalizeFirst(keywords[0])}
	for _, keyword := range branchKeywords(keywords) {
		mindMap.Branches = append(mindMap.Branches, buildBranch(keyword, sentences))
	}
	return mindMap
}

func branchKeywords(keywords []string) []string {
	if len(keywords) <= 1 {
		return nil
	}
	end := 1 + maxBranches
	if end > len(keywords) {
		end = len(keywords)
	}
	return keywords[1:end]
}

func buildBranch(keyword string, sentences []string) models.Branch {
	branch := models.Branch{Topic: CapitalizeFirst(keyword)}

	for _, sentence := range relatedSentences(keyword, sentences) {
		if len(branch.Subtopics) >= maxSubtopics {
			break
		}
		branch.Subtopics = append(branch.Subtopics, ExtractKeyPhrase(sentence))
	}

	if len(branch.Subtopics) == 0 {
		for _, tmpl := range backfillTemplates {
			branch.Subtopics = append(branch.Subtopics, strings.Replace(tmpl, "%s", keyword, 1))
		}
	}
	return branch
}

// relatedSentences zwraca maksymalnie 5 zdań zawierających słowo kluczowe
func relatedSentences(keyword string, sentences []string) []string {
	kw := strings.ToLower(keyword)
	var related []string
	for _, sentence := range sentences {
		if strings.Contains(strings.ToLower(sentence), kw) {
			related = append(related, sentence)
			if len(related) >= maxRelatedSentences {
				break
			}
		}
	}
	return related
}

// ExtractKeyPhrase skraca zdanie do podtematu: zdania do 6 słów zostają
// w całości, dłuższe są ucinane do pierwszych 4 słów z wielokropkiem
func ExtractKeyPhrase(sentence string) string {
	words := strings.Fields(strings.TrimSpace(sentence))
	if len(words) <= wholePhraseLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:keyPhraseWords], " ") + "..."
}

// CapitalizeFirst zamienia pierwszą literę na wielką (z obsługą polskich
// znaków diakrytycznych)
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
