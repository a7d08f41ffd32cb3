package generator

import (
	"sort"
	"strings"

	"edulearn/internal/analysis"
	"edulearn/internal/models"
)

// Liczba zdań na poziom streszczenia
const (
	ShortSentences  = 3
	MediumSentences = 6
	LongSentences   = 10
)

// PositionStrategy wybiera sposób punktowania pozycji zdania.
// Kolejne wersje oryginału używały obu wariantów; domyślny jest wariant
// brzegowy (premiuje wstęp i zakończenie dokumentu).
type PositionStrategy int

const (
	// PositionEdges: stały bonus dla trzech pierwszych i trzech ostatnich zdań
	PositionEdges PositionStrategy = iota
	// PositionLead: ciągły spadek wagi wraz z pozycją w dokumencie
	PositionLead
)

// Wagi punktacji zdań
const (
	positionBonus   = 0.3
	lengthBonus     = 0.3
	keywordWeight   = 0.1
	keywordCap      = 0.4
	fragmentPenalty = 0.5

	idealWordsMin = 10
	idealWordsMax = 30
)

// Summarizer punktuje zdania i składa streszczenia w trzech długościach
type Summarizer struct {
	Position PositionStrategy
}

// Summarize buduje streszczenia short/medium/long z przefiltrowanych zdań
func (s *Summarizer) Summarize(sentences []analysis.Sentence, keywords []string) models.Summary {
	return models.Summary{
		Short:  s.selectTier(sentences, keywords, ShortSentences),
		Medium: s.selectTier(sentences, keywords, MediumSentences),
		Long:   s.selectTier(sentences, keywords, LongSentences),
	}
}

type scoredSentence struct {
	analysis.Sentence
	score float64
}

// selectTier wybiera maxSentences najwyżej punktowanych zdań, po czym
// przywraca im kolejność z dokumentu - streszczenie musi czytać się
// w oryginalnym porządku niezależnie od kolejności selekcji.
func (s *Summarizer) selectTier(sentences []analysis.Sentence, keywords []string, maxSentences int) string {
	if len(sentences) == 0 {
		return ""
	}

	scored := make([]scoredSentence, len(sentences))
	for i, sent := range sentences {
		scored[i] = scoredSentence{Sentence: sent, score: s.score(sent, len(sentences), keywords)}
	}

	// Stabilne sortowanie: remisy rozstrzyga pozycja w dokumencie
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if maxSentences > len(scored) {
		maxSentences = len(scored)
	}
	selected := scored[:maxSentences]

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Index < selected[j].Index
	})

	parts := make([]string, len(selected))
	for i, sel := range selected {
		parts[i] = sel.Text
	}
	return strings.Join(parts, ". ") + "."
}

func (s *Summarizer) score(sent analysis.Sentence, total int, keywords []string) float64 {
	score := 0.0

	switch s.Position {
	case PositionLead:
		score += float64(total-sent.Index) / float64(total) * positionBonus
	default:
		if sent.Index < 3 || sent.Index >= total-3 {
			score += positionBonus
		}
	}

	words := analysis.WordCount(sent.Text)
	if words >= idealWordsMin && words <= idealWordsMax {
		score += lengthBonus
	}

	keywordScore := float64(analysis.CountMatches(sent.Text, keywords)) * keywordWeight
	if keywordScore > keywordCap {
		keywordScore = keywordCap
	}
	score += keywordScore

	if len(sent.Text) < analysis.MinSummaryLen || !strings.Contains(sent.Text, " ") {
		score -= fragmentPenalty
	}

	return score
}
