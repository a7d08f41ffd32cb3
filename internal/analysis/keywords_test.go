package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRanksByFrequency(t *testing.T) {
	text := strings.Repeat("fotosynteza ", 8) +
		strings.Repeat("chlorofil ", 5) +
		strings.Repeat("liście ", 3) +
		"energia energia"

	extractor := NewKeywordExtractor()
	keywords := extractor.Extract(text)

	require.Len(t, keywords, 4)
	assert.Equal(t, []string{"fotosynteza", "chlorofil", "liście", "energia"}, keywords)
}

func TestExtractTieBreakByFirstAppearance(t *testing.T) {
	// Obie frazy mają częstość 2 - wygrywa wcześniejsze wystąpienie
	text := "alfa beta alfa beta"

	extractor := NewKeywordExtractor()
	keywords := extractor.Extract(text)

	assert.Equal(t, []string{"alfa", "beta"}, keywords)
}

func TestExtractFiltersNoise(t *testing.T) {
	text := "jest jest jest 2024 2024 dom dom fotosynteza fotosynteza"

	extractor := NewKeywordExtractor()
	keywords := extractor.Extract(text)

	// stop word, token liczbowy i token krótszy niż 4 znaki odpadają
	assert.Equal(t, []string{"fotosynteza"}, keywords)
}

func TestExtractRelaxesFrequencyThreshold(t *testing.T) {
	// Żadne słowo nie występuje dwa razy - próg spada do 1,
	// zamiast zostawić pustą listę
	text := "fotosynteza zachodzi wewnątrz chloroplastów"

	extractor := NewKeywordExtractor()
	keywords := extractor.Extract(text)

	require.NotEmpty(t, keywords)
	assert.Equal(t, "fotosynteza", keywords[0])
}

func TestExtractCapsKeywordCount(t *testing.T) {
	var sb strings.Builder
	words := []string{
		"fotosynteza", "chlorofil", "energia", "glukoza", "tlenek",
		"korzenie", "łodyga", "nasiona", "kwiaty", "owoce",
		"witaminy", "minerały", "białka", "tłuszcze", "enzymy",
	}
	for _, w := range words {
		sb.WriteString(w + " " + w + " ")
	}

	extractor := NewKeywordExtractor()
	keywords := extractor.Extract(sb.String())

	assert.Len(t, keywords, DefaultMaxKeywords)
}

func TestExtractEmptyInput(t *testing.T) {
	extractor := NewKeywordExtractor()
	assert.Empty(t, extractor.Extract(""))
	assert.Empty(t, extractor.Extract("   \n\t "))
}

func TestTokenizeNormalizes(t *testing.T) {
	tokens := Tokenize("Fotosynteza, CHLOROFIL! (energia)")
	assert.Equal(t, []string{"fotosynteza", "chlorofil", "energia"}, tokens)
}

func TestTokenizeLengthBounds(t *testing.T) {
	tooLong := strings.Repeat("a", 20)
	tokens := Tokenize("dom " + tooLong + " liście")
	assert.Equal(t, []string{"liście"}, tokens)
}

func TestIsStopWord(t *testing.T) {
	assert.True(t, IsStopWord("jest"))
	assert.True(t, IsStopWord("Również"))
	assert.False(t, IsStopWord("fotosynteza"))
}

func TestCountMatches(t *testing.T) {
	keywords := []string{"fotosynteza", "chlorofil"}

	assert.Equal(t, 1, CountMatches("Fotosynteza zachodzi w liściach", keywords))
	assert.Equal(t, 2, CountMatches("Fotosynteza wymaga chlorofilu", keywords))
	assert.Equal(t, 0, CountMatches("Woda płynie w naczyniach", keywords))
}
