package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentSplitsAndFilters(t *testing.T) {
	text := "Pierwsze zdanie testowe o fotosyntezie roślin. Krótkie. " +
		"Drugie zdanie testowe o chlorofilu w liściach!"

	sentences := Segment(text, MinSentenceLen)

	require.Len(t, sentences, 2)
	assert.Equal(t, 0, sentences[0].Index)
	assert.Equal(t, "Pierwsze zdanie testowe o fotosyntezie roślin", sentences[0].Text)
	assert.Equal(t, 1, sentences[1].Index)
	assert.Equal(t, "Drugie zdanie testowe o chlorofilu w liściach", sentences[1].Text)
}

func TestSegmentHandlesRepeatedTerminators(t *testing.T) {
	text := "Czy rośliny potrzebują światła do wzrostu?! Tak, potrzebują go bardzo mocno..."

	sentences := Segment(text, MinSentenceLen)

	require.Len(t, sentences, 2)
	assert.Equal(t, "Czy rośliny potrzebują światła do wzrostu", sentences[0].Text)
}

func TestSegmentDefaultMinLen(t *testing.T) {
	sentences := Segment("Za krótko. To zdanie jest wystarczająco długie dla progu.", 0)

	require.Len(t, sentences, 1)
	assert.Equal(t, 0, sentences[0].Index)
}

func TestSegmentEmptyInput(t *testing.T) {
	assert.Empty(t, Segment("", MinSentenceLen))
}

func TestSentenceTexts(t *testing.T) {
	sentences := []Sentence{
		{Index: 0, Text: "pierwsze"},
		{Index: 1, Text: "drugie"},
	}
	assert.Equal(t, []string{"pierwsze", "drugie"}, SentenceTexts(sentences))
}

func TestParagraphs(t *testing.T) {
	text := "Pierwszy akapit opisuje proces fotosyntezy w komórkach roślinnych bardzo dokładnie.\n\n" +
		"za krótki\n\n" +
		"Drugi akapit omawia rolę chlorofilu w pochłanianiu światła słonecznego przez rośliny."

	paragraphs := Paragraphs(text)

	require.Len(t, paragraphs, 2)
	assert.Contains(t, paragraphs[0], "Pierwszy akapit")
	assert.Contains(t, paragraphs[1], "Drugi akapit")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 4, WordCount("cztery słowa w zdaniu"))
	assert.Equal(t, 0, WordCount("   "))
}
