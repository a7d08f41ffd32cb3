package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mindMapText = `Fotosynteza to podstawowy proces życiowy roślin zielonych.
Chlorofil pochłania światło czerwone i niebieskie w chloroplastach.
Chlorofil nadaje liściom charakterystyczny zielony kolor.
Glukoza powstaje jako główny produkt całego procesu fotosyntezy.`

func TestBuildMindMapCentralAndBranches(t *testing.T) {
	keywords := []string{"fotosynteza", "chlorofil", "glukoza"}

	mindMap := BuildMindMap(mindMapText, keywords)

	assert.Equal(t, "Fotosynteza", mindMap.Central)
	require.Len(t, mindMap.Branches, 2)
	assert.Equal(t, "Chlorofil", mindMap.Branches[0].Topic)
	assert.Equal(t, "Glukoza", mindMap.Branches[1].Topic)
}

func TestBuildMindMapNoEmptyBranches(t *testing.T) {
	// "energia" nie występuje w tekście - gałąź dostaje podtematy
	// z szablonów zamiast zostać pusta
	keywords := []string{"fotosynteza", "energia"}

	mindMap := BuildMindMap(mindMapText, keywords)

	require.Len(t, mindMap.Branches, 1)
	require.NotEmpty(t, mindMap.Branches[0].Subtopics)
	assert.Equal(t, "Najważniejsze aspekty: energia", mindMap.Branches[0].Subtopics[0])
	assert.Equal(t, "Definicja pojęcia: energia", mindMap.Branches[0].Subtopics[1])
}

func TestBuildMindMapSubtopicsFromSentences(t *testing.T) {
	keywords := []string{"fotosynteza", "chlorofil"}

	mindMap := BuildMindMap(mindMapText, keywords)

	require.Len(t, mindMap.Branches, 1)
	subtopics := mindMap.Branches[0].Subtopics
	require.Len(t, subtopics, 2)
	assert.Equal(t, "Chlorofil pochłania światło czerwone...", subtopics[0])
}

func TestBuildMindMapBranchCap(t *testing.T) {
	keywords := []string{"k0", "k1", "k2", "k3", "k4", "k5", "k6", "k7"}

	mindMap := BuildMindMap(mindMapText, keywords)

	assert.Len(t, mindMap.Branches, 5)
}

func TestBuildMindMapNoKeywords(t *testing.T) {
	mindMap := BuildMindMap(mindMapText, nil)

	assert.Equal(t, FallbackCentral, mindMap.Central)
	assert.Empty(t, mindMap.Branches)
}

func TestExtractKeyPhrase(t *testing.T) {
	assert.Equal(t, "Krótkie zdanie zostaje w całości",
		ExtractKeyPhrase("Krótkie zdanie zostaje w całości"))
	assert.Equal(t, "Dłuższe zdanie zostaje ucięte...",
		ExtractKeyPhrase("Dłuższe zdanie zostaje ucięte do pierwszych czterech słów"))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Fotosynteza", CapitalizeFirst("fotosynteza"))
	assert.Equal(t, "Śnieg", CapitalizeFirst("śnieg"))
	assert.Equal(t, "", CapitalizeFirst(""))
}
