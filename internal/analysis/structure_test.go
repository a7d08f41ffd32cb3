package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredText = `FOTOSYNTEZA ROŚLIN
Proces zachodzi w chloroplastach komórek roślinnych.
Fotosynteza polega na przetwarzaniu energii świetlnej w chemiczną.
Najpierw światło pochłaniane jest przez cząsteczki chlorofilu.

FAZA CIEMNA
Wyróżniamy dwa Typy Reakcji: jasne oraz ciemne w cyklu Calvina.
Sprawność procesu wynosi około 3,5% przy natężeniu 100 luksów.`

func TestParseStructureDetectsSections(t *testing.T) {
	structure := ParseStructure(structuredText)

	require.True(t, structure.HasSections())
	require.Len(t, structure.Sections, 2)
	assert.Equal(t, "FOTOSYNTEZA ROŚLIN", structure.Sections[0].Title)
	assert.Equal(t, "FAZA CIEMNA", structure.Sections[1].Title)
	assert.NotEmpty(t, structure.Sections[0].Content)
	assert.LessOrEqual(t, len(structure.Sections[0].Content), 3)
}

func TestParseStructureClassifiesSentences(t *testing.T) {
	structure := ParseStructure(structuredText)

	require.NotEmpty(t, structure.KeyFacts)
	assert.Contains(t, structure.KeyFacts[0], "polega na")

	require.NotEmpty(t, structure.Processes)
	assert.Contains(t, structure.Processes[0], "Proces zachodzi")

	require.NotEmpty(t, structure.Classifications)
	assert.Contains(t, structure.Classifications[0], ":")
}

func TestParseStructureCollectsNumbers(t *testing.T) {
	structure := ParseStructure(structuredText)

	assert.Contains(t, structure.Numbers, "3,5%")
	assert.Contains(t, structure.Numbers, "100")
}

func TestParseStructurePlainText(t *testing.T) {
	structure := ParseStructure("zwykły tekst bez żadnych nagłówków ani struktury dokumentu")

	assert.False(t, structure.HasSections())
	assert.Empty(t, structure.Sections)
}

func TestIsSectionHeader(t *testing.T) {
	assert.True(t, isSectionHeader("FOTOSYNTEZA ROŚLIN"))
	assert.False(t, isSectionHeader("Zwykłe zdanie w tekście"))
	assert.False(t, isSectionHeader("ZA K")) // poniżej minimalnej długości
	assert.False(t, isSectionHeader("12345 67890"))
}

func TestIsClassification(t *testing.T) {
	assert.True(t, isClassification("Wyróżniamy Trzy Grupy: pierwsza, druga, trzecia"))
	assert.False(t, isClassification("zdanie bez dwukropka i wielkich liter"))
	assert.False(t, isClassification("tylko dwukropek: bez wielkich liter"))
}
