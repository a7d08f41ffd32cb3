package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDocumentRoundtrip(t *testing.T) {
	store := newTestStorage(t)

	doc := &models.Document{
		ID:          "doc-1",
		Name:        "biologia.pdf",
		Content:     "Fotosynteza zachodzi w chloroplastach.",
		PageCount:   12,
		UploadedAt:  time.Now(),
		ProcessedAt: time.Now(),
	}
	require.NoError(t, store.SaveDocument(doc))

	loaded, err := store.GetDocument("doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, loaded.ID)
	assert.Equal(t, doc.Name, loaded.Name)
	assert.Equal(t, doc.Content, loaded.Content)
	assert.Equal(t, doc.PageCount, loaded.PageCount)
	assert.WithinDuration(t, doc.UploadedAt, loaded.UploadedAt, time.Second)
}

func TestGetAllDocumentsOmitsContent(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SaveDocument(&models.Document{
		ID: "doc-1", Name: "a.pdf", Content: "pełna treść", UploadedAt: time.Now(),
	}))

	docs, err := store.GetAllDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Content)
	assert.Equal(t, "a.pdf", docs[0].Name)
}

func TestDeleteDocumentRemovesArtifacts(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SaveDocument(&models.Document{ID: "doc-1", Name: "a.pdf", UploadedAt: time.Now()}))
	require.NoError(t, store.SaveArtifacts(&models.Artifacts{DocumentID: "doc-1", Keywords: []string{"fotosynteza"}}))

	require.NoError(t, store.DeleteDocument("doc-1"))

	_, err := store.GetDocument("doc-1")
	assert.Error(t, err)
	_, err = store.GetArtifacts("doc-1")
	assert.Error(t, err)
}

func TestArtifactsRoundtrip(t *testing.T) {
	store := newTestStorage(t)

	artifacts := &models.Artifacts{
		DocumentID: "doc-1",
		Keywords:   []string{"fotosynteza", "chlorofil"},
		Summary:    models.Summary{Short: "Krótkie.", Medium: "Średnie.", Long: "Długie."},
		MindMap: models.MindMap{
			Central:  "Fotosynteza",
			Branches: []models.Branch{{Topic: "Chlorofil", Subtopics: []string{"Pochłanianie światła"}}},
		},
		Quiz: []models.QuizQuestion{{
			ID:       "q-1",
			Question: "Uzupełnij zdanie: ____ zachodzi w liściach",
			Options:  []string{"Fotosynteza", "Oddychanie", "Transpiracja", "Nieznane"},
			Correct:  0,
			Type:     models.QuestionMultipleChoice,
		}},
	}
	require.NoError(t, store.SaveArtifacts(artifacts))

	loaded, err := store.GetArtifacts("doc-1")
	require.NoError(t, err)
	assert.Equal(t, artifacts, loaded)
}

func TestSaveArtifactsReplacesPreviousSet(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SaveArtifacts(&models.Artifacts{DocumentID: "doc-1", Keywords: []string{"stare"}}))
	require.NoError(t, store.SaveArtifacts(&models.Artifacts{DocumentID: "doc-1", Keywords: []string{"nowe"}}))

	loaded, err := store.GetArtifacts("doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nowe"}, loaded.Keywords)
}

func TestKeyValueStore(t *testing.T) {
	store := newTestStorage(t)

	_, ok, err := store.GetValue("brak")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetValue("klucz", "wartość"))
	value, ok, err := store.GetValue("klucz")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "wartość", value)

	require.NoError(t, store.SetValue("klucz", "nowa"))
	value, _, _ = store.GetValue("klucz")
	assert.Equal(t, "nowa", value)
}

func TestLoadProgressFreshState(t *testing.T) {
	store := newTestStorage(t)

	progress, err := store.LoadProgress()
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Points)
	assert.Equal(t, "Początkujący", progress.Level)
	assert.Empty(t, progress.Badges)
}

func TestProgressRoundtrip(t *testing.T) {
	store := newTestStorage(t)

	saved := &models.UserProgress{
		Points: 150, Level: "Początkujący",
		Badges:             []string{"PDF Master"},
		DocumentsProcessed: 3,
		Streak:             2,
	}
	require.NoError(t, store.SaveProgress(saved))

	loaded, err := store.LoadProgress()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadProgressCorruptJSON(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SetValue(KeyProgress, "{{{nie-json"))

	progress, err := store.LoadProgress()
	require.NoError(t, err)
	assert.Equal(t, 0, progress.Points)
	assert.Equal(t, "Początkujący", progress.Level)
}

func TestRecentDocumentsCap(t *testing.T) {
	store := newTestStorage(t)

	docs, err := store.RecentDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)

	for i := 0; i < 7; i++ {
		require.NoError(t, store.AddRecentDocument(models.RecentDocument{
			Name:      string(rune('a'+i)) + ".pdf",
			Timestamp: time.Now(),
		}))
	}

	docs, err = store.RecentDocuments()
	require.NoError(t, err)
	require.Len(t, docs, 5)
	// najnowszy wpis jest zawsze pierwszy
	assert.Equal(t, "g.pdf", docs[0].Name)
	assert.Equal(t, "c.pdf", docs[4].Name)
}

func TestRecentDocumentsCorruptJSON(t *testing.T) {
	store := newTestStorage(t)

	require.NoError(t, store.SetValue(KeyRecentDocs, "[nie-json"))

	docs, err := store.RecentDocuments()
	require.NoError(t, err)
	assert.Empty(t, docs)
}
