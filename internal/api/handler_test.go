package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/config"
	"edulearn/internal/gamification"
	"edulearn/internal/generator"
	"edulearn/internal/llm"
	"edulearn/internal/models"
	"edulearn/internal/storage"
)

// offlineProvider symuluje niedostępną Ollamę
type offlineProvider struct{}

func (offlineProvider) Generate(context.Context, string, *llm.GenerateOptions) (*llm.GenerateResponse, error) {
	return nil, errors.New("ollama niedostępna")
}
func (offlineProvider) GetModels(context.Context) ([]llm.ModelInfo, error) {
	return nil, errors.New("ollama niedostępna")
}
func (offlineProvider) IsAvailable(context.Context) bool { return false }
func (offlineProvider) GetName() string                  { return "ollama" }
func (offlineProvider) SetModel(string)                  {}
func (offlineProvider) GetCurrentModel() string          { return "brak" }

func testRouter(t *testing.T) (http.Handler, storage.Storage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	pipeline := generator.NewPipeline(generator.NewHeuristic(rand.New(rand.NewSource(1))))
	tracker := gamification.NewTracker(store)
	handler := NewHandler(store, offlineProvider{}, pipeline, tracker, NewHub(), config.Default())
	return NewRouter(handler), store
}

func seedArtifacts(t *testing.T, store storage.Storage) {
	t.Helper()

	require.NoError(t, store.SaveDocument(&models.Document{ID: "doc-1", Name: "biologia.pdf", PageCount: 3}))
	require.NoError(t, store.SaveArtifacts(&models.Artifacts{
		DocumentID: "doc-1",
		Keywords:   []string{"fotosynteza"},
		Summary:    models.Summary{Short: "Krótkie.", Medium: "Średnie.", Long: "Długie."},
		MindMap:    models.MindMap{Central: "Fotosynteza"},
		Quiz: []models.QuizQuestion{
			{
				ID: "q-1", Question: "Prawda czy fałsz: rośliny są zielone",
				Options: []string{"Prawda", "Fałsz"}, Correct: 0,
				Type: models.QuestionTrueFalse, Explanation: "Są zielone.",
			},
			{
				ID: "q-2", Question: "Uzupełnij zdanie: ____ zachodzi w liściach",
				Options: []string{"Fotosynteza", "Oddychanie", "Nieznane", "Brak danych"}, Correct: 0,
				Type: models.QuestionMultipleChoice, Explanation: "Fotosynteza.",
			},
		},
	}))
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthCheck(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, false, resp["llm_available"])
	assert.Equal(t, "heuristic", resp["strategy"])
}

func TestGetDocuments(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/documents", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetSummaryTiers(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/documents/doc-1/summary?tier=short", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Krótkie.", resp["summary"])

	// bez parametru obowiązuje poziom średni
	rec = doRequest(t, router, http.MethodGet, "/api/v1/documents/doc-1/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Średnie.", resp["summary"])

	rec = doRequest(t, router, http.MethodGet, "/api/v1/documents/doc-1/summary?tier=gigantyczne", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummaryUnknownDocument(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/documents/nie-ma/summary", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuizSessionFlow(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	// poprawna odpowiedź
	rec := doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/answer",
		map[string]int{"question_index": 0, "selected_answer": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	var answer map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Equal(t, true, answer["is_correct"])

	// błędna odpowiedź
	rec = doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/answer",
		map[string]int{"question_index": 1, "selected_answer": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Equal(t, false, answer["is_correct"])

	// rozliczenie sesji
	rec = doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var result models.QuizResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 50, result.Percentage)
	require.Len(t, result.Improvements, 1)
	assert.Equal(t, 1, result.Improvements[0].QuestionIndex)

	// sesja wyczyszczona - ponowne rozliczenie bez odpowiedzi jest błędem
	rec = doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/finish", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswerValidation(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/answer",
		map[string]int{"question_index": 99, "selected_answer": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/answer",
		map[string]int{"question_index": 0, "selected_answer": 5})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetQuizClearsSession(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/answer",
		map[string]int{"question_index": 0, "selected_answer": 0})

	rec := doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/v1/documents/doc-1/quiz/finish", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportFromURLNotImplemented(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/documents/import", nil)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestDeleteDocument(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	rec := doRequest(t, router, http.MethodDelete, "/api/v1/documents/doc-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/v1/documents/doc-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProgressListsAllBadges(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/progress", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Badges []struct {
			Name   string `json:"name"`
			Earned bool   `json:"earned"`
		} `json:"badges"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Badges, len(gamification.Badges))
	for _, badge := range resp.Badges {
		assert.False(t, badge.Earned)
	}
}

func TestExportSummary(t *testing.T) {
	router, store := testRouter(t)
	seedArtifacts(t, store)

	rec := doRequest(t, router, http.MethodGet, "/api/v1/documents/doc-1/summary/export?tier=long", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Długie.", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestUploadRejectsMissingFile(t *testing.T) {
	router, _ := testRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/v1/documents", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
