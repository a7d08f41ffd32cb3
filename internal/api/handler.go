package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"edulearn/internal/config"
	"edulearn/internal/gamification"
	"edulearn/internal/generator"
	"edulearn/internal/llm"
	"edulearn/internal/models"
	"edulearn/internal/pdf"
	"edulearn/internal/storage"
)

// Handler obsługuje wszystkie endpointy API
type Handler struct {
	store     storage.Storage
	llm       llm.Provider
	pipeline  *generator.Pipeline
	tracker   *gamification.Tracker
	parser    *pdf.Parser
	hub       *Hub
	config    *config.Config
	upgrader  websocket.Upgrader

	mu               sync.Mutex
	uploadInProgress bool
	// odpowiedzi quizowe bieżącej sesji, per dokument; tylko dopisywanie
	answers map[string][]models.QuizAnswer
}

// NewHandler tworzy nowy handler API
func NewHandler(store storage.Storage, llmProvider llm.Provider, pipeline *generator.Pipeline, tracker *gamification.Tracker, hub *Hub, cfg *config.Config) *Handler {
	return &Handler{
		store:    store,
		llm:      llmProvider,
		pipeline: pipeline,
		tracker:  tracker,
		parser:   pdf.NewParser(),
		hub:      hub,
		config:   cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		answers: make(map[string][]models.QuizAnswer),
	}
}

// Pomocnicze odpowiedzi

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// === System ===

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := contextWithTimeout(r, 5*time.Second)
	defer cancel()

	jsonResponse(w, map[string]interface{}{
		"status":        "ok",
		"llm_available": h.llm.IsAvailable(ctx),
		"llm_provider":  h.llm.GetName(),
		"strategy":      h.pipeline.StrategyName(),
		"timestamp":     time.Now(),
	}, http.StatusOK)
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	docs, _ := h.store.GetAllDocuments()
	progress := h.tracker.Progress()

	jsonResponse(w, map[string]interface{}{
		"documents_count": len(docs),
		"llm_available":   h.llm.IsAvailable(r.Context()),
		"llm_provider":    h.llm.GetName(),
		"strategy":        h.pipeline.StrategyName(),
		"points":          progress.Points,
		"level":           progress.Level,
	}, http.StatusOK)
}

func (h *Handler) GetModels(w http.ResponseWriter, r *http.Request) {
	modelList, err := h.llm.GetModels(r.Context())
	if err != nil {
		errorResponse(w, fmt.Sprintf("Nie udało się pobrać modeli: %v", err), http.StatusServiceUnavailable)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"models":        modelList,
		"current_model": h.llm.GetCurrentModel(),
	}, http.StatusOK)
}

// SetModel zmienia aktywny model LLM
func (h *Handler) SetModel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Model == "" {
		errorResponse(w, "Nie podano modelu", http.StatusBadRequest)
		return
	}

	modelList, err := h.llm.GetModels(r.Context())
	if err != nil {
		errorResponse(w, "Nie udało się pobrać modeli", http.StatusServiceUnavailable)
		return
	}

	found := false
	for _, m := range modelList {
		if m.Name == req.Model {
			found = true
			break
		}
	}
	if !found {
		errorResponse(w, fmt.Sprintf("Model '%s' nie istnieje", req.Model), http.StatusBadRequest)
		return
	}

	h.llm.SetModel(req.Model)
	h.config.DefaultModel = req.Model

	jsonResponse(w, map[string]interface{}{
		"message":       "Model zmieniony",
		"current_model": req.Model,
	}, http.StatusOK)
}

// === Dokumenty ===

// UploadDocument przyjmuje PDF, ekstrahuje tekst i generuje komplet
// materiałów. Zestaw jest zapisywany dopiero po policzeniu wszystkich
// trzech artefaktów - częściowo wymieniony stan nigdy nie jest widoczny.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.uploadInProgress {
		h.mu.Unlock()
		errorResponse(w, "Inny dokument jest właśnie przetwarzany, spróbuj za chwilę", http.StatusTooManyRequests)
		return
	}
	h.uploadInProgress = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.uploadInProgress = false
		h.mu.Unlock()
	}()

	// Max 50MB
	r.ParseMultipartForm(50 << 20)

	file, header, err := r.FormFile("file")
	if err != nil {
		errorResponse(w, "Nie znaleziono pliku", http.StatusBadRequest)
		return
	}
	defer file.Close()

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("📄 PRZETWARZANIE DOKUMENTU: %s", header.Filename)
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	h.hub.Broadcast(10, "Przetwarzanie dokumentu PDF...")

	doc, err := h.parser.ParseFromReader(file, header.Filename)
	if errors.Is(err, pdf.ErrNoText) {
		log.Printf("   ❌ Brak warstwy tekstowej: %s", header.Filename)
		errorResponse(w, "Nie udało się wyekstrahować tekstu z PDF. Plik może być zeskanowany lub zabezpieczony.", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		errorResponse(w, fmt.Sprintf("Błąd przetwarzania PDF: %v", err), http.StatusBadRequest)
		return
	}
	log.Printf("   ✓ Wyekstrahowano %d znaków z %d stron", len(doc.Content), doc.PageCount)

	h.hub.Broadcast(40, "Generowanie materiałów do nauki...")

	artifacts, err := h.pipeline.Generate(r.Context(), doc)
	if errors.Is(err, generator.ErrInsufficientText) {
		errorResponse(w, "Dokument zawiera za mało tekstu do wygenerowania materiałów.", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		errorResponse(w, fmt.Sprintf("Błąd generowania materiałów: %v", err), http.StatusInternalServerError)
		return
	}
	log.Printf("   ✓ Słowa kluczowe: %d, gałęzie mapy: %d, pytania: %d",
		len(artifacts.Keywords), len(artifacts.MindMap.Branches), len(artifacts.Quiz))

	h.hub.Broadcast(80, "Zapisywanie wyników...")

	if err := h.store.SaveDocument(doc); err != nil {
		errorResponse(w, "Błąd zapisu dokumentu", http.StatusInternalServerError)
		return
	}
	if err := h.store.SaveArtifacts(artifacts); err != nil {
		errorResponse(w, "Błąd zapisu materiałów", http.StatusInternalServerError)
		return
	}

	badges := h.tracker.RegisterDocument()

	if err := h.store.AddRecentDocument(models.RecentDocument{
		Name:      doc.Name,
		Pages:     doc.PageCount,
		Date:      time.Now().Format("02.01.2006"),
		Timestamp: time.Now(),
	}); err != nil {
		log.Printf("   ⚠️ Nie udało się zapisać listy ostatnich dokumentów: %v", err)
	}

	// Nowy dokument unieważnia poprzednią sesję quizową
	h.mu.Lock()
	h.answers[doc.ID] = nil
	h.mu.Unlock()

	h.hub.Broadcast(100, "Gotowe!")
	log.Println("   ✅ Dokument przetworzony")

	response := *doc
	response.Content = "" // treści nie zwracamy w odpowiedzi

	jsonResponse(w, map[string]interface{}{
		"document":   response,
		"keywords":   artifacts.Keywords,
		"questions":  len(artifacts.Quiz),
		"new_badges": badges,
	}, http.StatusCreated)
}

// ImportFromURL to niezaimplementowany odpowiednik wczytywania z adresu
// URL - obsługiwane są tylko pliki PDF
func (h *Handler) ImportFromURL(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, "Wczytywanie z URL nie jest jeszcze obsługiwane. Prześlij plik PDF.", http.StatusNotImplemented)
}

func (h *Handler) GetDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.GetAllDocuments()
	if err != nil {
		errorResponse(w, "Błąd wczytywania dokumentów", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{
		"documents": docs,
		"count":     len(docs),
	}, http.StatusOK)
}

func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := h.store.GetDocument(id)
	if err != nil {
		errorResponse(w, "Nie znaleziono dokumentu", http.StatusNotFound)
		return
	}

	jsonResponse(w, doc, http.StatusOK)
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.store.DeleteDocument(id); err != nil {
		errorResponse(w, "Błąd usuwania dokumentu", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	delete(h.answers, id)
	h.mu.Unlock()

	jsonResponse(w, map[string]string{"message": "Dokument usunięty"}, http.StatusOK)
}

func (h *Handler) GetRecentDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.store.RecentDocuments()
	if err != nil {
		errorResponse(w, "Błąd wczytywania listy", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, map[string]interface{}{"recent": docs}, http.StatusOK)
}

// === Materiały ===

func (h *Handler) artifactsFor(w http.ResponseWriter, r *http.Request) *models.Artifacts {
	id := mux.Vars(r)["id"]
	artifacts, err := h.store.GetArtifacts(id)
	if err != nil {
		errorResponse(w, "Brak materiałów dla tego dokumentu", http.StatusNotFound)
		return nil
	}
	return artifacts
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = "medium"
	}
	text, ok := artifacts.Summary.ByTier(tier)
	if !ok {
		errorResponse(w, "Nieznany poziom streszczenia (short/medium/long)", http.StatusBadRequest)
		return
	}

	h.tracker.SummaryViewed()

	jsonResponse(w, map[string]interface{}{
		"tier":    tier,
		"summary": text,
	}, http.StatusOK)
}

func (h *Handler) GetMindMap(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	badges := h.tracker.MindMapViewed()

	jsonResponse(w, map[string]interface{}{
		"mind_map":   artifacts.MindMap,
		"new_badges": badges,
	}, http.StatusOK)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	questions := artifacts.Quiz
	if h.config.MaxQuestions > 0 && len(questions) > h.config.MaxQuestions {
		questions = questions[:h.config.MaxQuestions]
	}

	jsonResponse(w, map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	}, http.StatusOK)
}

// === Sesja quizowa ===

// SubmitAnswer ocenia jedną odpowiedź i dopisuje ją do sesji. Wpisy
// sesji nie są nigdy modyfikowane po dopisaniu.
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	var req struct {
		QuestionIndex  int `json:"question_index"`
		SelectedAnswer int `json:"selected_answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "Nieprawidłowe żądanie", http.StatusBadRequest)
		return
	}
	if req.QuestionIndex < 0 || req.QuestionIndex >= len(artifacts.Quiz) {
		errorResponse(w, "Nieprawidłowy indeks pytania", http.StatusBadRequest)
		return
	}

	question := artifacts.Quiz[req.QuestionIndex]
	if req.SelectedAnswer < 0 || req.SelectedAnswer >= len(question.Options) {
		errorResponse(w, "Nieprawidłowy indeks odpowiedzi", http.StatusBadRequest)
		return
	}

	answer := models.QuizAnswer{
		QuestionIndex:  req.QuestionIndex,
		SelectedAnswer: req.SelectedAnswer,
		CorrectAnswer:  question.Correct,
		IsCorrect:      req.SelectedAnswer == question.Correct,
		Question:       question.Question,
		Explanation:    question.Explanation,
	}

	h.mu.Lock()
	h.answers[artifacts.DocumentID] = append(h.answers[artifacts.DocumentID], answer)
	h.mu.Unlock()

	jsonResponse(w, map[string]interface{}{
		"is_correct":     answer.IsCorrect,
		"correct_answer": question.Correct,
		"explanation":    question.Explanation,
	}, http.StatusOK)
}

// FinishQuiz rozlicza sesję: punkty, ocena, odznaki i lista pytań do
// poprawy
func (h *Handler) FinishQuiz(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	h.mu.Lock()
	answers := h.answers[artifacts.DocumentID]
	h.answers[artifacts.DocumentID] = nil
	h.mu.Unlock()

	if len(answers) == 0 {
		errorResponse(w, "Brak udzielonych odpowiedzi", http.StatusBadRequest)
		return
	}

	correct := 0
	var improvements []models.QuizAnswer
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		} else {
			improvements = append(improvements, a)
		}
	}

	result := h.tracker.CompleteQuiz(correct, len(answers))
	result.Improvements = improvements

	log.Printf("🏁 Quiz ukończony: %d/%d (%d%%), ocena %s",
		correct, len(answers), result.Percentage, result.Grade)

	jsonResponse(w, result, http.StatusOK)
}

// ResetQuiz czyści sesję odpowiedzi (ponowne podejście do quizu)
func (h *Handler) ResetQuiz(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.mu.Lock()
	h.answers[id] = nil
	h.mu.Unlock()

	jsonResponse(w, map[string]string{"message": "Quiz zresetowany"}, http.StatusOK)
}

// === Postęp ===

func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	progress := h.tracker.Progress()

	type badgeStatus struct {
		models.Badge
		Earned bool `json:"earned"`
	}
	badges := make([]badgeStatus, 0, len(gamification.Badges))
	for _, b := range gamification.Badges {
		badges = append(badges, badgeStatus{Badge: b, Earned: progress.HasBadge(b.Name)})
	}

	jsonResponse(w, map[string]interface{}{
		"progress": progress,
		"badges":   badges,
	}, http.StatusOK)
}

// === Eksport ===

func (h *Handler) ExportMindMap(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	data, err := json.MarshalIndent(artifacts.MindMap, "", "  ")
	if err != nil {
		errorResponse(w, "Błąd eksportu", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=mapa-mysli-%d.json", time.Now().Unix()))
	w.Write(data)
}

func (h *Handler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	artifacts := h.artifactsFor(w, r)
	if artifacts == nil {
		return
	}

	tier := r.URL.Query().Get("tier")
	if tier == "" {
		tier = "medium"
	}
	text, ok := artifacts.Summary.ByTier(tier)
	if !ok {
		errorResponse(w, "Nieznany poziom streszczenia (short/medium/long)", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=streszczenie-%d.txt", time.Now().Unix()))
	w.Write([]byte(text))
}

// === WebSocket ===

// ProgressSocket podłącza klienta do huba zdarzeń postępu
func (h *Handler) ProgressSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ Błąd połączenia WebSocket: %v", err)
		return
	}

	h.hub.Add(conn)

	// Pętla odczytu utrzymuje połączenie i wykrywa rozłączenie klienta
	go func() {
		defer h.hub.Remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func contextWithTimeout(r *http.Request, d time.Duration) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
