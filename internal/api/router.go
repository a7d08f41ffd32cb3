package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter konfiguruje wszystkie trasy API
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	// System
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/status", h.GetStatus).Methods("GET")
	api.HandleFunc("/models", h.GetModels).Methods("GET")
	api.HandleFunc("/models", h.SetModel).Methods("POST")

	// Dokumenty
	api.HandleFunc("/documents", h.GetDocuments).Methods("GET")
	api.HandleFunc("/documents", h.UploadDocument).Methods("POST")
	api.HandleFunc("/documents/import", h.ImportFromURL).Methods("POST")
	api.HandleFunc("/documents/recent", h.GetRecentDocuments).Methods("GET")
	api.HandleFunc("/documents/{id}", h.GetDocument).Methods("GET")
	api.HandleFunc("/documents/{id}", h.DeleteDocument).Methods("DELETE")

	// Materiały do nauki
	api.HandleFunc("/documents/{id}/summary", h.GetSummary).Methods("GET")
	api.HandleFunc("/documents/{id}/summary/export", h.ExportSummary).Methods("GET")
	api.HandleFunc("/documents/{id}/mindmap", h.GetMindMap).Methods("GET")
	api.HandleFunc("/documents/{id}/mindmap/export", h.ExportMindMap).Methods("GET")
	api.HandleFunc("/documents/{id}/quiz", h.GetQuiz).Methods("GET")

	// Sesja quizowa
	api.HandleFunc("/documents/{id}/quiz/answer", h.SubmitAnswer).Methods("POST")
	api.HandleFunc("/documents/{id}/quiz/finish", h.FinishQuiz).Methods("POST")
	api.HandleFunc("/documents/{id}/quiz/reset", h.ResetQuiz).Methods("POST")

	// Postęp użytkownika
	api.HandleFunc("/progress", h.GetProgress).Methods("GET")

	// WebSocket z postępem przetwarzania
	r.HandleFunc("/ws/progress", h.ProgressSocket)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(r)
}
