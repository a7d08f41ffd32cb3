package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "modernc.org/sqlite"

	"edulearn/internal/models"
)

// Klucze magazynu klucz-wartość
const (
	KeyProgress   = "progress"
	KeyRecentDocs = "recent_docs"

	maxRecentDocs = 5
)

// Storage definiuje interfejs trwałego zapisu danych
type Storage interface {
	// Dokumenty
	SaveDocument(doc *models.Document) error
	GetDocument(id string) (*models.Document, error)
	GetAllDocuments() ([]models.Document, error)
	DeleteDocument(id string) error

	// Materiały wygenerowane z dokumentu
	SaveArtifacts(artifacts *models.Artifacts) error
	GetArtifacts(documentID string) (*models.Artifacts, error)

	// Magazyn klucz-wartość (postęp, ostatnie dokumenty)
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error

	// Postęp użytkownika. Uszkodzony lub brakujący wpis nigdy nie jest
	// błędem - zwracany jest stan początkowy.
	LoadProgress() (*models.UserProgress, error)
	SaveProgress(progress *models.UserProgress) error

	// Ostatnio przetworzone dokumenty (maksymalnie 5 wpisów)
	RecentDocuments() ([]models.RecentDocument, error)
	AddRecentDocument(doc models.RecentDocument) error

	Close() error
}

// SQLiteStorage implementuje Storage na SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage tworzy nową instancję magazynu SQLite
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		return nil, err
	}

	return storage, nil
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		content TEXT,
		page_count INTEGER,
		uploaded_at DATETIME,
		processed_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		document_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (document_id) REFERENCES documents(id)
	);

	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Dokumenty

func (s *SQLiteStorage) SaveDocument(doc *models.Document) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO documents (id, name, content, page_count, uploaded_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Name, doc.Content, doc.PageCount, doc.UploadedAt, doc.ProcessedAt)
	return err
}

func (s *SQLiteStorage) GetDocument(id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(`
		SELECT id, name, content, page_count, uploaded_at, processed_at
		FROM documents WHERE id = ?
	`, id).Scan(&doc.ID, &doc.Name, &doc.Content, &doc.PageCount, &doc.UploadedAt, &doc.ProcessedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *SQLiteStorage) GetAllDocuments() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, name, page_count, uploaded_at, processed_at
		FROM documents ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(&doc.ID, &doc.Name, &doc.PageCount, &doc.UploadedAt, &doc.ProcessedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *SQLiteStorage) DeleteDocument(id string) error {
	if _, err := s.db.Exec(`DELETE FROM artifacts WHERE document_id = ?`, id); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, id)
	return err
}

// Materiały

func (s *SQLiteStorage) SaveArtifacts(artifacts *models.Artifacts) error {
	data, err := json.Marshal(artifacts)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO artifacts (document_id, data, created_at)
		VALUES (?, ?, ?)
	`, artifacts.DocumentID, string(data), time.Now())
	return err
}

func (s *SQLiteStorage) GetArtifacts(documentID string) (*models.Artifacts, error) {
	var data string
	err := s.db.QueryRow(`
		SELECT data FROM artifacts WHERE document_id = ?
	`, documentID).Scan(&data)
	if err != nil {
		return nil, err
	}

	var artifacts models.Artifacts
	if err := json.Unmarshal([]byte(data), &artifacts); err != nil {
		return nil, err
	}
	return &artifacts, nil
}

// Magazyn klucz-wartość

func (s *SQLiteStorage) GetValue(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStorage) SetValue(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Postęp użytkownika

func (s *SQLiteStorage) LoadProgress() (*models.UserProgress, error) {
	fresh := &models.UserProgress{Level: "Początkujący"}

	value, ok, err := s.GetValue(KeyProgress)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fresh, nil
	}

	var progress models.UserProgress
	if err := json.Unmarshal([]byte(value), &progress); err != nil {
		// Uszkodzony JSON traktujemy jak brak stanu
		return fresh, nil
	}
	if progress.Level == "" {
		progress.Level = fresh.Level
	}
	return &progress, nil
}

func (s *SQLiteStorage) SaveProgress(progress *models.UserProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return s.SetValue(KeyProgress, string(data))
}

// Ostatnie dokumenty

func (s *SQLiteStorage) RecentDocuments() ([]models.RecentDocument, error) {
	value, ok, err := s.GetValue(KeyRecentDocs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var docs []models.RecentDocument
	if err := json.Unmarshal([]byte(value), &docs); err != nil {
		return nil, nil
	}
	return docs, nil
}

func (s *SQLiteStorage) AddRecentDocument(doc models.RecentDocument) error {
	docs, err := s.RecentDocuments()
	if err != nil {
		return err
	}

	docs = append([]models.RecentDocument{doc}, docs...)
	if len(docs) > maxRecentDocs {
		docs = docs[:maxRecentDocs]
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return s.SetValue(KeyRecentDocs, string(data))
}
