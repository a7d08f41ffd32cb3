package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

// Config zawiera wszystkie ustawienia aplikacji
type Config struct {
	// Serwer
	ServerPort string `json:"server_port"`

	// Ścieżki
	DatabasePath string `json:"database_path"`

	// Ustawienia LLM
	OllamaURL    string `json:"ollama_url"`
	DefaultModel string `json:"default_model"`

	// Generacja materiałów
	Strategy     string `json:"strategy"` // heuristic, structure, ai
	RandomSeed   int64  `json:"random_seed"` // 0 = ziarno z zegara
	MaxQuestions int    `json:"max_questions"`
}

// Default zwraca konfigurację domyślną
func Default() *Config {
	return &Config{
		ServerPort:   "8080",
		DatabasePath: "edulearn.db",
		OllamaURL:    "http://localhost:11434",
		DefaultModel: "qwen2.5:7b",
		Strategy:     "structure",
		MaxQuestions: 10,
	}
}

// Load wczytuje konfigurację z pliku JSON, a następnie nakłada
// zmienne środowiskowe (w tym plik .env, jeśli istnieje)
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		cfg.applyEnv()
		return cfg, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		cfg.applyEnv()
		return cfg, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// Save zapisuje konfigurację do pliku
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyEnv nakłada zmienne EDULEARN_* na konfigurację; .env jest
// opcjonalny, jego brak nie jest błędem
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("EDULEARN_PORT"); v != "" {
		c.ServerPort = v
	}
	if v := os.Getenv("EDULEARN_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("EDULEARN_OLLAMA_URL"); v != "" {
		c.OllamaURL = v
	}
	if v := os.Getenv("EDULEARN_MODEL"); v != "" {
		c.DefaultModel = v
	}
	if v := os.Getenv("EDULEARN_STRATEGY"); v != "" {
		c.Strategy = v
	}
}
