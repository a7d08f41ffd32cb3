package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ollamaSemaphore ogranicza równoległe zapytania do Ollamy - więcej niż
// jedno naraz prowadzi do przepełnienia pamięci
var ollamaSemaphore = make(chan struct{}, 1)

func acquireOllama() { ollamaSemaphore <- struct{}{} }
func releaseOllama() { <-ollamaSemaphore }

// Provider definiuje interfejs backendu LLM. Pipeline traktuje go jako
// współpracownika "best effort": każdy błąd kończy się powrotem do
// heurystyki, nigdy awarią.
type Provider interface {
	// Generate zwraca odpowiedź dla podanego promptu
	Generate(ctx context.Context, prompt string, options *GenerateOptions) (*GenerateResponse, error)

	// GetModels zwraca dostępne modele
	GetModels(ctx context.Context) ([]ModelInfo, error)

	// IsAvailable sprawdza, czy backend jest osiągalny
	IsAvailable(ctx context.Context) bool

	// GetName zwraca nazwę providera
	GetName() string

	// SetModel zmienia używany model
	SetModel(model string)

	// GetCurrentModel zwraca aktualny model
	GetCurrentModel() string
}

// GenerateOptions zawiera opcjonalne parametry generacji
type GenerateOptions struct {
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	System      string  `json:"system,omitempty"`
}

// GenerateResponse zawiera odpowiedź LLM
type GenerateResponse struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Done    bool   `json:"done"`
}

// ModelInfo zawiera informacje o modelu
type ModelInfo struct {
	Name       string    `json:"name"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

// OllamaProvider implementuje Provider dla lokalnej Ollamy
type OllamaProvider struct {
	baseURL      string
	defaultModel string
	client       *http.Client
}

// NewOllamaProvider tworzy nowego providera Ollamy
func NewOllamaProvider(baseURL, defaultModel string) *OllamaProvider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if defaultModel == "" {
		defaultModel = "qwen2.5:7b"
	}

	provider := &OllamaProvider{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		defaultModel: defaultModel,
		client: &http.Client{
			Timeout: 10 * time.Minute, // długie dokumenty potrafią trwać
		},
	}

	// Jeśli wybrany model nie istnieje, bierzemy pierwszy dostępny
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	models, err := provider.GetModels(ctx)
	if err == nil && len(models) > 0 {
		found := false
		for _, m := range models {
			if m.Name == defaultModel {
				found = true
				break
			}
		}
		if !found {
			log.Printf("⚠️  Model '%s' niedostępny, używam '%s'", defaultModel, models[0].Name)
			provider.defaultModel = models[0].Name
		}
	}

	return provider
}

func (o *OllamaProvider) GetName() string { return "Ollama" }

// SetModel zmienia model domyślny
func (o *OllamaProvider) SetModel(model string) {
	if model != "" {
		o.defaultModel = model
	}
}

// GetCurrentModel zwraca aktualny model
func (o *OllamaProvider) GetCurrentModel() string { return o.defaultModel }

func (o *OllamaProvider) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (o *OllamaProvider) GetModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", o.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama nieosiągalna: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Models []struct {
			Name       string    `json:"name"`
			ModifiedAt time.Time `json:"modified_at"`
			Size       int64     `json:"size"`
		} `json:"models"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	var models []ModelInfo
	for _, m := range result.Models {
		models = append(models, ModelInfo{
			Name:       m.Name,
			ModifiedAt: m.ModifiedAt,
			Size:       m.Size,
		})
	}

	return models, nil
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string, options *GenerateOptions) (*GenerateResponse, error) {
	// Semafor: jedno zapytanie do Ollamy naraz
	acquireOllama()
	defer releaseOllama()

	return o.generateWithRetry(ctx, prompt, options, 3)
}

func (o *OllamaProvider) generateWithRetry(ctx context.Context, prompt string, options *GenerateOptions, maxRetries int) (*GenerateResponse, error) {
	model := o.defaultModel
	if options != nil && options.Model != "" {
		model = options.Model
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if attempt > 1 {
			log.Printf("   [Ollama] 🔄 Ponowna próba %d/%d...", attempt, maxRetries)
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}

		resp, err := o.doGenerate(ctx, prompt, model, options)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		// Przy ubitym procesie Ollamy chwilę czekamy i próbujemy ponownie
		if strings.Contains(err.Error(), "terminated") || strings.Contains(err.Error(), "500") {
			log.Printf("   [Ollama] ⚠️ Proces Ollamy padł, czekam 5s...")
			time.Sleep(5 * time.Second)
			continue
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func (o *OllamaProvider) doGenerate(ctx context.Context, prompt string, model string, options *GenerateOptions) (*GenerateResponse, error) {
	reqBody := map[string]interface{}{
		"model":  model,
		"prompt": prompt,
		"stream": false,
	}

	if options != nil {
		if options.Temperature > 0 {
			reqBody["options"] = map[string]interface{}{
				"temperature": options.Temperature,
			}
		}
		if options.System != "" {
			reqBody["system"] = options.System
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()

	resp, err := o.client.Do(req)
	if err != nil {
		log.Printf("   [Ollama] ❌ Błąd sieci po %v: %v", time.Since(start), err)
		return nil, fmt.Errorf("zapytanie do ollamy nieudane: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("błąd ollamy (%d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Response string `json:"response"`
		Model    string `json:"model"`
		Done     bool   `json:"done"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}

	log.Printf("   [Ollama] ✓ Odpowiedź po %v (%d znaków)", time.Since(start), len(result.Response))

	return &GenerateResponse{
		Content: result.Response,
		Model:   result.Model,
		Done:    result.Done,
	}, nil
}
