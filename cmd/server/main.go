package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edulearn/internal/api"
	"edulearn/internal/config"
	"edulearn/internal/gamification"
	"edulearn/internal/generator"
	"edulearn/internal/llm"
	"edulearn/internal/storage"
)

func main() {
	log.SetFlags(log.Ltime | log.Lmsgprefix)
	log.SetPrefix("")

	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("🎓 EDULEARN - Start")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	// Flagi wiersza poleceń
	configPath := flag.String("config", "config.json", "Ścieżka do pliku konfiguracji")
	port := flag.String("port", "", "Port serwera (nadpisuje konfigurację)")
	flag.Parse()

	// Wczytanie konfiguracji
	log.Println("📋 Wczytywanie konfiguracji...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("⚠️  Nie udało się wczytać konfiguracji, używam domyślnej: %v", err)
		cfg = config.Default()
	}
	if *port != "" {
		cfg.ServerPort = *port
	}
	log.Printf("   ✓ Konfiguracja wczytana")

	// Inicjalizacja bazy danych
	log.Println("💾 Inicjalizacja bazy danych...")
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("❌ Błąd inicjalizacji bazy danych: %v", err)
	}
	defer store.Close()
	log.Printf("   ✓ Baza danych: %s", cfg.DatabasePath)

	// Inicjalizacja dostawcy LLM
	log.Println("🤖 Inicjalizacja dostawcy LLM...")
	llmProvider := llm.NewOllamaProvider(cfg.OllamaURL, cfg.DefaultModel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	llmAvailable := llmProvider.IsAvailable(ctx)
	if llmAvailable {
		log.Printf("   ✓ Ollama dostępna: %s", cfg.OllamaURL)
		modelList, err := llmProvider.GetModels(ctx)
		if err == nil {
			log.Printf("   ✓ Dostępne modele: %d", len(modelList))
			for _, m := range modelList {
				log.Printf("      - %s", m.Name)
			}
		}
	} else {
		log.Printf("   ⚠️  Ollama NIEDOSTĘPNA pod adresem %s", cfg.OllamaURL)
		log.Println("      Uruchom Ollamę poleceniem: ollama serve")
	}
	cancel()
	log.Printf("   ✓ Model domyślny: %s", cfg.DefaultModel)

	// Wybór strategii generowania materiałów
	log.Println("⚙️  Konfiguracja strategii generowania...")
	var rng *rand.Rand
	if cfg.RandomSeed != 0 {
		rng = rand.New(rand.NewSource(cfg.RandomSeed))
	}
	strategy := buildStrategy(cfg.Strategy, rng, llmProvider, llmAvailable)
	pipeline := generator.NewPipeline(strategy)
	log.Printf("   ✓ Strategia: %s", pipeline.StrategyName())

	// Śledzenie postępu użytkownika
	tracker := gamification.NewTracker(store)

	// API
	hub := api.NewHub()
	handler := api.NewHandler(store, llmProvider, pipeline, tracker, hub, cfg)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Łagodne zamykanie
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Println("")
		log.Println("⏹️  Zamykanie serwera...")
		server.Close()
	}()

	log.Println("")
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Printf("✅ Serwer działa pod adresem: http://localhost:%s", cfg.ServerPort)
	log.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	log.Println("💡 Naciśnij Ctrl+C, aby zakończyć")
	log.Println("")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Błąd serwera: %v", err)
	}
}

// buildStrategy składa strategię według konfiguracji. Strategia "ai"
// wymaga działającej Ollamy; bez niej serwer spada na "structure",
// żeby upload dokumentów dalej działał.
func buildStrategy(name string, rng *rand.Rand, provider llm.Provider, llmAvailable bool) generator.Strategy {
	heuristic := generator.NewHeuristic(rng)
	structure := generator.NewStructureAware(heuristic)

	switch name {
	case "heuristic":
		return heuristic
	case "ai":
		if llmAvailable {
			return generator.NewAIAssisted(provider, structure)
		}
		log.Println("   ⚠️  Strategia 'ai' niedostępna bez Ollamy, używam 'structure'")
		return structure
	default:
		return structure
	}
}
