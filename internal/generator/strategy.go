package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"time"

	"edulearn/internal/analysis"
	"edulearn/internal/models"
)

// MinTextLen to minimalna długość wyekstrahowanego tekstu. Krótszy tekst
// oznacza dokument zeskanowany albo nieobsługiwany.
const MinTextLen = 50

// ErrInsufficientText sygnalizuje nieudaną ekstrakcję - pipeline nie
// generuje wtedy żadnych materiałów
var ErrInsufficientText = errors.New("za mało tekstu do wygenerowania materiałów")

// Strategy generuje poszczególne artefakty z tekstu dokumentu.
// Warianty: Heuristic (deterministyczny), StructureAware (nagłówki
// sekcji), AIAssisted (LLM z powrotem do heurystyki przy błędzie).
type Strategy interface {
	Name() string
	Summary(ctx context.Context, text string, keywords []string) (models.Summary, error)
	MindMap(ctx context.Context, text string, keywords []string) (models.MindMap, error)
	Quiz(ctx context.Context, text string, keywords []string) ([]models.QuizQuestion, error)
}

// Pipeline spina ekstrakcję słów kluczowych i wybraną strategię w jeden
// przebieg. Wszystkie trzy artefakty są liczone przed zwróceniem wyniku,
// więc odbiorca nigdy nie widzi częściowo wymienionego zestawu.
type Pipeline struct {
	strategy  Strategy
	extractor *analysis.KeywordExtractor
}

// NewPipeline tworzy pipeline z podaną strategią
func NewPipeline(strategy Strategy) *Pipeline {
	return &Pipeline{
		strategy:  strategy,
		extractor: analysis.NewKeywordExtractor(),
	}
}

// Generate buduje pełny zestaw materiałów dla dokumentu. Tekst krótszy
// niż 50 znaków to błąd ekstrakcji; po przejściu tego progu miękkie
// niepowodzenia generacji nigdy nie są fatalne.
func (p *Pipeline) Generate(ctx context.Context, doc *models.Document) (*models.Artifacts, error) {
	text := strings.TrimSpace(doc.Content)
	if len(text) < MinTextLen {
		return nil, ErrInsufficientText
	}

	keywords := p.extractor.Extract(text)

	summary, err := p.strategy.Summary(ctx, text, keywords)
	if err != nil {
		return nil, err
	}
	mindMap, err := p.strategy.MindMap(ctx, text, keywords)
	if err != nil {
		return nil, err
	}
	quiz, err := p.strategy.Quiz(ctx, text, keywords)
	if err != nil {
		return nil, err
	}

	return &models.Artifacts{
		DocumentID: doc.ID,
		Keywords:   keywords,
		Summary:    summary,
		MindMap:    mindMap,
		Quiz:       quiz,
	}, nil
}

// StrategyName zwraca nazwę aktywnej strategii
func (p *Pipeline) StrategyName() string {
	return p.strategy.Name()
}

// Heuristic to deterministyczna strategia bazowa. Nie zwraca błędów -
// braki materiału rozwiązuje przez pominięcie lub wartości zastępcze.
type Heuristic struct {
	summarizer *Summarizer
	quiz       *QuizBuilder
}

// NewHeuristic tworzy strategię heurystyczną. Źródło losowości jest
// wstrzykiwane; nil oznacza ziarno z zegara.
func NewHeuristic(rng *rand.Rand) *Heuristic {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Heuristic{
		summarizer: &Summarizer{Position: PositionEdges},
		quiz:       NewQuizBuilder(rng),
	}
}

// SetPosition przełącza wariant punktacji pozycji zdań
func (h *Heuristic) SetPosition(p PositionStrategy) {
	h.summarizer.Position = p
}

func (h *Heuristic) Name() string { return "heuristic" }

func (h *Heuristic) Summary(_ context.Context, text string, keywords []string) (models.Summary, error) {
	sentences := analysis.Segment(text, analysis.MinSummaryLen)
	return h.summarizer.Summarize(sentences, keywords), nil
}

func (h *Heuristic) MindMap(_ context.Context, text string, keywords []string) (models.MindMap, error) {
	return BuildMindMap(text, keywords), nil
}

func (h *Heuristic) Quiz(_ context.Context, text string, keywords []string) ([]models.QuizQuestion, error) {
	return h.quiz.Build(text, keywords), nil
}
