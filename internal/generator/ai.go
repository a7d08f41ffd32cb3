package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"edulearn/internal/llm"
	"edulearn/internal/models"
)

// Parametry ścieżki AI
const (
	aiChunkSize    = 2000
	aiChunkOverlap = 200
	aiMaxChunks    = 8 // dłuższe dokumenty i tak streszczamy heurystycznie
)

// AIAssisted próbuje wygenerować artefakty przez LLM, a przy każdym
// błędzie, przekroczeniu czasu albo zniekształconej odpowiedzi podstawia
// wynik strategii zapasowej. Z perspektywy odbiorcy ścieżka AI nigdy
// nie zawodzi - co najwyżej po cichu obniża jakość do heurystyki.
type AIAssisted struct {
	provider llm.Provider
	fallback Strategy
}

// NewAIAssisted tworzy strategię AI z podanym providerem i strategią
// zapasową
func NewAIAssisted(provider llm.Provider, fallback Strategy) *AIAssisted {
	return &AIAssisted{provider: provider, fallback: fallback}
}

func (a *AIAssisted) Name() string { return "ai" }

// Summary streszcza dokument przez LLM: fragmenty sekwencyjnie, po jednym
// zapytaniu naraz, potem przebieg scalający na poziom
func (a *AIAssisted) Summary(ctx context.Context, text string, keywords []string) (models.Summary, error) {
	partials, err := a.summarizeChunks(ctx, text)
	if err != nil {
		log.Printf("   [AI] ⚠️ Streszczenie przez LLM nieudane, wracam do heurystyki: %v", err)
		return a.fallback.Summary(ctx, text, keywords)
	}

	combined := strings.Join(partials, "\n")
	summary := models.Summary{}
	tiers := []struct {
		name      string
		sentences int
		out       *string
	}{
		{"short", ShortSentences, &summary.Short},
		{"medium", MediumSentences, &summary.Medium},
		{"long", LongSentences, &summary.Long},
	}

	for _, tier := range tiers {
		prompt := fmt.Sprintf(`Streszcz poniższy materiał w maksymalnie %d zdaniach.
Pisz po polsku, zwięźle, bez wstępów i komentarzy.

Materiał:
%s`, tier.sentences, llm.LimitContent(combined, 6000))

		resp, err := a.provider.Generate(ctx, prompt, &llm.GenerateOptions{
			Temperature: 0.3,
			System:      "Jesteś asystentem do nauki. Streszczasz materiały dydaktyczne po polsku.",
		})
		if err != nil || strings.TrimSpace(resp.Content) == "" {
			log.Printf("   [AI] ⚠️ Poziom '%s' nieudany, wracam do heurystyki", tier.name)
			return a.fallback.Summary(ctx, text, keywords)
		}
		*tier.out = strings.TrimSpace(resp.Content)
	}

	return summary, nil
}

// MindMap prosi model o mapę myśli w JSON i waliduje wynik; zdeformowana
// odpowiedź oznacza powrót do heurystyki
func (a *AIAssisted) MindMap(ctx context.Context, text string, keywords []string) (models.MindMap, error) {
	prompt := fmt.Sprintf(`Przeanalizuj materiał i zbuduj mapę myśli: jeden temat centralny,
do 5 gałęzi, w każdej do 4 podtematów.

Odpowiedz WYŁĄCZNIE w formacie JSON:
{"central": "Temat", "branches": [{"topic": "Gałąź", "subtopics": ["Podtemat"]}]}

Materiał:
%s`, llm.LimitContent(text, 6000))

	resp, err := a.provider.Generate(ctx, prompt, &llm.GenerateOptions{
		Temperature: 0.3,
		System:      "Jesteś asystentem do nauki. Odpowiadasz po polsku i tylko w formacie JSON.",
	})
	if err != nil {
		log.Printf("   [AI] ⚠️ Mapa myśli przez LLM nieudana, wracam do heurystyki: %v", err)
		return a.fallback.MindMap(ctx, text, keywords)
	}

	mindMap, ok := parseMindMap(resp.Content)
	if !ok {
		log.Printf("   [AI] ⚠️ Nieparsowalna mapa myśli, wracam do heurystyki")
		return a.fallback.MindMap(ctx, text, keywords)
	}
	return mindMap, nil
}

// Quiz prosi model o pytania w JSON; pytania niespełniające niezmienników
// (zły indeks, zła liczba opcji) są odrzucane pojedynczo, a pusty wynik
// oznacza powrót do heurystyki
func (a *AIAssisted) Quiz(ctx context.Context, text string, keywords []string) ([]models.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Ułóż do %d pytań quizowych do poniższego materiału.
Typy: multiple_choice (4 opcje), true_false (opcje "Prawda" i "Fałsz"), fill_blank (4 opcje).
"correct" to indeks poprawnej opcji liczony od zera.

Odpowiedz WYŁĄCZNIE w formacie JSON:
{"questions": [{"question": "...", "options": ["..."], "correct": 0, "type": "multiple_choice", "explanation": "..."}]}

Materiał:
%s`, MaxQuizQuestions, llm.LimitContent(text, 6000))

	resp, err := a.provider.Generate(ctx, prompt, &llm.GenerateOptions{
		Temperature: 0.4,
		System:      "Jesteś egzaminatorem. Układasz pytania po polsku, tylko w formacie JSON.",
	})
	if err != nil {
		log.Printf("   [AI] ⚠️ Quiz przez LLM nieudany, wracam do heurystyki: %v", err)
		return a.fallback.Quiz(ctx, text, keywords)
	}

	quiz := parseQuiz(resp.Content)
	if len(quiz) == 0 {
		log.Printf("   [AI] ⚠️ Brak poprawnych pytań od LLM, wracam do heurystyki")
		return a.fallback.Quiz(ctx, text, keywords)
	}
	return quiz, nil
}

// summarizeChunks streszcza dokument fragment po fragmencie, sekwencyjnie
// (jedno zapytanie naraz, kolejność stron zachowana)
func (a *AIAssisted) summarizeChunks(ctx context.Context, text string) ([]string, error) {
	chunks := SplitChunks(text, aiChunkSize, aiChunkOverlap)
	if len(chunks) > aiMaxChunks {
		chunks = chunks[:aiMaxChunks]
	}

	partials := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		prompt := fmt.Sprintf(`Streszcz poniższy fragment dokumentu w 2-3 zdaniach po polsku:

%s`, chunk)

		resp, err := a.provider.Generate(ctx, prompt, &llm.GenerateOptions{
			Temperature: 0.3,
			System:      "Streszczasz fragmenty materiałów dydaktycznych po polsku.",
		})
		if err != nil {
			return nil, fmt.Errorf("fragment %d/%d: %w", i+1, len(chunks), err)
		}
		partials = append(partials, strings.TrimSpace(resp.Content))
	}
	return partials, nil
}

// SplitChunks tnie tekst na fragmenty pod prompty LLM, z zakładką między
// fragmentami, żeby nie ucinać zdań na granicy
func SplitChunks(content string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = aiChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = aiChunkOverlap
	}

	var chunks []string
	runes := []rune(content)
	length := len(runes)

	for i := 0; i < length; i += chunkSize - overlap {
		end := i + chunkSize
		if end > length {
			end = length
		}
		chunks = append(chunks, string(runes[i:end]))
		if end >= length {
			break
		}
	}
	return chunks
}

func parseMindMap(response string) (models.MindMap, bool) {
	var result struct {
		Central  string `json:"central"`
		Branches []struct {
			Topic     string   `json:"topic"`
			Subtopics []string `json:"subtopics"`
		} `json:"branches"`
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &result); err != nil {
		return models.MindMap{}, false
	}
	if strings.TrimSpace(result.Central) == "" {
		return models.MindMap{}, false
	}

	mindMap := models.MindMap{Central: strings.TrimSpace(result.Central)}
	for _, b := range result.Branches {
		if len(mindMap.Branches) >= maxBranches || strings.TrimSpace(b.Topic) == "" {
			continue
		}
		branch := models.Branch{Topic: strings.TrimSpace(b.Topic)}
		for _, sub := range b.Subtopics {
			if len(branch.Subtopics) >= maxSubtopics || strings.TrimSpace(sub) == "" {
				continue
			}
			branch.Subtopics = append(branch.Subtopics, strings.TrimSpace(sub))
		}
		if len(branch.Subtopics) == 0 {
			// Pusta gałąź narusza niezmiennik mapy - uzupełniamy szablonem
			branch.Subtopics = append(branch.Subtopics, "Najważniejsze aspekty: "+branch.Topic)
		}
		mindMap.Branches = append(mindMap.Branches, branch)
	}

	return mindMap, true
}

func parseQuiz(response string) []models.QuizQuestion {
	var result struct {
		Questions []struct {
			Question    string   `json:"question"`
			Options     []string `json:"options"`
			Correct     int      `json:"correct"`
			Type        string   `json:"type"`
			Explanation string   `json:"explanation"`
		} `json:"questions"`
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(response)), &result); err != nil {
		return nil
	}

	var quiz []models.QuizQuestion
	for _, q := range result.Questions {
		if !validQuestion(q.Type, q.Options, q.Correct) || strings.TrimSpace(q.Question) == "" {
			continue
		}
		quiz = append(quiz, models.QuizQuestion{
			ID:          uuid.NewString(),
			Question:    strings.TrimSpace(q.Question),
			Options:     q.Options,
			Correct:     q.Correct,
			Type:        q.Type,
			Explanation: q.Explanation,
		})
		if len(quiz) >= MaxQuizQuestions {
			break
		}
	}
	return quiz
}

// validQuestion pilnuje niezmienników pytania: poprawny indeks i liczba
// opcji właściwa dla typu (4 dla multiple_choice/fill_blank, 2 dla
// true_false)
func validQuestion(qType string, options []string, correct int) bool {
	var want int
	switch qType {
	case models.QuestionMultipleChoice, models.QuestionFillBlank:
		want = 4
	case models.QuestionTrueFalse:
		want = 2
	default:
		return false
	}
	return len(options) == want && correct >= 0 && correct < want
}
