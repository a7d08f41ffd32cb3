package generator

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"edulearn/internal/analysis"
	"edulearn/internal/models"
)

// Parametry syntezy quizu
const (
	MaxQuizQuestions = 10
	maxCandidates    = 12

	blankMarker     = "____"
	minTargetLen    = 5  // słowa krótsze niż 5 znaków nie nadają się na lukę
	mcCandidateSpan = 10 // losowy wybór celu tylko z pierwszych 10 kandydatów
	minMCWords      = 5
)

// wypełniacze dystraktorów, gdy słów kluczowych jest za mało
var genericDistractors = []string{"Nieznane", "Nie dotyczy", "Brak danych"}

// rotacja typów pytań: indeks kandydata modulo 3
var questionRotation = []string{
	models.QuestionMultipleChoice,
	models.QuestionTrueFalse,
	models.QuestionFillBlank,
}

// QuizBuilder syntetyzuje pytania quizowe ze zdań i słów kluczowych.
// Cała losowość pochodzi z wstrzykniętego źródła, więc testy mogą
// wymusić deterministyczny przebieg.
type QuizBuilder struct {
	rng *rand.Rand
}

// NewQuizBuilder tworzy builder z podanym źródłem losowości
func NewQuizBuilder(rng *rand.Rand) *QuizBuilder {
	return &QuizBuilder{rng: rng}
}

// Build generuje do 10 pytań. Kandydatów jest min(12, zdania/3); slot,
// dla którego nie da się zbudować pytania (za mało słów, brak słowa
// kluczowego), jest po prostu pomijany - lista może być krótsza.
func (b *QuizBuilder) Build(text string, keywords []string) []models.QuizQuestion {
	sentences := analysis.SentenceTexts(analysis.Segment(text, analysis.MinSentenceLen))
	return b.BuildFromSentences(sentences, keywords)
}

// BuildFromSentences działa jak Build, ale na gotowej liście zdań
// (używane przez wariant strukturalny)
func (b *QuizBuilder) BuildFromSentences(sentences []string, keywords []string) []models.QuizQuestion {
	if len(sentences) == 0 {
		return nil
	}

	candidates := len(sentences) / 3
	if candidates > maxCandidates {
		candidates = maxCandidates
	}

	var quiz []models.QuizQuestion
	for i := 0; i < candidates; i++ {
		sentence := sentences[i*3]

		var question *models.QuizQuestion
		switch questionRotation[i%len(questionRotation)] {
		case models.QuestionMultipleChoice:
			question = b.multipleChoice(sentence, keywords)
		case models.QuestionTrueFalse:
			question = b.trueFalse(sentence)
		case models.QuestionFillBlank:
			question = b.fillBlank(sentence, keywords)
		}

		if question != nil {
			quiz = append(quiz, *question)
		}
	}

	if len(quiz) > MaxQuizQuestions {
		quiz = quiz[:MaxQuizQuestions]
	}
	return quiz
}

// multipleChoice zamienia wybrane słowo na lukę i buduje 4 opcje:
// słowo docelowe plus 3 dystraktory z pozostałych słów kluczowych
func (b *QuizBuilder) multipleChoice(sentence string, keywords []string) *models.QuizQuestion {
	candidates := candidateWords(sentence)
	if len(candidates) < minMCWords {
		return nil
	}

	target := pickTarget(candidates, keywords, b.rng)
	question := blankOutAll(sentence, target)

	options := []string{target}
	for _, kw := range keywords {
		if len(options) >= 4 {
			break
		}
		if kw == strings.ToLower(target) {
			continue
		}
		options = append(options, CapitalizeFirst(kw))
	}
	for _, filler := range genericDistractors {
		if len(options) >= 4 {
			break
		}
		options = append(options, filler)
	}

	b.shuffle(options)
	correct := indexOf(options, target)

	return &models.QuizQuestion{
		ID:          uuid.NewString(),
		Question:    "Uzupełnij zdanie: " + question,
		Options:     options,
		Correct:     correct,
		Type:        models.QuestionMultipleChoice,
		Explanation: fmt.Sprintf("Prawidłowa odpowiedź to \"%s\" zgodnie z treścią dokumentu.", target),
	}
}

// trueFalse rzuca monetą: zdanie prawdziwe zostaje dosłownie, fałszywe
// przechodzi przez reguły mutacji (patrz mutations.go)
func (b *QuizBuilder) trueFalse(sentence string) *models.QuizQuestion {
	if b.rng.Intn(2) == 0 {
		return &models.QuizQuestion{
			ID:          uuid.NewString(),
			Question:    "Prawda czy fałsz: " + sentence,
			Options:     []string{"Prawda", "Fałsz"},
			Correct:     0,
			Type:        models.QuestionTrueFalse,
			Explanation: "To stwierdzenie jest prawdziwe według treści dokumentu.",
		}
	}

	return &models.QuizQuestion{
		ID:          uuid.NewString(),
		Question:    "Prawda czy fałsz: " + MutateToFalse(sentence, b.rng),
		Options:     []string{"Prawda", "Fałsz"},
		Correct:     1,
		Type:        models.QuestionTrueFalse,
		Explanation: "To stwierdzenie jest fałszywe - zostało zmodyfikowane w stosunku do treści dokumentu.",
	}
}

// fillBlank wymaga słowa, które zawiera słowo kluczowe; bez takiego
// słowa pytanie jest odrzucane. Błędne opcje powstają przez doklejanie
// przedrostków/przyrostków do poprawnej odpowiedzi (zachowanie zgodne
// z oryginałem), poprawna odpowiedź jest zawsze opcją 0.
func (b *QuizBuilder) fillBlank(sentence string, keywords []string) *models.QuizQuestion {
	target := ""
	for _, word := range strings.Fields(sentence) {
		cleaned := cleanWord(word)
		if len([]rune(cleaned)) < minTargetLen {
			continue
		}
		if containsKeyword(cleaned, keywords) {
			target = cleaned
			break
		}
	}
	if target == "" {
		return nil
	}

	question := strings.Replace(sentence, target, blankMarker, 1)

	return &models.QuizQuestion{
		ID:       uuid.NewString(),
		Question: "Uzupełnij: " + question,
		Options: []string{
			target,
			"Nie " + target,
			target + "y",
			"Bez " + target,
		},
		Correct:     0,
		Type:        models.QuestionFillBlank,
		Explanation: fmt.Sprintf("Prawidłowa odpowiedź to \"%s\".", target),
	}
}

func (b *QuizBuilder) shuffle(options []string) {
	for i := len(options) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}
}

// candidateWords zwraca słowa zdania dłuższe niż 4 znaki, oczyszczone
// z interpunkcji
func candidateWords(sentence string) []string {
	var words []string
	for _, word := range strings.Fields(sentence) {
		cleaned := cleanWord(word)
		if len([]rune(cleaned)) >= minTargetLen {
			words = append(words, cleaned)
		}
	}
	return words
}

// pickTarget preferuje słowo pasujące do słowa kluczowego; w przeciwnym
// razie losuje spośród pierwszych 10 kandydatów
func pickTarget(candidates []string, keywords []string, rng *rand.Rand) string {
	for _, word := range candidates {
		if containsKeyword(word, keywords) {
			return word
		}
	}
	span := len(candidates)
	if span > mcCandidateSpan {
		span = mcCandidateSpan
	}
	return candidates[rng.Intn(span)]
}

// blankOutAll zastępuje lukami wszystkie wystąpienia słowa, bez
// rozróżniania wielkości liter
func blankOutAll(sentence, target string) string {
	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(target))
	return pattern.ReplaceAllString(sentence, blankMarker)
}

func containsKeyword(word string, keywords []string) bool {
	lower := strings.ToLower(word)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func cleanWord(word string) string {
	return strings.Trim(word, `.,;:()"'`)
}

func indexOf(options []string, value string) int {
	for i, opt := range options {
		if opt == value {
			return i
		}
	}
	return 0
}
