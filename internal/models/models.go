package models

import "time"

// Document reprezentuje przetworzony dokument PDF
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Content     string    `json:"content,omitempty"`
	PageCount   int       `json:"page_count"`
	UploadedAt  time.Time `json:"uploaded_at"`
	ProcessedAt time.Time `json:"processed_at,omitempty"`
}

// Summary zawiera streszczenia w trzech długościach
type Summary struct {
	Short  string `json:"short"`
	Medium string `json:"medium"`
	Long   string `json:"long"`
}

// ByTier zwraca streszczenie dla danego poziomu ("short", "medium", "long")
func (s Summary) ByTier(tier string) (string, bool) {
	switch tier {
	case "short":
		return s.Short, true
	case "medium":
		return s.Medium, true
	case "long":
		return s.Long, true
	}
	return "", false
}

// MindMap reprezentuje mapę myśli wygenerowaną z dokumentu
type MindMap struct {
	Central  string   `json:"central"`
	Branches []Branch `json:"branches"`
}

// Branch to gałąź mapy myśli z podtematami
type Branch struct {
	Topic     string   `json:"topic"`
	Subtopics []string `json:"subtopics"`
}

// Typy pytań quizowych
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
	QuestionFillBlank      = "fill_blank"
)

// QuizQuestion reprezentuje jedno pytanie quizowe.
// Correct to indeks poprawnej odpowiedzi w Options (liczony od zera).
type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Type        string   `json:"type"`
	Explanation string   `json:"explanation"`
}

// QuizAnswer zapisuje jedną udzieloną odpowiedź (tylko na czas sesji)
type QuizAnswer struct {
	QuestionIndex  int    `json:"question_index"`
	SelectedAnswer int    `json:"selected_answer"`
	CorrectAnswer  int    `json:"correct_answer"`
	IsCorrect      bool   `json:"is_correct"`
	Question       string `json:"question"`
	Explanation    string `json:"explanation"`
}

// QuizResult to podsumowanie ukończonego quizu
type QuizResult struct {
	TotalQuestions int          `json:"total_questions"`
	CorrectAnswers int          `json:"correct_answers"`
	WrongAnswers   int          `json:"wrong_answers"`
	Percentage     int          `json:"percentage"`
	Grade          string       `json:"grade"`
	PointsAwarded  int          `json:"points_awarded"`
	NewBadges      []string     `json:"new_badges,omitempty"`
	Improvements   []QuizAnswer `json:"improvements,omitempty"`
}

// Artifacts łączy wszystkie materiały wygenerowane z jednego dokumentu.
// Zestaw podmieniany jest zawsze w całości, nigdy częściowo.
type Artifacts struct {
	DocumentID string         `json:"document_id"`
	Keywords   []string       `json:"keywords"`
	Summary    Summary        `json:"summary"`
	MindMap    MindMap        `json:"mind_map"`
	Quiz       []QuizQuestion `json:"quiz"`
}

// UserProgress reprezentuje postęp użytkownika (punkty, poziom, odznaki)
type UserProgress struct {
	Points             int      `json:"points"`
	Level              string   `json:"level"`
	Badges             []string `json:"badges"`
	DocumentsProcessed int      `json:"documents_processed"`
	CompletedQuizzes   int      `json:"completed_quizzes"`
	Streak             int      `json:"streak"`
	LastStudyDay       string   `json:"last_study_day,omitempty"` // format RRRR-MM-DD
}

// HasBadge sprawdza, czy odznaka została już zdobyta
func (p *UserProgress) HasBadge(name string) bool {
	for _, b := range p.Badges {
		if b == name {
			return true
		}
	}
	return false
}

// Badge opisuje odznakę do zdobycia
type Badge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement string `json:"requirement"`
}

// RecentDocument to wpis na liście ostatnio przetworzonych dokumentów
type RecentDocument struct {
	Name      string    `json:"name"`
	Pages     int       `json:"pages"`
	Date      string    `json:"date"`
	Timestamp time.Time `json:"timestamp"`
}
