package gamification

import (
	"log"
	"sync"
	"time"

	"edulearn/internal/models"
	"edulearn/internal/storage"
)

// Punkty przyznawane za poszczególne aktywności
const (
	PointsDocument   = 10
	PointsMindMap    = 25
	PointsSummary    = 15
	PointsPerCorrect = 3
)

// Poziomy użytkownika i progi punktowe
const (
	LevelBeginner     = "Początkujący"
	LevelIntermediate = "Średniozaawansowany"
	LevelAdvanced     = "Zaawansowany"
	LevelExpert       = "Ekspert"

	thresholdIntermediate = 200
	thresholdAdvanced     = 500
	thresholdExpert       = 1000
)

// Wymagania odznak
const (
	ReqUploadPDF     = "uploadPdf"
	ReqCreateMindMap = "createMindMap"
	ReqScore80       = "score80"
	ReqPerfectScore  = "perfectScore"
	ReqStreak7       = "streak7"
)

// Badges to katalog odznak możliwych do zdobycia
var Badges = []models.Badge{
	{Name: "PDF Master", Description: "Przetworzył pierwszy dokument PDF", Icon: "📄", Requirement: ReqUploadPDF},
	{Name: "Mind Map Creator", Description: "Stworzył pierwszą mapę myśli", Icon: "🧠", Requirement: ReqCreateMindMap},
	{Name: "Quiz Champion", Description: "Uzyskał wynik powyżej 80%", Icon: "🏆", Requirement: ReqScore80},
	{Name: "Perfectionist", Description: "Uzyskał 100% w quizie", Icon: "⭐", Requirement: ReqPerfectScore},
	{Name: "Streaker", Description: "Uczył się przez 7 dni z rzędu", Icon: "🔥", Requirement: ReqStreak7},
}

const dayFormat = "2006-01-02"

// Tracker zarządza punktami, poziomami i odznakami. Stan jest ładowany
// przy starcie i zapisywany po każdej zmianie; punkty nigdy nie maleją.
type Tracker struct {
	store storage.Storage
	now   func() time.Time

	mu       sync.Mutex
	progress *models.UserProgress
}

// NewTracker ładuje postęp z magazynu (brak lub uszkodzony wpis to stan
// początkowy) i tworzy tracker
func NewTracker(store storage.Storage) *Tracker {
	progress, err := store.LoadProgress()
	if err != nil {
		log.Printf("⚠️ Nie udało się wczytać postępu, zaczynam od zera: %v", err)
		progress = &models.UserProgress{Level: LevelBeginner}
	}
	return &Tracker{
		store:    store,
		now:      time.Now,
		progress: progress,
	}
}

// SetClock podmienia źródło czasu (testy serii dni)
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Progress zwraca kopię aktualnego stanu
func (t *Tracker) Progress() models.UserProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := *t.progress
	snapshot.Badges = append([]string(nil), t.progress.Badges...)
	return snapshot
}

// RegisterDocument odnotowuje przetworzony dokument: punkty, licznik,
// seria dni nauki i ewentualne odznaki. Zwraca nowo zdobyte odznaki.
func (t *Tracker) RegisterDocument() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.progress.DocumentsProcessed++
	t.addPoints(PointsDocument)
	t.updateStreak()

	badges := t.award(ReqUploadPDF)
	if t.progress.Streak >= 7 {
		badges = append(badges, t.award(ReqStreak7)...)
	}

	t.save()
	return badges
}

// MindMapViewed przyznaje punkty za obejrzenie mapy myśli
func (t *Tracker) MindMapViewed() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.addPoints(PointsMindMap)
	badges := t.award(ReqCreateMindMap)
	t.save()
	return badges
}

// SummaryViewed przyznaje punkty za obejrzenie streszczenia
func (t *Tracker) SummaryViewed() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.addPoints(PointsSummary)
	t.save()
}

// CompleteQuiz rozlicza ukończony quiz: punkty za poprawne odpowiedzi,
// procent, ocena i odznaki za wynik
func (t *Tracker) CompleteQuiz(correct, total int) models.QuizResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := models.QuizResult{
		TotalQuestions: total,
		CorrectAnswers: correct,
		WrongAnswers:   total - correct,
		PointsAwarded:  correct * PointsPerCorrect,
	}
	if total > 0 {
		result.Percentage = int(float64(correct)/float64(total)*100 + 0.5)
	}
	result.Grade = GradeFromPercentage(result.Percentage)

	t.progress.CompletedQuizzes++
	t.addPoints(result.PointsAwarded)

	if result.Percentage >= 80 {
		result.NewBadges = append(result.NewBadges, t.award(ReqScore80)...)
	}
	if result.Percentage == 100 {
		result.NewBadges = append(result.NewBadges, t.award(ReqPerfectScore)...)
	}

	t.save()
	return result
}

// addPoints dodaje punkty i aktualizuje poziom; wywołujący trzyma mutex
func (t *Tracker) addPoints(points int) {
	if points <= 0 {
		return
	}
	t.progress.Points += points

	newLevel := LevelForPoints(t.progress.Points)
	if newLevel != t.progress.Level {
		t.progress.Level = newLevel
		log.Printf("🆙 Nowy poziom: %s", newLevel)
	}
}

// award przyznaje odznakę o danym wymaganiu, o ile nie została jeszcze
// zdobyta; zbiór odznak tylko rośnie
func (t *Tracker) award(requirement string) []string {
	for _, badge := range Badges {
		if badge.Requirement != requirement {
			continue
		}
		if t.progress.HasBadge(badge.Name) {
			return nil
		}
		t.progress.Badges = append(t.progress.Badges, badge.Name)
		log.Printf("%s Nowa odznaka: %s - %s", badge.Icon, badge.Name, badge.Description)
		return []string{badge.Name}
	}
	return nil
}

// updateStreak pilnuje serii kolejnych dni nauki
func (t *Tracker) updateStreak() {
	today := t.now().Format(dayFormat)
	yesterday := t.now().AddDate(0, 0, -1).Format(dayFormat)

	switch t.progress.LastStudyDay {
	case today:
		// druga aktywność tego samego dnia nie zmienia serii
	case yesterday:
		t.progress.Streak++
	default:
		t.progress.Streak = 1
	}
	t.progress.LastStudyDay = today
}

func (t *Tracker) save() {
	if err := t.store.SaveProgress(t.progress); err != nil {
		// Błąd zapisu nie może blokować generacji
		log.Printf("⚠️ Nie udało się zapisać postępu: %v", err)
	}
}

// LevelForPoints wyznacza poziom dla danej liczby punktów
func LevelForPoints(points int) string {
	switch {
	case points >= thresholdExpert:
		return LevelExpert
	case points >= thresholdAdvanced:
		return LevelAdvanced
	case points >= thresholdIntermediate:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}

// GradeFromPercentage mapuje procent poprawnych odpowiedzi na polską
// ocenę szkolną
func GradeFromPercentage(percentage int) string {
	switch {
	case percentage >= 95:
		return "5.0 (Celujący)"
	case percentage >= 85:
		return "4.5 (Bardzo dobry+)"
	case percentage >= 75:
		return "4.0 (Bardzo dobry)"
	case percentage >= 65:
		return "3.5 (Dobry+)"
	case percentage >= 55:
		return "3.0 (Dobry)"
	case percentage >= 45:
		return "2.5 (Dostateczny+)"
	case percentage >= 35:
		return "2.0 (Dostateczny)"
	default:
		return "1.0 (Niedostateczny)"
	}
}
