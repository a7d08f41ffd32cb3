package analysis

import (
	"regexp"
	"strings"
	"unicode"
)

// Parametry heurystyki struktury dokumentu. To strojone stałe,
// nie kontrakt - dokumenty PDF bywają bardzo różne.
const (
	headerUpperRatio  = 0.6
	headerMinLen      = 5
	headerMaxLen      = 50
	maxContentPerSect = 3
)

// sygnały treści "faktograficznej" w polskich materiałach dydaktycznych
var factSignals = []string{"jest to", "to znaczy", "oznacza", "definicja", "nazywamy", "polega na"}

// spójniki proceduralne wskazujące na opis procesu
var processSignals = []string{"najpierw", "następnie", "potem", "kolejno", "na końcu", "proces", "etap", "krok"}

var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)?%?`)

// Section to wykryty nagłówek wraz z przypisaną treścią
type Section struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// DocumentStructure zbiera wynik heurystycznej analizy struktury
type DocumentStructure struct {
	Sections        []Section `json:"sections"`
	KeyFacts        []string  `json:"key_facts"`
	Processes       []string  `json:"processes"`
	Classifications []string  `json:"classifications"`
	Numbers         []string  `json:"numbers"`
}

// HasSections informuje, czy wykryto jakiekolwiek nagłówki
func (d *DocumentStructure) HasSections() bool {
	return len(d.Sections) > 0
}

// ParseStructure wykrywa nagłówki sekcji i klasyfikuje zdania na fakty,
// procesy i klasyfikacje. Warstwa czysto heurystyczna: brak dopasowań
// nie jest błędem, tylko pustym wynikiem.
func ParseStructure(text string) *DocumentStructure {
	structure := &DocumentStructure{
		Numbers: numberPattern.FindAllString(text, -1),
	}

	var current *Section
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if isSectionHeader(trimmed) {
			if current != nil {
				structure.Sections = append(structure.Sections, *current)
			}
			current = &Section{Title: trimmed}
			continue
		}
		if current != nil && len(current.Content) < maxContentPerSect {
			current.Content = append(current.Content, trimmed)
		}
	}
	if current != nil {
		structure.Sections = append(structure.Sections, *current)
	}

	for _, s := range Segment(text, MinSentenceLen) {
		lower := strings.ToLower(s.Text)
		switch {
		case containsAny(lower, factSignals):
			structure.KeyFacts = append(structure.KeyFacts, s.Text)
		case containsAny(lower, processSignals):
			structure.Processes = append(structure.Processes, s.Text)
		case isClassification(s.Text):
			structure.Classifications = append(structure.Classifications, s.Text)
		}
	}

	return structure
}

// isSectionHeader uznaje linię za nagłówek, gdy ponad 60% jej liter
// to wielkie litery, a długość mieści się w przedziale 5-50 znaków
func isSectionHeader(line string) bool {
	runes := []rune(line)
	if len(runes) < headerMinLen || len(runes) > headerMaxLen {
		return false
	}

	letters, upper := 0, 0
	for _, r := range runes {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters == 0 {
		return false
	}
	return float64(upper)/float64(letters) > headerUpperRatio
}

// isClassification: dwukropek plus co najmniej 3 wielkie litery
func isClassification(sentence string) bool {
	if !strings.Contains(sentence, ":") {
		return false
	}
	upper := 0
	for _, r := range sentence {
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return upper >= 3
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
