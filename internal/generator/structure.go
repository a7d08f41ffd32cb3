package generator

import (
	"context"
	"fmt"
	"strings"

	"edulearn/internal/analysis"
	"edulearn/internal/models"
)

// minimalna liczba sklasyfikowanych zdań, od której quiz budowany jest
// z samych faktów/procesów zamiast z całego tekstu
const minClassifiedForQuiz = 6

// StructureAware wzbogaca heurystykę o wykrytą strukturę dokumentu:
// streszczenia narracyjne z tytułami sekcji, gałęzie mapy myśli z
// nagłówków. Gdy dokument nie ma rozpoznawalnej struktury, strategia
// w całości deleguje do heurystyki.
type StructureAware struct {
	inner *Heuristic
}

// NewStructureAware opakowuje strategię heurystyczną
func NewStructureAware(inner *Heuristic) *StructureAware {
	return &StructureAware{inner: inner}
}

func (s *StructureAware) Name() string { return "structure" }

func (s *StructureAware) Summary(ctx context.Context, text string, keywords []string) (models.Summary, error) {
	structure := analysis.ParseStructure(text)
	if !structure.HasSections() {
		return s.inner.Summary(ctx, text, keywords)
	}

	heuristic, err := s.inner.Summary(ctx, text, keywords)
	if err != nil {
		return models.Summary{}, err
	}

	overview := sectionOverview(structure)

	// Krótkie streszczenie: przegląd sekcji plus pierwszy fakt
	short := overview
	if len(structure.KeyFacts) > 0 {
		short += " " + ensurePeriod(structure.KeyFacts[0])
	} else {
		short = overview + " " + heuristic.Short
	}

	return models.Summary{
		Short:  short,
		Medium: overview + " " + heuristic.Medium,
		Long:   overview + " " + heuristic.Long,
	}, nil
}

func (s *StructureAware) MindMap(ctx context.Context, text string, keywords []string) (models.MindMap, error) {
	structure := analysis.ParseStructure(text)
	if !structure.HasSections() {
		return s.inner.MindMap(ctx, text, keywords)
	}

	central := FallbackCentral
	if len(keywords) > 0 {
		central = CapitalizeFirst(keywords[0])
	}

	mindMap := models.MindMap{Central: central}
	for _, section := range structure.Sections {
		if len(mindMap.Branches) >= maxBranches {
			break
		}
		branch := models.Branch{Topic: CapitalizeFirst(strings.ToLower(section.Title))}
		for _, line := range section.Content {
			if len(branch.Subtopics) >= maxSubtopics {
				break
			}
			branch.Subtopics = append(branch.Subtopics, ExtractKeyPhrase(line))
		}
		if len(branch.Subtopics) == 0 {
			branch.Subtopics = append(branch.Subtopics, "Zawartość sekcji: "+branch.Topic)
		}
		mindMap.Branches = append(mindMap.Branches, branch)
	}

	// Nagłówków może być mniej niż gałęzi - resztę dokładają słowa kluczowe
	if len(mindMap.Branches) < maxBranches {
		fallback, err := s.inner.MindMap(ctx, text, keywords)
		if err != nil {
			return models.MindMap{}, err
		}
		for _, branch := range fallback.Branches {
			if len(mindMap.Branches) >= maxBranches {
				break
			}
			if !hasBranch(mindMap.Branches, branch.Topic) {
				mindMap.Branches = append(mindMap.Branches, branch)
			}
		}
	}

	return mindMap, nil
}

func (s *StructureAware) Quiz(ctx context.Context, text string, keywords []string) ([]models.QuizQuestion, error) {
	structure := analysis.ParseStructure(text)

	classified := append([]string{}, structure.KeyFacts...)
	classified = append(classified, structure.Processes...)
	classified = append(classified, structure.Classifications...)

	if len(classified) < minClassifiedForQuiz {
		return s.inner.Quiz(ctx, text, keywords)
	}
	return s.inner.quiz.BuildFromSentences(classified, keywords), nil
}

// sectionOverview buduje zdanie otwierające z tytułów sekcji
func sectionOverview(structure *analysis.DocumentStructure) string {
	titles := make([]string, 0, len(structure.Sections))
	for _, section := range structure.Sections {
		titles = append(titles, CapitalizeFirst(strings.ToLower(section.Title)))
		if len(titles) >= maxBranches {
			break
		}
	}
	return fmt.Sprintf("Dokument omawia następujące zagadnienia: %s.", strings.Join(titles, ", "))
}

func ensurePeriod(sentence string) string {
	trimmed := strings.TrimSpace(sentence)
	if strings.HasSuffix(trimmed, ".") {
		return trimmed
	}
	return trimmed + "."
}

func hasBranch(branches []models.Branch, topic string) bool {
	for _, b := range branches {
		if strings.EqualFold(b.Topic, topic) {
			return true
		}
	}
	return false
}
