package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"edulearn/internal/models"
)

// MinExtractedChars to próg udanej ekstrakcji. Poniżej niego dokument
// jest najpewniej zeskanowany albo zabezpieczony.
const MinExtractedChars = 50

// ErrNoText sygnalizuje dokument bez warstwy tekstowej
var ErrNoText = errors.New("nie udało się wyekstrahować tekstu: dokument zeskanowany lub zabezpieczony")

// Parser ekstrahuje tekst z dokumentów PDF
type Parser struct{}

// NewParser tworzy nowy parser PDF
func NewParser() *Parser {
	return &Parser{}
}

// ParseFromReader ekstrahuje tekst z przesłanego PDF-a. Strony są czytane
// sekwencyjnie (zachowana kolejność, ograniczona pamięć); błąd pojedynczej
// strony jest logowany i pomijany, nie przerywa całego dokumentu.
func (p *Parser) ParseFromReader(reader io.Reader, filename string) (*models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("błąd odczytu pliku: %w", err)
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("błąd otwierania PDF: %w", err)
	}

	totalPages := r.NumPage()
	var content strings.Builder

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("   ⚠️ Błąd strony %d/%d, pomijam: %v", pageNum, totalPages, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		content.WriteString(text)
		content.WriteString("\n")
	}

	extracted := strings.TrimSpace(content.String())

	doc := &models.Document{
		ID:          uuid.NewString(),
		Name:        filename,
		Content:     extracted,
		PageCount:   totalPages,
		UploadedAt:  time.Now(),
		ProcessedAt: time.Now(),
	}

	if len(extracted) < MinExtractedChars {
		return doc, ErrNoText
	}
	return doc, nil
}
