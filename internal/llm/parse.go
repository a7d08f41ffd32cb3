package llm

import "strings"

// ExtractJSON wycina pierwszy obiekt JSON z odpowiedzi modelu - modele
// lubią otaczać JSON komentarzem albo blokiem markdown
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return "{}"
	}
	return text[start : end+1]
}

// LimitContent przycina treść do maxLen znaków z wyraźnym znacznikiem
func LimitContent(content string, maxLen int) string {
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "\n[... skrócono ...]"
}
