package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON("Oto wynik: {\"a\": 1} - gotowe"))
	assert.Equal(t, `{"a": {"b": 2}}`, ExtractJSON(`{"a": {"b": 2}}`))
	assert.Equal(t, "{}", ExtractJSON("brak jsona w odpowiedzi"))
	assert.Equal(t, "{}", ExtractJSON("} odwrócone {"))
}

func TestLimitContent(t *testing.T) {
	short := "krotki tekst"
	assert.Equal(t, short, LimitContent(short, 100))

	long := strings.Repeat("x", 200)
	limited := LimitContent(long, 100)
	assert.True(t, strings.HasPrefix(limited, strings.Repeat("x", 100)))
	assert.True(t, strings.HasSuffix(limited, "[... skrócono ...]"))
}
