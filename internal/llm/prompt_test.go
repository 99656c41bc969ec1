package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "abc", n: 10, want: "abc"},
		{name: "exact limit", in: "abcde", n: 5, want: "abcde"},
		{name: "cut", in: "abcdef", n: 3, want: "abc"},
		{name: "multibyte", in: "pregão líquido", n: 6, want: "pregão"},
		{name: "zero", in: "abc", n: 0, want: ""},
		{name: "empty", in: "", n: 5, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestBuildPrompt_ContainsKeysAndText(t *testing.T) {
	p := BuildPrompt("Nr. nota 998877", MaxTextChars)

	for _, k := range FieldKeys {
		assert.Contains(t, p, `"`+k+`": ""`)
	}
	for _, label := range []string{"Data do pregão", "Número da nota", "Valor dos negócios",
		"Total de custos operacionais", "IRRF (projeção)", "Total líquido da nota"} {
		assert.Contains(t, p, label)
	}
	assert.True(t, strings.HasSuffix(p, "Texto extraído:\nNr. nota 998877\n"))
}

func TestBuildPrompt_TruncatesAtBoundary(t *testing.T) {
	text := strings.Repeat("a", MaxTextChars) + "ZZZ-SHOULD-NOT-APPEAR"

	p := BuildPrompt(text, MaxTextChars)

	assert.Contains(t, p, strings.Repeat("a", MaxTextChars))
	assert.NotContains(t, p, "ZZZ")
}

func TestBuildPrompt_TruncatesRunes(t *testing.T) {
	text := strings.Repeat("ç", MaxTextChars+10)

	p := BuildPrompt(text, MaxTextChars)
	body := p[strings.Index(p, "Texto extraído:\n")+len("Texto extraído:\n"):]

	assert.Equal(t, MaxTextChars, utf8.RuneCountInString(strings.TrimSuffix(body, "\n")))
	assert.True(t, utf8.ValidString(p))
}
