package llm

import (
	"fmt"
	"strings"
)

// MaxTextChars is the default number of characters of extracted text sent to the model.
const MaxTextChars = 6000

const SystemPrompt = "Você é um extrator preciso de informações de PDFs da XP/B3."

// FieldKeys are the JSON keys the model is asked to return, in prompt order.
var FieldKeys = []string{
	"data_pregao",
	"nota_numero",
	"valor_negocios",
	"total_custos",
	"irrf_proj",
	"total_liquido_nota",
}

const promptTemplate = `Extraia do texto abaixo os principais campos de uma nota de negociação B3 (XP):
- Data do pregão
- Número da nota
- Valor dos negócios
- Total de custos operacionais
- IRRF (projeção)
- Total líquido da nota
Retorne em JSON estruturado com os nomes das chaves exatamente assim:
%s
Texto extraído:
%s
`

// Truncate returns the first n characters of s. It counts code points, so a
// multi-byte character is never split.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BuildPrompt embeds the first maxChars characters of text into the fixed
// extraction instructions.
func BuildPrompt(text string, maxChars int) string {
	return fmt.Sprintf(promptTemplate, skeleton(), Truncate(text, maxChars))
}

func skeleton() string {
	parts := make([]string, len(FieldKeys))
	for i, k := range FieldKeys {
		parts[i] = fmt.Sprintf("%q: %q", k, "")
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}
