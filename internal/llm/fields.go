package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// NotaFields is the record the prompt asks the model for.
type NotaFields struct {
	DataPregao       string `json:"data_pregao"`
	NotaNumero       string `json:"nota_numero"`
	ValorNegocios    string `json:"valor_negocios"`
	TotalCustos      string `json:"total_custos"`
	IRRFProj         string `json:"irrf_proj"`
	TotalLiquidoNota string `json:"total_liquido_nota"`
}

// Fields is either a parsed NotaFields (Note != nil) or the raw model text
// with the reason it did not parse.
type Fields struct {
	Note *NotaFields
	Raw  string
	Err  error
}

func (f Fields) Parsed() bool { return f.Note != nil }

const notaSchema = `{
  "type": "object",
  "required": ["data_pregao", "nota_numero", "valor_negocios", "total_custos", "irrf_proj", "total_liquido_nota"],
  "properties": {
    "data_pregao":        {"type": ["string", "null"]},
    "nota_numero":        {"type": ["string", "null"]},
    "valor_negocios":     {"type": ["string", "null"]},
    "total_custos":       {"type": ["string", "null"]},
    "irrf_proj":          {"type": ["string", "null"]},
    "total_liquido_nota": {"type": ["string", "null"]}
  }
}`

var compiledNotaSchema = jsonschema.MustCompileString("nota.json", notaSchema)

// ParseFields checks model output against the six-key schema. It never
// alters the text; callers keep returning Raw verbatim.
func ParseFields(content string) Fields {
	out := Fields{Raw: content}

	body := stripCodeFence(content)
	var v any
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		out.Err = fmt.Errorf("decode model output: %w", err)
		return out
	}
	if err := compiledNotaSchema.Validate(v); err != nil {
		out.Err = fmt.Errorf("model output does not match schema: %w", err)
		return out
	}

	var nf NotaFields
	if err := json.Unmarshal([]byte(body), &nf); err != nil {
		out.Err = fmt.Errorf("decode nota fields: %w", err)
		return out
	}
	out.Note = &nf
	return out
}

// stripCodeFence removes a surrounding ```json ... ``` block, which chat
// models often add around JSON answers.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
