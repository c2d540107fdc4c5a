// internal/agents/legaldocs/models.go
package legaldocs

import (
	"strings"

	"venture-agents/internal/extract"
)

// Document is one bootstrap legal document. Placeholders lists the
// bracketed values the merchant must still fill in.
type Document struct {
	DocType      string                 `json:"doc_type"`
	Title        string                 `json:"title"`
	Summary      string                 `json:"summary"`
	Placeholders []string               `json:"placeholders"`
	DefaultsUsed map[string]interface{} `json:"defaults_used"`
	Content      string                 `json:"content"`
}

// Output is the finished deliverable: the full document set, or nothing.
type Output struct {
	Documents []Document `json:"documents"`
}

// documentTypes is the fixed drafting menu, in prompt order. The
// configured document count selects a prefix: 2 covers the store
// bootstrap pair, 3 adds the NDA.
var documentTypes = []struct {
	DocType string
	Name    string
}{
	{DocType: "privacy_policy_bootstrap", Name: "Privacy Policy"},
	{DocType: "website_terms_bootstrap", Name: "Website Terms of Use"},
	{DocType: "nda_bootstrap", Name: "Mutual Non-Disclosure Agreement"},
}

func docTypeEnum() []interface{} {
	enum := make([]interface{}, len(documentTypes))
	for i, dt := range documentTypes {
		enum[i] = dt.DocType
	}
	return enum
}

// documentList renders the first n document names for the prompt,
// joined the way the drafting instructions read them.
func documentList(n int) string {
	names := make([]string, 0, n)
	for _, dt := range documentTypes[:n] {
		names = append(names, dt.Name)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// documentSetSchema validates the reply as an array of documents. The
// exact-count requirement is applied per configured document count at
// call time.
func documentSetSchema(count int) extract.Schema {
	return extract.Schema{
		Name:          "legal_document_set",
		ExpectedCount: count,
		Definition: map[string]interface{}{
			"type": "array",
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"doc_type", "title", "summary", "content"},
				"properties": map[string]interface{}{
					"doc_type": map[string]interface{}{
						"type": "string",
						"enum": docTypeEnum(),
					},
					"title":   map[string]interface{}{"type": "string", "minLength": 1},
					"summary": map[string]interface{}{"type": "string"},
					"placeholders": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "string"},
					},
					"defaults_used": map[string]interface{}{"type": "object"},
					"content":       map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	}
}
