// internal/agents/branding/models.go
package branding

import "venture-agents/internal/extract"

// BrandAssets is the validated payload extracted from the text model.
type BrandAssets struct {
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline"`
}

// Output is the finished branding deliverable. LogoRef is empty when
// logo generation failed; the invocation still completes.
type Output struct {
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline"`
	LogoRef   string `json:"logo_ref"`
}

var brandAssetsSchema = extract.Schema{
	Name: "brand_assets",
	Definition: map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"brand_name", "tagline"},
		"properties": map[string]interface{}{
			"brand_name": map[string]interface{}{"type": "string", "minLength": 1},
			"tagline":    map[string]interface{}{"type": "string", "minLength": 1},
		},
	},
}
