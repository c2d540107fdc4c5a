// internal/agents/research/models.go
package research

import "venture-agents/internal/extract"

// ==========================
// Analyst outputs
// ==========================

// MarketAnalysis is the market analyst's validated output.
type MarketAnalysis struct {
	LandscapeSummary       string `json:"landscape_summary"`
	UniqueValueProposition string `json:"unique_value_proposition"`
	RecommendedToneStyle   string `json:"recommended_tone_style"`
}

// ConsumerProfile is the consumer psychologist's validated output.
type ConsumerProfile struct {
	Demographics     string `json:"demographics"`
	Psychographics   string `json:"psychographics"`
	BuyingMotivators string `json:"buying_motivators"`
}

// BrandGuidelines is the cultural strategist's validated output.
type BrandGuidelines struct {
	VisualIdentity             string `json:"visual_identity"`
	ToneVoice                  string `json:"tone_voice"`
	CulturalGuidelines         string `json:"cultural_guidelines"`
	CompetitiveDifferentiation string `json:"competitive_differentiation"`
}

// ==========================
// Synthesis output
// ==========================

type TargetCustomerProfile struct {
	Demographics     string `json:"demographics"`
	Psychographics   string `json:"psychographics"`
	BuyingMotivators string `json:"buying_motivators"`
}

type MarketPositioning struct {
	LandscapeSummary       string `json:"landscape_summary"`
	UniqueValueProposition string `json:"unique_value_proposition"`
	RecommendedToneStyle   string `json:"recommended_tone_style"`
}

type BrandingProtocol struct {
	VisualIdentity             string `json:"visual_identity"`
	ToneVoice                  string `json:"tone_voice"`
	CulturalGuidelines         string `json:"cultural_guidelines"`
	CompetitiveDifferentiation string `json:"competitive_differentiation"`
}

// Output is the synthesized research report. When every analyst failed
// the report is returned with all fields empty so downstream callers
// always see the full shape.
type Output struct {
	TargetCustomerProfile TargetCustomerProfile `json:"target_customer_profile"`
	MarketPositioning     MarketPositioning     `json:"market_positioning"`
	BrandingProtocol      BrandingProtocol      `json:"branding_protocol"`
}

// ==========================
// Schemas
// ==========================

func stringObjectSchema(name string, fields ...string) extract.Schema {
	required := make([]interface{}, 0, len(fields))
	properties := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		required = append(required, field)
		properties[field] = map[string]interface{}{"type": "string"}
	}
	return extract.Schema{
		Name: name,
		Definition: map[string]interface{}{
			"type":       "object",
			"required":   required,
			"properties": properties,
		},
	}
}

var (
	marketAnalysisSchema  = stringObjectSchema("market_analysis", "landscape_summary", "unique_value_proposition", "recommended_tone_style")
	consumerProfileSchema = stringObjectSchema("consumer_profile", "demographics", "psychographics", "buying_motivators")
	brandGuidelinesSchema = stringObjectSchema("brand_guidelines", "visual_identity", "tone_voice", "cultural_guidelines", "competitive_differentiation")

	researchReportSchema = extract.Schema{
		Name: "research_report",
		Definition: map[string]interface{}{
			"type":     "object",
			"required": []interface{}{"target_customer_profile", "market_positioning", "branding_protocol"},
			"properties": map[string]interface{}{
				"target_customer_profile": map[string]interface{}{"type": "object"},
				"market_positioning":      map[string]interface{}{"type": "object"},
				"branding_protocol":       map[string]interface{}{"type": "object"},
			},
		},
	}
)
