// internal/models/api.go
package models

// Request and response shapes for the HTTP surface. Agent packages own
// their internal task types; these are only what crosses the wire.

// ==========================
// Requests
// ==========================

// IdeaRequest is the common input for idea-driven tasks.
type IdeaRequest struct {
	Idea string `json:"idea"`
}

// VideoRequest starts an asynchronous brand-video generation.
type VideoRequest struct {
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline"`
}

// InboundEmail is the webhook payload delivered by the mail provider
// when a message arrives in the support inbox.
type InboundEmail struct {
	Message struct {
		Subject string `json:"subject"`
		From    string `json:"from_"`
		Text    string `json:"text"`
	} `json:"message"`
}

// ==========================
// Responses
// ==========================

type BrandingResponse struct {
	BrandName string `json:"brand_name"`
	Tagline   string `json:"tagline"`
	LogoRef   string `json:"logo_ref"`
}

type LegalDocument struct {
	DocType      string                 `json:"doc_type"`
	Title        string                 `json:"title"`
	Summary      string                 `json:"summary"`
	Placeholders []string               `json:"placeholders"`
	DefaultsUsed map[string]interface{} `json:"defaults_used"`
	Content      string                 `json:"content"`
}

type LegalDocsResponse struct {
	Documents []LegalDocument `json:"documents"`
}

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

type ResearchResponse struct {
	TargetCustomerProfile TargetCustomerProfile `json:"target_customer_profile"`
	MarketPositioning     MarketPositioning     `json:"market_positioning"`
	BrandingProtocol      BrandingProtocol      `json:"branding_protocol"`
}

// VideoJobResponse reports the state of one async video job.
type VideoJobResponse struct {
	JobID    string `json:"job_id"`
	Status   string `json:"status"`
	AssetRef string `json:"asset_ref,omitempty"`
	Error    string `json:"error,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
