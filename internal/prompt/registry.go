// internal/prompt/registry.go
package prompt

// Template ids used by the agent tasks.
const (
	TemplateBrandingText      = "branding_text"
	TemplateBrandingLogo      = "branding_logo"
	TemplateBrandingVideo     = "branding_video"
	TemplateLegalDocs         = "legal_docs"
	TemplateMarketAnalyst     = "research_market_analyst"
	TemplateConsumerAnalyst   = "research_consumer_psychologist"
	TemplateCulturalAnalyst   = "research_cultural_strategist"
	TemplateResearchSynthesis = "research_synthesis"
	TemplateSupportReply      = "support_reply"
)

// builtinTemplates is the canonical prompt catalog. Keeping the texts here
// rather than inline at each call site keeps near-duplicate tasks from
// drifting apart and makes prompt changes reviewable without touching
// task code.
var builtinTemplates = []Template{
	{
		ID: TemplateBrandingText,
		Text: `You are a branding expert. Generate a set of branding assets based on the following idea:
IDEA: {{idea}}
Output a JSON object with the following fields:
- brand_name: A catchy and relevant brand name.
- tagline: A short and memorable tagline.`,
	},
	{
		ID:   TemplateBrandingLogo,
		Text: `Create a logo for a brand named '{{brand_name}}' with the tagline '{{tagline}}'. The logo should be modern and visually appealing.`,
	},
	{
		ID:   TemplateBrandingVideo,
		Text: `Create a short, energetic promotional video for a brand named '{{brand_name}}' with the tagline '{{tagline}}'. Show the brand name and tagline on screen. The style should be modern and visually appealing.`,
	},
	{
		ID: TemplateLegalDocs,
		Text: `You are a legal-docs drafting assistant for a simple online store MVP.

Input: a one-sentence business idea.
Output: exactly a JSON array of {{document_count}} items: {{document_list}}. Do not include explanations, comments, or extra keys outside the schema.

Rules:
- Infer the store name and what it sells from the idea; if missing, set [Store Name] and keep content generic.
- Use conservative, jurisdiction-agnostic defaults; add placeholders where needed.
- Write content in Markdown, with clear headings and short sections.

Each JSON item follows this schema:
doc_type: 'privacy_policy_bootstrap' | 'website_terms_bootstrap' | 'nda_bootstrap'
title: human-readable title
summary: 1-2 sentence purpose
placeholders: array of strings chosen from ['Company Name','Store Name','Website URL','Contact Email','Physical Address','Effective Date','Governing Law','DMCA Agent Email']
defaults_used: small object listing key defaults applied
content: Markdown string (no code fences)

Defaults:
- Privacy Policy: collects ['account info','order details','payment tokens (via processor)','basic analytics']; cookies = 'essential + analytics'; sell_data = false; share_with = ['payment processors','shipping carriers','analytics providers']; retention = 'as long as needed for orders and legal obligations'.
- Website Terms: license = 'limited, revocable, non-transferable'; liability_cap = 'amount paid in last 12 months'; arbitration = true; class_waiver = true.
- Mutual NDA (when requested): term = '2 years'; confidentiality obligations survive termination; obligations are mutual.

Now generate the output for this idea:
IDEA: {{idea}}`,
	},
	{
		ID: TemplateMarketAnalyst,
		Text: `You are a senior market analyst researching the competitive landscape for a new business.
BUSINESS IDEA: {{idea}}

Web search findings you may draw on:
{{search_results}}

Produce a JSON object with the following fields:
- landscape_summary: market landscape analysis covering market size, growth, key trends, market leaders and challengers, barriers to entry, and gaps.
- unique_value_proposition: a clear, compelling value proposition that differentiates this idea from competitors.
- recommended_tone_style: how the brand should present itself to stand out in this landscape.
Output only the JSON object.`,
	},
	{
		ID: TemplateConsumerAnalyst,
		Text: `You are a consumer psychologist profiling the target customer for a new business.
BUSINESS IDEA: {{idea}}

Web search findings you may draw on:
{{search_results}}

Produce a JSON object with the following fields:
- demographics: age ranges, income levels, geography, education, professional background, and household composition of the target customer.
- psychographics: core values, lifestyle patterns, shopping habits, aspirations, pain points, and emotional triggers.
- buying_motivators: decision-making process, key influencers, price sensitivity, brand loyalty patterns, and channel preferences.
Output only the JSON object.`,
	},
	{
		ID: TemplateCulturalAnalyst,
		Text: `You are a cultural brand strategist defining branding guidelines for a new business.
BUSINESS IDEA: {{idea}}

Web search findings you may draw on:
{{search_results}}

Produce a JSON object with the following fields:
- visual_identity: colors, typography, imagery style, and logo principles aligned with the target audience.
- tone_voice: brand personality, tone of voice, key messages, and communication style.
- cultural_guidelines: cultural considerations, do's and don'ts, regional preferences, and sensitivities to avoid.
- competitive_differentiation: what makes the brand unique and elements to avoid because competitors own them.
Output only the JSON object.`,
	},
	{
		ID: TemplateResearchSynthesis,
		Text: `You are a research director synthesizing three analyst reports into one market research deliverable.
BUSINESS IDEA: {{idea}}

MARKET ANALYSIS:
{{market_analysis}}

CONSUMER PROFILE:
{{consumer_profile}}

BRAND GUIDELINES:
{{brand_guidelines}}

An empty section above means that analyst failed; synthesize from what is present and leave the corresponding output fields empty.

Produce a JSON object with exactly these fields:
- target_customer_profile: object with demographics, psychographics, buying_motivators (strings).
- market_positioning: object with landscape_summary, unique_value_proposition, recommended_tone_style (strings).
- branding_protocol: object with visual_identity, tone_voice, cultural_guidelines, competitive_differentiation (strings).
Output only the JSON object.`,
	},
	{
		ID: TemplateSupportReply,
		Text: `You are a customer support assistant for an e-commerce platform. A user has sent the following email:
Subject: {{subject}}
From: {{name}} <{{address}}>
Message: {{body}}
Please draft a polite and helpful response addressing their concerns. Keep the response concise and professional.`,
	},
}
