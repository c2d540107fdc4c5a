// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

// LoadRegistry reads an agent catalog from a JSON file.
func LoadRegistry(path string) (*AgentRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg AgentRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Default returns the built-in catalog matching the routes this service
// serves. Used when no registry file is configured.
func Default() *AgentRegistry {
	return &AgentRegistry{
		Version: "1.0.0",
		Agents: []Agent{
			{
				ID:          "branding",
				DisplayName: "Branding Agent",
				Description: "Generates a brand name, tagline and logo for a business idea",
				Endpoint:    "/api/branding",
				Method:      "POST",
				Providers:   []string{"gemini"},
				ErrorCodes:  []string{"TRANSPORT_ERROR", "EMPTY_RESPONSE", "EXTRACTION_FAILED", "SCHEMA_VIOLATION"},
				Tags:        []string{"branding", "image"},
			},
			{
				ID:          "legal_docs",
				DisplayName: "Legal Docs Agent",
				Description: "Drafts the bootstrap privacy policy and website terms for a store idea",
				Endpoint:    "/api/legal-docs",
				Method:      "POST",
				Providers:   []string{"gemini"},
				ErrorCodes:  []string{"TRANSPORT_ERROR", "EXTRACTION_FAILED", "COUNT_MISMATCH", "SCHEMA_VIOLATION"},
				Tags:        []string{"legal"},
			},
			{
				ID:          "research",
				DisplayName: "Research Agent",
				Description: "Runs a three-analyst market research crew and synthesizes one report",
				Endpoint:    "/api/research",
				Method:      "POST",
				Providers:   []string{"openai", "gemini", "google-cse"},
				ErrorCodes:  []string{"TRANSPORT_ERROR", "EXTRACTION_FAILED", "SCHEMA_VIOLATION"},
				Tags:        []string{"research", "search"},
			},
			{
				ID:          "brand_video",
				DisplayName: "Brand Video Agent",
				Description: "Generates a short promotional video for a brand, asynchronously",
				Endpoint:    "/api/branding/video",
				Method:      "POST",
				Async:       true,
				Providers:   []string{"gemini"},
				ErrorCodes:  []string{"TRANSPORT_ERROR", "GENERATION_TIMEOUT"},
				Tags:        []string{"branding", "video"},
			},
			{
				ID:          "support",
				DisplayName: "Support Reply Agent",
				Description: "Drafts and sends replies to inbound support email",
				Endpoint:    "/email/webhook",
				Method:      "POST",
				Providers:   []string{"gemini", "agentmail"},
				ErrorCodes:  []string{"TRANSPORT_ERROR", "MAIL_SEND_FAILED"},
				Tags:        []string{"support", "email"},
			},
		},
	}
}
