// pkg/registry/schema.go
package registry

// AgentRegistry is the machine-readable catalog of agent tasks this
// service exposes.
type AgentRegistry struct {
	Version     string  `json:"version"`
	LastUpdated string  `json:"lastUpdated"`
	Agents      []Agent `json:"agents"`
}

type Agent struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"displayName"`
	Description string   `json:"description"`
	Endpoint    string   `json:"endpoint"`
	Method      string   `json:"method"`
	Async       bool     `json:"async"`
	Providers   []string `json:"providers"`
	ErrorCodes  []string `json:"errorCodes"`
	Tags        []string `json:"tags"`
}
