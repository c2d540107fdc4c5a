// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Providers     ProvidersConfig    `mapstructure:"providers"`
	Mail          MailConfig         `mapstructure:"mail"`
	Search        SearchConfig       `mapstructure:"search"`
	Commerce      CommerceConfig     `mapstructure:"commerce"`
	Agents        AgentsConfig       `mapstructure:"agents"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	CallbackBaseURL string `mapstructure:"callback_base_url"`
	MetricsAddress  string `mapstructure:"metrics_address"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
	Index     string   `mapstructure:"index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// --- Generation Providers ---

// ProvidersConfig holds credentials and model identifiers for the hosted
// generation backends. Every API key listed here is required at process
// start when the corresponding provider is enabled.
type ProvidersConfig struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	TextModel  string `mapstructure:"text_model"`
	ImageModel string `mapstructure:"image_model"`
	VideoModel string `mapstructure:"video_model"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// --- SaaS capabilities ---

type MailConfig struct {
	Provider string `mapstructure:"provider"` // agentmail | ses
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	InboxID  string `mapstructure:"inbox_id"`

	AWS struct {
		Region    string `mapstructure:"region"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"aws"`
}

type SearchConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	EngineID string `mapstructure:"engine_id"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds
	MaxHits  int    `mapstructure:"max_hits"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

type CommerceConfig struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Scopes    string `mapstructure:"scopes"`
}

// --- Agent tasks ---

// AgentsConfig holds the per-task settings.
type AgentsConfig struct {
	Branding struct {
		Temperature float64 `mapstructure:"temperature"`
		ImageWidth  int     `mapstructure:"image_width"`
		ImageHeight int     `mapstructure:"image_height"`
	} `mapstructure:"branding"`

	LegalDocs struct {
		Temperature   float64 `mapstructure:"temperature"`
		DocumentCount int     `mapstructure:"document_count"`
	} `mapstructure:"legal_docs"`

	Research struct {
		MaxIterations int `mapstructure:"max_iterations"`
		Timeout       int `mapstructure:"timeout"` // milliseconds, whole task
	} `mapstructure:"research"`

	Support struct {
		Temperature float64 `mapstructure:"temperature"`
	} `mapstructure:"support"`

	Video struct {
		PollInterval    int `mapstructure:"poll_interval"` // milliseconds
		MaxPollAttempts int `mapstructure:"max_poll_attempts"`
		JobTTL          int `mapstructure:"job_ttl"` // seconds
	} `mapstructure:"video"`
}

// NotificationConfig holds settings for async-job completion callbacks.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
