// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GEMINI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or any ancestor holding go.mod.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig applies direct env fallbacks for values that are still
// empty after expansion.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Providers.Gemini.APIKey == "" {
		if val := os.Getenv("GEMINI_API_KEY"); val != "" {
			cfg.Providers.Gemini.APIKey = val
		}
	}
	if cfg.Providers.OpenAI.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Providers.OpenAI.APIKey = val
		}
	}

	if cfg.Mail.APIKey == "" {
		if val := os.Getenv("AGENT_MAIL_API_KEY"); val != "" {
			cfg.Mail.APIKey = val
		}
	}
	if cfg.Mail.InboxID == "" {
		if val := os.Getenv("AGENT_MAIL_INBOX"); val != "" {
			cfg.Mail.InboxID = val
		}
	}

	if cfg.Search.APIKey == "" {
		if val := os.Getenv("WEB_SEARCH_API_KEY"); val != "" {
			cfg.Search.APIKey = val
		}
	}
	if cfg.Search.EngineID == "" {
		if val := os.Getenv("WEB_SEARCH_ENGINE_ID"); val != "" {
			cfg.Search.EngineID = val
		}
	}

	if cfg.Commerce.APIKey == "" {
		if val := os.Getenv("SHOPIFY_API_KEY"); val != "" {
			cfg.Commerce.APIKey = val
		}
	}
	if cfg.Commerce.APISecret == "" {
		if val := os.Getenv("SHOPIFY_API_SECRET"); val != "" {
			cfg.Commerce.APISecret = val
		}
	}

	if cfg.Server.CallbackBaseURL == "" {
		if val := os.Getenv("CALLBACK_BASE_URL"); val != "" {
			cfg.Server.CallbackBaseURL = val
		}
	}

	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields.
// Model identifiers default to the generation backends the product launched on.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = ":9090"
	}

	if cfg.Providers.Gemini.TextModel == "" {
		cfg.Providers.Gemini.TextModel = "gemini-2.0-flash"
	}
	if cfg.Providers.Gemini.ImageModel == "" {
		cfg.Providers.Gemini.ImageModel = "gemini-2.5-flash"
	}
	if cfg.Providers.Gemini.VideoModel == "" {
		cfg.Providers.Gemini.VideoModel = "veo-3.0-generate-001"
	}
	if cfg.Providers.Gemini.Timeout == 0 {
		cfg.Providers.Gemini.Timeout = 60000
	}
	if cfg.Providers.OpenAI.Model == "" {
		cfg.Providers.OpenAI.Model = "gpt-4o"
	}
	if cfg.Providers.OpenAI.Timeout == 0 {
		cfg.Providers.OpenAI.Timeout = 60000
	}

	if cfg.Mail.Provider == "" {
		cfg.Mail.Provider = "agentmail"
	}

	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 10000
	}
	if cfg.Search.MaxHits == 0 {
		cfg.Search.MaxHits = 3
	}
	if cfg.Search.CacheTTL == 0 {
		cfg.Search.CacheTTL = 900
	}

	if cfg.Agents.Branding.Temperature == 0 {
		cfg.Agents.Branding.Temperature = 0.7
	}
	if cfg.Agents.Branding.ImageWidth == 0 {
		cfg.Agents.Branding.ImageWidth = 512
	}
	if cfg.Agents.Branding.ImageHeight == 0 {
		cfg.Agents.Branding.ImageHeight = 512
	}
	if cfg.Agents.LegalDocs.Temperature == 0 {
		cfg.Agents.LegalDocs.Temperature = 0.3
	}
	if cfg.Agents.LegalDocs.DocumentCount == 0 {
		cfg.Agents.LegalDocs.DocumentCount = 2
	}
	if cfg.Agents.Research.MaxIterations == 0 {
		cfg.Agents.Research.MaxIterations = 2
	}
	if cfg.Agents.Research.Timeout == 0 {
		cfg.Agents.Research.Timeout = 300000
	}
	if cfg.Agents.Support.Temperature == 0 {
		cfg.Agents.Support.Temperature = 0.5
	}
	if cfg.Agents.Video.PollInterval == 0 {
		cfg.Agents.Video.PollInterval = 10000
	}
	if cfg.Agents.Video.MaxPollAttempts == 0 {
		cfg.Agents.Video.MaxPollAttempts = 30
	}
	if cfg.Agents.Video.JobTTL == 0 {
		cfg.Agents.Video.JobTTL = 3600
	}

	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "research-reports"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields. A missing provider
// key is a fatal startup error, never a per-request one.
func validateConfig(cfg *Config) error {
	if cfg.Providers.Gemini.APIKey == "" {
		return fmt.Errorf("providers.gemini.api_key is required")
	}
	if cfg.Providers.OpenAI.APIKey == "" {
		return fmt.Errorf("providers.openai.api_key is required")
	}
	if cfg.Mail.APIKey == "" && cfg.Mail.Provider == "agentmail" {
		return fmt.Errorf("mail.api_key is required for the agentmail provider")
	}
	if cfg.Search.APIKey == "" {
		return fmt.Errorf("search.api_key is required")
	}
	if cfg.Server.CallbackBaseURL == "" {
		return fmt.Errorf("server.callback_base_url is required")
	}

	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if len(cfg.Database.Elasticsearch.Addresses) == 0 && cfg.Database.Elasticsearch.URL == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required")
	}

	if cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
