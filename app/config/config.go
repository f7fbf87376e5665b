package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log           Log           `yaml:"log"`
	Gemini        Gemini        `yaml:"gemini"`
	CourtListener CourtListener `yaml:"courtlistener"`
	Congress      Congress      `yaml:"congress"`
	Research      Research      `yaml:"research"`
}

type Gemini struct {
	// API key, taken from GEMINI_API_KEY
	APIKey string `yaml:"-"`
	// Model used for identification and synthesis
	Model string `yaml:"model" example:"gemini-2.5-pro" validate:"required"`
	// Model to retry with when the primary model fails or returns nothing
	FallbackModel string `yaml:"fallback_model" example:"gemini-2.0-flash" validate:"required"`
}

type CourtListener struct {
	// API token, taken from COURTLISTENER_API_TOKEN
	Token string `yaml:"-"`
	// Base URL override, mainly for tests
	BaseURL string `yaml:"base_url"`
}

type Congress struct {
	// API key, taken from CONGRESS_API_KEY
	APIKey string `yaml:"-"`
	// Base URL override, mainly for tests
	BaseURL string `yaml:"base_url"`
}

type Research struct {
	// Directory research memos are written to
	OutputDir string `yaml:"output_dir" example:"output" validate:"required"`
	// Search results requested per identified case name
	CaseResults int `yaml:"case_results" example:"3" validate:"min=1"`
	// Search results requested per broad search query
	QueryResults int `yaml:"query_results" example:"5" validate:"min=1"`
	// Parallel lookups during the fetch stage
	FetchWorkers int `yaml:"fetch_workers" example:"5" validate:"min=1"`
}

type Log struct {
	// Optional JSON log file
	File string `yaml:"file" example:"conlaw.log"`
	// Telegram error alerting config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

// Load reads config.yaml (optional, defaults apply) and .env (optional),
// with API keys always coming from the environment.
func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil && !os.IsNotExist(err) {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	_ = godotenv.Load()

	result.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	result.CourtListener.Token = os.Getenv("COURTLISTENER_API_TOKEN")
	result.Congress.APIKey = os.Getenv("CONGRESS_API_KEY")

	applyDefaults(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-pro"
	}
	if cfg.Gemini.FallbackModel == "" {
		cfg.Gemini.FallbackModel = "gemini-2.0-flash"
	}
	if cfg.CourtListener.BaseURL == "" {
		cfg.CourtListener.BaseURL = "https://www.courtlistener.com/api/rest/v4"
	}
	if cfg.Congress.BaseURL == "" {
		cfg.Congress.BaseURL = "https://api.congress.gov/v3"
	}
	if cfg.Research.OutputDir == "" {
		cfg.Research.OutputDir = "output"
	}
	if cfg.Research.CaseResults == 0 {
		cfg.Research.CaseResults = 3
	}
	if cfg.Research.QueryResults == 0 {
		cfg.Research.QueryResults = 5
	}
	if cfg.Research.FetchWorkers == 0 {
		cfg.Research.FetchWorkers = 5
	}
}
