package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Data     DataConfig
	Assembly AssemblyAIConfig
	OpenAI   OpenAIConfig
	Workflow WorkflowConfig
}

// DataConfig holds the data directory layout root
type DataConfig struct {
	BaseDir string `envconfig:"SCRIBE_BASE_DIR" default:"."`
}

// AssemblyAIConfig holds AssemblyAI transcription configuration
type AssemblyAIConfig struct {
	APIKey string `envconfig:"ASSEMBLYAI_API_KEY"`
}

// OpenAIConfig holds configuration for the OpenAI-compatible suggestion API
type OpenAIConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY"`
	BaseURL string `envconfig:"OPENAI_API_BASE" default:"https://api.openai.com"`
	Model   string `envconfig:"OPENAI_SUGGEST_MODEL" default:"gpt-4o"`
}

// WorkflowConfig holds tunables for the meeting workflow
type WorkflowConfig struct {
	RequestTimeout      time.Duration `envconfig:"SCRIBE_REQUEST_TIMEOUT" default:"120s" validate:"gt=0"`
	MaxRetries          int           `envconfig:"SCRIBE_MAX_RETRIES" default:"3" validate:"gte=1,lte=10"`
	SavedDisplaySeconds int           `envconfig:"SCRIBE_SAVED_DISPLAY_SECONDS" default:"3" validate:"gte=0"`
	ErrorDisplaySeconds int           `envconfig:"SCRIBE_ERROR_DISPLAY_SECONDS" default:"5" validate:"gte=0"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg.Data); err != nil {
		return nil, fmt.Errorf("failed to process data config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Assembly); err != nil {
		return nil, fmt.Errorf("failed to process assemblyai config: %w", err)
	}
	if err := envconfig.Process("", &cfg.OpenAI); err != nil {
		return nil, fmt.Errorf("failed to process openai config: %w", err)
	}
	if err := envconfig.Process("", &cfg.Workflow); err != nil {
		return nil, fmt.Errorf("failed to process workflow config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c.Workflow); err != nil {
		return fmt.Errorf("invalid workflow config: %w", err)
	}
	if c.Data.BaseDir == "" {
		return fmt.Errorf("SCRIBE_BASE_DIR must not be empty")
	}
	return nil
}

// Paths is the on-disk layout rooted at the configured base directory.
type Paths struct {
	BaseDir            string
	DataBase           string
	ProjectWikisDir    string
	RecordingsDir      string
	TranscriptsDir     string
	SummariesDir       string
	WeeklySummariesDir string
	JSONNotesDir       string
	ProjectsDir        string
	HistoryFile        string
}

// Paths derives the full directory layout from the base directory.
func (c *Config) Paths() Paths {
	return NewPaths(c.Data.BaseDir)
}

// NewPaths builds the layout for an arbitrary base directory. Tests use
// this with a temporary directory.
func NewPaths(baseDir string) Paths {
	dataBase := filepath.Join(baseDir, "meeting_data_v2")
	summaries := filepath.Join(dataBase, "summaries")
	return Paths{
		BaseDir:            baseDir,
		DataBase:           dataBase,
		ProjectWikisDir:    filepath.Join(dataBase, "project_wikis"),
		RecordingsDir:      filepath.Join(dataBase, "recordings"),
		TranscriptsDir:     filepath.Join(dataBase, "transcripts"),
		SummariesDir:       summaries,
		WeeklySummariesDir: filepath.Join(summaries, "weekly"),
		JSONNotesDir:       filepath.Join(dataBase, "json_notes"),
		ProjectsDir:        filepath.Join(baseDir, "projects"),
		HistoryFile:        filepath.Join(dataBase, "meeting_history.json"),
	}
}

// All lists every directory the application relies on.
func (p Paths) All() []string {
	return []string{
		p.DataBase,
		p.ProjectWikisDir,
		p.RecordingsDir,
		p.TranscriptsDir,
		p.SummariesDir,
		p.WeeklySummariesDir,
		p.JSONNotesDir,
		p.ProjectsDir,
	}
}
