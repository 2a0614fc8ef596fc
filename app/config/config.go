package config

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config.yaml"
	PathEnv     = "POLITIX_CONFIG"

	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderProse  = "prose"
	ProviderMCP    = "mcp"
)

type Config struct {
	Log        Log        `yaml:"log"`
	Bot        Bot        `yaml:"bot"`
	Resources  Resources  `yaml:"resources"`
	Classifier Classifier `yaml:"classifier"`
	Embedding  Embedding  `yaml:"embedding"`
	Entities   Entities   `yaml:"entities"`
	Metrics    Metrics    `yaml:"metrics"`
}

type Bot struct {
	// Name printed in front of every reply
	Name string `yaml:"name" example:"Politix Chatbot" validate:"required"`
	// Prompt printed before reading user input
	Prompt string `yaml:"prompt" example:"You: "`
	// Greeting printed once at startup
	Greeting string `yaml:"greeting" example:"Hi! I'm your political chatbot. Ask me anything about politics."`
}

type Resources struct {
	// Path to the responses JSON, embedded table is used when empty
	Responses string `yaml:"responses" example:"data/responses.json"`
	// Path to the Q&A dataset JSON, embedded dataset is used when empty
	QA string `yaml:"qa" example:"data/qa_dataset.json"`
}

type Classifier struct {
	// Zero-shot backend: none, openai or ollama
	Provider string `yaml:"provider" example:"openai" validate:"oneof=none openai ollama"`
	// Minimum top score to accept a label
	MinScore float64 `yaml:"min_score" example:"0.4" validate:"gte=0,lte=1"`
	// Per call timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
	Model   ModelConfig   `yaml:"model"`
}

type Embedding struct {
	// Embedding backend: none, openai or ollama
	Provider string `yaml:"provider" example:"ollama" validate:"oneof=none openai ollama"`
	// Minimum cosine similarity to accept a stored question
	Threshold float64 `yaml:"threshold" example:"0.7" validate:"gte=-1,lte=1"`
	// Per call timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
	Model   ModelConfig   `yaml:"model"`
}

type ModelConfig struct {
	// Model server base url
	BaseURL string `yaml:"base_url" example:"https://openrouter.ai/api/v1"`
	// API token, not needed for ollama
	Token string `yaml:"token" example:"sk-proj-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX"`
	// Model name
	Model string `yaml:"model" example:"all-minilm"`
}

type Entities struct {
	// Entity extraction backend: none, prose or mcp
	Provider string `yaml:"provider" example:"prose" validate:"oneof=none prose mcp"`
	// Per call timeout
	Timeout time.Duration `yaml:"timeout" example:"30s"`
	MCP     MCPServer     `yaml:"mcp"`
}

type MCPServer struct {
	// Command starting the MCP server
	Command string `yaml:"command" example:"docker"`
	// Command arguments
	Args []string `yaml:"args" example:"[run, --rm, -i, mcp/spacy]"`
	// Tool returning entities for a text
	Tool string `yaml:"tool" example:"extract_entities"`
}

type Metrics struct {
	// Prometheus textfile written on exit, disabled when empty
	Textfile string `yaml:"textfile" example:"/var/lib/node_exporter/politix.prom"`
}

type Log struct {
	// Console log level: debug, info, warn, error
	Level string `yaml:"level" example:"info" validate:"oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

// Load reads the config from POLITIX_CONFIG or config.yaml. A missing file is not an error,
// every field has a usable default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to load .env: %w", err)
	}

	path := os.Getenv(PathEnv)
	if path == "" {
		path = DefaultPath
	}

	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	result := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return nil, oops.With("path", path).Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(expandEnvVars(data), &result); err != nil {
		return nil, oops.With("path", path).Errorf("failed to parse YAML config: %w", err)
	}

	result.ApplyDefaults()

	if err = result.Validate(); err != nil {
		return nil, oops.With("path", path).Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

// Default returns a config with every default applied. Numeric thresholds are set here rather
// than in ApplyDefaults so that an explicit 0 in the file is kept.
func Default() Config {
	var c Config
	c.Classifier.MinScore = 0.4
	c.Embedding.Threshold = 0.7
	c.ApplyDefaults()

	return c
}

// ApplyDefaults fills empty string and duration fields.
func (c *Config) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Bot.Name == "" {
		c.Bot.Name = "Politix Chatbot"
	}
	if c.Bot.Prompt == "" {
		c.Bot.Prompt = "You: "
	}
	if c.Bot.Greeting == "" {
		c.Bot.Greeting = "Hi! I'm your political chatbot. Ask me anything about politics."
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = ProviderNone
	}
	if c.Classifier.Timeout <= 0 {
		c.Classifier.Timeout = 30 * time.Second
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderNone
	}
	if c.Embedding.Timeout <= 0 {
		c.Embedding.Timeout = 30 * time.Second
	}
	if c.Embedding.Provider == ProviderOllama && c.Embedding.Model.BaseURL == "" {
		c.Embedding.Model.BaseURL = "http://localhost:11434/api"
	}
	if c.Classifier.Provider == ProviderOllama && c.Classifier.Model.BaseURL == "" {
		c.Classifier.Model.BaseURL = "http://localhost:11434"
	}
	if c.Entities.Provider == "" {
		c.Entities.Provider = ProviderProse
	}
	if c.Entities.Timeout <= 0 {
		c.Entities.Timeout = 30 * time.Second
	}
	if c.Entities.MCP.Tool == "" {
		c.Entities.MCP.Tool = "extract_entities"
	}
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Classifier.Provider != ProviderNone && c.Classifier.Model.Model == "" {
		return oops.Errorf("classifier.model.model is required for provider %q", c.Classifier.Provider)
	}
	if c.Embedding.Provider != ProviderNone && c.Embedding.Model.Model == "" {
		return oops.Errorf("embedding.model.model is required for provider %q", c.Embedding.Provider)
	}
	if c.Entities.Provider == ProviderMCP && c.Entities.MCP.Command == "" {
		return oops.Errorf("entities.mcp.command is required for provider %q", ProviderMCP)
	}

	return nil
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment values.
func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1])
		name, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(name)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
