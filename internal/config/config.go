package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for aigenda.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"`
	Agent   AgentConfig   `mapstructure:"agent"`
	Memory  MemoryConfig  `mapstructure:"memory"`
	Storage StorageConfig `mapstructure:"storage"`
}

// LLMConfig holds chat model settings.
type LLMConfig struct {
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url"`
	Model             string `mapstructure:"model"`
	Timeout           int    `mapstructure:"timeout"`
	MaxTokens         int    `mapstructure:"max_tokens"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// AgentConfig holds tool-calling loop settings.
type AgentConfig struct {
	MaxIterations int `mapstructure:"max_iterations"`
}

// MemoryConfig holds conversation memory settings.
type MemoryConfig struct {
	MaxMessages int    `mapstructure:"max_messages"`
	MaxTokens   int    `mapstructure:"max_tokens"`
	Path        string `mapstructure:"path"`
}

// StorageConfig holds note storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Load loads configuration from file, env, and defaults. dataDir, when
// non-empty, is the --data flag and overrides the config file; otherwise the
// file and environment may override the platform default.
func Load(configPath, dataDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if dataDir != "" {
		v.Set("storage.data_dir", dataDir)
	} else {
		v.SetDefault("storage.data_dir", getDefaultDataDir())
	}

	if configPath == "" {
		lookupDir := dataDir
		if lookupDir == "" {
			lookupDir = getDefaultDataDir()
		}
		configPath = filepath.Join(lookupDir, "aigenda.yaml")
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	// Environment variables (AIGENDA_LLM_MODEL, AIGENDA_AGENT_MAX_ITERATIONS, ...)
	v.SetEnvPrefix("AIGENDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := os.MkdirAll(cfg.Storage.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if cfg.Memory.Path == "" {
		cfg.Memory.Path = filepath.Join(cfg.Storage.DataDir, "memory.json")
	}

	// The Anthropic key is conventionally set through ANTHROPIC_API_KEY; honor
	// it directly so users don't need the AIGENDA_ prefix for just this one.
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.base_url", "https://api.anthropic.com/v1")
	v.SetDefault("llm.model", "claude-3-5-sonnet-20241022")
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.requests_per_minute", 60)

	v.SetDefault("agent.max_iterations", 5)

	v.SetDefault("memory.max_messages", 50)
	v.SetDefault("memory.max_tokens", 8000)
	// Registered empty so the env/file key is picked up; the real default
	// depends on the resolved data dir and is filled in after unmarshal.
	v.SetDefault("memory.path", "")
}

func getDefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "aigenda")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./data"
	}

	return filepath.Join(home, ".local", "share", "aigenda")
}
