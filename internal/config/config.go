package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DatasetConfig locates the recipe dataset and names its columns.
type DatasetConfig struct {
	Path              string `yaml:"path" validate:"required"`
	Format            string `yaml:"format" validate:"omitempty,oneof=csv json sqlite"`
	NameColumn        string `yaml:"name_column" validate:"required"`
	IngredientsColumn string `yaml:"ingredients_column" validate:"required"`
	Table             string `yaml:"table"`
}

// IndexConfig tunes tokenization and vocabulary column order.
type IndexConfig struct {
	MinTokenLength  int    `yaml:"min_token_length" validate:"min=1,max=32"`
	VocabularyOrder string `yaml:"vocabulary_order" validate:"oneof=sorted first_seen"`
}

// SearchConfig controls ranking output.
type SearchConfig struct {
	TopK int `yaml:"top_k" validate:"min=1,max=100"`
}

// ServerConfig configures the HTTP front end. A negative rate limit disables limiting.
type ServerConfig struct {
	Addr               string `yaml:"addr" validate:"required"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute" validate:"min=-1"`
	ReadTimeoutSecs    int    `yaml:"read_timeout_secs" validate:"min=0"`
	WriteTimeoutSecs   int    `yaml:"write_timeout_secs" validate:"min=0"`
}

// LogConfig configures the global logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error fatal disabled off"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/recipe-finder/config.yaml.
// If neither exists, it writes defaults to ~/.config/recipe-finder/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DefaultUserConfigPath returns ~/.config/recipe-finder/config.yaml.
func DefaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "recipe-finder", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Dataset.Path == "" {
		cfg.Dataset.Path = "recipes.csv"
	}
	if cfg.Dataset.NameColumn == "" {
		cfg.Dataset.NameColumn = "recipe_name"
	}
	if cfg.Dataset.IngredientsColumn == "" {
		cfg.Dataset.IngredientsColumn = "ingredients"
	}
	if cfg.Dataset.Table == "" {
		cfg.Dataset.Table = "recipes"
	}
	if cfg.Index.MinTokenLength == 0 {
		cfg.Index.MinTokenLength = 1
	}
	if cfg.Index.VocabularyOrder == "" {
		cfg.Index.VocabularyOrder = "sorted"
	}
	if cfg.Search.TopK == 0 {
		cfg.Search.TopK = 5
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":5000"
	}
	if cfg.Server.RateLimitPerMinute == 0 {
		cfg.Server.RateLimitPerMinute = 120
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = 10
	}
	if cfg.Server.WriteTimeoutSecs == 0 {
		cfg.Server.WriteTimeoutSecs = 10
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// ApplyEnv overrides fields from the environment. Call after godotenv.Load.
func (c *AppConfig) ApplyEnv() {
	if v := os.Getenv("RECIPES_DATASET"); v != "" {
		c.Dataset.Path = v
	}
	if v := os.Getenv("RECIPES_ADDR"); v != "" {
		c.Server.Addr = v
	} else if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and returns the first violations by field name.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.ActualTag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
