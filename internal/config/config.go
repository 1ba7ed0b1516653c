package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoggingConfig controls the global slog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LocusConfig tunes locus comparisons.
type LocusConfig struct {
	IntroWindow int `yaml:"intro_window"`
}

// CorpusConfig lists the files loaded at startup.
type CorpusConfig struct {
	Seneca []string `yaml:"seneca"`
	Dices  []string `yaml:"dices"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Locus   LocusConfig   `yaml:"locus"`
	Corpus  CorpusConfig  `yaml:"corpus"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// Find tries ./loci.yaml first, then ~/.config/loci/config.yaml, and
// returns defaults with an empty path when neither exists. It never writes.
func Find() (*AppConfig, string, error) {
	cwdPath := "loci.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return defaultConfig(), "", nil
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// LoadDefault behaves like Find, but when no config exists it writes
// defaults to ~/.config/loci/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cfg, path, err := Find()
	if err != nil || path != "" {
		return cfg, path, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
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

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "loci", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Locus:   LocusConfig{IntroWindow: 1},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Locus.IntroWindow <= 0 {
		cfg.Locus.IntroWindow = 1
	}
}
