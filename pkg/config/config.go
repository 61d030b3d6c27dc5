/*
Package config manages the TOML config of anagrams.

A config file is optional. Lookup order is the --config path, then
~/.config/anagrams/config.toml, then built-in defaults. A missing default
file is created with defaults; a broken file is recovered section by section
and whatever cannot be read keeps its default.

	[anagram]
	min_word_size = 2
	workers = 0
	distinct_results = false

	[input]
	dedupe_words = false
	max_words = 0
	skip_comments = true

	[server]
	metrics_addr = ""
	reply_timing = true

	[cli]
	color = true
	show_summary = true
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/anagrams/internal/utils"
	"github.com/charmbracelet/log"
)

const appDir = "anagrams"

// Config holds the entire config structure
type Config struct {
	Anagram AnagramConfig `toml:"anagram"`
	Input   InputConfig   `toml:"input"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// AnagramConfig tunes the search.
type AnagramConfig struct {
	MinWordSize     int  `toml:"min_word_size"`
	Workers         int  `toml:"workers"` // 0 = GOMAXPROCS
	DistinctResults bool `toml:"distinct_results"`
}

// InputConfig controls how word lists are read.
type InputConfig struct {
	DedupeWords  bool `toml:"dedupe_words"`
	MaxWords     int  `toml:"max_words"` // 0 = no limit
	SkipComments bool `toml:"skip_comments"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MetricsAddr string `toml:"metrics_addr"`
	ReplyTiming bool   `toml:"reply_timing"`
}

// CliConfig holds cli output options.
type CliConfig struct {
	Color       bool `toml:"color"`
	ShowSummary bool `toml:"show_summary"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Anagram: AnagramConfig{
			MinWordSize:     2,
			Workers:         0,
			DistinctResults: false,
		},
		Input: InputConfig{
			DedupeWords:  false,
			MaxWords:     0,
			SkipComments: true,
		},
		Server: ServerConfig{
			MetricsAddr: "",
			ReplyTiming: true,
		},
		CLI: CliConfig{
			Color:       true,
			ShowSummary: true,
		},
	}
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/anagrams
// 2. ~/Library/Application Support/anagrams (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", appDir)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", appDir)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: ~/.config/anagrams/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, falling back to partial recovery.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config.normalize(), nil
}

// tryPartialParse keeps whatever sections of a broken file still parse.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "anagram"); ok {
		extractAnagramConfig(section, &config.Anagram)
	}
	if section, ok := utils.ExtractSection(tempConfig, "input"); ok {
		extractInputConfig(section, &config.Input)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config.normalize(), nil
}

func extractAnagramConfig(data map[string]any, a *AnagramConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_size"); ok {
		a.MinWordSize = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		a.Workers = val
	}
	if val, ok := utils.ExtractBool(data, "distinct_results"); ok {
		a.DistinctResults = val
	}
}

func extractInputConfig(data map[string]any, in *InputConfig) {
	if val, ok := utils.ExtractBool(data, "dedupe_words"); ok {
		in.DedupeWords = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		in.MaxWords = val
	}
	if val, ok := utils.ExtractBool(data, "skip_comments"); ok {
		in.SkipComments = val
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.ExtractString(data, "metrics_addr"); ok {
		s.MetricsAddr = val
	}
	if val, ok := utils.ExtractBool(data, "reply_timing"); ok {
		s.ReplyTiming = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractBool(data, "color"); ok {
		cli.Color = val
	}
	if val, ok := utils.ExtractBool(data, "show_summary"); ok {
		cli.ShowSummary = val
	}
}

// normalize clamps values that make no sense back to their defaults.
func (c *Config) normalize() *Config {
	def := DefaultConfig()
	if c.Anagram.MinWordSize < 0 {
		log.Warnf("min_word_size %d is negative, using %d", c.Anagram.MinWordSize, def.Anagram.MinWordSize)
		c.Anagram.MinWordSize = def.Anagram.MinWordSize
	}
	if c.Anagram.Workers < 0 {
		c.Anagram.Workers = def.Anagram.Workers
	}
	if c.Input.MaxWords < 0 {
		c.Input.MaxWords = def.Input.MaxWords
	}
	return c
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
