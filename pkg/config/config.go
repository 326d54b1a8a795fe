/*
Package config manages the TOML config of wordfix.
*/
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordfix/internal/utils"
	"github.com/bastiangx/wordfix/pkg/corrector"
	"github.com/bastiangx/wordfix/pkg/errmodel"
	"github.com/bastiangx/wordfix/pkg/search"
)

// FileName is the config file looked up in the user config directory.
const FileName = "wordfix.toml"

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Scorer ScorerConfig `toml:"scorer"`
	Filter FilterConfig `toml:"filter"`
	Train  TrainConfig  `toml:"train"`
	Data   DataConfig   `toml:"data"`
	Server ServerConfig `toml:"server"`
	Redis  RedisConfig  `toml:"redis"`
}

// SearchConfig bounds the fuzzy trie search.
type SearchConfig struct {
	MaxChanges   int  `toml:"max_changes"`
	MaxActions   int  `toml:"max_actions"`
	Replacements bool `toml:"replacements"`
	Insertions   bool `toml:"insertions"`
	Removals     bool `toml:"removals"`
	FoldCase     bool `toml:"fold_case"`
}

// ScorerConfig weighs the error model signals.
type ScorerConfig struct {
	Alpha float64 `toml:"alpha"`
	Beta  float64 `toml:"beta"`
	Gamma float64 `toml:"gamma"`
}

// FilterConfig holds the frequency thresholds of the selector.
type FilterConfig struct {
	AbsoluteThreshold float64 `toml:"absolute_threshold"`
	RelativeThreshold float64 `toml:"relative_threshold"`
}

// TrainConfig controls error model training.
type TrainConfig struct {
	MaxFieldLength int `toml:"max_field_length"`
}

// DataConfig names the input and output files.
type DataConfig struct {
	Words  string `toml:"words"`
	Train  string `toml:"train"`
	Test   string `toml:"test"`
	Output string `toml:"output"`
	NoFix  string `toml:"no_fix"`
	Script string `toml:"script"`
}

// ServerConfig has IPC and HTTP server options.
type ServerConfig struct {
	HTTPAddr       string `toml:"http_addr"`
	MaxWordLength  int    `toml:"max_word_length"`
	Workers        int    `toml:"workers"`
	CacheSize      int    `toml:"cache_size"`
	MaxSuggestions int    `toml:"max_suggestions"`
}

// RedisConfig locates the custom word store. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Key      string `toml:"key"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxChanges:   search.DefaultMaxChanges,
			MaxActions:   search.DefaultMaxActions,
			Replacements: true,
		},
		Scorer: ScorerConfig{Alpha: 0, Beta: 1, Gamma: 0},
		Filter: FilterConfig{
			AbsoluteThreshold: 0.0001,
			RelativeThreshold: 2.5,
		},
		Train: TrainConfig{MaxFieldLength: errmodel.MaxFieldLength},
		Data: DataConfig{
			Words:  "data/words.csv",
			Train:  "data/train.csv",
			Test:   "data/test.csv",
			Output: "data/processed.csv",
			NoFix:  "data/no_fix_train.csv",
			Script: "rus",
		},
		Server: ServerConfig{
			HTTPAddr:       ":8080",
			MaxWordLength:  50,
			Workers:        4,
			CacheSize:      20000,
			MaxSuggestions: corrector.DefaultMaxSuggestions,
		},
		Redis: RedisConfig{Key: "custom_dict"},
	}
}

// CorrectorSettings converts the config into pipeline settings.
func (c *Config) CorrectorSettings() (corrector.Settings, error) {
	script, err := utils.ParseScript(c.Data.Script)
	if err != nil {
		return corrector.Settings{}, fmt.Errorf("invalid [data] script: %w", err)
	}
	return corrector.Settings{
		MaxChanges: c.Search.MaxChanges,
		MaxActions: c.Search.MaxActions,
		Ops: search.Ops{
			Replacements: c.Search.Replacements,
			Insertions:   c.Search.Insertions,
			Removals:     c.Search.Removals,
		},
		Weights: errmodel.Weights{
			Alpha: c.Scorer.Alpha,
			Beta:  c.Scorer.Beta,
			Gamma: c.Scorer.Gamma,
		},
		Absolute:       c.Filter.AbsoluteThreshold,
		Relative:       c.Filter.RelativeThreshold,
		MaxFieldLength: c.Train.MaxFieldLength,
		Script:         script,
		FoldCase:       c.Search.FoldCase,
		CacheSize:      c.Server.CacheSize,
		MaxSuggestions: c.Server.MaxSuggestions,
	}, nil
}

// GetDefaultConfigPath returns the default path for wordfix.toml
func GetDefaultConfigPath() (string, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pr.GetConfigPath(FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [UserConfigDir]/wordfix/wordfix.toml
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

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file that does not decode is recovered section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages every well-typed key of a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "scorer"); ok {
		extractScorerConfig(section, &config.Scorer)
	}
	if section, ok := utils.ExtractSection(tempConfig, "filter"); ok {
		extractFilterConfig(section, &config.Filter)
	}
	if section, ok := utils.ExtractSection(tempConfig, "train"); ok {
		if val, ok := utils.ExtractInt64(section, "max_field_length"); ok {
			config.Train.MaxFieldLength = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "data"); ok {
		extractDataConfig(section, &config.Data)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "redis"); ok {
		extractRedisConfig(section, &config.Redis)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "max_changes"); ok {
		s.MaxChanges = val
	}
	if val, ok := utils.ExtractInt64(data, "max_actions"); ok {
		s.MaxActions = val
	}
	if val, ok := utils.ExtractBool(data, "replacements"); ok {
		s.Replacements = val
	}
	if val, ok := utils.ExtractBool(data, "insertions"); ok {
		s.Insertions = val
	}
	if val, ok := utils.ExtractBool(data, "removals"); ok {
		s.Removals = val
	}
	if val, ok := utils.ExtractBool(data, "fold_case"); ok {
		s.FoldCase = val
	}
}

func extractScorerConfig(data map[string]any, s *ScorerConfig) {
	if val, ok := utils.ExtractFloat64(data, "alpha"); ok {
		s.Alpha = val
	}
	if val, ok := utils.ExtractFloat64(data, "beta"); ok {
		s.Beta = val
	}
	if val, ok := utils.ExtractFloat64(data, "gamma"); ok {
		s.Gamma = val
	}
}

func extractFilterConfig(data map[string]any, f *FilterConfig) {
	if val, ok := utils.ExtractFloat64(data, "absolute_threshold"); ok {
		f.AbsoluteThreshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "relative_threshold"); ok {
		f.RelativeThreshold = val
	}
}

func extractDataConfig(data map[string]any, d *DataConfig) {
	fields := map[string]*string{
		"words":  &d.Words,
		"train":  &d.Train,
		"test":   &d.Test,
		"output": &d.Output,
		"no_fix": &d.NoFix,
		"script": &d.Script,
	}
	for key, dst := range fields {
		if val, ok := utils.ExtractString(data, key); ok {
			*dst = val
		}
	}
}

func extractServerConfig(data map[string]any, s *ServerConfig) {
	if val, ok := utils.ExtractString(data, "http_addr"); ok {
		s.HTTPAddr = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_length"); ok {
		s.MaxWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		s.Workers = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		s.CacheSize = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		s.MaxSuggestions = val
	}
}

func extractRedisConfig(data map[string]any, r *RedisConfig) {
	if val, ok := utils.ExtractString(data, "addr"); ok {
		r.Addr = val
	}
	if val, ok := utils.ExtractString(data, "password"); ok {
		r.Password = val
	}
	if val, ok := utils.ExtractInt64(data, "db"); ok {
		r.DB = val
	}
	if val, ok := utils.ExtractString(data, "key"); ok {
		r.Key = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "built-in defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
