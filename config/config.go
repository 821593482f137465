// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/poiesic/labmatch/ai"
	"github.com/poiesic/labmatch/index"
	"github.com/poiesic/labmatch/match"
	"gopkg.in/yaml.v3"
)

// DefaultTopK is the number of semantic results returned when unset.
const DefaultTopK = 10

// Config is the complete set of matcher settings.
type Config struct {
	// ExcelPath is the workbook holding the reference table (second sheet)
	ExcelPath string `yaml:"excel_path" toml:"excel_path"`

	// MappingFile is the workbook holding the exact-match table (first sheet)
	MappingFile string `yaml:"mapping_file" toml:"mapping_file"`

	// CacheDir is the directory of the persistent vector cache
	CacheDir string `yaml:"cache_dir" toml:"cache_dir"`

	// Codelist keeps only reference rows of this codelist. Empty keeps all rows.
	Codelist string `yaml:"codelist" toml:"codelist"`

	// TopK is the default number of semantic results
	TopK int `yaml:"top_k" toml:"top_k"`

	AI     AISettings     `yaml:"ai" toml:"ai"`
	Index  IndexSettings  `yaml:"index" toml:"index"`
	Fusion FusionSettings `yaml:"fusion" toml:"fusion"`
}

// AISettings configures the embedding and translation services.
type AISettings struct {
	EmbeddingHost        string `yaml:"embedding_host" toml:"embedding_host"`
	EmbeddingModel       string `yaml:"embedding_model" toml:"embedding_model"`
	TranslatorHost       string `yaml:"translator_host" toml:"translator_host"`
	TranslatorModel      string `yaml:"translator_model" toml:"translator_model"`
	APIToken             string `yaml:"api_token" toml:"api_token"`
	TargetLanguage       string `yaml:"target_language" toml:"target_language"`
	TranslationCacheSize int    `yaml:"translation_cache_size" toml:"translation_cache_size"`
}

// IndexSettings configures vector set construction.
type IndexSettings struct {
	BatchSize  int    `yaml:"batch_size" toml:"batch_size"`
	Workers    int    `yaml:"workers" toml:"workers"`
	MaxRetries int    `yaml:"max_retries" toml:"max_retries"`
	RetryDelay string `yaml:"retry_delay" toml:"retry_delay"`
}

// FusionSettings are the rank fusion tunables.
type FusionSettings struct {
	RatioPenalty    float64 `yaml:"ratio_penalty" toml:"ratio_penalty"`
	ClosenessMargin float64 `yaml:"closeness_margin" toml:"closeness_margin"`
	PriorityBoost   float64 `yaml:"priority_boost" toml:"priority_boost"`
}

// Default returns a Config with every optional setting at its default.
// The required paths are left empty.
func Default() *Config {
	aiCfg := ai.DefaultConfig()
	idx := index.DefaultConfig()
	w := match.DefaultWeights()
	return &Config{
		TopK: DefaultTopK,
		AI: AISettings{
			EmbeddingHost:        aiCfg.EmbeddingHost,
			EmbeddingModel:       aiCfg.EmbeddingModel,
			TranslatorHost:       aiCfg.TranslatorHost,
			TranslatorModel:      aiCfg.TranslatorModel,
			APIToken:             aiCfg.APIToken,
			TargetLanguage:       aiCfg.TargetLanguage,
			TranslationCacheSize: 1024,
		},
		Index: IndexSettings{
			BatchSize:  idx.BatchSize,
			Workers:    idx.Workers,
			MaxRetries: idx.MaxRetries,
			RetryDelay: idx.RetryDelay.String(),
		},
		Fusion: FusionSettings{
			RatioPenalty:    w.RatioPenalty,
			ClosenessMargin: w.ClosenessMargin,
			PriorityBoost:   w.PriorityBoost,
		},
	}
}

// Load reads a YAML (.yaml, .yml) or TOML (.toml) file over the defaults.
// Settings absent from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format implied by its extension.
func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	case ".toml":
		data, err = toml.Marshal(cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// FromEnv returns the defaults overlaid with .env files and the process
// environment. With no files, ".env" in the working directory is tried.
func FromEnv(envFiles ...string) (*Config, error) {
	if err := LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}
	cfg := Default()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings and value ranges. All missing required
// settings are reported together in a *MissingSettingsError.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.ExcelPath) == "" {
		missing = append(missing, EnvExcelPath)
	}
	if strings.TrimSpace(c.MappingFile) == "" {
		missing = append(missing, EnvMappingFile)
	}
	if strings.TrimSpace(c.CacheDir) == "" {
		missing = append(missing, EnvCacheDir)
	}
	if len(missing) > 0 {
		return &MissingSettingsError{Names: missing}
	}

	var errs []error
	if c.TopK <= 0 {
		errs = append(errs, fmt.Errorf("%w: top_k must be positive, got %d", ErrInvalidValue, c.TopK))
	}
	if c.Index.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("%w: batch_size must be positive, got %d", ErrInvalidValue, c.Index.BatchSize))
	}
	if c.Index.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidValue, c.Index.Workers))
	}
	if c.Index.MaxRetries <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_retries must be positive, got %d", ErrInvalidValue, c.Index.MaxRetries))
	}
	if _, err := c.retryDelay(); err != nil {
		errs = append(errs, err)
	}
	if c.AI.TranslationCacheSize < 0 {
		errs = append(errs, fmt.Errorf("%w: translation_cache_size must not be negative, got %d", ErrInvalidValue, c.AI.TranslationCacheSize))
	}
	if c.Fusion.RatioPenalty <= 0 || c.Fusion.RatioPenalty > 1 {
		errs = append(errs, fmt.Errorf("%w: ratio_penalty must be in (0, 1], got %g", ErrInvalidValue, c.Fusion.RatioPenalty))
	}
	if c.Fusion.PriorityBoost <= 0 {
		errs = append(errs, fmt.Errorf("%w: priority_boost must be positive, got %g", ErrInvalidValue, c.Fusion.PriorityBoost))
	}
	return errors.Join(errs...)
}

func (c *Config) retryDelay() (time.Duration, error) {
	if c.Index.RetryDelay == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Index.RetryDelay)
	if err != nil {
		return 0, fmt.Errorf("%w: retry_delay: %w", ErrInvalidValue, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: retry_delay must not be negative, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// AIConfig returns the AI service configuration.
func (c *Config) AIConfig() *ai.Config {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.AI.EmbeddingHost),
		ai.WithEmbeddingModel(c.AI.EmbeddingModel),
		ai.WithTranslatorHost(c.AI.TranslatorHost),
		ai.WithTranslatorModel(c.AI.TranslatorModel),
		ai.WithAPIToken(c.AI.APIToken),
		ai.WithTargetLanguage(c.AI.TargetLanguage),
	)
	cfg.Normalize()
	return cfg
}

// IndexConfig returns the vector set build configuration.
// An unparsable retry delay falls back to the default.
func (c *Config) IndexConfig() *index.Config {
	cfg := index.DefaultConfig()
	cfg.BatchSize = c.Index.BatchSize
	if c.Index.Workers > 0 {
		cfg.Workers = c.Index.Workers
	}
	cfg.MaxRetries = c.Index.MaxRetries
	if d, err := c.retryDelay(); err == nil && c.Index.RetryDelay != "" {
		cfg.RetryDelay = d
	}
	return cfg
}

// Weights returns the rank fusion weights.
func (c *Config) Weights() match.Weights {
	return match.Weights{
		RatioPenalty:    c.Fusion.RatioPenalty,
		ClosenessMargin: c.Fusion.ClosenessMargin,
		PriorityBoost:   c.Fusion.PriorityBoost,
	}
}
