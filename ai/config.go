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


package ai

import (
	"errors"
	"strings"
)

// Config holds configuration for AI service providers.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// TranslatorHost is the base URL for the chat service used to translate
	// display text.
	TranslatorHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// It is part of the vector cache fingerprint.
	// Example: "paraphrase-multilingual-MiniLM-L12-v2", "text-embedding-3-small"
	EmbeddingModel string

	// TranslatorModel is the chat model identifier used for translation.
	// Example: "qwen2.5:3b", "gpt-4o-mini"
	TranslatorModel string

	// APIToken is sent as the bearer token. Local servers accept "none".
	APIToken string

	// TargetLanguage is the language display text is translated into.
	TargetLanguage string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithTranslatorHost sets the translation service host URL.
func WithTranslatorHost(host string) ConfigOption {
	return func(c *Config) {
		c.TranslatorHost = host
	}
}

// WithHost sets both embedding and translator hosts to the same URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.TranslatorHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithTranslatorModel sets the translation model identifier.
func WithTranslatorModel(model string) ConfigOption {
	return func(c *Config) {
		c.TranslatorModel = model
	}
}

// WithAPIToken sets the bearer token.
func WithAPIToken(token string) ConfigOption {
	return func(c *Config) {
		c.APIToken = token
	}
}

// WithTargetLanguage sets the translation target language.
func WithTargetLanguage(lang string) ConfigOption {
	return func(c *Config) {
		c.TargetLanguage = lang
	}
}

// DefaultConfig returns a Config with sensible defaults for local OpenAI-compatible services.
// By default, both embedding and translation use the same host.
func DefaultConfig() *Config {
	defaultHost := "http://localhost:11434/v1"
	return &Config{
		EmbeddingHost:   defaultHost,
		TranslatorHost:  defaultHost,
		EmbeddingModel:  "paraphrase-multilingual-MiniLM-L12-v2",
		TranslatorModel: "qwen2.5:3b",
		APIToken:        "none",
		TargetLanguage:  "Simplified Chinese",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to hosts if missing, which is required
// by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	c.EmbeddingHost = withAPIVersion(c.EmbeddingHost)
	c.TranslatorHost = withAPIVersion(c.TranslatorHost)
	if c.APIToken == "" {
		c.APIToken = "none"
	}
}

func withAPIVersion(host string) string {
	if host == "" || strings.HasSuffix(host, "/v1") {
		return host
	}
	return strings.TrimSuffix(host, "/") + "/v1"
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.TranslatorHost == "" {
		return errors.New("ai config: TranslatorHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.TranslatorModel == "" {
		return errors.New("ai config: TranslatorModel is required")
	}
	if c.TargetLanguage == "" {
		return errors.New("ai config: TargetLanguage is required")
	}
	return nil
}
