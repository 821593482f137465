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


package openai

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/labmatch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyTranslation is returned when the model produced no usable text.
var ErrEmptyTranslation = errors.New("model returned an empty translation")

// Translator implements ai.Translator using OpenAI-compatible chat APIs.
type Translator struct {
	client       llms.Model
	systemPrompt string
	logger       *slog.Logger
}

// newTranslator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newTranslator(config *ai.Config) (*Translator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.TranslatorHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.TranslatorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Translator{
		client:       client,
		systemPrompt: buildSystemPrompt(config.TargetLanguage),
		logger:       slog.Default().With("component", "openai-translator"),
	}, nil
}

// NewTranslator creates a new translator using the provided configuration.
//
// Returns ai.Translator interface to enforce abstraction.
func NewTranslator(config *ai.Config) (ai.Translator, error) {
	return newTranslator(config)
}

// Translate asks the chat model for a translation of text.
func (t *Translator) Translate(ctx context.Context, text string) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(t.systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	response, err := t.client.GenerateContent(ctx, content, llms.WithTemperature(0.0))
	if err != nil {
		t.logger.Error("failed to generate translation", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		t.logger.Debug("no choices returned from model")
		return "", ErrEmptyTranslation
	}

	translated := cleanTranslation(response.Choices[0].Content)
	if translated == "" {
		return "", ErrEmptyTranslation
	}

	t.logger.Debug("translated text", "source", text, "translation", translated)
	return translated, nil
}
