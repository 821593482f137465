package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvExcelPath   = "EXCEL_PATH"
	EnvMappingFile = "MAPPING_FILE"
	EnvCacheDir    = "CACHE_DIR"

	EnvCodelist             = "LABMATCH_CODELIST"
	EnvTopK                 = "LABMATCH_TOP_K"
	EnvEmbeddingHost        = "LABMATCH_EMBEDDING_HOST"
	EnvEmbeddingModel       = "LABMATCH_EMBEDDING_MODEL"
	EnvTranslatorHost       = "LABMATCH_TRANSLATOR_HOST"
	EnvTranslatorModel      = "LABMATCH_TRANSLATOR_MODEL"
	EnvAPIToken             = "LABMATCH_API_TOKEN"
	EnvTargetLanguage       = "LABMATCH_TARGET_LANGUAGE"
	EnvTranslationCacheSize = "LABMATCH_TRANSLATION_CACHE_SIZE"
	EnvBatchSize            = "LABMATCH_BATCH_SIZE"
	EnvWorkers              = "LABMATCH_WORKERS"
	EnvMaxRetries           = "LABMATCH_MAX_RETRIES"
	EnvRetryDelay           = "LABMATCH_RETRY_DELAY"
	EnvRatioPenalty         = "LABMATCH_RATIO_PENALTY"
	EnvClosenessMargin      = "LABMATCH_CLOSENESS_MARGIN"
	EnvPriorityBoost        = "LABMATCH_PRIORITY_BOOST"
)

// LookupFunc looks up an environment variable, as os.LookupEnv does.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads the given .env files into the process environment,
// skipping files that do not exist. Variables already set are kept.
// With no arguments ".env" is tried.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		existing = append(existing, f)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings with the variables that lookup reports as set.
// Empty values are ignored.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	integer := func(key string, dst *int) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
			return
		}
		*dst = n
	}
	float := func(key string, dst *float64) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %s=%q", ErrInvalidValue, key, v))
			return
		}
		*dst = f
	}

	str(EnvExcelPath, &c.ExcelPath)
	str(EnvMappingFile, &c.MappingFile)
	str(EnvCacheDir, &c.CacheDir)
	str(EnvCodelist, &c.Codelist)
	integer(EnvTopK, &c.TopK)

	str(EnvEmbeddingHost, &c.AI.EmbeddingHost)
	str(EnvEmbeddingModel, &c.AI.EmbeddingModel)
	str(EnvTranslatorHost, &c.AI.TranslatorHost)
	str(EnvTranslatorModel, &c.AI.TranslatorModel)
	str(EnvAPIToken, &c.AI.APIToken)
	str(EnvTargetLanguage, &c.AI.TargetLanguage)
	integer(EnvTranslationCacheSize, &c.AI.TranslationCacheSize)

	integer(EnvBatchSize, &c.Index.BatchSize)
	integer(EnvWorkers, &c.Index.Workers)
	integer(EnvMaxRetries, &c.Index.MaxRetries)
	str(EnvRetryDelay, &c.Index.RetryDelay)

	float(EnvRatioPenalty, &c.Fusion.RatioPenalty)
	float(EnvClosenessMargin, &c.Fusion.ClosenessMargin)
	float(EnvPriorityBoost, &c.Fusion.PriorityBoost)

	return errors.Join(errs...)
}
