package index

import (
	"runtime"
	"time"
)

// Config holds configuration for building a vector set.
type Config struct {
	// BatchSize is the number of texts sent per embedding call
	BatchSize int

	// Workers is the number of batches embedded concurrently
	Workers int

	// ReportInterval is how often to report progress (number of texts)
	ReportInterval int

	// MaxRetries is the maximum number of attempts per batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return &Config{
		BatchSize:      32,
		Workers:        workers,
		ReportInterval: 256,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c *Config) withDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.BatchSize <= 0 {
		out.BatchSize = def.BatchSize
	}
	if out.Workers <= 0 {
		out.Workers = def.Workers
	}
	if out.ReportInterval <= 0 {
		out.ReportInterval = def.ReportInterval
	}
	if out.MaxRetries <= 0 {
		out.MaxRetries = def.MaxRetries
	}
	if out.RetryDelay < 0 {
		out.RetryDelay = 0
	}
	return &out
}
