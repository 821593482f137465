package match

import (
	"log/slog"

	"github.com/poiesic/labmatch/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterNormalization(normalized string)
	ExactHit(results []core.MatchResult)
	AfterQueryEmbedding(vector []float32)
	AfterFieldScoring(field core.Field, scores []float64)
	AfterFusion(scores []float64)
	Finish(results []core.MatchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                              {}
func (n *noopMonitor) AfterNormalization(_ string)                 {}
func (n *noopMonitor) ExactHit(_ []core.MatchResult)               {}
func (n *noopMonitor) AfterQueryEmbedding(_ []float32)             {}
func (n *noopMonitor) AfterFieldScoring(_ core.Field, _ []float64) {}
func (n *noopMonitor) AfterFusion(_ []float64)                     {}
func (n *noopMonitor) Finish(_ []core.MatchResult)                 {}

// LogMonitor reports each search stage at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ SearchMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a monitor writing to logger, or slog.Default() if nil.
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "search-monitor")}
}

func (m *LogMonitor) Start(query string) {
	m.logger.Debug("search started", "query", query)
}

func (m *LogMonitor) AfterNormalization(normalized string) {
	m.logger.Debug("query normalized", "normalized", normalized)
}

func (m *LogMonitor) ExactHit(results []core.MatchResult) {
	rows := make([]int, len(results))
	for i, r := range results {
		rows[i] = r.MappingRow
	}
	m.logger.Debug("exact match", "hits", len(results), "mappingRows", rows)
}

func (m *LogMonitor) AfterQueryEmbedding(vector []float32) {
	m.logger.Debug("query embedded", "dimension", len(vector))
}

func (m *LogMonitor) AfterFieldScoring(field core.Field, scores []float64) {
	best, row := bestScore(scores)
	m.logger.Debug("field scored", "field", field.String(), "best", best, "row", row)
}

func (m *LogMonitor) AfterFusion(scores []float64) {
	best, row := bestScore(scores)
	m.logger.Debug("scores fused", "records", len(scores), "best", best, "row", row)
}

func (m *LogMonitor) Finish(results []core.MatchResult) {
	m.logger.Debug("search finished", "results", len(results))
}

func bestScore(scores []float64) (float64, int) {
	best, row := 0.0, core.NoRow
	for i, s := range scores {
		if row == core.NoRow || s > best {
			best, row = s, i
		}
	}
	return best, row
}
