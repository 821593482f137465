package source

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/labmatch/core"
)

// Reference table headers.
const (
	CodelistColumn      = "Codelist Name"
	CodeColumn          = "CDISC Submission Value"
	SynonymColumn       = "CDISC Synonym(s)"
	PreferredTermColumn = "NCI Preferred Term"
)

// referenceSheet is the worksheet index holding the reference table.
const referenceSheet = 1

// Option configures a loader.
type Option func(*loadOptions)

type loadOptions struct {
	codelist string
	logger   *slog.Logger
}

// WithCodelist keeps only reference rows whose Codelist Name equals name.
// An empty name keeps every row.
func WithCodelist(name string) Option {
	return func(o *loadOptions) {
		o.codelist = strings.TrimSpace(name)
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *loadOptions) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

func buildOptions(opts []Option) *loadOptions {
	o := &loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "source")
	return o
}

// LoadReferenceTable reads the reference records from the second worksheet
// of the workbook at path (or from a CSV file directly). Records are
// numbered 0..n-1 in sheet order after filtering.
func LoadReferenceTable(path string, opts ...Option) ([]core.ReferenceRecord, error) {
	o := buildOptions(opts)

	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet := referenceSheet
	if isCSV(wb) {
		sheet = 0
	}
	if wb.SheetCount() <= sheet {
		return nil, fmt.Errorf("%w: %s has %d, need at least %d", ErrTooFewSheets, path, wb.SheetCount(), sheet+1)
	}

	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", wb.SheetName(sheet), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrNoRows, wb.SheetName(sheet))
	}

	header := headerIndex(rows[0])
	cols := make(map[string]int, 4)
	for _, name := range []string{CodelistColumn, CodeColumn, SynonymColumn, PreferredTermColumn} {
		col, ok := header[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: %q in sheet %q", ErrMissingColumn, name, wb.SheetName(sheet))
		}
		cols[name] = col
	}

	var records []core.ReferenceRecord
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		codelist := cell(row, cols[CodelistColumn])
		if o.codelist != "" && codelist != o.codelist {
			continue
		}
		record := core.ReferenceRecord{
			Row:           len(records),
			Codelist:      codelist,
			Code:          cell(row, cols[CodeColumn]),
			Synonyms:      cell(row, cols[SynonymColumn]),
			PreferredTerm: cell(row, cols[PreferredTermColumn]),
		}
		if err := core.ValidateReferenceRecord(&record); err != nil {
			o.logger.Debug("skipping reference row", "codelist", codelist, "err", err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		if o.codelist != "" {
			return nil, fmt.Errorf("%w: no rows with %s %q", ErrNoRows, CodelistColumn, o.codelist)
		}
		return nil, fmt.Errorf("%w: sheet %q", ErrNoRows, wb.SheetName(sheet))
	}

	o.logger.Info("loaded reference table", "path", path, "sheet", wb.SheetName(sheet), "records", len(records), "codelist", o.codelist)
	return records, nil
}

// headerIndex maps lower-cased trimmed header names to their column.
// The first occurrence of a duplicated header wins.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}
	return index
}
