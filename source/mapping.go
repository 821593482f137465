package source

import (
	"fmt"
	"strings"

	"github.com/poiesic/labmatch/core"
)

// MappingColumn names a logical column of the mapping table.
type MappingColumn int

const (
	ColumnTest MappingColumn = iota
	ColumnChinese
	ColumnEnglish
	ColumnDescription
)

func (c MappingColumn) String() string {
	switch c {
	case ColumnTest:
		return "TEST"
	case ColumnChinese:
		return "TESTS_CN"
	case ColumnEnglish:
		return "TESTS_EN"
	case ColumnDescription:
		return "TESTDS"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// mappingAliases lists the accepted headers per logical column, in the
// order they are tried. Comparison is case-insensitive after trimming.
var mappingAliases = [...][]string{
	ColumnTest:        {"TEST", "Test", "测试"},
	ColumnChinese:     {"TESTS_CN", "Tests CN", "中文", "Chinese"},
	ColumnEnglish:     {"TESTS_EN", "Tests EN", "英文", "English"},
	ColumnDescription: {"TESTDS", "Test Description", "测试描述"},
}

// ColumnMap holds the resolved column index per logical column, -1 when absent.
type ColumnMap [4]int

// Has reports whether the column was found.
func (m ColumnMap) Has(c MappingColumn) bool {
	return m[c] >= 0
}

// hasMatchColumn reports whether at least one of the three match columns exists.
func (m ColumnMap) hasMatchColumn() bool {
	return m.Has(ColumnTest) || m.Has(ColumnChinese) || m.Has(ColumnEnglish)
}

// ResolveColumns finds each logical mapping column in header.
func ResolveColumns(header []string) ColumnMap {
	index := headerIndex(header)
	var m ColumnMap
	for c, aliases := range mappingAliases {
		m[c] = -1
		for _, alias := range aliases {
			if col, ok := index[strings.ToLower(alias)]; ok {
				m[c] = col
				break
			}
		}
	}
	return m
}

// MappingTable is the loaded exact-match table.
type MappingTable struct {
	Records []core.MappingRecord
	Columns ColumnMap
}

// LoadMappingTable reads the first worksheet of the workbook at path.
// ErrColumnsNotFound is returned when none of TEST, TESTS_CN or TESTS_EN
// can be identified; callers treat the table as absent.
func LoadMappingTable(path string, opts ...Option) (*MappingTable, error) {
	o := buildOptions(opts)

	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	if wb.SheetCount() == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrTooFewSheets, path)
	}
	rows, err := wb.Rows(0)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", wb.SheetName(0), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: mapping sheet %q is empty", ErrColumnsNotFound, wb.SheetName(0))
	}

	cols := ResolveColumns(rows[0])
	if !cols.hasMatchColumn() {
		return nil, fmt.Errorf("%w: header %q", ErrColumnsNotFound, rows[0])
	}

	table := &MappingTable{Columns: cols}
	for i, row := range rows[1:] {
		record := core.MappingRecord{
			Row:         i,
			Test:        cell(row, cols[ColumnTest]),
			Chinese:     cell(row, cols[ColumnChinese]),
			English:     cell(row, cols[ColumnEnglish]),
			Description: cell(row, cols[ColumnDescription]),
		}
		if err := core.ValidateMappingRecord(&record); err != nil {
			continue
		}
		table.Records = append(table.Records, record)
	}

	resolved := make([]any, 0, 8)
	for c := range mappingAliases {
		resolved = append(resolved, MappingColumn(c).String(), cols[c])
	}
	o.logger.Info("loaded mapping table", append([]any{"path", path, "records", len(table.Records)}, resolved...)...)
	return table, nil
}
