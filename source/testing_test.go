package source

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves a workbook with one sheet per entry of sheets and
// returns its path.
func writeWorkbook(t *testing.T, name string, sheets ...[][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, rows := range sheets {
		sheet := "Sheet1"
		if i > 0 {
			sheet = "Sheet" + string(rune('1'+i))
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for r, row := range rows {
			cellName, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(sheet, cellName, &values))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func referenceHeader() []any {
	return []any{"Code", "Codelist Code", "Codelist Extensible (Yes/No)", CodelistColumn, CodeColumn, SynonymColumn, "CDISC Definition", PreferredTermColumn}
}

func referenceRow(codelist, code, synonyms, preferred string) []any {
	return []any{"C1", "C65047", "Yes", codelist, code, synonyms, "definition", preferred}
}
