package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   ColumnMap
	}{
		{
			name:   "canonical names",
			header: []string{"TEST", "TESTS_CN", "TESTS_EN", "TESTDS"},
			want:   ColumnMap{0, 1, 2, 3},
		},
		{
			name:   "aliases in any case",
			header: []string{" test description ", "english", "中文", "Test"},
			want:   ColumnMap{3, 2, 1, 0},
		},
		{
			name:   "chinese headers",
			header: []string{"测试", "中文", "英文", "测试描述"},
			want:   ColumnMap{0, 1, 2, 3},
		},
		{
			name:   "partial",
			header: []string{"Other", "Chinese"},
			want:   ColumnMap{-1, 1, -1, -1},
		},
		{
			name:   "nothing recognised",
			header: []string{"A", "B"},
			want:   ColumnMap{-1, -1, -1, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveColumns(tt.header))
		})
	}
}

func TestLoadMappingTable(t *testing.T) {
	path := writeWorkbook(t, "mapping.xlsx", [][]any{
		{"TEST", "TESTS_CN", "TESTS_EN", "TESTDS"},
		{"HGB", "血红蛋白", "Hemoglobin", "Hemoglobin"},
		{"ALB", "白蛋白;清蛋白", "Albumin", "Albumin"},
		{"nan", "nan", "", "only a description"},
		{"WBC", "白细胞计数", "nan", "Leukocytes"},
	})

	table, err := LoadMappingTable(path)
	require.NoError(t, err)
	assert.Equal(t, ColumnMap{0, 1, 2, 3}, table.Columns)
	require.Len(t, table.Records, 3, "rows without any match field are dropped")

	assert.Equal(t, 0, table.Records[0].Row)
	assert.Equal(t, "血红蛋白", table.Records[0].Chinese)
	assert.Equal(t, "白蛋白;清蛋白", table.Records[1].Chinese)
	assert.Equal(t, 3, table.Records[2].Row)
	assert.Equal(t, "", table.Records[2].English, "nan reads as empty")
}

func TestLoadMappingTable_PartialColumns(t *testing.T) {
	path := writeWorkbook(t, "mapping.xlsx", [][]any{
		{"Chinese", "Notes"},
		{"血红蛋白", "x"},
	})

	table, err := LoadMappingTable(path)
	require.NoError(t, err)
	assert.False(t, table.Columns.Has(ColumnTest))
	assert.True(t, table.Columns.Has(ColumnChinese))
	require.Len(t, table.Records, 1)
	assert.Equal(t, "血红蛋白", table.Records[0].Chinese)
}

func TestLoadMappingTable_XLS(t *testing.T) {
	table, err := LoadMappingTable(filepath.Join("testdata", "mapping.xls"))
	require.NoError(t, err)
	assert.Equal(t, ColumnMap{0, 1, 2, 3}, table.Columns)
	require.Len(t, table.Records, 2)

	assert.Equal(t, "HGB", table.Records[0].Test)
	assert.Equal(t, "血红蛋白", table.Records[0].Chinese)
	assert.Equal(t, "白蛋白;清蛋白", table.Records[1].Chinese)
	assert.Equal(t, "Albumin", table.Records[1].English)
}

func TestLoadMappingTable_Unusable(t *testing.T) {
	t.Run("no match columns", func(t *testing.T) {
		path := writeWorkbook(t, "mapping.xlsx", [][]any{{"TESTDS", "Notes"}, {"x", "y"}})
		_, err := LoadMappingTable(path)
		assert.ErrorIs(t, err, ErrColumnsNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadMappingTable(filepath.Join(t.TempDir(), "absent.xlsx"))
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("empty csv", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "mapping.csv")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		_, err := LoadMappingTable(path)
		assert.ErrorIs(t, err, ErrColumnsNotFound)
	})
}

func TestMappingColumn_String(t *testing.T) {
	assert.Equal(t, "TEST", ColumnTest.String())
	assert.Equal(t, "TESTS_CN", ColumnChinese.String())
	assert.Equal(t, "TESTS_EN", ColumnEnglish.String())
	assert.Equal(t, "TESTDS", ColumnDescription.String())
	assert.Equal(t, "column(9)", MappingColumn(9).String())
}
