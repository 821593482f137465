package match

import (
	"testing"

	"github.com/poiesic/labmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMappings() []core.MappingRecord {
	return []core.MappingRecord{
		{Row: 0, Test: "HGB", Chinese: "血红蛋白", English: "Hemoglobin", Description: "Hemoglobin"},
		{Row: 1, Test: "ALB", Chinese: "白蛋白;清蛋白", English: "Albumin", Description: "Albumin"},
		{Row: 2, Test: "WBC", Chinese: "白细胞计数", English: "White Blood Cells", Description: "Leukocytes"},
		{Row: 3, Test: "NEUT", Chinese: "中性粒细胞绝对值", English: "Neutrophils", Description: "Neutrophils"},
		{Row: 4, Test: "HGB2", Chinese: "", English: "hemoglobin", Description: "Hemoglobin, duplicate"},
	}
}

func TestExactResolver_Resolve(t *testing.T) {
	r := NewExactResolver(testMappings())

	tests := []struct {
		name  string
		query string
		rows  []int
	}{
		{"chinese field", "血红蛋白", []int{0}},
		{"test code ignoring case", "alb", []int{1}},
		{"semicolon atom", "清蛋白", []int{1}},
		{"first atom", " 白蛋白 ", []int{1}},
		{"noise word in field", "白细胞", []int{2}},
		{"noise word in query", "WBC count", []int{2}},
		{"absolute value stripped", "中性粒细胞", []int{3}},
		{"several rows in table order", "HEMOGLOBIN", []int{0, 4}},
		{"english with spaces", "white  blood cells", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, ok := r.Resolve(tt.query)
			require.True(t, ok)
			require.Len(t, results, len(tt.rows))
			for i, row := range tt.rows {
				assert.Equal(t, row, results[i].MappingRow)
				assert.Equal(t, 1.0, results[i].Similarity)
				assert.Equal(t, core.ProvenanceExact, results[i].Provenance)
				assert.Equal(t, core.NoRow, results[i].RowIndex)
			}
		})
	}
}

func TestExactResolver_NoMatch(t *testing.T) {
	r := NewExactResolver(testMappings())

	for _, query := range []string{"血红", "Hemo", "albumin measurement", "ALB;HGB"} {
		t.Run(query, func(t *testing.T) {
			results, ok := r.Resolve(query)
			assert.False(t, ok)
			assert.Nil(t, results)
		})
	}
}

func TestExactResolver_NoiseOnlyValue(t *testing.T) {
	r := NewExactResolver([]core.MappingRecord{
		{Row: 0, Test: "Count", Chinese: "计数", English: "Count", Description: "Count"},
	})

	for _, query := range []string{"count", "COUNT", " Count ", " 计数 "} {
		t.Run(query, func(t *testing.T) {
			results, ok := r.Resolve(query)
			require.True(t, ok)
			require.Len(t, results, 1)
			assert.Equal(t, 0, results[0].MappingRow)
			assert.Equal(t, 1.0, results[0].Similarity)
		})
	}
}

func TestExactResolver_ResultFields(t *testing.T) {
	results, ok := NewExactResolver(testMappings()).Resolve("血红蛋白")
	require.True(t, ok)
	require.Len(t, results, 1)

	got := results[0]
	assert.Equal(t, "HGB", got.Code)
	assert.Equal(t, "血红蛋白", got.Chinese)
	assert.Equal(t, "Hemoglobin", got.English)
	assert.Equal(t, "Hemoglobin", got.Description)
	assert.True(t, got.IsExact())
}

func TestExactResolver_Disabled(t *testing.T) {
	var r *ExactResolver
	assert.False(t, r.Enabled())
	assert.Equal(t, 0, r.Len())

	results, ok := r.Resolve("血红蛋白")
	assert.False(t, ok)
	assert.Nil(t, results)
}

func TestExactResolver_EmptyTable(t *testing.T) {
	r := NewExactResolver(nil)
	assert.True(t, r.Enabled())
	_, ok := r.Resolve("血红蛋白")
	assert.False(t, ok)
}
