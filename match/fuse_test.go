package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuser_Fuse(t *testing.T) {
	f := NewFuser(DefaultWeights())

	tests := []struct {
		name            string
		code, syn, pref float64
		synText         string
		prefText        string
		query           string
		want            float64
	}{
		{
			name: "exact priority dominates a stronger code score",
			code: 1.0, syn: 1.0, pref: 0.2,
			query: "hemoglobin", want: 1.0,
		},
		{
			name: "priority close to code is used as is",
			code: 0.85, syn: 0.78, pref: 0.5,
			query: "albumin", want: 0.78,
		},
		{
			name: "priority better than code",
			code: 0.4, syn: 0.3, pref: 0.7,
			query: "albumin", want: 0.7,
		},
		{
			name: "code wins when priority clearly weaker",
			code: 0.9, syn: 0.5, pref: 0.6,
			query: "albumin", want: 0.9,
		},
		{
			name: "trailing priority falls back to code",
			code: 0.64, syn: 0.53, pref: 0.0,
			query: "albumin", want: 0.64,
		},
		{
			name: "ratio text down-weighted without ratio keyword",
			code: 0.0, syn: 0.9, pref: 0.0,
			synText: "Albumin/Globulin Ratio",
			query:   "albumin/globulin", want: 0.9 * 0.8,
		},
		{
			name: "ratio keyword disables down-weight",
			code: 0.0, syn: 0.9, pref: 0.0,
			synText: "Albumin/Globulin Ratio",
			query:   "albumin/globulin ratio", want: 0.9,
		},
		{
			name: "chinese ratio keyword disables down-weight",
			code: 0.0, syn: 0.0, pref: 0.9,
			prefText: "A/G",
			query:    "白蛋白/球蛋白比值", want: 0.9,
		},
		{
			name: "exact 1.0 is exempt from down-weight",
			code: 0.0, syn: 1.0, pref: 0.0,
			synText: "A/G Ratio;Albumin/Globulin",
			query:   "a/g ratio", want: 1.0,
		},
		{
			name: "exact 1.0 exempt even without ratio keyword",
			code: 0.3, syn: 0.0, pref: 1.0,
			prefText: "Albumin/Globulin",
			query:    "albumin/globulin", want: 1.0,
		},
		{
			name: "each priority field down-weighted on its own text",
			code: 0.0, syn: 0.9, pref: 0.8,
			synText: "A/B", prefText: "AB",
			query: "ab", want: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Fuse(
				[]float64{tt.code}, []float64{tt.syn}, []float64{tt.pref},
				[]string{tt.synText}, []string{tt.prefText}, tt.query,
			)
			require.Len(t, got, 1)
			assert.InDelta(t, tt.want, got[0], 1e-9)
		})
	}
}

func TestFuser_DoesNotModifyInputs(t *testing.T) {
	syn := []float64{0.9}
	NewFuser(DefaultWeights()).Fuse([]float64{0}, syn, []float64{0}, []string{"A/B"}, []string{""}, "x")
	assert.Equal(t, 0.9, syn[0])
}

func TestFuser_CustomWeights(t *testing.T) {
	f := NewFuser(Weights{RatioPenalty: 0.5, ClosenessMargin: 0, PriorityBoost: 2})
	got := f.Fuse([]float64{0.5}, []float64{0.4}, []float64{0}, []string{"A/B"}, []string{""}, "x")
	// 0.4 * 0.5 = 0.2 trails 0.5, boosted to 0.4 which still loses to code
	assert.InDelta(t, 0.5, got[0], 1e-9)
	assert.Equal(t, 0.5, f.Weights().RatioPenalty)

	got = f.Fuse([]float64{0.5}, []float64{0.4}, []float64{0}, []string{"AB"}, []string{""}, "x")
	assert.InDelta(t, 0.8, got[0], 1e-9, "boosted priority wins")
}

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		k      int
		want   []int
	}{
		{"descending", []float64{0.1, 0.9, 0.5}, 3, []int{1, 2, 0}},
		{"ties keep row order", []float64{0.5, 0.7, 0.5, 0.7}, 4, []int{1, 3, 0, 2}},
		{"truncates to k", []float64{0.1, 0.9, 0.5, 0.3}, 2, []int{1, 2}},
		{"k beyond length", []float64{0.2, 0.1}, 10, []int{0, 1}},
		{"empty", nil, 5, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.scores, tt.k))
		})
	}
}
