package report

import (
	"fmt"
	"strings"

	"github.com/poiesic/labmatch/core"
)

// EmptyMessage is rendered instead of a table when there are no results.
const EmptyMessage = "未找到匹配结果。"

// maxCellRunes is the longest cell rendered before truncation.
const maxCellRunes = 50

type layout struct {
	headers []string
	cells   func(r *core.MatchResult) []string
}

var exactLayout = layout{
	headers: []string{"排名", "相似度", "TEST", "TESTDS (描述)", "TESTS_CN (中文)", "TESTS_EN (英文)"},
	cells: func(r *core.MatchResult) []string {
		return []string{r.Code, r.Description, r.Chinese, r.English}
	},
}

var semanticLayout = layout{
	headers: []string{"排名", "相似度", "CDISC Submission Value (E)", "CDISC Synonym(s) (F)", "NCI Preferred Term (H)"},
	cells: func(r *core.MatchResult) []string {
		return []string{r.Code, r.Synonyms, r.PreferredTerm}
	},
}

// layoutFor picks the column layout from the top result.
func layoutFor(results []core.MatchResult) layout {
	if len(results) > 0 && results[0].IsExact() {
		return exactLayout
	}
	return semanticLayout
}

// rows returns the truncated display cells of every result, rank first.
func rows(results []core.MatchResult, l layout) [][]string {
	out := make([][]string, len(results))
	for i := range results {
		row := []string{fmt.Sprintf("%d", i+1), FormatSimilarity(results[i].Similarity)}
		for _, c := range l.cells(&results[i]) {
			row = append(row, Truncate(c))
		}
		out[i] = row
	}
	return out
}

// FormatSimilarity renders a score with four decimals.
func FormatSimilarity(s float64) string {
	return fmt.Sprintf("%.4f", s)
}

// Truncate cuts s to 50 characters followed by "..." when it is longer.
func Truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxCellRunes {
		return s
	}
	return string(r[:maxCellRunes]) + "..."
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

// Markdown renders results as a markdown table headed by the query.
func Markdown(results []core.MatchResult, query string) string {
	if len(results) == 0 {
		return EmptyMessage
	}

	l := layoutFor(results)
	var b strings.Builder
	fmt.Fprintf(&b, "## 查询: %s\n\n", query)

	b.WriteString("|")
	for _, h := range l.headers {
		b.WriteString(" " + h + " |")
	}
	b.WriteString("\n|")
	for range l.headers {
		b.WriteString("------|")
	}
	b.WriteString("\n")

	for _, row := range rows(results, l) {
		b.WriteString("|")
		for _, c := range row {
			b.WriteString(" " + cellEscaper.Replace(c) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}
