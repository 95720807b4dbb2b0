package services

import (
	"fmt"
	"os"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"recruit-scraper/export"
	"recruit-scraper/models"
)

// newTableWriter creates a terminal table writer with the house style
func newTableWriter() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderTable prints the first limit rows of a flattened batch to the
// terminal; limit <= 0 prints everything. Null cells render empty.
func RenderTable(flat *export.Table, limit int) {
	t := newTableWriter()
	header := make(table.Row, 0, len(flat.Columns))
	for _, column := range flat.Columns {
		header = append(header, column)
	}
	t.AppendHeader(header)

	for i, row := range flat.Rows {
		if limit > 0 && i >= limit {
			break
		}
		cells := make(table.Row, 0, len(flat.Columns))
		for _, column := range flat.Columns {
			text, _ := flat.CellString(row, column)
			cells = append(cells, text)
		}
		t.AppendRow(cells)
	}
	t.Render()
	if limit > 0 && len(flat.Rows) > limit {
		fmt.Printf("... and %d more rows\n", len(flat.Rows)-limit)
	}
}

// PrintInsightReport formats and prints the insight report to terminal
func PrintInsightReport(report *models.InsightReport) {
	t := newTableWriter()
	t.SetTitle("Recruiting Class Insights")
	t.AppendRow(table.Row{"Total Players", report.TotalPlayers})
	t.AppendRow(table.Row{"Committed", report.Committed})
	t.AppendRow(table.Row{"Predicted", report.Predicted})
	t.AppendRow(table.Row{"Undeclared", report.Undeclared})
	if report.TopRanked != nil {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Top Ranked", report.TopRanked.RecruitName})
		if report.TopRanked.PrimaryRanking != nil {
			t.AppendRow(table.Row{"Top Ranking", *report.TopRanked.PrimaryRanking})
		}
		t.AppendRow(table.Row{"Top Position", report.TopRanked.Position})
		t.AppendRow(table.Row{"Top Status", report.TopRanked.Status})
	}
	t.Render()

	printCountTable("Players Per State", report.PlayersByState)
	printCountTable("Players Per Position", report.PlayersByPosition)
	printCountTable("Commits Per Team", report.CommitsByTeam)
}

func printCountTable(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	t := newTableWriter()
	t.SetTitle(title)
	for _, key := range sortedKeys(counts) {
		t.AppendRow(table.Row{key, counts[key]})
	}
	t.Render()
}

// sortedKeys orders map keys by descending count, then name
func sortedKeys(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}
