package fbref

import (
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const scheduleHTML = `<html><body>
<table id="matchlogs_for">
<thead><tr>
<th>Date</th><th>Comp</th><th>Round</th><th>Venue</th><th>Result</th>
<th>GF</th><th>GA</th><th>Opponent</th><th>Attendance</th><th>Match Report</th><th>Notes</th>
</tr></thead>
<tbody>
<tr>
<th>2024-08-17</th><td>La Liga</td><td>Matchweek 1</td><td>Home</td><td>W</td>
<td>2 (1)</td><td>1</td><td>Valencia</td><td>40,000</td>
<td data-stat="match_report"><a href="/en/matches/abc123">Match Report</a></td><td></td>
</tr>
<tr class="thead"><th>Date</th><td>Comp</td><td>Round</td><td>Venue</td><td>Result</td><td>GF</td><td>GA</td><td>Opponent</td><td>Attendance</td><td></td><td></td></tr>
<tr>
<th>2024-08-24</th><td>La Liga</td><td>Matchweek 2</td><td>Away</td><td></td>
<td></td><td></td><td>Sevilla</td><td></td>
<td data-stat="match_report"></td><td>nan</td>
</tr>
</tbody>
</table>
</body></html>`

const groupedHTML = `<html><body>
<table id="stats_abc_summary">
<thead>
<tr><th colspan="3"></th><th colspan="2">Performance</th><th colspan="2">Passes</th></tr>
<tr><th>Player</th><th>#</th><th>Min</th><th>Gls</th><th>Ast</th><th>Cmp</th><th>Cmp%</th></tr>
</thead>
<tbody>
<tr><th>Ana Silva</th><td>9</td><td>90</td><td>1</td><td>0</td><td>30</td><td>85.7</td></tr>
<tr><th>14 Players</th><td></td><td>90</td><td>1</td><td>0</td><td>30</td><td>85.7</td></tr>
</tbody>
</table>
</body></html>`

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test html: %v", err)
	}
	return doc
}

func TestTableByID_ScheduleTable(t *testing.T) {
	doc := mustDoc(t, scheduleHTML)

	tbl, ok := TableByID(doc, "matchlogs_for", "https://fbref.com")
	if !ok {
		t.Fatal("expected schedule table to be found")
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("expected 2 data rows (repeated header dropped), got %d", len(tbl.Rows))
	}

	first := tbl.Rows[0]
	if got := first.Cell("Opponent"); got != "Valencia" {
		t.Fatalf("unexpected opponent: %q", got)
	}
	if got := first.ReportURL; got != "https://fbref.com/en/matches/abc123" {
		t.Fatalf("unexpected report url: %q", got)
	}

	second := tbl.Rows[1]
	if got := second.ReportURL; got != "" {
		t.Fatalf("expected empty report url for future fixture, got %q", got)
	}
	if got := second.Cell("Notes"); got != "" {
		t.Fatalf("expected nan notes normalized to empty, got %q", got)
	}
}

func TestTableByID_Absent(t *testing.T) {
	doc := mustDoc(t, "<html><body><p>postponed</p></body></html>")

	if _, ok := TableByID(doc, "matchlogs_for", "https://fbref.com"); ok {
		t.Fatal("expected no table for a page without one")
	}
}

func TestTablesMatching_FlattensMultiLevelHeaders(t *testing.T) {
	doc := mustDoc(t, groupedHTML)

	tables := TablesMatching(doc, regexp.MustCompile(`^stats_.*_summary$`), "https://fbref.com")
	if len(tables) != 1 {
		t.Fatalf("expected 1 matching table, got %d", len(tables))
	}

	tbl := tables[0]
	want := []string{"Player", "#", "Min", "Performance_Gls", "Performance_Ast", "Passes_Cmp", "Passes_Cmp%"}
	if len(tbl.Headers) != len(want) {
		t.Fatalf("unexpected header count: %v", tbl.Headers)
	}
	for i, header := range want {
		if tbl.Headers[i] != header {
			t.Fatalf("header %d: want %q, got %q", i, header, tbl.Headers[i])
		}
	}

	if got := tbl.Rows[0].Cell("Performance_Gls"); got != "1" {
		t.Fatalf("unexpected grouped cell value: %q", got)
	}
}

func TestTablesMatching_NoMatches(t *testing.T) {
	doc := mustDoc(t, scheduleHTML)

	if tables := TablesMatching(doc, regexp.MustCompile(`^keeper_stats_.*`), "https://fbref.com"); len(tables) != 0 {
		t.Fatalf("expected no keeper tables, got %d", len(tables))
	}
}
