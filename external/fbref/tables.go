package fbref

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Table is one HTML stats table reduced to flattened headers and cell
// maps. Multi-level headers are joined with "_" ("Performance" over "Gls"
// becomes "Performance_Gls"); blank over-header cells contribute nothing.
type Table struct {
	ID      string
	Headers []string
	Rows    []Row
}

// Row maps flattened header to cell text, plus the row's outbound match
// report link when the table carries one.
type Row struct {
	Cells     map[string]string
	ReportURL string
}

func (t Table) Empty() bool {
	return len(t.Rows) == 0
}

// Cell returns the trimmed cell text for a header, with the site's "nan"
// sentinel normalized to an empty string.
func (r Row) Cell(header string) string {
	value := strings.TrimSpace(r.Cells[header])
	if strings.EqualFold(value, "nan") {
		return ""
	}
	return value
}

// TableByID extracts a single table by exact id. The second return is
// false when the document has no such table: future and postponed
// fixtures legitimately lack report tables, so absence is not an error.
func TableByID(doc *goquery.Document, id, baseURL string) (Table, bool) {
	var out Table
	found := false
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("id", "") != id {
			return true
		}
		out = parseTable(sel, id, baseURL)
		found = true
		return false
	})
	return out, found
}

// TablesMatching extracts every table whose id matches the pattern, in
// document order.
func TablesMatching(doc *goquery.Document, pattern *regexp.Regexp, baseURL string) []Table {
	var out []Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		id := sel.AttrOr("id", "")
		if id == "" || !pattern.MatchString(id) {
			return
		}
		out = append(out, parseTable(sel, id, baseURL))
	})
	return out
}

func parseTable(sel *goquery.Selection, id, baseURL string) Table {
	headers := flattenHeaders(headerLevels(sel))

	table := Table{ID: id, Headers: headers}
	sel.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		// The site repeats header rows inside long tbodies.
		if tr.HasClass("thead") || tr.HasClass("spacer") {
			return
		}

		row := Row{Cells: make(map[string]string, len(headers))}
		tr.Find("th, td").Each(func(i int, cell *goquery.Selection) {
			if i >= len(headers) {
				return
			}
			row.Cells[headers[i]] = strings.TrimSpace(cell.Text())
			if cell.AttrOr("data-stat", "") == "match_report" {
				if href, ok := cell.Find("a").Attr("href"); ok {
					row.ReportURL = absolutize(baseURL, href)
				}
			}
		})
		if len(row.Cells) > 0 {
			table.Rows = append(table.Rows, row)
		}
	})

	return table
}

// headerLevels expands each thead row into one cell text per column,
// honoring colspan so over-headers line up with their columns.
func headerLevels(sel *goquery.Selection) [][]string {
	var levels [][]string
	sel.Find("thead tr").Each(func(_ int, tr *goquery.Selection) {
		var level []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			span := 1
			if raw, ok := cell.Attr("colspan"); ok {
				if parsed := parseSpan(raw); parsed > 1 {
					span = parsed
				}
			}
			text := strings.TrimSpace(cell.Text())
			for i := 0; i < span; i++ {
				level = append(level, text)
			}
		})
		levels = append(levels, level)
	})
	return levels
}

func flattenHeaders(levels [][]string) []string {
	if len(levels) == 0 {
		return nil
	}

	width := 0
	for _, level := range levels {
		if len(level) > width {
			width = len(level)
		}
	}

	out := make([]string, 0, width)
	for col := 0; col < width; col++ {
		var parts []string
		for _, level := range levels {
			if col >= len(level) {
				continue
			}
			if text := level[col]; text != "" {
				parts = append(parts, text)
			}
		}
		out = append(out, strings.Join(parts, "_"))
	}
	return out
}

func parseSpan(raw string) int {
	n := 0
	for _, r := range strings.TrimSpace(raw) {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

func absolutize(baseURL, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return strings.TrimSuffix(baseURL, "/") + href
}
