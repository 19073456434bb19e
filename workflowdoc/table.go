package workflowdoc

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-runewidth"
)

const (
	colName        = "name"
	colRequired    = "required"
	colType        = "type"
	colDescription = "description"
	colDefault     = "default"

	// Headers are padded to at least their width plus this many cells.
	minHeaderPadding = 2
)

var fixedColumns = []string{colName, colRequired, colType, colDescription}

// Table renders rows as a pipe-delimited Markdown table.
//
// The column set is the union of all row keys. Present fixed columns come
// first in the order name, required, type, description; any other columns
// are sorted and placed immediately before the last fixed column. Missing
// cells are empty, "default" cells are rendered as inline code, and
// "required" cells read "Required" for boolean true and "Optional"
// otherwise. Headers are title-cased.
func Table(rows []yaml.MapSlice) string {
	columns := sortColumns(collectColumns(rows))
	if len(columns) == 0 {
		return ""
	}

	cells := make([][]string, len(rows))
	for r := range cells {
		cells[r] = make([]string, len(columns))
	}

	// Columns holding only numbers are right-aligned.
	numeric := make([]bool, len(columns))

	for c, col := range columns {
		numeric[c] = col != colDefault && col != colRequired
		seen := false

		for r, row := range rows {
			v := lookup(row, col)
			cells[r][c] = cellValue(col, v)

			if v == nil {
				continue
			}

			seen = true

			if !isNumber(v) {
				numeric[c] = false
			}
		}

		numeric[c] = numeric[c] && seen
	}

	headers := make([]string, len(columns))
	widths := make([]int, len(columns))

	for c, col := range columns {
		headers[c] = TitleCase(col)
		widths[c] = runewidth.StringWidth(headers[c]) + minHeaderPadding

		for _, row := range cells {
			widths[c] = max(widths[c], runewidth.StringWidth(row[c]))
		}
	}

	var sb strings.Builder

	writeRow(&sb, headers, widths, numeric)

	sb.WriteByte('|')

	for c, w := range widths {
		if numeric[c] {
			sb.WriteString(strings.Repeat("-", w+1) + ":|")
		} else {
			sb.WriteString(":" + strings.Repeat("-", w+1) + "|")
		}
	}

	for _, row := range cells {
		sb.WriteByte('\n')
		writeRow(&sb, row, widths, numeric)
	}

	return sb.String()
}

// TitleCase upper-cases the first letter of every run of letters and
// lower-cases the rest, so "max_value" becomes "Max_Value".
func TitleCase(s string) string {
	var sb strings.Builder

	inWord := false

	for _, r := range s {
		if !unicode.IsLetter(r) {
			inWord = false

			sb.WriteRune(r)

			continue
		}

		if inWord {
			sb.WriteRune(unicode.ToLower(r))
		} else {
			sb.WriteRune(unicode.ToUpper(r))
		}

		inWord = true
	}

	return sb.String()
}

func writeRow(sb *strings.Builder, row []string, widths []int, rightAlign []bool) {
	sb.WriteByte('|')

	for c, cell := range row {
		pad := strings.Repeat(" ", widths[c]-runewidth.StringWidth(cell))

		sb.WriteByte(' ')

		if rightAlign[c] {
			sb.WriteString(pad + cell)
		} else {
			sb.WriteString(cell + pad)
		}

		sb.WriteString(" |")
	}
}

// collectColumns returns the union of row keys in order of first appearance.
func collectColumns(rows []yaml.MapSlice) []string {
	var columns []string

	for _, row := range rows {
		for _, item := range row {
			key := fmt.Sprint(item.Key)
			if !slices.Contains(columns, key) {
				columns = append(columns, key)
			}
		}
	}

	return columns
}

func sortColumns(columns []string) []string {
	var fixed, rest []string

	for _, col := range fixedColumns {
		if slices.Contains(columns, col) {
			fixed = append(fixed, col)
		}
	}

	for _, col := range columns {
		if !slices.Contains(fixedColumns, col) {
			rest = append(rest, col)
		}
	}

	slices.Sort(rest)

	if len(fixed) == 0 {
		return rest
	}

	last := fixed[len(fixed)-1]
	out := make([]string, 0, len(columns))
	out = append(out, fixed[:len(fixed)-1]...)
	out = append(out, rest...)

	return append(out, last)
}

func lookup(row yaml.MapSlice, key string) any {
	for _, item := range row {
		if fmt.Sprint(item.Key) == key {
			return item.Value
		}
	}

	return nil
}

func cellValue(col string, v any) string {
	if v == nil {
		return ""
	}

	switch col {
	case colRequired:
		if b, ok := v.(bool); ok && b {
			return "Required"
		}

		return "Optional"

	case colDefault:
		return "`" + formatValue(v) + "`"
	}

	return formatValue(v)
}

// formatValue renders a decoded YAML value on a single line. Collections are
// rendered in YAML flow style.
func formatValue(v any) string {
	var s string

	switch val := v.(type) {
	case string:
		s = val
	case bool:
		s = strconv.FormatBool(val)
	case int, int64, uint64, float64:
		s = fmt.Sprint(val)
	default:
		b, err := yaml.MarshalWithOptions(val, yaml.Flow(true))
		if err != nil {
			s = fmt.Sprint(val)
		} else {
			s = string(b)
		}
	}

	s = strings.Join(strings.Fields(s), " ")

	return strings.ReplaceAll(s, "|", `\|`)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int64, uint64, float64:
		return true
	}

	return false
}
