package workflowdoc_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"

	"go.jacobcolvin.com/docgen/stringtest"
	"go.jacobcolvin.com/docgen/workflowdoc"
)

func TestTable(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rows []yaml.MapSlice
		want string
	}{
		"parameters": {
			rows: []yaml.MapSlice{
				{
					{Key: "name", Value: "image"},
					{Key: "type", Value: "String"},
					{Key: "required", Value: true},
					{Key: "description", Value: "Docker image"},
				},
				{
					{Key: "name", Value: "tag"},
					{Key: "description", Value: "Image tag"},
				},
			},
			want: stringtest.JoinLF(
				"| Name   | Required   | Type   | Description   |",
				"|:-------|:-----------|:-------|:--------------|",
				"| image  | Required   | String | Docker image  |",
				"| tag    |            |        | Image tag     |",
			),
		},
		"numeric columns right aligned": {
			rows: []yaml.MapSlice{
				{{Key: "zeta", Value: uint64(1)}, {Key: "alpha", Value: 2}},
			},
			want: stringtest.JoinLF(
				"|   Alpha |   Zeta |",
				"|--------:|-------:|",
				"|       2 |      1 |",
			),
		},
		"mixed numbers flush right": {
			rows: []yaml.MapSlice{
				{{Key: "version", Value: 8.5}},
				{{Key: "version", Value: uint64(17)}},
			},
			want: stringtest.JoinLF(
				"|   Version |",
				"|----------:|",
				"|       8.5 |",
				"|        17 |",
			),
		},
		"no columns": {
			rows: []yaml.MapSlice{{}},
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, workflowdoc.Table(tc.rows))
		})
	}
}

func TestTableColumns(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		rows []yaml.MapSlice
		want []string
	}{
		"fixed order": {
			rows: []yaml.MapSlice{{
				{Key: "description", Value: "d"},
				{Key: "type", Value: "t"},
				{Key: "required", Value: false},
				{Key: "name", Value: "n"},
			}},
			want: []string{"Name", "Required", "Type", "Description"},
		},
		"extra columns before last fixed column": {
			rows: []yaml.MapSlice{{
				{Key: "name", Value: "a"},
				{Key: "example", Value: "e"},
				{Key: "description", Value: "d"},
				{Key: "default", Value: "x"},
			}},
			want: []string{"Name", "Default", "Example", "Description"},
		},
		"extra columns only": {
			rows: []yaml.MapSlice{{
				{Key: "zeta", Value: "z"},
				{Key: "alpha", Value: "a"},
			}},
			want: []string{"Alpha", "Zeta"},
		},
		"union of rows": {
			rows: []yaml.MapSlice{
				{{Key: "name", Value: "a"}},
				{{Key: "type", Value: "String"}},
			},
			want: []string{"Name", "Type"},
		},
		"title cased headers": {
			rows: []yaml.MapSlice{{
				{Key: "name", Value: "a"},
				{Key: "max_value", Value: "1"},
			}},
			want: []string{"Max_Value", "Name"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tableRows(workflowdoc.Table(tc.rows))
			assert.Equal(t, tc.want, got[0])
		})
	}
}

func TestTableCells(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		row  yaml.MapSlice
		want []string
	}{
		"required true": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "required", Value: true}},
			want: []string{"a", "Required"},
		},
		"required false": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "required", Value: false}},
			want: []string{"a", "Optional"},
		},
		"required not a boolean": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "required", Value: "yes"}},
			want: []string{"a", "Optional"},
		},
		"required null": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "required", Value: nil}},
			want: []string{"a", ""},
		},
		"default as code": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "default", Value: "main"}},
			want: []string{"a", "`main`"},
		},
		"default boolean": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "default", Value: false}},
			want: []string{"a", "`false`"},
		},
		"newlines collapsed": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "description", Value: "first\nsecond\n"}},
			want: []string{"a", "first second"},
		},
		"pipes escaped": {
			row:  yaml.MapSlice{{Key: "name", Value: "a"}, {Key: "description", Value: "x | y"}},
			want: []string{"a", `x \| y`},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tableRows(workflowdoc.Table([]yaml.MapSlice{tc.row}))
			assert.Len(t, got, 3)
			assert.Equal(t, tc.want, got[2])
		})
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"word":       {input: "name", want: "Name"},
		"underscore": {input: "max_value", want: "Max_Value"},
		"dash":       {input: "build-tools", want: "Build-Tools"},
		"upper":      {input: "DEPLOY", want: "Deploy"},
		"digits":     {input: "2nd stage", want: "2Nd Stage"},
		"empty":      {input: "", want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, workflowdoc.TitleCase(tc.input))
		})
	}
}

// tableRows splits a rendered table into trimmed cells.
func tableRows(table string) [][]string {
	var rows [][]string

	for line := range strings.SplitSeq(table, "\n") {
		// Escaped pipes are not column separators.
		line = strings.ReplaceAll(line, `\|`, "\x00")
		parts := strings.Split(strings.Trim(line, "|"), "|")

		cells := make([]string, 0, len(parts))
		for _, p := range parts {
			cells = append(cells, strings.ReplaceAll(strings.TrimSpace(p), "\x00", `\|`))
		}

		rows = append(rows, cells)
	}

	return rows
}
