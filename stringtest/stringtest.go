// Package stringtest provides helpers for writing multi-line fixtures and
// expected output in tests.
package stringtest

import "strings"

// Input prepares a raw string literal for use as test input.
//
// It drops one leading newline and one trailing newline (after trailing
// spaces and tabs), removes the indentation shared by all non-blank lines,
// and empties whitespace-only lines. This lets fixtures be indented along
// with the surrounding test code.
//
// Example:
//
//	in := stringtest.Input(`
//		/*
//		description: hi
//		*/
//	`) // -> "/*\ndescription: hi\n*/"
func Input(s string) string {
	s = strings.TrimRight(s, " \t")
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")
	indent := commonIndent(lines)

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""

			continue
		}

		lines[i] = line[len(indent):]
	}

	return strings.Join(lines, "\n")
}

// Lines returns [Input] split into lines.
func Lines(s string) []string {
	return strings.Split(Input(s), "\n")
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"# Title",
//		"",
//		"## Available Methods",
//	) // -> "# Title\n\n## Available Methods"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

func commonIndent(lines []string) string {
	indent := ""
	found := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			indent = lead
			found = true

			continue
		}

		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
	}

	return indent
}
