package workflowdoc

import (
	"regexp"
	"strings"
)

const (
	// DefaultArgumentType is the type given to untyped parameters.
	DefaultArgumentType = "Object"

	// DefaultDocVariable is the variable holding the long-form documentation
	// string in a definition file.
	DefaultDocVariable = "workflowDoc"

	deprecatedMarker = "@Deprecated"
	docOpen          = "/*"
	docClose         = "*/"
	tripleQuote      = "'''"
)

var (
	// MethodDefRegex matches a top-level declaration such as
	// "public run(String name) {". The parameter list may be empty.
	methodDefRegex = regexp.MustCompile(`^public (?P<name>.+?)\((?P<args>.*?)\) \{$`)

	// MethodEndRegex matches the column-zero brace closing a declaration.
	methodEndRegex = regexp.MustCompile(`^\}$`)
)

// Argument is a single declared parameter.
type Argument struct {
	Type string
	Name string
}

// Method is a declaration found in a definition file.
type Method struct {
	Name string
	Args []Argument
	// Body holds the lines strictly between the declaration and its closing
	// brace.
	Body []string
	// Doc holds the raw YAML found in the comment block immediately above the
	// declaration. Empty when there is none.
	Doc        string
	Deprecated bool
}

// ParseArguments parses a comma-separated parameter list.
//
// Each entry is split into whitespace-separated tokens. With two or more
// tokens the first is the type and the second the name; extra tokens are
// ignored. A single token is a name of type [DefaultArgumentType]. An empty
// list yields no arguments.
func ParseArguments(raw string) []Argument {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	args := make([]Argument, 0, len(parts))

	for _, part := range parts {
		fields := strings.Fields(part)

		switch len(fields) {
		case 0:
			args = append(args, Argument{Type: DefaultArgumentType})
		case 1:
			args = append(args, Argument{Type: DefaultArgumentType, Name: fields[0]})
		default:
			args = append(args, Argument{Type: fields[0], Name: fields[1]})
		}
	}

	return args
}

// ExtractMethods scans lines for top-level declarations and returns them in
// file order.
//
// Only one declaration is open at a time, and it is closed by the first
// column-zero "}" that follows. A nested block whose closing brace sits at
// column zero therefore ends the declaration early. Blank lines are ignored
// entirely, including when looking above a declaration for its doc comment
// or deprecation marker.
func ExtractMethods(lines []string) []Method {
	var (
		methods []Method
		open    []string
		start   = -1
	)

	for i, line := range lines {
		if isBlank(line) {
			continue
		}

		if start < 0 {
			m := methodDefRegex.FindStringSubmatch(line)
			if m != nil {
				start = i
				open = m
			}

			continue
		}

		if !methodEndRegex.MatchString(line) {
			continue
		}

		method := Method{
			Name: open[methodDefRegex.SubexpIndex("name")],
			Args: ParseArguments(open[methodDefRegex.SubexpIndex("args")]),
			Body: append([]string(nil), lines[start+1:i]...),
		}

		method.Doc, method.Deprecated = annotations(lines, start)
		methods = append(methods, method)

		start = -1
		open = nil
	}

	return methods
}

// annotations inspects the nearest non-blank line above the declaration at
// index decl. A doc comment wins over a deprecation marker.
func annotations(lines []string, decl int) (string, bool) {
	prev := previousNonBlank(lines, decl)
	if prev < 0 {
		return "", false
	}

	above := strings.TrimSpace(lines[prev])

	switch {
	case above == docClose:
		for j := prev - 1; j >= 0; j-- {
			if strings.TrimSpace(lines[j]) == docOpen {
				return strings.Join(lines[j+1:prev], "\n"), false
			}
		}

		return "", false

	case len(above) >= len(docOpen)+len(docClose) &&
		strings.HasPrefix(above, docOpen) && strings.HasSuffix(above, docClose):
		inner := strings.TrimSuffix(strings.TrimPrefix(above, docOpen), docClose)

		return strings.TrimSpace(inner), false

	case strings.HasPrefix(above, deprecatedMarker):
		return "", true
	}

	return "", false
}

// ExtractWorkflowDoc returns the lines of the long-form documentation string
// assigned to variable, with empty lines removed. The block starts at the
// first line beginning with the variable name, " = " and three single
// quotes, and ends at the next line that is only three single quotes once
// trimmed. ok is false when no complete block exists.
func ExtractWorkflowDoc(lines []string, variable string) ([]string, bool) {
	if variable == "" {
		variable = DefaultDocVariable
	}

	opener := variable + " = " + tripleQuote
	start := -1

	for i, line := range lines {
		if start < 0 {
			if strings.HasPrefix(line, opener) {
				start = i
			}

			continue
		}

		if strings.TrimSpace(line) != tripleQuote {
			continue
		}

		doc := make([]string, 0, i-start-1)

		for _, l := range lines[start+1 : i] {
			if l != "" {
				doc = append(doc, l)
			}
		}

		return doc, true
	}

	return nil, false
}

func previousNonBlank(lines []string, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !isBlank(lines[j]) {
			return j
		}
	}

	return -1
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
