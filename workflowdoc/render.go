package workflowdoc

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultReservedMethods are declarations that never get a section in the
// rendered page.
var DefaultReservedMethods = []string{"getStageName", "tests"}

// WorkflowDoc is the long-form documentation of a definition file.
type WorkflowDoc struct {
	Title               string     `json:"title,omitempty"                yaml:"title"                jsonschema:"page title"`
	Overview            string     `json:"overview,omitempty"             yaml:"overview"             jsonschema:"summary rendered as a blockquote"`
	Disclaimer          string     `json:"disclaimer,omitempty"           yaml:"disclaimer"`
	Functionality       string     `json:"functionality,omitempty"        yaml:"functionality"`
	Tools               []any      `json:"tools,omitempty"                yaml:"tools"                jsonschema:"rows of the tools table"`
	FullExample         string     `json:"full_example,omitempty"         yaml:"full_example"         jsonschema:"complete pipeline using this workflow"`
	AdditionalResources []Resource `json:"additional_resources,omitempty" yaml:"additional_resources"`
}

// Resource is a link listed under "Additional Resources".
type Resource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url"  yaml:"url"`
}

// MethodDoc is the documentation comment of a single declaration.
type MethodDoc struct {
	Description string    `json:"description,omitempty" yaml:"description"`
	Parameters  []any     `json:"parameters,omitempty"  yaml:"parameters"  jsonschema:"rows of the parameters table"`
	Example     string    `json:"example,omitempty"     yaml:"example"`
	Examples    []Example `json:"examples,omitempty"    yaml:"examples"`
}

// Example is one named entry of [MethodDoc.Examples].
type Example struct {
	Name string `json:"name" yaml:"name"`
	Code string `json:"code" yaml:"code"`
}

// Renderer turns extracted documentation into Markdown.
type Renderer struct {
	// Validator, when set, checks every doc block before rendering.
	Validator *Validator
	// Reserved lists method names that are left out of the page.
	Reserved []string
}

// Render builds the Markdown page for the definition file called name.
//
// doc holds the lines of the file's long-form documentation block, as
// returned by [ExtractWorkflowDoc]. An empty doc returns an error wrapping
// [ErrMissingWorkflowDoc]. Rendering is deterministic.
func (r *Renderer) Render(name string, doc []string, methods []Method) ([]byte, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingWorkflowDoc, name)
	}

	raw := dedent(doc)

	if r.Validator != nil {
		err := r.Validator.ValidateWorkflow(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDoc, name, err)
		}
	}

	var wd WorkflowDoc

	err := yaml.UnmarshalWithOptions(raw, &wd, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDoc, name, err)
	}

	title := wd.Title
	if title == "" {
		title = TitleCase(strings.TrimSuffix(name, filepath.Ext(name)))
	}

	lines := []string{"# " + title}

	if wd.Overview != "" {
		lines = append(lines, "\n## Overview", "\n"+blockquote(wd.Overview))
	}

	if wd.Disclaimer != "" {
		lines = append(lines, "\n## Disclaimer", "\n"+trimNewlines(wd.Disclaimer))
	}

	if wd.Functionality != "" {
		lines = append(lines, "\n## Functionality", "\n"+trimNewlines(wd.Functionality))
	}

	if len(wd.Tools) > 0 {
		rows, err := mappingRows(wd.Tools)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: tools: %w", ErrInvalidDoc, name, err)
		}

		lines = append(lines, "\n## Tools Section", "\n"+Table(rows))
	}

	lines = append(lines, "\n## Available Methods")

	for _, m := range methods {
		if r.reserved(m.Name) {
			continue
		}

		section, err := r.renderMethod(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		lines = append(lines, section...)
	}

	if wd.FullExample != "" {
		lines = append(lines, "\n## Full Example Pipeline", "\n"+fenced(wd.FullExample))
	}

	if len(wd.AdditionalResources) > 0 {
		lines = append(lines, "\n## Additional Resources\n")

		for _, res := range wd.AdditionalResources {
			lines = append(lines, fmt.Sprintf("* [%s](%s)", res.Name, res.URL))
		}
	}

	return []byte(strings.Join(lines, "\n") + "\n"), nil
}

func (r *Renderer) renderMethod(m Method) ([]string, error) {
	name := strings.Trim(m.Name, "'")

	header := "\n### " + name
	if m.Deprecated {
		header += " (DEPRECATED)"
	}

	lines := []string{header}

	if strings.TrimSpace(m.Doc) == "" {
		return lines, nil
	}

	raw := dedent(strings.Split(m.Doc, "\n"))

	if r.Validator != nil {
		err := r.Validator.ValidateMethod(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: method %s: %w", ErrInvalidDoc, name, err)
		}
	}

	var md MethodDoc

	err := yaml.UnmarshalWithOptions(raw, &md, yaml.UseOrderedMap())
	if err != nil {
		return nil, fmt.Errorf("%w: method %s: %w", ErrInvalidDoc, name, err)
	}

	if md.Description != "" {
		lines = append(lines, "\n"+blockquote(md.Description))
	}

	if len(md.Parameters) > 0 {
		rows, err := mappingRows(md.Parameters)
		if err != nil {
			return nil, fmt.Errorf("%w: method %s: parameters: %w", ErrInvalidDoc, name, err)
		}

		lines = append(lines, "\n"+Table(rows))
	} else {
		lines = append(lines, "\nNo Parameters")
	}

	switch {
	case md.Example != "":
		lines = append(lines, "\n### "+name+" Example", "\n"+fenced(md.Example))

	case len(md.Examples) > 0:
		lines = append(lines, "\n### "+name+" Examples")

		for _, ex := range md.Examples {
			lines = append(lines, "\n#### "+ex.Name, "\n"+fenced(ex.Code))
		}
	}

	return lines, nil
}

func (r *Renderer) reserved(name string) bool {
	reserved := r.Reserved
	if reserved == nil {
		reserved = DefaultReservedMethods
	}

	return slices.Contains(reserved, name) || slices.Contains(reserved, strings.Trim(name, "'"))
}

// mappingRows converts a decoded YAML sequence into table rows. Every item
// must be a mapping.
func mappingRows(items []any) ([]yaml.MapSlice, error) {
	rows := make([]yaml.MapSlice, 0, len(items))

	for i, item := range items {
		switch row := item.(type) {
		case yaml.MapSlice:
			rows = append(rows, row)
		case nil:
			rows = append(rows, yaml.MapSlice{})
		default:
			return nil, fmt.Errorf("item %d: expected a mapping, got %T", i, item)
		}
	}

	return rows, nil
}

func blockquote(s string) string {
	lines := strings.Split(trimNewlines(s), "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}

	return strings.Join(lines, "\n")
}

func fenced(code string) string {
	return "```yaml\n" + trimNewlines(code) + "\n```"
}

func trimNewlines(s string) string {
	return strings.TrimRight(s, "\n")
}

// dedent joins lines after removing the indentation they all share, so YAML
// nested inside an indented string or comment parses from column zero.
func dedent(lines []string) []byte {
	indent := ""
	found := false

	for _, line := range lines {
		if isBlank(line) {
			continue
		}

		lead := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if !found {
			indent, found = lead, true

			continue
		}

		for !strings.HasPrefix(lead, indent) {
			indent = indent[:len(indent)-1]
		}
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimPrefix(line, indent)
	}

	return []byte(strings.Join(out, "\n"))
}
