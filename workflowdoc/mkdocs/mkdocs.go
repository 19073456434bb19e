// Package mkdocs rewrites the navigation section of an MkDocs manifest.
//
// Only the value of a single navigation entry is replaced. The entry is
// located with the goccy/go-yaml AST and then spliced at the line level, so
// every other byte of the manifest (comments, key order, empty values) is
// kept as written.
package mkdocs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"
)

const (
	// DefaultFilename is the manifest file name looked up next to the
	// definition files.
	DefaultFilename = "mkdocs.yml"
	// DefaultNavKey is the top-level key holding the navigation list.
	DefaultNavKey = "pages"
	// DefaultEntry is the navigation entry whose links are regenerated.
	DefaultEntry = "Workflows"
)

var (
	// ErrInvalidManifest indicates the manifest could not be parsed.
	ErrInvalidManifest = errors.New("invalid manifest")
	// ErrNavEntryNotFound indicates the navigation list or entry is missing.
	ErrNavEntryNotFound = errors.New("nav entry not found")
)

// Link is one generated navigation item, rendered as "Title: File".
type Link struct {
	Title string
	File  string
}

// Options selects the navigation entry to rewrite. Zero values use
// [DefaultNavKey] and [DefaultEntry].
type Options struct {
	NavKey string
	Entry  string
}

// UpdateNav replaces the value of the navigation entry with links, in the
// given order, and returns the rewritten manifest.
//
// The navigation list must be a block sequence under a top-level key. An
// empty links slice renders as "[]".
func UpdateNav(data []byte, links []Link, opts Options) ([]byte, error) {
	navKey := opts.NavKey
	if navKey == "" {
		navKey = DefaultNavKey
	}

	entry := opts.Entry
	if entry == "" {
		entry = DefaultEntry
	}

	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	path := (&yaml.PathBuilder{}).Root().Child(navKey).Build()

	node, err := path.FilterFile(file)
	if err != nil || node == nil {
		return nil, fmt.Errorf("%w: no top-level %q", ErrNavEntryNotFound, navKey)
	}

	seq, ok := node.(*ast.SequenceNode)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %s, not a sequence", ErrInvalidManifest, navKey, node.Type())
	}

	if seq.IsFlowStyle {
		return nil, fmt.Errorf("%w: flow-style %q is not supported", ErrInvalidManifest, navKey)
	}

	item := findEntry(seq, entry)
	if item == nil {
		return nil, fmt.Errorf("%w: %q has no %q entry", ErrNavEntryNotFound, navKey, entry)
	}

	block, err := renderLinks(links)
	if err != nil {
		return nil, err
	}

	out := splice(string(data), item.Key.GetToken().Position, lastLine(item.Value), entry, block)

	_, err = parser.ParseBytes([]byte(out), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: rewritten manifest: %w", ErrInvalidManifest, err)
	}

	return []byte(out), nil
}

// findEntry returns the first sequence item mapping whose first key is entry.
func findEntry(seq *ast.SequenceNode, entry string) *ast.MappingValueNode {
	for _, item := range seq.Values {
		var first *ast.MappingValueNode

		switch n := item.(type) {
		case *ast.MappingValueNode:
			first = n
		case *ast.MappingNode:
			if len(n.Values) > 0 {
				first = n.Values[0]
			}
		}

		if first == nil || first.Key == nil {
			continue
		}

		if first.Key.GetToken().Value == entry {
			return first
		}
	}

	return nil
}

// renderLinks marshals links as a block sequence of single-key mappings.
func renderLinks(links []Link) ([]string, error) {
	if len(links) == 0 {
		return nil, nil
	}

	items := make([]yaml.MapSlice, 0, len(links))
	for _, l := range links {
		items = append(items, yaml.MapSlice{{Key: l.Title, Value: l.File}})
	}

	b, err := yaml.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal links: %w", err)
	}

	return strings.Split(strings.TrimRight(string(b), "\n"), "\n"), nil
}

// lineFinder records the last line holding a token of the walked value.
// Comments are skipped, so a comment trailing the value stays in place.
type lineFinder struct {
	line int
}

func (f *lineFinder) Visit(n ast.Node) ast.Visitor {
	if n == nil {
		return nil
	}

	switch n := n.(type) {
	case *ast.CommentGroupNode, *ast.CommentNode:
		return nil
	case *ast.SequenceNode:
		f.see(n.End)
	case *ast.MappingNode:
		f.see(n.End)
	}

	f.see(n.GetToken())

	return f
}

func (f *lineFinder) see(tk *token.Token) {
	if tk != nil && tk.Position != nil && tk.Position.Line > f.line {
		f.line = tk.Position.Line
	}
}

// lastLine returns the 1-based last line of value, or 0 when it has no
// tokens.
func lastLine(value ast.Node) int {
	if value == nil {
		return 0
	}

	f := &lineFinder{}
	ast.Walk(f, value)

	return f.line
}

// splice rewrites the line holding the entry key at pos and replaces the
// lines of its old value, which ends on line valueEnd, with block indented
// to the key's column. CRLF line endings are kept.
func splice(src string, pos *token.Position, valueEnd int, entry string, block []string) string {
	crlf := strings.Contains(src, "\r\n")
	if crlf {
		src = strings.ReplaceAll(src, "\r\n", "\n")
	}

	lines := strings.Split(src, "\n")
	idx := pos.Line - 1
	keyCol := pos.Column - 1
	end := max(idx, min(valueEnd-1, len(lines)-1))

	head := lines[idx][:keyCol] + entry + ":"
	if len(block) == 0 {
		head += " []"
	}

	replacement := []string{head}
	pad := strings.Repeat(" ", keyCol)

	for _, line := range block {
		replacement = append(replacement, pad+line)
	}

	out := make([]string, 0, len(lines)-(end-idx)+len(block))
	out = append(out, lines[:idx]...)
	out = append(out, replacement...)
	out = append(out, lines[end+1:]...)

	joined := strings.Join(out, "\n")
	if crlf {
		joined = strings.ReplaceAll(joined, "\n", "\r\n")
	}

	return joined
}
