package workflowdoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"go.jacobcolvin.com/docgen/workflowdoc/mkdocs"
)

// Sentinel errors returned by the generator.
var (
	ErrMissingWorkflowDoc = errors.New("missing workflow documentation")
	ErrMissingOutPath     = errors.New("missing output directory")
	ErrInvalidDoc         = errors.New("invalid documentation")
	ErrInvalidOption      = errors.New("invalid option")
	ErrReadInput          = errors.New("read input")
	ErrWriteOutput        = errors.New("write output")
)

const (
	// DefaultPattern matches definition files by name.
	DefaultPattern = "*.groovy"
	// DefaultExcludePrefix marks definition files that are skipped.
	DefaultExcludePrefix = "example"
)

// Generator renders the definition files of a directory to Markdown and
// updates the MkDocs navigation.
type Generator struct {
	logger        *slog.Logger
	dir           string
	outDir        string
	pattern       string
	excludePrefix string
	docVariable   string
	manifest      string
	nav           mkdocs.Options
	reserved      []string
	strict        bool
}

// Option configures a Generator.
type Option func(*Generator)

// NewGenerator creates a Generator with the given options. The output
// directory must be set with [WithOutDir] before calling [Generator.Run].
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		logger:        slog.Default(),
		dir:           ".",
		pattern:       DefaultPattern,
		excludePrefix: DefaultExcludePrefix,
		docVariable:   DefaultDocVariable,
		manifest:      mkdocs.DefaultFilename,
		reserved:      DefaultReservedMethods,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithDir sets the directory holding the definition files and the manifest.
func WithDir(dir string) Option {
	return func(g *Generator) {
		g.dir = dir
	}
}

// WithOutDir sets the directory Markdown files are written to. It is
// created if absent.
func WithOutDir(dir string) Option {
	return func(g *Generator) {
		g.outDir = dir
	}
}

// WithPattern sets the glob matched against definition file names.
func WithPattern(pattern string) Option {
	return func(g *Generator) {
		g.pattern = pattern
	}
}

// WithExcludePrefix skips definition files whose name starts with prefix.
// An empty prefix skips nothing.
func WithExcludePrefix(prefix string) Option {
	return func(g *Generator) {
		g.excludePrefix = prefix
	}
}

// WithDocVariable sets the variable holding the long-form documentation.
func WithDocVariable(name string) Option {
	return func(g *Generator) {
		g.docVariable = name
	}
}

// WithManifest sets the manifest file name, relative to the input
// directory. An empty name disables the navigation update.
func WithManifest(name string) Option {
	return func(g *Generator) {
		g.manifest = name
	}
}

// WithNav selects the navigation entry to regenerate.
func WithNav(opts mkdocs.Options) Option {
	return func(g *Generator) {
		g.nav = opts
	}
}

// WithReservedMethods sets the method names left out of rendered pages.
func WithReservedMethods(names ...string) Option {
	return func(g *Generator) {
		g.reserved = names
	}
}

// WithStrict validates every doc block against [WorkflowSchema] and
// [MethodSchema].
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.strict = strict
	}
}

// Run renders every definition file, then rewrites the navigation manifest.
// Files are processed one at a time in name order and the first error stops
// the run.
func (g *Generator) Run(ctx context.Context) error {
	if g.outDir == "" {
		return ErrMissingOutPath
	}

	files, err := g.Discover()
	if err != nil {
		return err
	}

	renderer, err := g.newRenderer()
	if err != nil {
		return err
	}

	err = os.MkdirAll(g.outDir, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	for _, name := range files {
		err := ctx.Err()
		if err != nil {
			return err
		}

		g.logger.Info("generating documentation", slog.String("file", name))

		out, err := g.generate(renderer, name)
		if err != nil {
			return err
		}

		dst := filepath.Join(g.outDir, OutputName(name))

		err = os.WriteFile(dst, out, 0o644)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		g.logger.Debug("wrote documentation", slog.String("path", dst))
	}

	if g.manifest == "" {
		return nil
	}

	return g.updateNav(files)
}

// Discover returns the names of the definition files in the input directory,
// sorted by name.
func (g *Generator) Discover() ([]string, error) {
	matcher, err := glob.Compile(g.pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidOption, g.pattern, err)
	}

	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	var files []string

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !matcher.Match(name) {
			continue
		}

		if g.excludePrefix != "" && strings.HasPrefix(name, g.excludePrefix) {
			g.logger.Debug("skipping excluded file", slog.String("file", name))

			continue
		}

		files = append(files, name)
	}

	return files, nil
}

// Generate renders the definition file called name, relative to the input
// directory, without writing anything.
func (g *Generator) Generate(name string) ([]byte, error) {
	renderer, err := g.newRenderer()
	if err != nil {
		return nil, err
	}

	return g.generate(renderer, name)
}

func (g *Generator) generate(renderer *Renderer, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(g.dir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	lines := splitLines(string(data))

	doc, ok := ExtractWorkflowDoc(lines, g.docVariable)
	if !ok || len(doc) == 0 {
		return nil, fmt.Errorf("%w: %s does not contain a %s = %s string",
			ErrMissingWorkflowDoc, name, g.docVariable, tripleQuote)
	}

	return renderer.Render(name, doc, ExtractMethods(lines))
}

func (g *Generator) newRenderer() (*Renderer, error) {
	r := &Renderer{Reserved: g.reserved}
	if r.Reserved == nil {
		r.Reserved = []string{}
	}

	if !g.strict {
		return r, nil
	}

	v, err := NewValidator()
	if err != nil {
		return nil, err
	}

	r.Validator = v

	return r, nil
}

func (g *Generator) updateNav(files []string) error {
	path := filepath.Join(g.dir, g.manifest)

	g.logger.Info("updating navigation manifest", slog.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	out, err := mkdocs.UpdateNav(data, NavLinks(files), g.nav)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	err = os.WriteFile(path, out, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

// OutputName returns the Markdown file name for a definition file: its base
// name without extension, upper-cased, plus ".md".
func OutputName(name string) string {
	return strings.ToUpper(stem(name)) + ".md"
}

// NavLinks returns one navigation link per definition file, in the given
// order. Titles are the title-cased base names.
func NavLinks(files []string) []mkdocs.Link {
	links := make([]mkdocs.Link, 0, len(files))
	for _, f := range files {
		links = append(links, mkdocs.Link{Title: TitleCase(stem(f)), File: OutputName(f)})
	}

	return links
}

func stem(name string) string {
	base := filepath.Base(name)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// splitLines splits on LF and CRLF without producing a trailing empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")

	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}
