package workflowdoc

import (
	"fmt"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/docgen/workflowdoc/mkdocs"
)

// Flags holds CLI flag names for documentation generation, allowing callers
// to customize flag names while keeping sensible defaults.
type Flags struct {
	OutPath       string
	Dir           string
	Pattern       string
	ExcludePrefix string
	DocVariable   string
	Manifest      string
	NavKey        string
	NavEntry      string
	Reserved      string
	Strict        string
}

// Config holds CLI flag values for documentation generation.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewGenerator] to create a [Generator].
type Config struct {
	Flags         Flags
	OutPath       string
	Dir           string
	Pattern       string
	ExcludePrefix string
	DocVariable   string
	Manifest      string
	NavKey        string
	NavEntry      string
	Reserved      []string
	Strict        bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		OutPath:       "out-path",
		Dir:           "dir",
		Pattern:       "pattern",
		ExcludePrefix: "exclude-prefix",
		DocVariable:   "doc-variable",
		Manifest:      "manifest",
		NavKey:        "nav-key",
		NavEntry:      "nav-entry",
		Reserved:      "reserved",
		Strict:        "strict",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds documentation generation flags to the given
// [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&c.OutPath, c.Flags.OutPath, "o", "",
		"directory the Markdown files are written to (required)")
	flags.StringVar(&c.Dir, c.Flags.Dir, ".",
		"directory holding the definition files and the manifest")
	flags.StringVar(&c.Pattern, c.Flags.Pattern, DefaultPattern,
		"glob matched against definition file names")
	flags.StringVar(&c.ExcludePrefix, c.Flags.ExcludePrefix, DefaultExcludePrefix,
		"skip definition files whose name starts with this prefix")
	flags.StringVar(&c.DocVariable, c.Flags.DocVariable, DefaultDocVariable,
		"variable holding the long-form documentation string")
	flags.StringVar(&c.Manifest, c.Flags.Manifest, mkdocs.DefaultFilename,
		"navigation manifest file name in --dir (empty to skip the update)")
	flags.StringVar(&c.NavKey, c.Flags.NavKey, mkdocs.DefaultNavKey,
		"top-level manifest key holding the navigation list")
	flags.StringVar(&c.NavEntry, c.Flags.NavEntry, mkdocs.DefaultEntry,
		"navigation entry whose links are regenerated")
	flags.StringSliceVar(&c.Reserved, c.Flags.Reserved, DefaultReservedMethods,
		"method names left out of the rendered pages")
	flags.BoolVar(&c.Strict, c.Flags.Strict, false,
		"validate doc blocks against their JSON Schema")
}

// RegisterCompletions registers shell completions for documentation
// generation flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	dirComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}

	for _, flag := range []string{c.Flags.OutPath, c.Flags.Dir} {
		err := cmd.RegisterFlagCompletionFunc(flag, dirComp)
		if err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	err := cmd.RegisterFlagCompletionFunc(c.Flags.NavKey,
		cobra.FixedCompletions([]string{"nav", "pages"}, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.NavKey, err)
	}

	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range []string{
		c.Flags.Pattern, c.Flags.ExcludePrefix, c.Flags.DocVariable,
		c.Flags.NavEntry, c.Flags.Reserved,
	} {
		regErr := cmd.RegisterFlagCompletionFunc(flag, noFileComp)
		if regErr != nil {
			return fmt.Errorf("registering %s completion: %w", flag, regErr)
		}
	}

	return nil
}

// NewGenerator creates a [Generator] using this [Config]. Extra options are
// applied after the ones derived from flags.
func (c *Config) NewGenerator(extra ...Option) (*Generator, error) {
	if c.OutPath == "" {
		return nil, ErrMissingOutPath
	}

	opts := []Option{
		WithOutDir(c.OutPath),
		WithExcludePrefix(c.ExcludePrefix),
		WithManifest(c.Manifest),
		WithNav(mkdocs.Options{NavKey: c.NavKey, Entry: c.NavEntry}),
		WithStrict(c.Strict),
	}

	if c.Dir != "" {
		opts = append(opts, WithDir(c.Dir))
	}

	if c.Pattern != "" {
		_, err := glob.Compile(c.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidOption, c.Pattern, err)
		}

		opts = append(opts, WithPattern(c.Pattern))
	}

	if c.DocVariable != "" {
		opts = append(opts, WithDocVariable(c.DocVariable))
	}

	if c.Reserved != nil {
		opts = append(opts, WithReservedMethods(c.Reserved...))
	}

	return NewGenerator(append(opts, extra...)...), nil
}
