// Command workflowdoc generates Markdown reference pages from the YAML
// documentation embedded in Groovy pipeline-definition files, and regenerates
// the Workflows section of the MkDocs navigation.
//
// # Usage
//
//	workflowdoc -o <dir> [flags]
//	workflowdoc schema {workflow|method}
//
// # Exit Status
//
//	0  success
//	1  usage error (such as a missing --out-path) or any other failure
//	2  a definition file has no long-form documentation block
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/docgen/log"
	"go.jacobcolvin.com/docgen/profile"
	"go.jacobcolvin.com/docgen/version"
	"go.jacobcolvin.com/docgen/workflowdoc"
)

const (
	exitOK         = 0
	exitError      = 1
	exitMissingDoc = 2
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	profileCfg := profile.NewConfig()
	profiler := profileCfg.NewProfiler()

	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return profiler.Start()
	}

	profileCfg.RegisterFlags(rootCmd.PersistentFlags())

	err := profileCfg.RegisterCompletions(rootCmd)
	if err != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", err)
	}

	rootCmd.SetArgs(args)

	err = errors.Join(rootCmd.ExecuteContext(ctx), profiler.Stop())
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(stderr, "%v\n", err)

	switch {
	case errors.Is(err, workflowdoc.ErrMissingOutPath):
		rootCmd.SetOut(stderr)

		//nolint:errcheck // Best effort, the exit status already reports the failure.
		rootCmd.Usage()

		return exitError

	case errors.Is(err, workflowdoc.ErrMissingWorkflowDoc):
		return exitMissingDoc
	}

	return exitError
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := workflowdoc.NewConfig()
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "workflowdoc -o <dir> [flags]",
		Short: "Generate Markdown docs from pipeline definition files",
		Long: `workflowdoc reads the Groovy pipeline definitions in --dir, renders the YAML
documentation embedded in each one to <NAME>.md in --out-path, and rewrites
the Workflows entry of the MkDocs manifest to link the generated pages.`,
		Version:       version.String(),
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			gen, err := cfg.NewGenerator(workflowdoc.WithLogger(slog.New(handler)))
			if err != nil {
				return err
			}

			return gen.Run(cmd.Context())
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	for _, register := range []func(*cobra.Command) error{cfg.RegisterCompletions, logCfg.RegisterCompletions} {
		err := register(rootCmd)
		if err != nil {
			fmt.Fprintf(stderr, "register completions: %v\n", err)
		}
	}

	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

func newSchemaCmd() *cobra.Command {
	schemas := map[string]func() (*jsonschema.Schema, error){
		"workflow": workflowdoc.WorkflowSchema,
		"method":   workflowdoc.MethodSchema,
	}

	return &cobra.Command{
		Use:   "schema {workflow|method}",
		Short: "Print the JSON Schema of a documentation block",
		Long: `schema prints the JSON Schema that --strict validates doc blocks against.
"workflow" describes the long-form workflowDoc string, "method" the comment
above each declaration.`,
		ValidArgs: []string{"workflow", "method"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := schemas[args[0]]()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("%w: %w", workflowdoc.ErrWriteOutput, err)
			}

			out = append(out, '\n')

			_, err = cmd.OutOrStdout().Write(out)
			if err != nil {
				return fmt.Errorf("%w: %w", workflowdoc.ErrWriteOutput, err)
			}

			return nil
		},
	}
}
