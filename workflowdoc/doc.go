// Package workflowdoc generates Markdown reference pages from YAML
// documentation embedded in pipeline-definition files.
//
// A definition file is a Groovy script exposing one or more steps. It carries
// two kinds of documentation, both written as YAML:
//
//   - A long-form block assigned to a triple-quoted string, by default the
//     workflowDoc variable. It holds the page title, overview,
//     disclaimer, functionality, a tools table, a full example pipeline and
//     links to further reading. See [WorkflowDoc].
//
//   - A comment block directly above each top-level declaration
//     ("public name(args) {"). It holds the method description, a
//     parameters table and one or more examples. See [MethodDoc]. A
//     declaration preceded by @Deprecated instead is rendered with a
//     "(DEPRECATED)" suffix.
//
// # Pipeline
//
// [ExtractWorkflowDoc] and [ExtractMethods] scan the file line by line. They
// do not parse Groovy: a declaration is any column-zero line shaped like
// "public name(args) {", and it ends at the next line that is exactly "}".
// Nested blocks closing at column zero end the declaration early.
//
// [Renderer.Render] turns the extracted blocks into Markdown, using [Table]
// for the tools and parameters tables. [Generator] drives both stages over a
// directory, writes one <NAME>.md per definition file, and regenerates the
// Workflows entry of the MkDocs manifest with package
// [go.jacobcolvin.com/docgen/workflowdoc/mkdocs].
//
// # Validation
//
// Doc blocks are decoded leniently: unknown keys are ignored. With
// [WithStrict], every block is first validated against [WorkflowSchema] or
// [MethodSchema], and violations abort the run with [ErrInvalidDoc].
package workflowdoc
