package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/qed/cat"
	"github.com/roach88/qed/internal/compiler"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Output string // output file path
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <presentations-dir>",
		Short: "Compile presentations and print the library skeleton",
		Long: `Compile CUE presentations and print the library skeleton as
canonical JSON.

The canonical form is byte-stable: sorted keys, no insignificant
whitespace, NFC strings. Hashing it yields the presentation digest
that verdicts are filed under.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runShow(opts *ShowOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadPresentations(dir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputShowError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputShowError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)

	if len(loadErrors) > 0 {
		return outputShowErrors(formatter, loadErrors)
	}

	canonical, err := cat.MarshalCanonical(loadResult.Spec.CanonicalMap())
	if err != nil {
		return outputShowError(formatter, ErrCodeGeneric, fmt.Sprintf("rendering canonical JSON: %v", err))
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, canonical, 0644); err != nil {
			return outputShowError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	return outputShowSuccess(formatter, loadResult.Spec, canonical, opts.Output)
}

// outputShowSuccess outputs the compiled library skeleton.
func outputShowSuccess(formatter *OutputFormatter, spec *compiler.LibrarySpec, canonical []byte, outputFile string) error {
	if formatter.Format == "json" {
		// The canonical bytes are already JSON; emit them raw so the
		// output stays byte-stable.
		_, err := fmt.Fprintf(formatter.Writer, "%s\n", canonical)
		return err
	}

	// Human-readable text output
	fmt.Fprintf(formatter.Writer, "✓ Compiled %d categor(ies), %d functor(s), %d transformation(s), %d adjunction(s)\n\n",
		len(spec.Categories), len(spec.Functors), len(spec.Transformations), len(spec.Adjunctions))

	for _, name := range sortedKeys(spec.Categories) {
		c := spec.Categories[name]
		fmt.Fprintf(formatter.Writer, "  category %s: %d object(s), %d arrow(s)\n",
			name, len(c.Objects), len(c.Arrows))
	}
	for _, name := range sortedKeys(spec.Functors) {
		fmt.Fprintf(formatter.Writer, "  functor %s: %s\n", name, functorForm(spec.Functors[name]))
	}
	for _, name := range sortedKeys(spec.Transformations) {
		t := spec.Transformations[name]
		fmt.Fprintf(formatter.Writer, "  transformation %s: %s => %s\n", name, t.Source, t.Target)
	}
	for _, name := range sortedKeys(spec.Adjunctions) {
		a := spec.Adjunctions[name]
		fmt.Fprintf(formatter.Writer, "  adjunction %s: %s -| %s\n", name, a.Left, a.Right)
	}
	fmt.Fprintln(formatter.Writer)

	fmt.Fprintf(formatter.Writer, "%s\n", canonical)

	if outputFile != "" {
		fmt.Fprintf(formatter.Writer, "\nWrote canonical skeleton to %s\n", outputFile)
	}

	return nil
}

// functorForm renders a functor's presentation form for display.
func functorForm(s *compiler.FunctorSpec) string {
	switch s.Kind() {
	case compiler.FunctorIdentity:
		return "identity of " + s.Identity
	case compiler.FunctorComposite:
		return "composite of " + strings.Join(s.Compose, " then ")
	default:
		return fmt.Sprintf("%s -> %s", s.Source, s.Target)
	}
}

// outputShowError outputs a single command-level error.
func outputShowError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Compile errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputShowErrors outputs multiple compile errors.
func outputShowErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseLoadError(err)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}

		response := CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors, // Include all errors in data
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Compilation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		code, message := parseLoadError(err)
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				loadErr.Pos.Filename(),
				loadErr.Pos.Line(),
				loadErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseLoadError extracts error code and message from an error.
func parseLoadError(err error) (string, string) {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return ErrCodeCompile, compileErr.Message
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}
