package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/qed/internal/compiler"
)

// ValidationResult is the validate command's payload in json mode.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <presentations-dir>",
		Short: "Validate presentations without building",
		Long: `Validate CUE categorical presentations without building runnable
structures.

Parses every declaration, then cross-checks the library: references
resolve, maps are total, composition tables cover every composable
pair, endpoints line up. Faster than check for development feedback.

Exit codes:
  0 - All presentations valid
  1 - Validation defects found
  2 - Command error (directory missing, unparseable CUE, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true, // commands render their own diagnostics
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	// Collect every parse error; partial parses still get cross-checked.
	loadResult, loadErrors := LoadPresentations(dir, LoadModeCollectAll)

	// A nil result means the directory itself could not be loaded.
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message, nil)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error(), nil)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, dir)
	for _, name := range sortedSpecNames(loadResult.Spec) {
		formatter.VerboseLog("Validating %s", name)
	}

	validationErrors := compiler.Validate(loadResult.Spec)

	// Fold parse errors in as validation defects so one report covers both.
	for _, err := range loadErrors {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			validationErrors = append(validationErrors, compiler.ValidationError{
				Field:   positionField(loadErr),
				Message: loadErr.Message,
				Code:    loadErr.Code,
			})
		} else {
			validationErrors = append(validationErrors, compiler.ValidationError{
				Field:   "load",
				Message: err.Error(),
				Code:    ErrCodeGeneric,
			})
		}
	}

	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	return outputValidateSuccess(formatter, loadResult.Spec)
}

// sortedSpecNames lists every declaration in the library, kind-qualified.
func sortedSpecNames(spec *compiler.LibrarySpec) []string {
	var names []string
	for _, name := range sortedKeys(spec.Categories) {
		names = append(names, "category "+name)
	}
	for _, name := range sortedKeys(spec.Functors) {
		names = append(names, "functor "+name)
	}
	for _, name := range sortedKeys(spec.Transformations) {
		names = append(names, "transformation "+name)
	}
	for _, name := range sortedKeys(spec.Adjunctions) {
		names = append(names, "adjunction "+name)
	}
	return names
}

// sortedKeys returns a map's keys in sorted order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// positionField renders a load error's source position as a field label.
func positionField(err *LoadError) string {
	if err.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d", err.Pos.Filename(), err.Pos.Line(), err.Pos.Column())
	}
	return "load"
}

// outputValidateSuccess reports a clean library with per-kind counts.
func outputValidateSuccess(formatter *OutputFormatter, spec *compiler.LibrarySpec) error {
	if formatter.Format == "json" {
		result := ValidationResult{Valid: true}
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ All presentations valid (%d categories, %d functors, %d transformations, %d adjunctions)\n",
		len(spec.Categories), len(spec.Functors), len(spec.Transformations), len(spec.Adjunctions))
	return nil
}

// outputValidateError reports a command-level failure (exit code 2).
func outputValidateError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationErrors reports validation defects (exit code 1).
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))

	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}
	fmt.Fprintln(formatter.Writer)
	return exitErr
}
