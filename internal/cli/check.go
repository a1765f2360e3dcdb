package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/qed/internal/store"
	"github.com/roach88/qed/internal/suite"
	"github.com/roach88/qed/laws"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	StorePath string        // ledger to persist verdicts into (optional)
	Samples   int           // override suite sample budgets
	Timeout   time.Duration // override suite per-check timeouts
}

// CheckResult holds the outcome of running one or more suites.
type CheckResult struct {
	Suites       []*suite.Report `json:"suites"`
	Passed       int             `json:"passed"`
	Failed       int             `json:"failed"`
	Inconclusive int             `json:"inconclusive"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <suite.yaml>...",
		Short: "Run verification suites",
		Long: `Run one or more verification suites against their presentations.

Each suite names its presentation files and the law checks to run.
Law violations are reported as verdicts, not command errors; a check
that cannot run at all (unknown name, broken presentation) aborts.

Exit codes:
  0 - Every check in every suite passed
  1 - At least one check found a counterexample
  2 - Command error (suite unreadable, presentation broken, etc.)
  3 - No counterexample, but at least one check was inconclusive

Examples:
  qed check suites/smoke.yaml
  qed check suites/*.yaml --store ./qed.db
  qed check suites/smoke.yaml --samples 500 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.StorePath, "store", rootOpts.Env.Store, "ledger database to persist verdicts into")
	cmd.Flags().IntVar(&opts.Samples, "samples", rootOpts.Env.Samples, "override sample budget for every check")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", rootOpts.Env.Timeout, "override per-check timeout")

	return cmd
}

func runCheck(opts *CheckOptions, suitePaths []string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var st *store.Store
	if opts.StorePath != "" {
		var err error
		st, err = store.Open(opts.StorePath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open ledger", err)
		}
		defer st.Close()
	}

	var runnerOpts []suite.RunnerOption
	if opts.Verbose {
		logger := slog.New(slog.NewTextHandler(formatter.GetErrWriter(), nil))
		runnerOpts = append(runnerOpts, suite.WithLogger(logger))
	}

	result := &CheckResult{}
	for _, path := range suitePaths {
		report, err := runSuiteFile(ctx, path, opts, runnerOpts)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("suite %s", path), err)
		}

		if st != nil {
			if _, err := suite.Persist(ctx, st, report); err != nil {
				return WrapExitError(ExitCommandError, "failed to persist verdicts", err)
			}
		}

		result.Suites = append(result.Suites, report)
		switch report.Outcome {
		case laws.OutcomePassed:
			result.Passed++
		case laws.OutcomeFailed:
			result.Failed++
		case laws.OutcomeInconclusive:
			result.Inconclusive++
		}
	}

	if formatter.Format == "json" {
		return outputCheckJSON(formatter, result)
	}
	return outputCheckText(formatter, result)
}

// runSuiteFile loads, builds, and runs one suite.
func runSuiteFile(ctx context.Context, path string, opts *CheckOptions, runnerOpts []suite.RunnerOption) (*suite.Report, error) {
	s, err := suite.LoadSuite(path)
	if err != nil {
		return nil, err
	}

	// Flag and environment overrides trump the suite's own budget.
	if opts.Samples > 0 || opts.Timeout > 0 {
		if s.Budget == nil {
			s.Budget = &suite.BudgetSpec{}
		}
		if opts.Samples > 0 {
			s.Budget.Samples = opts.Samples
		}
		if opts.Timeout > 0 {
			s.Budget.Timeout = opts.Timeout
		}
	}

	lib, err := suite.BuildLibrary(s.Specs)
	if err != nil {
		return nil, err
	}

	return suite.NewRunner(lib, runnerOpts...).Run(ctx, s)
}

// outputCheckJSON outputs the check result as JSON.
func outputCheckJSON(formatter *OutputFormatter, result *CheckResult) error {
	status := "ok"
	if result.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   result,
	}
	if result.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_CHECK_FAILED",
			Message: fmt.Sprintf("%d suite(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(formatter.Writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	return checkExitError(result)
}

// outputCheckText outputs the check result as text.
func outputCheckText(formatter *OutputFormatter, result *CheckResult) error {
	w := formatter.Writer

	for _, report := range result.Suites {
		fmt.Fprintf(w, "%s %s\n", outcomeSymbol(report.Outcome), report.Suite)
		for _, c := range report.Checks {
			fmt.Fprintf(w, "  %s %s %s (%d samples%s)\n",
				outcomeSymbol(c.Result.Outcome), c.Law, c.Target,
				c.Result.Samples, exhaustiveSuffix(c.Result.Exhaustive))
			for _, v := range c.Result.Violations {
				fmt.Fprintf(w, "      %s\n", v)
			}
			for _, note := range c.Result.Notes {
				fmt.Fprintf(w, "      note: %s\n", note)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Suites: %d passed, %d failed, %d inconclusive\n",
		result.Passed, result.Failed, result.Inconclusive)

	return checkExitError(result)
}

// checkExitError maps aggregate outcomes to exit codes. Failure wins over
// inconclusive.
func checkExitError(result *CheckResult) error {
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d suite(s) failed", result.Failed))
	}
	if result.Inconclusive > 0 {
		return NewExitError(ExitInconclusive, fmt.Sprintf("%d suite(s) inconclusive", result.Inconclusive))
	}
	return nil
}

// outcomeSymbol renders an outcome as a one-character marker.
func outcomeSymbol(o laws.Outcome) string {
	switch o {
	case laws.OutcomePassed:
		return "✓"
	case laws.OutcomeFailed:
		return "✗"
	default:
		return "?"
	}
}

// exhaustiveSuffix annotates sample counts that covered the whole space.
func exhaustiveSuffix(exhaustive bool) string {
	if exhaustive {
		return ", exhaustive"
	}
	return ""
}
