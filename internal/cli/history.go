package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/qed/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database    string
	Law         string
	Outcome     string
	Structure   string
	Fingerprint string
	Suite       string
	Run         string
}

// HistoryResult holds the ledger query output.
type HistoryResult struct {
	Verdicts []store.Verdict `json:"verdicts"`
	Total    int             `json:"total"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query the verdict ledger",
		Long: `Query persisted verdicts from a ledger database.

Verdicts appear in logical order: the order they were written, not
wall-clock time. Filters compose as a conjunction.

Examples:
  qed history --db ./qed.db
  qed history --db ./qed.db --law naturality --outcome failed
  qed history --db ./qed.db --structure Chain --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Env.Store, "path to ledger database")
	cmd.Flags().StringVar(&opts.Law, "law", "", "filter by law name")
	cmd.Flags().StringVar(&opts.Outcome, "outcome", "", "filter by outcome (passed|failed|inconclusive)")
	cmd.Flags().StringVar(&opts.Structure, "structure", "", "filter by structure name")
	cmd.Flags().StringVar(&opts.Fingerprint, "fingerprint", "", "filter by structure fingerprint")
	cmd.Flags().StringVar(&opts.Suite, "suite", "", "filter by suite name")
	cmd.Flags().StringVar(&opts.Run, "run", "", "filter by run ID")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if opts.Database == "" {
		return NewExitError(ExitCommandError, "no ledger database: set --db or QED_STORE")
	}
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("ledger database not found: %s", opts.Database))
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer st.Close()

	verdicts, err := st.History(ctx, store.Filter{
		Law:         opts.Law,
		Outcome:     opts.Outcome,
		Structure:   opts.Structure,
		Fingerprint: opts.Fingerprint,
		Suite:       opts.Suite,
		RunID:       opts.Run,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query ledger", err)
	}

	result := HistoryResult{Verdicts: verdicts, Total: len(verdicts)}

	if opts.Format == "json" {
		return outputHistoryJSON(cmd, result)
	}
	return outputHistoryText(cmd, result, opts.Verbose)
}

// outputHistoryJSON outputs the history result as JSON.
func outputHistoryJSON(cmd *cobra.Command, result HistoryResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputHistoryText outputs the history result as text.
func outputHistoryText(cmd *cobra.Command, result HistoryResult, verbose bool) error {
	w := cmd.OutOrStdout()

	if result.Total == 0 {
		fmt.Fprintln(w, "No verdicts match.")
		return nil
	}

	for _, v := range result.Verdicts {
		fmt.Fprintf(w, "[%d] %s %s %s (%d samples%s)\n",
			v.Seq, outcomeSymbol(v.Outcome), v.Law, v.Structure,
			v.Samples, exhaustiveSuffix(v.Exhaustive))
		if verbose {
			fmt.Fprintf(w, "     fingerprint: %s\n", v.Fingerprint)
			fmt.Fprintf(w, "     run: %s\n", v.RunID)
		}
		for _, violation := range v.Violations {
			fmt.Fprintf(w, "     %s\n", violation)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d verdict(s)\n", result.Total)
	return nil
}
