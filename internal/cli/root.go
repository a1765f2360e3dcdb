package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// EnvConfig holds environment-derived defaults for global and command
// flags. Flags always win over environment values.
type EnvConfig struct {
	Format  string        `env:"QED_FORMAT" envDefault:"text"`
	Store   string        `env:"QED_STORE"`
	Samples int           `env:"QED_SAMPLES"`
	Timeout time.Duration `env:"QED_TIMEOUT"`
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Env     EnvConfig
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qed CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cfg, envErr := env.ParseAs[EnvConfig]()
	opts.Env = cfg

	cmd := &cobra.Command{
		Use:   "qed",
		Short: "qed - categorical law verification",
		Long: `Compile categorical presentations, verify their laws by sampling,
and keep a ledger of the verdicts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return fmt.Errorf("invalid environment: %w", envErr)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
