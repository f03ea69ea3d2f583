package cli

import (
	"github.com/powerman/structlog"
	"github.com/spf13/cobra"

	idl "github.com/SebastiaanKlippert/go-idl"
	"github.com/SebastiaanKlippert/go-idl/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	Proleptic  bool

	// Resolved in PersistentPreRunE from the flags and the config file.
	Config config.Config
	Mode   idl.Mode
	Log    *structlog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command of the idl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "idl",
		Short: "IDL date and time built-ins",
		Long: `Julian day conversions as done by the IDL JULDAY and CALDAT built-ins,
plus RANDOMU, FILE_SEARCH and a runner for IDL batch jobs.

Negative numbers must follow a -- separator: idl julday -- -44 3 15`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolve(cmd); err != nil {
				return opts.formatter(cmd).Fail(err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Proleptic, "proleptic", false, "use the proleptic Gregorian calendar")

	cmd.AddCommand(NewJulDayCommand(opts))
	cmd.AddCommand(NewCalDatCommand(opts))
	cmd.AddCommand(NewNoLeapCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewRandomUCommand(opts))
	cmd.AddCommand(NewSpawnCommand(opts))
	cmd.AddCommand(NewScriptCommand(opts))

	return cmd
}

// resolve loads the config file and lets flags override it
func (opts *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return &ExitError{Code: ExitCommandError, Message: ErrCodeConfig, Err: err}
	}
	opts.Config = cfg

	if !cmd.Flags().Changed("format") {
		opts.Format = cfg.Format
	}
	if !isValidFormat(opts.Format) {
		return argError("invalid format %q: must be one of %v", opts.Format, ValidFormats)
	}

	if opts.Proleptic {
		opts.Mode = idl.ProlepticGregorian
	} else if opts.Mode, err = cfg.Mode(); err != nil {
		return &ExitError{Code: ExitCommandError, Message: ErrCodeConfig, Err: err}
	}

	level := structlog.ParseLevel(cfg.LogLevel)
	if opts.Verbose {
		level = structlog.DBG
	}
	opts.Log = structlog.New().SetLogLevel(level)
	opts.Log.Debug("resolved options", "calendar", opts.Mode, "format", opts.Format, "config", opts.ConfigFile)
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
