package cli

import (
	"github.com/spf13/cobra"

	"github.com/SebastiaanKlippert/go-idl/script"
)

// NewScriptCommand creates the script command.
func NewScriptCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "script <file.lua>",
		Short: "Run a Lua script with the idl table",
		Long: `Run a Lua script. The global table idl offers julday, caldat,
julday_no_leap, caldat_no_leap, date, encode, make_time and the proleptic flag.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(rootOpts, cmd, args[0])
		},
	}
}

func runScript(opts *RootOptions, cmd *cobra.Command, filename string) error {
	f := opts.formatter(cmd)
	e := script.New(script.Options{Mode: opts.Mode, Output: cmd.OutOrStdout()})
	defer e.Close()
	if err := e.RunFile(cmd.Context(), filename); err != nil {
		return f.Fail(&ExitError{Code: ExitFailure, Message: ErrCodeGeneric, Err: err})
	}
	return nil
}
