package cli

import (
	"github.com/spf13/cobra"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// NewNoLeapCommand creates the noleap command.
func NewNoLeapCommand(rootOpts *RootOptions) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "noleap <month> <day> <year>",
		Short: "Julian days on the 365 day calendar",
		Long: `Convert dates to Julian days on a calendar without leap years, the IDL
JULDAY_NO_LEAP. Note the argument order: month, day, year.

With --decode the arguments are Julian days to convert back.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if decode {
				return runNoLeapDecode(rootOpts, cmd, args)
			}
			if len(args) != 3 {
				return argError("noleap needs month, day and year, have %d arguments", len(args))
			}
			return runNoLeap(rootOpts, cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "convert Julian days to dates")
	return cmd
}

func runNoLeap(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	arrays, err := parseArrays([]string{"month", "day", "year"}, args)
	if err != nil {
		return f.Fail(err)
	}
	res, err := idl.EncodeNoLeap(arrays[0], arrays[1], arrays[2])
	if err != nil {
		return f.Fail(err)
	}
	return f.Success(newJulianResult(res, false))
}

func runNoLeapDecode(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	julian, err := flattenArgs("julian day", args)
	if err != nil {
		return f.Fail(err)
	}
	c, err := idl.DecodeNoLeap(julian)
	if err != nil {
		return f.Fail(err)
	}
	return f.Success(newCalendarResult(c))
}
