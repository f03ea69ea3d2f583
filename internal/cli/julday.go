package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// JulianResult holds encoded Julian days.
type JulianResult struct {
	Julian []float64 `json:"julian"`
	Shape  []int     `json:"shape,omitempty"`

	fractional bool
}

func newJulianResult(a idl.Array, fractional bool) JulianResult {
	return JulianResult{Julian: a.Float64s(), Shape: a.Shape(), fractional: fractional}
}

// String lists one day per line, whole day numbers without a fraction.
func (r JulianResult) String() string {
	var sb strings.Builder
	for _, v := range r.Julian {
		if r.fractional {
			fmt.Fprintf(&sb, "%.8f\n", v)
		} else {
			fmt.Fprintf(&sb, "%d\n", int64(v))
		}
	}
	return sb.String()
}

// NewJulDayCommand creates the julday command.
func NewJulDayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "julday <year> <month> <day> [hour [minute [second]]]",
		Short: "Convert calendar dates to Julian days",
		Long: `Convert calendar dates to Julian days like IDL JULDAY.

Every argument is a number or a comma separated list. When lists of different
lengths are mixed the shortest one decides how many days are returned.
Without a time of day the result is the Julian day number, which starts at
noon. Year -1 is 1 BCE, there is no year 0.`,
		Args:          cobra.RangeArgs(3, 6),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJulDay(rootOpts, cmd, args)
		},
	}
}

func runJulDay(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	arrays, err := parseArrays([]string{"year", "month", "day", "hour", "minute", "second"}, args)
	if err != nil {
		return f.Fail(err)
	}

	var res idl.Array
	if len(args) == 3 {
		res, err = idl.Encode(arrays[0], arrays[1], arrays[2], opts.Mode)
	} else {
		res, err = idl.EncodeTime(arrays[0], arrays[1], arrays[2], arrays[3], arrays[4], arrays[5], opts.Mode)
	}
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("encoded %d dates (%s)", res.Len(), opts.Mode)
	return f.Success(newJulianResult(res, len(args) > 3))
}
