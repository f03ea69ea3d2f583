package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// ConvertResult pairs every date of a date list with its Julian day.
type ConvertResult struct {
	Lines  []int     `json:"lines"`
	Julian []float64 `json:"julian"`

	fractional bool
}

// String lists "line<TAB>julian day" rows.
func (r ConvertResult) String() string {
	var sb strings.Builder
	for i, v := range r.Julian {
		if r.fractional {
			fmt.Fprintf(&sb, "%d\t%.8f\n", r.Lines[i], v)
		} else {
			fmt.Fprintf(&sb, "%d\t%d\n", r.Lines[i], int64(v))
		}
	}
	return sb.String()
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	var charset string
	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a list of dates to Julian days",
		Long: `Read a text file with one date per line, YYYY-MM-DD optionally followed by
a time hh:mm[:ss[.fff]], and print the Julian day of every date.

Lines starting with # and empty lines are skipped. Full width digits and
typographic dashes are accepted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, cmd, args[0], charset)
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "utf-8", "file encoding (utf-8|windows-1250|windows-1252)")
	return cmd
}

func runConvert(opts *RootOptions, cmd *cobra.Command, filename, charset string) error {
	f := opts.formatter(cmd)
	dec := idl.DecoderFor(charset)
	if dec == nil {
		return f.Fail(argError("unknown charset %q", charset))
	}
	list, err := idl.OpenFile(filename, dec)
	if os.IsNotExist(err) {
		return f.Fail(&ExitError{Code: ExitCommandError, Message: ErrCodeNotFound, Err: err})
	}
	if err != nil {
		return f.Fail(err)
	}
	f.VerboseLog("read %d dates from %s", list.NumRecords(), filename)

	jds, err := list.JulianDays(opts.Mode)
	if err != nil {
		return f.Fail(err)
	}
	res := ConvertResult{Julian: jds.Float64s(), fractional: list.HasTime()}
	for i := 0; i < list.NumRecords(); i++ {
		res.Lines = append(res.Lines, list.Line(i))
	}
	return f.Success(res)
}
