package cli

import (
	"strings"

	"github.com/spf13/cobra"

	idl "github.com/SebastiaanKlippert/go-idl"
)

// DateJSON is a calendar date in JSON output.
type DateJSON struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

// CalendarResult holds decoded dates.
type CalendarResult struct {
	Dates []DateJSON `json:"dates"`
	Shape []int      `json:"shape,omitempty"`

	text []string
}

func newCalendarResult(c *idl.Calendar) CalendarResult {
	r := CalendarResult{Shape: c.Shape()}
	for _, d := range c.Dates() {
		r.Dates = append(r.Dates, DateJSON{d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Seconds()})
		r.text = append(r.text, d.String())
	}
	return r
}

// String lists one date per line.
func (r CalendarResult) String() string {
	if len(r.text) == 0 {
		return ""
	}
	return strings.Join(r.text, "\n") + "\n"
}

// NewCalDatCommand creates the caldat command.
func NewCalDatCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "caldat <julian-day>...",
		Short: "Convert Julian days to calendar dates",
		Long: `Convert Julian days to calendar dates like IDL CALDAT.

Arguments are numbers or comma separated lists. A whole Julian day number
decodes to 12:00.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalDat(rootOpts, cmd, args)
		},
	}
}

func runCalDat(opts *RootOptions, cmd *cobra.Command, args []string) error {
	f := opts.formatter(cmd)
	julian, err := flattenArgs("julian day", args)
	if err != nil {
		return f.Fail(err)
	}
	c, err := idl.Decode(julian, opts.Mode)
	if err != nil {
		return f.Fail(err)
	}
	return f.Success(newCalendarResult(c))
}
