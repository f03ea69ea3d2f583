package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ansel1/merry"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SebastiaanKlippert/go-idl/random"
)

// RandomResult holds drawn values.
type RandomResult struct {
	Values []float64 `json:"values"`
	Shape  []int     `json:"shape,omitempty"`

	double bool
}

// String lists one value per line.
func (r RandomResult) String() string {
	var sb strings.Builder
	for _, v := range r.Values {
		if r.double {
			fmt.Fprintf(&sb, "%.15g\n", v)
		} else {
			fmt.Fprintf(&sb, "%.7g\n", v)
		}
	}
	return sb.String()
}

// NewRandomUCommand creates the randomu command.
func NewRandomUCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		opts      random.Options
		poisson   float64
		saveState string
	)
	cmd := &cobra.Command{
		Use:   "randomu <seed> [dim...]",
		Short: "Draw random numbers like IDL RANDOMU",
		Long: `Draw uniform, binomial or Poisson random numbers from a Mersenne Twister.

The seed is a number, or @file to continue from a state written with
--save-state.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("poisson") {
				opts.Poisson = &poisson
			}
			return runRandomU(rootOpts, cmd, args, opts, saveState)
		},
	}
	cmd.Flags().BoolVar(&opts.Double, "double", false, "uniform values with double precision")
	cmd.Flags().Float64SliceVar(&opts.Binomial, "binomial", nil, "binomial distribution n,p")
	cmd.Flags().Float64Var(&poisson, "poisson", 0, "Poisson distribution with this mean")
	cmd.Flags().StringVar(&saveState, "save-state", "", "write the updated seed to this file")
	return cmd
}

func runRandomU(opts *RootOptions, cmd *cobra.Command, args []string, ro random.Options, saveState string) error {
	f := opts.formatter(cmd)
	seed, err := parseSeed(args[0])
	if err != nil {
		return f.Fail(err)
	}
	dims := make([]int, len(args)-1)
	for i, a := range args[1:] {
		if dims[i], err = strconv.Atoi(a); err != nil {
			return f.Fail(argError("dimension %q is not an integer", a))
		}
	}

	vals, state, err := random.RandomU(seed, ro, dims...)
	if err != nil {
		return f.Fail(argError("%s", err))
	}
	if saveState != "" {
		if err := writeSeed(saveState, state); err != nil {
			return f.Fail(err)
		}
		f.VerboseLog("state written to %s", saveState)
	}
	return f.Success(RandomResult{Values: vals.Float64s(), Shape: vals.Shape(), double: ro.Double})
}

func parseSeed(s string) ([]uint32, error) {
	if strings.HasPrefix(s, "@") {
		return readSeed(s[1:])
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, argError("seed %q is not an unsigned 32 bit integer", s)
	}
	return []uint32{uint32(v)}, nil
}

func readSeed(filename string) ([]uint32, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, &ExitError{Code: ExitCommandError, Message: ErrCodeNotFound, Err: err}
	}
	var seed []uint32
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, argError("%s: %s", filename, err)
	}
	if len(seed) != random.SeedLen {
		return nil, argError("%s: want %d seed words, have %d", filename, random.SeedLen, len(seed))
	}
	return seed, nil
}

func writeSeed(filename string, seed []uint32) error {
	data, err := yaml.Marshal(seed)
	if err != nil {
		return merry.Wrap(err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return merry.Prepend(err, "save state")
	}
	return nil
}
