package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SebastiaanKlippert/go-idl/spawn"
)

// SpawnResult counts finished IDL jobs.
type SpawnResult struct {
	Succeeded int      `json:"succeeded"`
	Total     int      `json:"total"`
	Jobs      []string `json:"jobs"`
}

func (r SpawnResult) String() string {
	return fmt.Sprintf("%d/%d jobs finished\n", r.Succeeded, r.Total)
}

// NewSpawnCommand creates the spawn command.
func NewSpawnCommand(rootOpts *RootOptions) *cobra.Command {
	var vars []string
	cmd := &cobra.Command{
		Use:   "spawn <idl-command>...",
		Short: "Run IDL commands in child processes",
		Long: `Run every argument as an IDL procedure or function call in its own IDL
process, at most spawn.concurrency at a time.

Variables used as arguments of a call are set with --var name=value. Values
are read as booleans, integers, floats or RFC 3339 times where possible and
as strings otherwise. A job succeeds when IDL runs it to the end.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSpawn(rootOpts, cmd, args, vars)
		},
	}
	cmd.Flags().StringArrayVar(&vars, "var", nil, "variable as name=value, repeatable")
	return cmd
}

func runSpawn(opts *RootOptions, cmd *cobra.Command, args, rawVars []string) error {
	f := opts.formatter(cmd)
	vars, err := parseVars(rawVars)
	if err != nil {
		return f.Fail(err)
	}

	sc := opts.Config.Spawn
	jobOpts := spawn.Options{
		Executable:  sc.Executable,
		UTC:         sc.UTC,
		StdoutLevel: sc.StdoutLevel,
		StderrLevel: sc.StderrLevel,
		Logger:      opts.Log,
	}
	q := &spawn.Queue{Concurrency: sc.Concurrency}
	res := SpawnResult{}
	for _, a := range args {
		j, err := spawn.NewJob(a, vars, jobOpts)
		if err != nil {
			return f.Fail(argError("%s", err))
		}
		f.VerboseLog("job %s: %s", j.ID, j.Command)
		res.Jobs = append(res.Jobs, j.ID)
		q.Submit(j)
	}

	res.Succeeded, res.Total, err = q.Run(cmd.Context())
	if err != nil {
		if werr := f.Error(ErrCodeJobFailed, err.Error(), res); werr != nil {
			return werr
		}
		return &ExitError{Code: ExitFailure, Message: ErrCodeJobFailed, Err: err}
	}
	return f.Success(res)
}

// parseVars reads name=value pairs
func parseVars(raw []string) (map[string]interface{}, error) {
	vars := make(map[string]interface{}, len(raw))
	for _, kv := range raw {
		name, val, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, argError("variable %q is not name=value", kv)
		}
		vars[name] = parseValue(val)
	}
	return vars, nil
}

func parseValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil && (s == "true" || s == "false") {
		return b
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return s
}
