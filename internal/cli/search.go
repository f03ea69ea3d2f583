package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SebastiaanKlippert/go-idl/filesearch"
)

// SearchResult lists found files.
type SearchResult struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// String lists one path per line.
func (r SearchResult) String() string {
	if len(r.Files) == 0 {
		return ""
	}
	return strings.Join(r.Files, "\n") + "\n"
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var opts filesearch.Options
	cmd := &cobra.Command{
		Use:   "search <dir> [pattern]",
		Short: "Find files like IDL FILE_SEARCH",
		Long: `Without a pattern list the regular files in dir. With a pattern, such as
"*.pro", search dir and all directories below it for matching file names.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := ""
			if len(args) == 2 {
				pattern = args[1]
			}
			return runSearch(rootOpts, cmd, args[0], pattern, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.MatchAllInitialDot, "match-all-initial-dot", false, "include files starting with a dot")
	return cmd
}

func runSearch(opts *RootOptions, cmd *cobra.Command, dir, pattern string, so filesearch.Options) error {
	f := opts.formatter(cmd)
	files, err := filesearch.Search(dir, pattern, so)
	if os.IsNotExist(err) {
		return f.Fail(&ExitError{Code: ExitCommandError, Message: ErrCodeNotFound, Err: err})
	}
	if err != nil {
		return f.Fail(argError("%s", err))
	}
	if files == nil {
		files = []string{}
	}
	return f.Success(SearchResult{Files: files, Count: len(files)})
}
