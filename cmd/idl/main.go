// Command idl converts dates like the IDL JULDAY and CALDAT built-ins and runs
// IDL batch jobs.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/powerman/structlog"

	"github.com/SebastiaanKlippert/go-idl/internal/cli"
)

func main() {
	structlog.DefaultLogger.
		SetPrefixKeys(
			structlog.KeyApp, structlog.KeyPID, structlog.KeyLevel, structlog.KeyUnit, structlog.KeyTime,
		).
		SetDefaultKeyvals(
			structlog.KeyApp, filepath.Base(os.Args[0]),
			structlog.KeySource, structlog.Auto,
		).
		SetSuffixKeys(
			structlog.KeyStack,
		).
		SetSuffixKeys(structlog.KeySource).
		SetKeysFormat(map[string]string{
			structlog.KeyTime:   " %[2]s",
			structlog.KeySource: " %6[2]s",
			structlog.KeyUnit:   " %6[2]s",
		})

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Errors from Fail were already written by the command
		if _, reported := err.(*cli.ExitError); !reported {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
