// Command picrename batch-renames image files to a uniform
// prefix/number/date scheme and remembers where the last batch stopped.
//
// Usage:
//
//	picrename [global options] <command> [options] [args]
//
// Exit codes:
//   - 0: success
//   - 1: usage or precondition error, or any file in the batch failed
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/backmassage/picrename/internal/config"
)

// version and commit are set at build time via -ldflags.
var (
	version = "1.0.0-dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

// run builds the CLI and maps its error to an exit code.
func run(args []string) int {
	// -v belongs to --verbose.
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}

	app := &cli.App{
		Name:    "picrename",
		Usage:   "Batch-rename image files with a prefix, sequence number and date",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		Flags:   config.GlobalFlags(),
		Before:  setup,
		After:   teardown,
		// Exit codes are decided by run, not inside the library.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			scanCommand(),
			renameCommand(),
			lastCommand(),
			previewCommand(),
			checkCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(args); err != nil {
		return exitCode(err)
	}
	return 0
}

// exitCode prints err (unless it is a bare cli.Exit status) and returns the
// process exit code.
func exitCode(err error) int {
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		// cli.Exit("", N).Error() returns "exit status N", so skip those.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintf(os.Stderr, "picrename: %s\n", msg)
		}
		return code
	}
	fmt.Fprintf(os.Stderr, "picrename: %v\n", err)
	return 1
}
