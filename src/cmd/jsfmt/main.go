package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"jsfmt/src/cmd/jsfmt/formatcmd"
	"jsfmt/src/internal/apperr"
	"jsfmt/src/internal/engine"
	"jsfmt/src/internal/engine/esbuildfmt"
	"jsfmt/src/internal/logging"
)

var newEngine = func() engine.Engine { return esbuildfmt.New() }

func newRootCmd() *cobra.Command {
	return formatcmd.New(newEngine())
}

// run executes one invocation and maps its outcome to an exit status. It is
// the only place where errors are printed.
func run(root *cobra.Command, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := logging.New(logging.Config{Output: stderr})
	ctx := logger.WithContext(context.Background())

	// cobra reads os.Args when handed a nil slice.
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return apperr.ExitSuccess
	}

	_, _ = fmt.Fprintln(stderr, err)
	if apperr.IsUsage(err) {
		_, _ = io.WriteString(stderr, root.UsageString())
	}
	logger.Debug().Str("kind", apperr.KindOf(err).String()).Msg("run failed")
	return apperr.ExitCode(err)
}

func main() {
	os.Exit(run(newRootCmd(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
