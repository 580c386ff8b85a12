package formatcmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"jsfmt/src/internal/apperr"
	"jsfmt/src/internal/cliargs"
	"jsfmt/src/internal/engine"
	"jsfmt/src/internal/overrides"
	"jsfmt/src/internal/source"
)

// Source text is always formatted as if it came from this file.
const (
	SyntheticPath      = "input.js"
	SyntheticExtension = "js"
)

// New returns the command that formats code given as an argument or on stdin.
//
// Flag parsing is left to cliargs: the grammar treats single-dash tokens as
// code and lets -c consume any following token, which pflag cannot express.
// The flags are still declared so cobra renders them in the help text.
func New(eng engine.Engine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsfmt [OPTIONS] [<code>]",
		Short: "Format JavaScript/TypeScript code",
		Long:  "Format JavaScript/TypeScript code. Reads from stdin if no code argument provided.",
		Example: `  jsfmt 'if(x)console.log("hi");'
  cat file.js | jsfmt --config-file dprint.json
  jsfmt --config-file dprint.json < input.js > output.js`,
		DisableFlagParsing:    true,
		DisableFlagsInUseLine: true,
		SilenceErrors:         true,
		SilenceUsage:          true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := cliargs.Parse(args)
			if err != nil {
				return err
			}
			if parsed.Help {
				return cmd.Help()
			}
			return Run(cmd.Context(), eng, parsed, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringP("config-file", "c", "", "load formatting options from the JSON file at `PATH`")
	cmd.Flags().BoolP("help", "h", false, "print usage and exit")
	return cmd
}

// Run performs one formatting pass: resolve the source, load overrides, call
// the engine and write the result to stdout.
func Run(ctx context.Context, eng engine.Engine, args cliargs.ParsedArgs, stdin io.Reader, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	text, err := source.Resolve(args.Code, args.HasCode, stdin)
	if err != nil {
		return err
	}

	ov := overrides.Map{}
	if args.HasConfigFile {
		if ov, err = overrides.Load(ctx, args.ConfigFile); err != nil {
			return err
		}
	}

	outcome, err := eng.Format(ctx, engine.Request{
		Path:      SyntheticPath,
		Extension: SyntheticExtension,
		Text:      text,
		Overrides: ov,
	})
	if err != nil {
		return apperr.Wrap(apperr.EngineError, err, "Error formatting code")
	}

	out := text
	if outcome.Changed {
		out = outcome.Text
	}
	if _, err := io.WriteString(stdout, out); err != nil {
		return apperr.Wrap(apperr.IoError, err, "Error writing output")
	}
	return nil
}
