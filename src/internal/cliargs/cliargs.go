// Package cliargs turns the process argument list into a ParsedArgs value.
//
// The grammar is small and not getopt-shaped: a single-dash token other than
// -c or -h is source code, -c swallows whatever token follows it, and the
// last positional token wins. Parse is a pure fold over the list; it never
// exits, prints, or reads input.
package cliargs

import (
	"strings"

	"jsfmt/src/internal/apperr"
)

const configFileInline = "--config-file="

// ParsedArgs is the resolved invocation for one run.
type ParsedArgs struct {
	Code          string
	HasCode       bool
	ConfigFile    string
	HasConfigFile bool
	Help          bool
}

// Parse folds args (without argv[0]) into ParsedArgs.
//
// A help flag anywhere in args wins: the result has Help set and a nil error
// even when other tokens were invalid. Otherwise the first usage error found
// is returned.
func Parse(args []string) (ParsedArgs, error) {
	var (
		out      ParsedArgs
		firstErr error
	)
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--config-file" || arg == "-c":
			if i+1 >= len(args) {
				fail(apperr.Usagef(false, "Error: --config-file requires a path argument"))
				continue
			}
			i++
			out.ConfigFile, out.HasConfigFile = args[i], true
		case strings.HasPrefix(arg, configFileInline):
			out.ConfigFile, out.HasConfigFile = strings.TrimPrefix(arg, configFileInline), true
		case arg == "--help" || arg == "-h":
			out.Help = true
		case !strings.HasPrefix(arg, "--"):
			// Last one wins. Multiple code arguments are not rejected.
			out.Code, out.HasCode = arg, true
		default:
			fail(apperr.Usagef(true, "Unknown argument: %s", arg))
		}
	}

	if out.Help {
		return ParsedArgs{Help: true}, nil
	}
	if firstErr != nil {
		return ParsedArgs{}, firstErr
	}
	return out, nil
}
