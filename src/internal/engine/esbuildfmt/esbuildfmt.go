// Package esbuildfmt formats JavaScript and TypeScript with esbuild's parser
// and printer.
//
// esbuild reprints the whole program from its AST, so layout follows its
// printer: two-space indentation, semicolons, double quotes where no escaping
// is needed. Comments other than legal comments and annotations are not
// carried over.
package esbuildfmt

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"

	"jsfmt/src/internal/engine"
)

var extensionLoaders = map[string]api.Loader{
	"js":  api.LoaderJS,
	"cjs": api.LoaderJS,
	"mjs": api.LoaderJS,
	"jsx": api.LoaderJSX,
	"ts":  api.LoaderTS,
	"cts": api.LoaderTS,
	"mts": api.LoaderTS,
	"tsx": api.LoaderTSX,
}

// Engine implements engine.Engine.
type Engine struct{}

// New returns an esbuild-backed engine.
func New() *Engine { return &Engine{} }

// Format resolves req.Overrides and formats req.Text.
func (e *Engine) Format(ctx context.Context, req engine.Request) (engine.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return engine.Outcome{}, err
	}
	log := zerolog.Ctx(ctx)

	cfg, diags := ResolveConfig(req.Overrides)
	for _, d := range diags {
		if d.Severity == Warning {
			log.Debug().Str("property", d.Property).Msg(d.Message)
		}
	}
	if failures := Failures(diags); len(failures) > 0 {
		msgs := make([]string, 0, len(failures))
		for _, d := range failures {
			msgs = append(msgs, "configuration: "+d.String())
		}
		return engine.Outcome{}, engine.NewError(msgs...)
	}

	out, err := FormatText(req.Path, req.Extension, req.Text, cfg)
	if err != nil {
		return engine.Outcome{}, err
	}
	if out == nil {
		log.Debug().Str("path", req.Path).Msg("no change needed")
		return engine.Unchanged(), nil
	}
	log.Debug().Str("path", req.Path).Int("bytes", len(*out)).Msg("formatted")
	return engine.Formatted(*out), nil
}

// FormatText formats text as the language selected by cfg.Loader, or by
// extension when no language is configured. It returns nil when the printed
// text is identical to the input.
func FormatText(path, extension, text string, cfg Config) (*string, error) {
	loader := cfg.Loader
	if loader == api.LoaderNone {
		var ok bool
		loader, ok = extensionLoaders[strings.ToLower(strings.TrimPrefix(extension, "."))]
		if !ok {
			return nil, engine.NewError(fmt.Sprintf("%s: unsupported file extension %q", path, extension))
		}
	}

	result := api.Transform(text, api.TransformOptions{
		Sourcefile:        path,
		Loader:            loader,
		LogLevel:          api.LogLevelSilent,
		Target:            cfg.Target,
		Format:            cfg.Format,
		Charset:           cfg.Charset,
		LegalComments:     cfg.LegalComments,
		JSX:               cfg.JSX,
		LineLimit:         cfg.LineWidth,
		MinifyWhitespace:  cfg.Minify,
		MinifySyntax:      cfg.Minify,
		MinifyIdentifiers: cfg.MinifyIdentifiers,
		KeepNames:         cfg.KeepNames,
	})
	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, m := range result.Errors {
			msgs = append(msgs, describe(path, m))
		}
		return nil, engine.NewError(msgs...)
	}

	out := applyNewLine(string(result.Code), text, cfg.NewLine)
	if out == text {
		return nil, nil
	}
	return &out, nil
}

// describe renders m as file:line:column: text. esbuild columns are 0-based.
func describe(path string, m api.Message) string {
	if m.Location == nil {
		return fmt.Sprintf("%s: %s", path, m.Text)
	}
	file := m.Location.File
	if file == "" {
		file = path
	}
	return fmt.Sprintf("%s:%d:%d: %s", file, m.Location.Line, m.Location.Column+1, m.Text)
}

func applyNewLine(out, input string, kind NewLineKind) string {
	if kind == NewLineAuto {
		kind = NewLineLF
		if i := strings.IndexByte(input, '\n'); i > 0 && input[i-1] == '\r' {
			kind = NewLineCRLF
		}
	}
	if kind == NewLineCRLF {
		return strings.ReplaceAll(out, "\n", "\r\n")
	}
	return out
}
