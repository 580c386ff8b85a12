package esbuildfmt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"jsfmt/src/internal/overrides"
)

// NewLineKind selects the line terminator of the printed text.
type NewLineKind string

const (
	NewLineLF   NewLineKind = "lf"
	NewLineCRLF NewLineKind = "crlf"
	NewLineAuto NewLineKind = "auto"
)

// Config is the resolved engine configuration.
type Config struct {
	LineWidth         int
	Loader            api.Loader // LoaderNone: pick from the file extension
	Target            api.Target
	Format            api.Format
	Charset           api.Charset
	LegalComments     api.LegalComments
	JSX               api.JSX
	Minify            bool
	MinifyIdentifiers bool
	KeepNames         bool
	NewLine           NewLineKind
}

// Defaults returns the configuration used when no override is given.
func Defaults() Config {
	return Config{
		Loader:        api.LoaderNone,
		Target:        api.ESNext,
		Format:        api.FormatDefault,
		Charset:       api.CharsetUTF8,
		LegalComments: api.LegalCommentsInline,
		JSX:           api.JSXPreserve,
		NewLine:       NewLineLF,
	}
}

// Severity of a Diagnostic.
type Severity int

const (
	Warning Severity = iota
	Failure
)

// Diagnostic is a problem found while resolving the configuration.
type Diagnostic struct {
	Severity Severity
	Property string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Property, d.Message)
}

var (
	languages = map[string]api.Loader{
		"js":  api.LoaderJS,
		"jsx": api.LoaderJSX,
		"ts":  api.LoaderTS,
		"tsx": api.LoaderTSX,
	}
	targets = map[string]api.Target{
		"esnext": api.ESNext,
		"es5":    api.ES5,
		"es2015": api.ES2015,
		"es2016": api.ES2016,
		"es2017": api.ES2017,
		"es2018": api.ES2018,
		"es2019": api.ES2019,
		"es2020": api.ES2020,
		"es2021": api.ES2021,
		"es2022": api.ES2022,
	}
	moduleFormats = map[string]api.Format{
		"preserve": api.FormatDefault,
		"esm":      api.FormatESModule,
		"cjs":      api.FormatCommonJS,
		"iife":     api.FormatIIFE,
	}
	charsets = map[string]api.Charset{
		"utf8":  api.CharsetUTF8,
		"ascii": api.CharsetASCII,
	}
	legalComments = map[string]api.LegalComments{
		"inline": api.LegalCommentsInline,
		"eof":    api.LegalCommentsEndOfFile,
		"none":   api.LegalCommentsNone,
	}
	jsxModes = map[string]api.JSX{
		"preserve":  api.JSXPreserve,
		"transform": api.JSXTransform,
		"automatic": api.JSXAutomatic,
	}
	newLineKinds = map[string]NewLineKind{
		"lf":   NewLineLF,
		"crlf": NewLineCRLF,
		"auto": NewLineAuto,
	}
)

type resolver struct {
	cfg   Config
	diags []Diagnostic
}

func (r *resolver) report(sev Severity, key, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{Severity: sev, Property: key, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) boolean(key string, v overrides.Value, dst *bool) {
	if v.Kind != overrides.Bool {
		r.report(Failure, key, "expected boolean, got %s", v.Kind)
		return
	}
	*dst = v.Bool
}

func choice[T any](r *resolver, key string, v overrides.Value, choices map[string]T, dst *T) {
	if v.Kind != overrides.String {
		r.report(Failure, key, "expected string, got %s", v.Kind)
		return
	}
	got, ok := choices[strings.ToLower(v.Str)]
	if !ok {
		keys := make([]string, 0, len(choices))
		for k := range choices {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		r.report(Failure, key, "unsupported value %q (expected one of %s)", v.Str, strings.Join(keys, ", "))
		return
	}
	*dst = got
}

// ResolveConfig merges ov onto Defaults. Unknown option names produce a
// Warning and are ignored; known options with a bad value produce a Failure
// and keep their default.
func ResolveConfig(ov overrides.Map) (Config, []Diagnostic) {
	r := &resolver{cfg: Defaults()}
	for _, key := range ov.Keys() {
		v := ov[key]
		switch key {
		case "lineWidth":
			switch {
			case v.Kind != overrides.Int:
				r.report(Failure, key, "expected integer, got %s", v.Kind)
			case v.Int < 0:
				r.report(Failure, key, "must not be negative, got %d", v.Int)
			default:
				r.cfg.LineWidth = int(v.Int)
			}
		case "language":
			choice(r, key, v, languages, &r.cfg.Loader)
		case "target":
			choice(r, key, v, targets, &r.cfg.Target)
		case "moduleFormat":
			choice(r, key, v, moduleFormats, &r.cfg.Format)
		case "charset":
			choice(r, key, v, charsets, &r.cfg.Charset)
		case "legalComments":
			choice(r, key, v, legalComments, &r.cfg.LegalComments)
		case "jsx":
			choice(r, key, v, jsxModes, &r.cfg.JSX)
		case "newLineKind":
			choice(r, key, v, newLineKinds, &r.cfg.NewLine)
		case "minify":
			r.boolean(key, v, &r.cfg.Minify)
		case "minifyIdentifiers":
			r.boolean(key, v, &r.cfg.MinifyIdentifiers)
		case "keepNames":
			r.boolean(key, v, &r.cfg.KeepNames)
		default:
			r.report(Warning, key, "unknown property in configuration")
		}
	}
	return r.cfg, r.diags
}

// Failures returns the Failure diagnostics of diags.
func Failures(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == Failure {
			out = append(out, d)
		}
	}
	return out
}
