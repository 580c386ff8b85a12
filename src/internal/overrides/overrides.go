// Package overrides extracts formatting option overrides from a config file.
//
// Only the top-level "typescript" object is consulted. Each entry whose value
// is a boolean, number or string becomes one override; every other value kind
// is dropped without an error.
package overrides

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"jsfmt/src/internal/apperr"
)

// Section is the key of the object overrides are read from.
const Section = "typescript"

// ErrInvalidUTF8 is the cause reported for config files that are not UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Kind is the scalar type of a Value.
type Kind int

const (
	Bool Kind = iota + 1
	Int
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Value is one typed override.
type Value struct {
	Kind Kind
	Bool bool
	Int  int32
	Str  string
}

func BoolValue(b bool) Value     { return Value{Kind: Bool, Bool: b} }
func IntValue(i int32) Value     { return Value{Kind: Int, Int: i} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

func (v Value) String() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.Bool)
	case Int:
		return strconv.FormatInt(int64(v.Int), 10)
	case String:
		return strconv.Quote(v.Str)
	default:
		return "<invalid>"
	}
}

// Map holds overrides by option name.
type Map map[string]Value

// Keys returns the option names in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the config file at path and extracts its overrides.
// Files ending in .yaml or .yml are parsed as YAML; anything else as JSON.
func Load(ctx context.Context, path string) (Map, error) {
	prefix := fmt.Sprintf("Error loading config file '%s'", path)
	data, err := os.ReadFile(path)
	if err == nil && !utf8.Valid(data) {
		err = ErrInvalidUTF8
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.IoError, err, prefix)
	}

	var m Map
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		m, err = FromYAML(ctx, data)
	default:
		m, err = FromJSON(ctx, data)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ConfigParseError, err, prefix)
	}
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("overrides", len(m)).Msg("config file loaded")
	return m, nil
}

// intFromNumber converts a numeric literal to an override integer. Integer
// literals are narrowed to 32 bits with wraparound; anything else is
// truncated toward zero and clamped to the int32 range. ok is false for
// literals that are not numbers or are NaN.
func intFromNumber(raw string) (v int32, ok bool) {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return int32(i), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return intFromFloat(f)
}

func intFromFloat(f float64) (int32, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= math.MaxInt32:
		return math.MaxInt32, true
	case f <= math.MinInt32:
		return math.MinInt32, true
	default:
		return int32(f), true
	}
}

func skipped(ctx context.Context, key, kind string) {
	zerolog.Ctx(ctx).Debug().Str("key", key).Str("kind", kind).Msg("ignoring override with unsupported value kind")
}
