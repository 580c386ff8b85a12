package source

import (
	"errors"
	"io"
	"unicode/utf8"

	"jsfmt/src/internal/apperr"
)

// ErrInvalidUTF8 is the cause reported when input bytes are not UTF-8.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Resolve returns code verbatim when hasCode is set. Otherwise it reads all
// of stdin; empty input is valid and yields "".
func Resolve(code string, hasCode bool, stdin io.Reader) (string, error) {
	if hasCode {
		return code, nil
	}
	if stdin == nil {
		return "", nil
	}
	b, err := io.ReadAll(stdin)
	if err == nil && !utf8.Valid(b) {
		err = ErrInvalidUTF8
	}
	if err != nil {
		return "", apperr.Wrap(apperr.IoError, err, "Error reading from stdin")
	}
	return string(b), nil
}
