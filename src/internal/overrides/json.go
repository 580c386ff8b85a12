package overrides

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// FromJSON extracts overrides from a JSON document. A document without a
// "typescript" object yields an empty map. When the key repeats at the top
// level, the last occurrence is used.
func FromJSON(ctx context.Context, data []byte) (Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, syntaxError(data)
	}

	m := Map{}
	var section gjson.Result
	gjson.ParseBytes(data).ForEach(func(key, value gjson.Result) bool {
		if key.Type == gjson.String && key.String() == Section {
			section = value
		}
		return true
	})
	if !section.IsObject() {
		return m, nil
	}
	section.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		switch value.Type {
		case gjson.True, gjson.False:
			m[name] = BoolValue(value.Bool())
		case gjson.Number:
			if i, ok := intFromNumber(value.Raw); ok {
				m[name] = IntValue(i)
			}
		case gjson.String:
			m[name] = StringValue(value.String())
		case gjson.Null:
			skipped(ctx, name, "null")
		default:
			if value.IsArray() {
				skipped(ctx, name, "array")
			} else {
				skipped(ctx, name, "object")
			}
		}
		return true
	})
	return m, nil
}

// syntaxError describes why data is not valid JSON. gjson only answers
// yes/no, so the position comes from the standard decoder.
func syntaxError(data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	var se *json.SyntaxError
	if errors.As(err, &se) {
		line, col := position(data, se.Offset)
		return fmt.Errorf("%s at line %d column %d", se.Error(), line, col)
	}
	if err != nil {
		return err
	}
	return errors.New("invalid JSON document")
}

func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	head := data[:offset]
	line = bytes.Count(head, []byte("\n")) + 1
	col = len(head) - bytes.LastIndexByte(head, '\n')
	return line, col
}
