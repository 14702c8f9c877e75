package remote

import (
	"bytes"
	"encoding/json"

	"github.com/guangfu250923/fieldsync/pkg/errors"
)

// The datastore answers in one of three shapes: a wrapper object exposing a
// "member" collection, a bare array, or a single object. Each shape has one
// explicit decode rule; anything else fails clearly instead of falling
// through as an empty result.

// item is one raw remote record. Numbers are kept as json.Number so remote
// identifiers survive without float rounding.
type item map[string]any

func decodeCollection(body []byte) ([]item, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, &errors.ParseError{Format: "json", Message: "empty response body"}
	}

	switch trimmed[0] {
	case '{':
		var obj map[string]json.RawMessage
		if err := unmarshal(trimmed, &obj); err != nil {
			return nil, err
		}
		if member, ok := obj["member"]; ok {
			var items []item
			if err := unmarshal(member, &items); err != nil {
				return nil, &errors.ParseError{Format: "json", Message: "member is not a collection", Err: err}
			}
			return items, nil
		}
		// A single object is a one-element collection.
		var single item
		if err := unmarshal(trimmed, &single); err != nil {
			return nil, err
		}
		return []item{single}, nil

	case '[':
		var items []item
		if err := unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil

	default:
		return nil, &errors.ParseError{Format: "json", Message: "unrecognized response shape"}
	}
}

func unmarshal(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return errors.WrapParse("json", "", err)
	}
	return nil
}
