package ast

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeJSON reads one JSON document and converts it into a Value.
//
// Unlike decoding into map[string]any, object keys keep the order in which
// they appear in the document, and numbers keep their exact decimal text.
// JSON null and booleans have no counterpart in the list format and fail
// with a *TypeError.
func DecodeJSON(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeJSONValue(dec, "")
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return nil, fmt.Errorf("invalid JSON: extra data after value")
	}

	return v, nil
}

// UnmarshalJSON converts a JSON document held in memory.
func UnmarshalJSON(data []byte) (Value, error) {
	return DecodeJSON(bytes.NewReader(data))
}

func decodeJSONValue(dec *json.Decoder, path string) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid JSON: unexpected end of input")
		}
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			l := List{}
			for i := 0; dec.More(); i++ {
				v, err := decodeJSONValue(dec, fmt.Sprintf("%s[%d]", path, i))
				if err != nil {
					return nil, err
				}
				l = append(l, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("invalid JSON: %w", err)
			}
			return l, nil

		case '{':
			d := &Dict{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("invalid JSON: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("invalid JSON: object key %v is not a string", keyTok)
				}
				v, err := decodeJSONValue(dec, path+"."+key)
				if err != nil {
					return nil, err
				}
				d.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("invalid JSON: %w", err)
			}
			return d, nil
		}
		return nil, fmt.Errorf("invalid JSON: unexpected %q", t)

	case string:
		return Text(t), nil

	case json.Number:
		return fromGo(t, path)

	default:
		// bool and nil
		return nil, &TypeError{Value: t, Path: path}
	}
}

// MarshalJSON writes the number without quotes.
func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Text()), nil
}

// MarshalJSON writes the dict as a JSON object in insertion order.
func (d *Dict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range d.Entries() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
