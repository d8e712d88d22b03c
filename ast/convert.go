package ast

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sort"

	"github.com/shopspring/decimal"
)

// FromGo converts a plain Go value into a Value.
//
// Supported inputs are strings, integer and float kinds, decimal.Decimal,
// json.Number, slices of those, map[string]any and values that already
// implement Value. Maps are converted with their keys sorted, since Go maps
// carry no order; use *Dict to control key order. Anything else, including
// nil and booleans, fails with a *TypeError.
func FromGo(v any) (Value, error) {
	return fromGo(v, "")
}

func fromGo(v any, path string) (Value, error) {
	switch v := v.(type) {
	case Value:
		if d, ok := v.(*Dict); ok && d == nil {
			return nil, &TypeError{Value: v, Path: path}
		}
		return v, nil
	case string:
		return Text(v), nil
	case int:
		return NewInt(int64(v)), nil
	case int8:
		return NewInt(int64(v)), nil
	case int16:
		return NewInt(int64(v)), nil
	case int32:
		return NewInt(int64(v)), nil
	case int64:
		return NewInt(v), nil
	case uint:
		return newUint(uint64(v)), nil
	case uint8:
		return NewInt(int64(v)), nil
	case uint16:
		return NewInt(int64(v)), nil
	case uint32:
		return NewInt(int64(v)), nil
	case uint64:
		return newUint(v), nil
	case float32:
		if !isFinite(float64(v)) {
			return nil, &TypeError{Value: v, Path: path}
		}
		return Number{decimal.NewFromFloat32(v)}, nil
	case float64:
		if !isFinite(v) {
			return nil, &TypeError{Value: v, Path: path}
		}
		return NewFloat(v), nil
	case decimal.Decimal:
		if !inRange(v) {
			return nil, &TypeError{Value: v, Path: path}
		}
		return Number{v}, nil
	case json.Number:
		n, err := NewNumber(string(v))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q at %s: %w", string(v), pathOrRoot(path), err)
		}
		return n, nil
	case []string:
		return NewTextList(v...), nil
	case []any:
		l := make(List, len(v))
		for i, e := range v {
			ev, err := fromGo(e, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			l[i] = ev
		}
		return l, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		d := &Dict{}
		for _, k := range keys {
			ev, err := fromGo(v[k], path+"."+k)
			if err != nil {
				return nil, err
			}
			d.Set(k, ev)
		}
		return d, nil
	case map[string]string:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		d := &Dict{}
		for _, k := range keys {
			d.Set(k, Text(v[k]))
		}
		return d, nil
	}

	return nil, &TypeError{Value: v, Path: path}
}

func newUint(v uint64) Number {
	return Number{decimal.NewFromBigInt(new(big.Int).SetUint64(v), 0)}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "root"
	}
	return path
}
