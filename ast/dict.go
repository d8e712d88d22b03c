package ast

import (
	"golang.org/x/exp/slices"
)

// Entry is a single key/value pair of a Dict.
type Entry struct {
	Key   string
	Value Value
}

// Dict is a mapping from string keys to values that remembers insertion
// order. Keys are unique: setting an existing key replaces its value and
// keeps the position where the key was first inserted.
//
// The zero value is an empty dict ready to use.
type Dict struct {
	entries []Entry
	index   map[string]int
}

var _ Value = (*Dict)(nil)

func (*Dict) Kind() Kind { return KindDict }
func (*Dict) value()     {}

// Set stores value under key.
func (d *Dict) Set(key string, value Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[key]; ok {
		d.entries[i].Value = value
		return
	}
	d.index[key] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: value})
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	if d == nil {
		return nil, false
	}
	i, ok := d.index[key]
	if !ok {
		return nil, false
	}
	return d.entries[i].Value, true
}

// GetText returns the value under key when it is Text.
func (d *Dict) GetText(key string) (string, bool) {
	v, ok := d.Get(key)
	if !ok {
		return "", false
	}
	t, ok := v.(Text)
	return string(t), ok
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	if d == nil {
		return false
	}
	i, ok := d.index[key]
	if !ok {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	delete(d.index, key)
	for j := i; j < len(d.entries); j++ {
		d.index[d.entries[j].Key] = j
	}
	return true
}

// Len returns the number of keys.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, len(d.entries))
	for i, e := range d.entries {
		keys[i] = e.Key
	}
	return keys
}

// Entries returns the pairs in insertion order. The slice is shared with the
// dict and must not be modified.
func (d *Dict) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

// Equal reports whether two dicts hold the same keys in the same order with
// equal values.
func (d *Dict) Equal(other *Dict) bool {
	return slices.EqualFunc(d.Entries(), other.Entries(), func(a, b Entry) bool {
		return a.Key == b.Key && Equal(a.Value, b.Value)
	})
}

// Equal reports whether two values are structurally identical. Numbers
// compare by numeric value.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case Text:
		bt, ok := b.(Text)
		return ok && a == bt
	case Number:
		bn, ok := b.(Number)
		return ok && a.Decimal.Equal(bn.Decimal)
	case List:
		bl, ok := b.(List)
		return ok && slices.EqualFunc(a, bl, Equal)
	case *Dict:
		bd, ok := b.(*Dict)
		return ok && a.Equal(bd)
	}
	return false
}
