package lang

import (
	"bytes"
	"encoding/json"
	"iter"
	"maps"

	"github.com/goccy/go-yaml"
)

// Environment maps variable names to values.
//
// Assigning a name that is already present never overwrites it: the new value
// is appended to the existing one, separated by a single space, and the name
// keeps its original position. Iteration follows first-assignment order.
//
// The zero value is an empty Environment ready for use.
type Environment struct {
	keys []string
	vals map[string]string
}

// Set assigns value to key, merging with any existing value.
func (e *Environment) Set(key, value string) {
	if e.vals == nil {
		e.vals = make(map[string]string)
	}

	if prev, ok := e.vals[key]; ok {
		e.vals[key] = prev + " " + value

		return
	}

	e.keys = append(e.keys, key)
	e.vals[key] = value
}

// Get returns the value of key and whether it is present.
func (e Environment) Get(key string) (string, bool) {
	v, ok := e.vals[key]

	return v, ok
}

// Len returns the number of distinct names.
func (e Environment) Len() int { return len(e.keys) }

// Keys returns the names in first-assignment order.
func (e Environment) Keys() []string {
	keys := make([]string, len(e.keys))
	copy(keys, e.keys)

	return keys
}

// All returns an iterator over name/value pairs in first-assignment order.
func (e Environment) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range e.keys {
			if !yield(k, e.vals[k]) {
				return
			}
		}
	}
}

// Map returns a copy of the environment as a plain map.
func (e Environment) Map() map[string]string {
	m := make(map[string]string, len(e.vals))
	maps.Copy(m, e.vals)

	return m
}

// Clone returns a deep copy of e.
func (e Environment) Clone() Environment {
	return Environment{keys: e.Keys(), vals: e.Map()}
}

// reset discards all assignments.
func (e *Environment) reset() {
	e.keys = nil
	e.vals = nil
}

// MarshalJSON implements json.Marshaler, preserving assignment order.
func (e Environment) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range e.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		val, err := json.Marshal(e.vals[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.InterfaceMarshaler, preserving assignment
// order.
func (e Environment) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, len(e.keys))

	for _, k := range e.keys {
		ms = append(ms, yaml.MapItem{Key: k, Value: e.vals[k]})
	}

	return ms, nil
}
