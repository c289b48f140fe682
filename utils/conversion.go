// File: utils/conversion.go
package utils

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// The local store persists profiles and reminders as JSON text. A bare
// RFC3339 string is indistinguishable from a field that merely looks like a
// date, so timestamps are wrapped in a tagged envelope on the way in and
// unwrapped on the way out. A value that round-trips through
// EncodeWithDates/DecodeWithDates compares equal to the original, including
// exact timestamp equality.

const dateTag = "Date"

type dateEnvelope struct {
	Type  string `json:"__type"`
	Value string `json:"value"`
}

// EncodeWithDates marshals v to JSON with every time.Time value replaced by
// a {"__type":"Date","value":...} envelope.
func EncodeWithDates(v any) ([]byte, error) {
	tree, err := tagDates(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return json.Marshal(tree)
}

// DecodeWithDates unmarshals JSON produced by EncodeWithDates into out,
// restoring tagged envelopes to time.Time values.
func DecodeWithDates(data []byte, out any) error {
	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to decode stored value: %w", err)
	}
	plain, err := json.Marshal(untagDates(tree))
	if err != nil {
		return err
	}
	return json.Unmarshal(plain, out)
}

var timeType = reflect.TypeOf(time.Time{})

// tagDates walks an arbitrary Go value and produces a JSON-ready tree in
// which every time.Time is replaced by a dateEnvelope.
func tagDates(v reflect.Value) (any, error) {
	if !v.IsValid() {
		return nil, nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return tagDates(v.Elem())

	case reflect.Struct:
		if v.Type() == timeType {
			t := v.Interface().(time.Time)
			return dateEnvelope{Type: dateTag, Value: t.Format(time.RFC3339Nano)}, nil
		}
		out := make(map[string]any, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() {
				continue
			}
			name, omitempty, skip := jsonFieldName(field)
			if skip {
				continue
			}
			fv := v.Field(i)
			if omitempty && fv.IsZero() {
				continue
			}
			tagged, err := tagDates(fv)
			if err != nil {
				return nil, err
			}
			out[name] = tagged
		}
		return out, nil

	case reflect.Map:
		if v.IsNil() {
			return nil, nil
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			tagged, err := tagDates(iter.Value())
			if err != nil {
				return nil, err
			}
			out[key] = tagged
		}
		return out, nil

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil, nil
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			tagged, err := tagDates(v.Index(i))
			if err != nil {
				return nil, err
			}
			out[i] = tagged
		}
		return out, nil

	default:
		return v.Interface(), nil
	}
}

// untagDates walks a decoded JSON tree and replaces every dateEnvelope with
// a bare RFC3339 string so the tree can be unmarshalled into typed structs.
func untagDates(v any) any {
	switch node := v.(type) {
	case map[string]any:
		if typ, ok := node["__type"].(string); ok && typ == dateTag && len(node) == 2 {
			if value, ok := node["value"].(string); ok {
				return value
			}
		}
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = untagDates(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = untagDates(child)
		}
		return out
	default:
		return v
	}
}

// jsonFieldName resolves the effective JSON key for a struct field.
func jsonFieldName(f reflect.StructField) (name string, omitempty, skip bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty, false
}
