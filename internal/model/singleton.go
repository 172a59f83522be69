package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// SingletonRecord is the single row stored for a content kind such as the
// company configuration or the hero section.
type SingletonRecord struct {
	ID        string         `json:"id"`
	Kind      string         `json:"kind"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// String returns the string value of a field, or "" when it is unset or
// not a string.
func (r *SingletonRecord) String(field string) string {
	if r == nil {
		return ""
	}
	s, _ := r.Fields[field].(string)
	return s
}

// Public returns a copy of r without the fields its kind marks private.
// Records of unknown kinds are returned with no fields at all.
func (r *SingletonRecord) Public() *SingletonRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Fields = make(map[string]any, len(r.Fields))
	spec, ok := LookupKind(r.Kind)
	if !ok {
		return &out
	}
	for name, v := range r.Fields {
		if !spec.Private[name] {
			out.Fields[name] = v
		}
	}
	return &out
}

// FieldOp tells an update what to do with one field.
type FieldOp int

const (
	// FieldUnset leaves the stored value untouched.
	FieldUnset FieldOp = iota
	// FieldClear removes the stored value.
	FieldClear
	// FieldSet overwrites the stored value.
	FieldSet
)

// FieldUpdate is one entry of a partial update.
type FieldUpdate struct {
	Op    FieldOp
	Value any
}

// Set returns an update that overwrites a field with v.
func Set(v any) FieldUpdate { return FieldUpdate{Op: FieldSet, Value: v} }

// Clear returns an update that removes a field.
func Clear() FieldUpdate { return FieldUpdate{Op: FieldClear} }

// FieldUpdates maps field names to their update. A name missing from the
// map behaves exactly like an entry with FieldUnset.
type FieldUpdates map[string]FieldUpdate

// Split returns the values to write and the names to remove. Unset entries
// appear in neither.
func (u FieldUpdates) Split() (set map[string]any, clear []string) {
	set = make(map[string]any)
	clear = make([]string, 0)
	for name, fu := range u {
		switch fu.Op {
		case FieldSet:
			set[name] = fu.Value
		case FieldClear:
			clear = append(clear, name)
		}
	}
	return set, clear
}

// ParseFieldUpdates decodes a JSON object into FieldUpdates. Keys absent
// from the object are not present in the result; null and "" become
// FieldClear; anything else becomes FieldSet with the decoded value.
func ParseFieldUpdates(data []byte) (FieldUpdates, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode update payload: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("decode update payload: expected a JSON object")
	}

	out := make(FieldUpdates, len(raw))
	for name, msg := range raw {
		trimmed := bytes.TrimSpace(msg)
		if bytes.Equal(trimmed, []byte("null")) {
			out[name] = Clear()
			continue
		}
		var v any
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, fmt.Errorf("decode field %q: %w", name, err)
		}
		if s, ok := v.(string); ok && s == "" {
			out[name] = Clear()
			continue
		}
		out[name] = Set(v)
	}
	return out, nil
}
