package models

import (
	"bytes"
	"encoding/json"
)

// Identified is implemented by every record that can be referenced.
type Identified interface {
	RecordID() string
}

// Ref points at another record. The backend sends either the bare id
// ("restaurant_id": "abc") or the populated object
// ("restaurant_id": {"id": "abc", "name": ...}); both decode into a Ref.
type Ref[T Identified] struct {
	ID    string
	Value *T
}

// RefTo builds an id-only reference.
func RefTo[T Identified](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Populated wraps a full record as a reference.
func Populated[T Identified](v T) Ref[T] {
	return Ref[T]{ID: v.RecordID(), Value: &v}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*r = Ref[T]{}
		return nil
	case b[0] == '"':
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref[T]{ID: id}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*r = Ref[T]{ID: v.RecordID(), Value: &v}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	if r.Value != nil {
		return json.Marshal(r.Value)
	}
	if r.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(r.ID)
}

// IsZero reports whether the reference points nowhere.
func (r Ref[T]) IsZero() bool {
	return r.ID == "" && r.Value == nil
}
