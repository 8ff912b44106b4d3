package kernel

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state patch field: absent (leave unchanged), explicit null
// (clear), or a value (replace). The zero value is absent.
//
// When used as a struct field decoded from JSON, a missing key stays absent,
// a null literal becomes Null and anything else becomes Some.
type Optional[T any] struct {
	present bool
	null    bool
	value   T
}

// Some wraps a value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{present: true, value: v}
}

// Null marks the field for clearing.
func Null[T any]() Optional[T] {
	return Optional[T]{present: true, null: true}
}

// Absent returns an unset field.
func Absent[T any]() Optional[T] {
	return Optional[T]{}
}

// IsPresent reports whether the field was provided at all (value or null).
func (o Optional[T]) IsPresent() bool { return o.present }

// IsNull reports whether the field was explicitly set to null.
func (o Optional[T]) IsNull() bool { return o.present && o.null }

// Get returns the value and whether one is set. Null and absent both report false.
func (o Optional[T]) Get() (T, bool) {
	if !o.present || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.null = true
		var zero T
		o.value = zero
		return nil
	}
	o.null = false
	return json.Unmarshal(data, &o.value)
}

// MapOptional converts the value of an Optional, preserving absent and null.
func MapOptional[T, U any](o Optional[T], fn func(T) (U, error)) (Optional[U], error) {
	if !o.present {
		return Absent[U](), nil
	}
	if o.null {
		return Null[U](), nil
	}
	u, err := fn(o.value)
	if err != nil {
		return Absent[U](), err
	}
	return Some(u), nil
}
