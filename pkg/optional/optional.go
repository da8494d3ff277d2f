// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optional models a PATCH field that can be absent, explicitly null, or set.

A plain pointer cannot tell "leave it alone" from "clear it". Value[T] can:
encoding/json only calls UnmarshalJSON for keys present in the payload, so a
zero Value means the key was never sent.

	type Input struct {
	    Initiative optional.Value[int] `json:"initiative"`
	}

	{}                   -> Present() == false
	{"initiative":null}  -> Present() == true, IsNull() == true
	{"initiative":14}    -> Present() == true, Get() == 14
*/
package optional

import (
	"bytes"
	"encoding/json"
)

// Value holds a tri-state field.
type Value[T any] struct {
	present bool
	null    bool
	value   T
}

// Of returns a present, non-null Value.
func Of[T any](value T) Value[T] {
	return Value[T]{present: true, value: value}
}

// Null returns a present, explicitly null Value.
func Null[T any]() Value[T] {
	return Value[T]{present: true, null: true}
}

// FromPointer maps nil to null and anything else to a present value.
func FromPointer[T any](pointer *T) Value[T] {
	if pointer == nil {
		return Null[T]()
	}
	return Of(*pointer)
}

// Present reports whether the field was supplied at all.
func (v Value[T]) Present() bool { return v.present }

// IsNull reports whether the field was supplied as null.
func (v Value[T]) IsNull() bool { return v.present && v.null }

// Get returns the value; the zero value when absent or null.
func (v Value[T]) Get() T { return v.value }

// Pointer returns nil for absent or null, otherwise a pointer to a copy of the value.
func (v Value[T]) Pointer() *T {
	if !v.present || v.null {
		return nil
	}
	value := v.value
	return &value
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.null = true
		var zero T
		v.value = zero
		return nil
	}
	v.null = false
	return json.Unmarshal(data, &v.value)
}

// MarshalJSON implements json.Marshaler. Absent values encode as null.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.present || v.null {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}
