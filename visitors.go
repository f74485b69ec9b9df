// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serde

// Numeric constraints for the built-in visitors. Kept local: the module
// needs only these three sets.
type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type float interface {
	~float32 | ~float64
}

// BoolVisitor constructs a bool.
type BoolVisitor struct {
	TypedVisitorBase[bool]
}

// Expecting implements [TypedVisitor].
func (BoolVisitor) Expecting() string { return "a boolean" }

// Bool accepts the value.
func (BoolVisitor) Bool(v bool) (bool, error) { return v, nil }

// IntVisitor constructs a signed integer type T, range-checking the
// decoded value against T's width.
type IntVisitor[T signed] struct {
	TypedVisitorBase[T]
}

// Expecting implements [TypedVisitor].
func (IntVisitor[T]) Expecting() string { return "an integer" }

// Int64 accepts a signed integer that fits in T.
func (IntVisitor[T]) Int64(v int64) (T, error) {
	t := T(v)
	if int64(t) != v {
		return 0, Errorf(KindInvalidValue, "integer %d out of range", v)
	}
	return t, nil
}

// Uint64 accepts an unsigned integer that fits in T.
func (iv IntVisitor[T]) Uint64(v uint64) (T, error) {
	if v > 1<<63-1 {
		return 0, Errorf(KindInvalidValue, "integer %d out of range", v)
	}
	return iv.Int64(int64(v))
}

// UintVisitor constructs an unsigned integer type T, range-checking the
// decoded value against T's width.
type UintVisitor[T unsigned] struct {
	TypedVisitorBase[T]
}

// Expecting implements [TypedVisitor].
func (UintVisitor[T]) Expecting() string { return "an unsigned integer" }

// Uint64 accepts an unsigned integer that fits in T.
func (UintVisitor[T]) Uint64(v uint64) (T, error) {
	t := T(v)
	if uint64(t) != v {
		return 0, Errorf(KindInvalidValue, "integer %d out of range", v)
	}
	return t, nil
}

// Int64 accepts a non-negative signed integer that fits in T.
func (uv UintVisitor[T]) Int64(v int64) (T, error) {
	if v < 0 {
		return 0, Errorf(KindInvalidValue, "integer %d out of range", v)
	}
	return uv.Uint64(uint64(v))
}

// FloatVisitor constructs a floating-point type T. Integers are accepted
// and converted.
type FloatVisitor[T float] struct {
	TypedVisitorBase[T]
}

// Expecting implements [TypedVisitor].
func (FloatVisitor[T]) Expecting() string { return "a floating-point number" }

// Float64 accepts the value.
func (FloatVisitor[T]) Float64(v float64) (T, error) { return T(v), nil }

// Int64 accepts a signed integer.
func (FloatVisitor[T]) Int64(v int64) (T, error) { return T(v), nil }

// Uint64 accepts an unsigned integer.
func (FloatVisitor[T]) Uint64(v uint64) (T, error) { return T(v), nil }

// StringVisitor constructs a string. Single code points are accepted and
// converted.
type StringVisitor struct {
	TypedVisitorBase[string]
}

// Expecting implements [TypedVisitor].
func (StringVisitor) Expecting() string { return "a string" }

// String accepts the value.
func (StringVisitor) String(v string) (string, error) { return v, nil }

// Rune accepts a single code point.
func (StringVisitor) Rune(v rune) (string, error) { return string(v), nil }

// RuneVisitor constructs a single code point. One-rune strings are
// accepted and converted.
type RuneVisitor struct {
	TypedVisitorBase[rune]
}

// Expecting implements [TypedVisitor].
func (RuneVisitor) Expecting() string { return "a character" }

// Rune accepts the value.
func (RuneVisitor) Rune(v rune) (rune, error) { return v, nil }

// String accepts a string holding exactly one code point.
func (RuneVisitor) String(v string) (rune, error) {
	runes := []rune(v)
	if len(runes) != 1 {
		return 0, Errorf(KindInvalidValue, "expected a single character, got %q", v)
	}
	return runes[0], nil
}

// BytesVisitor constructs a byte slice. The result is copied out of the
// backend's buffer; strings are accepted and converted.
type BytesVisitor struct {
	TypedVisitorBase[[]byte]
}

// Expecting implements [TypedVisitor].
func (BytesVisitor) Expecting() string { return "a byte sequence" }

// Bytes accepts the value.
func (BytesVisitor) Bytes(v []byte) ([]byte, error) {
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// String accepts a string.
func (BytesVisitor) String(v string) ([]byte, error) { return []byte(v), nil }

// Seq accepts a sequence of integers in the 0-255 range, for formats that
// represent byte sequences as arrays.
func (BytesVisitor) Seq(a SeqAccess) ([]byte, error) {
	out := []byte{}
	if n := a.SizeHint(); n > 0 {
		out = make([]byte, 0, n)
	}
	for {
		b, ok, err := NextElement(a, UintVisitor[uint8]{})
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, b)
	}
}
