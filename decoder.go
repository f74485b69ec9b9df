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

// Decoder is the format-native decoding interface implemented by concrete
// backends. T is the type the caller is constructing: every decode
// operation takes a [TypedVisitor] and returns the value it built.
//
// Compound shapes hand the visitor an erased access object ([SeqAccess],
// [MapAccess], [EnumAccess]); nested elements are re-typed with the
// generic helpers [NextElement], [NextKey], and [NextValue], so a single
// backend instance serves arbitrarily nested target types. Backends
// implement Decoder as a generic view over shared decoding state, for
// example:
//
//	dec := json.NewDecoder[Config](body)
//	cfg, err := dec.DecodeMap(configVisitor{})
//
// Method semantics match [Deserializer] operation for operation.
type Decoder[T any] interface {
	// DecodeAny decodes whatever shape the input holds next.
	DecodeAny(v TypedVisitor[T]) (T, error)

	// DecodeBool decodes a bool.
	DecodeBool(v TypedVisitor[T]) (T, error)

	// DecodeInt8 decodes an int8, widened to int64 for the visitor.
	DecodeInt8(v TypedVisitor[T]) (T, error)

	// DecodeInt16 decodes an int16, widened to int64 for the visitor.
	DecodeInt16(v TypedVisitor[T]) (T, error)

	// DecodeInt32 decodes an int32, widened to int64 for the visitor.
	DecodeInt32(v TypedVisitor[T]) (T, error)

	// DecodeInt64 decodes an int64.
	DecodeInt64(v TypedVisitor[T]) (T, error)

	// DecodeUint8 decodes a uint8, widened to uint64 for the visitor.
	DecodeUint8(v TypedVisitor[T]) (T, error)

	// DecodeUint16 decodes a uint16, widened to uint64 for the visitor.
	DecodeUint16(v TypedVisitor[T]) (T, error)

	// DecodeUint32 decodes a uint32, widened to uint64 for the visitor.
	DecodeUint32(v TypedVisitor[T]) (T, error)

	// DecodeUint64 decodes a uint64.
	DecodeUint64(v TypedVisitor[T]) (T, error)

	// DecodeFloat32 decodes a float32, delivered as float64.
	DecodeFloat32(v TypedVisitor[T]) (T, error)

	// DecodeFloat64 decodes a float64.
	DecodeFloat64(v TypedVisitor[T]) (T, error)

	// DecodeRune decodes a single Unicode code point.
	DecodeRune(v TypedVisitor[T]) (T, error)

	// DecodeString decodes a string.
	DecodeString(v TypedVisitor[T]) (T, error)

	// DecodeBytes decodes an opaque byte sequence.
	DecodeBytes(v TypedVisitor[T]) (T, error)

	// DecodeOption decodes an optional value.
	DecodeOption(v TypedVisitor[T]) (T, error)

	// DecodeUnit decodes the unit value.
	DecodeUnit(v TypedVisitor[T]) (T, error)

	// DecodeUnitStruct decodes a named struct with no fields.
	DecodeUnitStruct(name string, v TypedVisitor[T]) (T, error)

	// DecodeNewtypeStruct decodes a named single-field wrapper struct.
	DecodeNewtypeStruct(name string, v TypedVisitor[T]) (T, error)

	// DecodeSeq decodes a sequence.
	DecodeSeq(v TypedVisitor[T]) (T, error)

	// DecodeTuple decodes a fixed-length sequence of n elements.
	DecodeTuple(n int, v TypedVisitor[T]) (T, error)

	// DecodeTupleStruct decodes a named tuple struct with n fields.
	DecodeTupleStruct(name string, n int, v TypedVisitor[T]) (T, error)

	// DecodeMap decodes a map.
	DecodeMap(v TypedVisitor[T]) (T, error)

	// DecodeStruct decodes a named struct with the given field names.
	DecodeStruct(name string, fields []string, v TypedVisitor[T]) (T, error)

	// DecodeEnum decodes an enum with the given variant names.
	DecodeEnum(name string, variants []string, v TypedVisitor[T]) (T, error)

	// DecodeIdentifier decodes a field or variant identifier.
	DecodeIdentifier(v TypedVisitor[T]) (T, error)

	// DecodeIgnoredAny decodes and discards whatever shape the input
	// holds next.
	DecodeIgnoredAny(v TypedVisitor[T]) (T, error)
}

// TypedVisitor constructs a value of type T from whatever shape the
// decoder found. It is the format-native counterpart of [Visitor]: same
// methods, but each returns the constructed T instead of storing it
// through a slot.
//
// Implementations embed [TypedVisitorBase] to reject shapes they do not
// handle.
type TypedVisitor[T any] interface {
	// Expecting describes what the visitor expects to receive.
	Expecting() string

	// Bool accepts a bool.
	Bool(v bool) (T, error)

	// Int64 accepts a signed integer.
	Int64(v int64) (T, error)

	// Uint64 accepts an unsigned integer.
	Uint64(v uint64) (T, error)

	// Float64 accepts a floating-point number.
	Float64(v float64) (T, error)

	// Rune accepts a single Unicode code point.
	Rune(v rune) (T, error)

	// String accepts a string, which may alias the backend's buffer.
	String(v string) (T, error)

	// Bytes accepts a byte sequence, which may alias the backend's buffer.
	Bytes(v []byte) (T, error)

	// None accepts the absent arm of an optional value.
	None() (T, error)

	// Some accepts the present arm of an optional value.
	Some(d Deserializer) (T, error)

	// Unit accepts the unit value.
	Unit() (T, error)

	// NewtypeStruct accepts a single-field wrapper struct.
	NewtypeStruct(d Deserializer) (T, error)

	// Seq accepts a sequence.
	Seq(a SeqAccess) (T, error)

	// Map accepts a map.
	Map(a MapAccess) (T, error)

	// Enum accepts an enum.
	Enum(a EnumAccess) (T, error)
}

// TypedVisitorBase provides default implementations for every
// [TypedVisitor] method that reject the shape with [KindInvalidValue].
// Embed it and override the shapes the visitor accepts. The zero value is
// ready for use.
type TypedVisitorBase[T any] struct{}

// Expecting describes the visitor's expectation; embedders should override.
func (TypedVisitorBase[T]) Expecting() string { return "a value" }

func (TypedVisitorBase[T]) unexpected(got string) (T, error) {
	var zero T
	return zero, Errorf(KindInvalidValue, "invalid type: unexpected %s", got)
}

// Bool rejects booleans.
func (b TypedVisitorBase[T]) Bool(bool) (T, error) { return b.unexpected("boolean") }

// Int64 rejects signed integers.
func (b TypedVisitorBase[T]) Int64(int64) (T, error) { return b.unexpected("integer") }

// Uint64 rejects unsigned integers.
func (b TypedVisitorBase[T]) Uint64(uint64) (T, error) { return b.unexpected("unsigned integer") }

// Float64 rejects floating-point numbers.
func (b TypedVisitorBase[T]) Float64(float64) (T, error) {
	return b.unexpected("floating-point number")
}

// Rune rejects code points.
func (b TypedVisitorBase[T]) Rune(rune) (T, error) { return b.unexpected("character") }

// String rejects strings.
func (b TypedVisitorBase[T]) String(string) (T, error) { return b.unexpected("string") }

// Bytes rejects byte sequences.
func (b TypedVisitorBase[T]) Bytes([]byte) (T, error) { return b.unexpected("byte sequence") }

// None rejects absent optionals.
func (b TypedVisitorBase[T]) None() (T, error) { return b.unexpected("none") }

// Some rejects present optionals.
func (b TypedVisitorBase[T]) Some(Deserializer) (T, error) { return b.unexpected("optional") }

// Unit rejects the unit value.
func (b TypedVisitorBase[T]) Unit() (T, error) { return b.unexpected("unit") }

// NewtypeStruct rejects newtype structs.
func (b TypedVisitorBase[T]) NewtypeStruct(Deserializer) (T, error) {
	return b.unexpected("newtype struct")
}

// Seq rejects sequences.
func (b TypedVisitorBase[T]) Seq(SeqAccess) (T, error) { return b.unexpected("sequence") }

// Map rejects maps.
func (b TypedVisitorBase[T]) Map(MapAccess) (T, error) { return b.unexpected("map") }

// Enum rejects enums.
func (b TypedVisitorBase[T]) Enum(EnumAccess) (T, error) { return b.unexpected("enum") }
