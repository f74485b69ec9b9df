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

// Serializer is the erased encoding interface: the dynamic-dispatch
// counterpart of [Encoder]. Every operation of the native protocol is
// re-expressed here with only erased parameter and result types; the
// backend's output value is produced inside the concrete encoder and is
// not observable through this interface.
//
// A Serializer is a non-owning handle to a concrete backend encoder,
// valid for one encode traversal. It is not safe for concurrent use.
//
// Compound methods take a length hint: the number of elements or entries
// when known up front, or a negative value for streaming sources of
// unknown length. Formats that require a length up front reject unknown
// hints with [KindInvalidLength].
type Serializer interface {
	// Bool encodes a bool.
	Bool(v bool) error

	// Int8 encodes an int8.
	Int8(v int8) error

	// Int16 encodes an int16.
	Int16(v int16) error

	// Int32 encodes an int32.
	Int32(v int32) error

	// Int64 encodes an int64.
	Int64(v int64) error

	// Uint8 encodes a uint8.
	Uint8(v uint8) error

	// Uint16 encodes a uint16.
	Uint16(v uint16) error

	// Uint32 encodes a uint32.
	Uint32(v uint32) error

	// Uint64 encodes a uint64.
	Uint64(v uint64) error

	// Float32 encodes a float32.
	Float32(v float32) error

	// Float64 encodes a float64.
	Float64(v float64) error

	// Rune encodes a single Unicode code point.
	Rune(v rune) error

	// String encodes a string.
	String(v string) error

	// Bytes encodes an opaque byte sequence.
	Bytes(v []byte) error

	// None encodes the absent arm of an optional value.
	None() error

	// Some encodes the present arm of an optional value.
	Some(v Value) error

	// Unit encodes the unit value.
	Unit() error

	// UnitStruct encodes a named struct with no fields.
	UnitStruct(name string) error

	// UnitVariant encodes a dataless enum variant. name is the enum name,
	// index the position of the variant within it, variant its name.
	UnitVariant(name string, index uint32, variant string) error

	// NewtypeStruct encodes a named single-field wrapper struct.
	NewtypeStruct(name string, v Value) error

	// NewtypeVariant encodes an enum variant holding one value.
	NewtypeVariant(name string, index uint32, variant string, v Value) error

	// Seq begins encoding a variable-length sequence.
	Seq(hint int) (SeqSerializer, error)

	// Tuple begins encoding a fixed-length heterogeneous sequence.
	Tuple(n int) (SeqSerializer, error)

	// TupleStruct begins encoding a named tuple struct with n fields.
	TupleStruct(name string, n int) (SeqSerializer, error)

	// TupleVariant begins encoding an enum variant holding n positional
	// values.
	TupleVariant(name string, index uint32, variant string, n int) (VariantSerializer, error)

	// Map begins encoding a map.
	Map(hint int) (MapSerializer, error)

	// Struct begins encoding a named struct with n fields.
	Struct(name string, n int) (StructSerializer, error)

	// StructVariant begins encoding an enum variant holding named fields.
	StructVariant(name string, index uint32, variant string, n int) (VariantSerializer, error)
}

// SeqSerializer is an erased sequence in progress, returned by
// [Serializer.Seq], [Serializer.Tuple], and [Serializer.TupleStruct].
//
// End must be the last call; using the serializer after End returns, or
// after any call failed, is invalid.
type SeqSerializer interface {
	// Element encodes the next element.
	Element(v Value) error

	// End finishes the sequence.
	End() error
}

// MapSerializer is an erased map in progress, returned by
// [Serializer.Map]. Keys and values may be encoded separately or as one
// entry; every Key call must be followed by exactly one Value call.
//
// End must be the last call.
type MapSerializer interface {
	// Key encodes the next entry's key.
	Key(k Value) error

	// Value encodes the value of the preceding key.
	Value(v Value) error

	// Entry encodes one key/value pair.
	Entry(k, v Value) error

	// End finishes the map.
	End() error
}

// StructSerializer is an erased struct in progress, returned by
// [Serializer.Struct].
//
// End must be the last call.
type StructSerializer interface {
	// Field encodes one named field.
	Field(name string, v Value) error

	// End finishes the struct.
	End() error
}

// VariantSerializer is an erased enum variant in progress, returned by
// [Serializer.TupleVariant] and [Serializer.StructVariant]. Tuple
// variants use Element, struct variants use Field; mixing the two within
// one variant is invalid.
//
// End must be the last call.
type VariantSerializer interface {
	// Element encodes the next positional value of a tuple variant.
	Element(v Value) error

	// Field encodes one named field of a struct variant.
	Field(name string, v Value) error

	// End finishes the variant.
	End() error
}
