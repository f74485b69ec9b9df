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

// Unit is the erased success type. Adapting a Serializer back into the
// generic [Encoder] interface fixes the output type to Unit; the concrete
// backend's output value is not recoverable through the erased interface.
// Callers that need it keep their reference to the concrete encoder,
// which retains its own result (for example [rivaas.dev/serde/yaml]'s
// encoder exposes the built node tree).
type Unit struct{}

// Encoder is the format-native encoding interface implemented by concrete
// backends. O is the backend's output type: what a completed encode
// operation produces (a node for tree builders, Unit for stream writers).
//
// Each primitive method encodes one value and returns the output; each
// compound method begins a multi-step encode and returns a continuation
// scoped to that compound. Method semantics, hints, and the data model
// match [Serializer] operation for operation.
type Encoder[O any] interface {
	// EncodeBool encodes a bool.
	EncodeBool(v bool) (O, error)

	// EncodeInt8 encodes an int8.
	EncodeInt8(v int8) (O, error)

	// EncodeInt16 encodes an int16.
	EncodeInt16(v int16) (O, error)

	// EncodeInt32 encodes an int32.
	EncodeInt32(v int32) (O, error)

	// EncodeInt64 encodes an int64.
	EncodeInt64(v int64) (O, error)

	// EncodeUint8 encodes a uint8.
	EncodeUint8(v uint8) (O, error)

	// EncodeUint16 encodes a uint16.
	EncodeUint16(v uint16) (O, error)

	// EncodeUint32 encodes a uint32.
	EncodeUint32(v uint32) (O, error)

	// EncodeUint64 encodes a uint64.
	EncodeUint64(v uint64) (O, error)

	// EncodeFloat32 encodes a float32.
	EncodeFloat32(v float32) (O, error)

	// EncodeFloat64 encodes a float64.
	EncodeFloat64(v float64) (O, error)

	// EncodeRune encodes a single Unicode code point.
	EncodeRune(v rune) (O, error)

	// EncodeString encodes a string.
	EncodeString(v string) (O, error)

	// EncodeBytes encodes an opaque byte sequence.
	EncodeBytes(v []byte) (O, error)

	// EncodeNone encodes the absent arm of an optional value.
	EncodeNone() (O, error)

	// EncodeSome encodes the present arm of an optional value.
	EncodeSome(v Value) (O, error)

	// EncodeUnit encodes the unit value.
	EncodeUnit() (O, error)

	// EncodeUnitStruct encodes a named struct with no fields.
	EncodeUnitStruct(name string) (O, error)

	// EncodeUnitVariant encodes a dataless enum variant.
	EncodeUnitVariant(name string, index uint32, variant string) (O, error)

	// EncodeNewtypeStruct encodes a named single-field wrapper struct.
	EncodeNewtypeStruct(name string, v Value) (O, error)

	// EncodeNewtypeVariant encodes an enum variant holding one value.
	EncodeNewtypeVariant(name string, index uint32, variant string, v Value) (O, error)

	// EncodeSeq begins encoding a variable-length sequence.
	EncodeSeq(hint int) (SeqEncoder[O], error)

	// EncodeTuple begins encoding a fixed-length heterogeneous sequence.
	EncodeTuple(n int) (SeqEncoder[O], error)

	// EncodeTupleStruct begins encoding a named tuple struct with n fields.
	EncodeTupleStruct(name string, n int) (SeqEncoder[O], error)

	// EncodeTupleVariant begins encoding an enum variant holding n
	// positional values.
	EncodeTupleVariant(name string, index uint32, variant string, n int) (VariantEncoder[O], error)

	// EncodeMap begins encoding a map.
	EncodeMap(hint int) (MapEncoder[O], error)

	// EncodeStruct begins encoding a named struct with n fields.
	EncodeStruct(name string, n int) (StructEncoder[O], error)

	// EncodeStructVariant begins encoding an enum variant holding named
	// fields.
	EncodeStructVariant(name string, index uint32, variant string, n int) (VariantEncoder[O], error)
}

// SeqEncoder is a format-native sequence in progress. Finish must be the
// last call and yields the compound's output.
type SeqEncoder[O any] interface {
	// EncodeElement encodes the next element.
	EncodeElement(v Value) error

	// Finish completes the sequence.
	Finish() (O, error)
}

// MapEncoder is a format-native map in progress. Every EncodeKey call
// must be followed by exactly one EncodeValue call. Finish must be the
// last call.
type MapEncoder[O any] interface {
	// EncodeKey encodes the next entry's key.
	EncodeKey(k Value) error

	// EncodeValue encodes the value of the preceding key.
	EncodeValue(v Value) error

	// Finish completes the map.
	Finish() (O, error)
}

// StructEncoder is a format-native struct in progress. Finish must be the
// last call.
type StructEncoder[O any] interface {
	// EncodeField encodes one named field.
	EncodeField(name string, v Value) error

	// Finish completes the struct.
	Finish() (O, error)
}

// VariantEncoder is a format-native enum variant in progress: tuple
// variants use EncodeElement, struct variants use EncodeField. Finish
// must be the last call.
type VariantEncoder[O any] interface {
	// EncodeElement encodes the next positional value of a tuple variant.
	EncodeElement(v Value) error

	// EncodeField encodes one named field of a struct variant.
	EncodeField(name string, v Value) error

	// Finish completes the variant.
	Finish() (O, error)
}
