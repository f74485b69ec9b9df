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

// Deserializer is the erased decoding interface: the dynamic-dispatch
// counterpart of [Decoder]. Each method threads a [Visitor] that is
// invoked exactly once, synchronously, with the decoded primitive or with
// an access object for compound shapes. The decoded value never travels
// back through the return channel; the visitor constructs it in place.
//
// Any is for self-describing formats and dispatches on the shape actually
// present in the input. The remaining methods are hints for formats that
// need to be told what to parse; self-describing formats are free to
// treat most of them as Any with a type check.
//
// A Deserializer is a non-owning handle to a concrete backend decoder,
// valid for decoding one value and its subtree. It is not safe for
// concurrent use.
type Deserializer interface {
	// Any decodes whatever shape the input holds next.
	Any(v Visitor) error

	// Bool decodes a bool.
	Bool(v Visitor) error

	// Int8 decodes an int8; the visitor receives it widened to int64.
	Int8(v Visitor) error

	// Int16 decodes an int16; the visitor receives it widened to int64.
	Int16(v Visitor) error

	// Int32 decodes an int32; the visitor receives it widened to int64.
	Int32(v Visitor) error

	// Int64 decodes an int64.
	Int64(v Visitor) error

	// Uint8 decodes a uint8; the visitor receives it widened to uint64.
	Uint8(v Visitor) error

	// Uint16 decodes a uint16; the visitor receives it widened to uint64.
	Uint16(v Visitor) error

	// Uint32 decodes a uint32; the visitor receives it widened to uint64.
	Uint32(v Visitor) error

	// Uint64 decodes a uint64.
	Uint64(v Visitor) error

	// Float32 decodes a float32; the visitor receives it as float64.
	Float32(v Visitor) error

	// Float64 decodes a float64.
	Float64(v Visitor) error

	// Rune decodes a single Unicode code point.
	Rune(v Visitor) error

	// String decodes a string.
	String(v Visitor) error

	// Bytes decodes an opaque byte sequence.
	Bytes(v Visitor) error

	// Option decodes an optional value, calling VisitNone or VisitSome.
	Option(v Visitor) error

	// Unit decodes the unit value.
	Unit(v Visitor) error

	// UnitStruct decodes a named struct with no fields.
	UnitStruct(name string, v Visitor) error

	// NewtypeStruct decodes a named single-field wrapper struct.
	NewtypeStruct(name string, v Visitor) error

	// Seq decodes a sequence, calling VisitSeq.
	Seq(v Visitor) error

	// Tuple decodes a fixed-length sequence of n elements.
	Tuple(n int, v Visitor) error

	// TupleStruct decodes a named tuple struct with n fields.
	TupleStruct(name string, n int, v Visitor) error

	// Map decodes a map, calling VisitMap.
	Map(v Visitor) error

	// Struct decodes a named struct with the given field names, calling
	// VisitMap (or VisitSeq for formats that store structs positionally).
	Struct(name string, fields []string, v Visitor) error

	// Enum decodes an enum with the given variant names, calling VisitEnum.
	Enum(name string, variants []string, v Visitor) error

	// Identifier decodes a field or variant identifier.
	Identifier(v Visitor) error

	// IgnoredAny decodes and discards whatever shape the input holds next.
	IgnoredAny(v Visitor) error
}

// Visitor is the erased destination of a decode: the dynamic-dispatch
// counterpart of [TypedVisitor]. Exactly one Visit method is invoked per
// decode call, chosen by the backend according to the data present. The
// visitor stores its result in place, typically into a destination owned
// by the generic call site that produced it (see [Visit]); no value is
// returned through the erasure boundary.
//
// Decoders widen fixed-width numbers losslessly before visiting: all
// signed integers arrive through VisitInt64, unsigned through
// VisitUint64, and floats through VisitFloat64.
//
// Implementations embed [VisitorBase] to reject shapes they do not handle.
type Visitor interface {
	// Expecting describes what the visitor expects to receive, for error
	// messages ("a boolean", "a map of string to int").
	Expecting() string

	// VisitBool accepts a bool.
	VisitBool(v bool) error

	// VisitInt64 accepts a signed integer.
	VisitInt64(v int64) error

	// VisitUint64 accepts an unsigned integer.
	VisitUint64(v uint64) error

	// VisitFloat64 accepts a floating-point number.
	VisitFloat64(v float64) error

	// VisitRune accepts a single Unicode code point.
	VisitRune(v rune) error

	// VisitString accepts a string. The string must be copied if retained
	// beyond the call; it may alias the backend's buffer.
	VisitString(v string) error

	// VisitBytes accepts a byte sequence, with the same aliasing rule as
	// VisitString.
	VisitBytes(v []byte) error

	// VisitNone accepts the absent arm of an optional value.
	VisitNone() error

	// VisitSome accepts the present arm of an optional value; the inner
	// value is decoded from d.
	VisitSome(d Deserializer) error

	// VisitUnit accepts the unit value.
	VisitUnit() error

	// VisitNewtypeStruct accepts a single-field wrapper struct; the inner
	// value is decoded from d.
	VisitNewtypeStruct(d Deserializer) error

	// VisitSeq accepts a sequence, driven through a.
	VisitSeq(a SeqAccess) error

	// VisitMap accepts a map, driven through a.
	VisitMap(a MapAccess) error

	// VisitEnum accepts an enum, driven through a.
	VisitEnum(a EnumAccess) error
}

// SeqAccess is an erased sequence being decoded. The visitor calls
// NextElement until it reports exhaustion; each element is decoded into
// the nested visitor before NextElement returns.
//
// Calling NextElement after it returned false, or after any error, is
// invalid.
type SeqAccess interface {
	// NextElement decodes the next element into v. It returns false when
	// the sequence is exhausted, in which case v was not invoked.
	NextElement(v Visitor) (bool, error)

	// SizeHint returns the number of remaining elements when the format
	// knows it, or a negative value.
	SizeHint() int
}

// MapAccess is an erased map being decoded. The visitor alternates
// NextKey and NextValue until NextKey reports exhaustion.
//
// Calling NextValue without a preceding NextKey, or any call after
// exhaustion or an error, is invalid.
type MapAccess interface {
	// NextKey decodes the next entry's key into v. It returns false when
	// the map is exhausted, in which case v was not invoked.
	NextKey(v Visitor) (bool, error)

	// NextValue decodes the value of the preceding key into v.
	NextValue(v Visitor) error

	// SizeHint returns the number of remaining entries when the format
	// knows it, or a negative value.
	SizeHint() int
}

// EnumAccess is an erased enum being decoded.
type EnumAccess interface {
	// Variant decodes the variant identifier into v (VisitString or
	// VisitUint64, format depending) and returns the access object for
	// the variant's data.
	Variant(v Visitor) (VariantAccess, error)
}

// VariantAccess decodes the data carried by one enum variant. Exactly one
// method is called, matching the variant's shape.
type VariantAccess interface {
	// UnitVariant confirms a dataless variant.
	UnitVariant() error

	// NewtypeVariant decodes a single carried value into v.
	NewtypeVariant(v Visitor) error

	// TupleVariant decodes n positional values, calling v's VisitSeq.
	TupleVariant(n int, v Visitor) error

	// StructVariant decodes named fields, calling v's VisitMap.
	StructVariant(fields []string, v Visitor) error
}

// VisitorBase provides default implementations for every [Visitor] method
// that reject the shape with [KindInvalidValue]. Embed it and override
// the shapes the visitor accepts:
//
//	type boolVisitor struct {
//	    serde.VisitorBase
//	    out *bool
//	}
//
//	func (boolVisitor) Expecting() string { return "a boolean" }
//
//	func (v boolVisitor) VisitBool(b bool) error {
//	    *v.out = b
//	    return nil
//	}
//
// The zero value is ready for use.
type VisitorBase struct{}

// Expecting describes the visitor's expectation; embedders should override.
func (VisitorBase) Expecting() string { return "a value" }

func (VisitorBase) unexpected(got string) error {
	return Errorf(KindInvalidValue, "invalid type: unexpected %s", got)
}

// VisitBool rejects booleans.
func (b VisitorBase) VisitBool(bool) error { return b.unexpected("boolean") }

// VisitInt64 rejects signed integers.
func (b VisitorBase) VisitInt64(int64) error { return b.unexpected("integer") }

// VisitUint64 rejects unsigned integers.
func (b VisitorBase) VisitUint64(uint64) error { return b.unexpected("unsigned integer") }

// VisitFloat64 rejects floating-point numbers.
func (b VisitorBase) VisitFloat64(float64) error { return b.unexpected("floating-point number") }

// VisitRune rejects code points.
func (b VisitorBase) VisitRune(rune) error { return b.unexpected("character") }

// VisitString rejects strings.
func (b VisitorBase) VisitString(string) error { return b.unexpected("string") }

// VisitBytes rejects byte sequences.
func (b VisitorBase) VisitBytes([]byte) error { return b.unexpected("byte sequence") }

// VisitNone rejects absent optionals.
func (b VisitorBase) VisitNone() error { return b.unexpected("none") }

// VisitSome rejects present optionals.
func (b VisitorBase) VisitSome(Deserializer) error { return b.unexpected("optional") }

// VisitUnit rejects the unit value.
func (b VisitorBase) VisitUnit() error { return b.unexpected("unit") }

// VisitNewtypeStruct rejects newtype structs.
func (b VisitorBase) VisitNewtypeStruct(Deserializer) error { return b.unexpected("newtype struct") }

// VisitSeq rejects sequences.
func (b VisitorBase) VisitSeq(SeqAccess) error { return b.unexpected("sequence") }

// VisitMap rejects maps.
func (b VisitorBase) VisitMap(MapAccess) error { return b.unexpected("map") }

// VisitEnum rejects enums.
func (b VisitorBase) VisitEnum(EnumAccess) error { return b.unexpected("enum") }
