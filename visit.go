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

// Visit adapts a typed visitor into an erased one that writes its result
// into out. This is the in-place construction slot at the center of the
// decode-side erasure: the value built by tv lands directly in the
// destination the caller owns, so no intermediate box exists and no
// downcast is ever needed to recover it. out is written only when the
// visited shape was accepted.
func Visit[T any](tv TypedVisitor[T], out *T) Visitor {
	return &slotVisitor[T]{tv: tv, out: out}
}

type slotVisitor[T any] struct {
	tv  TypedVisitor[T]
	out *T
}

func (s *slotVisitor[T]) Expecting() string { return s.tv.Expecting() }

func (s *slotVisitor[T]) accept(t T, err error) error {
	if err != nil {
		return WrapError(err)
	}
	*s.out = t
	return nil
}

func (s *slotVisitor[T]) VisitBool(v bool) error       { return s.accept(s.tv.Bool(v)) }
func (s *slotVisitor[T]) VisitInt64(v int64) error     { return s.accept(s.tv.Int64(v)) }
func (s *slotVisitor[T]) VisitUint64(v uint64) error   { return s.accept(s.tv.Uint64(v)) }
func (s *slotVisitor[T]) VisitFloat64(v float64) error { return s.accept(s.tv.Float64(v)) }
func (s *slotVisitor[T]) VisitRune(v rune) error       { return s.accept(s.tv.Rune(v)) }
func (s *slotVisitor[T]) VisitString(v string) error   { return s.accept(s.tv.String(v)) }
func (s *slotVisitor[T]) VisitBytes(v []byte) error    { return s.accept(s.tv.Bytes(v)) }
func (s *slotVisitor[T]) VisitNone() error             { return s.accept(s.tv.None()) }
func (s *slotVisitor[T]) VisitUnit() error             { return s.accept(s.tv.Unit()) }

func (s *slotVisitor[T]) VisitSome(d Deserializer) error {
	return s.accept(s.tv.Some(d))
}

func (s *slotVisitor[T]) VisitNewtypeStruct(d Deserializer) error {
	return s.accept(s.tv.NewtypeStruct(d))
}

func (s *slotVisitor[T]) VisitSeq(a SeqAccess) error   { return s.accept(s.tv.Seq(a)) }
func (s *slotVisitor[T]) VisitMap(a MapAccess) error   { return s.accept(s.tv.Map(a)) }
func (s *slotVisitor[T]) VisitEnum(a EnumAccess) error { return s.accept(s.tv.Enum(a)) }

// Discard adapts an erased visitor into a typed visitor whose result type
// is [Unit]. It is the inverse of [Visit], used when format-native code
// must drive an erased destination: the erased visitor stores the real
// result through its own slot and the Unit result is thrown away.
// Backends use it to route compound-element recursion back through the
// erased protocol.
func Discard(v Visitor) TypedVisitor[Unit] {
	return discardVisitor[Unit]{v: v}
}

type discardVisitor[T any] struct {
	v Visitor
}

func (d discardVisitor[T]) Expecting() string { return d.v.Expecting() }

func (d discardVisitor[T]) done(err error) (T, error) {
	var zero T
	return zero, err
}

func (d discardVisitor[T]) Bool(v bool) (T, error)       { return d.done(d.v.VisitBool(v)) }
func (d discardVisitor[T]) Int64(v int64) (T, error)     { return d.done(d.v.VisitInt64(v)) }
func (d discardVisitor[T]) Uint64(v uint64) (T, error)   { return d.done(d.v.VisitUint64(v)) }
func (d discardVisitor[T]) Float64(v float64) (T, error) { return d.done(d.v.VisitFloat64(v)) }
func (d discardVisitor[T]) Rune(v rune) (T, error)       { return d.done(d.v.VisitRune(v)) }
func (d discardVisitor[T]) String(v string) (T, error)   { return d.done(d.v.VisitString(v)) }
func (d discardVisitor[T]) Bytes(v []byte) (T, error)    { return d.done(d.v.VisitBytes(v)) }
func (d discardVisitor[T]) None() (T, error)             { return d.done(d.v.VisitNone()) }
func (d discardVisitor[T]) Unit() (T, error)             { return d.done(d.v.VisitUnit()) }

func (d discardVisitor[T]) Some(dec Deserializer) (T, error) {
	return d.done(d.v.VisitSome(dec))
}

func (d discardVisitor[T]) NewtypeStruct(dec Deserializer) (T, error) {
	return d.done(d.v.VisitNewtypeStruct(dec))
}

func (d discardVisitor[T]) Seq(a SeqAccess) (T, error)   { return d.done(d.v.VisitSeq(a)) }
func (d discardVisitor[T]) Map(a MapAccess) (T, error)   { return d.done(d.v.VisitMap(a)) }
func (d discardVisitor[T]) Enum(a EnumAccess) (T, error) { return d.done(d.v.VisitEnum(a)) }

// NewDeserializer wraps a format-native decoder as an erased
// [Deserializer]. The wrapper borrows dec for the duration of decoding
// one value, forwards every operation through [Discard]-style bridging,
// and converts failures with [WrapError].
func NewDeserializer[T any](dec Decoder[T]) Deserializer {
	return &erasedDeserializer[T]{dec: dec}
}

type erasedDeserializer[T any] struct {
	dec Decoder[T]
}

func (d *erasedDeserializer[T]) drive(v Visitor, f func(TypedVisitor[T]) (T, error)) error {
	_, err := f(discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) Any(v Visitor) error {
	return d.drive(v, d.dec.DecodeAny)
}

func (d *erasedDeserializer[T]) Bool(v Visitor) error {
	return d.drive(v, d.dec.DecodeBool)
}

func (d *erasedDeserializer[T]) Int8(v Visitor) error {
	return d.drive(v, d.dec.DecodeInt8)
}

func (d *erasedDeserializer[T]) Int16(v Visitor) error {
	return d.drive(v, d.dec.DecodeInt16)
}

func (d *erasedDeserializer[T]) Int32(v Visitor) error {
	return d.drive(v, d.dec.DecodeInt32)
}

func (d *erasedDeserializer[T]) Int64(v Visitor) error {
	return d.drive(v, d.dec.DecodeInt64)
}

func (d *erasedDeserializer[T]) Uint8(v Visitor) error {
	return d.drive(v, d.dec.DecodeUint8)
}

func (d *erasedDeserializer[T]) Uint16(v Visitor) error {
	return d.drive(v, d.dec.DecodeUint16)
}

func (d *erasedDeserializer[T]) Uint32(v Visitor) error {
	return d.drive(v, d.dec.DecodeUint32)
}

func (d *erasedDeserializer[T]) Uint64(v Visitor) error {
	return d.drive(v, d.dec.DecodeUint64)
}

func (d *erasedDeserializer[T]) Float32(v Visitor) error {
	return d.drive(v, d.dec.DecodeFloat32)
}

func (d *erasedDeserializer[T]) Float64(v Visitor) error {
	return d.drive(v, d.dec.DecodeFloat64)
}

func (d *erasedDeserializer[T]) Rune(v Visitor) error {
	return d.drive(v, d.dec.DecodeRune)
}

func (d *erasedDeserializer[T]) String(v Visitor) error {
	return d.drive(v, d.dec.DecodeString)
}

func (d *erasedDeserializer[T]) Bytes(v Visitor) error {
	return d.drive(v, d.dec.DecodeBytes)
}

func (d *erasedDeserializer[T]) Option(v Visitor) error {
	return d.drive(v, d.dec.DecodeOption)
}

func (d *erasedDeserializer[T]) Unit(v Visitor) error {
	return d.drive(v, d.dec.DecodeUnit)
}

func (d *erasedDeserializer[T]) UnitStruct(name string, v Visitor) error {
	_, err := d.dec.DecodeUnitStruct(name, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) NewtypeStruct(name string, v Visitor) error {
	_, err := d.dec.DecodeNewtypeStruct(name, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) Seq(v Visitor) error {
	return d.drive(v, d.dec.DecodeSeq)
}

func (d *erasedDeserializer[T]) Tuple(n int, v Visitor) error {
	_, err := d.dec.DecodeTuple(n, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) TupleStruct(name string, n int, v Visitor) error {
	_, err := d.dec.DecodeTupleStruct(name, n, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) Map(v Visitor) error {
	return d.drive(v, d.dec.DecodeMap)
}

func (d *erasedDeserializer[T]) Struct(name string, fields []string, v Visitor) error {
	_, err := d.dec.DecodeStruct(name, fields, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) Enum(name string, variants []string, v Visitor) error {
	_, err := d.dec.DecodeEnum(name, variants, discardVisitor[T]{v: v})
	return wrapErr(err)
}

func (d *erasedDeserializer[T]) Identifier(v Visitor) error {
	return d.drive(v, d.dec.DecodeIdentifier)
}

func (d *erasedDeserializer[T]) IgnoredAny(v Visitor) error {
	return d.drive(v, d.dec.DecodeIgnoredAny)
}

// AsDecoder adapts an erased [Deserializer] back into the format-native
// [Decoder] interface for target type T. Together with [NewDeserializer]
// it forms the decode-side adapter pair. Each operation threads the typed
// visitor through a [Visit] slot, so the constructed value is returned
// without ever existing as an erased intermediate.
func AsDecoder[T any](d Deserializer) Decoder[T] {
	return typedDecoder[T]{d: d}
}

type typedDecoder[T any] struct {
	d Deserializer
}

func (t typedDecoder[T]) drive(tv TypedVisitor[T], f func(Visitor) error) (T, error) {
	var out T
	err := f(Visit(tv, &out))
	return out, wrapErr(err)
}

func (t typedDecoder[T]) DecodeAny(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Any)
}

func (t typedDecoder[T]) DecodeBool(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Bool)
}

func (t typedDecoder[T]) DecodeInt8(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Int8)
}

func (t typedDecoder[T]) DecodeInt16(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Int16)
}

func (t typedDecoder[T]) DecodeInt32(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Int32)
}

func (t typedDecoder[T]) DecodeInt64(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Int64)
}

func (t typedDecoder[T]) DecodeUint8(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Uint8)
}

func (t typedDecoder[T]) DecodeUint16(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Uint16)
}

func (t typedDecoder[T]) DecodeUint32(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Uint32)
}

func (t typedDecoder[T]) DecodeUint64(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Uint64)
}

func (t typedDecoder[T]) DecodeFloat32(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Float32)
}

func (t typedDecoder[T]) DecodeFloat64(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Float64)
}

func (t typedDecoder[T]) DecodeRune(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Rune)
}

func (t typedDecoder[T]) DecodeString(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.String)
}

func (t typedDecoder[T]) DecodeBytes(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Bytes)
}

func (t typedDecoder[T]) DecodeOption(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Option)
}

func (t typedDecoder[T]) DecodeUnit(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Unit)
}

func (t typedDecoder[T]) DecodeUnitStruct(name string, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.UnitStruct(name, v) })
}

func (t typedDecoder[T]) DecodeNewtypeStruct(name string, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.NewtypeStruct(name, v) })
}

func (t typedDecoder[T]) DecodeSeq(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Seq)
}

func (t typedDecoder[T]) DecodeTuple(n int, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.Tuple(n, v) })
}

func (t typedDecoder[T]) DecodeTupleStruct(name string, n int, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.TupleStruct(name, n, v) })
}

func (t typedDecoder[T]) DecodeMap(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Map)
}

func (t typedDecoder[T]) DecodeStruct(name string, fields []string, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.Struct(name, fields, v) })
}

func (t typedDecoder[T]) DecodeEnum(name string, variants []string, tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, func(v Visitor) error { return t.d.Enum(name, variants, v) })
}

func (t typedDecoder[T]) DecodeIdentifier(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.Identifier)
}

func (t typedDecoder[T]) DecodeIgnoredAny(tv TypedVisitor[T]) (T, error) {
	return t.drive(tv, t.d.IgnoredAny)
}

// Deserialize decodes one self-described value from d using the typed
// visitor tv. It is shorthand for AsDecoder[T](d).DecodeAny(tv).
func Deserialize[T any](d Deserializer, tv TypedVisitor[T]) (T, error) {
	return AsDecoder[T](d).DecodeAny(tv)
}

// NextElement decodes the next sequence element through a typed visitor.
// It returns false when the sequence is exhausted.
func NextElement[T any](a SeqAccess, tv TypedVisitor[T]) (T, bool, error) {
	var out T
	ok, err := a.NextElement(Visit(tv, &out))
	return out, ok, wrapErr(err)
}

// NextKey decodes the next map key through a typed visitor. It returns
// false when the map is exhausted.
func NextKey[T any](a MapAccess, tv TypedVisitor[T]) (T, bool, error) {
	var out T
	ok, err := a.NextKey(Visit(tv, &out))
	return out, ok, wrapErr(err)
}

// NextValue decodes the value of the preceding key through a typed
// visitor.
func NextValue[T any](a MapAccess, tv TypedVisitor[T]) (T, error) {
	var out T
	err := a.NextValue(Visit(tv, &out))
	return out, wrapErr(err)
}
