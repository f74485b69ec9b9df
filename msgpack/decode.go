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

package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"rivaas.dev/serde"
)

// Decoder reads one MessagePack value from a byte slice. It implements
// serde.Decoder for target type T over a shared streaming decoder;
// nested elements re-type through the erased access objects.
//
// A Decoder decodes exactly one top-level value and is not safe for
// concurrent use.
type Decoder[T any] struct {
	dec *msgpack.Decoder
}

var _ serde.Decoder[serde.Unit] = (*Decoder[serde.Unit])(nil)

// NewDecoder returns a decoder reading from data.
func NewDecoder[T any](data []byte) *Decoder[T] {
	return &Decoder[T]{dec: msgpack.NewDecoder(bytes.NewReader(data))}
}

// view re-types the shared decoder state for a nested erased decode.
func view(dec *msgpack.Decoder) serde.Deserializer {
	return serde.NewDeserializer[serde.Unit](&Decoder[serde.Unit]{dec: dec})
}

// decodeValue reads the next value and dispatches it to tv by the code
// byte MessagePack tags every value with.
func decodeValue[T any](dec *msgpack.Decoder, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	c, err := dec.PeekCode()
	if err != nil {
		return zero, serde.WrapError(err)
	}

	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.None()

	case c == msgpcode.True, c == msgpcode.False:
		v, err := dec.DecodeBool()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Bool(v)

	case msgpcode.IsFixedNum(c),
		c == msgpcode.Int8, c == msgpcode.Int16, c == msgpcode.Int32, c == msgpcode.Int64:
		v, err := dec.DecodeInt64()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Int64(v)

	case c == msgpcode.Uint8, c == msgpcode.Uint16, c == msgpcode.Uint32, c == msgpcode.Uint64:
		v, err := dec.DecodeUint64()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Uint64(v)

	case c == msgpcode.Float, c == msgpcode.Double:
		v, err := dec.DecodeFloat64()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Float64(v)

	case msgpcode.IsString(c):
		v, err := dec.DecodeString()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.String(v)

	case msgpcode.IsBin(c):
		v, err := dec.DecodeBytes()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Bytes(v)

	case msgpcode.IsFixedArray(c), c == msgpcode.Array16, c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		a := &seqAccess{dec: dec, n: n}
		out, err := tv.Seq(a)
		if err != nil {
			return zero, err
		}
		return out, a.drain()

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		a := &mapAccess{dec: dec, n: n}
		out, err := tv.Map(a)
		if err != nil {
			return zero, err
		}
		return out, a.drain()

	default:
		return zero, serde.Errorf(serde.KindOther, "unsupported MessagePack code 0x%02x", c)
	}
}

func decodeValueErased(dec *msgpack.Decoder, v serde.Visitor) error {
	_, err := decodeValue(dec, serde.Discard(v))
	return err
}

// DecodeAny implements serde.Decoder.
func (d *Decoder[T]) DecodeAny(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeBool implements serde.Decoder. MessagePack is self-describing,
// so this and the other scalar hints defer the type check to the
// visitor.
func (d *Decoder[T]) DecodeBool(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeInt8 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeInt16 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeInt32 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeInt64 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeUint8 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeUint16 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeUint32 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeUint64 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeFloat32 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeFloat64 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeRune implements serde.Decoder.
func (d *Decoder[T]) DecodeRune(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeString implements serde.Decoder.
func (d *Decoder[T]) DecodeString(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeBytes implements serde.Decoder.
func (d *Decoder[T]) DecodeBytes(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeOption implements serde.Decoder. PeekCode does not consume, so
// the present arm needs no replay.
func (d *Decoder[T]) DecodeOption(tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	c, err := d.dec.PeekCode()
	if err != nil {
		return zero, serde.WrapError(err)
	}
	if c == msgpcode.Nil {
		if err := d.dec.DecodeNil(); err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.None()
	}
	return tv.Some(view(d.dec))
}

// DecodeUnit implements serde.Decoder.
func (d *Decoder[T]) DecodeUnit(tv serde.TypedVisitor[T]) (T, error) {
	if err := d.dec.DecodeNil(); err != nil {
		var zero T
		return zero, serde.WrapError(err)
	}
	return tv.Unit()
}

// DecodeUnitStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeUnitStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return d.DecodeUnit(tv)
}

// DecodeNewtypeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeNewtypeStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return tv.NewtypeStruct(view(d.dec))
}

// DecodeSeq implements serde.Decoder.
func (d *Decoder[T]) DecodeSeq(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeTuple implements serde.Decoder.
func (d *Decoder[T]) DecodeTuple(_ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeTupleStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeTupleStruct(_ string, _ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeMap implements serde.Decoder.
func (d *Decoder[T]) DecodeMap(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeStruct(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeEnum implements serde.Decoder. A bare string is a unit variant;
// a one-entry map holds the variant name and its data.
func (d *Decoder[T]) DecodeEnum(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	c, err := d.dec.PeekCode()
	if err != nil {
		return zero, serde.WrapError(err)
	}
	switch {
	case msgpcode.IsString(c):
		variant, err := d.dec.DecodeString()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		return tv.Enum(unitEnumAccess{variant: variant})

	case msgpcode.IsFixedMap(c), c == msgpcode.Map16, c == msgpcode.Map32:
		n, err := d.dec.DecodeMapLen()
		if err != nil {
			return zero, serde.WrapError(err)
		}
		if n != 1 {
			return zero, serde.Errorf(serde.KindInvalidLength, "enum map has %d entries, expected 1", n)
		}
		return tv.Enum(&mapEnumAccess{dec: d.dec})

	default:
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum, got code 0x%02x", c)
	}
}

// DecodeIdentifier implements serde.Decoder.
func (d *Decoder[T]) DecodeIdentifier(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.dec, tv)
}

// DecodeIgnoredAny implements serde.Decoder.
func (d *Decoder[T]) DecodeIgnoredAny(tv serde.TypedVisitor[T]) (T, error) {
	if err := d.dec.Skip(); err != nil {
		var zero T
		return zero, serde.WrapError(err)
	}
	return tv.Unit()
}

type seqAccess struct {
	dec *msgpack.Decoder
	n   int
	i   int
}

func (a *seqAccess) NextElement(v serde.Visitor) (bool, error) {
	if a.i >= a.n {
		return false, nil
	}
	a.i++
	return true, decodeValueErased(a.dec, v)
}

func (a *seqAccess) SizeHint() int { return a.n - a.i }

// drain skips elements the visitor left unread.
func (a *seqAccess) drain() error {
	for ; a.i < a.n; a.i++ {
		if err := a.dec.Skip(); err != nil {
			return serde.WrapError(err)
		}
	}
	return nil
}

type mapAccess struct {
	dec     *msgpack.Decoder
	n       int
	i       int
	pending bool // key consumed, value not yet
}

func (a *mapAccess) NextKey(v serde.Visitor) (bool, error) {
	if a.i >= a.n {
		return false, nil
	}
	a.i++
	a.pending = true
	return true, decodeValueErased(a.dec, v)
}

func (a *mapAccess) NextValue(v serde.Visitor) error {
	a.pending = false
	return decodeValueErased(a.dec, v)
}

func (a *mapAccess) SizeHint() int { return a.n - a.i }

func (a *mapAccess) drain() error {
	if a.pending {
		a.pending = false
		if err := a.dec.Skip(); err != nil {
			return serde.WrapError(err)
		}
	}
	for ; a.i < a.n; a.i++ {
		if err := a.dec.Skip(); err != nil {
			return serde.WrapError(err)
		}
		if err := a.dec.Skip(); err != nil {
			return serde.WrapError(err)
		}
	}
	return nil
}

// unitEnumAccess serves enums encoded as a bare variant name.
type unitEnumAccess struct {
	variant string
}

func (a unitEnumAccess) Variant(v serde.Visitor) (serde.VariantAccess, error) {
	if err := v.VisitString(a.variant); err != nil {
		return nil, err
	}
	return unitVariantAccess{}, nil
}

type unitVariantAccess struct{}

func (unitVariantAccess) UnitVariant() error { return nil }

func (unitVariantAccess) NewtypeVariant(serde.Visitor) error {
	return serde.Errorf(serde.KindInvalidValue, "invalid type: unit variant, expected newtype variant")
}

func (unitVariantAccess) TupleVariant(int, serde.Visitor) error {
	return serde.Errorf(serde.KindInvalidValue, "invalid type: unit variant, expected tuple variant")
}

func (unitVariantAccess) StructVariant([]string, serde.Visitor) error {
	return serde.Errorf(serde.KindInvalidValue, "invalid type: unit variant, expected struct variant")
}

// mapEnumAccess serves enums encoded as {"name": data}; the wrapper
// map's length prefix is already consumed.
type mapEnumAccess struct {
	dec *msgpack.Decoder
}

func (a *mapEnumAccess) Variant(v serde.Visitor) (serde.VariantAccess, error) {
	variant, err := a.dec.DecodeString()
	if err != nil {
		return nil, serde.WrapError(err)
	}
	if err := v.VisitString(variant); err != nil {
		return nil, err
	}
	return &mapVariantAccess{dec: a.dec}, nil
}

type mapVariantAccess struct {
	dec *msgpack.Decoder
}

func (a *mapVariantAccess) UnitVariant() error {
	if err := a.dec.DecodeNil(); err != nil {
		return serde.WrapError(err)
	}
	return nil
}

func (a *mapVariantAccess) NewtypeVariant(v serde.Visitor) error {
	return decodeValueErased(a.dec, v)
}

func (a *mapVariantAccess) TupleVariant(_ int, v serde.Visitor) error {
	n, err := a.dec.DecodeArrayLen()
	if err != nil {
		return serde.WrapError(err)
	}
	sa := &seqAccess{dec: a.dec, n: n}
	if err := v.VisitSeq(sa); err != nil {
		return err
	}
	return sa.drain()
}

func (a *mapVariantAccess) StructVariant(_ []string, v serde.Visitor) error {
	n, err := a.dec.DecodeMapLen()
	if err != nil {
		return serde.WrapError(err)
	}
	ma := &mapAccess{dec: a.dec, n: n}
	if err := v.VisitMap(ma); err != nil {
		return err
	}
	return ma.drain()
}
