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

package json

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"rivaas.dev/serde"
)

// Decoder reads one JSON value from a byte slice. It implements
// serde.Decoder for target type T over the standard library's token
// stream; nested elements re-type through the erased access objects, so
// one underlying stream serves arbitrarily nested targets.
//
// A Decoder decodes exactly one top-level value and is not safe for
// concurrent use.
type Decoder[T any] struct {
	r *reader
}

var _ serde.Decoder[serde.Unit] = (*Decoder[serde.Unit])(nil)

// NewDecoder returns a decoder reading from data.
func NewDecoder[T any](data []byte) *Decoder[T] {
	jd := json.NewDecoder(bytes.NewReader(data))
	jd.UseNumber()
	return &Decoder[T]{r: &reader{dec: jd}}
}

// reader is the shared decoding state behind every Decoder view and
// access object of one document.
type reader struct {
	dec *json.Decoder
}

func (r *reader) token() (json.Token, error) {
	tok, err := r.dec.Token()
	if err != nil {
		return nil, serde.WrapError(err)
	}
	return tok, nil
}

// decodeValue reads the next value and dispatches it to tv by shape.
func decodeValue[T any](r *reader, tv serde.TypedVisitor[T]) (T, error) {
	tok, err := r.token()
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeToken(r, tok, tv)
}

func decodeToken[T any](r *reader, tok json.Token, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	switch t := tok.(type) {
	case nil:
		return tv.None()

	case bool:
		return tv.Bool(t)

	case string:
		return tv.String(t)

	case json.Number:
		return decodeNumber(t, tv)

	case json.Delim:
		switch t {
		case '[':
			a := &seqAccess{r: r}
			out, err := tv.Seq(a)
			if err != nil {
				return zero, err
			}
			return out, a.drain()
		case '{':
			a := &mapAccess{r: r}
			out, err := tv.Map(a)
			if err != nil {
				return zero, err
			}
			return out, a.drain()
		default:
			return zero, serde.Errorf(serde.KindOther, "unexpected delimiter %q", t.String())
		}

	default:
		return zero, serde.Errorf(serde.KindOther, "unexpected token %v", tok)
	}
}

func decodeNumber[T any](n json.Number, tv serde.TypedVisitor[T]) (T, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if i, err := n.Int64(); err == nil {
				return tv.Int64(i)
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			if u <= math.MaxInt64 {
				return tv.Int64(int64(u))
			}
			return tv.Uint64(u)
		}
	}
	f, err := n.Float64()
	if err != nil {
		var zero T
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid number %q", s)
	}
	return tv.Float64(f)
}

// decodeValueErased is decodeValue for erased destinations.
func decodeValueErased(r *reader, v serde.Visitor) error {
	_, err := decodeValue(r, serde.Discard(v))
	return err
}

func decodeTokenErased(r *reader, tok json.Token, v serde.Visitor) error {
	_, err := decodeToken(r, tok, serde.Discard(v))
	return err
}

func expectClose(r *reader, want json.Delim) error {
	tok, err := r.token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return serde.Errorf(serde.KindInvalidValue, "expected %q, got %v", want.String(), tok)
	}
	return nil
}

// DecodeAny implements serde.Decoder.
func (d *Decoder[T]) DecodeAny(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeBool implements serde.Decoder. JSON is self-describing, so this
// and the other scalar hints defer the type check to the visitor.
func (d *Decoder[T]) DecodeBool(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeInt8 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeInt16 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeInt32 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeInt64 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeUint8 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeUint16 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeUint32 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeUint64 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeFloat32 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeFloat64 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeRune implements serde.Decoder.
func (d *Decoder[T]) DecodeRune(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeString implements serde.Decoder.
func (d *Decoder[T]) DecodeString(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeBytes implements serde.Decoder. Byte sequences arrive as arrays
// of integers or as strings; the visitor accepts either.
func (d *Decoder[T]) DecodeBytes(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeOption implements serde.Decoder.
func (d *Decoder[T]) DecodeOption(tv serde.TypedVisitor[T]) (T, error) {
	tok, err := d.r.token()
	if err != nil {
		var zero T
		return zero, err
	}
	if tok == nil {
		return tv.None()
	}
	return tv.Some(&headDeserializer{r: d.r, tok: tok})
}

// DecodeUnit implements serde.Decoder.
func (d *Decoder[T]) DecodeUnit(tv serde.TypedVisitor[T]) (T, error) {
	tok, err := d.r.token()
	if err != nil {
		var zero T
		return zero, err
	}
	if tok != nil {
		var zero T
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected null, got %v", tok)
	}
	return tv.Unit()
}

// DecodeUnitStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeUnitStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return d.DecodeUnit(tv)
}

// DecodeNewtypeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeNewtypeStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return tv.NewtypeStruct(serde.NewDeserializer[serde.Unit](&Decoder[serde.Unit]{r: d.r}))
}

// DecodeSeq implements serde.Decoder.
func (d *Decoder[T]) DecodeSeq(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeTuple implements serde.Decoder.
func (d *Decoder[T]) DecodeTuple(_ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeTupleStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeTupleStruct(_ string, _ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeMap implements serde.Decoder.
func (d *Decoder[T]) DecodeMap(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeStruct(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeEnum implements serde.Decoder. A bare string is a unit variant;
// an object holds one "variant": data entry.
func (d *Decoder[T]) DecodeEnum(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	tok, err := d.r.token()
	if err != nil {
		return zero, err
	}
	switch t := tok.(type) {
	case string:
		return tv.Enum(unitEnumAccess{variant: t})
	case json.Delim:
		if t != '{' {
			return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum, got %q", t.String())
		}
		out, err := tv.Enum(&objEnumAccess{r: d.r})
		if err != nil {
			return zero, err
		}
		return out, nil
	default:
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum, got %v", tok)
	}
}

// DecodeIdentifier implements serde.Decoder.
func (d *Decoder[T]) DecodeIdentifier(tv serde.TypedVisitor[T]) (T, error) {
	return decodeValue(d.r, tv)
}

// DecodeIgnoredAny implements serde.Decoder.
func (d *Decoder[T]) DecodeIgnoredAny(tv serde.TypedVisitor[T]) (T, error) {
	if err := decodeValueErased(d.r, serde.Ignore); err != nil {
		var zero T
		return zero, err
	}
	return tv.Unit()
}

type seqAccess struct {
	r    *reader
	done bool
}

func (a *seqAccess) NextElement(v serde.Visitor) (bool, error) {
	if a.done {
		return false, nil
	}
	if !a.r.dec.More() {
		a.done = true
		if err := expectClose(a.r, ']'); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, decodeValueErased(a.r, v)
}

func (a *seqAccess) SizeHint() int { return -1 }

func (a *seqAccess) drain() error {
	for {
		ok, err := a.NextElement(serde.Ignore)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

type mapAccess struct {
	r    *reader
	done bool
}

func (a *mapAccess) NextKey(v serde.Visitor) (bool, error) {
	if a.done {
		return false, nil
	}
	if !a.r.dec.More() {
		a.done = true
		if err := expectClose(a.r, '}'); err != nil {
			return false, err
		}
		return false, nil
	}
	tok, err := a.r.token()
	if err != nil {
		return false, err
	}
	key, ok := tok.(string)
	if !ok {
		return false, serde.Errorf(serde.KindOther, "object key is not a string: %v", tok)
	}
	return true, v.VisitString(key)
}

func (a *mapAccess) NextValue(v serde.Visitor) error {
	return decodeValueErased(a.r, v)
}

func (a *mapAccess) SizeHint() int { return -1 }

func (a *mapAccess) drain() error {
	for {
		ok, err := a.NextKey(serde.Ignore)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := a.NextValue(serde.Ignore); err != nil {
			return err
		}
	}
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

// objEnumAccess serves enums encoded as {"variant": data}. The wrapper
// object's closing brace is consumed by the variant access.
type objEnumAccess struct {
	r *reader
}

func (a *objEnumAccess) Variant(v serde.Visitor) (serde.VariantAccess, error) {
	tok, err := a.r.token()
	if err != nil {
		return nil, err
	}
	key, ok := tok.(string)
	if !ok {
		return nil, serde.Errorf(serde.KindOther, "variant name is not a string: %v", tok)
	}
	if err := v.VisitString(key); err != nil {
		return nil, err
	}
	return &objVariantAccess{r: a.r}, nil
}

type objVariantAccess struct {
	r *reader
}

func (a *objVariantAccess) UnitVariant() error {
	tok, err := a.r.token()
	if err != nil {
		return err
	}
	if tok != nil {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected null, got %v", tok)
	}
	return expectClose(a.r, '}')
}

func (a *objVariantAccess) NewtypeVariant(v serde.Visitor) error {
	if err := decodeValueErased(a.r, v); err != nil {
		return err
	}
	return expectClose(a.r, '}')
}

func (a *objVariantAccess) TupleVariant(_ int, v serde.Visitor) error {
	tok, err := a.r.token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected array, got %v", tok)
	}
	sa := &seqAccess{r: a.r}
	if err := v.VisitSeq(sa); err != nil {
		return err
	}
	if err := sa.drain(); err != nil {
		return err
	}
	return expectClose(a.r, '}')
}

func (a *objVariantAccess) StructVariant(_ []string, v serde.Visitor) error {
	tok, err := a.r.token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected object, got %v", tok)
	}
	ma := &mapAccess{r: a.r}
	if err := v.VisitMap(ma); err != nil {
		return err
	}
	if err := ma.drain(); err != nil {
		return err
	}
	return expectClose(a.r, '}')
}

// headDeserializer replays one already-consumed token, then continues
// from the shared reader. It backs VisitSome, where the decoder must
// peek at the value to distinguish null from a present value.
type headDeserializer struct {
	r   *reader
	tok json.Token
}

var _ serde.Deserializer = (*headDeserializer)(nil)

func (h *headDeserializer) replay(v serde.Visitor) error {
	return decodeTokenErased(h.r, h.tok, v)
}

func (h *headDeserializer) Any(v serde.Visitor) error        { return h.replay(v) }
func (h *headDeserializer) Bool(v serde.Visitor) error       { return h.replay(v) }
func (h *headDeserializer) Int8(v serde.Visitor) error       { return h.replay(v) }
func (h *headDeserializer) Int16(v serde.Visitor) error      { return h.replay(v) }
func (h *headDeserializer) Int32(v serde.Visitor) error      { return h.replay(v) }
func (h *headDeserializer) Int64(v serde.Visitor) error      { return h.replay(v) }
func (h *headDeserializer) Uint8(v serde.Visitor) error      { return h.replay(v) }
func (h *headDeserializer) Uint16(v serde.Visitor) error     { return h.replay(v) }
func (h *headDeserializer) Uint32(v serde.Visitor) error     { return h.replay(v) }
func (h *headDeserializer) Uint64(v serde.Visitor) error     { return h.replay(v) }
func (h *headDeserializer) Float32(v serde.Visitor) error    { return h.replay(v) }
func (h *headDeserializer) Float64(v serde.Visitor) error    { return h.replay(v) }
func (h *headDeserializer) Rune(v serde.Visitor) error       { return h.replay(v) }
func (h *headDeserializer) String(v serde.Visitor) error     { return h.replay(v) }
func (h *headDeserializer) Bytes(v serde.Visitor) error      { return h.replay(v) }
func (h *headDeserializer) Seq(v serde.Visitor) error        { return h.replay(v) }
func (h *headDeserializer) Map(v serde.Visitor) error        { return h.replay(v) }
func (h *headDeserializer) Identifier(v serde.Visitor) error { return h.replay(v) }

func (h *headDeserializer) Option(v serde.Visitor) error {
	if h.tok == nil {
		return v.VisitNone()
	}
	return v.VisitSome(h)
}

func (h *headDeserializer) Unit(v serde.Visitor) error {
	if h.tok != nil {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected null, got %v", h.tok)
	}
	return v.VisitUnit()
}

func (h *headDeserializer) UnitStruct(_ string, v serde.Visitor) error {
	return h.Unit(v)
}

func (h *headDeserializer) NewtypeStruct(_ string, v serde.Visitor) error {
	return v.VisitNewtypeStruct(h)
}

func (h *headDeserializer) Tuple(_ int, v serde.Visitor) error {
	return h.replay(v)
}

func (h *headDeserializer) TupleStruct(_ string, _ int, v serde.Visitor) error {
	return h.replay(v)
}

func (h *headDeserializer) Struct(_ string, _ []string, v serde.Visitor) error {
	return h.replay(v)
}

func (h *headDeserializer) Enum(_ string, _ []string, v serde.Visitor) error {
	switch t := h.tok.(type) {
	case string:
		return v.VisitEnum(unitEnumAccess{variant: t})
	case json.Delim:
		if t != '{' {
			return serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum, got %q", t.String())
		}
		return v.VisitEnum(&objEnumAccess{r: h.r})
	default:
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum, got %v", h.tok)
	}
}

func (h *headDeserializer) IgnoredAny(v serde.Visitor) error {
	if err := decodeTokenErased(h.r, h.tok, serde.Ignore); err != nil {
		return err
	}
	return v.VisitUnit()
}
