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

package yaml

import (
	"encoding/base64"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"

	"rivaas.dev/serde"
)

const (
	nullTag   = "!!null"
	boolTag   = "!!bool"
	intTag    = "!!int"
	floatTag  = "!!float"
	strTag    = "!!str"
	binaryTag = "!!binary"
)

// Encoder builds a YAML node tree for one value. It implements
// serde.Encoder with output type *yaml.Node; every encode operation
// returns the node it produced, and [Encoder.Result] holds the most
// recently completed one.
//
// Nested values reach the encoder through the erased protocol, which
// cannot return the node, so the encoder records each produced node and
// the compound continuations collect them from there.
//
// An Encoder encodes one top-level value and is not safe for concurrent
// use.
type Encoder struct {
	erased serde.Serializer
	last   *yaml.Node
}

var _ serde.Encoder[*yaml.Node] = (*Encoder)(nil)

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.erased = serde.NewSerializer[*yaml.Node](e)
	return e
}

// Result returns the node produced by the last completed encode
// operation, or nil if none ran.
func (e *Encoder) Result() *yaml.Node { return e.last }

func (e *Encoder) scalar(tag, value string) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
	e.last = n
	return n, nil
}

// child serializes v through the erased protocol and returns the node
// it produced.
func (e *Encoder) child(v serde.Value) (*yaml.Node, error) {
	if err := v.SerializeInto(e.erased); err != nil {
		return nil, err
	}
	return e.last, nil
}

// EncodeBool implements serde.Encoder.
func (e *Encoder) EncodeBool(v bool) (*yaml.Node, error) {
	return e.scalar(boolTag, strconv.FormatBool(v))
}

// EncodeInt8 implements serde.Encoder.
func (e *Encoder) EncodeInt8(v int8) (*yaml.Node, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt16 implements serde.Encoder.
func (e *Encoder) EncodeInt16(v int16) (*yaml.Node, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt32 implements serde.Encoder.
func (e *Encoder) EncodeInt32(v int32) (*yaml.Node, error) { return e.EncodeInt64(int64(v)) }

// EncodeInt64 implements serde.Encoder.
func (e *Encoder) EncodeInt64(v int64) (*yaml.Node, error) {
	return e.scalar(intTag, strconv.FormatInt(v, 10))
}

// EncodeUint8 implements serde.Encoder.
func (e *Encoder) EncodeUint8(v uint8) (*yaml.Node, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint16 implements serde.Encoder.
func (e *Encoder) EncodeUint16(v uint16) (*yaml.Node, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint32 implements serde.Encoder.
func (e *Encoder) EncodeUint32(v uint32) (*yaml.Node, error) { return e.EncodeUint64(uint64(v)) }

// EncodeUint64 implements serde.Encoder.
func (e *Encoder) EncodeUint64(v uint64) (*yaml.Node, error) {
	return e.scalar(intTag, strconv.FormatUint(v, 10))
}

// EncodeFloat32 implements serde.Encoder.
func (e *Encoder) EncodeFloat32(v float32) (*yaml.Node, error) {
	return e.scalar(floatTag, formatFloat(float64(v), 32))
}

// EncodeFloat64 implements serde.Encoder.
func (e *Encoder) EncodeFloat64(v float64) (*yaml.Node, error) {
	return e.scalar(floatTag, formatFloat(v, 64))
}

func formatFloat(v float64, bits int) string {
	switch {
	case math.IsNaN(v):
		return ".nan"
	case math.IsInf(v, 1):
		return ".inf"
	case math.IsInf(v, -1):
		return "-.inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, bits)
	}
}

// EncodeRune implements serde.Encoder.
func (e *Encoder) EncodeRune(v rune) (*yaml.Node, error) {
	return e.scalar(strTag, string(v))
}

// EncodeString implements serde.Encoder.
func (e *Encoder) EncodeString(v string) (*yaml.Node, error) {
	return e.scalar(strTag, v)
}

// EncodeBytes implements serde.Encoder.
func (e *Encoder) EncodeBytes(v []byte) (*yaml.Node, error) {
	return e.scalar(binaryTag, base64.StdEncoding.EncodeToString(v))
}

// EncodeNone implements serde.Encoder.
func (e *Encoder) EncodeNone() (*yaml.Node, error) {
	return e.scalar(nullTag, "null")
}

// EncodeSome implements serde.Encoder. The inner value encodes bare.
func (e *Encoder) EncodeSome(v serde.Value) (*yaml.Node, error) {
	return e.child(v)
}

// EncodeUnit implements serde.Encoder.
func (e *Encoder) EncodeUnit() (*yaml.Node, error) {
	return e.scalar(nullTag, "null")
}

// EncodeUnitStruct implements serde.Encoder.
func (e *Encoder) EncodeUnitStruct(string) (*yaml.Node, error) {
	return e.scalar(nullTag, "null")
}

// EncodeUnitVariant implements serde.Encoder.
func (e *Encoder) EncodeUnitVariant(_ string, _ uint32, variant string) (*yaml.Node, error) {
	return e.scalar(strTag, variant)
}

// EncodeNewtypeStruct implements serde.Encoder.
func (e *Encoder) EncodeNewtypeStruct(_ string, v serde.Value) (*yaml.Node, error) {
	return e.child(v)
}

// EncodeNewtypeVariant implements serde.Encoder.
func (e *Encoder) EncodeNewtypeVariant(_ string, _ uint32, variant string, v serde.Value) (*yaml.Node, error) {
	data, err := e.child(v)
	if err != nil {
		return nil, err
	}
	return e.wrapVariant(variant, data), nil
}

// wrapVariant builds the one-entry mapping {variant: data}.
func (e *Encoder) wrapVariant(variant string, data *yaml.Node) *yaml.Node {
	n := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: strTag, Value: variant},
			data,
		},
	}
	e.last = n
	return n
}

// EncodeSeq implements serde.Encoder. The length hint only presizes the
// node's content slice.
func (e *Encoder) EncodeSeq(hint int) (serde.SeqEncoder[*yaml.Node], error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if hint > 0 {
		n.Content = make([]*yaml.Node, 0, hint)
	}
	return &seqEncoder{e: e, node: n}, nil
}

// EncodeTuple implements serde.Encoder.
func (e *Encoder) EncodeTuple(n int) (serde.SeqEncoder[*yaml.Node], error) {
	return e.EncodeSeq(n)
}

// EncodeTupleStruct implements serde.Encoder.
func (e *Encoder) EncodeTupleStruct(_ string, n int) (serde.SeqEncoder[*yaml.Node], error) {
	return e.EncodeSeq(n)
}

// EncodeTupleVariant implements serde.Encoder.
func (e *Encoder) EncodeTupleVariant(_ string, _ uint32, variant string, n int) (serde.VariantEncoder[*yaml.Node], error) {
	payload := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if n > 0 {
		payload.Content = make([]*yaml.Node, 0, n)
	}
	return &variantEncoder{e: e, variant: variant, node: payload}, nil
}

// EncodeMap implements serde.Encoder.
func (e *Encoder) EncodeMap(hint int) (serde.MapEncoder[*yaml.Node], error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if hint > 0 {
		n.Content = make([]*yaml.Node, 0, 2*hint)
	}
	return &mapEncoder{e: e, node: n}, nil
}

// EncodeStruct implements serde.Encoder. Structs encode as mappings with
// string keys.
func (e *Encoder) EncodeStruct(_ string, n int) (serde.StructEncoder[*yaml.Node], error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if n > 0 {
		node.Content = make([]*yaml.Node, 0, 2*n)
	}
	return &structEncoder{e: e, node: node}, nil
}

// EncodeStructVariant implements serde.Encoder.
func (e *Encoder) EncodeStructVariant(_ string, _ uint32, variant string, n int) (serde.VariantEncoder[*yaml.Node], error) {
	payload := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if n > 0 {
		payload.Content = make([]*yaml.Node, 0, 2*n)
	}
	return &variantEncoder{e: e, variant: variant, node: payload}, nil
}

type seqEncoder struct {
	e    *Encoder
	node *yaml.Node
}

func (s *seqEncoder) EncodeElement(v serde.Value) error {
	child, err := s.e.child(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, child)
	return nil
}

func (s *seqEncoder) Finish() (*yaml.Node, error) {
	s.e.last = s.node
	return s.node, nil
}

type mapEncoder struct {
	e    *Encoder
	node *yaml.Node
}

func (m *mapEncoder) EncodeKey(k serde.Value) error {
	child, err := m.e.child(k)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, child)
	return nil
}

func (m *mapEncoder) EncodeValue(v serde.Value) error {
	child, err := m.e.child(v)
	if err != nil {
		return err
	}
	m.node.Content = append(m.node.Content, child)
	return nil
}

func (m *mapEncoder) Finish() (*yaml.Node, error) {
	m.e.last = m.node
	return m.node, nil
}

type structEncoder struct {
	e    *Encoder
	node *yaml.Node
}

func (s *structEncoder) EncodeField(name string, v serde.Value) error {
	child, err := s.e.child(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: name},
		child)
	return nil
}

func (s *structEncoder) Finish() (*yaml.Node, error) {
	s.e.last = s.node
	return s.node, nil
}

// variantEncoder continues tuple and struct variants; Finish wraps the
// collected payload in the one-entry variant mapping.
type variantEncoder struct {
	e       *Encoder
	variant string
	node    *yaml.Node
}

func (s *variantEncoder) EncodeElement(v serde.Value) error {
	child, err := s.e.child(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content, child)
	return nil
}

func (s *variantEncoder) EncodeField(name string, v serde.Value) error {
	child, err := s.e.child(v)
	if err != nil {
		return err
	}
	s.node.Content = append(s.node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: name},
		child)
	return nil
}

func (s *variantEncoder) Finish() (*yaml.Node, error) {
	return s.e.wrapVariant(s.variant, s.node), nil
}
