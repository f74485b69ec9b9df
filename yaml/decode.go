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
	"strings"

	"gopkg.in/yaml.v3"

	"rivaas.dev/serde"
)

// Decoder walks one parsed YAML node tree. It implements serde.Decoder
// for target type T; nested nodes re-type through the erased access
// objects.
type Decoder[T any] struct {
	node *yaml.Node
}

var _ serde.Decoder[serde.Unit] = (*Decoder[serde.Unit])(nil)

// NewDecoder returns a decoder over n. Document wrappers and aliases are
// resolved transparently.
func NewDecoder[T any](n *yaml.Node) *Decoder[T] {
	return &Decoder[T]{node: resolve(n)}
}

// resolve unwraps document nodes and follows alias links.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch {
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

func nodeView(n *yaml.Node) serde.Deserializer {
	return serde.NewDeserializer[serde.Unit](NewDecoder[serde.Unit](n))
}

func isNull(n *yaml.Node) bool {
	return n == nil || n.Tag == nullTag || (n.Kind == 0 && n.Value == "")
}

// decodeNode dispatches n to tv by node kind and tag.
func decodeNode[T any](n *yaml.Node, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	n = resolve(n)
	if isNull(n) {
		return tv.None()
	}

	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n, tv)

	case yaml.SequenceNode:
		return tv.Seq(&seqAccess{nodes: n.Content})

	case yaml.MappingNode:
		return tv.Map(&mapAccess{nodes: n.Content})

	default:
		return zero, serde.Errorf(serde.KindOther, "unsupported YAML node kind %d", n.Kind)
	}
}

func decodeScalar[T any](n *yaml.Node, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	switch n.Tag {
	case boolTag:
		v, err := strconv.ParseBool(n.Value)
		if err != nil {
			return zero, serde.Errorf(serde.KindInvalidValue, "invalid boolean %q", n.Value)
		}
		return tv.Bool(v)

	case intTag:
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return tv.Int64(i)
		}
		if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
			return tv.Uint64(u)
		}
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid integer %q", n.Value)

	case floatTag:
		v, err := parseFloat(n.Value)
		if err != nil {
			return zero, serde.Errorf(serde.KindInvalidValue, "invalid float %q", n.Value)
		}
		return tv.Float64(v)

	case binaryTag:
		b, err := base64.StdEncoding.DecodeString(n.Value)
		if err != nil {
			return zero, serde.Errorf(serde.KindInvalidValue, "invalid base64 data")
		}
		return tv.Bytes(b)

	default:
		return tv.String(n.Value)
	}
}

func parseFloat(s string) (float64, error) {
	switch strings.TrimPrefix(s, "+") {
	case ".inf", ".Inf", ".INF":
		return math.Inf(1), nil
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), nil
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

func decodeNodeErased(n *yaml.Node, v serde.Visitor) error {
	_, err := decodeNode(n, serde.Discard(v))
	return err
}

// DecodeAny implements serde.Decoder.
func (d *Decoder[T]) DecodeAny(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeBool implements serde.Decoder. YAML nodes carry their resolved
// tag, so this and the other scalar hints defer the type check to the
// visitor.
func (d *Decoder[T]) DecodeBool(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeInt8 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeInt16 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeInt32 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeInt64 implements serde.Decoder.
func (d *Decoder[T]) DecodeInt64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeUint8 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint8(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeUint16 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint16(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeUint32 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeUint64 implements serde.Decoder.
func (d *Decoder[T]) DecodeUint64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeFloat32 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat32(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeFloat64 implements serde.Decoder.
func (d *Decoder[T]) DecodeFloat64(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeRune implements serde.Decoder.
func (d *Decoder[T]) DecodeRune(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeString implements serde.Decoder.
func (d *Decoder[T]) DecodeString(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeBytes implements serde.Decoder.
func (d *Decoder[T]) DecodeBytes(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeOption implements serde.Decoder.
func (d *Decoder[T]) DecodeOption(tv serde.TypedVisitor[T]) (T, error) {
	n := resolve(d.node)
	if isNull(n) {
		return tv.None()
	}
	return tv.Some(nodeView(n))
}

// DecodeUnit implements serde.Decoder.
func (d *Decoder[T]) DecodeUnit(tv serde.TypedVisitor[T]) (T, error) {
	n := resolve(d.node)
	if !isNull(n) {
		var zero T
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected null, got %q", n.Value)
	}
	return tv.Unit()
}

// DecodeUnitStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeUnitStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return d.DecodeUnit(tv)
}

// DecodeNewtypeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeNewtypeStruct(_ string, tv serde.TypedVisitor[T]) (T, error) {
	return tv.NewtypeStruct(nodeView(d.node))
}

// DecodeSeq implements serde.Decoder.
func (d *Decoder[T]) DecodeSeq(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeTuple implements serde.Decoder.
func (d *Decoder[T]) DecodeTuple(_ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeTupleStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeTupleStruct(_ string, _ int, tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeMap implements serde.Decoder.
func (d *Decoder[T]) DecodeMap(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeStruct implements serde.Decoder.
func (d *Decoder[T]) DecodeStruct(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeEnum implements serde.Decoder. A bare string is a unit variant;
// a one-entry mapping holds the variant name and its data.
func (d *Decoder[T]) DecodeEnum(_ string, _ []string, tv serde.TypedVisitor[T]) (T, error) {
	var zero T
	n := resolve(d.node)
	switch {
	case n.Kind == yaml.ScalarNode && n.Tag != nullTag:
		return tv.Enum(unitEnumAccess{variant: n.Value})

	case n.Kind == yaml.MappingNode:
		if len(n.Content) != 2 {
			return zero, serde.Errorf(serde.KindInvalidLength, "enum mapping has %d entries, expected 1", len(n.Content)/2)
		}
		return tv.Enum(&nodeEnumAccess{key: n.Content[0], data: n.Content[1]})

	default:
		return zero, serde.Errorf(serde.KindInvalidValue, "invalid type: expected enum")
	}
}

// DecodeIdentifier implements serde.Decoder.
func (d *Decoder[T]) DecodeIdentifier(tv serde.TypedVisitor[T]) (T, error) {
	return decodeNode(d.node, tv)
}

// DecodeIgnoredAny implements serde.Decoder. The tree is already
// parsed, so there is nothing to skip.
func (d *Decoder[T]) DecodeIgnoredAny(tv serde.TypedVisitor[T]) (T, error) {
	return tv.Unit()
}

type seqAccess struct {
	nodes []*yaml.Node
	i     int
}

func (a *seqAccess) NextElement(v serde.Visitor) (bool, error) {
	if a.i >= len(a.nodes) {
		return false, nil
	}
	n := a.nodes[a.i]
	a.i++
	return true, decodeNodeErased(n, v)
}

func (a *seqAccess) SizeHint() int { return len(a.nodes) - a.i }

// mapAccess walks a mapping's interleaved key/value content slice.
type mapAccess struct {
	nodes []*yaml.Node
	i     int
}

func (a *mapAccess) NextKey(v serde.Visitor) (bool, error) {
	if a.i+1 >= len(a.nodes) {
		return false, nil
	}
	n := a.nodes[a.i]
	a.i++
	return true, decodeNodeErased(n, v)
}

func (a *mapAccess) NextValue(v serde.Visitor) error {
	n := a.nodes[a.i]
	a.i++
	return decodeNodeErased(n, v)
}

func (a *mapAccess) SizeHint() int { return (len(a.nodes) - a.i) / 2 }

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

// nodeEnumAccess serves enums encoded as {name: data}.
type nodeEnumAccess struct {
	key  *yaml.Node
	data *yaml.Node
}

func (a *nodeEnumAccess) Variant(v serde.Visitor) (serde.VariantAccess, error) {
	if err := decodeNodeErased(a.key, v); err != nil {
		return nil, err
	}
	return &nodeVariantAccess{data: a.data}, nil
}

type nodeVariantAccess struct {
	data *yaml.Node
}

func (a *nodeVariantAccess) UnitVariant() error {
	if !isNull(resolve(a.data)) {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected null variant data")
	}
	return nil
}

func (a *nodeVariantAccess) NewtypeVariant(v serde.Visitor) error {
	return decodeNodeErased(a.data, v)
}

func (a *nodeVariantAccess) TupleVariant(_ int, v serde.Visitor) error {
	n := resolve(a.data)
	if n.Kind != yaml.SequenceNode {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected sequence variant data")
	}
	return v.VisitSeq(&seqAccess{nodes: n.Content})
}

func (a *nodeVariantAccess) StructVariant(_ []string, v serde.Visitor) error {
	n := resolve(a.data)
	if n.Kind != yaml.MappingNode {
		return serde.Errorf(serde.KindInvalidValue, "invalid type: expected mapping variant data")
	}
	return v.VisitMap(&mapAccess{nodes: n.Content})
}
