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

// toTree serializes v into the value-tree form memDeserializer reads,
// closing the loop for in-memory round-trip tests.
func toTree(v Value) (any, error) {
	var ts treeSerializer
	if err := v.SerializeInto(&ts); err != nil {
		return nil, err
	}
	return ts.out, nil
}

// treeSerializer builds a plain Go value tree from erased encode calls.
type treeSerializer struct {
	out any
}

func (t *treeSerializer) set(v any) error {
	t.out = v
	return nil
}

func (t *treeSerializer) subtree(v Value) (any, error) {
	var child treeSerializer
	if err := v.SerializeInto(&child); err != nil {
		return nil, err
	}
	return child.out, nil
}

func (t *treeSerializer) Bool(v bool) error       { return t.set(v) }
func (t *treeSerializer) Int8(v int8) error       { return t.set(int64(v)) }
func (t *treeSerializer) Int16(v int16) error     { return t.set(int64(v)) }
func (t *treeSerializer) Int32(v int32) error     { return t.set(int64(v)) }
func (t *treeSerializer) Int64(v int64) error     { return t.set(v) }
func (t *treeSerializer) Uint8(v uint8) error     { return t.set(uint64(v)) }
func (t *treeSerializer) Uint16(v uint16) error   { return t.set(uint64(v)) }
func (t *treeSerializer) Uint32(v uint32) error   { return t.set(uint64(v)) }
func (t *treeSerializer) Uint64(v uint64) error   { return t.set(v) }
func (t *treeSerializer) Float32(v float32) error { return t.set(float64(v)) }
func (t *treeSerializer) Float64(v float64) error { return t.set(v) }
func (t *treeSerializer) Rune(v rune) error       { return t.set(string(v)) }
func (t *treeSerializer) String(v string) error   { return t.set(v) }
func (t *treeSerializer) None() error             { return t.set(nil) }
func (t *treeSerializer) Unit() error             { return t.set(nil) }

func (t *treeSerializer) Bytes(v []byte) error {
	out := make([]byte, len(v))
	copy(out, v)
	return t.set(out)
}

func (t *treeSerializer) Some(v Value) error {
	child, err := t.subtree(v)
	if err != nil {
		return err
	}
	return t.set(child)
}

func (t *treeSerializer) UnitStruct(string) error { return t.set(nil) }

func (t *treeSerializer) UnitVariant(_ string, _ uint32, variant string) error {
	return t.set(variant)
}

func (t *treeSerializer) NewtypeStruct(_ string, v Value) error {
	return t.Some(v)
}

func (t *treeSerializer) NewtypeVariant(_ string, _ uint32, variant string, v Value) error {
	child, err := t.subtree(v)
	if err != nil {
		return err
	}
	return t.set(entry{key: variant, val: child})
}

func (t *treeSerializer) Seq(int) (SeqSerializer, error) {
	return &treeSeq{t: t}, nil
}

func (t *treeSerializer) Tuple(int) (SeqSerializer, error) {
	return &treeSeq{t: t}, nil
}

func (t *treeSerializer) TupleStruct(string, int) (SeqSerializer, error) {
	return &treeSeq{t: t}, nil
}

func (t *treeSerializer) TupleVariant(_ string, _ uint32, variant string, _ int) (VariantSerializer, error) {
	return &treeVariant{t: t, variant: variant}, nil
}

func (t *treeSerializer) Map(int) (MapSerializer, error) {
	return &treeMap{t: t}, nil
}

func (t *treeSerializer) Struct(string, int) (StructSerializer, error) {
	return &treeMap{t: t}, nil
}

func (t *treeSerializer) StructVariant(_ string, _ uint32, variant string, _ int) (VariantSerializer, error) {
	return &treeVariant{t: t, variant: variant, structLike: true}, nil
}

type treeSeq struct {
	t     *treeSerializer
	items []any
}

func (s *treeSeq) Element(v Value) error {
	child, err := s.t.subtree(v)
	if err != nil {
		return err
	}
	s.items = append(s.items, child)
	return nil
}

func (s *treeSeq) End() error { return s.t.set(s.items) }

type treeMap struct {
	t       *treeSerializer
	items   []entry
	lastKey any
}

func (m *treeMap) Key(k Value) error {
	child, err := m.t.subtree(k)
	if err != nil {
		return err
	}
	m.lastKey = child
	return nil
}

func (m *treeMap) Value(v Value) error {
	child, err := m.t.subtree(v)
	if err != nil {
		return err
	}
	m.items = append(m.items, entry{key: m.lastKey, val: child})
	return nil
}

func (m *treeMap) Entry(k, v Value) error {
	if err := m.Key(k); err != nil {
		return err
	}
	return m.Value(v)
}

func (m *treeMap) Field(name string, v Value) error {
	child, err := m.t.subtree(v)
	if err != nil {
		return err
	}
	m.items = append(m.items, entry{key: name, val: child})
	return nil
}

func (m *treeMap) End() error {
	if m.items == nil {
		m.items = []entry{}
	}
	return m.t.set(m.items)
}

// treeVariant collects a variant payload and wraps it as {variant: data}.
type treeVariant struct {
	t          *treeSerializer
	variant    string
	structLike bool
	items      []any
	fields     []entry
}

func (s *treeVariant) Element(v Value) error {
	child, err := s.t.subtree(v)
	if err != nil {
		return err
	}
	s.items = append(s.items, child)
	return nil
}

func (s *treeVariant) Field(name string, v Value) error {
	child, err := s.t.subtree(v)
	if err != nil {
		return err
	}
	s.fields = append(s.fields, entry{key: name, val: child})
	return nil
}

func (s *treeVariant) End() error {
	if s.structLike {
		return s.t.set(entry{key: s.variant, val: s.fields})
	}
	return s.t.set(entry{key: s.variant, val: s.items})
}
