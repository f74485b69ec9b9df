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

import (
	"reflect"
	"sort"
)

// Reflect wraps an arbitrary Go value as an erased [Value], so it can be
// handed to any [Serializer] without writing a SerializeInto by hand.
//
// Mapping:
//   - nil and nil pointers encode as none, non-nil pointers as some
//   - bool, integer, float, and string kinds map to their width
//   - []byte encodes as a byte sequence, other slices as sequences
//   - arrays encode as tuples
//   - maps encode as maps; string-keyed maps in sorted key order unless
//     [WithUnsortedKeys] is given
//   - structs encode as named structs using the `serde` tag (override
//     with [WithTag]); tags support `-` and `,omitempty`
//
// Values that already implement [Value] are serialized by their own
// SerializeInto.
//
// Example:
//
//	err := serde.Reflect(cfg).SerializeInto(serde.NewSerializer(enc))
func Reflect(v any, opts ...Option) Value {
	return reflectValue{v: v, opts: applyOptions(opts)}
}

type reflectValue struct {
	v    any
	opts *Options
}

func (r reflectValue) SerializeInto(s Serializer) error {
	return encodeReflect(reflect.ValueOf(r.v), s, r.opts, 0)
}

// reflectElem defers encoding of one nested reflect.Value.
type reflectElem struct {
	v     reflect.Value
	opts  *Options
	depth int
}

func (r reflectElem) SerializeInto(s Serializer) error {
	return encodeReflect(r.v, s, r.opts, r.depth)
}

var valueType = reflect.TypeFor[Value]()

func encodeReflect(rv reflect.Value, s Serializer, opts *Options, depth int) error {
	if depth > opts.MaxDepth {
		return Errorf(KindOther, "exceeded maximum nesting depth %d", opts.MaxDepth)
	}

	if !rv.IsValid() {
		return s.None()
	}

	// Hand-written implementations win over reflection.
	if rv.Type().Implements(valueType) && rv.Kind() != reflect.Pointer {
		return rv.Interface().(Value).SerializeInto(s)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return s.Bool(rv.Bool())

	case reflect.Int8:
		return s.Int8(int8(rv.Int()))
	case reflect.Int16:
		return s.Int16(int16(rv.Int()))
	case reflect.Int32:
		return s.Int32(int32(rv.Int()))
	case reflect.Int, reflect.Int64:
		return s.Int64(rv.Int())

	case reflect.Uint8:
		return s.Uint8(uint8(rv.Uint()))
	case reflect.Uint16:
		return s.Uint16(uint16(rv.Uint()))
	case reflect.Uint32:
		return s.Uint32(uint32(rv.Uint()))
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return s.Uint64(rv.Uint())

	case reflect.Float32:
		return s.Float32(float32(rv.Float()))
	case reflect.Float64:
		return s.Float64(rv.Float())

	case reflect.String:
		return s.String(rv.String())

	case reflect.Pointer:
		if rv.IsNil() {
			return s.None()
		}
		return s.Some(reflectElem{v: rv.Elem(), opts: opts, depth: depth + 1})

	case reflect.Interface:
		if rv.IsNil() {
			return s.None()
		}
		return encodeReflect(rv.Elem(), s, opts, depth)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return s.Bytes(rv.Bytes())
		}
		if rv.IsNil() {
			return s.None()
		}
		return encodeReflectSeq(rv, s, opts, depth, false)

	case reflect.Array:
		return encodeReflectSeq(rv, s, opts, depth, true)

	case reflect.Map:
		return encodeReflectMap(rv, s, opts, depth)

	case reflect.Struct:
		return encodeReflectStruct(rv, s, opts, depth)

	default:
		return Errorf(KindOther, "cannot serialize %s values", rv.Kind())
	}
}

func encodeReflectSeq(rv reflect.Value, s Serializer, opts *Options, depth int, fixed bool) error {
	n := rv.Len()

	var (
		c   SeqSerializer
		err error
	)
	if fixed {
		c, err = s.Tuple(n)
	} else {
		c, err = s.Seq(n)
	}
	if err != nil {
		return err
	}

	for i := range n {
		elem := reflectElem{v: rv.Index(i), opts: opts, depth: depth + 1}
		if err := c.Element(elem); err != nil {
			return err
		}
	}

	return c.End()
}

func encodeReflectMap(rv reflect.Value, s Serializer, opts *Options, depth int) error {
	if rv.IsNil() {
		return s.None()
	}

	c, err := s.Map(rv.Len())
	if err != nil {
		return err
	}

	keys := rv.MapKeys()
	if opts.SortKeys && rv.Type().Key().Kind() == reflect.String {
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	}

	for _, key := range keys {
		k := reflectElem{v: key, opts: opts, depth: depth + 1}
		v := reflectElem{v: rv.MapIndex(key), opts: opts, depth: depth + 1}
		if err := c.Entry(k, v); err != nil {
			return err
		}
	}

	return c.End()
}

func encodeReflectStruct(rv reflect.Value, s Serializer, opts *Options, depth int) error {
	info := getStructInfo(rv.Type(), opts.Tag)

	// omitempty fields are resolved before the struct header so the
	// field count hint is exact.
	type member struct {
		name string
		v    reflect.Value
	}
	members := make([]member, 0, len(info.fields))
	for _, f := range info.fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// Nil embedded pointer: treat its fields as absent.
			continue
		}
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		members = append(members, member{name: f.name, v: fv})
	}

	c, err := s.Struct(rv.Type().Name(), len(members))
	if err != nil {
		return err
	}

	for _, m := range members {
		elem := reflectElem{v: m.v, opts: opts, depth: depth + 1}
		if err := c.Field(m.name, elem); err != nil {
			return err
		}
	}

	return c.End()
}
