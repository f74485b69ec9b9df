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
)

// Assign returns an erased [Visitor] that constructs the decoded value
// directly into ptr, which must be a non-nil pointer. It is the decode
// counterpart of [Reflect] and follows the same mapping and struct tag
// rules.
//
// Unknown struct fields follow the configured [UnknownFieldPolicy]
// (default: ignore). Numeric values are range-checked against the
// destination width and fail with [KindInvalidValue] on overflow.
//
// Example:
//
//	var cfg Config
//	err := dec.Any(serde.Assign(&cfg))
func Assign(ptr any, opts ...Option) Visitor {
	rv := reflect.ValueOf(ptr)
	o := applyOptions(opts)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &assignVisitor{err: NewError(KindOther, "assign target must be a non-nil pointer")}
	}
	return &assignVisitor{dst: rv.Elem(), opts: o}
}

type assignVisitor struct {
	VisitorBase

	dst   reflect.Value
	opts  *Options
	depth int
	err   *Error // Construction error, reported on first use
}

func (a *assignVisitor) child(dst reflect.Value) *assignVisitor {
	return &assignVisitor{dst: dst, opts: a.opts, depth: a.depth + 1}
}

func (a *assignVisitor) Expecting() string {
	if a.err != nil {
		return "a valid assign target"
	}
	return "a value assignable to " + a.dst.Type().String()
}

func (a *assignVisitor) check() error {
	if a.err != nil {
		return a.err
	}
	if a.depth > a.opts.MaxDepth {
		return Errorf(KindOther, "exceeded maximum nesting depth %d", a.opts.MaxDepth)
	}
	return nil
}

// target dereferences pointer destinations, allocating as needed, so a
// present value can land in a *T field.
func (a *assignVisitor) target() reflect.Value {
	dst := a.dst
	for dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		dst = dst.Elem()
	}
	return dst
}

func (a *assignVisitor) mismatch(got string) error {
	return Errorf(KindInvalidValue, "cannot assign %s to %s", got, a.dst.Type())
}

func (a *assignVisitor) VisitBool(v bool) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch {
	case dst.Kind() == reflect.Bool:
		dst.SetBool(v)
	case isAny(dst):
		dst.Set(reflect.ValueOf(v))
	default:
		return a.mismatch("boolean")
	}
	return nil
}

func (a *assignVisitor) VisitInt64(v int64) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if dst.OverflowInt(v) {
			return Errorf(KindInvalidValue, "integer %d overflows %s", v, dst.Type())
		}
		dst.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if v < 0 || dst.OverflowUint(uint64(v)) {
			return Errorf(KindInvalidValue, "integer %d overflows %s", v, dst.Type())
		}
		dst.SetUint(uint64(v))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(v))
	default:
		if isAny(dst) {
			dst.Set(reflect.ValueOf(v))
			return nil
		}
		return a.mismatch("integer")
	}
	return nil
}

func (a *assignVisitor) VisitUint64(v uint64) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch dst.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if dst.OverflowUint(v) {
			return Errorf(KindInvalidValue, "integer %d overflows %s", v, dst.Type())
		}
		dst.SetUint(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v > 1<<63-1 || dst.OverflowInt(int64(v)) {
			return Errorf(KindInvalidValue, "integer %d overflows %s", v, dst.Type())
		}
		dst.SetInt(int64(v))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(v))
	default:
		if isAny(dst) {
			dst.Set(reflect.ValueOf(v))
			return nil
		}
		return a.mismatch("unsigned integer")
	}
	return nil
}

func (a *assignVisitor) VisitFloat64(v float64) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(v)
	default:
		if isAny(dst) {
			dst.Set(reflect.ValueOf(v))
			return nil
		}
		return a.mismatch("floating-point number")
	}
	return nil
}

func (a *assignVisitor) VisitRune(v rune) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch {
	case dst.Kind() == reflect.Int32:
		dst.SetInt(int64(v))
	case dst.Kind() == reflect.String:
		dst.SetString(string(v))
	case isAny(dst):
		dst.Set(reflect.ValueOf(v))
	default:
		return a.mismatch("character")
	}
	return nil
}

func (a *assignVisitor) VisitString(v string) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	switch {
	case dst.Kind() == reflect.String:
		dst.SetString(v)
	case dst.Kind() == reflect.Slice && dst.Type().Elem().Kind() == reflect.Uint8:
		dst.SetBytes([]byte(v))
	case isAny(dst):
		dst.Set(reflect.ValueOf(v))
	default:
		return a.mismatch("string")
	}
	return nil
}

func (a *assignVisitor) VisitBytes(v []byte) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()
	out := make([]byte, len(v))
	copy(out, v)
	switch {
	case dst.Kind() == reflect.Slice && dst.Type().Elem().Kind() == reflect.Uint8:
		dst.SetBytes(out)
	case dst.Kind() == reflect.String:
		dst.SetString(string(v))
	case isAny(dst):
		dst.Set(reflect.ValueOf(out))
	default:
		return a.mismatch("byte sequence")
	}
	return nil
}

func (a *assignVisitor) VisitNone() error {
	if err := a.check(); err != nil {
		return err
	}
	a.dst.Set(reflect.Zero(a.dst.Type()))
	return nil
}

func (a *assignVisitor) VisitUnit() error {
	return a.VisitNone()
}

func (a *assignVisitor) VisitSome(d Deserializer) error {
	if err := a.check(); err != nil {
		return err
	}
	return d.Any(a.child(a.target()))
}

func (a *assignVisitor) VisitNewtypeStruct(d Deserializer) error {
	if err := a.check(); err != nil {
		return err
	}
	return d.Any(a.child(a.target()))
}

func (a *assignVisitor) VisitSeq(acc SeqAccess) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()

	switch dst.Kind() {
	case reflect.Slice:
		n := 0
		if hint := acc.SizeHint(); hint > 0 {
			n = hint
		}
		out := reflect.MakeSlice(dst.Type(), 0, n)
		elemType := dst.Type().Elem()
		for {
			elem := reflect.New(elemType).Elem()
			ok, err := acc.NextElement(a.child(elem))
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			out = reflect.Append(out, elem)
		}
		dst.Set(out)
		return nil

	case reflect.Array:
		i := 0
		for {
			if i >= dst.Len() {
				// Drain check: one extra element is a length error.
				ok, err := acc.NextElement(Ignore)
				if err != nil {
					return err
				}
				if ok {
					return Errorf(KindInvalidLength, "too many elements for %s", dst.Type())
				}
				return nil
			}
			ok, err := acc.NextElement(a.child(dst.Index(i)))
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			i++
		}

	default:
		if isAny(dst) {
			var out []any
			if err := a.child(reflect.ValueOf(&out).Elem()).VisitSeq(acc); err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(out))
			return nil
		}
		return a.mismatch("sequence")
	}
}

func (a *assignVisitor) VisitMap(acc MapAccess) error {
	if err := a.check(); err != nil {
		return err
	}
	dst := a.target()

	switch dst.Kind() {
	case reflect.Map:
		n := 0
		if hint := acc.SizeHint(); hint > 0 {
			n = hint
		}
		out := reflect.MakeMapWithSize(dst.Type(), n)
		keyType := dst.Type().Key()
		valType := dst.Type().Elem()
		for {
			key := reflect.New(keyType).Elem()
			ok, err := acc.NextKey(a.child(key))
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			val := reflect.New(valType).Elem()
			if err := acc.NextValue(a.child(val)); err != nil {
				return err
			}
			out.SetMapIndex(key, val)
		}
		dst.Set(out)
		return nil

	case reflect.Struct:
		return a.visitStruct(dst, acc)

	default:
		if isAny(dst) {
			var out map[string]any
			if err := a.child(reflect.ValueOf(&out).Elem()).VisitMap(acc); err != nil {
				return err
			}
			dst.Set(reflect.ValueOf(out))
			return nil
		}
		return a.mismatch("map")
	}
}

func (a *assignVisitor) visitStruct(dst reflect.Value, acc MapAccess) error {
	info := getStructInfo(dst.Type(), a.opts.Tag)
	seen := make(map[string]bool, len(info.fields))

	for {
		var key string
		ok, err := acc.NextKey(a.child(reflect.ValueOf(&key).Elem()))
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		idx, known := info.byName[key]
		if !known {
			if a.opts.UnknownFields == UnknownError {
				return Errorf(KindUnknownField, "unknown field %q in %s", key, dst.Type())
			}
			if err := acc.NextValue(Ignore); err != nil {
				return err
			}
			continue
		}
		if seen[key] {
			return Errorf(KindDuplicateField, "duplicate field %q in %s", key, dst.Type())
		}
		seen[key] = true

		field := fieldByIndexAlloc(dst, info.fields[idx].index)
		if err := acc.NextValue(a.child(field)); err != nil {
			return err
		}
	}
}

// isAny reports whether dst is an empty interface destination.
func isAny(dst reflect.Value) bool {
	return dst.Kind() == reflect.Interface && dst.NumMethod() == 0
}

// fieldByIndexAlloc walks a field index path, allocating intermediate
// nil embedded pointers so the leaf field is settable.
func fieldByIndexAlloc(rv reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 {
			if rv.Kind() == reflect.Pointer {
				if rv.IsNil() {
					rv.Set(reflect.New(rv.Type().Elem()))
				}
				rv = rv.Elem()
			}
		}
		rv = rv.Field(x)
	}
	return rv
}
