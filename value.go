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

// Value is the erased "serialize me" capability: a borrowed handle to an
// arbitrary serializable value, exposing exactly one operation. A Value is
// scoped to the encode call it is passed to and must not be retained by a
// Serializer beyond that call.
//
// Hand-written implementations drive the Serializer directly; arbitrary Go
// values are wrapped with [Reflect].
type Value interface {
	// SerializeInto encodes the value into s.
	SerializeInto(s Serializer) error
}

// ValueFunc adapts a function to the [Value] interface.
type ValueFunc func(s Serializer) error

// SerializeInto calls f(s).
func (f ValueFunc) SerializeInto(s Serializer) error {
	return f(s)
}

// Bool wraps a bool as a [Value].
func Bool(v bool) Value {
	return ValueFunc(func(s Serializer) error { return s.Bool(v) })
}

// Int64 wraps an int64 as a [Value].
func Int64(v int64) Value {
	return ValueFunc(func(s Serializer) error { return s.Int64(v) })
}

// Uint64 wraps a uint64 as a [Value].
func Uint64(v uint64) Value {
	return ValueFunc(func(s Serializer) error { return s.Uint64(v) })
}

// Float64 wraps a float64 as a [Value].
func Float64(v float64) Value {
	return ValueFunc(func(s Serializer) error { return s.Float64(v) })
}

// String wraps a string as a [Value].
func String(v string) Value {
	return ValueFunc(func(s Serializer) error { return s.String(v) })
}

// Bytes wraps a byte slice as a [Value].
func Bytes(v []byte) Value {
	return ValueFunc(func(s Serializer) error { return s.Bytes(v) })
}

// Null is the unit [Value].
var Null Value = ValueFunc(func(s Serializer) error { return s.Unit() })
