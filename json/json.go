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

// Package json is a JSON backend for the serde protocol.
//
// The package implements the format-native interfaces of
// rivaas.dev/serde over JSON text: [Encoder] writes one value to an
// io.Writer, [Decoder] reads one value from a byte slice using the
// standard library's token stream. JSON is self-describing, so the
// decoder honors DecodeAny and treats most shape hints as a type check
// performed by the visitor.
//
// Data model mapping:
//   - none, unit, and unit structs encode as null
//   - byte sequences encode as arrays of integers
//   - runes encode as one-character strings
//   - unit variants encode as "variant"; newtype, tuple, and struct
//     variants as {"variant": ...}
//   - map keys must serialize as strings or integers
//
// Example:
//
//	user, err := json.JSON[User](body)
package json

import (
	"bytes"

	"rivaas.dev/serde"
)

// JSON binds JSON bytes to type T through the erased protocol.
//
// Example:
//
//	user, err := json.JSON[User](body)
//
//	// With options
//	user, err := json.JSON[User](body, serde.WithTag("json"))
func JSON[T any](body []byte, opts ...serde.Option) (T, error) {
	var result T
	if err := NewDeserializer(body).Any(serde.Assign(&result, opts...)); err != nil {
		return result, err
	}

	return result, nil
}

// Marshal encodes an arbitrary Go value as JSON text, driving the full
// protocol through [serde.Reflect].
func Marshal(v any, opts ...serde.Option) ([]byte, error) {
	var buf bytes.Buffer
	s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
	if err := serde.Reflect(v, opts...).SerializeInto(s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes JSON text into ptr, which must be a non-nil pointer.
func Unmarshal(data []byte, ptr any, opts ...serde.Option) error {
	return NewDeserializer(data).Any(serde.Assign(ptr, opts...))
}

// NewDeserializer wraps one JSON document as an erased
// [serde.Deserializer].
func NewDeserializer(data []byte) serde.Deserializer {
	return serde.NewDeserializer[serde.Unit](NewDecoder[serde.Unit](data))
}
