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

// Package msgpack provides a MessagePack backend for the serde protocol,
// built on github.com/vmihailenco/msgpack's streaming encoder and
// decoder.
//
// Data model mapping:
//   - none, unit, and unit structs encode as nil
//   - byte sequences encode as bin
//   - runes encode as one-character strings
//   - unit variants encode as the bare variant name
//   - other variants encode as a one-entry map {"name": data}
//
// MessagePack arrays and maps carry their length up front, so compound
// encodes with an unknown length hint fail with
// [rivaas.dev/serde.KindInvalidLength].
package msgpack

import (
	"bytes"

	"rivaas.dev/serde"
)

// MsgPack decodes one MessagePack value from body into T.
//
//	cfg, err := msgpack.MsgPack[Config](body)
func MsgPack[T any](body []byte, opts ...serde.Option) (T, error) {
	var result T
	if err := NewDeserializer(body).Any(serde.Assign(&result, opts...)); err != nil {
		return result, err
	}

	return result, nil
}

// Marshal encodes an arbitrary Go value as MessagePack, driving the full
// protocol through [serde.Reflect].
func Marshal(v any, opts ...serde.Option) ([]byte, error) {
	var buf bytes.Buffer
	s := serde.NewSerializer[serde.Unit](NewEncoder(&buf))
	if err := serde.Reflect(v, opts...).SerializeInto(s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into ptr, which must be a non-nil
// pointer.
func Unmarshal(data []byte, ptr any, opts ...serde.Option) error {
	return NewDeserializer(data).Any(serde.Assign(ptr, opts...))
}

// NewDeserializer wraps one MessagePack value as an erased
// [serde.Deserializer].
func NewDeserializer(data []byte) serde.Deserializer {
	return serde.NewDeserializer[serde.Unit](NewDecoder[serde.Unit](data))
}
