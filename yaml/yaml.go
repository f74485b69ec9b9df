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

// Package yaml provides a YAML backend for the serde protocol, built on
// gopkg.in/yaml.v3's node trees.
//
// Unlike the stream-writing backends, the encoder here produces
// *yaml.Node: it implements serde.Encoder with that output type, and a
// completed encode yields a node tree the caller can attach anchors and
// comments to before rendering. [Marshal] is the shortcut that renders
// the tree to text immediately.
//
// Data model mapping:
//   - none, unit, and unit structs encode as !!null
//   - byte sequences encode as !!binary (base64)
//   - runes encode as one-character strings
//   - unit variants encode as the bare variant name
//   - other variants encode as a one-entry mapping {name: data}
package yaml

import (
	"gopkg.in/yaml.v3"

	"rivaas.dev/serde"
)

// YAML decodes one YAML document from body into T.
//
//	cfg, err := yaml.YAML[Config](body)
func YAML[T any](body []byte, opts ...serde.Option) (T, error) {
	var result T
	d, err := NewDeserializer(body)
	if err != nil {
		return result, err
	}
	if err := d.Any(serde.Assign(&result, opts...)); err != nil {
		return result, err
	}

	return result, nil
}

// Marshal encodes an arbitrary Go value as YAML text, driving the full
// protocol through [serde.Reflect].
func Marshal(v any, opts ...serde.Option) ([]byte, error) {
	node, err := MarshalNode(v, opts...)
	if err != nil {
		return nil, err
	}

	out, err := yaml.Marshal(node)
	if err != nil {
		return nil, serde.WrapError(err)
	}
	return out, nil
}

// MarshalNode encodes an arbitrary Go value as a YAML node tree.
func MarshalNode(v any, opts ...serde.Option) (*yaml.Node, error) {
	e := NewEncoder()
	s := serde.NewSerializer[*yaml.Node](e)
	if err := serde.Reflect(v, opts...).SerializeInto(s); err != nil {
		return nil, err
	}

	return e.Result(), nil
}

// Unmarshal decodes one YAML document into ptr, which must be a non-nil
// pointer.
func Unmarshal(data []byte, ptr any, opts ...serde.Option) error {
	d, err := NewDeserializer(data)
	if err != nil {
		return err
	}
	return d.Any(serde.Assign(ptr, opts...))
}

// NewDeserializer parses one YAML document and wraps it as an erased
// [serde.Deserializer].
func NewDeserializer(data []byte) (serde.Deserializer, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, serde.WrapError(err)
	}
	return NodeDeserializer(&doc), nil
}

// NodeDeserializer wraps an already-parsed node tree as an erased
// [serde.Deserializer].
func NodeDeserializer(n *yaml.Node) serde.Deserializer {
	return serde.NewDeserializer[serde.Unit](NewDecoder[serde.Unit](n))
}
