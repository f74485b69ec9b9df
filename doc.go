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

// Package serde is a dynamic-dispatch bridge for a generic,
// format-agnostic serialization protocol.
//
// The native protocol is generic: encoding backends implement
// [Encoder] parameterized by their output type, and decoding flows
// through [Decoder] and [TypedVisitor] parameterized by the type being
// constructed. Generic interfaces cannot cross a runtime-polymorphism
// boundary directly, so this package defines an erased counterpart for
// every native interface ([Serializer], [Deserializer], [Visitor], the
// compound serializers, and the seq/map/enum access objects) together
// with adapters that convert losslessly in both directions.
//
// The core defines no wire format. Concrete backends live in the
// subpackages [rivaas.dev/serde/json], [rivaas.dev/serde/msgpack], and
// [rivaas.dev/serde/yaml], and any type implementing [Encoder] or
// [Decoder] plugs in the same way.
//
// # Encoding
//
// Wrap a backend encoder with [NewSerializer] and drive it with a
// [Value]:
//
//	enc := json.NewEncoder(&buf)
//	err := serde.Reflect(user).SerializeInto(serde.NewSerializer[serde.Unit](enc))
//
// The reverse adapter [AsEncoder] lets an erased serializer sit anywhere
// code expects the generic interface. The backend's output value is
// erased to [Unit]; callers that need it keep their reference to the
// concrete encoder.
//
// # Decoding
//
// Wrap a backend decoder with [NewDeserializer] and supply an erased
// [Visitor] for the destination:
//
//	dec := serde.NewDeserializer[serde.Unit](json.NewDecoder[serde.Unit](data))
//	var user User
//	err := dec.Any(serde.Assign(&user))
//
// Decoded values are constructed in place: every decode operation calls
// exactly one visitor method synchronously while the backend still holds
// the raw data, and typed results travel through the [Visit] slot into
// the destination the caller owns. No intermediate "any" box is created
// and no downcast is needed.
//
// # Errors
//
// Failures on either side of the boundary are carried by [Error]: a
// display message plus a coarse [Kind] from a closed set. Backend errors
// are classified best-effort by [WrapError]; they are never swallowed,
// and the first failure aborts the traversal.
//
// # Build tiers
//
// Building with the serde_minimal tag replaces error message formatting
// with a fixed placeholder. Kinds, classification, and every other
// behavior are identical in both tiers.
package serde
