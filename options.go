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

// UnknownFieldPolicy defines how [Assign] handles map keys that match no
// field of the target struct.
type UnknownFieldPolicy int

const (
	// UnknownIgnore silently skips unknown fields.
	// This is the default policy.
	UnknownIgnore UnknownFieldPolicy = iota

	// UnknownError fails with [KindUnknownField] on the first unknown field.
	UnknownError
)

// Limits for the reflection bridge.
const (
	// DefaultMaxDepth is the default maximum nesting depth for reflected
	// values. It bounds recursion on cyclic or maliciously deep data.
	DefaultMaxDepth = 32

	// DefaultTag is the struct tag consulted by [Reflect] and [Assign].
	DefaultTag = "serde"
)

// Options configures the reflection bridge ([Reflect] and [Assign]).
//
// Options are applied per call via functional options. Option functions
// are safe to reuse across goroutines.
type Options struct {
	// Tag is the struct tag used for field names. Default "serde".
	Tag string

	// MaxDepth is the maximum nesting depth. Default DefaultMaxDepth.
	MaxDepth int

	// SortKeys encodes string-keyed maps in sorted key order for
	// deterministic output. Default true.
	SortKeys bool

	// UnknownFields is the policy for unknown struct fields during Assign.
	UnknownFields UnknownFieldPolicy
}

// Option configures the reflection bridge.
type Option func(*Options)

// WithTag sets the struct tag consulted for field names.
//
// Example:
//
//	serde.Reflect(v, serde.WithTag("json"))
func WithTag(tag string) Option {
	return func(o *Options) {
		o.Tag = tag
	}
}

// WithMaxDepth sets the maximum nesting depth for reflected values.
// When exceeded, the operation fails. The default is DefaultMaxDepth (32).
func WithMaxDepth(depth int) Option {
	return func(o *Options) {
		o.MaxDepth = depth
	}
}

// WithUnsortedKeys disables sorted-key encoding of string-keyed maps.
// Output order then follows Go's map iteration order.
func WithUnsortedKeys() Option {
	return func(o *Options) {
		o.SortKeys = false
	}
}

// WithUnknownFieldPolicy sets how [Assign] handles unknown struct fields.
//
// Example:
//
//	serde.Assign(&cfg, serde.WithUnknownFieldPolicy(serde.UnknownError))
func WithUnknownFieldPolicy(policy UnknownFieldPolicy) Option {
	return func(o *Options) {
		o.UnknownFields = policy
	}
}

func applyOptions(opts []Option) *Options {
	o := &Options{
		Tag:      DefaultTag,
		MaxDepth: DefaultMaxDepth,
		SortKeys: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}
