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
	"errors"
	"io"
)

// Kind classifies an [Error] into a closed set of categories that survive
// the erasure boundary. Backends map their native failures onto this set;
// anything that does not fit is reported as [KindOther].
type Kind int

const (
	// KindCustom is a caller-supplied error raised during traversal,
	// for example a domain constraint rejected by a visitor.
	KindCustom Kind = iota

	// KindInvalidValue indicates a value of the wrong type or out of range
	// for the requested shape.
	KindInvalidValue

	// KindInvalidLength indicates a sequence, map, or tuple whose length
	// does not match what the format or caller requires.
	KindInvalidLength

	// KindUnknownField indicates a struct field name the target does not know.
	KindUnknownField

	// KindMissingField indicates a required struct field that was absent.
	KindMissingField

	// KindDuplicateField indicates a struct field that appeared more than once.
	KindDuplicateField

	// KindUnknownVariant indicates an enum variant name the target does not know.
	KindUnknownVariant

	// KindEOF indicates unexpected end of input.
	KindEOF

	// KindOther is a backend failure that fits no other category.
	KindOther
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindCustom:
		return "custom"
	case KindInvalidValue:
		return "invalid value"
	case KindInvalidLength:
		return "invalid length"
	case KindUnknownField:
		return "unknown field"
	case KindMissingField:
		return "missing field"
	case KindDuplicateField:
		return "duplicate field"
	case KindUnknownVariant:
		return "unknown variant"
	case KindEOF:
		return "unexpected end of input"
	default:
		return "other"
	}
}

// Error is the backend-agnostic error that crosses the erasure boundary.
// It carries a display message and a coarse [Kind]; nothing richer is
// guaranteed to survive erasure. The wrapped cause, when present, is
// reachable through [errors.Unwrap] for callers that statically know
// which backend produced it.
//
// Use [errors.As] to inspect the kind regardless of wrapping:
//
//	var serr *serde.Error
//	if errors.As(err, &serr) && serr.Kind() == serde.KindEOF {
//	    // ran out of input
//	}
//
// An Error is immutable once constructed.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// NewError returns an error with the given kind and message.
//
// Under the serde_minimal build tag the message is replaced with a fixed
// placeholder; the kind is preserved in both tiers.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: errorMessage("%s", msg)}
}

// Errorf returns an error with the given kind and a formatted message.
//
// Under the serde_minimal build tag formatting is skipped and the message
// is a fixed placeholder.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: errorMessage(format, args...)}
}

// WrapError converts an arbitrary backend error into an [Error].
//
// Classification is best effort: an existing [*Error] is returned as is,
// [io.EOF] and [io.ErrUnexpectedEOF] map to [KindEOF], and everything else
// becomes [KindOther]. The original error is retained as the cause.
func WrapError(err error) *Error {
	if err == nil {
		return nil
	}
	var serr *Error
	if errors.As(err, &serr) {
		return serr
	}
	kind := KindOther
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		kind = KindEOF
	}
	return &Error{kind: kind, msg: errorMessage("%v", err), err: err}
}

// Kind returns the error's category.
func (e *Error) Kind() Kind {
	return e.kind
}

// Error returns the display message.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the wrapped backend error, if any.
func (e *Error) Unwrap() error {
	return e.err
}
