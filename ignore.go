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

// Ignore is an erased [Visitor] that accepts any shape and discards it,
// draining compound values completely. It backs skipped struct fields in
// [Assign] and is useful for implementing Deserializer.IgnoredAny.
var Ignore Visitor = ignoreVisitor{}

type ignoreVisitor struct{}

func (ignoreVisitor) Expecting() string          { return "any value" }
func (ignoreVisitor) VisitBool(bool) error       { return nil }
func (ignoreVisitor) VisitInt64(int64) error     { return nil }
func (ignoreVisitor) VisitUint64(uint64) error   { return nil }
func (ignoreVisitor) VisitFloat64(float64) error { return nil }
func (ignoreVisitor) VisitRune(rune) error       { return nil }
func (ignoreVisitor) VisitString(string) error   { return nil }
func (ignoreVisitor) VisitBytes([]byte) error    { return nil }
func (ignoreVisitor) VisitNone() error           { return nil }
func (ignoreVisitor) VisitUnit() error           { return nil }

func (v ignoreVisitor) VisitSome(d Deserializer) error {
	return d.IgnoredAny(v)
}

func (v ignoreVisitor) VisitNewtypeStruct(d Deserializer) error {
	return d.IgnoredAny(v)
}

func (v ignoreVisitor) VisitSeq(a SeqAccess) error {
	for {
		ok, err := a.NextElement(v)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
}

func (v ignoreVisitor) VisitMap(a MapAccess) error {
	for {
		ok, err := a.NextKey(v)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := a.NextValue(v); err != nil {
			return err
		}
	}
}

// VisitEnum consumes the variant name and drains the payload as a
// newtype, whatever shape the access holds.
func (v ignoreVisitor) VisitEnum(a EnumAccess) error {
	va, err := a.Variant(v)
	if err != nil {
		return err
	}
	return va.NewtypeVariant(v)
}
