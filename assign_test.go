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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type assignServer struct {
	Host  string            `serde:"host"`
	Port  uint16            `serde:"port"`
	Debug bool              `serde:"debug"`
	Tags  []string          `serde:"tags"`
	Meta  map[string]int    `serde:"meta"`
	Note  *string           `serde:"note"`
	TLS   assignTLS         `serde:"tls"`
}

type assignTLS struct {
	Cert string `serde:"cert"`
	Key  string `serde:"key"`
}

func TestAssignStruct(t *testing.T) {
	t.Parallel()

	tree := []entry{
		{key: "host", val: "localhost"},
		{key: "port", val: int64(8080)},
		{key: "debug", val: true},
		{key: "tags", val: []any{"a", "b"}},
		{key: "meta", val: []entry{{key: "retries", val: int64(3)}}},
		{key: "note", val: "present"},
		{key: "tls", val: []entry{{key: "cert", val: "c.pem"}, {key: "key", val: "k.pem"}}},
	}

	var got assignServer
	require.NoError(t, memDeserializer{v: tree}.Any(Assign(&got)))

	note := "present"
	assert.Equal(t, assignServer{
		Host:  "localhost",
		Port:  8080,
		Debug: true,
		Tags:  []string{"a", "b"},
		Meta:  map[string]int{"retries": 3},
		Note:  &note,
		TLS:   assignTLS{Cert: "c.pem", Key: "k.pem"},
	}, got)
}

func TestAssignNilClearsPointer(t *testing.T) {
	t.Parallel()

	note := "old"
	got := assignServer{Note: &note}
	tree := []entry{{key: "note", val: nil}}
	require.NoError(t, memDeserializer{v: tree}.Any(Assign(&got)))
	assert.Nil(t, got.Note)
}

func TestAssignUnknownFieldIgnoredByDefault(t *testing.T) {
	t.Parallel()

	tree := []entry{
		{key: "bogus", val: []any{int64(1), int64(2)}},
		{key: "host", val: "h"},
	}

	var got assignServer
	require.NoError(t, memDeserializer{v: tree}.Any(Assign(&got)))
	assert.Equal(t, "h", got.Host)
}

func TestAssignUnknownFieldError(t *testing.T) {
	t.Parallel()

	tree := []entry{{key: "bogus", val: int64(1)}}

	var got assignServer
	err := memDeserializer{v: tree}.Any(Assign(&got, WithUnknownFieldPolicy(UnknownError)))

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindUnknownField, serr.Kind())
}

func TestAssignDuplicateField(t *testing.T) {
	t.Parallel()

	tree := []entry{
		{key: "host", val: "a"},
		{key: "host", val: "b"},
	}

	var got assignServer
	err := memDeserializer{v: tree}.Any(Assign(&got))

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindDuplicateField, serr.Kind())
}

func TestAssignOverflow(t *testing.T) {
	t.Parallel()

	var small int8
	err := memDeserializer{v: int64(300)}.Any(Assign(&small))

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindInvalidValue, serr.Kind())

	var u uint8
	err = memDeserializer{v: int64(-1)}.Any(Assign(&u))
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindInvalidValue, serr.Kind())
}

func TestAssignArray(t *testing.T) {
	t.Parallel()

	t.Run("exact", func(t *testing.T) {
		t.Parallel()

		var got [3]int
		require.NoError(t, memDeserializer{v: []any{int64(1), int64(2), int64(3)}}.Any(Assign(&got)))
		assert.Equal(t, [3]int{1, 2, 3}, got)
	})

	t.Run("short input leaves rest zero", func(t *testing.T) {
		t.Parallel()

		got := [3]int{9, 9, 9}
		require.NoError(t, memDeserializer{v: []any{int64(1)}}.Any(Assign(&got)))
		assert.Equal(t, [3]int{1, 9, 9}, got)
	})

	t.Run("too many elements", func(t *testing.T) {
		t.Parallel()

		var got [2]int
		err := memDeserializer{v: []any{int64(1), int64(2), int64(3)}}.Any(Assign(&got))

		var serr *Error
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, KindInvalidLength, serr.Kind())
	})
}

func TestAssignAny(t *testing.T) {
	t.Parallel()

	tree := []entry{
		{key: "n", val: int64(1)},
		{key: "list", val: []any{"x", true}},
	}

	var got any
	require.NoError(t, memDeserializer{v: tree}.Any(Assign(&got)))
	assert.Equal(t, map[string]any{
		"n":    int64(1),
		"list": []any{"x", true},
	}, got)
}

func TestAssignBytes(t *testing.T) {
	t.Parallel()

	var b []byte
	require.NoError(t, memDeserializer{v: []byte{1, 2}}.Any(Assign(&b)))
	assert.Equal(t, []byte{1, 2}, b)

	// Strings assign into byte slices.
	require.NoError(t, memDeserializer{v: "hi"}.Any(Assign(&b)))
	assert.Equal(t, []byte("hi"), b)
}

func TestAssignTypeMismatch(t *testing.T) {
	t.Parallel()

	var n int
	err := memDeserializer{v: "not a number"}.Any(Assign(&n))

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindInvalidValue, serr.Kind())
}

func TestAssignRequiresPointer(t *testing.T) {
	t.Parallel()

	err := memDeserializer{v: int64(1)}.Any(Assign(42))

	var serr *Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, KindOther, serr.Kind())
}

// Reflect and Assign are inverses over the in-memory backend fakes:
// what one produces the other reconstructs.
func TestReflectAssignRoundTrip(t *testing.T) {
	t.Parallel()

	note := "keep"
	in := assignServer{
		Host: "example.com",
		Port: 443,
		Tags: []string{"edge", "tls"},
		Meta: map[string]int{"a": 1, "b": 2},
		Note: &note,
		TLS:  assignTLS{Cert: "cert", Key: "key"},
	}

	tree, err := toTree(Reflect(in))
	require.NoError(t, err)

	var out assignServer
	require.NoError(t, memDeserializer{v: tree}.Any(Assign(&out)))
	assert.Equal(t, in, out)
}
