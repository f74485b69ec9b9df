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

//go:build serde_minimal

package serde

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Under the serde_minimal tag every error message degrades to the fixed
// placeholder while the kind survives untouched.
func TestMinimalTierMessages(t *testing.T) {
	t.Parallel()

	err := Errorf(KindInvalidValue, "expected %s, got %s", "a", "b")
	assert.Equal(t, Placeholder, err.Error())
	assert.Equal(t, KindInvalidValue, err.Kind())

	wrapped := WrapError(io.ErrUnexpectedEOF)
	var serr *Error
	require.ErrorAs(t, wrapped, &serr)
	assert.Equal(t, KindEOF, serr.Kind())
	assert.Equal(t, Placeholder, serr.Error())
}
