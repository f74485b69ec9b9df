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

package json

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/serde"
)

// sumVisitor folds a sequence of integers so decoding produces no
// per-element results of its own.
type sumVisitor struct {
	serde.TypedVisitorBase[int64]
}

func (sumVisitor) Expecting() string { return "a sequence of integers" }

func (sumVisitor) Seq(a serde.SeqAccess) (int64, error) {
	var total int64
	for {
		n, ok, err := serde.NextElement[int64](a, serde.IntVisitor[int64]{})
		if err != nil {
			return 0, err
		}
		if !ok {
			return total, nil
		}
		total += n
	}
}

func intArray(n int) []byte {
	body := []byte{'['}
	for i := 0; i < n; i++ {
		if i > 0 {
			body = append(body, ',')
		}
		body = strconv.AppendInt(body, int64(i), 10)
	}
	return append(body, ']')
}

// The erased decode path pays a fixed adapter-construction cost and
// nothing per element: its allocation overhead over direct generic
// decoding must not grow with the input.
//
// Not parallel: AllocsPerRun reads global allocation counters.
func TestDecodeAllocationOverhead(t *testing.T) {
	measure := func(body []byte) (direct, erased float64) {
		direct = testing.AllocsPerRun(100, func() {
			if _, err := NewDecoder[int64](body).DecodeSeq(sumVisitor{}); err != nil {
				t.Fatal(err)
			}
		})
		erased = testing.AllocsPerRun(100, func() {
			if _, err := serde.Deserialize[int64](NewDeserializer(body), sumVisitor{}); err != nil {
				t.Fatal(err)
			}
		})
		return direct, erased
	}

	smallDirect, smallErased := measure(intArray(10))
	bigDirect, bigErased := measure(intArray(1000))

	smallExtra := smallErased - smallDirect
	bigExtra := bigErased - bigDirect

	require.GreaterOrEqual(t, smallExtra, float64(0))
	assert.Equal(t, smallExtra, bigExtra,
		"erased overhead grew with element count: %v vs %v", smallExtra, bigExtra)
	assert.LessOrEqual(t, smallExtra, float64(8),
		"erased overhead exceeds adapter construction: %v allocs", smallExtra)
}
