// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArrayIterator(t *testing.T) {
	iter := NewArrayIterator([]int{1, 2, 3})
	//
	assert.Equal(t, []int{1, 2, 3}, Collect(iter))
	assert.False(t, iter.HasNext())
	// Empty array
	assert.Empty(t, Collect(NewArrayIterator([]int{})))
}

func TestFuncIterator(t *testing.T) {
	i := 0
	iter := NewFuncIterator(func() (int, bool) {
		if i == 3 {
			return 0, false
		}
		//
		i++
		//
		return i, true
	})
	//
	assert.Equal(t, []int{1, 2, 3}, Collect(iter))
	assert.False(t, iter.HasNext())
}

// The generator is pulled lazily, one pending item at a time.
func TestFuncIteratorLazy(t *testing.T) {
	calls := 0
	iter := NewFuncIterator(func() (int, bool) {
		calls++
		return calls, true
	})
	// HasNext pulls exactly one item, however often it is asked.
	assert.True(t, iter.HasNext())
	assert.True(t, iter.HasNext())
	assert.Equal(t, 1, calls)
	//
	assert.Equal(t, 1, iter.Next())
	assert.Equal(t, 2, iter.Next())
	assert.Equal(t, 3, calls)
}

func TestFuncIteratorExhausted(t *testing.T) {
	iter := NewFuncIterator(func() (int, bool) {
		return 0, false
	})
	//
	assert.False(t, iter.HasNext())
	assert.Panics(t, func() { iter.Next() })
}

func TestOption(t *testing.T) {
	some := Some(5)
	none := None[int]()
	//
	assert.True(t, some.HasValue())
	assert.False(t, some.IsEmpty())
	assert.Equal(t, 5, some.Unwrap())
	assert.Equal(t, 5, some.UnwrapOr(0))
	//
	assert.False(t, none.HasValue())
	assert.True(t, none.IsEmpty())
	assert.Equal(t, 0, none.UnwrapOr(0))
	assert.Panics(t, func() { none.Unwrap() })
}

func TestPair(t *testing.T) {
	p := NewPair(1, "a")
	//
	assert.Equal(t, 1, p.Left)
	assert.Equal(t, "a", p.Right)
	// Pairs are comparable, hence usable as map keys.
	m := map[Pair[int, string]]bool{p: true}
	assert.True(t, m[NewPair(1, "a")])
}
