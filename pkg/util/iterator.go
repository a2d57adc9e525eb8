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

// Iterator provides a pull-based mechanism for traversing a sequence of items,
// one at a time.  Iteration is strictly sequential and nothing is buffered
// beyond the pending item.
type Iterator[T any] interface {
	// HasNext checks whether or not there are any items remaining to visit.
	HasNext() bool

	// Next returns the next item, and advances the iterator.
	Next() T
}

// Collect allocates a new array containing all items of this iterator.  This
// drains the iterator.
func Collect[T any](iter Iterator[T]) []T {
	items := make([]T, 0)
	//
	for iter.HasNext() {
		items = append(items, iter.Next())
	}
	//
	return items
}

// ===============================================================
// Array Iterator
// ===============================================================

type arrayIterator[T any] struct {
	items []T
	index uint
}

// NewArrayIterator construct an iterator over an array of items.
func NewArrayIterator[T any](items []T) Iterator[T] {
	return &arrayIterator[T]{items, 0}
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *arrayIterator[T]) HasNext() bool {
	return p.index < uint(len(p.items))
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *arrayIterator[T]) Next() T {
	next := p.items[p.index]
	p.index++

	return next
}

// ===============================================================
// Func Iterator
// ===============================================================

type funcIterator[T any] struct {
	// Generator function.  Returns the next item, along with a flag indicating
	// whether the item is valid (false signals exhaustion).
	fn func() (T, bool)
	// Pending item (if any)
	pending Option[T]
	// Indicates whether the generator is exhausted
	done bool
}

// NewFuncIterator constructs an iterator backed by a generator function.  The
// function is called lazily, one item at a time; once it reports exhaustion it
// is never called again.
func NewFuncIterator[T any](fn func() (T, bool)) Iterator[T] {
	return &funcIterator[T]{fn, None[T](), false}
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *funcIterator[T]) HasNext() bool {
	if p.pending.HasValue() {
		return true
	} else if p.done {
		return false
	}
	// Pull the next item from the generator
	item, ok := p.fn()
	//
	if !ok {
		p.done = true
		return false
	}
	//
	p.pending = Some(item)
	//
	return true
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *funcIterator[T]) Next() T {
	if !p.HasNext() {
		panic("iterator exhausted")
	}
	//
	item := p.pending.Unwrap()
	p.pending = None[T]()
	//
	return item
}
