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
package model

import (
	"fmt"

	"github.com/consensys/go-modelkit/pkg/constraint"
	"github.com/consensys/go-modelkit/pkg/util"
	log "github.com/sirupsen/logrus"
)

// ConstraintList is a list-style constraint container: its index space is the
// positive integers, assigned sequentially starting at 1.  It is populated
// either by a ListRule (invoked with 1, 2, 3, ... until it returns End), by
// draining an iterator of relational descriptions (exhaustion is equivalent
// to End), or by explicit Add calls.
//
// Skip semantics differ by route: a rule returning Skip leaves its invocation
// number unused (gaps are not reused), whilst Skip passed to Add still
// consumes a sequence number.
type ConstraintList struct {
	name string
	rule ListRule
	// Source iterator for generator-style construction (pulled one value at a
	// time, nothing buffered beyond the pending value).
	source util.Iterator[any]
	// Highest sequence number consumed so far.
	counter int
	// Populated indices, in insertion order.
	keys    []int
	entries map[int]*constraint.Entry
	//
	constructed bool
}

// NewConstraintList declares an empty constraint list within the given model,
// populated by explicit Add calls.
func NewConstraintList(m *Model, name string) (*ConstraintList, error) {
	return newConstraintList(m, name, nil, nil)
}

// NewConstraintListRule declares a constraint list populated at construction
// time by the given rule.
func NewConstraintListRule(m *Model, name string, rule ListRule) (*ConstraintList, error) {
	return newConstraintList(m, name, rule, nil)
}

// NewConstraintListFrom declares a constraint list populated at construction
// time by draining the given iterator, which yields relational descriptions
// or sentinels.  The iterator terminates on End or on natural exhaustion.
func NewConstraintListFrom(m *Model, name string, source util.Iterator[any]) (*ConstraintList, error) {
	return newConstraintList(m, name, nil, source)
}

func newConstraintList(m *Model, name string, rule ListRule, source util.Iterator[any]) (*ConstraintList, error) {
	c := &ConstraintList{name: name, rule: rule, source: source}
	//
	if err := m.register(c); err != nil {
		return nil, err
	}
	//
	return c, nil
}

// Name implementation for Component interface.
func (p *ConstraintList) Name() string {
	return p.name
}

// Constructed implementation for Component interface.
func (p *ConstraintList) Constructed() bool {
	return p.constructed
}

// Construct implementation for Component interface.  Idempotent.
func (p *ConstraintList) Construct(m *Model) error {
	if p.constructed {
		return nil
	}
	//
	p.entries = make(map[int]*constraint.Entry)
	p.constructed = true
	//
	switch {
	case p.rule != nil:
		return p.constructFromRule(m)
	case p.source != nil:
		return p.constructFromSource()
	}
	//
	return nil
}

// constructFromRule invokes the rule with 1, 2, 3, ... until End.  A skipped
// invocation number is not reused: the next real entry lands at the next
// number.
func (p *ConstraintList) constructFromRule(m *Model) error {
	for i := 1; ; i++ {
		result := p.rule(m, i)
		//
		if result == End {
			break
		}
		//
		p.counter = i
		//
		if result == Skip {
			continue
		}
		//
		entry, err := constraint.Normalize(result)
		if err != nil {
			return fmt.Errorf("constraint %s[%d]: %w", p.name, i, err)
		}
		//
		p.insert(i, entry)
	}
	//
	log.Debugf("constructed constraint list %q with %d entries", p.name, len(p.keys))
	//
	return nil
}

// constructFromSource drains the source iterator, one pending value at a
// time.  Every pulled value goes through Add, hence Skip consumes a sequence
// number on this route.
func (p *ConstraintList) constructFromSource() error {
	for p.source.HasNext() {
		result := p.source.Next()
		//
		if result == End {
			break
		}
		//
		if err := p.Add(result); err != nil {
			return err
		}
	}
	//
	log.Debugf("constructed constraint list %q with %d entries", p.name, len(p.keys))
	//
	return nil
}

// Add appends a relational description at the next sequence number.  Passing
// Skip consumes the number without creating an entry.
func (p *ConstraintList) Add(form any) error {
	if !p.constructed {
		return fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	if form == End {
		return fmt.Errorf("constraint %q: End cannot be added as a value", p.name)
	}
	//
	p.counter++
	//
	if form == Skip {
		return nil
	}
	//
	entry, err := constraint.Normalize(form)
	if err != nil {
		return fmt.Errorf("constraint %s[%d]: %w", p.name, p.counter, err)
	}
	//
	p.insert(p.counter, entry)
	//
	return nil
}

// Dim returns the number of index dimensions, which is one for a list.
func (p *ConstraintList) Dim() uint {
	return 1
}

// Len returns the number of entries currently held.
func (p *ConstraintList) Len() int {
	return len(p.keys)
}

// Keys returns an iterator over the currently-populated indices, in insertion
// order.
func (p *ConstraintList) Keys() util.Iterator[int] {
	return util.NewArrayIterator(p.keys)
}

// Contains indicates whether an entry exists at the given index.
func (p *ConstraintList) Contains(index int) bool {
	_, ok := p.entries[index]
	return ok
}

// Get returns the entry at the given index.
func (p *ConstraintList) Get(index int) (*constraint.Entry, error) {
	if !p.constructed {
		return nil, fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	entry, ok := p.entries[index]
	if !ok {
		return nil, fmt.Errorf("constraint %q has no entry at index %d", p.name, index)
	}
	//
	return entry, nil
}

// Set normalises the given relational description and installs it at the
// given index, replacing any existing entry wholesale.
func (p *ConstraintList) Set(index int, form any) error {
	if !p.constructed {
		return fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	entry, err := constraint.Normalize(form)
	if err != nil {
		return fmt.Errorf("constraint %s[%d]: %w", p.name, index, err)
	}
	//
	p.insert(index, entry)
	//
	if index > p.counter {
		p.counter = index
	}
	//
	return nil
}

// Delete removes the entry at the given index.  The sequence number is not
// reused.
func (p *ConstraintList) Delete(index int) error {
	if _, ok := p.entries[index]; !ok {
		return fmt.Errorf("constraint %q has no entry at index %d", p.name, index)
	}
	//
	delete(p.entries, index)
	//
	for i, k := range p.keys {
		if k == index {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
	//
	return nil
}

func (p *ConstraintList) insert(index int, entry *constraint.Entry) {
	if _, ok := p.entries[index]; !ok {
		p.keys = append(p.keys, index)
	}
	//
	p.entries[index] = entry
}
