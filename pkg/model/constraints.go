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
	"reflect"

	"github.com/consensys/go-modelkit/pkg/constraint"
	"github.com/consensys/go-modelkit/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Constraints is an indexed constraint container over a fixed index domain.
// Entries are held in insertion order; an index the rule skipped is simply
// absent.  The rule is bound at declaration, which makes Construct idempotent
// by construction (there is no way to re-construct with a different rule).
type Constraints[K comparable] struct {
	name   string
	dim    uint
	domain []K
	rule   Rule[K]
	// Populated indices, in insertion order.
	keys    []K
	entries map[K]*constraint.Entry
	//
	constructed bool
}

// NewConstraints declares an indexed constraint container within the given
// model, over a fixed index domain.  The rule may be nil, in which case the
// container constructs empty and is populated by explicit Set calls.  The
// number of index dimensions is derived from the index type: a struct index
// (e.g. util.Pair) declares one dimension per field, anything else declares
// one.
func NewConstraints[K comparable](m *Model, name string, domain []K, rule Rule[K]) (*Constraints[K], error) {
	c := &Constraints[K]{
		name:   name,
		dim:    indexDimension[K](),
		domain: domain,
		rule:   rule,
	}
	//
	if err := m.register(c); err != nil {
		return nil, err
	}
	//
	return c, nil
}

// Name implementation for Component interface.
func (p *Constraints[K]) Name() string {
	return p.name
}

// Constructed implementation for Component interface.
func (p *Constraints[K]) Constructed() bool {
	return p.constructed
}

// Construct drives the rule across the index domain, normalising every
// produced relational description into a canonical entry.  Construction is
// idempotent.  Rule evaluation is strictly sequential and runs to completion
// before the container is usable.
func (p *Constraints[K]) Construct(m *Model) error {
	if p.constructed {
		return nil
	}
	//
	p.entries = make(map[K]*constraint.Entry)
	p.constructed = true
	//
	if p.rule == nil {
		return nil
	}
	//
	for _, index := range p.domain {
		result := p.rule(m, index)
		//
		if result == Skip {
			// Index remains absent from the container.
			continue
		} else if result == End {
			return fmt.Errorf("constraint %s[%v]: End is only valid in a list-style container", p.name, index)
		}
		//
		entry, err := constraint.Normalize(result)
		if err != nil {
			return fmt.Errorf("constraint %s[%v]: %w", p.name, index, err)
		}
		//
		p.insert(index, entry)
	}
	//
	log.Debugf("constructed constraint %q with %d entries", p.name, len(p.keys))
	//
	return nil
}

// Dim returns the number of declared index dimensions, independent of how
// many entries currently exist.
func (p *Constraints[K]) Dim() uint {
	return p.dim
}

// Len returns the number of entries currently held.
func (p *Constraints[K]) Len() int {
	return len(p.keys)
}

// Keys returns an iterator over the currently-populated indices, in insertion
// order.
func (p *Constraints[K]) Keys() util.Iterator[K] {
	return util.NewArrayIterator(p.keys)
}

// Contains indicates whether an entry exists at the given index.
func (p *Constraints[K]) Contains(index K) bool {
	_, ok := p.entries[index]
	return ok
}

// Get returns the entry at the given index.  Accessing an unconstructed
// container fails, as does a missing index.
func (p *Constraints[K]) Get(index K) (*constraint.Entry, error) {
	if !p.constructed {
		return nil, fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	entry, ok := p.entries[index]
	if !ok {
		return nil, fmt.Errorf("constraint %q has no entry at index %v", p.name, index)
	}
	//
	return entry, nil
}

// Set normalises the given relational description and installs it at the
// given index, replacing any existing entry wholesale.
func (p *Constraints[K]) Set(index K, form any) error {
	if !p.constructed {
		return fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	entry, err := constraint.Normalize(form)
	if err != nil {
		return fmt.Errorf("constraint %s[%v]: %w", p.name, index, err)
	}
	//
	p.insert(index, entry)
	//
	return nil
}

// Delete removes the entry at the given index.  This removes the container's
// reference only; shared sub-expressions remain owned by the model.
func (p *Constraints[K]) Delete(index K) error {
	if _, ok := p.entries[index]; !ok {
		return fmt.Errorf("constraint %q has no entry at index %v", p.name, index)
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

func (p *Constraints[K]) insert(index K, entry *constraint.Entry) {
	if _, ok := p.entries[index]; !ok {
		p.keys = append(p.keys, index)
	}
	//
	p.entries[index] = entry
}

// indexDimension derives the number of index dimensions declared by an index
// type: one per field for a struct index, one per element for an array index,
// otherwise one.
func indexDimension[K comparable]() uint {
	var zero K
	//
	t := reflect.TypeOf(zero)
	if t == nil {
		return 1
	}
	//
	switch t.Kind() {
	case reflect.Struct:
		return uint(t.NumField())
	case reflect.Array:
		return uint(t.Len())
	default:
		return 1
	}
}
