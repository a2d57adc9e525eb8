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
	"github.com/consensys/go-modelkit/pkg/expr"
)

// Constraint is a non-indexed (singleton) constraint: a container of at most
// one entry.  Before construction every accessor fails; after construction
// but before a value is assigned the container is "empty" and accessors still
// fail, with a distinct error.  Only once a value is assigned does it behave
// as a container of size one.
type Constraint struct {
	name string
	rule NullaryRule
	// The single entry, or nil whilst empty.
	entry *constraint.Entry
	//
	constructed bool
}

// NewConstraint declares an empty singleton constraint within the given
// model; a value is assigned later via SetValue.
func NewConstraint(m *Model, name string) (*Constraint, error) {
	return NewConstraintRule(m, name, nil)
}

// NewConstraintRule declares a singleton constraint whose value is produced
// by a rule at construction time.  A rule returning Skip leaves the
// constraint empty.
func NewConstraintRule(m *Model, name string, rule NullaryRule) (*Constraint, error) {
	c := &Constraint{name: name, rule: rule}
	//
	if err := m.register(c); err != nil {
		return nil, err
	}
	//
	return c, nil
}

// Name implementation for Component interface.
func (p *Constraint) Name() string {
	return p.name
}

// Constructed implementation for Component interface.
func (p *Constraint) Constructed() bool {
	return p.constructed
}

// Construct implementation for Component interface.  Idempotent.
func (p *Constraint) Construct(m *Model) error {
	if p.constructed {
		return nil
	}
	//
	p.constructed = true
	//
	if p.rule == nil {
		return nil
	}
	//
	result := p.rule(m)
	//
	if result == Skip {
		// Constructed, but empty.
		return nil
	} else if result == End {
		return fmt.Errorf("constraint %q: End is only valid in a list-style container", p.name)
	}
	//
	entry, err := constraint.Normalize(result)
	if err != nil {
		return fmt.Errorf("constraint %q: %w", p.name, err)
	}
	//
	p.entry = entry
	//
	return nil
}

// Dim returns the number of declared index dimensions, which is zero for a
// singleton.
func (p *Constraint) Dim() uint {
	return 0
}

// Len returns 0 whilst this constraint is empty, and 1 once a value has been
// assigned.
func (p *Constraint) Len() int {
	if p.entry == nil {
		return 0
	}
	//
	return 1
}

// SetValue normalises the given relational description and installs it as the
// value of this constraint, replacing any previous entry wholesale.
func (p *Constraint) SetValue(form any) error {
	if !p.constructed {
		return fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	if form == Skip || form == End {
		return fmt.Errorf("constraint %q: cannot assign sentinel %v as a value", p.name, form)
	}
	//
	entry, err := constraint.Normalize(form)
	if err != nil {
		return fmt.Errorf("constraint %q: %w", p.name, err)
	}
	//
	p.entry = entry
	//
	return nil
}

// Entry returns the canonical record of this constraint, distinguishing the
// unconstructed and empty failure cases.
func (p *Constraint) Entry() (*constraint.Entry, error) {
	if !p.constructed {
		return nil, fmt.Errorf("constraint %q %w", p.name, ErrNotConstructed)
	}
	//
	if p.entry == nil {
		return nil, fmt.Errorf("constraint %q %w", p.name, ErrEmptyConstraint)
	}
	//
	return p.entry, nil
}

// Body returns the variable-bearing body expression.
func (p *Constraint) Body() (expr.Term, error) {
	entry, err := p.Entry()
	if err != nil {
		return nil, err
	}
	//
	return entry.Body, nil
}

// Lower returns the lower bound expression (nil when unbounded below).
func (p *Constraint) Lower() (expr.Term, error) {
	entry, err := p.Entry()
	if err != nil {
		return nil, err
	}
	//
	return entry.Lower, nil
}

// Upper returns the upper bound expression (nil when unbounded above).
func (p *Constraint) Upper() (expr.Term, error) {
	entry, err := p.Entry()
	if err != nil {
		return nil, err
	}
	//
	return entry.Upper, nil
}

// Equality indicates whether this is an equality constraint.
func (p *Constraint) Equality() (bool, error) {
	entry, err := p.Entry()
	if err != nil {
		return false, err
	}
	//
	return entry.Equality, nil
}

// StrictLower indicates whether the lower bound is strict.
func (p *Constraint) StrictLower() (bool, error) {
	entry, err := p.Entry()
	if err != nil {
		return false, err
	}
	//
	return entry.StrictLower, nil
}

// StrictUpper indicates whether the upper bound is strict.
func (p *Constraint) StrictUpper() (bool, error) {
	entry, err := p.Entry()
	if err != nil {
		return false, err
	}
	//
	return entry.StrictUpper, nil
}

// Value evaluates the body of this constraint.
func (p *Constraint) Value() (float64, error) {
	entry, err := p.Entry()
	if err != nil {
		return 0, err
	}
	//
	return entry.Value()
}
