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
	"errors"
	"fmt"

	"github.com/consensys/go-modelkit/pkg/expr"
	log "github.com/sirupsen/logrus"
)

// Component is a named model component with an explicit construction step.
// Components are constructed exactly once; construction runs any attached
// rule to completion before the component is usable.
type Component interface {
	// Name returns the name under which this component is registered.
	Name() string
	// Constructed indicates whether construction has happened yet.
	Constructed() bool
	// Construct populates this component.  Construction is idempotent: a
	// second call is a no-op.
	Construct(m *Model) error
}

// ErrNotConstructed indicates a component was queried before being
// constructed.
var ErrNotConstructed = errors.New("has not been constructed")

// ErrEmptyConstraint indicates a singleton constraint was queried after
// construction but before any value was assigned to it.
var ErrEmptyConstraint = errors.New("is empty (no value assigned)")

// Model owns the expression trees (variables and parameters) and the
// constraint components declared over them.  Construction is single-threaded
// and synchronous; once every component is constructed, concurrent reads are
// safe provided nothing mutates the model.
type Model struct {
	name string
	// Components in declaration order.
	components []Component
	// Declared variables, by name.
	variables map[string]*expr.Variable
	// Declared parameters, by name.
	parameters map[string]*expr.Parameter
}

// NewModel constructs an empty model with the given name.
func NewModel(name string) *Model {
	return &Model{
		name:       name,
		variables:  make(map[string]*expr.Variable),
		parameters: make(map[string]*expr.Parameter),
	}
}

// Name returns the name of this model.
func (p *Model) Name() string {
	return p.name
}

// NewVariable declares a decision variable within this model.
func (p *Model) NewVariable(name string) *expr.Variable {
	v := expr.NewVariable(name)
	p.variables[name] = v
	//
	return v
}

// NewParameter declares an immutable parameter within this model.
func (p *Model) NewParameter(name string, val float64) *expr.Parameter {
	param := expr.NewParameter(name, val)
	p.parameters[name] = param
	//
	return param
}

// NewMutableParameter declares a mutable parameter within this model, with no
// value yet.
func (p *Model) NewMutableParameter(name string) *expr.Parameter {
	param := expr.NewMutableParameter(name)
	p.parameters[name] = param
	//
	return param
}

// Variable returns the declared variable of the given name (or nil).
func (p *Model) Variable(name string) *expr.Variable {
	return p.variables[name]
}

// Parameter returns the declared parameter of the given name (or nil).
func (p *Model) Parameter(name string) *expr.Parameter {
	return p.parameters[name]
}

// Leaf returns the declared variable or parameter of the given name, as a
// term (or nil if no such leaf exists).
func (p *Model) Leaf(name string) expr.Term {
	if v, ok := p.variables[name]; ok {
		return v
	}
	//
	if param, ok := p.parameters[name]; ok {
		return param
	}
	//
	return nil
}

// Components returns the components of this model, in declaration order.
func (p *Model) Components() []Component {
	return p.components
}

// Construct constructs every component of this model, in declaration order.
// Components already constructed are left untouched.
func (p *Model) Construct() error {
	for _, c := range p.components {
		log.Debugf("constructing component %q of model %q", c.Name(), p.name)
		//
		if err := c.Construct(p); err != nil {
			return err
		}
	}
	//
	return nil
}

// register adds a component to this model, rejecting duplicate names.
func (p *Model) register(c Component) error {
	for _, other := range p.components {
		if other.Name() == c.Name() {
			return fmt.Errorf("model %q already has a component named %q", p.name, c.Name())
		}
	}
	//
	p.components = append(p.components, c)
	//
	return nil
}
