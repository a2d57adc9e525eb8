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
package expr

import "github.com/consensys/go-modelkit/pkg/util"

// Variable represents a decision variable.  A variable may hold a current
// value (e.g. an incumbent solution being checked), but need not; evaluating a
// variable without a value fails at query time.
type Variable struct {
	name  string
	value util.Option[float64]
}

// NewVariable constructs a new decision variable with the given name and no
// current value.
func NewVariable(name string) *Variable {
	return &Variable{name, util.None[float64]()}
}

// Name returns the name of this variable.
func (p *Variable) Name() string {
	return p.name
}

// SetValue assigns a current value to this variable.
func (p *Variable) SetValue(val float64) {
	p.value = util.Some(val)
}

// Unset removes the current value of this variable (if any).
func (p *Variable) Unset() {
	p.value = util.None[float64]()
}

// Value implementation for Term interface.
func (p *Variable) Value() (float64, error) {
	if p.value.IsEmpty() {
		return 0, &NoValueError{"variable", p.name}
	}
	//
	return p.value.Unwrap(), nil
}

// HasVariable implementation for Term interface.
func (p *Variable) HasVariable() bool {
	return true
}

func (p *Variable) String() string {
	return p.name
}
