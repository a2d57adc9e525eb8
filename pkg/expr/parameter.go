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

import (
	"fmt"

	"github.com/consensys/go-modelkit/pkg/util"
)

// Parameter represents a model parameter.  Parameters are constant-like: they
// never count as decision variables and, hence, may appear as constraint
// bounds.  A mutable parameter may be constructed without a value and given
// one later; evaluating it in the meantime fails at query time, never at
// construction time.
type Parameter struct {
	name    string
	mutable bool
	value   util.Option[float64]
}

// NewParameter constructs an immutable parameter holding the given value.
func NewParameter(name string, val float64) *Parameter {
	return &Parameter{name, false, util.Some(val)}
}

// NewMutableParameter constructs a mutable parameter with no value yet.
func NewMutableParameter(name string) *Parameter {
	return &Parameter{name, true, util.None[float64]()}
}

// Name returns the name of this parameter.
func (p *Parameter) Name() string {
	return p.name
}

// Mutable indicates whether this parameter may be reassigned.
func (p *Parameter) Mutable() bool {
	return p.mutable
}

// SetValue assigns a value to this parameter.  This fails for immutable
// parameters.
func (p *Parameter) SetValue(val float64) error {
	if !p.mutable {
		return fmt.Errorf("parameter %q is not mutable", p.name)
	}
	//
	p.value = util.Some(val)
	//
	return nil
}

// Clear removes the value of a mutable parameter.
func (p *Parameter) Clear() error {
	if !p.mutable {
		return fmt.Errorf("parameter %q is not mutable", p.name)
	}
	//
	p.value = util.None[float64]()
	//
	return nil
}

// Value implementation for Term interface.
func (p *Parameter) Value() (float64, error) {
	if p.value.IsEmpty() {
		return 0, &NoValueError{"parameter", p.name}
	}
	//
	return p.value.Unwrap(), nil
}

// HasVariable implementation for Term interface.
func (p *Parameter) HasVariable() bool {
	return false
}

func (p *Parameter) String() string {
	return p.name
}
