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

import "strconv"

// Constant represents a literal constant value within an expression.
type Constant struct{ value float64 }

// Const constructs an expression representing a given literal constant.
func Const(val float64) *Constant {
	return &Constant{val}
}

// Float returns the literal value of this constant.
func (p *Constant) Float() float64 {
	return p.value
}

// Value implementation for Term interface.
func (p *Constant) Value() (float64, error) {
	return p.value, nil
}

// HasVariable implementation for Term interface.
func (p *Constant) HasVariable() bool {
	return false
}

func (p *Constant) String() string {
	return strconv.FormatFloat(p.value, 'g', -1, 64)
}
