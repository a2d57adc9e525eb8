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
	"math"
)

// Exp represents a term raised to a given (constant) power.
type Exp struct {
	Arg Term
	Pow float64
}

// Exponent raises a given term to a given power.
func Exponent(arg Term, pow float64) Term {
	return &Exp{arg, pow}
}

// Value implementation for Term interface.
func (p *Exp) Value() (float64, error) {
	val, err := p.Arg.Value()
	if err != nil {
		return 0, err
	}
	//
	return math.Pow(val, p.Pow), nil
}

// HasVariable implementation for Term interface.
func (p *Exp) HasVariable() bool {
	return p.Arg.HasVariable()
}

func (p *Exp) String() string {
	return fmt.Sprintf("%s^%s", p.Arg.String(), Const(p.Pow).String())
}
