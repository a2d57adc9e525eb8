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

// Mul represents the multiplication of zero or more terms.
type Mul struct{ Args []Term }

// Product multiplies zero or more terms together.
func Product(terms ...Term) Term {
	switch len(terms) {
	case 0:
		return Const(1)
	case 1:
		return terms[0]
	default:
		return &Mul{terms}
	}
}

// Value implementation for Term interface.
func (p *Mul) Value() (float64, error) {
	// Evaluate first argument
	val, err := p.Args[0].Value()
	// Continue evaluating the rest
	for i := 1; err == nil && i < len(p.Args); i++ {
		var ith float64
		// Evaluate ith argument
		ith, err = p.Args[i].Value()
		val *= ith
	}
	// Done
	return val, err
}

// HasVariable implementation for Term interface.
func (p *Mul) HasVariable() bool {
	return anyHasVariable(p.Args)
}

func (p *Mul) String() string {
	return bracket(p.Args, " * ")
}
