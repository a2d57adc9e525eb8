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

import "fmt"

// Neg represents the negation of a term.
type Neg struct{ Arg Term }

// Negate a given term.
func Negate(arg Term) Term {
	return &Neg{arg}
}

// Value implementation for Term interface.
func (p *Neg) Value() (float64, error) {
	val, err := p.Arg.Value()
	//
	return -val, err
}

// HasVariable implementation for Term interface.
func (p *Neg) HasVariable() bool {
	return p.Arg.HasVariable()
}

func (p *Neg) String() string {
	return fmt.Sprintf("-%s", p.Arg.String())
}
