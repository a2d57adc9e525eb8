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

// Div represents the division of one term by another.
type Div struct {
	Lhs Term
	Rhs Term
}

// Divide returns a term representing the division of lhs by rhs.
func Divide(lhs Term, rhs Term) Term {
	return &Div{lhs, rhs}
}

// Value implementation for Term interface.
func (p *Div) Value() (float64, error) {
	lhs, err := p.Lhs.Value()
	if err != nil {
		return 0, err
	}
	//
	rhs, err := p.Rhs.Value()
	if err != nil {
		return 0, err
	}
	//
	if rhs == 0 {
		return 0, fmt.Errorf("division by zero in %s", p.String())
	}
	//
	return lhs / rhs, nil
}

// HasVariable implementation for Term interface.
func (p *Div) HasVariable() bool {
	return p.Lhs.HasVariable() || p.Rhs.HasVariable()
}

func (p *Div) String() string {
	return fmt.Sprintf("(%s / %s)", p.Lhs.String(), p.Rhs.String())
}
