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

import "strings"

// Tuple represents an explicit bound tuple: (body, bound) or (lhs, rhs) of
// length two is read as an equality, whilst (lower, body, upper) of length
// three is read as a range whose outer entries may be nil (meaning no bound on
// that side).  Any other arity is rejected during normalisation, before the
// shape is analysed further.
type Tuple struct{ terms []Term }

// NewTuple constructs a bound tuple from the given terms.  Nil entries are
// permitted (and only meaningful) in the outer positions of a three-element
// tuple.
func NewTuple(terms ...Term) *Tuple {
	return &Tuple{terms}
}

// Terms returns the elements of this tuple, nil entries included.
func (p *Tuple) Terms() []Term {
	return p.terms
}

func (p *Tuple) String() string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, t := range p.terms {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		if t == nil {
			builder.WriteString("nil")
		} else {
			builder.WriteString(t.String())
		}
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

func (p *Tuple) relationalForm() {}
