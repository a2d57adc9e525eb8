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

// Add represents the addition of zero or more terms.
type Add struct{ Args []Term }

// Sum zero or more terms together.
func Sum(terms ...Term) Term {
	switch len(terms) {
	case 0:
		return Const(0)
	case 1:
		return terms[0]
	default:
		return &Add{terms}
	}
}

// Value implementation for Term interface.
func (p *Add) Value() (float64, error) {
	// Evaluate first argument
	val, err := p.Args[0].Value()
	// Continue evaluating the rest
	for i := 1; err == nil && i < len(p.Args); i++ {
		var ith float64
		// Evaluate ith argument
		ith, err = p.Args[i].Value()
		val += ith
	}
	// Done
	return val, err
}

// HasVariable implementation for Term interface.
func (p *Add) HasVariable() bool {
	return anyHasVariable(p.Args)
}

func (p *Add) String() string {
	return bracket(p.Args, " + ")
}

func anyHasVariable(terms []Term) bool {
	for _, t := range terms {
		if t.HasVariable() {
			return true
		}
	}
	//
	return false
}

func bracket(terms []Term, op string) string {
	var builder strings.Builder
	//
	builder.WriteString("(")
	//
	for i, t := range terms {
		if i != 0 {
			builder.WriteString(op)
		}
		//
		builder.WriteString(t.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}
