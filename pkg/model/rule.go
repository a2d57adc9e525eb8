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

// Sentinel is a marker which a rule may return in place of a relational
// description.  Sentinels are distinguished by identity, not by value, so
// they can never collide with a legitimate numeric or expression value.
type Sentinel struct{ name string }

func (p *Sentinel) String() string {
	return p.name
}

var (
	// Skip indicates the rule declines to produce a constraint at the current
	// index.  Valid from any rule context.
	Skip = &Sentinel{"Constraint.Skip"}
	// End terminates an open-ended (list-style) construction.  Not valid for
	// fixed-domain containers.
	End = &Sentinel{"ConstraintList.End"}
)

// Rule produces, for a given index, the relational description of the
// constraint at that index: a *expr.Relation, a *expr.Tuple, or one of the
// Skip/End sentinels.  Anything else is a construction-time error identifying
// the offending index.
type Rule[K comparable] func(m *Model, index K) any

// NullaryRule is the rule form for a non-indexed (singleton) constraint.
type NullaryRule func(m *Model) any

// ListRule is the rule form for a list-style constraint container: it is
// invoked with the sequence numbers 1, 2, 3, ... until it returns End.
type ListRule func(m *Model, i int) any
