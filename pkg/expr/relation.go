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
	"strings"
)

// Op describes a single relational operator within a chain, as written.
type Op struct {
	// Ge indicates the operator points downwards (i.e. lhs >= rhs rather than
	// lhs <= rhs).
	Ge bool
	// Strict indicates a strict comparison (< or >).
	Strict bool
}

func (o Op) String() string {
	switch {
	case o.Ge && o.Strict:
		return ">"
	case o.Ge:
		return ">="
	case o.Strict:
		return "<"
	default:
		return "<="
	}
}

// Form is a relational description which the constraint normaliser can
// canonicalise: either a Relation or an explicit bound Tuple.
type Form interface {
	fmt.Stringer
	// marker method preventing forms being defined outside this package.
	relationalForm()
}

// Relation describes the shape of a relational expression as written: an
// equality between two terms, or a chain of two or three terms joined by
// relational operators.  Relations are shapes, not truth values; attempting to
// read one as a boolean fails (see Bool).
//
// Relations are built incrementally.  An invalid combination (e.g. chaining a
// third comparison, or introducing a second non-constant term) does not fail
// immediately; instead the error is recorded and surfaced when the relation
// is normalised into a constraint.  This matches the construction-time error
// contract: the rule producing the relation fails, not the comparison itself.
type Relation struct {
	// Terms in written order (2 or 3 of them).
	terms []Term
	// Operators joining adjacent terms (1 or 2 of them); empty for equalities.
	ops []Op
	// Indicates an equality relation.
	equality bool
	// Deferred construction error, if any.
	err error
}

// Equals constructs a relation representing the equality of two terms.
func Equals(lhs Term, rhs Term) *Relation {
	return &Relation{terms: []Term{lhs, rhs}, equality: true}
}

// LessThanOrEquals constructs the relation "lhs <= rhs".
func LessThanOrEquals(lhs Term, rhs Term) *Relation {
	return &Relation{terms: []Term{lhs, rhs}, ops: []Op{{Ge: false, Strict: false}}}
}

// LessThan constructs the relation "lhs < rhs".
func LessThan(lhs Term, rhs Term) *Relation {
	return &Relation{terms: []Term{lhs, rhs}, ops: []Op{{Ge: false, Strict: true}}}
}

// GreaterThanOrEquals constructs the relation "lhs >= rhs".
func GreaterThanOrEquals(lhs Term, rhs Term) *Relation {
	return &Relation{terms: []Term{lhs, rhs}, ops: []Op{{Ge: true, Strict: false}}}
}

// GreaterThan constructs the relation "lhs > rhs".
func GreaterThan(lhs Term, rhs Term) *Relation {
	return &Relation{terms: []Term{lhs, rhs}, ops: []Op{{Ge: true, Strict: true}}}
}

// LessThanOrEquals extends this relation with a further comparison "p <= rhs",
// folding it into a three-term chain.  For a term on the left instead (i.e.
// "t <= p"), use GreaterThanOrEquals, since "t <= p" and "p >= t" coincide.
func (p *Relation) LessThanOrEquals(rhs Term) *Relation {
	return p.extend(rhs, Op{Ge: false, Strict: false})
}

// LessThan extends this relation with a further strict comparison "p < rhs".
func (p *Relation) LessThan(rhs Term) *Relation {
	return p.extend(rhs, Op{Ge: false, Strict: true})
}

// GreaterThanOrEquals extends this relation with a further comparison
// "p >= rhs", folding it into a three-term chain.
func (p *Relation) GreaterThanOrEquals(rhs Term) *Relation {
	return p.extend(rhs, Op{Ge: true, Strict: false})
}

// GreaterThan extends this relation with a further strict comparison "p > rhs".
func (p *Relation) GreaterThan(rhs Term) *Relation {
	return p.extend(rhs, Op{Ge: true, Strict: true})
}

// Terms returns the terms of this relation, in written order.
func (p *Relation) Terms() []Term {
	return p.terms
}

// Ops returns the operators joining adjacent terms, in written order.  This is
// empty for an equality relation.
func (p *Relation) Ops() []Op {
	return p.ops
}

// IsEquality indicates whether this relation is an equality.
func (p *Relation) IsEquality() bool {
	return p.equality
}

// Err returns the deferred construction error of this relation (if any).
func (p *Relation) Err() error {
	return p.err
}

// Bool attempts to read this relation as a truth value, which always fails:
// relational expressions over model terms describe constraints and are not
// booleans.  A caller wanting to know whether a constraint holds for the
// current variable values should normalise it and use Entry.Satisfied.
func (p *Relation) Bool() (bool, error) {
	var lhs, rhs Term
	//
	if len(p.terms) > 0 {
		lhs, rhs = p.terms[0], p.terms[len(p.terms)-1]
	}
	//
	return false, &BooleanContextError{Lhs: lhs, Rhs: rhs}
}

func (p *Relation) String() string {
	var builder strings.Builder
	//
	for i, t := range p.terms {
		if i != 0 {
			if p.equality {
				builder.WriteString(" == ")
			} else {
				builder.WriteString(fmt.Sprintf(" %s ", p.ops[i-1]))
			}
		}
		//
		builder.WriteString(t.String())
	}
	//
	return builder.String()
}

func (p *Relation) relationalForm() {}

// extend folds a further comparison onto this relation, producing a three-term
// chain.  Misuse is recorded rather than reported, per the deferred-error
// contract documented on Relation.
func (p *Relation) extend(rhs Term, op Op) *Relation {
	switch {
	case p.err != nil:
		return p
	case p.equality:
		// An equality is not orderable against anything further; reading one
		// in an ordered context is the boolean-misuse case.
		return &Relation{err: &BooleanContextError{Lhs: p.terms[0], Rhs: p.terms[1]}}
	case len(p.terms) == 3:
		return &Relation{err: fmt.Errorf("cannot chain more than three terms in a relational expression")}
	case rhs.HasVariable() && (p.terms[0].HasVariable() || p.terms[1].HasVariable()):
		return &Relation{err: fmt.Errorf(
			"a relational expression cannot appear as an operand of a further relational comparison " +
				"when that introduces a second non-constant term")}
	}
	//
	return &Relation{
		terms: []Term{p.terms[0], p.terms[1], rhs},
		ops:   []Op{p.ops[0], op},
	}
}

// BooleanContextError indicates that a relational expression over model terms
// was used where a boolean was expected (e.g. as a branch condition, or
// compared onwards from an equality).  This almost always indicates a
// programming mistake rather than a modelling mistake, hence it is reported
// distinctly from malformed-relation errors.
type BooleanContextError struct {
	Lhs Term
	Rhs Term
}

func (e *BooleanContextError) Error() string {
	var lhs, rhs = "?", "?"
	//
	if e.Lhs != nil {
		lhs = e.Lhs.String()
	}
	//
	if e.Rhs != nil {
		rhs = e.Rhs.String()
	}
	//
	return fmt.Sprintf(
		"relational expression between %s and %s contains non-constant terms (variables) in a Boolean context",
		lhs, rhs)
}
