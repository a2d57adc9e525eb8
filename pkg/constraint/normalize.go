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
package constraint

import (
	"errors"
	"fmt"
	"math"

	"github.com/consensys/go-modelkit/pkg/expr"
)

// Normalize canonicalises a relational description into an Entry.  Accepted
// descriptions are relational expressions (equalities and two- or three-term
// inequality chains) and explicit bound tuples.  Anything else fails,
// including a bare arithmetic expression with no relational operator at all.
//
// Normalisation never evaluates a bound: a mutable parameter without a value
// is a perfectly good bound, whose evaluation failure is deferred to query
// time.  Only literal constants are inspected, for the infinity
// canonicalisation rules: an explicitly unbounded direction (e.g. an upper
// bound of +inf) becomes "no bound", whilst an infeasible direction (e.g. an
// upper bound of -inf) is rejected.
func Normalize(form any) (*Entry, error) {
	switch f := form.(type) {
	case *expr.Relation:
		return normalizeRelation(f)
	case *expr.Tuple:
		return normalizeTuple(f)
	case expr.Term:
		return nil, malformed("cannot construct a constraint from an unbounded expression %s", f.String())
	case bool:
		return nil, &expr.BooleanContextError{}
	case nil:
		return nil, malformed("cannot construct a constraint from nil")
	default:
		return nil, malformed("cannot construct a constraint from a value of type %T", form)
	}
}

func normalizeRelation(r *expr.Relation) (*Entry, error) {
	// Surface any error deferred during incremental construction.
	if err := r.Err(); err != nil {
		var bctx *expr.BooleanContextError
		//
		if errors.As(err, &bctx) {
			return nil, err
		}
		//
		return nil, fmt.Errorf("%w: %s", ErrMalformedRelation, err.Error())
	}
	//
	if r.IsEquality() {
		terms := r.Terms()
		return normalizeEquality(terms[0], terms[1])
	}
	//
	terms, ops := r.Terms(), r.Ops()
	//
	if len(terms) == 2 {
		return normalizeInequality(terms[0], terms[1], ops[0])
	}
	//
	return normalizeChain(terms, ops)
}

// normalizeEquality handles "lhs == rhs", where exactly one side must be
// variable-bearing.  Rewriting "x == y" as "x - y == 0" is deliberately not
// attempted; the modeller writes the combined expression explicitly.
func normalizeEquality(lhs expr.Term, rhs expr.Term) (*Entry, error) {
	var body, bound expr.Term
	//
	switch {
	case lhs.HasVariable() && rhs.HasVariable():
		return nil, malformed("equality constraint cannot equate two non-constant expressions")
	case lhs.HasVariable():
		body, bound = lhs, rhs
	case rhs.HasVariable():
		body, bound = rhs, lhs
	default:
		return nil, malformed("cannot construct equality constraint with no variables")
	}
	//
	if c, ok := bound.(*expr.Constant); ok && math.IsInf(c.Float(), 0) {
		return nil, malformed("cannot construct equality constraint with infinite bound")
	}
	//
	return &Entry{Body: body, Lower: bound, Upper: bound, Equality: true, Active: true}, nil
}

// normalizeInequality handles a single comparison "lhs op rhs", keeping
// directionality: with the body on the left, <= yields an upper bound and >= a
// lower bound; with the body on the right the sense inverts.
func normalizeInequality(lhs expr.Term, rhs expr.Term, op expr.Op) (*Entry, error) {
	var (
		entry      Entry
		bodyOnLeft bool
	)
	//
	switch {
	case lhs.HasVariable() && rhs.HasVariable():
		return nil, malformed("cannot determine the constraint body in a relation with more than one non-constant term")
	case lhs.HasVariable():
		bodyOnLeft = true
	case rhs.HasVariable():
		bodyOnLeft = false
	default:
		return nil, malformed("cannot construct a constraint with no variables")
	}
	// A bound is an upper bound when the operator points from the body towards
	// it (body <= bound, or bound >= body).
	if bodyOnLeft {
		entry.Body = lhs
		//
		if op.Ge {
			return entryWithLower(entry, rhs, op.Strict)
		}
		//
		return entryWithUpper(entry, rhs, op.Strict)
	}
	//
	entry.Body = rhs
	//
	if op.Ge {
		return entryWithUpper(entry, lhs, op.Strict)
	}
	//
	return entryWithLower(entry, lhs, op.Strict)
}

// normalizeChain handles a three-term chain "a op1 mid op2 b".  Exactly the
// middle term carries the variables; the two operators must point the same
// direction.  A descending chain "a >= mid >= b" is re-expressed as the
// ascending "b <= mid <= a".
func normalizeChain(terms []expr.Term, ops []expr.Op) (*Entry, error) {
	if ops[0].Ge != ops[1].Ge {
		return nil, malformed("mixed-direction chain is not a valid range")
	}
	//
	lo, body, hi := terms[0], terms[1], terms[2]
	strictLo, strictHi := ops[0].Strict, ops[1].Strict
	//
	if ops[0].Ge {
		lo, hi = hi, lo
		strictLo, strictHi = ops[1].Strict, ops[0].Strict
	}
	//
	if lo.HasVariable() || hi.HasVariable() {
		return nil, malformed(
			"cannot determine the constraint body in a three-term relation with more than one non-constant term")
	}
	//
	if !body.HasVariable() {
		return nil, malformed("cannot construct a range constraint over a constant body")
	}
	//
	return rangeEntry(body, lo, hi, strictLo, strictHi)
}

func normalizeTuple(t *expr.Tuple) (*Entry, error) {
	terms := t.Terms()
	//
	switch len(terms) {
	case 2:
		if terms[0] == nil || terms[1] == nil {
			return nil, malformed("two-element constraint tuples may not contain nil")
		}
		// Interpreted as an equality.
		return normalizeEquality(terms[0], terms[1])
	case 3:
		return normalizeTuple3(terms[0], terms[1], terms[2])
	default:
		return nil, malformed("constraint tuples must contain 2 or 3 elements, got %d", len(terms))
	}
}

// normalizeTuple3 handles the explicit range form (lower, body, upper).  The
// body is asserted variable-bearing rather than re-derived.  The range
// collapses to an equality only when both bounds are structurally identical:
// the same term object, or literals of equal value.  No deeper symbolic
// equivalence is attempted, so (p, x, p+1) is never an equality even when the
// two bounds could evaluate equal.
func normalizeTuple3(lo expr.Term, body expr.Term, hi expr.Term) (*Entry, error) {
	if body == nil || !body.HasVariable() {
		return nil, malformed("tuple-form body has no variables")
	}
	//
	for _, bound := range []expr.Term{lo, hi} {
		if bound != nil && bound.HasVariable() {
			return nil, malformed(
				"cannot determine the constraint body in a three-term relation with more than one non-constant term")
		}
	}
	// Equality detection (structural only).
	if lo != nil && hi != nil && identicalBounds(lo, hi) {
		return normalizeEquality(body, lo)
	}
	//
	return rangeEntry(body, lo, hi, false, false)
}

// rangeEntry assembles a two-sided entry, applying infinity canonicalisation
// independently to each bound and enforcing bound ordering when both are
// literals.  Either (or both) bounds may be nil.
func rangeEntry(body, lo, hi expr.Term, strictLo, strictHi bool) (*Entry, error) {
	entry := Entry{Body: body, Active: true}
	//
	if lo != nil {
		out, err := entryWithLower(entry, lo, strictLo)
		if err != nil {
			return nil, err
		}
		//
		entry = *out
	}
	//
	if hi != nil {
		out, err := entryWithUpper(entry, hi, strictHi)
		if err != nil {
			return nil, err
		}
		//
		entry = *out
	}
	// Enforce ordering of literal bounds.
	cl, okl := entry.Lower.(*expr.Constant)
	ch, oku := entry.Upper.(*expr.Constant)
	//
	if okl && oku && cl.Float() > ch.Float() {
		return nil, malformed("lower bound %s exceeds upper bound %s", cl.String(), ch.String())
	}
	//
	return &entry, nil
}

// entryWithLower installs a lower bound, canonicalising literal infinities: a
// lower bound of -inf is no bound at all, whilst +inf is infeasible by
// construction.
func entryWithLower(entry Entry, bound expr.Term, strict bool) (*Entry, error) {
	if c, ok := bound.(*expr.Constant); ok {
		if math.IsInf(c.Float(), -1) {
			entry.Active = true
			return &entry, nil
		}
		//
		if math.IsInf(c.Float(), 1) {
			return nil, malformed("improper lower bound +inf")
		}
	}
	//
	entry.Lower = bound
	entry.StrictLower = strict
	entry.Active = true
	//
	return &entry, nil
}

// entryWithUpper installs an upper bound, canonicalising literal infinities
// symmetrically to entryWithLower.
func entryWithUpper(entry Entry, bound expr.Term, strict bool) (*Entry, error) {
	if c, ok := bound.(*expr.Constant); ok {
		if math.IsInf(c.Float(), 1) {
			entry.Active = true
			return &entry, nil
		}
		//
		if math.IsInf(c.Float(), -1) {
			return nil, malformed("improper upper bound -inf")
		}
	}
	//
	entry.Upper = bound
	entry.StrictUpper = strict
	entry.Active = true
	//
	return &entry, nil
}

// identicalBounds reports whether two bounds are structurally identical: the
// same object, or literal constants of equal value.
func identicalBounds(lo expr.Term, hi expr.Term) bool {
	if lo == hi {
		return true
	}
	//
	cl, okl := lo.(*expr.Constant)
	ch, okh := hi.(*expr.Constant)
	//
	return okl && okh && cl.Float() == ch.Float()
}
