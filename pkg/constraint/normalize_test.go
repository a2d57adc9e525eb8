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
	"math"
	"testing"

	"github.com/consensys/go-modelkit/pkg/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUpperBound(t *testing.T) {
	x := expr.NewVariable("x")
	bound := expr.Const(1)
	//
	entry, err := Normalize(expr.LessThanOrEquals(x, bound))
	//
	require.NoError(t, err)
	assert.Same(t, x, entry.Body)
	assert.Nil(t, entry.Lower)
	assert.Same(t, bound, entry.Upper)
	assert.False(t, entry.Equality)
	assert.False(t, entry.StrictUpper)
}

func TestNormalizeLowerBound(t *testing.T) {
	x := expr.NewVariable("x")
	bound := expr.Const(1)
	//
	entry, err := Normalize(expr.GreaterThanOrEquals(x, bound))
	//
	require.NoError(t, err)
	assert.Same(t, bound, entry.Lower)
	assert.Nil(t, entry.Upper)
}

// Directionality: the bound side follows from which operand carries the
// variables, not from which side it was written on.
func TestNormalizeBodyOnRight(t *testing.T) {
	x := expr.NewVariable("x")
	// 1 <= x constrains x from below
	entry, err := Normalize(expr.LessThanOrEquals(expr.Const(1), x))
	require.NoError(t, err)
	assert.Same(t, x, entry.Body)
	assert.NotNil(t, entry.Lower)
	assert.Nil(t, entry.Upper)
	// 1 >= x constrains x from above
	entry, err = Normalize(expr.GreaterThanOrEquals(expr.Const(1), x))
	require.NoError(t, err)
	assert.Nil(t, entry.Lower)
	assert.NotNil(t, entry.Upper)
}

func TestNormalizeStrictOperators(t *testing.T) {
	x := expr.NewVariable("x")
	//
	entry, err := Normalize(expr.LessThan(x, expr.Const(1)))
	require.NoError(t, err)
	assert.True(t, entry.StrictUpper)
	assert.False(t, entry.StrictLower)
	//
	entry, err = Normalize(expr.GreaterThan(x, expr.Const(1)))
	require.NoError(t, err)
	assert.True(t, entry.StrictLower)
	assert.False(t, entry.StrictUpper)
}

// Equality normalises identically regardless of operand order.
func TestNormalizeEqualitySymmetry(t *testing.T) {
	x := expr.NewVariable("x")
	k := expr.Const(5)
	//
	left, err := Normalize(expr.Equals(k, x))
	require.NoError(t, err)
	//
	right, err := Normalize(expr.Equals(x, k))
	require.NoError(t, err)
	//
	for _, entry := range []*Entry{left, right} {
		assert.Same(t, x, entry.Body)
		assert.Same(t, k, entry.Lower)
		assert.Same(t, k, entry.Upper)
		assert.True(t, entry.Equality)
	}
}

func TestNormalizeEqualityErrors(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	// Two variable-bearing sides: the split is ambiguous.  The modeller must
	// write x - y == 0 explicitly.
	_, err := Normalize(expr.Equals(x, y))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// No variables at all
	_, err = Normalize(expr.Equals(expr.Const(1), expr.Const(1)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// Equality against a literal infinity is never feasible.
	_, err = Normalize(expr.Equals(x, expr.Const(math.Inf(1))))
	assert.ErrorIs(t, err, ErrMalformedRelation)
}

// The infinity canonicalisation table: an explicitly unbounded direction
// becomes "no bound"; an infeasible direction is rejected.
func TestNormalizeInfiniteBounds(t *testing.T) {
	x := expr.NewVariable("x")
	// x <= +inf: no upper bound
	entry, err := Normalize(expr.LessThanOrEquals(x, expr.Const(math.Inf(1))))
	require.NoError(t, err)
	assert.Nil(t, entry.Upper)
	// x >= -inf: no lower bound
	entry, err = Normalize(expr.GreaterThanOrEquals(x, expr.Const(math.Inf(-1))))
	require.NoError(t, err)
	assert.Nil(t, entry.Lower)
	// x <= -inf: infeasible by construction
	_, err = Normalize(expr.LessThanOrEquals(x, expr.Const(math.Inf(-1))))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// x >= +inf: likewise
	_, err = Normalize(expr.GreaterThanOrEquals(x, expr.Const(math.Inf(1))))
	assert.ErrorIs(t, err, ErrMalformedRelation)
}

func TestNormalizeChainAscending(t *testing.T) {
	x := expr.NewVariable("x")
	lo, hi := expr.Const(0), expr.Const(2)
	//
	entry, err := Normalize(expr.LessThanOrEquals(lo, x).LessThanOrEquals(hi))
	//
	require.NoError(t, err)
	assert.Same(t, x, entry.Body)
	assert.Same(t, lo, entry.Lower)
	assert.Same(t, hi, entry.Upper)
	assert.False(t, entry.Equality)
}

// A descending chain is re-expressed ascending.
func TestNormalizeChainDescending(t *testing.T) {
	x := expr.NewVariable("x")
	// 2 >= x > 0
	entry, err := Normalize(expr.GreaterThanOrEquals(expr.Const(2), x).GreaterThan(expr.Const(0)))
	//
	require.NoError(t, err)
	lower, err := entry.LowerValue()
	require.NoError(t, err)
	upper, err := entry.UpperValue()
	require.NoError(t, err)
	//
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 2.0, upper)
	assert.True(t, entry.StrictLower)
	assert.False(t, entry.StrictUpper)
}

func TestNormalizeChainErrors(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	// Mixed directions never denote a range.
	_, err := Normalize(expr.LessThanOrEquals(expr.Const(0), x).GreaterThanOrEquals(expr.Const(2)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// A variable-bearing outer term leaves the body ambiguous.
	_, err = Normalize(expr.LessThanOrEquals(y, x).LessThanOrEquals(expr.Const(2)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// A constant middle term leaves nothing to constrain.
	p := expr.NewParameter("p", 1)
	_, err = Normalize(expr.LessThanOrEquals(expr.Const(0), p).LessThanOrEquals(expr.Const(2)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
}

func TestNormalizeLiteralBoundOrdering(t *testing.T) {
	x := expr.NewVariable("x")
	// 2 <= x <= 1 is rejected outright
	_, err := Normalize(expr.LessThanOrEquals(expr.Const(2), x).LessThanOrEquals(expr.Const(1)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// ... but non-literal bounds are never compared at normalisation time.
	p := expr.NewParameter("p", 2)
	entry, err := Normalize(expr.LessThanOrEquals(p, x).LessThanOrEquals(expr.Const(1)))
	require.NoError(t, err)
	assert.Same(t, p, entry.Lower)
}

// A mutable parameter without a value is a perfectly good bound; its
// evaluation failure arises at query time, never at normalisation time.
func TestNormalizeDeferredParameterBound(t *testing.T) {
	x := expr.NewVariable("x")
	p := expr.NewMutableParameter("p")
	//
	entry, err := Normalize(expr.LessThanOrEquals(x, p))
	require.NoError(t, err)
	assert.Same(t, p, entry.Upper)
	// Querying the bound now fails ...
	var nve *expr.NoValueError
	_, err = entry.UpperValue()
	require.ErrorAs(t, err, &nve)
	// ... until the parameter is given a value.
	require.NoError(t, p.SetValue(3))
	//
	upper, err := entry.UpperValue()
	require.NoError(t, err)
	assert.Equal(t, 3.0, upper)
}

func TestNormalizeTuplePair(t *testing.T) {
	x := expr.NewVariable("x")
	k := expr.Const(4)
	// A two-element tuple is an equality.
	entry, err := Normalize(expr.NewTuple(x, k))
	require.NoError(t, err)
	assert.True(t, entry.Equality)
	assert.Same(t, k, entry.Lower)
	assert.Same(t, k, entry.Upper)
	// nil is not a term
	_, err = Normalize(expr.NewTuple(x, nil))
	assert.ErrorIs(t, err, ErrMalformedRelation)
}

func TestNormalizeTupleRange(t *testing.T) {
	x := expr.NewVariable("x")
	lo, hi := expr.Const(0), expr.Const(2)
	//
	entry, err := Normalize(expr.NewTuple(lo, x, hi))
	require.NoError(t, err)
	assert.Same(t, lo, entry.Lower)
	assert.Same(t, hi, entry.Upper)
	assert.False(t, entry.Equality)
	// nil bounds mean unbounded on that side
	entry, err = Normalize(expr.NewTuple(nil, x, hi))
	require.NoError(t, err)
	assert.Nil(t, entry.Lower)
	assert.Same(t, hi, entry.Upper)
}

// A tuple range collapses to an equality exactly when its bounds are
// structurally identical.
func TestNormalizeTupleEqualityCollapse(t *testing.T) {
	x := expr.NewVariable("x")
	p := expr.NewMutableParameter("p")
	// Same bound object on both sides
	entry, err := Normalize(expr.NewTuple(p, x, p))
	require.NoError(t, err)
	assert.True(t, entry.Equality)
	assert.Same(t, p, entry.Lower)
	assert.Same(t, p, entry.Upper)
	// Distinct literals of equal value
	entry, err = Normalize(expr.NewTuple(expr.Const(1), x, expr.Const(1)))
	require.NoError(t, err)
	assert.True(t, entry.Equality)
	// Structurally distinct bounds never collapse, even if they could evaluate
	// equal.
	q := expr.NewParameter("q", 0)
	entry, err = Normalize(expr.NewTuple(q, x, expr.Sum(q, expr.Const(0))))
	require.NoError(t, err)
	assert.False(t, entry.Equality)
}

func TestNormalizeTupleErrors(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	// Constant body
	_, err := Normalize(expr.NewTuple(expr.Const(0), expr.Const(1), expr.Const(2)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// Variable-bearing bound
	_, err = Normalize(expr.NewTuple(expr.Const(0), x, y))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// Wrong arity
	_, err = Normalize(expr.NewTuple(expr.Const(0), x, expr.Const(1), expr.Const(2)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
}

func TestNormalizeRejectsNonRelational(t *testing.T) {
	x := expr.NewVariable("x")
	// A bare arithmetic expression has no relational operator.
	_, err := Normalize(expr.Sum(x, expr.Const(1)))
	assert.ErrorIs(t, err, ErrMalformedRelation)
	//
	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrMalformedRelation)
	//
	_, err = Normalize("x <= 1")
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// A raw boolean means a relation was read in a boolean context upstream.
	var bctx *expr.BooleanContextError
	_, err = Normalize(true)
	assert.ErrorAs(t, err, &bctx)
}

// Errors deferred during incremental relation construction surface here.
func TestNormalizeSurfacesDeferredErrors(t *testing.T) {
	x := expr.NewVariable("x")
	y := expr.NewVariable("y")
	//
	rel := expr.LessThanOrEquals(x, expr.Const(1)).LessThanOrEquals(y)
	_, err := Normalize(rel)
	assert.ErrorIs(t, err, ErrMalformedRelation)
	// Boolean misuse keeps its distinct identity.
	var bctx *expr.BooleanContextError
	rel = expr.Equals(x, expr.Const(1)).LessThanOrEquals(expr.Const(2))
	_, err = Normalize(rel)
	assert.ErrorAs(t, err, &bctx)
}
