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
	"math"
	"strings"

	"github.com/consensys/go-modelkit/pkg/expr"
)

// Entry is the canonical record every relational description normalises into:
// a variable-bearing body together with an optional lower bound, an optional
// upper bound and an equality flag.  Entries hold non-owning references into
// the shared expression trees of the enclosing model; the same parameter may
// appear as a bound of many entries at once, and no entry ever mutates a
// shared term.
//
// Invariant: if Equality holds then Lower and Upper reference the same term
// and neither is nil.  The body is always variable-bearing, never itself a
// bound.
type Entry struct {
	// Body is the variable-bearing expression being constrained.
	Body expr.Term
	// Lower bound, or nil if the body is unbounded below.
	Lower expr.Term
	// Upper bound, or nil if the body is unbounded above.
	Upper expr.Term
	// Equality indicates lower and upper denote the same quantity.
	Equality bool
	// StrictLower indicates the lower bound was written with a strict operator.
	StrictLower bool
	// StrictUpper indicates the upper bound was written with a strict operator.
	StrictUpper bool
	// Active indicates this entry participates in the model (default true).
	Active bool
}

// ErrNoBound indicates a bound value was requested for a side on which the
// constraint has no bound.
var ErrNoBound = errors.New("constraint has no bound on that side")

// Value evaluates the body of this constraint.  This fails if any variable
// referenced by the body has no current value.
func (p *Entry) Value() (float64, error) {
	return p.Body.Value()
}

// LowerValue evaluates the lower bound.  This fails if there is no lower
// bound, or if a mutable parameter within it has not been given a value yet.
// The latter failure arises here, at query time, never at construction time.
func (p *Entry) LowerValue() (float64, error) {
	if p.Lower == nil {
		return 0, ErrNoBound
	}
	//
	return p.Lower.Value()
}

// UpperValue evaluates the upper bound, failing as LowerValue does.
func (p *Entry) UpperValue() (float64, error) {
	if p.Upper == nil {
		return 0, ErrNoBound
	}
	//
	return p.Upper.Value()
}

// LSlack returns lower - body, or negative infinity when there is no lower
// bound.  Feasibility on this side requires LSlack() <= 0.
func (p *Entry) LSlack() (float64, error) {
	if p.Lower == nil {
		return math.Inf(-1), nil
	}
	//
	lower, err := p.Lower.Value()
	if err != nil {
		return 0, err
	}
	//
	body, err := p.Body.Value()
	if err != nil {
		return 0, err
	}
	//
	return lower - body, nil
}

// USlack returns upper - body, or positive infinity when there is no upper
// bound.  Feasibility on this side requires USlack() >= 0.
func (p *Entry) USlack() (float64, error) {
	if p.Upper == nil {
		return math.Inf(1), nil
	}
	//
	upper, err := p.Upper.Value()
	if err != nil {
		return 0, err
	}
	//
	body, err := p.Body.Value()
	if err != nil {
		return 0, err
	}
	//
	return upper - body, nil
}

// Satisfied reports whether the current variable values satisfy this
// constraint, applying strict comparison on any side written with a strict
// operator.
func (p *Entry) Satisfied() (bool, error) {
	lslack, err := p.LSlack()
	if err != nil {
		return false, err
	}
	//
	uslack, err := p.USlack()
	if err != nil {
		return false, err
	}
	// Check lower side
	if (p.StrictLower && lslack >= 0) || lslack > 0 {
		return false, nil
	}
	// Check upper side
	if (p.StrictUpper && uslack <= 0) || uslack < 0 {
		return false, nil
	}
	//
	return true, nil
}

func (p *Entry) String() string {
	var builder strings.Builder
	//
	if p.Equality {
		builder.WriteString(p.Body.String())
		builder.WriteString(" == ")
		builder.WriteString(p.Lower.String())
		//
		return builder.String()
	}
	//
	if p.Lower != nil {
		builder.WriteString(p.Lower.String())
		builder.WriteString(opString(p.StrictLower))
	}
	//
	builder.WriteString(p.Body.String())
	//
	if p.Upper != nil {
		builder.WriteString(opString(p.StrictUpper))
		builder.WriteString(p.Upper.String())
	}
	//
	return builder.String()
}

func opString(strict bool) string {
	if strict {
		return " < "
	}
	//
	return " <= "
}
