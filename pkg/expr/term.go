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

// Term represents a node within an arithmetic expression tree over variables,
// parameters and literal constants.  Values are drawn from the extended reals,
// hence positive and negative infinity are legal literal values.
type Term interface {
	// Value evaluates this term.  Evaluation fails if any variable or mutable
	// parameter within this term has not been given a value yet.  Observe that
	// such failures arise only here, never during tree construction or
	// classification.
	Value() (float64, error)

	// HasVariable reports whether any leaf of this term is a decision-variable
	// reference.
	HasVariable() bool

	// String returns a human-readable rendition of this term.
	String() string
}

// IsConstant determines whether a given term is constant-like, meaning it is
// safe to treat as a bound.  A term is constant-like exactly when it contains
// no decision variable; it may still lack a numeric value (e.g. an unset
// mutable parameter).  IsConstant and Term.HasVariable are exhaustive and
// mutually exclusive for well-formed terms.
func IsConstant(term Term) bool {
	return !term.HasVariable()
}

// NoValueError indicates that a variable or mutable parameter was evaluated
// before being given a value.  This is a query-time failure, and is distinct
// from the malformed-relation errors arising during constraint normalisation.
type NoValueError struct {
	// Kind of the offending leaf (variable or parameter)
	Kind string
	// Name of the offending leaf
	Name string
}

func (e *NoValueError) Error() string {
	return fmt.Sprintf("%s %q has no value", e.Kind, e.Name)
}
