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

// Package parser reads JSON-encoded model documents.  A document declares
// variables (optionally valued), parameters, and named constraints whose
// expressions are written as prefix arrays, for example:
//
//	{
//	  "name": "diet",
//	  "variables": [{"name": "x", "value": 2}],
//	  "parameters": [{"name": "p", "value": 1}],
//	  "constraints": [
//	    {"name": "c1", "expr": ["<=", 0, ["+", "x", "x"], 10]},
//	    {"name": "c2", "expr": ["==", ["*", 2, "x"], "p"]}
//	  ]
//	}
//
// Relational operators ("==", "<=", "<", ">=", ">") take two operands, or
// three for a range written with "<=" / ">=" and friends; null denotes an
// absent bound in the three-operand form.  Arithmetic operators are "+", "-"
// and "*" (variadic), "/" (binary), "neg" (unary) and "^" (term, power).
package parser

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/consensys/go-modelkit/pkg/expr"
	"github.com/consensys/go-modelkit/pkg/model"
)

type jsonModel struct {
	Name        string           `json:"name"`
	Variables   []jsonLeaf       `json:"variables"`
	Parameters  []jsonLeaf       `json:"parameters"`
	Constraints []jsonConstraint `json:"constraints"`
}

type jsonLeaf struct {
	Name string `json:"name"`
	// Value is optional; a parameter without one is mutable and unset.
	Value *float64 `json:"value"`
}

type jsonConstraint struct {
	Name string          `json:"name"`
	Expr json.RawMessage `json:"expr"`
}

// Parse reads a JSON model document, declaring every variable, parameter and
// constraint in a fresh model.  The returned constraints are constructed and
// populated, in document order.
func Parse(data []byte) (*model.Model, []*model.Constraint, error) {
	var doc jsonModel
	//
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("malformed model document: %w", err)
	}
	//
	m := model.NewModel(doc.Name)
	//
	for _, v := range doc.Variables {
		variable := m.NewVariable(v.Name)
		//
		if v.Value != nil {
			variable.SetValue(*v.Value)
		}
	}
	//
	for _, p := range doc.Parameters {
		if p.Value != nil {
			m.NewParameter(p.Name, *p.Value)
		} else {
			m.NewMutableParameter(p.Name)
		}
	}
	//
	constraints := make([]*model.Constraint, 0, len(doc.Constraints))
	//
	for _, c := range doc.Constraints {
		form, err := parseForm(m, c.Expr)
		if err != nil {
			return nil, nil, fmt.Errorf("constraint %q: %w", c.Name, err)
		}
		//
		cons, err := model.NewConstraint(m, c.Name)
		if err != nil {
			return nil, nil, err
		}
		//
		if err := cons.Construct(m); err != nil {
			return nil, nil, err
		}
		//
		if err := cons.SetValue(form); err != nil {
			return nil, nil, err
		}
		//
		constraints = append(constraints, cons)
	}
	//
	return m, constraints, nil
}

// parseForm parses the outermost expression of a constraint, which must be
// relational.
func parseForm(m *model.Model, raw json.RawMessage) (*expr.Relation, error) {
	var node any
	//
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	//
	list, ok := node.([]any)
	if !ok || len(list) == 0 {
		return nil, fmt.Errorf("constraint expression must be a non-empty array")
	}
	//
	op, ok := list[0].(string)
	if !ok {
		return nil, fmt.Errorf("constraint expression must start with an operator")
	}
	//
	operands := list[1:]
	//
	if op == "==" {
		if len(operands) != 2 {
			return nil, fmt.Errorf("operator %q expects 2 operands, got %d", op, len(operands))
		}
		//
		lhs, err := parseTerm(m, operands[0])
		if err != nil {
			return nil, err
		}
		//
		rhs, err := parseTerm(m, operands[1])
		if err != nil {
			return nil, err
		}
		//
		return expr.Equals(lhs, rhs), nil
	}
	//
	return parseChain(m, op, operands)
}

// parseChain parses an inequality with two operands, or a range chain with
// three.  In the three-operand form a null operand denotes an absent bound,
// which is encoded as an infinite literal so the normaliser's infinity
// canonicalisation discards it.
func parseChain(m *model.Model, op string, operands []any) (*expr.Relation, error) {
	build, chain, ge, err := chainOps(op)
	if err != nil {
		return nil, err
	}
	//
	switch len(operands) {
	case 2:
		lhs, err := parseTerm(m, operands[0])
		if err != nil {
			return nil, err
		}
		//
		rhs, err := parseTerm(m, operands[1])
		if err != nil {
			return nil, err
		}
		//
		return build(lhs, rhs), nil
	case 3:
		terms := make([]expr.Term, 3)
		//
		for i, operand := range operands {
			if operand == nil {
				terms[i] = absentBound(i == 0, ge)
				continue
			}
			//
			term, err := parseTerm(m, operand)
			if err != nil {
				return nil, err
			}
			//
			terms[i] = term
		}
		//
		return chain(build(terms[0], terms[1]), terms[2]), nil
	default:
		return nil, fmt.Errorf("operator %q expects 2 or 3 operands, got %d", op, len(operands))
	}
}

// chainOps resolves a relational operator to its binary constructor and its
// chain-extension method.
func chainOps(op string) (func(expr.Term, expr.Term) *expr.Relation,
	func(*expr.Relation, expr.Term) *expr.Relation, bool, error) {
	switch op {
	case "<=":
		return expr.LessThanOrEquals, (*expr.Relation).LessThanOrEquals, false, nil
	case "<":
		return expr.LessThan, (*expr.Relation).LessThan, false, nil
	case ">=":
		return expr.GreaterThanOrEquals, (*expr.Relation).GreaterThanOrEquals, true, nil
	case ">":
		return expr.GreaterThan, (*expr.Relation).GreaterThan, true, nil
	default:
		return nil, nil, false, fmt.Errorf("unknown relational operator %q", op)
	}
}

// absentBound returns the infinite literal denoting "no bound" for the given
// chain position and direction.
func absentBound(first bool, ge bool) expr.Term {
	neg := first != ge
	//
	if neg {
		return expr.Const(math.Inf(-1))
	}
	//
	return expr.Const(math.Inf(1))
}

func parseTerm(m *model.Model, node any) (expr.Term, error) {
	switch n := node.(type) {
	case float64:
		return expr.Const(n), nil
	case string:
		leaf := m.Leaf(n)
		if leaf == nil {
			return nil, fmt.Errorf("unknown variable or parameter %q", n)
		}
		//
		return leaf, nil
	case []any:
		return parseOperation(m, n)
	default:
		return nil, fmt.Errorf("cannot parse %v as a term", node)
	}
}

func parseOperation(m *model.Model, list []any) (expr.Term, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	//
	op, ok := list[0].(string)
	if !ok {
		return nil, fmt.Errorf("expression must start with an operator")
	}
	//
	args := make([]expr.Term, len(list)-1)
	//
	for i, operand := range list[1:] {
		arg, err := parseTerm(m, operand)
		if err != nil {
			return nil, err
		}
		//
		args[i] = arg
	}
	//
	switch op {
	case "+":
		return expr.Sum(args...), nil
	case "-":
		return expr.Subtract(args...), nil
	case "*":
		return expr.Product(args...), nil
	case "/":
		if len(args) != 2 {
			return nil, fmt.Errorf("operator %q expects 2 operands, got %d", op, len(args))
		}
		//
		return expr.Divide(args[0], args[1]), nil
	case "neg":
		if len(args) != 1 {
			return nil, fmt.Errorf("operator %q expects 1 operand, got %d", op, len(args))
		}
		//
		return expr.Negate(args[0]), nil
	case "^":
		if len(args) != 2 {
			return nil, fmt.Errorf("operator %q expects 2 operands, got %d", op, len(args))
		}
		//
		pow, ok := args[1].(*expr.Constant)
		if !ok {
			return nil, fmt.Errorf("operator %q expects a constant power", op)
		}
		//
		return expr.Exponent(args[0], pow.Float()), nil
	default:
		return nil, fmt.Errorf("unknown operator %q", op)
	}
}
