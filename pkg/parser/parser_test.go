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
package parser

import (
	"os"
	"testing"

	"github.com/consensys/go-modelkit/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModel(t *testing.T) {
	doc := `{
		"name": "diet",
		"variables": [{"name": "x", "value": 2}],
		"parameters": [{"name": "p", "value": 1}],
		"constraints": [
			{"name": "c1", "expr": ["<=", 0, ["+", "x", "x"], 10]},
			{"name": "c2", "expr": ["==", ["*", 2, "x"], 4]}
		]
	}`
	//
	m, constraints, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "diet", m.Name())
	require.Len(t, constraints, 2)
	// c1: 0 <= x + x <= 10
	entry, err := constraints[0].Entry()
	require.NoError(t, err)
	//
	val, err := entry.Value()
	require.NoError(t, err)
	assert.Equal(t, 4.0, val)
	//
	lower, err := entry.LowerValue()
	require.NoError(t, err)
	assert.Equal(t, 0.0, lower)
	//
	upper, err := entry.UpperValue()
	require.NoError(t, err)
	assert.Equal(t, 10.0, upper)
	// c2: 2x == 4
	eq, err := constraints[1].Equality()
	require.NoError(t, err)
	assert.True(t, eq)
	//
	entry, err = constraints[1].Entry()
	require.NoError(t, err)
	//
	sat, err := entry.Satisfied()
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestParseRelationalOperators(t *testing.T) {
	tests := []struct {
		expr        string
		strictLower bool
		strictUpper bool
	}{
		{`["<=", "x", 1]`, false, false},
		{`["<", "x", 1]`, false, true},
		{`[">=", "x", 1]`, false, false},
		{`[">", "x", 1]`, true, false},
	}
	//
	for _, test := range tests {
		m, constraints := parseOne(t, test.expr)
		require.NotNil(t, m)
		//
		entry, err := constraints[0].Entry()
		require.NoError(t, err)
		assert.Equal(t, test.strictLower, entry.StrictLower, test.expr)
		assert.Equal(t, test.strictUpper, entry.StrictUpper, test.expr)
	}
}

// In the three-operand form, null denotes an absent bound.
func TestParseNullBounds(t *testing.T) {
	_, constraints := parseOne(t, `["<=", null, "x", 5]`)
	//
	entry, err := constraints[0].Entry()
	require.NoError(t, err)
	assert.Nil(t, entry.Lower)
	require.NotNil(t, entry.Upper)
	// Descending form: [">=", 5, "x", null] bounds x above by 5.
	_, constraints = parseOne(t, `[">=", 5, "x", null]`)
	//
	entry, err = constraints[0].Entry()
	require.NoError(t, err)
	assert.Nil(t, entry.Lower)
	//
	upper, err := entry.UpperValue()
	require.NoError(t, err)
	assert.Equal(t, 5.0, upper)
}

func TestParseArithmetic(t *testing.T) {
	tests := []struct {
		expr     string
		expected float64
	}{
		{`["==", ["+", "x", 1, 2], 5]`, 5},
		{`["==", ["-", "x", 1], 1]`, 1},
		{`["==", ["*", "x", 3], 6]`, 6},
		{`["==", ["/", "x", 2], 1]`, 1},
		{`["==", ["neg", "x"], -2]`, -2},
		{`["==", ["^", "x", 2], 4]`, 4},
	}
	// x carries the value 2 in all cases
	for _, test := range tests {
		_, constraints := parseOne(t, test.expr)
		//
		val, err := constraints[0].Value()
		require.NoError(t, err, test.expr)
		assert.Equal(t, test.expected, val, test.expr)
	}
}

func TestParseUnsetLeaves(t *testing.T) {
	doc := `{
		"name": "m",
		"variables": [{"name": "x"}],
		"parameters": [{"name": "p"}],
		"constraints": [{"name": "c", "expr": ["<=", "x", "p"]}]
	}`
	// An unvalued parameter is mutable and unset; parsing succeeds regardless.
	m, constraints, err := Parse([]byte(doc))
	require.NoError(t, err)
	//
	entry, err := constraints[0].Entry()
	require.NoError(t, err)
	// Evaluation fails at query time only.
	_, err = entry.UpperValue()
	assert.Error(t, err)
	//
	require.NoError(t, m.Parameter("p").SetValue(3))
	//
	upper, err := entry.UpperValue()
	require.NoError(t, err)
	assert.Equal(t, 3.0, upper)
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		// not valid JSON
		`{`,
		// unknown leaf
		`{"name": "m", "constraints": [{"name": "c", "expr": ["<=", "y", 1]}]}`,
		// unknown relational operator
		`{"name": "m", "variables": [{"name": "x"}],
		  "constraints": [{"name": "c", "expr": ["!=", "x", 1]}]}`,
		// no relational operator at all
		`{"name": "m", "variables": [{"name": "x"}],
		  "constraints": [{"name": "c", "expr": ["+", "x", 1]}]}`,
		// equality takes exactly two operands
		`{"name": "m", "variables": [{"name": "x"}],
		  "constraints": [{"name": "c", "expr": ["==", 0, "x", 1]}]}`,
		// non-constant power
		`{"name": "m", "variables": [{"name": "x"}],
		  "constraints": [{"name": "c", "expr": ["<=", ["^", "x", "x"], 1]}]}`,
	}
	//
	for _, doc := range tests {
		_, _, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestParseDietModel(t *testing.T) {
	data, err := os.ReadFile("testdata/diet.json")
	require.NoError(t, err)
	//
	m, constraints, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, constraints, 3)
	// calories: 120 bread + 150 milk <= 2200
	entry, err := constraints[0].Entry()
	require.NoError(t, err)
	//
	sat, err := entry.Satisfied()
	require.NoError(t, err)
	assert.True(t, sat)
	// protein bound is a mutable unset parameter; satisfaction is unknowable
	// until it is given a value.
	entry, err = constraints[1].Entry()
	require.NoError(t, err)
	//
	_, err = entry.Satisfied()
	require.Error(t, err)
	//
	require.NoError(t, m.Parameter("min_protein").SetValue(30))
	//
	sat, err = entry.Satisfied()
	require.NoError(t, err)
	assert.True(t, sat)
	// milk_range: 0 <= milk <= 4
	entry, err = constraints[2].Entry()
	require.NoError(t, err)
	//
	uslack, err := entry.USlack()
	require.NoError(t, err)
	assert.Equal(t, 1.0, uslack)
}

// parseOne parses a single-constraint document over a variable x valued 2.
func parseOne(t *testing.T, expr string) (*model.Model, []*model.Constraint) {
	t.Helper()
	//
	doc := `{"name": "m", "variables": [{"name": "x", "value": 2}],
		"constraints": [{"name": "c", "expr": ` + expr + `}]}`
	//
	m, constraints, err := Parse([]byte(doc))
	require.NoError(t, err)
	require.Len(t, constraints, 1)
	//
	return m, constraints
}
