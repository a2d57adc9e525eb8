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
)

// ErrMalformedRelation is the kind shared by all errors arising from a
// relational description whose shape cannot be canonicalised (wrong tuple
// arity, no variable-bearing side, mixed-direction chain, improper infinite
// bound, and so on).  These are modelling mistakes: the caller fixes the rule
// or expression and tries again.  Query-time evaluation failures (see
// expr.NoValueError) are never of this kind.
var ErrMalformedRelation = errors.New("malformed relational expression")

// malformed constructs a malformed-relation error with a specific reason.
func malformed(format string, args ...any) error {
	reason := fmt.Sprintf(format, args...)
	//
	return fmt.Errorf("%w: %s", ErrMalformedRelation, reason)
}
