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
	"math"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// ============================================================================
// IfThenElse
// ============================================================================

// IfThenElse represents a conditional expression.  The test is considered to
// hold when it evaluates to any non-zero value.
type IfThenElse struct {
	test    Expr
	then    Expr
	elseArm Expr
	pv      bool
}

// NewIfThenElse constructs a conditional expression.
func NewIfThenElse(test Expr, then Expr, elseArm Expr) *IfThenElse {
	return &IfThenElse{test, then, elseArm, isPotentiallyVariable(test, then, elseArm)}
}

// Test returns the condition of this expression.
func (p *IfThenElse) Test() Expr { return p.test }

// Then returns the expression selected when the test holds.
func (p *IfThenElse) Then() Expr { return p.then }

// Else returns the expression selected when the test does not hold.
func (p *IfThenElse) Else() Expr { return p.elseArm }

// Op implementation for Expr interface.
func (p *IfThenElse) Op() Op { return OpIf }

// Args implementation for Expr interface.
func (p *IfThenElse) Args() []Expr { return []Expr{p.test, p.then, p.elseArm} }

// WithArgs implementation for Expr interface.
func (p *IfThenElse) WithArgs(args []Expr) Expr { return NewIfThenElse(args[0], args[1], args[2]) }

// Eval implementation for Expr interface.
func (p *IfThenElse) Eval() (float64, error) {
	test, err := p.test.Eval()
	if err != nil {
		return math.NaN(), err
	} else if test != 0 {
		return p.then.Eval()
	}
	//
	return p.elseArm.Eval()
}

// IsFixed implementation for Expr interface.
func (p *IfThenElse) IsFixed() bool { return isFixed(p.test, p.then, p.elseArm) }

// IsPotentiallyVariable implementation for Expr interface.
func (p *IfThenElse) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *IfThenElse) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *IfThenElse) Lisp() sexp.SExp { return lispOf("if", p.test, p.then, p.elseArm) }

func (p *IfThenElse) String() string { return p.Lisp().String(true) }

// ============================================================================
// Compare
// ============================================================================

// Relation identifies a relational operator.
type Relation uint8

const (
	// LessThan is the strict inequality "<".
	LessThan Relation = iota
	// LessThanOrEquals is the inequality "<=".
	LessThanOrEquals
	// Equals is the equality "==".
	Equals
)

func (p Relation) String() string {
	switch p {
	case LessThan:
		return "<"
	case LessThanOrEquals:
		return "<="
	default:
		return "=="
	}
}

// Holds determines whether this relation holds between two values.  As for
// IEEE comparisons, no relation holds when either value is NaN.
func (p Relation) Holds(lhs float64, rhs float64) bool {
	switch p {
	case LessThan:
		return lhs < rhs
	case LessThanOrEquals:
		return lhs <= rhs
	default:
		return lhs == rhs
	}
}

// Compare represents a relational comparison between two expressions, which
// evaluates to 1 when the relation holds and 0 otherwise.
type Compare struct {
	relation Relation
	lhs      Expr
	rhs      Expr
	pv       bool
}

// NewCompare constructs a relational comparison.
func NewCompare(relation Relation, lhs Expr, rhs Expr) *Compare {
	return &Compare{relation, lhs, rhs, isPotentiallyVariable(lhs, rhs)}
}

// Relation returns the relational operator of this comparison.
func (p *Compare) Relation() Relation { return p.relation }

// Op implementation for Expr interface.
func (p *Compare) Op() Op { return OpCompare }

// Args implementation for Expr interface.
func (p *Compare) Args() []Expr { return []Expr{p.lhs, p.rhs} }

// WithArgs implementation for Expr interface.
func (p *Compare) WithArgs(args []Expr) Expr { return NewCompare(p.relation, args[0], args[1]) }

// Eval implementation for Expr interface.
func (p *Compare) Eval() (float64, error) {
	lhs, rhs, err := evalPair(p.lhs, p.rhs)
	if err != nil {
		return math.NaN(), err
	}
	//
	return Truth(p.relation.Holds(lhs, rhs)), nil
}

// IsFixed implementation for Expr interface.
func (p *Compare) IsFixed() bool { return p.lhs.IsFixed() && p.rhs.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Compare) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *Compare) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Compare) Lisp() sexp.SExp { return lispOf(p.relation.String(), p.lhs, p.rhs) }

func (p *Compare) String() string { return p.Lisp().String(true) }

// Truth converts a boolean into its numeric representation.
func Truth(b bool) float64 {
	if b {
		return 1
	}
	//
	return 0
}
