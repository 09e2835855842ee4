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
// Package expr provides the algebraic expression trees which make up the
// bodies of constraints and objectives in a model.  Expressions are built from
// numeric constants, decision variables, mutable parameters and operators
// (sums, products, powers, unary functions, conditionals, external function
// calls, etc).  Named expressions provide shared subexpressions which can be
// referenced from many places.
package expr

import (
	"fmt"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// Op identifies the kind of operator (or leaf) represented by an expression
// node.  Rule tables are indexed by this kind, rather than by the concrete Go
// type of a node.
type Op uint8

const (
	// OpConstant identifies a numeric literal.
	OpConstant Op = iota
	// OpVar identifies a decision variable.
	OpVar
	// OpParam identifies a mutable parameter.
	OpParam
	// OpSum identifies an n-ary sum.
	OpSum
	// OpNegation identifies a unary negation.
	OpNegation
	// OpProduct identifies a binary product.
	OpProduct
	// OpMonomial identifies a product of a (non-variable) coefficient and a
	// variable.
	OpMonomial
	// OpLinear identifies an n-ary sum of monomials and constants.
	OpLinear
	// OpDivision identifies a binary division.
	OpDivision
	// OpPower identifies exponentiation.
	OpPower
	// OpUnary identifies the application of a named unary function.
	OpUnary
	// OpAbs identifies the absolute value function.
	OpAbs
	// OpIf identifies a conditional expression.
	OpIf
	// OpCompare identifies a relational comparison.
	OpCompare
	// OpNamed identifies a named (shared) subexpression.
	OpNamed
	// OpExternal identifies a call to an external function.
	OpExternal
)

var opNames = []string{"constant", "var", "param", "sum", "negation", "product", "monomial", "linear", "division",
	"power", "unary", "abs", "if", "compare", "named", "external"}

func (p Op) String() string {
	if int(p) < len(opNames) {
		return opNames[p]
	}
	//
	return fmt.Sprintf("op(%d)", p)
}

// Expr represents an arbitrary node in an expression tree.
type Expr interface {
	fmt.Stringer
	// Op returns the operator kind of this node.
	Op() Op
	// Args returns the immediate children of this node, which is empty for
	// leaves.
	Args() []Expr
	// WithArgs constructs a node of the same kind as this node, but over a
	// different set of children.  Leaves return themselves.
	WithArgs([]Expr) Expr
	// Eval evaluates this expression using the current values of all
	// variables and parameters.  This can fail, for example, if a variable has
	// no value or a function is applied outside of its domain.
	Eval() (float64, error)
	// IsFixed determines whether this expression currently evaluates to a
	// constant.  That is, whether every variable it depends upon is fixed.
	IsFixed() bool
	// IsPotentiallyVariable determines whether this expression could ever
	// depend upon a decision variable.  Expressions built only from constants
	// and parameters are not potentially variable.
	IsPotentiallyVariable() bool
	// IsExpressionType distinguishes operator nodes (and named expressions)
	// from leaves.
	IsExpressionType() bool
	// Lisp converts this expression into an S-Expression.
	Lisp() sexp.SExp
}

// Variable captures a decision variable, which is identified by a stable
// identity assigned by its Arena.
type Variable interface {
	Expr
	// Id returns the identity of this variable.
	Id() VarId
	// Name returns the (local) name of this variable.
	Name() string
}

// Subexpression captures a named expression which can be shared between many
// parent expressions.
type Subexpression interface {
	Expr
	// Id returns the identity of this named expression.
	Id() NamedId
	// Name returns the (local) name of this named expression.
	Name() string
	// Body returns the underlying expression.
	Body() Expr
	// SetBody replaces the underlying expression.
	SetBody(Expr)
}

// IsConstant checks whether a given expression is a numeric literal and, if
// so, returns its value.
func IsConstant(e Expr) (float64, bool) {
	if c, ok := e.(*Constant); ok {
		return c.Value, true
	}
	//
	return 0, false
}

func isPotentiallyVariable(args ...Expr) bool {
	for _, arg := range args {
		if arg.IsPotentiallyVariable() {
			return true
		}
	}
	//
	return false
}

func isFixed(args ...Expr) bool {
	for _, arg := range args {
		if !arg.IsFixed() {
			return false
		}
	}
	//
	return true
}

func lispOf(head string, args ...Expr) sexp.SExp {
	elements := make([]sexp.SExp, len(args)+1)
	elements[0] = sexp.NewSymbol(head)
	//
	for i, arg := range args {
		elements[i+1] = arg.Lisp()
	}
	//
	return sexp.NewList(elements...)
}
