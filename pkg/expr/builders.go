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

// Add constructs the sum of zero or more terms.  Nested sums are flattened
// and, when every term is affine (i.e. a variable, a monomial, an affine sum
// or something not potentially variable) and at least one term is potentially
// variable, a pre-aggregated affine sum is produced instead of a general one.
func Add(terms ...Expr) Expr {
	var flattened []Expr
	//
	for _, term := range terms {
		switch t := term.(type) {
		case *Sum:
			flattened = append(flattened, t.terms...)
		case *Linear:
			flattened = append(flattened, t.terms...)
		default:
			flattened = append(flattened, term)
		}
	}
	//
	switch len(flattened) {
	case 0:
		return Const(0)
	case 1:
		return flattened[0]
	}
	//
	if affine, ok := asAffineTerms(flattened); ok {
		return &Linear{affine}
	}
	//
	return NewSum(flattened...)
}

// Sub constructs the difference of two expressions.
func Sub(lhs Expr, rhs Expr) Expr {
	return Add(lhs, Neg(rhs))
}

// Neg constructs the negation of an expression.  Constants and monomials are
// negated directly, whilst double negations cancel.
func Neg(e Expr) Expr {
	switch t := e.(type) {
	case *Constant:
		return Const(-t.Value)
	case *Negation:
		return t.arg
	case *Monomial:
		return &Monomial{Neg(t.coefficient), t.variable}
	case Variable:
		return &Monomial{Const(-1), t}
	}
	//
	return NewNegation(e)
}

// Mul constructs the product of two expressions.  Products of constants are
// folded, and the product of a variable (or monomial) with something which is
// not potentially variable produces a monomial.
func Mul(lhs Expr, rhs Expr) Expr {
	if l, ok := IsConstant(lhs); ok {
		if r, ok := IsConstant(rhs); ok {
			return Const(l * r)
		}
	}
	//
	if m := asMonomial(lhs, rhs); m != nil {
		return m
	} else if m := asMonomial(rhs, lhs); m != nil {
		return m
	}
	//
	return NewProduct(lhs, rhs)
}

// Div constructs the quotient of two expressions.  Division by a non-zero
// constant is folded into constants and monomials where possible.
func Div(lhs Expr, rhs Expr) Expr {
	if r, ok := IsConstant(rhs); ok && r != 0 {
		switch t := lhs.(type) {
		case *Constant:
			return Const(t.Value / r)
		case *Monomial:
			if c, ok := IsConstant(t.coefficient); ok {
				return &Monomial{Const(c / r), t.variable}
			}
		case Variable:
			return &Monomial{Const(1 / r), t}
		}
	}
	//
	return NewDivision(lhs, rhs)
}

// Pow constructs an exponentiation.
func Pow(base Expr, exponent Expr) Expr {
	return NewPower(base, exponent)
}

// asMonomial attempts to construct a monomial from a coefficient and a term,
// returning nil if this is not possible.
func asMonomial(coefficient Expr, term Expr) Expr {
	if coefficient.IsPotentiallyVariable() {
		return nil
	}
	//
	switch t := term.(type) {
	case *Monomial:
		// Fold constant coefficients together
		if c, ok := IsConstant(coefficient); ok {
			if d, ok := IsConstant(t.coefficient); ok {
				return &Monomial{Const(c * d), t.variable}
			}
		}
	case Variable:
		return &Monomial{coefficient, t}
	}
	//
	return nil
}

func asAffineTerms(terms []Expr) ([]Expr, bool) {
	var (
		affine   = make([]Expr, len(terms))
		variable = false
	)
	//
	for i, term := range terms {
		switch t := term.(type) {
		case *Monomial:
			affine[i] = t
			variable = true
		case Variable:
			affine[i] = &Monomial{Const(1), t}
			variable = true
		default:
			if term.IsPotentiallyVariable() {
				return nil, false
			}
			//
			affine[i] = term
		}
	}
	//
	return affine, variable
}
