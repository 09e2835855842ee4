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
// Sum
// ============================================================================

// Sum represents an n-ary sum of arbitrary terms.
type Sum struct {
	terms []Expr
	pv    bool
}

// NewSum constructs a sum over a given set of terms.  Observe that no
// simplification is applied.
func NewSum(terms ...Expr) *Sum {
	return &Sum{terms, isPotentiallyVariable(terms...)}
}

// Op implementation for Expr interface.
func (p *Sum) Op() Op { return OpSum }

// Args implementation for Expr interface.
func (p *Sum) Args() []Expr { return p.terms }

// WithArgs implementation for Expr interface.
func (p *Sum) WithArgs(args []Expr) Expr { return NewSum(args...) }

// Eval implementation for Expr interface.
func (p *Sum) Eval() (float64, error) {
	var sum float64
	//
	for _, term := range p.terms {
		v, err := term.Eval()
		if err != nil {
			return math.NaN(), err
		}
		//
		sum += v
	}
	//
	return sum, nil
}

// IsFixed implementation for Expr interface.
func (p *Sum) IsFixed() bool { return isFixed(p.terms...) }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Sum) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *Sum) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Sum) Lisp() sexp.SExp { return lispOf("+", p.terms...) }

func (p *Sum) String() string { return p.Lisp().String(true) }

// ============================================================================
// Negation
// ============================================================================

// Negation represents the negation of an arbitrary expression.
type Negation struct {
	arg Expr
}

// NewNegation constructs a negation of a given expression.
func NewNegation(arg Expr) *Negation {
	return &Negation{arg}
}

// Op implementation for Expr interface.
func (p *Negation) Op() Op { return OpNegation }

// Args implementation for Expr interface.
func (p *Negation) Args() []Expr { return []Expr{p.arg} }

// WithArgs implementation for Expr interface.
func (p *Negation) WithArgs(args []Expr) Expr { return NewNegation(args[0]) }

// Eval implementation for Expr interface.
func (p *Negation) Eval() (float64, error) {
	v, err := p.arg.Eval()
	return -v, err
}

// IsFixed implementation for Expr interface.
func (p *Negation) IsFixed() bool { return p.arg.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Negation) IsPotentiallyVariable() bool { return p.arg.IsPotentiallyVariable() }

// IsExpressionType implementation for Expr interface.
func (p *Negation) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Negation) Lisp() sexp.SExp { return lispOf("-", p.arg) }

func (p *Negation) String() string { return p.Lisp().String(true) }

// ============================================================================
// Product
// ============================================================================

// Product represents the product of two arbitrary expressions.
type Product struct {
	lhs Expr
	rhs Expr
	pv  bool
}

// NewProduct constructs the product of two expressions.
func NewProduct(lhs Expr, rhs Expr) *Product {
	return &Product{lhs, rhs, isPotentiallyVariable(lhs, rhs)}
}

// Op implementation for Expr interface.
func (p *Product) Op() Op { return OpProduct }

// Args implementation for Expr interface.
func (p *Product) Args() []Expr { return []Expr{p.lhs, p.rhs} }

// WithArgs implementation for Expr interface.
func (p *Product) WithArgs(args []Expr) Expr { return NewProduct(args[0], args[1]) }

// Eval implementation for Expr interface.
func (p *Product) Eval() (float64, error) {
	lhs, rhs, err := evalPair(p.lhs, p.rhs)
	return lhs * rhs, err
}

// IsFixed implementation for Expr interface.
func (p *Product) IsFixed() bool { return p.lhs.IsFixed() && p.rhs.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Product) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *Product) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Product) Lisp() sexp.SExp { return lispOf("*", p.lhs, p.rhs) }

func (p *Product) String() string { return p.Lisp().String(true) }

// ============================================================================
// Division
// ============================================================================

// Division represents the quotient of two arbitrary expressions.
type Division struct {
	lhs Expr
	rhs Expr
	pv  bool
}

// NewDivision constructs the quotient of two expressions.
func NewDivision(lhs Expr, rhs Expr) *Division {
	return &Division{lhs, rhs, isPotentiallyVariable(lhs, rhs)}
}

// Op implementation for Expr interface.
func (p *Division) Op() Op { return OpDivision }

// Args implementation for Expr interface.
func (p *Division) Args() []Expr { return []Expr{p.lhs, p.rhs} }

// WithArgs implementation for Expr interface.
func (p *Division) WithArgs(args []Expr) Expr { return NewDivision(args[0], args[1]) }

// Eval implementation for Expr interface.
func (p *Division) Eval() (float64, error) {
	lhs, rhs, err := evalPair(p.lhs, p.rhs)
	if err != nil {
		return math.NaN(), err
	}
	//
	return Divide(p, lhs, rhs)
}

// IsFixed implementation for Expr interface.
func (p *Division) IsFixed() bool { return p.lhs.IsFixed() && p.rhs.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Division) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *Division) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Division) Lisp() sexp.SExp { return lispOf("/", p.lhs, p.rhs) }

func (p *Division) String() string { return p.Lisp().String(true) }

// Divide two numbers, where division by zero is reported as a domain error
// against a given expression.
func Divide(e Expr, lhs float64, rhs float64) (float64, error) {
	if rhs == 0 {
		return math.NaN(), &DomainError{e, "division by zero"}
	}
	//
	return lhs / rhs, nil
}

// ============================================================================
// Power
// ============================================================================

// Power represents an expression raised to the power of another.
type Power struct {
	base     Expr
	exponent Expr
	pv       bool
}

// NewPower constructs an exponentiation.
func NewPower(base Expr, exponent Expr) *Power {
	return &Power{base, exponent, isPotentiallyVariable(base, exponent)}
}

// Op implementation for Expr interface.
func (p *Power) Op() Op { return OpPower }

// Args implementation for Expr interface.
func (p *Power) Args() []Expr { return []Expr{p.base, p.exponent} }

// WithArgs implementation for Expr interface.
func (p *Power) WithArgs(args []Expr) Expr { return NewPower(args[0], args[1]) }

// Eval implementation for Expr interface.
func (p *Power) Eval() (float64, error) {
	base, exponent, err := evalPair(p.base, p.exponent)
	if err != nil {
		return math.NaN(), err
	}
	//
	return PowValue(p, base, exponent)
}

// IsFixed implementation for Expr interface.
func (p *Power) IsFixed() bool { return p.base.IsFixed() && p.exponent.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Power) IsPotentiallyVariable() bool { return p.pv }

// IsExpressionType implementation for Expr interface.
func (p *Power) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Power) Lisp() sexp.SExp { return lispOf("^", p.base, p.exponent) }

func (p *Power) String() string { return p.Lisp().String(true) }

// PowValue raises one number to the power of another, where results outside the
// reals (e.g. a negative number raised to a fractional power) and zero raised
// to a negative power are reported as domain errors against a given
// expression.
func PowValue(e Expr, base float64, exponent float64) (float64, error) {
	switch {
	case base < 0 && !math.IsInf(exponent, 0) && exponent != math.Trunc(exponent):
		return math.NaN(), &DomainError{e, "complex result"}
	case base == 0 && exponent < 0:
		return math.NaN(), &DomainError{e, "zero raised to negative power"}
	}
	//
	return math.Pow(base, exponent), nil
}

// ============================================================================
// Abs
// ============================================================================

// Abs represents the absolute value of an arbitrary expression.
type Abs struct {
	arg Expr
}

// NewAbs constructs the absolute value of an expression.
func NewAbs(arg Expr) *Abs {
	return &Abs{arg}
}

// Op implementation for Expr interface.
func (p *Abs) Op() Op { return OpAbs }

// Args implementation for Expr interface.
func (p *Abs) Args() []Expr { return []Expr{p.arg} }

// WithArgs implementation for Expr interface.
func (p *Abs) WithArgs(args []Expr) Expr { return NewAbs(args[0]) }

// Eval implementation for Expr interface.
func (p *Abs) Eval() (float64, error) {
	v, err := p.arg.Eval()
	return math.Abs(v), err
}

// IsFixed implementation for Expr interface.
func (p *Abs) IsFixed() bool { return p.arg.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Abs) IsPotentiallyVariable() bool { return p.arg.IsPotentiallyVariable() }

// IsExpressionType implementation for Expr interface.
func (p *Abs) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Abs) Lisp() sexp.SExp { return lispOf("abs", p.arg) }

func (p *Abs) String() string { return p.Lisp().String(true) }

func evalPair(lhs Expr, rhs Expr) (float64, float64, error) {
	l, err := lhs.Eval()
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	//
	r, err := rhs.Eval()
	if err != nil {
		return math.NaN(), math.NaN(), err
	}
	//
	return l, r, nil
}
