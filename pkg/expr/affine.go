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
	"fmt"
	"math"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// ============================================================================
// Monomial
// ============================================================================

// Monomial represents the product of a coefficient and a single variable,
// where the coefficient can never depend upon a decision variable (though it
// may depend upon mutable parameters).
type Monomial struct {
	coefficient Expr
	variable    Variable
}

// NewMonomial constructs a monomial term.  The coefficient must not be
// potentially variable.
func NewMonomial(coefficient Expr, variable Variable) *Monomial {
	if coefficient.IsPotentiallyVariable() {
		panic(fmt.Sprintf("monomial coefficient %s is potentially variable", coefficient.String()))
	}
	//
	return &Monomial{coefficient, variable}
}

// Coefficient returns the coefficient of this monomial.
func (p *Monomial) Coefficient() Expr { return p.coefficient }

// Variable returns the variable of this monomial.
func (p *Monomial) Variable() Variable { return p.variable }

// Op implementation for Expr interface.
func (p *Monomial) Op() Op { return OpMonomial }

// Args implementation for Expr interface.
func (p *Monomial) Args() []Expr { return []Expr{p.coefficient, p.variable} }

// WithArgs implementation for Expr interface.  If the replacement arguments no
// longer form a monomial, then a more general product is returned.
func (p *Monomial) WithArgs(args []Expr) Expr { return Mul(args[0], args[1]) }

// Eval implementation for Expr interface.
func (p *Monomial) Eval() (float64, error) {
	c, v, err := evalPair(p.coefficient, p.variable)
	return c * v, err
}

// IsFixed implementation for Expr interface.
func (p *Monomial) IsFixed() bool { return p.coefficient.IsFixed() && p.variable.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Monomial) IsPotentiallyVariable() bool { return true }

// IsExpressionType implementation for Expr interface.
func (p *Monomial) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Monomial) Lisp() sexp.SExp { return lispOf("*", p.coefficient, p.variable) }

func (p *Monomial) String() string { return p.Lisp().String(true) }

// ============================================================================
// Linear
// ============================================================================

// Linear represents a pre-aggregated affine sum.  That is, a sum whose terms
// are either monomials or expressions which are not potentially variable.
type Linear struct {
	terms []Expr
}

// NewLinear constructs an affine sum over a given set of terms.  Every term
// must be either a monomial, or not potentially variable.
func NewLinear(terms ...Expr) *Linear {
	for _, term := range terms {
		if _, ok := term.(*Monomial); !ok && term.IsPotentiallyVariable() {
			panic(fmt.Sprintf("invalid affine term %s", term.String()))
		}
	}
	//
	return &Linear{terms}
}

// Op implementation for Expr interface.
func (p *Linear) Op() Op { return OpLinear }

// Args implementation for Expr interface.
func (p *Linear) Args() []Expr { return p.terms }

// WithArgs implementation for Expr interface.  If the replacement terms are no
// longer affine, then a more general sum is returned.
func (p *Linear) WithArgs(args []Expr) Expr { return Add(args...) }

// Eval implementation for Expr interface.
func (p *Linear) Eval() (float64, error) {
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
func (p *Linear) IsFixed() bool { return isFixed(p.terms...) }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Linear) IsPotentiallyVariable() bool { return isPotentiallyVariable(p.terms...) }

// IsExpressionType implementation for Expr interface.
func (p *Linear) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Linear) Lisp() sexp.SExp { return lispOf("+", p.terms...) }

func (p *Linear) String() string { return p.Lisp().String(true) }
