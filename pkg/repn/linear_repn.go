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
package repn

import (
	"fmt"
	"strings"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// LinearRepn is the canonical representation of an expression.  This is used
// both as the working accumulator during a walk, and as the final result.  The
// represented expression is:
//
//	Multiplier * (Constant + sum(c * v for v,c in Linear) + Nonlinear)
//
// The multiplier is only ever different from one whilst the representation is
// being constructed, and is distributed through before a walk completes.
type LinearRepn struct {
	Multiplier float64
	Constant   float64
	Linear     *LinearMap
	// Nonlinear residual, which is nil if the representation is exactly
	// affine.
	Nonlinear expr.Expr
}

// NewLinearRepn constructs a representation of the constant zero.
func NewLinearRepn() *LinearRepn {
	return &LinearRepn{1, 0, NewLinearMap(), nil}
}

// Kind returns the classification of this representation.
func (p *LinearRepn) Kind() Kind {
	switch {
	case p.Nonlinear != nil:
		return General
	case p.Linear.Len() > 0:
		return Linear
	default:
		return Constant
	}
}

// Result converts this representation into a classified result.  Constant
// results absorb any pending multiplier.
func (p *LinearRepn) Result() Result {
	kind := p.Kind()
	//
	if kind == Constant {
		return ConstantResult(p.Multiplier * p.Constant)
	}
	//
	return Result{kind, 0, p}
}

// Duplicate returns an independent copy of this representation.  The nonlinear
// residual is shared since expressions are never mutated.
func (p *LinearRepn) Duplicate() *LinearRepn {
	return &LinearRepn{p.Multiplier, p.Constant, p.Linear.Clone(), p.Nonlinear}
}

// Append merges a child result into this representation, which is assumed to
// be accumulating a sum.
func (p *LinearRepn) Append(other Result) {
	if other.Kind == Constant {
		p.Constant += other.Value
		return
	}
	//
	var (
		o    = other.Repn
		mult = o.Multiplier
	)
	//
	if o.Constant != 0 {
		p.Constant += mult * o.Constant
	}
	//
	for _, id := range o.Linear.Keys() {
		c, _ := o.Linear.Get(id)
		p.Linear.Add(id, mult*c)
	}
	//
	if o.Nonlinear != nil {
		nl := o.Nonlinear
		//
		if mult != 1 {
			nl = expr.Mul(expr.Const(mult), nl)
		}
		//
		if p.Nonlinear == nil {
			p.Nonlinear = nl
		} else {
			p.Nonlinear = expr.Add(p.Nonlinear, nl)
		}
	}
}

// Finalise distributes any pending multiplier through this representation,
// and removes every variable whose coefficient is exactly zero.  Variables
// whose coefficient is NaN are retained.  A zero constant stays zero, even for
// an infinite multiplier.
func (p *LinearRepn) Finalise() {
	if mult := p.Multiplier; mult != 1 {
		if p.Constant != 0 {
			p.Constant *= mult
		}
		//
		p.Linear.Scale(mult)
		//
		if p.Nonlinear != nil {
			p.Nonlinear = expr.Mul(expr.Const(mult), p.Nonlinear)
		}
		//
		p.Multiplier = 1
	}
	//
	p.Linear.RemoveZeros()
}

func (p *LinearRepn) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	if p.Multiplier != 1 {
		builder.WriteString(fmt.Sprintf("mult=%s, ", expr.FormatNumber(p.Multiplier)))
	}
	//
	builder.WriteString(fmt.Sprintf("const=%s, linear=[", expr.FormatNumber(p.Constant)))
	//
	for i, id := range p.Linear.Keys() {
		c, _ := p.Linear.Get(id)
		//
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(fmt.Sprintf("#%d:%s", id, expr.FormatNumber(c)))
	}
	//
	builder.WriteString("]")
	//
	if p.Nonlinear != nil {
		builder.WriteString(fmt.Sprintf(", nonlinear=%s", p.Nonlinear.String()))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
