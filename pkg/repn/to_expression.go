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
	"github.com/consensys/go-linrepn/pkg/expr"
)

// ToExpression reconstructs an expression from this representation.  Monomials
// are generated for every variable with a non-zero coefficient (with unit
// coefficients giving the variable itself), and then the
// constant and nonlinear residual are added.  Finally, any pending multiplier
// is applied.
func (p *LinearRepn) ToExpression(vars *VarMap) expr.Expr {
	var (
		ans   expr.Expr
		terms []expr.Expr
	)
	//
	for _, id := range p.Linear.Keys() {
		switch c, _ := p.Linear.Get(id); c {
		case 0:
			continue
		case 1:
			terms = append(terms, vars.Var(id))
		default:
			terms = append(terms, expr.NewMonomial(expr.Const(c), vars.Var(id)))
		}
	}
	//
	if len(terms) == 0 {
		ans = expr.Const(p.Constant)
	} else if p.Constant != 0 {
		ans = expr.Add(append(terms, expr.Const(p.Constant))...)
	} else {
		ans = expr.Add(terms...)
	}
	//
	if p.Nonlinear != nil {
		if c, ok := expr.IsConstant(ans); ok && c == 0 {
			ans = p.Nonlinear
		} else {
			ans = expr.Add(ans, p.Nonlinear)
		}
	}
	//
	if p.Multiplier != 1 {
		ans = expr.Mul(expr.Const(p.Multiplier), ans)
	}
	//
	return ans
}

// ToExpression reconstructs an expression from a classified result.
func ToExpression(result Result, vars *VarMap) expr.Expr {
	if result.Kind == Constant {
		return expr.Const(result.Value)
	}
	//
	return result.Repn.ToExpression(vars)
}
