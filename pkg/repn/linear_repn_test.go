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
	"math"
	"testing"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/google/go-cmp/cmp"
)

func Test_LinearMap_01(t *testing.T) {
	m := NewLinearMap()
	m.Add(3, 1)
	m.Add(1, 2)
	m.Add(3, 4)
	m.Set(0, 0)
	//
	checkKeys(t, m, 3, 1, 0)
	//
	if c, _ := m.Get(3); c != 5 {
		t.Errorf("expected coefficient 5, got %v", c)
	}
	//
	m.RemoveZeros()
	checkKeys(t, m, 3, 1)
}

func Test_LinearMap_02(t *testing.T) {
	m := NewLinearMap()
	m.Set(0, 2)
	m.Set(1, 0)
	m.Set(2, math.NaN())
	m.Scale(math.Inf(1))
	// Zero coefficients remain zero
	if c, _ := m.Get(1); c != 0 {
		t.Errorf("expected zero coefficient, got %v", c)
	}
	//
	m.RemoveZeros()
	checkKeys(t, m, 0, 2)
}

func Test_LinearMap_03(t *testing.T) {
	m := NewLinearMap()
	m.Set(0, 1)
	c := m.Clone()
	c.Set(0, 2)
	c.Set(1, 3)
	//
	checkKeys(t, m, 0)
	checkKeys(t, c, 0, 1)
}

func Test_Append_01(t *testing.T) {
	acc := NewLinearRepn()
	other := NewLinearRepn()
	other.Multiplier = 2
	other.Constant = 1
	other.Linear.Set(0, 3)
	// 4 + 2*(1 + 3*x0)
	acc.Append(ConstantResult(4))
	acc.Append(Result{Linear, 0, other})
	//
	if acc.Constant != 6 || acc.Multiplier != 1 {
		t.Errorf("unexpected result %s", acc.String())
	}
	//
	checkCoeffs(t, acc, coeffs{0: 6})
	// Operand unchanged
	checkCoeffs(t, other, coeffs{0: 3})
}

func Test_Append_02(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	acc := NewLinearRepn()
	// sin(x) + 2*cos(x)
	acc.Append(GeneralResult(unary("sin", x)))
	//
	other := GeneralResult(unary("cos", x))
	other.Repn.Multiplier = 2
	acc.Append(other)
	//
	if actual := acc.Nonlinear.String(); actual != "(+ (sin x) (* 2 (cos x)))" {
		t.Errorf("unexpected nonlinear residual %s", actual)
	}
}

func Test_Duplicate_01(t *testing.T) {
	r := NewLinearRepn()
	r.Linear.Set(0, 1)
	d := r.Duplicate()
	d.Multiplier = -1
	d.Linear.Set(0, 5)
	//
	if r.Multiplier != 1 {
		t.Errorf("duplicate shares multiplier")
	}
	//
	checkCoeffs(t, r, coeffs{0: 1})
}

func Test_Finalise_01(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	r := NewLinearRepn()
	r.Multiplier = -2
	r.Constant = 3
	r.Linear.Set(x.Id(), 1)
	r.Linear.Set(1, 0)
	r.Nonlinear = unary("exp", x)
	r.Finalise()
	//
	if r.Multiplier != 1 || r.Constant != -6 {
		t.Errorf("unexpected result %s", r.String())
	}
	//
	checkCoeffs(t, r, coeffs{x.Id(): -2})
	checkNonlinear(t, r, "(* -2 (exp x))")
}

func Test_ToExpression_01(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	y := arena.NewVar("y")
	vars := NewVarMap()
	vars.Register(x)
	vars.Register(y)
	//
	r := NewLinearRepn()
	r.Constant = 4
	r.Linear.Set(x.Id(), 1)
	r.Linear.Set(y.Id(), -2)
	//
	checkExpr(t, r.ToExpression(vars), "(+ (* 1 x) (* -2 y) 4)")
	//
	r.Nonlinear = unary("sin", x)
	checkExpr(t, r.ToExpression(vars), "(+ (* 1 x) (* -2 y) 4 (sin x))")
	//
	r.Multiplier = 3
	checkExpr(t, r.ToExpression(vars), "(* 3 (+ (* 1 x) (* -2 y) 4 (sin x)))")
	//
	checkExpr(t, ToExpression(ConstantResult(2), vars), "2")
}

func Test_VarMap_01(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	y := arena.NewVar("y")
	z := arena.NewVar("z")
	vars := NewVarMap()
	//
	if vars.Register(z) != 0 || vars.Register(x) != 1 || vars.Register(z) != 0 {
		t.Errorf("unexpected discovery indices")
	}
	//
	if _, ok := vars.Index(y.Id()); ok {
		t.Errorf("undiscovered variable has index")
	}
	//
	if vars.Len() != 2 || vars.Var(x.Id()) != expr.Variable(x) {
		t.Errorf("unexpected variable map")
	}
}

func Test_Cache_01(t *testing.T) {
	cache := NewSubexpressionCache()
	r := NewLinearRepn()
	r.Linear.Set(0, 1)
	//
	if !cache.Put(2, Result{Linear, 0, r}) || cache.Put(2, ConstantResult(1)) {
		t.Errorf("cache entries should be written once")
	}
	//
	got, ok := cache.Get(2)
	if !ok || got.Kind != Linear {
		t.Fatalf("missing cache entry")
	}
	// Entries are handed out as copies
	got.Repn.Multiplier = 3
	//
	if again, _ := cache.Get(2); again.Repn.Multiplier != 1 {
		t.Errorf("cache entry corrupted")
	}
	//
	if _, ok := cache.Get(0); ok || cache.Len() != 1 {
		t.Errorf("unexpected cache entry")
	}
}

func checkKeys(t *testing.T, m *LinearMap, expected ...expr.VarId) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, m.Keys()); diff != "" {
		t.Errorf("unexpected keys (-expected +actual):\n%s", diff)
	}
}

func checkCoeffs(t *testing.T, r *LinearRepn, expected coeffs) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, r.Linear.Map()); diff != "" {
		t.Errorf("unexpected coefficients (-expected +actual):\n%s", diff)
	}
}

func checkExpr(t *testing.T, e expr.Expr, expected string) {
	t.Helper()
	//
	if actual := e.String(); actual != expected {
		t.Errorf("expected %s, got %s", expected, actual)
	}
}
