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
	"errors"
	"math"
	"testing"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var nan = math.NaN()

var inf = math.Inf(1)

type coeffs = map[expr.VarId]float64

// ============================================================================
// Affine expressions
// ============================================================================

func Test_Linear_01(t *testing.T) {
	arena, x, y := vars2()
	// 3*x + 2*y - 3*x + 5
	e := expr.Add(expr.Sub(expr.Add(expr.Mul(expr.Const(3), x), expr.Mul(expr.Const(2), y)),
		expr.Mul(expr.Const(3), x)), expr.Const(5))
	//
	checkClassify(t, arena, e, Linear, 5, coeffs{y.Id(): 2})
}

func Test_Linear_02(t *testing.T) {
	arena, x, y := vars2()
	// Same again, but as a general sum
	e := expr.NewSum(expr.NewProduct(expr.Const(3), x), expr.NewProduct(expr.Const(2), y),
		expr.NewNegation(expr.NewProduct(expr.Const(3), x)), expr.Const(5))
	//
	checkClassify(t, arena, e, Linear, 5, coeffs{y.Id(): 2})
}

func Test_Linear_03(t *testing.T) {
	arena, x, _ := vars2()
	// x - x
	checkClassify(t, arena, expr.Sub(x, x), Constant, 0, coeffs{})
	checkClassify(t, arena, expr.NewSum(x, expr.NewNegation(x)), Constant, 0, coeffs{})
}

func Test_Linear_04(t *testing.T) {
	arena, x, y := vars2()
	// -(2*(x + y + 1))
	e := expr.NewNegation(expr.NewProduct(expr.Const(2), expr.Add(x, y, expr.Const(1))))
	//
	checkClassify(t, arena, e, Linear, -2, coeffs{x.Id(): -2, y.Id(): -2})
}

func Test_Linear_05(t *testing.T) {
	arena, x, y := vars2()
	// (x + y + 2) / 4
	e := expr.NewDivision(expr.Add(x, y, expr.Const(2)), expr.Const(4))
	//
	checkClassify(t, arena, e, Linear, 0.5, coeffs{x.Id(): 0.25, y.Id(): 0.25})
}

func Test_Linear_06(t *testing.T) {
	arena, x, y := vars2()
	// (x + 1)^1 + y
	e := expr.NewSum(expr.NewPower(expr.Add(x, expr.Const(1)), expr.Const(1)), y)
	//
	checkClassify(t, arena, e, Linear, 1, coeffs{x.Id(): 1, y.Id(): 1})
}

func Test_Linear_07(t *testing.T) {
	arena, x, y := vars2()
	p := expr.NewParam("p", 5)
	// p*x + (2^3)*y
	e := expr.Add(expr.Mul(p, x), expr.Mul(expr.NewPower(expr.Const(2), expr.Const(3)), y))
	//
	checkClassify(t, arena, e, Linear, 0, coeffs{x.Id(): 5, y.Id(): 8})
	// Parameters are mutable
	p.SetValue(7)
	checkClassify(t, arena, e, Linear, 0, coeffs{x.Id(): 7, y.Id(): 8})
}

// ============================================================================
// Fixed variables
// ============================================================================

func Test_Fixed_01(t *testing.T) {
	arena, x, y := vars2()
	x.Fix(3)
	// 2*x + y
	checkClassify(t, arena, expr.Add(expr.Mul(expr.Const(2), x), y), Linear, 6, coeffs{y.Id(): 1})
	// x * y
	checkClassify(t, arena, expr.NewProduct(x, y), Linear, 0, coeffs{y.Id(): 3})
	// 2*x
	checkClassify(t, arena, expr.Mul(expr.Const(2), x), Constant, 6, coeffs{})
}

func Test_Fixed_02(t *testing.T) {
	_, x, y := vars2()
	v := NewVisitor()
	x.Fix(1)
	//
	if _, err := v.Walk(expr.Add(x, y)); err != nil {
		t.Fatal(err)
	} else if _, ok := v.VarMap().Index(x.Id()); ok {
		t.Errorf("fixed variable registered")
	} else if _, ok := v.VarMap().Index(y.Id()); !ok {
		t.Errorf("unfixed variable not registered")
	}
}

// ============================================================================
// Nonlinear expressions
// ============================================================================

func Test_General_01(t *testing.T) {
	arena, x, y := vars2()
	// (x+1)*(y+1)
	e := expr.Mul(expr.Add(x, expr.Const(1)), expr.Add(y, expr.Const(1)))
	repn := checkClassify(t, arena, e, General, 0, coeffs{})
	//
	checkNonlinear(t, repn, "(* (+ (* 1 x) 1) (+ (* 1 y) 1))")
	// Check equivalence at a few points
	for _, pt := range [][2]float64{{0, 0}, {2, 3}, {-1, 7}} {
		x.SetValue(pt[0])
		y.SetValue(pt[1])
		checkEquivalent(t, e, repn)
	}
}

func Test_General_02(t *testing.T) {
	arena, x, y := vars2()
	// 2*x + sin(y) + 1
	e := expr.Add(expr.Mul(expr.Const(2), x), unary("sin", y), expr.Const(1))
	repn := checkClassify(t, arena, e, General, 1, coeffs{x.Id(): 2})
	//
	checkNonlinear(t, repn, "(sin y)")
}

func Test_General_03(t *testing.T) {
	arena, x, y := vars2()
	// -3 * (x + x*y)
	e := expr.NewProduct(expr.Const(-3), expr.NewSum(x, expr.NewProduct(x, y)))
	repn := checkClassify(t, arena, e, General, 0, coeffs{x.Id(): -3})
	//
	checkNonlinear(t, repn, "(* -3 (* x y))")
	//
	x.SetValue(2)
	y.SetValue(5)
	checkEquivalent(t, e, repn)
}

func Test_General_04(t *testing.T) {
	arena, x, y := vars2()
	// 1/x, x/y, x^2 and 2^x
	checkNonlinear(t, checkClassify(t, arena, expr.NewDivision(expr.Const(1), x), General, 0, coeffs{}), "(/ 1 x)")
	checkNonlinear(t, checkClassify(t, arena, expr.NewDivision(x, y), General, 0, coeffs{}), "(/ x y)")
	checkNonlinear(t, checkClassify(t, arena, expr.NewPower(x, expr.Const(2)), General, 0, coeffs{}), "(^ x 2)")
	checkNonlinear(t, checkClassify(t, arena, expr.NewPower(expr.Const(2), x), General, 0, coeffs{}), "(^ 2 x)")
	checkNonlinear(t, checkClassify(t, arena, expr.NewAbs(x), General, 0, coeffs{}), "(abs x)")
}

func Test_General_05(t *testing.T) {
	arena, x, _ := vars2()
	// x < 1
	e := expr.NewCompare(expr.LessThan, x, expr.Const(1))
	checkNonlinear(t, checkClassify(t, arena, e, General, 0, coeffs{}), "(< x 1)")
	// 1 <= 2
	checkClassify(t, arena, expr.NewCompare(expr.LessThanOrEquals, expr.Const(1), expr.Const(2)), Constant, 1,
		coeffs{})
}

// ============================================================================
// NaN propagation
// ============================================================================

func Test_NaN_01(t *testing.T) {
	arena, _, _ := vars2()
	// 0 * (1/0)
	e := expr.NewProduct(expr.Const(0), expr.NewDivision(expr.Const(1), expr.Const(0)))
	//
	checkClassify(t, arena, e, Constant, nan, coeffs{})
}

func Test_NaN_02(t *testing.T) {
	arena, x, y := vars2()
	// nan * x
	checkClassify(t, arena, expr.Mul(expr.Const(nan), x), Constant, nan, coeffs{})
	// nan * (x + y)
	checkClassify(t, arena, expr.NewProduct(expr.Const(nan), expr.Add(x, y)), Constant, nan, coeffs{})
	// (x + y) / nan
	checkClassify(t, arena, expr.NewDivision(expr.Add(x, y), expr.Const(nan)), Constant, nan, coeffs{})
}

func Test_NaN_03(t *testing.T) {
	arena, x, y := vars2()
	// x*0 + x*nan + y
	e := expr.Add(expr.Mul(x, expr.Const(0)), expr.Mul(x, expr.Const(nan)), y)
	//
	checkClassify(t, arena, e, Linear, nan, coeffs{y.Id(): 1})
}

func Test_NaN_04(t *testing.T) {
	arena, x, _ := vars2()
	// inf*x - inf*x has a NaN coefficient, which is retained
	e1 := expr.Add(expr.Mul(expr.Const(inf), x), expr.Mul(expr.Const(-inf), x))
	e2 := expr.NewSum(expr.Mul(expr.Const(inf), x), expr.Mul(expr.Const(-inf), x))
	//
	checkClassify(t, arena, e1, Linear, 0, coeffs{x.Id(): nan})
	checkClassify(t, arena, e2, Linear, 0, coeffs{x.Id(): nan})
}

func Test_NaN_05(t *testing.T) {
	arena, x, _ := vars2()
	// log(0) folds to nan
	checkClassify(t, arena, unary("log", expr.Const(0)), Constant, nan, coeffs{})
	// Coefficient which cannot be evaluated eagerly
	e := expr.NewMonomial(expr.NewDivision(expr.Const(1), expr.Const(0)), x)
	checkClassify(t, arena, e, Linear, 0, coeffs{x.Id(): inf})
	// Division of a variable by zero
	checkClassify(t, arena, expr.NewDivision(x, expr.Const(0)), Linear, 0, coeffs{x.Id(): inf})
}

func Test_NaN_06(t *testing.T) {
	arena, x, y := vars2()
	// x/0 + y retains x
	e1 := expr.NewSum(expr.NewDivision(x, expr.Const(0)), y)
	rep := checkClassify(t, arena, e1, Linear, 0, coeffs{x.Id(): inf, y.Id(): 1})
	//
	if rep.Linear.Len() != 2 {
		t.Errorf("expected two variables, got %s", rep.String())
	}
	// 1/0 + y and -1/0 + y
	e2 := expr.NewSum(expr.NewDivision(expr.Const(1), expr.Const(0)), y)
	e3 := expr.NewSum(expr.NewDivision(expr.Const(-1), expr.Const(0)), y)
	checkClassify(t, arena, e2, Linear, inf, coeffs{y.Id(): 1})
	checkClassify(t, arena, e3, Linear, -inf, coeffs{y.Id(): 1})
	// (x + 2)/0 has an infinite constant
	e4 := expr.NewDivision(expr.Add(x, expr.Const(2)), expr.Const(0))
	checkClassify(t, arena, e4, Linear, inf, coeffs{x.Id(): inf})
	// 0/0 is nan
	checkClassify(t, arena, expr.NewDivision(expr.Const(0), expr.Const(0)), Constant, nan, coeffs{})
}

// ============================================================================
// Shared subexpressions
// ============================================================================

func Test_Named_01(t *testing.T) {
	arena := expr.NewArena()
	z := arena.NewVar("z")
	w := arena.NewVar("w")
	x := arena.NewVar("x")
	y := arena.NewVar("y")
	e := arena.NewNamed("e", expr.Add(expr.Mul(expr.Const(2), z), w))
	// e + x and e + y
	c1 := expr.Add(e, x)
	c2 := expr.Add(e, y)
	//
	v := NewVisitor()
	r1 := walk(t, v, c1)
	// Replacing the body does not affect subsequent walks
	e.SetBody(expr.Const(0))
	r2 := walk(t, v, c2)
	//
	checkRepn(t, r1, 0, coeffs{z.Id(): 2, w.Id(): 1, x.Id(): 1})
	checkRepn(t, r2, 0, coeffs{z.Id(): 2, w.Id(): 1, y.Id(): 1})
	//
	if v.Cache().Len() != 1 {
		t.Errorf("expected one cache entry, got %d", v.Cache().Len())
	}
	//
	checkOrder(t, v, z, w, x, y)
}

func Test_Named_02(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	y := arena.NewVar("y")
	e := arena.NewNamed("e", expr.NewSum(x, expr.NewProduct(x, y)))
	v := NewVisitor()
	// -e, 3*e, e
	r1 := walk(t, v, expr.NewNegation(e))
	r2 := walk(t, v, expr.NewProduct(expr.Const(3), e))
	r3 := walk(t, v, e)
	//
	checkRepn(t, r1, 0, coeffs{x.Id(): -1})
	checkRepn(t, r2, 0, coeffs{x.Id(): 3})
	checkRepn(t, r3, 0, coeffs{x.Id(): 1})
	checkNonlinear(t, r3, "(* x y)")
}

func Test_Named_03(t *testing.T) {
	arena := expr.NewArena()
	x := arena.NewVar("x")
	// Constant named expression
	e := arena.NewNamed("e", expr.NewSum(expr.Const(1), expr.NewProduct(expr.Const(2), expr.Const(3))))
	v := NewVisitor()
	//
	checkRepn(t, walk(t, v, expr.Add(e, x)), 7, coeffs{x.Id(): 1})
	checkRepn(t, walk(t, v, expr.Add(e, x)), 7, coeffs{x.Id(): 1})
}

// ============================================================================
// Conditionals
// ============================================================================

func Test_If_01(t *testing.T) {
	_, x, y := vars2()
	v := NewVisitor()
	// if 1 then x else y
	r := walk(t, v, expr.NewIfThenElse(expr.Const(1), x, y))
	//
	checkRepn(t, r, 0, coeffs{x.Id(): 1})
	checkOrder(t, v, x)
}

func Test_If_02(t *testing.T) {
	arena, x, y := vars2()
	b := arena.NewVar("b")
	b.Fix(0)
	v := NewVisitor()
	// 2 * (if b then x else y+1)
	r := walk(t, v, expr.NewProduct(expr.Const(2), expr.NewIfThenElse(b, x, expr.Add(y, expr.Const(1)))))
	//
	checkRepn(t, r, 2, coeffs{y.Id(): 2})
	checkOrder(t, v, y)
}

func Test_If_03(t *testing.T) {
	arena, x, y := vars2()
	b := arena.NewVar("b")
	v := NewVisitor()
	// if b then x else y
	r := walk(t, v, expr.NewIfThenElse(b, x, y))
	//
	checkNonlinear(t, r, "(if b x y)")
	checkOrder(t, v, b, x, y)
}

func Test_If_04(t *testing.T) {
	arena, x, y := vars2()
	b := arena.NewVar("b")
	b.Fix(nan)
	// NaN test cannot select a branch
	r := walk(t, NewVisitor(), expr.NewIfThenElse(b, x, y))
	//
	checkNonlinear(t, r, "(if nan x y)")
}

// ============================================================================
// External functions
// ============================================================================

func Test_External_01(t *testing.T) {
	arena, x, _ := vars2()
	hypot, _ := expr.LookupBuiltinFunction("hypot")
	x.Fix(4)
	// hypot(3, x) + 1
	checkClassify(t, arena, expr.Add(expr.NewExternal(hypot, expr.Const(3), x), expr.Const(1)), Constant, 6,
		coeffs{})
}

func Test_External_02(t *testing.T) {
	_, x, _ := vars2()
	hypot, _ := expr.LookupBuiltinFunction("hypot")
	call := expr.NewExternal(hypot, expr.Const(3), x)
	v := NewVisitor()
	//
	r := walk(t, v, call)
	//
	if r.Nonlinear != expr.Expr(call) {
		t.Errorf("expected call as nonlinear residual, got %s", r.String())
	}
	// Arguments are not descended
	if v.VarMap().Len() != 0 {
		t.Errorf("unexpected variables discovered")
	}
}

// ============================================================================
// Idempotence and determinism
// ============================================================================

func Test_Idempotent_01(t *testing.T) {
	arena, x, y := vars2()
	z := arena.NewVar("z")
	exprs := []expr.Expr{
		expr.Add(expr.Mul(expr.Const(3), x), expr.Mul(expr.Const(2), y), expr.Const(5)),
		expr.NewProduct(expr.Const(-2), expr.Add(x, y)),
		expr.Mul(expr.Add(x, expr.Const(1)), expr.Add(y, expr.Const(1))),
		expr.NewSum(x, unary("exp", expr.Add(y, z)), expr.Const(2)),
		expr.NewNegation(expr.NewSum(expr.NewProduct(x, y), z)),
		expr.NewDivision(expr.NewSum(x, expr.NewPower(y, expr.Const(3))), expr.Const(2)),
		expr.Const(4),
	}
	//
	for _, e := range exprs {
		v := NewVisitor()
		r1 := walk(t, v, e)
		r2 := walk(t, v, r1.ToExpression(v.VarMap()))
		//
		if r1.Kind() != r2.Kind() || !sameFloat(r1.Constant, r2.Constant) {
			t.Errorf("reclassifying %s: %s vs %s", e.String(), r1.String(), r2.String())
		} else if diff := cmp.Diff(r1.Linear.Map(), r2.Linear.Map(), cmpopts.EquateNaNs()); diff != "" {
			t.Errorf("reclassifying %s: (-first +second)\n%s", e.String(), diff)
		} else if (r1.Nonlinear == nil) != (r2.Nonlinear == nil) {
			t.Errorf("reclassifying %s: nonlinear mismatch", e.String())
		}
	}
}

func Test_Deterministic_01(t *testing.T) {
	arena, x, y := vars2()
	z := arena.NewVar("z")
	e := expr.Add(expr.Mul(expr.Const(0.1), z), expr.Mul(expr.Const(0.2), y), expr.Mul(expr.Const(0.3), x),
		expr.Mul(expr.Const(0.7), z), expr.Const(0.1))
	//
	v1, v2 := NewVisitor(), NewVisitor()
	r1, r2 := walk(t, v1, e), walk(t, v2, e)
	//
	checkOrder(t, v1, z, y, x)
	checkOrder(t, v2, z, y, x)
	//
	if math.Float64bits(r1.Constant) != math.Float64bits(r2.Constant) {
		t.Errorf("constants differ")
	}
	//
	for i, id := range r1.Linear.Keys() {
		c1, _ := r1.Linear.Get(id)
		c2, _ := r2.Linear.Get(r2.Linear.Keys()[i])
		//
		if r2.Linear.Keys()[i] != id || math.Float64bits(c1) != math.Float64bits(c2) {
			t.Errorf("coefficients differ")
		}
	}
}

// ============================================================================
// Errors
// ============================================================================

func Test_Error_01(t *testing.T) {
	_, x, _ := vars2()
	p := expr.NewUninitialisedParam("p")
	//
	_, err := NewVisitor().Walk(expr.NewSum(expr.NewProduct(p, x), x))
	//
	var (
		werr *WalkError
		uerr *expr.UninitialisedError
	)
	//
	if !errors.As(err, &werr) || !errors.As(err, &uerr) {
		t.Errorf("expected uninitialised error, got %v", err)
	}
}

func Test_Error_02(t *testing.T) {
	_, x, y := vars2()
	// Conditional test which cannot be evaluated
	e := expr.NewIfThenElse(unary("log", expr.Const(-1)), x, y)
	//
	_, err := NewVisitor().Walk(e)
	//
	var derr *expr.DomainError
	if !errors.As(err, &derr) {
		t.Errorf("expected domain error, got %v", err)
	}
}

func Test_Error_03(t *testing.T) {
	_, x, y := vars2()
	e := unknown{expr.NewSum(x, y)}
	//
	_, err := NewVisitor().Walk(e)
	//
	var ierr *InternalError
	if !errors.As(err, &ierr) {
		t.Errorf("expected internal error, got %v", err)
	}
}

func Test_Error_04(t *testing.T) {
	_, x, y := vars2()
	v := NewVisitor()
	// Failed walks leave the visitor usable
	if _, err := v.Walk(expr.NewSum(x, expr.NewProduct(expr.NewUninitialisedParam("p"), y))); err == nil {
		t.Fatalf("expected error")
	}
	//
	checkRepn(t, walk(t, v, expr.Add(x, y)), 0, coeffs{x.Id(): 1, y.Id(): 1})
}

// ============================================================================
// Helpers
// ============================================================================

// unknown is an operator for which no rule exists.
type unknown struct {
	*expr.Sum
}

func (p unknown) Op() expr.Op { return expr.Op(255) }

func vars2() (*expr.Arena, *expr.Var, *expr.Var) {
	arena := expr.NewArena()
	//
	return arena, arena.NewVar("x"), arena.NewVar("y")
}

func unary(name string, arg expr.Expr) expr.Expr {
	fn, ok := expr.LookupUnaryFunction(name)
	if !ok {
		panic("unknown function " + name)
	}
	//
	return expr.NewUnary(fn, arg)
}

func walk(t *testing.T, v *Visitor, e expr.Expr) *LinearRepn {
	t.Helper()
	//
	r, err := v.Walk(e)
	if err != nil {
		t.Fatalf("walking %s: %v", e.String(), err)
	}
	//
	return r
}

func checkClassify(t *testing.T, arena *expr.Arena, e expr.Expr, kind Kind, constant float64,
	expected coeffs) *LinearRepn {
	t.Helper()
	//
	v := NewVisitor()
	//
	result, err := v.Classify(e)
	if err != nil {
		t.Fatalf("classifying %s: %v", e.String(), err)
	} else if result.Kind != kind {
		t.Errorf("classifying %s: expected %s, got %s", e.String(), kind, result.String())
	}
	// Discovered variables must come from the arena
	for _, x := range v.VarMap().Vars() {
		if expr.Variable(arena.Var(x.Id())) != x {
			t.Errorf("classifying %s: unknown variable %s", e.String(), x.Name())
		}
	}
	//
	repn := walk(t, NewVisitor(), e)
	checkRepn(t, repn, constant, expected)
	//
	if kind == Constant && !sameFloat(result.Value, constant) {
		t.Errorf("classifying %s: expected %v, got %v", e.String(), constant, result.Value)
	}
	//
	return repn
}

func checkRepn(t *testing.T, repn *LinearRepn, constant float64, expected coeffs) {
	t.Helper()
	//
	if repn.Multiplier != 1 {
		t.Errorf("multiplier not distributed: %s", repn.String())
	}
	//
	if !sameFloat(repn.Constant, constant) {
		t.Errorf("expected constant %v, got %s", constant, repn.String())
	}
	//
	if diff := cmp.Diff(expected, repn.Linear.Map(), cmpopts.EquateNaNs(), cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected coefficients (-expected +actual):\n%s", diff)
	}
}

func checkNonlinear(t *testing.T, repn *LinearRepn, expected string) {
	t.Helper()
	//
	if repn.Nonlinear == nil {
		t.Errorf("expected nonlinear residual %s, got %s", expected, repn.String())
	} else if actual := repn.Nonlinear.String(); actual != expected {
		t.Errorf("expected nonlinear residual %s, got %s", expected, actual)
	}
}

func checkOrder(t *testing.T, v *Visitor, expected ...*expr.Var) {
	t.Helper()
	//
	vars := v.VarMap().Vars()
	//
	if len(vars) != len(expected) {
		t.Fatalf("expected %d variables, found %d", len(expected), len(vars))
	}
	//
	for i, x := range expected {
		if vars[i].Id() != x.Id() {
			t.Errorf("expected %s at index %d, found %s", x.Name(), i, vars[i].Name())
		} else if index, _ := v.VarMap().Index(x.Id()); index != uint(i) {
			t.Errorf("expected %s to have index %d, found %d", x.Name(), i, index)
		}
	}
}

// Check an expression evaluates to the same value as its representation.
func checkEquivalent(t *testing.T, e expr.Expr, repn *LinearRepn) {
	t.Helper()
	//
	vars := NewVarMap()
	//
	for _, x := range collectVars(e) {
		vars.Register(x)
	}
	//
	expected, err1 := e.Eval()
	actual, err2 := repn.ToExpression(vars).Eval()
	//
	if err1 != nil || err2 != nil {
		t.Errorf("evaluation failed: %v, %v", err1, err2)
	} else if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("evaluating %s: expected %v, got %v", e.String(), expected, actual)
	}
}

func collectVars(e expr.Expr) []expr.Variable {
	var vars []expr.Variable
	//
	if v, ok := e.(expr.Variable); ok {
		return []expr.Variable{v}
	}
	//
	for _, arg := range e.Args() {
		vars = append(vars, collectVars(arg)...)
	}
	//
	return vars
}

func sameFloat(lhs, rhs float64) bool {
	return lhs == rhs || (math.IsNaN(lhs) && math.IsNaN(rhs))
}
