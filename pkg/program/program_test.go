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
package program

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/model"
	"github.com/consensys/go-linrepn/pkg/repn"
	"github.com/consensys/go-linrepn/pkg/util/source"
)

const linearModel = `
(defvar x)
(defvar y)
(defconstraint c1 (<= (+ (* 2 y) x 3) 10))
(defconstraint c2 (>= (- x y) -1))
(defconstraint c3 (<= x y) :inactive)
(defobjective o minimize (+ x (* 4 y)))
`

func Test_Compile_01(t *testing.T) {
	m := parseModel(t, linearModel)
	p := compile(t, m, Config{LinearOnly: true})
	x, y := varId(m, "x"), varId(m, "y")
	// Variables are numbered in discovery order
	if vars := p.VarMap().Vars(); len(vars) != 2 || vars[0].Id() != y || vars[1].Id() != x {
		t.Errorf("unexpected variable order")
	}
	//
	if len(p.Rows()) != 2 || len(p.Goals()) != 1 {
		t.Fatalf("expected 2 rows and 1 goal")
	}
	//
	r1, r2 := p.Rows()[0], p.Rows()[1]
	//
	checkBounds(t, r1, math.Inf(-1), 10)
	checkCoefficient(t, r1.Result, x, 1)
	checkCoefficient(t, r1.Result, y, 2)
	checkConstant(t, r1.Result, 3)
	//
	checkBounds(t, r2, -1, math.Inf(1))
	checkCoefficient(t, r2.Result, x, 1)
	checkCoefficient(t, r2.Result, y, -1)
	//
	checkCoefficient(t, p.Goals()[0].Result, x, 1)
	checkCoefficient(t, p.Goals()[0].Result, y, 4)
	//
	if !p.IsLinear() {
		t.Errorf("expected linear program")
	}
}

func Test_Compile_02(t *testing.T) {
	m := parseModel(t, `
(defvar x)
(defvar y)
(defconstraint c (<= (* x y) 1))
`)
	var nerr *NonlinearError
	//
	if _, err := Compile(context.Background(), m, Config{LinearOnly: true}); !errors.As(err, &nerr) {
		t.Errorf("expected nonlinear error, got %v", err)
	} else if nerr.Component != "c" {
		t.Errorf("unexpected component %s", nerr.Component)
	}
	// Without the restriction, the residual is retained
	p := compile(t, m, Config{})
	//
	if p.IsLinear() || p.Rows()[0].Result.Kind != repn.General {
		t.Errorf("expected general result")
	} else if s := p.ToExpression(p.Rows()[0].Result).String(); s != "(* x y)" {
		t.Errorf("unexpected reconstruction %s", s)
	}
}

func Test_Compile_03(t *testing.T) {
	m := parseModel(t, linearModel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	if _, err := Compile(ctx, m, Config{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

func Test_Compile_04(t *testing.T) {
	m := parseModel(t, `
(defvar x)
(defconstraint c (<= x (/ 1 0)))
`)
	var derr *expr.DomainError
	//
	if _, err := Compile(context.Background(), m, Config{}); !errors.As(err, &derr) {
		t.Errorf("expected domain error, got %v", err)
	}
}

func Test_Compile_05(t *testing.T) {
	m := parseModel(t, `
(defvar x)
(defvar y)
(defexpr e (+ x (* 2 y)))
(defconstraint c1 (<= (* 3 e) 1))
(defconstraint c2 (<= (- e) 1))
`)
	p := compile(t, m, Config{})
	x, y := varId(m, "x"), varId(m, "y")
	// Shared expressions are scaled independently in each context
	checkCoefficient(t, p.Rows()[0].Result, x, 3)
	checkCoefficient(t, p.Rows()[0].Result, y, 6)
	checkCoefficient(t, p.Rows()[1].Result, x, -1)
	checkCoefficient(t, p.Rows()[1].Result, y, -2)
}

func Test_Compile_06(t *testing.T) {
	m := parseModel(t, `
(defvar x :value 2 :fixed)
(defvar y)
(defconstraint c (== (* x y) 4))
(defobjective o minimize x)
`)
	p := compile(t, m, Config{LinearOnly: true})
	// Fixed variables are constants
	checkCoefficient(t, p.Rows()[0].Result, varId(m, "y"), 2)
	checkBounds(t, p.Rows()[0], 4, 4)
	//
	if g := p.Goals()[0].Result; g.Kind != repn.Constant || g.Value != 2 {
		t.Errorf("expected constant objective, got %s", g.String())
	}
}

// ============================================================================
// Helpers
// ============================================================================

func parseModel(t *testing.T, text string) *model.Model {
	t.Helper()
	//
	m, errs := model.Parse(source.NewSourceFile("test.lisp", []byte(text)))
	//
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	//
	return m
}

func compile(t *testing.T, m *model.Model, cfg Config) *Program {
	t.Helper()
	//
	p, err := Compile(context.Background(), m, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	return p
}

func varId(m *model.Model, name string) expr.VarId {
	return m.Find(name).(*model.Var).Expr().Id()
}

func checkBounds(t *testing.T, r Row, lower, upper float64) {
	t.Helper()
	//
	if r.Lower != lower || r.Upper != upper {
		t.Errorf("expected bounds [%v,%v], got [%v,%v]", lower, upper, r.Lower, r.Upper)
	}
}

func checkCoefficient(t *testing.T, r repn.Result, id expr.VarId, expected float64) {
	t.Helper()
	//
	if r.Repn == nil {
		t.Errorf("expected non-constant result, got %s", r.String())
	} else if c, ok := r.Repn.Linear.Get(id); !ok || c != expected {
		t.Errorf("expected coefficient %v for #%d, got %v", expected, id, c)
	}
}

func checkConstant(t *testing.T, r repn.Result, expected float64) {
	t.Helper()
	//
	if r.Repn == nil || r.Repn.Constant != expected {
		t.Errorf("expected constant %v, got %s", expected, r.String())
	}
}
