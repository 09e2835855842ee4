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
package matrix

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/consensys/go-linrepn/pkg/model"
	"github.com/consensys/go-linrepn/pkg/program"
	"github.com/consensys/go-linrepn/pkg/util/source"
	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

func Test_Build_01(t *testing.T) {
	m := build(t, `
(defvar x :lb 0 :ub 4)
(defvar y :lb 1)
(defconstraint c1 (<= (+ x (* 2 y) 3) 10))
(defconstraint c2 (== (- x y) 1))
(defobjective o maximize (+ (* 5 x) y 7))
`)
	checkDense(t, m.A, [][]float64{{1, 2}, {1, -1}})
	checkFloats(t, m.RowLower, []float64{math.Inf(-1), 1})
	checkFloats(t, m.RowUpper, []float64{7, 1})
	checkFloats(t, m.Cost.RawVector().Data, []float64{5, 1})
	checkFloats(t, m.ColLower, []float64{0, 1})
	checkFloats(t, m.ColUpper, []float64{4, math.Inf(1)})
	//
	if m.CostConstant != 7 || m.Sense != model.Maximize {
		t.Errorf("unexpected objective")
	} else if diff := cmp.Diff([]string{"x", "y"}, m.ColNames); diff != "" {
		t.Errorf("unexpected column names (-want +got):\n%s", diff)
	}
}

func Test_Build_02(t *testing.T) {
	m := build(t, `
(defvar x)
(defvar y)
(defconstraint c1 (<= y 2))
(defconstraint c2 (<= x 3))
`)
	// Columns follow discovery order
	if diff := cmp.Diff([]string{"y", "x"}, m.ColNames); diff != "" {
		t.Errorf("unexpected column names (-want +got):\n%s", diff)
	}
	//
	checkDense(t, m.A, [][]float64{{1, 0}, {0, 1}})
	checkFloats(t, m.Cost.RawVector().Data, []float64{0, 0})
}

func Test_Build_03(t *testing.T) {
	p := compile(t, `
(defvar x)
(defobjective o1 minimize x)
(defobjective o2 minimize (* 2 x))
`)
	if _, err := Build(p); !errors.Is(err, ErrMultipleObjectives) {
		t.Errorf("expected multiple objectives error, got %v", err)
	}
}

func Test_Build_04(t *testing.T) {
	p := compile(t, `
(defvar x)
(defconstraint c (<= (^ x 2) 1))
`)
	var nerr *program.NonlinearError
	//
	if _, err := Build(p); !errors.As(err, &nerr) {
		t.Errorf("expected nonlinear error, got %v", err)
	}
}

func Test_Build_05(t *testing.T) {
	m := build(t, `(defparam p 2) (defobjective o minimize p)`)
	//
	if r, c := m.Dims(); r != 0 || c != 0 {
		t.Errorf("expected empty matrix, got %dx%d", r, c)
	} else if v, err := m.Objective(nil); err != nil || v != 2 {
		t.Errorf("expected objective 2, got %v (%v)", v, err)
	}
}

func Test_Activity_01(t *testing.T) {
	m := build(t, `
(defvar x :lb 0)
(defvar y :lb 0)
(defconstraint c1 (<= (+ x y) 4))
(defconstraint c2 (>= (- x y) 1))
(defobjective o minimize (+ x (* 3 y) 1))
`)
	activity, err := m.Activity([]float64{3, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	checkFloats(t, activity.RawVector().Data, []float64{4, 2})
	//
	if v, _ := m.Objective([]float64{3, 1}); v != 7 {
		t.Errorf("expected objective 7, got %v", v)
	} else if v, _ := m.Violation([]float64{3, 1}); v != 0 {
		t.Errorf("expected feasible, got violation %v", v)
	} else if v, _ := m.Violation([]float64{1, 2}); v != 2 {
		// x - y = -1, which is 2 below its lower bound
		t.Errorf("expected violation 2, got %v", v)
	} else if _, err := m.Activity([]float64{1}); err == nil {
		t.Errorf("expected dimension error")
	}
}

func Test_Standard_01(t *testing.T) {
	m := build(t, `
(defvar x)
(defvar y)
(defconstraint c1 (<= 1 (+ x y) 4))
(defconstraint c2 (== (- x y) 1))
(defconstraint c3 (<= x 2))
`)
	aeq, beq, g, h := m.Standard()
	//
	checkDense(t, aeq, [][]float64{{1, -1}})
	checkFloats(t, beq, []float64{1})
	checkDense(t, g, [][]float64{{1, 1}, {-1, -1}, {1, 0}})
	checkFloats(t, h, []float64{4, -1, 2})
}

// ============================================================================
// Helpers
// ============================================================================

func compile(t *testing.T, text string) *program.Program {
	t.Helper()
	//
	m, errs := model.Parse(source.NewSourceFile("test.lisp", []byte(text)))
	for _, err := range errs {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	//
	p, err := program.Compile(context.Background(), m, program.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	return p
}

func build(t *testing.T, text string) *Matrix {
	t.Helper()
	//
	m, err := Build(compile(t, text))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	return m
}

func checkDense(t *testing.T, m *mat.Dense, expected [][]float64) {
	t.Helper()
	//
	if r, c := m.Dims(); r != len(expected) || (r > 0 && c != len(expected[0])) {
		t.Fatalf("expected %d rows, got %dx%d", len(expected), r, c)
	}
	//
	for i, row := range expected {
		checkFloats(t, mat.Row(nil, i, m), row)
	}
}

func checkFloats(t *testing.T, actual []float64, expected []float64) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
}
