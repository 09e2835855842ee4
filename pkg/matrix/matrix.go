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
// Package matrix extracts the coefficient matrix of a linear program, in the
// form typically accepted by LP solvers.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/model"
	"github.com/consensys/go-linrepn/pkg/program"
	"github.com/consensys/go-linrepn/pkg/repn"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix describes a linear program of the form:
//
//	minimize/maximize  c·x + CostConstant
//	subject to         RowLower <= A·x <= RowUpper
//	                   ColLower <= x <= ColUpper
//
// Rows correspond to the constraints of the program, and columns to its
// variables in discovery order.
type Matrix struct {
	// Constraint coefficients
	A *mat.Dense
	// Row bounds, where any constant of the row has been moved into them.
	RowLower []float64
	RowUpper []float64
	// Objective coefficients
	Cost *mat.VecDense
	// Constant part of the objective
	CostConstant float64
	// Objective sense
	Sense model.Sense
	// Variable bounds
	ColLower []float64
	ColUpper []float64
	// Names of the rows (i.e. constraints)
	RowNames []string
	// Names of the columns (i.e. variables)
	ColNames []string
}

// ErrMultipleObjectives is reported when building a matrix for a program with
// more than one active objective.
var ErrMultipleObjectives = errors.New("multiple active objectives")

// Build the coefficient matrix for a given program, which must be linear and
// have at most one active objective.  When there is no objective, the cost
// vector is zero.
func Build(p *program.Program) (*Matrix, error) {
	vars := p.VarMap()
	nrows, ncols := len(p.Rows()), int(vars.Len())
	//
	if len(p.Goals()) > 1 {
		return nil, ErrMultipleObjectives
	}
	//
	m := &Matrix{
		A:        newDense(nrows, ncols),
		RowLower: make([]float64, nrows),
		RowUpper: make([]float64, nrows),
		Cost:     newVecDense(ncols),
		Sense:    model.Minimize,
		ColLower: make([]float64, ncols),
		ColUpper: make([]float64, ncols),
		RowNames: make([]string, nrows),
		ColNames: make([]string, ncols),
	}
	//
	for i, row := range p.Rows() {
		name := model.FullName(row.Constraint)
		//
		constant, err := fill(vars, name, row.Result, func(j uint, c float64) { m.A.Set(i, int(j), c) })
		if err != nil {
			return nil, err
		}
		//
		m.RowNames[i] = name
		m.RowLower[i] = row.Lower - constant
		m.RowUpper[i] = row.Upper - constant
	}
	//
	for _, goal := range p.Goals() {
		name := model.FullName(goal.Objective)
		//
		constant, err := fill(vars, name, goal.Result, func(j uint, c float64) { m.Cost.SetVec(int(j), c) })
		if err != nil {
			return nil, err
		}
		//
		m.CostConstant = constant
		m.Sense = goal.Objective.Sense()
	}
	//
	for j, v := range vars.Vars() {
		m.ColNames[j] = v.Name()
		m.ColLower[j], m.ColUpper[j] = math.Inf(-1), math.Inf(1)
		//
		if bv, ok := v.(*expr.Var); ok {
			m.ColLower[j], m.ColUpper[j] = bv.Bounds()
		}
	}
	//
	return m, nil
}

// Dims returns the number of rows and columns in this matrix.
func (p *Matrix) Dims() (int, int) {
	return len(p.RowNames), len(p.ColNames)
}

// Activity computes the row activities A·x for a given assignment of values to
// columns.
func (p *Matrix) Activity(x []float64) (*mat.VecDense, error) {
	nrows, ncols := p.Dims()
	//
	if len(x) != ncols {
		return nil, fmt.Errorf("expected %d values, got %d", ncols, len(x))
	} else if nrows == 0 || ncols == 0 {
		return newVecDense(nrows), nil
	}
	//
	activity := mat.NewVecDense(nrows, nil)
	activity.MulVec(p.A, mat.NewVecDense(ncols, x))
	//
	return activity, nil
}

// Objective computes the value of the objective for a given assignment of
// values to columns.
func (p *Matrix) Objective(x []float64) (float64, error) {
	_, ncols := p.Dims()
	//
	if len(x) != ncols {
		return math.NaN(), fmt.Errorf("expected %d values, got %d", ncols, len(x))
	} else if ncols == 0 {
		return p.CostConstant, nil
	}
	//
	return mat.Dot(p.Cost, mat.NewVecDense(ncols, x)) + p.CostConstant, nil
}

// Violation computes the largest amount by which any row or column bound is
// violated by a given assignment of values to columns.  The result is zero
// for a feasible assignment.
func (p *Matrix) Violation(x []float64) (float64, error) {
	activity, err := p.Activity(x)
	if err != nil {
		return math.NaN(), err
	}
	//
	var worst float64
	//
	for i := range p.RowNames {
		worst = math.Max(worst, excess(activity.AtVec(i), p.RowLower[i], p.RowUpper[i]))
	}
	//
	for j := range p.ColNames {
		worst = math.Max(worst, excess(x[j], p.ColLower[j], p.ColUpper[j]))
	}
	//
	return worst, nil
}

// Standard splits the rows of this matrix into equalities Aeq·x = beq and
// inequalities G·x <= h.  A row with a finite lower bound becomes a negated
// inequality, hence a two-sided row produces two inequalities.  Variable
// bounds are not included.
func (p *Matrix) Standard() (aeq *mat.Dense, beq []float64, g *mat.Dense, h []float64) {
	var eqs, ineqs []float64
	//
	_, ncols := p.Dims()
	//
	for i := range p.RowNames {
		var row []float64
		//
		if ncols > 0 {
			row = mat.Row(nil, i, p.A)
		} else {
			row = []float64{}
		}
		//
		lower, upper := p.RowLower[i], p.RowUpper[i]
		//
		switch {
		case lower == upper:
			eqs = append(eqs, row...)
			beq = append(beq, upper)
		default:
			if !math.IsInf(upper, 1) {
				ineqs = append(ineqs, row...)
				h = append(h, upper)
			}
			//
			if !math.IsInf(lower, -1) {
				neg := make([]float64, len(row))
				copy(neg, row)
				floats.Scale(-1, neg)
				ineqs = append(ineqs, neg...)
				h = append(h, -lower)
			}
		}
	}
	//
	return fromRows(len(beq), ncols, eqs), beq, fromRows(len(h), ncols, ineqs), h
}

func fromRows(rows, cols int, data []float64) *mat.Dense {
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}
	//
	return mat.NewDense(rows, cols, data)
}

func excess(v, lower, upper float64) float64 {
	return math.Max(0, math.Max(lower-v, v-upper))
}

// Write the coefficients of a result into a given row, returning its constant.
func fill(vars *repn.VarMap, name string, r repn.Result, set func(uint, float64)) (float64, error) {
	switch r.Kind {
	case repn.Constant:
		return r.Value, nil
	case repn.General:
		return math.NaN(), &program.NonlinearError{Component: name, Residual: r.Repn.Nonlinear}
	}
	//
	for _, id := range r.Repn.Linear.Keys() {
		c, _ := r.Repn.Linear.Get(id)
		j, _ := vars.Index(id)
		set(j, c)
	}
	//
	return r.Repn.Constant, nil
}

// Gonum does not permit matrices or vectors with zero length, hence empty
// programs use the zero value.
func newDense(rows, cols int) *mat.Dense {
	return fromRows(rows, cols, nil)
}

func newVecDense(n int) *mat.VecDense {
	if n == 0 {
		return &mat.VecDense{}
	}
	//
	return mat.NewVecDense(n, nil)
}
