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
// Package program compiles the constraints and objectives of a model into
// their canonical linear representations, such that they can be handed off to
// a solver interface (e.g. as a coefficient matrix).
package program

import (
	"context"
	"fmt"
	"math"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/model"
	"github.com/consensys/go-linrepn/pkg/repn"
	"github.com/consensys/go-linrepn/pkg/util"
	log "github.com/sirupsen/logrus"
)

// Config determines how a model is compiled.
type Config struct {
	// LinearOnly rejects any constraint or objective which is not affine.
	LinearOnly bool
}

// Row is the canonical form of a single (active) constraint, where the
// constraint holds when Lower <= Result <= Upper.  Absent bounds are
// infinite.
type Row struct {
	Constraint *model.Constraint
	Lower      float64
	Upper      float64
	Result     repn.Result
}

// Goal is the canonical form of a single (active) objective.
type Goal struct {
	Objective *model.Objective
	Result    repn.Result
}

// Program is the outcome of compiling a model.  All representations within a
// program share the same variable registry, hence variables are numbered
// consistently across them.
type Program struct {
	model   *model.Model
	visitor *repn.Visitor
	rows    []Row
	goals   []Goal
}

// Model returns the model from which this program was compiled.
func (p *Program) Model() *model.Model { return p.model }

// VarMap returns the variables discovered whilst compiling this program, in
// discovery order.
func (p *Program) VarMap() *repn.VarMap { return p.visitor.VarMap() }

// Rows returns the compiled constraints, in declaration order.
func (p *Program) Rows() []Row { return p.rows }

// Goals returns the compiled objectives, in declaration order.
func (p *Program) Goals() []Goal { return p.goals }

// IsLinear checks whether every row and goal in this program is affine.
func (p *Program) IsLinear() bool {
	for _, r := range p.rows {
		if r.Result.Kind == repn.General {
			return false
		}
	}
	//
	for _, g := range p.goals {
		if g.Result.Kind == repn.General {
			return false
		}
	}
	//
	return true
}

// ToExpression reconstructs an expression from a given result of this
// program.
func (p *Program) ToExpression(result repn.Result) expr.Expr {
	return p.visitor.ToExpression(result)
}

// NonlinearError is reported when a linear program is required, but some
// component is not affine.
type NonlinearError struct {
	// Full name of the offending component
	Component string
	// Nonlinear residual of the component
	Residual expr.Expr
}

func (e *NonlinearError) Error() string {
	return fmt.Sprintf("%s is nonlinear: %s", e.Component, e.Residual.String())
}

// Compile walks every active constraint body and active objective of a model,
// in declaration order, using a single visitor.  Named expressions shared
// between components are therefore classified only once.  Compilation can be
// cancelled through the given context, which is checked between components.
func Compile(ctx context.Context, m *model.Model, cfg Config) (*Program, error) {
	stats := util.NewPerfStats()
	p := &Program{m, repn.NewVisitor(), nil, nil}
	//
	for _, c := range m.Constraints() {
		if !c.IsActive() {
			log.Debugf("skipping inactive constraint %s", model.FullName(c))
			continue
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
		//
		row, err := p.compileConstraint(c, cfg)
		if err != nil {
			return nil, err
		}
		//
		p.rows = append(p.rows, row)
	}
	//
	for _, o := range m.Objectives() {
		if !o.IsActive() {
			log.Debugf("skipping inactive objective %s", model.FullName(o))
			continue
		} else if err := ctx.Err(); err != nil {
			return nil, err
		}
		//
		result, err := p.compile(o, o.Expr(), cfg)
		if err != nil {
			return nil, err
		}
		//
		p.goals = append(p.goals, Goal{o, result})
	}
	//
	stats.Log(fmt.Sprintf("Compiling %d constraints and %d objectives", len(p.rows), len(p.goals)))
	//
	return p, nil
}

func (p *Program) compileConstraint(c *model.Constraint, cfg Config) (Row, error) {
	lower, err := bound(c, c.Lower(), math.Inf(-1))
	if err != nil {
		return Row{}, err
	}
	//
	upper, err := bound(c, c.Upper(), math.Inf(1))
	if err != nil {
		return Row{}, err
	}
	//
	result, err := p.compile(c, c.Body(), cfg)
	if err != nil {
		return Row{}, err
	}
	//
	return Row{c, lower, upper, result}, nil
}

func (p *Program) compile(c model.Component, e expr.Expr, cfg Config) (repn.Result, error) {
	name := model.FullName(c)
	//
	result, err := p.visitor.Classify(e)
	if err != nil {
		return repn.Result{}, fmt.Errorf("%s: %w", name, err)
	} else if cfg.LinearOnly && result.Kind == repn.General {
		return repn.Result{}, &NonlinearError{name, result.Repn.Nonlinear}
	}
	//
	log.Debugf("%s => %s", name, result.String())
	//
	return result, nil
}

// Evaluate a constraint bound, where an absent bound takes a given default.
func bound(c *model.Constraint, e expr.Expr, def float64) (float64, error) {
	if e == nil {
		return def, nil
	}
	//
	v, err := e.Eval()
	if err != nil {
		return math.NaN(), fmt.Errorf("%s: invalid bound %s: %w", model.FullName(c), e.String(), err)
	}
	//
	return v, nil
}
