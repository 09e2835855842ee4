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
// Package model provides the object graph of an optimisation model: variables,
// parameters, named expressions, constraints, objectives and suffixes arranged
// in a hierarchy of blocks.
package model

import (
	"github.com/consensys/go-linrepn/pkg/expr"
)

// Component is anything which can be declared within a block.  Every component
// has a name which is unique within its parent block.
type Component interface {
	// Name returns the local name of this component.
	Name() string
	// Parent returns the block in which this component is declared, or nil if
	// this is the root block.
	Parent() *Block
	setName(string)
	setParent(*Block)
}

// parented provides the parent link shared by all components.
type parented struct {
	parent *Block
}

// Parent implementation for Component interface.
func (p *parented) Parent() *Block { return p.parent }

func (p *parented) setParent(parent *Block) { p.parent = parent }

// ============================================================================
// Var
// ============================================================================

// Var is a component declaring a decision variable.
type Var struct {
	parented
	v *expr.Var
}

// Name implementation for Component interface.
func (p *Var) Name() string { return p.v.Name() }

func (p *Var) setName(name string) { p.v.SetName(name) }

// Expr returns the variable for use within expressions.
func (p *Var) Expr() *expr.Var { return p.v }

// ============================================================================
// Param
// ============================================================================

// Param is a component declaring a mutable parameter.
type Param struct {
	parented
	p *expr.Param
}

// Name implementation for Component interface.
func (p *Param) Name() string { return p.p.Name() }

func (p *Param) setName(name string) { p.p.SetName(name) }

// Expr returns the parameter for use within expressions.
func (p *Param) Expr() *expr.Param { return p.p }

// ============================================================================
// Expression
// ============================================================================

// Expression is a component declaring a named expression.
type Expression struct {
	parented
	e *expr.Named
}

// Name implementation for Component interface.
func (p *Expression) Name() string { return p.e.Name() }

func (p *Expression) setName(name string) { p.e.SetName(name) }

// Expr returns the named expression for use within other expressions.
func (p *Expression) Expr() *expr.Named { return p.e }

// ============================================================================
// Constraint
// ============================================================================

// Constraint is a component declaring that a body expression must lie between
// a lower and an upper bound, either of which can be absent (i.e. nil).
// Equality constraints have identical lower and upper bounds.
type Constraint struct {
	parented
	name     string
	lower    expr.Expr
	body     expr.Expr
	upper    expr.Expr
	equality bool
	active   bool
}

// Name implementation for Component interface.
func (p *Constraint) Name() string { return p.name }

func (p *Constraint) setName(name string) { p.name = name }

// Lower returns the lower bound of this constraint, or nil if there is none.
func (p *Constraint) Lower() expr.Expr { return p.lower }

// Body returns the body of this constraint.
func (p *Constraint) Body() expr.Expr { return p.body }

// Upper returns the upper bound of this constraint, or nil if there is none.
func (p *Constraint) Upper() expr.Expr { return p.upper }

// IsEquality checks whether this is an equality constraint.
func (p *Constraint) IsEquality() bool { return p.equality }

// IsActive checks whether this constraint is active.
func (p *Constraint) IsActive() bool { return p.active }

// SetActive activates or deactivates this constraint.
func (p *Constraint) SetActive(active bool) { p.active = active }

// SetInequality replaces this constraint with a (possibly ranged) inequality.
func (p *Constraint) SetInequality(lower expr.Expr, body expr.Expr, upper expr.Expr) {
	p.lower, p.body, p.upper, p.equality = lower, body, upper, false
}

// SetEquality replaces this constraint with an equality.
func (p *Constraint) SetEquality(body expr.Expr, rhs expr.Expr) {
	p.lower, p.body, p.upper, p.equality = rhs, body, rhs, true
}

// ============================================================================
// Objective
// ============================================================================

// Sense indicates whether an objective is minimised or maximised.
type Sense uint8

const (
	// Minimize indicates an objective to be minimised.
	Minimize Sense = iota
	// Maximize indicates an objective to be maximised.
	Maximize
)

func (p Sense) String() string {
	if p == Maximize {
		return "maximize"
	}
	//
	return "minimize"
}

// Objective is a component declaring an expression to be optimised.
type Objective struct {
	parented
	name   string
	sense  Sense
	e      expr.Expr
	active bool
}

// Name implementation for Component interface.
func (p *Objective) Name() string { return p.name }

func (p *Objective) setName(name string) { p.name = name }

// Sense returns the sense of this objective.
func (p *Objective) Sense() Sense { return p.sense }

// Expr returns the expression being optimised.
func (p *Objective) Expr() expr.Expr { return p.e }

// SetExpr replaces the expression being optimised.
func (p *Objective) SetExpr(e expr.Expr) { p.e = e }

// IsActive checks whether this objective is active.
func (p *Objective) IsActive() bool { return p.active }

// SetActive activates or deactivates this objective.
func (p *Objective) SetActive(active bool) { p.active = active }
