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
	"math"
	"strconv"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// ============================================================================
// Constant
// ============================================================================

// Constant represents a numeric literal.  Literals can hold any real value,
// including NaN and the infinities.
type Constant struct {
	Value float64
}

// Const constructs a numeric literal.
func Const(value float64) *Constant {
	return &Constant{value}
}

// Op implementation for Expr interface.
func (p *Constant) Op() Op { return OpConstant }

// Args implementation for Expr interface.
func (p *Constant) Args() []Expr { return nil }

// WithArgs implementation for Expr interface.
func (p *Constant) WithArgs([]Expr) Expr { return p }

// Eval implementation for Expr interface.
func (p *Constant) Eval() (float64, error) { return p.Value, nil }

// IsFixed implementation for Expr interface.
func (p *Constant) IsFixed() bool { return true }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Constant) IsPotentiallyVariable() bool { return false }

// IsExpressionType implementation for Expr interface.
func (p *Constant) IsExpressionType() bool { return false }

// Lisp implementation for Expr interface.
func (p *Constant) Lisp() sexp.SExp { return sexp.NewSymbol(FormatNumber(p.Value)) }

func (p *Constant) String() string { return FormatNumber(p.Value) }

// FormatNumber returns the shortest textual representation of a number which
// parses back to exactly the same value.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}
	//
	return strconv.FormatFloat(value, 'g', -1, 64)
}

// ============================================================================
// Var
// ============================================================================

// Var represents a decision variable.  A variable has (optional) lower and
// upper bounds, where an infinite bound indicates the variable is unbounded in
// that direction.  A variable can additionally be fixed, in which case it is
// treated as a constant holding its current value.
type Var struct {
	id       VarId
	name     string
	value    float64
	hasValue bool
	fixed    bool
	lb       float64
	ub       float64
}

// Id returns the identity of this variable.
func (p *Var) Id() VarId { return p.id }

// Name returns the name of this variable.
func (p *Var) Name() string { return p.name }

// SetName renames this variable.
func (p *Var) SetName(name string) { p.name = name }

// Value returns the current value of this variable, and whether it has one.
func (p *Var) Value() (float64, bool) { return p.value, p.hasValue }

// SetValue assigns the current value of this variable.
func (p *Var) SetValue(value float64) {
	p.value = value
	p.hasValue = true
}

// ClearValue removes any current value from this variable.
func (p *Var) ClearValue() {
	p.value = 0
	p.hasValue = false
}

// Fix pins this variable to a given value.
func (p *Var) Fix(value float64) {
	p.SetValue(value)
	p.fixed = true
}

// Unfix releases this variable, though it retains its current value.
func (p *Var) Unfix() { p.fixed = false }

// Bounds returns the lower and upper bounds of this variable.
func (p *Var) Bounds() (float64, float64) { return p.lb, p.ub }

// SetBounds assigns the lower and upper bounds of this variable.
func (p *Var) SetBounds(lb, ub float64) {
	p.lb = lb
	p.ub = ub
}

// Op implementation for Expr interface.
func (p *Var) Op() Op { return OpVar }

// Args implementation for Expr interface.
func (p *Var) Args() []Expr { return nil }

// WithArgs implementation for Expr interface.
func (p *Var) WithArgs([]Expr) Expr { return p }

// Eval implementation for Expr interface.
func (p *Var) Eval() (float64, error) {
	if !p.hasValue {
		return math.NaN(), &UninitialisedError{p}
	}
	//
	return p.value, nil
}

// IsFixed implementation for Expr interface.
func (p *Var) IsFixed() bool { return p.fixed }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Var) IsPotentiallyVariable() bool { return true }

// IsExpressionType implementation for Expr interface.
func (p *Var) IsExpressionType() bool { return false }

// Lisp implementation for Expr interface.
func (p *Var) Lisp() sexp.SExp { return sexp.NewSymbol(p.name) }

func (p *Var) String() string { return p.name }

// ============================================================================
// Param
// ============================================================================

// Param represents a mutable parameter.  Parameters hold a value which can
// change between solves, but which can never depend upon a decision variable.
type Param struct {
	name     string
	value    float64
	hasValue bool
}

// NewParam constructs a parameter with a given initial value.
func NewParam(name string, value float64) *Param {
	return &Param{name, value, true}
}

// NewUninitialisedParam constructs a parameter which has no value.
func NewUninitialisedParam(name string) *Param {
	return &Param{name, 0, false}
}

// Name returns the name of this parameter.
func (p *Param) Name() string { return p.name }

// SetName renames this parameter.
func (p *Param) SetName(name string) { p.name = name }

// SetValue assigns the value of this parameter.
func (p *Param) SetValue(value float64) {
	p.value = value
	p.hasValue = true
}

// Value returns the current value of this parameter, and whether it has one.
func (p *Param) Value() (float64, bool) { return p.value, p.hasValue }

// Op implementation for Expr interface.
func (p *Param) Op() Op { return OpParam }

// Args implementation for Expr interface.
func (p *Param) Args() []Expr { return nil }

// WithArgs implementation for Expr interface.
func (p *Param) WithArgs([]Expr) Expr { return p }

// Eval implementation for Expr interface.
func (p *Param) Eval() (float64, error) {
	if !p.hasValue {
		return math.NaN(), &UninitialisedError{p}
	}
	//
	return p.value, nil
}

// IsFixed implementation for Expr interface.
func (p *Param) IsFixed() bool { return true }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Param) IsPotentiallyVariable() bool { return false }

// IsExpressionType implementation for Expr interface.
func (p *Param) IsExpressionType() bool { return false }

// Lisp implementation for Expr interface.
func (p *Param) Lisp() sexp.SExp { return sexp.NewSymbol(p.name) }

func (p *Param) String() string { return p.name }
