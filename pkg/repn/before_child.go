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
	"reflect"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// beforeRule decides whether a given child node can be classified without
// descending into it.  If so, it returns false along with the classification.
// Otherwise, it returns true to signal the walk must descend.
type beforeRule func(v *Visitor, child expr.Expr) (bool, Result, error)

// dispatcher maps concrete node types to their before rules.  Rules are
// resolved the first time a given type is encountered, and reused thereafter.
// A dispatcher is shared by a visitor and any nested visitors it creates.
type dispatcher struct {
	rules map[reflect.Type]beforeRule
}

func newDispatcher() *dispatcher {
	return &dispatcher{make(map[reflect.Type]beforeRule)}
}

func (p *dispatcher) resolve(child expr.Expr) beforeRule {
	t := reflect.TypeOf(child)
	//
	if rule, ok := p.rules[t]; ok {
		return rule
	}
	//
	rule := ruleForType(child)
	p.rules[t] = rule
	//
	return rule
}

// Determine the appropriate rule for nodes of the same type as a given node.
// Rules for specific node kinds take priority over the capabilities offered by
// a node, which in turn take priority over the generic rules.
func ruleForType(child expr.Expr) beforeRule {
	switch child.(type) {
	case *expr.Constant:
		return beforeConstant
	case *expr.Monomial:
		return beforeMonomial
	case *expr.Linear:
		return beforeLinear
	case *expr.IfThenElse:
		return beforeIfThenElse
	case *expr.External:
		return beforeExternal
	case expr.Subexpression:
		return beforeNamed
	case expr.Variable:
		return beforeVar
	}
	//
	if !child.IsExpressionType() {
		return beforeLeaf
	}
	//
	return beforeExpression
}

// Numeric literals are always constant.
func beforeConstant(_ *Visitor, child expr.Expr) (bool, Result, error) {
	return false, ConstantResult(child.(*expr.Constant).Value), nil
}

// Fixed variables are treated as constants, whilst all others are registered
// (if not already) and classified as linear with coefficient 1.
func beforeVar(v *Visitor, child expr.Expr) (bool, Result, error) {
	return v.monomial(child, 1, child.(expr.Variable))
}

// Leaves which are not variables are evaluated.  Since there is nothing to
// descend into, any failure here is fatal.
func beforeLeaf(_ *Visitor, child expr.Expr) (bool, Result, error) {
	if child.IsPotentiallyVariable() {
		return false, Result{}, &InternalError{child, "unsupported variable leaf"}
	}
	//
	value, err := child.Eval()
	if err != nil {
		return false, Result{}, &WalkError{child, err}
	}
	//
	return false, ConstantResult(value), nil
}

// Compound expressions which can never depend upon a variable are evaluated
// eagerly.  Should evaluation fail due to a domain error, the expression is
// descended instead since an enclosing operator (e.g. multiplication by zero)
// may still render the failure irrelevant.  All other expressions are
// descended.
func beforeExpression(_ *Visitor, child expr.Expr) (bool, Result, error) {
	if child.IsPotentiallyVariable() {
		return true, Result{}, nil
	}
	//
	value, err := child.Eval()
	//
	if isRecoverable(err) {
		return true, Result{}, nil
	} else if err != nil {
		return false, Result{}, &WalkError{child, err}
	}
	//
	return false, ConstantResult(value), nil
}

// Monomials are classified directly, without resorting to the general product
// rule.  Multiplication by zero or NaN is short-circuited.
func beforeMonomial(v *Visitor, child expr.Expr) (bool, Result, error) {
	var m = child.(*expr.Monomial)
	//
	coefficient, err := m.Coefficient().Eval()
	//
	if isRecoverable(err) {
		return true, Result{}, nil
	} else if err != nil {
		return false, Result{}, &WalkError{child, err}
	} else if coefficient == 0 || math.IsNaN(coefficient) {
		return false, ConstantResult(coefficient), nil
	}
	//
	return v.monomial(child, coefficient, m.Variable())
}

// Affine sums are folded in a single pass, accumulating the coefficients of
// any duplicate variables.  Terms with an exactly zero coefficient are
// skipped, whilst terms with a NaN coefficient contribute NaN to the constant.
func beforeLinear(v *Visitor, child expr.Expr) (bool, Result, error) {
	var (
		ans      = NewLinearRepn()
		constant float64
	)
	//
	for _, term := range child.Args() {
		m, ok := term.(*expr.Monomial)
		//
		if !ok {
			value, err := term.Eval()
			if isRecoverable(err) {
				return true, Result{}, nil
			} else if err != nil {
				return false, Result{}, &WalkError{term, err}
			}
			//
			constant += value
			//
			continue
		}
		//
		coefficient, err := m.Coefficient().Eval()
		//
		switch {
		case isRecoverable(err):
			return true, Result{}, nil
		case err != nil:
			return false, Result{}, &WalkError{term, err}
		case coefficient == 0:
			continue
		case math.IsNaN(coefficient):
			constant += coefficient
			continue
		}
		//
		variable := m.Variable()
		//
		if variable.IsFixed() {
			value, err := variable.Eval()
			if err != nil {
				return false, Result{}, &WalkError{variable, err}
			}
			//
			constant += coefficient * value
		} else {
			v.vars.Register(variable)
			ans.Linear.Add(variable.Id(), coefficient)
		}
	}
	//
	if ans.Linear.Len() == 0 {
		return false, ConstantResult(constant), nil
	}
	//
	ans.Constant = constant
	//
	return false, Result{Linear, 0, ans}, nil
}

// Named expressions which have already been classified are taken from the
// cache, whilst all others are descended.
func beforeNamed(v *Visitor, child expr.Expr) (bool, Result, error) {
	if result, ok := v.cache.Get(child.(expr.Subexpression).Id()); ok {
		return false, result, nil
	}
	//
	return true, Result{}, nil
}

// Conditionals whose test is fixed are resolved here, by classifying only the
// selected branch.  Hence, variables in the other branch are never registered.
// Conditionals whose test is not fixed (or evaluates to NaN) are descended.
func beforeIfThenElse(v *Visitor, child expr.Expr) (bool, Result, error) {
	var (
		node = child.(*expr.IfThenElse)
		test = node.Test()
	)
	//
	if !test.IsFixed() {
		return true, Result{}, nil
	}
	//
	value, err := test.Eval()
	//
	if err != nil {
		return false, Result{}, &WalkError{test, err}
	} else if math.IsNaN(value) {
		return true, Result{}, nil
	}
	//
	branch := node.Else()
	if value != 0 {
		branch = node.Then()
	}
	//
	repn, err := v.nested().Walk(branch)
	if err != nil {
		return false, Result{}, err
	}
	//
	return false, repn.Result(), nil
}

// External function calls are never descended.  When all arguments are fixed,
// the call is evaluated.  Otherwise, the call itself forms a nonlinear
// residual.
func beforeExternal(_ *Visitor, child expr.Expr) (bool, Result, error) {
	if !child.IsFixed() {
		return false, GeneralResult(child), nil
	}
	//
	value, err := child.Eval()
	if err != nil {
		return false, Result{}, &WalkError{child, err}
	}
	//
	return false, ConstantResult(value), nil
}

// Classify a coefficient applied to a variable.  Fixed variables are folded
// into a constant, whilst others are registered if not already discovered.
func (p *Visitor) monomial(node expr.Expr, coefficient float64, variable expr.Variable) (bool, Result, error) {
	if variable.IsFixed() {
		value, err := variable.Eval()
		if err != nil {
			return false, Result{}, &WalkError{node, err}
		}
		//
		return false, ConstantResult(coefficient * value), nil
	}
	//
	p.vars.Register(variable)
	//
	ans := NewLinearRepn()
	ans.Linear.Set(variable.Id(), coefficient)
	//
	return false, Result{Linear, 0, ans}, nil
}

// Only domain errors are recoverable, since these can arise from subtrees
// which an enclosing operator renders irrelevant.  Missing values are never
// recoverable.
func isRecoverable(err error) bool {
	var derr *expr.DomainError
	//
	return err != nil && errors.As(err, &derr)
}
