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

	"github.com/consensys/go-linrepn/pkg/expr"
	log "github.com/sirupsen/logrus"
)

// exitRule computes the classification of an operator node from the
// classifications of its operands.  Operand payloads are owned by the rule,
// and may be mutated in place.
type exitRule func(v *Visitor, node expr.Expr, args []Result) (Result, error)

// maxOperands is the largest number of operands any exit rule accepts.
const maxOperands = 3

// exitKey identifies an exit rule by operator and operand classifications.
type exitKey struct {
	op    expr.Op
	arity uint8
	kinds [maxOperands]Kind
}

func keyOf(op expr.Op, args []Result) (exitKey, bool) {
	key := exitKey{op: op, arity: uint8(len(args))}
	//
	if len(args) > maxOperands {
		return key, false
	}
	//
	for i, arg := range args {
		key.kinds[i] = arg.Kind
	}
	//
	return key, true
}

var exitRules = map[exitKey]exitRule{}

var allKinds = []Kind{Constant, Linear, General}
var nonConstantKinds = []Kind{Linear, General}

// register a rule for every combination of the given operand kinds.
func register(op expr.Op, rule exitRule, kinds ...[]Kind) {
	var combine func(prefix []Kind, rest [][]Kind)
	//
	combine = func(prefix []Kind, rest [][]Kind) {
		if len(rest) == 0 {
			key := exitKey{op: op, arity: uint8(len(prefix))}
			copy(key.kinds[:], prefix)
			exitRules[key] = rule
			//
			return
		}
		//
		for _, k := range rest[0] {
			combine(append(prefix, k), rest[1:])
		}
	}
	//
	combine(make([]Kind, 0, len(kinds)), kinds)
}

func init() {
	constant := []Kind{Constant}
	// Negation
	register(expr.OpNegation, exitNegationConstant, constant)
	register(expr.OpNegation, exitNegation, nonConstantKinds)
	// Products (including monomials whose coefficient had to be descended)
	for _, op := range []expr.Op{expr.OpProduct, expr.OpMonomial} {
		register(op, exitProductConstant, constant, constant)
		register(op, exitProductScale, constant, nonConstantKinds)
		register(op, exitProductScale, nonConstantKinds, constant)
		register(op, exitProductNonlinear, nonConstantKinds, nonConstantKinds)
	}
	// Division
	register(expr.OpDivision, exitDivisionConstant, constant, constant)
	register(expr.OpDivision, exitDivisionScale, nonConstantKinds, constant)
	register(expr.OpDivision, exitDivisionNonlinear, allKinds, nonConstantKinds)
	// Exponentiation
	register(expr.OpPower, exitPowerConstant, constant, constant)
	register(expr.OpPower, exitPowerIdentity, nonConstantKinds, constant)
	register(expr.OpPower, exitPowerNonlinear, allKinds, nonConstantKinds)
	// Unary functions
	for _, op := range []expr.Op{expr.OpUnary, expr.OpAbs} {
		register(op, exitUnaryConstant, constant)
		register(op, exitUnaryNonlinear, nonConstantKinds)
	}
	// Named expressions
	register(expr.OpNamed, exitNamed, allKinds)
	// Conditionals
	register(expr.OpIf, exitIfConstant, constant, allKinds, allKinds)
	register(expr.OpIf, exitIfNonlinear, nonConstantKinds, allKinds, allKinds)
	// Comparisons
	register(expr.OpCompare, exitCompareConstant, constant, constant)
	register(expr.OpCompare, exitCompareNonlinear, constant, nonConstantKinds)
	register(expr.OpCompare, exitCompareNonlinear, nonConstantKinds, allKinds)
}

// ============================================================================
// Negation
// ============================================================================

func exitNegationConstant(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return ConstantResult(-args[0].Value), nil
}

func exitNegation(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	args[0].Repn.Multiplier *= -1
	return args[0], nil
}

// ============================================================================
// Product
// ============================================================================

func exitProductConstant(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return ConstantResult(args[0].Value * args[1].Value), nil
}

// Scale a non-constant operand by a constant operand.  Multiplication by zero
// or NaN yields that constant, regardless of the other operand.
func exitProductScale(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	factor, other := args[0], args[1]
	//
	if factor.Kind != Constant {
		factor, other = other, factor
	}
	//
	if factor.Value == 0 || math.IsNaN(factor.Value) {
		return ConstantResult(factor.Value), nil
	}
	//
	other.Repn.Multiplier *= factor.Value
	//
	return other, nil
}

func exitProductNonlinear(v *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return GeneralResult(expr.NewProduct(v.ToExpression(args[0]), v.ToExpression(args[1]))), nil
}

// ============================================================================
// Division
// ============================================================================

// Constant division follows IEEE arithmetic, hence division by zero yields an
// infinity (or NaN for 0/0).
func exitDivisionConstant(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return ConstantResult(args[0].Value / args[1].Value), nil
}

// Division by a constant scales the dividend, where only a NaN divisor
// short-circuits.  Division by zero gives infinite coefficients.
func exitDivisionScale(_ *Visitor, _ expr.Expr, args []Result) (Result, error) {
	divisor := args[1].Value
	//
	if math.IsNaN(divisor) {
		return ConstantResult(divisor), nil
	}
	//
	args[0].Repn.Multiplier /= divisor
	//
	return args[0], nil
}

func exitDivisionNonlinear(v *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return GeneralResult(expr.NewDivision(v.ToExpression(args[0]), v.ToExpression(args[1]))), nil
}

// ============================================================================
// Exponentiation
// ============================================================================

func exitPowerConstant(_ *Visitor, node expr.Expr, args []Result) (Result, error) {
	return ConstantResult(folded(expr.PowValue(node, args[0].Value, args[1].Value))), nil
}

// Raising to the power of one is the identity, whilst all other exponents are
// nonlinear.
func exitPowerIdentity(v *Visitor, node expr.Expr, args []Result) (Result, error) {
	if args[1].Value == 1 {
		return args[0], nil
	}
	//
	return exitPowerNonlinear(v, node, args)
}

func exitPowerNonlinear(v *Visitor, _ expr.Expr, args []Result) (Result, error) {
	return GeneralResult(expr.NewPower(v.ToExpression(args[0]), v.ToExpression(args[1]))), nil
}

// ============================================================================
// Unary functions
// ============================================================================

func exitUnaryConstant(_ *Visitor, node expr.Expr, args []Result) (Result, error) {
	var (
		arg   = args[0].Value
		value float64
		err   error
	)
	//
	switch n := node.(type) {
	case *expr.Unary:
		value, err = n.Function().Apply(node, arg)
	case *expr.Abs:
		value = math.Abs(arg)
	default:
		return Result{}, &InternalError{node, "unknown unary function"}
	}
	//
	return ConstantResult(folded(value, err)), nil
}

func exitUnaryNonlinear(v *Visitor, node expr.Expr, args []Result) (Result, error) {
	return GeneralResult(node.WithArgs([]expr.Expr{v.ToExpression(args[0])})), nil
}

// ============================================================================
// Named expressions
// ============================================================================

// Record the classification of a named expression in the cache, and return an
// independent copy so that subsequent in-place updates by the caller cannot
// corrupt the cached entry.
func exitNamed(v *Visitor, node expr.Expr, args []Result) (Result, error) {
	named, ok := node.(expr.Subexpression)
	if !ok {
		return Result{}, &InternalError{node, "named expression without identity"}
	}
	//
	v.cache.Put(named.Id(), args[0])
	//
	return args[0].Duplicate(), nil
}

// ============================================================================
// Conditionals
// ============================================================================

// Select the branch determined by a constant test.  A NaN test cannot select a
// branch, so the conditional is retained.
func exitIfConstant(v *Visitor, node expr.Expr, args []Result) (Result, error) {
	switch test := args[0].Value; {
	case math.IsNaN(test):
		return exitIfNonlinear(v, node, args)
	case test != 0:
		return args[1], nil
	default:
		return args[2], nil
	}
}

func exitIfNonlinear(v *Visitor, _ expr.Expr, args []Result) (Result, error) {
	test := v.ToExpression(args[0])
	then := v.ToExpression(args[1])
	elseArm := v.ToExpression(args[2])
	//
	return GeneralResult(expr.NewIfThenElse(test, then, elseArm)), nil
}

// ============================================================================
// Comparisons
// ============================================================================

func exitCompareConstant(_ *Visitor, node expr.Expr, args []Result) (Result, error) {
	relation := node.(*expr.Compare).Relation()
	//
	return ConstantResult(expr.Truth(relation.Holds(args[0].Value, args[1].Value))), nil
}

func exitCompareNonlinear(v *Visitor, node expr.Expr, args []Result) (Result, error) {
	return GeneralResult(node.WithArgs([]expr.Expr{v.ToExpression(args[0]), v.ToExpression(args[1])})), nil
}

// Complete a constant folding operation.  Failures produce NaN, which then
// propagates as normal.
func folded(value float64, err error) float64 {
	if err != nil {
		log.Warnf("%s (using nan)", err.Error())
		return math.NaN()
	}
	//
	return value
}
