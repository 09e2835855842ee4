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
	"sort"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// UnaryFunction represents a named function of one argument, such as log or
// sin.  Evaluating a function outside of its domain produces an error.
type UnaryFunction struct {
	Name string
	Fn   func(float64) (float64, bool)
}

// Apply this function to a given argument, where any domain error is reported
// against a given expression.
func (p *UnaryFunction) Apply(e Expr, arg float64) (float64, error) {
	if v, ok := p.Fn(arg); ok {
		return v, nil
	}
	//
	return math.NaN(), &DomainError{e, "math domain error"}
}

var unaryFunctions = map[string]*UnaryFunction{}

func init() {
	register := func(name string, fn func(float64) (float64, bool)) {
		unaryFunctions[name] = &UnaryFunction{name, fn}
	}
	total := func(fn func(float64) float64) func(float64) (float64, bool) {
		return func(x float64) (float64, bool) { return fn(x), true }
	}
	//
	register("log", func(x float64) (float64, bool) { return math.Log(x), x > 0 || math.IsNaN(x) })
	register("log10", func(x float64) (float64, bool) { return math.Log10(x), x > 0 || math.IsNaN(x) })
	register("exp", func(x float64) (float64, bool) {
		v := math.Exp(x)
		return v, !math.IsInf(v, 1) || math.IsInf(x, 1)
	})
	register("sqrt", func(x float64) (float64, bool) { return math.Sqrt(x), !(x < 0) })
	register("sin", total(math.Sin))
	register("cos", total(math.Cos))
	register("tan", total(math.Tan))
	register("asin", func(x float64) (float64, bool) { return math.Asin(x), !(math.Abs(x) > 1) })
	register("acos", func(x float64) (float64, bool) { return math.Acos(x), !(math.Abs(x) > 1) })
	register("atan", total(math.Atan))
	register("sinh", total(math.Sinh))
	register("cosh", total(math.Cosh))
	register("tanh", total(math.Tanh))
	register("asinh", total(math.Asinh))
	register("acosh", func(x float64) (float64, bool) { return math.Acosh(x), !(x < 1) })
	register("atanh", func(x float64) (float64, bool) { return math.Atanh(x), !(math.Abs(x) >= 1) })
	register("ceil", total(math.Ceil))
	register("floor", total(math.Floor))
}

// LookupUnaryFunction returns the unary function with a given name, if one
// exists.
func LookupUnaryFunction(name string) (*UnaryFunction, bool) {
	fn, ok := unaryFunctions[name]
	return fn, ok
}

// UnaryFunctions returns the names of all known unary functions, in
// alphabetical order.
func UnaryFunctions() []string {
	names := make([]string, 0, len(unaryFunctions))
	for name := range unaryFunctions {
		names = append(names, name)
	}
	//
	sort.Strings(names)
	//
	return names
}

// Unary represents the application of a named unary function to an arbitrary
// expression.
type Unary struct {
	fn  *UnaryFunction
	arg Expr
}

// NewUnary constructs the application of a unary function.
func NewUnary(fn *UnaryFunction, arg Expr) *Unary {
	return &Unary{fn, arg}
}

// Function returns the function being applied.
func (p *Unary) Function() *UnaryFunction { return p.fn }

// Op implementation for Expr interface.
func (p *Unary) Op() Op { return OpUnary }

// Args implementation for Expr interface.
func (p *Unary) Args() []Expr { return []Expr{p.arg} }

// WithArgs implementation for Expr interface.
func (p *Unary) WithArgs(args []Expr) Expr { return NewUnary(p.fn, args[0]) }

// Eval implementation for Expr interface.
func (p *Unary) Eval() (float64, error) {
	v, err := p.arg.Eval()
	if err != nil {
		return math.NaN(), err
	}
	//
	return p.fn.Apply(p, v)
}

// IsFixed implementation for Expr interface.
func (p *Unary) IsFixed() bool { return p.arg.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.
func (p *Unary) IsPotentiallyVariable() bool { return p.arg.IsPotentiallyVariable() }

// IsExpressionType implementation for Expr interface.
func (p *Unary) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Unary) Lisp() sexp.SExp { return lispOf(p.fn.Name, p.arg) }

func (p *Unary) String() string { return p.Lisp().String(true) }
