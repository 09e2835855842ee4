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
	"fmt"
	"math"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// ExternalFunction represents a function whose implementation lies outside of
// the expression system (e.g. a compiled library routine).  Such functions are
// treated as black boxes which can only be evaluated.
type ExternalFunction struct {
	Name string
	// Symbol identifies the implementation of this function within its
	// library, which can differ from the name under which it was declared.
	Symbol string
	// Arity of the function, where a negative value indicates any number of
	// arguments is accepted.
	Arity int
	Fn    func([]float64) (float64, error)
}

// Call this function on a given set of arguments.
func (p *ExternalFunction) Call(args []float64) (float64, error) {
	if p.Arity >= 0 && p.Arity != len(args) {
		return math.NaN(), fmt.Errorf("external function %s expects %d arguments (found %d)", p.Name, p.Arity,
			len(args))
	}
	//
	return p.Fn(args)
}

// External represents a call to an external function.
type External struct {
	fn   *ExternalFunction
	args []Expr
}

// NewExternal constructs a call to an external function.
func NewExternal(fn *ExternalFunction, args ...Expr) *External {
	return &External{fn, args}
}

// Function returns the function being called.
func (p *External) Function() *ExternalFunction { return p.fn }

// Op implementation for Expr interface.
func (p *External) Op() Op { return OpExternal }

// Args implementation for Expr interface.
func (p *External) Args() []Expr { return p.args }

// WithArgs implementation for Expr interface.
func (p *External) WithArgs(args []Expr) Expr { return NewExternal(p.fn, args...) }

// Eval implementation for Expr interface.
func (p *External) Eval() (float64, error) {
	args, err := EvalAll(p.args)
	if err != nil {
		return math.NaN(), err
	}
	//
	return p.fn.Call(args)
}

// IsFixed implementation for Expr interface.
func (p *External) IsFixed() bool { return isFixed(p.args...) }

// IsPotentiallyVariable implementation for Expr interface.
func (p *External) IsPotentiallyVariable() bool { return isPotentiallyVariable(p.args...) }

// IsExpressionType implementation for Expr interface.
func (p *External) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *External) Lisp() sexp.SExp {
	list := lispOf("call", p.args...).AsList()
	// Insert function name after head
	elements := append([]sexp.SExp{list.Elements[0], sexp.NewSymbol(p.fn.Name)}, list.Elements[1:]...)
	//
	return sexp.NewList(elements...)
}

func (p *External) String() string { return p.Lisp().String(true) }

// EvalAll evaluates a sequence of expressions, failing on the first error.
func EvalAll(args []Expr) ([]float64, error) {
	values := make([]float64, len(args))
	//
	for i, arg := range args {
		v, err := arg.Eval()
		if err != nil {
			return nil, err
		}
		//
		values[i] = v
	}
	//
	return values, nil
}

var builtinFunctions = map[string]*ExternalFunction{
	"hypot": {"hypot", "hypot", 2, func(args []float64) (float64, error) {
		return math.Hypot(args[0], args[1]), nil
	}},
	"atan2": {"atan2", "atan2", 2, func(args []float64) (float64, error) {
		return math.Atan2(args[0], args[1]), nil
	}},
	"mod": {"mod", "mod", 2, func(args []float64) (float64, error) {
		if args[1] == 0 {
			return math.NaN(), fmt.Errorf("modulo by zero")
		}
		//
		return math.Mod(args[0], args[1]), nil
	}},
	"max": {"max", "max", -1, func(args []float64) (float64, error) { return fold(math.Max, math.Inf(-1), args), nil }},
	"min": {"min", "min", -1, func(args []float64) (float64, error) { return fold(math.Min, math.Inf(1), args), nil }},
}

// LookupBuiltinFunction returns the builtin external function with a given
// name, if one exists.  Builtins stand in for compiled libraries which would
// otherwise be loaded at runtime.
func LookupBuiltinFunction(name string) (*ExternalFunction, bool) {
	fn, ok := builtinFunctions[name]
	return fn, ok
}

func fold(fn func(float64, float64) float64, init float64, args []float64) float64 {
	acc := init
	for _, arg := range args {
		acc = fn(acc, arg)
	}
	//
	return acc
}
