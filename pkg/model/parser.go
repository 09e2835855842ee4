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
package model

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/util/source"
	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// ParseFile reads and parses a model from a given file on disk.
func ParseFile(filename string) (*Model, []source.SyntaxError, error) {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		return nil, nil, err
	}
	//
	m, errs := Parse(srcfile)
	//
	return m, errs, nil
}

// Parse a model from a given source file.  The model takes its name from the
// source file (excluding any extension).  A model file is a sequence of
// declarations, such as:
//
//	(defvar x :lb 0 :ub 10)
//	(defconstraint c1 (<= (+ x y) 10))
//	(defobjective obj minimize (* 2 x))
//
// Names are resolved lexically, through the enclosing blocks, and can be
// qualified (e.g. "b.x") to refer to components of nested blocks.
func Parse(srcfile *source.File) (*Model, []source.SyntaxError) {
	terms, srcmap, err := sexp.ParseAll(srcfile)
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	name := filepath.Base(srcfile.Filename())
	name = strings.TrimSuffix(name, filepath.Ext(name))
	p := newParser(srcfile, srcmap, NewModel(name))
	//
	if errs := p.declarations(p.model.root, terms); len(errs) > 0 {
		return nil, errs
	}
	//
	return p.model, nil
}

type parser struct {
	srcmap     *source.Map[sexp.SExp]
	model      *Model
	translator *sexp.Translator[expr.Expr]
	// Block in which names are currently being resolved.
	scope *Block
	// External functions declared so far.
	externals map[string]*expr.ExternalFunction
}

func newParser(srcfile *source.File, srcmap *source.Map[sexp.SExp], model *Model) *parser {
	p := &parser{
		srcmap:     srcmap,
		model:      model,
		translator: sexp.NewTranslator[expr.Expr](srcfile, srcmap),
		scope:      model.root,
		externals:  make(map[string]*expr.ExternalFunction),
	}
	// Literals and names
	p.translator.AddSymbolRule(numberRule)
	p.translator.AddSymbolRule(p.nameRule)
	// Arithmetic
	p.translator.AddRecursiveListRule("+", addRule)
	p.translator.AddRecursiveListRule("-", subRule)
	p.translator.AddRecursiveListRule("*", mulRule)
	p.translator.AddRecursiveListRule("/", binaryRule(expr.Div))
	p.translator.AddRecursiveListRule("^", binaryRule(expr.Pow))
	p.translator.AddRecursiveListRule("abs", unaryRule(func(e expr.Expr) expr.Expr { return expr.NewAbs(e) }))
	//
	for _, name := range expr.UnaryFunctions() {
		fn, _ := expr.LookupUnaryFunction(name)
		p.translator.AddRecursiveListRule(name, unaryRule(func(e expr.Expr) expr.Expr { return expr.NewUnary(fn, e) }))
	}
	// Logical
	p.translator.AddRecursiveListRule("if", ifRule)
	p.translator.AddRecursiveListRule("<", compareRule(expr.LessThan))
	p.translator.AddRecursiveListRule("<=", compareRule(expr.LessThanOrEquals))
	p.translator.AddRecursiveListRule("==", compareRule(expr.Equals))
	// External functions
	p.translator.AddListRule("call", p.callRule)
	//
	return p
}

// ============================================================================
// Declarations
// ============================================================================

func (p *parser) declarations(block *Block, terms []sexp.SExp) []source.SyntaxError {
	var errs []source.SyntaxError
	//
	outer := p.scope
	p.scope = block
	//
	for _, term := range terms {
		errs = append(errs, p.declaration(term)...)
	}
	//
	p.scope = outer
	//
	return errs
}

func (p *parser) declaration(term sexp.SExp) []source.SyntaxError {
	list := term.AsList()
	//
	if list == nil || list.Len() < 2 || list.Get(1).AsSymbol() == nil {
		return p.srcmap.SyntaxErrors(term, "invalid declaration")
	}
	//
	name := list.Get(1).AsSymbol().Value
	//
	switch list.Head() {
	case "defvar":
		return p.defVar(name, list)
	case "defparam":
		return p.defParam(name, list)
	case "defexpr":
		return p.defExpr(name, list)
	case "defconstraint":
		return p.defConstraint(name, list)
	case "defobjective":
		return p.defObjective(name, list)
	case "defsuffix":
		return p.defSuffix(name, list)
	case "defblock":
		return p.defBlock(name, list)
	case "defexternal":
		return p.defExternal(name, list)
	default:
		return p.srcmap.SyntaxErrors(list, fmt.Sprintf("unknown declaration \"%s\"", list.Head()))
	}
}

// (defvar x :lb 0 :ub 10 :value 1 :fixed)
func (p *parser) defVar(name string, list *sexp.List) []source.SyntaxError {
	var (
		value        float64
		hasValue     bool
		fixed        bool
		lower, upper = negInf, posInf
	)
	//
	for i := 2; i < list.Len(); i++ {
		attr := list.Get(i).AsSymbol()
		//
		if attr == nil {
			return p.srcmap.SyntaxErrors(list.Get(i), "invalid attribute")
		} else if attr.Value == ":fixed" {
			fixed = true
			continue
		} else if i+1 == list.Len() {
			return p.srcmap.SyntaxErrors(attr, "missing attribute value")
		}
		//
		i++
		n, errs := p.number(list.Get(i))
		//
		if errs != nil {
			return errs
		}
		//
		switch attr.Value {
		case ":lb":
			lower = n
		case ":ub":
			upper = n
		case ":value":
			value, hasValue = n, true
		default:
			return p.srcmap.SyntaxErrors(attr, fmt.Sprintf("unknown attribute \"%s\"", attr.Value))
		}
	}
	//
	if fixed && !hasValue {
		return p.srcmap.SyntaxErrors(list, "fixed variable requires a value")
	}
	//
	v, err := p.scope.NewVar(name)
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	v.v.SetBounds(lower, upper)
	//
	if fixed {
		v.v.Fix(value)
	} else if hasValue {
		v.v.SetValue(value)
	}
	//
	return nil
}

// (defparam p 3), or (defparam p) for an uninitialised parameter.
func (p *parser) defParam(name string, list *sexp.List) []source.SyntaxError {
	var err error
	//
	switch list.Len() {
	case 2:
		_, err = p.scope.NewUninitialisedParam(name)
	case 3:
		n, errs := p.number(list.Get(2))
		if errs != nil {
			return errs
		}
		//
		_, err = p.scope.NewParam(name, n)
	default:
		return p.srcmap.SyntaxErrors(list, "expected (defparam name [value])")
	}
	//
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	return nil
}

// (defexpr e (+ x y))
func (p *parser) defExpr(name string, list *sexp.List) []source.SyntaxError {
	if list.Len() != 3 {
		return p.srcmap.SyntaxErrors(list, "expected (defexpr name body)")
	}
	//
	body, errs := p.translator.Translate(list.Get(2))
	if errs != nil {
		return errs
	}
	//
	if _, err := p.scope.NewExpression(name, body); err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	return nil
}

// (defconstraint c (<= lhs rhs) [:inactive])
func (p *parser) defConstraint(name string, list *sexp.List) []source.SyntaxError {
	active, ok := activity(list, 3)
	if !ok {
		return p.srcmap.SyntaxErrors(list, "expected (defconstraint name relation [:inactive])")
	}
	//
	rel := list.Get(2).AsList()
	if rel == nil || rel.Len() < 3 || rel.Len() > 4 {
		return p.srcmap.SyntaxErrors(list.Get(2), "invalid relation")
	}
	//
	args := make([]expr.Expr, rel.Len()-1)
	//
	for i := range args {
		var errs []source.SyntaxError
		//
		if args[i], errs = p.translator.Translate(rel.Get(i + 1)); errs != nil {
			return errs
		}
	}
	//
	var (
		c   *Constraint
		err error
	)
	//
	switch {
	case rel.Head() == "<=" && len(args) == 3:
		if args[0].IsPotentiallyVariable() || args[2].IsPotentiallyVariable() {
			return p.srcmap.SyntaxErrors(rel, "bounds of ranged inequality cannot be variable")
		}
		//
		c, err = p.scope.NewInequality(name, args[0], args[1], args[2])
	case rel.Head() == "<=" && len(args) == 2:
		c, err = p.newInequality(name, args[0], args[1])
	case rel.Head() == ">=" && len(args) == 2:
		c, err = p.newInequality(name, args[1], args[0])
	case rel.Head() == "==" && len(args) == 2:
		c, err = p.newEquality(name, args[0], args[1])
	default:
		return p.srcmap.SyntaxErrors(rel, "invalid relation")
	}
	//
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	c.SetActive(active)
	//
	return nil
}

// Normalise lhs <= rhs so that any constant side becomes a bound.
func (p *parser) newInequality(name string, lhs expr.Expr, rhs expr.Expr) (*Constraint, error) {
	switch {
	case !lhs.IsPotentiallyVariable():
		return p.scope.NewInequality(name, lhs, rhs, nil)
	case !rhs.IsPotentiallyVariable():
		return p.scope.NewInequality(name, nil, lhs, rhs)
	default:
		return p.scope.NewInequality(name, nil, expr.Sub(lhs, rhs), expr.Const(0))
	}
}

// Normalise lhs == rhs so that any constant side becomes the right-hand side.
func (p *parser) newEquality(name string, lhs expr.Expr, rhs expr.Expr) (*Constraint, error) {
	switch {
	case !lhs.IsPotentiallyVariable():
		return p.scope.NewEquality(name, rhs, lhs)
	case !rhs.IsPotentiallyVariable():
		return p.scope.NewEquality(name, lhs, rhs)
	default:
		return p.scope.NewEquality(name, expr.Sub(lhs, rhs), expr.Const(0))
	}
}

// (defobjective o minimize e [:inactive])
func (p *parser) defObjective(name string, list *sexp.List) []source.SyntaxError {
	var sense Sense
	//
	active, ok := activity(list, 4)
	if !ok {
		return p.srcmap.SyntaxErrors(list, "expected (defobjective name sense expr [:inactive])")
	}
	//
	switch sym := list.Get(2).AsSymbol(); {
	case sym != nil && sym.Value == "minimize":
		sense = Minimize
	case sym != nil && sym.Value == "maximize":
		sense = Maximize
	default:
		return p.srcmap.SyntaxErrors(list.Get(2), "expected minimize or maximize")
	}
	//
	e, errs := p.translator.Translate(list.Get(3))
	if errs != nil {
		return errs
	}
	//
	o, err := p.scope.NewObjective(name, sense, e)
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	o.SetActive(active)
	//
	return nil
}

// (defsuffix name (component value) ... (* default))
func (p *parser) defSuffix(name string, list *sexp.List) []source.SyntaxError {
	s, err := p.scope.NewSuffix(name)
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	for _, entry := range list.Elements[2:] {
		pair := entry.AsList()
		//
		if pair == nil || pair.Len() != 2 || pair.Get(0).AsSymbol() == nil || pair.Get(1).AsSymbol() == nil {
			return p.srcmap.SyntaxErrors(entry, "expected (component value)")
		}
		//
		key := pair.Get(0).AsSymbol().Value
		value := suffixValue(pair.Get(1).AsSymbol().Value)
		//
		if key == "*" {
			s.SetDefault(value)
		} else if c := p.resolve(key); c == nil {
			return p.srcmap.SyntaxErrors(pair.Get(0), fmt.Sprintf("unknown component \"%s\"", key))
		} else {
			s.Set(c, value)
		}
	}
	//
	return nil
}

// (defblock b declarations...)
func (p *parser) defBlock(name string, list *sexp.List) []source.SyntaxError {
	b, err := p.scope.NewBlock(name)
	if err != nil {
		return p.srcmap.SyntaxErrors(list.Get(1), err.Error())
	}
	//
	return p.declarations(b, list.Elements[2:])
}

// (defexternal f builtin)
func (p *parser) defExternal(name string, list *sexp.List) []source.SyntaxError {
	if list.Len() != 3 || list.Get(2).AsSymbol() == nil {
		return p.srcmap.SyntaxErrors(list, "expected (defexternal name builtin)")
	}
	//
	builtin := list.Get(2).AsSymbol().Value
	//
	if fn, ok := expr.LookupBuiltinFunction(builtin); !ok {
		return p.srcmap.SyntaxErrors(list.Get(2), fmt.Sprintf("unknown builtin function \"%s\"", builtin))
	} else if _, ok := p.externals[name]; ok {
		return p.srcmap.SyntaxErrors(list.Get(1), fmt.Sprintf("duplicate external function \"%s\"", name))
	} else {
		// Bind the builtin under its declared name
		p.externals[name] = &expr.ExternalFunction{Name: name, Symbol: fn.Symbol, Arity: fn.Arity, Fn: fn.Fn}
	}
	//
	return nil
}

// Check whether a declaration of n elements is followed by an ":inactive"
// marker.  The second result indicates whether the declaration had the right
// number of elements.
func activity(list *sexp.List, n int) (bool, bool) {
	if list.Len() == n+1 {
		last := list.Get(n).AsSymbol()
		return false, last != nil && last.Value == ":inactive"
	}
	//
	return true, list.Len() == n
}

func (p *parser) number(term sexp.SExp) (float64, []source.SyntaxError) {
	if s := term.AsSymbol(); s != nil {
		if n, err := strconv.ParseFloat(s.Value, 64); err == nil {
			return n, nil
		}
	}
	//
	return 0, p.srcmap.SyntaxErrors(term, "expected number")
}

func suffixValue(text string) Value {
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return Number(n)
	}
	//
	return Text(text)
}

// ============================================================================
// Names
// ============================================================================

// Resolve a (possibly qualified) name by searching outwards from the current
// scope.
func (p *parser) resolve(name string) Component {
	path := strings.Split(name, ".")
	//
	for b := p.scope; b != nil; b = b.Parent() {
		if c := b.Component(path[0]); c != nil {
			return descend(c, path[1:])
		}
	}
	//
	return nil
}

func descend(c Component, path []string) Component {
	for _, name := range path {
		if b, ok := c.(*Block); !ok {
			return nil
		} else if c = b.Component(name); c == nil {
			return nil
		}
	}
	//
	return c
}

func (p *parser) nameRule(name string) (expr.Expr, bool, error) {
	switch c := p.resolve(name).(type) {
	case nil:
		return nil, false, nil
	case *Var:
		return c.v, true, nil
	case *Param:
		return c.p, true, nil
	case *Expression:
		return c.e, true, nil
	default:
		return nil, true, fmt.Errorf("component \"%s\" is not an expression", name)
	}
}

// ============================================================================
// Expressions
// ============================================================================

func numberRule(symbol string) (expr.Expr, bool, error) {
	n, err := strconv.ParseFloat(symbol, 64)
	//
	if err != nil {
		var numErr *strconv.NumError
		// Out of range literals are still numbers.
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return expr.Const(n), true, nil
		}
		//
		return nil, false, nil
	}
	//
	return expr.Const(n), true, nil
}

func addRule(_ string, args []expr.Expr) (expr.Expr, error) {
	if len(args) == 0 {
		return nil, errors.New("expected at least one argument")
	}
	//
	return expr.Add(args...), nil
}

func subRule(_ string, args []expr.Expr) (expr.Expr, error) {
	switch len(args) {
	case 0:
		return nil, errors.New("expected at least one argument")
	case 1:
		return expr.Neg(args[0]), nil
	}
	//
	result := args[0]
	//
	for _, arg := range args[1:] {
		result = expr.Sub(result, arg)
	}
	//
	return result, nil
}

func mulRule(_ string, args []expr.Expr) (expr.Expr, error) {
	if len(args) == 0 {
		return nil, errors.New("expected at least one argument")
	}
	//
	result := args[0]
	//
	for _, arg := range args[1:] {
		result = expr.Mul(result, arg)
	}
	//
	return result, nil
}

func binaryRule(fn func(expr.Expr, expr.Expr) expr.Expr) sexp.RecursiveRule[expr.Expr] {
	return func(_ string, args []expr.Expr) (expr.Expr, error) {
		if len(args) != 2 {
			return nil, errors.New("expected two arguments")
		}
		//
		return fn(args[0], args[1]), nil
	}
}

func unaryRule(fn func(expr.Expr) expr.Expr) sexp.RecursiveRule[expr.Expr] {
	return func(_ string, args []expr.Expr) (expr.Expr, error) {
		if len(args) != 1 {
			return nil, errors.New("expected one argument")
		}
		//
		return fn(args[0]), nil
	}
}

func compareRule(rel expr.Relation) sexp.RecursiveRule[expr.Expr] {
	return binaryRule(func(lhs expr.Expr, rhs expr.Expr) expr.Expr {
		return expr.NewCompare(rel, lhs, rhs)
	})
}

func ifRule(_ string, args []expr.Expr) (expr.Expr, error) {
	if len(args) != 3 {
		return nil, errors.New("expected three arguments")
	}
	//
	return expr.NewIfThenElse(args[0], args[1], args[2]), nil
}

// (call f args...)
func (p *parser) callRule(list *sexp.List) (expr.Expr, []source.SyntaxError) {
	if list.Len() < 2 || list.Get(1).AsSymbol() == nil {
		return nil, p.srcmap.SyntaxErrors(list, "expected (call function args...)")
	}
	//
	name := list.Get(1).AsSymbol().Value
	//
	fn, ok := p.externals[name]
	if !ok {
		return nil, p.srcmap.SyntaxErrors(list.Get(1), fmt.Sprintf("unknown external function \"%s\"", name))
	} else if fn.Arity >= 0 && fn.Arity != list.Len()-2 {
		return nil, p.srcmap.SyntaxErrors(list, fmt.Sprintf("external function \"%s\" expects %d arguments", name, fn.Arity))
	}
	//
	args := make([]expr.Expr, list.Len()-2)
	//
	for i := range args {
		var errs []source.SyntaxError
		//
		if args[i], errs = p.translator.Translate(list.Get(i + 2)); errs != nil {
			return nil, errs
		}
	}
	//
	return expr.NewExternal(fn, args...), nil
}

var (
	negInf = math.Inf(-1)
	posInf = math.Inf(1)
)
