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
	"math"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// Lisp returns the declarations of this model, such that parsing them yields
// an equivalent model.  References to variables, parameters and named
// expressions are qualified by their enclosing blocks.
func (p *Model) Lisp() []sexp.SExp {
	pr := printer{make(map[expr.Expr]string), make(map[string]*expr.ExternalFunction), nil}
	// Determine qualified names for all leaves
	for _, b := range p.root.Blocks() {
		for _, c := range b.components {
			switch c := c.(type) {
			case *Var:
				pr.names[c.v] = FullName(c)
			case *Param:
				pr.names[c.p] = FullName(c)
			case *Expression:
				pr.names[c.e] = FullName(c)
			}
		}
	}
	//
	decls := pr.block(p.root)
	// External functions must be declared before use
	externs := make([]sexp.SExp, len(pr.externs))
	//
	for i, name := range pr.externs {
		externs[i] = node("defexternal", sym(name), sym(pr.functions[name].Symbol))
	}
	//
	return append(externs, decls...)
}

type printer struct {
	names     map[expr.Expr]string
	functions map[string]*expr.ExternalFunction
	// External functions in order of first use
	externs []string
}

func (p *printer) block(b *Block) []sexp.SExp {
	var decls []sexp.SExp
	//
	for _, c := range b.components {
		decls = append(decls, p.component(c))
	}
	//
	return decls
}

func (p *printer) component(c Component) sexp.SExp {
	switch c := c.(type) {
	case *Var:
		return p.variable(c)
	case *Param:
		if v, ok := c.p.Value(); ok {
			return node("defparam", sym(c.Name()), number(v))
		}
		//
		return node("defparam", sym(c.Name()))
	case *Expression:
		return node("defexpr", sym(c.Name()), p.expr(c.e.Body()))
	case *Constraint:
		return withActivity(node("defconstraint", sym(c.name), p.relation(c)), c.active)
	case *Objective:
		return withActivity(node("defobjective", sym(c.name), sym(c.sense.String()), p.expr(c.e)), c.active)
	case *Suffix:
		decl := node("defsuffix", sym(c.name))
		//
		for _, k := range c.keys {
			decl.Append(node(FullName(k), sym(c.values[k].String())))
		}
		//
		if def, ok := c.Default(); ok {
			decl.Append(node("*", sym(def.String())))
		}
		//
		return decl
	case *Block:
		decl := node("defblock", sym(c.name))
		//
		for _, d := range p.block(c) {
			decl.Append(d)
		}
		//
		return decl
	default:
		panic("unknown component")
	}
}

func (p *printer) variable(c *Var) sexp.SExp {
	decl := node("defvar", sym(c.Name()))
	lb, ub := c.v.Bounds()
	//
	if !math.IsInf(lb, -1) {
		decl.Append(sym(":lb"))
		decl.Append(number(lb))
	}
	//
	if !math.IsInf(ub, 1) {
		decl.Append(sym(":ub"))
		decl.Append(number(ub))
	}
	//
	if v, ok := c.v.Value(); ok {
		decl.Append(sym(":value"))
		decl.Append(number(v))
	}
	//
	if c.v.IsFixed() {
		decl.Append(sym(":fixed"))
	}
	//
	return decl
}

func (p *printer) relation(c *Constraint) sexp.SExp {
	switch {
	case c.equality:
		return node("==", p.expr(c.body), p.expr(c.upper))
	case c.lower != nil && c.upper != nil:
		return node("<=", p.expr(c.lower), p.expr(c.body), p.expr(c.upper))
	case c.lower != nil:
		return node(">=", p.expr(c.body), p.expr(c.lower))
	case c.upper != nil:
		return node("<=", p.expr(c.body), p.expr(c.upper))
	default:
		return node("<=", p.expr(c.body), number(math.Inf(1)))
	}
}

// Render an expression, qualifying the names of its leaves.  This relies on
// the arguments of a node being the trailing elements of its rendering.
func (p *printer) expr(e expr.Expr) sexp.SExp {
	if name, ok := p.names[e]; ok {
		return sym(name)
	}
	//
	if ext, ok := e.(*expr.External); ok {
		fn := ext.Function()
		//
		if _, ok := p.functions[fn.Name]; !ok {
			p.functions[fn.Name] = fn
			p.externs = append(p.externs, fn.Name)
		}
	}
	//
	args := e.Args()
	rendered := e.Lisp().AsList()
	//
	if rendered == nil {
		return e.Lisp()
	}
	//
	n := rendered.Len() - len(args)
	elements := make([]sexp.SExp, n, rendered.Len())
	copy(elements, rendered.Elements[:n])
	//
	for _, arg := range args {
		elements = append(elements, p.expr(arg))
	}
	//
	return sexp.NewList(elements...)
}

func withActivity(decl *sexp.List, active bool) sexp.SExp {
	if !active {
		decl.Append(sym(":inactive"))
	}
	//
	return decl
}

func node(head string, elements ...sexp.SExp) *sexp.List {
	return sexp.NewList(append([]sexp.SExp{sym(head)}, elements...)...)
}

func sym(s string) *sexp.Symbol {
	return sexp.NewSymbol(s)
}

func number(v float64) *sexp.Symbol {
	return sexp.NewSymbol(expr.FormatNumber(v))
}
