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
	"fmt"
	"strings"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// Model is a hierarchy of blocks, along with the arena which owns its
// variables and named expressions.
type Model struct {
	arena *expr.Arena
	root  *Block
}

// NewModel constructs an empty model with a given name.
func NewModel(name string) *Model {
	m := &Model{expr.NewArena(), nil}
	m.root = newBlock(name, m)
	//
	return m
}

// Name returns the name of this model.
func (p *Model) Name() string { return p.root.Name() }

// Arena returns the arena owning the variables and named expressions of this
// model.
func (p *Model) Arena() *expr.Arena { return p.arena }

// Root returns the root block of this model.
func (p *Model) Root() *Block { return p.root }

// Find the component with a given full name (e.g. "b.x"), returning nil if no
// such component exists.
func (p *Model) Find(path string) Component {
	var c Component = p.root
	//
	for _, name := range strings.Split(path, ".") {
		b, ok := c.(*Block)
		if !ok {
			return nil
		}
		//
		if c = b.Component(name); c == nil {
			return nil
		}
	}
	//
	return c
}

// Vars returns every variable declared in this model, block by block.
func (p *Model) Vars() []*Var {
	return collect[*Var](p)
}

// Constraints returns every constraint declared in this model, block by block.
func (p *Model) Constraints() []*Constraint {
	return collect[*Constraint](p)
}

// Objectives returns every objective declared in this model, block by block.
func (p *Model) Objectives() []*Objective {
	return collect[*Objective](p)
}

// ActiveObjectives returns every active objective declared in this model.
func (p *Model) ActiveObjectives() []*Objective {
	var active []*Objective
	//
	for _, o := range p.Objectives() {
		if o.IsActive() {
			active = append(active, o)
		}
	}
	//
	return active
}

func collect[T Component](p *Model) []T {
	var items []T
	//
	for _, b := range p.root.Blocks() {
		for _, c := range b.Components() {
			if t, ok := c.(T); ok {
				items = append(items, t)
			}
		}
	}
	//
	return items
}

// RenameComponents renames each of the given components by prepending a
// prefix to its local name.  This returns a map from each renamed component to
// its original full name.
func RenameComponents(components []Component, prefix string) (map[Component]string, error) {
	names := make(map[Component]string, len(components))
	// Record names before renaming, as renaming a block changes the full names
	// of its descendants.
	for _, c := range components {
		names[c] = FullName(c)
	}
	//
	for _, c := range components {
		if c.Parent() == nil {
			return nil, fmt.Errorf("cannot rename root block")
		} else if err := c.Parent().Rename(c, prefix+c.Name()); err != nil {
			return nil, err
		}
	}
	//
	return names, nil
}

// Clone constructs a deep copy of this model.  The copy has its own arena, and
// every expression of the copy refers only to its own variables, parameters
// and named expressions.
func (p *Model) Clone() *Model {
	c := &cloner{
		model:  &Model{expr.NewArena(), nil},
		comps:  make(map[Component]Component),
		leaves: make(map[expr.Expr]expr.Expr),
	}
	// Pass 1: construct all components
	c.model.root = c.block(p.root, nil)
	// Pass 2: translate expressions and suffixes
	for old, nc := range c.comps {
		c.complete(old, nc)
	}
	//
	return c.model
}

type cloner struct {
	model *Model
	// Maps original components to their copies
	comps map[Component]Component
	// Maps original leaves (variables, parameters and named expressions) to
	// their copies.
	leaves map[expr.Expr]expr.Expr
}

func (p *cloner) block(b *Block, parent *Block) *Block {
	nb := newBlock(b.name, p.model)
	nb.parent = parent
	p.comps[b] = nb
	//
	for _, c := range b.components {
		var nc Component
		//
		switch c := c.(type) {
		case *Var:
			v := p.model.arena.NewVar(c.Name())
			lb, ub := c.v.Bounds()
			v.SetBounds(lb, ub)
			//
			if value, ok := c.v.Value(); ok && c.v.IsFixed() {
				v.Fix(value)
			} else if ok {
				v.SetValue(value)
			}
			//
			p.leaves[c.v] = v
			nc = &Var{parented{}, v}
		case *Param:
			np := expr.NewUninitialisedParam(c.Name())
			if value, ok := c.p.Value(); ok {
				np.SetValue(value)
			}
			//
			p.leaves[c.p] = np
			nc = &Param{parented{}, np}
		case *Expression:
			e := p.model.arena.NewNamed(c.Name(), nil)
			p.leaves[c.e] = e
			nc = &Expression{parented{}, e}
		case *Constraint:
			nc = &Constraint{parented{}, c.name, nil, nil, nil, c.equality, c.active}
		case *Objective:
			nc = &Objective{parented{}, c.name, c.sense, nil, c.active}
		case *Suffix:
			s := &Suffix{parented{}, c.name, nil, make(map[Component]Value), nil}
			if def, ok := c.Default(); ok {
				s.SetDefault(def)
			}
			//
			nc = s
		case *Block:
			nc = p.block(c, nb)
		default:
			panic(fmt.Sprintf("unknown component %s", c.Name()))
		}
		//
		p.comps[c] = nc
		nc.setParent(nb)
		nb.components = append(nb.components, nc)
		nb.index[nc.Name()] = nc
	}
	//
	return nb
}

func (p *cloner) complete(old Component, nc Component) {
	switch c := old.(type) {
	case *Expression:
		nc.(*Expression).e.SetBody(p.translate(c.e.Body()))
	case *Constraint:
		n := nc.(*Constraint)
		n.lower, n.body, n.upper = p.translate(c.lower), p.translate(c.body), p.translate(c.upper)
	case *Objective:
		nc.(*Objective).e = p.translate(c.e)
	case *Suffix:
		n := nc.(*Suffix)
		//
		for _, k := range c.keys {
			// Keys outside of this model are retained as is
			if nk, ok := p.comps[k]; ok {
				n.Set(nk, c.values[k])
			} else {
				n.Set(k, c.values[k])
			}
		}
	}
}

func (p *cloner) translate(e expr.Expr) expr.Expr {
	if e == nil {
		return nil
	}
	//
	return expr.Replace(e, func(e expr.Expr) (expr.Expr, bool) {
		r, ok := p.leaves[e]
		return r, ok
	}, false)
}
