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

// Block is a component which holds other components (including other blocks),
// in declaration order.
type Block struct {
	parented
	name       string
	model      *Model
	components []Component
	index      map[string]Component
}

func newBlock(name string, model *Model) *Block {
	return &Block{parented{nil}, name, model, nil, make(map[string]Component)}
}

// Name implementation for Component interface.
func (p *Block) Name() string { return p.name }

func (p *Block) setName(name string) { p.name = name }

// Model returns the model to which this block belongs.
func (p *Block) Model() *Model { return p.model }

// Component returns the component with a given (local) name, or nil if no such
// component exists.
func (p *Block) Component(name string) Component {
	return p.index[name]
}

// Components returns the components declared in this block, in declaration
// order.  The returned slice should not be modified.
func (p *Block) Components() []Component {
	return p.components
}

// IsAncestorOf checks whether a component is declared within this block, or
// one of its descendants.
func (p *Block) IsAncestorOf(c Component) bool {
	for b := c.Parent(); b != nil; b = b.Parent() {
		if b == p {
			return true
		}
	}
	//
	return false
}

// NewVar declares a new (unbounded) variable in this block.
func (p *Block) NewVar(name string) (*Var, error) {
	if err := p.checkUnused(name); err != nil {
		return nil, err
	}
	//
	v := &Var{parented{}, p.model.arena.NewVar(name)}
	return v, p.add(v)
}

// NewParam declares a new parameter in this block.
func (p *Block) NewParam(name string, value float64) (*Param, error) {
	c := &Param{parented{}, expr.NewParam(name, value)}
	return c, p.add(c)
}

// NewUninitialisedParam declares a new parameter in this block which has no
// value.
func (p *Block) NewUninitialisedParam(name string) (*Param, error) {
	c := &Param{parented{}, expr.NewUninitialisedParam(name)}
	return c, p.add(c)
}

// NewExpression declares a new named expression in this block.
func (p *Block) NewExpression(name string, body expr.Expr) (*Expression, error) {
	if err := p.checkUnused(name); err != nil {
		return nil, err
	}
	//
	c := &Expression{parented{}, p.model.arena.NewNamed(name, body)}
	return c, p.add(c)
}

// NewInequality declares a new (possibly ranged) inequality constraint in
// this block.  Either bound can be nil, indicating its absence.
func (p *Block) NewInequality(name string, lower expr.Expr, body expr.Expr, upper expr.Expr) (*Constraint, error) {
	c := &Constraint{parented{}, name, lower, body, upper, false, true}
	return c, p.add(c)
}

// NewEquality declares a new equality constraint in this block.
func (p *Block) NewEquality(name string, body expr.Expr, rhs expr.Expr) (*Constraint, error) {
	c := &Constraint{parented{}, name, rhs, body, rhs, true, true}
	return c, p.add(c)
}

// NewObjective declares a new (active) objective in this block.
func (p *Block) NewObjective(name string, sense Sense, e expr.Expr) (*Objective, error) {
	c := &Objective{parented{}, name, sense, e, true}
	return c, p.add(c)
}

// NewSuffix declares a new (empty) suffix in this block.
func (p *Block) NewSuffix(name string) (*Suffix, error) {
	c := &Suffix{parented{}, name, nil, make(map[Component]Value), nil}
	return c, p.add(c)
}

// NewBlock declares a new (empty) sub-block in this block.
func (p *Block) NewBlock(name string) (*Block, error) {
	c := newBlock(name, p.model)
	return c, p.add(c)
}

// Rename a component of this block.
func (p *Block) Rename(c Component, name string) error {
	if c.Parent() != p {
		return fmt.Errorf("component \"%s\" not declared in block \"%s\"", c.Name(), FullName(p))
	} else if p.index[name] != c {
		if err := p.checkUnused(name); err != nil {
			return err
		}
	}
	//
	delete(p.index, c.Name())
	c.setName(name)
	p.index[name] = c
	//
	return nil
}

// Blocks returns this block and all of its descendants, in prefix order.
func (p *Block) Blocks() []*Block {
	blocks := []*Block{p}
	//
	for _, c := range p.components {
		if b, ok := c.(*Block); ok {
			blocks = append(blocks, b.Blocks()...)
		}
	}
	//
	return blocks
}

func (p *Block) add(c Component) error {
	if err := p.checkUnused(c.Name()); err != nil {
		return err
	}
	//
	c.setParent(p)
	p.components = append(p.components, c)
	p.index[c.Name()] = c
	//
	return nil
}

func (p *Block) checkUnused(name string) error {
	if _, ok := p.index[name]; ok {
		return fmt.Errorf("duplicate component \"%s\" in block \"%s\"", name, FullName(p))
	}
	//
	return nil
}

// FullName returns the name of a component qualified by the names of its
// enclosing blocks (excluding the root block).  The root block itself has the
// empty name.
func FullName(c Component) string {
	var names []string
	//
	for ; c != nil && c.Parent() != nil; c = c.Parent() {
		names = append(names, c.Name())
	}
	//
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	//
	return strings.Join(names, ".")
}
