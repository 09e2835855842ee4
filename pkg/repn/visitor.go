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
	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/util/collection/stack"
)

// Visitor converts expressions into their canonical linear representations.  A
// single visitor is intended to be reused across every expression of a model,
// such that variables are discovered in a consistent order and shared
// subexpressions are walked only once.  A visitor is not safe for concurrent
// use, though independent visitors can be used in parallel.
type Visitor struct {
	vars     *VarMap
	cache    *SubexpressionCache
	dispatch *dispatcher
	// Frames of the walk in progress, retained for reuse.
	frames *stack.Stack[*frame]
}

// NewVisitor constructs a visitor with an empty variable map and cache.
func NewVisitor() *Visitor {
	return newVisitor(NewVarMap(), NewSubexpressionCache(), newDispatcher())
}

func newVisitor(vars *VarMap, cache *SubexpressionCache, dispatch *dispatcher) *Visitor {
	return &Visitor{vars, cache, dispatch, stack.NewStack[*frame]()}
}

// Construct a visitor which shares the variable map, cache and dispatcher of
// this visitor.  This is used for walks which begin whilst another is in
// progress.
func (p *Visitor) nested() *Visitor {
	return newVisitor(p.vars, p.cache, p.dispatch)
}

// VarMap returns the variables discovered by this visitor so far.
func (p *Visitor) VarMap() *VarMap {
	return p.vars
}

// Cache returns the cache of named expressions classified by this visitor so
// far.
func (p *Visitor) Cache() *SubexpressionCache {
	return p.cache
}

// Classify an expression, returning its classification along with its
// (finalised) representation.
func (p *Visitor) Classify(e expr.Expr) (Result, error) {
	repn, err := p.Walk(e)
	if err != nil {
		return Result{}, err
	}
	//
	return repn.Result(), nil
}

// Walk an expression to produce its (finalised) representation.  Any pending
// multiplier is distributed, and variables whose coefficient is exactly zero
// are removed.
func (p *Visitor) Walk(e expr.Expr) (*LinearRepn, error) {
	descend, result, err := p.beforeChild(e)
	//
	if err == nil && descend {
		result, err = p.walk(e)
	}
	//
	if err != nil {
		return nil, err
	}
	//
	return finalise(result), nil
}

// ToExpression reconstructs an expression from a given result, using the
// variables discovered by this visitor.
func (p *Visitor) ToExpression(result Result) expr.Expr {
	return ToExpression(result, p.vars)
}

// frame records the state of a node being walked.  Sums fold their operands
// directly into an accumulator, whilst all other operators collect their
// operands for the exit rule.
type frame struct {
	node expr.Expr
	args []expr.Expr
	next int
	// Accumulator for sums, otherwise nil.
	sum *LinearRepn
	// Results for operands of all other operators.
	results []Result
}

func (p *frame) accept(result Result) {
	if p.sum != nil {
		p.sum.Append(result)
	} else {
		p.results = append(p.results, result)
	}
}

func (p *Visitor) enter(node expr.Expr) *frame {
	args := node.Args()
	//
	switch node.(type) {
	case *expr.Sum, *expr.Linear:
		return &frame{node, args, 0, NewLinearRepn(), nil}
	default:
		return &frame{node, args, 0, nil, make([]Result, 0, len(args))}
	}
}

// Walk a node which requires descent, in post-order, using an explicit stack.
func (p *Visitor) walk(root expr.Expr) (Result, error) {
	var frames = p.frames
	// Discard any frames left by a failed walk.
	frames.Clear()
	frames.Push(p.enter(root))
	//
	for {
		top := frames.Peek(0)
		//
		if top.next < len(top.args) {
			child := top.args[top.next]
			top.next++
			//
			descend, result, err := p.beforeChild(child)
			//
			if err != nil {
				return Result{}, err
			} else if descend {
				frames.Push(p.enter(child))
			} else {
				top.accept(result)
			}
			//
			continue
		}
		// All operands processed
		frames.Pop()
		//
		result, err := p.exitNode(top)
		if err != nil {
			return Result{}, err
		} else if frames.IsEmpty() {
			return result, nil
		}
		//
		frames.Peek(0).accept(result)
	}
}

func (p *Visitor) beforeChild(child expr.Expr) (bool, Result, error) {
	return p.dispatch.resolve(child)(p, child)
}

func (p *Visitor) exitNode(f *frame) (Result, error) {
	if f.sum != nil {
		return f.sum.Result(), nil
	}
	//
	key, ok := keyOf(f.node.Op(), f.results)
	if !ok {
		return Result{}, &InternalError{f.node, "too many operands"}
	}
	//
	rule, ok := exitRules[key]
	if !ok {
		return Result{}, &InternalError{f.node, "no rule for " + f.node.Op().String()}
	}
	//
	return rule(p, f.node, f.results)
}

func finalise(result Result) *LinearRepn {
	if result.Kind == Constant {
		ans := NewLinearRepn()
		ans.Constant = result.Value
		//
		return ans
	}
	//
	result.Repn.Finalise()
	//
	return result.Repn
}
