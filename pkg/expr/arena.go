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
)

// VarId is the stable identity of a variable within its Arena.
type VarId uint

// NamedId is the stable identity of a named expression within its Arena.
type NamedId uint

// Arena owns the variables and named expressions of a model, and assigns their
// identities.  Identities are simply indices into the arena, hence they are
// dense, stable and never reused.
type Arena struct {
	vars  []*Var
	named []*Named
}

// NewArena constructs an empty arena.
func NewArena() *Arena {
	return &Arena{nil, nil}
}

// NewVar allocates a fresh (unbounded, uninitialised and unfixed) variable
// with a given name.
func (p *Arena) NewVar(name string) *Var {
	v := &Var{id: VarId(len(p.vars)), name: name, lb: math.Inf(-1), ub: math.Inf(1)}
	p.vars = append(p.vars, v)
	//
	return v
}

// NewNamed allocates a fresh named expression with a given body.  The body can
// be nil, in which case it must be set before the expression is used.
func (p *Arena) NewNamed(name string, body Expr) *Named {
	e := &Named{id: NamedId(len(p.named)), name: name, body: body}
	p.named = append(p.named, e)
	//
	return e
}

// Var returns the variable with a given identity.
func (p *Arena) Var(id VarId) *Var {
	if uint(id) >= uint(len(p.vars)) {
		panic(fmt.Sprintf("unknown variable %d", id))
	}
	//
	return p.vars[id]
}

// Named returns the named expression with a given identity.
func (p *Arena) Named(id NamedId) *Named {
	if uint(id) >= uint(len(p.named)) {
		panic(fmt.Sprintf("unknown named expression %d", id))
	}
	//
	return p.named[id]
}

// Vars returns all variables allocated in this arena, in allocation order.
func (p *Arena) Vars() []*Var {
	return p.vars
}

// NumVars returns the number of variables allocated in this arena.
func (p *Arena) NumVars() uint {
	return uint(len(p.vars))
}
