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
	"fmt"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// VarMap records the variables encountered during one or more walks, along
// with the order in which they were discovered.  Since variable identities are
// dense indices, the map is backed by a growable array indexed by identity.
// Discovery indices are assigned in strictly increasing order, and are never
// reassigned.
type VarMap struct {
	vars []expr.Variable
	// Discovery index (plus one) for each identity, where zero indicates an
	// undiscovered variable.
	positions []uint
}

// NewVarMap constructs an empty variable map.
func NewVarMap() *VarMap {
	return &VarMap{nil, nil}
}

// Len returns the number of variables discovered so far.
func (p *VarMap) Len() uint {
	return uint(len(p.vars))
}

// Index returns the discovery index of a given variable, and whether or not it
// has been discovered.
func (p *VarMap) Index(id expr.VarId) (uint, bool) {
	if uint(id) < uint(len(p.positions)) && p.positions[id] != 0 {
		return p.positions[id] - 1, true
	}
	//
	return 0, false
}

// Var returns the discovered variable with a given identity.
func (p *VarMap) Var(id expr.VarId) expr.Variable {
	if index, ok := p.Index(id); ok {
		return p.vars[index]
	}
	//
	panic(fmt.Sprintf("undiscovered variable #%d", id))
}

// Vars returns the discovered variables in order of discovery.  The returned
// slice should not be modified.
func (p *VarMap) Vars() []expr.Variable {
	return p.vars
}

// Register a variable, assigning it the next discovery index if it has not
// already been discovered.  This returns the variable's discovery index.
func (p *VarMap) Register(v expr.Variable) uint {
	id := uint(v.Id())
	//
	if index, ok := p.Index(v.Id()); ok {
		return index
	}
	//
	for id >= uint(len(p.positions)) {
		p.positions = append(p.positions, 0)
	}
	//
	p.vars = append(p.vars, v)
	p.positions[id] = uint(len(p.vars))
	//
	return uint(len(p.vars) - 1)
}
