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
)

// LinearMap maps variables to their coefficients, where iteration follows the
// order in which variables were first inserted.
type LinearMap struct {
	order  []expr.VarId
	coeffs map[expr.VarId]float64
}

// NewLinearMap constructs an empty map.
func NewLinearMap() *LinearMap {
	return &LinearMap{nil, make(map[expr.VarId]float64)}
}

// Len returns the number of variables in this map.
func (p *LinearMap) Len() uint {
	return uint(len(p.order))
}

// Has checks whether a given variable is in this map.
func (p *LinearMap) Has(id expr.VarId) bool {
	_, ok := p.coeffs[id]
	return ok
}

// Get returns the coefficient of a given variable, and whether or not it was
// present.
func (p *LinearMap) Get(id expr.VarId) (float64, bool) {
	c, ok := p.coeffs[id]
	return c, ok
}

// Keys returns the variables in this map in insertion order.  The returned
// slice should not be modified.
func (p *LinearMap) Keys() []expr.VarId {
	return p.order
}

// Set the coefficient of a given variable.
func (p *LinearMap) Set(id expr.VarId, coefficient float64) {
	if _, ok := p.coeffs[id]; !ok {
		p.order = append(p.order, id)
	}
	//
	p.coeffs[id] = coefficient
}

// Add a given amount onto the coefficient of a given variable, where absent
// variables have coefficient zero.
func (p *LinearMap) Add(id expr.VarId, amount float64) {
	if c, ok := p.coeffs[id]; ok {
		p.coeffs[id] = c + amount
	} else {
		p.order = append(p.order, id)
		p.coeffs[id] = amount
	}
}

// Scale every coefficient by a given factor.  Exactly zero coefficients are
// left as is, meaning they remain zero even when the factor is infinite or NaN.
func (p *LinearMap) Scale(factor float64) {
	for _, id := range p.order {
		if c := p.coeffs[id]; c != 0 {
			p.coeffs[id] = c * factor
		}
	}
}

// RemoveZeros removes every variable whose coefficient is exactly zero.  NaN
// coefficients are retained.
func (p *LinearMap) RemoveZeros() {
	var n = 0
	//
	for _, id := range p.order {
		if p.coeffs[id] == 0 {
			delete(p.coeffs, id)
		} else {
			p.order[n] = id
			n++
		}
	}
	//
	p.order = p.order[:n]
}

// Clone returns an independent copy of this map.
func (p *LinearMap) Clone() *LinearMap {
	order := make([]expr.VarId, len(p.order))
	coeffs := make(map[expr.VarId]float64, len(p.coeffs))
	//
	copy(order, p.order)
	//
	for k, v := range p.coeffs {
		coeffs[k] = v
	}
	//
	return &LinearMap{order, coeffs}
}

// Map returns the contents of this map as a Go map.
func (p *LinearMap) Map() map[expr.VarId]float64 {
	m := make(map[expr.VarId]float64, len(p.coeffs))
	for k, v := range p.coeffs {
		m[k] = v
	}
	//
	return m
}
