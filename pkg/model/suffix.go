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
	"strconv"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// Value is a value held in a suffix.  Suffix values are typically numeric, but
// arbitrary text is permitted as well.
type Value struct {
	text    string
	number  float64
	numeric bool
}

// Number constructs a numeric suffix value.
func Number(value float64) Value {
	return Value{"", value, true}
}

// Text constructs a textual suffix value.  Text which denotes a number is
// still convertible to a float.
func Text(text string) Value {
	return Value{text, 0, false}
}

// Float converts this value into a float, failing if it is not numeric.
func (p Value) Float() (float64, error) {
	if p.numeric {
		return p.number, nil
	}
	//
	return strconv.ParseFloat(p.text, 64)
}

func (p Value) String() string {
	if p.numeric {
		return expr.FormatNumber(p.number)
	}
	//
	return p.text
}

// Suffix is a component which annotates other components with values.  A
// suffix can additionally hold a default value, which applies to every
// component in the suffix's block (and its descendants) that has no more
// specific value.
type Suffix struct {
	parented
	name   string
	keys   []Component
	values map[Component]Value
	// Default value (if any)
	def *Value
}

// Name implementation for Component interface.
func (p *Suffix) Name() string { return p.name }

func (p *Suffix) setName(name string) { p.name = name }

// Has checks whether this suffix holds a value for a given component.
func (p *Suffix) Has(c Component) bool {
	_, ok := p.values[c]
	return ok
}

// Get returns the value held for a given component, and whether there was one.
func (p *Suffix) Get(c Component) (Value, bool) {
	v, ok := p.values[c]
	return v, ok
}

// Set the value held for a given component.
func (p *Suffix) Set(c Component, value Value) {
	if _, ok := p.values[c]; !ok {
		p.keys = append(p.keys, c)
	}
	//
	p.values[c] = value
}

// Keys returns the components for which this suffix holds values, in the order
// they were first assigned.
func (p *Suffix) Keys() []Component {
	return p.keys
}

// Default returns the default value of this suffix, and whether there is one.
func (p *Suffix) Default() (Value, bool) {
	if p.def == nil {
		return Value{}, false
	}
	//
	return *p.def, true
}

// SetDefault assigns the default value of this suffix.
func (p *Suffix) SetDefault(value Value) {
	p.def = &value
}

// FindSuffix finds the value of a named suffix for a given component, by
// searching the block hierarchy between the component and a given root block
// (where nil indicates the model root).  Suffixes holding a value specifically
// for the component are considered first, working from the root down to the
// component.  Then, suffixes holding a default value are considered, working
// from the component up to the root.  Components with the given name which are
// not suffixes are ignored.
func FindSuffix(c Component, name string, root *Block) (Value, bool) {
	var (
		suffixes []*Suffix
		stop     *Block
	)
	//
	if root != nil {
		stop = root.Parent()
		//
		if !root.IsAncestorOf(c) {
			// Search up to the model root instead
			stop = nil
		}
	}
	// Collect suffixes, from leaf to root
	for b := c.Parent(); b != stop; b = b.Parent() {
		if s, ok := b.Component(name).(*Suffix); ok {
			suffixes = append(suffixes, s)
		}
	}
	// Specific values, root to leaf
	for i := len(suffixes) - 1; i >= 0; i-- {
		if v, ok := suffixes[i].Get(c); ok {
			return v, true
		}
	}
	// Default values, leaf to root
	for _, s := range suffixes {
		if v, ok := s.Default(); ok {
			return v, true
		}
	}
	//
	return Value{}, false
}
