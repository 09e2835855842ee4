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

// SubexpressionCache records the classification of named expressions, such
// that shared subexpressions are walked only once.  Entries are indexed by
// identity, and are never evicted or overwritten.
type SubexpressionCache struct {
	entries []cacheEntry
	size    uint
}

type cacheEntry struct {
	present bool
	result  Result
}

// NewSubexpressionCache constructs an empty cache.
func NewSubexpressionCache() *SubexpressionCache {
	return &SubexpressionCache{nil, 0}
}

// Len returns the number of entries in this cache.
func (p *SubexpressionCache) Len() uint {
	return p.size
}

// Has checks whether a given named expression has been cached.
func (p *SubexpressionCache) Has(id expr.NamedId) bool {
	return uint(id) < uint(len(p.entries)) && p.entries[id].present
}

// Get returns an independent copy of the cached result for a given named
// expression, and whether or not one existed.
func (p *SubexpressionCache) Get(id expr.NamedId) (Result, bool) {
	if !p.Has(id) {
		return Result{}, false
	}
	//
	return p.entries[id].result.Duplicate(), true
}

// Put records the result for a given named expression, unless one is already
// recorded (in which case this does nothing).  Ownership of the result passes
// to the cache, and it must not be subsequently mutated by the caller.
func (p *SubexpressionCache) Put(id expr.NamedId, result Result) bool {
	if p.Has(id) {
		return false
	}
	//
	for uint(id) >= uint(len(p.entries)) {
		p.entries = append(p.entries, cacheEntry{})
	}
	//
	p.entries[id] = cacheEntry{true, result}
	p.size++
	//
	return true
}
