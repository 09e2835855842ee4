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
package sexp

import "math"

// FormattingRule directs how a list is broken across lines.  Given a list, a
// rule either returns nil (meaning it does not apply) or the chunks making up
// the list along with the indentation for the list as a whole.
type FormattingRule interface {
	Split(*List) ([]FormattingChunk, uint)
}

// LFormatter breaks every argument of a matching list onto its own line:
//
//	(head
//	  arg1
//	  ...
//	  argn)
type LFormatter struct {
	// Head symbol to match
	Head string
	// Priority at which arguments are broken.
	Priority uint
}

// Split implementation for the FormattingRule interface.
func (p *LFormatter) Split(list *List) ([]FormattingChunk, uint) {
	return split(list, p.Head, 1, p.Priority, 1)
}

// SFormatter keeps the first argument of a matching list on the same line as
// its head, thus:
//
//	(head arg1
//	  arg2
//	  ...
//	  argn)
//
// This suits declarations, where the first argument is a name.
type SFormatter struct {
	// Head symbol to match
	Head string
	// Priority at which arguments are broken.
	Priority uint
}

// Split implementation for the FormattingRule interface.
func (p *SFormatter) Split(list *List) ([]FormattingChunk, uint) {
	return split(list, p.Head, 2, p.Priority, 1)
}

// IFormatter breaks every element of a matching list including its head, but
// never starts the list itself on a new line.
type IFormatter struct {
	// Head symbol to match
	Head string
	// Priority at which elements are broken.
	Priority uint
}

// Split implementation for the FormattingRule interface.
func (p *IFormatter) Split(list *List) ([]FormattingChunk, uint) {
	return split(list, p.Head, 0, p.Priority, math.MaxUint)
}

// Split a list whose head matches, such that the first n elements are never
// broken and the remainder are broken at a given priority.
func split(list *List, head string, n int, priority uint, indent uint) ([]FormattingChunk, uint) {
	if list.Head() != head {
		return nil, 0
	}
	//
	chunks := make([]FormattingChunk, list.Len())
	//
	for i, e := range list.Elements {
		chunks[i].Contents = e
		//
		if i < n {
			chunks[i].Priority = math.MaxUint
		} else {
			chunks[i].Priority = priority
			chunks[i].Indent = 1
		}
	}
	//
	return chunks, indent
}
