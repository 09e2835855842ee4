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

import (
	"math"
)

// FormattingChunk is one element of a list being formatted.  A chunk is moved
// onto its own line (indented by Indent) once the formatter's priority reaches
// the chunk's Priority.
type FormattingChunk struct {
	Priority uint
	Indent   uint
	Contents SExp
}

// Formatter pretty prints S-Expressions within a given text width, using a set
// of rules to decide where lists may be broken across lines.  Formatting is
// attempted at increasing priorities until the result fits, or the maximum
// priority is reached.
type Formatter struct {
	width uint
	rules []FormattingRule
}

// Highest priority attempted before accepting output which is too wide.
const maxPriority = 10

// NewFormatter constructs a formatter for a given text width.
func NewFormatter(width uint) *Formatter {
	return &Formatter{width, nil}
}

// Add a formatting rule.  Rules are consulted in the order they were added.
func (p *Formatter) Add(rule FormattingRule) {
	p.rules = append(p.rules, rule)
}

// Format an S-Expression, returning the (newline terminated) text.
func (p *Formatter) Format(sexp SExp) string {
	var text FormattedText
	//
	for priority := uint(0); ; priority++ {
		l := layout{priority, p.width, p.rules, FormattedText{}}
		// The outermost list never starts on a new line
		l.element(sexp, true)
		text = l.text
		//
		if text.MaxWidth() <= p.width || priority >= maxPriority {
			break
		}
	}
	//
	return text.String()
}

// layout holds the state of a single formatting attempt.
type layout struct {
	priority uint
	width    uint
	rules    []FormattingRule
	text     FormattedText
}

// Lay out an element, where newline indicates the element already begins a
// fresh line.
func (p *layout) element(sexp SExp, newline bool) {
	switch sexp := sexp.(type) {
	case *Symbol:
		p.text.WriteString(sexp.String(false))
	case *List:
		priority := p.priority
		// Lists which fit on the current line are never broken
		if p.text.LineWidth()+uint(len(sexp.String(false))) <= p.width {
			priority = 0
		}
		//
		for _, rule := range p.rules {
			if chunks, indent := rule.Split(sexp); chunks != nil {
				p.chunks(priority, newline, chunks, indent)
				return
			}
		}
		//
		p.withPriority(priority, func() { p.list(sexp) })
	default:
		panic("unknown S-Expression")
	}
}

// Lay out a list which has been split into chunks by a formatting rule.  An
// indent of math.MaxUint means the list never starts a new line of its own.
func (p *layout) chunks(priority uint, newline bool, chunks []FormattingChunk, indent uint) {
	start := indent != math.MaxUint && !newline
	//
	if start {
		p.text.Indent(int(indent))
		p.text.NewLine()
	}
	//
	p.text.WriteString("(")
	//
	for i, chunk := range chunks {
		broken := chunk.Priority <= priority
		//
		if broken {
			p.text.Indent(int(chunk.Indent))
			p.text.NewLine()
		} else if i != 0 {
			p.text.WriteString(" ")
		}
		//
		p.withPriority(priority, func() { p.element(chunk.Contents, broken) })
		//
		if broken {
			p.text.Indent(-int(chunk.Indent))
		}
	}
	//
	p.text.WriteString(")")
	//
	if start {
		p.text.Indent(-int(indent))
	}
}

// Lay out a list which no rule matched, keeping it on the current line (though
// its elements may still be broken).
func (p *layout) list(sexp *List) {
	p.text.WriteString("(")
	//
	for i, e := range sexp.Elements {
		if i != 0 {
			p.text.WriteString(" ")
		}
		//
		p.element(e, false)
	}
	//
	p.text.WriteString(")")
}

// Run a function with the priority temporarily set to a given value.
func (p *layout) withPriority(priority uint, fn func()) {
	saved := p.priority
	p.priority = priority
	//
	fn()
	//
	p.priority = saved
}
