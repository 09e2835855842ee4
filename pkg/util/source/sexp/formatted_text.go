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

import "strings"

// IndentWidth is the number of spaces written per level of indentation.
const IndentWidth = 2

// FormattedText is a block of lines under construction, where text is always
// appended to the last line.  Each new line starts with the indentation in
// effect at the point it was started.
type FormattedText struct {
	indent int
	lines  []string
}

func (p *FormattedText) String() string {
	if len(p.lines) == 0 {
		return ""
	}
	//
	return strings.Join(p.lines, "\n") + "\n"
}

// Indent increases or decreases the current indent level.
func (p *FormattedText) Indent(delta int) {
	p.indent += delta
}

// NewLine starts a new (indented) line.
func (p *FormattedText) NewLine() {
	p.lines = append(p.lines, strings.Repeat(" ", p.indent*IndentWidth))
}

// LineWidth returns the width of the last line, or zero if there are no lines.
func (p *FormattedText) LineWidth() uint {
	if n := len(p.lines); n > 0 {
		return uint(len(p.lines[n-1]))
	}
	//
	return 0
}

// MaxWidth returns the width of the widest line.
func (p *FormattedText) MaxWidth() uint {
	var width uint
	//
	for _, line := range p.lines {
		width = max(width, uint(len(line)))
	}
	//
	return width
}

// WriteString appends a string onto the last line, starting the first line if
// necessary.
func (p *FormattedText) WriteString(str string) {
	if len(p.lines) == 0 {
		p.NewLine()
	}
	//
	p.lines[len(p.lines)-1] += str
}
