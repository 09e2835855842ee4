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
	"math"

	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
)

// Named represents a named expression which can be shared between many parent
// expressions.  Its identity is assigned by the Arena which allocated it, and
// remains stable even when its body is replaced.
type Named struct {
	id   NamedId
	name string
	body Expr
}

// Id returns the identity of this named expression.
func (p *Named) Id() NamedId { return p.id }

// Name returns the name of this named expression.
func (p *Named) Name() string { return p.name }

// SetName renames this named expression.
func (p *Named) SetName(name string) { p.name = name }

// Body returns the underlying expression.
func (p *Named) Body() Expr { return p.body }

// SetBody replaces the underlying expression.
func (p *Named) SetBody(body Expr) { p.body = body }

// Op implementation for Expr interface.
func (p *Named) Op() Op { return OpNamed }

// Args implementation for Expr interface.
func (p *Named) Args() []Expr { return []Expr{p.body} }

// WithArgs implementation for Expr interface.  Since a named expression is
// identified by its arena, rebuilding one over a different body is not
// possible.  Instead, use SetBody.
func (p *Named) WithArgs([]Expr) Expr {
	panic("cannot rebuild a named expression")
}

// Eval implementation for Expr interface.
func (p *Named) Eval() (float64, error) {
	if p.body == nil {
		return math.NaN(), &UninitialisedError{p}
	}
	//
	return p.body.Eval()
}

// IsFixed implementation for Expr interface.
func (p *Named) IsFixed() bool { return p.body != nil && p.body.IsFixed() }

// IsPotentiallyVariable implementation for Expr interface.  Since the body can
// be replaced, a named expression is always considered potentially variable.
func (p *Named) IsPotentiallyVariable() bool { return true }

// IsExpressionType implementation for Expr interface.
func (p *Named) IsExpressionType() bool { return true }

// Lisp implementation for Expr interface.
func (p *Named) Lisp() sexp.SExp { return sexp.NewSymbol(p.name) }

func (p *Named) String() string { return p.name }
