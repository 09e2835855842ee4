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

// Substitution determines whether a given node should be replaced and, if so,
// with what.
type Substitution func(Expr) (Expr, bool)

// Replace rewrites an expression bottom-up.  The substitution is consulted for
// every node before its children are visited, and nodes which it replaces are
// not descended.  Otherwise, a node is rebuilt over its rewritten children,
// unless none of them changed (in which case the original node is retained).
// Nodes shared within the expression are rewritten exactly once, and the
// sharing is preserved in the result.
//
// Named expressions are not descended unless inlineNamed holds, in which case
// they are replaced by their (rewritten) bodies.
func Replace(e Expr, subst Substitution, inlineNamed bool) Expr {
	r := replacer{subst, inlineNamed, make(map[Expr]Expr)}
	return r.replace(e)
}

type replacer struct {
	subst       Substitution
	inlineNamed bool
	memo        map[Expr]Expr
}

func (p *replacer) replace(e Expr) Expr {
	if r, ok := p.memo[e]; ok {
		return r
	}
	//
	r := p.rewrite(e)
	p.memo[e] = r
	//
	return r
}

func (p *replacer) rewrite(e Expr) Expr {
	if r, ok := p.subst(e); ok {
		return r
	} else if named, ok := e.(Subexpression); ok {
		if p.inlineNamed {
			return p.replace(named.Body())
		}
		//
		return e
	}
	//
	var (
		args    = e.Args()
		nargs   []Expr
		changed = false
	)
	//
	for i, arg := range args {
		narg := p.replace(arg)
		//
		if narg != arg && !changed {
			// Copy on first change
			nargs = make([]Expr, len(args))
			copy(nargs, args[:i])
			changed = true
		}
		//
		if changed {
			nargs[i] = narg
		}
	}
	//
	if !changed {
		return e
	}
	//
	return e.WithArgs(nargs)
}
