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
// Package repn converts arbitrary expressions into a canonical linear
// representation.  Every expression is classified as either constant, linear
// (i.e. affine in a set of decision variables) or general (i.e. nonlinear).
// The resulting representation consists of a constant, a mapping from
// variables to their coefficients and an (optional) nonlinear residual.
package repn

import (
	"fmt"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// Kind classifies an expression as constant, linear or general.
type Kind uint8

const (
	// Constant indicates an expression which does not depend upon any
	// (unfixed) decision variable.
	Constant Kind = iota
	// Linear indicates an expression which is affine in one or more decision
	// variables.
	Linear
	// General indicates an expression which is nonlinear.
	General
)

func (p Kind) String() string {
	switch p {
	case Constant:
		return "constant"
	case Linear:
		return "linear"
	case General:
		return "general"
	}
	//
	return fmt.Sprintf("kind(%d)", uint8(p))
}

// Result pairs a classification with its payload.  Constant results carry only
// a value, whilst linear and general results carry a representation.
type Result struct {
	Kind Kind
	// Value of a constant result.
	Value float64
	// Representation of a linear or general result.
	Repn *LinearRepn
}

// ConstantResult constructs a constant result with a given value.
func ConstantResult(value float64) Result {
	return Result{Constant, value, nil}
}

// GeneralResult constructs a general result whose nonlinear residual is a
// given expression.
func GeneralResult(nonlinear expr.Expr) Result {
	r := NewLinearRepn()
	r.Nonlinear = nonlinear
	//
	return Result{General, 0, r}
}

// Duplicate returns an independent copy of this result, such that mutating the
// copy does not affect the original.
func (p Result) Duplicate() Result {
	if p.Kind == Constant {
		return p
	}
	//
	return Result{p.Kind, p.Value, p.Repn.Duplicate()}
}

func (p Result) String() string {
	if p.Kind == Constant {
		return fmt.Sprintf("(%s %s)", p.Kind, expr.FormatNumber(p.Value))
	}
	//
	return fmt.Sprintf("(%s %s)", p.Kind, p.Repn.String())
}
