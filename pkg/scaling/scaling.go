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
// Package scaling rescales the variables, constraints and objectives of a
// model according to user-supplied scaling factors, and maps solutions of the
// scaled model back onto the original.
package scaling

import (
	"fmt"
	"math"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/model"
	log "github.com/sirupsen/logrus"
)

const (
	// FactorSuffix is the name of the suffix holding scaling factors.
	FactorSuffix = "scaling_factor"
	// DualSuffix is the name of the suffix holding constraint duals.
	DualSuffix = "dual"
	// ReducedCostSuffix is the name of the suffix holding variable reduced
	// costs.
	ReducedCostSuffix = "rc"
	// Prefix is prepended to the names of scaled components, when renaming.
	Prefix = "scaled_"
)

// Scaled is a model to which scaling has been applied, along with the
// information needed to map its solutions back to the original model.
type Scaled struct {
	Model *model.Model
	// Factors maps each scaled variable, constraint and objective to its
	// scaling factor.
	Factors map[model.Component]float64
	// Names maps each scaled variable, constraint and objective to the full
	// name of its original.
	Names map[model.Component]string
}

// CreateUsing constructs a scaled copy of a given model, leaving the original
// untouched.
func CreateUsing(m *model.Model, rename bool) (*Scaled, error) {
	return Apply(m.Clone(), rename)
}

// Apply scaling to a given model in place.  A variable v with factor sf is
// replaced by v/sf throughout, such that its bounds and value are multiplied
// by sf.  A constraint or objective with factor sf has its expressions
// multiplied by sf.  Negative factors swap the bounds of variables and
// constraints.  Components without a scaling factor have factor 1.  When
// rename holds, every variable, constraint and objective is given the
// "scaled_" prefix.
func Apply(m *model.Model, rename bool) (*Scaled, error) {
	var (
		comps   = components(m)
		factors = make(map[model.Component]float64, len(comps))
		names   map[model.Component]string
		err     error
	)
	//
	for _, c := range comps {
		if factors[c], err = factorOf(c); err != nil {
			return nil, err
		}
	}
	//
	if rename {
		if names, err = model.RenameComponents(comps, Prefix); err != nil {
			return nil, err
		}
	} else {
		names = make(map[model.Component]string, len(comps))
		//
		for _, c := range comps {
			names[c] = model.FullName(c)
		}
	}
	//
	subst, err := scaleVars(m, factors)
	if err != nil {
		return nil, err
	}
	//
	dual, _ := m.Root().Component(DualSuffix).(*model.Suffix)
	//
	for _, c := range m.Constraints() {
		if err := scaleConstraint(c, factors[c], subst, dual); err != nil {
			return nil, err
		}
	}
	//
	for _, o := range m.Objectives() {
		sf := factors[o]
		o.SetExpr(scale(sf, expr.Replace(o.Expr(), subst, true)))
		log.Debugf("scaled objective %s by %s", model.FullName(o), expr.FormatNumber(sf))
	}
	//
	return &Scaled{m, factors, names}, nil
}

// Determine the scaling factor of a given component.
func factorOf(c model.Component) (float64, error) {
	value, ok := model.FindSuffix(c, FactorSuffix, nil)
	if !ok {
		return 1, nil
	}
	//
	sf, err := value.Float()
	if err != nil {
		return math.NaN(), fmt.Errorf("suffix '%s' has a value %s for component %s that cannot be converted to a float",
			FactorSuffix, value.String(), model.FullName(c))
	}
	//
	return sf, nil
}

// Scale the bounds and values of all variables, returning the substitution
// which replaces each variable v by v/sf.
func scaleVars(m *model.Model, factors map[model.Component]float64) (expr.Substitution, error) {
	scaled := make(map[expr.Expr]expr.Expr)
	//
	for _, c := range m.Vars() {
		sf, v := factors[c], c.Expr()
		//
		if sf == 0 {
			return nil, fmt.Errorf("variable %s has scaling factor 0", model.FullName(c))
		}
		//
		scaled[v] = expr.Div(v, expr.Const(sf))
		//
		// Infinite bounds remain infinite, though flip sign for a negative
		// factor and are swapped back below.
		lb, ub := v.Bounds()
		lb, ub = lb*sf, ub*sf
		//
		if sf < 0 {
			lb, ub = ub, lb
		}
		//
		v.SetBounds(lb, ub)
		//
		if value, ok := v.Value(); ok && v.IsFixed() {
			v.Fix(value * sf)
		} else if ok {
			v.SetValue(value * sf)
		}
		//
		log.Debugf("scaled variable %s by %s", model.FullName(c), expr.FormatNumber(sf))
	}
	//
	return func(e expr.Expr) (expr.Expr, bool) {
		r, ok := scaled[e]
		return r, ok
	}, nil
}

func scaleConstraint(c *model.Constraint, sf float64, subst expr.Substitution, dual *model.Suffix) error {
	var (
		body         = scale(sf, expr.Replace(c.Body(), subst, true))
		lower, upper = c.Lower(), c.Upper()
	)
	//
	if lower != nil {
		lower = expr.Mul(lower, expr.Const(sf))
	}
	//
	if upper != nil {
		upper = expr.Mul(upper, expr.Const(sf))
	}
	//
	if sf < 0 {
		lower, upper = upper, lower
	}
	//
	if dual != nil {
		if value, ok := dual.Get(c); ok {
			d, err := value.Float()
			if err != nil {
				return fmt.Errorf("invalid dual %s for constraint %s", value.String(), model.FullName(c))
			}
			//
			dual.Set(c, model.Number(d/sf))
		}
	}
	//
	if c.IsEquality() {
		c.SetEquality(body, lower)
	} else {
		c.SetInequality(lower, body, upper)
	}
	//
	log.Debugf("scaled constraint %s by %s", model.FullName(c), expr.FormatNumber(sf))
	//
	return nil
}

// Multiply an expression by a scaling factor, where factors of zero and one
// are simplified.
func scale(sf float64, e expr.Expr) expr.Expr {
	switch sf {
	case 0:
		return expr.Const(0)
	case 1:
		return e
	default:
		return expr.Mul(expr.Const(sf), e)
	}
}

// Collect the variables, constraints and objectives of a model, in
// declaration order.
func components(m *model.Model) []model.Component {
	var comps []model.Component
	//
	for _, b := range m.Root().Blocks() {
		for _, c := range b.Components() {
			switch c.(type) {
			case *model.Var, *model.Constraint, *model.Objective:
				comps = append(comps, c)
			}
		}
	}
	//
	return comps
}
