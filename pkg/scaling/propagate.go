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
package scaling

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/consensys/go-linrepn/pkg/model"
)

// PropagateSolution maps the solution held in this scaled model back onto the
// original model from which it was derived.  Variable values are unscaled.
// When the scaled model has an "rc" suffix, reduced costs are mapped as well.
// Likewise, when both models have a "dual" suffix, constraint duals are
// mapped.  Mapping reduced costs or duals requires the scaled model to have
// exactly one active objective.
func (p *Scaled) PropagateSolution(original *model.Model) error {
	var (
		objectiveFactor = 1.0
		scaledRc        = suffixOf(p.Model, ReducedCostSuffix)
		scaledDual      = suffixOf(p.Model, DualSuffix)
		originalDual    = suffixOf(original, DualSuffix)
		originalRc      *model.Suffix
	)
	//
	if scaledDual == nil || originalDual == nil {
		scaledDual, originalDual = nil, nil
	}
	//
	if scaledRc != nil || scaledDual != nil {
		objectives := p.Model.ActiveObjectives()
		//
		if len(objectives) != 1 {
			return fmt.Errorf("propagating a solution requires a single active objective, but %d found",
				len(objectives))
		}
		//
		objectiveFactor = p.Factors[objectives[0]]
	}
	//
	if scaledRc != nil {
		if originalRc = suffixOf(original, ReducedCostSuffix); originalRc == nil {
			var err error
			// Reduced costs are created on demand
			if originalRc, err = original.Root().NewSuffix(ReducedCostSuffix); err != nil {
				return err
			}
		}
	}
	//
	for _, v := range p.Model.Vars() {
		ov, err := p.original(original, v)
		if err != nil {
			return err
		}
		//
		sf := p.Factors[v]
		//
		value, ok := v.Expr().Value()
		if !ok {
			return fmt.Errorf("no value for variable %s", model.FullName(v))
		}
		//
		ov.(*model.Var).Expr().SetValue(value / sf)
		//
		if err := transfer(scaledRc, originalRc, v, ov, sf/objectiveFactor); err != nil {
			return err
		}
	}
	//
	if scaledDual == nil {
		return nil
	}
	//
	for _, c := range p.Model.Constraints() {
		oc, err := p.original(original, c)
		if err != nil {
			return err
		}
		//
		if err := transfer(scaledDual, originalDual, c, oc, p.Factors[c]/objectiveFactor); err != nil {
			return err
		}
	}
	//
	return nil
}

// Find the original of a scaled component.
func (p *Scaled) original(original *model.Model, c model.Component) (model.Component, error) {
	name, ok := p.Names[c]
	if !ok {
		return nil, fmt.Errorf("component %s was not scaled", model.FullName(c))
	}
	//
	oc := original.Find(name)
	//
	switch {
	case oc == nil:
		return nil, fmt.Errorf("component %s not found in original model", name)
	case reflect.TypeOf(oc) != reflect.TypeOf(c):
		return nil, fmt.Errorf("component %s has a different kind in original model", name)
	}
	//
	return oc, nil
}

// Transfer the suffix value of a scaled component onto its original, applying
// a given factor.  Components without a value are skipped.
func transfer(from *model.Suffix, to *model.Suffix, c model.Component, oc model.Component, factor float64) error {
	if from == nil {
		return nil
	}
	//
	value, ok := from.Get(c)
	if !ok {
		return nil
	}
	//
	n, err := value.Float()
	if err != nil {
		return errors.Join(fmt.Errorf("invalid %s value for %s", from.Name(), model.FullName(c)), err)
	}
	//
	to.Set(oc, model.Number(n*factor))
	//
	return nil
}

func suffixOf(m *model.Model, name string) *model.Suffix {
	s, _ := m.Root().Component(name).(*model.Suffix)
	return s
}
