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
package cmd

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/model"
	"github.com/consensys/go-linrepn/pkg/program"
	"github.com/consensys/go-linrepn/pkg/repn"
	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [flags] model_file",
	Short: "print the canonical representation of each constraint and objective.",
	Long: `Classify every active constraint and objective of a model as
	constant, linear or general, and print its canonical representation.
	Constraints are printed with their bounds, and variables are listed in
	the order they were first encountered.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		cfg := program.Config{LinearOnly: GetFlag(cmd, "linear-only")}
		m := readModelFile(args[0])
		//
		p, err := program.Compile(context.Background(), m, cfg)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		entries := summarise(p)
		//
		if GetFlag(cmd, "yaml") {
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			//
			if err := enc.Encode(entries); err != nil {
				fmt.Println(err)
				os.Exit(2)
			}
			//
			return
		}
		//
		printEntries(entries, textWidth(cmd))
	},
}

// Entry summarises the canonical form of a single constraint or objective.
type Entry struct {
	Name string `yaml:"name"`
	// Either "constraint" or "objective"
	Type string `yaml:"type"`
	Kind string `yaml:"kind"`
	// Bounds of a constraint
	Lower *float64 `yaml:"lower,omitempty"`
	Upper *float64 `yaml:"upper,omitempty"`
	// Sense of an objective
	Sense     string  `yaml:"sense,omitempty"`
	Constant  float64 `yaml:"constant"`
	Linear    []Term  `yaml:"linear,omitempty"`
	Nonlinear string  `yaml:"nonlinear,omitempty"`
	residual  expr.Expr
}

// Term is a single variable and its coefficient.
type Term struct {
	Var         string  `yaml:"var"`
	Coefficient float64 `yaml:"coef"`
}

func summarise(p *program.Program) []Entry {
	var entries []Entry
	//
	for _, row := range p.Rows() {
		e := entryOf(p, model.FullName(row.Constraint), "constraint", row.Result)
		//
		if !math.IsInf(row.Lower, -1) {
			e.Lower = &row.Lower
		}
		//
		if !math.IsInf(row.Upper, 1) {
			e.Upper = &row.Upper
		}
		//
		entries = append(entries, e)
	}
	//
	for _, goal := range p.Goals() {
		e := entryOf(p, model.FullName(goal.Objective), "objective", goal.Result)
		e.Sense = goal.Objective.Sense().String()
		entries = append(entries, e)
	}
	//
	return entries
}

func entryOf(p *program.Program, name string, typ string, r repn.Result) Entry {
	e := Entry{Name: name, Type: typ, Kind: r.Kind.String()}
	//
	if r.Kind == repn.Constant {
		e.Constant = r.Value
		return e
	}
	//
	e.Constant = r.Repn.Constant
	//
	for _, id := range r.Repn.Linear.Keys() {
		c, _ := r.Repn.Linear.Get(id)
		e.Linear = append(e.Linear, Term{p.VarMap().Var(id).Name(), c})
	}
	//
	if r.Repn.Nonlinear != nil {
		e.Nonlinear = r.Repn.Nonlinear.String()
		e.residual = r.Repn.Nonlinear
	}
	//
	return e
}

func printEntries(entries []Entry, width uint) {
	formatter := sexp.NewFormatter(width)
	formatter.Add(&sexp.SFormatter{Head: "constraint", Priority: 0})
	formatter.Add(&sexp.SFormatter{Head: "objective", Priority: 0})
	formatter.Add(&sexp.LFormatter{Head: "+", Priority: 1})
	//
	for _, e := range entries {
		fmt.Print(formatter.Format(e.Lisp()))
	}
}

// Lisp renders this entry as an S-Expression, such as:
//
//	(constraint c1 linear :upper 10 :constant 3 :linear ((y 2) (x 1)))
func (p *Entry) Lisp() sexp.SExp {
	l := sexp.NewList(sexp.NewSymbol(p.Type), sexp.NewSymbol(p.Name), sexp.NewSymbol(p.Kind))
	//
	attr := func(name string, value sexp.SExp) {
		l.Append(sexp.NewSymbol(name))
		l.Append(value)
	}
	number := func(v float64) sexp.SExp { return sexp.NewSymbol(expr.FormatNumber(v)) }
	//
	if p.Sense != "" {
		attr(":sense", sexp.NewSymbol(p.Sense))
	}
	//
	if p.Lower != nil {
		attr(":lower", number(*p.Lower))
	}
	//
	if p.Upper != nil {
		attr(":upper", number(*p.Upper))
	}
	//
	attr(":constant", number(p.Constant))
	//
	if len(p.Linear) > 0 {
		terms := sexp.NewList()
		//
		for _, t := range p.Linear {
			terms.Append(sexp.NewList(sexp.NewSymbol(t.Var), number(t.Coefficient)))
		}
		//
		attr(":linear", terms)
	}
	//
	if p.residual != nil {
		attr(":nonlinear", p.residual.Lisp())
	}
	//
	return l
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyCmd.Flags().Bool("yaml", false, "Print results as YAML")
	classifyCmd.Flags().Bool("linear-only", false, "Reject nonlinear constraints or objectives")
	classifyCmd.Flags().Uint("textwidth", 0, "Set maximum textwidth to use (default is terminal width)")
}
