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
	"os"

	"github.com/consensys/go-linrepn/pkg/expr"
	"github.com/consensys/go-linrepn/pkg/matrix"
	"github.com/consensys/go-linrepn/pkg/program"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var matrixCmd = &cobra.Command{
	Use:   "matrix [flags] model_file",
	Short: "print the coefficient matrix of a linear model.",
	Long: `Print the constraint matrix, row bounds, objective and variable
	bounds of a linear model.  Columns are ordered by first occurrence.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		m := readModelFile(args[0])
		//
		p, err := program.Compile(context.Background(), m, program.Config{LinearOnly: true})
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		mx, err := matrix.Build(p)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		printMatrix(mx)
	},
}

func printMatrix(mx *matrix.Matrix) {
	rows, cols := mx.Dims()
	//
	fmt.Printf("columns: %v\n", mx.ColNames)
	//
	if rows > 0 && cols > 0 {
		fmt.Printf("A = %v\n", mat.Formatted(mx.A, mat.Prefix("    "), mat.Squeeze()))
	}
	//
	for i, name := range mx.RowNames {
		fmt.Printf("%s: %s <= row %d <= %s\n", name, expr.FormatNumber(mx.RowLower[i]), i,
			expr.FormatNumber(mx.RowUpper[i]))
	}
	//
	if cols > 0 {
		fmt.Printf("%s c = %v + %s\n", mx.Sense, mat.Formatted(mx.Cost.T(), mat.Squeeze()),
			expr.FormatNumber(mx.CostConstant))
	} else {
		fmt.Printf("%s %s\n", mx.Sense, expr.FormatNumber(mx.CostConstant))
	}
	//
	for j, name := range mx.ColNames {
		fmt.Printf("%s <= %s <= %s\n", expr.FormatNumber(mx.ColLower[j]), name, expr.FormatNumber(mx.ColUpper[j]))
	}
}

func init() {
	rootCmd.AddCommand(matrixCmd)
}
