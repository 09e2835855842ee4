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
	"fmt"
	"os"

	"github.com/consensys/go-linrepn/pkg/scaling"
	"github.com/consensys/go-linrepn/pkg/util/source/sexp"
	"github.com/spf13/cobra"
)

var scaleCmd = &cobra.Command{
	Use:   "scale [flags] model_file",
	Short: "apply scaling factors to a model.",
	Long: `Scale the variables, constraints and objectives of a model according
	to the "scaling_factor" suffix, and print the resulting model.  By default,
	scaled components are renamed with the "scaled_" prefix.`,
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
		scaled, err := scaling.Apply(m, !GetFlag(cmd, "no-rename"))
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
		//
		formatter := sexp.NewFormatter(textWidth(cmd))
		formatter.Add(&sexp.SFormatter{Head: "defblock", Priority: 0})
		formatter.Add(&sexp.SFormatter{Head: "defconstraint", Priority: 1})
		formatter.Add(&sexp.SFormatter{Head: "defobjective", Priority: 1})
		formatter.Add(&sexp.LFormatter{Head: "+", Priority: 2})
		//
		for _, decl := range scaled.Model.Lisp() {
			fmt.Print(formatter.Format(decl))
		}
	},
}

func init() {
	rootCmd.AddCommand(scaleCmd)
	scaleCmd.Flags().Bool("no-rename", false, "Retain the names of scaled components")
	scaleCmd.Flags().Uint("textwidth", 0, "Set maximum textwidth to use (default is terminal width)")
}
