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
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version can be set at link time, for example with
// -ldflags "-X github.com/consensys/go-linrepn/pkg/cmd.Version=v0.1.0".
var Version string

var rootCmd = &cobra.Command{
	Use:   "linrepn",
	Short: "canonical linear representations of optimisation models.",
	Long: `Classify the constraints and objectives of an optimisation model as
	constant, linear or general, rescale a model using its scaling factors, or
	extract the coefficient matrix of a linear model.`,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Printf("linrepn %s\n", version())
			return
		}
		//
		fmt.Println(cmd.UsageString())
	},
}

// Determine the version of this executable.  A version set at link time takes
// precedence over the module version recorded by the go tool.
func version() string {
	if Version != "" {
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	//
	return "(unknown version)"
}

// Execute runs the subcommand selected by the command-line arguments.  This is
// called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}
