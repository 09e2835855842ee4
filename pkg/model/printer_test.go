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
package model

import (
	"strings"
	"testing"
)

func Test_Print_01(t *testing.T) {
	checkPrint(t, `
(defvar x :lb 0 :ub 10 :value 1)
(defvar y :value 2 :fixed)
(defparam p 3)
(defparam q)
(defconstraint c (<= (+ x y) 10))
`, []string{
		"(defvar x :lb 0 :ub 10 :value 1)",
		"(defvar y :value 2 :fixed)",
		"(defparam p 3)",
		"(defparam q)",
		"(defconstraint c (<= (+ (* 1 x) (* 1 y)) 10))",
	})
}

func Test_Print_02(t *testing.T) {
	checkPrint(t, `
(defexternal h hypot)
(defvar x)
(defblock b (defvar x) (defexpr e (* 2 x)))
(defconstraint c (>= (call h x b.e) 1) :inactive)
(defobjective o maximize b.e)
(defsuffix sf (b.x 2) (* 1))
`, []string{
		"(defexternal h hypot)",
		"(defvar x)",
		"(defblock b (defvar x) (defexpr e (* 2 b.x)))",
		"(defconstraint c (>= (call h x b.e) 1) :inactive)",
		"(defobjective o maximize b.e)",
		"(defsuffix sf (b.x 2) (* 1))",
	})
}

func Test_Print_03(t *testing.T) {
	// Printing is stable under reparsing
	text := `
(defvar x :lb -1)
(defvar y)
(defparam p 0.5)
(defblock b
  (defvar z :ub 4)
  (defconstraint r (<= 0 (+ z (* p x)) 3)))
(defexpr e (- (* x y) (log y)))
(defconstraint c1 (== (+ e (abs x)) (if (< p 1) 2 3)))
(defconstraint c2 (>= (/ x (^ y 2)) p))
(defobjective o minimize (+ e b.z))
(defsuffix scaling_factor (x 0.1) (b.r 1e-06) (* 2))
`
	first := printModel(t, text)
	second := printModel(t, strings.Join(first, "\n"))
	//
	if strings.Join(first, "\n") != strings.Join(second, "\n") {
		t.Errorf("printing unstable:\n%s\n---\n%s", strings.Join(first, "\n"), strings.Join(second, "\n"))
	}
}

func printModel(t *testing.T, text string) []string {
	t.Helper()
	//
	var lines []string
	//
	m := checkParse(t, text)
	//
	for _, decl := range m.Lisp() {
		lines = append(lines, decl.String(true))
	}
	//
	return lines
}

func checkPrint(t *testing.T, text string, expected []string) {
	t.Helper()
	//
	lines := printModel(t, text)
	//
	if len(lines) != len(expected) {
		t.Fatalf("expected %d declarations, got %d:\n%s", len(expected), len(lines), strings.Join(lines, "\n"))
	}
	//
	for i := range lines {
		if lines[i] != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], lines[i])
		}
	}
}
