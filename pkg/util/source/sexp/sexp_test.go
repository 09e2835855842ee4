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
package sexp

import (
	"reflect"
	"strings"
	"testing"

	"github.com/consensys/go-linrepn/pkg/util/source"
)

// ============================================================================
// Positive Tests
// ============================================================================

func Test_Sexp_01(t *testing.T) {
	checkOk(t, nil, "")
}

func Test_Sexp_02(t *testing.T) {
	checkOk(t, &List{nil}, "()")
}

func Test_Sexp_03(t *testing.T) {
	checkOk(t, NewList(&List{nil}), "(())")
}

func Test_Sexp_04(t *testing.T) {
	checkOk(t, NewSymbol("nan"), "nan")
}

func Test_Sexp_05(t *testing.T) {
	checkOk(t, NewSymbol("-1.5e3"), "  -1.5e3 ")
}

func Test_Sexp_06(t *testing.T) {
	e := NewList(NewSymbol("+"), NewSymbol("x"), NewList(NewSymbol("*"), NewSymbol("3"), NewSymbol("y")))
	checkOk(t, e, "(+ x (* 3 y))")
}

func Test_Sexp_07(t *testing.T) {
	e := NewList(NewSymbol("defvar"), NewSymbol("x"))
	checkOk(t, e, "; comment\n(defvar x) ; trailing\n")
}

func Test_Sexp_08(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("(defvar x)\n(defvar y)"))
	terms, _, err := ParseAll(srcfile)
	//
	if err != nil {
		t.Error(err)
	} else if len(terms) != 2 || terms[1].String(false) != "(defvar y)" {
		t.Errorf("unexpected terms %v", terms)
	}
}

func Test_Sexp_09(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("(+ x\n   y)"))
	term, srcmap, err := Parse(srcfile)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	y := term.AsList().Get(2)
	span := srcmap.Get(y)
	//
	if span.Start() != 8 || span.End() != 9 {
		t.Errorf("unexpected span %d:%d", span.Start(), span.End())
	}
}

func Test_Sexp_10(t *testing.T) {
	e := NewList(NewSymbol("+"), NewSymbol("aaaa"), NewSymbol("bbbb"), NewSymbol("cccc"))
	formatter := NewFormatter(10)
	formatter.Add(&LFormatter{Head: "+", Priority: 1})
	//
	text := formatter.Format(e)
	//
	if strings.Count(text, "\n") < 2 {
		t.Errorf("expected multi-line output, got %q", text)
	}
}

func Test_Sexp_11(t *testing.T) {
	e := NewList(NewSymbol("defconstraint"), NewSymbol("c"),
		NewList(NewSymbol("+"), NewSymbol("aaaa"), NewSymbol("bbbb"), NewSymbol("cccc")))
	//
	checkFormat(t, e, 40, "(defconstraint c (+ aaaa bbbb cccc))\n")
	checkFormat(t, e, 22, "(defconstraint c\n  (+ aaaa bbbb cccc))\n")
	checkFormat(t, e, 10, "(defconstraint c\n  (+\n    aaaa\n    bbbb\n    cccc))\n")
}

func checkFormat(t *testing.T, e SExp, width uint, expected string) {
	t.Helper()
	//
	formatter := NewFormatter(width)
	formatter.Add(&SFormatter{Head: "defconstraint", Priority: 1})
	formatter.Add(&LFormatter{Head: "+", Priority: 2})
	//
	if text := formatter.Format(e); text != expected {
		t.Errorf("expected %q, got %q", expected, text)
	}
}

// ============================================================================
// Negative Tests
// ============================================================================

func Test_Sexp_Err_01(t *testing.T) {
	checkErr(t, ")")
}

func Test_Sexp_Err_02(t *testing.T) {
	checkErr(t, "())")
}

func Test_Sexp_Err_03(t *testing.T) {
	checkErr(t, "(string))")
}

func Test_Sexp_Err_04(t *testing.T) {
	checkErr(t, "(+ x (* y z)")
}

// ============================================================================
// Helpers
// ============================================================================

func checkOk(t *testing.T, expected SExp, input string) {
	srcfile := source.NewSourceFile("test", []byte(input))
	actual, _, err := Parse(srcfile)
	//
	if err != nil {
		t.Error(err)
	} else if expected == nil && actual != nil {
		t.Errorf("expected nothing, got %s", actual.String(false))
	} else if expected != nil && !reflect.DeepEqual(expected, actual) {
		t.Errorf("%s != %v", expected.String(false), actual)
	}
}

func checkErr(t *testing.T, input string) {
	srcfile := source.NewSourceFile("test", []byte(input))
	//
	if _, _, err := Parse(srcfile); err == nil {
		t.Errorf("input should not have parsed!")
	}
}
