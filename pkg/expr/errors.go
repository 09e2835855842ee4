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

import "fmt"

// DomainError indicates that an expression could not be evaluated because some
// operation was applied outside of its domain (e.g. the logarithm of a
// negative number, or division by zero).  Such errors are recoverable in the
// sense that an enclosing operator may still render the result irrelevant.
type DomainError struct {
	// Expression which could not be evaluated.
	Expr Expr
	// Reason for the failure
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s evaluating %s", e.Reason, e.Expr.String())
}

// UninitialisedError indicates that an expression could not be evaluated
// because a variable or parameter has no value.
type UninitialisedError struct {
	// Leaf which has no value.
	Expr Expr
}

func (e *UninitialisedError) Error() string {
	return fmt.Sprintf("no value for uninitialised %s \"%s\"", e.Expr.Op(), e.Expr.String())
}
