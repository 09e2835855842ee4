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
package repn

import (
	"fmt"

	"github.com/consensys/go-linrepn/pkg/expr"
)

// WalkError reports an unrecoverable failure encountered whilst walking an
// expression, such as an uninitialised variable or a failed evaluation where
// no fallback exists.
type WalkError struct {
	// Offending expression
	Expr expr.Expr
	// Underlying cause
	Err error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("cannot classify %s: %v", e.Expr.String(), e.Err)
}

// Unwrap returns the underlying cause.
func (e *WalkError) Unwrap() error {
	return e.Err
}

// InternalError reports an expression whose shape is not supported (for
// example, an operator for which no rule exists).
type InternalError struct {
	// Offending expression
	Expr expr.Expr
	// Description of the problem
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal failure (%s): %s", e.Message, e.Expr.String())
}
