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
package stack

import "testing"

func Test_Stack_01(t *testing.T) {
	s := NewStack[int]()
	//
	if !s.IsEmpty() || s.Len() != 0 {
		t.Errorf("new stack should be empty")
	}
}

func Test_Stack_02(t *testing.T) {
	s := NewStack[int]()
	s.Push(1)
	s.Push(2)
	s.Push(3)
	//
	if s.Peek(0) != 3 || s.Peek(2) != 1 {
		t.Errorf("unexpected peek (%d, %d)", s.Peek(0), s.Peek(2))
	}
	//
	for _, expected := range []int{3, 2, 1} {
		if actual := s.Pop(); actual != expected {
			t.Errorf("popped %d, expected %d", actual, expected)
		}
	}
	//
	if !s.IsEmpty() {
		t.Errorf("stack should be empty")
	}
}

func Test_Stack_03(t *testing.T) {
	s := NewStack[*int]()
	x := 1
	s.Push(&x)
	s.Push(&x)
	s.Clear()
	//
	if !s.IsEmpty() {
		t.Errorf("cleared stack should be empty")
	}
}

func Test_Stack_04(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("popping an empty stack should panic")
		}
	}()
	//
	NewStack[int]().Pop()
}
