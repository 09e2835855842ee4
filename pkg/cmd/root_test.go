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

import "testing"

func Test_Version_01(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()
	//
	Version = "v1.2.3"
	//
	if v := version(); v != "v1.2.3" {
		t.Errorf("expected link-time version, got %q", v)
	}
}

func Test_Version_02(t *testing.T) {
	saved := Version
	defer func() { Version = saved }()
	//
	Version = ""
	// Test binaries carry build info, though its main version may be empty.
	if v := version(); v == "" {
		t.Errorf("expected non-empty version")
	}
}
