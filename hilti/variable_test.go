//  Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hilti_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/hilti"
)

func TestGlobalVariableReportsIsGlobal(t *testing.T) {
	typ := hilti.NewInteger(32, true, ast.NoLocation)
	v := hilti.NewVariable("counter", typ, nil, hilti.GlobalVariable, ast.NoLocation)
	assert.True(t, v.IsGlobal())
	assert.True(t, v.Type().Equals(typ))
}

func TestLocalVariableIsNotGlobal(t *testing.T) {
	v := hilti.NewVariable("tmp", hilti.NewBool(ast.NoLocation), nil, hilti.LocalVariable, ast.NoLocation)
	assert.False(t, v.IsGlobal())
}

func TestInternalNameDefaultsEmptyUntilAssigned(t *testing.T) {
	v := hilti.NewVariable("tmp", hilti.NewBool(ast.NoLocation), nil, hilti.LocalVariable, ast.NoLocation)
	assert.Equal(t, "", v.InternalName())
	v.SetInternalName("tmp$1")
	assert.Equal(t, "tmp$1", v.InternalName())
}
