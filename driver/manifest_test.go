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

package driver_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsmmr/hilti-sub004/driver"
)

const testManifest = `module example.com/main

go 1.21

require (
	example.com/helpers v0.0.0
)

replace example.com/helpers => ./modules/helpers
`

func TestLoadManifestResolvesReplacedPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o644))

	m, err := driver.LoadManifest(path)
	require.NoError(t, err)

	require.Contains(t, m.Declared, "example.com/helpers")
	p, found := m.PathFor("example.com/helpers")
	require.True(t, found)
	assert.Equal(t, "./modules/helpers", p)
}

func TestLoadManifestWithoutRequireOrReplaceIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "go.mod")
	require.NoError(t, os.WriteFile(path, []byte("module example.com/bare\n\ngo 1.21\n"), 0o644))

	m, err := driver.LoadManifest(path)
	require.NoError(t, err)
	assert.Empty(t, m.Declared)
	assert.Empty(t, m.Paths)
}

func TestLoadManifestErrorsOnMissingFile(t *testing.T) {
	_, err := driver.LoadManifest(filepath.Join(t.TempDir(), "missing.mod"))
	assert.Error(t, err)
}
