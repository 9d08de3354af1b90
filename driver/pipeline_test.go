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

func writePipeline(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadPipelineBuildsBarePassNames(t *testing.T) {
	path := writePipeline(t, "passes:\n  - collector\n  - normalizer\n  - printer\n")

	ps, err := driver.LoadPipeline(path)
	require.NoError(t, err)
	require.Len(t, ps, 3)
	assert.Equal(t, "collector", ps[0].Name())
	assert.Equal(t, "normalizer", ps[1].Name())
	assert.Equal(t, "printer", ps[2].Name())
}

func TestLoadPipelineBuildsIDReplacerFromMappingEntry(t *testing.T) {
	path := writePipeline(t, "passes:\n  - name: id-replacer\n    old: loop-break\n    new: \"@__loop_end_1\"\n")

	ps, err := driver.LoadPipeline(path)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "id-replacer", ps[0].Name())
}

func TestLoadPipelineRejectsIDReplacerWithoutOldNew(t *testing.T) {
	path := writePipeline(t, "passes:\n  - name: id-replacer\n")

	_, err := driver.LoadPipeline(path)
	assert.Error(t, err)
}

func TestLoadPipelineRejectsUnknownPassName(t *testing.T) {
	path := writePipeline(t, "passes:\n  - nonsense\n")

	_, err := driver.LoadPipeline(path)
	assert.Error(t, err)
}
