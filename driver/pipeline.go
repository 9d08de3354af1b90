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

package driver

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rsmmr/hilti-sub004/ast/scope"
	"github.com/rsmmr/hilti-sub004/passes"
)

// passEntry is one line of a pipeline file: either a bare pass name
// ("- normalizer") or a mapping naming a pass plus the arguments it
// needs ("- name: id-replacer\n  old: loop-break\n  new: ...").
type passEntry struct {
	Name string `yaml:"name"`
	Old  string `yaml:"old"`
	New  string `yaml:"new"`
}

// UnmarshalYAML accepts either a bare scalar string or the mapping form
// above, since most entries in practice only need a name.
func (e *passEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&e.Name)
	}
	type plain passEntry
	return value.Decode((*plain)(e))
}

// pipelineFile is the YAML shape a pipeline file is read into: a
// top-level `passes:` list naming, in order, which of the built-in
// passes.Pass values to run.
type pipelineFile struct {
	Passes []passEntry `yaml:"passes"`
}

// LoadPipeline reads a YAML file naming a sequence of built-in passes
// (one of "collector", "id-replacer", "normalizer", "printer") and
// returns them constructed in that order. Diagnostics for every pass but
// printer go to io.Discard; printer writes to stdout, since a pipeline
// file has no way to name per-pass sinks.
func LoadPipeline(path string) ([]passes.Pass, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: reading pipeline %q: %w", path, err)
	}

	var pf pipelineFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("driver: parsing pipeline %q: %w", path, err)
	}

	out := make([]passes.Pass, 0, len(pf.Passes))
	for _, entry := range pf.Passes {
		p, err := buildPass(entry, os.Stdout)
		if err != nil {
			return nil, fmt.Errorf("driver: pipeline %q: %w", path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func buildPass(entry passEntry, stdout io.Writer) (passes.Pass, error) {
	switch entry.Name {
	case "collector":
		return passes.NewCollector(io.Discard), nil
	case "id-replacer":
		if entry.Old == "" || entry.New == "" {
			return nil, fmt.Errorf("id-replacer entry needs non-empty old/new identifiers")
		}
		return passes.NewIDReplacer(scope.New(entry.Old), scope.New(entry.New), io.Discard), nil
	case "normalizer":
		return passes.NewNormalizer(io.Discard), nil
	case "printer":
		return passes.NewPrinter(stdout, false), nil
	default:
		return nil, fmt.Errorf("unknown pass %q", entry.Name)
	}
}
