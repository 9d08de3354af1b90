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
	"os"

	"golang.org/x/mod/modfile"
)

// Manifest resolves the module names a source file's ImportDeclaration
// (spec.md §3.7) can name to the on-disk location of that module,
// mirroring how `go.mod`'s `require`/`replace` directives resolve a Go
// import path to a package. Declared names with no replace directive
// are still known (importable, resolvable once compiled and registered
// with a CompilerContext) but have no on-disk path recorded here.
type Manifest struct {
	// Declared lists every module name named by a require directive.
	Declared []string
	// Paths maps a module name to the on-disk path recorded by a
	// replace directive (e.g. "replace mymodule => ./modules/mymodule").
	Paths map[string]string
}

// PathFor returns the on-disk path recorded for name, if any.
func (m *Manifest) PathFor(name string) (string, bool) {
	p, ok := m.Paths[name]
	return p, ok
}

// LoadManifest reads a go.mod-formatted manifest file and resolves it
// into a Manifest. Only the module/require/replace directives are
// meaningful here; go/toolchain directives are ignored since this isn't
// actually a Go build.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("driver: reading manifest %q: %w", path, err)
	}

	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return nil, fmt.Errorf("driver: parsing manifest %q: %w", path, err)
	}

	manifest := &Manifest{Paths: make(map[string]string)}
	for _, req := range f.Require {
		manifest.Declared = append(manifest.Declared, req.Mod.Path)
	}
	for _, rep := range f.Replace {
		manifest.Paths[rep.Old.Path] = rep.New.Path
	}
	return manifest, nil
}
