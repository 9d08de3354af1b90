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

// Package driver implements the front-end glue a compiler binary needs
// around the ast/hilti/psl/passes layers (spec.md §4.9, §6): a context
// object carrying cross-module state, a go.mod-style manifest reader to
// resolve imports, and a YAML pass-pipeline loader. None of this package
// parses HILTI source itself — that front end is explicitly out of scope
// (spec.md §1) — it only wires already-built ASTs through the pass
// machinery the way a real driver would.
package driver

import (
	"fmt"
	"sync"

	"github.com/rsmmr/hilti-sub004/ast"
	"github.com/rsmmr/hilti-sub004/hilti"
	"github.com/rsmmr/hilti-sub004/passes"
)

// cacheKey addresses one cached analysis result for a given node under a
// given key, so the same (Node, key) pair always resolves to the same
// value even though Node isn't comparable across arbitrary types (it's
// an interface holding a pointer, which is fine as a map key here).
type cacheKey struct {
	node ast.Node
	key  string
}

// CompilerContext holds what a multi-module compilation run shares: the
// set of modules already compiled (by name, for import resolution), and a
// cache of analysis results keyed by the node they describe plus an
// arbitrary string (e.g. a pass name), so a later pass can reuse an
// earlier one's findings instead of recomputing them. It does not hold an
// instruction registry; hilti.DefaultRegistry is package-wide.
type CompilerContext struct {
	mu      sync.Mutex
	modules map[string]*hilti.Module
	cache   map[cacheKey]any
}

// NewCompilerContext builds an empty context.
func NewCompilerContext() *CompilerContext {
	return &CompilerContext{
		modules: make(map[string]*hilti.Module),
		cache:   make(map[cacheKey]any),
	}
}

// AddModule records m as compiled, making it resolvable by name for
// other modules' import declarations (spec.md §3.7).
func (c *CompilerContext) AddModule(m *hilti.Module) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.modules[m.Name] = m
}

// ModuleByName looks up a previously-compiled module by its unscoped name.
func (c *CompilerContext) ModuleByName(name string) (*hilti.Module, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.modules[name]
	return m, ok
}

// Cache records value under (node, key), overwriting any prior entry.
func (c *CompilerContext) Cache(node ast.Node, key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[cacheKey{node: node, key: key}] = value
}

// CachedValue retrieves a value previously stored with Cache.
func (c *CompilerContext) CachedValue(node ast.Node, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.cache[cacheKey{node: node, key: key}]
	return v, ok
}

// RunPass runs p over root, recording the run under a cache entry keyed
// by the pass's name so a subsequent caller can check whether a given
// pass has already run over a given node without re-running it.
func (c *CompilerContext) RunPass(p passes.Pass, root ast.Node) (bool, error) {
	ok, err := p.Run(root)
	c.Cache(root, fmt.Sprintf("pass:%s:ok", p.Name()), ok)
	return ok, err
}
