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

package ast

// MetaEntry is a single entry stored in a node's MetaInfo multimap: a
// name plus an optional typed payload. Passes use meta entries to stash
// analysis results or flags on arbitrary nodes without extending the
// node schema (spec.md §3.6).
type MetaEntry struct {
	Name  string
	Value any
}

// MetaInfo is a multimap from names to meta entries. Several entries
// with the same name may coexist (e.g., one pass appending a finding per
// visit).
type MetaInfo struct {
	entries map[string][]MetaEntry
}

// Add appends a new entry under name.
func (m *MetaInfo) Add(name string, value any) {
	if m.entries == nil {
		m.entries = make(map[string][]MetaEntry)
	}
	m.entries[name] = append(m.entries[name], MetaEntry{Name: name, Value: value})
}

// Get returns every entry stored under name, in insertion order.
func (m *MetaInfo) Get(name string) []MetaEntry {
	return m.entries[name]
}

// First returns the first entry stored under name, and whether one exists.
func (m *MetaInfo) First(name string) (MetaEntry, bool) {
	es := m.entries[name]
	if len(es) == 0 {
		return MetaEntry{}, false
	}
	return es[0], true
}

// Has reports whether any entry is stored under name.
func (m *MetaInfo) Has(name string) bool {
	return len(m.entries[name]) > 0
}

// Remove deletes every entry stored under name.
func (m *MetaInfo) Remove(name string) {
	delete(m.entries, name)
}

// Names returns the set of names with at least one entry, in no particular order.
func (m *MetaInfo) Names() []string {
	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}
