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

// nodeCell is the shared indirection cell behind NodeRef (spec.md §3.2,
// §9). It is the Go rendition of the source's node_ptr<T>, which wraps a
// shared_ptr<shared_ptr<NodeBase>> for exactly this reason: copying the
// outer handle must keep observing updates made through any other copy.
type nodeCell struct {
	target Node
}

// NodeRef is a shared-cell handle to a child node. Copying a NodeRef (it
// is a plain struct, copied by value) shares the underlying cell:
// assigning a new target through any copy is observed by every other
// copy. This is what lets Replace update every parent's child slot in
// one step even though each parent holds its own NodeRef value.
type NodeRef struct {
	cell *nodeCell
}

// NewRef wraps node in a fresh cell.
func NewRef(node Node) NodeRef {
	return NodeRef{cell: &nodeCell{target: node}}
}

// Get returns the cell's current target, or nil for the zero NodeRef.
func (r NodeRef) Get() Node {
	if r.cell == nil {
		return nil
	}
	return r.cell.target
}

// Set updates the cell's target. Every NodeRef copied from r (or that r
// was copied from) observes the new target immediately.
func (r NodeRef) Set(node Node) {
	if r.cell == nil {
		return
	}
	r.cell.target = node
}

// IsZero reports whether r was never initialized via NewRef.
func (r NodeRef) IsZero() bool {
	return r.cell == nil
}

// Detach returns the current target as a plain Node, severing the link:
// a later Set through the original NodeRef (or any of its copies) will
// not be observed by the caller of Detach (spec.md §3.2).
func (r NodeRef) Detach() Node {
	return r.Get()
}
