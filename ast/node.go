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

import "fmt"

// Node is the interface every AST entity implements: identity, the
// child/parent graph, locations, comments, and metadata (spec.md §3.1).
//
// Every method beyond the sealing node() is implemented once, on
// NodeBase; concrete node kinds in hilti/psl get the full Node behavior
// for free by embedding ast.NodeBase, the same way the source's concrete
// AST classes all derive from a single NodeBase that itself derives from
// std::enable_shared_from_this<NodeBase>. The three unexported back-
// reference/replace methods exist only so NodeBase instances can
// cooperate across the package boundary when a concrete type embeds it
// elsewhere (hilti, psl); Go promotes unexported methods through
// embedding just like exported ones, so this still satisfies Node there.
type Node interface {
	// node ensures that only ast nodes can be assigned to Node.
	node()

	// Location returns the location associated with the node, or
	// NoLocation if none. Immutable after construction.
	Location() Location

	// Comments returns the free-form comments attached to the node.
	Comments() []string
	// AddComment appends a comment.
	AddComment(string)

	// MetaInfo returns a mutable accessor to the node's meta multimap (spec.md §3.6).
	MetaInfo() *MetaInfo

	// Children returns the direct children if recursive is false, or the
	// full DAG-reachable descendant set (each node exactly once) if true.
	Children(recursive bool) []Node
	// Parents returns the node's parent back-references, which may
	// repeat if a parent holds more than one slot pointing at this node.
	Parents() []Node

	// AddChild appends node to the children list and records this as one
	// of node's parents. Adding nil is a no-op. Creating a cycle is a
	// fatal internal error.
	AddChild(node Node)
	// AddChildRef is like AddChild but lets the caller supply a NodeRef
	// that may already be shared with other parents, so that replacing
	// the referenced node through any of them is observed by all.
	AddChildRef(ref NodeRef)
	// RemoveChild removes one occurrence of node from the children list
	// and the matching back-reference from node's parents. Reports
	// whether a matching child was found.
	RemoveChild(node Node) bool
	// RemoveFromParents removes this node from every parent's child list.
	RemoveFromParents()

	// Replace rewrites, in every parent whose filter matches (or every
	// parent, if filter is nil), the child slot currently referring to
	// this node so that it refers to newNode instead (spec.md §4.1).
	Replace(newNode Node, filter func(Node) bool) error

	// replaceChildRefs and the parent-backreference bookkeeping below are
	// internal cooperation points used by Replace/AddChild/RemoveChild;
	// they are not meant to be called directly.
	replaceChildRefs(old, newNode Node) int
	addParentBackref(p Node)
	removeParentBackref(p Node) bool
}

// NodeBase implements the Node interface's bookkeeping. Concrete node
// kinds embed NodeBase and call Init from their constructor, the Go
// rendition of the source's enable_shared_from_this<NodeBase> self-link:
// NodeBase cannot know the address of the outer struct that embeds it,
// so Init records it explicitly as `self`.
type NodeBase struct {
	self     Node
	location Location
	comments []string
	meta     MetaInfo
	children []NodeRef
	parents  []Node
}

// Init must be called by every concrete node kind's constructor, passing
// the outer node value itself (e.g. `n.Init(n, loc)` inside
// NewGeneric). loc is the node's immutable location.
func (n *NodeBase) Init(self Node, loc Location) {
	n.self = self
	n.location = loc
}

func (n *NodeBase) node() {}

// Location returns the node's immutable location.
func (n *NodeBase) Location() Location { return n.location }

// Comments returns the node's comment list.
func (n *NodeBase) Comments() []string { return n.comments }

// AddComment appends a comment to the node.
func (n *NodeBase) AddComment(c string) { n.comments = append(n.comments, c) }

// MetaInfo returns a mutable pointer to the node's meta multimap.
func (n *NodeBase) MetaInfo() *MetaInfo { return &n.meta }

// Parents returns a copy of the back-reference list.
func (n *NodeBase) Parents() []Node {
	out := make([]Node, len(n.parents))
	copy(out, n.parents)
	return out
}

func (n *NodeBase) addParentBackref(p Node) {
	n.parents = append(n.parents, p)
}

func (n *NodeBase) removeParentBackref(p Node) bool {
	for i, q := range n.parents {
		if q == p {
			n.parents = append(n.parents[:i], n.parents[i+1:]...)
			return true
		}
	}
	return false
}

func (n *NodeBase) replaceChildRefs(old, newNode Node) int {
	count := 0
	for _, ref := range n.children {
		if ref.Get() == old {
			ref.Set(newNode)
			count++
		}
	}
	return count
}

// AddChild appends a freshly-wrapped reference to child.
func (n *NodeBase) AddChild(child Node) {
	if child == nil {
		return
	}
	n.AddChildRef(NewRef(child))
}

// AddChildRef appends ref, recording n as one of ref's target's parents.
// Refuses (with a panic carrying *InternalError) if doing so would create
// a cycle, per spec.md §4.1's "cycle-creating operations abort" rule.
func (n *NodeBase) AddChildRef(ref NodeRef) {
	child := ref.Get()
	if child == nil {
		return
	}
	if isDescendant(child, n.self) {
		panic(&InternalError{
			Message: fmt.Sprintf("addChild would create a cycle: %T is already an ancestor", child),
			Node:    n.self,
		})
	}
	n.children = append(n.children, ref)
	child.addParentBackref(n.self)
}

// RemoveChild removes the first child slot referring to child.
func (n *NodeBase) RemoveChild(child Node) bool {
	for i, ref := range n.children {
		if ref.Get() == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.removeParentBackref(n.self)
			return true
		}
	}
	return false
}

// RemoveFromParents removes n.self from every current parent's children.
func (n *NodeBase) RemoveFromParents() {
	for _, p := range n.Parents() {
		p.RemoveChild(n.self)
	}
}

// Children returns the direct children (non-recursive) or the full
// DAG-reachable descendant set, each node appearing exactly once, in
// first-encounter pre-order (recursive).
func (n *NodeBase) Children(recursive bool) []Node {
	if !recursive {
		out := make([]Node, 0, len(n.children))
		for _, ref := range n.children {
			out = append(out, ref.Get())
		}
		return out
	}

	var out []Node
	visited := make(map[Node]bool)
	var walk func(Node)
	walk = func(cur Node) {
		if cur == nil || visited[cur] {
			return
		}
		visited[cur] = true
		out = append(out, cur)
		for _, c := range cur.Children(false) {
			walk(c)
		}
	}
	for _, ref := range n.children {
		walk(ref.Get())
	}
	return out
}

// Replace rewrites every matching parent's child slot to point at
// newNode instead of n.self, via the shared NodeRef cells, and updates
// the back-reference lists symmetrically (spec.md §4.1, testable
// property 1 and scenario S1).
func (n *NodeBase) Replace(newNode Node, filter func(Node) bool) error {
	if newNode == nil {
		return fmt.Errorf("cannot replace a node with nil")
	}
	// Count the slots per parent from the back-references before any
	// rewrite: a cell shared by several parents is updated by the first
	// replaceChildRefs call, so later parents would see no match.
	counts := make(map[Node]int)
	var order []Node
	for _, p := range n.Parents() {
		if filter != nil && !filter(p) {
			continue
		}
		if counts[p] == 0 {
			order = append(order, p)
		}
		counts[p]++
	}
	for _, p := range order {
		p.replaceChildRefs(n.self, newNode)
		for i := 0; i < counts[p]; i++ {
			n.removeParentBackref(p)
			newNode.addParentBackref(p)
		}
	}
	return nil
}

// isDescendant reports whether target is reachable from root by walking
// children edges (i.e. root is an ancestor of target).
func isDescendant(root, target Node) bool {
	if root == nil || target == nil {
		return false
	}
	visited := make(map[Node]bool)
	var dfs func(Node) bool
	dfs = func(cur Node) bool {
		if cur == nil {
			return false
		}
		if cur == target {
			return true
		}
		if visited[cur] {
			return false
		}
		visited[cur] = true
		for _, c := range cur.Children(false) {
			if dfs(c) {
				return true
			}
		}
		return false
	}
	return dfs(root)
}

// SiblingOfChild returns the next sibling of child among n's children, or
// nil if child is not a direct child of n or has no following sibling.
// Supplements spec.md (see SPEC_FULL.md §4), grounded on the source's
// NodeBase::siblingOfChild.
func (n *NodeBase) SiblingOfChild(child Node) Node {
	for i, ref := range n.children {
		if ref.Get() == child && i+1 < len(n.children) {
			return n.children[i+1].Get()
		}
	}
	return nil
}

// RenderHook, when set, is used by NodeBase.String to produce a node's
// default human-readable form. The ast package cannot import passes
// (which depends on ast), so passes.init installs this hook instead;
// until then String falls back to a bare type name. Mirrors the
// source's NodeBase::operator string(), which renders via the printer
// when no language-specific render() override exists.
var RenderHook func(Node) string

// String renders n via RenderHook if one has been installed, else
// falls back to a bare "%T" rendering. Supplements spec.md (see
// SPEC_FULL.md §4).
func (n *NodeBase) String() string {
	if RenderHook != nil && n.self != nil {
		return RenderHook(n.self)
	}
	return fmt.Sprintf("%T", n.self)
}

// ParentsOfType walks n's parents breadth-first, collecting every
// ancestor assignable to T in first-encounter order. Flagged deprecated
// in spec.md §4.1/§9 because the order depends on parent insertion order;
// kept for passes that still rely on it.
func ParentsOfType[T Node](n Node) []T {
	var out []T
	visited := make(map[Node]bool)
	queue := n.Parents()
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p == nil || visited[p] {
			continue
		}
		visited[p] = true
		if t, ok := p.(T); ok {
			out = append(out, t)
		}
		queue = append(queue, p.Parents()...)
	}
	return out
}

// FirstParentOfType returns the first result of ParentsOfType, if any.
// Deprecated along with ParentsOfType; see spec.md §9.
func FirstParentOfType[T Node](n Node) (T, bool) {
	ps := ParentsOfType[T](n)
	var zero T
	if len(ps) == 0 {
		return zero, false
	}
	return ps[0], true
}

// As attempts a "try" cast: it returns the node typed as T and true on
// success, or the zero value and false on mismatch (spec.md §4.1).
func As[T Node](n Node) (T, bool) {
	t, ok := n.(T)
	return t, ok
}

// CheckedCast performs a "checked" cast: mismatch is a fatal internal
// error, carried as a panic with *InternalError (spec.md §4.1, §7).
func CheckedCast[T Node](n Node) T {
	t, ok := n.(T)
	if !ok {
		var zero T
		panic(&InternalError{
			Message: fmt.Sprintf("checked cast failed: expected %T, got %T", zero, n),
			Node:    n,
		})
	}
	return t
}
