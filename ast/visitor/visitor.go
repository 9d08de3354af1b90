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

// Package visitor implements the traversal framework of spec.md §4.5: a
// Visitor dispatches on a node's concrete kind, offering pre-order,
// post-order, and call-driven traversal, ancestor queries, per-call
// arguments/results, and cooperative cancellation through the embedded
// logger.
//
// Unlike mast.Walk (a hand-written type switch over one
// fixed node set), this package's AST is open-ended across ast/hilti/psl,
// so dispatch is a handler table keyed by reflect.Type, populated by
// Register. The traversal and stack-management shape — Pre/Post-style
// callbacks, nil-child guards delegated to the node's own Children, error
// propagation through the call chain — follows
// analyzer/core/mast/walk.go.
package visitor

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/rsmmr/hilti-sub004/ast"
)

// Mode selects how a Visitor descends through a tree.
type Mode int

const (
	// PreOrder visits a node, then its children in order (spec.md §4.5.1).
	PreOrder Mode = iota
	// PostOrder visits a node's children, then the node (spec.md §4.5.2).
	PostOrder
	// CallDriven performs no automatic descent; visit methods re-enter
	// the visitor explicitly via Call (spec.md §4.5.3).
	CallDriven
)

// State is the processAll state machine of spec.md §4.5.
type State int

const (
	Idle State = iota
	Running
	CompleteOK
	CompleteError
)

// NodeFunc is a dispatch handler bound to one concrete node kind via Register.
type NodeFunc func(v *Visitor, n ast.Node) error

// DebugAllVisitors enables debug tracing globally, overriding every
// Visitor's own Debug field (spec.md §4.5 "enabled globally or per-visitor").
var DebugAllVisitors bool

type frame struct {
	arg1, arg2       any
	result           any
	resultSet        bool
	defaultResult    any
	hasDefaultResult bool
}

// Visitor is a reusable traversal engine. Construct one with New, register
// per-kind handlers with Register, and drive it with ProcessAllPreOrder,
// ProcessAllPostOrder, or ProcessOne (call-driven).
type Visitor struct {
	Name   string
	Mode   Mode
	Logger *ast.Logger
	Debug  bool

	handlers       map[reflect.Type]NodeFunc
	defaultHandler NodeFunc
	reverse        bool

	state State

	stack   []ast.Node
	visited map[ast.Node]bool

	frame
	argStack []frame
}

// New creates a Visitor with the given name, mode, and logger. reverse
// controls sibling order for PreOrder/PostOrder traversal (spec.md §4.5.1:
// "in order, or reverse order if requested").
func New(name string, mode Mode, logger *ast.Logger) *Visitor {
	return &Visitor{Name: name, Mode: mode, Logger: logger}
}

// SetReverse toggles reverse sibling order for automatic descent.
func (v *Visitor) SetReverse(reverse bool) { v.reverse = reverse }

// Register[T] binds fn as the handler for every node whose concrete type is T.
func Register[T ast.Node](v *Visitor, fn func(*Visitor, T) error) {
	if v.handlers == nil {
		v.handlers = make(map[reflect.Type]NodeFunc)
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	v.handlers[t] = func(vv *Visitor, n ast.Node) error {
		tn, ok := n.(T)
		if !ok {
			return nil
		}
		return fn(vv, tn)
	}
}

// SetDefaultHandler installs a fallback called for nodes with no specific
// registered handler. Without one, unregistered kinds are silently skipped.
func (v *Visitor) SetDefaultHandler(fn NodeFunc) { v.defaultHandler = fn }

// State returns the current processAll state (spec.md §4.5 state machine).
func (v *Visitor) State() State { return v.state }

// Reset returns the visitor to Idle, clearing traversal-scoped state. It
// does not touch registered handlers.
func (v *Visitor) Reset() {
	v.state = Idle
	v.stack = nil
	v.visited = nil
	v.frame = frame{}
	v.argStack = nil
}

// Arg1 and Arg2 return the arguments passed to the enclosing
// ProcessAll*/ProcessOne/Call invocation (spec.md §4.5 "per-call extras").
func (v *Visitor) Arg1() any { return v.arg1 }
func (v *Visitor) Arg2() any { return v.arg2 }

// SetResult records a result value for the current call frame.
func (v *Visitor) SetResult(val any) {
	v.result = val
	v.resultSet = true
}

// SetDefaultResult declares a fallback value used by Result if no visit
// method calls SetResult for the current frame.
func (v *Visitor) SetDefaultResult(val any) {
	v.defaultResult = val
	v.hasDefaultResult = true
}

// Result returns the value set by SetResult, or the declared default. If
// neither was set, it reports an internal error through Logger, which
// aborts the process (see ast.Logger.InternalErrorMsg); with no Logger it
// returns nil.
func (v *Visitor) Result() any {
	if v.resultSet {
		return v.result
	}
	if v.hasDefaultResult {
		return v.defaultResult
	}
	if v.Logger != nil {
		v.Logger.InternalErrorMsg(fmt.Sprintf("visitor %q: no result set and no default declared", v.Name))
	}
	return nil
}

// Current returns the nearest ancestor of kind T on the active traversal
// path, including the node currently being visited.
func Current[T ast.Node](v *Visitor) (T, bool) {
	return searchStack[T](v.stack, 0)
}

// Parent returns the nearest ancestor of kind T, excluding the node
// currently being visited.
func Parent[T ast.Node](v *Visitor) (T, bool) {
	return searchStack[T](v.stack, 1)
}

func searchStack[T ast.Node](stack []ast.Node, skip int) (T, bool) {
	for i := len(stack) - 1 - skip; i >= 0; i-- {
		if t, ok := stack[i].(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// CurrentLocation returns the first set location walking up the active
// traversal path from the node currently being visited.
func (v *Visitor) CurrentLocation() ast.Location {
	for i := len(v.stack) - 1; i >= 0; i-- {
		if loc := v.stack[i].Location(); loc.IsSet() {
			return loc
		}
	}
	return ast.NoLocation
}

func (v *Visitor) lookup(n ast.Node) NodeFunc {
	if fn, ok := v.handlers[reflect.TypeOf(n)]; ok {
		return fn
	}
	return v.defaultHandler
}

func (v *Visitor) debugEnabled() bool {
	return v.Debug || DebugAllVisitors
}

func (v *Visitor) trace(n ast.Node) {
	if !v.debugEnabled() {
		return
	}
	indent := strings.Repeat("  ", len(v.stack))
	fmt.Fprintf(os.Stderr, "%s%s: %s\n", indent, v.Name, ast.RenderNode(n))
}

// dispatch pushes n on the stack, invokes its handler, and logs any
// returned error as a node error before popping.
func (v *Visitor) dispatch(n ast.Node) error {
	v.stack = append(v.stack, n)
	defer func() { v.stack = v.stack[:len(v.stack)-1] }()

	v.trace(n)

	fn := v.lookup(n)
	if fn == nil {
		return nil
	}
	if err := fn(v, n); err != nil {
		if v.Logger != nil {
			v.Logger.ErrorNode(err.Error(), n)
		}
		return err
	}
	return nil
}

func (v *Visitor) fatal() bool {
	return v.Logger != nil && v.Logger.Fatal()
}

// ProcessAllPreOrder runs a full pre-order traversal starting at root,
// with arg1/arg2 available to every visit method. It returns true iff the
// traversal completed with no errors logged and no fatal error raised
// (spec.md §4.5 processAll / §5 cancellation).
func (v *Visitor) ProcessAllPreOrder(root ast.Node, arg1, arg2 any) bool {
	return v.processAll(root, arg1, arg2, v.walkPre)
}

// ProcessAllPostOrder is the post-order counterpart of ProcessAllPreOrder.
func (v *Visitor) ProcessAllPostOrder(root ast.Node, arg1, arg2 any) bool {
	return v.processAll(root, arg1, arg2, v.walkPost)
}

func (v *Visitor) processAll(root ast.Node, arg1, arg2 any, walk func(ast.Node)) bool {
	v.state = Running
	v.visited = make(map[ast.Node]bool)
	v.arg1, v.arg2 = arg1, arg2

	errsBefore := 0
	if v.Logger != nil {
		errsBefore = v.Logger.Errors()
	}

	walk(root)

	ok := !v.fatal()
	if v.Logger != nil && v.Logger.Errors() > errsBefore {
		ok = false
	}
	if ok {
		v.state = CompleteOK
	} else {
		v.state = CompleteError
	}
	return ok
}

func (v *Visitor) children(n ast.Node) []ast.Node {
	kids := n.Children(false)
	if !v.reverse {
		return kids
	}
	out := make([]ast.Node, len(kids))
	for i, k := range kids {
		out[len(kids)-1-i] = k
	}
	return out
}

func (v *Visitor) walkPre(n ast.Node) {
	if v.fatal() || n == nil || v.visited[n] {
		return
	}
	v.visited[n] = true
	if err := v.dispatch(n); err != nil {
		return
	}
	for _, c := range v.children(n) {
		if v.fatal() {
			return
		}
		v.walkPre(c)
	}
}

func (v *Visitor) walkPost(n ast.Node) {
	if v.fatal() || n == nil || v.visited[n] {
		return
	}
	v.visited[n] = true
	for _, c := range v.children(n) {
		if v.fatal() {
			return
		}
		v.walkPost(c)
	}
	if v.fatal() {
		return
	}
	_ = v.dispatch(n)
}

// ProcessOne starts a call-driven traversal (or processes a single node in
// isolation) at n, resetting the visited set and state machine. Visit
// methods that want to descend further call Call on chosen children.
func (v *Visitor) ProcessOne(n ast.Node, arg1, arg2 any) bool {
	v.state = Running
	v.visited = make(map[ast.Node]bool)
	v.arg1, v.arg2 = arg1, arg2

	errsBefore := 0
	if v.Logger != nil {
		errsBefore = v.Logger.Errors()
	}

	_ = v.callUnchecked(n)

	ok := !v.fatal()
	if v.Logger != nil && v.Logger.Errors() > errsBefore {
		ok = false
	}
	if ok {
		v.state = CompleteOK
	} else {
		v.state = CompleteError
	}
	return ok
}

// ProcessOneWithResult is ProcessOne plus the result read named as its own
// entry point in spec.md §4.5 ("process a single node and retrieve its
// result in one call"): it runs ProcessOne and returns the call's Result()
// alongside the success flag, saving the caller a separate v.Result() call.
func (v *Visitor) ProcessOneWithResult(n ast.Node, arg1, arg2 any) (any, bool) {
	ok := v.ProcessOne(n, arg1, arg2)
	return v.Result(), ok
}

// Call re-enters the visitor on n from inside a visit method (call-driven
// mode, or fine-grained descent from a modifier pass). Per-call arg/result
// state is saved and restored around the call (spec.md §4.5 "recursive arg
// saving"); n is skipped if already visited in the current top-level call
// or if a fatal error has been raised.
func (v *Visitor) Call(n ast.Node) error {
	if v.fatal() || n == nil {
		return nil
	}
	v.argStack = append(v.argStack, v.frame)
	defer func() {
		last := len(v.argStack) - 1
		v.frame = v.argStack[last]
		v.argStack = v.argStack[:last]
	}()
	return v.callUnchecked(n)
}

func (v *Visitor) callUnchecked(n ast.Node) error {
	if v.visited == nil {
		v.visited = make(map[ast.Node]bool)
	}
	if v.visited[n] {
		return nil
	}
	v.visited[n] = true
	return v.dispatch(n)
}
