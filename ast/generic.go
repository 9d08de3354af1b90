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

// Generic is a bare Node carrying only a debug label, with no
// language-specific structure of its own. It exists for exercising the
// generic graph operations (§4.1) independently of any concrete
// language, and for test fixtures that just need "some node".
type Generic struct {
	NodeBase
	Label string
}

// NewGeneric creates a Generic node with the given label and location.
func NewGeneric(label string, loc Location) *Generic {
	n := &Generic{Label: label}
	n.Init(n, loc)
	return n
}

func (n *Generic) String() string {
	return n.Label
}
