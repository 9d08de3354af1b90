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

// Package ast implements the foundation and node-graph layers (L0/L1 in
// the design) shared by every language built on top of it: locations,
// the logger, node metadata, and the generic node graph with its
// shared-cell child references.
package ast

import "fmt"

// Location identifies a source position as a file plus an optional line
// range. The zero value is NoLocation, the "unset" sentinel.
type Location struct {
	file     string
	fromLine int
	toLine   int
	hasFrom  bool
	hasTo    bool
}

// NoLocation is the single distinguished sentinel for "no location available".
var NoLocation = Location{}

// NewLocation returns a Location with both a starting and ending line.
func NewLocation(file string, from, to int) Location {
	return Location{file: file, fromLine: from, toLine: to, hasFrom: true, hasTo: true}
}

// NewLocationLine returns a Location with only a starting line known.
func NewLocationLine(file string, from int) Location {
	return Location{file: file, fromLine: from, hasFrom: true}
}

// IsSet reports whether the location carries any information at all.
func (l Location) IsSet() bool {
	return l.file != "" || l.hasFrom
}

// File returns the location's file path, or "" if unset.
func (l Location) File() string {
	return l.file
}

// String renders the location per the compatibility contract in spec.md §6.6:
// "file:from-to" when both ends are known, "file:from" when only the start
// is known, and "<no location>" when unset.
func (l Location) String() string {
	if !l.IsSet() {
		return "<no location>"
	}
	if l.hasFrom && l.hasTo {
		return fmt.Sprintf("%s:%d-%d", l.file, l.fromLine, l.toLine)
	}
	if l.hasFrom {
		return fmt.Sprintf("%s:%d", l.file, l.fromLine)
	}
	return l.file
}
