/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package label

// Set is an insertion-ordered collection of labels with duplicates
// suppressed. The zero value is an empty set ready for use.
//
// Set is not safe for concurrent mutation.
type Set struct {
	order []Label
	index map[Label]struct{}
}

// NewSet returns a set holding ls, in order, without duplicates.
func NewSet(ls ...Label) Set {
	var s Set
	for _, l := range ls {
		s.Add(l)
	}
	return s
}

// Add inserts l and reports whether it was not present before.
// Adding an existing label is a no-op.
func (s *Set) Add(l Label) bool {
	if _, ok := s.index[l]; ok {
		return false
	}
	if s.index == nil {
		s.index = make(map[Label]struct{}, 3)
	}
	s.index[l] = struct{}{}
	s.order = append(s.order, l)
	return true
}

// Has reports whether l is in the set.
func (s Set) Has(l Label) bool {
	_, ok := s.index[l]
	return ok
}

// Len returns the number of distinct labels.
func (s Set) Len() int {
	return len(s.order)
}

// Slice returns the labels in insertion order. The result is a copy.
func (s Set) Slice() []Label {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]Label, len(s.order))
	copy(out, s.order)
	return out
}

// Strings returns the labels as plain strings, in insertion order.
func (s Set) Strings() []string {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]string, len(s.order))
	for i, l := range s.order {
		out[i] = string(l)
	}
	return out
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	return NewSet(s.order...)
}
