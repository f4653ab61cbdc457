/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package codegen

import "strconv"

// NameAllocator hands out local identifiers that are unique within one
// emission unit. It is not safe for concurrent use; every unit gets its own.
type NameAllocator struct {
	used map[string]bool
}

// NewNameAllocator returns an allocator that never hands out any of the
// reserved words.
func NewNameAllocator(reserved ...string) *NameAllocator {
	a := &NameAllocator{used: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		a.used[r] = true
	}
	return a
}

// New returns suggestion if it is still free, and otherwise the first free
// suggestion followed by a counter.
func (a *NameAllocator) New(suggestion string) string {
	name := suggestion
	for i := 1; a.used[name]; i++ {
		name = suggestion + strconv.Itoa(i)
	}
	a.used[name] = true
	return name
}
