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

package ir

import (
	"fmt"
	"strings"
)

// Kind is the shape of a target type.
type Kind int

const (
	Bool Kind = iota + 1
	Byte
	I16
	I32
	I64
	Double
	String
	Binary
	Enum
	Struct
	List
	Set
	Map
	Service

	// HashCode is the integer type produced by generated hash methods.
	HashCode
)

var kindNames = map[Kind]string{
	Bool:     "bool",
	Byte:     "byte",
	I16:      "i16",
	I32:      "i32",
	I64:      "i64",
	Double:   "double",
	String:   "string",
	Binary:   "binary",
	Enum:     "enum",
	Struct:   "struct",
	List:     "list",
	Set:      "set",
	Map:      "map",
	Service:  "service",
	HashCode: "hashcode",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Binding names the container implementation used for a list, set or map.
// The zero Binding selects the target language's builtin container.
type Binding struct {
	Path string // Import path or package of the container type
	Name string // Type name within Path
}

// IsZero reports whether b selects the builtin container.
func (b Binding) IsZero() bool { return b.Name == "" }

func (b Binding) String() string {
	if b.IsZero() {
		return "<builtin>"
	}
	if b.Path == "" {
		return b.Name
	}
	return b.Path + "." + b.Name
}

// ParseBinding splits a qualified type name such as
// "github.com/acme/coll.OrderedSet" into a Binding. An empty string yields
// the zero Binding.
func ParseBinding(s string) (Binding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Binding{}, nil
	}
	i := strings.LastIndex(s, ".")
	if i < 0 || strings.LastIndex(s, "/") > i {
		return Binding{}, fmt.Errorf("container binding %q: want import/path.TypeName", s)
	}
	path, name := s[:i], s[i+1:]
	if path == "" || name == "" {
		return Binding{}, fmt.Errorf("container binding %q: want import/path.TypeName", s)
	}
	return Binding{Path: path, Name: name}, nil
}

// Type is a resolved target type.
type Type struct {
	Kind Kind

	// Name and Namespace identify Enum, Struct and Service types.
	Name      string
	Namespace string

	// Binding selects the List, Set or Map implementation.
	Binding Binding

	// Elem is the element type of List and Set.
	Elem *Type

	// Key and Value are the entry types of Map.
	Key   *Type
	Value *Type

	// Thrift is the IDL spelling of the underlying schema type.
	Thrift string
}

// IsScalar reports whether values of t are plain, non-nillable values:
// numbers, booleans, strings and enums.
func (t *Type) IsScalar() bool {
	switch t.Kind {
	case Bool, Byte, I16, I32, I64, Double, String, Enum:
		return true
	}
	return false
}

// IsContainer reports whether t is a list, set or map.
func (t *Type) IsContainer() bool {
	return t.Kind == List || t.Kind == Set || t.Kind == Map
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Thrift != "" {
		return t.Thrift
	}
	switch t.Kind {
	case Enum, Struct, Service:
		return t.Name
	case List, Set:
		return t.Kind.String() + "<" + t.Elem.String() + ">"
	case Map:
		return "map<" + t.Key.String() + "," + t.Value.String() + ">"
	}
	return t.Kind.String()
}
