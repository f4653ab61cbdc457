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

package thrift

import "fmt"

// Location is a position in a schema source file.
type Location struct {
	Path   string `json:"path,omitempty"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
}

func (l Location) String() string {
	switch {
	case l.Path == "":
		return "<unknown>"
	case l.Line == 0:
		return l.Path
	case l.Column == 0:
		return fmt.Sprintf("%s:%d", l.Path, l.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Column)
	}
}

// Schema is a complete, resolved set of declarations.
type Schema struct {
	Enums      []*Enum     // Enums in declaration order
	Structs    []*Struct   // Plain structs
	Exceptions []*Struct   // Exceptions
	Unions     []*Struct   // Unions
	Typedefs   []*Typedef  // Typedefs, kept for IDL output
	Constants  []*Constant // Constants
	Services   []*Service  // Services
}

// AddStruct appends st to the list matching its kind.
func (s *Schema) AddStruct(st *Struct) {
	switch st.Kind {
	case KindUnion:
		s.Unions = append(s.Unions, st)
	case KindException:
		s.Exceptions = append(s.Exceptions, st)
	default:
		s.Structs = append(s.Structs, st)
	}
}

// FindStruct looks a struct, union or exception up by name.
func (s *Schema) FindStruct(name string) *Struct {
	for _, list := range [][]*Struct{s.Structs, s.Unions, s.Exceptions} {
		for _, st := range list {
			if st.Name == name {
				return st
			}
		}
	}
	return nil
}

// FindEnum looks an enum up by name.
func (s *Schema) FindEnum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}
