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

import (
	"errors"
	"fmt"
	"strings"
)

// Type is a reference to a schema type. The set of implementations is
// closed: BaseType, *Enum, *Struct, *ListType, *SetType, *MapType and
// *Typedef.
type Type interface {
	// String returns the IDL spelling of the type.
	String() string

	isType()
}

// BaseType is one of the builtin Thrift types.
type BaseType int

const (
	Bool BaseType = iota + 1
	Byte
	I16
	I32
	I64
	Double
	String
	Binary
)

func (b BaseType) String() string {
	switch b {
	case Bool:
		return "bool"
	case Byte:
		return "byte"
	case I16:
		return "i16"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Double:
		return "double"
	case String:
		return "string"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("BaseType(%d)", int(b))
	}
}

// ListType is list<Elem>.
type ListType struct {
	Elem Type
}

func (t *ListType) String() string { return "list<" + t.Elem.String() + ">" }

// SetType is set<Elem>.
type SetType struct {
	Elem Type
}

func (t *SetType) String() string { return "set<" + t.Elem.String() + ">" }

// MapType is map<Key,Value>.
type MapType struct {
	Key   Type
	Value Type
}

func (t *MapType) String() string {
	return "map<" + t.Key.String() + "," + t.Value.String() + ">"
}

// Typedef is a named alias for another type.
type Typedef struct {
	Named
	Target Type
}

func (t *Typedef) String() string { return t.Name }

func (e *Enum) String() string   { return e.Name }
func (s *Struct) String() string { return s.Name }

func (BaseType) isType()  {}
func (*ListType) isType() {}
func (*SetType) isType()  {}
func (*MapType) isType()  {}
func (*Typedef) isType()  {}
func (*Enum) isType()     {}
func (*Struct) isType()   {}

var (
	// ErrTypedefCycle is returned when a typedef chain refers back to itself.
	ErrTypedefCycle = errors.New("typedef cycle")

	// ErrUnresolvedType is returned when a type reference was never resolved.
	ErrUnresolvedType = errors.New("unresolved type")
)

// TrueType follows typedef chains and returns the first non-typedef type.
func TrueType(t Type) (Type, error) {
	var chain []string
	seen := map[*Typedef]bool{}
	for {
		td, ok := t.(*Typedef)
		if !ok {
			break
		}
		chain = append(chain, td.Name)
		if seen[td] {
			return nil, fmt.Errorf("%w: %s", ErrTypedefCycle, strings.Join(chain, " -> "))
		}
		seen[td] = true
		t = td.Target
	}
	if t == nil {
		if len(chain) > 0 {
			return nil, fmt.Errorf("%w: typedef %s has no target", ErrUnresolvedType, chain[len(chain)-1])
		}
		return nil, ErrUnresolvedType
	}
	return t, nil
}
