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

// Package thrift holds the resolved Thrift schema consumed by the code
// generator. Everything in here is built once by a schema source (an IDL
// front end, or the OpenAPI converter) and is read-only afterwards.
package thrift

import (
	"regexp"
)

// Named carries what every top-level schema element has in common.
type Named struct {
	Name       string            // Name of the element as declared
	Doc        string            // Documentation text, without comment markers
	Namespaces map[string]string // Namespace per target scope ("go", "java", "*")
	Loc        Location          // Where the element was declared
}

// Namespace returns the namespace declared for scope, falling back to the
// wildcard scope. It returns "" when neither is declared.
func (n *Named) Namespace(scope string) string {
	if ns := n.Namespaces[scope]; ns != "" {
		return ns
	}
	return n.Namespaces["*"]
}

// Location returns the source location of the declaration.
func (n *Named) Location() Location {
	return n.Loc
}

// StructKind distinguishes the three struct-like declarations.
type StructKind int

const (
	KindStruct StructKind = iota
	KindUnion
	KindException
)

func (k StructKind) String() string {
	switch k {
	case KindUnion:
		return "union"
	case KindException:
		return "exception"
	default:
		return "struct"
	}
}

// Struct represents a Thrift struct, union or exception
type Struct struct {
	Named
	Kind   StructKind // struct, union or exception
	Fields []*Field   // Fields in declaration order, which is also wire order
}

// IsUnion reports whether the struct is a union.
func (s *Struct) IsUnion() bool { return s.Kind == KindUnion }

// IsException reports whether the struct is an exception.
func (s *Struct) IsException() bool { return s.Kind == KindException }

// Requiredness governs presence on the wire and construction-time validation.
type Requiredness int

const (
	Default Requiredness = iota
	Required
	Optional
)

func (r Requiredness) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	default:
		return "default"
	}
}

var (
	redactedPattern   = regexp.MustCompile(`(?i)@redacted`)
	obfuscatedPattern = regexp.MustCompile(`(?i)@obfuscated`)
)

// Field represents a field in a Thrift struct, union or exception
type Field struct {
	ID           int16        // Wire identifier, unique within the owning struct
	Name         string       // Name of the field
	Type         Type         // Declared type, possibly a typedef
	Requiredness Requiredness // required, optional or default
	Default      ConstValue   // Default value, nil when none is declared
	Redacted     bool         // Hide the value in string output
	Obfuscated   bool         // Summarize the value in string output
	Doc          string       // Documentation text
}

// IsRequired reports whether the field is declared required.
func (f *Field) IsRequired() bool { return f.Requiredness == Required }

// IsRedacted reports whether the field value must never appear in string
// output. Either the annotation flag or an @redacted tag in the
// documentation marks a field.
func (f *Field) IsRedacted() bool {
	return f.Redacted || redactedPattern.MatchString(f.Doc)
}

// IsObfuscated reports whether the field value is summarized in string
// output. Redaction takes precedence.
func (f *Field) IsObfuscated() bool {
	if f.IsRedacted() {
		return false
	}
	return f.Obfuscated || obfuscatedPattern.MatchString(f.Doc)
}

// TypedefName returns the name of the typedef the field was declared with,
// or "" when the field type is not a typedef.
func (f *Field) TypedefName() string {
	if td, ok := f.Type.(*Typedef); ok {
		return td.Name
	}
	return ""
}

// Enum represents a Thrift enum
type Enum struct {
	Named
	Members []*EnumMember // Members in declaration order
}

// EnumMember represents a value in a Thrift enum
type EnumMember struct {
	Name  string
	Value int32
	Doc   string
}

// Member returns the member called name, or nil.
func (e *Enum) Member(name string) *EnumMember {
	for _, m := range e.Members {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MemberByValue returns the first declared member carrying value, or nil.
func (e *Enum) MemberByValue(value int32) *EnumMember {
	for _, m := range e.Members {
		if m.Value == value {
			return m
		}
	}
	return nil
}

// Constant represents a constant in Thrift
type Constant struct {
	Named
	Type  Type       // Declared type of the constant
	Value ConstValue // Literal value
}

// Method represents a method in a Thrift service
type Method struct {
	Name   string   // Name of the method
	Doc    string   // Documentation text
	Params []*Field // Parameters in declaration order
	Result Type     // Return type, nil for void
	Oneway bool     // Fire-and-forget method
	Throws []*Field // Declared exceptions
}

// Service represents a Thrift service
type Service struct {
	Named
	Extends *Service  // Base service, nil when none
	Methods []*Method // Methods in declaration order
}
