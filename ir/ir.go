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

// Package ir is the language-agnostic description of generated code. The
// code generator builds it from a schema and an emitter renders it as source
// text for one output language. Nothing in here knows about any particular
// language's syntax.
package ir

// File is one unit of output: a single top-level declaration together with
// the namespace it belongs to.
type File struct {
	Namespace string // Dotted namespace of the declaration
	Name      string // Base name of the unit
	Source    string // Schema location the unit was generated from
	Decl      Decl
}

// Decl is a top-level declaration. The set of implementations is closed:
// *StructDecl, *EnumDecl, *ConstGroupDecl and *ServiceDecl.
type Decl interface {
	DeclName() string

	isDecl()
}

// StructKind mirrors the three struct-like schema declarations.
type StructKind int

const (
	StructPlain StructKind = iota
	StructUnion
	StructException
)

// StructDecl is an immutable value type together with its builder and the
// value-semantics and codec routines.
type StructDecl struct {
	Name   string
	Doc    string
	Kind   StructKind
	Fields []*FieldDecl

	Builder *BuilderDecl

	// Methods on the value type: Equal, HashCode, String and Write.
	Methods []*Func

	// Package level functions: ReadWith and Read.
	Funcs []*Func

	// SerializationHelpers asks for binary marshal/unmarshal helpers built
	// on Write and Read.
	SerializationHelpers bool

	// DefensiveAnnotations asks for nullability markers on fields.
	DefensiveAnnotations bool
}

// FieldDecl is one field of a value type, and the matching builder slot.
type FieldDecl struct {
	Name        string
	ID          int16
	Type        *Type
	Required    bool
	Doc         string
	Annotations []Annotation
}

// Annotation is metadata attached to a field, such as its wire id or its
// redaction status.
type Annotation struct {
	Name string
	Args []Arg
}

// Arg is one named annotation argument.
type Arg struct {
	Key   string
	Value string
}

// BuilderDecl is the mutable companion of a StructDecl.
type BuilderDecl struct {
	Name string
	Recv string // Receiver name used by every body below

	// Defaults initializes a fresh builder from field defaults.
	Defaults []Stmt

	// CopyFrom fills a fresh builder from the value named by CopySource.
	CopyFrom   []Stmt
	CopySource string

	Reset   *Func
	Setters []*Func
	Build   *Func
}

// FuncRole identifies what a generated routine is for. Emitters derive the
// concrete signature from the role.
type FuncRole int

const (
	RoleEqual       FuncRole = iota + 1 // (other) -> bool
	RoleHashCode                        // () -> hash code
	RoleString                          // () -> string
	RoleWrite                           // (protocol) -> error
	RoleReadWith                        // (protocol, builder) -> value, error
	RoleRead                            // (protocol) -> value, error
	RoleSetter                          // (value) -> builder
	RoleReset                           // ()
	RoleBuild                           // () -> value, error
	RoleFindByValue                     // (int32) -> member, found
	RoleInit                            // () static initialization
)

// Func is a generated routine.
type Func struct {
	Role FuncRole
	Name string // Base name; the emitter decorates it per language
	Doc  string
	Recv string // Receiver name for methods, "" for functions

	// Field is the field a setter assigns.
	Field *FieldDecl

	Params []Param

	// Fallible routines report errors to their caller; a Fail statement in
	// any other routine is a programming error at run time.
	Fallible bool

	Body []Stmt
}

// Param is a routine parameter.
type Param struct {
	Name string
	Kind ParamKind
	Type *Type // For ParamValue and ParamBuilder
}

// ParamKind classifies parameters whose type is language-specific.
type ParamKind int

const (
	ParamValue    ParamKind = iota // A value of Type
	ParamProtocol                  // The protocol reader or writer
	ParamBuilder                   // A builder of the struct Type
	ParamWireInt                   // A raw 32-bit wire integer
)

// EnumDecl is an enum with its members and reverse lookup.
type EnumDecl struct {
	Name    string
	Doc     string
	Members []*EnumMemberDecl
	Lookup  *Func
}

// EnumMemberDecl is one enum constant. Alias is set when an earlier member
// carries the same value.
type EnumMemberDecl struct {
	Name  string
	Value int32
	Doc   string
	Alias bool
}

// ConstGroupDecl collects the named constants of one namespace.
type ConstGroupDecl struct {
	Name   string
	Consts []*ConstDecl

	// Init populates every constant whose Value is nil.
	Init *Func
}

// ConstDecl is a named constant. Value is nil when Init assigns it.
type ConstDecl struct {
	Name   string
	Doc    string
	Source string
	Type   *Type
	Value  Expr
}

// ServiceDecl is the interface shape of a service.
type ServiceDecl struct {
	Name    string
	Doc     string
	Extends *Type
	Methods []*MethodDecl
}

// MethodDecl is one service method.
type MethodDecl struct {
	Name   string
	Doc    string
	Params []*ParamDecl
	Result *Type // nil for void
	Oneway bool
	Throws []*ParamDecl
}

// ParamDecl is a named, typed service method parameter.
type ParamDecl struct {
	Name string
	ID   int16
	Type *Type
}

func (d *StructDecl) DeclName() string     { return d.Name }
func (d *EnumDecl) DeclName() string       { return d.Name }
func (d *ConstGroupDecl) DeclName() string { return d.Name }
func (d *ServiceDecl) DeclName() string    { return d.Name }

func (*StructDecl) isDecl()     {}
func (*EnumDecl) isDecl()       {}
func (*ConstGroupDecl) isDecl() {}
func (*ServiceDecl) isDecl()    {}
