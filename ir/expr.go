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

import "github.com/apache/thrift/lib/go/thrift"

// Expr is an expression. A field or builder slot is nullable; Value and Box
// convert between a slot and the plain value it holds.
type Expr interface {
	isExpr()
}

type (
	// Ident names a local variable, parameter or receiver.
	Ident struct {
		Name string
	}

	// FieldRef is the slot holding field Name of a value or builder.
	FieldRef struct {
		Recv Expr
		Name string
		Type *Type
	}

	// Value is the plain value held by a slot that is known to be set.
	Value struct {
		X    Expr
		Type *Type
	}

	// Box wraps a plain value so it can be stored in a slot.
	Box struct {
		X    Expr
		Type *Type
	}

	IsNull struct {
		X Expr
	}

	NotNull struct {
		X Expr
	}

	// Lit is a literal. Value holds an int64, float64, bool or string. A nil
	// Type makes an untyped integer literal.
	Lit struct {
		Type  *Type
		Value any
	}

	// Null is the unset slot.
	Null struct {
		Type *Type
	}

	// EnumConst references a member of an enum type.
	EnumConst struct {
		Type   *Type
		Member string
	}

	// ConstRef references a named constant.
	ConstRef struct {
		Name      string
		Namespace string
		Type      *Type
	}

	Compare struct {
		Op CompareOp
		L  Expr
		R  Expr
	}

	Not struct {
		X Expr
	}

	// And is true when every term is; an empty And is true.
	And struct {
		Terms []Expr
	}

	Or struct {
		Terms []Expr
	}

	// TypeCode is a wire type tag.
	TypeCode struct {
		Code thrift.TType
	}

	// Proto invokes an operation of the protocol reader or writer.
	Proto struct {
		Op   ProtoOp
		Recv Expr
		Args []Expr
	}

	// WriteStruct invokes the write routine of a nested value.
	WriteStruct struct {
		X     Expr
		Proto Expr
	}

	// ReadStruct invokes the read routine of struct Type. A nil Builder
	// reads into a fresh builder.
	ReadStruct struct {
		Type    *Type
		Proto   Expr
		Builder Expr
	}

	NewBuilder struct {
		Type *Type
	}

	// BuildCall validates a builder and produces its value.
	BuildCall struct {
		Builder Expr
	}

	// NewValue constructs a value of struct Type from its field slots.
	NewValue struct {
		Type   *Type
		Fields []FieldInit
	}

	// NewContainer allocates an empty container of Type with room for Size
	// elements. Size may be nil.
	NewContainer struct {
		Type *Type
		Size Expr
	}

	// EmptyContainer is the canonical empty literal of a container Type.
	EmptyContainer struct {
		Type *Type
	}

	// CopyOf is a deep copy of binary or container X that later mutation
	// of X cannot reach.
	CopyOf struct {
		X    Expr
		Type *Type
	}

	Len struct {
		X Expr
	}

	// EnumLookup maps a raw wire integer to a member of enum Type. It
	// yields two results: the member and whether one was found.
	EnumLookup struct {
		Type *Type
		Raw  Expr
	}

	// EnumWire is the integer wire value of enum X.
	EnumWire struct {
		X Expr
	}

	// Equals compares two slots of Type. Nullable slots are equal when both
	// are unset, and unequal when only one is.
	Equals struct {
		A, B     Expr
		Type     *Type
		Nullable bool
	}

	// HashOf is the hash code of a slot; an unset slot hashes to zero.
	HashOf struct {
		X    Expr
		Type *Type
	}

	// Stringify is the diagnostic string form of a slot.
	Stringify struct {
		X    Expr
		Type *Type
	}

	// Concat joins string expressions.
	Concat struct {
		Parts []Expr
	}

	// Digest is a one-way, non-reversible rendering of a slot.
	Digest struct {
		X Expr
	}

	// Summary describes a container slot by kind, element types and size
	// without revealing its contents.
	Summary struct {
		X         Expr
		Container string   // "List", "Set" or "Map"
		Elems     []string // Element type names; key and value for maps
	}

	// Found is a successful optional result.
	Found struct {
		X Expr
	}

	// NotFound is the empty optional result for Type.
	NotFound struct {
		Type *Type
	}
)

// FieldInit sets one field of a NewValue.
type FieldInit struct {
	Name  string
	Type  *Type
	Value Expr
}

// CompareOp is an equality operator.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
)

// ProtoOp names an operation of the protocol interface.
type ProtoOp string

const (
	WriteStructBegin ProtoOp = "WriteStructBegin"
	WriteStructEnd   ProtoOp = "WriteStructEnd"
	WriteFieldBegin  ProtoOp = "WriteFieldBegin"
	WriteFieldEnd    ProtoOp = "WriteFieldEnd"
	WriteFieldStop   ProtoOp = "WriteFieldStop"
	WriteListBegin   ProtoOp = "WriteListBegin"
	WriteListEnd     ProtoOp = "WriteListEnd"
	WriteSetBegin    ProtoOp = "WriteSetBegin"
	WriteSetEnd      ProtoOp = "WriteSetEnd"
	WriteMapBegin    ProtoOp = "WriteMapBegin"
	WriteMapEnd      ProtoOp = "WriteMapEnd"
	WriteBool        ProtoOp = "WriteBool"
	WriteByte        ProtoOp = "WriteByte"
	WriteI16         ProtoOp = "WriteI16"
	WriteI32         ProtoOp = "WriteI32"
	WriteI64         ProtoOp = "WriteI64"
	WriteDouble      ProtoOp = "WriteDouble"
	WriteString      ProtoOp = "WriteString"
	WriteBinary      ProtoOp = "WriteBinary"

	ReadStructBegin ProtoOp = "ReadStructBegin"
	ReadStructEnd   ProtoOp = "ReadStructEnd"
	ReadFieldBegin  ProtoOp = "ReadFieldBegin"
	ReadFieldEnd    ProtoOp = "ReadFieldEnd"
	ReadListBegin   ProtoOp = "ReadListBegin"
	ReadListEnd     ProtoOp = "ReadListEnd"
	ReadSetBegin    ProtoOp = "ReadSetBegin"
	ReadSetEnd      ProtoOp = "ReadSetEnd"
	ReadMapBegin    ProtoOp = "ReadMapBegin"
	ReadMapEnd      ProtoOp = "ReadMapEnd"
	ReadBool        ProtoOp = "ReadBool"
	ReadByte        ProtoOp = "ReadByte"
	ReadI16         ProtoOp = "ReadI16"
	ReadI32         ProtoOp = "ReadI32"
	ReadI64         ProtoOp = "ReadI64"
	ReadDouble      ProtoOp = "ReadDouble"
	ReadString      ProtoOp = "ReadString"
	ReadBinary      ProtoOp = "ReadBinary"

	Skip ProtoOp = "Skip"
)

// Error values raised by Fail.
type (
	// MissingField reports a required field left unset at build time.
	MissingField struct {
		Struct, Field string
	}

	// UnionCount reports a union built with Count fields set.
	UnionCount struct {
		Struct string
		Count  Expr
	}

	// NilArgument reports a nil value passed to a required field's setter.
	NilArgument struct {
		Struct, Field string
	}

	// UnknownEnum reports a wire integer that names no member of Enum.
	UnknownEnum struct {
		Enum  string
		Value Expr
	}
)

func (Ident) isExpr()          {}
func (FieldRef) isExpr()       {}
func (Value) isExpr()          {}
func (Box) isExpr()            {}
func (IsNull) isExpr()         {}
func (NotNull) isExpr()        {}
func (Lit) isExpr()            {}
func (Null) isExpr()           {}
func (EnumConst) isExpr()      {}
func (ConstRef) isExpr()       {}
func (Compare) isExpr()        {}
func (Not) isExpr()            {}
func (And) isExpr()            {}
func (Or) isExpr()             {}
func (TypeCode) isExpr()       {}
func (Proto) isExpr()          {}
func (WriteStruct) isExpr()    {}
func (ReadStruct) isExpr()     {}
func (NewBuilder) isExpr()     {}
func (BuildCall) isExpr()      {}
func (NewValue) isExpr()       {}
func (NewContainer) isExpr()   {}
func (EmptyContainer) isExpr() {}
func (CopyOf) isExpr()         {}
func (Len) isExpr()            {}
func (EnumLookup) isExpr()     {}
func (EnumWire) isExpr()       {}
func (Equals) isExpr()         {}
func (HashOf) isExpr()         {}
func (Stringify) isExpr()      {}
func (Concat) isExpr()         {}
func (Digest) isExpr()         {}
func (Summary) isExpr()        {}
func (Found) isExpr()          {}
func (NotFound) isExpr()       {}
func (MissingField) isExpr()   {}
func (UnionCount) isExpr()     {}
func (NilArgument) isExpr()    {}
func (UnknownEnum) isExpr()    {}

// Str is a typed string literal.
func Str(s string) Lit {
	return Lit{Type: &Type{Kind: String}, Value: s}
}

// Int is an untyped integer literal.
func Int(v int64) Lit {
	return Lit{Value: v}
}
