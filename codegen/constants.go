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

import (
	"fmt"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// ConstantRenderer turns constant values into expressions, or into
// statement sequences for containers that must be populated step by step.
type ConstantRenderer struct {
	types *TypeResolver
}

// NewConstantRenderer returns a renderer resolving types through types.
func NewConstantRenderer(types *TypeResolver) *ConstantRenderer {
	return &ConstantRenderer{types: types}
}

// NeedsInitializer reports whether value of type t cannot be written as a
// single expression. Only non-empty container literals need one.
func (c *ConstantRenderer) NeedsInitializer(t thrift.Type, value thrift.ConstValue) bool {
	switch v := value.(type) {
	case thrift.ListValue:
		return len(v) > 0
	case thrift.MapValue:
		return len(v) > 0
	}
	return false
}

// RenderInline renders value as a single expression of type t: scalars,
// enum members, references to other constants and empty containers.
func (c *ConstantRenderer) RenderInline(t thrift.Type, value thrift.ConstValue) (ir.Expr, error) {
	tt, err := trueType(t)
	if err != nil {
		return nil, err
	}
	if _, ok := tt.(*thrift.Struct); ok {
		return nil, &UnsupportedError{Feature: "Struct-type constants are not supported"}
	}
	typ, err := c.types.Resolve(tt)
	if err != nil {
		return nil, err
	}
	if ref, ok := value.(thrift.IdentValue); ok {
		return c.renderRef(ref)
	}

	switch tt := tt.(type) {
	case thrift.BaseType:
		return renderBase(tt, typ, value)
	case *thrift.Enum:
		return renderEnum(tt, typ, value)
	case *thrift.ListType, *thrift.SetType, *thrift.MapType:
		if c.NeedsInitializer(tt, value) {
			return nil, fmt.Errorf("constant %s of type %s needs an initializer", value, tt)
		}
		if !isContainerValue(value) {
			return nil, mismatch(tt, value)
		}
		return ir.EmptyContainer{Type: typ}, nil
	}
	return nil, mismatch(tt, value)
}

// GenerateInitializer appends to sink the statements that build container
// value of type t and leave it assigned to target. Element temporaries are
// drawn from names.
func (c *ConstantRenderer) GenerateInitializer(sink *[]ir.Stmt, names *NameAllocator, target ir.Expr, t thrift.Type, value thrift.ConstValue) error {
	if !c.NeedsInitializer(t, value) {
		expr, err := c.RenderInline(t, value)
		if err != nil {
			return err
		}
		*sink = append(*sink, ir.Assign{Target: target, Value: expr})
		return nil
	}
	expr, err := c.expand(sink, names, t, value)
	if err != nil {
		return err
	}
	*sink = append(*sink, ir.Assign{Target: target, Value: expr})
	return nil
}

// expand populates a fresh temporary with a non-empty container value and
// returns a reference to it.
func (c *ConstantRenderer) expand(sink *[]ir.Stmt, names *NameAllocator, t thrift.Type, value thrift.ConstValue) (ir.Expr, error) {
	tt, err := trueType(t)
	if err != nil {
		return nil, err
	}
	typ, err := c.types.Resolve(tt)
	if err != nil {
		return nil, err
	}

	switch tt := tt.(type) {
	case *thrift.ListType, *thrift.SetType:
		list, ok := value.(thrift.ListValue)
		if !ok {
			return nil, mismatch(tt, value)
		}
		elemType := elemOf(tt)
		tmp := names.New(typ.Kind.String())
		*sink = append(*sink, ir.Declare{
			Names: []string{tmp},
			Value: ir.NewContainer{Type: typ, Size: ir.Int(int64(len(list)))},
		})
		for _, elem := range list {
			e, err := c.element(sink, names, elemType, elem)
			if err != nil {
				return nil, err
			}
			*sink = append(*sink, ir.Add{Coll: ir.Ident{Name: tmp}, Type: typ, Elem: e})
		}
		return ir.Ident{Name: tmp}, nil
	case *thrift.MapType:
		entries, ok := value.(thrift.MapValue)
		if !ok {
			return nil, mismatch(tt, value)
		}
		tmp := names.New("entries")
		*sink = append(*sink, ir.Declare{
			Names: []string{tmp},
			Value: ir.NewContainer{Type: typ, Size: ir.Int(int64(len(entries)))},
		})
		for _, entry := range entries {
			k, err := c.element(sink, names, tt.Key, entry.Key)
			if err != nil {
				return nil, err
			}
			v, err := c.element(sink, names, tt.Value, entry.Value)
			if err != nil {
				return nil, err
			}
			*sink = append(*sink, ir.Add{Coll: ir.Ident{Name: tmp}, Type: typ, Key: k, Elem: v})
		}
		return ir.Ident{Name: tmp}, nil
	}
	return nil, mismatch(tt, value)
}

func (c *ConstantRenderer) element(sink *[]ir.Stmt, names *NameAllocator, t thrift.Type, value thrift.ConstValue) (ir.Expr, error) {
	if c.NeedsInitializer(t, value) {
		return c.expand(sink, names, t, value)
	}
	return c.RenderInline(t, value)
}

func (c *ConstantRenderer) renderRef(ref thrift.IdentValue) (ir.Expr, error) {
	if ref.Constant == nil {
		return nil, schemaErrorf("reference to an unresolved constant")
	}
	typ, err := c.types.Resolve(ref.Constant.Type)
	if err != nil {
		return nil, err
	}
	ns, err := c.types.namespace(&ref.Constant.Named)
	if err != nil {
		return nil, err
	}
	return ir.ConstRef{Name: ref.Constant.Name, Namespace: ns, Type: typ}, nil
}

func renderBase(base thrift.BaseType, typ *ir.Type, value thrift.ConstValue) (ir.Expr, error) {
	switch base {
	case thrift.Bool:
		switch v := value.(type) {
		case thrift.BoolValue:
			return ir.Lit{Type: typ, Value: bool(v)}, nil
		case thrift.IntValue:
			return ir.Lit{Type: typ, Value: v != 0}, nil
		}
	case thrift.Byte, thrift.I16, thrift.I32, thrift.I64:
		if v, ok := value.(thrift.IntValue); ok {
			if err := checkRange(base, int64(v)); err != nil {
				return nil, err
			}
			return ir.Lit{Type: typ, Value: int64(v)}, nil
		}
	case thrift.Double:
		switch v := value.(type) {
		case thrift.DoubleValue:
			return ir.Lit{Type: typ, Value: float64(v)}, nil
		case thrift.IntValue:
			return ir.Lit{Type: typ, Value: float64(v)}, nil
		}
	case thrift.String, thrift.Binary:
		if v, ok := value.(thrift.StringValue); ok {
			return ir.Lit{Type: typ, Value: string(v)}, nil
		}
	}
	return nil, mismatch(base, value)
}

func renderEnum(e *thrift.Enum, typ *ir.Type, value thrift.ConstValue) (ir.Expr, error) {
	switch v := value.(type) {
	case thrift.EnumValue:
		if v.Member == nil || v.Enum != e {
			return nil, mismatch(e, value)
		}
		return ir.EnumConst{Type: typ, Member: v.Member.Name}, nil
	case thrift.IntValue:
		if int64(int32(v)) == int64(v) {
			if m := e.MemberByValue(int32(v)); m != nil {
				return ir.EnumConst{Type: typ, Member: m.Name}, nil
			}
		}
		return nil, schemaErrorf("%d is not a value of enum %s", int64(v), e.Name)
	}
	return nil, mismatch(e, value)
}

func checkRange(base thrift.BaseType, v int64) error {
	var lo, hi int64
	switch base {
	case thrift.Byte:
		lo, hi = -1<<7, 1<<7-1
	case thrift.I16:
		lo, hi = -1<<15, 1<<15-1
	case thrift.I32:
		lo, hi = -1<<31, 1<<31-1
	default:
		return nil
	}
	if v < lo || v > hi {
		return schemaErrorf("constant %d overflows %s", v, base)
	}
	return nil
}

func isContainerValue(v thrift.ConstValue) bool {
	switch v.(type) {
	case thrift.ListValue, thrift.MapValue:
		return true
	}
	return false
}

func elemOf(t thrift.Type) thrift.Type {
	switch t := t.(type) {
	case *thrift.ListType:
		return t.Elem
	case *thrift.SetType:
		return t.Elem
	}
	return nil
}

func mismatch(t thrift.Type, value thrift.ConstValue) error {
	return schemaErrorf("constant value %s is not a valid %s", value, t)
}
