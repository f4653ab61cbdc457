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
	athrift "github.com/apache/thrift/lib/go/thrift"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

var writeOps = map[thrift.BaseType]ir.ProtoOp{
	thrift.Bool:   ir.WriteBool,
	thrift.Byte:   ir.WriteByte,
	thrift.I16:    ir.WriteI16,
	thrift.I32:    ir.WriteI32,
	thrift.I64:    ir.WriteI64,
	thrift.Double: ir.WriteDouble,
	thrift.String: ir.WriteString,
	thrift.Binary: ir.WriteBinary,
}

var readOps = map[thrift.BaseType]ir.ProtoOp{
	thrift.Bool:   ir.ReadBool,
	thrift.Byte:   ir.ReadByte,
	thrift.I16:    ir.ReadI16,
	thrift.I32:    ir.ReadI32,
	thrift.I64:    ir.ReadI64,
	thrift.Double: ir.ReadDouble,
	thrift.String: ir.ReadString,
	thrift.Binary: ir.ReadBinary,
}

// ProtocolCodec generates the write and read routines of a struct. Both are
// derived from the same ordered field list so they stay mirror images.
type ProtocolCodec struct {
	types *TypeResolver
}

func call(p string, op ir.ProtoOp, args ...ir.Expr) ir.Proto {
	return ir.Proto{Op: op, Recv: ir.Ident{Name: p}, Args: args}
}

func (c *ProtocolCodec) write(u *structUnit) (*ir.Func, error) {
	body := []ir.Stmt{ir.Do{Op: call(u.proto, ir.WriteStructBegin, ir.Str(u.st.Name))}}
	for _, f := range u.fields {
		code, err := c.types.WireType(f.f.Type)
		if err != nil {
			return nil, err
		}
		slot := u.slot(u.recv, f)
		stmts := []ir.Stmt{
			ir.Do{Op: call(u.proto, ir.WriteFieldBegin, ir.Str(f.f.Name), ir.TypeCode{Code: code}, ir.Int(int64(f.f.ID)))},
		}
		if err := c.writeValue(&stmts, u, f.f.Type, ir.Value{X: slot, Type: f.typ}); err != nil {
			return nil, err
		}
		stmts = append(stmts, ir.Do{Op: call(u.proto, ir.WriteFieldEnd)})

		if f.required {
			body = append(body, stmts...)
		} else {
			body = append(body, ir.If{Cond: ir.NotNull{X: slot}, Then: stmts})
		}
	}
	body = append(body,
		ir.Do{Op: call(u.proto, ir.WriteFieldStop)},
		ir.Do{Op: call(u.proto, ir.WriteStructEnd)},
		ir.Return{},
	)
	return &ir.Func{
		Role:     ir.RoleWrite,
		Name:     "Write",
		Recv:     u.recv,
		Params:   []ir.Param{{Name: u.proto, Kind: ir.ParamProtocol}},
		Fallible: true,
		Body:     body,
	}, nil
}

// writeValue appends the statements writing plain value v of type t.
func (c *ProtocolCodec) writeValue(sink *[]ir.Stmt, u *structUnit, t thrift.Type, v ir.Expr) error {
	tt, err := trueType(t)
	if err != nil {
		return err
	}
	switch tt := tt.(type) {
	case thrift.BaseType:
		*sink = append(*sink, ir.Do{Op: call(u.proto, writeOps[tt], v)})
	case *thrift.Enum:
		*sink = append(*sink, ir.Do{Op: call(u.proto, ir.WriteI32, ir.EnumWire{X: v})})
	case *thrift.Struct:
		*sink = append(*sink, ir.Do{Op: ir.WriteStruct{X: v, Proto: ir.Ident{Name: u.proto}}})
	case *thrift.ListType, *thrift.SetType:
		typ, err := c.types.Resolve(tt)
		if err != nil {
			return err
		}
		elem := elemOf(tt)
		code, err := c.types.WireType(elem)
		if err != nil {
			return err
		}
		begin, end := ir.WriteListBegin, ir.WriteListEnd
		if typ.Kind == ir.Set {
			begin, end = ir.WriteSetBegin, ir.WriteSetEnd
		}
		*sink = append(*sink, ir.Do{Op: call(u.proto, begin, ir.TypeCode{Code: code}, ir.Len{X: v})})

		item := u.names.New("item")
		var body []ir.Stmt
		if err := c.writeValue(&body, u, elem, ir.Ident{Name: item}); err != nil {
			return err
		}
		loop := ir.ForEach{Coll: v, Type: typ, Body: body}
		if typ.Kind == ir.Set {
			loop.Key = item
		} else {
			loop.Value = item
		}
		*sink = append(*sink, loop, ir.Do{Op: call(u.proto, end)})
	case *thrift.MapType:
		typ, err := c.types.Resolve(tt)
		if err != nil {
			return err
		}
		kcode, err := c.types.WireType(tt.Key)
		if err != nil {
			return err
		}
		vcode, err := c.types.WireType(tt.Value)
		if err != nil {
			return err
		}
		*sink = append(*sink, ir.Do{Op: call(u.proto, ir.WriteMapBegin, ir.TypeCode{Code: kcode}, ir.TypeCode{Code: vcode}, ir.Len{X: v})})

		key, val := u.names.New("key"), u.names.New("val")
		var body []ir.Stmt
		if err := c.writeValue(&body, u, tt.Key, ir.Ident{Name: key}); err != nil {
			return err
		}
		if err := c.writeValue(&body, u, tt.Value, ir.Ident{Name: val}); err != nil {
			return err
		}
		*sink = append(*sink,
			ir.ForEach{Key: key, Value: val, Coll: v, Type: typ, Body: body},
			ir.Do{Op: call(u.proto, ir.WriteMapEnd)},
		)
	default:
		return schemaErrorf("unexpected type %T", tt)
	}
	return nil
}

func (c *ProtocolCodec) read(u *structUnit) (readWith, read *ir.Func, err error) {
	fieldType := ir.Ident{Name: u.names.New("fieldType")}
	fieldID := ir.Ident{Name: u.names.New("fieldID")}
	skip := ir.Do{Op: call(u.proto, ir.Skip, fieldType)}

	cases := make([]ir.Case, 0, len(u.fields))
	for _, f := range u.fields {
		code, err := c.types.WireType(f.f.Type)
		if err != nil {
			return nil, nil, err
		}
		var stmts []ir.Stmt
		v, err := c.readValue(&stmts, u, f.f.Type)
		if err != nil {
			return nil, nil, err
		}
		stmts = append(stmts, ir.SetField{Builder: ir.Ident{Name: u.builder}, Field: f.decl.Name, Value: v})
		cases = append(cases, ir.Case{
			Values: []ir.Expr{ir.Int(int64(f.f.ID))},
			Body: []ir.Stmt{ir.If{
				Cond: ir.Compare{Op: ir.Eq, L: fieldType, R: ir.TypeCode{Code: code}},
				Then: stmts,
				Else: []ir.Stmt{skip},
			}},
		})
	}

	// Without known fields the id is never looked at.
	header := ir.Bind{Names: []string{"", fieldType.Name, ""}, Op: call(u.proto, ir.ReadFieldBegin)}
	if len(cases) > 0 {
		header.Names[2] = fieldID.Name
	}
	loop := []ir.Stmt{
		header,
		ir.If{Cond: ir.Compare{Op: ir.Eq, L: fieldType, R: ir.TypeCode{Code: athrift.STOP}}, Then: []ir.Stmt{ir.Break{}}},
	}
	if len(cases) == 0 {
		loop = append(loop, skip)
	} else {
		loop = append(loop, ir.Switch{Tag: fieldID, Cases: cases, Default: []ir.Stmt{skip}})
	}
	loop = append(loop, ir.Do{Op: call(u.proto, ir.ReadFieldEnd)})

	readWith = &ir.Func{
		Role: ir.RoleReadWith,
		Name: "Read",
		Params: []ir.Param{
			{Name: u.proto, Kind: ir.ParamProtocol},
			{Name: u.builder, Kind: ir.ParamBuilder, Type: u.typ},
		},
		Fallible: true,
		Body: []ir.Stmt{
			ir.Bind{Names: []string{""}, Op: call(u.proto, ir.ReadStructBegin)},
			ir.Loop{Body: loop},
			ir.Do{Op: call(u.proto, ir.ReadStructEnd)},
			ir.ReturnCall{Op: ir.BuildCall{Builder: ir.Ident{Name: u.builder}}},
		},
	}
	read = &ir.Func{
		Role:     ir.RoleRead,
		Name:     "Read",
		Params:   []ir.Param{{Name: u.proto, Kind: ir.ParamProtocol}},
		Fallible: true,
		Body: []ir.Stmt{ir.ReturnCall{Op: ir.ReadStruct{
			Type:    u.typ,
			Proto:   ir.Ident{Name: u.proto},
			Builder: ir.NewBuilder{Type: u.typ},
		}}},
	}
	return readWith, read, nil
}

// readValue appends the statements reading one value of type t and returns
// the expression holding it.
func (c *ProtocolCodec) readValue(sink *[]ir.Stmt, u *structUnit, t thrift.Type) (ir.Expr, error) {
	tt, err := trueType(t)
	if err != nil {
		return nil, err
	}
	typ, err := c.types.Resolve(tt)
	if err != nil {
		return nil, err
	}

	switch tt := tt.(type) {
	case thrift.BaseType:
		v := u.names.New("v")
		*sink = append(*sink, ir.Bind{Names: []string{v}, Op: call(u.proto, readOps[tt])})
		return ir.Ident{Name: v}, nil
	case *thrift.Enum:
		raw, member, ok := u.names.New("v"), u.names.New("e"), u.names.New("ok")
		*sink = append(*sink,
			ir.Bind{Names: []string{raw}, Op: call(u.proto, ir.ReadI32)},
			ir.Declare{Names: []string{member, ok}, Value: ir.EnumLookup{Type: typ, Raw: ir.Ident{Name: raw}}},
			ir.If{
				Cond: ir.Not{X: ir.Ident{Name: ok}},
				Then: []ir.Stmt{ir.Fail{Err: ir.UnknownEnum{Enum: tt.Name, Value: ir.Ident{Name: raw}}}},
			},
		)
		return ir.Ident{Name: member}, nil
	case *thrift.Struct:
		v := u.names.New("v")
		*sink = append(*sink, ir.Bind{Names: []string{v}, Op: ir.ReadStruct{Type: typ, Proto: ir.Ident{Name: u.proto}}})
		return ir.Ident{Name: v}, nil
	case *thrift.ListType, *thrift.SetType:
		begin, end := ir.ReadListBegin, ir.ReadListEnd
		if typ.Kind == ir.Set {
			begin, end = ir.ReadSetBegin, ir.ReadSetEnd
		}
		size := u.names.New("size")
		coll := u.names.New(typ.Kind.String())
		*sink = append(*sink,
			ir.Bind{Names: []string{"", size}, Op: call(u.proto, begin)},
			ir.Declare{Names: []string{coll}, Value: ir.NewContainer{Type: typ, Size: ir.Ident{Name: size}}},
		)
		var body []ir.Stmt
		elem, err := c.readValue(&body, u, elemOf(tt))
		if err != nil {
			return nil, err
		}
		body = append(body, ir.Add{Coll: ir.Ident{Name: coll}, Type: typ, Elem: elem})
		*sink = append(*sink,
			ir.Repeat{Index: u.names.New("i"), Count: ir.Ident{Name: size}, Body: body},
			ir.Do{Op: call(u.proto, end)},
		)
		return ir.Ident{Name: coll}, nil
	case *thrift.MapType:
		size := u.names.New("size")
		coll := u.names.New("entries")
		*sink = append(*sink,
			ir.Bind{Names: []string{"", "", size}, Op: call(u.proto, ir.ReadMapBegin)},
			ir.Declare{Names: []string{coll}, Value: ir.NewContainer{Type: typ, Size: ir.Ident{Name: size}}},
		)
		var body []ir.Stmt
		key, err := c.readValue(&body, u, tt.Key)
		if err != nil {
			return nil, err
		}
		val, err := c.readValue(&body, u, tt.Value)
		if err != nil {
			return nil, err
		}
		body = append(body, ir.Add{Coll: ir.Ident{Name: coll}, Type: typ, Key: key, Elem: val})
		*sink = append(*sink,
			ir.Repeat{Index: u.names.New("i"), Count: ir.Ident{Name: size}, Body: body},
			ir.Do{Op: call(u.proto, ir.ReadMapEnd)},
		)
		return ir.Ident{Name: coll}, nil
	}
	return nil, schemaErrorf("unexpected type %T", tt)
}
