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

package generate

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/dave/jennifer/jen"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
)

var typeCodes = map[thrift.TType]string{
	thrift.STOP:   "STOP",
	thrift.BOOL:   "BOOL",
	thrift.BYTE:   "BYTE",
	thrift.DOUBLE: "DOUBLE",
	thrift.I16:    "I16",
	thrift.I32:    "I32",
	thrift.I64:    "I64",
	thrift.STRING: "STRING",
	thrift.STRUCT: "STRUCT",
	thrift.MAP:    "MAP",
	thrift.SET:    "SET",
	thrift.LIST:   "LIST",
}

func (g *goFile) stmts(list []ir.Stmt) []jen.Code {
	out := make([]jen.Code, 0, len(list))
	for _, s := range list {
		out = append(out, g.stmt(s))
	}
	return out
}

func idents(names []string) []jen.Code {
	ids := make([]jen.Code, 0, len(names))
	for _, n := range names {
		if n == "" {
			n = "_"
		}
		ids = append(ids, jen.Id(n))
	}
	return ids
}

// fail leaves the current routine with err.
func (g *goFile) fail(err jen.Code) *jen.Statement {
	switch {
	case !g.fallible:
		return jen.Panic(err)
	case g.results > 0:
		return jen.Return(jen.Nil(), err)
	default:
		return jen.Return(err)
	}
}

func (g *goFile) checkErr() *jen.Statement {
	return jen.If(jen.Err().Op("!=").Nil()).Block(g.fail(jen.Err()))
}

func (g *goFile) stmt(s ir.Stmt) jen.Code {
	switch s := s.(type) {
	case ir.Declare:
		switch {
		case s.Type == nil:
			return jen.List(idents(s.Names)...).Op(":=").Add(g.expr(s.Value))
		case s.Value == nil:
			return jen.Var().List(idents(s.Names)...).Add(g.typ(s.Type))
		default:
			return jen.Var().List(idents(s.Names)...).Add(g.typ(s.Type)).Op("=").Add(g.expr(s.Value))
		}
	case ir.Assign:
		return g.expr(s.Target).Op("=").Add(g.expr(s.Value))
	case ir.AssignOp:
		return g.expr(s.Target).Op(s.Op + "=").Add(g.expr(s.Value))
	case ir.Incr:
		return g.expr(s.Target).Op("++")
	case ir.If:
		st := jen.If(g.expr(s.Cond)).Block(g.stmts(s.Then)...)
		if len(s.Else) > 0 {
			st.Else().Block(g.stmts(s.Else)...)
		}
		return st
	case ir.Loop:
		return jen.For().Block(g.stmts(s.Body)...)
	case ir.Break:
		return jen.Break()
	case ir.Repeat:
		i := s.Index
		return jen.For(
			jen.Id(i).Op(":=").Lit(0),
			jen.Id(i).Op("<").Add(g.expr(s.Count)),
			jen.Id(i).Op("++"),
		).Block(g.stmts(s.Body)...)
	case ir.ForEach:
		var vars []jen.Code
		switch s.Type.Kind {
		case ir.List:
			vars = idents([]string{"", s.Value})
		case ir.Set:
			vars = idents([]string{s.Key})
		default:
			vars = idents([]string{s.Key, s.Value})
		}
		return jen.For(jen.List(vars...).Op(":=").Range().Add(g.expr(s.Coll))).Block(g.stmts(s.Body)...)
	case ir.Switch:
		cases := make([]jen.Code, 0, len(s.Cases)+1)
		for _, c := range s.Cases {
			vals := make([]jen.Code, 0, len(c.Values))
			for _, v := range c.Values {
				vals = append(vals, g.expr(v))
			}
			cases = append(cases, jen.Case(vals...).Block(g.stmts(c.Body)...))
		}
		if len(s.Default) > 0 {
			cases = append(cases, jen.Default().Block(g.stmts(s.Default)...))
		}
		return jen.Switch(g.expr(s.Tag)).Block(cases...)
	case ir.Return:
		var vals []jen.Code
		for _, v := range s.Values {
			switch v := v.(type) {
			case ir.Found:
				vals = append(vals, g.expr(v.X), jen.True())
			case ir.NotFound:
				vals = append(vals, jen.Lit(0), jen.False())
			default:
				vals = append(vals, g.expr(v))
			}
		}
		if g.fallible {
			vals = append(vals, jen.Nil())
		}
		return jen.Return(vals...)
	case ir.ReturnCall:
		return jen.Return(g.expr(s.Op))
	case ir.Do:
		return jen.If(jen.Err().Op(":=").Add(g.expr(s.Op)), jen.Err().Op("!=").Nil()).Block(g.fail(jen.Err()))
	case ir.Bind:
		discard := true
		for _, n := range s.Names {
			if n != "" {
				discard = false
			}
		}
		lhs := append(idents(s.Names), jen.Err())
		if discard {
			return jen.If(jen.List(lhs...).Op(":=").Add(g.expr(s.Op)), jen.Err().Op("!=").Nil()).Block(g.fail(jen.Err()))
		}
		return jen.List(lhs...).Op(":=").Add(g.expr(s.Op)).Line().Add(g.checkErr())
	case ir.Add:
		coll := g.expr(s.Coll)
		switch s.Type.Kind {
		case ir.List:
			return coll.Op("=").Append(g.expr(s.Coll), g.expr(s.Elem))
		case ir.Set:
			return coll.Index(g.expr(s.Elem)).Op("=").Struct().Values()
		default:
			return coll.Index(g.expr(s.Key)).Op("=").Add(g.expr(s.Elem))
		}
	case ir.SetField:
		return g.expr(s.Builder).Dot(setterName(s.Field)).Call(g.expr(s.Value))
	case ir.Fail:
		return g.fail(g.expr(s.Err))
	}
	panic(fmt.Sprintf("generate: unexpected statement %T", s))
}

func (g *goFile) exprs(list []ir.Expr) []jen.Code {
	out := make([]jen.Code, 0, len(list))
	for _, e := range list {
		out = append(out, g.expr(e))
	}
	return out
}

func (g *goFile) expr(e ir.Expr) *jen.Statement {
	switch e := e.(type) {
	case ir.Ident:
		return jen.Id(e.Name)
	case ir.FieldRef:
		return g.expr(e.Recv).Dot(fieldIdent(e.Name))
	case ir.Value:
		if e.Type.IsScalar() {
			return jen.Op("*").Add(g.expr(e.X))
		}
		return g.expr(e.X)
	case ir.Box:
		if e.Type.IsScalar() {
			return jen.Qual(runtimePkg, "Ptr").Call(g.expr(e.X))
		}
		return g.expr(e.X)
	case ir.IsNull:
		return g.expr(e.X).Op("==").Nil()
	case ir.NotNull:
		return g.expr(e.X).Op("!=").Nil()
	case ir.Lit:
		return g.lit(e)
	case ir.Null:
		return jen.Nil()
	case ir.EnumConst:
		return g.qual(e.Type, memberName(e.Type.Name, e.Member))
	case ir.ConstRef:
		return jen.Qual(g.e.ImportPath(e.Namespace), constName(e.Name))
	case ir.Compare:
		op := "=="
		if e.Op == ir.Ne {
			op = "!="
		}
		return g.expr(e.L).Op(op).Add(g.expr(e.R))
	case ir.Not:
		return jen.Op("!").Add(g.expr(e.X))
	case ir.And:
		if len(e.Terms) == 0 {
			return jen.True()
		}
		out := jen.Null()
		for i, t := range e.Terms {
			if i > 0 {
				out.Op("&&")
			}
			if _, ok := t.(ir.Or); ok {
				out.Parens(g.expr(t))
			} else {
				out.Add(g.expr(t))
			}
		}
		return out
	case ir.Or:
		out := jen.Null()
		for i, t := range e.Terms {
			if i > 0 {
				out.Op("||")
			}
			out.Add(g.expr(t))
		}
		return out
	case ir.TypeCode:
		return jen.Qual(thriftPkg, typeCodes[e.Code])
	case ir.Proto:
		if e.Op == ir.ReadBinary {
			return jen.Qual(runtimePkg, "ReadBinary").Call(jen.Id("ctx"), g.expr(e.Recv))
		}
		args := append([]jen.Code{jen.Id("ctx")}, g.exprs(e.Args)...)
		return g.expr(e.Recv).Dot(string(e.Op)).Call(args...)
	case ir.WriteStruct:
		return g.expr(e.X).Dot("Write").Call(jen.Id("ctx"), g.expr(e.Proto))
	case ir.ReadStruct:
		name := typeName(e.Type.Name)
		if e.Builder == nil {
			return g.qual(e.Type, "Read"+name).Call(jen.Id("ctx"), g.expr(e.Proto))
		}
		return g.qual(e.Type, "Read"+name+"With").Call(jen.Id("ctx"), g.expr(e.Proto), g.expr(e.Builder))
	case ir.NewBuilder:
		return g.qual(e.Type, "New"+typeName(e.Type.Name)+"Builder").Call()
	case ir.BuildCall:
		return g.expr(e.Builder).Dot("Build").Call()
	case ir.NewValue:
		dict := jen.Dict{}
		for _, f := range e.Fields {
			dict[jen.Id(fieldIdent(f.Name))] = g.expr(f.Value)
		}
		return jen.Op("&").Add(g.qual(e.Type, typeName(e.Type.Name))).Values(dict)
	case ir.NewContainer:
		size := jen.Code(jen.Lit(0))
		if e.Size != nil {
			size = g.expr(e.Size)
		}
		if e.Type.Kind == ir.List {
			return jen.Make(g.typ(e.Type), jen.Lit(0), size)
		}
		return jen.Make(g.typ(e.Type), size)
	case ir.EmptyContainer:
		return g.typ(e.Type).Values()
	case ir.CopyOf:
		return jen.Qual(runtimePkg, "Clone").Call(g.expr(e.X))
	case ir.Len:
		return jen.Len(g.expr(e.X))
	case ir.EnumLookup:
		return g.qual(e.Type, "Find"+typeName(e.Type.Name)+"ByValue").Call(g.expr(e.Raw))
	case ir.EnumWire:
		return jen.Int32().Call(g.expr(e.X))
	case ir.Equals:
		return g.equals(e)
	case ir.HashOf:
		return jen.Qual(runtimePkg, "Hash").Call(g.expr(e.X))
	case ir.Stringify:
		return jen.Qual(runtimePkg, "Format").Call(g.expr(e.X))
	case ir.Concat:
		out := jen.Null()
		for i, p := range e.Parts {
			if i > 0 {
				out.Op("+")
			}
			out.Add(g.expr(p))
		}
		return out
	case ir.Digest:
		return jen.Qual(runtimePkg, "ObfuscateHash").Call(g.expr(e.X))
	case ir.Summary:
		args := []jen.Code{g.expr(e.X)}
		if e.Container == "Map" {
			for _, el := range e.Elems {
				args = append(args, jen.Lit(el))
			}
			return jen.Qual(runtimePkg, "SummarizeMap").Call(args...)
		}
		args = append(args, jen.Lit(e.Container))
		for _, el := range e.Elems {
			args = append(args, jen.Lit(el))
		}
		return jen.Qual(runtimePkg, "SummarizeCollection").Call(args...)
	case ir.Found:
		return g.expr(e.X)
	case ir.MissingField:
		return jen.Op("&").Qual(runtimePkg, "MissingFieldError").Values(jen.Dict{
			jen.Id("Struct"): jen.Lit(e.Struct),
			jen.Id("Field"):  jen.Lit(e.Field),
		})
	case ir.UnionCount:
		return jen.Op("&").Qual(runtimePkg, "UnionFieldCountError").Values(jen.Dict{
			jen.Id("Union"): jen.Lit(e.Struct),
			jen.Id("Count"): g.expr(e.Count),
		})
	case ir.NilArgument:
		return jen.Op("&").Qual(runtimePkg, "PreconditionError").Values(jen.Dict{
			jen.Id("Struct"): jen.Lit(e.Struct),
			jen.Id("Field"):  jen.Lit(e.Field),
		})
	case ir.UnknownEnum:
		return jen.Qual(runtimePkg, "UnknownEnum").Call(jen.Lit(e.Enum), g.expr(e.Value))
	}
	panic(fmt.Sprintf("generate: unexpected expression %T", e))
}

func (g *goFile) lit(l ir.Lit) *jen.Statement {
	if l.Type == nil {
		return jen.Lit(int(l.Value.(int64)))
	}
	switch l.Type.Kind {
	case ir.Byte:
		return jen.Lit(int8(l.Value.(int64)))
	case ir.I16:
		return jen.Lit(int16(l.Value.(int64)))
	case ir.I32:
		return jen.Lit(int32(l.Value.(int64)))
	case ir.I64:
		return jen.Lit(l.Value.(int64))
	case ir.Double:
		return jen.Lit(l.Value.(float64))
	case ir.Binary:
		return jen.Index().Byte().Call(jen.Lit(l.Value.(string)))
	case ir.HashCode:
		return jen.Lit(uint32(l.Value.(int64)))
	}
	return jen.Lit(l.Value)
}

// equals compares two slots. Scalar slots are pointers; every other slot
// holds its value directly and nil stands for unset.
func (g *goFile) equals(e ir.Equals) *jen.Statement {
	a, b := g.expr(e.A), g.expr(e.B)
	switch {
	case e.Type.Kind == ir.Double:
		return jen.Qual(runtimePkg, "PtrFloatEqual").Call(a, b)
	case e.Type.IsScalar():
		return jen.Qual(runtimePkg, "PtrEqual").Call(a, b)
	case e.Type.Kind == ir.Struct || !e.Nullable:
		return g.eq(a, b, e.Type)
	}
	return jen.Parens(g.expr(e.A).Op("==").Nil()).Op("==").Parens(g.expr(e.B).Op("==").Nil()).
		Op("&&").Add(g.eq(a, b, e.Type))
}

// eq compares two plain values of type t.
func (g *goFile) eq(a, b *jen.Statement, t *ir.Type) *jen.Statement {
	switch t.Kind {
	case ir.Double:
		return jen.Qual(runtimePkg, "FloatEqual").Call(a, b)
	case ir.Binary:
		return jen.Qual("bytes", "Equal").Call(a, b)
	case ir.Struct:
		return a.Dot("Equal").Call(b)
	case ir.List:
		if t.Elem.IsScalar() && t.Elem.Kind != ir.Double {
			return jen.Qual("slices", "Equal").Call(a, b)
		}
		return jen.Qual("slices", "EqualFunc").Call(a, b, g.eqFunc(t.Elem))
	case ir.Set:
		return jen.Qual("maps", "Equal").Call(a, b)
	case ir.Map:
		if t.Value.IsScalar() && t.Value.Kind != ir.Double {
			return jen.Qual("maps", "Equal").Call(a, b)
		}
		return jen.Qual("maps", "EqualFunc").Call(a, b, g.eqFunc(t.Value))
	}
	return a.Op("==").Add(b)
}

func (g *goFile) eqFunc(t *ir.Type) *jen.Statement {
	if t.Kind == ir.Double {
		return jen.Qual(runtimePkg, "FloatEqual")
	}
	return jen.Func().Params(jen.List(jen.Id("x"), jen.Id("y")).Add(g.typ(t))).Bool().Block(
		jen.Return(g.eq(jen.Id("x"), jen.Id("y"), t)),
	)
}
