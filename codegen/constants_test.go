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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

func TestRenderInline(t *testing.T) {
	color := colorEnum()
	limit := &thrift.Constant{Named: named("LIMIT"), Type: thrift.I32, Value: thrift.IntValue(10)}
	stringList := &thrift.ListType{Elem: thrift.String}

	tests := []struct {
		name  string
		typ   thrift.Type
		value thrift.ConstValue
		want  ir.Expr
	}{
		{"i32", thrift.I32, thrift.IntValue(5), ir.Lit{Type: i32T, Value: int64(5)}},
		{"bool", thrift.Bool, thrift.BoolValue(true), ir.Lit{Type: boolT, Value: true}},
		{"bool from int", thrift.Bool, thrift.IntValue(0), ir.Lit{Type: boolT, Value: false}},
		{"double from int", thrift.Double, thrift.IntValue(2), ir.Lit{Type: doubleT, Value: float64(2)}},
		{"string", thrift.String, thrift.StringValue("hi"), ir.Lit{Type: stringT, Value: "hi"}},
		{"binary", thrift.Binary, thrift.StringValue("raw"), ir.Lit{Type: binaryT, Value: "raw"}},
		{
			"enum member",
			color,
			thrift.EnumValue{Enum: color, Member: color.Members[1]},
			ir.EnumConst{Type: colorT, Member: "GREEN"},
		},
		{"enum by value", color, thrift.IntValue(1), ir.EnumConst{Type: colorT, Member: "RED"}},
		{
			"reference",
			thrift.I32,
			thrift.IdentValue{Constant: limit},
			ir.ConstRef{Name: "LIMIT", Namespace: testNamespace, Type: i32T},
		},
		{
			"empty list",
			stringList,
			thrift.ListValue{},
			ir.EmptyContainer{Type: &ir.Type{Kind: ir.List, Elem: stringT, Thrift: "list<string>"}},
		},
		{
			"empty map",
			&thrift.MapType{Key: thrift.String, Value: thrift.I32},
			thrift.MapValue{},
			ir.EmptyContainer{Type: &ir.Type{Kind: ir.Map, Key: stringT, Value: i32T, Thrift: "map<string,i32>"}},
		},
	}
	r := NewConstantRenderer(newResolver(t, testConfig()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderInline(tt.typ, tt.value)
			if err != nil {
				t.Fatalf("RenderInline: %v", err)
			}
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("RenderInline: mismatch (-want +got)\n%s", d)
			}
		})
	}
}

func TestRenderInlineErrors(t *testing.T) {
	color := colorEnum()
	r := NewConstantRenderer(newResolver(t, testConfig()))

	_, err := r.RenderInline(newStruct("Point", thrift.KindStruct), thrift.MapValue{})
	var ue *UnsupportedError
	if !errors.As(err, &ue) || ue.Feature != "Struct-type constants are not supported" {
		t.Errorf("struct constant error = %v, want UnsupportedError", err)
	}

	var se *SchemaError
	for _, tt := range []struct {
		name  string
		typ   thrift.Type
		value thrift.ConstValue
	}{
		{"unknown enum value", color, thrift.IntValue(3)},
		{"string for i32", thrift.I32, thrift.StringValue("x")},
		{"byte overflow", thrift.Byte, thrift.IntValue(300)},
		{"bool for map", &thrift.MapType{Key: thrift.I32, Value: thrift.I32}, thrift.BoolValue(true)},
	} {
		if _, err := r.RenderInline(tt.typ, tt.value); !errors.As(err, &se) {
			t.Errorf("%s: error = %v, want SchemaError", tt.name, err)
		}
	}
}

func TestGenerateInitializer(t *testing.T) {
	listT := &ir.Type{Kind: ir.List, Elem: stringT, Thrift: "list<string>"}
	target := ir.ConstRef{Name: "NAMES", Namespace: testNamespace, Type: listT}
	r := NewConstantRenderer(newResolver(t, testConfig()))

	var got []ir.Stmt
	err := r.GenerateInitializer(&got, NewNameAllocator(), target, &thrift.ListType{Elem: thrift.String},
		thrift.ListValue{thrift.StringValue("a"), thrift.StringValue("b"), thrift.StringValue("c")})
	if err != nil {
		t.Fatalf("GenerateInitializer: %v", err)
	}

	list := ident("list")
	want := []ir.Stmt{
		ir.Declare{Names: []string{"list"}, Value: ir.NewContainer{Type: listT, Size: ir.Int(3)}},
		ir.Add{Coll: list, Type: listT, Elem: ir.Lit{Type: stringT, Value: "a"}},
		ir.Add{Coll: list, Type: listT, Elem: ir.Lit{Type: stringT, Value: "b"}},
		ir.Add{Coll: list, Type: listT, Elem: ir.Lit{Type: stringT, Value: "c"}},
		ir.Assign{Target: target, Value: list},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("GenerateInitializer: mismatch (-want +got)\n%s", d)
	}
}

func TestGenerateInitializerNested(t *testing.T) {
	innerT := &ir.Type{Kind: ir.List, Elem: i32T, Thrift: "list<i32>"}
	mapT := &ir.Type{Kind: ir.Map, Key: stringT, Value: innerT, Thrift: "map<string,list<i32>>"}
	target := ident("out")
	names := NewNameAllocator("list")
	r := NewConstantRenderer(newResolver(t, testConfig()))

	var got []ir.Stmt
	err := r.GenerateInitializer(&got, names, target,
		&thrift.MapType{Key: thrift.String, Value: &thrift.ListType{Elem: thrift.I32}},
		thrift.MapValue{
			{Key: thrift.StringValue("odd"), Value: thrift.ListValue{thrift.IntValue(1), thrift.IntValue(3)}},
			{Key: thrift.StringValue("none"), Value: thrift.ListValue{}},
		})
	if err != nil {
		t.Fatalf("GenerateInitializer: %v", err)
	}

	entries, list1 := ident("entries"), ident("list1")
	want := []ir.Stmt{
		ir.Declare{Names: []string{"entries"}, Value: ir.NewContainer{Type: mapT, Size: ir.Int(2)}},
		ir.Declare{Names: []string{"list1"}, Value: ir.NewContainer{Type: innerT, Size: ir.Int(2)}},
		ir.Add{Coll: list1, Type: innerT, Elem: ir.Lit{Type: i32T, Value: int64(1)}},
		ir.Add{Coll: list1, Type: innerT, Elem: ir.Lit{Type: i32T, Value: int64(3)}},
		ir.Add{Coll: entries, Type: mapT, Key: ir.Lit{Type: stringT, Value: "odd"}, Elem: list1},
		ir.Add{Coll: entries, Type: mapT, Key: ir.Lit{Type: stringT, Value: "none"}, Elem: ir.EmptyContainer{Type: innerT}},
		ir.Assign{Target: target, Value: entries},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("GenerateInitializer: mismatch (-want +got)\n%s", d)
	}
}

func TestNameAllocator(t *testing.T) {
	a := NewNameAllocator("map", "err")
	got := []string{a.New("list"), a.New("list"), a.New("map"), a.New("list"), a.New("err")}
	want := []string{"list", "list1", "map1", "list2", "err1"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("New: mismatch (-want +got)\n%s", d)
	}
}
