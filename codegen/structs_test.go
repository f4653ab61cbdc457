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

func slotOf(recv, name string, t *ir.Type) ir.FieldRef {
	return ir.FieldRef{Recv: ident(recv), Name: name, Type: t}
}

func TestEmitPersonBuilder(t *testing.T) {
	tags := &thrift.ListType{Elem: thrift.String}
	person := newStruct("Person", thrift.KindStruct,
		field(1, "name", thrift.String, thrift.Required),
		field(2, "age", thrift.I32, thrift.Optional),
		field(3, "tags", tags, thrift.Required),
	)
	person.Fields[1].Default = thrift.IntValue(18)

	decl, err := newStructEmitter(t, testConfig()).Emit(person)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	tagsT := &ir.Type{Kind: ir.List, Elem: stringT, Thrift: "list<string>"}
	b := decl.Builder

	if b.Name != "PersonBuilder" || b.Recv != "b" {
		t.Errorf("builder = %s (recv %s), want PersonBuilder (recv b)", b.Name, b.Recv)
	}

	wantDefaults := []ir.Stmt{
		ir.Assign{Target: slotOf("b", "age", i32T), Value: ir.Box{X: ir.Lit{Type: i32T, Value: int64(18)}, Type: i32T}},
	}
	if d := cmp.Diff(wantDefaults, b.Defaults); d != "" {
		t.Errorf("Defaults: mismatch (-want +got)\n%s", d)
	}

	wantReset := []ir.Stmt{
		ir.Assign{Target: slotOf("b", "name", stringT), Value: ir.Null{Type: stringT}},
		ir.Assign{Target: slotOf("b", "age", i32T), Value: ir.Box{X: ir.Lit{Type: i32T, Value: int64(18)}, Type: i32T}},
		ir.Assign{Target: slotOf("b", "tags", tagsT), Value: ir.Null{Type: tagsT}},
	}
	if d := cmp.Diff(wantReset, b.Reset.Body); d != "" {
		t.Errorf("Reset: mismatch (-want +got)\n%s", d)
	}

	wantCopy := []ir.Stmt{
		ir.Assign{Target: slotOf("b", "name", stringT), Value: slotOf("src", "name", stringT)},
		ir.Assign{Target: slotOf("b", "age", i32T), Value: slotOf("src", "age", i32T)},
		ir.Assign{Target: slotOf("b", "tags", tagsT), Value: slotOf("src", "tags", tagsT)},
	}
	if d := cmp.Diff(wantCopy, b.CopyFrom); d != "" {
		t.Errorf("CopyFrom: mismatch (-want +got)\n%s", d)
	}

	// A required scalar setter has nothing to reject; a required list does.
	wantNameSetter := []ir.Stmt{
		ir.Assign{Target: slotOf("b", "name", stringT), Value: ir.Box{X: ident("value"), Type: stringT}},
		ir.Return{Values: []ir.Expr{ident("b")}},
	}
	if d := cmp.Diff(wantNameSetter, b.Setters[0].Body); d != "" {
		t.Errorf("name setter: mismatch (-want +got)\n%s", d)
	}
	wantTagsSetter := []ir.Stmt{
		ir.If{
			Cond: ir.IsNull{X: ident("value")},
			Then: []ir.Stmt{ir.Fail{Err: ir.NilArgument{Struct: "Person", Field: "tags"}}},
		},
		ir.Assign{Target: slotOf("b", "tags", tagsT), Value: ir.Box{X: ident("value"), Type: tagsT}},
		ir.Return{Values: []ir.Expr{ident("b")}},
	}
	if d := cmp.Diff(wantTagsSetter, b.Setters[2].Body); d != "" {
		t.Errorf("tags setter: mismatch (-want +got)\n%s", d)
	}

	wantBuild := []ir.Stmt{
		ir.If{
			Cond: ir.IsNull{X: slotOf("b", "name", stringT)},
			Then: []ir.Stmt{ir.Fail{Err: ir.MissingField{Struct: "Person", Field: "name"}}},
		},
		ir.If{
			Cond: ir.IsNull{X: slotOf("b", "tags", tagsT)},
			Then: []ir.Stmt{ir.Fail{Err: ir.MissingField{Struct: "Person", Field: "tags"}}},
		},
		ir.Return{Values: []ir.Expr{ir.NewValue{Type: structT("Person"), Fields: []ir.FieldInit{
			{Name: "name", Type: stringT, Value: slotOf("b", "name", stringT)},
			{Name: "age", Type: i32T, Value: slotOf("b", "age", i32T)},
			{Name: "tags", Type: tagsT, Value: ir.CopyOf{X: slotOf("b", "tags", tagsT), Type: tagsT}},
		}}}},
	}
	if d := cmp.Diff(wantBuild, b.Build.Body); d != "" {
		t.Errorf("Build: mismatch (-want +got)\n%s", d)
	}
	if !b.Build.Fallible {
		t.Error("Build is not fallible")
	}
}

func TestEmitUnionBuild(t *testing.T) {
	either := newStruct("Either", thrift.KindUnion,
		field(1, "left", thrift.String, thrift.Default),
		field(2, "right", thrift.I32, thrift.Required),
	)
	decl, err := newStructEmitter(t, testConfig()).Emit(either)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if decl.Kind != ir.StructUnion {
		t.Errorf("Kind = %v, want StructUnion", decl.Kind)
	}
	for _, f := range decl.Fields {
		if f.Required {
			t.Errorf("union field %s is required", f.Name)
		}
	}

	count := ident("setFields")
	want := []ir.Stmt{
		ir.Declare{Names: []string{"setFields"}, Value: ir.Int(0)},
		ir.If{Cond: ir.NotNull{X: slotOf("b", "left", stringT)}, Then: []ir.Stmt{ir.Incr{Target: count}}},
		ir.If{Cond: ir.NotNull{X: slotOf("b", "right", i32T)}, Then: []ir.Stmt{ir.Incr{Target: count}}},
		ir.If{
			Cond: ir.Compare{Op: ir.Ne, L: count, R: ir.Int(1)},
			Then: []ir.Stmt{ir.Fail{Err: ir.UnionCount{Struct: "Either", Count: count}}},
		},
	}
	got := decl.Builder.Build.Body[:len(want)]
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Build: mismatch (-want +got)\n%s", d)
	}
}

func TestEmitAnnotations(t *testing.T) {
	userID := &thrift.Typedef{Named: named("UserId"), Target: thrift.I64}
	account := newStruct("Account", thrift.KindStruct,
		field(1, "id", userID, thrift.Required),
		&thrift.Field{ID: 2, Name: "ssn", Type: thrift.String, Doc: "Tax number. @redacted"},
		&thrift.Field{ID: 3, Name: "email", Type: thrift.String, Obfuscated: true},
	)
	cfg := testConfig()
	cfg.EmitDefensiveAnnotations = true

	decl, err := newStructEmitter(t, cfg).Emit(account)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := [][]ir.Annotation{
		{
			{Name: AnnotationField, Args: []ir.Arg{{Key: "fieldId", Value: "1"}, {Key: "isRequired", Value: "true"}, {Key: "typedefName", Value: "UserId"}}},
			{Name: AnnotationNotNull},
		},
		{
			{Name: AnnotationField, Args: []ir.Arg{{Key: "fieldId", Value: "2"}, {Key: "isRequired", Value: "false"}}},
			{Name: AnnotationRedacted},
			{Name: AnnotationNullable},
		},
		{
			{Name: AnnotationField, Args: []ir.Arg{{Key: "fieldId", Value: "3"}, {Key: "isRequired", Value: "false"}}},
			{Name: AnnotationObfuscated},
			{Name: AnnotationNullable},
		},
	}
	var got [][]ir.Annotation
	for _, f := range decl.Fields {
		got = append(got, f.Annotations)
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Annotations: mismatch (-want +got)\n%s", d)
	}
	if !decl.DefensiveAnnotations || decl.SerializationHelpers {
		t.Errorf("flags = (%v, %v), want (true, false)", decl.DefensiveAnnotations, decl.SerializationHelpers)
	}
}

func TestEmitContainerDefault(t *testing.T) {
	listT := &ir.Type{Kind: ir.List, Elem: i32T, Thrift: "list<i32>"}
	st := newStruct("Window", thrift.KindStruct, field(1, "sizes", &thrift.ListType{Elem: thrift.I32}, thrift.Default))
	st.Fields[0].Default = thrift.ListValue{thrift.IntValue(1), thrift.IntValue(2)}

	decl, err := newStructEmitter(t, testConfig()).Emit(st)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	list := ident("list")
	want := []ir.Stmt{
		ir.Declare{Names: []string{"list"}, Value: ir.NewContainer{Type: listT, Size: ir.Int(2)}},
		ir.Add{Coll: list, Type: listT, Elem: ir.Lit{Type: i32T, Value: int64(1)}},
		ir.Add{Coll: list, Type: listT, Elem: ir.Lit{Type: i32T, Value: int64(2)}},
		ir.Assign{Target: slotOf("b", "sizes", listT), Value: list},
	}
	if d := cmp.Diff(want, decl.Builder.Defaults); d != "" {
		t.Errorf("Defaults: mismatch (-want +got)\n%s", d)
	}
	// Reset repeats the initializer with fresh temporaries.
	if got := decl.Builder.Reset.Body[0].(ir.Declare).Names[0]; got != "list1" {
		t.Errorf("Reset temporary = %s, want list1", got)
	}
}

func TestEmitRejectsDuplicateFields(t *testing.T) {
	tests := []struct {
		name string
		a, b *thrift.Field
		want string
	}{
		{"same id", field(1, "a", thrift.I32, thrift.Default), field(1, "b", thrift.I32, thrift.Default), "field id 1 of Dup is used by both a and b"},
		{"same name", field(1, "a", thrift.I32, thrift.Default), field(2, "a", thrift.I32, thrift.Default), "field name a is declared twice in Dup"},
		{"same identifier", field(1, "foo_bar", thrift.I32, thrift.Default), field(2, "fooBar", thrift.I32, thrift.Default), "fields foo_bar and fooBar of Dup both map to identifier FooBar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newStructEmitter(t, testConfig()).Emit(newStruct("Dup", thrift.KindStruct, tt.a, tt.b))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("Emit error = %v, want SchemaError", err)
			}
			if d := cmp.Diff(tt.want, se.Err.Error()); d != "" {
				t.Errorf("error: mismatch (-want +got)\n%s", d)
			}
		})
	}
}
