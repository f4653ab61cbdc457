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

func TestEmitService(t *testing.T) {
	base := &thrift.Service{Named: named("Base")}
	overflow := newStruct("Overflow", thrift.KindException)
	calc := &thrift.Service{
		Named:   named("Calculator"),
		Extends: base,
		Methods: []*thrift.Method{
			{
				Name:   "add",
				Params: []*thrift.Field{field(1, "a", thrift.I32, thrift.Default), field(2, "b", thrift.I32, thrift.Default)},
				Result: thrift.I64,
				Throws: []*thrift.Field{field(1, "overflow", overflow, thrift.Default)},
			},
			{Name: "ping", Oneway: true},
		},
	}

	decl, err := NewServiceEmitter(newResolver(t, testConfig())).Emit(calc)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	want := &ir.ServiceDecl{
		Name:    "Calculator",
		Extends: &ir.Type{Kind: ir.Service, Name: "Base", Namespace: testNamespace, Thrift: "Base"},
		Methods: []*ir.MethodDecl{
			{
				Name:   "add",
				Params: []*ir.ParamDecl{{Name: "a", ID: 1, Type: i32T}, {Name: "b", ID: 2, Type: i32T}},
				Result: i64T,
				Throws: []*ir.ParamDecl{{Name: "overflow", ID: 1, Type: structT("Overflow")}},
			},
			{Name: "ping", Oneway: true, Params: []*ir.ParamDecl{}, Throws: []*ir.ParamDecl{}},
		},
	}
	if d := cmp.Diff(want, decl); d != "" {
		t.Errorf("Emit: mismatch (-want +got)\n%s", d)
	}
}

func TestEmitServiceOnewayResult(t *testing.T) {
	svc := &thrift.Service{Named: named("Bad"), Methods: []*thrift.Method{{Name: "fire", Oneway: true, Result: thrift.I32}}}
	_, err := NewServiceEmitter(newResolver(t, testConfig())).Emit(svc)
	var se *SchemaError
	if !errors.As(err, &se) {
		t.Errorf("Emit error = %v, want SchemaError", err)
	}
}
