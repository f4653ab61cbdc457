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
	"io"
	"log/slog"
	"testing"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

const testNamespace = "geo"

func named(name string) thrift.Named {
	return thrift.Named{
		Name:       name,
		Namespaces: map[string]string{"go": testNamespace},
		Loc:        thrift.Location{Path: "geo.thrift", Line: 1},
	}
}

func field(id int16, name string, t thrift.Type, req thrift.Requiredness) *thrift.Field {
	return &thrift.Field{ID: id, Name: name, Type: t, Requiredness: req}
}

func newStruct(name string, kind thrift.StructKind, fields ...*thrift.Field) *thrift.Struct {
	return &thrift.Struct{Named: named(name), Kind: kind, Fields: fields}
}

func colorEnum() *thrift.Enum {
	return &thrift.Enum{Named: named("Color"), Members: []*thrift.EnumMember{
		{Name: "RED", Value: 1},
		{Name: "GREEN", Value: 2},
	}}
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Workers = 2
	return cfg
}

func newResolver(t *testing.T, cfg *Config) *TypeResolver {
	t.Helper()
	r, err := NewTypeResolver(cfg)
	if err != nil {
		t.Fatalf("NewTypeResolver: %v", err)
	}
	return r
}

func newStructEmitter(t *testing.T, cfg *Config) *StructEmitter {
	t.Helper()
	types := newResolver(t, cfg)
	return NewStructEmitter(cfg, types, NewConstantRenderer(types), nil)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var (
	boolT   = &ir.Type{Kind: ir.Bool, Thrift: "bool"}
	i32T    = &ir.Type{Kind: ir.I32, Thrift: "i32"}
	i64T    = &ir.Type{Kind: ir.I64, Thrift: "i64"}
	doubleT = &ir.Type{Kind: ir.Double, Thrift: "double"}
	stringT = &ir.Type{Kind: ir.String, Thrift: "string"}
	binaryT = &ir.Type{Kind: ir.Binary, Thrift: "binary"}
	colorT  = &ir.Type{Kind: ir.Enum, Name: "Color", Namespace: testNamespace, Thrift: "Color"}
)

func structT(name string) *ir.Type {
	return &ir.Type{Kind: ir.Struct, Name: name, Namespace: testNamespace, Thrift: name}
}

func ident(name string) ir.Ident { return ir.Ident{Name: name} }

func proto(op ir.ProtoOp, args ...ir.Expr) ir.Proto {
	return ir.Proto{Op: op, Recv: ident("p"), Args: args}
}
