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
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

func TestEmitEnum(t *testing.T) {
	en := colorEnum()
	en.Members = append(en.Members, &thrift.EnumMember{Name: "CRIMSON", Value: 1})

	decl, err := NewEnumEmitter(newResolver(t, testConfig()), nil).Emit(en)
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}

	wantMembers := []*ir.EnumMemberDecl{
		{Name: "RED", Value: 1},
		{Name: "GREEN", Value: 2},
		{Name: "CRIMSON", Value: 1, Alias: true},
	}
	if d := cmp.Diff(wantMembers, decl.Members); d != "" {
		t.Errorf("Members: mismatch (-want +got)\n%s", d)
	}

	found := func(member string) []ir.Stmt {
		return []ir.Stmt{ir.Return{Values: []ir.Expr{ir.Found{X: ir.EnumConst{Type: colorT, Member: member}}}}}
	}
	wantLookup := []ir.Stmt{ir.Switch{
		Tag: ident("value"),
		Cases: []ir.Case{
			{Values: []ir.Expr{ir.Int(1)}, Body: found("RED")},
			{Values: []ir.Expr{ir.Int(2)}, Body: found("GREEN")},
		},
		Default: []ir.Stmt{ir.Return{Values: []ir.Expr{ir.NotFound{Type: colorT}}}},
	}}
	if d := cmp.Diff(wantLookup, decl.Lookup.Body); d != "" {
		t.Errorf("Lookup: mismatch (-want +got)\n%s", d)
	}
	if decl.Lookup.Fallible {
		t.Error("Lookup is fallible, want a total function")
	}
}

func TestEmitEmptyEnum(t *testing.T) {
	decl, err := NewEnumEmitter(newResolver(t, testConfig()), nil).Emit(&thrift.Enum{Named: named("Nothing")})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	sw := decl.Lookup.Body[0].(ir.Switch)
	if len(sw.Cases) != 0 || len(sw.Default) != 1 {
		t.Errorf("Lookup switch = %+v, want only a default branch", sw)
	}
}
