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
	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// EnumEmitter generates enum constants and the reverse value lookup.
type EnumEmitter struct {
	types    *TypeResolver
	reserved []string
}

func NewEnumEmitter(types *TypeResolver, reserved []string) *EnumEmitter {
	return &EnumEmitter{types: types, reserved: reserved}
}

// Emit generates the declaration for en. When several members share a
// value, the first declared one answers the lookup and the others are
// marked as aliases.
func (e *EnumEmitter) Emit(en *thrift.Enum) (*ir.EnumDecl, error) {
	typ, err := e.types.Resolve(en)
	if err != nil {
		return nil, err
	}
	names := NewNameAllocator(e.reserved...)
	value := ir.Ident{Name: names.New("value")}

	decl := &ir.EnumDecl{Name: en.Name, Doc: en.Doc}
	seenNames := make(map[string]bool, len(en.Members))
	seenValues := make(map[int32]bool, len(en.Members))
	var cases []ir.Case
	for _, m := range en.Members {
		if seenNames[m.Name] {
			return nil, schemaErrorf("enum member %s.%s is declared twice", en.Name, m.Name)
		}
		seenNames[m.Name] = true

		alias := seenValues[m.Value]
		decl.Members = append(decl.Members, &ir.EnumMemberDecl{Name: m.Name, Value: m.Value, Doc: m.Doc, Alias: alias})
		if alias {
			continue
		}
		seenValues[m.Value] = true
		cases = append(cases, ir.Case{
			Values: []ir.Expr{ir.Int(int64(m.Value))},
			Body:   []ir.Stmt{ir.Return{Values: []ir.Expr{ir.Found{X: ir.EnumConst{Type: typ, Member: m.Name}}}}},
		})
	}

	decl.Lookup = &ir.Func{
		Role:   ir.RoleFindByValue,
		Name:   "FindByValue",
		Params: []ir.Param{{Name: value.Name, Kind: ir.ParamWireInt}},
		Body: []ir.Stmt{ir.Switch{
			Tag:     value,
			Cases:   cases,
			Default: []ir.Stmt{ir.Return{Values: []ir.Expr{ir.NotFound{Type: typ}}}},
		}},
	}
	return decl, nil
}
