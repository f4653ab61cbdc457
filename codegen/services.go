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

// ServiceEmitter generates the interface shape of a service. Method bodies
// and client or server stubs are left to the transport.
type ServiceEmitter struct {
	types *TypeResolver
}

func NewServiceEmitter(types *TypeResolver) *ServiceEmitter {
	return &ServiceEmitter{types: types}
}

func (e *ServiceEmitter) Emit(svc *thrift.Service) (*ir.ServiceDecl, error) {
	decl := &ir.ServiceDecl{Name: svc.Name, Doc: svc.Doc}
	if svc.Extends != nil {
		base, err := e.types.ResolveService(svc.Extends)
		if err != nil {
			return nil, err
		}
		decl.Extends = base
	}

	seen := make(map[string]bool, len(svc.Methods))
	for _, m := range svc.Methods {
		if seen[m.Name] {
			return nil, schemaErrorf("method %s.%s is declared twice", svc.Name, m.Name)
		}
		seen[m.Name] = true

		md := &ir.MethodDecl{Name: m.Name, Doc: m.Doc, Oneway: m.Oneway}
		params, err := e.params(m.Params)
		if err != nil {
			return nil, err
		}
		md.Params = params
		if md.Throws, err = e.params(m.Throws); err != nil {
			return nil, err
		}
		if m.Result != nil {
			if m.Oneway {
				return nil, schemaErrorf("oneway method %s.%s cannot return a value", svc.Name, m.Name)
			}
			if md.Result, err = e.types.Resolve(m.Result); err != nil {
				return nil, err
			}
		}
		decl.Methods = append(decl.Methods, md)
	}
	return decl, nil
}

func (e *ServiceEmitter) params(fields []*thrift.Field) ([]*ir.ParamDecl, error) {
	params := make([]*ir.ParamDecl, 0, len(fields))
	for _, f := range fields {
		t, err := e.types.Resolve(f.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, &ir.ParamDecl{Name: f.Name, ID: f.ID, Type: t})
	}
	return params, nil
}
