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

	athrift "github.com/apache/thrift/lib/go/thrift"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

var baseKinds = map[thrift.BaseType]ir.Kind{
	thrift.Bool:   ir.Bool,
	thrift.Byte:   ir.Byte,
	thrift.I16:    ir.I16,
	thrift.I32:    ir.I32,
	thrift.I64:    ir.I64,
	thrift.Double: ir.Double,
	thrift.String: ir.String,
	thrift.Binary: ir.Binary,
}

var baseWireTypes = map[thrift.BaseType]athrift.TType{
	thrift.Bool:   athrift.BOOL,
	thrift.Byte:   athrift.BYTE,
	thrift.I16:    athrift.I16,
	thrift.I32:    athrift.I32,
	thrift.I64:    athrift.I64,
	thrift.Double: athrift.DOUBLE,
	thrift.String: athrift.STRING,
	thrift.Binary: athrift.STRING,
}

// TypeResolver maps schema types to target types. It is read-only after
// construction and may be shared between units.
type TypeResolver struct {
	scope      string
	containers containerBindings
}

// NewTypeResolver builds a resolver for cfg.
func NewTypeResolver(cfg *Config) (*TypeResolver, error) {
	containers, err := cfg.bindings()
	if err != nil {
		return nil, err
	}
	scope := cfg.NamespaceScope
	if scope == "" {
		scope = defaultNamespaceScope
	}
	return &TypeResolver{scope: scope, containers: containers}, nil
}

// Resolve maps t to its target representation. Typedefs are followed to
// their true type; the typedef name never becomes the representation.
func (r *TypeResolver) Resolve(t thrift.Type) (*ir.Type, error) {
	tt, err := trueType(t)
	if err != nil {
		return nil, err
	}
	switch tt := tt.(type) {
	case thrift.BaseType:
		kind, ok := baseKinds[tt]
		if !ok {
			return nil, schemaErrorf("unknown base type %s", tt)
		}
		return &ir.Type{Kind: kind, Thrift: tt.String()}, nil
	case *thrift.Enum:
		ns, err := r.namespace(&tt.Named)
		if err != nil {
			return nil, err
		}
		return &ir.Type{Kind: ir.Enum, Name: tt.Name, Namespace: ns, Thrift: tt.Name}, nil
	case *thrift.Struct:
		ns, err := r.namespace(&tt.Named)
		if err != nil {
			return nil, err
		}
		return &ir.Type{Kind: ir.Struct, Name: tt.Name, Namespace: ns, Thrift: tt.Name}, nil
	case *thrift.ListType:
		elem, err := r.Resolve(tt.Elem)
		if err != nil {
			return nil, err
		}
		return &ir.Type{Kind: ir.List, Binding: r.containers.list, Elem: elem, Thrift: tt.String()}, nil
	case *thrift.SetType:
		elem, err := r.Resolve(tt.Elem)
		if err != nil {
			return nil, err
		}
		if err := r.checkKey(elem, r.containers.set, "set element"); err != nil {
			return nil, err
		}
		return &ir.Type{Kind: ir.Set, Binding: r.containers.set, Elem: elem, Thrift: tt.String()}, nil
	case *thrift.MapType:
		key, err := r.Resolve(tt.Key)
		if err != nil {
			return nil, err
		}
		if err := r.checkKey(key, r.containers.mapping, "map key"); err != nil {
			return nil, err
		}
		value, err := r.Resolve(tt.Value)
		if err != nil {
			return nil, err
		}
		return &ir.Type{Kind: ir.Map, Binding: r.containers.mapping, Key: key, Value: value, Thrift: tt.String()}, nil
	default:
		return nil, schemaErrorf("unexpected type %T", tt)
	}
}

// ResolveService maps a service reference to its target type.
func (r *TypeResolver) ResolveService(s *thrift.Service) (*ir.Type, error) {
	ns, err := r.namespace(&s.Named)
	if err != nil {
		return nil, err
	}
	return &ir.Type{Kind: ir.Service, Name: s.Name, Namespace: ns, Thrift: s.Name}, nil
}

// WireType returns the binary protocol type code of t's true type. Enums
// travel as their 32-bit integer value.
func (r *TypeResolver) WireType(t thrift.Type) (athrift.TType, error) {
	tt, err := trueType(t)
	if err != nil {
		return athrift.STOP, err
	}
	switch tt := tt.(type) {
	case thrift.BaseType:
		code, ok := baseWireTypes[tt]
		if !ok {
			return athrift.STOP, schemaErrorf("unknown base type %s", tt)
		}
		return code, nil
	case *thrift.Enum:
		return athrift.I32, nil
	case *thrift.Struct:
		return athrift.STRUCT, nil
	case *thrift.ListType:
		return athrift.LIST, nil
	case *thrift.SetType:
		return athrift.SET, nil
	case *thrift.MapType:
		return athrift.MAP, nil
	default:
		return athrift.STOP, schemaErrorf("unexpected type %T", tt)
	}
}

func (r *TypeResolver) namespace(n *thrift.Named) (string, error) {
	ns := n.Namespace(r.scope)
	if ns == "" {
		return "", &ConfigError{
			Unit: n.Name,
			Loc:  n.Loc,
			Msg:  fmt.Sprintf("no %q namespace declared", r.scope),
		}
	}
	return ns, nil
}

// checkKey rejects key types the builtin hashed containers cannot hold by
// value. Bound containers are trusted to handle any key.
func (r *TypeResolver) checkKey(key *ir.Type, binding ir.Binding, role string) error {
	if !binding.IsZero() || key.IsScalar() {
		return nil
	}
	return &UnsupportedError{Feature: fmt.Sprintf("%s type %s cannot be hashed by value", role, key)}
}

func trueType(t thrift.Type) (thrift.Type, error) {
	if t == nil {
		return nil, &SchemaError{Err: thrift.ErrUnresolvedType}
	}
	tt, err := thrift.TrueType(t)
	if err != nil {
		return nil, &SchemaError{Err: err}
	}
	return tt, nil
}
