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
	"strconv"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
	"github.com/hertz-contrib/swagger-generate/thriftgen/utils"
)

// Annotation names attached to generated fields.
const (
	AnnotationField      = "ThriftField"
	AnnotationRedacted   = "Redacted"
	AnnotationObfuscated = "Obfuscated"
	AnnotationNotNull    = "NotNull"
	AnnotationNullable   = "Nullable"
)

// StructEmitter generates the value type of a struct, union or exception
// together with its builder, value-semantics methods and protocol codec.
type StructEmitter struct {
	cfg      *Config
	types    *TypeResolver
	consts   *ConstantRenderer
	codec    *ProtocolCodec
	reserved []string
}

// NewStructEmitter returns an emitter. Locals it introduces never collide
// with reserved.
func NewStructEmitter(cfg *Config, types *TypeResolver, consts *ConstantRenderer, reserved []string) *StructEmitter {
	return &StructEmitter{
		cfg:      cfg,
		types:    types,
		consts:   consts,
		codec:    &ProtocolCodec{types: types},
		reserved: reserved,
	}
}

// structUnit is the state of one struct emission.
type structUnit struct {
	st     *thrift.Struct
	typ    *ir.Type
	names  *NameAllocator
	fields []*unitField

	recv    string // value receiver
	builder string // builder receiver and parameter
	proto   string
	other   string
	value   string
	src     string
}

type unitField struct {
	f        *thrift.Field
	decl     *ir.FieldDecl
	typ      *ir.Type
	required bool
}

func (u *structUnit) slot(recv string, f *unitField) ir.FieldRef {
	return ir.FieldRef{Recv: ir.Ident{Name: recv}, Name: f.decl.Name, Type: f.typ}
}

// Emit generates the declaration for st.
func (e *StructEmitter) Emit(st *thrift.Struct) (*ir.StructDecl, error) {
	if err := checkFields(st); err != nil {
		return nil, err
	}
	typ, err := e.types.Resolve(st)
	if err != nil {
		return nil, err
	}

	names := NewNameAllocator(e.reserved...)
	u := &structUnit{
		st:      st,
		typ:     typ,
		names:   names,
		recv:    names.New("s"),
		builder: names.New("b"),
		proto:   names.New("p"),
		other:   names.New("other"),
		value:   names.New("value"),
		src:     names.New("src"),
	}

	decl := &ir.StructDecl{
		Name:                 st.Name,
		Doc:                  st.Doc,
		Kind:                 structKind(st.Kind),
		SerializationHelpers: e.cfg.EmitSerializationHelpers,
		DefensiveAnnotations: e.cfg.EmitDefensiveAnnotations,
	}
	for _, f := range st.Fields {
		ft, err := e.types.Resolve(f.Type)
		if err != nil {
			return nil, err
		}
		// Union members are never individually required; Build checks
		// the count instead.
		required := f.IsRequired() && !st.IsUnion()
		fd := &ir.FieldDecl{
			Name:        f.Name,
			ID:          f.ID,
			Type:        ft,
			Required:    required,
			Doc:         f.Doc,
			Annotations: e.annotations(f, required),
		}
		decl.Fields = append(decl.Fields, fd)
		u.fields = append(u.fields, &unitField{f: f, decl: fd, typ: ft, required: required})
	}

	if decl.Builder, err = e.builder(u); err != nil {
		return nil, err
	}

	write, err := e.codec.write(u)
	if err != nil {
		return nil, err
	}
	decl.Methods = []*ir.Func{equal(u), hashCode(u), toString(u), write}

	readWith, read, err := e.codec.read(u)
	if err != nil {
		return nil, err
	}
	decl.Funcs = []*ir.Func{readWith, read}
	return decl, nil
}

func (e *StructEmitter) annotations(f *thrift.Field, required bool) []ir.Annotation {
	field := ir.Annotation{Name: AnnotationField, Args: []ir.Arg{
		{Key: "fieldId", Value: strconv.Itoa(int(f.ID))},
		{Key: "isRequired", Value: strconv.FormatBool(required)},
	}}
	if td := f.TypedefName(); td != "" {
		field.Args = append(field.Args, ir.Arg{Key: "typedefName", Value: td})
	}
	anns := []ir.Annotation{field}
	switch {
	case f.IsRedacted():
		anns = append(anns, ir.Annotation{Name: AnnotationRedacted})
	case f.IsObfuscated():
		anns = append(anns, ir.Annotation{Name: AnnotationObfuscated})
	}
	if e.cfg.EmitDefensiveAnnotations {
		if required {
			anns = append(anns, ir.Annotation{Name: AnnotationNotNull})
		} else {
			anns = append(anns, ir.Annotation{Name: AnnotationNullable})
		}
	}
	return anns
}

func (e *StructEmitter) builder(u *structUnit) (*ir.BuilderDecl, error) {
	b := &ir.BuilderDecl{
		Name:       u.st.Name + "Builder",
		Recv:       u.builder,
		CopySource: u.src,
	}
	var reset []ir.Stmt
	for _, f := range u.fields {
		slot := u.slot(u.builder, f)
		defaults, err := e.defaults(u, f, slot)
		if err != nil {
			return nil, err
		}
		b.Defaults = append(b.Defaults, defaults...)
		b.CopyFrom = append(b.CopyFrom, ir.Assign{Target: slot, Value: u.slot(u.src, f)})

		if f.f.Default == nil {
			reset = append(reset, ir.Assign{Target: slot, Value: ir.Null{Type: f.typ}})
		} else {
			again, err := e.defaults(u, f, slot)
			if err != nil {
				return nil, err
			}
			reset = append(reset, again...)
		}
		b.Setters = append(b.Setters, setter(u, f))
	}
	b.Reset = &ir.Func{Role: ir.RoleReset, Name: "Reset", Recv: u.builder, Body: reset}
	b.Build = build(u)
	return b, nil
}

// defaults initializes slot from the field's default value, if any.
func (e *StructEmitter) defaults(u *structUnit, f *unitField, slot ir.FieldRef) ([]ir.Stmt, error) {
	if f.f.Default == nil {
		return nil, nil
	}
	var sink []ir.Stmt
	if e.consts.NeedsInitializer(f.f.Type, f.f.Default) {
		err := e.consts.GenerateInitializer(&sink, u.names, slot, f.f.Type, f.f.Default)
		return sink, err
	}
	expr, err := e.consts.RenderInline(f.f.Type, f.f.Default)
	if err != nil {
		return nil, err
	}
	return []ir.Stmt{ir.Assign{Target: slot, Value: ir.Box{X: expr, Type: f.typ}}}, nil
}

func setter(u *structUnit, f *unitField) *ir.Func {
	value := ir.Ident{Name: u.value}
	var body []ir.Stmt
	if f.required && !f.typ.IsScalar() {
		body = append(body, ir.If{
			Cond: ir.IsNull{X: value},
			Then: []ir.Stmt{ir.Fail{Err: ir.NilArgument{Struct: u.st.Name, Field: f.f.Name}}},
		})
	}
	body = append(body,
		ir.Assign{Target: u.slot(u.builder, f), Value: ir.Box{X: value, Type: f.typ}},
		ir.Return{Values: []ir.Expr{ir.Ident{Name: u.builder}}},
	)
	return &ir.Func{
		Role:   ir.RoleSetter,
		Name:   f.f.Name,
		Recv:   u.builder,
		Field:  f.decl,
		Params: []ir.Param{{Name: u.value, Kind: ir.ParamValue, Type: f.typ}},
		Body:   body,
	}
}

func build(u *structUnit) *ir.Func {
	var body []ir.Stmt
	if u.st.IsUnion() {
		count := ir.Ident{Name: u.names.New("setFields")}
		body = append(body, ir.Declare{Names: []string{count.Name}, Value: ir.Int(0)})
		for _, f := range u.fields {
			body = append(body, ir.If{
				Cond: ir.NotNull{X: u.slot(u.builder, f)},
				Then: []ir.Stmt{ir.Incr{Target: count}},
			})
		}
		body = append(body, ir.If{
			Cond: ir.Compare{Op: ir.Ne, L: count, R: ir.Int(1)},
			Then: []ir.Stmt{ir.Fail{Err: ir.UnionCount{Struct: u.st.Name, Count: count}}},
		})
	} else {
		for _, f := range u.fields {
			if !f.required {
				continue
			}
			body = append(body, ir.If{
				Cond: ir.IsNull{X: u.slot(u.builder, f)},
				Then: []ir.Stmt{ir.Fail{Err: ir.MissingField{Struct: u.st.Name, Field: f.f.Name}}},
			})
		}
	}

	inits := make([]ir.FieldInit, 0, len(u.fields))
	for _, f := range u.fields {
		var value ir.Expr = u.slot(u.builder, f)
		if f.typ.IsContainer() || f.typ.Kind == ir.Binary {
			value = ir.CopyOf{X: value, Type: f.typ}
		}
		inits = append(inits, ir.FieldInit{Name: f.decl.Name, Type: f.typ, Value: value})
	}
	body = append(body, ir.Return{Values: []ir.Expr{ir.NewValue{Type: u.typ, Fields: inits}}})

	return &ir.Func{Role: ir.RoleBuild, Name: "Build", Recv: u.builder, Fallible: true, Body: body}
}

// checkFields rejects duplicate field ids and names, including names that
// differ only in case or separators and so map to the same identifier.
func checkFields(st *thrift.Struct) error {
	ids := make(map[int16]string, len(st.Fields))
	names := make(map[string]string, len(st.Fields))
	for _, f := range st.Fields {
		if prev, ok := ids[f.ID]; ok {
			return schemaErrorf("field id %d of %s is used by both %s and %s", f.ID, st.Name, prev, f.Name)
		}
		ident := utils.ToPascalCase(f.Name)
		if prev, ok := names[ident]; ok {
			if prev == f.Name {
				return schemaErrorf("field name %s is declared twice in %s", f.Name, st.Name)
			}
			return schemaErrorf("fields %s and %s of %s both map to identifier %s", prev, f.Name, st.Name, ident)
		}
		ids[f.ID] = f.Name
		names[ident] = f.Name
	}
	return nil
}

func structKind(k thrift.StructKind) ir.StructKind {
	switch k {
	case thrift.KindUnion:
		return ir.StructUnion
	case thrift.KindException:
		return ir.StructException
	default:
		return ir.StructPlain
	}
}
