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
	"bytes"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/hertz-contrib/swagger-generate/thriftgen/codegen"
	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/utils"
)

const (
	thriftPkg  = "github.com/apache/thrift/lib/go/thrift"
	runtimePkg = "github.com/hertz-contrib/swagger-generate/thriftgen/thriftrt"

	// ConstantsFile is the file holding the constants of a namespace.
	ConstantsFile = "constants.go"
)

// goReserved holds the Go keywords, the ctx and err locals every generated
// routine uses, the packages generated code imports and the builtins it
// calls.
var goReserved = []string{
	"break", "case", "chan", "const", "continue", "default", "defer", "else",
	"fallthrough", "for", "func", "go", "goto", "if", "import", "interface",
	"map", "package", "range", "return", "select", "struct", "switch", "type", "var",

	"ctx", "err",
	"bytes", "context", "fmt", "maps", "slices", "thrift", "thriftrt",
	"any", "append", "bool", "byte", "error", "false", "float64", "int",
	"int8", "int16", "int32", "int64", "len", "make", "new", "nil", "panic",
	"string", "true", "uint32",
}

// Method names of generated value types; getters for fields with the same
// name get an underscore suffix.
var valueMethods = []string{"Equal", "Error", "HashCode", "MarshalBinary", "String", "UnmarshalBinary", "Write"}

// GoEmitter renders ir files as Go source. Every namespace becomes one
// package; its import path is the module prefix followed by the namespace
// with dots turned into slashes.
type GoEmitter struct {
	module string
}

// GoOption configures a GoEmitter.
type GoOption func(*GoEmitter)

// WithModule sets the import path prefix of generated packages.
func WithModule(prefix string) GoOption {
	return func(e *GoEmitter) { e.module = strings.Trim(prefix, "/") }
}

func NewGoEmitter(opts ...GoOption) *GoEmitter {
	e := &GoEmitter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *GoEmitter) Reserved() []string {
	return slices.Clone(goReserved)
}

// Dir returns the directory of the package for namespace ns.
func (e *GoEmitter) Dir(ns string) string {
	return strings.ReplaceAll(ns, ".", "/")
}

// ImportPath returns the import path of the package for namespace ns.
func (e *GoEmitter) ImportPath(ns string) string {
	if e.module == "" {
		return e.Dir(ns)
	}
	return e.module + "/" + e.Dir(ns)
}

func packageName(ns string) string {
	parts := strings.Split(ns, ".")
	return utils.SafeIdent(strings.ToLower(utils.FormatStr(parts[len(parts)-1])))
}

func fileName(d ir.Decl) string {
	if _, ok := d.(*ir.ConstGroupDecl); ok {
		return ConstantsFile
	}
	base := utils.ToSnakeCase(d.DeclName())
	if strings.HasSuffix(base, "_test") {
		base += "_gen"
	}
	return base + ".go"
}

// Emit renders one file.
func (e *GoEmitter) Emit(file *ir.File) (*Output, error) {
	f := jen.NewFilePathName(e.ImportPath(file.Namespace), packageName(file.Namespace))
	f.ImportName(thriftPkg, "thrift")
	f.ImportName(runtimePkg, "thriftrt")
	f.HeaderComment("Code generated by thriftgen. DO NOT EDIT.")
	if file.Source != "" {
		f.HeaderComment("Source: " + file.Source)
	}

	g := &goFile{e: e, f: f}
	switch d := file.Decl.(type) {
	case *ir.StructDecl:
		g.structDecl(d)
	case *ir.EnumDecl:
		g.enumDecl(d)
	case *ir.ConstGroupDecl:
		g.constGroup(d)
	case *ir.ServiceDecl:
		g.service(d)
	default:
		return nil, fmt.Errorf("unexpected declaration %T", file.Decl)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", file.Name, err)
	}
	return &Output{
		Path:      path.Join(e.Dir(file.Namespace), fileName(file.Decl)),
		Namespace: file.Namespace,
		Source:    file.Source,
		Content:   buf.Bytes(),
	}, nil
}

// goFile renders the declarations of one file.
type goFile struct {
	e *GoEmitter
	f *jen.File

	// State of the routine being rendered.
	fallible bool
	results  int
}

// decl starts a top-level declaration preceded by its doc comment.
func (g *goFile) decl(doc string) *jen.Statement {
	s := jen.Null()
	for _, line := range docLines(doc) {
		s.Comment(line).Line()
	}
	g.f.Add(s)
	return s
}

func docLines(doc string) []string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}

func typeName(name string) string { return utils.ToPascalCase(name) }

func fieldIdent(name string) string { return utils.SafeIdent(utils.ToLowerCamelCase(name)) }

func getterName(name string) string {
	n := utils.ToPascalCase(name)
	if slices.Contains(valueMethods, n) {
		n += "_"
	}
	return n
}

func setterName(name string) string { return "Set" + utils.ToPascalCase(name) }

func constName(name string) string { return utils.ToUpperCase(utils.FormatStr(name)) }

func memberName(enum, member string) string { return typeName(enum) + "_" + member }

func (g *goFile) qual(t *ir.Type, name string) *jen.Statement {
	return jen.Qual(g.e.ImportPath(t.Namespace), name)
}

func (g *goFile) structDecl(d *ir.StructDecl) {
	name := typeName(d.Name)
	recv := "s"
	for _, m := range d.Methods {
		if m.Recv != "" {
			recv = m.Recv
			break
		}
	}

	fields := make([]jen.Code, 0, len(d.Fields))
	for _, fd := range d.Fields {
		fields = append(fields, jen.Id(fieldIdent(fd.Name)).Add(g.slotType(fd.Type)).Tag(fieldTags(fd)))
	}
	g.decl(d.Doc).Type().Id(name).Struct(fields...)

	self := func() *jen.Statement { return jen.Id(recv).Op("*").Id(name) }
	for _, fd := range d.Fields {
		slot := jen.Id(recv).Dot(fieldIdent(fd.Name))
		get := getterName(fd.Name)
		if fd.Type.IsScalar() {
			g.decl(fmt.Sprintf("%s returns the value of %s, or its zero value when unset.", get, fd.Name)).
				Func().Params(self()).Id(get).Params().Add(g.typ(fd.Type)).Block(
				jen.Return(jen.Qual(runtimePkg, "Deref").Call(slot)),
			)
		} else if fd.Type.IsContainer() || fd.Type.Kind == ir.Binary {
			g.decl(fmt.Sprintf("%s returns a copy of %s.", get, fd.Name)).
				Func().Params(self()).Id(get).Params().Add(g.typ(fd.Type)).Block(
				jen.Return(jen.Qual(runtimePkg, "Clone").Call(slot)),
			)
		} else {
			g.decl("").Func().Params(self()).Id(get).Params().Add(g.typ(fd.Type)).Block(jen.Return(slot))
		}
		if !fd.Required {
			g.decl("").Func().Params(self()).Id("IsSet" + utils.ToPascalCase(fd.Name)).Params().Bool().Block(
				jen.Return(jen.Id(recv).Dot(fieldIdent(fd.Name)).Op("!=").Nil()),
			)
		}
	}

	for _, m := range d.Methods {
		g.fn(d.Name, m)
	}
	if d.Kind == ir.StructException {
		g.decl("").Func().Params(self()).Id("Error").Params().String().Block(
			jen.Return(jen.Id(recv).Dot("String").Call()),
		)
	}
	if d.SerializationHelpers {
		g.serializationHelpers(name, recv)
	}

	if b := d.Builder; b != nil {
		g.builder(d, b)
	}
	for _, fn := range d.Funcs {
		g.fn(d.Name, fn)
	}
}

func (g *goFile) serializationHelpers(name, recv string) {
	background := jen.Qual("context", "Background").Call()
	g.decl("MarshalBinary encodes the value with the binary protocol.").
		Func().Params(jen.Id(recv).Op("*").Id(name)).Id("MarshalBinary").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Qual(runtimePkg, "Marshal").Call(background, jen.Id(recv))),
	)
	g.decl("UnmarshalBinary decodes a binary protocol payload into the value.").
		Func().Params(jen.Id(recv).Op("*").Id(name)).Id("UnmarshalBinary").Params(jen.Id("data").Index().Byte()).Error().Block(
		jen.List(jen.Id("v"), jen.Err()).Op(":=").Qual(runtimePkg, "Unmarshal").Call(
			jen.Qual("context", "Background").Call(), jen.Id("data"), jen.Id("Read"+name),
		),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Op("*").Id(recv).Op("=").Op("*").Id("v"),
		jen.Return(jen.Nil()),
	)
}

func (g *goFile) builder(d *ir.StructDecl, b *ir.BuilderDecl) {
	name, bname := typeName(d.Name), typeName(b.Name)

	fields := make([]jen.Code, 0, len(d.Fields))
	for _, fd := range d.Fields {
		fields = append(fields, jen.Id(fieldIdent(fd.Name)).Add(g.slotType(fd.Type)))
	}
	g.decl(fmt.Sprintf("%s accumulates the fields of a %s.", bname, name)).Type().Id(bname).Struct(fields...)

	g.fallible, g.results = false, 0
	alloc := jen.Id(b.Recv).Op(":=").Op("&").Id(bname).Values()

	body := append([]jen.Code{alloc}, g.stmts(b.Defaults)...)
	body = append(body, jen.Return(jen.Id(b.Recv)))
	g.decl(fmt.Sprintf("New%s returns a builder holding the declared defaults.", bname)).
		Func().Id("New" + bname).Params().Op("*").Id(bname).Block(body...)

	alloc = jen.Id(b.Recv).Op(":=").Op("&").Id(bname).Values()
	body = append([]jen.Code{alloc}, g.stmts(b.CopyFrom)...)
	body = append(body, jen.Return(jen.Id(b.Recv)))
	g.decl(fmt.Sprintf("New%sFrom returns a builder holding the fields of %s.", bname, b.CopySource)).
		Func().Id("New" + bname + "From").Params(jen.Id(b.CopySource).Op("*").Id(name)).Op("*").Id(bname).Block(body...)

	for _, s := range b.Setters {
		g.fn(d.Name, s)
	}
	g.fn(d.Name, b.Reset)
	g.fn(d.Name, b.Build)
}

// fn renders a generated routine owned by the type called owner.
func (g *goFile) fn(owner string, fn *ir.Func) {
	name := typeName(owner)
	ptr := func(n string) *jen.Statement { return jen.Op("*").Id(n) }
	builder := name + "Builder"

	var (
		recvType *jen.Statement
		fname    string
		results  []jen.Code
	)
	g.fallible, g.results = fn.Fallible, 0
	switch fn.Role {
	case ir.RoleEqual:
		recvType, fname, results = ptr(name), "Equal", []jen.Code{jen.Bool()}
	case ir.RoleHashCode:
		recvType, fname, results = ptr(name), "HashCode", []jen.Code{jen.Uint32()}
	case ir.RoleString:
		recvType, fname, results = ptr(name), "String", []jen.Code{jen.String()}
	case ir.RoleWrite:
		recvType, fname, results = ptr(name), "Write", []jen.Code{jen.Error()}
	case ir.RoleReadWith:
		fname, results = "Read"+name+"With", []jen.Code{ptr(name), jen.Error()}
		g.results = 1
	case ir.RoleRead:
		fname, results = "Read"+name, []jen.Code{ptr(name), jen.Error()}
		g.results = 1
	case ir.RoleSetter:
		recvType, fname, results = ptr(builder), setterName(fn.Field.Name), []jen.Code{ptr(builder)}
	case ir.RoleReset:
		recvType, fname = ptr(builder), "Reset"
	case ir.RoleBuild:
		recvType, fname, results = ptr(builder), "Build", []jen.Code{ptr(name), jen.Error()}
		g.results = 1
	case ir.RoleFindByValue:
		fname, results = "Find"+name+"ByValue", []jen.Code{jen.Id(name), jen.Bool()}
	case ir.RoleInit:
		fname = "init"
	}

	var params []jen.Code
	for _, p := range fn.Params {
		switch p.Kind {
		case ir.ParamValue:
			params = append(params, jen.Id(p.Name).Add(g.typ(p.Type)))
		case ir.ParamProtocol:
			params = append(params, jen.Id("ctx").Qual("context", "Context"), jen.Id(p.Name).Qual(thriftPkg, "TProtocol"))
		case ir.ParamBuilder:
			params = append(params, jen.Id(p.Name).Op("*").Add(g.qual(p.Type, typeName(p.Type.Name)+"Builder")))
		case ir.ParamWireInt:
			params = append(params, jen.Id(p.Name).Int32())
		}
	}

	s := g.decl(fn.Doc).Func()
	if recvType != nil {
		s.Params(jen.Id(fn.Recv).Add(recvType))
	}
	s.Id(fname).Params(params...)
	switch len(results) {
	case 0:
	case 1:
		s.Add(results[0])
	default:
		s.Params(results...)
	}
	s.Block(g.stmts(fn.Body)...)
}

func fieldTags(fd *ir.FieldDecl) map[string]string {
	req := "optional"
	if fd.Required {
		req = "required"
	}
	tags := map[string]string{"thrift": fmt.Sprintf("%s,%d,%s", fd.Name, fd.ID, req)}
	for _, a := range fd.Annotations {
		switch a.Name {
		case codegen.AnnotationField:
			for _, arg := range a.Args {
				if arg.Key == "typedefName" {
					tags["typedef"] = arg.Value
				}
			}
		case codegen.AnnotationRedacted:
			tags["redacted"] = "true"
		case codegen.AnnotationObfuscated:
			tags["obfuscated"] = "true"
		case codegen.AnnotationNotNull:
			tags["nullable"] = "false"
		case codegen.AnnotationNullable:
			tags["nullable"] = "true"
		}
	}
	return tags
}

func (g *goFile) enumDecl(d *ir.EnumDecl) {
	name := typeName(d.Name)
	g.decl(d.Doc).Type().Id(name).Int32()

	g.f.Const().DefsFunc(func(grp *jen.Group) {
		for _, m := range d.Members {
			for _, line := range docLines(m.Doc) {
				grp.Comment(line)
			}
			grp.Id(memberName(d.Name, m.Name)).Id(name).Op("=").Lit(int(m.Value))
		}
	})

	g.fn(d.Name, d.Lookup)

	var cases []jen.Code
	for _, m := range d.Members {
		if m.Alias {
			continue
		}
		cases = append(cases, jen.Case(jen.Id(memberName(d.Name, m.Name))).Block(jen.Return(jen.Lit(m.Name))))
	}
	cases = append(cases, jen.Default().Block(
		jen.Return(jen.Qual("fmt", "Sprintf").Call(jen.Lit(name+"(%d)"), jen.Int32().Call(jen.Id("v")))),
	))
	g.decl("").Func().Params(jen.Id("v").Id(name)).Id("String").Params().String().Block(
		jen.Switch(jen.Id("v")).Block(cases...),
	)
}

// goConst reports whether constants of t can be Go constants.
func goConst(t *ir.Type) bool {
	return t.IsScalar()
}

func (g *goFile) constGroup(d *ir.ConstGroupDecl) {
	var consts, vars []jen.Code
	for _, c := range d.Consts {
		var defs *[]jen.Code
		if c.Value != nil && goConst(c.Type) {
			defs = &consts
		} else {
			defs = &vars
		}
		for _, line := range docLines(c.Doc) {
			*defs = append(*defs, jen.Comment(line))
		}
		def := jen.Id(constName(c.Name)).Add(g.typ(c.Type))
		if c.Value != nil {
			def.Op("=").Add(g.expr(c.Value))
		}
		*defs = append(*defs, def)
	}
	if len(consts) > 0 {
		g.f.Const().Defs(consts...)
	}
	if len(vars) > 0 {
		g.f.Var().Defs(vars...)
	}
	if d.Init != nil {
		g.fn("", d.Init)
	}
}

func (g *goFile) service(d *ir.ServiceDecl) {
	var methods []jen.Code
	if d.Extends != nil {
		methods = append(methods, g.qual(d.Extends, typeName(d.Extends.Name)))
	}
	for _, m := range d.Methods {
		for _, line := range docLines(m.Doc) {
			methods = append(methods, jen.Comment(line))
		}
		if m.Oneway {
			methods = append(methods, jen.Comment(typeName(m.Name)+" is oneway; callers do not wait for it."))
		}
		for _, t := range m.Throws {
			methods = append(methods, jen.Comment(fmt.Sprintf("It may fail with %s (%s).", t.Type, t.Name)))
		}

		params := []jen.Code{jen.Id("ctx").Qual("context", "Context")}
		for _, p := range m.Params {
			params = append(params, jen.Id(utils.SafeIdent(utils.ToLowerCamelCase(p.Name), "ctx", "err")).Add(g.typ(p.Type)))
		}
		sig := jen.Id(typeName(m.Name)).Params(params...)
		if m.Result == nil {
			sig.Error()
		} else {
			sig.Params(g.typ(m.Result), jen.Error())
		}
		methods = append(methods, sig)
	}
	g.decl(d.Doc).Type().Id(typeName(d.Name)).Interface(methods...)
}

// typ renders the plain Go type of t.
func (g *goFile) typ(t *ir.Type) *jen.Statement {
	switch t.Kind {
	case ir.Bool:
		return jen.Bool()
	case ir.Byte:
		return jen.Int8()
	case ir.I16:
		return jen.Int16()
	case ir.I32:
		return jen.Int32()
	case ir.I64:
		return jen.Int64()
	case ir.Double:
		return jen.Float64()
	case ir.String:
		return jen.String()
	case ir.Binary:
		return jen.Index().Byte()
	case ir.Enum, ir.Service:
		return g.qual(t, typeName(t.Name))
	case ir.Struct:
		return jen.Op("*").Add(g.qual(t, typeName(t.Name)))
	case ir.List:
		if !t.Binding.IsZero() {
			return jen.Qual(t.Binding.Path, t.Binding.Name).Types(g.typ(t.Elem))
		}
		return jen.Index().Add(g.typ(t.Elem))
	case ir.Set:
		if !t.Binding.IsZero() {
			return jen.Qual(t.Binding.Path, t.Binding.Name).Types(g.typ(t.Elem))
		}
		return jen.Map(g.typ(t.Elem)).Struct()
	case ir.Map:
		if !t.Binding.IsZero() {
			return jen.Qual(t.Binding.Path, t.Binding.Name).Types(g.typ(t.Key), g.typ(t.Value))
		}
		return jen.Map(g.typ(t.Key)).Add(g.typ(t.Value))
	case ir.HashCode:
		return jen.Uint32()
	}
	panic(fmt.Sprintf("generate: unexpected type kind %s", t.Kind))
}

// slotType renders the type of a field slot: scalars sit behind a pointer
// so that unset differs from the zero value.
func (g *goFile) slotType(t *ir.Type) *jen.Statement {
	if t.IsScalar() {
		return jen.Op("*").Add(g.typ(t))
	}
	return g.typ(t)
}
