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
	"fmt"
	"sort"
	"strings"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// ThriftGenerate prints a schema as a single Thrift IDL document.
type ThriftGenerate struct {
	dst *strings.Builder
}

func NewThriftGenerate() *ThriftGenerate {
	return &ThriftGenerate{dst: &strings.Builder{}}
}

// option is one annotation in a parenthesized annotation list.
type option struct {
	Name  string
	Value string
}

// Generate renders schema. Every declaration must agree on the namespace
// of each scope, since one document carries one namespace per scope.
func (e *ThriftGenerate) Generate(schema *thrift.Schema) (string, error) {
	e.dst.Reset()

	namespaces, err := collectNamespaces(schema)
	if err != nil {
		return "", err
	}
	scopes := make([]string, 0, len(namespaces))
	for scope := range namespaces {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)
	for _, scope := range scopes {
		e.dst.WriteString(fmt.Sprintf("namespace %s %s\n", scope, namespaces[scope]))
	}
	if len(scopes) > 0 {
		e.dst.WriteString("\n")
	}

	for _, td := range schema.Typedefs {
		e.encodeDoc(td.Doc, 0)
		e.dst.WriteString(fmt.Sprintf("typedef %s %s\n\n", td.Target, td.Name))
	}
	for _, enum := range schema.Enums {
		e.encodeEnum(enum)
	}
	for _, constant := range schema.Constants {
		e.encodeConstant(constant)
	}
	if len(schema.Constants) > 0 {
		e.dst.WriteString("\n")
	}
	for _, group := range [][]*thrift.Struct{schema.Structs, schema.Exceptions, schema.Unions} {
		for _, st := range group {
			e.encodeMessage(st)
		}
	}
	for _, service := range schema.Services {
		e.encodeService(service)
	}

	return strings.TrimRight(e.dst.String(), "\n") + "\n", nil
}

func collectNamespaces(schema *thrift.Schema) (map[string]string, error) {
	var named []*thrift.Named
	for _, td := range schema.Typedefs {
		named = append(named, &td.Named)
	}
	for _, en := range schema.Enums {
		named = append(named, &en.Named)
	}
	for _, c := range schema.Constants {
		named = append(named, &c.Named)
	}
	for _, group := range [][]*thrift.Struct{schema.Structs, schema.Exceptions, schema.Unions} {
		for _, st := range group {
			named = append(named, &st.Named)
		}
	}
	for _, svc := range schema.Services {
		named = append(named, &svc.Named)
	}

	namespaces := make(map[string]string)
	for _, n := range named {
		for scope, ns := range n.Namespaces {
			if prev, ok := namespaces[scope]; ok && prev != ns {
				return nil, fmt.Errorf("%s: namespace %s %s conflicts with %s", n.Name, scope, ns, prev)
			}
			namespaces[scope] = ns
		}
	}
	return namespaces, nil
}

func (e *ThriftGenerate) encodeDoc(doc string, indentLevel int) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return
	}
	indent := strings.Repeat("    ", indentLevel)
	e.dst.WriteString(indent + "/**\n")
	for _, line := range strings.Split(doc, "\n") {
		e.dst.WriteString(strings.TrimRight(fmt.Sprintf("%s * %s", indent, line), " ") + "\n")
	}
	e.dst.WriteString(indent + " */\n")
}

func (e *ThriftGenerate) encodeEnum(enum *thrift.Enum) {
	e.encodeDoc(enum.Doc, 0)
	e.dst.WriteString(fmt.Sprintf("enum %s {\n", enum.Name))
	for _, member := range enum.Members {
		e.encodeDoc(member.Doc, 1)
		e.dst.WriteString(fmt.Sprintf("    %s = %d;\n", member.Name, member.Value))
	}
	e.dst.WriteString("}\n\n")
}

// encodeField writes one struct field or method parameter, without the
// trailing newline.
func (e *ThriftGenerate) encodeField(field *thrift.Field, indentLevel int) {
	indent := strings.Repeat("    ", indentLevel)

	req := ""
	if field.Requiredness != thrift.Default {
		req = field.Requiredness.String() + " "
	}
	e.dst.WriteString(fmt.Sprintf("%s%d: %s%s %s", indent, field.ID, req, field.Type, field.Name))
	if field.Default != nil {
		e.dst.WriteString(" = " + field.Default.String())
	}

	var options []*option
	if field.Redacted {
		options = append(options, &option{Name: "redacted", Value: "true"})
	}
	if field.Obfuscated {
		options = append(options, &option{Name: "obfuscated", Value: "true"})
	}
	if len(options) > 0 {
		e.dst.WriteString(" (")
		for i, opt := range options {
			if i > 0 {
				e.dst.WriteString(", ")
			}
			e.encodeOption(opt)
		}
		e.dst.WriteString(")")
	}
}

// encodeMessage writes a struct, union or exception.
func (e *ThriftGenerate) encodeMessage(message *thrift.Struct) {
	e.encodeDoc(message.Doc, 0)
	e.dst.WriteString(fmt.Sprintf("%s %s {\n", message.Kind, message.Name))
	for _, field := range message.Fields {
		e.encodeDoc(field.Doc, 1)
		e.encodeField(field, 1)
		e.dst.WriteString("\n")
	}
	e.dst.WriteString("}\n\n")
}

func (e *ThriftGenerate) encodeService(service *thrift.Service) {
	e.encodeDoc(service.Doc, 0)
	e.dst.WriteString(fmt.Sprintf("service %s", service.Name))
	if service.Extends != nil {
		e.dst.WriteString(" extends " + service.Extends.Name)
	}
	e.dst.WriteString(" {\n")
	for _, method := range service.Methods {
		e.encodeMethod(method)
	}
	e.dst.WriteString("}\n\n")
}

func (e *ThriftGenerate) encodeMethod(method *thrift.Method) {
	e.encodeDoc(method.Doc, 1)

	result := "void"
	if method.Result != nil {
		result = method.Result.String()
	}
	oneway := ""
	if method.Oneway {
		oneway = "oneway "
	}
	e.dst.WriteString(fmt.Sprintf("    %s%s %s(", oneway, result, method.Name))
	e.encodeFieldList(method.Params)
	e.dst.WriteString(")")

	if len(method.Throws) > 0 {
		e.dst.WriteString(" throws (")
		e.encodeFieldList(method.Throws)
		e.dst.WriteString(")")
	}
	e.dst.WriteString("\n")
}

func (e *ThriftGenerate) encodeFieldList(fields []*thrift.Field) {
	for i, field := range fields {
		if i > 0 {
			e.dst.WriteString(", ")
		}
		e.encodeField(field, 0)
	}
}

func (e *ThriftGenerate) encodeConstant(constant *thrift.Constant) {
	e.encodeDoc(constant.Doc, 0)
	e.dst.WriteString(fmt.Sprintf("const %s %s = %s;\n", constant.Type, constant.Name, constant.Value))
}

func (e *ThriftGenerate) encodeOption(opt *option) {
	e.dst.WriteString(fmt.Sprintf("%s = %q", opt.Name, opt.Value))
}
