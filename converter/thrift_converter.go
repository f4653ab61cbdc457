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

package converter

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
	"github.com/hertz-contrib/swagger-generate/thriftgen/utils"
)

const componentsPrefix = "#/components/schemas/"

// ThriftConverter converts an OpenAPI document into a thrift.Schema.
// Component schemas become named declarations; inline objects, enums and
// oneOf schemas become declarations named after the place they appear.
type ThriftConverter struct {
	spec   *openapi3.T
	option *ConvertOption

	schema     *thrift.Schema
	namespaces map[string]string

	components map[string]thrift.Type // component name -> declaration
	taken      map[string]bool        // declared type names

	// enumValues maps the document spelling of each enum value to its
	// member, for field defaults.
	enumValues map[*thrift.Enum]map[string]*thrift.EnumMember
}

// NewThriftConverter creates and initializes a ThriftConverter
func NewThriftConverter(spec *openapi3.T, option *ConvertOption) *ThriftConverter {
	if option == nil {
		option = &ConvertOption{}
	}
	return &ThriftConverter{
		spec:       spec,
		option:     option,
		schema:     &thrift.Schema{},
		components: map[string]thrift.Type{},
		taken:      map[string]bool{},
		enumValues: map[*thrift.Enum]map[string]*thrift.EnumMember{},
	}
}

// Convert converts the document. Components are declared before any of
// them is filled in, so references resolve regardless of order.
func (c *ThriftConverter) Convert() (*thrift.Schema, error) {
	c.addExtensionsToNamespaces()

	if err := c.declareComponents(); err != nil {
		return nil, fmt.Errorf("error declaring components: %w", err)
	}
	if err := c.convertComponents(); err != nil {
		return nil, fmt.Errorf("error converting components: %w", err)
	}

	c.convertTagsToThriftServices()
	if err := c.convertPathsToThriftServices(); err != nil {
		return nil, fmt.Errorf("error converting paths to thrift services: %w", err)
	}
	return c.schema, nil
}

// addExtensionsToNamespaces reads x-options from the document and its info
// object; the info object wins.
func (c *ThriftConverter) addExtensionsToNamespaces() {
	c.namespaces = map[string]string{}
	for k, v := range extStrings(c.spec.Extensions, extOptions) {
		c.namespaces[k] = v
	}
	if c.spec.Info != nil {
		for k, v := range extStrings(c.spec.Info.Extensions, extOptions) {
			c.namespaces[k] = v
		}
	}
	if c.namespaces["go"] == "" && c.namespaces["*"] == "" {
		ns := c.option.Namespace
		if ns == "" {
			ns = utils.GetNamespace(c.spec)
		}
		c.namespaces["go"] = ns
	}
}

func (c *ThriftConverter) named(name, pointer string) thrift.Named {
	ns := make(map[string]string, len(c.namespaces))
	for k, v := range c.namespaces {
		ns[k] = v
	}
	return thrift.Named{
		Name:       name,
		Namespaces: ns,
		Loc:        thrift.Location{Path: c.option.Source + pointer},
	}
}

func (c *ThriftConverter) typeName(name string) string {
	if c.option.NamingOption {
		return utils.ToPascalCase(name)
	}
	return utils.FormatStr(name)
}

func (c *ThriftConverter) fieldName(name string) string {
	if c.option.NamingOption {
		return utils.ToSnakeCase(name)
	}
	return utils.FormatStr(name)
}

// uniqueName reserves name, numbering it when it is already taken.
func (c *ThriftConverter) uniqueName(name string) string {
	unique := name
	for i := 2; c.taken[unique]; i++ {
		unique = name + strconv.Itoa(i)
	}
	c.taken[unique] = true
	return unique
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *ThriftConverter) declareComponents() error {
	if c.spec.Components == nil {
		return nil
	}
	for _, raw := range sortedKeys(c.spec.Components.Schemas) {
		ref := c.spec.Components.Schemas[raw]
		if ref == nil || ref.Value == nil {
			return fmt.Errorf("schema %s: schema type is required", raw)
		}
		name := c.typeName(raw)
		if c.taken[name] {
			return fmt.Errorf("schema %s: type name %s is declared twice", raw, name)
		}
		c.taken[name] = true
		named := c.named(name, componentsPrefix+raw)
		named.Doc = ref.Value.Description

		s := ref.Value
		var decl thrift.Type
		switch {
		case ref.Ref != "":
			td := &thrift.Typedef{Named: named}
			c.schema.Typedefs = append(c.schema.Typedefs, td)
			decl = td
		case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
			st := &thrift.Struct{Named: named, Kind: thrift.KindUnion}
			c.schema.AddStruct(st)
			decl = st
		case isEnum(s):
			en := &thrift.Enum{Named: named}
			c.schema.Enums = append(c.schema.Enums, en)
			decl = en
		case isObject(s) && (len(s.Properties) > 0 || len(s.AllOf) > 0 || s.AdditionalProperties.Schema == nil):
			st := &thrift.Struct{Named: named}
			if extBool(s.Extensions, extException) {
				st.Kind = thrift.KindException
			}
			c.schema.AddStruct(st)
			decl = st
		default:
			td := &thrift.Typedef{Named: named}
			c.schema.Typedefs = append(c.schema.Typedefs, td)
			decl = td
		}
		c.components[raw] = decl
	}
	return nil
}

// convertComponents fills in the declared components. Enums and typedefs
// are filled before structs so that field defaults resolve enum members.
func (c *ThriftConverter) convertComponents() error {
	if c.spec.Components == nil {
		return nil
	}
	names := sortedKeys(c.spec.Components.Schemas)
	for _, raw := range names {
		if en, ok := c.components[raw].(*thrift.Enum); ok {
			if err := c.fillEnum(en, c.spec.Components.Schemas[raw].Value); err != nil {
				return fmt.Errorf("error converting schema %s: %w", raw, err)
			}
		}
	}
	for _, raw := range names {
		td, ok := c.components[raw].(*thrift.Typedef)
		if !ok {
			continue
		}
		ref := c.spec.Components.Schemas[raw]
		var err error
		if ref.Ref != "" {
			td.Target, err = c.refType(ref.Ref)
		} else {
			td.Target, err = c.fieldType(&openapi3.SchemaRef{Value: ref.Value}, td.Name)
		}
		if err != nil {
			return fmt.Errorf("error converting schema %s: %w", raw, err)
		}
	}
	for _, raw := range names {
		st, ok := c.components[raw].(*thrift.Struct)
		if !ok {
			continue
		}
		var err error
		if st.IsUnion() {
			err = c.fillUnion(st, c.spec.Components.Schemas[raw].Value)
		} else {
			err = c.fillStruct(st, c.spec.Components.Schemas[raw].Value)
		}
		if err != nil {
			return fmt.Errorf("error converting schema %s: %w", raw, err)
		}
	}
	return nil
}

func (c *ThriftConverter) refType(ref string) (thrift.Type, error) {
	name := utils.ExtractMessageNameFromRef(ref)
	if t, ok := c.components[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("unresolved reference %s", ref)
}

// fieldType maps a schema to a Thrift type, declaring inline structs, unions
// and enums under hint.
func (c *ThriftConverter) fieldType(ref *openapi3.SchemaRef, hint string) (thrift.Type, error) {
	if ref == nil {
		return nil, errors.New("schema type is required")
	}
	if ref.Ref != "" {
		return c.refType(ref.Ref)
	}
	s := ref.Value
	if s == nil {
		return nil, errors.New("schema type is required")
	}

	switch {
	case len(s.OneOf) > 0 || len(s.AnyOf) > 0:
		st := &thrift.Struct{Named: c.named(c.uniqueName(hint+"OneOf"), ""), Kind: thrift.KindUnion}
		st.Doc = s.Description
		c.schema.AddStruct(st)
		return st, c.fillUnion(st, s)
	case isEnum(s):
		en := &thrift.Enum{Named: c.named(c.uniqueName(hint+"Enum"), "")}
		en.Doc = s.Description
		c.schema.Enums = append(c.schema.Enums, en)
		return en, c.fillEnum(en, s)
	case s.Type.Includes("array"):
		if s.Items == nil {
			return nil, fmt.Errorf("array %s has no items", hint)
		}
		elem, err := c.fieldType(s.Items, hint+"Item")
		if err != nil {
			return nil, err
		}
		if s.UniqueItems {
			return &thrift.SetType{Elem: elem}, nil
		}
		return &thrift.ListType{Elem: elem}, nil
	case len(s.Properties) > 0 || len(s.AllOf) > 0:
		st := &thrift.Struct{Named: c.named(c.uniqueName(hint), "")}
		st.Doc = s.Description
		c.schema.AddStruct(st)
		return st, c.fillStruct(st, s)
	case s.Type.Includes("object"):
		value := thrift.Type(thrift.String)
		if s.AdditionalProperties.Schema != nil {
			var err error
			if value, err = c.fieldType(s.AdditionalProperties.Schema, hint+"Value"); err != nil {
				return nil, err
			}
		}
		return &thrift.MapType{Key: thrift.String, Value: value}, nil
	}
	if base, ok := baseType(s); ok {
		return base, nil
	}
	return nil, fmt.Errorf("unsupported schema type %v for %s", s.Type, hint)
}

type property struct {
	name     string
	ref      *openapi3.SchemaRef
	required bool
}

// properties lists the properties of an object schema, merging allOf parts,
// sorted by name.
func properties(s *openapi3.Schema) []*property {
	byName := map[string]*property{}
	var collect func(s *openapi3.Schema)
	collect = func(s *openapi3.Schema) {
		if s == nil {
			return
		}
		for _, part := range s.AllOf {
			collect(part.Value)
		}
		for name, ref := range s.Properties {
			byName[name] = &property{name: name, ref: ref}
		}
		for _, name := range s.Required {
			if p, ok := byName[name]; ok {
				p.required = true
			}
		}
	}
	collect(s)

	props := make([]*property, 0, len(byName))
	for _, name := range sortedKeys(byName) {
		props = append(props, byName[name])
	}
	return props
}

// fieldIDs assigns wire ids: x-thrift-id where given, the lowest free id
// otherwise.
func fieldIDs(props []*property) ([]int16, error) {
	ids := make([]int16, len(props))
	used := map[int64]string{}
	for i, p := range props {
		if p.ref.Value == nil {
			continue
		}
		id, ok, err := extInt(p.ref.Value.Extensions, extFieldID)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", p.name, err)
		}
		if !ok {
			continue
		}
		if id < 1 || id > math.MaxInt16 {
			return nil, fmt.Errorf("property %s: field id %d out of range", p.name, id)
		}
		if prev, dup := used[id]; dup {
			return nil, fmt.Errorf("field id %d is used by both %s and %s", id, prev, p.name)
		}
		used[id] = p.name
		ids[i] = int16(id)
	}
	next := int64(1)
	for i := range ids {
		if ids[i] != 0 {
			continue
		}
		for used[next] != "" {
			next++
		}
		used[next] = props[i].name
		ids[i] = int16(next)
	}
	return ids, nil
}

func (c *ThriftConverter) fillStruct(st *thrift.Struct, s *openapi3.Schema) error {
	props := properties(s)
	ids, err := fieldIDs(props)
	if err != nil {
		return err
	}
	for i, p := range props {
		ft, err := c.fieldType(p.ref, st.Name+utils.ToPascalCase(p.name))
		if err != nil {
			return fmt.Errorf("property %s: %w", p.name, err)
		}
		f := &thrift.Field{
			ID:           ids[i],
			Name:         c.fieldName(p.name),
			Type:         ft,
			Requiredness: thrift.Optional,
		}
		if p.required {
			f.Requiredness = thrift.Required
		}
		if v := p.ref.Value; v != nil {
			f.Doc = v.Description
			f.Redacted = extBool(v.Extensions, extRedacted)
			f.Obfuscated = extBool(v.Extensions, extObfuscated)
			if f.Default, err = c.constValue(ft, v.Default); err != nil {
				return fmt.Errorf("property %s: %w", p.name, err)
			}
		}
		st.Fields = append(st.Fields, f)
	}
	return nil
}

func (c *ThriftConverter) fillUnion(st *thrift.Struct, s *openapi3.Schema) error {
	options := s.OneOf
	if len(options) == 0 {
		options = s.AnyOf
	}
	seen := map[string]bool{}
	for i, ref := range options {
		name := fmt.Sprintf("option%d", i+1)
		if ref.Ref != "" {
			name = utils.ExtractMessageNameFromRef(ref.Ref)
		}
		name = c.fieldName(name)
		if seen[name] {
			name = fmt.Sprintf("%s%d", name, i+1)
		}
		seen[name] = true

		ft, err := c.fieldType(ref, fmt.Sprintf("%sOption%d", st.Name, i+1))
		if err != nil {
			return err
		}
		st.Fields = append(st.Fields, &thrift.Field{ID: int16(i + 1), Name: name, Type: ft})
	}
	return nil
}

func (c *ThriftConverter) fillEnum(en *thrift.Enum, s *openapi3.Schema) error {
	values := map[string]*thrift.EnumMember{}
	seen := map[string]bool{}
	prefix := utils.ToUpperSnakeCase(en.Name)
	for i, raw := range s.Enum {
		var m *thrift.EnumMember
		switch v := raw.(type) {
		case string:
			name := utils.ToUpperSnakeCase(v)
			if name == "" || (name[0] >= '0' && name[0] <= '9') {
				name = prefix + "_" + name
			}
			m = &thrift.EnumMember{Name: name, Value: int32(i)}
		case float64:
			if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxInt32 {
				return fmt.Errorf("enum value %v is not a 32-bit integer", v)
			}
			n := int32(v)
			m = &thrift.EnumMember{Name: prefix + "_" + strings.Replace(strconv.Itoa(int(n)), "-", "NEG_", 1), Value: n}
		default:
			return fmt.Errorf("unsupported enum value %v", raw)
		}
		if seen[m.Name] {
			m.Name = fmt.Sprintf("%s_%d", m.Name, i)
		}
		seen[m.Name] = true
		en.Members = append(en.Members, m)
		values[fmt.Sprint(raw)] = m
	}
	c.enumValues[en] = values
	return nil
}

// constValue converts a schema default to a constant of type t.
func (c *ThriftConverter) constValue(t thrift.Type, def any) (thrift.ConstValue, error) {
	if def == nil {
		return nil, nil
	}
	tt, err := thrift.TrueType(t)
	if err != nil {
		return nil, err
	}
	mismatch := fmt.Errorf("default %v is not a valid %s", def, tt)

	switch tt := tt.(type) {
	case thrift.BaseType:
		switch tt {
		case thrift.Bool:
			if v, ok := def.(bool); ok {
				return thrift.BoolValue(v), nil
			}
		case thrift.Byte, thrift.I16, thrift.I32, thrift.I64:
			if v, ok := def.(float64); ok && v == math.Trunc(v) {
				return thrift.IntValue(int64(v)), nil
			}
		case thrift.Double:
			if v, ok := def.(float64); ok {
				return thrift.DoubleValue(v), nil
			}
		case thrift.String, thrift.Binary:
			if v, ok := def.(string); ok {
				return thrift.StringValue(v), nil
			}
		}
	case *thrift.Enum:
		if m, ok := c.enumValues[tt][fmt.Sprint(def)]; ok {
			return thrift.EnumValue{Enum: tt, Member: m}, nil
		}
	case *thrift.ListType, *thrift.SetType:
		items, ok := def.([]any)
		if !ok {
			return nil, mismatch
		}
		var elemType thrift.Type
		if l, ok := tt.(*thrift.ListType); ok {
			elemType = l.Elem
		} else {
			elemType = tt.(*thrift.SetType).Elem
		}
		list := make(thrift.ListValue, 0, len(items))
		for _, item := range items {
			v, err := c.constValue(elemType, item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case *thrift.MapType:
		entries, ok := def.(map[string]any)
		if !ok {
			return nil, mismatch
		}
		m := make(thrift.MapValue, 0, len(entries))
		for _, k := range sortedKeys(entries) {
			key, err := c.constValue(tt.Key, k)
			if err != nil {
				return nil, err
			}
			val, err := c.constValue(tt.Value, entries[k])
			if err != nil {
				return nil, err
			}
			m = append(m, thrift.MapEntry{Key: key, Value: val})
		}
		return m, nil
	}
	return nil, mismatch
}

// convertTagsToThriftServices declares one service per document tag.
func (c *ThriftConverter) convertTagsToThriftServices() {
	for _, tag := range c.spec.Tags {
		svc := findOrCreateService(c.schema, c.serviceNamed, utils.ToPascalCase(tag.Name))
		svc.Doc = tag.Description
	}
}

func (c *ThriftConverter) serviceNamed(name string) thrift.Named {
	return c.named(name, "")
}

// convertPathsToThriftServices adds one method per operation to the service
// of the operation's first tag.
func (c *ThriftConverter) convertPathsToThriftServices() error {
	if c.spec.Paths == nil {
		return nil
	}
	paths := c.spec.Paths.Map()
	for _, path := range sortedKeys(paths) {
		ops := paths[path].Operations()
		for _, method := range sortedKeys(ops) {
			op := ops[method]
			service := findOrCreateService(c.schema, c.serviceNamed, utils.GetServiceName(op))
			name := utils.GetMethodName(op, path, method)
			if methodExistsInService(service, name) {
				continue
			}

			m := &thrift.Method{Name: name, Doc: op.Summary}
			if m.Doc == "" {
				m.Doc = op.Description
			}
			req, err := c.requestType(op, name)
			if err != nil {
				return fmt.Errorf("error generating request for %s: %w", name, err)
			}
			if req != nil {
				m.Params = []*thrift.Field{{ID: 1, Name: "req", Type: req}}
			}
			if m.Result, err = c.responseType(op, name); err != nil {
				return fmt.Errorf("error generating response for %s: %w", name, err)
			}
			if m.Throws, err = c.throws(op); err != nil {
				return fmt.Errorf("error generating exceptions for %s: %w", name, err)
			}
			service.Methods = append(service.Methods, m)
		}
	}
	return nil
}

// mediaSchema picks the JSON schema of content, or the first media type.
func mediaSchema(content openapi3.Content) *openapi3.SchemaRef {
	if mt := content.Get("application/json"); mt != nil && mt.Schema != nil {
		return mt.Schema
	}
	for _, key := range sortedKeys(content) {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema
		}
	}
	return nil
}

// requestType is the type of an operation's single argument: the body
// schema alone, or a request struct gathering the parameters and body.
func (c *ThriftConverter) requestType(op *openapi3.Operation, methodName string) (thrift.Type, error) {
	var (
		body     *openapi3.SchemaRef
		required bool
	)
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		body = mediaSchema(op.RequestBody.Value.Content)
		required = op.RequestBody.Value.Required
	}

	var params []*openapi3.Parameter
	for _, p := range op.Parameters {
		if p != nil && p.Value != nil && p.Value.Schema != nil {
			params = append(params, p.Value)
		}
	}
	if len(params) == 0 {
		if body == nil {
			return nil, nil
		}
		return c.fieldType(body, methodName+"Request")
	}

	st := &thrift.Struct{Named: c.named(c.uniqueName(methodName+"Request"), "")}
	c.schema.AddStruct(st)
	for i, p := range params {
		ft, err := c.fieldType(p.Schema, st.Name+utils.ToPascalCase(p.Name))
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		f := &thrift.Field{ID: int16(i + 1), Name: c.fieldName(p.Name), Type: ft, Requiredness: thrift.Optional, Doc: p.Description}
		if p.Required {
			f.Requiredness = thrift.Required
		}
		st.Fields = append(st.Fields, f)
	}
	if body != nil {
		ft, err := c.fieldType(body, st.Name+"Body")
		if err != nil {
			return nil, fmt.Errorf("request body: %w", err)
		}
		f := &thrift.Field{ID: int16(len(params) + 1), Name: "body", Type: ft, Requiredness: thrift.Optional}
		if required {
			f.Requiredness = thrift.Required
		}
		st.Fields = append(st.Fields, f)
	}
	return st, nil
}

// responseType is the schema of the first successful response with content,
// or nil for void.
func (c *ThriftConverter) responseType(op *openapi3.Operation, methodName string) (thrift.Type, error) {
	if op.Responses == nil {
		return nil, nil
	}
	responses := op.Responses.Map()
	for _, code := range sortedKeys(responses) {
		ref := responses[code]
		if !strings.HasPrefix(code, "2") || ref == nil || ref.Value == nil {
			continue
		}
		if schema := mediaSchema(ref.Value.Content); schema != nil {
			return c.fieldType(schema, methodName+"Response")
		}
	}
	return nil, nil
}

// throws lists the exception components referenced by error responses.
func (c *ThriftConverter) throws(op *openapi3.Operation) ([]*thrift.Field, error) {
	if op.Responses == nil {
		return nil, nil
	}
	var fields []*thrift.Field
	seen := map[*thrift.Struct]bool{}
	responses := op.Responses.Map()
	for _, code := range sortedKeys(responses) {
		ref := responses[code]
		if strings.HasPrefix(code, "2") || ref == nil || ref.Value == nil {
			continue
		}
		schema := mediaSchema(ref.Value.Content)
		if schema == nil || schema.Ref == "" {
			continue
		}
		t, err := c.refType(schema.Ref)
		if err != nil {
			return nil, err
		}
		exc, ok := t.(*thrift.Struct)
		if !ok || !exc.IsException() || seen[exc] {
			continue
		}
		seen[exc] = true
		fields = append(fields, &thrift.Field{ID: int16(len(fields) + 1), Name: utils.ToSnakeCase(exc.Name), Type: exc})
	}
	return fields, nil
}
