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

// Package converter turns an OpenAPI 3 document into a resolved Thrift
// schema that the code generator can consume.
package converter

import (
	"fmt"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// Vendor extensions understood on schemas and properties.
const (
	extRedacted   = "x-thrift-redacted"
	extObfuscated = "x-thrift-obfuscated"
	extFieldID    = "x-thrift-id"
	extException  = "x-thrift-exception"
	extOptions    = "x-options"
)

// ConvertOption holds the settings of a conversion.
type ConvertOption struct {
	// Source names the document in declaration locations.
	Source string

	// Namespace is the "go" namespace used when the document declares none
	// through x-options. Empty derives one from the document title.
	Namespace string

	// NamingOption renames types to PascalCase and fields to snake_case.
	NamingOption bool
}

func extBool(ext map[string]any, key string) bool {
	switch v := ext[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// extInt reads an integer extension; ok is false when it is absent.
func extInt(ext map[string]any, key string) (n int64, ok bool, err error) {
	raw, present := ext[key]
	if !present {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int64(v)) {
			return 0, false, fmt.Errorf("%s: %v is not an integer", key, v)
		}
		return int64(v), true, nil
	case int:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false, fmt.Errorf("%s: %w", key, err)
		}
		return n, true, nil
	}
	return 0, false, fmt.Errorf("%s: unexpected value %v", key, raw)
}

// extStrings reads a string map extension such as x-options.
func extStrings(ext map[string]any, key string) map[string]string {
	m, ok := ext[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// baseType maps a primitive schema to its Thrift base type.
func baseType(schema *openapi3.Schema) (thrift.BaseType, bool) {
	switch {
	case schema.Type.Includes("string"):
		if schema.Format == "byte" || schema.Format == "binary" {
			return thrift.Binary, true
		}
		return thrift.String, true
	case schema.Type.Includes("integer"):
		switch schema.Format {
		case "int8":
			return thrift.Byte, true
		case "int16":
			return thrift.I16, true
		case "int32":
			return thrift.I32, true
		}
		return thrift.I64, true
	case schema.Type.Includes("number"):
		return thrift.Double, true
	case schema.Type.Includes("boolean"):
		return thrift.Bool, true
	}
	return 0, false
}

func isObject(schema *openapi3.Schema) bool {
	return schema.Type.Includes("object") || len(schema.Properties) > 0 || len(schema.AllOf) > 0
}

func isEnum(schema *openapi3.Schema) bool {
	return len(schema.Enum) > 0 && (schema.Type.Includes("string") || schema.Type.Includes("integer"))
}

func findOrCreateService(schema *thrift.Schema, named func(string) thrift.Named, name string) *thrift.Service {
	for _, svc := range schema.Services {
		if svc.Name == name {
			return svc
		}
	}
	svc := &thrift.Service{Named: named(name)}
	schema.Services = append(schema.Services, svc)
	return svc
}

func methodExistsInService(service *thrift.Service, name string) bool {
	for _, m := range service.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}
