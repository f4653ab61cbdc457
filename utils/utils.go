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
package utils

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
)

var (
	invalidChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	pathParams   = regexp.MustCompile(`\{(\w+)\}`)
)

// GetMethodName derives a service method name for an operation
func GetMethodName(operation *openapi3.Operation, path, method string) string {
	if operation.OperationID != "" {
		return ToPascalCase(operation.OperationID)
	}
	if path != "" {
		// Convert path to PascalCase, replacing placeholders with a suitable format
		return ToPascalCase(strings.ToLower(method)) + ConvertPathToPascalCase(path)
	}
	return ToPascalCase(strings.ToLower(method)) + "Method"
}

// GetServiceName returns the service an operation belongs to: its first tag
func GetServiceName(operation *openapi3.Operation) string {
	if len(operation.Tags) > 0 {
		return ToPascalCase(operation.Tags[0])
	}
	return "DefaultService"
}

// GetNamespace derives a dotted namespace from the document title
func GetNamespace(spec *openapi3.T) string {
	if spec.Info != nil && spec.Info.Title != "" {
		return ToSnakeCase(spec.Info.Title)
	}
	return "default_namespace"
}

// ConvertPathToPascalCase converts a path with placeholders to PascalCase
func ConvertPathToPascalCase(path string) string {
	// Replace placeholders like {orderId} with ByOrderId
	path = pathParams.ReplaceAllStringFunc(path, func(s string) string {
		return "By" + ToPascalCase(strings.Trim(s, "{}"))
	})

	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = ToPascalCase(segment)
	}
	return strings.Join(segments, "")
}

// ExtractMessageNameFromRef returns the last part of a reference, usually the name of the schema
func ExtractMessageNameFromRef(ref string) string {
	parts := strings.Split(ref, "/")
	return parts[len(parts)-1]
}

// ToUpperCase converts the first letter of a string to uppercase
func ToUpperCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// FormatStr replaces separators with underscores and drops everything that cannot appear in an identifier
func FormatStr(str string) string {
	str = strings.NewReplacer(" ", "_", "/", "_", "-", "_", ".", "_").Replace(str)
	return invalidChars.ReplaceAllString(str, "")
}

func ToPascalCase(name string) string {
	return ToUpperCase(strcase.ToCamel(FormatStr(name)))
}

func ToLowerCamelCase(name string) string {
	return strcase.ToLowerCamel(FormatStr(name))
}

func ToSnakeCase(name string) string {
	return strcase.ToSnake(FormatStr(name))
}

// ToUpperSnakeCase is used for enum member names
func ToUpperSnakeCase(name string) string {
	return strcase.ToScreamingSnake(FormatStr(name))
}

// SafeIdent appends an underscore to Go keywords and to any of the extra reserved words
func SafeIdent(name string, reserved ...string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	for _, r := range reserved {
		if name == r {
			return name + "_"
		}
	}
	return name
}
