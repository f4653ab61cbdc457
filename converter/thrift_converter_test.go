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
	"fmt"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

const petStore = `
openapi: 3.0.3
info:
  title: Pet Store
  version: 1.0.0
  x-options:
    go: example.pets
tags:
  - name: pets
    description: Pet operations
paths:
  /pets/{petId}:
    get:
      tags: [pets]
      operationId: getPet
      summary: Fetch a pet
      parameters:
        - name: petId
          in: path
          required: true
          schema:
            type: integer
            format: int64
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        "404":
          description: missing
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/NotFound'
  /pets:
    post:
      tags: [pets]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Pet'
      responses:
        "204":
          description: created
components:
  schemas:
    Status:
      type: string
      enum: [available, sold-out]
    Pet:
      type: object
      description: A pet.
      required: [name]
      properties:
        name:
          type: string
          description: Pet name
        id:
          type: integer
          format: int64
          x-thrift-id: 5
        kind:
          type: string
          enum: [cat, dog]
          default: dog
        status:
          $ref: '#/components/schemas/Status'
        tags:
          type: array
          uniqueItems: true
          items:
            type: string
        owner:
          type: string
          x-thrift-redacted: true
        attrs:
          type: object
          additionalProperties:
            type: integer
            format: int32
        photo:
          type: string
          format: byte
    NotFound:
      type: object
      x-thrift-exception: true
      properties:
        message:
          type: string
    PetOrError:
      oneOf:
        - $ref: '#/components/schemas/Pet'
        - $ref: '#/components/schemas/NotFound'
    PetAlias:
      $ref: '#/components/schemas/Pet'
`

func load(t *testing.T, doc string) *openapi3.T {
	t.Helper()
	spec, err := openapi3.NewLoader().LoadFromData([]byte(doc))
	if err != nil {
		t.Fatalf("LoadFromData() error = %v", err)
	}
	return spec
}

func convert(t *testing.T, doc string, option *ConvertOption) *thrift.Schema {
	t.Helper()
	schema, err := NewThriftConverter(load(t, doc), option).Convert()
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return schema
}

func describeFields(fields []*thrift.Field) []string {
	var out []string
	for _, f := range fields {
		line := fmt.Sprintf("%d: %s %s %s", f.ID, f.Requiredness, f.Type, f.Name)
		if f.Default != nil {
			line += " = " + f.Default.String()
		}
		if f.Redacted {
			line += " (redacted)"
		}
		out = append(out, line)
	}
	return out
}

func names[T interface{ String() string }](decls []T) []string {
	var out []string
	for _, d := range decls {
		out = append(out, d.String())
	}
	return out
}

func TestConvertComponents(t *testing.T) {
	schema := convert(t, petStore, &ConvertOption{Source: "pets.yaml"})

	if diff := cmp.Diff([]string{"Status", "PetKindEnum"}, names(schema.Enums)); diff != "" {
		t.Errorf("enums mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Pet", "GetPetRequest"}, names(schema.Structs)); diff != "" {
		t.Errorf("structs mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"NotFound"}, names(schema.Exceptions)); diff != "" {
		t.Errorf("exceptions mismatch (-want +got):\n%s", diff)
	}

	pet := schema.FindStruct("Pet")
	want := []string{
		"1: optional map<string,i32> attrs",
		"5: optional i64 id",
		"2: optional PetKindEnum kind = PetKindEnum.DOG",
		"3: required string name",
		"4: optional string owner (redacted)",
		"6: optional binary photo",
		"7: optional Status status",
		"8: optional set<string> tags",
	}
	if diff := cmp.Diff(want, describeFields(pet.Fields)); diff != "" {
		t.Errorf("Pet fields mismatch (-want +got):\n%s", diff)
	}
	if pet.Doc != "A pet." || pet.Fields[3].Doc != "Pet name" {
		t.Errorf("docs = %q, %q", pet.Doc, pet.Fields[3].Doc)
	}
	if got, want := pet.Loc.String(), "pets.yaml#/components/schemas/Pet"; got != want {
		t.Errorf("Pet location = %q, want %q", got, want)
	}
	if diff := cmp.Diff(map[string]string{"go": "example.pets"}, pet.Namespaces); diff != "" {
		t.Errorf("namespaces mismatch (-want +got):\n%s", diff)
	}

	status := schema.FindEnum("Status")
	var members []string
	for _, m := range status.Members {
		members = append(members, fmt.Sprintf("%s=%d", m.Name, m.Value))
	}
	if diff := cmp.Diff([]string{"AVAILABLE=0", "SOLD_OUT=1"}, members); diff != "" {
		t.Errorf("Status members mismatch (-want +got):\n%s", diff)
	}

	union := schema.FindStruct("PetOrError")
	if union == nil || !union.IsUnion() {
		t.Fatalf("PetOrError = %+v, want a union", union)
	}
	want = []string{"1: default Pet Pet", "2: default NotFound NotFound"}
	if diff := cmp.Diff(want, describeFields(union.Fields)); diff != "" {
		t.Errorf("union fields mismatch (-want +got):\n%s", diff)
	}

	if len(schema.Typedefs) != 1 || schema.Typedefs[0].Name != "PetAlias" || schema.Typedefs[0].Target != thrift.Type(pet) {
		t.Errorf("typedefs = %v, want PetAlias -> Pet", names(schema.Typedefs))
	}
}

func TestConvertServices(t *testing.T) {
	schema := convert(t, petStore, nil)

	if len(schema.Services) != 1 {
		t.Fatalf("services = %v, want one", schema.Services)
	}
	svc := schema.Services[0]
	if svc.Name != "Pets" || svc.Doc != "Pet operations" {
		t.Errorf("service = %s %q", svc.Name, svc.Doc)
	}

	var got []string
	for _, m := range svc.Methods {
		result := "void"
		if m.Result != nil {
			result = m.Result.String()
		}
		got = append(got, fmt.Sprintf("%s %s(%s) throws (%s)", result, m.Name,
			strings.Join(describeFields(m.Params), ", "), strings.Join(describeFields(m.Throws), ", ")))
	}
	want := []string{
		"void PostPets(1: default Pet req) throws ()",
		"Pet GetPet(1: default GetPetRequest req) throws (1: default NotFound not_found)",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
	if svc.Methods[1].Doc != "Fetch a pet" {
		t.Errorf("GetPet doc = %q", svc.Methods[1].Doc)
	}

	req := schema.FindStruct("GetPetRequest")
	if diff := cmp.Diff([]string{"1: required i64 petId"}, describeFields(req.Fields)); diff != "" {
		t.Errorf("GetPetRequest fields mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertNamespaceFallback(t *testing.T) {
	const doc = `
openapi: 3.0.3
info:
  title: Pet Store
  version: 1.0.0
paths: {}
components:
  schemas:
    Tag:
      type: object
      properties:
        label:
          type: string
`
	tests := []struct {
		name   string
		option *ConvertOption
		want   string
	}{
		{name: "title", option: nil, want: "pet_store"},
		{name: "option", option: &ConvertOption{Namespace: "acme.tags"}, want: "acme.tags"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema := convert(t, doc, tt.option)
			if got := schema.FindStruct("Tag").Namespace("go"); got != tt.want {
				t.Errorf("namespace = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConvertNamingOption(t *testing.T) {
	const doc = `
openapi: 3.0.3
info:
  title: Naming
  version: 1.0.0
paths: {}
components:
  schemas:
    user-profile:
      type: object
      properties:
        displayName:
          type: string
`
	schema := convert(t, doc, &ConvertOption{NamingOption: true})
	st := schema.FindStruct("UserProfile")
	if st == nil {
		t.Fatalf("structs = %v, want UserProfile", names(schema.Structs))
	}
	if diff := cmp.Diff([]string{"1: optional string display_name"}, describeFields(st.Fields)); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name       string
		properties string
		want       string
	}{
		{
			name: "duplicate field id",
			properties: `
        a:
          type: string
          x-thrift-id: 1
        b:
          type: string
          x-thrift-id: 1`,
			want: "field id 1 is used by both a and b",
		},
		{
			name: "field id out of range",
			properties: `
        a:
          type: string
          x-thrift-id: 0`,
			want: "field id 0 out of range",
		},
		{
			name: "enum default",
			properties: `
        kind:
          type: string
          enum: [cat, dog]
          default: fish`,
			want: "default fish is not a valid ThingKindEnum",
		},
		{
			name: "scalar default",
			properties: `
        count:
          type: integer
          default: 1.5`,
			want: "default 1.5 is not a valid i64",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `
openapi: 3.0.3
info:
  title: Errors
  version: 1.0.0
paths: {}
components:
  schemas:
    Thing:
      type: object
      properties:` + tt.properties + "\n"
			_, err := NewThriftConverter(load(t, doc), nil).Convert()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Convert() error = %v, want %q", err, tt.want)
			}
		})
	}
}
