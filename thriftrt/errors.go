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
// Package thriftrt is the runtime support imported by generated code: error
// types raised by builders and readers, pointer helpers for optional
// scalars, value hashing and diagnostic formatting, and binary protocol
// marshalling.
package thriftrt

import (
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// PreconditionError is the panic value of a setter called with a nil value
// for a required field.
type PreconditionError struct {
	Struct string
	Field  string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: required field '%s' cannot be null", e.Struct, e.Field)
}

// MissingFieldError is returned by Build when a required field is unset.
type MissingFieldError struct {
	Struct string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Required field '%s' is missing", e.Field)
}

// UnionFieldCountError is returned by Build when a union does not have
// exactly one field set.
type UnionFieldCountError struct {
	Union string
	Count int
}

func (e *UnionFieldCountError) Error() string {
	return fmt.Sprintf("Invalid union; %d field(s) were set", e.Count)
}

// UnknownEnumValueError reports a wire value that names no enum member.
type UnknownEnumValueError struct {
	Enum  string
	Value int32
}

func (e *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("unknown value %d for enum %s", e.Value, e.Enum)
}

// UnknownEnum wraps an UnknownEnumValueError in a protocol exception of type
// INVALID_DATA, the way readers report malformed input.
func UnknownEnum(enum string, value int32) error {
	return thrift.NewTProtocolExceptionWithType(thrift.INVALID_DATA, &UnknownEnumValueError{Enum: enum, Value: value})
}
