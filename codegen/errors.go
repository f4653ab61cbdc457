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
	"errors"
	"fmt"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// SchemaError reports a schema that breaks an invariant the schema builder
// should have enforced, such as a typedef cycle or a duplicate field id.
// It aborts generation of the affected unit.
type SchemaError struct {
	Unit string
	Loc  thrift.Location
	Err  error
}

func (e *SchemaError) Error() string {
	return describe(e.Unit, e.Loc, "schema error: "+e.Err.Error())
}

func (e *SchemaError) Unwrap() error { return e.Err }

// UnsupportedError reports a schema construct the generator cannot express,
// such as a struct-typed constant. It aborts only the affected unit.
type UnsupportedError struct {
	Unit    string
	Loc     thrift.Location
	Feature string
}

func (e *UnsupportedError) Error() string {
	return describe(e.Unit, e.Loc, "unsupported: "+e.Feature)
}

// ConfigError reports configuration that makes generation impossible, most
// commonly a declaration without a namespace for the target scope. It
// aborts the whole run.
type ConfigError struct {
	Unit    string
	Loc     thrift.Location
	Setting string
	Msg     string
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Setting != "" {
		msg = e.Setting + ": " + msg
	}
	return describe(e.Unit, e.Loc, "configuration: "+msg)
}

func describe(unit string, loc thrift.Location, msg string) string {
	switch {
	case unit == "":
		return msg
	case loc.Path == "":
		return fmt.Sprintf("%s: %s", unit, msg)
	default:
		return fmt.Sprintf("%s (%s): %s", unit, loc, msg)
	}
}

func schemaErrorf(format string, args ...any) error {
	return &SchemaError{Err: fmt.Errorf(format, args...)}
}

// attribute fills in the unit name and location of a generation error that
// was raised below the unit level.
func attribute(err error, unit string, loc thrift.Location) error {
	if err == nil {
		return nil
	}
	var (
		se *SchemaError
		ue *UnsupportedError
		ce *ConfigError
	)
	switch {
	case errors.As(err, &se):
		if se.Unit == "" {
			se.Unit, se.Loc = unit, loc
		}
	case errors.As(err, &ue):
		if ue.Unit == "" {
			ue.Unit, ue.Loc = unit, loc
		}
	case errors.As(err, &ce):
		if ce.Unit == "" {
			ce.Unit, ce.Loc = unit, loc
		}
	default:
		return fmt.Errorf("%s: %w", describe(unit, loc, "generation failed"), err)
	}
	return err
}
