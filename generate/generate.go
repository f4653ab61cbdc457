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
// Package generate renders generated declarations as source text. The Go
// emitter turns ir files into Go packages built on the Apache Thrift
// protocol interface; ThriftGenerate prints a schema back as Thrift IDL.
package generate

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
)

// Output is one rendered source file.
type Output struct {
	Path      string // Slash separated, relative to the output root
	Namespace string
	Source    string // Schema location the file was generated from
	Content   []byte
}

// Emitter renders ir files as source text of one output language.
type Emitter interface {
	// Reserved lists identifiers that generated locals must avoid.
	Reserved() []string

	Emit(file *ir.File) (*Output, error)
}

// EmitAll renders every file. A file that fails to render is left out and
// its error joins the returned error.
func EmitAll(e Emitter, files []*ir.File) ([]*Output, error) {
	var (
		out  = make([]*Output, 0, len(files))
		errs error
	)
	for _, f := range files {
		o, err := e.Emit(f)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to emit %s %s: %w", f.Namespace, f.Name, err))
			continue
		}
		out = append(out, o)
	}
	return out, errs
}
