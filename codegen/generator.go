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

// Package codegen turns a resolved Thrift schema into the language-agnostic
// declarations of package ir: value types with builders, value semantics and
// binary protocol codecs, enums with reverse lookup, constants and service
// interfaces.
package codegen

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

// ConstantsUnit is the name of the per-namespace constant group.
const ConstantsUnit = "Constants"

// Processor post-processes every generated file. Returning nil suppresses
// the file, which is not an error.
type Processor func(*ir.File) *ir.File

// Option configures a Generator.
type Option func(*Generator)

// WithProcessor installs a post-processing hook.
func WithProcessor(p Processor) Option {
	return func(g *Generator) { g.processor = p }
}

// WithLogger sets the logger for generation events.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithReserved keeps generated locals clear of the given identifiers,
// typically the keywords of the output language.
func WithReserved(words ...string) Option {
	return func(g *Generator) { g.reserved = append(g.reserved, words...) }
}

// Generator drives generation over a whole schema.
type Generator struct {
	cfg       *Config
	types     *TypeResolver
	consts    *ConstantRenderer
	structs   *StructEmitter
	enums     *EnumEmitter
	services  *ServiceEmitter
	processor Processor
	logger    *slog.Logger
	reserved  []string
}

// New returns a Generator for cfg. A nil cfg selects DefaultConfig.
func New(cfg *Config, opts ...Option) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if err := c.Validate(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: &c, logger: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}

	types, err := NewTypeResolver(g.cfg)
	if err != nil {
		return nil, err
	}
	g.types = types
	g.consts = NewConstantRenderer(types)
	g.structs = NewStructEmitter(g.cfg, types, g.consts, g.reserved)
	g.enums = NewEnumEmitter(types, g.reserved)
	g.services = NewServiceEmitter(types)
	return g, nil
}

type unit struct {
	kind string
	name string
	ns   string
	loc  thrift.Location
	run  func() (ir.Decl, error)
}

func (u *unit) String() string { return u.kind + " " + u.name }

// Generate produces one file per enum, struct, exception, union, constant
// namespace and service, in that order. A unit that fails is left out and
// its error joins the returned error; the files of every other unit are
// still returned. Missing namespaces abort the run before anything is
// generated.
func (g *Generator) Generate(ctx context.Context, schema *thrift.Schema) ([]*ir.File, error) {
	if err := g.checkNamespaces(schema); err != nil {
		return nil, err
	}

	units := g.plan(schema)
	files := make([]*ir.File, len(units))
	errs := make([]error, len(units))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for i, u := range units {
		i, u := i, u
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			files[i], errs[i] = g.runUnit(u)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("generation aborted: %w", err)
	}

	out := make([]*ir.File, 0, len(files))
	for _, f := range files {
		if f != nil {
			out = append(out, f)
		}
	}
	err := multierr.Combine(errs...)
	g.logger.Info("generation finished", "units", len(units), "files", len(out), "failed", len(multierr.Errors(err)))
	return out, err
}

func (g *Generator) runUnit(u *unit) (*ir.File, error) {
	g.logger.Debug("generating", "unit", u.String(), "namespace", u.ns)
	decl, err := u.run()
	if err != nil {
		err = attribute(err, u.String(), u.loc)
		g.logger.Error("unit failed", "unit", u.String(), "error", err)
	}
	if decl == nil {
		return nil, err
	}

	file := &ir.File{Namespace: u.ns, Name: u.name, Source: u.loc.String(), Decl: decl}
	if g.processor != nil {
		if file = g.processor(file); file == nil {
			g.logger.Info("unit suppressed", "unit", u.String())
			return nil, err
		}
	}
	return file, err
}

func (g *Generator) plan(schema *thrift.Schema) []*unit {
	scope := g.cfg.NamespaceScope
	var units []*unit

	for _, en := range schema.Enums {
		en := en
		units = append(units, &unit{
			kind: "enum", name: en.Name, ns: en.Namespace(scope), loc: en.Loc,
			run: func() (ir.Decl, error) {
				d, err := g.enums.Emit(en)
				if err != nil {
					return nil, err
				}
				return d, nil
			},
		})
	}
	for _, list := range [][]*thrift.Struct{schema.Structs, schema.Exceptions, schema.Unions} {
		for _, st := range list {
			st := st
			units = append(units, &unit{
				kind: st.Kind.String(), name: st.Name, ns: st.Namespace(scope), loc: st.Loc,
				run: func() (ir.Decl, error) {
					d, err := g.structs.Emit(st)
					if err != nil {
						return nil, err
					}
					return d, nil
				},
			})
		}
	}

	groups := map[string][]*thrift.Constant{}
	var order []string
	for _, c := range schema.Constants {
		ns := c.Namespace(scope)
		if _, ok := groups[ns]; !ok {
			order = append(order, ns)
		}
		groups[ns] = append(groups[ns], c)
	}
	for _, ns := range order {
		ns := ns
		consts := groups[ns]
		units = append(units, &unit{
			kind: "constants", name: ConstantsUnit, ns: ns, loc: consts[0].Loc,
			run: func() (ir.Decl, error) {
				d, err := g.constGroup(ns, consts)
				if d == nil {
					return nil, err
				}
				return d, err
			},
		})
	}

	for _, svc := range schema.Services {
		svc := svc
		units = append(units, &unit{
			kind: "service", name: svc.Name, ns: svc.Namespace(scope), loc: svc.Loc,
			run: func() (ir.Decl, error) {
				d, err := g.services.Emit(svc)
				if err != nil {
					return nil, err
				}
				return d, nil
			},
		})
	}
	return units
}

// constGroup renders the constants of one namespace. A constant that cannot
// be rendered is dropped with an error; the rest of the group survives.
func (g *Generator) constGroup(ns string, consts []*thrift.Constant) (*ir.ConstGroupDecl, error) {
	names := NewNameAllocator(g.reserved...)
	decl := &ir.ConstGroupDecl{Name: ConstantsUnit}
	var (
		init []ir.Stmt
		errs error
	)
	for _, c := range consts {
		cd, stmts, err := g.constant(c, ns, names)
		if err != nil {
			errs = multierr.Append(errs, attribute(err, "const "+c.Name, c.Loc))
			continue
		}
		decl.Consts = append(decl.Consts, cd)
		init = append(init, stmts...)
	}
	if len(init) > 0 {
		decl.Init = &ir.Func{Role: ir.RoleInit, Name: "init", Body: init}
	}
	if len(decl.Consts) == 0 {
		return nil, errs
	}
	return decl, errs
}

func (g *Generator) constant(c *thrift.Constant, ns string, names *NameAllocator) (*ir.ConstDecl, []ir.Stmt, error) {
	tt, err := trueType(c.Type)
	if err != nil {
		return nil, nil, err
	}
	if _, ok := tt.(*thrift.Struct); ok {
		return nil, nil, &UnsupportedError{Feature: "Struct-type constants are not supported"}
	}
	typ, err := g.types.Resolve(tt)
	if err != nil {
		return nil, nil, err
	}
	cd := &ir.ConstDecl{Name: c.Name, Doc: c.Doc, Source: c.Loc.String(), Type: typ}

	// Containers that are populated or aliased at run time are assigned by
	// the group initializer, in declaration order.
	_, isRef := c.Value.(thrift.IdentValue)
	if typ.IsContainer() && (isRef || g.consts.NeedsInitializer(tt, c.Value)) {
		var stmts []ir.Stmt
		target := ir.ConstRef{Name: c.Name, Namespace: ns, Type: typ}
		if err := g.consts.GenerateInitializer(&stmts, names, target, tt, c.Value); err != nil {
			return nil, nil, err
		}
		return cd, stmts, nil
	}
	if cd.Value, err = g.consts.RenderInline(tt, c.Value); err != nil {
		return nil, nil, err
	}
	return cd, nil, nil
}

func (g *Generator) checkNamespaces(schema *thrift.Schema) error {
	var named []*thrift.Named
	for _, en := range schema.Enums {
		named = append(named, &en.Named)
	}
	for _, list := range [][]*thrift.Struct{schema.Structs, schema.Exceptions, schema.Unions} {
		for _, st := range list {
			named = append(named, &st.Named)
		}
	}
	for _, c := range schema.Constants {
		named = append(named, &c.Named)
	}
	for _, svc := range schema.Services {
		named = append(named, &svc.Named)
	}

	var errs error
	for _, n := range named {
		if _, err := g.types.namespace(n); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
