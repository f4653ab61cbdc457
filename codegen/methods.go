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
	"strings"

	"github.com/hertz-contrib/swagger-generate/thriftgen/ir"
)

// FNV-1a parameters used by generated hash methods.
const (
	HashSeed  = 2166136261
	HashPrime = 16777619
)

// RedactedToken replaces the value of a redacted field in string output.
const RedactedToken = "<REDACTED>"

var boolType = &ir.Type{Kind: ir.Bool}

func boolLit(v bool) ir.Lit { return ir.Lit{Type: boolType, Value: v} }

func equal(u *structUnit) *ir.Func {
	self, other := ir.Ident{Name: u.recv}, ir.Ident{Name: u.other}
	terms := make([]ir.Expr, 0, len(u.fields))
	for _, f := range u.fields {
		terms = append(terms, ir.Equals{
			A:        u.slot(u.recv, f),
			B:        u.slot(u.other, f),
			Type:     f.typ,
			Nullable: !f.required,
		})
	}
	return &ir.Func{
		Role:   ir.RoleEqual,
		Name:   "Equal",
		Recv:   u.recv,
		Params: []ir.Param{{Name: u.other, Kind: ir.ParamValue, Type: u.typ}},
		Body: []ir.Stmt{
			ir.If{Cond: ir.Compare{Op: ir.Eq, L: self, R: other}, Then: []ir.Stmt{ir.Return{Values: []ir.Expr{boolLit(true)}}}},
			ir.If{Cond: ir.Or{Terms: []ir.Expr{ir.IsNull{X: self}, ir.IsNull{X: other}}}, Then: []ir.Stmt{ir.Return{Values: []ir.Expr{boolLit(false)}}}},
			ir.Return{Values: []ir.Expr{ir.And{Terms: terms}}},
		},
	}
}

func hashCode(u *structUnit) *ir.Func {
	self := ir.Ident{Name: u.recv}
	code := ir.Ident{Name: u.names.New("code")}
	body := []ir.Stmt{
		ir.If{Cond: ir.IsNull{X: self}, Then: []ir.Stmt{ir.Return{Values: []ir.Expr{ir.Int(0)}}}},
		ir.Declare{Names: []string{code.Name}, Type: &ir.Type{Kind: ir.HashCode}, Value: ir.Int(HashSeed)},
	}
	for _, f := range u.fields {
		body = append(body,
			ir.AssignOp{Target: code, Op: "^", Value: ir.HashOf{X: u.slot(u.recv, f), Type: f.typ}},
			ir.AssignOp{Target: code, Op: "*", Value: ir.Int(HashPrime)},
		)
	}
	body = append(body, ir.Return{Values: []ir.Expr{code}})
	return &ir.Func{Role: ir.RoleHashCode, Name: "HashCode", Recv: u.recv, Body: body}
}

func toString(u *structUnit) *ir.Func {
	var c chunker
	c.text(u.st.Name + "{")
	for i, f := range u.fields {
		if i > 0 {
			c.text(", ")
		}
		c.text(f.f.Name + "=")
		slot := u.slot(u.recv, f)
		switch {
		case f.f.IsRedacted():
			c.text(RedactedToken)
		case f.f.IsObfuscated():
			c.value(obfuscate(slot, f.typ))
		default:
			c.value(ir.Stringify{X: slot, Type: f.typ})
		}
	}
	c.text("}")
	return &ir.Func{
		Role: ir.RoleString,
		Name: "String",
		Recv: u.recv,
		Body: []ir.Stmt{
			ir.If{Cond: ir.IsNull{X: ir.Ident{Name: u.recv}}, Then: []ir.Stmt{ir.Return{Values: []ir.Expr{ir.Str("null")}}}},
			ir.Return{Values: []ir.Expr{c.expr()}},
		},
	}
}

func obfuscate(slot ir.Expr, t *ir.Type) ir.Expr {
	switch t.Kind {
	case ir.List:
		return ir.Summary{X: slot, Container: "List", Elems: []string{t.Elem.String()}}
	case ir.Set:
		return ir.Summary{X: slot, Container: "Set", Elems: []string{t.Elem.String()}}
	case ir.Map:
		return ir.Summary{X: slot, Container: "Map", Elems: []string{t.Key.String(), t.Value.String()}}
	default:
		return ir.Digest{X: slot}
	}
}

// chunker builds a string concatenation, merging adjacent constant text
// into single literals.
type chunker struct {
	parts   []ir.Expr
	pending strings.Builder
}

func (c *chunker) text(s string) { c.pending.WriteString(s) }

func (c *chunker) value(e ir.Expr) {
	c.flush()
	c.parts = append(c.parts, e)
}

func (c *chunker) flush() {
	if c.pending.Len() == 0 {
		return
	}
	c.parts = append(c.parts, ir.Str(c.pending.String()))
	c.pending.Reset()
}

func (c *chunker) expr() ir.Expr {
	c.flush()
	if len(c.parts) == 1 {
		return c.parts[0]
	}
	return ir.Concat{Parts: c.parts}
}
