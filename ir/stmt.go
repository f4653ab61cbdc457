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

package ir

// Stmt is a statement.
type Stmt interface {
	isStmt()
}

type (
	// Declare introduces local variables. With a nil Value the variables
	// start at their zero value; with several Names, Value yields several
	// results.
	Declare struct {
		Names []string
		Type  *Type
		Value Expr
	}

	Assign struct {
		Target Expr
		Value  Expr
	}

	// AssignOp applies a binary operator in place, as in "x ^= y".
	AssignOp struct {
		Target Expr
		Op     string
		Value  Expr
	}

	Incr struct {
		Target Expr
	}

	If struct {
		Cond Expr
		Then []Stmt
		Else []Stmt
	}

	// Loop repeats Body until a Break.
	Loop struct {
		Body []Stmt
	}

	// Break leaves the innermost Loop.
	Break struct{}

	// Repeat runs Body Count times with Index counting from zero.
	Repeat struct {
		Index string
		Count Expr
		Body  []Stmt
	}

	// ForEach iterates container Coll of Type. Lists bind Value, sets bind
	// Key, maps bind both.
	ForEach struct {
		Key   string
		Value string
		Coll  Expr
		Type  *Type
		Body  []Stmt
	}

	Switch struct {
		Tag     Expr
		Cases   []Case
		Default []Stmt
	}

	// Return leaves the routine with Values. A fallible routine also reports
	// success.
	Return struct {
		Values []Expr
	}

	// ReturnCall leaves the routine with the outcome of the fallible
	// operation Op.
	ReturnCall struct {
		Op Expr
	}

	// Do runs the fallible operation Op, leaving the routine on failure.
	Do struct {
		Op Expr
	}

	// Bind runs the fallible operation Op and binds its results to Names,
	// leaving the routine on failure. An empty name discards a result.
	Bind struct {
		Names []string
		Op    Expr
	}

	// Add inserts into container Coll of Type. Lists and sets take Elem;
	// maps take Key and Elem.
	Add struct {
		Coll Expr
		Type *Type
		Key  Expr
		Elem Expr
	}

	// SetField stores a plain value through the setter of builder field
	// Field.
	SetField struct {
		Builder Expr
		Field   string
		Value   Expr
	}

	// Fail raises Err.
	Fail struct {
		Err Expr
	}
)

// Case is one arm of a Switch.
type Case struct {
	Values []Expr
	Body   []Stmt
}

func (Declare) isStmt()    {}
func (Assign) isStmt()     {}
func (AssignOp) isStmt()   {}
func (Incr) isStmt()       {}
func (If) isStmt()         {}
func (Loop) isStmt()       {}
func (Break) isStmt()      {}
func (Repeat) isStmt()     {}
func (ForEach) isStmt()    {}
func (Switch) isStmt()     {}
func (Return) isStmt()     {}
func (ReturnCall) isStmt() {}
func (Do) isStmt()         {}
func (Bind) isStmt()       {}
func (Add) isStmt()        {}
func (SetField) isStmt()   {}
func (Fail) isStmt()       {}
