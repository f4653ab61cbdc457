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

package thrift

import (
	"strconv"
	"strings"
)

// ConstValue is a literal constant value. The set of implementations is
// closed: IntValue, DoubleValue, BoolValue, StringValue, ListValue,
// MapValue, EnumValue and IdentValue.
type ConstValue interface {
	// String returns the IDL spelling of the value.
	String() string

	isConstValue()
}

type (
	IntValue    int64
	DoubleValue float64
	BoolValue   bool
	StringValue string

	// ListValue is a list or set literal.
	ListValue []ConstValue

	// MapValue is a map literal; entry order is declaration order.
	MapValue []MapEntry
)

// MapEntry is one key/value pair of a map literal.
type MapEntry struct {
	Key   ConstValue
	Value ConstValue
}

// EnumValue references an enum member by name.
type EnumValue struct {
	Enum   *Enum
	Member *EnumMember
}

// IdentValue references another named constant.
type IdentValue struct {
	Constant *Constant
}

func (v IntValue) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v DoubleValue) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v BoolValue) String() string   { return strconv.FormatBool(bool(v)) }
func (v StringValue) String() string { return strconv.Quote(string(v)) }

func (v ListValue) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v MapValue) String() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (v EnumValue) String() string  { return v.Enum.Name + "." + v.Member.Name }
func (v IdentValue) String() string { return v.Constant.Name }

func (IntValue) isConstValue()    {}
func (DoubleValue) isConstValue() {}
func (BoolValue) isConstValue()   {}
func (StringValue) isConstValue() {}
func (ListValue) isConstValue()   {}
func (MapValue) isConstValue()    {}
func (EnumValue) isConstValue()   {}
func (IdentValue) isConstValue()  {}
