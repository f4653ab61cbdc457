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
package thriftrt

import (
	"context"
	"math"
	"reflect"

	"github.com/apache/thrift/lib/go/thrift"
)

// Ptr returns a pointer to a copy of v. Optional scalar fields are stored
// behind pointers so that unset is distinguishable from the zero value.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value p points to, or the zero value when p is nil.
func Deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// PtrEqual reports whether a and b are both unset, or both set to equal
// values.
func PtrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// FloatEqual compares doubles by bit pattern: NaN equals itself and -0.0
// differs from 0.0, the same distinctions Hash makes.
func FloatEqual(a, b float64) bool {
	return math.Float64bits(a) == math.Float64bits(b)
}

// PtrFloatEqual is PtrEqual for doubles, comparing set values with
// FloatEqual.
func PtrFloatEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return FloatEqual(*a, *b)
}

// Clone returns a deep copy of a binary or container value. Nested lists,
// sets, maps and binaries are copied; struct values are immutable and
// shared. Nil stays nil.
func Clone[T any](v T) T {
	return cloneValue(reflect.ValueOf(&v).Elem()).Interface().(T)
}

func cloneValue(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			reflect.Copy(out, rv)
			return out
		}
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(cloneValue(rv.Index(i)))
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return out
	}
	return rv
}

// ReadBinary reads a binary value and never returns a nil slice on
// success, so a present but empty value stays distinguishable from an
// absent one.
func ReadBinary(ctx context.Context, p thrift.TProtocol) ([]byte, error) {
	b, err := p.ReadBinary(ctx)
	if err != nil {
		return nil, err
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}
