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
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
)

// Hasher is implemented by generated value types.
type Hasher interface {
	HashCode() uint32
}

// Hash returns the hash code of a field value. Unset values and empty
// collections hash to zero. Lists are order sensitive; sets and maps are
// not.
func Hash(v any) uint32 {
	return hashValue(reflect.ValueOf(v))
}

func hashValue(rv reflect.Value) uint32 {
	if !rv.IsValid() {
		return 0
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return 0
		}
	}
	if rv.CanInterface() {
		if h, ok := rv.Interface().(Hasher); ok {
			return h.HashCode()
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return hashValue(rv.Elem())
	case reflect.Bool:
		if rv.Bool() {
			return 1231
		}
		return 1237
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return uint32(n ^ (n >> 32))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := rv.Uint()
		return uint32(n ^ (n >> 32))
	case reflect.Float32, reflect.Float64:
		bits := math.Float64bits(rv.Float())
		return uint32(bits ^ (bits >> 32))
	case reflect.String:
		return hashBytes([]byte(rv.String()))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.Len() == 0 {
				return 0
			}
			return hashBytes(rv.Bytes())
		}
		var h uint32
		for i := 0; i < rv.Len(); i++ {
			h = 31*h + hashValue(rv.Index(i))
		}
		return h
	case reflect.Map:
		var h uint32
		iter := rv.MapRange()
		for iter.Next() {
			h += hashKey(iter.Key()) ^ hashValue(iter.Value())
		}
		return h
	case reflect.Struct:
		if rv.NumField() == 0 {
			return 0
		}
	}
	panic(fmt.Sprintf("thriftrt: cannot hash %s", rv.Type()))
}

// hashKey hashes a map key. Map lookup treats -0.0 and 0.0 as one key, so
// they hash alike here.
func hashKey(rv reflect.Value) uint32 {
	if k := rv.Kind(); (k == reflect.Float32 || k == reflect.Float64) && rv.Float() == 0 {
		return 0
	}
	return hashValue(rv)
}

func hashBytes(b []byte) uint32 {
	h := fnv.New32a()
	h.Write(b)
	return h.Sum32()
}
