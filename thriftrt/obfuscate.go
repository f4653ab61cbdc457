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
	"reflect"
)

// ObfuscateHash renders an obfuscated scalar as the hex form of its hash.
func ObfuscateHash(v any) string {
	if isNull(v) {
		return "null"
	}
	return fmt.Sprintf("%08X", Hash(v))
}

// SummarizeCollection renders an obfuscated list or set as its kind,
// element type and size, as in "List<string>(size=3)".
func SummarizeCollection(v any, kind, elem string) string {
	if isNull(v) {
		return "null"
	}
	return fmt.Sprintf("%s<%s>(size=%d)", kind, elem, reflect.ValueOf(v).Len())
}

// SummarizeMap renders an obfuscated map as its key and value types and
// size, as in "Map<string, i32>(size=2)".
func SummarizeMap(v any, key, value string) string {
	if isNull(v) {
		return "null"
	}
	return fmt.Sprintf("Map<%s, %s>(size=%d)", key, value, reflect.ValueOf(v).Len())
}

func isNull(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return rv.IsNil()
	}
	return false
}
