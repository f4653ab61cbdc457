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
	"sort"
	"strconv"
	"strings"
)

// Format renders a field value for diagnostic string output. Unset values
// render as "null"; binary values render as hex.
func Format(v any) string {
	var sb strings.Builder
	format(&sb, reflect.ValueOf(v))
	return sb.String()
}

func format(sb *strings.Builder, rv reflect.Value) {
	if !rv.IsValid() {
		sb.WriteString("null")
		return
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		if rv.IsNil() {
			sb.WriteString("null")
			return
		}
	}
	if rv.CanInterface() {
		if s, ok := rv.Interface().(fmt.Stringer); ok {
			sb.WriteString(s.String())
			return
		}
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		format(sb, rv.Elem())
	case reflect.Bool:
		sb.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Float32, reflect.Float64:
		sb.WriteString(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	case reflect.String:
		sb.WriteString(rv.String())
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			fmt.Fprintf(sb, "0x%x", rv.Bytes())
			return
		}
		sb.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				sb.WriteString(", ")
			}
			format(sb, rv.Index(i))
		}
		sb.WriteByte(']')
	case reflect.Map:
		set := rv.Type().Elem().Size() == 0
		entries := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			entry := Format(iter.Key().Interface())
			if !set {
				entry += "=" + Format(iter.Value().Interface())
			}
			entries = append(entries, entry)
		}
		// Map order is random; sorting keeps the output stable.
		sort.Strings(entries)
		sb.WriteByte('{')
		sb.WriteString(strings.Join(entries, ", "))
		sb.WriteByte('}')
	default:
		fmt.Fprint(sb, rv.Interface())
	}
}
