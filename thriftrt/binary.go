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
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Writer is implemented by every generated value type.
type Writer interface {
	Write(ctx context.Context, p thrift.TProtocol) error
}

// Marshal encodes v with the binary protocol.
func Marshal(ctx context.Context, v Writer) ([]byte, error) {
	buf := thrift.NewTMemoryBuffer()
	p := thrift.NewTBinaryProtocolConf(buf, &thrift.TConfiguration{})
	if err := v.Write(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	if err := p.Flush(ctx); err != nil {
		return nil, fmt.Errorf("failed to marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a binary protocol payload with read, typically a
// generated Read function.
func Unmarshal[T any](ctx context.Context, data []byte, read func(context.Context, thrift.TProtocol) (T, error)) (T, error) {
	buf := thrift.NewTMemoryBuffer()
	if _, err := buf.Write(data); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal: %w", err)
	}
	v, err := read(ctx, thrift.NewTBinaryProtocolConf(buf, &thrift.TConfiguration{}))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal: %w", err)
	}
	return v, nil
}
