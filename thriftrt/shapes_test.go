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
package thriftrt_test

import (
	"context"

	"github.com/apache/thrift/lib/go/thrift"

	"github.com/hertz-contrib/swagger-generate/thriftgen/thriftrt"
)

// Point and Either follow the shape of generated code.

type Point struct {
	x     *int32
	y     *int32
	label *string
}

func (s *Point) X() int32 { return *s.x }

func (s *Point) IsSetLabel() bool { return s.label != nil }

func (s *Point) Equal(other *Point) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	return thriftrt.PtrEqual(s.x, other.x) && thriftrt.PtrEqual(s.y, other.y) && thriftrt.PtrEqual(s.label, other.label)
}

func (s *Point) HashCode() uint32 {
	if s == nil {
		return 0
	}
	var code uint32 = 2166136261
	code ^= thriftrt.Hash(s.x)
	code *= 16777619
	code ^= thriftrt.Hash(s.y)
	code *= 16777619
	code ^= thriftrt.Hash(s.label)
	code *= 16777619
	return code
}

func (s *Point) String() string {
	if s == nil {
		return "null"
	}
	return "Point{x=" + thriftrt.Format(s.x) + ", y=" + thriftrt.Format(s.y) + ", label=" + thriftrt.Format(s.label) + "}"
}

func (s *Point) Write(ctx context.Context, p thrift.TProtocol) error {
	if err := p.WriteStructBegin(ctx, "Point"); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "x", thrift.I32, 1); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, *s.x); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if err := p.WriteFieldBegin(ctx, "y", thrift.I32, 2); err != nil {
		return err
	}
	if err := p.WriteI32(ctx, *s.y); err != nil {
		return err
	}
	if err := p.WriteFieldEnd(ctx); err != nil {
		return err
	}
	if s.label != nil {
		if err := p.WriteFieldBegin(ctx, "label", thrift.STRING, 3); err != nil {
			return err
		}
		if err := p.WriteString(ctx, *s.label); err != nil {
			return err
		}
		if err := p.WriteFieldEnd(ctx); err != nil {
			return err
		}
	}
	if err := p.WriteFieldStop(ctx); err != nil {
		return err
	}
	if err := p.WriteStructEnd(ctx); err != nil {
		return err
	}
	return nil
}

type PointBuilder struct {
	x     *int32
	y     *int32
	label *string
}

func NewPointBuilder() *PointBuilder {
	return &PointBuilder{}
}

func (b *PointBuilder) SetX(value int32) *PointBuilder {
	b.x = thriftrt.Ptr(value)
	return b
}

func (b *PointBuilder) SetY(value int32) *PointBuilder {
	b.y = thriftrt.Ptr(value)
	return b
}

func (b *PointBuilder) SetLabel(value string) *PointBuilder {
	b.label = thriftrt.Ptr(value)
	return b
}

func (b *PointBuilder) Build() (*Point, error) {
	if b.x == nil {
		return nil, &thriftrt.MissingFieldError{Struct: "Point", Field: "x"}
	}
	if b.y == nil {
		return nil, &thriftrt.MissingFieldError{Struct: "Point", Field: "y"}
	}
	return &Point{x: b.x, y: b.y, label: b.label}, nil
}

func ReadPointWith(ctx context.Context, p thrift.TProtocol, b *PointBuilder) (*Point, error) {
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return nil, err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return nil, err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if fieldType == thrift.I32 {
				v, err := p.ReadI32(ctx)
				if err != nil {
					return nil, err
				}
				b.SetX(v)
			} else {
				if err := p.Skip(ctx, fieldType); err != nil {
					return nil, err
				}
			}
		case 2:
			if fieldType == thrift.I32 {
				v, err := p.ReadI32(ctx)
				if err != nil {
					return nil, err
				}
				b.SetY(v)
			} else {
				if err := p.Skip(ctx, fieldType); err != nil {
					return nil, err
				}
			}
		case 3:
			if fieldType == thrift.STRING {
				v, err := p.ReadString(ctx)
				if err != nil {
					return nil, err
				}
				b.SetLabel(v)
			} else {
				if err := p.Skip(ctx, fieldType); err != nil {
					return nil, err
				}
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return nil, err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return nil, err
		}
	}
	if err := p.ReadStructEnd(ctx); err != nil {
		return nil, err
	}
	return b.Build()
}

func ReadPoint(ctx context.Context, p thrift.TProtocol) (*Point, error) {
	return ReadPointWith(ctx, p, NewPointBuilder())
}

type Color int32

const (
	Color_RED   Color = 1
	Color_GREEN Color = 2
)

func FindColorByValue(value int32) (Color, bool) {
	switch value {
	case 1:
		return Color_RED, true
	case 2:
		return Color_GREEN, true
	default:
		return 0, false
	}
}

type Either struct {
	left  *string
	color *Color
}

type EitherBuilder struct {
	left  *string
	color *Color
}

func (b *EitherBuilder) SetLeft(value string) *EitherBuilder {
	b.left = thriftrt.Ptr(value)
	return b
}

func (b *EitherBuilder) SetColor(value Color) *EitherBuilder {
	b.color = thriftrt.Ptr(value)
	return b
}

func (b *EitherBuilder) Build() (*Either, error) {
	setFields := 0
	if b.left != nil {
		setFields++
	}
	if b.color != nil {
		setFields++
	}
	if setFields != 1 {
		return nil, &thriftrt.UnionFieldCountError{Union: "Either", Count: setFields}
	}
	return &Either{left: b.left, color: b.color}, nil
}

func ReadEither(ctx context.Context, p thrift.TProtocol) (*Either, error) {
	b := &EitherBuilder{}
	if _, err := p.ReadStructBegin(ctx); err != nil {
		return nil, err
	}
	for {
		_, fieldType, fieldID, err := p.ReadFieldBegin(ctx)
		if err != nil {
			return nil, err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 2:
			if fieldType == thrift.I32 {
				v, err := p.ReadI32(ctx)
				if err != nil {
					return nil, err
				}
				e, ok := FindColorByValue(v)
				if !ok {
					return nil, thriftrt.UnknownEnum("Color", v)
				}
				b.SetColor(e)
			} else {
				if err := p.Skip(ctx, fieldType); err != nil {
					return nil, err
				}
			}
		default:
			if err := p.Skip(ctx, fieldType); err != nil {
				return nil, err
			}
		}
		if err := p.ReadFieldEnd(ctx); err != nil {
			return nil, err
		}
	}
	if err := p.ReadStructEnd(ctx); err != nil {
		return nil, err
	}
	return b.Build()
}
