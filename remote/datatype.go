// Copyright 2025 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package remote

import (
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/juju/errors"
)

// ErrTypeMismatch is the error category for a value whose runtime type
// disagrees with the declared data type of the node it is crossing the
// remote boundary for, or which cannot be represented in that type.
const ErrTypeMismatch = errors.ConstError("type mismatch")

// The protocol represents unsigned integers natively. The host side of
// this library does not: every unsigned wire value is widened to the
// next wider signed type on read and narrowed back on write. These
// wrapper types make the wire representation unmistakable in Go code.
type (
	// UByte is the wire form of an 8-bit unsigned integer.
	UByte uint8
	// UShort is the wire form of a 16-bit unsigned integer.
	UShort uint16
	// UInt is the wire form of a 32-bit unsigned integer.
	UInt uint32
	// ULong is the wire form of a 64-bit unsigned integer.
	ULong uint64
)

// DataType is the declared type of a remote variable. Every value read
// from or written to the variable's node must match it exactly.
type DataType string

const (
	Boolean  DataType = "boolean"
	SByte    DataType = "sbyte"
	Byte     DataType = "byte"
	Int16    DataType = "int16"
	UInt16   DataType = "uint16"
	Int32    DataType = "int32"
	UInt32   DataType = "uint32"
	Int64    DataType = "int64"
	UInt64   DataType = "uint64"
	Float    DataType = "float"
	Double   DataType = "double"
	String   DataType = "string"
	DateTime DataType = "datetime"
)

type typeSpec struct {
	wire reflect.Type
	host reflect.Type

	// widen converts a checked wire value to its host representation;
	// narrow is the reverse and may reject values that do not fit the
	// wire type. A nil func means the representations are identical.
	widen  func(any) any
	narrow func(any) (any, error)
}

var bigIntType = reflect.TypeOf((*big.Int)(nil))

func identitySpec(zero any) typeSpec {
	t := reflect.TypeOf(zero)
	return typeSpec{wire: t, host: t}
}

var typeSpecs = map[DataType]typeSpec{
	Boolean: identitySpec(false),
	SByte:   identitySpec(int8(0)),
	Byte: {
		wire:  reflect.TypeOf(UByte(0)),
		host:  reflect.TypeOf(int16(0)),
		widen: func(v any) any { return int16(v.(UByte)) },
		narrow: func(v any) (any, error) {
			i := v.(int16)
			if i < 0 || i > math.MaxUint8 {
				return nil, errors.Errorf("value %d out of range for %q", i, Byte)
			}
			return UByte(i), nil
		},
	},
	Int16: identitySpec(int16(0)),
	UInt16: {
		wire:  reflect.TypeOf(UShort(0)),
		host:  reflect.TypeOf(int32(0)),
		widen: func(v any) any { return int32(v.(UShort)) },
		narrow: func(v any) (any, error) {
			i := v.(int32)
			if i < 0 || i > math.MaxUint16 {
				return nil, errors.Errorf("value %d out of range for %q", i, UInt16)
			}
			return UShort(i), nil
		},
	},
	Int32: identitySpec(int32(0)),
	UInt32: {
		wire:  reflect.TypeOf(UInt(0)),
		host:  reflect.TypeOf(int64(0)),
		widen: func(v any) any { return int64(v.(UInt)) },
		narrow: func(v any) (any, error) {
			i := v.(int64)
			if i < 0 || i > math.MaxUint32 {
				return nil, errors.Errorf("value %d out of range for %q", i, UInt32)
			}
			return UInt(i), nil
		},
	},
	Int64: identitySpec(int64(0)),
	UInt64: {
		wire:  reflect.TypeOf(ULong(0)),
		host:  bigIntType,
		widen: func(v any) any { return new(big.Int).SetUint64(uint64(v.(ULong))) },
		narrow: func(v any) (any, error) {
			b := v.(*big.Int)
			if b == nil || b.Sign() < 0 || !b.IsUint64() {
				return nil, errors.Errorf("value %v out of range for %q", b, UInt64)
			}
			return ULong(b.Uint64()), nil
		},
	},
	Float:    identitySpec(float32(0)),
	Double:   identitySpec(float64(0)),
	String:   identitySpec(""),
	DateTime: identitySpec(time.Time{}),
}

// IsValid reports whether t names a known data type.
func (t DataType) IsValid() bool {
	_, ok := typeSpecs[t]
	return ok
}

// WireType returns the Go type of values crossing the protocol boundary
// for this data type.
func (t DataType) WireType() reflect.Type {
	return typeSpecs[t].wire
}

// HostType returns the Go type this library presents for values of this
// data type. Unsigned kinds widen to the next wider signed type; UInt64
// widens to *big.Int as there is no wider fixed-size signed integer.
func (t DataType) HostType() reflect.Type {
	return typeSpecs[t].host
}

// FromWire checks that value, as received from a remote read, has
// exactly this data type's wire representation and converts it to the
// host representation. A wrong runtime type is an ErrTypeMismatch error.
func (t DataType) FromWire(value any) (any, error) {
	spec, ok := typeSpecs[t]
	if !ok {
		return nil, errors.NotValidf("data type %q", string(t))
	}
	if value == nil || reflect.TypeOf(value) != spec.wire {
		return nil, errors.WithType(errors.Errorf(
			"declared type %q expects wire values of %s, got %T", t, spec.wire, value,
		), ErrTypeMismatch)
	}
	if spec.widen == nil {
		return value, nil
	}
	return spec.widen(value), nil
}

// ToWire checks that value, as supplied by the host side, has exactly
// this data type's host representation and converts it back to the wire
// representation. A wrong runtime type, or a value outside the wire
// type's range, is an ErrTypeMismatch error.
func (t DataType) ToWire(value any) (any, error) {
	spec, ok := typeSpecs[t]
	if !ok {
		return nil, errors.NotValidf("data type %q", string(t))
	}
	if value == nil || reflect.TypeOf(value) != spec.host {
		return nil, errors.WithType(errors.Errorf(
			"declared type %q expects host values of %s, got %T", t, spec.host, value,
		), ErrTypeMismatch)
	}
	if spec.narrow == nil {
		return value, nil
	}
	converted, err := spec.narrow(value)
	if err != nil {
		return nil, errors.WithType(err, ErrTypeMismatch)
	}
	return converted, nil
}
