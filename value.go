// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// MaxWidth is the largest declarable value width in bits.
const MaxWidth = 256

// A Value is an unsigned integer of a declared bit width between 1 and
// MaxWidth. All operations truncate their result to the receiver's width by
// discarding high order bits; shifts are logical (zero fill). Values are
// immutable; operations return new Values.
//
type Value struct {
	width uint
	bits  uint256.Int
}

func checkValueWidth(w uint) {
	if w == 0 || w > MaxWidth {
		panic(errors.Errorf("invalid value width %d, want 1..%d", w, MaxWidth))
	}
}

// W returns a Value of the given width holding x truncated to that width.
//
func W(width uint, x uint64) Value {
	checkValueWidth(width)
	var v Value
	v.width = width
	v.bits.SetUint64(x)
	return v.trunc()
}

// FromHex returns a Value of the given width parsed from a hex string, with
// or without a 0x prefix. The parsed value must fit the declared width.
//
func FromHex(width uint, s string) (Value, error) {
	checkValueWidth(width)
	digits := strings.TrimPrefix(s, "0x")
	if digits == "" {
		return Value{}, errors.Errorf("value %q: empty hex number", s)
	}
	if len(digits) > MaxWidth/4 {
		return Value{}, errors.Errorf("value %q does not fit in %d bits", s, MaxWidth)
	}
	var v Value
	v.width = width
	var nibble uint256.Int
	for _, c := range digits {
		var n uint64
		switch {
		case c >= '0' && c <= '9':
			n = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			n = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			n = uint64(c-'A') + 10
		default:
			return Value{}, errors.Errorf("value %q: invalid hex digit %q", s, c)
		}
		v.bits.Lsh(&v.bits, 4)
		nibble.SetUint64(n)
		v.bits.Or(&v.bits, &nibble)
	}
	t := v.trunc()
	if !v.bits.Eq(&t.bits) {
		return Value{}, errors.Errorf("value %s does not fit in %d bits", s, width)
	}
	return v, nil
}

// MustHex is like FromHex but panics on error. It is intended for constants.
//
func MustHex(width uint, s string) Value {
	v, err := FromHex(width, s)
	if err != nil {
		panic(err)
	}
	return v
}

// trunc masks the value to its declared width.
func (v Value) trunc() Value {
	if v.width >= MaxWidth {
		return v
	}
	var m uint256.Int
	m.SetUint64(1)
	m.Lsh(&m, v.width)
	m.SubUint64(&m, 1)
	v.bits.And(&v.bits, &m)
	return v
}

// Width returns the declared width in bits.
func (v Value) Width() uint { return v.width }

// Uint64 returns the low 64 bits of the value.
func (v Value) Uint64() uint64 { return v.bits.Uint64() }

// Hex returns the value as a 0x-prefixed hex string.
func (v Value) Hex() string { return v.bits.Hex() }

// IsZero reports whether the value is zero.
func (v Value) IsZero() bool { return v.bits.IsZero() }

// Eq reports whether v and o hold the same number, regardless of width.
func (v Value) Eq(o Value) bool { return v.bits.Eq(&o.bits) }

// EqU reports whether v equals x truncated to v's width.
func (v Value) EqU(x uint64) bool { return v.Eq(W(v.width, x)) }

// Bit returns bit i of the value. Bits at or above the declared width read as
// zero.
func (v Value) Bit(i uint) bool {
	if i >= v.width {
		return false
	}
	return v.bits[i/64]>>(i%64)&1 == 1
}

// Resize returns the value truncated or zero extended to the given width.
//
func (v Value) Resize(width uint) Value {
	checkValueWidth(width)
	v.width = width
	return v.trunc()
}

// Slice returns bits hi down to lo (inclusive) as a value of width hi-lo+1.
//
func (v Value) Slice(hi, lo uint) Value {
	if hi < lo || hi >= v.width {
		panic(errors.Errorf("bit slice [%d:%d] out of range for %d bit value", hi, lo, v.width))
	}
	var r Value
	r.width = hi - lo + 1
	r.bits.Rsh(&v.bits, lo)
	return r.trunc()
}

// Add returns v + o truncated to v's width.
func (v Value) Add(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Add(&v.bits, &o.bits)
	return r.trunc()
}

// AddU returns v + x truncated to v's width.
func (v Value) AddU(x uint64) Value { return v.Add(W(v.width, x)) }

// Sub returns v - o with wraparound at v's width.
func (v Value) Sub(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Sub(&v.bits, &o.bits)
	return r.trunc()
}

// SubU returns v - x with wraparound at v's width.
func (v Value) SubU(x uint64) Value { return v.Sub(W(v.width, x)) }

// Mul returns v * o truncated to v's width.
func (v Value) Mul(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Mul(&v.bits, &o.bits)
	return r.trunc()
}

// Div returns v / o. A zero divisor yields zero; this is the guarded
// division used by datapaths that check for it.
func (v Value) Div(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Div(&v.bits, &o.bits)
	return r.trunc()
}

// And returns v & o at v's width.
func (v Value) And(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.And(&v.bits, &o.bits)
	return r.trunc()
}

// Or returns v | o truncated to v's width.
func (v Value) Or(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Or(&v.bits, &o.bits)
	return r.trunc()
}

// Xor returns v ^ o truncated to v's width.
func (v Value) Xor(o Value) Value {
	var r Value
	r.width = v.width
	r.bits.Xor(&v.bits, &o.bits)
	return r.trunc()
}

// Not returns the bitwise complement of v at v's width.
func (v Value) Not() Value {
	var r Value
	r.width = v.width
	r.bits.Not(&v.bits)
	return r.trunc()
}

// Lsh returns v shifted left by n bits, truncated to v's width.
func (v Value) Lsh(n uint) Value {
	var r Value
	r.width = v.width
	r.bits.Lsh(&v.bits, n)
	return r.trunc()
}

// Rsh returns v shifted right by n bits, zero filled.
func (v Value) Rsh(n uint) Value {
	var r Value
	r.width = v.width
	r.bits.Rsh(&v.bits, n)
	return r
}
