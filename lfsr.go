// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"github.com/pkg/errors"
)

// An LFSR is a linear feedback shift register: a fully deterministic
// pseudo-random sequence generator. On each active tick the next value is
// the current value shifted left by one with the XOR of the tapped bits
// shifted in at bit zero, truncated to the generator's width. Reset returns
// the generator to its seed.
//
// The LFSR is a Clocked element of its host's bank, so its value commits and
// resets together with the rest of the host state.
//
type LFSR struct {
	name     string
	width    uint
	seed     Value
	taps     []uint
	cur, nxt Value
}

// NewLFSR allocates a generator on bank b. The generator's width is the
// seed's width. The seed must be non-zero (the all-zero state is a fixed
// point of the feedback function) and every tap must lie below the width.
//
func NewLFSR(b *Bank, name string, seed Value, taps []uint) (*LFSR, error) {
	if seed.IsZero() {
		return nil, errors.Errorf("lfsr %s: zero seed", name)
	}
	if len(taps) == 0 {
		return nil, errors.Errorf("lfsr %s: empty tap set", name)
	}
	for _, t := range taps {
		if t >= seed.Width() {
			return nil, errors.Errorf("lfsr %s: tap %d out of range for width %d", name, t, seed.Width())
		}
	}
	l := &LFSR{
		name:  name,
		width: seed.Width(),
		seed:  seed,
		taps:  append([]uint(nil), taps...),
		cur:   seed,
		nxt:   seed,
	}
	b.Attach(l)
	return l, nil
}

// Value returns the committed generator value.
func (l *LFSR) Value() Value { return l.cur }

// Width returns the generator width in bits.
func (l *LFSR) Width() uint { return l.width }

// Advance schedules the shift-and-feedback step for the next tick when
// active is true and leaves the generator unchanged otherwise.
//
func (l *LFSR) Advance(active bool) {
	if !active {
		return
	}
	fb := false
	for _, t := range l.taps {
		if l.cur.Bit(t) {
			fb = !fb
		}
	}
	v := l.cur.Lsh(1)
	if fb {
		v = v.Or(W(l.width, 1))
	}
	l.nxt = v
}

// Commit implements Clocked.
func (l *LFSR) Commit() { l.cur = l.nxt }

// Reset implements Clocked. The generator returns to its seed.
func (l *LFSR) Reset() { l.nxt = l.seed }
