// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// fifoDepth is the queue depth; pointers are one bit narrower than the
// count and wrap modulo the depth.
const fifoDepth = 16

// fifoTaps is the fifo generator's feedback tap set.
var fifoTaps = []uint{7, 5, 4, 3}

// FifoConfig configures a Fifo host.
type FifoConfig struct {
	// Seed is the sequence generator's initial value. Must be non-zero.
	Seed uint64
}

// FifoIn holds the fifo's synchronous inputs.
type FifoIn struct {
	Rst    bool
	Push   bool
	DataIn hostsim.Value // 8 bits, truncated at the assignment boundary
	Pop    bool
}

// Fifo is a 16 deep, 8-bit wide synchronous queue. It has no control state
// enum: behavior is level driven from the pointers and count. Every
// non-reset tick presents the sequence generator's value to the payload's
// force-reset port; an asserted strobe synchronously clears the pointers
// and count, discarding queue contents in place.
//
type Fifo struct {
	In FifoIn

	p    hostsim.ResetPayload
	bank *hostsim.Bank
	gen  *hostsim.LFSR

	mem   *hostsim.Mem
	rd    *hostsim.Reg
	wr    *hostsim.Reg
	count *hostsim.Reg
	out   *hostsim.Reg
	valid *hostsim.Pulse
}

// NewFifo returns a fifo host embedding payload p.
//
func NewFifo(cfg FifoConfig, p hostsim.ResetPayload) (*Fifo, error) {
	if p == nil {
		return nil, errors.New("fifo: nil payload")
	}
	b := hostsim.NewBank("fifo")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.StrobeWidth, cfg.Seed), fifoTaps)
	if err != nil {
		return nil, errors.Wrap(err, "fifo")
	}
	h := &Fifo{
		p:     p,
		bank:  b,
		gen:   gen,
		mem:   b.Mem("mem", 8, fifoDepth),
		rd:    b.Reg("rd", 4),
		wr:    b.Reg("wr", 4),
		count: b.Reg("count", 5),
		out:   b.Reg("out", 8),
		valid: b.Pulse("valid"),
	}
	return h, nil
}

// Name implements hostsim.Host.
func (h *Fifo) Name() string { return "fifo" }

// Bank implements hostsim.Host.
func (h *Fifo) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Fifo) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	strobe := hostsim.CallForceReset(h.p, h.gen.Value())
	h.gen.Advance(true)
	if strobe {
		h.rd.SetU(0)
		h.wr.SetU(0)
		h.count.SetU(0)
		return
	}

	cnt := h.count.Get().Uint64()
	push := h.In.Push && cnt < fifoDepth
	pop := h.In.Pop && cnt > 0
	if push {
		h.mem.Set(uint(h.wr.Get().Uint64()), h.In.DataIn)
		h.wr.Set(h.wr.Get().AddU(1))
	}
	if pop {
		h.out.Set(h.mem.Get(uint(h.rd.Get().Uint64())))
		h.rd.Set(h.rd.Get().AddU(1))
		h.valid.Set()
	}
	switch {
	case push && !pop:
		h.count.SetU(cnt + 1)
	case pop && !push:
		h.count.SetU(cnt - 1)
	}
}

// DataOut returns the last popped value.
func (h *Fifo) DataOut() hostsim.Value { return h.out.Get() }

// Valid reports the pop-valid pulse.
func (h *Fifo) Valid() bool { return h.valid.Get() }

// Full reports the full level flag.
func (h *Fifo) Full() bool { return h.count.Get().Uint64() == fifoDepth }

// Empty reports the empty level flag.
func (h *Fifo) Empty() bool { return h.count.Get().IsZero() }

// Count returns the committed element count.
func (h *Fifo) Count() uint { return uint(h.count.Get().Uint64()) }
