// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// ECC FSM states.
const (
	eccIdle hostsim.State = iota
	eccScalarMult
	eccDone
)

// eccTaps is the key generator's feedback tap set.
var eccTaps = []uint{63, 62, 60, 59}

// scalar width; one doubling step per tick.
const eccScalarBits = 32

// EccConfig configures an Ecc host.
type EccConfig struct {
	// Seed is the 64-bit key generator's initial value. Must be non-zero.
	Seed uint64
}

// EccIn holds the scalar multiplier's synchronous inputs.
type EccIn struct {
	Rst    bool
	Start  bool
	Scalar hostsim.Value // 32 bits
	X      hostsim.Value // 32 bits
	Y      hostsim.Value // 32 bits
}

// Ecc is a binary scalar multiplier running MSB-first double-and-add over
// componentwise mod 2^32 coordinate arithmetic, one scalar bit per tick. A
// 64-bit key generator advances on every working tick; on the final step
// the payload leak port is consulted and the leak word is XORed into the
// result coordinates, high half into X, low half into Y. Scalar zero yields
// the zero accumulator; scalar one yields the input point.
//
type Ecc struct {
	In EccIn

	p    hostsim.LeakPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	key  *hostsim.LFSR

	k      *hostsim.Reg
	px, py *hostsim.Reg
	ax, ay *hostsim.Reg
	bit    *hostsim.Reg
	rx, ry *hostsim.Reg
	done   *hostsim.Pulse
}

// NewEcc returns an ecc host embedding payload p.
//
func NewEcc(cfg EccConfig, p hostsim.LeakPayload) (*Ecc, error) {
	if p == nil {
		return nil, errors.New("ecc: nil payload")
	}
	b := hostsim.NewBank("ecc")
	key, err := hostsim.NewLFSR(b, "key", hostsim.W(hostsim.LeakKeyWidth, cfg.Seed), eccTaps)
	if err != nil {
		return nil, errors.Wrap(err, "ecc")
	}
	h := &Ecc{
		p:    p,
		bank: b,
		key:  key,
		k:    b.Reg("k", eccScalarBits),
		px:   b.Reg("px", 32),
		py:   b.Reg("py", 32),
		ax:   b.Reg("ax", 32),
		ay:   b.Reg("ay", 32),
		bit:  b.Reg("bit", 6),
		rx:   b.Reg("rx", 32),
		ry:   b.Reg("ry", 32),
		done: b.Pulse("ecc_done"),
	}
	h.fsm = hostsim.NewFSM(b, "ecc", []hostsim.StepFn{
		eccIdle:       h.stepIdle,
		eccScalarMult: h.stepScalarMult,
		eccDone:       h.stepDone,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Ecc) Name() string { return "ecc" }

// Bank implements hostsim.Host.
func (h *Ecc) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Ecc) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Ecc) stepIdle() hostsim.State {
	if h.In.Start {
		h.k.Set(h.In.Scalar)
		h.px.Set(h.In.X)
		h.py.Set(h.In.Y)
		h.ax.SetU(0)
		h.ay.SetU(0)
		h.bit.SetU(eccScalarBits - 1)
		return eccScalarMult
	}
	return eccIdle
}

func (h *Ecc) stepScalarMult() hostsim.State {
	h.key.Advance(true)
	i := uint(h.bit.Get().Uint64())

	// double, then conditionally add the base point
	nax := h.ax.Get().Lsh(1)
	nay := h.ay.Get().Lsh(1)
	if h.k.Get().Bit(i) {
		nax = nax.Add(h.px.Get())
		nay = nay.Add(h.py.Get())
	}
	h.ax.Set(nax)
	h.ay.Set(nay)

	if i == 0 {
		leak := hostsim.CallLeak(h.p, h.key.Value())
		h.rx.Set(nax.Xor(leak.Slice(63, 32)))
		h.ry.Set(nay.Xor(leak.Slice(31, 0)))
		h.done.Set()
		return eccDone
	}
	h.bit.SetU(uint64(i) - 1)
	return eccScalarMult
}

func (h *Ecc) stepDone() hostsim.State {
	return eccIdle
}

// ResultX returns the X coordinate of the last result.
func (h *Ecc) ResultX() hostsim.Value { return h.rx.Get() }

// ResultY returns the Y coordinate of the last result.
func (h *Ecc) ResultY() hostsim.Value { return h.ry.Get() }

// Done reports the ecc-done pulse.
func (h *Ecc) Done() bool { return h.done.Get() }

// State returns the committed control state.
func (h *Ecc) State() hostsim.State { return h.fsm.State() }
