// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Counter FSM states.
const (
	counterIdle hostsim.State = iota
	counterCount
	counterUnder
	counterOver
)

// counterTaps is the counter generator's feedback tap set.
var counterTaps = []uint{15, 13, 12, 10}

// CounterConfig configures a Counter host.
type CounterConfig struct {
	// Seed is the sequence generator's initial value. Must be non-zero.
	Seed uint64
}

// CounterIn holds the counter's synchronous inputs.
type CounterIn struct {
	Rst         bool
	LoadEnable  bool
	LoadValue   hostsim.Value // 16 bits, truncated at the assignment boundary
	CountEnable bool
	Down        bool // count direction: false up, true down
}

// Counter is a 16-bit loadable up/down counter. While counting it feeds its
// sequence generator to the payload data port every active tick; on a wrap
// the payload's output is XORed into the wrapped value and the matching
// overflow or underflow pulse fires for one tick.
//
type Counter struct {
	In CounterIn

	p    hostsim.DataPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	value     *hostsim.Reg
	overflow  *hostsim.Pulse
	underflow *hostsim.Pulse
}

// NewCounter returns a counter host embedding payload p.
//
func NewCounter(cfg CounterConfig, p hostsim.DataPayload) (*Counter, error) {
	if p == nil {
		return nil, errors.New("counter: nil payload")
	}
	b := hostsim.NewBank("counter")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.DataWidth, cfg.Seed), counterTaps)
	if err != nil {
		return nil, errors.Wrap(err, "counter")
	}
	h := &Counter{
		p:         p,
		bank:      b,
		gen:       gen,
		value:     b.Reg("value", 16),
		overflow:  b.Pulse("overflow"),
		underflow: b.Pulse("underflow"),
	}
	h.fsm = hostsim.NewFSM(b, "counter", []hostsim.StepFn{
		counterIdle:  h.stepIdle,
		counterCount: h.stepCount,
		counterUnder: h.stepDone,
		counterOver:  h.stepDone,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Counter) Name() string { return "counter" }

// Bank implements hostsim.Host.
func (h *Counter) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Counter) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Counter) stepIdle() hostsim.State {
	if h.In.LoadEnable {
		h.value.Set(h.In.LoadValue)
		return counterIdle
	}
	if h.In.CountEnable {
		return h.count()
	}
	return counterIdle
}

func (h *Counter) stepCount() hostsim.State {
	if !h.In.CountEnable {
		return counterIdle
	}
	return h.count()
}

func (h *Counter) stepDone() hostsim.State {
	return counterIdle
}

func (h *Counter) count() hostsim.State {
	mix := hostsim.CallData(h.p, h.gen.Value())
	h.gen.Advance(true)
	v := h.value.Get()
	if h.In.Down {
		if v.IsZero() {
			h.value.Set(hostsim.W(16, 0xffff).Xor(mix))
			h.underflow.Set()
			return counterUnder
		}
		h.value.Set(v.SubU(1))
		return counterCount
	}
	if v.EqU(0xffff) {
		// 0x0000 XOR payload output
		h.value.Set(mix)
		h.overflow.Set()
		return counterOver
	}
	h.value.Set(v.AddU(1))
	return counterCount
}

// Value returns the committed counter value.
func (h *Counter) Value() hostsim.Value { return h.value.Get() }

// Overflow reports the overflow pulse.
func (h *Counter) Overflow() bool { return h.overflow.Get() }

// Underflow reports the underflow pulse.
func (h *Counter) Underflow() bool { return h.underflow.Get() }

// State returns the committed control state.
func (h *Counter) State() hostsim.State { return h.fsm.State() }
