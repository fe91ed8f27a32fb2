// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Signal FSM states.
const (
	sigIdle hostsim.State = iota
	sigShift
	sigFilter
	sigOutput
)

// sigCoeffs is the fixed 8-tap symmetric filter kernel.
var sigCoeffs = [8]uint64{1, 2, 3, 4, 4, 3, 2, 1}

// SignalIn holds the filter's synchronous inputs.
type SignalIn struct {
	Rst    bool
	Start  bool
	Sample hostsim.Value // 8 bits
	Mode   hostsim.Value // 2 bits
}

// Signal is an 8-tap FIR filter over 8-bit samples. Each accepted sample
// shifts through the delay line, the fixed kernel accumulates into a 16-bit
// word, and the five oldest taps plus the mode input go to the payload mode
// port; the returned word is XORed into the output. The signal host carries
// no generator: the payload's inputs are entirely host data.
type Signal struct {
	In SignalIn

	p    hostsim.ModePayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM

	delay *hostsim.Mem
	out   *hostsim.Reg
	done  *hostsim.Pulse
}

// NewSignal returns a signal host embedding payload p.
//
func NewSignal(p hostsim.ModePayload) (*Signal, error) {
	if p == nil {
		return nil, errors.New("signal: nil payload")
	}
	b := hostsim.NewBank("signal")
	h := &Signal{
		p:     p,
		bank:  b,
		delay: b.Mem("delay", 8, 8),
		out:   b.Reg("out", 16),
		done:  b.Pulse("done"),
	}
	h.fsm = hostsim.NewFSM(b, "signal", []hostsim.StepFn{
		sigIdle:   h.stepIdle,
		sigShift:  h.stepShift,
		sigFilter: h.stepFilter,
		sigOutput: h.stepOutput,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Signal) Name() string { return "signal" }

// Bank implements hostsim.Host.
func (h *Signal) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Signal) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Signal) stepIdle() hostsim.State {
	if h.In.Start {
		return sigShift
	}
	return sigIdle
}

func (h *Signal) stepShift() hostsim.State {
	for i := uint(7); i > 0; i-- {
		h.delay.Set(i, h.delay.Get(i-1))
	}
	h.delay.Set(0, h.In.Sample)
	return sigFilter
}

func (h *Signal) stepFilter() hostsim.State {
	sum := hostsim.W(16, 0)
	for i := uint(0); i < 8; i++ {
		sum = sum.Add(h.delay.Get(i).Resize(16).Mul(hostsim.W(16, sigCoeffs[i])))
	}
	mix := hostsim.CallMix(h.p,
		h.delay.Get(0), h.delay.Get(1), h.delay.Get(2),
		h.delay.Get(3), h.delay.Get(4),
		h.In.Mode)
	h.out.Set(sum.Xor(mix))
	h.done.Set()
	return sigOutput
}

func (h *Signal) stepOutput() hostsim.State {
	return sigIdle
}

// Out returns the committed filter output.
func (h *Signal) Out() hostsim.Value { return h.out.Get() }

// Done reports the sample-complete pulse.
func (h *Signal) Done() bool { return h.done.Get() }

// State returns the committed control state.
func (h *Signal) State() hostsim.State { return h.fsm.State() }
