// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Audio FSM states.
const (
	audioIdle hostsim.State = iota
	audioProcess
	audioFilter
	audioVolume
	audioOutput
)

// audioTaps is the audio generator's feedback tap set.
var audioTaps = []uint{7, 6, 5, 0}

// audioCoeffs are the 4-tap FIR coefficients.
var audioCoeffs = [4]uint64{1, 3, 3, 1}

// AudioConfig configures an Audio host.
type AudioConfig struct {
	// Seed is the sequence generator's initial value. Must be non-zero.
	Seed uint64
}

// AudioIn holds the audio pipeline's synchronous inputs.
type AudioIn struct {
	Rst         bool
	SampleValid bool
	Sample      hostsim.Value // 16 bits
	Volume      hostsim.Value // 8 bits, read at the volume stage
}

// Audio is a four-stage sample pipeline: a latched sample is pushed through
// a 4-tap FIR delay line, scaled by the 8-bit volume (times volume, shifted
// right by 8), then mixed with the payload compute port. The payload
// operands are the delay taps' low bytes plus the sequence generator's
// value, selected by the low bits of the sample counter. The audio-ready
// pulse fires while the machine is in its output state.
//
type Audio struct {
	In AudioIn

	p    hostsim.ALUPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	delay  *hostsim.Mem
	sample *hostsim.Reg
	count  *hostsim.Reg
	fir    *hostsim.Reg
	out    *hostsim.Reg
	ready  *hostsim.Pulse
}

// NewAudio returns an audio host embedding payload p.
//
func NewAudio(cfg AudioConfig, p hostsim.ALUPayload) (*Audio, error) {
	if p == nil {
		return nil, errors.New("audio: nil payload")
	}
	b := hostsim.NewBank("audio")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.OperandWidth, cfg.Seed), audioTaps)
	if err != nil {
		return nil, errors.Wrap(err, "audio")
	}
	h := &Audio{
		p:      p,
		bank:   b,
		gen:    gen,
		delay:  b.Mem("delay", 16, 4),
		sample: b.Reg("sample", 16),
		count:  b.Reg("count", 8),
		fir:    b.Reg("fir", 16),
		out:    b.Reg("out", 16),
		ready:  b.Pulse("audio_ready"),
	}
	h.fsm = hostsim.NewFSM(b, "audio", []hostsim.StepFn{
		audioIdle:    h.stepIdle,
		audioProcess: h.stepProcess,
		audioFilter:  h.stepFilter,
		audioVolume:  h.stepVolume,
		audioOutput:  h.stepOutput,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Audio) Name() string { return "audio" }

// Bank implements hostsim.Host.
func (h *Audio) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Audio) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Audio) stepIdle() hostsim.State {
	if h.In.SampleValid {
		h.sample.Set(h.In.Sample)
		return audioProcess
	}
	return audioIdle
}

func (h *Audio) stepProcess() hostsim.State {
	h.delay.Set(3, h.delay.Get(2))
	h.delay.Set(2, h.delay.Get(1))
	h.delay.Set(1, h.delay.Get(0))
	h.delay.Set(0, h.sample.Get())
	h.count.Set(h.count.Get().AddU(1))
	h.gen.Advance(true)
	return audioFilter
}

func (h *Audio) stepFilter() hostsim.State {
	sum := hostsim.W(16, 0)
	for i, c := range audioCoeffs {
		sum = sum.Add(h.delay.Get(uint(i)).Mul(hostsim.W(16, c)))
	}
	h.fir.Set(sum)
	return audioVolume
}

func (h *Audio) stepVolume() hostsim.State {
	scaled := h.fir.Get().Mul(h.In.Volume.Resize(16)).Rsh(8)
	mix := hostsim.CallCompute(h.p,
		h.delay.Get(0).Slice(7, 0),
		h.delay.Get(1).Slice(7, 0),
		h.delay.Get(2).Slice(7, 0),
		h.delay.Get(3).Slice(7, 0),
		h.gen.Value(),
		h.count.Get().Slice(2, 0))
	h.out.Set(scaled.Xor(mix))
	h.ready.Set()
	return audioOutput
}

func (h *Audio) stepOutput() hostsim.State {
	return audioIdle
}

// Out returns the last processed sample.
func (h *Audio) Out() hostsim.Value { return h.out.Get() }

// Ready reports the audio-ready pulse.
func (h *Audio) Ready() bool { return h.ready.Get() }

// State returns the committed control state.
func (h *Audio) State() hostsim.State { return h.fsm.State() }
