// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Timer FSM states.
const (
	timerIdle hostsim.State = iota
	timerRunning
	timerPaused
	timerOverflow
)

// timerTaps is the rolling key generator's feedback tap set.
var timerTaps = []uint{127, 125, 100, 3}

// TimerConfig configures a Timer host.
type TimerConfig struct {
	// Width is the counter width in bits, 8..32.
	Width uint
	// Prescale is the number of ticks per counter increment, 1..256.
	Prescale uint
	// Seed is the 128-bit rolling key seed. Must be non-zero.
	Seed hostsim.Value
}

// TimerIn holds the timer's synchronous inputs.
type TimerIn struct {
	Rst        bool
	Start      bool
	Pause      bool
	Stop       bool
	LoadMatch  bool
	MatchValue hostsim.Value // counter width, truncated at the assignment boundary
}

// Timer is a prescaled free-running counter with a latched match value.
// While running, a 128-bit rolling key generator feeds the payload load
// port once per tick; the compare target is the latched match value XOR the
// low counter-width bits of the returned load word. The match flag latches
// on compare; the overflow pulse fires for one tick when the counter wraps.
//
type Timer struct {
	In TimerIn

	cfg  TimerConfig
	p    hostsim.KeyLoadPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	key  *hostsim.LFSR

	counter  *hostsim.Reg
	prescale *hostsim.Reg
	match    *hostsim.Reg
	matchHit *hostsim.Flag
	overflow *hostsim.Pulse
}

// NewTimer returns a timer host embedding payload p.
//
func NewTimer(cfg TimerConfig, p hostsim.KeyLoadPayload) (*Timer, error) {
	if p == nil {
		return nil, errors.New("timer: nil payload")
	}
	if cfg.Width < 8 || cfg.Width > 32 {
		return nil, errors.Errorf("timer: counter width %d out of range 8..32", cfg.Width)
	}
	if cfg.Prescale < 1 || cfg.Prescale > 256 {
		return nil, errors.Errorf("timer: prescale %d out of range 1..256", cfg.Prescale)
	}
	if cfg.Seed.Width() != hostsim.KeyWidth {
		return nil, errors.Errorf("timer: seed is %d bits, want %d", cfg.Seed.Width(), hostsim.KeyWidth)
	}
	b := hostsim.NewBank("timer")
	key, err := hostsim.NewLFSR(b, "key", cfg.Seed, timerTaps)
	if err != nil {
		return nil, errors.Wrap(err, "timer")
	}
	h := &Timer{
		cfg:      cfg,
		p:        p,
		bank:     b,
		key:      key,
		counter:  b.Reg("counter", cfg.Width),
		prescale: b.Reg("prescale", 9),
		match:    b.Reg("match", cfg.Width),
		matchHit: b.Flag("match_hit"),
		overflow: b.Pulse("overflow"),
	}
	h.fsm = hostsim.NewFSM(b, "timer", []hostsim.StepFn{
		timerIdle:     h.stepIdle,
		timerRunning:  h.stepRunning,
		timerPaused:   h.stepPaused,
		timerOverflow: h.stepOverflow,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Timer) Name() string { return "timer" }

// Bank implements hostsim.Host.
func (h *Timer) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Timer) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Timer) stepIdle() hostsim.State {
	if h.In.LoadMatch {
		h.match.Set(h.In.MatchValue)
	}
	if h.In.Start {
		h.counter.SetU(0)
		h.prescale.SetU(0)
		h.matchHit.Set(false)
		return timerRunning
	}
	return timerIdle
}

func (h *Timer) stepRunning() hostsim.State {
	if h.In.Stop {
		return timerIdle
	}
	if h.In.Pause {
		return timerPaused
	}
	load := hostsim.CallLoad(h.p, h.key.Value())
	h.key.Advance(true)
	target := h.match.Get().Xor(load.Resize(h.cfg.Width))

	pc := h.prescale.Get().Uint64() + 1
	if pc < uint64(h.cfg.Prescale) {
		h.prescale.SetU(pc)
		return timerRunning
	}
	h.prescale.SetU(0)
	v := h.counter.Get()
	if v.Eq(hostsim.W(h.cfg.Width, 0).Not()) {
		h.counter.SetU(0)
		h.overflow.Set()
		return timerOverflow
	}
	nv := v.AddU(1)
	h.counter.Set(nv)
	if nv.Eq(target) {
		h.matchHit.Set(true)
	}
	return timerRunning
}

func (h *Timer) stepPaused() hostsim.State {
	if h.In.Stop {
		return timerIdle
	}
	if h.In.Start {
		return timerRunning
	}
	return timerPaused
}

func (h *Timer) stepOverflow() hostsim.State {
	return timerIdle
}

// Counter returns the committed counter value.
func (h *Timer) Counter() hostsim.Value { return h.counter.Get() }

// Match reports the latched match flag.
func (h *Timer) Match() bool { return h.matchHit.Get() }

// Overflow reports the overflow pulse.
func (h *Timer) Overflow() bool { return h.overflow.Get() }

// State returns the committed control state.
func (h *Timer) State() hostsim.State { return h.fsm.State() }
