// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim_test

import (
	"testing"

	hs "github.com/swear01/hostsim"
)

// toggler is a minimal host: a one-bit register inverted every tick.
type toggler struct {
	rst  bool
	bank *hs.Bank
	q    *hs.Reg
}

func newToggler() *toggler {
	b := hs.NewBank("toggler")
	return &toggler{bank: b, q: b.Reg("q", 1)}
}

func (h *toggler) Name() string   { return "toggler" }
func (h *toggler) Bank() *hs.Bank { return h.bank }

func (h *toggler) Step() {
	if h.rst {
		h.bank.Reset()
		return
	}
	h.q.Set(h.q.Get().Not())
}

func TestSimulation_tickCommitsAfterStep(t *testing.T) {
	h := newToggler()
	s, err := hs.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.rst = true
	s.Tick()
	h.rst = false

	// the register flips once per tick and the read always reports the
	// committed frame
	for i := 1; i <= 5; i++ {
		s.Tick()
		want := uint64(i & 1)
		if got := h.q.Get(); !got.EqU(want) {
			t.Fatalf("tick %d: q = %s, want %d", i, got.Hex(), want)
		}
	}
	if s.Ticks() != 6 {
		t.Fatalf("Ticks() = %d, want 6", s.Ticks())
	}
}

func TestSimulation_nilHost(t *testing.T) {
	if _, err := hs.NewSimulation(nil); err == nil {
		t.Fatal("NewSimulation(nil): no error")
	}
}

func TestSimulation_runTicksN(t *testing.T) {
	h := newToggler()
	s, err := hs.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.rst = true
	s.Tick()
	h.rst = false
	s.Run(10)
	if s.Ticks() != 11 {
		t.Fatalf("Ticks() = %d, want 11", s.Ticks())
	}
	if got := h.q.Get(); !got.IsZero() {
		t.Fatalf("q = %s after an even number of flips, want 0", got.Hex())
	}
}
