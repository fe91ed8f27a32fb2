// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib_test

import (
	"testing"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

func newFifo(t *testing.T, p hostsim.ResetPayload) (*hostlib.Fifo, *hostsim.Simulation) {
	t.Helper()
	h, err := hostlib.NewFifo(hostlib.FifoConfig{Seed: 0xb5}, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.In = hostlib.FifoIn{Rst: true}
	s.Tick()
	return h, s
}

func TestFifo_roundTrip(t *testing.T) {
	h, s := newFifo(t, hosttest.Clean{})

	if !h.Empty() {
		t.Fatal("fifo not empty after reset")
	}
	in := []uint64{0x11, 0x22, 0x33}
	for _, v := range in {
		h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, v)}
		s.Tick()
	}
	if h.Count() != 3 {
		t.Fatalf("count = %d, want 3", h.Count())
	}
	for i, v := range in {
		h.In = hostlib.FifoIn{Pop: true}
		s.Tick()
		if !h.Valid() {
			t.Fatalf("pop %d: valid pulse missing", i)
		}
		if got := h.DataOut(); !got.EqU(v) {
			t.Fatalf("pop %d: data = %s, want %02x", i, got.Hex(), v)
		}
	}
	if !h.Empty() {
		t.Fatal("fifo not empty after draining")
	}
	// the valid pulse self-clears
	h.In = hostlib.FifoIn{}
	s.Tick()
	if h.Valid() {
		t.Fatal("valid pulse held for more than one tick")
	}
}

func TestFifo_fullBlocksPush(t *testing.T) {
	h, s := newFifo(t, hosttest.Clean{})

	for i := 0; i < 16; i++ {
		h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, uint64(i))}
		s.Tick()
	}
	if !h.Full() {
		t.Fatal("fifo not full after 16 pushes")
	}
	h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, 0xee)}
	s.Tick()
	if h.Count() != 16 {
		t.Fatalf("count = %d after a blocked push, want 16", h.Count())
	}
	// the oldest element is still the first one in
	h.In = hostlib.FifoIn{Pop: true}
	s.Tick()
	if got := h.DataOut(); !got.EqU(0) {
		t.Fatalf("data = %s, want 00", got.Hex())
	}
}

func TestFifo_emptyBlocksPop(t *testing.T) {
	h, s := newFifo(t, hosttest.Clean{})

	h.In = hostlib.FifoIn{Pop: true}
	s.Tick()
	if h.Valid() {
		t.Fatal("valid pulse on a pop from an empty fifo")
	}
	if h.Count() != 0 {
		t.Fatalf("count = %d, want 0", h.Count())
	}
}

func TestFifo_simultaneousPushPop(t *testing.T) {
	h, s := newFifo(t, hosttest.Clean{})

	h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, 0xaa)}
	s.Tick()
	h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, 0xbb), Pop: true}
	s.Tick()
	if h.Count() != 1 {
		t.Fatalf("count = %d after push+pop, want 1", h.Count())
	}
	if got := h.DataOut(); !got.EqU(0xaa) {
		t.Fatalf("data = %s, want aa", got.Hex())
	}
}

// strobeAt asserts the force-reset strobe on its nth observation.
type strobeAt struct {
	n     int
	calls int
}

func (p *strobeAt) ForceReset(data hostsim.Value) bool {
	p.calls++
	return p.calls == p.n
}

func TestFifo_forceResetStrobe(t *testing.T) {
	// strobe on the fourth non-reset tick: after three pushes land
	h, s := newFifo(t, &strobeAt{n: 4})

	for i := 0; i < 3; i++ {
		h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, uint64(i))}
		s.Tick()
	}
	if h.Count() != 3 {
		t.Fatalf("count = %d before the strobe, want 3", h.Count())
	}
	// push on the strobe tick is discarded along with the queue
	h.In = hostlib.FifoIn{Push: true, DataIn: hostsim.W(8, 0x99)}
	s.Tick()
	if !h.Empty() {
		t.Fatalf("count = %d after the strobe, want 0", h.Count())
	}
}
