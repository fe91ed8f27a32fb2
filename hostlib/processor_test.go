// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib_test

import (
	"testing"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

func newProcessor(t *testing.T, p hostsim.DataPayload) (*hostlib.Processor, *hostsim.Simulation) {
	t.Helper()
	h, err := hostlib.NewProcessor(hostlib.ProcessorConfig{Seed: 0x1d87}, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.In = hostlib.ProcessorIn{Rst: true}
	s.Tick()
	return h, s
}

func instr(op, rd, rs, rt uint64) hostsim.Value {
	return hostsim.W(16, op<<12|rd<<8|rs<<4|rt)
}

// execute runs one full instruction cycle and leaves the machine back in
// idle.
func execute(t *testing.T, h *hostlib.Processor, s *hostsim.Simulation, ins hostsim.Value) {
	t.Helper()
	h.In = hostlib.ProcessorIn{Start: true, Instr: ins}
	s.Tick() // latch
	h.In = hostlib.ProcessorIn{}
	s.Tick() // decode and execute
	s.Tick() // writeback
	if !h.Done() {
		t.Fatal("execute-done pulse missing after writeback")
	}
	s.Tick() // complete
	if h.Done() {
		t.Fatal("execute-done pulse held for more than one tick")
	}
}

func TestProcessor_ops(t *testing.T) {
	h, s := newProcessor(t, hosttest.Clean{})

	// r1 = 10, r2 = 3 (ldi is opcode 9, immediate in the low byte)
	execute(t, h, s, hostsim.W(16, 9<<12|1<<8|10))
	execute(t, h, s, hostsim.W(16, 9<<12|2<<8|3))

	tests := []struct {
		name string
		op   uint64
		want uint64
	}{
		{"add", 0, 13},
		{"sub", 1, 7},
		{"and", 2, 2},
		{"or", 3, 11},
		{"xor", 4, 9},
		{"shl", 5, 80},
		{"shr", 6, 1},
		{"mul", 7, 30},
		{"div", 8, 3},
		{"unknown", 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			execute(t, h, s, instr(tt.op, 4, 1, 2))
			if got := h.Result(); !got.EqU(tt.want) {
				t.Fatalf("result = %s, want %04x", got.Hex(), tt.want)
			}
			if got := h.Register(4); !got.EqU(tt.want) {
				t.Fatalf("r4 = %s, want %04x", got.Hex(), tt.want)
			}
		})
	}
}

func TestProcessor_divByZero(t *testing.T) {
	h, s := newProcessor(t, hosttest.Clean{})

	execute(t, h, s, hostsim.W(16, 9<<12|1<<8|10)) // r1 = 10
	execute(t, h, s, instr(8, 4, 1, 3))            // r4 = r1 / r3, r3 == 0
	if got := h.Result(); !got.IsZero() {
		t.Fatalf("division by zero = %s, want 0000", got.Hex())
	}
}

func TestProcessor_payloadMixInWriteback(t *testing.T) {
	h, s := newProcessor(t, constData{v: 0xff00})

	execute(t, h, s, hostsim.W(16, 9<<12|1<<8|0x42)) // r1 = 0x42 ^ 0xff00
	if got := h.Result(); !got.EqU(0xff42) {
		t.Fatalf("result = %s, want ff42", got.Hex())
	}
}

func TestProcessor_registerIndexMasked(t *testing.T) {
	h, s := newProcessor(t, hosttest.Clean{})

	// rd 9 masks to r1
	execute(t, h, s, hostsim.W(16, 9<<12|9<<8|0x55))
	if got := h.Register(1); !got.EqU(0x55) {
		t.Fatalf("r1 = %s, want 0055", got.Hex())
	}
}

func TestProcessor_resetClearsRegisterFile(t *testing.T) {
	h, s := newProcessor(t, hosttest.Clean{})

	execute(t, h, s, hostsim.W(16, 9<<12|1<<8|0x7f))
	h.In = hostlib.ProcessorIn{Rst: true}
	s.Tick()
	if got := h.Register(1); !got.IsZero() {
		t.Fatalf("r1 = %s after reset, want 0000", got.Hex())
	}
	if h.State() != 0 {
		t.Fatalf("state = %d after reset, want idle", h.State())
	}
}
