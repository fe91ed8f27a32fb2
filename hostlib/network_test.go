// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib_test

import (
	"testing"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

func newNetwork(t *testing.T, p hostsim.SelectPayload) (*hostlib.Network, *hostsim.Simulation) {
	t.Helper()
	h, err := hostlib.NewNetwork(hostlib.NetworkConfig{Seed: 0xcafe1234}, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.In = hostlib.NetworkIn{Rst: true}
	s.Tick()
	return h, s
}

func TestNetwork_frameEcho(t *testing.T) {
	h, s := newNetwork(t, hosttest.Clean{})

	payload := []uint64{0x11, 0x22, 0x33}

	// length byte, then the payload bytes
	h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, uint64(len(payload)))}
	s.Tick()
	for _, b := range payload {
		h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, b)}
		s.Tick()
	}

	// route stage
	h.In = hostlib.NetworkIn{}
	s.Tick()
	if h.PacketReady() {
		t.Fatal("packet-ready pulse before transmission")
	}

	// the clean payload selects zero, so the bytes come out unchanged
	for i, want := range payload {
		h.In = hostlib.NetworkIn{TxReady: true}
		s.Tick()
		if !h.TxValid() {
			t.Fatalf("byte %d: tx-valid pulse missing", i)
		}
		if got := h.TxByte(); !got.EqU(want) {
			t.Fatalf("byte %d: tx = %s, want %02x", i, got.Hex(), want)
		}
	}
	if !h.PacketReady() {
		t.Fatal("packet-ready pulse missing after the last byte")
	}
	h.In = hostlib.NetworkIn{}
	s.Tick()
	if h.PacketReady() || h.TxValid() {
		t.Fatal("pulses held for more than one tick")
	}
	if h.State() != 0 {
		t.Fatalf("state = %d after the frame, want idle", h.State())
	}
}

func TestNetwork_zeroLengthStaysIdle(t *testing.T) {
	h, s := newNetwork(t, hosttest.Clean{})

	h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, 0)}
	s.Tick()
	if h.State() != 0 {
		t.Fatalf("state = %d after a zero-length header, want idle", h.State())
	}
}

func TestNetwork_txWaitsForReady(t *testing.T) {
	h, s := newNetwork(t, hosttest.Clean{})

	h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, 1)}
	s.Tick()
	h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, 0x7e)}
	s.Tick()
	h.In = hostlib.NetworkIn{}
	s.Tick() // route
	s.Run(3) // transmit stage, consumer not ready
	if h.TxValid() {
		t.Fatal("tx-valid pulse while the consumer was not ready")
	}
	h.In = hostlib.NetworkIn{TxReady: true}
	s.Tick()
	if !h.TxValid() || !h.PacketReady() {
		t.Fatal("single-byte frame did not complete")
	}
	if got := h.TxByte(); !got.EqU(0x7e) {
		t.Fatalf("tx = %s, want 7e", got.Hex())
	}
}

// constSelect returns a fixed slave select.
type constSelect struct{ v uint64 }

func (c constSelect) Select(wbAddr, wbData, s0Data hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.SelectWidth, c.v)
}

func TestNetwork_selectXorsOutputBytes(t *testing.T) {
	h, s := newNetwork(t, constSelect{v: 0x5})

	h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, 2)}
	s.Tick()
	for _, b := range []uint64{0xf0, 0x0f} {
		h.In = hostlib.NetworkIn{RxValid: true, RxByte: hostsim.W(8, b)}
		s.Tick()
	}
	h.In = hostlib.NetworkIn{}
	s.Tick() // route
	for i, want := range []uint64{0xf5, 0x0a} {
		h.In = hostlib.NetworkIn{TxReady: true}
		s.Tick()
		if got := h.TxByte(); !got.EqU(want) {
			t.Fatalf("byte %d: tx = %s, want %02x", i, got.Hex(), want)
		}
	}
}

func TestNetwork_zeroSeed(t *testing.T) {
	if _, err := hostlib.NewNetwork(hostlib.NetworkConfig{}, hosttest.Clean{}); err == nil {
		t.Fatal("NewNetwork(zero seed): no error")
	}
}
