// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib_test

import (
	"testing"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

func newRouter(t *testing.T, p hostsim.RoutePayload) (*hostlib.Router, *hostsim.Simulation) {
	t.Helper()
	h, err := hostlib.NewRouter(p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	h.In = hostlib.RouterIn{Rst: true}
	s.Tick()
	return h, s
}

// route programs one table entry, routes one packet and leaves the machine
// back in idle.
func route(t *testing.T, h *hostlib.Router, s *hostsim.Simulation, idx, port, addr, data uint64) {
	t.Helper()
	h.In = hostlib.RouterIn{
		TableWrite: true,
		TableIndex: hostsim.W(4, idx),
		TablePort:  hostsim.W(4, port),
	}
	s.Tick()
	h.In = hostlib.RouterIn{
		Start:    true,
		DestAddr: hostsim.W(32, addr),
		DataIn:   hostsim.W(32, data),
	}
	s.Tick() // latch
	h.In = hostlib.RouterIn{}
	s.Tick() // lookup
	if h.RouteValid() {
		t.Fatal("route-valid pulse before the route stage")
	}
	s.Tick() // route
	if !h.RouteValid() {
		t.Fatal("route-valid pulse missing")
	}
	s.Tick() // complete
	if h.RouteValid() {
		t.Fatal("route-valid pulse held for more than one tick")
	}
}

func TestRouter_lookupAndPassThrough(t *testing.T) {
	h, s := newRouter(t, hosttest.Clean{})

	route(t, h, s, 5, 7, 5, 0xdeadbeef)
	if got := h.Port(); !got.EqU(7) {
		t.Fatalf("port = %s, want 7", got.Hex())
	}
	// the clean payload passes the data word through unchanged
	if got := h.DataOut(); !got.EqU(0xdeadbeef) {
		t.Fatalf("data = %s, want deadbeef", got.Hex())
	}
}

func TestRouter_addressMaskedToTableDepth(t *testing.T) {
	h, s := newRouter(t, hosttest.Clean{})

	// address 21 masks to table entry 5
	route(t, h, s, 5, 9, 21, 0x1234)
	if got := h.Port(); !got.EqU(9) {
		t.Fatalf("port = %s, want 9", got.Hex())
	}
}

// xorRoute substitutes the address XOR data word as the routed data.
type xorRoute struct{}

func (xorRoute) Route(addr, data hostsim.Value) hostsim.Value { return addr.Xor(data) }

func TestRouter_payloadSubstitutesData(t *testing.T) {
	h, s := newRouter(t, xorRoute{})

	route(t, h, s, 0, 1, 0x0000000f, 0xdeadbe00)
	if got := h.DataOut(); !got.EqU(0xdeadbe0f) {
		t.Fatalf("data = %s, want deadbe0f", got.Hex())
	}
}

func TestRouter_nilPayload(t *testing.T) {
	if _, err := hostlib.NewRouter(nil); err == nil {
		t.Fatal("NewRouter(nil payload): no error")
	}
}
