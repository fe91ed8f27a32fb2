// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Router FSM states.
const (
	routerIdle hostsim.State = iota
	routerLookup
	routerRoute
	routerComplete
)

// routing table depth; lookups mask the address to this depth.
const routerTableDepth = 16

// RouterIn holds the router's synchronous inputs.
type RouterIn struct {
	Rst      bool
	Start    bool
	DestAddr hostsim.Value // 32 bits
	DataIn   hostsim.Value // 32 bits
	// routing table write port, honored in idle
	TableWrite bool
	TableIndex hostsim.Value // 4 bits
	TablePort  hostsim.Value // 4 bits
}

// Router is a single-packet address router. Idle latches a destination
// address and data word; lookup reads the output port from the routing
// table (address masked to the table depth); route presents both latched
// words to the payload's probe port and substitutes the returned word as
// the routed data. The route-valid pulse fires while the machine is in its
// complete state. The router has no sequence generator: both probe words
// are host supplied.
//
type Router struct {
	In RouterIn

	p    hostsim.RoutePayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM

	table *hostsim.Mem
	addr  *hostsim.Reg
	data  *hostsim.Reg
	port  *hostsim.Reg
	out   *hostsim.Reg
	valid *hostsim.Pulse
}

// NewRouter returns a router host embedding payload p.
//
func NewRouter(p hostsim.RoutePayload) (*Router, error) {
	if p == nil {
		return nil, errors.New("router: nil payload")
	}
	b := hostsim.NewBank("router")
	h := &Router{
		p:     p,
		bank:  b,
		table: b.Mem("table", 4, routerTableDepth),
		addr:  b.Reg("addr", 32),
		data:  b.Reg("data", 32),
		port:  b.Reg("port", 4),
		out:   b.Reg("out", 32),
		valid: b.Pulse("route_valid"),
	}
	h.fsm = hostsim.NewFSM(b, "router", []hostsim.StepFn{
		routerIdle:     h.stepIdle,
		routerLookup:   h.stepLookup,
		routerRoute:    h.stepRoute,
		routerComplete: h.stepComplete,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Router) Name() string { return "router" }

// Bank implements hostsim.Host.
func (h *Router) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Router) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Router) stepIdle() hostsim.State {
	if h.In.TableWrite {
		h.table.Set(uint(h.In.TableIndex.Uint64()), h.In.TablePort)
	}
	if h.In.Start {
		h.addr.Set(h.In.DestAddr)
		h.data.Set(h.In.DataIn)
		return routerLookup
	}
	return routerIdle
}

func (h *Router) stepLookup() hostsim.State {
	h.port.Set(h.table.Get(uint(h.addr.Get().Uint64())))
	return routerRoute
}

func (h *Router) stepRoute() hostsim.State {
	h.out.Set(hostsim.CallRoute(h.p, h.addr.Get(), h.data.Get()))
	h.valid.Set()
	return routerComplete
}

func (h *Router) stepComplete() hostsim.State {
	return routerIdle
}

// Port returns the looked-up output port.
func (h *Router) Port() hostsim.Value { return h.port.Get() }

// DataOut returns the routed data word.
func (h *Router) DataOut() hostsim.Value { return h.out.Get() }

// RouteValid reports the route-valid pulse.
func (h *Router) RouteValid() bool { return h.valid.Get() }

// State returns the committed control state.
func (h *Router) State() hostsim.State { return h.fsm.State() }
