// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"github.com/pkg/errors"
)

// Fixed widths of the payload port contracts.
const (
	KeyWidth     = 128 // rolling key presented by the timer host
	LoadWidth    = 64  // load word returned to the timer host
	StrobeWidth  = 8   // data presented to the fifo reset strobe port
	DataWidth    = 16  // data in/out of the 16-bit data port
	LeakKeyWidth = 64  // key presented to the leak port
	LeakWidth    = 64  // leak word returned to the ecc host
	ProbeWidth   = 32  // router and interconnect probe words
	SelectWidth  = 4   // slave select returned to the network host
	OperandWidth = 8   // operands of the five-operand ports
	ResultWidth  = 16  // result of the five-operand ports
	SelWidth     = 3   // select input of the ALU-like port
	ModeWidth    = 2   // mode input of the mode port
)

// The eight payload port contracts. A payload implements exactly one of
// these; the host invokes it combinationally through the matching Call
// wrapper, which enforces the declared widths on both sides of the port.
// A width violation is a harness bug and panics rather than truncating:
// silent truncation would mask genuine fidelity bugs.

// A KeyLoadPayload consumes a 128-bit rolling key and returns a 64-bit load
// word that the host mixes into its match-value computation.
type KeyLoadPayload interface {
	Load(key Value) Value
}

// A ResetPayload observes an 8-bit data word and returns a reset strobe that
// synchronously clears the host's FIFO pointers when asserted.
type ResetPayload interface {
	ForceReset(data Value) bool
}

// A DataPayload transforms a 16-bit data word; the host XORs the result into
// its own output.
type DataPayload interface {
	Data(in Value) Value
}

// A LeakPayload consumes a 64-bit key and returns a 64-bit leak word that
// the host XORs into its result coordinates, split high/low.
type LeakPayload interface {
	Leak(key Value) Value
}

// A RoutePayload observes two 32-bit probe words and returns the 32-bit word
// the host substitutes as its routed data.
type RoutePayload interface {
	Route(addr, data Value) Value
}

// A SelectPayload observes two 32-bit address/data words and a 32-bit probe
// word and returns a 4-bit select that the host XORs, zero extended, into
// its output bytes.
type SelectPayload interface {
	Select(wbAddr, wbData, s0Data Value) Value
}

// An ALUPayload combines five 8-bit operands under a 3-bit select into a
// 16-bit result that the host XORs into its computed element.
type ALUPayload interface {
	Compute(a, b, c, d, e, sel Value) Value
}

// A ModePayload combines five 8-bit operands under a 2-bit mode into a
// 16-bit result that the host XORs into its filtered output.
type ModePayload interface {
	Mix(a, b, c, d, e, mode Value) Value
}

func mustWidth(port, field string, v Value, want uint) {
	if v.Width() != want {
		panic(errors.Errorf("payload contract violation: %s.%s is %d bits, want %d", port, field, v.Width(), want))
	}
}

// CallLoad invokes a KeyLoadPayload with width enforcement.
func CallLoad(p KeyLoadPayload, key Value) Value {
	mustWidth("load", "key", key, KeyWidth)
	v := p.Load(key)
	mustWidth("load", "load", v, LoadWidth)
	return v
}

// CallForceReset invokes a ResetPayload with width enforcement.
func CallForceReset(p ResetPayload, data Value) bool {
	mustWidth("force_reset", "data", data, StrobeWidth)
	return p.ForceReset(data)
}

// CallData invokes a DataPayload with width enforcement.
func CallData(p DataPayload, in Value) Value {
	mustWidth("data", "in", in, DataWidth)
	v := p.Data(in)
	mustWidth("data", "out", v, DataWidth)
	return v
}

// CallLeak invokes a LeakPayload with width enforcement.
func CallLeak(p LeakPayload, key Value) Value {
	mustWidth("leak", "key", key, LeakKeyWidth)
	v := p.Leak(key)
	mustWidth("leak", "leak", v, LeakWidth)
	return v
}

// CallRoute invokes a RoutePayload with width enforcement.
func CallRoute(p RoutePayload, addr, data Value) Value {
	mustWidth("route", "addr", addr, ProbeWidth)
	mustWidth("route", "data", data, ProbeWidth)
	v := p.Route(addr, data)
	mustWidth("route", "out", v, ProbeWidth)
	return v
}

// CallSelect invokes a SelectPayload with width enforcement.
func CallSelect(p SelectPayload, wbAddr, wbData, s0Data Value) Value {
	mustWidth("select", "wb_addr", wbAddr, ProbeWidth)
	mustWidth("select", "wb_data", wbData, ProbeWidth)
	mustWidth("select", "s0_data", s0Data, ProbeWidth)
	v := p.Select(wbAddr, wbData, s0Data)
	mustWidth("select", "slv_sel", v, SelectWidth)
	return v
}

// CallCompute invokes an ALUPayload with width enforcement.
func CallCompute(p ALUPayload, a, b, c, d, e, sel Value) Value {
	for _, op := range []struct {
		name string
		v    Value
	}{{"a", a}, {"b", b}, {"c", c}, {"d", d}, {"e", e}} {
		mustWidth("compute", op.name, op.v, OperandWidth)
	}
	mustWidth("compute", "sel", sel, SelWidth)
	v := p.Compute(a, b, c, d, e, sel)
	mustWidth("compute", "y", v, ResultWidth)
	return v
}

// CallMix invokes a ModePayload with width enforcement.
func CallMix(p ModePayload, a, b, c, d, e, mode Value) Value {
	for _, op := range []struct {
		name string
		v    Value
	}{{"a", a}, {"b", b}, {"c", c}, {"d", d}, {"e", e}} {
		mustWidth("mix", op.name, op.v, OperandWidth)
	}
	mustWidth("mix", "mode", mode, ModeWidth)
	v := p.Mix(a, b, c, d, e, mode)
	mustWidth("mix", "y", v, ResultWidth)
	return v
}
