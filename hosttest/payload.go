// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hosttest provides reference payloads and lock-step comparison
// helpers for testing hosts.
//
package hosttest

import (
	"github.com/swear01/hostsim"
)

// Clean is the identity payload: it implements every port contract with the
// neutral element of the host's mixing operation, so a host embedding Clean
// behaves exactly like the same host with no payload at all. Use it as the
// golden reference side of a lock-step comparison.
type Clean struct{}

// Load implements hostsim.KeyLoadPayload.
func (Clean) Load(key hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.LoadWidth, 0)
}

// ForceReset implements hostsim.ResetPayload.
func (Clean) ForceReset(data hostsim.Value) bool { return false }

// Data implements hostsim.DataPayload.
func (Clean) Data(in hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.DataWidth, 0)
}

// Leak implements hostsim.LeakPayload.
func (Clean) Leak(key hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.LeakWidth, 0)
}

// Route implements hostsim.RoutePayload. The route port substitutes rather
// than mixes, so the neutral payload passes the data word through unchanged.
func (Clean) Route(addr, data hostsim.Value) hostsim.Value { return data }

// Select implements hostsim.SelectPayload.
func (Clean) Select(wbAddr, wbData, s0Data hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.SelectWidth, 0)
}

// Compute implements hostsim.ALUPayload.
func (Clean) Compute(a, b, c, d, e, sel hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.ResultWidth, 0)
}

// Mix implements hostsim.ModePayload.
func (Clean) Mix(a, b, c, d, e, mode hostsim.Value) hostsim.Value {
	return hostsim.W(hostsim.ResultWidth, 0)
}

// Interaction records one payload invocation: the values the host presented
// and the value the payload returned.
type Interaction struct {
	Inputs []hostsim.Value
	Output hostsim.Value
}

// RecordData wraps a DataPayload and logs every invocation.
type RecordData struct {
	P   hostsim.DataPayload
	Log []Interaction
}

// Data implements hostsim.DataPayload.
func (r *RecordData) Data(in hostsim.Value) hostsim.Value {
	out := r.P.Data(in)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{in}, Output: out})
	return out
}

// RecordLoad wraps a KeyLoadPayload and logs every invocation.
type RecordLoad struct {
	P   hostsim.KeyLoadPayload
	Log []Interaction
}

// Load implements hostsim.KeyLoadPayload.
func (r *RecordLoad) Load(key hostsim.Value) hostsim.Value {
	out := r.P.Load(key)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{key}, Output: out})
	return out
}

// RecordLeak wraps a LeakPayload and logs every invocation.
type RecordLeak struct {
	P   hostsim.LeakPayload
	Log []Interaction
}

// Leak implements hostsim.LeakPayload.
func (r *RecordLeak) Leak(key hostsim.Value) hostsim.Value {
	out := r.P.Leak(key)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{key}, Output: out})
	return out
}

// RecordRoute wraps a RoutePayload and logs every invocation.
type RecordRoute struct {
	P   hostsim.RoutePayload
	Log []Interaction
}

// Route implements hostsim.RoutePayload.
func (r *RecordRoute) Route(addr, data hostsim.Value) hostsim.Value {
	out := r.P.Route(addr, data)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{addr, data}, Output: out})
	return out
}

// RecordReset wraps a ResetPayload and logs every invocation. The strobe is
// recorded as a 1-bit value.
type RecordReset struct {
	P   hostsim.ResetPayload
	Log []Interaction
}

// ForceReset implements hostsim.ResetPayload.
func (r *RecordReset) ForceReset(data hostsim.Value) bool {
	out := r.P.ForceReset(data)
	rec := hostsim.W(1, 0)
	if out {
		rec = hostsim.W(1, 1)
	}
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{data}, Output: rec})
	return out
}

// RecordSelect wraps a SelectPayload and logs every invocation.
type RecordSelect struct {
	P   hostsim.SelectPayload
	Log []Interaction
}

// Select implements hostsim.SelectPayload.
func (r *RecordSelect) Select(wbAddr, wbData, s0Data hostsim.Value) hostsim.Value {
	out := r.P.Select(wbAddr, wbData, s0Data)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{wbAddr, wbData, s0Data}, Output: out})
	return out
}

// RecordCompute wraps an ALUPayload and logs every invocation.
type RecordCompute struct {
	P   hostsim.ALUPayload
	Log []Interaction
}

// Compute implements hostsim.ALUPayload.
func (r *RecordCompute) Compute(a, b, c, d, e, sel hostsim.Value) hostsim.Value {
	out := r.P.Compute(a, b, c, d, e, sel)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{a, b, c, d, e, sel}, Output: out})
	return out
}

// RecordMix wraps a ModePayload and logs every invocation.
type RecordMix struct {
	P   hostsim.ModePayload
	Log []Interaction
}

// Mix implements hostsim.ModePayload.
func (r *RecordMix) Mix(a, b, c, d, e, mode hostsim.Value) hostsim.Value {
	out := r.P.Mix(a, b, c, d, e, mode)
	r.Log = append(r.Log, Interaction{Inputs: []hostsim.Value{a, b, c, d, e, mode}, Output: out})
	return out
}
