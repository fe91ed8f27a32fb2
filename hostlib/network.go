// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Network FSM states.
const (
	netIdle hostsim.State = iota
	netReceive
	netRoute
	netTransmit
)

// netTaps is the network generator's feedback tap set.
var netTaps = []uint{31, 21, 1, 0}

// packet buffer depth; frame lengths are masked to it.
const netBufDepth = 32

// NetworkConfig configures a Network host.
type NetworkConfig struct {
	// Seed is the 32-bit probe generator's initial value. Must be non-zero.
	Seed uint64
}

// NetworkIn holds the interconnect's synchronous inputs.
type NetworkIn struct {
	Rst     bool
	RxValid bool
	RxByte  hostsim.Value // 8 bits
	TxReady bool
}

// Network is a length-framed byte-stream interconnect. The first received
// byte is the frame length (masked to the buffer depth; zero stays idle);
// the following bytes stream into the buffer one per tick, folding into a
// rolling 32-bit address word. The route stage presents the address word,
// the byte count and the 32-bit probe generator to the payload select port;
// the returned 4-bit select, zero extended, is XORed into every transmitted
// byte. The packet-ready pulse fires after the last byte goes out.
//
type Network struct {
	In NetworkIn

	p    hostsim.SelectPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	buf    *hostsim.Mem
	length *hostsim.Reg
	idx    *hostsim.Reg
	addrW  *hostsim.Reg
	sel    *hostsim.Reg
	txByte *hostsim.Reg
	txOk   *hostsim.Pulse
	ready  *hostsim.Pulse
}

// NewNetwork returns a network host embedding payload p.
//
func NewNetwork(cfg NetworkConfig, p hostsim.SelectPayload) (*Network, error) {
	if p == nil {
		return nil, errors.New("network: nil payload")
	}
	b := hostsim.NewBank("network")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.ProbeWidth, cfg.Seed), netTaps)
	if err != nil {
		return nil, errors.Wrap(err, "network")
	}
	h := &Network{
		p:      p,
		bank:   b,
		gen:    gen,
		buf:    b.Mem("buf", 8, netBufDepth),
		length: b.Reg("length", 6),
		idx:    b.Reg("idx", 6),
		addrW:  b.Reg("addr", 32),
		sel:    b.Reg("sel", 4),
		txByte: b.Reg("tx_byte", 8),
		txOk:   b.Pulse("tx_valid"),
		ready:  b.Pulse("packet_ready"),
	}
	h.fsm = hostsim.NewFSM(b, "network", []hostsim.StepFn{
		netIdle:     h.stepIdle,
		netReceive:  h.stepReceive,
		netRoute:    h.stepRoute,
		netTransmit: h.stepTransmit,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Network) Name() string { return "network" }

// Bank implements hostsim.Host.
func (h *Network) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Network) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Network) stepIdle() hostsim.State {
	if h.In.RxValid {
		n := h.In.RxByte.Uint64() % netBufDepth
		if n == 0 {
			return netIdle
		}
		h.length.SetU(n)
		h.idx.SetU(0)
		return netReceive
	}
	return netIdle
}

func (h *Network) stepReceive() hostsim.State {
	if !h.In.RxValid {
		return netReceive
	}
	i := uint(h.idx.Get().Uint64())
	h.buf.Set(i, h.In.RxByte)
	h.addrW.Set(h.addrW.Get().Lsh(8).Or(h.In.RxByte.Resize(32)))
	if uint64(i)+1 == h.length.Get().Uint64() {
		h.idx.SetU(0)
		return netRoute
	}
	h.idx.SetU(uint64(i) + 1)
	return netReceive
}

func (h *Network) stepRoute() hostsim.State {
	sel := hostsim.CallSelect(h.p,
		h.addrW.Get(),
		h.length.Get().Resize(32),
		h.gen.Value())
	h.gen.Advance(true)
	h.sel.Set(sel)
	return netTransmit
}

func (h *Network) stepTransmit() hostsim.State {
	if !h.In.TxReady {
		return netTransmit
	}
	i := uint(h.idx.Get().Uint64())
	h.txByte.Set(h.buf.Get(i).Xor(h.sel.Get().Resize(8)))
	h.txOk.Set()
	if uint64(i)+1 == h.length.Get().Uint64() {
		h.ready.Set()
		return netIdle
	}
	h.idx.SetU(uint64(i) + 1)
	return netTransmit
}

// TxByte returns the last transmitted byte.
func (h *Network) TxByte() hostsim.Value { return h.txByte.Get() }

// TxValid reports the per-byte transmit pulse.
func (h *Network) TxValid() bool { return h.txOk.Get() }

// PacketReady reports the end-of-packet pulse.
func (h *Network) PacketReady() bool { return h.ready.Get() }

// State returns the committed control state.
func (h *Network) State() hostsim.State { return h.fsm.State() }
