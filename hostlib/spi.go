// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// SPI FSM states.
const (
	spiIdle hostsim.State = iota
	spiCsAssert
	spiTransfer
	spiCsDeassert
)

// spiTaps is the spi generator's feedback tap set.
var spiTaps = []uint{15, 4, 2, 1}

// frame length in bits.
const spiBits = 16

// SpiConfig configures a Spi host.
type SpiConfig struct {
	// Divider is the number of ticks per bit period; a power of two, 2..256.
	Divider uint
	// Seed is the sequence generator's initial value. Must be non-zero.
	Seed uint64
}

// SpiIn holds the spi link's synchronous inputs.
type SpiIn struct {
	Rst    bool
	Start  bool
	TxData hostsim.Value // 16 bits, truncated at the assignment boundary
	Miso   bool
}

// Spi is a mode-0 style serial link shifting 16-bit frames MSB first. The
// serial clock is derived from a tick divider: MISO is sampled at the half
// period, both shift registers advance at the period boundary. When the
// last bit lands, the received word is XORed with the payload data port's
// output and the tx-done and rx-valid pulses fire together.
//
type Spi struct {
	In SpiIn

	cfg  SpiConfig
	p    hostsim.DataPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	shiftOut *hostsim.Reg
	shiftIn  *hostsim.Reg
	bits     *hostsim.Reg
	div      *hostsim.Reg
	misoL    *hostsim.Flag
	cs       *hostsim.Flag
	rx       *hostsim.Reg
	txDone   *hostsim.Pulse
	rxValid  *hostsim.Pulse
}

// NewSpi returns a spi host embedding payload p.
//
func NewSpi(cfg SpiConfig, p hostsim.DataPayload) (*Spi, error) {
	if p == nil {
		return nil, errors.New("spi: nil payload")
	}
	if cfg.Divider < 2 || cfg.Divider > 256 || cfg.Divider&(cfg.Divider-1) != 0 {
		return nil, errors.Errorf("spi: divider %d is not a power of two in 2..256", cfg.Divider)
	}
	b := hostsim.NewBank("spi")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.DataWidth, cfg.Seed), spiTaps)
	if err != nil {
		return nil, errors.Wrap(err, "spi")
	}
	h := &Spi{
		cfg:      cfg,
		p:        p,
		bank:     b,
		gen:      gen,
		shiftOut: b.Reg("shift_out", 16),
		shiftIn:  b.Reg("shift_in", 16),
		bits:     b.Reg("bits", 5),
		div:      b.Reg("div", 9),
		misoL:    b.Flag("miso_latch"),
		cs:       b.Flag("cs"),
		rx:       b.Reg("rx", 16),
		txDone:   b.Pulse("tx_done"),
		rxValid:  b.Pulse("rx_valid"),
	}
	h.fsm = hostsim.NewFSM(b, "spi", []hostsim.StepFn{
		spiIdle:       h.stepIdle,
		spiCsAssert:   h.stepCsAssert,
		spiTransfer:   h.stepTransfer,
		spiCsDeassert: h.stepCsDeassert,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Spi) Name() string { return "spi" }

// Bank implements hostsim.Host.
func (h *Spi) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Spi) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Spi) stepIdle() hostsim.State {
	if h.In.Start {
		h.shiftOut.Set(h.In.TxData)
		h.bits.SetU(0)
		h.div.SetU(0)
		return spiCsAssert
	}
	return spiIdle
}

func (h *Spi) stepCsAssert() hostsim.State {
	h.cs.Set(true)
	return spiTransfer
}

func (h *Spi) stepTransfer() hostsim.State {
	h.gen.Advance(true)
	nd := h.div.Get().Uint64() + 1
	switch nd {
	case uint64(h.cfg.Divider) / 2:
		// half period: sample MISO
		h.misoL.Set(h.In.Miso)
		h.div.SetU(nd)
	case uint64(h.cfg.Divider):
		// period boundary: shift both registers
		h.div.SetU(0)
		h.shiftOut.Set(h.shiftOut.Get().Lsh(1))
		si := h.shiftIn.Get().Lsh(1)
		if h.misoL.Get() {
			si = si.Or(hostsim.W(16, 1))
		}
		h.shiftIn.Set(si)
		nb := h.bits.Get().Uint64() + 1
		h.bits.SetU(nb)
		if nb == spiBits {
			mix := hostsim.CallData(h.p, h.gen.Value())
			h.rx.Set(si.Xor(mix))
			h.txDone.Set()
			h.rxValid.Set()
			return spiCsDeassert
		}
	default:
		h.div.SetU(nd)
	}
	return spiTransfer
}

func (h *Spi) stepCsDeassert() hostsim.State {
	h.cs.Set(false)
	return spiIdle
}

// Mosi returns the serial data output, the shift register's MSB.
func (h *Spi) Mosi() bool { return h.shiftOut.Get().Bit(15) }

// Cs reports the chip select level flag.
func (h *Spi) Cs() bool { return h.cs.Get() }

// Sclk returns the derived serial clock phase.
func (h *Spi) Sclk() bool { return h.div.Get().Uint64() >= uint64(h.cfg.Divider)/2 }

// Rx returns the last received frame.
func (h *Spi) Rx() hostsim.Value { return h.rx.Get() }

// TxDone reports the transfer-done pulse.
func (h *Spi) TxDone() bool { return h.txDone.Get() }

// RxValid reports the receive-valid pulse.
func (h *Spi) RxValid() bool { return h.rxValid.Get() }

// State returns the committed control state.
func (h *Spi) State() hostsim.State { return h.fsm.State() }
