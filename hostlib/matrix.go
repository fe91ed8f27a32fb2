// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Matrix FSM states.
const (
	matIdle hostsim.State = iota
	matCompute
	matNext
	matComplete
)

// matTaps is the matrix generator's feedback tap set.
var matTaps = []uint{7, 6, 1, 0}

// MatrixConfig configures a Matrix host.
type MatrixConfig struct {
	// Seed is the 8-bit operand generator's initial value. Must be non-zero.
	Seed uint64
}

// MatrixIn holds the multiplier's synchronous inputs.
type MatrixIn struct {
	Rst       bool
	Load      bool
	LoadB     bool          // target matrix B instead of A
	Row       hostsim.Value // 2 bits, masked to 0..2
	Col       hostsim.Value // 2 bits, masked to 0..2
	LoadValue hostsim.Value // 8 bits
	Start     bool
}

// Matrix multiplies two 3x3 matrices of 8-bit elements into 16-bit results,
// one element per compute step. Each element pass hands the payload ALU port
// the A row, the B column head and the operand generator; the returned word
// is XORed into the stored product.
type Matrix struct {
	In MatrixIn

	p    hostsim.ALUPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	ma    *hostsim.Mem
	mb    *hostsim.Mem
	mr    *hostsim.Mem
	idx   *hostsim.Reg
	ready *hostsim.Pulse
}

// NewMatrix returns a matrix host embedding payload p.
//
func NewMatrix(cfg MatrixConfig, p hostsim.ALUPayload) (*Matrix, error) {
	if p == nil {
		return nil, errors.New("matrix: nil payload")
	}
	b := hostsim.NewBank("matrix")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.OperandWidth, cfg.Seed), matTaps)
	if err != nil {
		return nil, errors.Wrap(err, "matrix")
	}
	h := &Matrix{
		p:     p,
		bank:  b,
		gen:   gen,
		ma:    b.Mem("ma", 8, 9),
		mb:    b.Mem("mb", 8, 9),
		mr:    b.Mem("mr", 16, 9),
		idx:   b.Reg("idx", 4),
		ready: b.Pulse("ready"),
	}
	h.fsm = hostsim.NewFSM(b, "matrix", []hostsim.StepFn{
		matIdle:     h.stepIdle,
		matCompute:  h.stepCompute,
		matNext:     h.stepNext,
		matComplete: h.stepComplete,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Matrix) Name() string { return "matrix" }

// Bank implements hostsim.Host.
func (h *Matrix) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Matrix) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Matrix) stepIdle() hostsim.State {
	if h.In.Load {
		r := uint(h.In.Row.Uint64()) % 3
		c := uint(h.In.Col.Uint64()) % 3
		if h.In.LoadB {
			h.mb.Set(r*3+c, h.In.LoadValue)
		} else {
			h.ma.Set(r*3+c, h.In.LoadValue)
		}
		return matIdle
	}
	if h.In.Start {
		h.idx.SetU(0)
		return matCompute
	}
	return matIdle
}

func (h *Matrix) stepCompute() hostsim.State {
	e := uint(h.idx.Get().Uint64())
	i, j := e/3, e%3
	sum := hostsim.W(16, 0)
	for k := uint(0); k < 3; k++ {
		sum = sum.Add(h.ma.Get(i*3 + k).Resize(16).Mul(h.mb.Get(k*3 + j).Resize(16)))
	}
	mix := hostsim.CallCompute(h.p,
		h.ma.Get(i*3), h.ma.Get(i*3+1), h.ma.Get(i*3+2),
		h.mb.Get(j), h.gen.Value(),
		hostsim.W(hostsim.SelWidth, uint64(e&7)))
	h.gen.Advance(true)
	h.mr.Set(e, sum.Xor(mix))
	return matNext
}

func (h *Matrix) stepNext() hostsim.State {
	e := h.idx.Get().Uint64() + 1
	if e == 9 {
		h.ready.Set()
		return matComplete
	}
	h.idx.SetU(e)
	return matCompute
}

func (h *Matrix) stepComplete() hostsim.State {
	return matIdle
}

// Result returns the committed product element at row i, column j.
func (h *Matrix) Result(i, j uint) hostsim.Value { return h.mr.Get((i%3)*3 + j%3) }

// Ready reports the end-of-product pulse.
func (h *Matrix) Ready() bool { return h.ready.Get() }

// State returns the committed control state.
func (h *Matrix) State() hostsim.State { return h.fsm.State() }
