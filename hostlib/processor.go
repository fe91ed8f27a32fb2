// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostlib

import (
	"github.com/pkg/errors"

	"github.com/swear01/hostsim"
)

// Processor FSM states.
const (
	procIdle hostsim.State = iota
	procDecodeExec
	procWriteback
	procComplete
)

// procTaps is the processor generator's feedback tap set.
var procTaps = []uint{15, 14, 12, 3}

// Processor opcodes, bits [15:12] of the instruction word.
const (
	opAdd = iota
	opSub
	opAnd
	opOr
	opXor
	opShl
	opShr
	opMul
	opDiv
	opLdi
)

// ProcessorConfig configures a Processor host.
type ProcessorConfig struct {
	// Seed is the sequence generator's initial value. Must be non-zero.
	Seed uint64
}

// ProcessorIn holds the processor's synchronous inputs.
type ProcessorIn struct {
	Rst   bool
	Start bool
	Instr hostsim.Value // 16 bits: op[15:12] rd[11:8] rs[7:4] rt[3:0]
}

// Processor is a one-instruction-at-a-time ALU over an 8 x 16-bit register
// file. An instruction latched in idle is decoded and executed in one tick,
// then written back with the payload data port's output XORed in; the
// execute-done pulse fires while the machine is in its complete state.
// Register indices are masked to the register file depth. Division by zero
// is guarded and yields zero. Unknown opcodes execute as a zero result.
//
type Processor struct {
	In ProcessorIn

	p    hostsim.DataPayload
	bank *hostsim.Bank
	fsm  *hostsim.FSM
	gen  *hostsim.LFSR

	regs   *hostsim.Mem
	instr  *hostsim.Reg
	alu    *hostsim.Reg
	result *hostsim.Reg
	done   *hostsim.Pulse
}

// NewProcessor returns a processor host embedding payload p.
//
func NewProcessor(cfg ProcessorConfig, p hostsim.DataPayload) (*Processor, error) {
	if p == nil {
		return nil, errors.New("processor: nil payload")
	}
	b := hostsim.NewBank("processor")
	gen, err := hostsim.NewLFSR(b, "gen", hostsim.W(hostsim.DataWidth, cfg.Seed), procTaps)
	if err != nil {
		return nil, errors.Wrap(err, "processor")
	}
	h := &Processor{
		p:      p,
		bank:   b,
		gen:    gen,
		regs:   b.Mem("regs", 16, 8),
		instr:  b.Reg("instr", 16),
		alu:    b.Reg("alu", 16),
		result: b.Reg("result", 16),
		done:   b.Pulse("execute_done"),
	}
	h.fsm = hostsim.NewFSM(b, "processor", []hostsim.StepFn{
		procIdle:       h.stepIdle,
		procDecodeExec: h.stepDecodeExec,
		procWriteback:  h.stepWriteback,
		procComplete:   h.stepComplete,
	})
	return h, nil
}

// Name implements hostsim.Host.
func (h *Processor) Name() string { return "processor" }

// Bank implements hostsim.Host.
func (h *Processor) Bank() *hostsim.Bank { return h.bank }

// Step implements hostsim.Host.
func (h *Processor) Step() {
	if h.In.Rst {
		h.bank.Reset()
		return
	}
	h.fsm.Step()
}

func (h *Processor) stepIdle() hostsim.State {
	if h.In.Start {
		h.instr.Set(h.In.Instr)
		return procDecodeExec
	}
	return procIdle
}

func (h *Processor) stepDecodeExec() hostsim.State {
	ins := h.instr.Get()
	op := ins.Slice(15, 12).Uint64()
	rs := uint(ins.Slice(7, 4).Uint64()) & 7
	rt := uint(ins.Slice(3, 0).Uint64()) & 7
	a := h.regs.Get(rs)
	bv := h.regs.Get(rt)

	var r hostsim.Value
	switch op {
	case opAdd:
		r = a.Add(bv)
	case opSub:
		r = a.Sub(bv)
	case opAnd:
		r = a.And(bv)
	case opOr:
		r = a.Or(bv)
	case opXor:
		r = a.Xor(bv)
	case opShl:
		r = a.Lsh(uint(bv.Uint64() & 15))
	case opShr:
		r = a.Rsh(uint(bv.Uint64() & 15))
	case opMul:
		r = a.Mul(bv)
	case opDiv:
		r = a.Div(bv) // zero divisor yields zero
	case opLdi:
		r = ins.Slice(7, 0).Resize(16)
	default:
		r = hostsim.W(16, 0)
	}
	h.alu.Set(r)
	return procWriteback
}

func (h *Processor) stepWriteback() hostsim.State {
	mix := hostsim.CallData(h.p, h.gen.Value())
	h.gen.Advance(true)
	rd := uint(h.instr.Get().Slice(11, 8).Uint64()) & 7
	v := h.alu.Get().Xor(mix)
	h.regs.Set(rd, v)
	h.result.Set(v)
	h.done.Set()
	return procComplete
}

func (h *Processor) stepComplete() hostsim.State {
	return procIdle
}

// Result returns the last writeback value.
func (h *Processor) Result() hostsim.Value { return h.result.Get() }

// Register returns register i of the register file, masked to its depth.
func (h *Processor) Register(i uint) hostsim.Value { return h.regs.Get(i) }

// Done reports the execute-done pulse.
func (h *Processor) Done() bool { return h.done.Get() }

// State returns the committed control state.
func (h *Processor) State() hostsim.State { return h.fsm.State() }
