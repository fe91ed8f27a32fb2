// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"github.com/pkg/errors"
)

// A Clocked element carries double-buffered synchronous state: reads observe
// the committed value, writes land in the next-state buffer, and Commit makes
// the next state current at the tick boundary. Reset loads the next-state
// buffer with the element's documented reset value; the following Commit
// applies it regardless of any other write.
//
// Clocked elements are normally allocated from a Bank, which calls Commit and
// Reset on behalf of the simulation driver.
//
type Clocked interface {
	Commit()
	Reset()
}

// A Bank owns all synchronous state of one host: its registers, flags,
// pulses, memories and any other Clocked element attached to it. The Bank
// guarantees the single-writer-per-tick discipline by committing every
// element exactly once per tick.
//
type Bank struct {
	name     string
	elems    []Clocked
	wasReset bool
}

// NewBank returns an empty register bank.
//
func NewBank(name string) *Bank {
	return &Bank{name: name}
}

// Attach adds a Clocked element to the bank's commit and reset lists.
//
func (b *Bank) Attach(c Clocked) { b.elems = append(b.elems, c) }

// Reg allocates a fixed-width register with a reset value of zero.
//
func (b *Bank) Reg(name string, width uint) *Reg {
	checkValueWidth(width)
	r := &Reg{name: name, width: width, cur: W(width, 0), nxt: W(width, 0)}
	b.Attach(r)
	return r
}

// Flag allocates a 1-bit level register. Flags hold their value until
// rewritten or reset.
//
func (b *Bank) Flag(name string) *Flag {
	f := &Flag{name: name}
	b.Attach(f)
	return f
}

// Pulse allocates a 1-bit event register. A pulse set during one tick reads
// high for exactly the following tick and then self-clears.
//
func (b *Bank) Pulse(name string) *Pulse {
	p := &Pulse{name: name}
	b.Attach(p)
	return p
}

// Mem allocates a depth x width memory array with all cells reset to zero.
//
func (b *Bank) Mem(name string, width, depth uint) *Mem {
	checkValueWidth(width)
	if depth == 0 {
		panic(errors.Errorf("memory %s: zero depth", name))
	}
	m := &Mem{name: name, width: width, depth: depth, cells: make([]Value, depth)}
	for i := range m.cells {
		m.cells[i] = W(width, 0)
	}
	b.Attach(m)
	return m
}

// Reset marks every element for its documented reset value at the next
// commit. Reset dominates all writes made during the same tick.
//
func (b *Bank) Reset() {
	b.wasReset = true
	for _, c := range b.elems {
		c.Reset()
	}
}

// Commit applies all pending writes atomically. Committing a bank that has
// never been reset is a harness bug and panics: every host must see a reset
// tick before its first real tick.
//
func (b *Bank) Commit() {
	if !b.wasReset {
		panic(errors.Errorf("bank %s: tick committed before any reset", b.name))
	}
	for _, c := range b.elems {
		c.Commit()
	}
}

// A Reg is a named fixed-width register. Get observes the committed value;
// Set schedules a value for the next tick, truncated or zero extended to the
// register's width at the assignment boundary.
//
type Reg struct {
	name     string
	width    uint
	cur, nxt Value
}

// Get returns the committed value.
func (r *Reg) Get() Value { return r.cur }

// Set schedules v as the register's next value.
func (r *Reg) Set(v Value) { r.nxt = v.Resize(r.width) }

// SetU schedules x as the register's next value.
func (r *Reg) SetU(x uint64) { r.nxt = W(r.width, x) }

// Width returns the register's declared width.
func (r *Reg) Width() uint { return r.width }

// Commit implements Clocked.
func (r *Reg) Commit() { r.cur = r.nxt }

// Reset implements Clocked.
func (r *Reg) Reset() { r.nxt = W(r.width, 0) }

// A Flag is a 1-bit level register.
//
type Flag struct {
	name     string
	cur, nxt bool
}

// Get returns the committed flag state.
func (f *Flag) Get() bool { return f.cur }

// Set schedules the flag state for the next tick.
func (f *Flag) Set(v bool) { f.nxt = v }

// Commit implements Clocked.
func (f *Flag) Commit() { f.cur = f.nxt }

// Reset implements Clocked.
func (f *Flag) Reset() { f.nxt = false }

// A Pulse is a 1-bit event register asserted for exactly one tick per Set
// unless re-triggered.
//
type Pulse struct {
	name     string
	cur, nxt bool
}

// Get returns the committed pulse state.
func (p *Pulse) Get() bool { return p.cur }

// Set asserts the pulse for the next tick.
func (p *Pulse) Set() { p.nxt = true }

// Commit implements Clocked. The next state self-clears so the pulse falls
// after one tick.
func (p *Pulse) Commit() { p.cur, p.nxt = p.nxt, false }

// Reset implements Clocked.
func (p *Pulse) Reset() { p.nxt = false }

type memWrite struct {
	idx uint
	val Value
}

// A Mem is an addressable array of fixed-width cells. Every index is masked
// modulo the declared depth at the array boundary, so a narrow or overlong
// index register wraps rather than faulting. Writes are double-buffered like
// register writes and commit at the tick boundary, in program order.
//
type Mem struct {
	name   string
	width  uint
	depth  uint
	cells  []Value
	writes []memWrite
	clear  bool
}

// Get returns the committed value of cell i modulo depth.
func (m *Mem) Get(i uint) Value { return m.cells[i%m.depth] }

// Set schedules a write of v to cell i modulo depth.
func (m *Mem) Set(i uint, v Value) {
	m.writes = append(m.writes, memWrite{idx: i % m.depth, val: v.Resize(m.width)})
}

// Depth returns the number of cells.
func (m *Mem) Depth() uint { return m.depth }

// Commit implements Clocked.
func (m *Mem) Commit() {
	if m.clear {
		for i := range m.cells {
			m.cells[i] = W(m.width, 0)
		}
		m.clear = false
		m.writes = m.writes[:0]
		return
	}
	for _, w := range m.writes {
		m.cells[w.idx] = w.val
	}
	m.writes = m.writes[:0]
}

// Reset implements Clocked. All cells return to zero at the next commit.
func (m *Mem) Reset() {
	m.clear = true
	m.writes = m.writes[:0]
}
