// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"github.com/pkg/errors"
)

// A State identifies one control state of a host FSM. State 0 is by
// convention the idle/reset state of every host.
//
type State uint8

// Idle is the initial and reset state of every host FSM.
const Idle State = 0

// A StepFn performs one control state's datapath updates for the current
// tick and returns the state to enter at the tick boundary. Step functions
// are closures over their host's registers and inputs: reads observe
// committed values, writes land in next-state buffers.
//
type StepFn func() State

// An FSM is a generic host state machine: a double-buffered state register
// driven by a table of per-state step functions. A committed state with no
// table entry is treated as corrupted and falls back to Idle on the next
// tick.
//
type FSM struct {
	name     string
	steps    []StepFn
	cur, nxt State
}

// NewFSM allocates a state machine on bank b. The steps slice is indexed by
// State and must provide an entry for Idle.
//
func NewFSM(b *Bank, name string, steps []StepFn) *FSM {
	if len(steps) == 0 || steps[Idle] == nil {
		panic(errors.Errorf("fsm %s: no idle step", name))
	}
	m := &FSM{name: name, steps: steps}
	b.Attach(m)
	return m
}

// State returns the committed control state.
func (m *FSM) State() State { return m.cur }

// Step runs the current state's step function and schedules the state it
// returns. A corrupted state value schedules Idle instead.
//
func (m *FSM) Step() {
	if int(m.cur) >= len(m.steps) || m.steps[m.cur] == nil {
		m.nxt = Idle
		return
	}
	m.nxt = m.steps[m.cur]()
}

// Commit implements Clocked.
func (m *FSM) Commit() { m.cur = m.nxt }

// Reset implements Clocked.
func (m *FSM) Reset() { m.nxt = Idle }
