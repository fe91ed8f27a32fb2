// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hostsim

import (
	"github.com/pkg/errors"
)

// A Host is one synchronous circuit advanced by a Simulation. Step performs
// one tick's worth of combinational work: it reads committed state and the
// host's input fields, invokes the payload where the variant defines it, and
// schedules all register writes. The Simulation commits the host's bank
// after each Step.
//
// Step must apply synchronous reset first: when the host's reset input is
// asserted, the whole bank resets and nothing else happens that tick.
//
type Host interface {
	Name() string
	Bank() *Bank
	Step()
}

// A Simulation advances a host in discrete clock ticks. It exclusively owns
// tick sequencing: one Step, one atomic commit, per tick.
//
type Simulation struct {
	host  Host
	ticks uint64
}

// NewSimulation returns a simulation driving the given host.
//
func NewSimulation(h Host) (*Simulation, error) {
	if h == nil {
		return nil, errors.New("nil host")
	}
	return &Simulation{host: h}, nil
}

// Tick advances the simulation by one clock tick.
//
func (s *Simulation) Tick() {
	s.host.Step()
	s.host.Bank().Commit()
	s.ticks++
}

// Run advances the simulation by n ticks.
//
func (s *Simulation) Run(n int) {
	for i := 0; i < n; i++ {
		s.Tick()
	}
}

// Ticks returns the number of elapsed ticks.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Host returns the simulated host.
func (s *Simulation) Host() Host { return s.host }
