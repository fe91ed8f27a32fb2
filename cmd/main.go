// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"log"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

func main() {
	// a 16-bit counter host with the identity payload, loaded near the
	// top so it wraps a few ticks in
	h, err := hostlib.NewCounter(hostlib.CounterConfig{Seed: 0xACE1}, hosttest.Clean{})
	if err != nil {
		log.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		log.Fatal(err)
	}

	h.In = hostlib.CounterIn{Rst: true}
	s.Tick()
	h.In = hostlib.CounterIn{LoadEnable: true, LoadValue: hostsim.MustHex(16, "fffc")}
	s.Tick()
	h.In = hostlib.CounterIn{CountEnable: true}

	for i := 0; i < 8; i++ {
		s.Tick()
		log.Printf("tick %2d: value=%s overflow=%v", s.Ticks(), h.Value().Hex(), h.Overflow())
	}
}
