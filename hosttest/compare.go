// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hosttest

import (
	"strings"
	"testing"

	"github.com/swear01/hostsim"
)

// DriveFn sets a host's inputs for the coming tick.
type DriveFn func(tick int)

// ProbeFn samples the observable outputs of both hosts after a tick. The two
// slices must be index-aligned: probes[i] of one host names the same signal
// as probes[i] of the other.
type ProbeFn func(tick int) (a, b []string)

// CompareHosts runs two simulations in lock step for n ticks, driving both
// with the same stimulus and failing the test at the first tick where their
// probed outputs differ. Both hosts are expected to implement the same
// observable behavior; only their embedded payloads may differ.
//
func CompareHosts(t *testing.T, n int, a, b *hostsim.Simulation, drive DriveFn, probe ProbeFn) {
	t.Helper()

	if tick := FirstDivergence(n, a, b, drive, probe); tick >= 0 {
		av, bv := probe(tick)
		t.Fatalf("hosts diverge at tick %d:\n%s: %s\n%s: %s",
			tick,
			a.Host().Name(), strings.Join(av, " "),
			b.Host().Name(), strings.Join(bv, " "))
	}
}

// FirstDivergence runs both simulations in lock step for n ticks and returns
// the first tick whose probed outputs differ, or -1 if they agree throughout.
// The drive function runs before each tick, the probe function after.
//
func FirstDivergence(n int, a, b *hostsim.Simulation, drive DriveFn, probe ProbeFn) int {
	for tick := 0; tick < n; tick++ {
		drive(tick)
		a.Tick()
		b.Tick()
		av, bv := probe(tick)
		if len(av) != len(bv) {
			return tick
		}
		for i := range av {
			if av[i] != bv[i] {
				return tick
			}
		}
	}
	return -1
}
