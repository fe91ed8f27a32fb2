// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package hosttest_test

import (
	"strconv"
	"testing"

	"github.com/swear01/hostsim"
	"github.com/swear01/hostsim/hostlib"
	"github.com/swear01/hostsim/hosttest"
)

// flipData flips the low bit of every word through the data port.
type flipData struct{}

func (flipData) Data(in hostsim.Value) hostsim.Value { return hostsim.W(hostsim.DataWidth, 1) }

func newCounterSim(t *testing.T, p hostsim.DataPayload) (*hostlib.Counter, *hostsim.Simulation) {
	t.Helper()
	h, err := hostlib.NewCounter(hostlib.CounterConfig{Seed: 0xACE1}, p)
	if err != nil {
		t.Fatal(err)
	}
	s, err := hostsim.NewSimulation(h)
	if err != nil {
		t.Fatal(err)
	}
	return h, s
}

func TestFirstDivergence_identicalHostsAgree(t *testing.T) {
	ha, sa := newCounterSim(t, hosttest.Clean{})
	hb, sb := newCounterSim(t, hosttest.Clean{})

	drive := func(tick int) {
		ha.In = hostlib.CounterIn{Rst: tick == 0, CountEnable: tick > 0}
		hb.In = ha.In
	}
	probe := func(int) ([]string, []string) {
		return []string{ha.Value().Hex(), strconv.FormatBool(ha.Overflow())},
			[]string{hb.Value().Hex(), strconv.FormatBool(hb.Overflow())}
	}
	if tick := hosttest.FirstDivergence(40, sa, sb, drive, probe); tick >= 0 {
		t.Fatalf("identical hosts diverge at tick %d", tick)
	}
}

func TestFirstDivergence_payloadSwapDetected(t *testing.T) {
	ha, sa := newCounterSim(t, hosttest.Clean{})
	hb, sb := newCounterSim(t, flipData{})

	drive := func(tick int) {
		// count up from the top so the wrap (and the payload mix it
		// triggers) happens a few ticks in
		ha.In = hostlib.CounterIn{
			Rst:         tick == 0,
			LoadEnable:  tick == 1,
			LoadValue:   hostsim.MustHex(16, "fffd"),
			CountEnable: tick > 1,
		}
		hb.In = ha.In
	}
	probe := func(int) ([]string, []string) {
		return []string{ha.Value().Hex()}, []string{hb.Value().Hex()}
	}
	tick := hosttest.FirstDivergence(20, sa, sb, drive, probe)
	if tick < 0 {
		t.Fatal("payload substitution went undetected")
	}
	if got := ha.Value().Xor(hb.Value()); !got.EqU(1) {
		t.Fatalf("divergence = %s, want 0001", got.Hex())
	}
}

func TestCompareHosts_agreeingHostsPass(t *testing.T) {
	ha, sa := newCounterSim(t, hosttest.Clean{})
	hb, sb := newCounterSim(t, hosttest.Clean{})

	hosttest.CompareHosts(t, 20, sa, sb,
		func(tick int) {
			ha.In = hostlib.CounterIn{Rst: tick == 0, CountEnable: tick > 0}
			hb.In = ha.In
		},
		func(int) ([]string, []string) {
			return []string{ha.Value().Hex()}, []string{hb.Value().Hex()}
		})
}

func TestRecordData_logsInteractions(t *testing.T) {
	rec := &hosttest.RecordData{P: hosttest.Clean{}}
	h, s := newCounterSim(t, rec)

	h.In = hostlib.CounterIn{Rst: true}
	s.Tick()
	h.In = hostlib.CounterIn{CountEnable: true}
	s.Run(5)

	if len(rec.Log) != 5 {
		t.Fatalf("logged %d interactions, want 5", len(rec.Log))
	}
	for i, it := range rec.Log {
		if len(it.Inputs) != 1 || it.Inputs[0].Width() != hostsim.DataWidth {
			t.Fatalf("interaction %d: malformed inputs", i)
		}
		if !it.Output.IsZero() {
			t.Fatalf("interaction %d: clean payload returned %s", i, it.Output.Hex())
		}
	}
}
