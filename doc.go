// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hostsim provides a cycle-accurate simulation engine for small
synchronous control-and-datapath circuits ("hosts") that embed an externally
supplied functional block (the "payload") behind one of a fixed set of port
contracts.

A host is built from double-buffered fixed-width registers allocated from a
Bank, a finite state machine driven by per-state step closures, and optionally
a linear feedback shift register supplying deterministic pseudo-random data to
the payload port. A Simulation advances the whole assembly in discrete ticks:
every read within a tick observes the committed state of the previous tick,
every write lands in the next-state buffer, and the Bank commits all writes
atomically at the tick boundary. Synchronous reset dominates every other input
and returns all state to its documented reset value.

The payload is injected at host construction time and is invoked purely
through its port contract; its internal behavior is deliberately opaque. The
hostlib package provides the eleven concrete host circuits built on this
engine, and hosttest provides neutral payloads and differential comparison
helpers for clean-versus-suspect studies.
*/
package hostsim
