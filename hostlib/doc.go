// Copyright 2026 The hostsim Authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hostlib provides the eleven concrete host circuits built on the
// hostsim engine: timer, fifo, counter, processor, spi, ecc, router, audio,
// network, matrix and signal. Each host is a configuration of the shared
// engine, not a separate implementation: a bank of registers, a state table
// of step closures, and a payload injected at construction time through one
// of the eight port contracts.
//
// Hosts share a few conventions. Input fields are set by the harness before
// each tick and read combinationally during Step. Reset dominates all other
// inputs. Completion flags are pulses asserted for exactly one tick. Every
// sequence generator has a tap set unique to its host.
package hostlib
