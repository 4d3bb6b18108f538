// Copyright 2026 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package memorder defines the memory ordering requested by callers of the
// atomic primitives in package atomicops.
package memorder

import (
	"fmt"
	"strings"
)

// Order is a requested memory ordering.
//
// The zero value is Conservative, so that a forgotten argument never weakens
// ordering.
type Order int

// Orderings, weakest last.
const (
	// Conservative is the strongest ordering: a full two-way barrier on both
	// sides of the operation.
	Conservative Order = iota
	// AcqRel is acquire-release.
	AcqRel
	// Release orders prior accesses before the operation.
	Release
	// Acquire orders later accesses after the operation.
	Acquire
	// Relaxed guarantees atomicity only.
	Relaxed
)

var orderNames = map[Order]string{
	Conservative: "conservative",
	AcqRel:       "acq_rel",
	Release:      "release",
	Acquire:      "acquire",
	Relaxed:      "relaxed",
}

// All returns every valid ordering, strongest first.
func All() []Order {
	return []Order{Conservative, AcqRel, Release, Acquire, Relaxed}
}

// IsRelaxed reports whether o requests no ordering beyond atomicity.
//
//go:nosplit
func (o Order) IsRelaxed() bool {
	return o == Relaxed
}

// Valid reports whether o is one of the defined orderings.
func (o Order) Valid() bool {
	_, ok := orderNames[o]
	return ok
}

// String implements fmt.Stringer.
func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Parse converts a name to an Order. Names are case-insensitive; "seq_cst"
// and "sequential" are accepted as aliases of "conservative".
func Parse(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "conservative", "seq_cst", "seqcst", "sequential":
		return Conservative, nil
	case "acq_rel", "acqrel":
		return AcqRel, nil
	case "release":
		return Release, nil
	case "acquire":
		return Acquire, nil
	case "relaxed":
		return Relaxed, nil
	default:
		return 0, fmt.Errorf("unknown memory order %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (o Order) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("unknown memory order %d", int(o))
	}
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Order) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// Set implements flag.Value.
func (o *Order) Set(s string) error {
	return o.UnmarshalText([]byte(s))
}

// Get implements flag.Getter.
func (o *Order) Get() any {
	return *o
}
