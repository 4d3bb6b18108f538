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

//go:build gc && go1.19 && !atomicops_emulate_subword
// +build gc,go1.19,!atomicops_emulate_subword

package atomicops

import (
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/memorder"
)

// CompareAndExchange8 atomically replaces the byte at addr with desired if it
// equals expected, and returns the byte observed. Neighboring bytes of the
// same aligned word are never disturbed. The aligned word containing addr
// must belong to the same allocation.
//
// Unless order is memorder.Relaxed, the operation is surrounded by full
// barriers.
func CompareAndExchange8[T Word8](addr *T, expected, desired T, order memorder.Order) T {
	fenceBefore(order)
	v := casLane(laneOf(unsafe.Pointer(addr)), uint8(expected), uint8(desired))
	fenceAfter(order)
	return T(v)
}

// AddAndFetch8 atomically adds delta to the byte at addr and returns the new
// value. It is always followed by a full barrier.
func AddAndFetch8[T Word8](addr *T, delta T, order memorder.Order) T {
	d := uint8(delta)
	old := updateLane(laneOf(unsafe.Pointer(addr)), func(v uint8) uint8 {
		return v + d
	})
	FullBarrier()
	return T(old + d)
}

// FetchAndAdd8 atomically adds delta to the byte at addr and returns the old
// value.
func FetchAndAdd8[T Word8](addr *T, delta T, order memorder.Order) T {
	return AddAndFetch8(addr, delta, order) - delta
}

// Exchange8 atomically stores v into the byte at addr and returns the
// previous byte. It is always followed by a full barrier.
func Exchange8[T Word8](addr *T, v T, order memorder.Order) T {
	nv := uint8(v)
	old := updateLane(laneOf(unsafe.Pointer(addr)), func(uint8) uint8 {
		return nv
	})
	FullBarrier()
	return T(old)
}
