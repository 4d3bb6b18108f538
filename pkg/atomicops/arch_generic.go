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

//go:build !riscv64 || !gc || purego
// +build !riscv64 !gc purego

package atomicops

import (
	"sync/atomic"
	"unsafe"
)

const backend = "portable"

const cacheLineSize = 64

// fenceWord is the target of the read-modify-write used as a barrier. It is
// padded so that barriers do not false-share with unrelated data.
var fenceWord struct {
	_ [cacheLineSize]byte
	v uint32
	_ [cacheLineSize - 4]byte
}

// FullBarrier orders all memory accesses before it with all accesses after
// it.
//
// Go has no standalone fence, so this is a sequentially consistent
// read-modify-write, which is a full fence on every supported architecture.
//
//go:nosplit
func FullBarrier() {
	atomic.AddUint32(&fenceWord.v, 0)
}

// AcquireBarrier orders prior loads before all later accesses. Here it is a
// full barrier.
//
//go:nosplit
func AcquireBarrier() {
	FullBarrier()
}

// ReleaseBarrier orders all prior accesses before later stores. Here it is a
// full barrier.
//
//go:nosplit
func ReleaseBarrier() {
	FullBarrier()
}

// cas32 is a strong compare-and-exchange returning the observed value.
func cas32(addr *uint32, old, new uint32) uint32 {
	for {
		prev := atomic.LoadUint32(addr)
		if prev != old {
			return prev
		}
		if atomic.CompareAndSwapUint32(addr, old, new) {
			return old
		}
	}
}

// cas8 is the reservation loop for a single byte. Without load-reserved and
// store-conditional instructions, the word compare-and-swap plays the part
// of the conditional store.
func cas8(addr *uint8, old, new uint8) uint8 {
	return casLane(laneOf(unsafe.Pointer(addr)), old, new)
}
