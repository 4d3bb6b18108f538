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

package atomicops

import (
	"sync/atomic"
	"unsafe"
)

// lane locates a single byte inside the aligned 32-bit word that contains
// it. All sub-word operations are performed on that word.
type lane struct {
	// word is the aligned word containing the byte.
	word *uint32

	// shift is the bit offset of the byte inside word: 0, 8, 16 or 24.
	shift uint32

	// mask selects the byte's bits inside word.
	mask uint32
}

// laneOf returns the lane of the byte at addr.
//
// The aligned word around addr must belong to the same allocation as addr.
//
//go:nosplit
func laneOf(addr unsafe.Pointer) lane {
	off := uint32(uintptr(addr) & 3)
	if bigEndian {
		off = 3 - off
	}
	shift := off * 8
	return lane{
		word:  (*uint32)(unsafe.Pointer(uintptr(addr) &^ 3)),
		shift: shift,
		mask:  0xff << shift,
	}
}

// widen moves v into the lane's position.
//
//go:nosplit
func (l lane) widen(v uint8) uint32 {
	return uint32(v) << l.shift
}

// extract returns the lane's byte from w.
//
//go:nosplit
func (l lane) extract(w uint32) uint8 {
	return uint8((w & l.mask) >> l.shift)
}

// casLane is a strong byte compare-and-exchange on top of the 32-bit
// compare-and-swap intrinsic. It returns the byte observed in the lane.
//
// A mismatch in the lane ends the loop. A failed swap caused by a change
// anywhere in the word reloads and compares again.
func casLane(l lane, old, new uint8) uint8 {
	wOld, wNew := l.widen(old), l.widen(new)
	for {
		cur := atomic.LoadUint32(l.word)
		if cur&l.mask != wOld {
			return l.extract(cur)
		}
		if atomic.CompareAndSwapUint32(l.word, cur, cur&^l.mask|wNew) {
			return old
		}
	}
}

// updateLane atomically replaces the lane's byte v with f(v) and returns v.
// f may be called more than once.
func updateLane(l lane, f func(uint8) uint8) uint8 {
	for {
		cur := atomic.LoadUint32(l.word)
		old := l.extract(cur)
		if atomic.CompareAndSwapUint32(l.word, cur, cur&^l.mask|l.widen(f(old))) {
			return old
		}
	}
}

// loadLane atomically reads the lane's byte.
//
//go:nosplit
func loadLane(l lane) uint8 {
	return l.extract(atomic.LoadUint32(l.word))
}
