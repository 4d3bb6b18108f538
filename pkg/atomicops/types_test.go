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
	"testing"
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/sync"
)

func TestInt32(t *testing.T) {
	i := FromInt32(-1)
	if got := i.Add(2, memorder.Conservative); got != 1 {
		t.Errorf("Add got %d, want 1", got)
	}
	if got := i.Swap(10, memorder.Relaxed); got != 1 {
		t.Errorf("Swap got %d, want 1", got)
	}
	if !i.CompareAndSwap(10, 11, memorder.Acquire) {
		t.Errorf("CompareAndSwap(10, 11) failed")
	}
	if i.CompareAndSwap(10, 12, memorder.Acquire) {
		t.Errorf("CompareAndSwap(10, 12) succeeded on %d", i.Load())
	}
	i.Store(-5)
	if got := i.RacyLoad(); got != -5 {
		t.Errorf("RacyLoad got %d, want -5", got)
	}
}

func TestUint32(t *testing.T) {
	u := FromUint32(0)
	if got := u.Add(^uint32(0), memorder.Conservative); got != ^uint32(0) {
		t.Errorf("Add got %#x, want %#x", got, ^uint32(0))
	}
	if got := u.CompareAndExchange(0, 1, memorder.Release); got != ^uint32(0) {
		t.Errorf("CompareAndExchange got %#x, want %#x", got, ^uint32(0))
	}
	if got := u.Swap(3, memorder.AcqRel); got != ^uint32(0) || u.Load() != 3 {
		t.Errorf("Swap got %#x (value %d), want %#x (value 3)", got, u.Load(), ^uint32(0))
	}
}

func TestInt64AndUint64(t *testing.T) {
	i := FromInt64(1 << 40)
	if got := i.Add(-(1 << 40), memorder.Relaxed); got != 0 {
		t.Errorf("Int64.Add got %d, want 0", got)
	}
	if got := i.CompareAndExchange(0, -1, memorder.Conservative); got != 0 || i.Load() != -1 {
		t.Errorf("Int64.CompareAndExchange got %d (value %d), want 0 (value -1)", got, i.Load())
	}

	u := FromUint64(5)
	if got := u.Swap(6, memorder.Conservative); got != 5 {
		t.Errorf("Uint64.Swap got %d, want 5", got)
	}
	if u.CompareAndSwap(5, 7, memorder.Conservative) {
		t.Errorf("Uint64.CompareAndSwap(5, 7) succeeded on %d", u.Load())
	}
	u.Store(8)
	if got := u.RacyLoad(); got != 8 {
		t.Errorf("Uint64.RacyLoad got %d, want 8", got)
	}
}

func TestUint64Alignment(t *testing.T) {
	var s struct {
		b byte
		u Uint64
	}
	if off := unsafe.Offsetof(s.u) + unsafe.Offsetof(s.u.value); off%8 != 0 {
		t.Errorf("Uint64 value at offset %d, not 8-byte aligned", off)
	}
}

func TestUint8(t *testing.T) {
	u := FromUint8(0xfe)
	if got := u.Load(); got != 0xfe {
		t.Errorf("Load got %#x, want 0xfe", got)
	}
	if got := u.CompareAndExchange(0xfe, 0x01, memorder.Conservative); got != 0xfe {
		t.Errorf("CompareAndExchange got %#x, want 0xfe", got)
	}
	if u.CompareAndSwap(0xfe, 0x02, memorder.Relaxed) {
		t.Errorf("CompareAndSwap(0xfe, 0x02) succeeded on %#x", u.Load())
	}
	u.Store(0x80)
	if got := u.Load(); got != 0x80 {
		t.Errorf("Load after Store got %#x, want 0x80", got)
	}
	if u.word&^0xff != 0 && u.word&^0xff000000 != 0 {
		t.Errorf("Uint8 word %#x uses more than one byte", u.word)
	}
}

// TestUint8Neighbors places independent Uint8 values side by side and
// updates them concurrently.
func TestUint8Neighbors(t *testing.T) {
	var arr [4]Uint8
	const perG = 2000
	var wg sync.WaitGroup
	for i := range arr {
		wg.Add(1)
		go func(u *Uint8) {
			defer wg.Done()
			for n := 0; n < perG; n++ {
				for {
					old := u.Load()
					if u.CompareAndSwap(old, old+1, memorder.Conservative) {
						break
					}
				}
			}
		}(&arr[i])
	}
	wg.Wait()
	for i := range arr {
		if got, want := arr[i].Load(), uint8(perG%256); got != want {
			t.Errorf("arr[%d] got %d, want %d", i, got, want)
		}
	}
}
