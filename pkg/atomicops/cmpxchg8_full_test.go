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
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/sync"
)

func TestFullCompilerAtomicSupport(t *testing.T) {
	if !FullCompilerAtomicSupport {
		t.Errorf("FullCompilerAtomicSupport is false in a full-support build")
	}
}

func TestAddAndFetch8(t *testing.T) {
	var w byteWord
	*w.bytes() = [4]uint8{1, 2, 3, 4}
	b := &w.bytes()[2]
	if got := AddAndFetch8(b, 0xff, memorder.Relaxed); got != 2 {
		t.Errorf("AddAndFetch8 got %d, want 2", got)
	}
	if got := FetchAndAdd8(b, 0xfe, memorder.Conservative); got != 2 {
		t.Errorf("FetchAndAdd8 got %d, want 2", got)
	}
	if got := Exchange8(b, 9, memorder.Conservative); got != 0 {
		t.Errorf("Exchange8 got %d, want 0", got)
	}
	if diff := cmp.Diff([4]uint8{1, 2, 9, 4}, w.load()); diff != "" {
		t.Errorf("word (-want +got):\n%s", diff)
	}
}

func TestAddAndFetch8Concurrent(t *testing.T) {
	const perG = 1000
	var w byteWord
	var wg sync.WaitGroup
	for pos := 0; pos < 4; pos++ {
		wg.Add(1)
		go func(b *int8) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				AddAndFetch8(b, -1, memorder.Conservative)
			}
		}((*int8)(unsafe.Pointer(&w.bytes()[pos])))
	}
	wg.Wait()
	want := uint8(4*256 - perG) // -perG modulo 256
	for pos, got := range w.load() {
		if got != want {
			t.Errorf("byte %d got %d, want %d", pos, got, want)
		}
	}
}

func TestUint8AddSwap(t *testing.T) {
	u := FromUint8(250)
	if got := u.Add(10, memorder.Conservative); got != 4 {
		t.Errorf("Add got %d, want 4", got)
	}
	if got := u.Swap(1, memorder.Relaxed); got != 4 || u.Load() != 1 {
		t.Errorf("Swap got %d (value %d), want 4 (value 1)", got, u.Load())
	}
}
