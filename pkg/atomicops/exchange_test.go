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

func TestExchangeReturnsPrevious(t *testing.T) {
	i := int32(-7)
	if got := Exchange32(&i, 9, memorder.Relaxed); got != -7 || i != 9 {
		t.Errorf("Exchange32 got %d (loc %d), want -7 (loc 9)", got, i)
	}
	u := uint64(1 << 63)
	if got := Exchange64(&u, 1, memorder.Conservative); got != 1<<63 || u != 1 {
		t.Errorf("Exchange64 got %#x (loc %#x), want %#x (loc 1)", got, u, uint64(1<<63))
	}
}

// TestExchangeNoHybrid checks that every value written by an exchange is
// seen exactly once, either as a previous value returned to some exchange or
// as the final value. A torn or merged write would produce a value nobody
// wrote.
func TestExchangeNoHybrid(t *testing.T) {
	const (
		goroutines = 8
		perG       = 2000
	)
	token := func(g, i int) uint64 {
		return uint64(g+1)<<32 | uint64(i)
	}
	loc := uint64(0)
	seen := make([][]uint64, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				seen[g] = append(seen[g], Exchange64(&loc, token(g, i), memorder.Conservative))
			}
		}(g)
	}
	wg.Wait()

	counts := make(map[uint64]int)
	counts[loc]++
	for _, s := range seen {
		for _, v := range s {
			counts[v]++
		}
	}
	if counts[0] != 1 {
		t.Errorf("initial value seen %d times, want 1", counts[0])
	}
	for g := 0; g < goroutines; g++ {
		for i := 0; i < perG; i++ {
			if c := counts[token(g, i)]; c != 1 {
				t.Fatalf("token %#x seen %d times, want 1", token(g, i), c)
			}
		}
	}
	if want := goroutines*perG + 1; len(counts) != want {
		t.Errorf("distinct values got %d, want %d", len(counts), want)
	}
}

func TestExchangePointer(t *testing.T) {
	a, b := new(int), new(int)
	p := unsafe.Pointer(a)
	if got := ExchangePointer(&p, unsafe.Pointer(b), memorder.Conservative); got != unsafe.Pointer(a) || p != unsafe.Pointer(b) {
		t.Errorf("ExchangePointer got %p (loc %p), want %p (loc %p)", got, p, a, b)
	}
	if got := CompareAndExchangePointer(&p, unsafe.Pointer(a), nil, memorder.Conservative); got != unsafe.Pointer(b) || p != unsafe.Pointer(b) {
		t.Errorf("failed CompareAndExchangePointer got %p (loc %p), want %p", got, p, b)
	}
	if got := CompareAndExchangePointer(&p, unsafe.Pointer(b), nil, memorder.Relaxed); got != unsafe.Pointer(b) || p != nil {
		t.Errorf("CompareAndExchangePointer got %p (loc %p), want %p (loc nil)", got, p, b)
	}
}
