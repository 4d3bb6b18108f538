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
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/sync"
)

func TestAddAndFetchPair(t *testing.T) {
	for _, order := range memorder.All() {
		t.Run(order.String(), func(t *testing.T) {
			for trial := 0; trial < 1000; trial++ {
				loc := int32(10)
				var got [2]int32
				var wg sync.WaitGroup
				for i := range got {
					wg.Add(1)
					go func(i int) {
						defer wg.Done()
						got[i] = AddAndFetch32(&loc, 5, order)
					}(i)
				}
				wg.Wait()
				if loc != 20 {
					t.Fatalf("trial %d: final value got %d, want 20", trial, loc)
				}
				if got[0] > got[1] {
					got[0], got[1] = got[1], got[0]
				}
				if got != [2]int32{15, 20} {
					t.Fatalf("trial %d: returned values got %v, want [15 20]", trial, got)
				}
			}
		})
	}
}

func TestFetchAndAddConsistency32(t *testing.T) {
	for _, tc := range []struct {
		name  string
		start int32
		delta int32
	}{
		{"zero", 0, 0},
		{"positive", 10, 5},
		{"negative", 10, -25},
		{"overflow", math.MaxInt32, 1},
		{"underflow", math.MinInt32, -1},
		{"min plus min", math.MinInt32, math.MinInt32},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.start, tc.start
			after := AddAndFetch32(&a, tc.delta, memorder.Relaxed)
			before := FetchAndAdd32(&b, tc.delta, memorder.Conservative)
			if after-tc.delta != before {
				t.Errorf("AddAndFetch32 - delta = %d, FetchAndAdd32 = %d", after-tc.delta, before)
			}
			if before != tc.start {
				t.Errorf("FetchAndAdd32 got %d, want %d", before, tc.start)
			}
			if a != b || a != tc.start+tc.delta {
				t.Errorf("locations got %d and %d, want %d", a, b, tc.start+tc.delta)
			}
		})
	}
}

func TestFetchAndAddConsistency64(t *testing.T) {
	for _, tc := range []struct {
		name  string
		start uint64
		delta uint64
	}{
		{"zero", 0, 0},
		{"positive", 1 << 40, 3},
		{"wrap", math.MaxUint64, 2},
		{"minus one", 7, math.MaxUint64},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, b := tc.start, tc.start
			after := AddAndFetch64(&a, tc.delta, memorder.Acquire)
			before := FetchAndAdd64(&b, tc.delta, memorder.Release)
			if after-tc.delta != before {
				t.Errorf("AddAndFetch64 - delta = %d, FetchAndAdd64 = %d", after-tc.delta, before)
			}
			if a != b || a != tc.start+tc.delta {
				t.Errorf("locations got %d and %d, want %d", a, b, tc.start+tc.delta)
			}
		})
	}
}

func TestSubAndFetch(t *testing.T) {
	u := uint32(3)
	if got := SubAndFetch32(&u, 5, memorder.Conservative); got != math.MaxUint32-1 {
		t.Errorf("SubAndFetch32 got %d, want %d", got, uint32(math.MaxUint32-1))
	}
	i := int64(-3)
	if got := SubAndFetch64(&i, -10, memorder.Relaxed); got != 7 {
		t.Errorf("SubAndFetch64 got %d, want 7", got)
	}
}

func TestAddAndFetchNoLostUpdates(t *testing.T) {
	const (
		goroutines = 8
		perG       = 2000
	)
	var loc uint64
	results := make([][]uint64, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perG; i++ {
				results[g] = append(results[g], AddAndFetch64(&loc, 1, memorder.Conservative))
			}
		}(g)
	}
	wg.Wait()

	var all []uint64
	for _, r := range results {
		all = append(all, r...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	want := make([]uint64, goroutines*perG)
	for i := range want {
		want[i] = uint64(i + 1)
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Errorf("returned values mismatch (-want +got):\n%s", diff)
	}
	if loc != goroutines*perG {
		t.Errorf("final value got %d, want %d", loc, goroutines*perG)
	}
}

func TestUintptr(t *testing.T) {
	p := uintptr(100)
	if got := FetchAndAddUintptr(&p, 5, memorder.Conservative); got != 100 {
		t.Errorf("FetchAndAddUintptr got %d, want 100", got)
	}
	if got := ExchangeUintptr(&p, 1, memorder.Relaxed); got != 105 {
		t.Errorf("ExchangeUintptr got %d, want 105", got)
	}
	if got := CompareAndExchangeUintptr(&p, 1, 2, memorder.AcqRel); got != 1 || p != 2 {
		t.Errorf("CompareAndExchangeUintptr got %d (loc %d), want 1 (loc 2)", got, p)
	}
	if got := CompareAndExchangeUintptr(&p, 1, 3, memorder.AcqRel); got != 2 || p != 2 {
		t.Errorf("failed CompareAndExchangeUintptr got %d (loc %d), want 2 (loc 2)", got, p)
	}
}

func BenchmarkAddAndFetch32(b *testing.B) {
	var loc uint32
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			AddAndFetch32(&loc, 1, memorder.Conservative)
		}
	})
}
