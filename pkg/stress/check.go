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

package stress

import (
	"context"
	"fmt"
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/atomicops"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/sync"
)

// Scenario is a deterministic check of one property of the primitives.
type Scenario struct {
	// Name is a short identifier.
	Name string

	// Run performs the check with the given ordering.
	Run func(ctx context.Context, order memorder.Order) error
}

// CheckResult is the outcome of one Scenario at one ordering.
type CheckResult struct {
	Scenario string         `json:"scenario" yaml:"scenario"`
	Order    memorder.Order `json:"order" yaml:"order"`
	Passed   bool           `json:"passed" yaml:"passed"`
	Detail   string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Scenarios returns the deterministic checks run by Check.
func Scenarios() []Scenario {
	return []Scenario{
		{Name: "cas32-scenario", Run: checkCAS32},
		{Name: "cas64-scenario", Run: checkCAS64},
		{Name: "cas8-positions", Run: checkCAS8Positions},
		{Name: "add-pair", Run: checkAddPair},
		{Name: "add-fetch-consistency", Run: checkAddConsistency},
		{Name: "exchange-prior", Run: checkExchange},
		{Name: "byte-isolation", Run: checkByteIsolation},
	}
}

// Check runs every scenario at every ordering. The returned error is non-nil
// if any check failed; all results are returned regardless.
func Check(ctx context.Context) ([]CheckResult, error) {
	var (
		results []CheckResult
		failed  int
	)
	for _, s := range Scenarios() {
		for _, order := range memorder.All() {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			r := CheckResult{Scenario: s.Name, Order: order, Passed: true}
			if err := s.Run(ctx, order); err != nil {
				r.Passed = false
				r.Detail = err.Error()
				failed++
			}
			results = append(results, r)
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return results, nil
}

func checkCAS32(_ context.Context, order memorder.Order) error {
	loc := uint32(0x1234)
	if got := atomicops.CompareAndExchange32(&loc, 0x1234, 0x5678, order); got != 0x1234 {
		return fmt.Errorf("first exchange returned %#x, want 0x1234", got)
	}
	if loc != 0x5678 {
		return fmt.Errorf("location is %#x after first exchange, want 0x5678", loc)
	}
	if got := atomicops.CompareAndExchange32(&loc, 0x1234, 0x5678, order); got != 0x5678 {
		return fmt.Errorf("second exchange returned %#x, want 0x5678", got)
	}
	if loc != 0x5678 {
		return fmt.Errorf("location is %#x after second exchange, want 0x5678", loc)
	}
	// Sign bit set in both comparands.
	neg := int32(-2)
	if got := atomicops.CompareAndExchange32(&neg, -2, -3, order); got != -2 || neg != -3 {
		return fmt.Errorf("signed exchange returned %d leaving %d, want -2 leaving -3", got, neg)
	}
	return nil
}

func checkCAS64(_ context.Context, order memorder.Order) error {
	loc := uint64(0x1234_0000_0000)
	if got := atomicops.CompareAndExchange64(&loc, 0x1234_0000_0000, 0x5678, order); got != 0x1234_0000_0000 {
		return fmt.Errorf("first exchange returned %#x, want 0x123400000000", got)
	}
	if got := atomicops.CompareAndExchange64(&loc, 0x1234_0000_0000, 1, order); got != 0x5678 || loc != 0x5678 {
		return fmt.Errorf("second exchange returned %#x leaving %#x, want 0x5678 leaving 0x5678", got, loc)
	}
	return nil
}

func checkCAS8Positions(_ context.Context, order memorder.Order) error {
	for pos := 0; pos < 4; pos++ {
		word := uint32(0xa1b2c3d4)
		bytes := (*[4]uint8)(unsafe.Pointer(&word))
		before := *bytes
		if got := atomicops.CompareAndExchange8(&bytes[pos], before[pos]+1, 0, order); got != before[pos] {
			return fmt.Errorf("byte %d: mismatched exchange returned %#x, want %#x", pos, got, before[pos])
		}
		if *bytes != before {
			return fmt.Errorf("byte %d: mismatched exchange changed word to %#08x", pos, word)
		}
		if got := atomicops.CompareAndExchange8(&bytes[pos], before[pos], 0x5a, order); got != before[pos] {
			return fmt.Errorf("byte %d: exchange returned %#x, want %#x", pos, got, before[pos])
		}
		want := before
		want[pos] = 0x5a
		if *bytes != want {
			return fmt.Errorf("byte %d: word is % x, want % x", pos, *bytes, want)
		}
	}
	return nil
}

func checkAddPair(_ context.Context, order memorder.Order) error {
	const trials = 1000
	for i := 0; i < trials; i++ {
		loc := uint32(10)
		var (
			wg  sync.WaitGroup
			got [2]uint32
		)
		for j := range got {
			wg.Add(1)
			go func(j int) {
				defer wg.Done()
				got[j] = atomicops.AddAndFetch32(&loc, 5, order)
			}(j)
		}
		wg.Wait()
		if loc != 20 {
			return fmt.Errorf("trial %d: final value %d, want 20", i, loc)
		}
		if got != [2]uint32{15, 20} && got != [2]uint32{20, 15} {
			return fmt.Errorf("trial %d: returned %v, want {15, 20} in some order", i, got)
		}
	}
	return nil
}

func checkAddConsistency(_ context.Context, order memorder.Order) error {
	for _, tc := range []struct{ start, delta int32 }{
		{0, 1},
		{10, -20},
		{-1, 1},
		{0x7fffffff, 1},
		{-0x80000000, -1},
	} {
		a, b := tc.start, tc.start
		after := atomicops.AddAndFetch32(&a, tc.delta, order)
		before := atomicops.FetchAndAdd32(&b, tc.delta, order)
		if after-tc.delta != before || a != b {
			return fmt.Errorf("start %d delta %d: add-and-fetch %d, fetch-and-add %d", tc.start, tc.delta, after, before)
		}
	}
	for _, tc := range []struct{ start, delta uint64 }{
		{0, 1},
		{^uint64(0), 1},
		{1 << 40, ^uint64(0)},
	} {
		a, b := tc.start, tc.start
		after := atomicops.AddAndFetch64(&a, tc.delta, order)
		before := atomicops.FetchAndAdd64(&b, tc.delta, order)
		if after-tc.delta != before || a != b {
			return fmt.Errorf("start %#x delta %#x: add-and-fetch %#x, fetch-and-add %#x", tc.start, tc.delta, after, before)
		}
	}
	return nil
}

func checkExchange(_ context.Context, order memorder.Order) error {
	loc := uint32(7)
	if got := atomicops.Exchange32(&loc, 8, order); got != 7 || loc != 8 {
		return fmt.Errorf("32-bit exchange returned %d leaving %d, want 7 leaving 8", got, loc)
	}
	loc64 := int64(-7)
	if got := atomicops.Exchange64(&loc64, 1<<40, order); got != -7 || loc64 != 1<<40 {
		return fmt.Errorf("64-bit exchange returned %d leaving %d, want -7 leaving %d", got, loc64, int64(1<<40))
	}
	return nil
}

func checkByteIsolation(ctx context.Context, order memorder.Order) error {
	cfg := Config{Workers: 2, Iterations: 1000, Order: order}
	_, err := ByteIsolation{}.round(ctx, &cfg)
	return err
}
