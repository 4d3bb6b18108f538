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
	"sort"
	"unsafe"

	"gvisor.dev/riscvatomic/pkg/atomicops"
	"gvisor.dev/riscvatomic/pkg/memorder"
)

// ByteIsolation runs compare-and-exchange increments on the four bytes of
// one aligned word at once, Workers goroutines per byte. Each byte must end
// with exactly its own increments.
type ByteIsolation struct{}

// Name implements Workload.Name.
func (ByteIsolation) Name() string { return "byte-isolation" }

// isolationStart gives each byte a distinct starting value, including ones
// with the sign bit set.
var isolationStart = [4]uint8{0x5a, 0x7f, 0x80, 0xff}

func (ByteIsolation) round(ctx context.Context, cfg *Config) (roundStats, error) {
	var word uint32
	bytes := (*[4]uint8)(unsafe.Pointer(&word))
	*bytes = isolationStart

	retries := make([]uint64, 4*cfg.Workers)
	err := fanOut(ctx, cfg, 4*cfg.Workers, func(ctx context.Context, id int) error {
		b := &bytes[id%4]
		old := atomicops.CompareAndExchange8(b, 0, 0, memorder.Relaxed)
		for i := 0; i < cfg.Iterations; i++ {
			if err := cancelled(ctx, i); err != nil {
				return err
			}
			for {
				cur := atomicops.CompareAndExchange8(b, old, old+1, cfg.Order)
				if cur == old {
					old++
					break
				}
				old = cur
				retries[id]++
			}
		}
		return nil
	})
	stats := roundStats{ops: uint64(4 * cfg.Workers * cfg.Iterations), retries: sum(retries)}
	if err != nil {
		return stats, err
	}

	final := atomicops.CompareAndExchange32(&word, 0, 0, memorder.Conservative)
	got := *(*[4]uint8)(unsafe.Pointer(&final))
	perByte := uint8(cfg.Workers * cfg.Iterations)
	var gotSum, wantSum int
	for i := range got {
		want := isolationStart[i] + perByte
		gotSum += int(got[i])
		wantSum += int(want)
		if got[i] != want {
			return stats, &Violation{
				Workload: ByteIsolation{}.Name(),
				Detail:   fmt.Sprintf("byte %d is %#x, want %#x (word %#08x)", i, got[i], want, final),
			}
		}
	}
	if gotSum != wantSum {
		return stats, &Violation{
			Workload: ByteIsolation{}.Name(),
			Detail:   fmt.Sprintf("checksum %d, want %d", gotSum, wantSum),
		}
	}
	return stats, nil
}

// AddConsistency runs AddAndFetch32 and FetchAndAdd32 concurrently on one
// location. Every returned value must be distinct, and together they must
// form the exact sequence of intermediate values.
type AddConsistency struct{}

// Name implements Workload.Name.
func (AddConsistency) Name() string { return "add-consistency" }

const (
	addStart = uint32(10)
	addDelta = uint32(5)
)

func (AddConsistency) round(ctx context.Context, cfg *Config) (roundStats, error) {
	loc := addStart
	seen := make([][]uint32, cfg.Workers)
	err := fanOut(ctx, cfg, cfg.Workers, func(ctx context.Context, id int) error {
		out := make([]uint32, 0, cfg.Iterations)
		for i := 0; i < cfg.Iterations; i++ {
			if err := cancelled(ctx, i); err != nil {
				return err
			}
			// Odd workers use fetch-and-add and record the value they
			// produced, so both forms land in the same sequence.
			if id%2 == 0 {
				out = append(out, atomicops.AddAndFetch32(&loc, addDelta, cfg.Order))
			} else {
				out = append(out, atomicops.FetchAndAdd32(&loc, addDelta, cfg.Order)+addDelta)
			}
		}
		seen[id] = out
		return nil
	})
	stats := roundStats{ops: uint64(cfg.Workers * cfg.Iterations)}
	if err != nil {
		return stats, err
	}

	var all []uint32
	for _, s := range seen {
		all = append(all, s...)
	}
	// Values are compared as offsets from the start so wraparound sorts
	// correctly.
	sort.Slice(all, func(i, j int) bool { return all[i]-addStart < all[j]-addStart })
	for i, v := range all {
		if want := addStart + uint32(i+1)*addDelta; v != want {
			return stats, &Violation{
				Workload: AddConsistency{}.Name(),
				Detail:   fmt.Sprintf("returned value #%d is %d, want %d", i, v, want),
			}
		}
	}
	final := atomicops.FetchAndAdd32(&loc, 0, memorder.Conservative)
	if want := addStart + uint32(len(all))*addDelta; final != want {
		return stats, &Violation{
			Workload: AddConsistency{}.Name(),
			Detail:   fmt.Sprintf("final value %d, want %d", final, want),
		}
	}
	return stats, nil
}

// ExchangeIntegrity has every worker exchange unique 64-bit tokens into one
// location. Each token and the initial value must come back exactly once;
// a torn or merged exchange would produce a value nobody wrote.
type ExchangeIntegrity struct{}

// Name implements Workload.Name.
func (ExchangeIntegrity) Name() string { return "exchange-integrity" }

func exchangeToken(worker, i int) uint64 {
	return uint64(worker+1)<<32 | uint64(uint32(i))
}

func (ExchangeIntegrity) round(ctx context.Context, cfg *Config) (roundStats, error) {
	var loc uint64
	seen := make([][]uint64, cfg.Workers)
	err := fanOut(ctx, cfg, cfg.Workers, func(ctx context.Context, id int) error {
		out := make([]uint64, 0, cfg.Iterations)
		for i := 0; i < cfg.Iterations; i++ {
			if err := cancelled(ctx, i); err != nil {
				return err
			}
			out = append(out, atomicops.Exchange64(&loc, exchangeToken(id, i), cfg.Order))
		}
		seen[id] = out
		return nil
	})
	stats := roundStats{ops: uint64(cfg.Workers * cfg.Iterations)}
	if err != nil {
		return stats, err
	}

	counts := make(map[uint64]int, cfg.Workers*cfg.Iterations+1)
	counts[atomicops.Exchange64(&loc, 0, memorder.Conservative)]++
	for _, s := range seen {
		for _, v := range s {
			counts[v]++
		}
	}
	check := func(v uint64) error {
		if c := counts[v]; c != 1 {
			return &Violation{
				Workload: ExchangeIntegrity{}.Name(),
				Detail:   fmt.Sprintf("value %#x observed %d times, want 1", v, c),
			}
		}
		return nil
	}
	if err := check(0); err != nil {
		return stats, err
	}
	for w := 0; w < cfg.Workers; w++ {
		for i := 0; i < cfg.Iterations; i++ {
			if err := check(exchangeToken(w, i)); err != nil {
				return stats, err
			}
		}
	}
	if want := cfg.Workers*cfg.Iterations + 1; len(counts) != want {
		return stats, &Violation{
			Workload: ExchangeIntegrity{}.Name(),
			Detail:   fmt.Sprintf("%d distinct values observed, want %d", len(counts), want),
		}
	}
	return stats, nil
}

// StrongCAS increments 32-bit and 64-bit counters with compare-and-exchange
// loops. Lost increments mean a false success; the retry count shows how
// often the expected value was stale.
type StrongCAS struct{}

// Name implements Workload.Name.
func (StrongCAS) Name() string { return "strong-cas" }

func (StrongCAS) round(ctx context.Context, cfg *Config) (roundStats, error) {
	var (
		c32 int32
		c64 int64
	)
	retries := make([]uint64, cfg.Workers)
	err := fanOut(ctx, cfg, cfg.Workers, func(ctx context.Context, id int) error {
		for i := 0; i < cfg.Iterations; i++ {
			if err := cancelled(ctx, i); err != nil {
				return err
			}
			for old := int32(0); ; retries[id]++ {
				cur := atomicops.CompareAndExchange32(&c32, old, old-1, cfg.Order)
				if cur == old {
					break
				}
				old = cur
			}
			for old := int64(0); ; retries[id]++ {
				cur := atomicops.CompareAndExchange64(&c64, old, old+1, cfg.Order)
				if cur == old {
					break
				}
				old = cur
			}
		}
		return nil
	})
	stats := roundStats{ops: uint64(2 * cfg.Workers * cfg.Iterations), retries: sum(retries)}
	if err != nil {
		return stats, err
	}

	total := int64(cfg.Workers * cfg.Iterations)
	if got := atomicops.CompareAndExchange32(&c32, 0, 0, memorder.Conservative); got != int32(-total) {
		return stats, &Violation{
			Workload: StrongCAS{}.Name(),
			Detail:   fmt.Sprintf("32-bit counter %d, want %d", got, int32(-total)),
		}
	}
	if got := atomicops.CompareAndExchange64(&c64, 0, 0, memorder.Conservative); got != total {
		return stats, &Violation{
			Workload: StrongCAS{}.Name(),
			Detail:   fmt.Sprintf("64-bit counter %d, want %d", got, total),
		}
	}
	return stats, nil
}

func sum(vs []uint64) uint64 {
	var s uint64
	for _, v := range vs {
		s += v
	}
	return s
}
