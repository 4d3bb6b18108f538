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
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gvisor.dev/riscvatomic/pkg/memorder"
)

func smallConfig(order memorder.Order) Config {
	return Config{
		Workers:    4,
		Iterations: 2000,
		Order:      order,
	}
}

func TestWorkloadsPass(t *testing.T) {
	for _, w := range Workloads() {
		for _, order := range memorder.All() {
			t.Run(w.Name()+"/"+order.String(), func(t *testing.T) {
				res, err := Run(context.Background(), w, smallConfig(order))
				if err != nil {
					t.Fatalf("Run failed: %v", err)
				}
				want := Result{
					Workload: w.Name(),
					Order:    order,
					Workers:  4,
					Rounds:   1,
					Passed:   true,
				}
				opts := cmpopts.IgnoreFields(Result{}, "Operations", "Retries", "ElapsedSeconds")
				if diff := cmp.Diff(want, res, opts); diff != "" {
					t.Errorf("Run result mismatch (-want +got):\n%s", diff)
				}
				if res.Operations == 0 {
					t.Errorf("Operations = 0, want > 0")
				}
			})
		}
	}
}

func TestRunDuration(t *testing.T) {
	cfg := smallConfig(memorder.Relaxed)
	cfg.Iterations = 10
	cfg.Duration = 50 * time.Millisecond
	res, err := Run(context.Background(), StrongCAS{}, cfg)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Rounds < 2 {
		t.Errorf("Rounds = %d, want several rounds within %v", res.Rounds, cfg.Duration)
	}
	if res.Operations != uint64(res.Rounds)*2*4*10 {
		t.Errorf("Operations = %d, want %d", res.Operations, uint64(res.Rounds)*2*4*10)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, AddConsistency{}, smallConfig(memorder.Conservative))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want %v", err, context.Canceled)
	}
	if res.Passed {
		t.Errorf("cancelled run reported Passed")
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		mod  func(*Config)
		ok   bool
	}{
		{name: "default", mod: func(*Config) {}, ok: true},
		{name: "zero workers", mod: func(c *Config) { c.Workers = 0 }},
		{name: "negative iterations", mod: func(c *Config) { c.Iterations = -1 }},
		{name: "negative duration", mod: func(c *Config) { c.Duration = -time.Second }},
		{name: "bad order", mod: func(c *Config) { c.Order = memorder.Order(42) }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mod(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, want ok=%t", err, tc.ok)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	for _, w := range Workloads() {
		got, err := Lookup(w.Name())
		if err != nil {
			t.Fatalf("Lookup(%q) failed: %v", w.Name(), err)
		}
		if got.Name() != w.Name() {
			t.Errorf("Lookup(%q) = %q", w.Name(), got.Name())
		}
	}
	if _, err := Lookup("nope"); err == nil {
		t.Errorf("Lookup(nope) succeeded")
	}
}

type failing struct{}

func (failing) Name() string { return "failing" }

func (failing) round(context.Context, *Config) (roundStats, error) {
	return roundStats{ops: 1}, &Violation{Workload: "failing", Detail: "lost update"}
}

func TestViolation(t *testing.T) {
	res, err := Run(context.Background(), failing{}, smallConfig(memorder.Acquire))
	var v *Violation
	if !errors.As(err, &v) {
		t.Fatalf("Run returned %v, want a *Violation", err)
	}
	if v.Round != 1 {
		t.Errorf("Violation.Round = %d, want 1", v.Round)
	}
	if res.Passed || res.Detail != "lost update" {
		t.Errorf("Result = %+v, want failed with detail", res)
	}

	results, err := RunAll(context.Background(), []Workload{StrongCAS{}, failing{}, AddConsistency{}}, smallConfig(memorder.Relaxed))
	if !errors.As(err, &v) {
		t.Fatalf("RunAll returned %v, want a *Violation", err)
	}
	if len(results) != 2 {
		t.Errorf("RunAll returned %d results, want 2", len(results))
	}
}

func TestCheck(t *testing.T) {
	results, err := Check(context.Background())
	if err != nil {
		t.Fatalf("Check failed: %v\n%+v", err, results)
	}
	if want := len(Scenarios()) * len(memorder.All()); len(results) != want {
		t.Errorf("Check returned %d results, want %d", len(results), want)
	}
}

func TestPinnedWorkers(t *testing.T) {
	cpus, err := allowedCPUs()
	if err != nil {
		t.Skipf("CPU pinning unavailable: %v", err)
	}
	unpin, err := pinToCPU(cpus[0])
	if err != nil {
		t.Skipf("CPU pinning unavailable: %v", err)
	}
	unpin()

	cfg := smallConfig(memorder.Conservative)
	cfg.PinCPUs = true
	if _, err := Run(context.Background(), ByteIsolation{}, cfg); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}
