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

// Package stress runs concurrent workloads against package atomicops and
// verifies the results: byte isolation of sub-word compare-and-exchange,
// arithmetic consistency of add, integrity of exchange, and strength of
// compare-and-exchange.
package stress

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
	"gvisor.dev/riscvatomic/pkg/log"
	"gvisor.dev/riscvatomic/pkg/memorder"
)

// Config controls a run.
type Config struct {
	// Workers is the number of goroutines per contended location.
	Workers int

	// Iterations is the number of operations each worker performs per round.
	Iterations int

	// Duration, if positive, repeats rounds until it has elapsed. At least
	// one round always runs.
	Duration time.Duration

	// Order is the ordering passed to every primitive.
	Order memorder.Order

	// PinCPUs locks each worker to an OS thread bound to one CPU.
	PinCPUs bool

	// ProgressInterval is the minimum interval between progress logs.
	ProgressInterval time.Duration
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Workers:          runtime.NumCPU(),
		Iterations:       10000,
		Order:            memorder.Conservative,
		ProgressInterval: 5 * time.Second,
	}
}

// Validate checks c for values that cannot be run.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %v", c.Duration)
	}
	if !c.Order.Valid() {
		return fmt.Errorf("invalid memory order %v", c.Order)
	}
	return nil
}

// Result is the outcome of running one workload.
type Result struct {
	Workload       string         `json:"workload" yaml:"workload"`
	Order          memorder.Order `json:"order" yaml:"order"`
	Workers        int            `json:"workers" yaml:"workers"`
	Rounds         int            `json:"rounds" yaml:"rounds"`
	Operations     uint64         `json:"operations" yaml:"operations"`
	Retries        uint64         `json:"retries" yaml:"retries"`
	ElapsedSeconds float64        `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Passed         bool           `json:"passed" yaml:"passed"`
	Detail         string         `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Violation is returned when a workload observes a result that atomicity
// forbids.
type Violation struct {
	// Workload is the name of the workload.
	Workload string

	// Round is the round in which the violation was seen.
	Round int

	// Detail describes the observation.
	Detail string
}

// Error implements error.Error.
func (v *Violation) Error() string {
	return fmt.Sprintf("%s: round %d: %s", v.Workload, v.Round, v.Detail)
}

// roundStats is what one round of a workload reports.
type roundStats struct {
	ops     uint64
	retries uint64
}

// Workload is a verifiable concurrent exercise of the primitives.
type Workload interface {
	// Name returns a short identifier.
	Name() string

	// round runs one round. A detected violation is returned as a
	// *Violation with Round unset.
	round(ctx context.Context, cfg *Config) (roundStats, error)
}

// Workloads returns all workloads, in the order they are run.
func Workloads() []Workload {
	return []Workload{
		ByteIsolation{},
		AddConsistency{},
		ExchangeIntegrity{},
		StrongCAS{},
	}
}

// Lookup returns the workload with the given name.
func Lookup(name string) (Workload, error) {
	for _, w := range Workloads() {
		if w.Name() == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("unknown workload %q", name)
}

// Run runs w according to cfg. A violation is reported both in the Result
// and as a *Violation error. Cancellation of ctx is returned as ctx.Err().
func Run(ctx context.Context, w Workload, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	res := Result{
		Workload: w.Name(),
		Order:    cfg.Order,
		Workers:  cfg.Workers,
	}
	progress := log.BasicRateLimitedLogger(cfg.ProgressInterval)
	start := time.Now()
	deadline := start.Add(cfg.Duration)
	for {
		stats, err := w.round(ctx, &cfg)
		res.Rounds++
		res.Operations += stats.ops
		res.Retries += stats.retries
		if err != nil {
			res.ElapsedSeconds = time.Since(start).Seconds()
			var v *Violation
			if errors.As(err, &v) {
				v.Round = res.Rounds
				res.Detail = v.Detail
				log.Warningf("%v", v)
			}
			return res, err
		}
		progress.Infof("%s: %d rounds, %d operations, %d retries", res.Workload, res.Rounds, res.Operations, res.Retries)
		if !time.Now().Before(deadline) {
			break
		}
	}
	res.ElapsedSeconds = time.Since(start).Seconds()
	res.Passed = true
	log.Debugf("%s passed: %d operations in %.3fs", res.Workload, res.Operations, res.ElapsedSeconds)
	return res, nil
}

// RunAll runs every workload in ws and returns all results. It stops at the
// first error, returning the results gathered so far.
func RunAll(ctx context.Context, ws []Workload, cfg Config) ([]Result, error) {
	var results []Result
	for _, w := range ws {
		res, err := Run(ctx, w, cfg)
		results = append(results, res)
		if err != nil {
			return results, fmt.Errorf("workload %s: %w", w.Name(), err)
		}
	}
	return results, nil
}

// fanOut runs n workers under an errgroup. When cfg asks for it, workers are
// pinned round-robin to the CPUs in the process's affinity set.
func fanOut(ctx context.Context, cfg *Config, n int, worker func(ctx context.Context, id int) error) error {
	var cpus []int
	if cfg.PinCPUs {
		var err error
		if cpus, err = allowedCPUs(); err != nil {
			return fmt.Errorf("reading CPU affinity: %w", err)
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	for id := 0; id < n; id++ {
		id := id
		g.Go(func() error {
			if cfg.PinCPUs {
				unpin, err := pinToCPU(cpus[id%len(cpus)])
				if err != nil {
					return fmt.Errorf("pinning worker %d: %w", id, err)
				}
				defer unpin()
			}
			return worker(ctx, id)
		})
	}
	return g.Wait()
}

// checkEvery is how many iterations pass between cancellation checks.
const checkEvery = 1024

func cancelled(ctx context.Context, i int) error {
	if i%checkEvery == 0 {
		return ctx.Err()
	}
	return nil
}
