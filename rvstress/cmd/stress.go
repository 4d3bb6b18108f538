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

package cmd

import (
	"context"
	"flag"
	"os"
	"strings"

	"github.com/google/subcommands"
	"gvisor.dev/riscvatomic/pkg/log"
	"gvisor.dev/riscvatomic/pkg/stress"
	"gvisor.dev/riscvatomic/pkg/stress/export"
	"gvisor.dev/riscvatomic/rvstress/config"
)

// Stress implements subcommands.Command for the "stress" command.
type Stress struct {
	workloads string
}

// Name implements subcommands.Command.Name.
func (*Stress) Name() string {
	return "stress"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Stress) Synopsis() string {
	return "run concurrent workloads against the atomic primitives"
}

// Usage implements subcommands.Command.Usage.
func (*Stress) Usage() string {
	return `stress [flags] - run concurrent workloads against the atomic primitives.

Workers, iterations, duration and memory ordering are set with global flags
or the configuration file. Exits with a non-zero status on any violation.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (s *Stress) SetFlags(f *flag.FlagSet) {
	var names []string
	for _, w := range stress.Workloads() {
		names = append(names, w.Name())
	}
	f.StringVar(&s.workloads, "workloads", "", "comma-separated list of workloads to run, default all: "+strings.Join(names, ", "))
}

// Execute implements subcommands.Command.Execute.
func (s *Stress) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	ws, err := s.selected()
	if err != nil {
		log.Warningf("%v", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	unlock, err := lockRun(conf.LockFile)
	if err != nil {
		log.Warningf("%v", err)
		return subcommands.ExitFailure
	}
	defer unlock()

	log.Infof("Running %d workloads, %d workers, %d iterations, order %v", len(ws), conf.Workers, conf.Iterations, conf.Order)
	results, runErr := stress.RunAll(ctx, ws, conf.Stress())
	if err := export.Render(os.Stdout, conf.Output, results); err != nil {
		Fatalf("writing output: %v", err)
	}
	if runErr != nil {
		log.Warningf("Stress failed: %v", runErr)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (s *Stress) selected() ([]stress.Workload, error) {
	if s.workloads == "" {
		return stress.Workloads(), nil
	}
	var ws []stress.Workload
	for _, name := range strings.Split(s.workloads, ",") {
		w, err := stress.Lookup(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		ws = append(ws, w)
	}
	return ws, nil
}
