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

	"github.com/google/subcommands"
	"gvisor.dev/riscvatomic/pkg/log"
	"gvisor.dev/riscvatomic/pkg/stress"
	"gvisor.dev/riscvatomic/pkg/stress/export"
	"gvisor.dev/riscvatomic/rvstress/config"
)

// Check implements subcommands.Command for the "check" command.
type Check struct{}

// Name implements subcommands.Command.Name.
func (*Check) Name() string {
	return "check"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Check) Synopsis() string {
	return "run the deterministic checks of the atomic primitives once"
}

// Usage implements subcommands.Command.Usage.
func (*Check) Usage() string {
	return `check - run the deterministic checks of the atomic primitives at every memory ordering.

Exits with a non-zero status if any check fails.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Check) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Check) Execute(ctx context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)

	results, checkErr := stress.Check(ctx)
	if err := export.RenderChecks(os.Stdout, conf.Output, results); err != nil {
		Fatalf("writing output: %v", err)
	}
	if checkErr != nil {
		log.Warningf("Check failed: %v", checkErr)
		return subcommands.ExitFailure
	}
	log.Infof("All %d checks passed", len(results))
	return subcommands.ExitSuccess
}
