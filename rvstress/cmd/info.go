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
	"fmt"
	"io"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/google/subcommands"
	"gvisor.dev/riscvatomic/pkg/atomicops"
	"gvisor.dev/riscvatomic/pkg/log"
	"gvisor.dev/riscvatomic/pkg/stress/export"
	"gvisor.dev/riscvatomic/rvstress/config"
)

// Info implements subcommands.Command for the "info" command.
type Info struct{}

// HostInfo describes the atomic primitives compiled into this binary and the
// host running it.
type HostInfo struct {
	FullCompilerAtomicSupport bool   `json:"full_compiler_atomic_support" yaml:"full_compiler_atomic_support"`
	Backend                   string `json:"backend" yaml:"backend"`
	GOOS                      string `json:"goos" yaml:"goos"`
	GOARCH                    string `json:"goarch" yaml:"goarch"`
	Compiler                  string `json:"compiler" yaml:"compiler"`
	GoVersion                 string `json:"go_version" yaml:"go_version"`
	NumCPU                    int    `json:"num_cpu" yaml:"num_cpu"`
	Machine                   string `json:"machine" yaml:"machine"`
	Kernel                    string `json:"kernel" yaml:"kernel"`
}

// GetHostInfo collects HostInfo for the running binary.
func GetHostInfo() HostInfo {
	machine, kernel := uname()
	return HostInfo{
		FullCompilerAtomicSupport: atomicops.FullCompilerAtomicSupport,
		Backend:                   atomicops.Backend(),
		GOOS:                      runtime.GOOS,
		GOARCH:                    runtime.GOARCH,
		Compiler:                  runtime.Compiler,
		GoVersion:                 runtime.Version(),
		NumCPU:                    runtime.NumCPU(),
		Machine:                   machine,
		Kernel:                    kernel,
	}
}

// Name implements subcommands.Command.Name.
func (*Info) Name() string {
	return "info"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*Info) Synopsis() string {
	return "print the atomic backend compiled into this binary and host details"
}

// Usage implements subcommands.Command.Usage.
func (*Info) Usage() string {
	return `info - print the atomic backend compiled into this binary and host details.

Use the global -o flag to select table, json or yaml output. The prom format
is not supported by info.
`
}

// SetFlags implements subcommands.Command.SetFlags.
func (*Info) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*Info) Execute(_ context.Context, f *flag.FlagSet, args ...any) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	conf := args[0].(*config.Config)
	if !infoFormats[conf.Output] {
		log.Warningf("Output format %q is not supported by info, must be table, json or yaml", conf.Output)
		f.Usage()
		return subcommands.ExitUsageError
	}

	if err := writeHostInfo(os.Stdout, conf.Output, GetHostInfo()); err != nil {
		Fatalf("writing output: %v", err)
	}
	return subcommands.ExitSuccess
}

// infoFormats are the output formats info can write.
var infoFormats = map[string]bool{
	"table": true,
	"json":  true,
	"yaml":  true,
}

func writeHostInfo(w io.Writer, format string, info HostInfo) error {
	switch format {
	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Full compiler atomic support:\t%t\n", info.FullCompilerAtomicSupport)
		fmt.Fprintf(tw, "Backend:\t%s\n", info.Backend)
		fmt.Fprintf(tw, "OS/Arch:\t%s/%s\n", info.GOOS, info.GOARCH)
		fmt.Fprintf(tw, "Compiler:\t%s %s\n", info.Compiler, info.GoVersion)
		fmt.Fprintf(tw, "CPUs:\t%d\n", info.NumCPU)
		fmt.Fprintf(tw, "Machine:\t%s\n", info.Machine)
		fmt.Fprintf(tw, "Kernel:\t%s\n", info.Kernel)
		return tw.Flush()
	case "json":
		return export.JSON(w, info)
	case "yaml":
		return export.YAML(w, info)
	default:
		return fmt.Errorf("output format %q is not supported by info", format)
	}
}
