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

// Package config provides basic infrastructure to set configuration settings
// for rvstress. Each setting is a command line flag and may also be given in
// a TOML file named by --config. Flags given on the command line take
// precedence over the file.
package config

import (
	"fmt"
	"time"

	"gvisor.dev/riscvatomic/pkg/log"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/stress"
	"gvisor.dev/riscvatomic/pkg/stress/export"
)

// Config holds configuration that is not part of a single subcommand.
//
// Fields with a `flag` tag are populated from the flag of that name; the
// `toml` tag names the key in the configuration file.
type Config struct {
	// ConfigFile is the TOML file read before flags are applied.
	ConfigFile string `flag:"config" toml:"-"`

	// Debug enables debug logging.
	Debug bool `flag:"debug" toml:"debug"`

	// LogFilename is the file logs are appended to. Empty means stderr.
	LogFilename string `flag:"log" toml:"log"`

	// LogFormat is the log format, "text" or "json".
	LogFormat string `flag:"log-format" toml:"log_format"`

	// Output is the report format used by subcommands that print results.
	Output string `flag:"o" toml:"output"`

	// Workers is the number of goroutines per contended location.
	Workers int `flag:"workers" toml:"workers"`

	// Iterations is the number of operations per worker per round.
	Iterations int `flag:"iterations" toml:"iterations"`

	// Duration repeats stress rounds until it has elapsed.
	Duration time.Duration `flag:"duration" toml:"duration"`

	// Order is the memory ordering passed to every primitive.
	Order memorder.Order `flag:"order" toml:"order"`

	// PinCPUs binds each stress worker to one CPU.
	PinCPUs bool `flag:"pin-cpus" toml:"pin_cpus"`

	// ProgressInterval is the minimum interval between progress logs.
	ProgressInterval time.Duration `flag:"progress-interval" toml:"progress_interval"`

	// LockFile is held while workloads run so that concurrent runs on the
	// same host do not skew each other. Empty disables locking.
	LockFile string `flag:"lock-file" toml:"lock_file"`
}

func (c *Config) validate() error {
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q, must be 'text' or 'json'", c.LogFormat)
	}
	if err := export.Valid(c.Output); err != nil {
		return err
	}
	sc := c.Stress()
	return sc.Validate()
}

// Stress returns the workload configuration.
func (c *Config) Stress() stress.Config {
	return stress.Config{
		Workers:          c.Workers,
		Iterations:       c.Iterations,
		Duration:         c.Duration,
		Order:            c.Order,
		PinCPUs:          c.PinCPUs,
		ProgressInterval: c.ProgressInterval,
	}
}

// Log logs important aspects of the configuration to the given log function.
func (c *Config) Log() {
	log.Infof("Config.ConfigFile: %q", c.ConfigFile)
	log.Infof("Config.Debug: %t", c.Debug)
	log.Infof("Config.LogFormat: %s", c.LogFormat)
	log.Infof("Config.Output: %s", c.Output)
	log.Infof("Config.Workers: %d", c.Workers)
	log.Infof("Config.Iterations: %d", c.Iterations)
	log.Infof("Config.Duration: %v", c.Duration)
	log.Infof("Config.Order: %v", c.Order)
	log.Infof("Config.PinCPUs: %t", c.PinCPUs)
	log.Infof("Config.LockFile: %q", c.LockFile)
}
