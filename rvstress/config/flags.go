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

package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"

	"github.com/BurntSushi/toml"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/stress"
)

// RegisterFlags registers flags used to populate Config.
func RegisterFlags(flagSet *flag.FlagSet) {
	def := stress.DefaultConfig()

	flagSet.String("config", "", "TOML file with configuration; flags given on the command line take precedence.")

	// Debugging flags.
	flagSet.Bool("debug", false, "enable debug logging.")
	flagSet.String("log", "", "file path where log messages are appended, default is stderr.")
	flagSet.String("log-format", "text", "log format: text (default) or json.")

	// Output flags.
	flagSet.String("o", "table", "output format: table (default), json, yaml or prom.")

	// Workload flags.
	flagSet.Int("workers", def.Workers, "number of goroutines per contended location, default is the number of CPUs.")
	flagSet.Int("iterations", def.Iterations, "number of operations each worker performs per round.")
	flagSet.Duration("duration", 0, "keep running rounds until this much time has passed. Zero runs a single round.")
	flagSet.Var(orderPtr(def.Order), "order", "memory ordering passed to the primitives: conservative (default), acq_rel, release, acquire or relaxed.")
	flagSet.Bool("pin-cpus", false, "bind each worker to one CPU.")
	flagSet.Duration("progress-interval", def.ProgressInterval, "minimum interval between progress log messages.")
	flagSet.String("lock-file", DefaultLockFile(), "file locked while workloads run to keep concurrent runs apart. Empty disables locking.")
}

// DefaultLockFile returns the default value of the lock-file flag.
func DefaultLockFile() string {
	return filepath.Join(os.TempDir(), "rvstress.lock")
}

func orderPtr(o memorder.Order) *memorder.Order {
	return &o
}

// NewFromFlags creates a new Config with values coming from the
// configuration file named by --config, if any, and command line flags.
func NewFromFlags(flagSet *flag.FlagSet) (*Config, error) {
	conf := &Config{}
	flagSet.VisitAll(func(fl *flag.Flag) {
		setField(conf, fl)
	})

	if conf.ConfigFile != "" {
		if err := conf.load(conf.ConfigFile); err != nil {
			return nil, err
		}
		// Flags set explicitly win over the file.
		flagSet.Visit(func(fl *flag.Flag) {
			setField(conf, fl)
		})
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// load overlays the TOML file at path onto c.
func (c *Config) load(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("reading config file %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %q: unknown keys %v", path, undecoded)
	}
	return nil
}

// setField copies the value of fl into the field of c tagged with its name.
// Flags without a matching field are ignored.
func setField(c *Config, fl *flag.Flag) {
	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		name, ok := st.Field(i).Tag.Lookup("flag")
		if !ok || name != fl.Name {
			continue
		}
		getter, ok := fl.Value.(flag.Getter)
		if !ok {
			panic(fmt.Sprintf("flag %q does not implement flag.Getter", name))
		}
		obj.Field(i).Set(reflect.ValueOf(getter.Get()))
		return
	}
}

// ToFlags returns a slice of flags that correspond to the given Config.
// Values equal to the flag default are omitted.
func (c *Config) ToFlags() []string {
	var rv []string

	// Construct a temporary set for default plumbing.
	flagSet := flag.NewFlagSet("tmp", flag.ContinueOnError)
	RegisterFlags(flagSet)

	obj := reflect.ValueOf(c).Elem()
	st := obj.Type()
	for i := 0; i < st.NumField(); i++ {
		name, ok := st.Field(i).Tag.Lookup("flag")
		if !ok {
			continue
		}
		fl := flagSet.Lookup(name)
		if fl == nil {
			panic(fmt.Sprintf("Flag %q not found", name))
		}
		val := getVal(obj.Field(i))
		if val == fl.DefValue {
			continue
		}
		rv = append(rv, fmt.Sprintf("--%s=%s", fl.Name, val))
	}
	return rv
}

func getVal(field reflect.Value) string {
	if str, ok := field.Addr().Interface().(fmt.Stringer); ok {
		return str.String()
	}
	if str, ok := field.Interface().(fmt.Stringer); ok {
		return str.String()
	}
	switch field.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(field.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10)
	case reflect.String:
		return field.String()
	default:
		panic("unknown type " + field.Kind().String())
	}
}
