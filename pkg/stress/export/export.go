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

// Package export renders stress and check results for humans and machines.
//
// Supported formats are "table", "json", "yaml" and "prom", the last being
// the Prometheus text exposition format.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
	"gvisor.dev/riscvatomic/pkg/stress"
)

type renderFunc func(io.Writer, []stress.Result) error

type renderChecksFunc func(io.Writer, []stress.CheckResult) error

var (
	renderers = map[string]renderFunc{
		"table": resultsTable,
		"json":  writeJSON[[]stress.Result],
		"yaml":  writeYAML[[]stress.Result],
		"prom":  resultsProm,
	}

	checkRenderers = map[string]renderChecksFunc{
		"table": checksTable,
		"json":  writeJSON[[]stress.CheckResult],
		"yaml":  writeYAML[[]stress.CheckResult],
		"prom":  checksProm,
	}
)

// Formats returns the supported format names, sorted.
func Formats() []string {
	var fs []string
	for f := range renderers {
		fs = append(fs, f)
	}
	sort.Strings(fs)
	return fs
}

// Valid returns an error if format is not supported.
func Valid(format string) error {
	if _, ok := renderers[format]; !ok {
		return fmt.Errorf("unsupported output format %q, must be one of %v", format, Formats())
	}
	return nil
}

// Render writes results to w in the given format.
func Render(w io.Writer, format string, results []stress.Result) error {
	r, ok := renderers[format]
	if !ok {
		return Valid(format)
	}
	return r(w, results)
}

// RenderChecks writes check results to w in the given format.
func RenderChecks(w io.Writer, format string, results []stress.CheckResult) error {
	r, ok := checkRenderers[format]
	if !ok {
		return Valid(format)
	}
	return r(w, results)
}

func status(passed bool) string {
	if passed {
		return "PASS"
	}
	return "FAIL"
}

// resultsTable outputs results in tabular format.
func resultsTable(w io.Writer, results []stress.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tORDER\tWORKERS\tROUNDS\tOPERATIONS\tRETRIES\tSECONDS\tSTATUS\tDETAIL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%d\t%.3f\t%s\t%s\n",
			r.Workload, r.Order, r.Workers, r.Rounds, r.Operations, r.Retries, r.ElapsedSeconds, status(r.Passed), r.Detail)
	}
	return tw.Flush()
}

// checksTable outputs check results in tabular format.
func checksTable(w io.Writer, results []stress.CheckResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCENARIO\tORDER\tSTATUS\tDETAIL")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Scenario, r.Order, status(r.Passed), r.Detail)
	}
	return tw.Flush()
}

func writeJSON[T any](w io.Writer, v T) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(v)
}

func writeYAML[T any](w io.Writer, v T) error {
	e := yaml.NewEncoder(w)
	e.SetIndent(2)
	if err := e.Encode(v); err != nil {
		return err
	}
	return e.Close()
}

// JSON writes v to w as indented JSON.
func JSON(w io.Writer, v any) error {
	return writeJSON(w, v)
}

// YAML writes v to w as YAML.
func YAML(w io.Writer, v any) error {
	return writeYAML(w, v)
}
