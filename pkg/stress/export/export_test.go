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

package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/common/expfmt"
	"gopkg.in/yaml.v3"
	"gvisor.dev/riscvatomic/pkg/memorder"
	"gvisor.dev/riscvatomic/pkg/stress"
)

var testResults = []stress.Result{
	{
		Workload:       "strong-cas",
		Order:          memorder.Conservative,
		Workers:        4,
		Rounds:         3,
		Operations:     24000,
		Retries:        17,
		ElapsedSeconds: 0.25,
		Passed:         true,
	},
	{
		Workload:   "byte-isolation",
		Order:      memorder.Relaxed,
		Workers:    2,
		Rounds:     1,
		Operations: 8000,
		Detail:     "byte 1 is 0x7e, want 0x7f",
	},
}

func render(t *testing.T, format string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, format, testResults); err != nil {
		t.Fatalf("Render(%q) failed: %v", format, err)
	}
	return buf.String()
}

func TestTable(t *testing.T) {
	out := render(t, "table")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), out)
	}
	for i, want := range [][]string{
		{"WORKLOAD", "ORDER", "STATUS"},
		{"strong-cas", "conservative", "24000", "PASS"},
		{"byte-isolation", "relaxed", "FAIL", "byte 1 is 0x7e"},
	} {
		for _, w := range want {
			if !strings.Contains(lines[i], w) {
				t.Errorf("line %d %q does not contain %q", i, lines[i], w)
			}
		}
	}
}

func TestJSON(t *testing.T) {
	var got []stress.Result
	if err := json.Unmarshal([]byte(render(t, "json")), &got); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(testResults, got); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	out := render(t, "yaml")
	if !strings.Contains(out, "order: conservative") {
		t.Errorf("YAML does not name the order as text:\n%s", out)
	}
	var got []stress.Result
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("yaml.Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(testResults, got); diff != "" {
		t.Errorf("YAML mismatch (-want +got):\n%s", diff)
	}
}

func TestProm(t *testing.T) {
	parsed, err := (&expfmt.TextParser{}).TextToMetricFamilies(strings.NewReader(render(t, "prom")))
	if err != nil {
		t.Fatalf("TextToMetricFamilies failed: %v", err)
	}
	for _, tc := range []struct {
		metric   string
		workload string
		want     float64
	}{
		{OperationsMetric, "strong-cas", 24000},
		{RetriesMetric, "strong-cas", 17},
		{RoundsMetric, "byte-isolation", 1},
		{ElapsedMetric, "strong-cas", 0.25},
		{PassedMetric, "strong-cas", 1},
		{PassedMetric, "byte-isolation", 0},
	} {
		mf, ok := parsed[tc.metric]
		if !ok {
			t.Errorf("metric %q not found", tc.metric)
			continue
		}
		found := false
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string)
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			if labels["workload"] != tc.workload {
				continue
			}
			found = true
			got := m.GetGauge().GetValue()
			if m.GetCounter() != nil {
				got = m.GetCounter().GetValue()
			}
			if got != tc.want {
				t.Errorf("%s{workload=%q} = %v, want %v", tc.metric, tc.workload, got, tc.want)
			}
		}
		if !found {
			t.Errorf("%s{workload=%q} not found", tc.metric, tc.workload)
		}
	}
}

func TestRenderChecks(t *testing.T) {
	checks := []stress.CheckResult{
		{Scenario: "cas32-scenario", Order: memorder.Acquire, Passed: true},
		{Scenario: "add-pair", Order: memorder.Release, Detail: "trial 3: final value 15, want 20"},
	}
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderChecks(&buf, format, checks); err != nil {
				t.Fatalf("RenderChecks failed: %v", err)
			}
			if !strings.Contains(buf.String(), "add-pair") {
				t.Errorf("output does not mention add-pair:\n%s", buf.String())
			}
		})
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if err := Valid("xml"); err == nil {
		t.Errorf("Valid(xml) succeeded")
	}
	if err := Render(&bytes.Buffer{}, "xml", testResults); err == nil {
		t.Errorf("Render(xml) succeeded")
	}
	if diff := cmp.Diff([]string{"json", "prom", "table", "yaml"}, Formats()); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
}
