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
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"
	"gvisor.dev/riscvatomic/pkg/stress"
)

// Metric names. All carry the same namespace prefix.
const (
	namespace = "rvstress_"

	OperationsMetric = namespace + "operations_total"
	RetriesMetric    = namespace + "retries_total"
	RoundsMetric     = namespace + "rounds_total"
	ElapsedMetric    = namespace + "elapsed_seconds"
	PassedMetric     = namespace + "passed"
	CheckMetric      = namespace + "check_passed"
)

// family accumulates samples of one metric.
type family struct {
	mf *dto.MetricFamily
}

func newFamily(name, help string, typ dto.MetricType) *family {
	return &family{mf: &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: typ.Enum(),
	}}
}

// add appends a sample. labels alternate name and value.
func (f *family) add(value float64, labels ...string) {
	m := &dto.Metric{}
	for i := 0; i+1 < len(labels); i += 2 {
		m.Label = append(m.Label, &dto.LabelPair{
			Name:  proto.String(labels[i]),
			Value: proto.String(labels[i+1]),
		})
	}
	switch f.mf.GetType() {
	case dto.MetricType_COUNTER:
		m.Counter = &dto.Counter{Value: proto.Float64(value)}
	default:
		m.Gauge = &dto.Gauge{Value: proto.Float64(value)}
	}
	f.mf.Metric = append(f.mf.Metric, m)
}

func writeFamilies(w io.Writer, fs ...*family) error {
	for _, f := range fs {
		if len(f.mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, f.mf); err != nil {
			return err
		}
	}
	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// resultsProm outputs results in the Prometheus text exposition format.
func resultsProm(w io.Writer, results []stress.Result) error {
	var (
		ops     = newFamily(OperationsMetric, "Atomic operations performed by the workload.", dto.MetricType_COUNTER)
		retries = newFamily(RetriesMetric, "Compare-and-exchange attempts that observed a stale expected value.", dto.MetricType_COUNTER)
		rounds  = newFamily(RoundsMetric, "Verified rounds of the workload.", dto.MetricType_COUNTER)
		elapsed = newFamily(ElapsedMetric, "Wall time spent in the workload.", dto.MetricType_GAUGE)
		passed  = newFamily(PassedMetric, "Whether the workload finished without a violation.", dto.MetricType_GAUGE)
	)
	for _, r := range results {
		labels := []string{"order", r.Order.String(), "workload", r.Workload}
		ops.add(float64(r.Operations), labels...)
		retries.add(float64(r.Retries), labels...)
		rounds.add(float64(r.Rounds), labels...)
		elapsed.add(r.ElapsedSeconds, labels...)
		passed.add(boolValue(r.Passed), labels...)
	}
	return writeFamilies(w, ops, retries, rounds, elapsed, passed)
}

// checksProm outputs check results in the Prometheus text exposition format.
func checksProm(w io.Writer, results []stress.CheckResult) error {
	passed := newFamily(CheckMetric, "Whether the deterministic check passed.", dto.MetricType_GAUGE)
	for _, r := range results {
		passed.add(boolValue(r.Passed), "order", r.Order.String(), "scenario", r.Scenario)
	}
	return writeFamilies(w, passed)
}
