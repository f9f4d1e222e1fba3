// Copyright 2020-2021 Dolthub, Inc.
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

package betree

import (
	"sync/atomic"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/prometheus/client_golang/prometheus"
)

// Report is the optional side-output of a Match call: counters tracking
// how much of the evaluation was served from the memo table (spec.md
// §4.2). A nil *Report disables counting entirely — Match never requires
// one.
type Report struct {
	expressionsMemoized    int64
	subExpressionsMemoized int64

	sink *metricsSink
}

// NewReport creates a Report with no metrics sink; attach one with
// WithSink to emit metrics.
func NewReport() *Report {
	return &Report{}
}

// RecordMemoHit increments the counters for a memo-table hit. topLevel is
// true only when this hit happened at the expression's root.
func (r *Report) RecordMemoHit(topLevel bool) {
	if r == nil {
		return
	}
	atomic.AddInt64(&r.subExpressionsMemoized, 1)
	if topLevel {
		atomic.AddInt64(&r.expressionsMemoized, 1)
	}
	if r.sink != nil {
		r.sink.recordMemoHit(topLevel)
	}
}

// ExpressionsMemoized returns the number of top-level memo hits.
func (r *Report) ExpressionsMemoized() int64 {
	if r == nil {
		return 0
	}
	return atomic.LoadInt64(&r.expressionsMemoized)
}

// SubExpressionsMemoized returns the number of memo hits across every
// node kind, including compound boolean nodes.
func (r *Report) SubExpressionsMemoized() int64 {
	if r == nil {
		return 0
	}
	return atomic.LoadInt64(&r.subExpressionsMemoized)
}

// metricsSink fans a Report's counters out to Prometheus and/or
// DataDog statsd. Both are optional and independent: an embedding
// application picks whichever backend (or neither) it already runs.
type metricsSink struct {
	promMemoized    prometheus.Counter
	promSubMemoized prometheus.Counter
	statsdClient    *statsd.Client
}

// NewPrometheusSink registers (via prometheus.MustRegister) and returns a
// metrics sink backed by Prometheus counters.
func NewPrometheusSink(buildID string) *metricsSink {
	labels := prometheus.Labels{"build_id": buildID}
	memoized := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "betree",
		Name:        "expressions_memoized_total",
		Help:        "Top-level expression memo-table hits.",
		ConstLabels: labels,
	})
	subMemoized := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   "betree",
		Name:        "sub_expressions_memoized_total",
		Help:        "All-node memo-table hits, including compound booleans.",
		ConstLabels: labels,
	})
	prometheus.MustRegister(memoized, subMemoized)
	return &metricsSink{promMemoized: memoized, promSubMemoized: subMemoized}
}

// NewStatsdSink attaches a DataDog statsd client as an alternate metrics
// backend to the same Report counters.
func NewStatsdSink(addr string) (*metricsSink, error) {
	c, err := statsd.New(addr)
	if err != nil {
		return nil, err
	}
	return &metricsSink{statsdClient: c}, nil
}

// WithSink attaches a metrics sink to a Report; returns the Report for
// chaining at construction time.
func (r *Report) WithSink(sink *metricsSink) *Report {
	r.sink = sink
	return r
}

func (s *metricsSink) recordMemoHit(topLevel bool) {
	if s.promSubMemoized != nil {
		s.promSubMemoized.Inc()
		if topLevel && s.promMemoized != nil {
			s.promMemoized.Inc()
		}
	}
	if s.statsdClient != nil {
		_ = s.statsdClient.Incr("betree.sub_expressions_memoized", nil, 1)
		if topLevel {
			_ = s.statsdClient.Incr("betree.expressions_memoized", nil, 1)
		}
	}
}
