/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package metrics exports pipeline outcomes as Prometheus metrics.
package metrics

import (
	"context"

	"dirpx.dev/dresp/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dresp"

// ForeignKind is the kind label value for errors outside the taxonomy.
const ForeignKind = "foreign"

// Collector records pipeline outcomes. It implements pipeline.Observer.
type Collector struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	labels     *prometheus.CounterVec
	notes      prometheus.Counter
	unpins     prometheus.Counter
}

var _ pipeline.Observer = (*Collector)(nil)

// New creates the metrics and registers them with reg.
// A nil reg creates unregistered metrics.
func New(reg prometheus.Registerer) *Collector {
	f := promauto.With(reg)
	return &Collector{
		operations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of operations handled by the pipeline",
			},
			[]string{"outcome"},
		),
		failures: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "failures_total",
				Help:      "Total number of failed operations by error kind",
			},
			[]string{"kind"},
		),
		labels: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "labels_added_total",
				Help:      "Total number of labels added to errors",
			},
			[]string{"label"},
		),
		notes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notes_added_total",
			Help:      "Total number of diagnostics notes added to errors",
		}),
		unpins: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_unpins_total",
			Help:      "Total number of sessions unpinned after a failure",
		}),
	}
}

// Observe implements pipeline.Observer.
func (c *Collector) Observe(_ context.Context, o pipeline.Outcome) {
	if !o.Failed() {
		c.operations.WithLabelValues("success").Inc()
		return
	}
	c.operations.WithLabelValues("failure").Inc()

	k := string(o.Kind)
	if k == "" {
		k = ForeignKind
	}
	c.failures.WithLabelValues(k).Inc()
	for _, l := range o.LabelsAdded {
		c.labels.WithLabelValues(string(l)).Inc()
	}
	if o.Noted {
		c.notes.Inc()
	}
	if o.Unpinned {
		c.unpins.Inc()
	}
}
