// Copyright 2026 The Verso Authors
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

package versioning

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// compositionMetrics records what a Build produced. All methods are
// nil-safe so call sites stay clean when metrics are not configured.
type compositionMetrics struct {
	compositions    prometheus.Counter
	versionsMounted prometheus.Gauge
	routes          *prometheus.GaugeVec
	overrides       prometheus.Counter
}

func newCompositionMetrics(reg prometheus.Registerer) (*compositionMetrics, error) {
	m := &compositionMetrics{
		compositions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "versioning_compositions_total",
			Help: "Number of completed compositions.",
		}),
		versionsMounted: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "versioning_versions_mounted",
			Help: "Sub-applications mounted by the most recent composition, alias included.",
		}),
		routes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "versioning_routes",
			Help: "Routes exposed per mounted version label.",
		}, []string{"version"}),
		overrides: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "versioning_route_overrides_total",
			Help: "Routes replaced at an existing (path, method) key during aggregation.",
		}),
	}
	for _, collector := range []prometheus.Collector{
		m.compositions, m.versionsMounted, m.routes, m.overrides,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register composition metrics: %w", err)
		}
	}
	return m, nil
}

func (m *compositionMetrics) observeBuild(mounts []Mount) {
	if m == nil {
		return
	}
	m.compositions.Inc()
	m.versionsMounted.Set(float64(len(mounts)))
	for _, mount := range mounts {
		m.routes.WithLabelValues(mount.Label).Set(float64(len(mount.App.routes)))
	}
}

func (m *compositionMetrics) observeOverride() {
	if m == nil {
		return
	}
	m.overrides.Inc()
}
