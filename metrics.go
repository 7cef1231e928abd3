// stampplace - content-aware stamp placement engine for paginated documents
// Copyright (C) 2026  stampplace contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package stampplace

import (
	"bytes"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// metricsRecorder tracks tier selection and search latency on a local
// registry. The core exposes no HTTP surface — request routing is an
// explicit non-goal — so a caller that wants these numbers reads them
// through WriteText instead of scraping an endpoint.
type metricsRecorder struct {
	registry       *prometheus.Registry
	tierTotal      *prometheus.CounterVec
	searchDuration prometheus.Histogram
}

func newMetricsRecorder() *metricsRecorder {
	reg := prometheus.NewRegistry()
	m := &metricsRecorder{
		registry: reg,
		tierTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stampplace_tier_selections_total",
			Help: "Number of Place calls resolved by each tier.",
		}, []string{"tier"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stampplace_search_duration_seconds",
			Help:    "Wall-clock time spent inside Place, from detection through encoding.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.tierTotal, m.searchDuration)
	return m
}

func (m *metricsRecorder) observe(tier Tier, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.tierTotal.WithLabelValues(string(tier)).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
}

// WriteText renders the current metric values in the Prometheus text
// exposition format, for a caller to log or write to a file — no
// server, per the engine's synchronous/no-I/O contract.
func (e *Engine) WriteText() (string, error) {
	if e.metrics == nil {
		return "", nil
	}
	families, err := e.metrics.registry.Gather()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// EnableMetrics turns on tier/latency recording for subsequent Place
// calls. Metrics are opt-in so a caller that never asks for them pays
// no registry overhead.
func (e *Engine) EnableMetrics() {
	e.metrics = newMetricsRecorder()
}
