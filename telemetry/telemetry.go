// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	metrics "github.com/armon/go-metrics"
	"github.com/armon/go-metrics/datadog"
	promsink "github.com/armon/go-metrics/prometheus"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/powerset/config"
	helpermetrics "github.com/hashicorp/powerset/helper/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

// serviceName prefixes every emitted metric key and names the Pushgateway
// job.
const serviceName = "powerset"

// retention covers any realistic run; the in-memory and Prometheus sinks
// only need to hold the data until the command reports it.
const retention = time.Hour

// Reporter gives access to the metrics collected during a run once it has
// completed.
type Reporter struct {
	cfg      *config.Telemetry
	inm      *metrics.InmemSink
	registry *prometheus.Registry
}

// Setup is used to setup the telemetry sub-systems.
func Setup(cfg *config.Telemetry) (*Reporter, error) {

	inm := metrics.NewInmemSink(retention, retention)

	var telConfig *config.Telemetry
	if cfg == nil {
		telConfig = &config.Telemetry{}
	} else {
		telConfig = cfg
	}

	metricsConf := metrics.DefaultConfig(serviceName)
	metricsConf.EnableHostname = !telConfig.DisableHostname
	metricsConf.EnableRuntimeMetrics = false

	var fanout metrics.FanoutSink

	// Configure the statsite sink.
	if telConfig.StatsiteAddr != "" {
		sink, err := metrics.NewStatsiteSink(telConfig.StatsiteAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to setup statsite sink: %v", err)
		}
		fanout = append(fanout, sink)
	}

	// Configure the statsd sink.
	if telConfig.StatsdAddr != "" {
		sink, err := metrics.NewStatsdSink(telConfig.StatsdAddr)
		if err != nil {
			return nil, fmt.Errorf("failed to setup statsd sink: %v", err)
		}
		fanout = append(fanout, sink)
	}

	// Configure the Datadog sink.
	if telConfig.DogStatsDAddr != "" {
		sink, err := datadog.NewDogStatsdSink(telConfig.DogStatsDAddr, metricsConf.HostName)
		if err != nil {
			return nil, fmt.Errorf("failed to setup DogStatsD sink: %v", err)
		}
		sink.SetTags(telConfig.DogStatsDTags)
		fanout = append(fanout, sink)
	}

	r := &Reporter{cfg: telConfig, inm: inm}

	// Configure the Prometheus sink. Each run registers into its own registry
	// so only the metrics of this run are exported.
	if telConfig.PrometheusEnabled() {
		r.registry = prometheus.NewRegistry()
		sink, err := promsink.NewPrometheusSinkFrom(promsink.PrometheusOpts{
			Expiration: retention,
			Registerer: r.registry,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to setup Prometheus sink: %v", err)
		}
		fanout = append(fanout, sink)
	}

	// Add the in-memory sink to the fanout.
	fanout = append(fanout, inm)

	helpermetrics.SetDefaultLabels(defaultLabels(telConfig.DefaultLabels))

	// Initialize the global sink.
	if _, err := metrics.NewGlobal(metricsConf, fanout); err != nil {
		return nil, fmt.Errorf("failed to setup global sink: %v", err)
	}
	return r, nil
}

// defaultLabels converts the configured label map into a stable, sorted
// label set.
func defaultLabels(in map[string]string) []helpermetrics.Label {
	if len(in) == 0 {
		return nil
	}

	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	labels := make([]helpermetrics.Label, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, helpermetrics.Label{Name: k, Value: in[k]})
	}
	return labels
}

// Counters flattens the counters held by the in-memory sink into a map of
// metric name to summed value.
func (r *Reporter) Counters() map[string]float64 {
	out := make(map[string]float64)
	if r == nil || r.inm == nil {
		return out
	}

	for _, interval := range r.inm.Data() {
		interval.RLock()
		for _, c := range interval.Counters {
			out[c.Name] += c.Sum
		}
		interval.RUnlock()
	}
	return out
}

// Export sends the Prometheus metrics of the run to every configured
// destination. It is a no-op when Prometheus output is not configured.
func (r *Reporter) Export(ctx context.Context) error {
	if r == nil || r.registry == nil {
		return nil
	}

	var mErr *multierror.Error

	if r.cfg.PrometheusPushgateway != "" {
		err := push.New(r.cfg.PrometheusPushgateway, serviceName).
			Client(cleanhttp.DefaultClient()).
			Gatherer(r.registry).
			PushContext(ctx)
		if err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("failed to push metrics: %v", err))
		}
	}

	if r.cfg.PrometheusTextfile != "" {
		if err := writeTextfile(r.cfg.PrometheusTextfile, r.registry); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("failed to write metrics file: %v", err))
		}
	}

	return mErr.ErrorOrNil()
}

// writeTextfile renders the gathered metrics in the Prometheus text format.
// The file is written next to its destination and renamed into place so a
// collector never reads a partial file.
func writeTextfile(path string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
