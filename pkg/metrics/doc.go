// Package metrics exposes validation outcomes as Prometheus metrics.
//
// A Collector implements schemakit.Observer, so it plugs straight into a
// validator:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewWithRegistry(reg)
//	v := schemakit.New(schemakit.WithObserver(m))
//
// Every metric lives under the "schemakit" namespace. Reports without a
// schema name are labelled "unnamed".
package metrics
