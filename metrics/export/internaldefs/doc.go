// Package internaldefs exposes stable metric name and bucket definitions
// shared by exporter implementations.
//
// Counter and score-histogram definitions live here so that the Prometheus
// and OTel exporters always agree on metric names and bucket boundaries.
// Changes here affect all exporters simultaneously.
package internaldefs
