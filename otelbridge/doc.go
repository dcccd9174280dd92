// Package otelbridge connects the pipeline to OpenTelemetry.
//
// The Bridge is a generic observation handler that mirrors admitted
// observations into OTel instruments, so a tree can feed an OTLP collector
// or a Prometheus scrape endpoint alongside its own snapshots. The factory
// functions build metric readers and a MeterProvider the same way the rest
// of the module builds configuration: a Config struct with Validate and
// environment-variable endpoints.
package otelbridge
