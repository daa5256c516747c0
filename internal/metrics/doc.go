// Package metrics records build and stage metrics for sitesmith.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. PrometheusRecorder registers collectors on a private registry,
// and WriteTextfile dumps that registry in the node_exporter textfile format
// so a one-shot CLI build can still be scraped.
package metrics
