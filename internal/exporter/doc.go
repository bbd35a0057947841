// Package exporter runs one "save subset" request end to end: build the
// subset artifact, hand it to the configured sink, and record the export.
//
// An empty subset is an informational outcome ("No languages found"), and a
// sink without a delivery environment produces a warning rather than an
// error. Every other failure is returned to the caller.
package exporter
