// Package sink delivers built artifacts to their destination.
//
// A Sink receives the artifact bytes together with its filename and MIME
// type. Implementations exist for each environment the exporter can run in:
// a local directory (FileSink), standard output (StdoutSink), object storage
// (S3Sink, MinioSink), an in-memory capture used by tests (MemorySink), and a
// sink that always reports ErrNoDeliveryEnvironment (NopSink). New selects
// one from configuration.
package sink
