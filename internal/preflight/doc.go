// Package preflight checks that a configuration can actually produce and
// deliver an artifact: the source table is readable, the directories a build
// writes into are usable, and the remote bucket of an s3 or minio sink
// answers.
//
// The "ngramsubset check" command prints every result. Checks for features
// that are turned off (history, file sink, remote sinks) are skipped.
package preflight
