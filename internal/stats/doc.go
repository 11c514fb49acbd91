// Package stats records the usage counters read by the ScamEye dashboard.
//
// Two counters are kept in an external key-value Store:
//
//	scameye-links-scanned  every link whose popup was shown
//	scameye-threat-links   the subset whose score was above 60
//
// Values are decimal strings. A missing key, an unparsable value and a
// failed read are all treated as zero. Recording is best-effort telemetry:
// a failed write is logged and otherwise ignored.
//
// After each recording every subscriber is notified synchronously. The
// notification carries no payload; subscribers re-read the counters with
// Recorder.Snapshot.
package stats
