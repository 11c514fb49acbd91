// Package oracle talks to the remote risk-scoring service.
//
// The service is treated as an opaque and unreliable oracle: a lookup POSTs
// {"url": "..."} to a fixed endpoint and expects {"risk": n, "url": "..."}
// back. Every failure (transport error, non-2xx status, malformed body) is
// absorbed into the neutral fallback result (50%, original URL), so
// Lookup never returns an error and callers always get something to show.
//
// There are no retries. The only deadline is the one carried by the
// context or configured on the HTTP client.
package oracle
