// Package main provides the entry point for the ScamEye CLI.
//
// ScamEye shows a risk popup when the pointer hovers a link. The CLI
// replays that behaviour over saved or fetched pages, keeps the lifetime
// link counters, and manages the feature flags.
//
// Usage:
//
//	scameye flags set --enabled
//	scameye scan page.html https://example.com/
//	scameye stats --markdown
//
// See --help for all available options.
package main

func main() {
	Execute()
}
