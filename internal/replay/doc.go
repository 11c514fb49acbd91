// Package replay drives a hover coordinator over parsed pages without a
// browser.
//
// A Session walks the anchors of one document in order. For each anchor it
// delivers a pointer enter, looks at what the popup surface shows, then
// delivers a pointer leave so the next anchor starts from an empty popup
// slot. Each anchor yields one Observation.
//
// A BatchRunner replays several pages concurrently with errgroup. Every
// page gets its own coordinator and popup state; the stats recorder, flag
// store and oracle are shared.
package replay
