// Package hover drives the ScamEye overlay from pointer events.
//
// The Coordinator is a small state machine:
//
//	Idle ──enter(anchor)──▶ LookupInFlight ──resolved──▶ Showing
//	  ▲                          │ filtered                 │
//	  └──────────────────────────┴────────── leave ─────────┘
//
// A pointer entering an anchor reads the feature flags, skips the event if
// the overlay is disabled or the link is already showing or being looked
// up (the dedup guard), hides any current popup, and asks the oracle for a
// score. When the score arrives it is either filtered out (showOnlyRiskyOnes
// and score <= 60) or classified, recorded and shown. Leaving the anchor
// hides the popup again.
//
// Lookups for different links may overlap. By default the last lookup to
// resolve wins, because every resolution replaces whatever popup is
// showing. WithLatestOnly switches to token checking: only the most
// recently issued lookup may show a popup.
package hover
