// Package flags provides the feature-flag store read on every hover.
//
// Two flags exist: extensionEnabled turns the overlay on, and
// showOnlyRiskyOnes suppresses popups for links scoring 60 or less. Stores
// are read fresh on every event and never cached, so a change made by
// another process (for example `scameye flags set`) takes effect on the
// next hover.
package flags
