// Package popup owns the single risk popup shown next to a hovered link.
//
// At most one popup exists at any instant. Controller.Show always tears
// down the current popup before mounting a new one, and Controller.Hide is
// idempotent. The popup state (the owning link and the mounted node) lives
// in an explicit State value that the caller creates and injects, so
// nothing here is process-global.
package popup
