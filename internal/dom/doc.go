// Package dom is a small headless page model built on golang.org/x/net/html.
//
// It provides the two things the hover overlay needs from a page: elements
// that pointer events can target (with their tag, resolved link and
// containment), and a body the popup can be mounted into and removed from.
package dom
