package popup

import "golang.org/x/net/html"

// State is the popup slot. Its zero value is the empty state.
// activeLink is non-empty exactly when activePopup is non-nil.
type State struct {
	activeLink  string
	activePopup *html.Node
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

// ActiveLink returns the URL of the anchor owning the popup, or "".
func (s *State) ActiveLink() string {
	return s.activeLink
}

// ActivePopup returns the mounted popup node, or nil.
func (s *State) ActivePopup() *html.Node {
	return s.activePopup
}

// Showing reports whether a popup is mounted.
func (s *State) Showing() bool {
	return s.activePopup != nil
}

func (s *State) set(link string, n *html.Node) {
	s.activeLink = link
	s.activePopup = n
}

func (s *State) clear() {
	s.activeLink = ""
	s.activePopup = nil
}
