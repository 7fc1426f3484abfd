// Package events provides event types
package events

// Browser signal types posted by the client script.
const (
	TypeActivity         = "activity"           // pointer move, click, scroll
	TypeSectionChanged   = "section-changed"    // viewport center entered a new section
	TypePointerExitedTop = "pointer-exited-top" // cursor left through the top edge
	TypeAction           = "action"             // a rendered message button was clicked
)

// Event is a single browser signal scoped to one session.
type Event struct {
	Type    string `json:"type"`
	Section string `json:"section,omitempty"` // for section-changed
	Action  string `json:"action,omitempty"`  // for action: navigate|contact|download|dismiss|close
	Target  string `json:"target,omitempty"`  // optional action target reference
}
