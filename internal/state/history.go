package state

import "slices"

// History is a browser-style location stack with a current position.
//
// The zero value is the initial state: a single "" entry, which stands for the
// volume list. Navigating while not at the tail drops every entry after the
// current one before appending.
type History struct {
	entries []string
	pos     int
}

// NewHistory returns a history positioned on the volume list.
func NewHistory() History {
	return History{entries: []string{""}}
}

func (h *History) ensure() {
	if len(h.entries) == 0 {
		h.entries = []string{""}
		h.pos = 0
	}
}

// Current returns the location at the current position.
func (h *History) Current() string {
	h.ensure()
	return h.entries[h.pos]
}

func (h *History) CanGoBack() bool {
	h.ensure()
	return h.pos > 0
}

func (h *History) CanGoForward() bool {
	h.ensure()
	return h.pos < len(h.entries)-1
}

// Back moves one entry back. It reports false at the first entry.
func (h *History) Back() bool {
	if !h.CanGoBack() {
		return false
	}
	h.pos--
	return true
}

// Forward moves one entry forward. It reports false at the last entry.
func (h *History) Forward() bool {
	if !h.CanGoForward() {
		return false
	}
	h.pos++
	return true
}

// NavigateTo records a visit to location. It is a no-op (returning false) when
// location equals the last entry; otherwise forward entries are truncated,
// location is appended and becomes current.
func (h *History) NavigateTo(location string) bool {
	h.ensure()
	if h.entries[len(h.entries)-1] == location {
		return false
	}
	h.entries = append(h.entries[:h.pos+1], location)
	h.pos = len(h.entries) - 1
	return true
}

// push records a completed navigation: NavigateTo, and when location already
// is the last entry the position moves onto it. Afterwards location is current.
func (h *History) push(location string) {
	if !h.NavigateTo(location) {
		h.pos = len(h.entries) - 1
	}
}

// PeekBack returns the location Back would move to.
func (h *History) PeekBack() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	return h.entries[h.pos-1], true
}

// PeekForward returns the location Forward would move to.
func (h *History) PeekForward() (string, bool) {
	if !h.CanGoForward() {
		return "", false
	}
	return h.entries[h.pos+1], true
}

// Entries returns a copy of the stack.
func (h *History) Entries() []string {
	h.ensure()
	return slices.Clone(h.entries)
}

func (h *History) Position() int {
	h.ensure()
	return h.pos
}
