package findreplace

// MaxHistory bounds the number of remembered search strings.
const MaxHistory = 32

// SearchHistory is a most-recent-first list of search or replacement
// strings with a fixed capacity.
type SearchHistory struct {
	items []string
}

// NewSearchHistory creates a history seeded with the given items.
func NewSearchHistory(items []string) *SearchHistory {
	h := &SearchHistory{}
	h.Set(items)
	return h
}

// Set replaces the history contents, truncating to capacity.
func (h *SearchHistory) Set(items []string) {
	h.items = h.items[:0]
	for _, it := range items {
		if len(h.items) == MaxHistory {
			break
		}
		h.items = append(h.items, it)
	}
}

// Add puts the text at the front of the history. A text already
// present moves to the front instead of duplicating. Returns true if
// the history changed.
func (h *SearchHistory) Add(text string) bool {
	changed := false

	for i, it := range h.items {
		if it != text {
			continue
		}
		if i == 0 {
			return false
		}
		h.items = append(h.items[:i], h.items[i+1:]...)
		h.items = append([]string{text}, h.items...)
		return true
	}

	h.items = append([]string{text}, h.items...)
	changed = true
	if len(h.items) > MaxHistory {
		h.items = h.items[:MaxHistory]
	}
	return changed
}

// Items returns the history, most recent first.
func (h *SearchHistory) Items() []string {
	out := make([]string, len(h.items))
	copy(out, h.items)
	return out
}

// Len returns the number of remembered strings.
func (h *SearchHistory) Len() int { return len(h.items) }
