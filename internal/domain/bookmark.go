package domain

import "time"

// Bookmark is a saved link, backed 1:1 by an open GitHub issue.
// ID is the issue number and never changes once the issue exists.
type Bookmark struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`

	// State is "open" or "closed". Deleting a bookmark closes the
	// backing issue; the issue itself is never removed.
	State string `json:"state"`

	// URL is the web URL of the backing issue.
	URL string `json:"url"`
}

// Tag is a GitHub label projected down to what the UI needs.
// Color is a 6-hex-digit string without the leading '#'.
type Tag struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
