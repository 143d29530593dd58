package github

import "time"

// Issue is the subset of the GitHub issue wire shape this service reads.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Labels    []Label   `json:"labels"`
}

// Label is a GitHub repository label.
type Label struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description,omitempty"`
}

// IssuePayload is the body sent when creating or updating an issue.
// Labels are plain names; GitHub creates missing labels lazily.
type IssuePayload struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

type labelPayload struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type statePayload struct {
	State string `json:"state"`
}
