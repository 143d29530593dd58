package github

import (
	"fmt"
	"strings"

	"github.com/linktracker/linktracker/internal/domain"
)

// Issue bodies carry the bookmark fields as line-prefixed text:
//
//	Link: https://example.com
//
//	Description: some text
//
//	Tags: tag1 tag2
//
// Only the Link and Description lines are ever parsed back. Tags are
// read from the issue labels; the Tags line exists for humans browsing
// the repository directly.
const (
	linkPrefix        = "Link: "
	descriptionPrefix = "Description: "
)

// NewIssuePayload builds the issue create/update body for a bookmark.
// Title and link validity is the caller's responsibility; this never
// fails. Labels are the tag names verbatim.
func NewIssuePayload(title, link, description string, tags []string) IssuePayload {
	if tags == nil {
		tags = []string{}
	}
	body := fmt.Sprintf("%s%s\n\n%s%s\n\nTags: %s",
		linkPrefix, link,
		descriptionPrefix, description,
		strings.Join(tags, " "))
	return IssuePayload{
		Title:  title,
		Body:   body,
		Labels: tags,
	}
}

// IssueToBookmark converts a GitHub issue to the domain bookmark.
// Tags come from the issue labels in API order, never from body text.
func IssueToBookmark(issue Issue) domain.Bookmark {
	link, description := parseBody(issue.Body)

	tags := make([]string, 0, len(issue.Labels))
	for _, label := range issue.Labels {
		tags = append(tags, label.Name)
	}

	return domain.Bookmark{
		ID:          issue.Number,
		Title:       issue.Title,
		Link:        link,
		Description: description,
		Tags:        tags,
		Created:     issue.CreatedAt,
		Updated:     issue.UpdatedAt,
		State:       issue.State,
		URL:         issue.HTMLURL,
	}
}

// LabelToTag projects a repository label to the tag shape the UI uses.
func LabelToTag(label Label) domain.Tag {
	return domain.Tag{Name: label.Name, Color: label.Color}
}

// parseBody scans the issue body for the recognized prefixes. The first
// matching line per prefix wins; everything else, including the Tags
// line, is ignored. A missing prefix yields an empty string.
func parseBody(body string) (link, description string) {
	var linkFound, descriptionFound bool
	for _, line := range strings.Split(body, "\n") {
		switch {
		case !linkFound && strings.HasPrefix(line, linkPrefix):
			link = strings.TrimSpace(line[len(linkPrefix):])
			linkFound = true
		case !descriptionFound && strings.HasPrefix(line, descriptionPrefix):
			description = strings.TrimSpace(line[len(descriptionPrefix):])
			descriptionFound = true
		}
	}
	return link, description
}
