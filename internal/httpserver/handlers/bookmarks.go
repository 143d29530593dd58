package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/httpserver/deps"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/sources/github"
)

// bookmarkRequest is the create/update body from the UI.
type bookmarkRequest struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func (b bookmarkRequest) validate() error {
	if b.Title == "" || b.Link == "" {
		return domain.NewValidationError("Title and link are required")
	}
	return nil
}

type refreshResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type deleteResponse struct {
	Message string `json:"message"`
}

// ListBookmarks serves the bookmark set, refreshing lazily per the
// cache TTL.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Cache.GetAll(r.Context(), false)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// RefreshBookmarks forces a fetch regardless of TTL. This is the only
// retry affordance for a failed upstream call.
func RefreshBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Cache.GetAll(r.Context(), true)
		if err != nil {
			writeError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, refreshResponse{
			Message: "Bookmarks refreshed",
			Count:   len(bookmarks),
		})
	}
}

func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, d, domain.NewValidationError("Invalid JSON body"))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, d, err)
			return
		}

		payload := github.NewIssuePayload(req.Title, req.Link, req.Description, req.Tags)
		issue, err := d.GitHub.CreateIssue(r.Context(), payload)
		if err != nil {
			writeError(w, d, err)
			return
		}

		bookmark := github.IssueToBookmark(*issue)
		d.Cache.Insert(bookmark)

		d.Logger.Info("bookmark created",
			logger.Int("id", bookmark.ID),
			logger.String("title", bookmark.Title))
		writeJSON(w, http.StatusCreated, bookmark)
	}
}

func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d, domain.NewValidationError("Invalid bookmark id"))
			return
		}

		var req bookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, d, domain.NewValidationError("Invalid JSON body"))
			return
		}
		if err := req.validate(); err != nil {
			writeError(w, d, err)
			return
		}

		payload := github.NewIssuePayload(req.Title, req.Link, req.Description, req.Tags)
		issue, err := d.GitHub.UpdateIssue(r.Context(), id, payload)
		if err != nil {
			writeError(w, d, err)
			return
		}

		bookmark := github.IssueToBookmark(*issue)
		d.Cache.Replace(id, bookmark)

		d.Logger.Info("bookmark updated", logger.Int("id", id))
		writeJSON(w, http.StatusOK, bookmark)
	}
}

// DeleteBookmark closes the backing issue and drops the bookmark from
// the cache. The issue itself stays in GitHub history.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, d, domain.NewValidationError("Invalid bookmark id"))
			return
		}

		if err := d.GitHub.CloseIssue(r.Context(), id); err != nil {
			writeError(w, d, err)
			return
		}

		d.Cache.Remove(id)

		d.Logger.Info("bookmark deleted", logger.Int("id", id))
		writeJSON(w, http.StatusOK, deleteResponse{Message: "Bookmark deleted"})
	}
}
