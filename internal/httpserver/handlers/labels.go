package handlers

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/linktracker/linktracker/internal/domain"
	"github.com/linktracker/linktracker/internal/httpserver/deps"
	"github.com/linktracker/linktracker/internal/logger"
	"github.com/linktracker/linktracker/internal/sources/github"
)

type labelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ListLabels returns every label defined in the repository, projected
// to the tag shape the UI filters on. Labels are not cached; the list
// is small and changes rarely.
func ListLabels(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		labels, err := d.GitHub.ListLabels(r.Context())
		if err != nil {
			writeError(w, d, err)
			return
		}

		tags := make([]domain.Tag, 0, len(labels))
		for _, label := range labels {
			tags = append(tags, github.LabelToTag(label))
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

func CreateLabel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req labelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, d, domain.NewValidationError("Invalid JSON body"))
			return
		}
		if req.Name == "" {
			writeError(w, d, domain.NewValidationError("Label name is required"))
			return
		}
		if req.Color == "" {
			req.Color = randomColor()
		}

		label, err := d.GitHub.CreateLabel(r.Context(), req.Name, req.Color)
		if err != nil {
			writeError(w, d, err)
			return
		}

		d.Logger.Info("label created",
			logger.String("name", label.Name),
			logger.String("color", label.Color))
		writeJSON(w, http.StatusCreated, github.LabelToTag(*label))
	}
}

// randomColor picks a 6-hex-digit color for labels created without one.
func randomColor() string {
	return fmt.Sprintf("%06x", rand.Intn(0x1000000))
}
