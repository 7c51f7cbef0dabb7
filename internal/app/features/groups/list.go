// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"github.com/platefull/platefull/internal/app/system/timeouts"
)

// HandleListGroups lists groups visible to the caller: every public group
// plus the private ones the caller belongs to.
// GET /groups?userId=
func (h *Handler) HandleListGroups(w http.ResponseWriter, r *http.Request) {
	viewerID, derr := hexID(r.URL.Query().Get("userId"))
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := h.Groups.List(ctx, viewerID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	views := make([]groupView, 0, len(gs))
	for _, g := range gs {
		views = append(views, summaryView(g, viewerID))
	}
	httpjson.OK(w, "", views)
}

// HandleSearchGroups searches group names. Private groups the caller
// belongs to are included only when includePrivate=true.
// GET /groups/search?q=&userId=&includePrivate=
func (h *Handler) HandleSearchGroups(w http.ResponseWriter, r *http.Request) {
	q := normalize.QueryParam(r.URL.Query().Get("q"))
	if q == "" {
		httpjson.Fail(w, h.Log, httpjson.Validation("search query is required"))
		return
	}
	viewerID, derr := hexID(r.URL.Query().Get("userId"))
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	includePrivate := r.URL.Query().Get("includePrivate") == "true"

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := h.Groups.Search(ctx, q, viewerID, includePrivate)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	views := make([]groupView, 0, len(gs))
	for _, g := range gs {
		views = append(views, summaryView(g, viewerID))
	}
	httpjson.OK(w, "", views)
}
