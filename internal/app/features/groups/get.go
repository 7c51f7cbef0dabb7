// internal/app/features/groups/get.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
)

// HandleGetGroup returns one group with member details; pending-request
// details are included only when the caller moderates the group.
// GET /groups/{id}?userId=
func (h *Handler) HandleGetGroup(w http.ResponseWriter, r *http.Request) {
	id, derr := pathID(r, "id")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	viewerID, derr := hexID(r.URL.Query().Get("userId"))
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.OK(w, "", h.detailView(ctx, g, viewerID))
}
