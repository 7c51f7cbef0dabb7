// internal/app/features/groups/delete.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type deleteGroupRequest struct {
	UserID string `json:"userId"`
}

// HandleDeleteGroup removes a group and all of its posts. Creator only;
// admins cannot delete.
// DELETE /groups/{id}?userId=...
func (h *Handler) HandleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, derr := pathID(r, "id")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req deleteGroupRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	callerID, derr := bodyOrQueryID(r, req.UserID, "userId")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if callerID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("userId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !grouppolicy.IsCreator(&g, callerID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the creator can delete the group"))
		return
	}

	// Posts go first so a failure leaves the group intact and retryable.
	deleted, err := h.Posts.DeleteByGroup(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if _, err := h.Groups.Delete(ctx, id); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	if g.Image != "" && h.Media != nil {
		if err := h.Media.Delete(ctx, g.Image); err != nil {
			h.Log.Warn("group image cleanup failed",
				zap.String("group_id", id.Hex()),
				zap.String("path", g.Image),
				zap.Error(err))
		}
	}

	h.Log.Info("group deleted",
		zap.String("group_id", id.Hex()),
		zap.Int64("posts_removed", deleted))
	httpjson.OK(w, "group deleted", nil)
}
