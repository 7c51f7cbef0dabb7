// internal/app/features/groups/update.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type updateGroupRequest struct {
	UpdatedBy        string  `json:"updatedBy"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	Category         *string `json:"category"`
	Rules            *string `json:"rules"`
	Image            *string `json:"image"`
	IsPrivate        *bool   `json:"isPrivate"`
	AllowMemberPosts *bool   `json:"allowMemberPosts"`
	RequireApproval  *bool   `json:"requireApproval"`
	AllowInvites     *bool   `json:"allowInvites"`
}

// HandleUpdateGroup applies a partial metadata/settings update. Creator
// and admins only. Making the group public clears requireApproval in the
// same write; a replaced image is deleted from media storage best-effort.
// PUT /groups/{id}
func (h *Handler) HandleUpdateGroup(w http.ResponseWriter, r *http.Request) {
	id, derr := pathID(r, "id")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req updateGroupRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	updaterID, derr := hexID(req.UpdatedBy)
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if updaterID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("updatedBy is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !grouppolicy.CanModerate(&g, updaterID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the creator or an admin can update the group"))
		return
	}

	u := groupstore.Update{
		IsPrivate:        req.IsPrivate,
		AllowMemberPosts: req.AllowMemberPosts,
		RequireApproval:  req.RequireApproval,
		AllowInvites:     req.AllowInvites,
	}
	if req.Name != nil {
		name := normalize.Name(*req.Name)
		if name == "" {
			httpjson.Fail(w, h.Log, httpjson.Validation("group name cannot be empty"))
			return
		}
		u.Name = &name
	}
	if req.Description != nil {
		d := normalize.Text(*req.Description)
		u.Description = &d
	}
	if req.Category != nil {
		c := normalize.QueryParam(*req.Category)
		u.Category = &c
	}
	if req.Rules != nil {
		rules := normalize.Text(*req.Rules)
		u.Rules = &rules
	}
	if req.Image != nil {
		img := normalize.QueryParam(*req.Image)
		u.Image = &img
	}

	updated, err := h.Groups.ApplyUpdate(ctx, id, u)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	// Old image cleanup is best-effort; the update already succeeded.
	if req.Image != nil && g.Image != "" && g.Image != updated.Image && h.Media != nil {
		if err := h.Media.Delete(ctx, g.Image); err != nil {
			h.Log.Warn("old group image cleanup failed",
				zap.String("group_id", id.Hex()),
				zap.String("path", g.Image),
				zap.Error(err))
		}
	}

	httpjson.OK(w, "group updated", h.detailView(ctx, updated, updaterID))
}
