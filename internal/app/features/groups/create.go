// internal/app/features/groups/create.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type createGroupRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Rules            string `json:"rules"`
	Image            string `json:"image"`
	CreatorID        string `json:"creatorId"`
	IsPrivate        bool   `json:"isPrivate"`
	AllowMemberPosts *bool  `json:"allowMemberPosts"`
	RequireApproval  *bool  `json:"requireApproval"`
	AllowInvites     *bool  `json:"allowInvites"`
}

// HandleCreateGroup creates a group; the creator becomes its first member
// with the admin role.
// POST /groups
func (h *Handler) HandleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}

	name := normalize.Name(req.Name)
	if name == "" {
		httpjson.Fail(w, h.Log, httpjson.Validation("group name is required"))
		return
	}
	creatorID, derr := hexID(req.CreatorID)
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if creatorID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("creatorId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g := models.Group{
		Name:        name,
		Description: normalize.Text(req.Description),
		Category:    normalize.QueryParam(req.Category),
		Rules:       normalize.Text(req.Rules),
		Image:       normalize.QueryParam(req.Image),
		CreatorID:   creatorID,
		IsPrivate:   req.IsPrivate,
		Settings: models.GroupSettings{
			AllowMemberPosts: req.AllowMemberPosts,
			RequireApproval:  req.RequireApproval,
			AllowInvites:     req.AllowInvites,
		},
	}

	created, err := h.Groups.Create(ctx, g)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	httpjson.Created(w, "group created", h.detailView(ctx, created, creatorID))
}
