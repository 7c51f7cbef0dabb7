// internal/app/features/groups/postapprove.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	poststore "github.com/platefull/platefull/internal/app/store/groupposts"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type approvePostRequest struct {
	AdminID string `json:"adminId"`
}

// HandleApprovePost releases a queued post to the whole group. Creator
// and admins only; approving twice is a conflict.
// PUT /groups/{groupID}/posts/{postID}/approve
func (h *Handler) HandleApprovePost(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	postID, derr := pathID(r, "postID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req approvePostRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	adminID, derr := bodyOrQueryID(r, req.AdminID, "adminId")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if adminID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("adminId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !postpolicy.CanApprovePost(&g, adminID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the creator or an admin can approve posts"))
		return
	}

	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if post.GroupID != groupID {
		httpjson.Fail(w, h.Log, httpjson.NotFound("post not found in this group"))
		return
	}

	if err := h.Posts.Approve(ctx, postID); err != nil {
		if errors.Is(err, poststore.ErrAlreadyApproved) {
			httpjson.Fail(w, h.Log, httpjson.Conflict("post is already approved"))
			return
		}
		httpjson.Fail(w, h.Log, err)
		return
	}
	post.IsApproved = true

	views := h.postViews(ctx, &g, []models.GroupPost{post}, adminID)
	httpjson.OK(w, "post approved", views[0])
}
