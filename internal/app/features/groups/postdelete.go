// internal/app/features/groups/postdelete.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type deletePostRequest struct {
	UserID string `json:"userId"`
}

// HandleDeletePost removes a post. Allowed for the post's author and for
// group moderators. The post image is cleaned up best-effort afterwards.
// DELETE /groups/{groupID}/posts/{postID}
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
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
	var req deletePostRequest
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
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
	if !postpolicy.CanDeletePost(&g, &post, callerID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the author or a moderator can delete this post"))
		return
	}

	if _, err := h.Posts.Delete(ctx, postID); err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	if post.Image != "" && h.Media != nil {
		if err := h.Media.Delete(ctx, post.Image); err != nil {
			h.Log.Warn("post image cleanup failed",
				zap.String("post_id", postID.Hex()),
				zap.String("path", post.Image),
				zap.Error(err))
		}
	}

	httpjson.OK(w, "post deleted", nil)
}
