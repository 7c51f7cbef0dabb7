// internal/app/features/groups/postcomments.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	poststore "github.com/platefull/platefull/internal/app/store/groupposts"
	"github.com/platefull/platefull/internal/app/store/notifications"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type addCommentRequest struct {
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

// HandleAddComment appends a comment to a post. Members only; the
// commenter's display name and avatar are snapshotted onto the comment.
// The post author gets a notification unless commenting on their own post.
// POST /groups/{groupID}/posts/{postID}/comments
func (h *Handler) HandleAddComment(w http.ResponseWriter, r *http.Request) {
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
	var req addCommentRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	userID, derr := hexID(req.UserID)
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if userID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("userId is required"))
		return
	}
	text := normalize.Text(req.Text)
	if text == "" {
		httpjson.Fail(w, h.Log, httpjson.Validation("comment text cannot be empty"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !grouppolicy.IsMember(&g, userID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only members can comment on posts"))
		return
	}
	post, err := h.Posts.GetByID(ctx, postID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if post.GroupID != groupID || !postpolicy.CanViewPost(&g, &post, userID) {
		httpjson.Fail(w, h.Log, httpjson.NotFound("post not found in this group"))
		return
	}

	author := h.Users.Display(ctx, userID)
	comment := models.Comment{
		ID:         uuid.NewString(),
		UserID:     userID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Text:       text,
	}
	saved, err := h.Posts.AddComment(ctx, postID, comment)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	if post.UserID != userID {
		notifications.Dispatch(ctx, h.Notify, h.Log, models.Notification{
			UserID:  post.UserID,
			ActorID: userID,
			Type:    models.NotifyGroupPostComment,
			GroupID: groupID,
			PostID:  postID,
			Message: "commented on your post in " + g.Name,
		})
	}

	httpjson.Created(w, "comment added", saved)
}

// HandleDeleteComment removes a comment. Allowed for the comment's
// author and for group moderators.
// DELETE /groups/{groupID}/posts/{postID}/comments/{commentID}
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
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
	commentID := normalize.QueryParam(chi.URLParam(r, "commentID"))
	if commentID == "" {
		httpjson.Fail(w, h.Log, httpjson.Validation("commentID is required"))
		return
	}
	var req likeRequest
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

	var target *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			target = &post.Comments[i]
			break
		}
	}
	if target == nil {
		httpjson.Fail(w, h.Log, httpjson.NotFound("comment not found"))
		return
	}
	if !postpolicy.CanDeleteComment(&g, target, callerID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("not allowed to delete this comment"))
		return
	}

	if err := h.Posts.RemoveComment(ctx, postID, commentID); err != nil {
		if errors.Is(err, poststore.ErrNoSuchComment) {
			httpjson.Fail(w, h.Log, httpjson.NotFound("comment not found"))
			return
		}
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "comment deleted", nil)
}
