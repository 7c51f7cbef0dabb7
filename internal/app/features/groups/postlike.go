// internal/app/features/groups/postlike.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	poststore "github.com/platefull/platefull/internal/app/store/groupposts"
	"github.com/platefull/platefull/internal/app/store/notifications"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type likeRequest struct {
	UserID string `json:"userId"`
}

type likeResult struct {
	LikesCount int  `json:"likesCount"`
	Liked      bool `json:"liked"`
}

// HandleLikePost records a like. Members only; a second like from the
// same user is a conflict. The author is notified unless they liked
// their own post.
// POST /groups/{groupID}/posts/{postID}/like
func (h *Handler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	_, postID, userID, g, post, ok := h.likeSetup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	likes, err := h.Posts.Like(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, poststore.ErrAlreadyLiked) {
			httpjson.Fail(w, h.Log, httpjson.Conflict("post already liked"))
			return
		}
		httpjson.Fail(w, h.Log, err)
		return
	}

	if post.UserID != userID {
		notifications.Dispatch(ctx, h.Notify, h.Log, models.Notification{
			UserID:  post.UserID,
			ActorID: userID,
			Type:    models.NotifyGroupPostLike,
			GroupID: g.ID,
			PostID:  postID,
			Message: "liked your post in " + g.Name,
		})
	}

	httpjson.OK(w, "post liked", likeResult{LikesCount: len(likes), Liked: true})
}

// HandleUnlikePost removes a like. Removing a like that was never set is
// a conflict.
// DELETE /groups/{groupID}/posts/{postID}/like
func (h *Handler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	_, postID, userID, _, _, ok := h.likeSetup(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	likes, err := h.Posts.Unlike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, poststore.ErrNotLiked) {
			httpjson.Fail(w, h.Log, httpjson.Conflict("post is not liked"))
			return
		}
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "like removed", likeResult{LikesCount: len(likes), Liked: false})
}

// likeSetup does the shared parsing and membership checks for the like
// endpoints. On failure it writes the response and returns ok=false.
func (h *Handler) likeSetup(w http.ResponseWriter, r *http.Request) (groupID, postID, userID primitive.ObjectID, g models.Group, post models.GroupPost, ok bool) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	postID, derr = pathID(r, "postID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req likeRequest
	if derr = decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	userID, derr = bodyOrQueryID(r, req.UserID, "userId")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if userID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("userId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var err error
	g, err = h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !grouppolicy.IsMember(&g, userID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only members can react to posts"))
		return
	}
	post, err = h.Posts.GetByID(ctx, postID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if post.GroupID != groupID {
		httpjson.Fail(w, h.Log, httpjson.NotFound("post not found in this group"))
		return
	}
	if !postpolicy.CanViewPost(&g, &post, userID) {
		httpjson.Fail(w, h.Log, httpjson.NotFound("post not found in this group"))
		return
	}
	ok = true
	return
}
