// internal/app/features/groups/posts.go
package groups

import (
	"context"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/normalize"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type createPostRequest struct {
	UserID       string   `json:"userId"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Category     string   `json:"category"`
	MeatType     string   `json:"meatType"`
	PrepTime     int      `json:"prepTime"`
	Servings     int      `json:"servings"`
	Image        string   `json:"image"`
	Video        string   `json:"video"`
	MediaType    string   `json:"mediaType"`
}

// HandleCreatePost adds a post to the group. Members only, and only when
// member posting is enabled (moderators bypass that toggle). With
// requireApproval on, a member's post lands unapproved in the queue;
// moderator posts are approved immediately.
// POST /groups/{groupID}/posts
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req createPostRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	authorID, derr := hexID(req.UserID)
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if authorID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("userId is required"))
		return
	}
	title := normalize.Name(req.Title)
	if title == "" {
		httpjson.Fail(w, h.Log, httpjson.Validation("post title is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	settings := g.ResolveSettings()
	if !grouppolicy.IsMember(&g, authorID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only members can post in this group"))
		return
	}
	if !grouppolicy.CanPost(&g, authorID, settings) {
		httpjson.Fail(w, h.Log, httpjson.Permission("member posting is disabled in this group"))
		return
	}

	post := models.GroupPost{
		GroupID:      groupID,
		UserID:       authorID,
		Title:        title,
		Description:  normalize.Text(req.Description),
		Ingredients:  normalize.TextSlice(req.Ingredients),
		Instructions: normalize.TextSlice(req.Instructions),
		Category:     normalize.QueryParam(req.Category),
		MeatType:     normalize.QueryParam(req.MeatType),
		PrepTime:     req.PrepTime,
		Servings:     req.Servings,
		Image:        normalize.QueryParam(req.Image),
		Video:        normalize.QueryParam(req.Video),
		MediaType:    normalize.QueryParam(req.MediaType),
		IsApproved:   postpolicy.AutoApprove(&g, authorID, settings),
	}
	created, err := h.Posts.Create(ctx, post)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}

	msg := "post created"
	if !created.IsApproved {
		msg = "post submitted for approval"
	}
	views := h.postViews(ctx, &g, []models.GroupPost{created}, authorID)
	httpjson.Created(w, msg, views[0])
}

// HandleListPosts returns the posts the viewer is allowed to see, newest
// first. Non-members of a private group get an empty list rather than an
// error.
// GET /groups/{groupID}/posts?userId=...
func (h *Handler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	viewerID, derr := hexID(normalize.QueryParam(r.URL.Query().Get("userId")))
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	scope := postpolicy.VisibilityFor(&g, viewerID)
	posts, err := h.Posts.ListForViewer(ctx, groupID, scope, viewerID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "posts", h.postViews(ctx, &g, posts, viewerID))
}
