// internal/app/features/groups/routes.go
package groups

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// GROUPS
	r.Post("/", h.HandleCreateGroup)
	r.Get("/", h.HandleListGroups)
	r.Get("/search", h.HandleSearchGroups)
	r.Get("/{id}", h.HandleGetGroup)
	r.Put("/{id}", h.HandleUpdateGroup)
	r.Delete("/{id}", h.HandleDeleteGroup)

	// JOIN WORKFLOW
	r.Post("/{groupID}/join", h.HandleJoinGroup)
	r.Delete("/{groupID}/join", h.HandleCancelJoin)
	r.Put("/{id}/requests/{userID}", h.HandleDecideRequest)
	r.Delete("/{groupID}/leave/{userID}", h.HandleLeaveGroup)
	r.Delete("/{groupID}/members/{memberUserID}", h.HandleRemoveMember)

	// POSTS
	r.Post("/{groupID}/posts", h.HandleCreatePost)
	r.Get("/{groupID}/posts", h.HandleListPosts)
	r.Delete("/{groupID}/posts/{postID}", h.HandleDeletePost)
	r.Put("/{groupID}/posts/{postID}/approve", h.HandleApprovePost)

	// LIKES
	r.Post("/{groupID}/posts/{postID}/like", h.HandleLikePost)
	r.Delete("/{groupID}/posts/{postID}/like", h.HandleUnlikePost)

	// COMMENTS
	r.Post("/{groupID}/posts/{postID}/comments", h.HandleAddComment)
	r.Delete("/{groupID}/posts/{postID}/comments/{commentID}", h.HandleDeleteComment)

	return r
}
