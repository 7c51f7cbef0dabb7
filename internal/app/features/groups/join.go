// internal/app/features/groups/join.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	"github.com/platefull/platefull/internal/app/store/notifications"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type joinGroupRequest struct {
	UserID string `json:"userId"`
}

// joinResult tells the client whether the join completed or was queued.
// Group is only populated on a direct join.
type joinResult struct {
	Status string     `json:"status"`
	Group  *groupView `json:"group,omitempty"`
}

// HandleJoinGroup either adds the caller directly as a member or files a
// pending join request. Public groups without approval admit immediately;
// private groups and groups with requireApproval queue the request and
// notify the creator.
// POST /groups/{groupID}/join
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req joinGroupRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	userID, derr := bodyOrQueryID(r, req.UserID, "userId")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if userID.IsZero() {
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
	if grouppolicy.IsMember(&g, userID) {
		httpjson.Fail(w, h.Log, httpjson.Conflict("already a member of this group"))
		return
	}

	settings := g.ResolveSettings()
	needsApproval := g.IsPrivate || settings.RequireApproval

	if !needsApproval {
		if err := h.Groups.AddMember(ctx, groupID, userID, models.RoleMember); err != nil {
			switch {
			case errors.Is(err, groupstore.ErrAlreadyMember):
				httpjson.Fail(w, h.Log, httpjson.Conflict("already a member of this group"))
			default:
				httpjson.Fail(w, h.Log, err)
			}
			return
		}
		updated, err := h.Groups.GetByID(ctx, groupID)
		if err != nil {
			httpjson.Fail(w, h.Log, err)
			return
		}
		view := h.detailView(ctx, updated, userID)
		httpjson.OK(w, "joined group", joinResult{Status: "approved", Group: &view})
		return
	}

	if err := h.Groups.AddPendingRequest(ctx, groupID, userID); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrAlreadyMember):
			httpjson.Fail(w, h.Log, httpjson.Conflict("already a member of this group"))
		case errors.Is(err, groupstore.ErrDuplicateRequest):
			httpjson.Fail(w, h.Log, httpjson.Conflict("join request already pending"))
		default:
			httpjson.Fail(w, h.Log, err)
		}
		return
	}

	notifications.Dispatch(ctx, h.Notify, h.Log, models.Notification{
		UserID:  g.CreatorID,
		ActorID: userID,
		Type:    models.NotifyGroupJoinRequest,
		GroupID: groupID,
		Message: "requested to join " + g.Name,
	})

	httpjson.OK(w, "join request submitted", joinResult{Status: "pending"})
}

// HandleCancelJoin withdraws the caller's pending join request.
// DELETE /groups/{groupID}/join?userId=...
func (h *Handler) HandleCancelJoin(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req joinGroupRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	userID, derr := bodyOrQueryID(r, req.UserID, "userId")
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

	if err := h.Groups.RemovePendingRequest(ctx, groupID, userID); err != nil {
		if errors.Is(err, groupstore.ErrNoPendingRequest) {
			httpjson.Fail(w, h.Log, httpjson.Conflict("no pending join request"))
			return
		}
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "join request withdrawn", nil)
}
