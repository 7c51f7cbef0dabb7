// internal/app/features/groups/requests.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	"github.com/platefull/platefull/internal/app/store/notifications"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
)

type decideRequestRequest struct {
	AdminID string `json:"adminId"`
	Action  string `json:"action"`
}

// HandleDecideRequest approves or rejects a pending join request. The
// deciding user must be the creator or an admin. Approval moves the
// requester into the member list in one atomic write and notifies them;
// rejection just drops the request.
// PUT /groups/{id}/requests/{userID}
func (h *Handler) HandleDecideRequest(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "id")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	requesterID, derr := pathID(r, "userID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req decideRequestRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	adminID, derr := hexID(req.AdminID)
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if adminID.IsZero() {
		httpjson.Fail(w, h.Log, httpjson.Validation("adminId is required"))
		return
	}

	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != "approve" && action != "reject" {
		httpjson.Fail(w, h.Log, httpjson.Validation("action must be approve or reject"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	if !grouppolicy.CanModerate(&g, adminID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the creator or an admin can decide join requests"))
		return
	}

	if action == "reject" {
		if err := h.Groups.RemovePendingRequest(ctx, groupID, requesterID); err != nil {
			if errors.Is(err, groupstore.ErrNoPendingRequest) {
				httpjson.Fail(w, h.Log, httpjson.NotFound("no pending request for this user"))
				return
			}
			httpjson.Fail(w, h.Log, err)
			return
		}
		httpjson.OK(w, "join request rejected", nil)
		return
	}

	if err := h.Groups.ApproveRequest(ctx, groupID, requesterID); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrNoPendingRequest):
			httpjson.Fail(w, h.Log, httpjson.NotFound("no pending request for this user"))
		case errors.Is(err, groupstore.ErrAlreadyMember):
			httpjson.Fail(w, h.Log, httpjson.Conflict("user is already a member"))
		default:
			httpjson.Fail(w, h.Log, err)
		}
		return
	}

	notifications.Dispatch(ctx, h.Notify, h.Log, models.Notification{
		UserID:  requesterID,
		ActorID: adminID,
		Type:    models.NotifyGroupJoinApprove,
		GroupID: groupID,
		Message: "your request to join " + g.Name + " was approved",
	})

	updated, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		httpjson.Fail(w, h.Log, err)
		return
	}
	httpjson.OK(w, "join request approved", h.detailView(ctx, updated, adminID))
}
