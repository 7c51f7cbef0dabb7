// internal/app/features/groups/members.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	"github.com/platefull/platefull/internal/app/system/httpjson"
	"github.com/platefull/platefull/internal/app/system/timeouts"
)

// HandleLeaveGroup removes the caller from the member list. The creator
// cannot leave; they must delete the group instead.
// DELETE /groups/{groupID}/leave/{userID}
func (h *Handler) HandleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	userID, derr := pathID(r, "userID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Groups.RemoveMember(ctx, groupID, userID); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrCreatorImmutable):
			httpjson.Fail(w, h.Log, httpjson.Permission("the creator cannot leave the group"))
		case errors.Is(err, groupstore.ErrNotMember):
			httpjson.Fail(w, h.Log, httpjson.NotFound("not a member of this group"))
		default:
			httpjson.Fail(w, h.Log, err)
		}
		return
	}
	httpjson.OK(w, "left group", nil)
}

type removeMemberRequest struct {
	AdminID string `json:"adminId"`
}

// HandleRemoveMember kicks a member out. The caller must be the creator
// or an admin, cannot remove themselves (use leave), and the creator can
// never be removed.
// DELETE /groups/{groupID}/members/{memberUserID}
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	groupID, derr := pathID(r, "groupID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	memberID, derr := pathID(r, "memberUserID")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	var req removeMemberRequest
	if derr := decodeBody(r, &req); derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	callerID, derr := bodyOrQueryID(r, req.AdminID, "adminId")
	if derr != nil {
		httpjson.Fail(w, h.Log, derr)
		return
	}
	if callerID.IsZero() {
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
	if !grouppolicy.CanModerate(&g, callerID) {
		httpjson.Fail(w, h.Log, httpjson.Permission("only the creator or an admin can remove members"))
		return
	}
	if callerID == memberID {
		httpjson.Fail(w, h.Log, httpjson.Validation("use leave to remove yourself"))
		return
	}

	if err := h.Groups.RemoveMember(ctx, groupID, memberID); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrCreatorImmutable):
			httpjson.Fail(w, h.Log, httpjson.Permission("the creator cannot be removed"))
		case errors.Is(err, groupstore.ErrNotMember):
			httpjson.Fail(w, h.Log, httpjson.NotFound("user is not a member of this group"))
		default:
			httpjson.Fail(w, h.Log, err)
		}
		return
	}
	httpjson.OK(w, "member removed", nil)
}
