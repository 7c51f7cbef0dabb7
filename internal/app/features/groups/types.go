// internal/app/features/groups/types.go
package groups

import (
	"context"
	"time"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	userstore "github.com/platefull/platefull/internal/app/store/users"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// settingsView is the resolved settings object responses carry; clients
// never see the pointer/legacy-field split.
type settingsView struct {
	AllowMemberPosts bool `json:"allowMemberPosts"`
	RequireApproval  bool `json:"requireApproval"`
	AllowInvites     bool `json:"allowInvites"`
}

type memberDetail struct {
	userstore.DisplayInfo
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

type requestDetail struct {
	userstore.DisplayInfo
	RequestedAt time.Time `json:"requestedAt"`
}

// groupView is the enriched group representation. The Settings field
// shadows the embedded raw settings; PendingRequestsDetails is only
// populated for moderators.
type groupView struct {
	models.Group
	Settings               settingsView    `json:"settings"`
	MemberCount            int             `json:"memberCount"`
	MembersDetails         []memberDetail  `json:"membersDetails,omitempty"`
	PendingRequestsDetails []requestDetail `json:"pendingRequestsDetails,omitempty"`
	IsMember               bool            `json:"isMember"`
	IsAdmin                bool            `json:"isAdmin"`
	HasPendingRequest      bool            `json:"hasPendingRequest"`
}

// postView is a group post annotated for the viewer and enriched with the
// author's current directory entry.
type postView struct {
	models.GroupPost
	Author     userstore.DisplayInfo `json:"author"`
	LikesCount int                   `json:"likesCount"`
	IsPending  bool                  `json:"isPending"`
	CanApprove bool                  `json:"canApprove"`
}

func settingsOf(g *models.Group) settingsView {
	s := g.ResolveSettings()
	return settingsView{
		AllowMemberPosts: s.AllowMemberPosts,
		RequireApproval:  s.RequireApproval,
		AllowInvites:     s.AllowInvites,
	}
}

// summaryView builds the list/search representation: resolved settings
// and counts, no member detail fan-out. Only moderators see the raw
// pending-request queue; everyone else gets it blanked.
func summaryView(g models.Group, viewerID primitive.ObjectID) groupView {
	v := groupView{
		Settings:          settingsOf(&g),
		MemberCount:       len(g.Members),
		IsMember:          grouppolicy.IsMember(&g, viewerID),
		IsAdmin:           grouppolicy.IsAdmin(&g, viewerID),
		HasPendingRequest: grouppolicy.HasPendingRequest(&g, viewerID),
	}
	if !grouppolicy.CanModerate(&g, viewerID) {
		g.PendingRequests = nil
	}
	v.Group = g
	return v
}

// detailView builds the single-group representation with member (and, for
// moderators, pending-request) directory enrichment.
func (h *Handler) detailView(ctx context.Context, g models.Group, viewerID primitive.ObjectID) groupView {
	v := summaryView(g, viewerID)

	ids := make([]primitive.ObjectID, 0, len(g.Members)+len(g.PendingRequests))
	for _, m := range g.Members {
		ids = append(ids, m.UserID)
	}
	moderator := grouppolicy.CanModerate(&g, viewerID)
	if moderator {
		for _, r := range g.PendingRequests {
			ids = append(ids, r.UserID)
		}
	}
	dir := h.Users.DisplayMany(ctx, ids)

	v.MembersDetails = make([]memberDetail, 0, len(g.Members))
	for _, m := range g.Members {
		v.MembersDetails = append(v.MembersDetails, memberDetail{
			DisplayInfo: dir[m.UserID],
			Role:        m.Role,
			JoinedAt:    m.JoinedAt,
		})
	}
	if moderator {
		v.PendingRequestsDetails = make([]requestDetail, 0, len(g.PendingRequests))
		for _, r := range g.PendingRequests {
			v.PendingRequestsDetails = append(v.PendingRequestsDetails, requestDetail{
				DisplayInfo: dir[r.UserID],
				RequestedAt: r.RequestedAt,
			})
		}
	}
	return v
}

// postViews annotates and enriches a list of posts for the viewer.
func (h *Handler) postViews(ctx context.Context, g *models.Group, posts []models.GroupPost, viewerID primitive.ObjectID) []postView {
	canApprove := grouppolicy.CanModerate(g, viewerID)

	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	dir := h.Users.DisplayMany(ctx, ids)

	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, postView{
			GroupPost:  p,
			Author:     dir[p.UserID],
			LikesCount: len(p.Likes),
			IsPending:  !p.IsApproved,
			CanApprove: canApprove && !p.IsApproved,
		})
	}
	return views
}
