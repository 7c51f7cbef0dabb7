// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values stored on a member entry. The creator's entry is written as
// RoleAdmin at group creation, but authority checks never depend on that
// alone: the creator is admin-equivalent even if the role field disagrees.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// GroupMember is one entry in a group's embedded member list.
// A user ID appears at most once per group.
type GroupMember struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Role     string             `bson:"role" json:"role"`
	JoinedAt time.Time          `bson:"joined_at" json:"joinedAt"`
}

// JoinRequest records a user waiting for admin approval to join.
// A user ID never appears in both Members and PendingRequests.
type JoinRequest struct {
	UserID      primitive.ObjectID `bson:"user_id" json:"userId"`
	RequestedAt time.Time          `bson:"requested_at" json:"requestedAt"`
}

// GroupSettings holds the per-group posting/approval flags. Fields are
// pointers because older documents carry the flags flat on the group
// itself; ResolveSettings applies the fallback chain once at load.
type GroupSettings struct {
	AllowMemberPosts *bool `bson:"allow_member_posts,omitempty" json:"allowMemberPosts,omitempty"`
	RequireApproval  *bool `bson:"require_approval,omitempty" json:"requireApproval,omitempty"`
	AllowInvites     *bool `bson:"allow_invites,omitempty" json:"allowInvites,omitempty"`
}

// Group is a named community with an embedded member list, a pending
// join-request queue, and posting/approval settings.
//
// NOTE:
//   - Members and PendingRequests are embedded on the document; every
//     membership mutation is a guarded single-document update that also
//     bumps Version (optimistic concurrency).
//   - AllowMemberPosts/RequireApproval at the top level are legacy flat
//     fields kept for documents written before Settings existed.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Rules       string             `bson:"rules" json:"rules"`
	Image       string             `bson:"image" json:"image"`

	CreatorID primitive.ObjectID `bson:"creator_id" json:"creatorId"`
	IsPrivate bool               `bson:"is_private" json:"isPrivate"`

	Members         []GroupMember `bson:"members" json:"members"`
	PendingRequests []JoinRequest `bson:"pending_requests" json:"pendingRequests"`

	Settings GroupSettings `bson:"settings" json:"settings"`

	// Legacy flat flags; read only through ResolveSettings.
	AllowMemberPosts *bool `bson:"allow_member_posts,omitempty" json:"-"`
	RequireApproval  *bool `bson:"require_approval,omitempty" json:"-"`

	Version   int64     `bson:"version" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// EffectiveSettings is the resolved, non-optional view of a group's flags.
type EffectiveSettings struct {
	AllowMemberPosts bool
	RequireApproval  bool
	AllowInvites     bool
}

// Defaults used when neither the settings object nor the legacy flat
// field carries a value.
const (
	DefaultAllowMemberPosts = true
	DefaultRequireApproval  = false
	DefaultAllowInvites     = true
)

// ResolveSettings applies the compatibility chain: settings field first,
// legacy flat field next, hardcoded default last. Callers resolve once
// after loading a group and pass the result around; nothing downstream
// re-derives individual flags.
func (g *Group) ResolveSettings() EffectiveSettings {
	return EffectiveSettings{
		AllowMemberPosts: resolveFlag(g.Settings.AllowMemberPosts, g.AllowMemberPosts, DefaultAllowMemberPosts),
		RequireApproval:  resolveFlag(g.Settings.RequireApproval, g.RequireApproval, DefaultRequireApproval),
		AllowInvites:     resolveFlag(g.Settings.AllowInvites, nil, DefaultAllowInvites),
	}
}

func resolveFlag(primary, legacy *bool, def bool) bool {
	if primary != nil {
		return *primary
	}
	if legacy != nil {
		return *legacy
	}
	return def
}
