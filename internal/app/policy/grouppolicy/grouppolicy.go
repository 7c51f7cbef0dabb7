// internal/app/policy/grouppolicy/grouppolicy.go

// Package grouppolicy answers membership and role questions about a loaded
// group. All functions are pure and total: nil or zero input yields false,
// never an error.
//
// Authority model:
//   - The creator is admin-equivalent regardless of what their member
//     entry's role field says, and regardless of whether the entry exists
//     at all. Membership mutations never remove the creator, but the
//     policy does not assume the data upholds that.
//   - An admin is any member whose role is "admin" (or "owner", written by
//     an earlier schema).
package grouppolicy

import (
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsMember reports whether userID appears in the group's member list.
// The creator counts as a member even if their entry is missing.
func IsMember(g *models.Group, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	if userID == g.CreatorID {
		return true
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether userID holds an admin-role member entry.
func IsAdmin(g *models.Group, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	for _, m := range g.Members {
		if m.UserID == userID && (m.Role == models.RoleAdmin || m.Role == "owner") {
			return true
		}
	}
	return false
}

// IsCreator reports whether userID created the group.
func IsCreator(g *models.Group, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	return userID == g.CreatorID
}

// HasPendingRequest reports whether userID has an open join request.
func HasPendingRequest(g *models.Group, userID primitive.ObjectID) bool {
	if g == nil || userID.IsZero() {
		return false
	}
	for _, r := range g.PendingRequests {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// CanModerate reports whether userID may approve posts and requests,
// remove members, and delete others' content in this group.
func CanModerate(g *models.Group, userID primitive.ObjectID) bool {
	return IsCreator(g, userID) || IsAdmin(g, userID)
}

// CanPost reports whether userID may create posts in the group given its
// resolved settings. Moderators may always post; plain members only when
// member posting is enabled.
func CanPost(g *models.Group, userID primitive.ObjectID, s models.EffectiveSettings) bool {
	if !IsMember(g, userID) {
		return false
	}
	return s.AllowMemberPosts || CanModerate(g, userID)
}
