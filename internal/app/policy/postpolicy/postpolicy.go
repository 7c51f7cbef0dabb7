// internal/app/policy/postpolicy/postpolicy.go

// Package postpolicy decides which group posts a viewer may see and which
// moderation actions a requester may take. Like grouppolicy it is pure:
// callers load the group and post, this package only computes.
package postpolicy

import (
	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope is the visibility level a viewer gets on a group's posts.
type Scope int

const (
	// ScopeNone: private group, viewer is not a member. The caller must
	// return an empty result, not an error, so post existence leaks
	// nothing.
	ScopeNone Scope = iota
	// ScopeApproved: public group, non-member viewer. Approved posts only.
	ScopeApproved
	// ScopeMemberOwn: plain member. Approved posts plus the viewer's own
	// pending submissions.
	ScopeMemberOwn
	// ScopeAll: creator or admin. Every post, pending included.
	ScopeAll
)

// VisibilityFor computes the viewing scope for viewerID on g. Precedence
// follows the privacy rules: the private-group gate is checked before any
// role elevation.
func VisibilityFor(g *models.Group, viewerID primitive.ObjectID) Scope {
	if g == nil {
		return ScopeNone
	}
	if g.IsPrivate && !grouppolicy.IsMember(g, viewerID) {
		return ScopeNone
	}
	if grouppolicy.CanModerate(g, viewerID) {
		return ScopeAll
	}
	if grouppolicy.IsMember(g, viewerID) {
		return ScopeMemberOwn
	}
	return ScopeApproved
}

// AutoApprove decides a new post's approval flag at creation time. This is
// a one-shot decision: promoting the author later does not retroactively
// approve earlier posts.
func AutoApprove(g *models.Group, authorID primitive.ObjectID, s models.EffectiveSettings) bool {
	return !s.RequireApproval || grouppolicy.CanModerate(g, authorID)
}

// CanDeletePost reports whether requesterID may delete p: the post's
// author, a group admin, or the creator.
func CanDeletePost(g *models.Group, p *models.GroupPost, requesterID primitive.ObjectID) bool {
	if g == nil || p == nil || requesterID.IsZero() {
		return false
	}
	return p.UserID == requesterID || grouppolicy.CanModerate(g, requesterID)
}

// CanApprovePost reports whether requesterID may flip a pending post to
// approved. Moderators only.
func CanApprovePost(g *models.Group, requesterID primitive.ObjectID) bool {
	return grouppolicy.CanModerate(g, requesterID)
}

// CanDeleteComment reports whether requesterID may remove c from a post:
// the comment's author, a group admin, or the creator.
func CanDeleteComment(g *models.Group, c *models.Comment, requesterID primitive.ObjectID) bool {
	if g == nil || c == nil || requesterID.IsZero() {
		return false
	}
	return c.UserID == requesterID || grouppolicy.CanModerate(g, requesterID)
}

// CanViewPost applies the same precedence as VisibilityFor to a single
// post, for reads and like/comment preconditions that need to know whether
// the target is visible at all.
func CanViewPost(g *models.Group, p *models.GroupPost, viewerID primitive.ObjectID) bool {
	if p == nil {
		return false
	}
	switch VisibilityFor(g, viewerID) {
	case ScopeAll:
		return true
	case ScopeMemberOwn:
		return p.IsApproved || p.UserID == viewerID
	case ScopeApproved:
		return p.IsApproved
	default:
		return false
	}
}
