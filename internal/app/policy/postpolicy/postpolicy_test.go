package postpolicy_test

import (
	"testing"
	"time"

	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ids struct {
	creator, admin, plain, outsider primitive.ObjectID
}

func testGroup(private bool) (*models.Group, ids) {
	v := ids{
		creator:  primitive.NewObjectID(),
		admin:    primitive.NewObjectID(),
		plain:    primitive.NewObjectID(),
		outsider: primitive.NewObjectID(),
	}
	now := time.Now().UTC()
	g := &models.Group{
		ID:        primitive.NewObjectID(),
		CreatorID: v.creator,
		IsPrivate: private,
		Members: []models.GroupMember{
			{UserID: v.creator, Role: models.RoleAdmin, JoinedAt: now},
			{UserID: v.admin, Role: models.RoleAdmin, JoinedAt: now},
			{UserID: v.plain, Role: models.RoleMember, JoinedAt: now},
		},
	}
	return g, v
}

func TestVisibilityFor_PrivateGroup(t *testing.T) {
	g, v := testGroup(true)

	if got := postpolicy.VisibilityFor(g, v.outsider); got != postpolicy.ScopeNone {
		t.Errorf("outsider on private group: got %v, want ScopeNone", got)
	}
	if got := postpolicy.VisibilityFor(g, v.plain); got != postpolicy.ScopeMemberOwn {
		t.Errorf("member: got %v, want ScopeMemberOwn", got)
	}
	if got := postpolicy.VisibilityFor(g, v.admin); got != postpolicy.ScopeAll {
		t.Errorf("admin: got %v, want ScopeAll", got)
	}
	if got := postpolicy.VisibilityFor(g, v.creator); got != postpolicy.ScopeAll {
		t.Errorf("creator: got %v, want ScopeAll", got)
	}
}

func TestVisibilityFor_PublicGroup(t *testing.T) {
	g, v := testGroup(false)

	if got := postpolicy.VisibilityFor(g, v.outsider); got != postpolicy.ScopeApproved {
		t.Errorf("outsider on public group: got %v, want ScopeApproved", got)
	}
	if got := postpolicy.VisibilityFor(g, primitive.NilObjectID); got != postpolicy.ScopeApproved {
		t.Errorf("anonymous viewer: got %v, want ScopeApproved", got)
	}
}

func TestAutoApprove(t *testing.T) {
	g, v := testGroup(true)

	relaxed := models.EffectiveSettings{AllowMemberPosts: true, RequireApproval: false}
	strict := models.EffectiveSettings{AllowMemberPosts: true, RequireApproval: true}

	if !postpolicy.AutoApprove(g, v.plain, relaxed) {
		t.Error("no approval required: member posts should auto-approve")
	}
	if postpolicy.AutoApprove(g, v.plain, strict) {
		t.Error("approval required: member posts should be pending")
	}
	if !postpolicy.AutoApprove(g, v.admin, strict) {
		t.Error("admin posts always auto-approve")
	}
	if !postpolicy.AutoApprove(g, v.creator, strict) {
		t.Error("creator posts always auto-approve")
	}
}

func TestCanDeletePost(t *testing.T) {
	g, v := testGroup(false)
	post := &models.GroupPost{
		ID:      primitive.NewObjectID(),
		GroupID: g.ID,
		UserID:  v.plain,
	}

	if !postpolicy.CanDeletePost(g, post, v.plain) {
		t.Error("author should delete own post")
	}
	if !postpolicy.CanDeletePost(g, post, v.admin) {
		t.Error("admin should delete any post")
	}
	if !postpolicy.CanDeletePost(g, post, v.creator) {
		t.Error("creator should delete any post")
	}
	if postpolicy.CanDeletePost(g, post, v.outsider) {
		t.Error("outsider should not delete posts")
	}
	if postpolicy.CanDeletePost(g, nil, v.admin) {
		t.Error("nil post should not be deletable")
	}
}

func TestCanViewPost_PendingPost(t *testing.T) {
	g, v := testGroup(true)
	pending := &models.GroupPost{
		ID:         primitive.NewObjectID(),
		GroupID:    g.ID,
		UserID:     v.plain,
		IsApproved: false,
	}

	if !postpolicy.CanViewPost(g, pending, v.plain) {
		t.Error("author should see own pending post")
	}
	if !postpolicy.CanViewPost(g, pending, v.admin) {
		t.Error("admin should see pending posts")
	}
	otherMember := primitive.NewObjectID()
	g.Members = append(g.Members, models.GroupMember{UserID: otherMember, Role: models.RoleMember})
	if postpolicy.CanViewPost(g, pending, otherMember) {
		t.Error("other members should not see someone else's pending post")
	}
	if postpolicy.CanViewPost(g, pending, v.outsider) {
		t.Error("outsider should not see pending posts in a private group")
	}
}

func TestCanDeleteComment(t *testing.T) {
	g, v := testGroup(false)
	c := &models.Comment{ID: "c1", UserID: v.plain, Text: "nice crumb"}

	if !postpolicy.CanDeleteComment(g, c, v.plain) {
		t.Error("comment owner should delete own comment")
	}
	if !postpolicy.CanDeleteComment(g, c, v.creator) {
		t.Error("creator should delete any comment")
	}
	if postpolicy.CanDeleteComment(g, c, v.outsider) {
		t.Error("outsider should not delete comments")
	}
}
