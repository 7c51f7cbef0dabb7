package grouppolicy_test

import (
	"testing"
	"time"

	"github.com/platefull/platefull/internal/app/policy/grouppolicy"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func member(id primitive.ObjectID, role string) models.GroupMember {
	return models.GroupMember{UserID: id, Role: role, JoinedAt: time.Now().UTC()}
}

func TestIsMember(t *testing.T) {
	creator := primitive.NewObjectID()
	plain := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	g := &models.Group{
		CreatorID: creator,
		Members: []models.GroupMember{
			member(creator, models.RoleAdmin),
			member(plain, models.RoleMember),
		},
	}

	if !grouppolicy.IsMember(g, creator) {
		t.Error("creator should be a member")
	}
	if !grouppolicy.IsMember(g, plain) {
		t.Error("listed user should be a member")
	}
	if grouppolicy.IsMember(g, outsider) {
		t.Error("outsider should not be a member")
	}
	if grouppolicy.IsMember(nil, plain) {
		t.Error("nil group should never have members")
	}
	if grouppolicy.IsMember(g, primitive.NilObjectID) {
		t.Error("zero user id should not match")
	}
}

func TestIsMember_CreatorWithoutEntry(t *testing.T) {
	creator := primitive.NewObjectID()
	g := &models.Group{CreatorID: creator}

	if !grouppolicy.IsMember(g, creator) {
		t.Error("creator counts as member even without a member entry")
	}
}

func TestIsAdmin(t *testing.T) {
	admin := primitive.NewObjectID()
	owner := primitive.NewObjectID()
	plain := primitive.NewObjectID()

	g := &models.Group{
		CreatorID: admin,
		Members: []models.GroupMember{
			member(admin, models.RoleAdmin),
			member(owner, "owner"),
			member(plain, models.RoleMember),
		},
	}

	if !grouppolicy.IsAdmin(g, admin) {
		t.Error("admin role should be admin")
	}
	if !grouppolicy.IsAdmin(g, owner) {
		t.Error("legacy owner role should be admin")
	}
	if grouppolicy.IsAdmin(g, plain) {
		t.Error("member role should not be admin")
	}
}

func TestCanModerate_CreatorDemotedInData(t *testing.T) {
	// The creator's entry says "member"; authority must not depend on it.
	creator := primitive.NewObjectID()
	g := &models.Group{
		CreatorID: creator,
		Members:   []models.GroupMember{member(creator, models.RoleMember)},
	}

	if grouppolicy.IsAdmin(g, creator) {
		t.Error("role field says member, IsAdmin should report false")
	}
	if !grouppolicy.CanModerate(g, creator) {
		t.Error("creator must moderate regardless of role field")
	}
}

func TestHasPendingRequest(t *testing.T) {
	waiting := primitive.NewObjectID()
	g := &models.Group{
		CreatorID: primitive.NewObjectID(),
		PendingRequests: []models.JoinRequest{
			{UserID: waiting, RequestedAt: time.Now().UTC()},
		},
	}

	if !grouppolicy.HasPendingRequest(g, waiting) {
		t.Error("expected pending request")
	}
	if grouppolicy.HasPendingRequest(g, primitive.NewObjectID()) {
		t.Error("unexpected pending request")
	}
	if grouppolicy.HasPendingRequest(nil, waiting) {
		t.Error("nil group has no pending requests")
	}
}

func TestCanPost(t *testing.T) {
	creator := primitive.NewObjectID()
	admin := primitive.NewObjectID()
	plain := primitive.NewObjectID()
	outsider := primitive.NewObjectID()

	g := &models.Group{
		CreatorID: creator,
		Members: []models.GroupMember{
			member(creator, models.RoleAdmin),
			member(admin, models.RoleAdmin),
			member(plain, models.RoleMember),
		},
	}

	open := models.EffectiveSettings{AllowMemberPosts: true}
	locked := models.EffectiveSettings{AllowMemberPosts: false}

	if !grouppolicy.CanPost(g, plain, open) {
		t.Error("member should post when member posting is allowed")
	}
	if grouppolicy.CanPost(g, plain, locked) {
		t.Error("member should not post when member posting is disabled")
	}
	if !grouppolicy.CanPost(g, admin, locked) {
		t.Error("admin should post even when member posting is disabled")
	}
	if !grouppolicy.CanPost(g, creator, locked) {
		t.Error("creator should post even when member posting is disabled")
	}
	if grouppolicy.CanPost(g, outsider, open) {
		t.Error("non-member should never post")
	}
}
