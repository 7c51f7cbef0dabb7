package groupstore_test

import (
	"errors"
	"testing"

	groupstore "github.com/platefull/platefull/internal/app/store/groups"
	"github.com/platefull/platefull/internal/domain/models"
	"github.com/platefull/platefull/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creatorID := primitive.NewObjectID()
	g, err := store.Create(ctx, models.Group{
		Name:      "Sourdough Bakers",
		CreatorID: creatorID,
		IsPrivate: false,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if g.ID.IsZero() {
		t.Error("expected a generated ID")
	}
	if g.NameCI == "" {
		t.Error("expected folded name to be set")
	}
	if g.Version != 1 {
		t.Errorf("version: got %d, want 1", g.Version)
	}
	if len(g.Members) != 1 {
		t.Fatalf("members: got %d, want 1", len(g.Members))
	}
	if g.Members[0].UserID != creatorID {
		t.Error("creator should be the first member")
	}
	if g.Members[0].Role != models.RoleAdmin {
		t.Errorf("creator role: got %q, want %q", g.Members[0].Role, models.RoleAdmin)
	}
	if g.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_AddMember_Idempotence(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Grillers", CreatorID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	userID := primitive.NewObjectID()
	if err := store.AddMember(ctx, g.ID, userID, models.RoleMember); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.AddMember(ctx, g.ID, userID, models.RoleMember); !errors.Is(err, groupstore.ErrAlreadyMember) {
		t.Fatalf("second AddMember: got %v, want ErrAlreadyMember", err)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 2 {
		t.Errorf("members: got %d, want 2", len(got.Members))
	}
	if got.Version != 2 {
		t.Errorf("version: got %d, want 2 (one successful write after create)", got.Version)
	}
}

func TestStore_AddPendingRequest_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Vegans", CreatorID: primitive.NewObjectID(), IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	userID := primitive.NewObjectID()
	if err := store.AddPendingRequest(ctx, g.ID, userID); err != nil {
		t.Fatalf("AddPendingRequest failed: %v", err)
	}
	if err := store.AddPendingRequest(ctx, g.ID, userID); !errors.Is(err, groupstore.ErrDuplicateRequest) {
		t.Fatalf("second AddPendingRequest: got %v, want ErrDuplicateRequest", err)
	}

	// A pending user cannot also be added as a member.
	if err := store.AddMember(ctx, g.ID, userID, models.RoleMember); !errors.Is(err, groupstore.ErrDuplicateRequest) {
		t.Fatalf("AddMember with pending request: got %v, want ErrDuplicateRequest", err)
	}
}

func TestStore_ApproveRequest(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Pastry Club", CreatorID: primitive.NewObjectID(), IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	userID := primitive.NewObjectID()
	if err := store.AddPendingRequest(ctx, g.ID, userID); err != nil {
		t.Fatalf("AddPendingRequest failed: %v", err)
	}
	if err := store.ApproveRequest(ctx, g.ID, userID); err != nil {
		t.Fatalf("ApproveRequest failed: %v", err)
	}

	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.PendingRequests) != 0 {
		t.Errorf("pending requests: got %d, want 0", len(got.PendingRequests))
	}
	found := false
	for _, m := range got.Members {
		if m.UserID == userID {
			found = true
			if m.Role != models.RoleMember {
				t.Errorf("approved role: got %q, want %q", m.Role, models.RoleMember)
			}
		}
	}
	if !found {
		t.Error("approved user should be in the member list")
	}

	// Approving again has nothing to move.
	if err := store.ApproveRequest(ctx, g.ID, userID); !errors.Is(err, groupstore.ErrNoPendingRequest) {
		t.Fatalf("second ApproveRequest: got %v, want ErrNoPendingRequest", err)
	}
}

func TestStore_RemovePendingRequest_None(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Soupers", CreatorID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.RemovePendingRequest(ctx, g.ID, primitive.NewObjectID())
	if !errors.Is(err, groupstore.ErrNoPendingRequest) {
		t.Fatalf("got %v, want ErrNoPendingRequest", err)
	}
}

func TestStore_RemoveMember_CreatorProtected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creatorID := primitive.NewObjectID()
	g, err := store.Create(ctx, models.Group{Name: "Curry House", CreatorID: creatorID})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = store.RemoveMember(ctx, g.ID, creatorID)
	if !errors.Is(err, groupstore.ErrCreatorImmutable) {
		t.Fatalf("removing creator: got %v, want ErrCreatorImmutable", err)
	}

	err = store.RemoveMember(ctx, g.ID, primitive.NewObjectID())
	if !errors.Is(err, groupstore.ErrNotMember) {
		t.Fatalf("removing stranger: got %v, want ErrNotMember", err)
	}

	memberID := primitive.NewObjectID()
	if err := store.AddMember(ctx, g.ID, memberID, models.RoleMember); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if err := store.RemoveMember(ctx, g.ID, memberID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	got, err := store.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Members) != 1 {
		t.Errorf("members after removal: got %d, want 1", len(got.Members))
	}
}

func TestStore_ApplyUpdate_PublicClearsApproval(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Secret Supper", CreatorID: primitive.NewObjectID(), IsPrivate: true})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	requireApproval := true
	if _, err := store.ApplyUpdate(ctx, g.ID, groupstore.Update{RequireApproval: &requireApproval}); err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}

	// Going public must clear require_approval even when the same request
	// tries to keep it on.
	public := false
	keepApproval := true
	updated, err := store.ApplyUpdate(ctx, g.ID, groupstore.Update{
		IsPrivate:       &public,
		RequireApproval: &keepApproval,
	})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}
	if updated.IsPrivate {
		t.Error("group should be public")
	}
	if got := updated.ResolveSettings(); got.RequireApproval {
		t.Error("public group must not require approval")
	}
}

func TestStore_ApplyUpdate_UnsetsLegacyFlags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	g, err := store.Create(ctx, models.Group{Name: "Legacy Eaters", CreatorID: primitive.NewObjectID()})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Simulate an old document that still carries the flat flag.
	if _, err := db.Collection("groups").UpdateByID(ctx, g.ID,
		bson.M{"$set": bson.M{"allow_member_posts": false}}); err != nil {
		t.Fatalf("seed legacy flag: %v", err)
	}

	allow := true
	updated, err := store.ApplyUpdate(ctx, g.ID, groupstore.Update{AllowMemberPosts: &allow})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}
	if updated.AllowMemberPosts != nil {
		t.Error("legacy flat flag should have been unset")
	}
	if got := updated.ResolveSettings(); !got.AllowMemberPosts {
		t.Error("settings.allow_member_posts should be true")
	}
}

func TestStore_List_Privacy(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creatorID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Group{Name: "Open Kitchen", CreatorID: creatorID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Hidden Kitchen", CreatorID: creatorID, IsPrivate: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	anon, err := store.List(ctx, primitive.NilObjectID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(anon) != 1 {
		t.Errorf("anonymous list: got %d groups, want 1", len(anon))
	}

	own, err := store.List(ctx, creatorID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(own) != 2 {
		t.Errorf("creator list: got %d groups, want 2", len(own))
	}
}

func TestStore_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	creatorID := primitive.NewObjectID()
	if _, err := store.Create(ctx, models.Group{Name: "Sourdough Bakers", CreatorID: creatorID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Secret Bakers", CreatorID: creatorID, IsPrivate: true}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Create(ctx, models.Group{Name: "Grill Masters", CreatorID: creatorID}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	public, err := store.Search(ctx, "BAKERS", primitive.NilObjectID, false)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(public) != 1 {
		t.Errorf("public search: got %d, want 1", len(public))
	}

	withPrivate, err := store.Search(ctx, "bakers", creatorID, true)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(withPrivate) != 2 {
		t.Errorf("member search: got %d, want 2", len(withPrivate))
	}
}
