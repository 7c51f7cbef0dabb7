package poststore_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	poststore "github.com/platefull/platefull/internal/app/store/groupposts"
	"github.com/platefull/platefull/internal/domain/models"
	"github.com/platefull/platefull/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, models.GroupPost{
		GroupID:    primitive.NewObjectID(),
		UserID:     primitive.NewObjectID(),
		Title:      "Focaccia",
		IsApproved: true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.ID.IsZero() {
		t.Error("expected a generated ID")
	}
	if p.Likes == nil || p.Comments == nil {
		t.Error("likes and comments should be initialized to empty slices")
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_ListForViewer_Scopes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	otherID := primitive.NewObjectID()

	fixtures.CreatePost(ctx, groupID, otherID, "approved", true)
	fixtures.CreatePost(ctx, groupID, memberID, "own pending", false)
	fixtures.CreatePost(ctx, groupID, otherID, "other pending", false)

	none, err := store.ListForViewer(ctx, groupID, postpolicy.ScopeNone, memberID)
	if err != nil {
		t.Fatalf("ListForViewer failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ScopeNone: got %d posts, want 0", len(none))
	}

	approved, err := store.ListForViewer(ctx, groupID, postpolicy.ScopeApproved, primitive.NilObjectID)
	if err != nil {
		t.Fatalf("ListForViewer failed: %v", err)
	}
	if len(approved) != 1 {
		t.Errorf("ScopeApproved: got %d posts, want 1", len(approved))
	}

	memberOwn, err := store.ListForViewer(ctx, groupID, postpolicy.ScopeMemberOwn, memberID)
	if err != nil {
		t.Fatalf("ListForViewer failed: %v", err)
	}
	if len(memberOwn) != 2 {
		t.Errorf("ScopeMemberOwn: got %d posts, want 2", len(memberOwn))
	}
	for _, p := range memberOwn {
		if !p.IsApproved && p.UserID != memberID {
			t.Errorf("member should not see someone else's pending post %q", p.Title)
		}
	}

	all, err := store.ListForViewer(ctx, groupID, postpolicy.ScopeAll, memberID)
	if err != nil {
		t.Fatalf("ListForViewer failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("ScopeAll: got %d posts, want 3", len(all))
	}
}

func TestStore_Approve(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreatePost(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "queued", false)

	if err := store.Approve(ctx, p.ID); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsApproved {
		t.Error("post should be approved")
	}

	if err := store.Approve(ctx, p.ID); !errors.Is(err, poststore.ErrAlreadyApproved) {
		t.Fatalf("second Approve: got %v, want ErrAlreadyApproved", err)
	}
}

func TestStore_Like_SetSemantics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreatePost(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "likeable", true)
	userID := primitive.NewObjectID()

	likes, err := store.Like(ctx, p.ID, userID)
	if err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if len(likes) != 1 {
		t.Errorf("likes after first like: got %d, want 1", len(likes))
	}

	if _, err := store.Like(ctx, p.ID, userID); !errors.Is(err, poststore.ErrAlreadyLiked) {
		t.Fatalf("second Like: got %v, want ErrAlreadyLiked", err)
	}

	likes, err = store.Unlike(ctx, p.ID, userID)
	if err != nil {
		t.Fatalf("Unlike failed: %v", err)
	}
	if len(likes) != 0 {
		t.Errorf("likes after unlike: got %d, want 0", len(likes))
	}

	if _, err := store.Unlike(ctx, p.ID, userID); !errors.Is(err, poststore.ErrNotLiked) {
		t.Fatalf("second Unlike: got %v, want ErrNotLiked", err)
	}
}

func TestStore_Comments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p := fixtures.CreatePost(ctx, primitive.NewObjectID(), primitive.NewObjectID(), "discussed", true)

	c := models.Comment{
		ID:       uuid.NewString(),
		UserID:   primitive.NewObjectID(),
		UserName: "Jamie",
		Text:     "looks delicious",
	}
	saved, err := store.AddComment(ctx, p.ID, c)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected comment CreatedAt to be set")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Comments) != 1 {
		t.Fatalf("comments: got %d, want 1", len(got.Comments))
	}
	if got.Comments[0].ID != c.ID {
		t.Errorf("comment id: got %q, want %q", got.Comments[0].ID, c.ID)
	}

	if err := store.RemoveComment(ctx, p.ID, c.ID); err != nil {
		t.Fatalf("RemoveComment failed: %v", err)
	}
	if err := store.RemoveComment(ctx, p.ID, c.ID); !errors.Is(err, poststore.ErrNoSuchComment) {
		t.Fatalf("second RemoveComment: got %v, want ErrNoSuchComment", err)
	}
}

func TestStore_DeleteByGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := poststore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	authorID := primitive.NewObjectID()
	fixtures.CreatePost(ctx, groupID, authorID, "one", true)
	fixtures.CreatePost(ctx, groupID, authorID, "two", false)
	other := fixtures.CreatePost(ctx, primitive.NewObjectID(), authorID, "elsewhere", true)

	n, err := store.DeleteByGroup(ctx, groupID)
	if err != nil {
		t.Fatalf("DeleteByGroup failed: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted: got %d, want 2", n)
	}

	if _, err := store.GetByID(ctx, other.ID); err != nil {
		t.Errorf("post in another group should survive: %v", err)
	}
}
