package userstore_test

import (
	"testing"

	userstore "github.com/platefull/platefull/internal/app/store/users"
	"github.com/platefull/platefull/internal/domain/models"
	"github.com/platefull/platefull/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestStore_DisplayMany(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := fixtures.CreateUser(ctx, "Alice Baker")
	bob := fixtures.CreateUser(ctx, "Bob Dough")
	missing := primitive.NewObjectID()

	// Duplicates collapse; every requested ID gets an entry.
	got := store.DisplayMany(ctx, []primitive.ObjectID{alice.ID, bob.ID, alice.ID, missing})
	if len(got) != 3 {
		t.Fatalf("entries: got %d, want 3", len(got))
	}
	if got[alice.ID].Name != "Alice Baker" {
		t.Errorf("alice name: got %q, want %q", got[alice.ID].Name, "Alice Baker")
	}
	if got[bob.ID].Avatar == "" {
		t.Error("bob avatar should be populated")
	}
	if got[missing].Name != models.UnknownUserName {
		t.Errorf("missing user name: got %q, want %q", got[missing].Name, models.UnknownUserName)
	}
	if got[missing].UserID != missing.Hex() {
		t.Errorf("missing user id: got %q, want %q", got[missing].UserID, missing.Hex())
	}
}

func TestStore_Display_Fallback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	id := primitive.NewObjectID()
	d := store.Display(ctx, id)
	if d.Name != models.UnknownUserName {
		t.Errorf("name: got %q, want %q", d.Name, models.UnknownUserName)
	}
}
