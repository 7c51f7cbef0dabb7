package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user profile with the given display name.
func (f *Fixtures) CreateUser(ctx context.Context, fullName string) models.User {
	f.t.Helper()

	user := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  fullName,
		Avatar:    "avatars/" + text.Fold(fullName) + ".png",
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateGroup creates a group with the given creator. The creator is
// recorded as the first admin member, matching what the group store does
// on create.
func (f *Fixtures) CreateGroup(ctx context.Context, name string, creatorID primitive.ObjectID, private bool) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	g := models.Group{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatorID: creatorID,
		IsPrivate: private,
		Members: []models.GroupMember{
			{UserID: creatorID, Role: models.RoleAdmin, JoinedAt: now},
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return g
}

// AddMember appends a member entry directly, bypassing the join workflow.
func (f *Fixtures) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, role string) {
	f.t.Helper()

	member := models.GroupMember{UserID: userID, Role: role, JoinedAt: time.Now().UTC()}
	_, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		bson.M{"$push": bson.M{"members": member}})
	if err != nil {
		f.t.Fatalf("failed to add member: %v", err)
	}
}

// CreatePost creates a group post by the given author.
func (f *Fixtures) CreatePost(ctx context.Context, groupID, authorID primitive.ObjectID, title string, approved bool) models.GroupPost {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.GroupPost{
		ID:          primitive.NewObjectID(),
		GroupID:     groupID,
		UserID:      authorID,
		Title:       title,
		Description: "test description",
		Likes:       []primitive.ObjectID{},
		Comments:    []models.Comment{},
		IsApproved:  approved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("group_posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test post: %v", err)
	}
	return p
}
