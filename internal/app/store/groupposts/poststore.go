// internal/app/store/groupposts/poststore.go
package poststore

import (
	"context"
	"errors"
	"time"

	"github.com/platefull/platefull/internal/app/policy/postpolicy"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists group posts. Like and comment mutations follow the same
// guarded-update pattern as the group store: set-membership preconditions
// live in the filter, so a duplicate like is a filter miss, not a silent
// second array entry.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("group_posts")}
}

var (
	ErrAlreadyLiked    = errors.New("post already liked by this user")
	ErrNotLiked        = errors.New("post not liked by this user")
	ErrAlreadyApproved = errors.New("post is already approved")
	ErrNoSuchComment   = errors.New("comment not found on this post")
)

// Create inserts a post. IsApproved must already be decided by the caller
// via postpolicy.AutoApprove; this store never re-evaluates it.
func (s *Store) Create(ctx context.Context, p models.GroupPost) (models.GroupPost, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	if p.Likes == nil {
		p.Likes = []primitive.ObjectID{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	if p.Instructions == nil {
		p.Instructions = []string{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.GroupPost{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupPost, error) {
	var p models.GroupPost
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.GroupPost{}, err
	}
	return p, nil
}

// ListForViewer returns the group's posts the given visibility scope
// allows, newest first. ScopeNone short-circuits to an empty slice without
// touching the collection, so a private group reveals nothing.
func (s *Store) ListForViewer(ctx context.Context, groupID primitive.ObjectID, scope postpolicy.Scope, viewerID primitive.ObjectID) ([]models.GroupPost, error) {
	var filter bson.M
	switch scope {
	case postpolicy.ScopeNone:
		return []models.GroupPost{}, nil
	case postpolicy.ScopeAll:
		filter = bson.M{"group_id": groupID}
	case postpolicy.ScopeMemberOwn:
		filter = bson.M{
			"group_id": groupID,
			"$or": []bson.M{
				{"is_approved": true},
				{"user_id": viewerID},
			},
		}
	default:
		filter = bson.M{"group_id": groupID, "is_approved": true}
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.GroupPost{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Approve flips a pending post to approved.
func (s *Store) Approve(ctx context.Context, postID primitive.ObjectID) error {
	filter := bson.M{"_id": postID, "is_approved": false}
	update := bson.M{"$set": bson.M{
		"is_approved": true,
		"updated_at":  time.Now().UTC(),
	}}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, postID); err != nil {
			return err
		}
		return ErrAlreadyApproved
	}
	return nil
}

// Delete removes a post permanently. Rejecting a pending post goes
// through here too; there is no tombstone.
func (s *Store) Delete(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteByGroup removes every post belonging to groupID. Called before the
// group document itself is deleted.
func (s *Store) DeleteByGroup(ctx context.Context, groupID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Like adds userID to the post's like set. A duplicate like fails with
// ErrAlreadyLiked rather than being silently ignored. Returns the updated
// like list.
func (s *Store) Like(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"_id": postID, "likes": bson.M{"$ne": userID}}
	update := bson.M{
		"$push": bson.M{"likes": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.GroupPost
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err == nil {
		return p.Likes, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, ErrAlreadyLiked
}

// Unlike removes userID from the like set; unliking a post that was never
// liked fails with ErrNotLiked.
func (s *Store) Unlike(ctx context.Context, postID, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	filter := bson.M{"_id": postID, "likes": userID}
	update := bson.M{
		"$pull": bson.M{"likes": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.GroupPost
	err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err == nil {
		return p.Likes, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if _, err := s.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return nil, ErrNotLiked
}

// AddComment appends a comment and returns it as stored.
func (s *Store) AddComment(ctx context.Context, postID primitive.ObjectID, c models.Comment) (models.Comment, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	update := bson.M{
		"$push": bson.M{"comments": c},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": postID}, update)
	if err != nil {
		return models.Comment{}, err
	}
	if res.MatchedCount == 0 {
		return models.Comment{}, mongo.ErrNoDocuments
	}
	return c, nil
}

// RemoveComment pulls the comment with the given embedded ID.
func (s *Store) RemoveComment(ctx context.Context, postID primitive.ObjectID, commentID string) error {
	filter := bson.M{"_id": postID, "comments.id": commentID}
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, postID); err != nil {
			return err
		}
		return ErrNoSuchComment
	}
	return nil
}
