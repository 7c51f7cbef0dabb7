// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists the Group aggregate. Membership and pending-request
// mutations are guarded single-document updates: the precondition lives in
// the filter, the write bumps the version counter, and a filter miss is
// classified by re-reading the document. Two racing writers cannot lose an
// update; one of them simply fails its precondition.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

var (
	ErrAlreadyMember    = errors.New("user is already a member of this group")
	ErrDuplicateRequest = errors.New("user already has a pending request for this group")
	ErrNoPendingRequest = errors.New("user has no pending request for this group")
	ErrNotMember        = errors.New("user is not a member of this group")
	ErrCreatorImmutable = errors.New("the group creator cannot be removed")
)

// Create inserts a new group. The creator is written as the first member
// with the admin role; version starts at 1.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.NameCI = text.Fold(g.Name)
	g.Members = []models.GroupMember{{
		UserID:   g.CreatorID,
		Role:     models.RoleAdmin,
		JoinedAt: now,
	}}
	g.PendingRequests = []models.JoinRequest{}
	g.Version = 1
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// visibleTo is the privacy clause shared by List and Search: public
// groups, plus private groups the viewer belongs to.
func visibleTo(viewerID primitive.ObjectID) bson.M {
	or := []bson.M{{"is_private": false}}
	if !viewerID.IsZero() {
		or = append(or,
			bson.M{"members.user_id": viewerID},
			bson.M{"creator_id": viewerID},
		)
	}
	return bson.M{"$or": or}
}

// List returns groups visible to viewerID, newest first. A zero viewer
// sees only public groups.
func (s *Store) List(ctx context.Context, viewerID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, visibleTo(viewerID), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Search matches the folded query as a substring of the folded group name,
// with the same privacy clause as List. When includePrivate is false the
// viewer's own private groups are filtered out too.
func (s *Store) Search(ctx context.Context, q string, viewerID primitive.ObjectID, includePrivate bool) ([]models.Group, error) {
	filter := bson.M{
		"name_ci": primitive.Regex{Pattern: regexp.QuoteMeta(text.Fold(q))},
	}
	if includePrivate {
		for k, v := range visibleTo(viewerID) {
			filter[k] = v
		}
	} else {
		filter["is_private"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	groups := []models.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// Update describes a partial metadata/settings update. Nil fields are
// left untouched.
type Update struct {
	Name             *string
	Description      *string
	Category         *string
	Rules            *string
	Image            *string
	IsPrivate        *bool
	AllowMemberPosts *bool
	RequireApproval  *bool
	AllowInvites     *bool
}

// ApplyUpdate writes the provided fields and returns the updated group.
// Making a group public forcibly clears require_approval in the same
// write: a public group cannot require approval. The legacy flat flags are
// unset whenever their settings counterpart is written, so old documents
// converge on the settings object.
func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Group, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if u.Name != nil {
		set["name"] = *u.Name
		set["name_ci"] = text.Fold(*u.Name)
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Rules != nil {
		set["rules"] = *u.Rules
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.IsPrivate != nil {
		set["is_private"] = *u.IsPrivate
		if !*u.IsPrivate {
			// Public groups never require approval, even if the same
			// request tried to turn it on.
			u.RequireApproval = boolPtr(false)
		}
	}
	if u.AllowMemberPosts != nil {
		set["settings.allow_member_posts"] = *u.AllowMemberPosts
		unset["allow_member_posts"] = ""
	}
	if u.RequireApproval != nil {
		set["settings.require_approval"] = *u.RequireApproval
		unset["require_approval"] = ""
	}
	if u.AllowInvites != nil {
		set["settings.allow_invites"] = *u.AllowInvites
	}

	update := bson.M{"$set": set, "$inc": bson.M{"version": 1}}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var g models.Group
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func boolPtr(b bool) *bool { return &b }

// Delete removes a group document. Post cascade is the caller's job and
// runs first, so a crash between the two leaves orphan-free posts rather
// than orphaned ones.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// AddMember inserts userID into the member list with the given role.
// Precondition (enforced in the filter): not already a member, no pending
// request.
func (s *Store) AddMember(ctx context.Context, groupID, userID primitive.ObjectID, role string) error {
	filter := bson.M{
		"_id":                      groupID,
		"members.user_id":          bson.M{"$ne": userID},
		"pending_requests.user_id": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"members": models.GroupMember{
			UserID:   userID,
			Role:     role,
			JoinedAt: time.Now().UTC(),
		}},
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyJoinMiss(ctx, groupID, userID)
	}
	return nil
}

// AddPendingRequest queues userID for approval. Same precondition as
// AddMember.
func (s *Store) AddPendingRequest(ctx context.Context, groupID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                      groupID,
		"members.user_id":          bson.M{"$ne": userID},
		"pending_requests.user_id": bson.M{"$ne": userID},
	}
	update := bson.M{
		"$push": bson.M{"pending_requests": models.JoinRequest{
			UserID:      userID,
			RequestedAt: time.Now().UTC(),
		}},
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.classifyJoinMiss(ctx, groupID, userID)
	}
	return nil
}

// RemovePendingRequest cancels or rejects a queued request.
func (s *Store) RemovePendingRequest(ctx context.Context, groupID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                      groupID,
		"pending_requests.user_id": userID,
	}
	update := bson.M{
		"$pull": bson.M{"pending_requests": bson.M{"user_id": userID}},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, groupID); err != nil {
			return err
		}
		return ErrNoPendingRequest
	}
	return nil
}

// ApproveRequest moves userID from the pending queue into the member list
// in one write, so membership and pending state can never coexist.
func (s *Store) ApproveRequest(ctx context.Context, groupID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":                      groupID,
		"pending_requests.user_id": userID,
		"members.user_id":          bson.M{"$ne": userID},
	}
	update := bson.M{
		"$pull": bson.M{"pending_requests": bson.M{"user_id": userID}},
		"$push": bson.M{"members": models.GroupMember{
			UserID:   userID,
			Role:     models.RoleMember,
			JoinedAt: time.Now().UTC(),
		}},
		"$inc": bson.M{"version": 1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetByID(ctx, groupID); err != nil {
			return err
		}
		return ErrNoPendingRequest
	}
	return nil
}

// RemoveMember pulls userID from the member list. The filter refuses to
// match the creator, making creator removal impossible at the store layer
// regardless of what the handler checked.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	filter := bson.M{
		"_id":             groupID,
		"members.user_id": userID,
		"creator_id":      bson.M{"$ne": userID},
	}
	update := bson.M{
		"$pull": bson.M{"members": bson.M{"user_id": userID}},
		"$inc":  bson.M{"version": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	res, err := s.c.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		g, err := s.GetByID(ctx, groupID)
		if err != nil {
			return err
		}
		if g.CreatorID == userID {
			return ErrCreatorImmutable
		}
		return ErrNotMember
	}
	return nil
}

// classifyJoinMiss turns a join-precondition filter miss into the precise
// conflict the caller reports.
func (s *Store) classifyJoinMiss(ctx context.Context, groupID, userID primitive.ObjectID) error {
	g, err := s.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	for _, m := range g.Members {
		if m.UserID == userID {
			return ErrAlreadyMember
		}
	}
	for _, r := range g.PendingRequests {
		if r.UserID == userID {
			return ErrDuplicateRequest
		}
	}
	// The precondition held on re-read: a concurrent writer won the race
	// between our update and this read. Report it as a conflict; the
	// client retries.
	return ErrDuplicateRequest
}
