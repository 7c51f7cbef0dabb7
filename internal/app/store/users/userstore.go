// internal/app/store/users/userstore.go

// Package userstore reads the user directory for display enrichment.
// Lookups are best-effort: a missing or unreadable user degrades to the
// "Unknown User" placeholder and never fails the surrounding read.
package userstore

import (
	"context"

	"github.com/platefull/platefull/internal/app/system/timeouts"
	"github.com/platefull/platefull/internal/domain/models"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// DisplayInfo is the slice of a user record other responses embed.
type DisplayInfo struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Bio    string `json:"bio,omitempty"`
}

// Store reads users, optionally through a redis cache.
type Store struct {
	users *mongo.Collection
	cache *cache
	log   *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{
		users: db.Collection("users"),
		log:   logger,
	}
}

// WithCache enables the redis read-through cache. A nil client is a no-op,
// so callers can pass whatever bootstrap produced.
func (s *Store) WithCache(rdb *redis.Client) *Store {
	if rdb != nil {
		s.cache = newCache(rdb)
	}
	return s
}

func unknown(id primitive.ObjectID) DisplayInfo {
	return DisplayInfo{UserID: id.Hex(), Name: models.UnknownUserName}
}

// GetByID loads a full user record.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	proj := options.FindOne().SetProjection(bson.M{
		"_id":       1,
		"full_name": 1,
		"avatar":    1,
		"bio":       1,
	})
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}, proj).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Display resolves one user's display info, falling back to the
// placeholder on any failure.
func (s *Store) Display(ctx context.Context, id primitive.ObjectID) DisplayInfo {
	m := s.DisplayMany(ctx, []primitive.ObjectID{id})
	if d, ok := m[id]; ok {
		return d
	}
	return unknown(id)
}

// DisplayMany resolves display info for a set of user IDs in one query,
// consulting the cache first. Every requested ID is present in the result;
// unresolvable ones carry the placeholder.
func (s *Store) DisplayMany(ctx context.Context, ids []primitive.ObjectID) map[primitive.ObjectID]DisplayInfo {
	out := make(map[primitive.ObjectID]DisplayInfo, len(ids))
	var misses []primitive.ObjectID

	for _, id := range dedupe(ids) {
		if s.cache != nil {
			if d, ok := s.cache.get(ctx, id); ok {
				out[id] = d
				continue
			}
		}
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": misses}})
	if err != nil {
		s.log.Warn("user directory lookup failed", zap.Error(err))
		fillUnknown(out, misses)
		return out
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			s.log.Warn("user directory decode failed", zap.Error(err))
			continue
		}
		d := DisplayInfo{UserID: u.ID.Hex(), Name: u.FullName, Avatar: u.Avatar, Bio: u.Bio}
		if d.Name == "" {
			d.Name = models.UnknownUserName
		}
		out[u.ID] = d
		if s.cache != nil {
			s.cache.put(ctx, u.ID, d)
		}
	}

	fillUnknown(out, misses)
	return out
}

func fillUnknown(out map[primitive.ObjectID]DisplayInfo, ids []primitive.ObjectID) {
	for _, id := range ids {
		if _, ok := out[id]; !ok {
			out[id] = unknown(id)
		}
	}
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
