// internal/app/system/indexes/indexes.go

// Package indexes creates the service's MongoDB indexes at startup.
// Each ensure function is idempotent; problems are aggregated so startup
// can fail fast with everything that went wrong.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureAll is called at startup.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupPosts(ctx, db); err != nil {
		problems = append(problems, "group_posts: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("name_ci_1"),
		},
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("creator_id_1"),
		},
		{
			Keys:    bson.D{{Key: "members.user_id", Value: 1}},
			Options: options.Index().SetName("members_user_id_1"),
		},
	})
	return err
}

func ensureGroupPosts(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("group_posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Visibility queries filter by group and sort newest-first.
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("group_id_1_created_at_-1"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "is_approved", Value: 1}},
			Options: options.Index().SetName("group_id_1_is_approved_1"),
		},
	})
	return err
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("notifications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_id_1_created_at_-1"),
		},
	})
	return err
}
