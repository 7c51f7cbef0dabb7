// internal/app/store/notifications/dispatcher.go

// Package notifications records notification intents for the delivery
// pipeline owned by another service. Dispatch is fire-and-forget: call
// sites log failures and move on, and no primary operation ever fails
// because a notification could not be written.
package notifications

import (
	"context"
	"time"

	"github.com/platefull/platefull/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Dispatcher is the best-effort side channel the group handlers call.
type Dispatcher interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Store writes notifications to the notifications collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("notifications")}
}

func (s *Store) Notify(ctx context.Context, n models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, n)
	return err
}

// Dispatch invokes d.Notify and swallows the error, logging it at warn.
// Handlers call this instead of Notify so the best-effort contract is
// uniform across call sites.
func Dispatch(ctx context.Context, d Dispatcher, log *zap.Logger, n models.Notification) {
	if d == nil {
		return
	}
	if err := d.Notify(ctx, n); err != nil && log != nil {
		log.Warn("notification dispatch failed",
			zap.String("type", n.Type),
			zap.String("recipient", n.UserID.Hex()),
			zap.Error(err))
	}
}

// Nop discards every notification. Used in tests and when the
// notifications collection is not configured.
type Nop struct{}

func (Nop) Notify(context.Context, models.Notification) error { return nil }
