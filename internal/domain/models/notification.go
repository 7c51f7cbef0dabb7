// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types written by this service.
const (
	NotifyGroupPostLike    = "group_post_like"
	NotifyGroupPostComment = "group_post_comment"
	NotifyGroupJoinRequest = "group_join_request"
	NotifyGroupJoinApprove = "group_join_approved"
)

// Notification is a write-only record handed to the notification sink.
// Delivery is someone else's problem; this service only records intent,
// and a failed write is logged and dropped.
type Notification struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`
	ActorID primitive.ObjectID `bson:"actor_id" json:"actorId"`
	Type    string             `bson:"type" json:"type"`
	GroupID primitive.ObjectID `bson:"group_id,omitempty" json:"groupId,omitempty"`
	PostID  primitive.ObjectID `bson:"post_id,omitempty" json:"postId,omitempty"`
	Message string             `bson:"message" json:"message"`

	IsRead    bool      `bson:"is_read" json:"isRead"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
