// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the directory record this service reads for display enrichment.
// Account management lives in a separate service; nothing here writes to
// the users collection.
type User struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	FullName string             `bson:"full_name" json:"fullName"`
	Avatar   string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio      string             `bson:"bio,omitempty" json:"bio,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// UnknownUserName is the placeholder used when a directory lookup fails
// during enrichment. A bad lookup never fails the surrounding read.
const UnknownUserName = "Unknown User"
