// internal/domain/models/grouppost.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is one embedded comment on a group post. The ID is a UUID
// assigned at insert time; UserName/UserAvatar are snapshots of the
// commenter's directory entry when the comment was written.
type Comment struct {
	ID         string             `bson:"id" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"userId"`
	UserName   string             `bson:"user_name" json:"userName"`
	UserAvatar string             `bson:"user_avatar,omitempty" json:"userAvatar,omitempty"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}

// GroupPost is a recipe post scoped to a single group.
//
// IsApproved is decided once at creation from the group's approval policy
// and the author's role; afterwards only an explicit moderator approval
// flips it. Rejection deletes the post outright — there is no persisted
// rejected state.
type GroupPost struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	GroupID primitive.ObjectID `bson:"group_id" json:"groupId"`
	UserID  primitive.ObjectID `bson:"user_id" json:"userId"`

	Title        string   `bson:"title" json:"title"`
	Description  string   `bson:"description" json:"description"`
	Ingredients  []string `bson:"ingredients" json:"ingredients"`
	Instructions []string `bson:"instructions" json:"instructions"`
	Category     string   `bson:"category" json:"category"`
	MeatType     string   `bson:"meat_type" json:"meatType"`
	PrepTime     int      `bson:"prep_time" json:"prepTime"`
	Servings     int      `bson:"servings" json:"servings"`
	Image        string   `bson:"image,omitempty" json:"image,omitempty"`
	Video        string   `bson:"video,omitempty" json:"video,omitempty"`
	MediaType    string   `bson:"media_type,omitempty" json:"mediaType,omitempty"`

	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments []Comment            `bson:"comments" json:"comments"`

	IsApproved bool `bson:"is_approved" json:"isApproved"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// LikedBy reports whether userID is present in the post's like set.
func (p *GroupPost) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
