package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a document in the `posts` collection. Author is a weak reference
// to users._id: posts are never cascaded when a user record changes.
// Invariant: Tags always holds at least one non-empty string.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Tags      []string           `bson:"tags" json:"tags"`
	Author    primitive.ObjectID `bson:"author" json:"author_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// TagCount is one row of the per-user tag frequency breakdown produced by
// the analytics aggregation.
type TagCount struct {
	Tag   string `bson:"tag" json:"tag"`
	Count int64  `bson:"count" json:"count"`
}
