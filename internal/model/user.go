package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the `users` collection. Email and username are
// stored lower-cased and carry unique indexes (see database.EnsureIndexes).
// The password hash never leaves the repository layer; handlers build their
// own response types.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}
