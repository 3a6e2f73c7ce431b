package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/blogverse/internal/model"
)

// UserRepo wraps the `users` collection.
type UserRepo struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{col: db.Collection("users")}
}

// Create inserts a user and returns the stored document. Email and username
// are normalized to lower case before insert. A duplicate-key rejection from
// the unique indexes is translated to ErrEmailExists or ErrUsernameExists.
func (r *UserRepo) Create(ctx context.Context, email, username, passwordHash string) (model.User, error) {
	now := time.Now().UTC()
	u := model.User{
		ID:           primitive.NewObjectID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "username") {
				return model.User{}, ErrUsernameExists
			}
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	return u, nil
}

// FindByEmail fetches a user by normalized email.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

// FindByUsername fetches a user by normalized username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findOne(ctx, bson.M{"username": strings.ToLower(strings.TrimSpace(username))})
}

// FindByEmailOrUsername fetches the user whose email or username equals the
// lower-cased identifier. Used by login, which accepts either.
func (r *UserRepo) FindByEmailOrUsername(ctx context.Context, identifier string) (model.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": ident},
		bson.M{"username": ident},
	}})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (model.User, error) {
	var u model.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// SearchByUsername returns the users whose username contains the given
// substring, case-insensitively. Only id and username are projected. An
// empty result is not an error; post listing turns it into an empty page.
func (r *UserRepo) SearchByUsername(ctx context.Context, substr string) ([]model.User, error) {
	filter := bson.M{"username": bson.M{
		"$regex":   regexp.QuoteMeta(substr),
		"$options": "i",
	}}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UsernamesByIDs resolves a set of user ids to their usernames in one query.
// Missing ids are simply absent from the result map.
func (r *UserRepo) UsernamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "username": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []model.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u.Username
	}
	return out, nil
}
