package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/blogverse/internal/model"
)

// PostFilter narrows a post listing. Zero values mean "no constraint"; the
// individual constraints compose with logical AND. AuthorIDs is the already
// resolved set of matching author ids — when the caller resolved an author
// query to zero users it should skip the listing entirely and return an
// empty result instead.
type PostFilter struct {
	AuthorIDs []primitive.ObjectID
	Tag       string
	Title     string
}

// PostPatch is a partial update: nil fields keep their stored value.
type PostPatch struct {
	Title   *string
	Content *string
	Tags    []string
}

// PostRepo wraps the `posts` collection.
type PostRepo struct {
	col *mongo.Collection
}

func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{col: db.Collection("posts")}
}

// Insert stores a new post, assigning its id and timestamps.
func (r *PostRepo) Insert(ctx context.Context, p *model.Post) error {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindByID fetches a single post.
func (r *PostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (model.Post, error) {
	var p model.Post
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

// Find returns the posts matching the filter, newest-created first. Tag and
// title constraints are case-insensitive substring matches.
func (r *PostRepo) Find(ctx context.Context, f PostFilter) ([]model.Post, error) {
	filter := bson.M{}
	if len(f.AuthorIDs) > 0 {
		filter["author"] = bson.M{"$in": f.AuthorIDs}
	}
	if f.Tag != "" {
		filter["tags"] = bson.M{"$regex": regexp.QuoteMeta(f.Tag), "$options": "i"}
	}
	if f.Title != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Title), "$options": "i"}
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByAuthor returns every post whose author is exactly the given id, in
// whatever order the store yields them.
func (r *PostRepo) FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	cur, err := r.col.Find(ctx, bson.M{"author": authorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Update applies the non-nil patch fields to a post and refreshes its
// updated_at timestamp. The updated document is returned; ErrNotFound is
// returned when the post no longer exists.
func (r *PostRepo) Update(ctx context.Context, id primitive.ObjectID, patch PostPatch) (model.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p model.Post
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Post{}, ErrNotFound
	}
	return p, err
}

// Delete removes a post permanently.
func (r *PostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByAuthor returns the total number of posts by one author.
func (r *PostRepo) CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"author": authorID})
}

// CountByAuthorSince returns the number of posts by one author created at or
// after the given instant.
func (r *PostRepo) CountByAuthorSince(ctx context.Context, authorID primitive.ObjectID, since time.Time) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{
		"author":     authorID,
		"created_at": bson.M{"$gte": since},
	})
}

// TagCountsByAuthor computes the author's tag frequency breakdown: each post
// contributes one count to every tag it carries. Implemented as an
// aggregation pipeline that unwinds the tags array and groups by tag value.
func (r *PostRepo) TagCountsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"author": authorID}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$project", Value: bson.M{"_id": 0, "tag": "$_id", "count": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var counts []model.TagCount
	if err := cur.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
