package handler // handler implements the HTTP-facing service operations

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/blogverse/internal/model"
	"github.com/iliyamo/blogverse/internal/repository"
)

// UserStore is the slice of the user repository the handlers depend on.
// Declaring it here keeps handlers testable with in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, username, passwordHash string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmailOrUsername(ctx context.Context, identifier string) (model.User, error)
	SearchByUsername(ctx context.Context, substr string) ([]model.User, error)
	UsernamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error)
}

// PostStore is the slice of the post repository the handlers depend on.
type PostStore interface {
	Insert(ctx context.Context, p *model.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (model.Post, error)
	Find(ctx context.Context, f repository.PostFilter) ([]model.Post, error)
	FindByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.Post, error)
	Update(ctx context.Context, id primitive.ObjectID, patch repository.PostPatch) (model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error)
	CountByAuthorSince(ctx context.Context, authorID primitive.ObjectID, since time.Time) (int64, error)
	TagCountsByAuthor(ctx context.Context, authorID primitive.ObjectID) ([]model.TagCount, error)
}

// getUserID extracts the authenticated user's id placed in the context by
// the JWT middleware.
func getUserID(c echo.Context) (primitive.ObjectID, error) {
	if id, ok := c.Get("user_id").(primitive.ObjectID); ok {
		return id, nil
	}
	return primitive.NilObjectID, errors.New("no user_id in context")
}

// reqCtx derives a bounded context for a single store call chain.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// authorPart is the author shape attached to post responses: only the id
// and the username, never the credential fields.
type authorPart struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// postView is the response shape for a single post.
type postView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      []string   `json:"tags"`
	Author    authorPart `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func newPostView(p model.Post, username string) postView {
	return postView{
		ID:        p.ID.Hex(),
		Title:     p.Title,
		Content:   p.Content,
		Tags:      p.Tags,
		Author:    authorPart{ID: p.Author.Hex(), Username: username},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// postViews resolves author usernames for a batch of posts in one store
// round trip and converts them to response shapes.
func postViews(ctx context.Context, users UserStore, posts []model.Post) ([]postView, error) {
	seen := map[primitive.ObjectID]bool{}
	ids := make([]primitive.ObjectID, 0, len(posts))
	for _, p := range posts {
		if !seen[p.Author] {
			seen[p.Author] = true
			ids = append(ids, p.Author)
		}
	}
	names, err := users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]postView, 0, len(posts))
	for _, p := range posts {
		out = append(out, newPostView(p, names[p.Author]))
	}
	return out, nil
}
