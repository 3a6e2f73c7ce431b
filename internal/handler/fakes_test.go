package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/blogverse/internal/model"
	"github.com/iliyamo/blogverse/internal/repository"
)

// In-memory store fakes mirroring the repository semantics closely enough
// for handler tests: case-insensitive substring filters, newest-first
// listing order and partial updates.

type fakeUserStore struct {
	users []model.User
}

func (f *fakeUserStore) add(email, username, passwordHash string) model.User {
	u := model.User{
		ID:           primitive.NewObjectID(),
		Email:        strings.ToLower(email),
		Username:     strings.ToLower(username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	f.users = append(f.users, u)
	return u
}

func (f *fakeUserStore) Create(_ context.Context, email, username, passwordHash string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range f.users {
		if u.Email == email {
			return model.User{}, repository.ErrEmailExists
		}
		if u.Username == username {
			return model.User{}, repository.ErrUsernameExists
		}
	}
	return f.add(email, username, passwordHash), nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) FindByEmailOrUsername(_ context.Context, identifier string) (model.User, error) {
	ident := strings.ToLower(strings.TrimSpace(identifier))
	for _, u := range f.users {
		if u.Email == ident || u.Username == ident {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUserStore) SearchByUsername(_ context.Context, substr string) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if strings.Contains(u.Username, strings.ToLower(substr)) {
			out = append(out, model.User{ID: u.ID, Username: u.Username})
		}
	}
	return out, nil
}

func (f *fakeUserStore) UsernamesByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	for _, id := range ids {
		for _, u := range f.users {
			if u.ID == id {
				out[id] = u.Username
			}
		}
	}
	return out, nil
}

type fakePostStore struct {
	posts []model.Post
}

func (f *fakePostStore) add(author primitive.ObjectID, title, content string, tags []string, createdAt time.Time) model.Post {
	p := model.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Content:   content,
		Tags:      tags,
		Author:    author,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.posts = append(f.posts, p)
	return p
}

func (f *fakePostStore) Insert(_ context.Context, p *model.Post) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakePostStore) FindByID(_ context.Context, id primitive.ObjectID) (model.Post, error) {
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Post{}, repository.ErrNotFound
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (f *fakePostStore) Find(_ context.Context, flt repository.PostFilter) ([]model.Post, error) {
	authorSet := map[primitive.ObjectID]bool{}
	for _, id := range flt.AuthorIDs {
		authorSet[id] = true
	}
	out := []model.Post{}
	for _, p := range f.posts {
		if len(flt.AuthorIDs) > 0 && !authorSet[p.Author] {
			continue
		}
		if flt.Tag != "" {
			found := false
			for _, t := range p.Tags {
				if containsFold(t, flt.Tag) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if flt.Title != "" && !containsFold(p.Title, flt.Title) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePostStore) FindByAuthor(_ context.Context, authorID primitive.ObjectID) ([]model.Post, error) {
	out := []model.Post{}
	for _, p := range f.posts {
		if p.Author == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePostStore) Update(_ context.Context, id primitive.ObjectID, patch repository.PostPatch) (model.Post, error) {
	for i, p := range f.posts {
		if p.ID != id {
			continue
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Tags != nil {
			p.Tags = patch.Tags
		}
		p.UpdatedAt = time.Now().UTC()
		f.posts[i] = p
		return p, nil
	}
	return model.Post{}, repository.ErrNotFound
}

func (f *fakePostStore) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakePostStore) CountByAuthor(_ context.Context, authorID primitive.ObjectID) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.Author == authorID {
			n++
		}
	}
	return n, nil
}

func (f *fakePostStore) CountByAuthorSince(_ context.Context, authorID primitive.ObjectID, since time.Time) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.Author == authorID && !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakePostStore) TagCountsByAuthor(_ context.Context, authorID primitive.ObjectID) ([]model.TagCount, error) {
	counts := map[string]int64{}
	for _, p := range f.posts {
		if p.Author != authorID {
			continue
		}
		for _, t := range p.Tags {
			counts[t]++
		}
	}
	out := make([]model.TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, model.TagCount{Tag: tag, Count: n})
	}
	return out, nil
}
