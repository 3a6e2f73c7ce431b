package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/iliyamo/blogverse/internal/model"
	"github.com/iliyamo/blogverse/internal/repository"
)

// PostHandler bundles the stores the post endpoints operate on. The user
// store is needed to resolve author filters and attach usernames to
// responses.
type PostHandler struct {
	Users UserStore
	Posts PostStore
}

func NewPostHandler(users UserStore, posts PostStore) *PostHandler {
	return &PostHandler{Users: users, Posts: posts}
}

type createPostReq struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

type updatePostReq struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Tags    []string `json:"tags"`
}

// validTags reports whether tags is a non-empty list of non-empty strings.
func validTags(tags []string) bool {
	if len(tags) == 0 {
		return false
	}
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			return false
		}
	}
	return true
}

// Create handles POST /post/createPost. The author is always the
// authenticated requester.
func (h *PostHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" || !validTags(req.Tags) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, content and a non-empty tag list are required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p := model.Post{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
		Author:  uid,
	}
	if err := h.Posts.Insert(ctx, &p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create post failed"})
	}

	username, _ := c.Get("username").(string)
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "post created successfully",
		"post":    newPostView(p, username),
	})
}

// List handles GET /post/allPosts?author&tag&search. All three filters are
// case-insensitive substring matches and compose with logical AND. An
// author query that matches no usernames short-circuits to an empty list
// rather than an error. Results come back newest-created first.
func (h *PostHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	var filter repository.PostFilter
	if author := strings.TrimSpace(c.QueryParam("author")); author != "" {
		matches, err := h.Users.SearchByUsername(ctx, author)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if len(matches) == 0 {
			return c.JSON(http.StatusOK, []postView{})
		}
		for _, u := range matches {
			filter.AuthorIDs = append(filter.AuthorIDs, u.ID)
		}
	}
	filter.Tag = strings.TrimSpace(c.QueryParam("tag"))
	filter.Title = strings.TrimSpace(c.QueryParam("search"))

	posts, err := h.Posts.Find(ctx, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views, err := postViews(ctx, h.Users, posts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, views)
}

// ListByAuthor handles GET /post/all-authors-post/:authorId and returns
// every post by exactly that author id, empty list included.
func (h *PostHandler) ListByAuthor(c echo.Context) error {
	authorID, err := primitive.ObjectIDFromHex(c.Param("authorId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid author id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	posts, err := h.Posts.FindByAuthor(ctx, authorID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views, err := postViews(ctx, h.Users, posts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, views)
}

// GetByID handles GET /post/singlePost/:postId.
func (h *PostHandler) GetByID(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	names, err := h.Users.UsernamesByIDs(ctx, []primitive.ObjectID{p.Author})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, newPostView(p, names[p.Author]))
}

// Update handles PATCH /post/updatePost/:postId. Only the author may
// update, and only the provided fields change; omitted fields keep their
// stored values.
func (h *PostHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}
	var req updatePostReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
	}
	if req.Content != nil && strings.TrimSpace(*req.Content) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "content must not be empty"})
	}
	if req.Tags != nil && !validTags(req.Tags) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tags must be a non-empty list of non-empty strings"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if p.Author != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the author can edit this post"})
	}

	updated, err := h.Posts.Update(ctx, id, repository.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update post failed"})
	}

	username, _ := c.Get("username").(string)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "post updated successfully",
		"post":    newPostView(updated, username),
	})
}

// Delete handles DELETE /post/deletePost/:postId. Author-only, permanent.
func (h *PostHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := primitive.ObjectIDFromHex(c.Param("postId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid post id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if p.Author != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "only the author can delete this post"})
	}

	if err := h.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "post not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete post failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "post deleted successfully"})
}
