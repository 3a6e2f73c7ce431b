package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// recentWindow is the rolling window a post must fall into to count as
// recent: the trailing 168 hours from the request time, not a calendar-day
// boundary.
const recentWindow = 7 * 24 * time.Hour

// AnalyticsHandler serves the per-user dashboard numbers.
type AnalyticsHandler struct {
	Posts PostStore
}

func NewAnalyticsHandler(posts PostStore) *AnalyticsHandler {
	return &AnalyticsHandler{Posts: posts}
}

type dashboardResp struct {
	TotalPosts       int64            `json:"total_posts"`
	TotalRecentPosts int64            `json:"total_recent_posts"`
	PostsByTag       map[string]int64 `json:"posts_by_tag"`
}

// Dashboard handles GET /analytics/dashboard. It derives everything from
// the content store at request time; nothing is precomputed. A post with
// three tags contributes one count to each of the three tag buckets.
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	total, err := h.Posts.CountByAuthor(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	recent, err := h.Posts.CountByAuthorSince(ctx, uid, time.Now().UTC().Add(-recentWindow))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Posts.TagCountsByAuthor(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	byTag := make(map[string]int64, len(counts))
	for _, tc := range counts {
		byTag[tc.Tag] = tc.Count
	}
	return c.JSON(http.StatusOK, dashboardResp{
		TotalPosts:       total,
		TotalRecentPosts: recent,
		PostsByTag:       byTag,
	})
}
