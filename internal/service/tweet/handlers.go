package tweet

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliaalekseevofb/Twitter-clone/internal/middleware"
)

// CreateTweetRequest is the body of POST /api/tweets.
type CreateTweetRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleFeed serves GET /api/feed.
// Query params: onlyFollowing (bool), limit (int), cursor (opaque token).
func (s *Service) HandleFeed(c echo.Context) error {
	viewerID := ""
	if sess, ok := middleware.SessionFrom(c); ok {
		viewerID = sess.UserID
	}

	onlyFollowing := false
	if v := c.QueryParam("onlyFollowing"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "onlyFollowing must be a boolean")
		}
		onlyFollowing = b
	}

	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	page, err := s.InfiniteFeed(c.Request().Context(), viewerID, onlyFollowing, limit, cursorParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// HandleProfileFeed serves GET /api/profiles/:id/feed.
func (s *Service) HandleProfileFeed(c echo.Context) error {
	viewerID := ""
	if sess, ok := middleware.SessionFrom(c); ok {
		viewerID = sess.UserID
	}

	limit, err := limitParam(c)
	if err != nil {
		return err
	}

	page, err := s.InfiniteProfileFeed(c.Request().Context(), viewerID, c.Param("id"), limit, cursorParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// HandleLikeCount serves GET /api/tweets/:id/likes/count.
func (s *Service) HandleLikeCount(c echo.Context) error {
	tweetID := c.Param("id")

	count, err := s.LikeCount(c.Request().Context(), tweetID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"tweetId": tweetID, "likeCount": count})
}

// HandleCreate serves POST /api/tweets.
func (s *Service) HandleCreate(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req CreateTweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := s.Create(c.Request().Context(), sess.UserID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// HandleToggleLike serves POST /api/tweets/:id/like.
func (s *Service) HandleToggleLike(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	added, err := s.ToggleLike(c.Request().Context(), sess.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"addedLike": added})
}

func limitParam(c echo.Context) (int, error) {
	v := c.QueryParam("limit")
	if v == "" {
		return 0, nil // service applies the default
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}
	return n, nil
}

func cursorParam(c echo.Context) *string {
	if v := c.QueryParam("cursor"); v != "" {
		return &v
	}
	return nil
}
