package profile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliaalekseevofb/Twitter-clone/internal/middleware"
)

// HandleGetByID serves GET /api/profiles/:id.
func (s *Service) HandleGetByID(c echo.Context) error {
	viewerID := ""
	if sess, ok := middleware.SessionFrom(c); ok {
		viewerID = sess.UserID
	}

	p, err := s.GetByID(c.Request().Context(), viewerID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// HandleToggleFollow serves POST /api/profiles/:id/follow.
func (s *Service) HandleToggleFollow(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	added, err := s.ToggleFollow(c.Request().Context(), sess.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"addedFollow": added})
}
