package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliaalekseevofb/Twitter-clone/internal/config"
	"github.com/iliaalekseevofb/Twitter-clone/internal/middleware"
)

// StartHTTPServer boots an echo server and registers all provided services.
//
// Routes are mounted under /api in two groups: a public group where a
// session is optional, and a protected group where it is required.
func StartHTTPServer(cfg *config.Config, registrars ...Registrar) error {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	public := e.Group("/api", middleware.OptionalSession(cfg.Auth.JWTSecret))
	protected := e.Group("/api", middleware.RequireSession(cfg.Auth.JWTSecret))

	// register all services
	for _, r := range registrars {
		r.Register(public, protected)
	}

	addr := fmt.Sprintf("%s:%s", cfg.HTTP.Host, cfg.HTTP.Port)
	return e.Start(addr)
}
