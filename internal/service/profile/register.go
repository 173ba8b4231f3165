package profile

import (
	"github.com/labstack/echo/v4"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
)

// Registrar ties the profile service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the profile service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the profile routes to the public and protected groups.
func (r *Registrar) Register(public *echo.Group, protected *echo.Group) {
	service := NewProfileService(r.appCtx)

	public.GET("/profiles/:id", service.HandleGetByID)

	protected.POST("/profiles/:id/follow", service.HandleToggleFollow)
}
