package tweet

import (
	"github.com/labstack/echo/v4"

	"github.com/iliaalekseevofb/Twitter-clone/internal/app"
)

// Registrar ties the tweet service into the HTTP server
type Registrar struct {
	appCtx *app.AppContext
}

// NewRegistrar creates a new Registrar for the tweet service
func NewRegistrar(appCtx *app.AppContext) *Registrar {
	return &Registrar{appCtx: appCtx}
}

// Register attaches the tweet routes to the public and protected groups.
func (r *Registrar) Register(public *echo.Group, protected *echo.Group) {
	service := NewTweetService(r.appCtx)

	public.GET("/feed", service.HandleFeed)
	public.GET("/profiles/:id/feed", service.HandleProfileFeed)
	public.GET("/tweets/:id/likes/count", service.HandleLikeCount)

	protected.POST("/tweets", service.HandleCreate)
	protected.POST("/tweets/:id/like", service.HandleToggleLike)
}
