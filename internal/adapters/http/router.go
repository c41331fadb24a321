// Package http wires the REST API and the WebSocket upgrade endpoint.
package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chatbees/server/internal/adapters/ws"
	"github.com/chatbees/server/internal/auth"
	"github.com/chatbees/server/internal/config"
	"github.com/chatbees/server/internal/store"
)

func SetupRouter(ctx context.Context, cfg *config.Config, st *store.Store, wsCtl *ws.Controller) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	cookies := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ChatBeesSession", cookies))

	r.GET("/", func(c *gin.Context) {
		c.String(200, "server is live")
	})

	api := &API{Store: st, JWT: auth.New(cfg.Secret), TokenTTL: cfg.TokenTTL}

	log.Info().Str("module", "adapters.http").Msg("router setup")

	g := r.Group("/api")
	g.POST("/register", api.Register)
	g.POST("/login", api.Login)

	authed := g.Group("", api.RequireUser)
	authed.GET("/me", api.Me)
	authed.POST("/rooms", api.ResolveRoom)
	authed.POST("/messages", api.AppendMessage)
	authed.GET("/rooms/:id/messages", api.RoomHistory)

	r.GET("/ws", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Msg("ws endpoint hit")
		wsCtl.Handle(ctx, c)
	})

	return r
}
