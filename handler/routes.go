package handler

import (
	"website/rpc"
	"website/services/presence"
	"website/session/store"

	"github.com/gin-gonic/gin"
)

const ROUTE_PREFIX_API = "/api"
const ROUTE_PREFIX_RPC = "/rpc"

// InitRoutes registers the rpc endpoints and the rest adapters. A nil
// presence service keeps the visitors routes failing with 500.
func InitRoutes(r *gin.Engine, router *rpc.Router, visitors *presence.Service) {
	r.GET("/healthz", HealthzHandler(router))

	r.GET(ROUTE_PREFIX_RPC, ListProceduresHandler(router))
	r.POST(ROUTE_PREFIX_RPC, JSONRPCHandler(router))
	r.POST(ROUTE_PREFIX_RPC+"/:procedure", ProcedureHandler(router))

	api := r.Group(ROUTE_PREFIX_API)
	InitCRUDRoutes(api.Group("/guestbook"), router, "guestbook")
	InitCRUDRoutes(api.Group("/todo-list"), router, "todo")

	api.GET("/spotify", GetCurrentlyPlayingHandler(router))

	sessionStore := store.GetSessionStore()
	spotifyAuth := api.Group("/spotify", sessionStore.Middleware())
	spotifyAuth.GET("/login", SpotifyLoginHandler(router, sessionStore))
	spotifyAuth.GET("/callback", SpotifyCallbackHandler(router, sessionStore))

	api.GET("/visitors", GetVisitorsHandler(visitors))
	api.POST("/visitors", RegisterVisitorHandler(visitors))
}
