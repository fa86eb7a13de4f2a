package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"website/handler/helpers"
	mid "website/middleware"
	M "website/model/model"
	"website/rpc"
	"website/session"
	U "website/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const spotifyStateKey = "spotify_oauth_state"

// GetCurrentlyPlayingHandler - Track or episode playing on spotify, if any.
// Test command.
// curl -i http://localhost:8080/api/spotify
func GetCurrentlyPlayingHandler(router *rpc.Router) gin.HandlerFunc {
	return func(c *gin.Context) {
		callProcedure(c, router, "spotify.currently-playing", nil, http.StatusOK)
	}
}

// SpotifyLoginHandler - Redirects to the spotify authorization, keeping the
// oauth state on the session.
func SpotifyLoginHandler(router *rpc.Router, sessionStore session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logCtx := log.WithField("reqId", U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID))

		output, rpcErr := router.Call(requestContext(c), "spotify.auth-url", nil)
		if rpcErr != nil {
			helpers.RespondError(c, rpcErr)
			return
		}

		authURL := output.(*M.SpotifyAuthURLOutput).URL
		parsed, err := url.Parse(authURL)
		if err != nil || parsed.Query().Get("state") == "" {
			logCtx.WithError(err).Error("Spotify authorization url has no state.")
			helpers.RespondError(c, rpc.Internal(err))
			return
		}

		if err := sessionStore.SetValue(c, spotifyStateKey, parsed.Query().Get("state")); err != nil {
			logCtx.WithError(err).Error("Failed to set spotify state on session.")
			helpers.RespondError(c, rpc.Internal(err))
			return
		}
		c.Redirect(http.StatusTemporaryRedirect, authURL)
	}
}

// SpotifyCallbackHandler - Redirect target of the spotify authorization.
// Exchanges the 'code' query param for tokens once 'state' matches the one
// on the session.
func SpotifyCallbackHandler(router *rpc.Router, sessionStore session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		logCtx := log.WithField("reqId", U.GetScopeByKeyAsString(c, mid.SCOPE_REQ_ID))

		state := sessionStore.GetValueAsString(c, spotifyStateKey)
		if state == "" || state != c.Query("state") {
			logCtx.Info("Spotify callback with invalid state.")
			helpers.RespondError(c, rpc.BadRequest("Invalid oauth state",
				map[string]string{"state": "does not match the session"}))
			return
		}

		if err := sessionStore.DeleteValue(c, spotifyStateKey); err != nil {
			logCtx.WithError(err).Error("Failed to delete spotify state from session.")
			helpers.RespondError(c, rpc.Internal(err))
			return
		}

		input, _ := json.Marshal(map[string]string{"code": c.Query("code")})
		callProcedure(c, router, "spotify.callback", input, http.StatusOK)
	}
}
