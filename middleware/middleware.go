package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	C "website/config"
	"website/handler/helpers"
	"website/rpc"
	U "website/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// scope constants.
const SCOPE_REQ_ID = "requestId"
const SCOPE_AUTHENTICATED = "authenticated"

const HEADER_REQUEST_ID = "X-Request-Id"

var developmentOrigins = []string{"http://localhost:3000", "http://localhost:4321", "http://localhost:8080"}

// RequestIdGenerator - Reuses a well formed incoming request id or
// generates one, sets it on scope and on the response.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqId := c.Request.Header.Get(HEADER_REQUEST_ID)
		if reqId == "" || len(reqId) > 64 {
			reqId = U.GetRequestID()
		}

		U.SetScope(c, SCOPE_REQ_ID, reqId)
		c.Writer.Header().Set(HEADER_REQUEST_ID, reqId)
		c.Next()
	}
}

// Logger - Access log, one entry per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logCtx := log.WithFields(log.Fields{
			"reqId":      U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(startTime).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			logCtx = logCtx.WithField("errors", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logCtx.Error("Request failed.")
			return
		}
		logCtx.Info("Request served.")
	}
}

// Recovery - Converts a panic on any handler into a generic 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(log.Fields{
					"reqId": U.GetScopeByKeyAsString(c, SCOPE_REQ_ID),
					"path":  c.Request.URL.Path,
					"panic": r,
				}).Error("Recovered from panic.")

				helpers.RespondError(c, rpc.Internal(nil))
			}
		}()

		c.Next()
	}
}

// CustomCors - Allows the configured origins, localhost origins on
// development and every origin when none are configured.
func CustomCors(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AddAllowHeaders("Authorization", HEADER_REQUEST_ID)
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.ExposeHeaders = []string{HEADER_REQUEST_ID}

	origins := append([]string{}, allowedOrigins...)
	if C.IsDevelopment() {
		origins = append(origins, developmentOrigins...)
	}

	if len(origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}

	return cors.New(corsConfig)
}

// SetAuthScope - Marks the request authenticated when the bearer token on
// 'Authorization' header matches token. Never aborts, procedures decide.
func SetAuthScope(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := U.GetBearerToken(c.Request.Header.Get("Authorization"))
		authenticated := token != "" && bearer != "" &&
			subtle.ConstantTimeCompare([]byte(bearer), []byte(token)) == 1
		U.SetScope(c, SCOPE_AUTHENTICATED, authenticated)

		c.Next()
	}
}

// AddSecurityHeaders - Sets headers asking browsers not to sniff or frame
// api responses.
func AddSecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
