package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	U "website/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, r *gin.Engine, rb *U.RequestBuilder) *httptest.ResponseRecorder {
	req, err := rb.Build()
	require.Nil(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetAuthScope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(token string) *gin.Engine {
		r := gin.New()
		r.Use(SetAuthScope(token))
		r.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"authenticated": U.GetScopeByKeyAsBool(c, SCOPE_AUTHENTICATED)})
		})
		return r
	}

	r := newEngine("secret")
	w := serve(t, r, U.NewRequestBuilder(http.MethodGet, "/").WithHeader("Authorization", "Bearer secret"))
	assert.JSONEq(t, `{"authenticated": true}`, w.Body.String())

	w = serve(t, r, U.NewRequestBuilder(http.MethodGet, "/").WithHeader("Authorization", "Bearer other"))
	assert.JSONEq(t, `{"authenticated": false}`, w.Body.String())

	w = serve(t, r, U.NewRequestBuilder(http.MethodGet, "/"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated": false}`, w.Body.String())

	// An unset token never authenticates.
	w = serve(t, newEngine(""), U.NewRequestBuilder(http.MethodGet, "/").WithHeader("Authorization", "Bearer "))
	assert.JSONEq(t, `{"authenticated": false}`, w.Body.String())
}

func TestRequestIdGenerator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIdGenerator())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, U.GetScopeByKeyAsString(c, SCOPE_REQ_ID))
	})

	w := serve(t, r, U.NewRequestBuilder(http.MethodGet, "/"))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HEADER_REQUEST_ID))

	w = serve(t, r, U.NewRequestBuilder(http.MethodGet, "/").WithHeader(HEADER_REQUEST_ID, "abc"))
	assert.Equal(t, "abc", w.Body.String())
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIdGenerator())
	r.Use(Logger())
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(t, r, U.NewRequestBuilder(http.MethodGet, "/"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "INTERNAL", "message": "Internal server error"}`, w.Body.String())
}

func TestCustomCors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CustomCors([]string{"https://example.dev"}))
	r.Use(AddSecurityHeaders())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(t, r, U.NewRequestBuilder(http.MethodGet, "/").WithHeader("Origin", "https://example.dev"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.dev", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = serve(t, r, U.NewRequestBuilder(http.MethodGet, "/").WithHeader("Origin", "https://evil.example"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
