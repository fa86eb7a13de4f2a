package session

import "github.com/gin-gonic/gin"

// Session keeps short lived values, i.e oauth state, between requests of
// one browser.
type Session interface {
	Middleware() gin.HandlerFunc
	GetValueAsString(c *gin.Context, key string) string
	SetValue(c *gin.Context, key string, value string) error
	DeleteValue(c *gin.Context, key string) error
}
