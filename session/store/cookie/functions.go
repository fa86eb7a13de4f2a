package cookie

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "website_session"

// Cookie keeps the session signed on the client.
type Cookie struct {
	secret       []byte
	maxAgeInSecs int
}

func New(secret string, maxAgeInSecs int) *Cookie {
	return &Cookie{secret: []byte(secret), maxAgeInSecs: maxAgeInSecs}
}

func (c *Cookie) Middleware() gin.HandlerFunc {
	store := cookie.NewStore(c.secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   c.maxAgeInSecs,
		HttpOnly: true,
	})
	return sessions.Sessions(sessionName, store)
}

func (cookie *Cookie) GetValueAsString(c *gin.Context, key string) string {
	session := sessions.Default(c)
	v := session.Get(key)
	if v == nil {
		return ""
	}

	value, _ := v.(string)
	return value
}

func (cookie *Cookie) SetValue(c *gin.Context, key string, value string) error {
	session := sessions.Default(c)
	session.Set(key, value)
	return session.Save()
}

func (cookie *Cookie) DeleteValue(c *gin.Context, key string) error {
	session := sessions.Default(c)
	session.Delete(key)
	return session.Save()
}
