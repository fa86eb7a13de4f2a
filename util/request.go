package util

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
)

// SetScope sets scope to the context with a key/value.
func SetScope(c *gin.Context, key string, value interface{}) {
	scopeValue, exists := c.Get("scopes")
	if !exists {
		// Initializes scope with the key and value.
		c.Set("scopes", map[string]interface{}{key: value})
		return
	}

	scopeValue.(map[string]interface{})[key] = value
}

// GetScopeByKey gets specific scope by key from scopes.
func GetScopeByKey(c *gin.Context, key string) interface{} {
	scopeValue, exists := c.Get("scopes")
	if exists {
		return scopeValue.(map[string]interface{})[key]
	}
	return nil
}

func GetScopeByKeyAsString(c *gin.Context, key string) string {
	iface := GetScopeByKey(c, key)
	if iface == nil {
		return ""
	}
	return iface.(string)
}

func GetScopeByKeyAsBool(c *gin.Context, key string) bool {
	iface := GetScopeByKey(c, key)
	if iface == nil {
		return false
	}
	return iface.(bool)
}

// IsPingdomBot - Check whether it is pingdom bot or not
func IsPingdomBot(userAgent string) bool {
	return strings.Contains(strings.ToLower(userAgent), "pingdom")
}

// IsLighthouse - Check whether it is lighthouse useragent or not.
func IsLighthouse(userAgent string) bool {
	return strings.Contains(strings.ToLower(userAgent), "lighthouse")
}

// IsBotUserAgent - Check request user agent is bot or not.
func IsBotUserAgent(userAgent string) bool {
	if userAgent == "" {
		return false
	}

	if IsPingdomBot(userAgent) || IsLighthouse(userAgent) {
		return true
	}

	return user_agent.New(userAgent).Bot()
}

// GetBearerToken returns the token on a "Bearer <token>" authorization
// header value, empty otherwise.
func GetBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

// GetClientIP prefers the first address on X-Forwarded-For, then
// X-Real-Ip, then the remote address.
func GetClientIP(forwardedFor, realIP, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return first
		}
	}

	if realIP = strings.TrimSpace(realIP); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
