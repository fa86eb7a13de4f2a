package store

import (
	"sync"

	C "website/config"
	"website/session"
	cookieStore "website/session/store/cookie"
	U "website/util"

	log "github.com/sirupsen/logrus"
)

// Oauth round trips are expected to complete within this window.
const SessionMaxAgeInSecs = 10 * 60

var sessionStore session.Session
var sessionStoreOnce sync.Once

// GetSessionStore returns the cookie session store signed with
// SESSION_SECRET. Without one, a per process secret is used and sessions do
// not survive restarts.
func GetSessionStore() session.Session {
	sessionStoreOnce.Do(func() {
		secret := ""
		if config := C.GetConfig(); config != nil {
			secret = config.Credentials.SessionSecret
		}
		if secret == "" {
			log.Warn("Session secret not configured. Using a per process secret.")
			secret = U.GetUUID() + U.GetUUID()
		}
		sessionStore = cookieStore.New(secret, SessionMaxAgeInSecs)
	})
	return sessionStore
}
