package presence

import (
	"errors"
	"time"

	"website/cache"
	M "website/model/model"
	U "website/util"

	log "github.com/sirupsen/logrus"
)

const (
	ThrottleInSecs = 60
	WindowInSecs   = 30 * 60

	throttlePrefix = "visitors:throttle"
	presencePrefix = "visitors:presence"
)

var ErrUnavailable = errors.New("presence store not configured")

type Cache interface {
	SetIfNotExists(key *cache.Key, value string, expiryInSecs int) (bool, error)
	ZAddAndCount(key *cache.Key, member string, score, minScore int64, expiryInSecs int) (int64, error)
	ZCountSince(key *cache.Key, minScore int64) (int64, error)
}

// Service counts distinct visitors seen in the last WindowInSecs, by
// salted ip hash.
type Service struct {
	cache   Cache
	salt    string
	nowFunc func() time.Time
}

func New(cache Cache, salt string) *Service {
	return &Service{cache: cache, salt: salt, nowFunc: time.Now}
}

// SetNowFunc replaces the clock scoring presence.
func (s *Service) SetNowFunc(nowFunc func() time.Time) {
	s.nowFunc = nowFunc
}

func presenceKey() *cache.Key {
	return &cache.Key{Prefix: presencePrefix}
}

// Register records the visitor and returns the current count. Bots and
// visitors registered less than ThrottleInSecs ago are not written.
func (s *Service) Register(ip, userAgent string) (*M.VisitorCount, error) {
	if s == nil || s.cache == nil {
		return nil, ErrUnavailable
	}

	if ip == "" || U.IsBotUserAgent(userAgent) {
		return s.Count()
	}

	hash := U.HashWithSalt(ip, s.salt)
	logCtx := log.WithField("visitor", hash[:12])

	throttleKey, err := cache.NewKey(hash, throttlePrefix, "")
	if err != nil {
		return nil, err
	}
	allowed, err := s.cache.SetIfNotExists(throttleKey, "1", ThrottleInSecs)
	if err != nil {
		logCtx.WithError(err).Error("Failed to set visitor throttle.")
		return nil, err
	}
	if !allowed {
		return s.Count()
	}

	now := s.nowFunc().Unix()
	count, err := s.cache.ZAddAndCount(presenceKey(), hash, now, now-WindowInSecs, WindowInSecs)
	if err != nil {
		logCtx.WithError(err).Error("Failed to register visitor presence.")
		return nil, err
	}
	return &M.VisitorCount{Count: int(count)}, nil
}

// Count returns the visitors seen within the window.
func (s *Service) Count() (*M.VisitorCount, error) {
	if s == nil || s.cache == nil {
		return nil, ErrUnavailable
	}

	count, err := s.cache.ZCountSince(presenceKey(), s.nowFunc().Unix()-WindowInSecs)
	if err != nil {
		log.WithError(err).Error("Failed to count visitors.")
		return nil, err
	}
	return &M.VisitorCount{Count: int(count)}, nil
}
