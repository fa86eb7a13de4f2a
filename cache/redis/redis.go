package redis

import (
	"errors"
	"strconv"

	"website/cache"

	"github.com/gomodule/redigo/redis"
)

// Pool hands out connections. *redis.Pool satisfies it.
type Pool interface {
	Get() redis.Conn
}

type Cache struct {
	pool Pool
}

var ErrorEmptyValue = errors.New("empty cache key value")

func New(pool Pool) *Cache {
	return &Cache{pool: pool}
}

// SetIfNotExists sets the key only when it is absent and reports whether
// it was set.
func (c *Cache) SetIfNotExists(key *cache.Key, value string, expiryInSecs int) (bool, error) {
	if value == "" {
		return false, ErrorEmptyValue
	}

	cKey, err := key.Key()
	if err != nil {
		return false, err
	}

	redisConn := c.pool.Get()
	defer redisConn.Close()

	_, err = redis.String(redisConn.Do("SET", cKey, value, "NX", "EX", expiryInSecs))
	if err == redis.ErrNil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ZAddAndCount scores member in the sorted set, trims members scored below
// minScore and returns the remaining cardinality. The set expires after
// expiryInSecs without writes.
func (c *Cache) ZAddAndCount(key *cache.Key, member string, score, minScore int64,
	expiryInSecs int) (int64, error) {

	cKey, err := key.Key()
	if err != nil {
		return 0, err
	}

	redisConn := c.pool.Get()
	defer redisConn.Close()

	if _, err := redisConn.Do("ZADD", cKey, score, member); err != nil {
		return 0, err
	}
	if _, err := redisConn.Do("ZREMRANGEBYSCORE", cKey, "-inf", "("+strconv.FormatInt(minScore, 10)); err != nil {
		return 0, err
	}
	if _, err := redisConn.Do("EXPIRE", cKey, expiryInSecs); err != nil {
		return 0, err
	}
	return redis.Int64(redisConn.Do("ZCARD", cKey))
}

// ZCountSince returns the number of members scored at or above minScore.
func (c *Cache) ZCountSince(key *cache.Key, minScore int64) (int64, error) {
	cKey, err := key.Key()
	if err != nil {
		return 0, err
	}

	redisConn := c.pool.Get()
	defer redisConn.Close()

	return redis.Int64(redisConn.Do("ZCOUNT", cKey, minScore, "+inf"))
}

func (c *Cache) Ping() error {
	redisConn := c.pool.Get()
	defer redisConn.Close()

	_, err := redisConn.Do("PING")
	return err
}
