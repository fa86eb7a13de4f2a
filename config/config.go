package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evalphobia/logrus_sentry"
	"github.com/gomodule/redigo/redis"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"
)

const DEVELOPMENT = "development"
const STAGING = "staging"
const PRODUCTION = "production"

const (
	DatastoreTypePostgres = "postgres"
	DatastoreTypeMemory   = "memory"
)

type DBConf struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Name     string `json:"name"`
	Password string `json:"password"`
	// URL takes precedence over the individual fields when set.
	URL string `json:"url"`
}

var PostgresDefaultDBParams = DBConf{
	Host:     "localhost",
	Port:     5432,
	User:     "website",
	Name:     "website",
	Password: "website",
}

// DSN returns the connection string used by gorm.
func (conf DBConf) DSN() string {
	if conf.URL != "" {
		return conf.URL
	}

	return fmt.Sprintf("host=%s port=%d user=%s dbname=%s password=%s sslmode=disable",
		conf.Host, conf.Port, conf.User, conf.Name, conf.Password)
}

type Configuration struct {
	AppName          string
	Env              string
	Port             int
	DBInfo           DBConf
	PrimaryDatastore string
	RedisHost        string
	RedisPort        int
	SentryDSN        string
	AllowedOrigins   []string
	TimeZone         string
	Version          string

	GithubUsername    string
	GithubRevalidate  time.Duration
	GithubCacheSize   int
	ClarityDailyLimit int
	UpstreamTimeout   time.Duration

	Credentials Credentials
}

type Services struct {
	Db    *gorm.DB
	Redis *redis.Pool
}

var configuration *Configuration
var services *Services
var sentryHook *logrus_sentry.SentryHook

func initLogging(config *Configuration) {
	log.SetFormatter(&log.JSONFormatter{})

	if config.Env == DEVELOPMENT {
		log.SetLevel(log.DebugLevel)
	}

	if config.SentryDSN == "" {
		return
	}

	hook, err := logrus_sentry.NewSentryHook(config.SentryDSN, []log.Level{
		log.PanicLevel, log.FatalLevel, log.ErrorLevel,
	})
	if err != nil {
		log.WithError(err).Error("Failed to initialize sentry hook.")
		return
	}
	hook.Timeout = 5 * time.Second
	hook.StacktraceConfiguration.Enable = true
	log.AddHook(hook)
	sentryHook = hook
	log.Info("Sentry hook initialized.")
}

// SafeFlushSentryHook flushes pending error reports, if the hook is enabled.
func SafeFlushSentryHook() {
	if sentryHook != nil {
		sentryHook.Flush()
	}
}

func initDB(config *Configuration) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", config.DBInfo.DSN())
	if err != nil {
		log.WithError(err).Error("Failed Db Initialization")
		return nil, err
	}

	// Connection Pooling and Logging.
	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(50)
	db.DB().SetConnMaxLifetime(30 * time.Minute)
	db.LogMode(config.Env == DEVELOPMENT)

	log.Info("Db Service initialized")
	return db, nil
}

// NewRedisPool returns a lazily connecting pool for host:port.
func NewRedisPool(host string, port int) *redis.Pool {
	address := host + ":" + strconv.Itoa(port)
	return &redis.Pool{
		MaxIdle:     10,
		MaxActive:   50,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.Dial("tcp", address)
		},
		TestOnBorrow: func(c redis.Conn, t time.Time) error {
			if time.Since(t) < time.Minute {
				return nil
			}
			_, err := c.Do("PING")
			return err
		},
	}
}

func initServices(config *Configuration) error {
	services = &Services{}

	if config.PrimaryDatastore == DatastoreTypePostgres {
		db, err := initDB(config)
		if err != nil {
			return err
		}
		services.Db = db
	}

	if config.RedisHost != "" {
		services.Redis = NewRedisPool(config.RedisHost, config.RedisPort)
		log.WithField("redis", fmt.Sprintf("%s:%d", config.RedisHost, config.RedisPort)).
			Info("Redis pool initialized")
	}

	return nil
}

func validate(config *Configuration) error {
	if config.Port <= 0 {
		return fmt.Errorf("invalid port %d", config.Port)
	}

	switch config.PrimaryDatastore {
	case DatastoreTypePostgres, DatastoreTypeMemory:
	default:
		return fmt.Errorf("invalid primary datastore %q", config.PrimaryDatastore)
	}

	if _, err := time.LoadLocation(config.TimeZone); err != nil {
		return fmt.Errorf("invalid timezone %q: %v", config.TimeZone, err)
	}

	if config.ClarityDailyLimit <= 0 {
		return fmt.Errorf("invalid clarity daily limit %d", config.ClarityDailyLimit)
	}

	return nil
}

// Init validates the configuration, loads credentials from the environment
// and connects the services.
func Init(config *Configuration) error {
	if configuration != nil {
		return fmt.Errorf("config already initialized")
	}

	credentials, err := LoadCredentials()
	if err != nil {
		return err
	}
	config.Credentials = *credentials
	if credentials.DatabaseURL != "" && config.DBInfo.URL == "" {
		config.DBInfo.URL = credentials.DatabaseURL
	}

	if err := validate(config); err != nil {
		return err
	}

	initLogging(config)
	if err := initServices(config); err != nil {
		return err
	}

	configuration = config
	return nil
}

// Close releases the connections held by the services.
func Close() {
	if services == nil {
		return
	}

	if services.Db != nil {
		if err := services.Db.Close(); err != nil {
			log.WithError(err).Error("Failed to close db.")
		}
	}

	if services.Redis != nil {
		if err := services.Redis.Close(); err != nil {
			log.WithError(err).Error("Failed to close redis pool.")
		}
	}
}

func GetConfig() *Configuration {
	return configuration
}

func GetServices() *Services {
	return services
}

func IsDevelopment() bool {
	return configuration != nil && configuration.Env == DEVELOPMENT
}

// Location returns the time zone used for day boundaries.
func (config *Configuration) Location() *time.Location {
	loc, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetTokensFromStringList splits a comma separated flag value, dropping
// empty tokens.
func GetTokensFromStringList(list string) []string {
	tokens := make([]string, 0)
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
