package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"website/cache/memory"
	rcache "website/cache/redis"
	C "website/config"
	H "website/handler"
	"website/integration/clarity"
	"website/integration/github"
	"website/integration/spotify"
	"website/integration/wakatime"
	mid "website/middleware"
	"website/model/store"
	"website/model/store/postgres"
	"website/procedures"
	"website/services/presence"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// ./app --env=development --api_http_port=8080 --primary_datastore=postgres --db_host=localhost --db_port=5432 --db_user=website --db_name=website --db_pass=website --redis_host=localhost --redis_port=6379
func main() {
	env := flag.String("env", C.DEVELOPMENT, "")
	port := flag.Int("api_http_port", 8080, "")

	primaryDatastore := flag.String("primary_datastore", C.DatastoreTypeMemory, "postgres or memory")
	dbHost := flag.String("db_host", C.PostgresDefaultDBParams.Host, "")
	dbPort := flag.Int("db_port", C.PostgresDefaultDBParams.Port, "")
	dbUser := flag.String("db_user", C.PostgresDefaultDBParams.User, "")
	dbName := flag.String("db_name", C.PostgresDefaultDBParams.Name, "")
	dbPass := flag.String("db_pass", C.PostgresDefaultDBParams.Password, "")
	dbURL := flag.String("db_url", "", "Connection url, overrides the db_* flags. Falls back to DATABASE_URL.")

	redisHost := flag.String("redis_host", "", "Visitor counter is disabled when empty.")
	redisPort := flag.Int("redis_port", 6379, "")

	sentryDSN := flag.String("sentry_dsn", "", "Sentry DSN")
	allowedOrigins := flag.String("allowed_origins", "", "Comma separated list of origins allowed by cors.")
	timeZone := flag.String("timezone", "UTC", "Time zone of the daily clarity quota.")
	version := flag.String("version", "dev", "")

	githubUsername := flag.String("github_username", "", "Default username of github.contributions.")
	githubRevalidate := flag.Duration("github_revalidate", time.Hour, "Time to live of cached contributions.")
	githubCacheSize := flag.Int("github_cache_size", memory.DefaultSize, "")
	clarityDailyLimit := flag.Int("clarity_daily_limit", 10, "Clarity export calls allowed per day.")
	upstreamTimeout := flag.Duration("upstream_timeout", 10*time.Second, "Timeout of calls to third party apis.")
	flag.Parse()

	config := &C.Configuration{
		AppName: "website_api",
		Env:     *env,
		Port:    *port,
		DBInfo: C.DBConf{
			Host:     *dbHost,
			Port:     *dbPort,
			User:     *dbUser,
			Name:     *dbName,
			Password: *dbPass,
			URL:      *dbURL,
		},
		PrimaryDatastore:  *primaryDatastore,
		RedisHost:         *redisHost,
		RedisPort:         *redisPort,
		SentryDSN:         *sentryDSN,
		AllowedOrigins:    C.GetTokensFromStringList(*allowedOrigins),
		TimeZone:          *timeZone,
		Version:           *version,
		GithubUsername:    *githubUsername,
		GithubRevalidate:  *githubRevalidate,
		GithubCacheSize:   *githubCacheSize,
		ClarityDailyLimit: *clarityDailyLimit,
		UpstreamTimeout:   *upstreamTimeout,
	}

	// Initialize configs and connections.
	err := C.Init(config)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize.")
		return
	}
	defer C.SafeFlushSentryHook()
	defer C.Close()

	deps, visitors, err := buildDependencies(C.GetConfig())
	if err != nil {
		log.WithError(err).Error("Failed to build dependencies.")
		return
	}

	if !C.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(mid.AddSecurityHeaders())
	// Root middleware for cors.
	r.Use(mid.CustomCors(config.AllowedOrigins))
	r.Use(mid.RequestIdGenerator())
	r.Use(mid.Logger())
	r.Use(mid.Recovery())
	r.Use(mid.SetAuthScope(config.Credentials.HealthAPIToken))

	// Initialize routes.
	H.InitRoutes(r, procedures.NewRouter(deps), visitors)

	serve(r, config.Port)
}

// buildDependencies connects the store, caches and third party clients
// the procedures run with.
func buildDependencies(config *C.Configuration) (*procedures.Dependencies, *presence.Service, error) {
	modelStore := store.GetStore()
	if pg, ok := modelStore.(*postgres.Postgres); ok {
		if err := pg.Migrate(); err != nil {
			return nil, nil, err
		}
	}

	contributions, err := memory.NewTTLCache(config.GithubCacheSize, config.GithubRevalidate)
	if err != nil {
		return nil, nil, err
	}

	httpClient := &http.Client{Timeout: config.UpstreamTimeout}
	credentials := config.Credentials

	spotifyOAuth := spotify.NewOAuthConfig(credentials.SpotifyClientID, credentials.SpotifyClientSecret,
		credentials.SpotifyRedirectURI, "", "")

	deps := &procedures.Dependencies{
		Store:              modelStore,
		Clarity:            clarity.NewClient(httpClient, "", credentials.ClarityAPIToken),
		Github:             github.NewClient(httpClient, ""),
		Wakatime:           wakatime.NewClient(httpClient),
		Spotify:            spotify.NewClient(httpClient, "", spotifyOAuth, credentials.SpotifyRefreshToken),
		ContributionsCache: contributions,
		Settings: procedures.Settings{
			Location:          config.Location(),
			ClarityDailyLimit: config.ClarityDailyLimit,
			GithubUsername:    config.GithubUsername,
			Wakatime: procedures.WakatimeURLs{
				CodingActivity:   credentials.WakatimeCodingActivityURL,
				Languages:        credentials.WakatimeLanguagesURL,
				Editors:          credentials.WakatimeEditorsURL,
				OperatingSystems: credentials.WakatimeOperatingSystemsURL,
				Categories:       credentials.WakatimeCategoriesURL,
			},
			Version:   config.Version,
			StartedAt: time.Now(),
		},
	}

	var visitors *presence.Service
	if pool := C.GetServices().Redis; pool != nil {
		redisCache := rcache.New(pool)
		deps.Redis = redisCache
		visitors = presence.New(redisCache, credentials.VisitorHashSalt)
	} else {
		log.Warn("Redis is not configured. Visitor counter is disabled.")
	}

	return deps, visitors, nil
}

// serve runs the api until SIGINT or SIGTERM, then drains in flight
// requests for up to shutdownTimeout.
func serve(handler http.Handler, port int) {
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", port).Info("Starting api server.")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Api server failed.")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("Shutting down api server.")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown api server gracefully.")
	}
}
