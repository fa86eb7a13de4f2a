package config

import (
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
)

// Credentials are third party secrets read from the environment.
type Credentials struct {
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
	SpotifyRefreshToken string `envconfig:"SPOTIFY_REFRESH_TOKEN"`
	SpotifyRedirectURI  string `envconfig:"SPOTIFY_REDIRECT_URI" default:"http://localhost:8080/api/spotify/callback"`

	ClarityAPIToken string `envconfig:"CLARITY_API_TOKEN"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	HealthAPIToken  string `envconfig:"HEALTH_API_TOKEN"`
	VisitorHashSalt string `envconfig:"VISITOR_HASH_SALT" default:"website"`
	SessionSecret   string `envconfig:"SESSION_SECRET"`

	WakatimeCodingActivityURL   string `envconfig:"WAKATIME_CODING_ACTIVITY_URL"`
	WakatimeLanguagesURL        string `envconfig:"WAKATIME_LANGUAGES_URL"`
	WakatimeEditorsURL          string `envconfig:"WAKATIME_EDITORS_URL"`
	WakatimeOperatingSystemsURL string `envconfig:"WAKATIME_OPERATING_SYSTEMS_URL"`
	WakatimeCategoriesURL       string `envconfig:"WAKATIME_CATEGORIES_URL"`
}

// LoadCredentials reads Credentials from the process environment.
func LoadCredentials() (*Credentials, error) {
	var credentials Credentials
	if err := envconfig.Process("", &credentials); err != nil {
		log.WithError(err).Error("Failed to load credentials from environment.")
		return nil, err
	}

	missing := make([]string, 0)
	if credentials.SpotifyClientID == "" || credentials.SpotifyClientSecret == "" {
		missing = append(missing, "spotify")
	}
	if credentials.ClarityAPIToken == "" {
		missing = append(missing, "clarity")
	}
	if credentials.HealthAPIToken == "" {
		missing = append(missing, "health")
	}
	if len(missing) > 0 {
		log.WithField("missing", missing).Warn("Some credentials are not configured. Dependent procedures will fail.")
	}

	return &credentials, nil
}
