package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDBConfDSN(t *testing.T) {
	conf := DBConf{Host: "db", Port: 5433, User: "u", Name: "n", Password: "p"}
	assert.Equal(t, "host=db port=5433 user=u dbname=n password=p sslmode=disable", conf.DSN())

	conf.URL = "postgres://u:p@db/n"
	assert.Equal(t, "postgres://u:p@db/n", conf.DSN())
}

func TestValidate(t *testing.T) {
	valid := func() *Configuration {
		return &Configuration{
			Port:              8080,
			PrimaryDatastore:  DatastoreTypeMemory,
			TimeZone:          "UTC",
			ClarityDailyLimit: 10,
		}
	}

	assert.Nil(t, validate(valid()))

	config := valid()
	config.Port = 0
	assert.NotNil(t, validate(config))

	config = valid()
	config.PrimaryDatastore = "mysql"
	assert.NotNil(t, validate(config))

	config = valid()
	config.TimeZone = "Nowhere/Place"
	assert.NotNil(t, validate(config))

	config = valid()
	config.ClarityDailyLimit = 0
	assert.NotNil(t, validate(config))
}

func TestLocation(t *testing.T) {
	config := &Configuration{TimeZone: "Asia/Kolkata"}
	assert.Equal(t, "Asia/Kolkata", config.Location().String())

	config.TimeZone = "bad"
	assert.Equal(t, time.UTC, config.Location())
}

func TestGetTokensFromStringList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, GetTokensFromStringList(" a, ,b,"))
	assert.Equal(t, []string{}, GetTokensFromStringList(""))
}

func TestLoadCredentials(t *testing.T) {
	os.Setenv("CLARITY_API_TOKEN", "clarity-token")
	defer os.Unsetenv("CLARITY_API_TOKEN")

	credentials, err := LoadCredentials()
	assert.Nil(t, err)
	assert.Equal(t, "clarity-token", credentials.ClarityAPIToken)
	assert.Equal(t, "http://localhost:8080/api/spotify/callback", credentials.SpotifyRedirectURI)
}
