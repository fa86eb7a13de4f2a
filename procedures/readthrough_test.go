package procedures

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"website/integration"
	M "website/model/model"
	"website/rpc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWakatimeProcedures(t *testing.T) {
	env := newTestEnv(t)

	output, rpcErr := env.call("wakatime.coding-activity", "")
	require.Nil(t, rpcErr)
	assert.Equal(t, 2, output.(*M.WakatimeActivityOutput).Data[0].GrandTotal.Hours)

	for name, url := range map[string]string{
		"wakatime.languages":         "languages",
		"wakatime.editors":           "editors",
		"wakatime.operating-systems": "os",
		"wakatime.categories":        "categories",
	} {
		output, rpcErr := env.call(name, "")
		require.Nil(t, rpcErr, name)
		assert.Equal(t, url, output.(*M.WakatimeStatsOutput).Data[0].Name)
	}

	// Every call reaches upstream.
	env.call("wakatime.languages", "")
	assert.Len(t, env.wakatime.urls, 6)

	_, rpcErr = env.call("wakatime.languages", `{"range":"week"}`)
	assert.Equal(t, rpc.CodeBadRequest, rpcErr.Code)
}

func TestWakatimeUpstreamError(t *testing.T) {
	env := newTestEnv(t)
	env.wakatime.err = &integration.StatusError{Service: "wakatime", StatusCode: http.StatusBadGateway}

	_, rpcErr := env.call("wakatime.editors", "")
	assert.Equal(t, rpc.CodeUpstreamError, rpcErr.Code)
	assert.Equal(t, "failed to fetch wakatime editors", rpcErr.Message)

	env.wakatime.err = integration.ErrNotConfigured
	_, rpcErr = env.call("wakatime.editors", "")
	assert.Equal(t, rpc.CodeInternal, rpcErr.Code)
}

func TestSpotifyProcedures(t *testing.T) {
	env := newTestEnv(t)

	output, rpcErr := env.call("spotify.currently-playing", "")
	require.Nil(t, rpcErr)
	assert.False(t, output.(*M.NowPlaying).IsPlaying)

	output, rpcErr = env.call("spotify.top-tracks", "")
	require.Nil(t, rpcErr)
	assert.Equal(t, "short_term", output.(*M.TopTracksOutput).Tracks[0].Title)

	output, rpcErr = env.call("spotify.auth-url", "")
	require.Nil(t, rpcErr)
	assert.Contains(t, output.(*M.SpotifyAuthURLOutput).URL, "state=")

	output, rpcErr = env.call("spotify.callback", `{"code":" abc "}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, "access-abc", output.(*M.SpotifyTokens).AccessToken)

	_, rpcErr = env.call("spotify.callback", `{}`)
	assert.Equal(t, rpc.CodeBadRequest, rpcErr.Code)

	_, rpcErr = env.call("spotify.callback", `{"code":"abc","state":"xyz"}`)
	require.NotNil(t, rpcErr)
	assert.Equal(t, rpc.CodeBadRequest, rpcErr.Code)
	assert.Equal(t, "unknown field", rpcErr.Fields["state"])

	env.spotify.err = errors.New("spotify responded with status 401")
	_, rpcErr = env.call("spotify.currently-playing", "")
	assert.Equal(t, rpc.CodeUpstreamError, rpcErr.Code)
	assert.Equal(t, "failed to fetch currently playing", rpcErr.Message)
}

type failingPinger struct{}

func (failingPinger) Ping() error { return errors.New("connection refused") }

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	output, rpcErr := env.call("health.check", "")
	require.Nil(t, rpcErr)
	assert.Equal(t, M.HealthStatusOK, output.(*M.HealthStatus).Status)
	assert.Equal(t, *env.clock, output.(*M.HealthStatus).Timestamp)
}

func TestHealthDetailedRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	_, rpcErr := env.call("health.detailed", "")
	require.NotNil(t, rpcErr)
	assert.Equal(t, rpc.CodeUnauthorized, rpcErr.Code)
	assert.Equal(t, http.StatusUnauthorized, rpcErr.Status)
}

func TestHealthDetailed(t *testing.T) {
	env := newTestEnv(t)
	ctx := rpc.WithAuthenticated(context.Background(), true)

	_, rpcErr := env.call("clarity.project-live-insights", `{"numOfDays":1}`)
	require.Nil(t, rpcErr)

	output, rpcErr := env.router.Call(ctx, "health.detailed", nil)
	require.Nil(t, rpcErr)
	detailed := output.(*M.HealthDetailed)
	assert.Equal(t, M.HealthStatusOK, detailed.Status)
	assert.Equal(t, "test", detailed.Version)
	assert.Equal(t, int64(time.Hour.Seconds()), detailed.UptimeSeconds)
	assert.Equal(t, M.HealthStatusOK, detailed.Checks["datastore"].Status)
	assert.Equal(t, M.HealthStatusSkipped, detailed.Checks["redis"].Status)
	assert.Equal(t, M.QuotaUsage{Used: 1, Limit: 10}, detailed.ClarityQuota)

	env.deps.Redis = failingPinger{}
	output, rpcErr = env.router.Call(ctx, "health.detailed", nil)
	require.Nil(t, rpcErr)
	detailed = output.(*M.HealthDetailed)
	assert.Equal(t, M.HealthStatusDegraded, detailed.Status)
	assert.Equal(t, "connection refused", detailed.Checks["redis"].Error)
}
