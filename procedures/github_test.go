package procedures

import (
	"errors"
	"testing"
	"time"

	M "website/model/model"
	"website/rpc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubContributionsCached(t *testing.T) {
	env := newTestEnv(t)

	output, rpcErr := env.call("github.contributions", `{}`)
	require.Nil(t, rpcErr)
	flat := output.(*M.ContributionsOutput)
	assert.Len(t, flat.Contributions, 2)
	assert.Equal(t, 1, env.github.calls)

	_, rpcErr = env.call("github.contributions", `{"username":"octocat","year":"last"}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 1, env.github.calls)

	_, rpcErr = env.call("github.contributions", `{"noCache":true}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 2, env.github.calls)

	env.advance(59 * time.Minute)
	_, rpcErr = env.call("github.contributions", `{}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 2, env.github.calls)

	env.advance(2 * time.Minute)
	_, rpcErr = env.call("github.contributions", `{}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 3, env.github.calls)
}

func TestGithubContributionsKeyedByParameters(t *testing.T) {
	env := newTestEnv(t)

	_, rpcErr := env.call("github.contributions", `{"year":2023}`)
	require.Nil(t, rpcErr)
	_, rpcErr = env.call("github.contributions", `{"year":"2023"}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 1, env.github.calls)

	output, rpcErr := env.call("github.contributions", `{"year":"2023","format":"nested"}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 2, env.github.calls)
	nested := output.(*M.ContributionsOutput)
	assert.Nil(t, nested.Contributions)
	assert.Equal(t, 2, nested.Nested["2024"]["2"]["10"].Count)
	assert.Equal(t, 3, nested.Total["lastYear"])

	_, rpcErr = env.call("github.contributions", `{"username":"torvalds","year":"2023"}`)
	require.Nil(t, rpcErr)
	assert.Equal(t, 3, env.github.calls)
}

func TestGithubContributionsValidation(t *testing.T) {
	env := newTestEnv(t)

	for _, body := range []string{
		`{"year":"23"}`,
		`{"year":"next"}`,
		`{"format":"tree"}`,
		`{"username":"-bad-"}`,
	} {
		_, rpcErr := env.call("github.contributions", body)
		if assert.NotNil(t, rpcErr, body) {
			assert.Equal(t, rpc.CodeBadRequest, rpcErr.Code, body)
		}
	}
	assert.Equal(t, 0, env.github.calls)

	env.deps.Settings.GithubUsername = ""
	_, rpcErr := env.call("github.contributions", `{}`)
	assert.Equal(t, rpc.CodeBadRequest, rpcErr.Code)
}

func TestGithubContributionsUpstreamError(t *testing.T) {
	env := newTestEnv(t)
	env.github.err = errors.New("github contributions responded with status 502")

	_, rpcErr := env.call("github.contributions", `{}`)
	require.NotNil(t, rpcErr)
	assert.Equal(t, rpc.CodeUpstreamError, rpcErr.Code)
	assert.Equal(t, "failed to fetch github contributions", rpcErr.Message)

	// Errors are not cached.
	env.github.err = nil
	_, rpcErr = env.call("github.contributions", `{}`)
	assert.Nil(t, rpcErr)
	assert.Equal(t, 2, env.github.calls)
}
