package procedures

import (
	"context"
	"strings"

	"website/cache"
	"website/integration"
	M "website/model/model"
	"website/rpc"

	log "github.com/sirupsen/logrus"
)

const contributionsCachePrefix = "github:contributions"

func (deps *Dependencies) fetchContributions(ctx context.Context, username, year,
	format string) (*M.ContributionsOutput, error) {

	flat, err := deps.Github.Contributions(ctx, username, year)
	if err != nil {
		return nil, err
	}

	if format != M.ContributionFormatNested {
		return flat, nil
	}
	return &M.ContributionsOutput{
		Total:  flat.Total,
		Nested: M.NestContributions(flat.Contributions),
	}, nil
}

// githubContributions is read through the contributions cache, keyed by
// username, year and format. noCache skips the read and refreshes the entry.
func (deps *Dependencies) githubContributions(ctx context.Context,
	input M.ContributionsInput) (*M.ContributionsOutput, error) {

	username := input.Username
	if username == "" {
		username = deps.Settings.GithubUsername
	}
	if username == "" {
		return nil, rpc.BadRequest("", map[string]string{"username": "is required"})
	}
	year := string(input.Year)

	logCtx := log.WithFields(log.Fields{"reqId": rpc.RequestID(ctx), "username": username, "year": year})

	var output *M.ContributionsOutput
	var err error
	if deps.ContributionsCache == nil {
		output, err = deps.fetchContributions(ctx, username, year, input.Format)
	} else {
		format := input.Format
		if format == "" {
			format = "flat"
		}
		key, keyErr := cache.NewKey(strings.ToLower(username), contributionsCachePrefix, year+":"+format)
		if keyErr != nil {
			return nil, rpc.Internal(keyErr)
		}
		cKey, keyErr := key.Key()
		if keyErr != nil {
			return nil, rpc.Internal(keyErr)
		}

		var value interface{}
		value, err = deps.ContributionsCache.GetOrLoad(cKey, input.NoCache, func() (interface{}, error) {
			logCtx.Debug("Fetching github contributions.")
			return deps.fetchContributions(ctx, username, year, input.Format)
		})
		if err == nil {
			output = value.(*M.ContributionsOutput)
		}
	}

	if err != nil {
		if err == integration.ErrNotConfigured {
			return nil, rpc.Internal(err)
		}
		return nil, rpc.Upstream("failed to fetch github contributions", err)
	}
	return output, nil
}
