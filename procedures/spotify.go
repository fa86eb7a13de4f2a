package procedures

import (
	"context"

	"website/integration"
	"website/integration/spotify"
	M "website/model/model"
	"website/rpc"
	U "website/util"

	log "github.com/sirupsen/logrus"
)

func spotifyError(message string, err error) *rpc.Error {
	if err == integration.ErrNotConfigured {
		return rpc.Internal(err)
	}
	return rpc.Upstream(message, err)
}

func (deps *Dependencies) spotifyCurrentlyPlaying(ctx context.Context) (*M.NowPlaying, error) {
	nowPlaying, err := deps.Spotify.CurrentlyPlaying(ctx)
	if err != nil {
		return nil, spotifyError("failed to fetch currently playing", err)
	}
	return nowPlaying, nil
}

func (deps *Dependencies) spotifyTopTracks(ctx context.Context) (*M.TopTracksOutput, error) {
	output, err := deps.Spotify.TopTracks(ctx, spotify.TopTracksTimeRange, spotify.TopTracksLimit)
	if err != nil {
		return nil, spotifyError("failed to fetch top tracks", err)
	}
	return output, nil
}

func (deps *Dependencies) spotifyAuthURL(ctx context.Context) (*M.SpotifyAuthURLOutput, error) {
	url, err := deps.Spotify.AuthURL(U.GetRequestID())
	if err != nil {
		return nil, rpc.Internal(err)
	}
	return &M.SpotifyAuthURLOutput{URL: url}, nil
}

// spotifyCallback completes the one time authorization, returning the
// refresh token to configure as SPOTIFY_REFRESH_TOKEN.
func (deps *Dependencies) spotifyCallback(ctx context.Context, input M.SpotifyCallbackInput) (*M.SpotifyTokens, error) {
	tokens, err := deps.Spotify.Exchange(ctx, input.Code)
	if err != nil {
		return nil, spotifyError("failed to exchange spotify authorization code", err)
	}

	log.WithField("reqId", rpc.RequestID(ctx)).Info("Spotify authorization completed.")
	return tokens, nil
}
