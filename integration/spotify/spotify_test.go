package spotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"website/integration"
	"website/model/model"

	"github.com/stretchr/testify/assert"
)

type fakeSpotify struct {
	server         *httptest.Server
	nowPlaying     string
	nowPlayingCode int
	tokenCode      int
}

func newFakeSpotify(t *testing.T) *fakeSpotify {
	fake := &fakeSpotify{nowPlayingCode: http.StatusOK, tokenCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "id", user)
		assert.Equal(t, "secret", pass)
		r.ParseForm()

		w.Header().Set("Content-Type", "application/json")
		if fake.tokenCode != http.StatusOK {
			w.WriteHeader(fake.tokenCode)
			w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		switch r.Form.Get("grant_type") {
		case "refresh_token":
			assert.Equal(t, "refresh", r.Form.Get("refresh_token"))
			w.Write([]byte(`{"access_token":"access","token_type":"Bearer","expires_in":3600}`))
		case "authorization_code":
			assert.Equal(t, "the-code", r.Form.Get("code"))
			w.Write([]byte(`{"access_token":"access","refresh_token":"new-refresh","token_type":"Bearer","expires_in":3600}`))
		}
	})
	mux.HandleFunc("/v1/me/player/currently-playing", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
		assert.Equal(t, "track,episode", r.URL.Query().Get("additional_types"))
		w.WriteHeader(fake.nowPlayingCode)
		w.Write([]byte(fake.nowPlaying))
	})
	mux.HandleFunc("/v1/me/top/tracks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "short_term", r.URL.Query().Get("time_range"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"items":[{"name":"Song","external_urls":{"spotify":"https://open.spotify.com/track/1"},
			"artists":[{"name":"A"},{"name":"B"}],"album":{"name":"Album","images":[{"url":"https://i/1.jpg"}]}}]}`))
	})
	fake.server = httptest.NewServer(mux)
	return fake
}

func (fake *fakeSpotify) client(refreshToken string) *Client {
	config := NewOAuthConfig("id", "secret", "http://localhost/callback", fake.server.URL+"/authorize",
		fake.server.URL+"/api/token")
	return NewClient(fake.server.Client(), fake.server.URL+"/v1", config, refreshToken)
}

func TestCurrentlyPlayingTrack(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()
	fake.nowPlaying = `{"is_playing":true,"progress_ms":1000,"item":{"type":"track","name":"Song",
		"duration_ms":200000,"external_urls":{"spotify":"https://open.spotify.com/track/1"},
		"artists":[{"name":"A","external_urls":{"spotify":"https://open.spotify.com/artist/a"}}],
		"album":{"name":"Album","images":[{"url":"https://i/1.jpg"}]}}}`

	nowPlaying, err := fake.client("refresh").CurrentlyPlaying(context.Background())
	assert.Nil(t, err)
	assert.True(t, nowPlaying.IsPlaying)
	assert.Equal(t, model.PlayingItemTypeTrack, nowPlaying.Item.Type)
	assert.Equal(t, "Album", nowPlaying.Item.Track.Album)
	assert.Equal(t, "A", nowPlaying.Item.Track.Artists[0].Name)
	assert.Equal(t, "https://i/1.jpg", nowPlaying.Item.ImageURL)
	assert.Nil(t, nowPlaying.Item.Episode)
}

func TestCurrentlyPlayingEpisode(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()
	fake.nowPlaying = `{"is_playing":true,"item":{"type":"episode","name":"Ep 1","duration_ms":60000,
		"images":[],"show":{"name":"Show","publisher":"Pub","images":[{"url":"https://i/show.jpg"}]}}}`

	nowPlaying, err := fake.client("refresh").CurrentlyPlaying(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, model.PlayingItemTypeEpisode, nowPlaying.Item.Type)
	assert.Equal(t, "Show", nowPlaying.Item.Episode.Show)
	assert.Equal(t, "https://i/show.jpg", nowPlaying.Item.ImageURL)
	assert.Nil(t, nowPlaying.Item.Track)
}

func TestCurrentlyPlayingNothing(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()
	fake.nowPlayingCode = http.StatusNoContent

	nowPlaying, err := fake.client("refresh").CurrentlyPlaying(context.Background())
	assert.Nil(t, err)
	assert.False(t, nowPlaying.IsPlaying)
	assert.Nil(t, nowPlaying.Item)
}

func TestTopTracks(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()

	output, err := fake.client("refresh").TopTracks(context.Background(), TopTracksTimeRange, TopTracksLimit)
	assert.Nil(t, err)
	assert.Len(t, output.Tracks, 1)
	assert.Equal(t, "A, B", output.Tracks[0].Artist)
	assert.Equal(t, "https://i/1.jpg", output.Tracks[0].AlbumImageURL)
}

func TestTokenRejected(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()
	fake.tokenCode = http.StatusBadRequest

	_, err := fake.client("refresh").CurrentlyPlaying(context.Background())
	code, ok := integration.StatusCodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, code)

	_, err = fake.client("").CurrentlyPlaying(context.Background())
	assert.Equal(t, integration.ErrNotConfigured, err)
}

func TestAuthURLAndExchange(t *testing.T) {
	fake := newFakeSpotify(t)
	defer fake.server.Close()
	client := fake.client("")

	authURL, err := client.AuthURL("state")
	assert.Nil(t, err)
	parsed, _ := url.Parse(authURL)
	assert.Equal(t, "user-read-currently-playing user-top-read", parsed.Query().Get("scope"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "id", parsed.Query().Get("client_id"))

	tokens, err := client.Exchange(context.Background(), "the-code")
	assert.Nil(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "new-refresh", tokens.RefreshToken)
}
