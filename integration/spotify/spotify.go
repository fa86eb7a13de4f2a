package spotify

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"website/integration"
	"website/model/model"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	DefaultAPIBaseURL  = "https://api.spotify.com/v1"
	DefaultAuthURL     = "https://accounts.spotify.com/authorize"
	DefaultTokenURL    = "https://accounts.spotify.com/api/token"
	TopTracksLimit     = 10
	TopTracksTimeRange = "short_term"
)

var Scopes = []string{"user-read-currently-playing", "user-top-read"}

const serviceName = "spotify"

type Client struct {
	httpClient   *http.Client
	apiBaseURL   string
	config       *oauth2.Config
	refreshToken string
}

// NewOAuthConfig builds the authorization code config. Empty urls fall back
// to the Spotify accounts service.
func NewOAuthConfig(clientID, clientSecret, redirectURI, authURL, tokenURL string) *oauth2.Config {
	if authURL == "" {
		authURL = DefaultAuthURL
	}
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

func NewClient(httpClient *http.Client, apiBaseURL string, config *oauth2.Config, refreshToken string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if apiBaseURL == "" {
		apiBaseURL = DefaultAPIBaseURL
	}
	return &Client{
		httpClient:   httpClient,
		apiBaseURL:   strings.TrimRight(apiBaseURL, "/"),
		config:       config,
		refreshToken: refreshToken,
	}
}

func (c *Client) configured() bool {
	return c.config != nil && c.config.ClientID != "" && c.config.ClientSecret != ""
}

// accessToken exchanges the refresh token for a fresh access token. Tokens
// are not reused across calls.
func (c *Client) accessToken(ctx context.Context) (*oauth2.Token, error) {
	if !c.configured() || c.refreshToken == "" {
		return nil, integration.ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.TokenSource(ctx, &oauth2.Token{RefreshToken: c.refreshToken}).Token()
	if err != nil {
		return nil, tokenError(err, "failed to refresh spotify access token")
	}
	return token, nil
}

// tokenError keeps the status of a rejected token request.
func tokenError(err error, message string) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		return &integration.StatusError{
			Service:    serviceName,
			StatusCode: retrieveErr.Response.StatusCode,
			Body:       string(retrieveErr.Body),
		}
	}
	return errors.Wrap(err, message)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (int, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return 0, err
	}

	endpoint := c.apiBaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build spotify request")
	}
	token.SetAuthHeader(request)

	return integration.DoJSON(c.httpClient, request, serviceName, out)
}

type image struct {
	URL string `json:"url"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

type artist struct {
	Name         string       `json:"name"`
	ExternalURLs externalURLs `json:"external_urls"`
}

type item struct {
	Type         string       `json:"type"`
	Name         string       `json:"name"`
	DurationMs   int          `json:"duration_ms"`
	ExternalURLs externalURLs `json:"external_urls"`
	Artists      []artist     `json:"artists"`
	Album        *struct {
		Name   string  `json:"name"`
		Images []image `json:"images"`
	} `json:"album"`
	Images []image `json:"images"`
	Show   *struct {
		Name      string  `json:"name"`
		Publisher string  `json:"publisher"`
		Images    []image `json:"images"`
	} `json:"show"`
}

type currentlyPlayingResponse struct {
	IsPlaying  bool  `json:"is_playing"`
	ProgressMs int   `json:"progress_ms"`
	Item       *item `json:"item"`
}

func firstImage(images []image) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

func toPlayingItem(it *item) *model.PlayingItem {
	playing := &model.PlayingItem{
		Title:      it.Name,
		URL:        it.ExternalURLs.Spotify,
		DurationMs: it.DurationMs,
	}

	if it.Type == string(model.PlayingItemTypeEpisode) {
		playing.Type = model.PlayingItemTypeEpisode
		playing.Episode = &model.EpisodeDetails{}
		playing.ImageURL = firstImage(it.Images)
		if it.Show != nil {
			playing.Episode.Show = it.Show.Name
			playing.Episode.Publisher = it.Show.Publisher
			if playing.ImageURL == "" {
				playing.ImageURL = firstImage(it.Show.Images)
			}
		}
		return playing
	}

	playing.Type = model.PlayingItemTypeTrack
	playing.Track = &model.TrackDetails{Artists: make([]model.SpotifyArtist, 0, len(it.Artists))}
	for _, a := range it.Artists {
		playing.Track.Artists = append(playing.Track.Artists,
			model.SpotifyArtist{Name: a.Name, URL: a.ExternalURLs.Spotify})
	}
	if it.Album != nil {
		playing.Track.Album = it.Album.Name
		playing.ImageURL = firstImage(it.Album.Images)
	}
	return playing
}

// CurrentlyPlaying returns the track or episode playing now. Nothing playing
// (204) is not an error.
func (c *Client) CurrentlyPlaying(ctx context.Context) (*model.NowPlaying, error) {
	var response currentlyPlayingResponse
	statusCode, err := c.get(ctx, "/me/player/currently-playing",
		url.Values{"additional_types": {"track,episode"}}, &response)
	if err != nil {
		return nil, err
	}

	if statusCode == http.StatusNoContent || response.Item == nil {
		return &model.NowPlaying{IsPlaying: false}, nil
	}

	return &model.NowPlaying{
		IsPlaying:  response.IsPlaying,
		ProgressMs: response.ProgressMs,
		Item:       toPlayingItem(response.Item),
	}, nil
}

type topTracksResponse struct {
	Items []item `json:"items"`
}

// TopTracks returns the user's top tracks over timeRange.
func (c *Client) TopTracks(ctx context.Context, timeRange string, limit int) (*model.TopTracksOutput, error) {
	var response topTracksResponse
	query := url.Values{"time_range": {timeRange}, "limit": {strconv.Itoa(limit)}}
	if _, err := c.get(ctx, "/me/top/tracks", query, &response); err != nil {
		return nil, err
	}

	output := &model.TopTracksOutput{Tracks: make([]model.TopTrack, 0, len(response.Items))}
	for _, track := range response.Items {
		names := make([]string, 0, len(track.Artists))
		for _, a := range track.Artists {
			names = append(names, a.Name)
		}

		topTrack := model.TopTrack{
			Title:  track.Name,
			Artist: strings.Join(names, ", "),
			URL:    track.ExternalURLs.Spotify,
		}
		if track.Album != nil {
			topTrack.AlbumImageURL = firstImage(track.Album.Images)
		}
		output.Tracks = append(output.Tracks, topTrack)
	}
	return output, nil
}

// AuthURL returns the authorize url requesting Scopes.
func (c *Client) AuthURL(state string) (string, error) {
	if !c.configured() {
		return "", integration.ErrNotConfigured
	}
	return c.config.AuthCodeURL(state), nil
}

// Exchange trades an authorization code for tokens.
func (c *Client) Exchange(ctx context.Context, code string) (*model.SpotifyTokens, error) {
	if !c.configured() {
		return nil, integration.ErrNotConfigured
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return nil, tokenError(err, "failed to exchange spotify authorization code")
	}

	return &model.SpotifyTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresAt:    token.Expiry,
	}, nil
}
