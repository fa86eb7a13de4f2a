package model

import "time"

// PlayingItemType discriminates PlayingItem.
type PlayingItemType string

const (
	PlayingItemTypeTrack   PlayingItemType = "track"
	PlayingItemTypeEpisode PlayingItemType = "episode"
)

type SpotifyArtist struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type TrackDetails struct {
	Artists []SpotifyArtist `json:"artists"`
	Album   string          `json:"album"`
}

type EpisodeDetails struct {
	Show      string `json:"show"`
	Publisher string `json:"publisher"`
}

// PlayingItem is a track or an episode. Exactly one of Track and Episode is
// set, matching Type.
type PlayingItem struct {
	Type       PlayingItemType `json:"type"`
	Title      string          `json:"title"`
	URL        string          `json:"url"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	DurationMs int             `json:"durationMs"`
	Track      *TrackDetails   `json:"track,omitempty"`
	Episode    *EpisodeDetails `json:"episode,omitempty"`
}

type NowPlaying struct {
	IsPlaying  bool         `json:"isPlaying"`
	ProgressMs int          `json:"progressMs,omitempty"`
	Item       *PlayingItem `json:"item,omitempty"`
}

type TopTrack struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	URL           string `json:"url"`
	AlbumImageURL string `json:"albumImageUrl,omitempty"`
}

type TopTracksOutput struct {
	Tracks []TopTrack `json:"tracks"`
}

type SpotifyAuthURLOutput struct {
	URL string `json:"url"`
}

// SpotifyCallbackInput carries the authorization code. The oauth state is
// checked against the session before the procedure is called.
type SpotifyCallbackInput struct {
	Code string `json:"code" validate:"required"`
}

func (input *SpotifyCallbackInput) Normalize() {
	trim(&input.Code)
}

type SpotifyTokens struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	TokenType    string    `json:"tokenType"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
