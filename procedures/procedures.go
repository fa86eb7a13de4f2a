package procedures

import (
	"context"
	"encoding/json"
	"time"

	"website/cache/memory"
	"website/model"
	M "website/model/model"
	"website/rpc"
)

type ClarityClient interface {
	ProjectLiveInsights(ctx context.Context, numOfDays int, dimensions [3]*M.Dimension) (json.RawMessage, error)
}

type GithubClient interface {
	Contributions(ctx context.Context, username, year string) (*M.ContributionsOutput, error)
}

type WakatimeClient interface {
	CodingActivity(ctx context.Context, shareURL string) (*M.WakatimeActivityOutput, error)
	Stats(ctx context.Context, shareURL string) (*M.WakatimeStatsOutput, error)
}

type SpotifyClient interface {
	CurrentlyPlaying(ctx context.Context) (*M.NowPlaying, error)
	TopTracks(ctx context.Context, timeRange string, limit int) (*M.TopTracksOutput, error)
	AuthURL(state string) (string, error)
	Exchange(ctx context.Context, code string) (*M.SpotifyTokens, error)
}

type Pinger interface {
	Ping() error
}

// WakatimeURLs are the public share urls of each chart.
type WakatimeURLs struct {
	CodingActivity   string
	Languages        string
	Editors          string
	OperatingSystems string
	Categories       string
}

type Settings struct {
	// Location sets the day boundary of the Clarity quota.
	Location          *time.Location
	ClarityDailyLimit int
	GithubUsername    string
	Wakatime          WakatimeURLs
	Version           string
	StartedAt         time.Time
}

// Dependencies are the collaborators procedures run against. Redis and
// ContributionsCache are optional.
type Dependencies struct {
	Store              model.Model
	Clarity            ClarityClient
	Github             GithubClient
	Wakatime           WakatimeClient
	Spotify            SpotifyClient
	ContributionsCache *memory.TTLCache
	Redis              Pinger
	Settings           Settings
	NowFunc            func() time.Time
}

func (deps *Dependencies) now() time.Time {
	if deps.NowFunc != nil {
		return deps.NowFunc()
	}
	return time.Now()
}

func (deps *Dependencies) location() *time.Location {
	if deps.Settings.Location == nil {
		return time.UTC
	}
	return deps.Settings.Location
}

func (deps *Dependencies) clarityDailyLimit() int {
	if deps.Settings.ClarityDailyLimit <= 0 {
		return M.ClarityDailyRequestLimit
	}
	return deps.Settings.ClarityDailyLimit
}

// NewRouter registers every procedure against deps.
func NewRouter(deps *Dependencies) *rpc.Router {
	router := rpc.NewRouter()

	health := router.Namespace("health")
	health.Handle("check", rpc.NoInput(deps.healthCheck))
	health.Handle("detailed", rpc.NoInput(deps.healthDetailed), rpc.RequireAuth)

	clarity := router.Namespace("clarity")
	clarity.Handle("project-live-insights", rpc.Typed(deps.clarityProjectLiveInsights))

	github := router.Namespace("github")
	github.Handle("contributions", rpc.Typed(deps.githubContributions))

	wakatime := router.Namespace("wakatime")
	wakatime.Handle("coding-activity", rpc.NoInput(deps.wakatimeCodingActivity))
	wakatime.Handle("languages", rpc.NoInput(deps.wakatimeStats("languages", deps.Settings.Wakatime.Languages)))
	wakatime.Handle("editors", rpc.NoInput(deps.wakatimeStats("editors", deps.Settings.Wakatime.Editors)))
	wakatime.Handle("operating-systems", rpc.NoInput(
		deps.wakatimeStats("operating systems", deps.Settings.Wakatime.OperatingSystems)))
	wakatime.Handle("categories", rpc.NoInput(deps.wakatimeStats("categories", deps.Settings.Wakatime.Categories)))

	guestbook := router.Namespace("guestbook")
	guestbook.Handle("list", rpc.Typed(deps.guestbookList))
	guestbook.Handle("get", rpc.Typed(deps.guestbookGet))
	guestbook.Handle("create", rpc.Typed(deps.guestbookCreate))
	guestbook.Handle("update", rpc.Typed(deps.guestbookUpdate))
	guestbook.Handle("remove", rpc.Typed(deps.guestbookRemove))

	todo := router.Namespace("todo")
	todo.Handle("list", rpc.Typed(deps.todoList))
	todo.Handle("get", rpc.Typed(deps.todoGet))
	todo.Handle("create", rpc.Typed(deps.todoCreate))
	todo.Handle("update", rpc.Typed(deps.todoUpdate))
	todo.Handle("remove", rpc.Typed(deps.todoRemove))

	spotify := router.Namespace("spotify")
	spotify.Handle("currently-playing", rpc.NoInput(deps.spotifyCurrentlyPlaying))
	spotify.Handle("top-tracks", rpc.NoInput(deps.spotifyTopTracks))
	spotify.Handle("auth-url", rpc.NoInput(deps.spotifyAuthURL))
	spotify.Handle("callback", rpc.Typed(deps.spotifyCallback))

	return router
}
