package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"website/integration"
	"website/model/model"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://github-contributions-api.jogruber.de"

const serviceName = "github contributions"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/")}
}

// Contributions fetches the flat contribution calendar of username for year,
// which is "last", "all" or a four digit year.
func (c *Client) Contributions(ctx context.Context, username, year string) (*model.ContributionsOutput, error) {
	if username == "" {
		return nil, integration.ErrNotConfigured
	}

	endpoint := c.baseURL + "/v4/" + url.PathEscape(username) + "?" + url.Values{"y": {year}}.Encode()
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build github contributions request")
	}
	request.Header.Set("Accept", "application/json")

	var output model.ContributionsOutput
	if _, err := integration.DoJSON(c.httpClient, request, serviceName, &output); err != nil {
		return nil, err
	}

	if output.Total == nil {
		output.Total = make(map[string]int)
	}
	if output.Contributions == nil {
		output.Contributions = make([]model.Contribution, 0)
	}
	return &output, nil
}
