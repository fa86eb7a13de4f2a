package clarity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"website/integration"
	"website/model/model"

	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://www.clarity.ms/export-data/api/v1"

const serviceName = "clarity"

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(httpClient *http.Client, baseURL, token string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: strings.TrimRight(baseURL, "/"), token: token}
}

// ProjectLiveInsights fetches the live insights export for the last
// numOfDays days broken down by up to three dimensions. Each dimension is
// sent under its own slot number and nil slots are left out. The payload
// is returned undecoded.
func (c *Client) ProjectLiveInsights(ctx context.Context, numOfDays int,
	dimensions [3]*model.Dimension) (json.RawMessage, error) {

	if c.token == "" {
		return nil, integration.ErrNotConfigured
	}

	query := url.Values{}
	query.Set("numOfDays", strconv.Itoa(numOfDays))
	for i, dimension := range dimensions {
		if dimension != nil {
			query.Set("dimension"+strconv.Itoa(i+1), string(*dimension))
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/project-live-insights?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build clarity request")
	}
	request.Header.Set("Authorization", "Bearer "+c.token)
	request.Header.Set("Content-Type", "application/json")

	var payload json.RawMessage
	if _, err := integration.DoJSON(c.httpClient, request, serviceName, &payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errors.New("empty clarity response")
	}
	return payload, nil
}
