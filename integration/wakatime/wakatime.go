package wakatime

import (
	"context"
	"net/http"

	"website/integration"
	"website/model/model"

	"github.com/pkg/errors"
)

const serviceName = "wakatime"

type Client struct {
	httpClient *http.Client
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

type activityResponse struct {
	Data []struct {
		GrandTotal struct {
			Digital      string  `json:"digital"`
			Hours        int     `json:"hours"`
			Minutes      int     `json:"minutes"`
			Text         string  `json:"text"`
			TotalSeconds float64 `json:"total_seconds"`
		} `json:"grand_total"`
		Range struct {
			Date     string `json:"date"`
			Start    string `json:"start"`
			End      string `json:"end"`
			Text     string `json:"text"`
			Timezone string `json:"timezone"`
		} `json:"range"`
	} `json:"data"`
}

func (c *Client) get(ctx context.Context, shareURL string, out interface{}) error {
	if shareURL == "" {
		return integration.ErrNotConfigured
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, shareURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to build wakatime request")
	}

	_, err = integration.DoJSON(c.httpClient, request, serviceName, out)
	return err
}

// CodingActivity fetches the daily grand totals of a coding activity share.
func (c *Client) CodingActivity(ctx context.Context, shareURL string) (*model.WakatimeActivityOutput, error) {
	var response activityResponse
	if err := c.get(ctx, shareURL, &response); err != nil {
		return nil, err
	}

	output := &model.WakatimeActivityOutput{Data: make([]model.WakatimeDay, 0, len(response.Data))}
	for _, day := range response.Data {
		output.Data = append(output.Data, model.WakatimeDay{
			GrandTotal: model.WakatimeGrandTotal{
				Digital:      day.GrandTotal.Digital,
				Hours:        day.GrandTotal.Hours,
				Minutes:      day.GrandTotal.Minutes,
				Text:         day.GrandTotal.Text,
				TotalSeconds: day.GrandTotal.TotalSeconds,
			},
			Range: model.WakatimeRange{
				Date:     day.Range.Date,
				Start:    day.Range.Start,
				End:      day.Range.End,
				Text:     day.Range.Text,
				Timezone: day.Range.Timezone,
			},
		})
	}
	return output, nil
}

// Stats fetches a percentage share chart: languages, editors, operating
// systems or categories.
func (c *Client) Stats(ctx context.Context, shareURL string) (*model.WakatimeStatsOutput, error) {
	var output model.WakatimeStatsOutput
	if err := c.get(ctx, shareURL, &output); err != nil {
		return nil, err
	}
	if output.Data == nil {
		output.Data = make([]model.WakatimeStat, 0)
	}
	return &output, nil
}
