// Package client calls the procedures of a running api over its JSON-RPC
// endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	M "website/model/model"
	"website/rpc"

	gjson "github.com/gorilla/rpc/json"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const rpcPath = "/rpc"

type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// New returns a client for the api served at baseURL.
func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, endpoint: strings.TrimRight(baseURL, "/") + rpcPath}
}

// WithToken authenticates the calls made by the client as bearer of token.
func (client *Client) WithToken(token string) *Client {
	copied := *client
	copied.token = token
	return &copied
}

// Call invokes method with input, decoding its result into output.
// Procedure failures are returned as *rpc.Error.
func (client *Client) Call(ctx context.Context, method string, input, output interface{}) error {
	payload, err := gjson.EncodeClientRequest(method, input)
	if err != nil {
		return errors.Wrap(err, "failed to encode request")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	if client.token != "" {
		request.Header.Set("Authorization", "Bearer "+client.token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		log.WithError(err).WithField("method", method).Error("Rpc request failed.")
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", method)
	}

	var envelope responseError
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	if envelope.Error != nil {
		return procedureError(envelope.Error, response.StatusCode)
	}

	if err := gjson.DecodeClientResponse(bytes.NewReader(body), output); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	return nil
}

// responseError is the error member of a JSON-RPC response. The json
// codec flattens it into a string, so it is read before the result.
type responseError struct {
	Error *json.RawMessage `json:"error"`
}

func procedureError(raw *json.RawMessage, status int) *rpc.Error {
	procedureErr := &rpc.Error{}
	if json.Unmarshal(*raw, procedureErr) != nil || procedureErr.Code == "" {
		procedureErr = rpc.Internal(nil)
	}
	procedureErr.Status = status
	return procedureErr
}

func (client *Client) HealthCheck(ctx context.Context) (*M.HealthStatus, error) {
	var output M.HealthStatus
	if err := client.Call(ctx, "health.check", nil, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

// HealthDetailed requires a client WithToken.
func (client *Client) HealthDetailed(ctx context.Context) (*M.HealthDetailed, error) {
	var output M.HealthDetailed
	if err := client.Call(ctx, "health.detailed", nil, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

func (client *Client) GuestbookList(ctx context.Context, limit, offset int) ([]M.GuestbookEntry, error) {
	output := make([]M.GuestbookEntry, 0)
	err := client.Call(ctx, "guestbook.list", M.ListInput{Limit: limit, Offset: offset}, &output)
	return output, err
}

func (client *Client) GuestbookCreate(ctx context.Context, name, message string) (*M.GuestbookEntry, error) {
	var output M.GuestbookEntry
	input := M.CreateGuestbookEntryInput{Name: name, Message: message}
	if err := client.Call(ctx, "guestbook.create", input, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

func (client *Client) GuestbookRemove(ctx context.Context, id string) (*M.GuestbookEntry, error) {
	var output M.GuestbookEntry
	if err := client.Call(ctx, "guestbook.remove", M.IDInput{ID: id}, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

func (client *Client) TodoList(ctx context.Context, limit, offset int) ([]M.TodoEntry, error) {
	output := make([]M.TodoEntry, 0)
	err := client.Call(ctx, "todo.list", M.ListInput{Limit: limit, Offset: offset}, &output)
	return output, err
}

// ClarityProjectLiveInsights returns the export as sent by Clarity. Nil
// dimensions are sent as null, asking for no breakdown.
func (client *Client) ClarityProjectLiveInsights(ctx context.Context,
	input M.ClarityInsightsInput) (json.RawMessage, error) {

	var output json.RawMessage
	if err := client.Call(ctx, "clarity.project-live-insights", input, &output); err != nil {
		return nil, err
	}
	return output, nil
}

func (client *Client) GithubContributions(ctx context.Context,
	input M.ContributionsInput) (*M.ContributionsOutput, error) {

	var output M.ContributionsOutput
	if err := client.Call(ctx, "github.contributions", input, &output); err != nil {
		return nil, err
	}
	return &output, nil
}

func (client *Client) SpotifyCurrentlyPlaying(ctx context.Context) (*M.NowPlaying, error) {
	var output M.NowPlaying
	if err := client.Call(ctx, "spotify.currently-playing", nil, &output); err != nil {
		return nil, err
	}
	return &output, nil
}
