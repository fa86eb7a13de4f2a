package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	U "website/util"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	maxResponseBytes   = 10 << 20
	maxErrorBodyLength = 512
)

// ErrNotConfigured is returned by clients missing the credentials or urls
// they need.
var ErrNotConfigured = errors.New("integration not configured")

// StatusError is a non 2xx response from an upstream service.
type StatusError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.StatusCode)
}

// StatusCodeOf returns the upstream status carried by err, if any.
func StatusCodeOf(err error) (int, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode, true
	}
	return 0, false
}

// DoJSON sends the request and decodes a 2xx JSON body into out. Bodies of
// 204 responses are not decoded. Non 2xx responses return a *StatusError.
func DoJSON(client *http.Client, request *http.Request, service string, out interface{}) (int, error) {
	logCtx := log.WithField("service", service).WithField("url", request.URL.Path)

	response, err := client.Do(request)
	if err != nil {
		return 0, errors.Wrapf(err, "%s request failed", service)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return response.StatusCode, errors.Wrapf(err, "failed to read %s response", service)
	}

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		logCtx.WithField("response_status", response.StatusCode).
			WithField("response_body", U.TruncateString(string(body), maxErrorBodyLength)).
			Warn("Received error response on http request.")
		return response.StatusCode, &StatusError{
			Service:    service,
			StatusCode: response.StatusCode,
			Body:       U.TruncateString(string(body), maxErrorBodyLength),
		}
	}

	if response.StatusCode == http.StatusNoContent || out == nil {
		return response.StatusCode, nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		logCtx.WithError(err).Error("Failed to decode response body.")
		return response.StatusCode, errors.Wrapf(err, "failed to decode %s response", service)
	}
	return response.StatusCode, nil
}
