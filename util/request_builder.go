package util

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// RequestBuilder builds http requests for handler tests.
type RequestBuilder struct {
	method  string
	url     string
	body    interface{}
	rawBody []byte
	headers map[string]string
	cookies []*http.Cookie
}

func NewRequestBuilder(method, url string) *RequestBuilder {
	return &RequestBuilder{
		method:  method,
		url:     url,
		headers: make(map[string]string),
	}
}

func (rb *RequestBuilder) WithPostParams(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithRawBody sends body as is, skipping json encoding.
func (rb *RequestBuilder) WithRawBody(body []byte) *RequestBuilder {
	rb.rawBody = body
	return rb
}

func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

func (rb *RequestBuilder) WithCookie(cookie *http.Cookie) *RequestBuilder {
	rb.cookies = append(rb.cookies, cookie)
	return rb
}

func (rb *RequestBuilder) Build() (*http.Request, error) {
	var body io.Reader = http.NoBody
	if rb.rawBody != nil {
		body = bytes.NewReader(rb.rawBody)
	} else if rb.body != nil {
		encoded, err := json.Marshal(rb.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(rb.method, rb.url, body)
	if err != nil {
		return nil, err
	}

	if body != http.NoBody {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}
	for _, cookie := range rb.cookies {
		req.AddCookie(cookie)
	}
	return req, nil
}
