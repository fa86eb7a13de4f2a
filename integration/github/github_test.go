package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"website/integration"

	"github.com/stretchr/testify/assert"
)

func TestContributions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/octocat", r.URL.Path)
		assert.Equal(t, "2023", r.URL.Query().Get("y"))
		w.Write([]byte(`{"total":{"2023":3},"contributions":[
			{"date":"2023-01-01","count":1,"level":1},
			{"date":"2023-01-02","count":2,"level":2}]}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL)
	output, err := client.Contributions(context.Background(), "octocat", "2023")
	assert.Nil(t, err)
	assert.Equal(t, 3, output.Total["2023"])
	assert.Len(t, output.Contributions, 2)
	assert.Equal(t, "2023-01-02", output.Contributions[1].Date)
	assert.Nil(t, output.Nested)
}

func TestContributionsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(server.Client(), server.URL).Contributions(context.Background(), "ghost", "last")
	code, ok := integration.StatusCodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, code)
}
