package civic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepresentatives_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/representatives", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.Equal(t, "123 Main St, Columbus, OH", r.URL.Query().Get("address"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RepresentativesResponse{
			Divisions: map[string]Division{
				"ocd-division/country:us/state:oh/sldl:4": {
					Name:          "Ohio State House district 4",
					OfficeIndices: []int{0},
				},
			},
			Offices: []Office{
				{
					Name:            "OH State House District 4",
					DivisionID:      "ocd-division/country:us/state:oh/sldl:4",
					OfficialIndices: []int{0},
				},
			},
			Officials: []Official{
				{Name: "Jane Smith", Party: "Republican Party"},
			},
		})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(context.Background(), "123 Main St, Columbus, OH")

	require.NoError(t, err)
	require.Len(t, resp.Divisions, 1)
	div := resp.Divisions["ocd-division/country:us/state:oh/sldl:4"]
	assert.Equal(t, "Ohio State House district 4", div.Name)
	assert.Equal(t, []int{0}, div.OfficeIndices)
	require.Len(t, resp.Offices, 1)
	assert.Equal(t, []int{0}, resp.Offices[0].OfficialIndices)
	require.Len(t, resp.Officials, 1)
	assert.Equal(t, "Jane Smith", resp.Officials[0].Name)
	assert.Equal(t, "Republican Party", resp.Officials[0].Party)
}

func TestRepresentatives_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"code": 429, "message": "Quota exceeded"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(context.Background(), "123 Main St")

	assert.Nil(t, resp)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, se.HTTPStatus())
	assert.Contains(t, se.Body, "Quota exceeded")
}

func TestRepresentatives_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 400, "message": "Failed to parse address"}}`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(context.Background(), "not an address")

	assert.Nil(t, resp)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Contains(t, err.Error(), "400")
}

func TestRepresentatives_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"divisions": [not json`))
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(context.Background(), "123 Main St")

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal")
}

func TestRepresentatives_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(ctx, "123 Main St")

	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestRepresentatives_EmptyDivisions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RepresentativesResponse{})
	}))
	defer srv.Close()

	client := NewClient("test-key", WithBaseURL(srv.URL))
	resp, err := client.Representatives(context.Background(), "123 Main St")

	require.NoError(t, err)
	assert.Empty(t, resp.Divisions)
	assert.Empty(t, resp.Offices)
	assert.Empty(t, resp.Officials)
}
