package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanofahey/mcp-noaa-tides/internal/models"
)

func TestSuccess(t *testing.T) {
	t.Parallel()

	result := models.SearchResult{
		Stations: []models.AnnotatedStation{
			{Station: models.Station{ID: "9447130", Name: "Seattle", State: "WA"}},
		},
		Count: 1,
	}

	resp, err := Success(NewSearchResponse(result))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var body SearchResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "stations", body.ResponseType)
	assert.Equal(t, 1, body.Count)
	assert.Equal(t, "Seattle", body.Stations[0].Name)
}

func TestError(t *testing.T) {
	t.Parallel()

	resp, err := Error("Error fetching stations", http.StatusBadGateway)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, "error", body.ResponseType)
	assert.Equal(t, "Error fetching stations", body.Error)
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	query, err := ParseQuery(map[string]string{"q": "Cambridge, MD"})
	require.NoError(t, err)
	assert.Equal(t, "Cambridge, MD", query)

	// Empty value is accepted; it matches every station downstream.
	query, err = ParseQuery(map[string]string{"q": ""})
	require.NoError(t, err)
	assert.Empty(t, query)

	_, err = ParseQuery(map[string]string{})
	require.Error(t, err)
	assert.IsType(t, MissingQueryError{}, err)
}
