package noaa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/seanofahey/mcp-noaa-tides/internal/models"
	"github.com/seanofahey/mcp-noaa-tides/pkg/http/client"
)

const (
	dataPath     = "/api/prod/datagetter"
	metadataPath = "/mdapi/prod/webapi/stations"
)

// APIError is a non-2xx response from a NOAA endpoint.
type APIError struct {
	StatusCode int
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("NOAA API error: status %d from %s", e.StatusCode, e.Path)
}

// Client wraps the CO-OPS data and metadata APIs. Data product responses
// are passed through verbatim as JSON; only the station list is decoded,
// because the directory filters and annotates it.
type Client struct {
	httpClient client.Interface
}

func NewClient(httpClient client.Interface) *Client {
	return &Client{httpClient: httpClient}
}

// StationSnapshot fetches the full station list with product metadata.
// Every call hits the API; snapshot freshness is the caller's contract,
// and records live only for the duration of one query.
func (c *Client) StationSnapshot(ctx context.Context) ([]models.Station, error) {
	path := metadataPath + ".json?expand=products"
	resp, err := c.httpClient.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Path: metadataPath}
	}

	var listing struct {
		Stations []models.Station `json:"stations"`
	}
	if err := json.Unmarshal(resp.Body, &listing); err != nil {
		return nil, fmt.Errorf("decoding station list: %w", err)
	}

	log.Debug().Int("station_count", len(listing.Stations)).Msg("Fetched station snapshot")

	return listing.Stations, nil
}

// WaterLevels returns observed water level data for a station as raw
// JSON from the data API.
func (c *Client) WaterLevels(ctx context.Context, stationID string, opts DataOptions) (json.RawMessage, error) {
	values := url.Values{}
	opts.apply(values, stationID, "water_level")
	return c.getJSON(ctx, dataPath+"?"+values.Encode())
}

// TidePredictions returns tide predictions for a station as raw JSON
// from the data API.
func (c *Client) TidePredictions(ctx context.Context, stationID string, opts PredictionOptions) (json.RawMessage, error) {
	values := url.Values{}
	opts.apply(values, stationID)
	return c.getJSON(ctx, dataPath+"?"+values.Encode())
}

// StationInfo returns metadata for a single station as raw JSON.
// Recognized expand values include "details", "sensors" and "datums";
// they are forwarded comma-joined, unvalidated, the way the metadata
// API accepts them.
func (c *Client) StationInfo(ctx context.Context, stationID string, expand []string) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/%s.json", metadataPath, url.PathEscape(stationID))
	if len(expand) > 0 {
		values := url.Values{}
		values.Set("expand", strings.Join(expand, ","))
		path += "?" + values.Encode()
	}
	return c.getJSON(ctx, path)
}

func (c *Client) getJSON(ctx context.Context, path string) (json.RawMessage, error) {
	resp, err := c.httpClient.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Path: path}
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("invalid JSON response from %s", path)
	}
	return resp.Body, nil
}
