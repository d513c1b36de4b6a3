package tools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/seanofahey/mcp-noaa-tides/internal/directory"
	"github.com/seanofahey/mcp-noaa-tides/internal/models"
	"github.com/seanofahey/mcp-noaa-tides/internal/noaa"
)

// stationAPI is the slice of the NOAA client the tool handlers need.
type stationAPI interface {
	StationSnapshot(ctx context.Context) ([]models.Station, error)
	WaterLevels(ctx context.Context, stationID string, opts noaa.DataOptions) (json.RawMessage, error)
	TidePredictions(ctx context.Context, stationID string, opts noaa.PredictionOptions) (json.RawMessage, error)
	StationInfo(ctx context.Context, stationID string, expand []string) (json.RawMessage, error)
}

// Handler owns the tool implementations the MCP server exposes.
type Handler struct {
	noaa stationAPI
}

func NewHandler(noaaClient stationAPI) *Handler {
	return &Handler{noaa: noaaClient}
}

// Register adds all four NOAA tools to the server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("search_stations",
		mcp.WithDescription("Search NOAA tide stations by name or state. Returns matching stations with their available data products, best matches first."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text search, e.g. \"Cambridge, MD\". Comma-separated parts are matched independently."),
		),
	), h.SearchStations)

	s.AddTool(mcp.NewTool("get_water_levels",
		mcp.WithDescription("Get observed water level data for a station. Covers today unless both begin_date and end_date are given."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description("The 7-digit station ID")),
		mcp.WithString("begin_date", mcp.Description("Start date in yyyyMMdd format")),
		mcp.WithString("end_date", mcp.Description("End date in yyyyMMdd format")),
		mcp.WithString("datum", mcp.Description("Vertical datum (default MLLW)")),
		mcp.WithString("time_zone", mcp.Description("Time zone (default gmt)")),
		mcp.WithString("units", mcp.Description("Units of measurement (default english)")),
	), h.GetWaterLevels)

	s.AddTool(mcp.NewTool("get_tide_predictions",
		mcp.WithDescription("Get tide predictions for a station. Covers today unless both begin_date and end_date are given."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description("The 7-digit station ID")),
		mcp.WithString("begin_date", mcp.Description("Start date in yyyyMMdd format")),
		mcp.WithString("end_date", mcp.Description("End date in yyyyMMdd format")),
		mcp.WithString("datum", mcp.Description("Vertical datum (default MLLW)")),
		mcp.WithString("time_zone", mcp.Description("Time zone (default gmt)")),
		mcp.WithString("units", mcp.Description("Units of measurement (default english)")),
		mcp.WithString("interval", mcp.Description("Prediction interval (default hilo for high/low tides)")),
	), h.GetTidePredictions)

	s.AddTool(mcp.NewTool("get_station_info",
		mcp.WithDescription("Get metadata for a specific station."),
		mcp.WithString("station_id", mcp.Required(), mcp.Description("The 7-digit station ID")),
		mcp.WithArray("expand",
			mcp.Description("Additional resources to include, e.g. [\"details\", \"sensors\", \"datums\"]"),
			mcp.Items(map[string]any{"type": "string"}),
		),
	), h.GetStationInfo)
}

// SearchStations fetches a fresh station snapshot and filters it. The
// snapshot fetch is the only fallible step; the search itself is pure.
func (h *Handler) SearchStations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return errorResult(err), nil
	}

	stations, err := h.noaa.StationSnapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Station snapshot fetch failed")
		return errorResult(err), nil
	}

	result := directory.Search(query, stations)
	log.Debug().Str("query", query).Int("count", result.Count).Msg("Station search")

	return jsonResult(result), nil
}

func (h *Handler) GetWaterLevels(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := request.RequireString("station_id")
	if err != nil {
		return errorResult(err), nil
	}

	raw, err := h.noaa.WaterLevels(ctx, stationID, noaa.DataOptions{
		BeginDate: request.GetString("begin_date", ""),
		EndDate:   request.GetString("end_date", ""),
		Datum:     request.GetString("datum", ""),
		TimeZone:  request.GetString("time_zone", ""),
		Units:     request.GetString("units", ""),
	})
	if err != nil {
		log.Error().Err(err).Str("station_id", stationID).Msg("Water levels fetch failed")
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(string(raw)), nil
}

func (h *Handler) GetTidePredictions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := request.RequireString("station_id")
	if err != nil {
		return errorResult(err), nil
	}

	raw, err := h.noaa.TidePredictions(ctx, stationID, noaa.PredictionOptions{
		DataOptions: noaa.DataOptions{
			BeginDate: request.GetString("begin_date", ""),
			EndDate:   request.GetString("end_date", ""),
			Datum:     request.GetString("datum", ""),
			TimeZone:  request.GetString("time_zone", ""),
			Units:     request.GetString("units", ""),
		},
		Interval: request.GetString("interval", ""),
	})
	if err != nil {
		log.Error().Err(err).Str("station_id", stationID).Msg("Tide predictions fetch failed")
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(string(raw)), nil
}

func (h *Handler) GetStationInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stationID, err := request.RequireString("station_id")
	if err != nil {
		return errorResult(err), nil
	}

	raw, err := h.noaa.StationInfo(ctx, stationID, request.GetStringSlice("expand", nil))
	if err != nil {
		log.Error().Err(err).Str("station_id", stationID).Msg("Station info fetch failed")
		return errorResult(err), nil
	}

	return mcp.NewToolResultText(string(raw)), nil
}

// errorResult wraps a failure into the {"error": "..."} object callers
// expect as the tool payload. Failures stay in-band; the protocol-level
// error channel is not used.
func errorResult(err error) *mcp.CallToolResult {
	payload, marshalErr := json.Marshal(struct {
		Error string `json:"error"`
	}{Error: err.Error()})
	if marshalErr != nil {
		return mcp.NewToolResultText(`{"error": "internal error"}`)
	}
	return mcp.NewToolResultText(string(payload))
}

func jsonResult(v any) *mcp.CallToolResult {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return mcp.NewToolResultText(string(payload))
}
