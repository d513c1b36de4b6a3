package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	"github.com/seanofahey/mcp-noaa-tides/internal/api"
	"github.com/seanofahey/mcp-noaa-tides/internal/directory"
	"github.com/seanofahey/mcp-noaa-tides/internal/models"
)

// SnapshotProvider fetches the full station set for one search.
type SnapshotProvider interface {
	StationSnapshot(ctx context.Context) ([]models.Station, error)
}

type SearchHandler struct {
	snapshots SnapshotProvider
}

func NewSearchHandler(snapshots SnapshotProvider) *SearchHandler {
	return &SearchHandler{snapshots: snapshots}
}

// HandleRequest serves station search over API Gateway. Each request
// works on its own fresh snapshot.
func (h *SearchHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	query, err := api.ParseQuery(request.QueryStringParameters)
	if err != nil {
		var missingErr api.MissingQueryError
		if errors.As(err, &missingErr) {
			return api.Error(err.Error(), http.StatusBadRequest)
		}
		return api.Error("Invalid parameters", http.StatusBadRequest)
	}

	stations, err := h.snapshots.StationSnapshot(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Station snapshot fetch failed")
		return api.Error("Error fetching stations", http.StatusBadGateway)
	}

	result := directory.Search(query, stations)
	log.Debug().Str("query", query).Int("count", result.Count).Msg("Station search")

	return api.Success(api.NewSearchResponse(result))
}
