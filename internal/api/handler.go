package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/seanofahey/mcp-noaa-tides/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type SearchResponse struct {
	APIResponse
	Stations []models.AnnotatedStation `json:"stations"`
	Count    int                       `json:"count"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewSearchResponse(result models.SearchResult) *SearchResponse {
	return &SearchResponse{
		APIResponse: APIResponse{ResponseType: "stations"},
		Stations:    result.Stations,
		Count:       result.Count,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// ParseQuery extracts the free-text station query from request
// parameters. The query must be present; an all-whitespace value is
// accepted (it matches everything, same as the tool surface).
func ParseQuery(params map[string]string) (string, error) {
	query, ok := params["q"]
	if !ok {
		return "", MissingQueryError{}
	}
	return query, nil
}

type MissingQueryError struct{}

func (e MissingQueryError) Error() string {
	return "Missing required parameter: q"
}
