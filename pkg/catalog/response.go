package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

const (
	// ContentTypeJSON is the canonical content type of every JSON response
	ContentTypeJSON = "application/json"

	// ImageAddedMessage is the body returned by a successful attach-image
	ImageAddedMessage = "Image added successfully"

	// notFoundBody is emitted pre-serialized, not built from a value
	notFoundBody = `{"error":"not found"}`
)

func jsonHeaders() map[string]string {
	return map[string]string{"content-type": ContentTypeJSON}
}

// Respond wraps an already serialized body into a response. When withJSON is
// set the canonical content-type header is attached.
func Respond(status int, body string, withJSON bool) events.APIGatewayProxyResponse {
	resp := events.APIGatewayProxyResponse{
		StatusCode: status,
		Body:       body,
	}
	if withJSON {
		resp.Headers = jsonHeaders()
	}
	return resp
}

// RespondJSON serializes v and wraps it with the canonical content-type header
func RespondJSON(status int, v any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return events.APIGatewayProxyResponse{}, fmt.Errorf("failed to encode response body: %w", err)
	}
	return Respond(status, string(body), true), nil
}

// RespondNoContent returns the empty 204 response used by delete
func RespondNoContent() events.APIGatewayProxyResponse {
	return Respond(http.StatusNoContent, "", false)
}
