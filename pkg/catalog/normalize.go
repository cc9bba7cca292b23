package catalog

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

type validationBody struct {
	Errors []string `json:"errors"`
}

type messageBody struct {
	Error string `json:"error"`
}

// Normalize maps a handler failure to its client response. Validation and
// malformed input failures become 400, not found becomes 404. Any other error
// is returned unchanged so the invocation fails.
//
// The 404 body is a pre-serialized literal while the 400 bodies are encoded
// from values; clients depend on both shapes as they are.
func Normalize(err error) (events.APIGatewayProxyResponse, error) {
	var f *Failure
	if !errors.As(err, &f) {
		return events.APIGatewayProxyResponse{}, err
	}

	switch f.Kind {
	case KindValidation:
		messages := f.Errors
		if messages == nil {
			messages = []string{}
		}
		return RespondJSON(http.StatusBadRequest, validationBody{Errors: messages})
	case KindMalformedInput:
		return RespondJSON(http.StatusBadRequest, messageBody{
			Error: fmt.Sprintf(`invalid request body format : "%s"`, parserMessage(f.Err)),
		})
	case KindNotFound:
		return Respond(http.StatusNotFound, notFoundBody, true), nil
	default:
		return events.APIGatewayProxyResponse{}, err
	}
}

func parserMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
