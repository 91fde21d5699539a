package response

import (
	"encoding/json"
	"net/http"

	"roam/shared/constant"
	"roam/shared/failure"
	"roam/shared/logger"
)

// Base is the envelope every endpoint responds with. Data and Error are
// mutually exclusive.
type Base struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// WithMessage sends a successful response carrying only a message.
func WithMessage(writer http.ResponseWriter, code int, message string) {
	respond(writer, code, Base{Success: true, Message: message})
}

// WithJSON sends a successful response with a message and a data payload.
func WithJSON(writer http.ResponseWriter, code int, message string, data any) {
	respond(writer, code, Base{Success: true, Message: message, Data: data})
}

// WithError sends a failed response. The HTTP status is resolved from the
// failure code carried by err.
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	respond(writer, code, Base{Success: false, Message: http.StatusText(code), Error: err.Error()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	respond(writer, http.StatusTooManyRequests, Base{Success: false, Message: constant.ResponseErrorRequestLimitExceeded, Error: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	respond(writer, http.StatusServiceUnavailable, Base{Success: false, Message: constant.ResponseErrorPrepareShutdown, Error: constant.ResponseErrorPrepareShutdown})
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	respond(writer, http.StatusServiceUnavailable, Base{Success: false, Message: constant.ResponseErrorUnhealthy, Error: constant.ResponseErrorUnhealthy})
}

func respond(writer http.ResponseWriter, code int, payload Base) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	_, err = writer.Write(body)
	if err != nil {
		logger.ErrorWithStack(err)
	}
}
