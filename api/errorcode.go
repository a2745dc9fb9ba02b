package api

import (
	"net/http"

	"github.com/reliefhub/relief-api/fault"
)

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",

		1101: "account not found",

		1200: "resource not found",
		1201: "invalid status transition",
		1202: "conflicting update",
		1203: "cannot accept your own request",
		1204: "not authorized",
		1205: "not available",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters = errorJSON(1010)

	errorAccountNotFound = errorJSON(1101)

	errorNotFound          = errorJSON(1200)
	errorInvalidTransition = errorJSON(1201)
	errorConflict          = errorJSON(1202)
	errorSelfAccept        = errorJSON(1203)
	errorNotAuthorized     = errorJSON(1204)
	errorNotAvailable      = errorJSON(1205)
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// faultResponse maps a service error to its http status and error object.
// Classified errors keep their own message.
func faultResponse(err error) (int, ErrorResponse) {
	var status int
	var resp ErrorResponse

	switch fault.KindOf(err) {
	case fault.Validation:
		status, resp = http.StatusBadRequest, errorInvalidParameters
	case fault.NotAuthorized:
		status, resp = http.StatusForbidden, errorNotAuthorized
	case fault.InvalidTransition:
		status, resp = http.StatusBadRequest, errorInvalidTransition
	case fault.Conflict:
		status, resp = http.StatusConflict, errorConflict
	case fault.NotFound:
		status, resp = http.StatusNotFound, errorNotFound
	case fault.NotAvailable:
		status, resp = http.StatusBadRequest, errorNotAvailable
	case fault.SelfAccept:
		status, resp = http.StatusBadRequest, errorSelfAccept
	default:
		return http.StatusInternalServerError, errorInternalServer
	}

	resp.Message = fault.Message(err)
	return status, resp
}
