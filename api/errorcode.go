package api

import "github.com/bitmark-inc/confirm-trends/loader"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1400: loader.ErrUnknownCountry.Error(),
		1401: "confirm data-set is not ready",
	}

	errorInternalServer = errorJSON(999)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorUnknownCountry  = errorJSON(1400)
	errorDatasetNotReady = errorJSON(1401)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
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
