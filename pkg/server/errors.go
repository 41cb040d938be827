package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	prvsnrerrors "github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/errors"
	"github.com/balajiramachandran-seagate/cortx-prvsnr/pkg/serializer"
)

// HTTPStatusFromCode maps a structured error code to an HTTP status.
func HTTPStatusFromCode(code string) int {
	switch code {
	case prvsnrerrors.ErrCodeInvalidRequest,
		prvsnrerrors.ErrCodeValidation,
		prvsnrerrors.ErrCodeSchema:
		return http.StatusBadRequest
	case prvsnrerrors.ErrCodeUndefinedPillar:
		return http.StatusNotFound
	case prvsnrerrors.ErrCodeRateLimit:
		return http.StatusTooManyRequests
	case prvsnrerrors.ErrCodeSaltFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code string) bool {
	switch code {
	case prvsnrerrors.ErrCodeSaltFailure,
		prvsnrerrors.ErrCodeRateLimit,
		prvsnrerrors.ErrCodeInternal:
		return true
	}
	return false
}

func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	merged := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

// WriteError writes an error response body.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps a structured error onto an HTTP error response. The
// fallback message is used when err carries no structured message.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallback string, details map[string]any) {

	code := prvsnrerrors.CodeOf(err)
	message := fallback

	var se *prvsnrerrors.StructuredError
	if errors.As(err, &se) {
		message = se.Message
		if se.Err != nil {
			details = mergeDetails(details, map[string]any{"error": se.Err.Error()})
		}
	} else if err != nil {
		details = mergeDetails(details, map[string]any{"error": err.Error()})
	}

	WriteError(w, r, HTTPStatusFromCode(code), code, message, retryableFromCode(code), details)
}
