package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/Mehak261124/AI-IDS/internal/errors"
)

// JSONEnvelope wraps command output in a consistent structure for machine
// parsing. All --json output uses this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Error codes for machine-readable output.
const (
	ErrCodeConfigNotFound = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "CONFIG_INVALID"
	ErrCodeServerDown     = "SERVER_UNREACHABLE"
	ErrCodeTunnelFailed   = "TUNNEL_FAILED"
	ErrCodeDownloadFailed = "DOWNLOAD_FAILED"
	ErrCodeBadInput       = "BAD_INPUT"
	ErrCodeUnknown        = "UNKNOWN"
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: true, Data: data})
}

// WriteJSONFromError converts an error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	return writeJSONEnvelope(w, JSONEnvelope{Success: false, Error: ErrorToJSON(err)})
}

func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts an error to a JSONError with code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	if aidsErr, ok := err.(*errors.Error); ok {
		return &JSONError{
			Code:       mapErrorCode(aidsErr.Code, aidsErr.Message),
			Message:    aidsErr.Message,
			Suggestion: aidsErr.Suggestion,
		}
	}

	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		if strings.Contains(strings.ToLower(message), "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrAPI:
		return ErrCodeServerDown
	case errors.ErrTunnel:
		return ErrCodeTunnelFailed
	case errors.ErrDownload:
		return ErrCodeDownloadFailed
	case errors.ErrInput:
		return ErrCodeBadInput
	}
	return ErrCodeUnknown
}
