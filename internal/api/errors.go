package api

import (
	"encoding/json"
	"net/http"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

var statusByCode = map[errors.Code]int{
	errors.ErrCodeNoSuchPath:           http.StatusNotFound,
	errors.ErrCodeNoManifest:           http.StatusNotFound,
	errors.ErrCodeUnparsableMainFile:   http.StatusUnprocessableEntity,
	errors.ErrCodeAmbiguousEnvironment: http.StatusConflict,
	errors.ErrCodeUnsupportedOperation: http.StatusBadRequest,
	errors.ErrCodeNotImplemented:       http.StatusNotImplemented,
	errors.ErrCodeAuditInconclusive:    http.StatusUnprocessableEntity,
	errors.ErrCodeInvalidInput:         http.StatusBadRequest,
	errors.ErrCodeInvalidPackage:       http.StatusBadRequest,
	errors.ErrCodeInvalidFormat:        http.StatusBadRequest,
}

func statusFor(code errors.Code) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
