package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// Stable error codes returned in the "code" field of error bodies.
const (
	CodeValidation        = "VALIDATION"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeOverOrder         = "OVER_ORDER"
	CodeInternal          = "INTERNAL"
)

type errorResponse struct {
	Code       string              `json:"code"`
	Error      string              `json:"error"`
	Fields     []domain.FieldError `json:"fields,omitempty"`
	Shortfalls []domain.Shortfall  `json:"shortfalls,omitempty"`
	RequestID  string              `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// writeDomainError maps the error taxonomy onto HTTP status codes. Only
// unexpected errors are logged; their message is never sent to the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	resp := errorResponse{Error: err.Error(), RequestID: ctxutil.RequestIDFromCtx(r.Context())}
	status := http.StatusInternalServerError

	var (
		validation *domain.ValidationError
		shortfall  *domain.InsufficientStockError
	)
	switch {
	case errors.As(err, &validation):
		status, resp.Code, resp.Fields = http.StatusBadRequest, CodeValidation, validation.Errors
	case errors.Is(err, domain.ErrValidation):
		status, resp.Code = http.StatusBadRequest, CodeValidation
	case errors.As(err, &shortfall):
		status, resp.Code, resp.Shortfalls = http.StatusConflict, CodeInsufficientStock, shortfall.Shortfalls
	case errors.Is(err, domain.ErrInvalidTransition):
		status, resp.Code = http.StatusConflict, CodeInvalidTransition
	case errors.Is(err, domain.ErrOverOrder):
		status, resp.Code = http.StatusConflict, CodeOverOrder
	case errors.Is(err, domain.ErrAlreadyExists):
		status, resp.Code = http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrNotFound):
		status, resp.Code = http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		status, resp.Code, resp.Error = http.StatusUnauthorized, CodeUnauthorized, "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		status, resp.Code, resp.Error = http.StatusForbidden, CodeForbidden, "forbidden"
	default:
		log.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		resp.Code, resp.Error = CodeInternal, "internal server error"
	}

	writeJSON(w, status, resp)
}

// decodeJSON reads a JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decode(w, r, v, false)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) error {
	return decode(w, r, v, true)
}

func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	err := dec.Decode(v)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		if optional {
			return nil
		}
		return domain.NewValidationError("body", "required")
	default:
		return domain.NewValidationError("body", fmt.Sprintf("invalid JSON: %v", err))
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

// queryUUID returns nil when the parameter is absent.
func queryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, domain.NewValidationError(name, "must be a UUID")
	}
	return &id, nil
}

// queryInt returns def when the parameter is absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, domain.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// queryDate accepts an RFC 3339 timestamp or a plain date, read as UTC
// midnight. It returns nil when the parameter is absent.
func queryDate(r *http.Request, name string) (*time.Time, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, domain.NewValidationError(name, "must be a date or an RFC 3339 timestamp")
}

// page reads limit and offset. A zero limit lets the service apply its default.
func page(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit", 0); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset", 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
