package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"parts-finder/internal/fileio"
	"parts-finder/internal/middleware"
	"parts-finder/internal/search/model"
)

// apiError is what the client sees: an HTTP status and a stable code.
type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Code + ": " + e.Message }

func badRequest(code, msg string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Message: msg}
}

// toAPIError maps core error kinds to HTTP.
func toAPIError(err error) *apiError {
	var ae *apiError
	if errors.As(err, &ae) {
		return ae
	}
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &mbe):
		return &apiError{http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error()}
	case errors.Is(err, model.ErrFieldNotFound):
		return badRequest("FIELD_NOT_FOUND", err.Error())
	case errors.Is(err, model.ErrEmptyInput):
		return badRequest("SEARCH_TERMS_REQUIRED", err.Error())
	case errors.Is(err, model.ErrDatasetUnavailable):
		return &apiError{http.StatusNotFound, "FILE_NOT_FOUND", "File not found, please upload again"}
	case errors.Is(err, model.ErrMalformedSource):
		return badRequest("EXCEL_PARSE_ERROR", err.Error())
	case errors.Is(err, fileio.ErrUnsupported):
		return badRequest("INVALID_FILE_TYPE", err.Error())
	default:
		return &apiError{http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "An unexpected error occurred"}
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	ae := toAPIError(err)
	if ae.Status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Str("code", ae.Code).Msg("request rejected")
	}
	writeJSON(w, log, ae.Status, errorBody{Code: ae.Code, Message: ae.Message})
}

func writeJSON(w http.ResponseWriter, log zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write json")
	}
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("rid", rid).Logger()
	}
	return logger
}

// queryTerms reads searchTerms from a query string: either repeated
// parameters or one comma separated value.
func queryTerms(vals []string) []string {
	var out []string
	for _, v := range vals {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}

func modeFrom(s, def string) model.Mode {
	return model.ParseMode(strings.ToLower(strings.TrimSpace(s)), model.ParseMode(def, model.ModeCascade))
}
