package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KaramelBytes/mhdash/internal/dashboard"
	"github.com/KaramelBytes/mhdash/internal/render"
	"github.com/KaramelBytes/mhdash/internal/survey"
)

// apiError is the JSON error envelope.
type apiError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	RequestID string `json:"request_id,omitempty"`
	// Page status for charts that cannot be drawn
	PageStatus dashboard.Status `json:"page_status,omitempty"`
}

// classify maps an error onto an HTTP status and error code.
func classify(err error) (int, string) {
	var (
		nf *survey.NotFoundError
		qe *dashboard.QueryError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusServiceUnavailable, "data_not_found"
	case errors.As(err, &qe):
		return http.StatusBadRequest, "invalid_query"
	case errors.Is(err, errUnknownPage):
		return http.StatusNotFound, "unknown_page"
	case errors.Is(err, render.ErrNotDrawable):
		return http.StatusNotFound, "nothing_to_draw"
	case errors.Is(err, survey.ErrUnsupported):
		return http.StatusInternalServerError, "unsupported_data_format"
	}
	return http.StatusInternalServerError, "internal_error"
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	writeJSON(w, status, apiError{Code: code, Message: err.Error(), Status: status, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
