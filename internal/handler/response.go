package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"content-review-api/internal/model"
	"content-review-api/pkg/apierror"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its flat {"message": ...} body. Anything that
// is not a classified APIError is logged and reported as a generic 500; no
// internal detail reaches the client.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatus >= 500 {
			slog.Error("request failed", "code", apiErr.Code, "error", apiErr.Error())
		}
		writeJSON(w, apiErr.HTTPStatus, model.MessageResponse{Message: apiErr.Message})
		return
	}

	slog.Error("unhandled error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, model.MessageResponse{Message: "Internal server error"})
}
