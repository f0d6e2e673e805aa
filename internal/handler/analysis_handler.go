package handler

import (
	"encoding/json"
	"net/http"

	"content-review-api/internal/middleware"
	"content-review-api/internal/model"
	"content-review-api/internal/service"
	"content-review-api/pkg/apierror"
)

type AnalysisHandler struct {
	service *service.AnalysisService
}

func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Internal("Internal server error", "auth identity missing from context"))
		return
	}

	var payload model.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("No text content provided"))
		return
	}

	analysis, err := h.service.Analyze(r.Context(), user.ID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}
