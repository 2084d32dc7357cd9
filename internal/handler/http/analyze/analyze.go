package analyze

import (
	"encoding/json"
	"errors"
	"net/http"

	hhttp "readability-audit/internal/handler/http"
	"readability-audit/internal/handler/http/respond"
	auditUC "readability-audit/internal/usecase/audit"
	"readability-audit/pkg/readability"
)

// maxTextBytes bounds the text accepted by the analyze endpoint. The global
// body limit is higher; this keeps a single analysis from monopolizing the
// syllable cache.
const maxTextBytes = 1 << 20 // 1MB

// AnalyzeHandler handles POST /v1/analyze: score a block of text directly,
// without fetching anything.
type AnalyzeHandler struct {
	Svc *auditUC.Service
}

func (h AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text             string `json:"text"`
		Language         string `json:"language"`
		ComplexThreshold int    `json:"complex_threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.Text == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("text is required"))
		return
	}
	if len(req.Text) > maxTextBytes {
		respond.SafeError(w, http.StatusBadRequest, errors.New("text too long"))
		return
	}
	if req.ComplexThreshold < 0 {
		respond.SafeError(w, http.StatusBadRequest, errors.New("complex_threshold cannot be negative"))
		return
	}

	var opts []readability.Option
	if req.ComplexThreshold > 0 {
		opts = append(opts, readability.WithComplexThreshold(req.ComplexThreshold))
	}

	result, err := h.Svc.AuditText(r.Context(), req.Text, req.Language, opts...)
	if err != nil {
		hhttp.RecordAnalysis(readability.NormalizeLanguage(req.Language), false, len(req.Text))
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	hhttp.RecordAnalysis(result.Language, true, len(req.Text))
	respond.JSON(w, http.StatusOK, toDTO(result))
}
