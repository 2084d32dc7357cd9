package analyze

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	hhttp "readability-audit/internal/handler/http"
	"readability-audit/internal/handler/http/pathutil"
	"readability-audit/internal/handler/http/respond"
	auditUC "readability-audit/internal/usecase/audit"
	"readability-audit/pkg/readability"
)

// maxAuditLanguages bounds the number of languages a single audit request
// may ask for.
const maxAuditLanguages = 6

// AuditHandler handles POST /v1/audit: fetch one page and audit it in the
// requested languages. The fetch runs synchronously within the request, so
// callers should expect latencies in the seconds range for slow origins.
type AuditHandler struct {
	Svc   *auditUC.Service
	Store *ResultStore
}

func (h AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL       string   `json:"url"`
		Languages []string `json:"languages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return
	}
	if req.URL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}
	if u, err := url.Parse(req.URL); err != nil || u.Scheme == "" || u.Host == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url must be absolute"))
		return
	}
	if len(req.Languages) > maxAuditLanguages {
		respond.SafeError(w, http.StatusBadRequest, errors.New("too many languages requested"))
		return
	}
	for _, lang := range req.Languages {
		if !readability.IsSupportedLanguage(lang) {
			respond.SafeError(w, http.StatusBadRequest, errors.New("unsupported language: "+lang))
			return
		}
	}

	results, err := h.Svc.AuditTargets(r.Context(), []auditUC.Target{
		{URL: req.URL, Languages: req.Languages},
	})
	if err != nil {
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	if len(results) == 0 {
		// the fetch or extraction failed; AuditTargets logged the cause
		respond.SafeError(w, http.StatusBadGateway, errors.New("page could not be audited"))
		return
	}

	if h.Store != nil {
		h.Store.Add(results...)
	}
	for _, result := range results {
		hhttp.RecordAnalysis(result.Language, true, 0)
	}

	out := make([]ResultDTO, 0, len(results))
	for _, result := range results {
		out = append(out, toDTO(result))
	}
	respond.JSON(w, http.StatusOK, map[string][]ResultDTO{"results": out})
}

// GetResultHandler handles GET /v1/audits/{id}: retrieve a recent audit
// result by ID. Results are held in a bounded in-memory store, so old
// entries eventually return 404.
type GetResultHandler struct {
	Store *ResultStore
}

func (h GetResultHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractUUID(r.URL.Path, "/v1/audits/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	result, ok := h.Store.Get(id.String())
	if !ok {
		respond.SafeError(w, http.StatusNotFound, errors.New("audit result not found"))
		return
	}

	respond.JSON(w, http.StatusOK, toDTO(result))
}
