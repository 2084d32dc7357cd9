package analyze

import (
	"net/http"

	auditUC "readability-audit/internal/usecase/audit"
)

// Register registers all analysis-related HTTP handlers with the given mux.
// It sets up routes for analyzing raw text, auditing live pages, retrieving
// recent audit results, and listing supported languages.
func Register(mux *http.ServeMux, svc *auditUC.Service, store *ResultStore) {
	mux.Handle("POST /v1/analyze", AnalyzeHandler{Svc: svc})
	mux.Handle("POST /v1/audit", AuditHandler{Svc: svc, Store: store})
	mux.Handle("GET /v1/audits/", GetResultHandler{Store: store})
	mux.Handle("GET /v1/languages", LanguagesHandler{})
	mux.Handle("GET /v1/languages/", LanguageHandler{})
}
