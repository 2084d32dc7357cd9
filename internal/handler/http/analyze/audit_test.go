package analyze_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"readability-audit/internal/domain/entity"
	"readability-audit/internal/handler/http/analyze"
)

const pageText = "The cat sits on the mat. It is a warm day. The sun is out."

func newAuditHandler(fetcher *stubFetcher) (analyze.AuditHandler, *analyze.ResultStore) {
	store := analyze.NewResultStore(0)
	return analyze.AuditHandler{Svc: newTestService(fetcher), Store: store}, store
}

func TestAuditHandler_Success(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://example.com/post"] = &entity.Page{
		URL:       "https://example.com/post",
		Language:  "english",
		Title:     "A post",
		Text:      pageText,
		FetchedAt: time.Now(),
	}
	h, store := newAuditHandler(fetcher)

	w := postJSON(t, h, "/v1/audit", `{"url": "https://example.com/post"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var out struct {
		Results []analyze.ResultDTO `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Results) != 1 {
		t.Fatalf("got %d results, want 1 (page language fallback)", len(out.Results))
	}

	result := out.Results[0]
	if result.PageURL != "https://example.com/post" {
		t.Errorf("PageURL = %q", result.PageURL)
	}
	if result.Language != "english" {
		t.Errorf("Language = %q, want english (from page)", result.Language)
	}
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("Score = %v, want within [0, 100]", result.Score)
	}

	// the result must be retrievable afterwards
	if _, ok := store.Get(result.ID); !ok {
		t.Errorf("result %s not stored", result.ID)
	}
}

func TestAuditHandler_MultipleLanguages(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://example.com/post"] = &entity.Page{
		URL:      "https://example.com/post",
		Language: "english",
		Text:     pageText,
	}
	h, _ := newAuditHandler(fetcher)

	w := postJSON(t, h, "/v1/audit",
		`{"url": "https://example.com/post", "languages": ["english", "german", "spa"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var out struct {
		Results []analyze.ResultDTO `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(out.Results))
	}

	seen := map[string]bool{}
	for _, r := range out.Results {
		seen[r.Language] = true
	}
	for _, want := range []string{"english", "german", "spanish"} {
		if !seen[want] {
			t.Errorf("no result for %s: %v", want, seen)
		}
	}
}

func TestAuditHandler_BadRequests(t *testing.T) {
	h, _ := newAuditHandler(newStubFetcher())

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", `{not json`},
		{"missing url", `{"languages": ["english"]}`},
		{"relative url", `{"url": "/just/a/path"}`},
		{"no scheme", `{"url": "example.com/post"}`},
		{"unsupported language", `{"url": "https://example.com", "languages": ["klingon"]}`},
		{"too many languages", `{"url": "https://example.com", "languages": ["eng", "deu", "spa", "ita", "fra", "nld", "eng"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h, "/v1/audit", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestAuditHandler_FetchFailure(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.err = errors.New("connection refused")
	h, _ := newAuditHandler(fetcher)

	// page failures are skipped inside the audit run, so no results come back
	w := postJSON(t, h, "/v1/audit", `{"url": "https://unreachable.example.com"}`)
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502: %s", w.Code, w.Body.String())
	}
}

func TestGetResultHandler(t *testing.T) {
	fetcher := newStubFetcher()
	fetcher.pages["https://example.com/post"] = &entity.Page{
		URL:      "https://example.com/post",
		Language: "english",
		Text:     pageText,
	}
	h, store := newAuditHandler(fetcher)

	w := postJSON(t, h, "/v1/audit", `{"url": "https://example.com/post"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("audit status = %d, want 200", w.Code)
	}
	var posted struct {
		Results []analyze.ResultDTO `json:"results"`
	}
	if err := json.NewDecoder(w.Body).Decode(&posted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	id := posted.Results[0].ID

	getHandler := analyze.GetResultHandler{Store: store}

	t.Run("found", func(t *testing.T) {
		w := getPath(t, getHandler, "/v1/audits/"+id)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
		var out analyze.ResultDTO
		if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if out.ID != id {
			t.Errorf("ID = %q, want %q", out.ID, id)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := getPath(t, getHandler, "/v1/audits/550e8400-e29b-41d4-a716-446655440000")
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		w := getPath(t, getHandler, "/v1/audits/not-a-uuid")
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
