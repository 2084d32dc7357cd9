package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(handler http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", nil)
	req.RemoteAddr = remoteAddr
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		requests       int
		expectedStatus []int
	}{
		{
			name: "all within limit", limit: 5, requests: 5,
			expectedStatus: []int{200, 200, 200, 200, 200},
		},
		{
			name: "request over the limit is rejected", limit: 5, requests: 6,
			expectedStatus: []int{200, 200, 200, 200, 200, 429},
		},
		{
			name: "rejection repeats while over limit", limit: 3, requests: 5,
			expectedStatus: []int{200, 200, 200, 429, 429},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRateLimiter(tt.limit, time.Minute).Limit(okHandler())

			for i := 0; i < tt.requests; i++ {
				if code := doRequest(handler, "192.168.1.1:12345"); code != tt.expectedStatus[i] {
					t.Errorf("request %d: got status %d, want %d", i+1, code, tt.expectedStatus[i])
				}
			}
		})
	}
}

func TestRateLimiter_WindowSlides(t *testing.T) {
	handler := NewRateLimiter(5, time.Second).Limit(okHandler())

	for i := 0; i < 5; i++ {
		if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusOK {
			t.Fatalf("request %d: got status %d, want 200", i+1, code)
		}
	}
	if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusTooManyRequests {
		t.Fatalf("over-limit request: got status %d, want 429", code)
	}

	time.Sleep(1100 * time.Millisecond)

	if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusOK {
		t.Errorf("after window expiry: got status %d, want 200", code)
	}
}

func TestRateLimiter_PerIPBuckets(t *testing.T) {
	handler := NewRateLimiter(3, time.Minute).Limit(okHandler())

	for i := 0; i < 3; i++ {
		if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusOK {
			t.Fatalf("first IP request %d: got %d", i+1, code)
		}
	}
	if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusTooManyRequests {
		t.Fatalf("first IP over limit: got %d, want 429", code)
	}

	// A different source address gets its own bucket.
	for i := 0; i < 3; i++ {
		if code := doRequest(handler, "192.168.1.2:12345"); code != http.StatusOK {
			t.Errorf("second IP request %d: got %d, want 200", i+1, code)
		}
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	handler := NewRateLimiter(10, time.Second).Limit(okHandler())

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount, blockedCount := 0, 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			code := doRequest(handler, "192.168.1.1:12345")
			mu.Lock()
			defer mu.Unlock()
			switch code {
			case http.StatusOK:
				okCount++
			case http.StatusTooManyRequests:
				blockedCount++
			}
		}()
	}
	wg.Wait()

	if okCount != 10 || blockedCount != 10 {
		t.Errorf("got %d allowed / %d blocked, want 10/10", okCount, blockedCount)
	}
}

func TestRateLimiter_ExpiredRecordsDoNotCount(t *testing.T) {
	handler := NewRateLimiter(5, 100*time.Millisecond).Limit(okHandler())

	for i := 0; i < 3; i++ {
		doRequest(handler, "192.168.1.1:12345")
	}

	time.Sleep(150 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if code := doRequest(handler, "192.168.1.1:12345"); code != http.StatusOK {
			t.Errorf("request %d after expiry: got %d, want 200", i+1, code)
		}
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		wantIP     string
	}{
		{name: "X-Forwarded-For single IP", remoteAddr: "192.168.1.1:12345", xff: "203.0.113.195", wantIP: "203.0.113.195"},
		{name: "X-Forwarded-For chain takes first hop", remoteAddr: "192.168.1.1:12345", xff: "203.0.113.195, 70.41.3.18, 150.172.238.178", wantIP: "203.0.113.195"},
		{name: "X-Real-IP", remoteAddr: "192.168.1.1:12345", xri: "203.0.113.195", wantIP: "203.0.113.195"},
		{name: "RemoteAddr fallback", remoteAddr: "192.168.1.1:12345", wantIP: "192.168.1.1"},
		{name: "X-Forwarded-For wins over X-Real-IP", remoteAddr: "192.168.1.1:12345", xff: "203.0.113.195", xri: "198.51.100.178", wantIP: "203.0.113.195"},
		{name: "IPv6 remote addr", remoteAddr: "[2001:db8::1]:12345", wantIP: "2001:db8::1"},
		{name: "invalid X-Real-IP is ignored", remoteAddr: "192.168.1.1:12345", xri: "invalid-ip", wantIP: "192.168.1.1"},
		{name: "RemoteAddr without port", remoteAddr: "192.168.1.1", wantIP: "192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}

			if got := extractIP(req); got != tt.wantIP {
				t.Errorf("extractIP() = %q, want %q", got, tt.wantIP)
			}
		})
	}
}

func TestParseFirstIP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "203.0.113.195", want: "203.0.113.195"},
		{input: "203.0.113.195, 70.41.3.18", want: "203.0.113.195"},
		{input: "invalid, 70.41.3.18", want: ""},
		{input: "", want: ""},
		{input: "2001:db8::1", want: "2001:db8::1"},
		{input: "2001:db8::1, 2001:db8::2", want: "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseFirstIP(tt.input); got != tt.want {
				t.Errorf("parseFirstIP(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "analyze request", method: http.MethodPost, path: "/v1/analyze", expectedStatus: http.StatusOK},
		{name: "language detail", method: http.MethodGet, path: "/v1/languages/german", expectedStatus: http.StatusOK},
		{name: "audit with query", method: http.MethodPost, path: "/v1/audit?dry_run=1", expectedStatus: http.StatusOK},
		{name: "server error is logged through", method: http.MethodGet, path: "/v1/audits/unknown", expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.expectedStatus)
				_, _ = w.Write([]byte("response body"))
			}))

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("User-Agent", "test-agent/1.0")
			req.RemoteAddr = "192.168.1.1:12345"

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}

func TestRecover(t *testing.T) {
	logger := slog.Default()

	tests := []struct {
		name        string
		panicValue  interface{}
		shouldPanic bool
	}{
		{name: "panic with string", panicValue: "segmentation gone wrong", shouldPanic: true},
		{name: "panic with error", panicValue: fmt.Errorf("test error"), shouldPanic: true},
		{name: "panic with number", panicValue: 42, shouldPanic: true},
		{name: "no panic", shouldPanic: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.shouldPanic {
					panic(tt.panicValue)
				}
				w.WriteHeader(http.StatusOK)
			}))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/analyze", nil))

			want := http.StatusOK
			if tt.shouldPanic {
				want = http.StatusInternalServerError
			}
			if rr.Code != want {
				t.Errorf("got status %d, want %d", rr.Code, want)
			}
		})
	}
}

func TestLimitRequestBody(t *testing.T) {
	tests := []struct {
		name           string
		maxBytes       int64
		bodySize       int
		expectedStatus int
	}{
		{name: "body within limit", maxBytes: 1024, bodySize: 512, expectedStatus: http.StatusOK},
		{name: "body exactly at limit", maxBytes: 1024, bodySize: 1024, expectedStatus: http.StatusOK},
		{name: "body over limit", maxBytes: 100, bodySize: 200, expectedStatus: http.StatusRequestEntityTooLarge},
		{name: "body far over limit", maxBytes: 1024, bodySize: 10240, expectedStatus: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := LimitRequestBody(tt.maxBytes)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if _, err := io.ReadAll(r.Body); err != nil {
					w.WriteHeader(http.StatusRequestEntityTooLarge)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))

			body := strings.Repeat("a", tt.bodySize)
			req := httptest.NewRequest(http.MethodPost, "/v1/analyze", strings.NewReader(body))

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("got status %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
