package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"readability-audit/internal/infra/feed"
)

func TestRSSLister_ListPages_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <link>https://example.com</link>
    <description>Test Description</description>
    <item>
      <title>Article 1</title>
      <link>https://example.com/article1</link>
      <pubDate>Mon, 01 Jan 2024 00:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Article 2</title>
      <link>https://example.com/article2</link>
      <pubDate>Tue, 02 Jan 2024 00:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`
		w.Header().Set("Content-Type", "application/rss+xml")
		if _, err := w.Write([]byte(rss)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	lister := feed.NewRSSLister(&http.Client{Timeout: 10 * time.Second})

	pages, err := lister.ListPages(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("pages length = %d, want 2", len(pages))
	}
	if pages[0] != "https://example.com/article1" {
		t.Errorf("pages[0] = %q, want %q", pages[0], "https://example.com/article1")
	}
	if pages[1] != "https://example.com/article2" {
		t.Errorf("pages[1] = %q, want %q", pages[1], "https://example.com/article2")
	}
}

func TestRSSLister_ListPages_Atom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Test Atom Feed</title>
  <link href="https://example.com"/>
  <updated>2024-01-01T00:00:00Z</updated>
  <entry>
    <title>Atom Article 1</title>
    <link href="https://example.com/atom1"/>
    <id>atom1</id>
    <updated>2024-01-01T00:00:00Z</updated>
  </entry>
</feed>`
		w.Header().Set("Content-Type", "application/atom+xml")
		if _, err := w.Write([]byte(atom)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	lister := feed.NewRSSLister(nil)

	pages, err := lister.ListPages(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages length = %d, want 1", len(pages))
	}
	if pages[0] != "https://example.com/atom1" {
		t.Errorf("pages[0] = %q, want %q", pages[0], "https://example.com/atom1")
	}
}

func TestRSSLister_ListPages_RelativeLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Relative Feed</title>
    <link>/</link>
    <description>Links without a host</description>
    <item>
      <title>Relative Article</title>
      <link>/posts/relative-article</link>
    </item>
  </channel>
</rss>`
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	lister := feed.NewRSSLister(nil)

	pages, err := lister.ListPages(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("pages length = %d, want 1", len(pages))
	}
	want := server.URL + "/posts/relative-article"
	if pages[0] != want {
		t.Errorf("pages[0] = %q, want %q", pages[0], want)
	}
}

func TestRSSLister_ListPages_Deduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Dup Feed</title>
    <link>https://example.com</link>
    <description>Duplicate links</description>
    <item><title>A</title><link>https://example.com/same</link></item>
    <item><title>B</title><link>https://example.com/same</link></item>
    <item><title>C</title><link>https://example.com/other</link></item>
    <item><title>D</title></item>
  </channel>
</rss>`
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	lister := feed.NewRSSLister(nil)

	pages, err := lister.ListPages(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("pages length = %d, want 2 (deduplicated, empty link skipped)", len(pages))
	}
}

func TestRSSLister_ListPages_InvalidFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`this is not a feed`))
	}))
	defer server.Close()

	lister := feed.NewRSSLister(nil)

	_, err := lister.ListPages(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for invalid feed, got nil")
	}
}

func TestRSSLister_ListPages_EmptyFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rss := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Empty Feed</title>
    <link>https://example.com</link>
    <description>No items</description>
  </channel>
</rss>`
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rss))
	}))
	defer server.Close()

	lister := feed.NewRSSLister(nil)

	pages, err := lister.ListPages(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ListPages() error = %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages length = %d, want 0", len(pages))
	}
}
