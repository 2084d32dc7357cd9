package entity

import (
	"errors"
	"testing"
)

func TestPageValidate(t *testing.T) {
	tests := []struct {
		name    string
		page    Page
		wantErr bool
	}{
		{
			name: "valid page",
			page: Page{URL: "https://example.com/article", Language: "german"},
		},
		{
			name: "valid page with language code",
			page: Page{URL: "https://example.com/article", Language: "deu"},
		},
		{
			name: "empty language defaults downstream",
			page: Page{URL: "https://example.com/article"},
		},
		{
			name:    "missing url",
			page:    Page{Language: "english"},
			wantErr: true,
		},
		{
			name:    "relative url",
			page:    Page{URL: "/articles/1", Language: "english"},
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			page:    Page{URL: "ftp://example.com/file", Language: "english"},
			wantErr: true,
		},
		{
			name:    "unsupported language",
			page:    Page{URL: "https://example.com", Language: "klingon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error %v does not match ErrInvalidInput", err)
			}
		})
	}
}
