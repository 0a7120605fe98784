package bse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"financetools/internal/fetcher"
)

func TestClient_Quote(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != quotePath {
			t.Errorf("path = %q, want %q", r.URL.Path, quotePath)
		}
		if got := r.URL.Query().Get("scripcode"); got != "500325" {
			t.Errorf("scripcode = %q, want 500325", got)
		}
		if got := r.Header.Get("Origin"); got != "https://www.bseindia.com" {
			t.Errorf("Origin = %q, want https://www.bseindia.com", got)
		}
		w.Write([]byte(`{"Header": {"SecurityId": "RELIANCE"}, "CurrRate": {"LTP": "2,950.10"}}`))
	})
	server := httptest.NewServer(handler)
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	out, err := client.Quote(context.Background(), 500325)
	if err != nil {
		t.Fatalf("Quote() returned unexpected error: %v", err)
	}
	if _, ok := out["CurrRate"]; !ok {
		t.Errorf("CurrRate missing from %v", out)
	}
}

func TestClient_ActionsKeepsShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"purpose": "Dividend - Rs 10"}]`))
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	out, err := client.Actions(context.Background(), 500325)
	if err != nil {
		t.Fatalf("Actions() returned unexpected error: %v", err)
	}
	if _, ok := out.([]any); !ok {
		t.Errorf("Actions() = %T, want []any", out)
	}
}

func TestClient_Historical(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantRows int
		wantErr  bool
	}{
		{
			name:     "data as encoded string",
			body:     `{"Data": "[{\"dttm\":\"2024-03-01\",\"vale1\":2950},{\"dttm\":\"2024-03-04\",\"vale1\":2960}]"}`,
			wantRows: 2,
		},
		{
			name:     "data as array",
			body:     `{"Data": [{"dttm": "2024-03-01", "vale1": 2950}]}`,
			wantRows: 1,
		},
		{
			name:    "data missing",
			body:    `{"Data": ""}`,
			wantErr: true,
		},
		{
			name:    "data not an array",
			body:    `{"Data": "not json"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("fromdate"); got != "20240301" {
					t.Errorf("fromdate = %q, want 20240301", got)
				}
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := New(Config{BaseURL: server.URL})
			from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
			rows, err := client.Historical(context.Background(), 500325, from, from.AddDate(0, 0, 7))
			if tt.wantErr {
				if !fetcher.IsType(err, fetcher.ErrorTypeValidation) {
					t.Errorf("Historical() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Historical() returned unexpected error: %v", err)
			}
			if len(rows) != tt.wantRows {
				t.Errorf("len(rows) = %d, want %d", len(rows), tt.wantRows)
			}
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := New(Config{BaseURL: server.URL})
	_, err := client.MarketStatus(context.Background())
	if !fetcher.IsType(err, fetcher.ErrorTypeClient) {
		t.Errorf("MarketStatus() error = %v, want client error", err)
	}
}
