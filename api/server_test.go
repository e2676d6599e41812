package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RajParmar007/Credit-Card-Statement-Parser/extractor"
	"github.com/spf13/viper"
)

const testConfigYAML = `
parser:
  hdfc:
    patterns:
      last_4_digits: 'Card No:\s*\d{4}\s+\d{2}XX\s+XXXX\s+(\d{4})'
      due_date: 'Payment Due Date\s+Total Dues\s+Minimum Amount Due[\s\S]*?(\d{2}/\d{2}/\d{4})\s+'
      total_balance: 'Payment Due Date\s+Total Dues\s+Minimum Amount Due[\s\S]*?\d{2}/\d{2}/\d{4}\s+([\d,]+\.\d{2})'
      transaction: '(\d{2}/\d{2}/\d{4})\s+(.*?)\s+([\d,]+\.\d{2})(\s+Cr)?'
      credit_marker: Cr
    filters:
      - Transaction Description
  icici:
    patterns:
      last_4_digits: 'Card Number : \d{4}\s+XXXX\s+XXXX\s+(\d{3,4})'
      due_date: 'Due Date : (\d{2}/\d{2}/\d{4})'
      total_balance: 'Your Total Amount Due[\s\S]*?\|\s*([\d,]+\.\d{2})'
      transaction: '(?m)(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})(\s+CR)?$'
      credit_marker: CR
    filters:
      - CGST
`

func testServer(t *testing.T) *Server {
	t.Helper()
	viper.Reset()
	viper.SetConfigType("yaml")
	viper.ReadConfig(bytes.NewBufferString(testConfigYAML))

	registry, err := extractor.LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}
	return New(DefaultConfig(), registry)
}

func multipartRequest(t *testing.T, fields map[string]string, fileContent string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	if fileContent != "" {
		part, _ := writer.CreateFormFile("file", "statement.pdf")
		part.Write([]byte(fileContent))
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/parse", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Port != ":5001" {
		t.Errorf("Expected port ':5001', got '%s'", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://localhost:3000" {
		t.Errorf("Expected origin 'http://localhost:3000', got '%s'", cfg.AllowedOrigin)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response["status"])
	}
}

func TestBanksEndpoint(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string][]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	banks := response["banks"]
	if len(banks) != 2 || banks[0] != "hdfc" || banks[1] != "icici" {
		t.Errorf("Expected [hdfc icici], got %v", banks)
	}
}

func TestParseEndpoint_MethodNotAllowed(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/parse", nil)
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", w.Code)
	}
}

func TestParseEndpoint_MissingBank(t *testing.T) {
	server := testServer(t)

	req := multipartRequest(t, nil, "file content")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]string
	json.NewDecoder(w.Body).Decode(&response)
	if response["error"] != "No bank name provided" {
		t.Errorf("Unexpected error message: '%s'", response["error"])
	}
}

func TestParseEndpoint_MissingFile(t *testing.T) {
	server := testServer(t)

	req := multipartRequest(t, map[string]string{"bank": "hdfc"}, "")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]string
	json.NewDecoder(w.Body).Decode(&response)
	if response["error"] != "No file uploaded" {
		t.Errorf("Unexpected error message: '%s'", response["error"])
	}
}

func TestParseEndpoint_UnknownBank(t *testing.T) {
	server := testServer(t)

	req := multipartRequest(t, map[string]string{"bank": "boi"}, "file content")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	var response map[string]string
	json.NewDecoder(w.Body).Decode(&response)
	if !strings.Contains(response["error"], "Invalid bank name") {
		t.Errorf("Unexpected error message: '%s'", response["error"])
	}
}

func TestParseEndpoint_InvalidPDF(t *testing.T) {
	server := testServer(t)

	req := multipartRequest(t, map[string]string{"bank": "hdfc"}, "not a valid pdf")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
	}
}

func TestCORSHeaders(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin header, got '%s'", got)
	}
}

func TestCORSHeaders_DisallowedOrigin(t *testing.T) {
	server := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w := httptest.NewRecorder()

	server.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header for disallowed origin, got '%s'", got)
	}
}

func TestCoalesce(t *testing.T) {
	tests := []struct {
		input    []string
		expected string
	}{
		{[]string{"", "", "third"}, "third"},
		{[]string{"first", "second"}, "first"},
		{[]string{"", ""}, ""},
		{[]string{}, ""},
	}

	for _, tt := range tests {
		result := coalesce(tt.input...)
		if result != tt.expected {
			t.Errorf("coalesce(%v) = '%s', expected '%s'", tt.input, result, tt.expected)
		}
	}
}
