// Copyright (c) 2026 Pollbox Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pollbox/pollbox/models"
)

func TestWithLogging(t *testing.T) {
	// Create a simple handler that returns OK
	handlerCalled := false
	testHandler := func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	}

	// Wrap with logging middleware
	wrappedHandler := WithLogging(testHandler)

	req := httptest.NewRequest("GET", "/test-path", nil)
	w := httptest.NewRecorder()

	wrappedHandler(w, req)

	if !handlerCalled {
		t.Error("Expected handler to be called")
	}

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestWithLogging_PreservesResponse(t *testing.T) {
	// Test that logging doesn't interfere with various response codes
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"id":"123"}`},
		{"BadRequest", http.StatusBadRequest, `{"error":"bad request"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/test", nil)
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}
			if w.Body.String() != tc.body {
				t.Errorf("Expected body '%s', got '%s'", tc.body, w.Body.String())
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		data       interface{}
		expected   string
	}{
		{
			name:       "simple struct",
			statusCode: http.StatusOK,
			data:       map[string]string{"message": "hello"},
			expected:   `{"message":"hello"}`,
		},
		{
			name:       "vote response",
			statusCode: http.StatusCreated,
			data:       models.CastVoteResponse{Outcome: "added", Counts: map[string]int{"o1": 1}},
			expected:   `{"outcome":"added","counts":{"o1":1}}`,
		},
		{
			name:       "error response",
			statusCode: http.StatusBadRequest,
			data:       models.ErrorResponse{Error: "Bad Request", Message: "missing field"},
			expected:   `{"error":"Bad Request","message":"missing field"}`,
		},
		{
			name:       "array data",
			statusCode: http.StatusOK,
			data:       []string{"a", "b", "c"},
			expected:   `["a","b","c"]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			JSONResponse(w, tc.statusCode, tc.data)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			contentType := w.Header().Get("Content-Type")
			if contentType != "application/json" {
				t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
			}

			// Trim newline added by Encode
			body := strings.TrimSpace(w.Body.String())
			if body != tc.expected {
				t.Errorf("Expected body '%s', got '%s'", tc.expected, body)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	testCases := []struct {
		name          string
		statusCode    int
		message       string
		expectedError string
	}{
		{
			name:          "bad request",
			statusCode:    http.StatusBadRequest,
			message:       "title is required",
			expectedError: "Bad Request",
		},
		{
			name:          "unauthorized",
			statusCode:    http.StatusUnauthorized,
			message:       "missing or invalid token",
			expectedError: "Unauthorized",
		},
		{
			name:          "forbidden",
			statusCode:    http.StatusForbidden,
			message:       "only the creator may do this",
			expectedError: "Forbidden",
		},
		{
			name:          "not found",
			statusCode:    http.StatusNotFound,
			message:       "poll not found",
			expectedError: "Not Found",
		},
		{
			name:          "conflict",
			statusCode:    http.StatusConflict,
			message:       "title is locked once voting has started",
			expectedError: "Conflict",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ErrorResponse(w, tc.statusCode, tc.message)

			if w.Code != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, w.Code)
			}

			if w.Header().Get("Content-Type") != "application/json" {
				t.Error("Expected Content-Type 'application/json'")
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}

			if resp.Error != tc.expectedError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectedError, resp.Error)
			}
			if resp.Message != tc.message {
				t.Errorf("Expected message '%s', got '%s'", tc.message, resp.Message)
			}
		})
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := `{"title":"Lunch","options":["Pizza","Sushi"]}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CreatePollRequest
		err := ParseJSONBody(req, &parsed)

		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Title != "Lunch" {
			t.Errorf("Expected title 'Lunch', got '%s'", parsed.Title)
		}
		if len(parsed.Options) != 2 {
			t.Errorf("Expected 2 options, got %d", len(parsed.Options))
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		body := `{invalid json}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CreatePollRequest
		err := ParseJSONBody(req, &parsed)

		if err == nil {
			t.Error("Expected error for invalid JSON")
		}
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.CreatePollRequest
		err := ParseJSONBody(req, &parsed)

		if err == nil {
			t.Error("Expected error for empty body")
		}
	})

	t.Run("extra fields ignored", func(t *testing.T) {
		body := `{"title":"Lunch","unknown_field":"ignored"}`
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))

		var parsed models.CreatePollRequest
		err := ParseJSONBody(req, &parsed)

		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.Title != "Lunch" {
			t.Errorf("Expected title 'Lunch', got '%s'", parsed.Title)
		}
	})
}

func TestCORS(t *testing.T) {
	// Create a simple handler that returns OK
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})

	corsHandler := CORS(nextHandler)

	t.Run("preflight OPTIONS request", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/polls", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		// Should return 200 OK without calling next handler
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		if w.Body.String() != "" {
			t.Errorf("Expected empty body for preflight, got '%s'", w.Body.String())
		}

		if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:5173" {
			t.Error("Expected Access-Control-Allow-Origin to match request origin")
		}
		if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
			t.Error("Expected Access-Control-Allow-Credentials to be 'true'")
		}
	})

	t.Run("regular request with origin", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/polls", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}

		if w.Header().Get("Access-Control-Allow-Origin") != "https://example.com" {
			t.Error("Expected Access-Control-Allow-Origin to reflect request origin")
		}
	})

	t.Run("request without origin defaults to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/polls", nil)
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected Access-Control-Allow-Origin to default to '*'")
		}
	})

	t.Run("allows auth header", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/polls", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		allowedHeaders := w.Header().Get("Access-Control-Allow-Headers")

		if !strings.Contains(allowedHeaders, "Authorization") {
			t.Error("Expected Authorization in allowed headers")
		}
		if !strings.Contains(allowedHeaders, "Content-Type") {
			t.Error("Expected Content-Type in allowed headers")
		}
	})

	t.Run("allows required methods", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/api/polls", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		allowedMethods := w.Header().Get("Access-Control-Allow-Methods")

		requiredMethods := []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
		for _, method := range requiredMethods {
			if !strings.Contains(allowedMethods, method) {
				t.Errorf("Expected %s in allowed methods", method)
			}
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expectedIP string
	}{
		{
			name:       "X-Forwarded-For single IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "X-Forwarded-For chained IPs",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.195, 70.41.3.18, 150.172.238.178"},
			remoteAddr: "127.0.0.1:12345",
			expectedIP: "203.0.113.195",
		},
		{
			name:       "X-Real-IP takes precedence over RemoteAddr",
			headers:    map[string]string{"X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "203.0.113.50",
		},
		{
			name:       "X-Forwarded-For takes precedence over X-Real-IP",
			headers:    map[string]string{"X-Forwarded-For": "192.168.1.100", "X-Real-IP": "203.0.113.50"},
			remoteAddr: "10.0.0.1:12345",
			expectedIP: "192.168.1.100",
		},
		{
			name:       "RemoteAddr with port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.50:54321",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "RemoteAddr without port",
			headers:    map[string]string{},
			remoteAddr: "192.168.1.50",
			expectedIP: "192.168.1.50",
		},
		{
			name:       "empty X-Forwarded-For falls through to RemoteAddr",
			headers:    map[string]string{"X-Forwarded-For": ""},
			remoteAddr: "10.0.0.5:8080",
			expectedIP: "10.0.0.5",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr

			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			result := GetClientIP(req)

			if result != tc.expectedIP {
				t.Errorf("Expected IP '%s', got '%s'", tc.expectedIP, result)
			}
		})
	}
}
