package lambda

import (
	"encoding/json"
	"testing"
)

func TestRequestHeader(t *testing.T) {
	req := &Request{
		Headers: map[string]string{
			"X-Client-Id":     "client",
			"x-client-secret": "secret",
			"Content-Type":    "application/json",
		},
	}

	tests := []struct {
		name string
		want string
	}{
		{"x-client-id", "client"},
		{"X-CLIENT-ID", "client"},
		{"x-client-secret", "secret"},
		{"content-type", "application/json"},
		{"x-missing", ""},
	}

	for _, tt := range tests {
		if got := req.Header(tt.name); got != tt.want {
			t.Errorf("Header(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestRequestQuery(t *testing.T) {
	req := &Request{
		QueryParams: map[string]string{"search": "bread", "limit": "5"},
	}

	if got := req.Query("search"); got != "bread" {
		t.Errorf("Query(search) = %q, want bread", got)
	}
	if got := req.Query("missing"); got != "" {
		t.Errorf("Query(missing) = %q, want empty", got)
	}

	empty := &Request{}
	if got := empty.Query("search"); got != "" {
		t.Errorf("Query on nil params = %q, want empty", got)
	}
}

func TestJSON(t *testing.T) {
	response := JSON(201, map[string]interface{}{"success": true})

	if response.StatusCode != 201 {
		t.Errorf("status = %d, want 201", response.StatusCode)
	}
	if response.Headers["Content-Type"] != "application/json" {
		t.Errorf("content type = %q", response.Headers["Content-Type"])
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(response.Body, &payload); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if payload["success"] != true {
		t.Errorf("payload = %+v", payload)
	}
}

func TestJSONMarshalFailure(t *testing.T) {
	response := JSON(200, map[string]interface{}{"bad": func() {}})

	if response.StatusCode != 500 {
		t.Errorf("status = %d, want 500", response.StatusCode)
	}
}
