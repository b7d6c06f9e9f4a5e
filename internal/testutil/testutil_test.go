package testutil

import (
	"errors"
	"net/http"
	"testing"
)

func TestAssertHelpers(t *testing.T) {
	AssertStatusCode(t, http.StatusOK, http.StatusOK)
	AssertNoError(t, nil)
	AssertError(t, errors.New("bad range set"))
}

func TestNewTestRequest(t *testing.T) {
	req := NewTestRequest(http.MethodGet, "/api/runs")
	if req.Method != http.MethodGet {
		t.Errorf("method = %q, want GET", req.Method)
	}
	if req.URL.Path != "/api/runs" {
		t.Errorf("path = %q, want /api/runs", req.URL.Path)
	}
}

func TestDecodeJSON(t *testing.T) {
	rec := NewTestRecorder()
	rec.Body.WriteString(`{"name":"steel","ranges":3}`)

	var got struct {
		Name   string `json:"name"`
		Ranges int    `json:"ranges"`
	}
	DecodeJSON(t, rec, &got)
	if got.Name != "steel" || got.Ranges != 3 {
		t.Errorf("decoded %+v", got)
	}
}
