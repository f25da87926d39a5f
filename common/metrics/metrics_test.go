package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewMux_ServesStatsviz(t *testing.T) {
	mux, err := NewMux()
	if err != nil {
		t.Fatalf("new mux: %v", err)
	}
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/debug/statsviz/")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
