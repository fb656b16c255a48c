package storage

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewHTTPClient_NoCA(t *testing.T) {
	client, err := NewHTTPClient("", 5*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v; want 5s", client.Timeout)
	}
}

func TestNewHTTPClient_ReadCAError(t *testing.T) {
	_, err := NewHTTPClient(filepath.Join(t.TempDir(), "missing.pem"), 0)
	if err == nil || !strings.Contains(err.Error(), "failed to read CA cert") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestNewHTTPClient_InvalidCA(t *testing.T) {
	caPath := filepath.Join(t.TempDir(), "ca.pem")
	if err := os.WriteFile(caPath, []byte("invalid pem"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := NewHTTPClient(caPath, 0)
	if err == nil || !strings.Contains(err.Error(), "failed to parse CA cert") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestNewHTTPClient_TrustsCA(t *testing.T) {
	ts := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ts.Certificate().Raw})
	if err := os.WriteFile(caPath, certPEM, 0600); err != nil {
		t.Fatal(err)
	}

	client, err := NewHTTPClient(caPath, time.Second)
	if err != nil {
		t.Fatalf("NewHTTPClient failed: %v", err)
	}
	resp, err := client.Get(ts.URL)
	if err != nil {
		t.Fatalf("request over trusted TLS failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d; want 204", resp.StatusCode)
	}

	// without the CA the same server is rejected
	plain, _ := NewHTTPClient("", time.Second)
	if _, err := plain.Get(ts.URL); err == nil {
		t.Error("expected TLS verification failure without CA")
	}
}
