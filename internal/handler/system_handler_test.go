package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestHealth(t *testing.T) {
	h := NewSystemHandler("test")
	r := gin.New()
	r.GET("/api/health", h.Health)

	w := doJSON(r, http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	env := envelope(t, w)
	if !env.Success || env.Message != "Server is running!" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	raw, _ := json.Marshal(env.Data)
	var data HealthResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Environment != "test" {
		t.Fatalf("unexpected environment: %q", data.Environment)
	}
	if _, err := time.Parse(time.RFC3339, data.Timestamp); err != nil {
		t.Fatalf("timestamp not RFC3339: %q", data.Timestamp)
	}
}
