package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/eleven-am/soda-stream/internal/transcription"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSession struct {
	status transcription.Status
}

func (f fakeSession) Status() transcription.Status {
	return f.status
}

func serve(t *testing.T, h *Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(t, NewHandler(nil, nil, nil, "test"), "/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestSession(t *testing.T) {
	session := fakeSession{status: transcription.Status{
		SessionID: "abc",
		Engine:    "test",
		State:     "started",
		Chunks:    3,
	}}
	rec := serve(t, NewHandler(nil, nil, session, "test"), "/health/session")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body transcription.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.SessionID != "abc" || body.State != "started" || body.Chunks != 3 {
		t.Errorf("body = %+v", body)
	}
}

func TestSession_NotConfigured(t *testing.T) {
	rec := serve(t, NewHandler(nil, nil, nil, "test"), "/health/session")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestReadiness(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	tests := []struct {
		name       string
		db         *gorm.DB
		redis      *redis.Client
		state      transcription.Status
		wantCode   int
		wantStatus Status
		components int
	}{
		{
			name:       "healthy session only",
			state:      transcription.Status{State: "started"},
			wantCode:   http.StatusOK,
			wantStatus: StatusHealthy,
			components: 1,
		},
		{
			name:       "all components",
			db:         db,
			redis:      client,
			state:      transcription.Status{State: "started"},
			wantCode:   http.StatusOK,
			wantStatus: StatusHealthy,
			components: 3,
		},
		{
			name:       "decode errors degrade",
			state:      transcription.Status{State: "started", DecodeErrors: 2},
			wantCode:   http.StatusOK,
			wantStatus: StatusDegraded,
			components: 1,
		},
		{
			name:       "destroyed session is unhealthy",
			redis:      client,
			state:      transcription.Status{State: "destroyed"},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: StatusUnhealthy,
			components: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.db, tt.redis, fakeSession{status: tt.state}, "test")
			rec := serve(t, h, "/health/ready")

			if rec.Code != tt.wantCode {
				t.Errorf("status code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", body.Status, tt.wantStatus)
			}
			if len(body.Components) != tt.components {
				t.Errorf("components = %v, want %d", body.Components, tt.components)
			}
			if body.Version != "test" {
				t.Errorf("version = %q", body.Version)
			}
		})
	}
}

func TestReadiness_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	h := NewHandler(nil, client, fakeSession{status: transcription.Status{State: "started"}}, "test")
	rec := serve(t, h, "/health/ready")

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != StatusDegraded {
		t.Errorf("status = %q, want degraded", body.Status)
	}
	if body.Components["redis"].Status != StatusUnhealthy {
		t.Errorf("redis = %+v", body.Components["redis"])
	}
}

func TestCounters(t *testing.T) {
	h := NewHandler(nil, nil, nil, "test")
	h.IncrementRequests()
	h.IncrementConnections()
	h.DecrementConnections()

	if h.totalRequests != 1 || h.activeConnections != 0 {
		t.Errorf("requests = %d, connections = %d", h.totalRequests, h.activeConnections)
	}
}
