package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"QuotePulse/internal/domain/models"
	"QuotePulse/internal/usecase"
	xlogger "QuotePulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubCreatorStore struct {
	creators map[string]*models.Creator
	checks   []models.HealthCheck
}

func (s *stubCreatorStore) Lookup(_ context.Context, platform, handle string) (*models.Creator, error) {
	return s.creators[platform+"/"+handle], nil
}

func (s *stubCreatorStore) BatchLookup(_ context.Context, platform string, handles []string) (map[string]*models.Creator, error) {
	out := make(map[string]*models.Creator)
	for _, h := range handles {
		if c, ok := s.creators[platform+"/"+h]; ok {
			out[h] = c
		}
	}
	return out, nil
}

func (s *stubCreatorStore) Health(context.Context) []models.HealthCheck {
	return s.checks
}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func newCreatorsEnv(t *testing.T, store *stubCreatorStore) *echo.Echo {
	t.Helper()
	e := echo.New()
	var h *CreatorsHandler
	if store == nil {
		h = NewCreatorsHandler(testLogger(t), nil, usecase.NewHealthService(nil))
	} else {
		h = NewCreatorsHandler(testLogger(t), store, usecase.NewHealthService(store))
	}
	h.RegisterRoutes(e)
	return e
}

func TestCreatorLookupFound(t *testing.T) {
	store := &stubCreatorStore{creators: map[string]*models.Creator{
		"twitter/alice": {
			Platform:    "twitter",
			Handle:      "alice",
			DisplayName: "Alice",
			Address:     "0xabc",
			Verified:    true,
			CreatedAt:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	e := newCreatorsEnv(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/creators/lookup?platform=twitter&handle=%40Alice", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status int            `json:"status"`
		Data   models.Creator `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusOK {
		t.Fatalf("expected status 200 in envelope, got %d", body.Status)
	}
	if body.Data.Handle != "alice" || body.Data.Address != "0xabc" {
		t.Fatalf("unexpected creator payload: %+v", body.Data)
	}
}

func TestCreatorLookupNotFound(t *testing.T) {
	e := newCreatorsEnv(t, &stubCreatorStore{creators: map[string]*models.Creator{}})

	req := httptest.NewRequest(http.MethodGet, "/api/creators/lookup?platform=twitter&handle=nobody", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusNotFound {
		t.Fatalf("expected 404 envelope for unregistered handle, got %d", body.Status)
	}
}

func TestCreatorLookupMissingParams(t *testing.T) {
	e := newCreatorsEnv(t, &stubCreatorStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/creators/lookup?platform=twitter", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope without a handle, got %d", body.Status)
	}
}

func TestCreatorBatchLookupKeyedByOriginalHandles(t *testing.T) {
	store := &stubCreatorStore{creators: map[string]*models.Creator{
		"twitter/alice": {Platform: "twitter", Handle: "alice", Address: "0xabc"},
	}}
	e := newCreatorsEnv(t, store)

	payload := `{"platform":"twitter","handles":["@Alice","bob"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/creators/batch", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body struct {
		Status int `json:"status"`
		Data   struct {
			Creators map[string]*models.Creator `json:"creators"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusOK {
		t.Fatalf("expected 200 envelope, got %d", body.Status)
	}
	if len(body.Data.Creators) != 2 {
		t.Fatalf("expected one entry per input handle, got %d", len(body.Data.Creators))
	}
	alice, ok := body.Data.Creators["@Alice"]
	if !ok || alice == nil {
		t.Fatal("result must be keyed by the original handle, not the normalized form")
	}
	if alice.Address != "0xabc" {
		t.Fatalf("unexpected creator for @Alice: %+v", alice)
	}
	if bob, ok := body.Data.Creators["bob"]; !ok || bob != nil {
		t.Fatal("unregistered handle must map to null, not be omitted")
	}
}

func TestCreatorBatchLookupRejectsOversizedBatch(t *testing.T) {
	e := newCreatorsEnv(t, &stubCreatorStore{})

	handles := make([]string, 101)
	for i := range handles {
		handles[i] = "user"
	}
	payload, _ := json.Marshal(map[string]interface{}{"platform": "twitter", "handles": handles})
	req := httptest.NewRequest(http.MethodPost, "/api/creators/batch", strings.NewReader(string(payload)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != http.StatusBadRequest {
		t.Fatalf("expected 400 envelope for 101 handles, got %d", body.Status)
	}
}

func TestHealthEndpointAlwaysHTTP200(t *testing.T) {
	e := newCreatorsEnv(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health must always answer 200, got %d", rec.Code)
	}
	var body models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != models.StatusUnhealthy {
		t.Fatalf("expected unhealthy without store config, got %s", body.Status)
	}
}

func TestHealthEndpointDegraded(t *testing.T) {
	store := &stubCreatorStore{checks: []models.HealthCheck{
		{Name: "database", OK: true},
		{Name: "creators_table", OK: true},
		{Name: "tip_events_table", OK: false, Error: "table not found"},
	}}
	e := newCreatorsEnv(t, store)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body models.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Status != models.StatusDegraded {
		t.Fatalf("expected degraded, got %s", body.Status)
	}
}
