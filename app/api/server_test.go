package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/feed-notify/app/database"
	"github.com/lysyi3m/feed-notify/app/metrics"
	"github.com/lysyi3m/feed-notify/app/tasks"
)

// MockItemRepository serves fixed statistics
type MockItemRepository struct {
	database.ItemRepository
	stats *database.Statistics
	err   error
}

func (m *MockItemRepository) Statistics(ctx context.Context) (*database.Statistics, error) {
	return m.stats, m.err
}

type fixedState tasks.State

func (s fixedState) State() tasks.State {
	return tasks.State(s)
}

func TestGetHealth(t *testing.T) {
	lastStored := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	repo := &MockItemRepository{stats: &database.Statistics{
		TotalCount:       3,
		CountByPartition: map[int]int{1: 2, 5: 1},
		LastStoredAt:     &lastStored,
	}}

	server := NewServer(NewHandler(repo, fixedState(tasks.StateWaiting), "test"))

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if body["scheduler"] != "waiting" {
		t.Errorf("Expected scheduler 'waiting', got %v", body["scheduler"])
	}
	if body["items"] != float64(3) {
		t.Errorf("Expected 3 items, got %v", body["items"])
	}
	if body["store"] != "ok" {
		t.Errorf("Expected store 'ok', got %v", body["store"])
	}
}

func TestGetHealth_StoreUnavailable(t *testing.T) {
	repo := &MockItemRepository{err: errors.New("database is locked")}

	server := NewServer(NewHandler(repo, fixedState(tasks.StateRunningCycle), "test"))

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}
}

func TestGetStats(t *testing.T) {
	repo := &MockItemRepository{stats: &database.Statistics{
		TotalCount:       2,
		CountByPartition: map[int]int{4: 2},
	}}

	server := NewServer(NewHandler(repo, fixedState(tasks.StateIdle), "test"))

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"4":2`) {
		t.Errorf("Expected per-partition counts, got %s", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.CycleInc()

	server := NewServer(NewHandler(&MockItemRepository{}, fixedState(tasks.StateIdle), "test"))

	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "feed_notify_cycles_total") {
		t.Error("Expected cycle counter in metrics output")
	}
}
