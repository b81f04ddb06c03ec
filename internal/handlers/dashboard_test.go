package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamhub/backend/internal/models"
)

func TestDashboardHandlerStatsDefaultsToZero(t *testing.T) {
	handler := DashboardHandler{Store: newInMemoryStatsStore()}

	rec := httptest.NewRecorder()
	handler.Stats(rec, authedRequest(t, http.MethodGet, "/api/v1/dashboard/stats", ownerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data models.ChannelStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data != (models.ChannelStats{}) {
		t.Fatalf("expected all-zero stats for an inactive channel, got %+v", resp.Data)
	}
}

func TestDashboardHandlerStats(t *testing.T) {
	stats := newInMemoryStatsStore()
	stats.stats[ownerID] = models.ChannelStats{TotalViews: 100, TotalSubscribers: 5, TotalVideos: 3, TotalLikes: 12}
	handler := DashboardHandler{Store: stats}

	rec := httptest.NewRecorder()
	handler.Stats(rec, authedRequest(t, http.MethodGet, "/api/v1/dashboard/stats", ownerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data models.ChannelStats `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.TotalViews != 100 || resp.Data.TotalLikes != 12 {
		t.Fatalf("unexpected stats payload: %+v", resp.Data)
	}
}

func TestDashboardHandlerVideos(t *testing.T) {
	stats := newInMemoryStatsStore()
	stats.videos[ownerID] = []models.ChannelVideo{{ID: videoID, Title: "Test video", Views: 7}}
	handler := DashboardHandler{Store: stats}

	rec := httptest.NewRecorder()
	handler.Videos(rec, authedRequest(t, http.MethodGet, "/api/v1/dashboard/videos", ownerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data []models.ChannelVideo `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Views != 7 {
		t.Fatalf("unexpected channel videos payload: %+v", resp.Data)
	}
}
