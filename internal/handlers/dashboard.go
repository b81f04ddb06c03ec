package handlers

import "net/http"

// DashboardHandler serves the channel owner's aggregate views.
type DashboardHandler struct {
	Store StatsStore
}

// Stats handles GET /api/v1/dashboard/stats. A channel with no activity gets
// all-zero totals rather than an error.
func (h DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.Store.ChannelStats(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	respondData(ctx, w, http.StatusOK, stats, "channel stats fetched successfully")
}

// Videos handles GET /api/v1/dashboard/videos.
func (h DashboardHandler) Videos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Store.ChannelVideos(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	respondData(ctx, w, http.StatusOK, videos, "channel videos fetched successfully")
}
