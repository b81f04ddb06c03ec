package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/logging"
	"github.com/streamhub/backend/internal/models"
	"github.com/streamhub/backend/internal/repositories"
)

// PlaylistHandler serves the playlist endpoints. Membership is ordered and a
// video may appear more than once.
type PlaylistHandler struct {
	Playlists PlaylistStore
	Users     UserStore
	NowFunc   func() time.Time
}

// Create handles POST /api/v1/playlists.
func (h PlaylistHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid playlist payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(ctx, w, http.StatusBadRequest, "name is required")
		return
	}

	now := h.now()
	playlist := models.Playlist{
		ID:          uuid.NewString(),
		OwnerID:     principal(r),
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Playlists.Create(ctx, playlist); err != nil {
		respondStoreError(ctx, w, err, "playlist not found")
		return
	}

	respondData(ctx, w, http.StatusCreated, newPlaylistView(playlist), "playlist created successfully")
}

// ListForUser handles GET /api/v1/users/{userId}/playlists.
func (h PlaylistHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := pathID(r, "userId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Users.FindByID(ctx, userID); err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	playlists, err := h.Playlists.ListForUser(ctx, userID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newPlaylistViews(playlists), "playlists fetched successfully")
}

// Get handles GET /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.Playlists.FindByID(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newPlaylistView(playlist), "playlist fetched successfully")
}

// Update handles PATCH /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req updatePlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid playlist payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == nil && req.Description == nil {
		respondError(ctx, w, http.StatusBadRequest, "at least one field is required")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(ctx, w, http.StatusBadRequest, "name cannot be empty")
		return
	}

	playlist, err := h.Playlists.Update(ctx, id, principal(r), repositories.PlaylistUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newPlaylistView(playlist), "playlist updated successfully")
}

// Delete handles DELETE /api/v1/playlists/{playlistId}.
func (h PlaylistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "playlistId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Playlists.Delete(ctx, id, principal(r)); err != nil {
		respondStoreError(ctx, w, err, "playlist not found")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "playlist deleted successfully")
}

// AddVideo handles POST /api/v1/playlists/{playlistId}/videos/{videoId}. The
// video is appended even when already present.
func (h PlaylistHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlistID, videoID, err := playlistVideoIDs(r)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.Playlists.AddVideo(ctx, playlistID, principal(r), videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist or video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newPlaylistView(playlist), "video added to playlist")
}

// RemoveVideo handles DELETE /api/v1/playlists/{playlistId}/videos/{videoId}.
// Every occurrence of the video is removed.
func (h PlaylistHandler) RemoveVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	playlistID, videoID, err := playlistVideoIDs(r)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.Playlists.RemoveVideo(ctx, playlistID, principal(r), videoID)
	if err != nil {
		respondStoreError(ctx, w, err, "playlist not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newPlaylistView(playlist), "video removed from playlist")
}

func playlistVideoIDs(r *http.Request) (playlistID, videoID string, err error) {
	playlistID, err = pathID(r, "playlistId")
	if err != nil {
		return "", "", err
	}
	videoID, err = pathID(r, "videoId")
	if err != nil {
		return "", "", err
	}
	return playlistID, videoID, nil
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h PlaylistHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
