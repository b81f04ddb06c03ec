package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/logging"
	"github.com/streamhub/backend/internal/media"
	"github.com/streamhub/backend/internal/models"
	"github.com/streamhub/backend/internal/repositories"
)

// VideoHandler serves the video catalog endpoints.
type VideoHandler struct {
	Videos   VideoStore
	Ingestor MediaIngestor
	NowFunc  func() time.Time
}

// List handles GET /api/v1/videos. Only published videos are returned.
func (h VideoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, limit, err := pagination(r)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	query := r.URL.Query()
	params := repositories.VideoListParams{
		Query:    strings.TrimSpace(query.Get("query")),
		SortBy:   strings.TrimSpace(query.Get("sortBy")),
		SortDesc: strings.EqualFold(query.Get("sortType"), "desc"),
		Page:     page,
		Limit:    limit,
	}

	if owner := strings.TrimSpace(query.Get("userId")); owner != "" {
		if _, err := uuid.Parse(owner); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "invalid userId")
			return
		}
		params.OwnerID = owner
	}

	if params.SortBy != "" && !repositories.SortableVideoColumn(params.SortBy) {
		respondError(ctx, w, http.StatusBadRequest, "unsupported sortBy field")
		return
	}

	videos, err := h.Videos.List(ctx, params)
	if err != nil {
		respondStoreError(ctx, w, err, "videos not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newVideoViews(videos), "videos fetched successfully")
}

// Publish handles POST /api/v1/videos. The record is created in the pending
// state; a background job probes the staged files and uploads them.
func (h VideoHandler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req publishVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid publish payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.VideoPath = strings.TrimSpace(req.VideoPath)
	req.ThumbnailPath = strings.TrimSpace(req.ThumbnailPath)
	if req.Title == "" || req.VideoPath == "" {
		respondError(ctx, w, http.StatusBadRequest, "title and videoPath are required")
		return
	}

	now := h.now()
	video := models.Video{
		ID:          uuid.NewString(),
		OwnerID:     principal(r),
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		IsPublished: true,
		AssetStatus: models.AssetStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.Videos.Create(ctx, video); err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	if h.Ingestor != nil {
		job := media.Job{VideoID: video.ID, VideoPath: req.VideoPath, ThumbnailPath: req.ThumbnailPath}
		if err := h.Ingestor.Enqueue(ctx, job); err != nil {
			logger.Error("failed to enqueue ingest job", "videoId", video.ID, "error", err)
			respondError(ctx, w, http.StatusServiceUnavailable, "media processing unavailable")
			return
		}
	}

	respondData(ctx, w, http.StatusCreated, newVideoView(video), "video published successfully")
}

// Get handles GET /api/v1/videos/{videoId}. Fetching a video counts a view.
func (h VideoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.Videos.FetchAndCountView(ctx, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newVideoView(video), "video fetched successfully")
}

// Update handles PATCH /api/v1/videos/{videoId}.
func (h VideoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req updateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid video update payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == nil && req.Description == nil && req.Thumbnail == nil {
		respondError(ctx, w, http.StatusBadRequest, "at least one field is required")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondError(ctx, w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	video, err := h.ownedVideo(r, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	updated, err := h.Videos.UpdateDetails(ctx, video.ID, repositories.VideoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
	})
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newVideoView(updated), "video updated successfully")
}

// Delete handles DELETE /api/v1/videos/{videoId}.
func (h VideoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.ownedVideo(r, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	if err := h.Videos.Delete(ctx, video.ID); err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "video deleted successfully")
}

// TogglePublish handles PATCH /api/v1/videos/{videoId}/publish.
func (h VideoHandler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	video, err := h.ownedVideo(r, id)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	toggled, err := h.Videos.TogglePublish(ctx, video.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newVideoView(toggled), "publish status toggled successfully")
}

// ownedVideo loads the video and enforces that the caller owns it.
func (h VideoHandler) ownedVideo(r *http.Request, id string) (models.Video, error) {
	video, err := h.Videos.FindByID(r.Context(), id)
	if err != nil {
		return models.Video{}, err
	}
	if video.OwnerID != principal(r) {
		return models.Video{}, repositories.ErrForbidden
	}
	return video, nil
}

type publishVideoRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	VideoPath     string `json:"videoPath"`
	ThumbnailPath string `json:"thumbnailPath"`
}

type updateVideoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Thumbnail   *string `json:"thumbnail"`
}

func (h VideoHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
