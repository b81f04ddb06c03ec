package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/logging"
	"github.com/streamhub/backend/internal/models"
)

// CommentHandler serves the per-video comment feed and comment mutations.
type CommentHandler struct {
	Comments CommentStore
	Videos   VideoStore
	NowFunc  func() time.Time
}

// List handles GET /api/v1/videos/{videoId}/comments. Comments are returned
// oldest first so pages stay stable while new comments arrive.
func (h CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	page, limit, err := pagination(r)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Videos.FindByID(ctx, videoID); err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	comments, err := h.Comments.ListForVideo(ctx, videoID, page, limit)
	if err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newCommentViews(comments), "comments fetched successfully")
}

// Create handles POST /api/v1/videos/{videoId}/comments.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	videoID, err := pathID(r, "videoId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid comment payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	now := h.now()
	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   videoID,
		OwnerID:   principal(r),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Comments.Create(ctx, comment); err != nil {
		respondStoreError(ctx, w, err, "video not found")
		return
	}

	respondData(ctx, w, http.StatusCreated, newCommentView(comment, nil), "comment added successfully")
}

// Update handles PATCH /api/v1/comments/{commentId}.
func (h CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, err := pathID(r, "commentId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid comment payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	comment, err := h.Comments.Update(ctx, id, principal(r), req.Content)
	if err != nil {
		respondStoreError(ctx, w, err, "comment not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newCommentView(comment, nil), "comment updated successfully")
}

// Delete handles DELETE /api/v1/comments/{commentId}.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "commentId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Comments.Delete(ctx, id, principal(r)); err != nil {
		respondStoreError(ctx, w, err, "comment not found")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "comment deleted successfully")
}

type commentRequest struct {
	Content string `json:"content"`
}

func (h CommentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
