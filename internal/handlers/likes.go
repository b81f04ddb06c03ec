package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/models"
)

// LikeHandler serves the like toggle and liked-videos feed endpoints.
type LikeHandler struct {
	Likes   LikeStore
	NowFunc func() time.Time
}

// ToggleVideo handles POST /api/v1/likes/videos/{videoId}.
func (h LikeHandler) ToggleVideo(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeTargetVideo, "videoId")
}

// ToggleComment handles POST /api/v1/likes/comments/{commentId}.
func (h LikeHandler) ToggleComment(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeTargetComment, "commentId")
}

// ToggleTweet handles POST /api/v1/likes/tweets/{tweetId}.
func (h LikeHandler) ToggleTweet(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, models.LikeTargetTweet, "tweetId")
}

func (h LikeHandler) toggle(w http.ResponseWriter, r *http.Request, kind models.LikeTarget, param string) {
	ctx := r.Context()

	targetID, err := pathID(r, param)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	like := models.Like{
		ID:         uuid.NewString(),
		UserID:     principal(r),
		TargetKind: kind,
		TargetID:   targetID,
		CreatedAt:  h.now(),
	}

	liked, err := h.Likes.Toggle(ctx, like)
	if err != nil {
		respondStoreError(ctx, w, err, string(kind)+" not found")
		return
	}

	message := "like removed"
	if liked {
		message = "like added"
	}
	respondData(ctx, w, http.StatusOK, toggleResult{Active: liked}, message)
}

// LikedVideos handles GET /api/v1/likes/videos, newest like first.
func (h LikeHandler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	videos, err := h.Likes.ListLikedVideos(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "liked videos not found")
		return
	}
	if videos == nil {
		videos = []models.LikedVideo{}
	}

	respondData(ctx, w, http.StatusOK, likedVideoList{Videos: videos, Count: int64(len(videos))}, "liked videos fetched successfully")
}

// toggleResult reports the state an edge toggle settled on.
type toggleResult struct {
	Active bool `json:"active"`
}

type likedVideoList struct {
	Videos []models.LikedVideo `json:"videos"`
	Count  int64               `json:"videoCount"`
}

func (h LikeHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
