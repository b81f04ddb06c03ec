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

// TweetHandler serves the short-post endpoints.
type TweetHandler struct {
	Tweets  TweetStore
	Users   UserStore
	NowFunc func() time.Time
}

// Create handles POST /api/v1/tweets.
func (h TweetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid tweet payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	now := h.now()
	tweet := models.Tweet{
		ID:        uuid.NewString(),
		OwnerID:   principal(r),
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.Tweets.Create(ctx, tweet); err != nil {
		respondStoreError(ctx, w, err, "tweet not found")
		return
	}

	respondData(ctx, w, http.StatusCreated, newTweetView(tweet, nil), "tweet created successfully")
}

// ListForUser handles GET /api/v1/users/{username}/tweets, newest first.
func (h TweetHandler) ListForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := strings.TrimSpace(strings.ToLower(r.PathValue("username")))
	if username == "" {
		respondError(ctx, w, http.StatusBadRequest, "invalid username")
		return
	}

	user, err := h.Users.FindByUsername(ctx, username)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	tweets, err := h.Tweets.ListForUser(ctx, user.ID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newTweetViews(tweets), "tweets fetched successfully")
}

// Update handles PATCH /api/v1/tweets/{tweetId}.
func (h TweetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	var req tweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid tweet payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		respondError(ctx, w, http.StatusBadRequest, "content is required")
		return
	}

	tweet, err := h.Tweets.Update(ctx, id, principal(r), req.Content)
	if err != nil {
		respondStoreError(ctx, w, err, "tweet not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newTweetView(tweet, nil), "tweet updated successfully")
}

// Delete handles DELETE /api/v1/tweets/{tweetId}.
func (h TweetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := pathID(r, "tweetId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Tweets.Delete(ctx, id, principal(r)); err != nil {
		respondStoreError(ctx, w, err, "tweet not found")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "tweet deleted successfully")
}

type tweetRequest struct {
	Content string `json:"content"`
}

func (h TweetHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
