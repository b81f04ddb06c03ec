package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streamhub/backend/internal/models"
)

func TestLikeHandlerToggleVideo(t *testing.T) {
	likes := newInMemoryLikeStore()
	likes.targets[videoID] = models.LikeTargetVideo
	handler := LikeHandler{Likes: likes, NowFunc: fixedNow}

	toggle := func() toggleResult {
		rec := httptest.NewRecorder()
		handler.ToggleVideo(rec, authedRequest(t, http.MethodPost, "/api/v1/likes/videos/"+videoID, strangerID, nil, map[string]string{"videoId": videoID}))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
		}
		var resp struct {
			Data toggleResult `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return resp.Data
	}

	if got := toggle(); !got.Active {
		t.Fatal("first toggle should activate the like")
	}
	if got := toggle(); got.Active {
		t.Fatal("second toggle should remove the like")
	}
	if got := toggle(); !got.Active {
		t.Fatal("third toggle should activate the like again")
	}
}

func TestLikeHandlerToggleUnknownTarget(t *testing.T) {
	handler := LikeHandler{Likes: newInMemoryLikeStore()}

	rec := httptest.NewRecorder()
	handler.ToggleTweet(rec, authedRequest(t, http.MethodPost, "/api/v1/likes/tweets/"+videoID, strangerID, nil, map[string]string{"tweetId": videoID}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}
}

func TestLikeHandlerToggleMalformedID(t *testing.T) {
	handler := LikeHandler{Likes: newInMemoryLikeStore()}

	rec := httptest.NewRecorder()
	handler.ToggleComment(rec, authedRequest(t, http.MethodPost, "/api/v1/likes/comments/nope", strangerID, nil, map[string]string{"commentId": "nope"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestLikeHandlerLikedVideos(t *testing.T) {
	likes := newInMemoryLikeStore()
	likes.liked = []models.LikedVideo{{
		ID:    videoID,
		Title: "Test video",
		Owner: models.UserSummary{ID: ownerID, Username: "alice"},
	}}
	handler := LikeHandler{Likes: likes}

	rec := httptest.NewRecorder()
	handler.LikedVideos(rec, authedRequest(t, http.MethodGet, "/api/v1/likes/videos", strangerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data likedVideoList `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Count != 1 {
		t.Fatalf("expected videoCount 1, got %d", resp.Data.Count)
	}
	if len(resp.Data.Videos) != 1 || resp.Data.Videos[0].Owner.Username != "alice" {
		t.Fatalf("unexpected liked videos payload: %+v", resp.Data.Videos)
	}
}

func TestLikeHandlerLikedVideosEmpty(t *testing.T) {
	handler := LikeHandler{Likes: newInMemoryLikeStore()}

	rec := httptest.NewRecorder()
	handler.LikedVideos(rec, authedRequest(t, http.MethodGet, "/api/v1/likes/videos", strangerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data struct {
			Videos []models.LikedVideo `json:"videos"`
			Count  *int64              `json:"videoCount"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Videos == nil {
		t.Fatal("expected an empty videos list, got null")
	}
	if resp.Data.Count == nil || *resp.Data.Count != 0 {
		t.Fatalf("expected videoCount 0, got %v", resp.Data.Count)
	}
}
