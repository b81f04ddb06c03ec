package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
	"time"

	"github.com/streamhub/backend/internal/auth"
	"github.com/streamhub/backend/internal/media"
	"github.com/streamhub/backend/internal/models"
	"github.com/streamhub/backend/internal/repositories"
)

// The fakes below back the handler tests with map-based stores that honor the
// same sentinel errors as the Postgres implementations.

type inMemoryUserStore struct {
	users map[string]models.User
}

func newInMemoryUserStore() *inMemoryUserStore {
	return &inMemoryUserStore{users: make(map[string]models.User)}
}

func (s *inMemoryUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repositories.ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *inMemoryUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *inMemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *inMemoryUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *inMemoryUserStore) Update(_ context.Context, user models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

type inMemoryVideoStore struct {
	videos map[string]models.Video
}

func newInMemoryVideoStore() *inMemoryVideoStore {
	return &inMemoryVideoStore{videos: make(map[string]models.Video)}
}

func (s *inMemoryVideoStore) Create(_ context.Context, video models.Video) error {
	s.videos[video.ID] = video
	return nil
}

func (s *inMemoryVideoStore) List(_ context.Context, params repositories.VideoListParams) ([]models.Video, error) {
	var out []models.Video
	for _, v := range s.videos {
		if !v.IsPublished {
			continue
		}
		if params.OwnerID != "" && v.OwnerID != params.OwnerID {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b models.Video) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (s *inMemoryVideoStore) FindByID(_ context.Context, id string) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (s *inMemoryVideoStore) FetchAndCountView(_ context.Context, id string) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	video.Views++
	s.videos[id] = video
	return video, nil
}

func (s *inMemoryVideoStore) UpdateDetails(_ context.Context, id string, update repositories.VideoUpdate) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	if update.Title != nil {
		video.Title = *update.Title
	}
	if update.Description != nil {
		video.Description = *update.Description
	}
	if update.Thumbnail != nil {
		video.Thumbnail = *update.Thumbnail
	}
	s.videos[id] = video
	return video, nil
}

func (s *inMemoryVideoStore) Delete(_ context.Context, id string) error {
	if _, ok := s.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.videos, id)
	return nil
}

func (s *inMemoryVideoStore) TogglePublish(_ context.Context, id string) (models.Video, error) {
	video, ok := s.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	video.IsPublished = !video.IsPublished
	s.videos[id] = video
	return video, nil
}

type inMemoryCommentStore struct {
	comments map[string]models.Comment
	owners   map[string]models.UserSummary
}

func newInMemoryCommentStore() *inMemoryCommentStore {
	return &inMemoryCommentStore{
		comments: make(map[string]models.Comment),
		owners:   make(map[string]models.UserSummary),
	}
}

func (s *inMemoryCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *inMemoryCommentStore) ListForVideo(_ context.Context, videoID string, page, limit int) ([]models.CommentWithOwner, error) {
	var out []models.CommentWithOwner
	for _, c := range s.comments {
		if c.VideoID != videoID {
			continue
		}
		out = append(out, models.CommentWithOwner{Comment: c, Owner: s.owners[c.OwnerID]})
	}
	slices.SortFunc(out, func(a, b models.CommentWithOwner) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	start := (page - 1) * limit
	if start >= len(out) {
		return nil, nil
	}
	end := min(start+limit, len(out))
	return out[start:end], nil
}

func (s *inMemoryCommentStore) Update(_ context.Context, id, ownerID, content string) (models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	if comment.OwnerID != ownerID {
		return models.Comment{}, repositories.ErrForbidden
	}
	comment.Content = content
	s.comments[id] = comment
	return comment, nil
}

func (s *inMemoryCommentStore) Delete(_ context.Context, id, ownerID string) error {
	comment, ok := s.comments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if comment.OwnerID != ownerID {
		return repositories.ErrForbidden
	}
	delete(s.comments, id)
	return nil
}

type inMemoryTweetStore struct {
	tweets map[string]models.Tweet
	owners map[string]models.UserSummary
}

func newInMemoryTweetStore() *inMemoryTweetStore {
	return &inMemoryTweetStore{
		tweets: make(map[string]models.Tweet),
		owners: make(map[string]models.UserSummary),
	}
}

func (s *inMemoryTweetStore) Create(_ context.Context, tweet models.Tweet) error {
	s.tweets[tweet.ID] = tweet
	return nil
}

func (s *inMemoryTweetStore) ListForUser(_ context.Context, userID string) ([]models.TweetWithOwner, error) {
	var out []models.TweetWithOwner
	for _, t := range s.tweets {
		if t.OwnerID != userID {
			continue
		}
		out = append(out, models.TweetWithOwner{Tweet: t, Owner: s.owners[t.OwnerID]})
	}
	slices.SortFunc(out, func(a, b models.TweetWithOwner) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (s *inMemoryTweetStore) Update(_ context.Context, id, ownerID, content string) (models.Tweet, error) {
	tweet, ok := s.tweets[id]
	if !ok {
		return models.Tweet{}, repositories.ErrNotFound
	}
	if tweet.OwnerID != ownerID {
		return models.Tweet{}, repositories.ErrForbidden
	}
	tweet.Content = content
	s.tweets[id] = tweet
	return tweet, nil
}

func (s *inMemoryTweetStore) Delete(_ context.Context, id, ownerID string) error {
	tweet, ok := s.tweets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if tweet.OwnerID != ownerID {
		return repositories.ErrForbidden
	}
	delete(s.tweets, id)
	return nil
}

type inMemoryLikeStore struct {
	targets map[string]models.LikeTarget
	edges   map[string]models.Like
	liked   []models.LikedVideo
}

func newInMemoryLikeStore() *inMemoryLikeStore {
	return &inMemoryLikeStore{
		targets: make(map[string]models.LikeTarget),
		edges:   make(map[string]models.Like),
	}
}

func likeKey(like models.Like) string {
	return like.UserID + "|" + string(like.TargetKind) + "|" + like.TargetID
}

func (s *inMemoryLikeStore) Toggle(_ context.Context, like models.Like) (bool, error) {
	if kind, ok := s.targets[like.TargetID]; !ok || kind != like.TargetKind {
		return false, repositories.ErrNotFound
	}
	key := likeKey(like)
	if _, ok := s.edges[key]; ok {
		delete(s.edges, key)
		return false, nil
	}
	s.edges[key] = like
	return true, nil
}

func (s *inMemoryLikeStore) ListLikedVideos(_ context.Context, userID string) ([]models.LikedVideo, error) {
	return s.liked, nil
}

type inMemorySubscriptionStore struct {
	edges map[string]models.Subscription
	users map[string]models.UserSummary
}

func newInMemorySubscriptionStore() *inMemorySubscriptionStore {
	return &inMemorySubscriptionStore{
		edges: make(map[string]models.Subscription),
		users: make(map[string]models.UserSummary),
	}
}

func (s *inMemorySubscriptionStore) Toggle(_ context.Context, sub models.Subscription) (bool, error) {
	if sub.SubscriberID == sub.ChannelID {
		return false, repositories.ErrSelfSubscription
	}
	if _, ok := s.users[sub.ChannelID]; !ok {
		return false, repositories.ErrNotFound
	}
	key := sub.SubscriberID + "|" + sub.ChannelID
	if _, ok := s.edges[key]; ok {
		delete(s.edges, key)
		return false, nil
	}
	s.edges[key] = sub
	return true, nil
}

func (s *inMemorySubscriptionStore) Subscribers(_ context.Context, channelID string) ([]models.SubscriptionEntry, error) {
	var out []models.SubscriptionEntry
	for _, sub := range s.edges {
		if sub.ChannelID != channelID {
			continue
		}
		out = append(out, models.SubscriptionEntry{User: s.users[sub.SubscriberID], CreatedAt: sub.CreatedAt})
	}
	return out, nil
}

func (s *inMemorySubscriptionStore) SubscriberCount(_ context.Context, channelID string) (int64, error) {
	var count int64
	for _, sub := range s.edges {
		if sub.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

func (s *inMemorySubscriptionStore) Subscriptions(_ context.Context, subscriberID string) ([]models.SubscriptionEntry, error) {
	var out []models.SubscriptionEntry
	for _, sub := range s.edges {
		if sub.SubscriberID != subscriberID {
			continue
		}
		out = append(out, models.SubscriptionEntry{User: s.users[sub.ChannelID], CreatedAt: sub.CreatedAt})
	}
	return out, nil
}

func (s *inMemorySubscriptionStore) SubscriptionCount(_ context.Context, subscriberID string) (int64, error) {
	var count int64
	for _, sub := range s.edges {
		if sub.SubscriberID == subscriberID {
			count++
		}
	}
	return count, nil
}

type inMemoryPlaylistStore struct {
	playlists map[string]models.Playlist
}

func newInMemoryPlaylistStore() *inMemoryPlaylistStore {
	return &inMemoryPlaylistStore{playlists: make(map[string]models.Playlist)}
}

func (s *inMemoryPlaylistStore) Create(_ context.Context, playlist models.Playlist) error {
	s.playlists[playlist.ID] = playlist
	return nil
}

func (s *inMemoryPlaylistStore) ListForUser(_ context.Context, userID string) ([]models.Playlist, error) {
	var out []models.Playlist
	for _, p := range s.playlists {
		if p.OwnerID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *inMemoryPlaylistStore) FindByID(_ context.Context, id string) (models.Playlist, error) {
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (s *inMemoryPlaylistStore) owned(id, ownerID string) (models.Playlist, error) {
	playlist, ok := s.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	if playlist.OwnerID != ownerID {
		return models.Playlist{}, repositories.ErrForbidden
	}
	return playlist, nil
}

func (s *inMemoryPlaylistStore) Update(_ context.Context, id, ownerID string, update repositories.PlaylistUpdate) (models.Playlist, error) {
	playlist, err := s.owned(id, ownerID)
	if err != nil {
		return models.Playlist{}, err
	}
	if update.Name != nil {
		playlist.Name = *update.Name
	}
	if update.Description != nil {
		playlist.Description = *update.Description
	}
	s.playlists[id] = playlist
	return playlist, nil
}

func (s *inMemoryPlaylistStore) Delete(_ context.Context, id, ownerID string) error {
	if _, err := s.owned(id, ownerID); err != nil {
		return err
	}
	delete(s.playlists, id)
	return nil
}

func (s *inMemoryPlaylistStore) AddVideo(_ context.Context, playlistID, ownerID, videoID string) (models.Playlist, error) {
	playlist, err := s.owned(playlistID, ownerID)
	if err != nil {
		return models.Playlist{}, err
	}
	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	s.playlists[playlistID] = playlist
	return playlist, nil
}

func (s *inMemoryPlaylistStore) RemoveVideo(_ context.Context, playlistID, ownerID, videoID string) (models.Playlist, error) {
	playlist, err := s.owned(playlistID, ownerID)
	if err != nil {
		return models.Playlist{}, err
	}
	kept := playlist.VideoIDs[:0]
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	playlist.VideoIDs = kept
	s.playlists[playlistID] = playlist
	return playlist, nil
}

type inMemoryStatsStore struct {
	stats  map[string]models.ChannelStats
	videos map[string][]models.ChannelVideo
}

func newInMemoryStatsStore() *inMemoryStatsStore {
	return &inMemoryStatsStore{
		stats:  make(map[string]models.ChannelStats),
		videos: make(map[string][]models.ChannelVideo),
	}
}

func (s *inMemoryStatsStore) ChannelStats(_ context.Context, channelID string) (models.ChannelStats, error) {
	return s.stats[channelID], nil
}

func (s *inMemoryStatsStore) ChannelVideos(_ context.Context, channelID string) ([]models.ChannelVideo, error) {
	return s.videos[channelID], nil
}

type recordingIngestor struct {
	jobs []media.Job
	err  error
}

func (r *recordingIngestor) Enqueue(_ context.Context, job media.Job) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

// authedRequest builds a request carrying an authenticated principal and the
// provided path values.
func authedRequest(t *testing.T, method, target, userID string, body io.Reader, pathValues map[string]string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if userID != "" {
		req = req.WithContext(auth.WithUserID(req.Context(), userID))
	}
	for name, value := range pathValues {
		req.SetPathValue(name, value)
	}
	return req
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp
}

var fixedNow = func() time.Time {
	return time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
}
