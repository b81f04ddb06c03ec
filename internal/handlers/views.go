package handlers

import (
	"time"

	"github.com/streamhub/backend/internal/models"
)

// The view types below are the JSON projections of the domain models. Domain
// structs stay tag-free; handlers decide what crosses the wire.

type userView struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
}

func newUserView(u models.User) userView {
	return userView{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
	}
}

type videoView struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoFile   string    `json:"videoFile"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	AssetStatus string    `json:"assetStatus"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newVideoView(v models.Video) videoView {
	return videoView{
		ID:          v.ID,
		OwnerID:     v.OwnerID,
		Title:       v.Title,
		Description: v.Description,
		VideoFile:   v.VideoFile,
		Thumbnail:   v.Thumbnail,
		Duration:    v.Duration,
		Views:       v.Views,
		IsPublished: v.IsPublished,
		AssetStatus: v.AssetStatus,
		CreatedAt:   v.CreatedAt,
	}
}

func newVideoViews(videos []models.Video) []videoView {
	views := make([]videoView, 0, len(videos))
	for _, v := range videos {
		views = append(views, newVideoView(v))
	}
	return views
}

type commentView struct {
	ID        string              `json:"id"`
	VideoID   string              `json:"videoId"`
	OwnerID   string              `json:"ownerId"`
	Content   string              `json:"content"`
	Owner     *models.UserSummary `json:"owner,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func newCommentView(c models.Comment, owner *models.UserSummary) commentView {
	return commentView{
		ID:        c.ID,
		VideoID:   c.VideoID,
		OwnerID:   c.OwnerID,
		Content:   c.Content,
		Owner:     owner,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCommentViews(comments []models.CommentWithOwner) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		owner := c.Owner
		views = append(views, newCommentView(c.Comment, &owner))
	}
	return views
}

type tweetView struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"ownerId"`
	Content   string              `json:"content"`
	Owner     *models.UserSummary `json:"owner,omitempty"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func newTweetView(t models.Tweet, owner *models.UserSummary) tweetView {
	return tweetView{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Content:   t.Content,
		Owner:     owner,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func newTweetViews(tweets []models.TweetWithOwner) []tweetView {
	views := make([]tweetView, 0, len(tweets))
	for _, t := range tweets {
		owner := t.Owner
		views = append(views, newTweetView(t.Tweet, &owner))
	}
	return views
}

type playlistView struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	VideoIDs    []string  `json:"videos"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newPlaylistView(p models.Playlist) playlistView {
	ids := p.VideoIDs
	if ids == nil {
		ids = []string{}
	}
	return playlistView{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		VideoIDs:    ids,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newPlaylistViews(playlists []models.Playlist) []playlistView {
	views := make([]playlistView, 0, len(playlists))
	for _, p := range playlists {
		views = append(views, newPlaylistView(p))
	}
	return views
}
