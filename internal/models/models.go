package models

import "time"

// User represents an account within the StreamHub platform. Every user doubles
// as a channel that other users can subscribe to.
type User struct {
	ID         string
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     string
	CoverImage string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserSummary is the projection of user fields embedded in feed responses.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
	Avatar   string `json:"avatar"`
}

// Summary returns the public projection of the user.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, FullName: u.FullName, Avatar: u.Avatar}
}

// Video stores a published video along with its cached asset locations.
type Video struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	VideoFile   string
	Thumbnail   string
	Duration    float64
	Views       int64
	IsPublished bool
	AssetStatus string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	AssetStatusPending = "pending"
	AssetStatusReady   = "ready"
	AssetStatusFailed  = "failed"
)

// Comment is a user-authored message attached to a video.
type Comment struct {
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CommentWithOwner pairs a comment with its author's public projection.
type CommentWithOwner struct {
	Comment
	Owner UserSummary
}

// Tweet is a short text post owned by a user.
type Tweet struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TweetWithOwner pairs a tweet with its author's public projection.
type TweetWithOwner struct {
	Tweet
	Owner UserSummary
}

// Playlist is an ordered collection of videos. The same video may appear more
// than once; membership is a sequence, not a set.
type Playlist struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	VideoIDs    []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subscription is a directed edge from a subscriber to a channel. At most one
// edge exists per ordered pair.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// SubscriptionEntry expands a subscription edge with the projected user on the
// far side (the subscriber or the channel, depending on the query direction).
type SubscriptionEntry struct {
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// LikeTarget enumerates the entity kinds a like edge may point at.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Valid reports whether the target kind is one of the known values.
func (t LikeTarget) Valid() bool {
	switch t {
	case LikeTargetVideo, LikeTargetComment, LikeTargetTweet:
		return true
	}
	return false
}

// Like is a tagged edge from a user to exactly one video, comment, or tweet.
// At most one edge exists per (user, kind, target) triple.
type Like struct {
	ID         string
	UserID     string
	TargetKind LikeTarget
	TargetID   string
	CreatedAt  time.Time
}

// LikedVideo is the enriched projection returned by the liked-videos feed.
type LikedVideo struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	VideoFile string      `json:"videoFile"`
	Thumbnail string      `json:"thumbnail"`
	Views     int64       `json:"views"`
	Owner     UserSummary `json:"owner"`
}

// ChannelStats aggregates a channel's published reach. All fields default to
// zero when the channel has no matching rows.
type ChannelStats struct {
	TotalViews       int64 `json:"totalViews"`
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalLikes       int64 `json:"totalLikes"`
}

// ChannelVideo is the dashboard projection of a channel's published videos.
type ChannelVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Views     int64  `json:"views"`
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
