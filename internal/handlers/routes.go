package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Sessions      SessionManager
	Videos        VideoStore
	Comments      CommentStore
	Tweets        TweetStore
	Playlists     PlaylistStore
	Likes         LikeStore
	Subscriptions SubscriptionStore
	Stats         StatsStore
	Ingestor      MediaIngestor
	AuthLimiter   RateLimiter
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux. Routes below
// the auth block require a bearer token.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	users := UserHandler{Users: deps.Users}
	videos := VideoHandler{Videos: deps.Videos, Ingestor: deps.Ingestor}
	comments := CommentHandler{Comments: deps.Comments, Videos: deps.Videos}
	tweets := TweetHandler{Tweets: deps.Tweets, Users: deps.Users}
	playlists := PlaylistHandler{Playlists: deps.Playlists, Users: deps.Users}
	likes := LikeHandler{Likes: deps.Likes}
	subscriptions := SubscriptionHandler{Store: deps.Subscriptions, Users: deps.Users}
	dashboard := DashboardHandler{Store: deps.Stats}

	guard := func(next http.HandlerFunc) http.HandlerFunc {
		return RequireUser(deps.Sessions, next)
	}

	mux.HandleFunc("GET /healthz", health.Handle)

	mux.HandleFunc("POST /api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)

	mux.HandleFunc("GET /api/v1/users/me", guard(users.Me))
	mux.HandleFunc("PATCH /api/v1/users/me", guard(users.UpdateMe))
	mux.HandleFunc("POST /api/v1/users/me/password", guard(users.ChangePassword))

	mux.HandleFunc("GET /api/v1/videos", videos.List)
	mux.HandleFunc("POST /api/v1/videos", guard(videos.Publish))
	mux.HandleFunc("GET /api/v1/videos/{videoId}", videos.Get)
	mux.HandleFunc("PATCH /api/v1/videos/{videoId}", guard(videos.Update))
	mux.HandleFunc("DELETE /api/v1/videos/{videoId}", guard(videos.Delete))
	mux.HandleFunc("PATCH /api/v1/videos/{videoId}/publish", guard(videos.TogglePublish))

	mux.HandleFunc("GET /api/v1/videos/{videoId}/comments", comments.List)
	mux.HandleFunc("POST /api/v1/videos/{videoId}/comments", guard(comments.Create))
	mux.HandleFunc("PATCH /api/v1/comments/{commentId}", guard(comments.Update))
	mux.HandleFunc("DELETE /api/v1/comments/{commentId}", guard(comments.Delete))

	mux.HandleFunc("POST /api/v1/tweets", guard(tweets.Create))
	mux.HandleFunc("GET /api/v1/users/{username}/tweets", tweets.ListForUser)
	mux.HandleFunc("PATCH /api/v1/tweets/{tweetId}", guard(tweets.Update))
	mux.HandleFunc("DELETE /api/v1/tweets/{tweetId}", guard(tweets.Delete))

	mux.HandleFunc("POST /api/v1/likes/videos/{videoId}", guard(likes.ToggleVideo))
	mux.HandleFunc("POST /api/v1/likes/comments/{commentId}", guard(likes.ToggleComment))
	mux.HandleFunc("POST /api/v1/likes/tweets/{tweetId}", guard(likes.ToggleTweet))
	mux.HandleFunc("GET /api/v1/likes/videos", guard(likes.LikedVideos))

	mux.HandleFunc("POST /api/v1/subscriptions/{channelId}", guard(subscriptions.Toggle))
	mux.HandleFunc("GET /api/v1/channels/{channelId}/subscribers", subscriptions.Subscribers)
	mux.HandleFunc("GET /api/v1/users/{subscriberId}/subscriptions", subscriptions.Subscriptions)

	mux.HandleFunc("POST /api/v1/playlists", guard(playlists.Create))
	mux.HandleFunc("GET /api/v1/users/{userId}/playlists", playlists.ListForUser)
	mux.HandleFunc("GET /api/v1/playlists/{playlistId}", playlists.Get)
	mux.HandleFunc("PATCH /api/v1/playlists/{playlistId}", guard(playlists.Update))
	mux.HandleFunc("DELETE /api/v1/playlists/{playlistId}", guard(playlists.Delete))
	mux.HandleFunc("POST /api/v1/playlists/{playlistId}/videos/{videoId}", guard(playlists.AddVideo))
	mux.HandleFunc("DELETE /api/v1/playlists/{playlistId}/videos/{videoId}", guard(playlists.RemoveVideo))

	mux.HandleFunc("GET /api/v1/dashboard/stats", guard(dashboard.Stats))
	mux.HandleFunc("GET /api/v1/dashboard/videos", guard(dashboard.Videos))
}
