package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/streamhub/backend/internal/models"
)

// SubscriptionHandler serves channel subscription endpoints.
type SubscriptionHandler struct {
	Store   SubscriptionStore
	Users   UserStore
	NowFunc func() time.Time
}

// Toggle handles POST /api/v1/subscriptions/{channelId}.
func (h SubscriptionHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	sub := models.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: principal(r),
		ChannelID:    channelID,
		CreatedAt:    h.now(),
	}

	subscribed, err := h.Store.Toggle(ctx, sub)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	respondData(ctx, w, http.StatusOK, toggleResult{Active: subscribed}, message)
}

// Subscribers handles GET /api/v1/channels/{channelId}/subscribers. The list
// and the count are fetched independently so the count stays correct even when
// the list is truncated or empty.
func (h SubscriptionHandler) Subscribers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	channelID, err := pathID(r, "channelId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Users.FindByID(ctx, channelID); err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	entries, err := h.Store.Subscribers(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	count, err := h.Store.SubscriberCount(ctx, channelID)
	if err != nil {
		respondStoreError(ctx, w, err, "channel not found")
		return
	}

	respondData(ctx, w, http.StatusOK, subscriptionList{Entries: entries, Count: count}, "subscribers fetched successfully")
}

// Subscriptions handles GET /api/v1/users/{subscriberId}/subscriptions.
func (h SubscriptionHandler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	subscriberID, err := pathID(r, "subscriberId")
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Users.FindByID(ctx, subscriberID); err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	entries, err := h.Store.Subscriptions(ctx, subscriberID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	count, err := h.Store.SubscriptionCount(ctx, subscriberID)
	if err != nil {
		respondStoreError(ctx, w, err, "user not found")
		return
	}

	respondData(ctx, w, http.StatusOK, subscriptionList{Entries: entries, Count: count}, "subscriptions fetched successfully")
}

type subscriptionList struct {
	Entries []models.SubscriptionEntry `json:"entries"`
	Count   int64                      `json:"count"`
}

func (h SubscriptionHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
