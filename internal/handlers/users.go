package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamhub/backend/internal/logging"
)

// UserHandler serves the authenticated account endpoints.
type UserHandler struct {
	Users   UserStore
	NowFunc func() time.Time
}

// Me handles GET /api/v1/users/me.
func (h UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, err := h.Users.FindByID(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "account not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newUserView(user), "account fetched successfully")
}

// UpdateMe handles PATCH /api/v1/users/me. Only the fields present in the
// request body are changed.
func (h UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid account update payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.Users.FindByID(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "account not found")
		return
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if _, err := mail.ParseAddress(email); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "invalid email address")
			return
		}
		user.Email = email
	}
	if req.Avatar != nil {
		user.Avatar = strings.TrimSpace(*req.Avatar)
	}
	if req.CoverImage != nil {
		user.CoverImage = strings.TrimSpace(*req.CoverImage)
	}
	user.UpdatedAt = h.now()

	if err := h.Users.Update(ctx, user); err != nil {
		respondStoreError(ctx, w, err, "account not found")
		return
	}

	respondData(ctx, w, http.StatusOK, newUserView(user), "account updated successfully")
}

// ChangePassword handles POST /api/v1/users/me/password.
func (h UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid password change payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.OldPassword == "" || req.NewPassword == "" {
		respondError(ctx, w, http.StatusBadRequest, "old and new passwords are required")
		return
	}
	if len(req.NewPassword) < 8 {
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	user, err := h.Users.FindByID(ctx, principal(r))
	if err != nil {
		respondStoreError(ctx, w, err, "account not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		logger.Warn("password change rejected", "userId", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "incorrect password")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	user.Password = string(hashed)
	user.UpdatedAt = h.now()
	if err := h.Users.Update(ctx, user); err != nil {
		respondStoreError(ctx, w, err, "account not found")
		return
	}

	respondData(ctx, w, http.StatusOK, nil, "password changed successfully")
}

type updateUserRequest struct {
	FullName   *string `json:"fullname"`
	Email      *string `json:"email"`
	Avatar     *string `json:"avatar"`
	CoverImage *string `json:"coverImage"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (h UserHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
