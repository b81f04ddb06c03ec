package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamhub/backend/internal/auth"
	"github.com/streamhub/backend/internal/logging"
	"github.com/streamhub/backend/internal/models"
	"github.com/streamhub/backend/internal/repositories"
)

// AuthHandler implements account registration and session endpoints.
type AuthHandler struct {
	Users    UserStore
	Sessions SessionManager
	Limiter  RateLimiter
	NowFunc  func() time.Time
}

// SignUp handles POST /api/v1/auth/signup requests.
func (h AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "signup") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many signup attempts")
		return
	}

	if h.Users == nil || h.Sessions == nil {
		logger.Error("authentication dependencies unavailable", "hasUsers", h.Users != nil, "hasSessions", h.Sessions != nil)
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}

	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" || req.Email == "" || req.Password == "" {
		logger.Warn("signup missing credentials", "username", req.Username, "email", req.Email)
		respondError(ctx, w, http.StatusBadRequest, "username, email, and password are required")
		return
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		logger.Warn("signup invalid email", "email", req.Email, "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid email address")
		return
	}

	if len(req.Password) < 8 {
		logger.Warn("signup password too short", "email", req.Email)
		respondError(ctx, w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("signup failed to hash password", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "failed to secure password")
		return
	}

	now := h.now()
	user := models.User{
		ID:         uuid.NewString(),
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   string(hashed),
		Avatar:     strings.TrimSpace(req.Avatar),
		CoverImage: strings.TrimSpace(req.CoverImage),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logger.Warn("signup conflict", "username", req.Username, "email", req.Email)
			respondError(ctx, w, http.StatusConflict, "account already exists")
			return
		}
		logger.Error("signup failed to create user", "error", err, "email", req.Email)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create account")
		return
	}

	tokens, err := h.Sessions.Issue(ctx, user.ID)
	if err != nil {
		logger.Error("signup failed to issue session", "error", err, "userId", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondData(ctx, w, http.StatusCreated, authResponse{User: user.Summary(), Tokens: tokens}, "account created successfully")
}

// Login handles POST /api/v1/auth/login requests.
func (h AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !allowRequest(h.Limiter, r, "login") {
		respondError(ctx, w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	if h.Users == nil || h.Sessions == nil {
		logger.Error("authentication dependencies unavailable", "hasUsers", h.Users != nil, "hasSessions", h.Sessions != nil)
		respondError(ctx, w, http.StatusInternalServerError, "authentication services unavailable")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		logger.Warn("login missing credentials", "email", req.Email)
		respondError(ctx, w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		logger.Warn("login user lookup failed", "email", req.Email, "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.Warn("login password mismatch", "userId", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tokens, err := h.Sessions.Issue(ctx, user.ID)
	if err != nil {
		logger.Error("failed to issue session", "error", err, "userId", user.ID)
		respondError(ctx, w, http.StatusInternalServerError, "failed to create session")
		return
	}

	respondData(ctx, w, http.StatusOK, authResponse{User: user.Summary(), Tokens: tokens}, "logged in successfully")
}

// Refresh exchanges a refresh token for a new session.
func (h AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil {
		logger.Error("session manager unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "session service unavailable")
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid refresh payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.RefreshToken = strings.TrimSpace(req.RefreshToken)
	if req.RefreshToken == "" {
		logger.Warn("missing refresh token")
		respondError(ctx, w, http.StatusBadRequest, "refresh token is required")
		return
	}

	tokens, err := h.Sessions.Refresh(ctx, req.RefreshToken)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrRefreshTokenExpired) || errors.Is(err, auth.ErrSessionNotFound) {
			status = http.StatusUnauthorized
		}
		logger.Error("refresh failed", "error", err, "status", status)
		respondError(ctx, w, status, "unable to refresh session")
		return
	}

	respondData(ctx, w, http.StatusOK, authResponse{Tokens: tokens}, "session refreshed successfully")
}

// Logout revokes the caller's refresh token.
func (h AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if h.Sessions == nil {
		logger.Error("session manager unavailable")
		respondError(ctx, w, http.StatusInternalServerError, "session service unavailable")
		return
	}

	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid logout payload", "error", err)
		respondError(ctx, w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.Sessions.Revoke(ctx, strings.TrimSpace(req.RefreshToken))
	respondData(ctx, w, http.StatusOK, nil, "logged out successfully")
}

type signUpRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullname"`
	Password   string `json:"password"`
	Avatar     string `json:"avatar"`
	CoverImage string `json:"coverImage"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type authResponse struct {
	User   models.UserSummary   `json:"user,omitzero"`
	Tokens models.SessionTokens `json:"tokens"`
}

func (h AuthHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
