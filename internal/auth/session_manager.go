package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/streamhub/backend/internal/models"
)

var (
	// ErrSessionNotFound indicates the provided refresh token does not map to an active session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrRefreshTokenExpired indicates the refresh token has expired and cannot be used.
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	// ErrInvalidAccessToken indicates the access token failed signature or claim validation.
	ErrInvalidAccessToken = errors.New("invalid access token")
)

// SessionStore persists issued refresh tokens so they can survive process restarts.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	Find(ctx context.Context, refreshToken string) (Session, error)
	Delete(ctx context.Context, refreshToken string) error
}

// Session represents a refresh token issued to a user.
type Session struct {
	RefreshToken string
	UserID       string
	ExpiresAt    time.Time
}

// Manager issues signed access tokens and persistent refresh tokens. Access
// tokens are self-contained JWTs; refresh tokens are opaque and live in the
// session store until exchanged or revoked.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	store SessionStore
}

// NewManager constructs a Manager signing access tokens with the provided secret.
func NewManager(secret string, accessTTL, refreshTTL time.Duration, store SessionStore) *Manager {
	if store == nil {
		panic("auth: session store must not be nil")
	}
	if secret == "" {
		panic("auth: signing secret must not be empty")
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}
}

// Issue creates a new pair of access and refresh tokens for the provided user identifier.
func (m *Manager) Issue(ctx context.Context, userID string) (models.SessionTokens, error) {
	if userID == "" {
		return models.SessionTokens{}, errors.New("user id must be provided")
	}

	now := time.Now().UTC()
	accessExpiry := now.Add(m.accessTTL)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(accessExpiry),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := randomToken()
	if err != nil {
		return models.SessionTokens{}, err
	}

	tokens := models.SessionTokens{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExpiry,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: now.Add(m.refreshTTL),
	}

	if err := m.store.Save(ctx, Session{
		RefreshToken: refreshToken,
		UserID:       userID,
		ExpiresAt:    tokens.RefreshExpiresAt,
	}); err != nil {
		return models.SessionTokens{}, err
	}

	return tokens, nil
}

// Refresh exchanges a refresh token for a new session token pair.
func (m *Manager) Refresh(ctx context.Context, refreshToken string) (models.SessionTokens, error) {
	if refreshToken == "" {
		return models.SessionTokens{}, ErrSessionNotFound
	}

	session, err := m.store.Find(ctx, refreshToken)
	if err != nil {
		return models.SessionTokens{}, err
	}

	if time.Now().UTC().After(session.ExpiresAt) {
		_ = m.store.Delete(ctx, refreshToken)
		return models.SessionTokens{}, ErrRefreshTokenExpired
	}

	if err := m.store.Delete(ctx, refreshToken); err != nil {
		return models.SessionTokens{}, err
	}

	return m.Issue(ctx, session.UserID)
}

// Verify validates an access token and returns the user id it was issued to.
func (m *Manager) Verify(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidAccessToken
	}

	return claims.Subject, nil
}

// Revoke removes the provided refresh token from the active session store.
func (m *Manager) Revoke(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	_ = m.store.Delete(ctx, refreshToken)
}

func randomToken() (string, error) {
	const size = 32
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
