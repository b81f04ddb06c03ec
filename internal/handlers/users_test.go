package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamhub/backend/internal/models"
)

func TestUserHandlerMe(t *testing.T) {
	users := newInMemoryUserStore()
	users.users[ownerID] = models.User{ID: ownerID, Username: "alice", Email: "alice@example.com"}
	handler := UserHandler{Users: users}

	rec := httptest.NewRecorder()
	handler.Me(rec, authedRequest(t, http.MethodGet, "/api/v1/users/me", ownerID, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var resp struct {
		Data userView `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Username != "alice" {
		t.Fatalf("unexpected account payload: %+v", resp.Data)
	}
}

func TestUserHandlerUpdateMePartial(t *testing.T) {
	users := newInMemoryUserStore()
	users.users[ownerID] = models.User{ID: ownerID, Username: "alice", Email: "alice@example.com", FullName: "Alice"}
	handler := UserHandler{Users: users, NowFunc: fixedNow}

	name := "Alice Streamer"
	body, err := json.Marshal(updateUserRequest{FullName: &name})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.UpdateMe(rec, authedRequest(t, http.MethodPatch, "/api/v1/users/me", ownerID, bytes.NewReader(body), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	updated := users.users[ownerID]
	if updated.FullName != "Alice Streamer" {
		t.Fatalf("expected full name update, got %q", updated.FullName)
	}
	if updated.Email != "alice@example.com" {
		t.Fatalf("email should be untouched, got %q", updated.Email)
	}
}

func TestUserHandlerUpdateMeRejectsBadEmail(t *testing.T) {
	users := newInMemoryUserStore()
	users.users[ownerID] = models.User{ID: ownerID, Email: "alice@example.com"}
	handler := UserHandler{Users: users}

	email := "not-an-email"
	body, err := json.Marshal(updateUserRequest{Email: &email})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.UpdateMe(rec, authedRequest(t, http.MethodPatch, "/api/v1/users/me", ownerID, bytes.NewReader(body), nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUserHandlerChangePassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := newInMemoryUserStore()
	users.users[ownerID] = models.User{ID: ownerID, Password: string(hashed)}
	handler := UserHandler{Users: users, NowFunc: fixedNow}

	body, err := json.Marshal(changePasswordRequest{OldPassword: "old-password", NewPassword: "new-password"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ChangePassword(rec, authedRequest(t, http.MethodPost, "/api/v1/users/me/password", ownerID, bytes.NewReader(body), nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	if bcrypt.CompareHashAndPassword([]byte(users.users[ownerID].Password), []byte("new-password")) != nil {
		t.Fatal("expected stored hash to match the new password")
	}
}

func TestUserHandlerChangePasswordWrongOld(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-password"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	users := newInMemoryUserStore()
	users.users[ownerID] = models.User{ID: ownerID, Password: string(hashed)}
	handler := UserHandler{Users: users}

	body, err := json.Marshal(changePasswordRequest{OldPassword: "guess", NewPassword: "new-password"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ChangePassword(rec, authedRequest(t, http.MethodPost, "/api/v1/users/me/password", ownerID, bytes.NewReader(body), nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}
