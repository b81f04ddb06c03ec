package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/streamhub/backend/internal/auth"
	"github.com/streamhub/backend/internal/models"
)

func newTestSessionManager() *auth.Manager {
	return auth.NewManager("test-secret", time.Minute, time.Hour, auth.NewInMemorySessionStore())
}

func TestAuthHandlerSignUp(t *testing.T) {
	store := newInMemoryUserStore()
	handler := AuthHandler{Users: store, Sessions: newTestSessionManager(), NowFunc: fixedNow}

	body, err := json.Marshal(signUpRequest{Username: "Alice", Email: "Test@Example.com", FullName: "Alice A", Password: "supersafe"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SignUp(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	stored, err := store.FindByEmail(context.Background(), "test@example.com")
	if err != nil {
		t.Fatalf("expected user to be stored: %v", err)
	}
	if stored.Username != "alice" {
		t.Fatalf("expected normalized username, got %q", stored.Username)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersafe")) != nil {
		t.Fatal("stored password is not hashed")
	}
}

func TestAuthHandlerSignUpValidation(t *testing.T) {
	tests := []struct {
		name string
		req  signUpRequest
		want int
	}{
		{name: "missing username", req: signUpRequest{Email: "a@b.com", Password: "supersafe"}, want: http.StatusBadRequest},
		{name: "bad email", req: signUpRequest{Username: "a", Email: "nope", Password: "supersafe"}, want: http.StatusBadRequest},
		{name: "short password", req: signUpRequest{Username: "a", Email: "a@b.com", Password: "short"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := AuthHandler{Users: newInMemoryUserStore(), Sessions: newTestSessionManager()}

			body, err := json.Marshal(tt.req)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			rec := httptest.NewRecorder()
			handler.SignUp(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body)))

			if rec.Code != tt.want {
				t.Fatalf("expected status %d got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestAuthHandlerSignUpConflict(t *testing.T) {
	store := newInMemoryUserStore()
	store.users["user-1"] = models.User{ID: "user-1", Username: "alice", Email: "dup@example.com"}
	handler := AuthHandler{Users: store, Sessions: newTestSessionManager()}

	body, err := json.Marshal(signUpRequest{Username: "alice", Email: "dup@example.com", Password: "supersafe"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.SignUp(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", bytes.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d got %d", http.StatusConflict, rec.Code)
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	store := newInMemoryUserStore()
	handler := AuthHandler{Users: store, Sessions: newTestSessionManager()}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store.users["user-1"] = models.User{ID: "user-1", Username: "alice", Email: "login@example.com", Password: string(hashed)}

	body, err := json.Marshal(loginRequest{Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != http.StatusOK {
		t.Fatalf("expected envelope status %d got %d", http.StatusOK, resp.Status)
	}
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	store := newInMemoryUserStore()
	handler := AuthHandler{Users: store, Sessions: newTestSessionManager()}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	store.users["user-1"] = models.User{ID: "user-1", Email: "login@example.com", Password: string(hashed)}

	body, err := json.Marshal(loginRequest{Email: "login@example.com", Password: "wrong-password"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Login(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestAuthHandlerRefresh(t *testing.T) {
	manager := newTestSessionManager()
	handler := AuthHandler{Users: newInMemoryUserStore(), Sessions: manager}

	issued, err := manager.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: issued.RefreshToken})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
}

func TestAuthHandlerRefreshUnknownToken(t *testing.T) {
	handler := AuthHandler{Users: newInMemoryUserStore(), Sessions: newTestSessionManager()}

	body, err := json.Marshal(refreshRequest{RefreshToken: "never-issued"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(body)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}
