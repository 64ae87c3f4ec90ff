package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tasklist/internal/models"
	"tasklist/internal/service"
)

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	auth := &mockAuth{
		registerUser: models.User{
			ID:        42,
			Username:  "alice123",
			Email:     "a@x.com",
			CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/register", `{"username":"alice123","email":"A@X.com","password":"longenough1"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		User struct {
			ID        int64  `json:"id"`
			Username  string `json:"username"`
			Email     string `json:"email"`
			CreatedAt string `json:"created_at"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.User.ID != 42 || resp.User.Username != "alice123" || resp.User.CreatedAt == "" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	// Handler forwards the normalized email, not the raw one.
	if auth.lastRegisterEmail != "a@x.com" {
		t.Fatalf("register email: got %q, want a@x.com", auth.lastRegisterEmail)
	}

	// The hash must never appear in the response.
	if bytes.Contains(w.Body.Bytes(), []byte("password")) {
		t.Fatalf("response leaks password material: %s", w.Body.String())
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	auth := &mockAuth{}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/register", `{"username":"ab","email":"bad","password":"short"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Error != "validation failed" || len(resp.Details) != 3 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if auth.lastRegisterUsername != "" {
		t.Fatal("service must not be reached on validation failure")
	}
}

func TestRegister_Conflict(t *testing.T) {
	auth := &mockAuth{registerErr: service.ErrUserExists}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/register", `{"username":"alice123","email":"a@x.com","password":"longenough1"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{
		loginToken: "tok123",
		loginUser:  models.User{ID: 7, Username: "alice123", Email: "a@x.com"},
	}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/login", `{"email":"a@x.com","password":"longenough1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Token != "tok123" || resp.User.ID != 7 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLogin_InvalidCredentialsFixedBody(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrInvalidCredentials}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// Unknown email and wrong password both come back as the same
	// service error, so the external body is identical for both.
	w := postJSON(r, "/auth/login", `{"email":"ghost@x.com","password":"whatever1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	want := `{"error":"Invalid email or password."}`
	if w.Body.String() != want {
		t.Fatalf("body: got %s, want %s", w.Body.String(), want)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	s := &service.Service{Authorization: &mockAuth{}}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/login", `{"email":"a@x.com"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
}

func TestAuthRoutes_InternalErrorIsGeneric(t *testing.T) {
	auth := &mockAuth{loginErr: errTestBoom}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := postJSON(r, "/auth/login", `{"email":"a@x.com","password":"longenough1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	want := `{"error":"internal server error"}`
	if w.Body.String() != want {
		t.Fatalf("body leaks detail: got %s", w.Body.String())
	}
}
