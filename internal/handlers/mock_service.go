package handlers

import (
	"context"
	"net/http"

	"tasklist/internal/models"
	"tasklist/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerUser models.User
	registerErr  error
	loginToken   string
	loginUser    models.User
	loginErr     error
	parseID      int64
	parseErr     error

	lastRegisterUsername string
	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastLoginPassword    string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, email, password string) (models.User, error) {
	m.lastRegisterUsername = username
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockAuth) Login(_ context.Context, email, password string) (string, models.User, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginToken, m.loginUser, m.loginErr
}

func (m *mockAuth) ParseToken(token string) (int64, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockTasks struct {
	listResp   []models.Task
	listErr    error
	createResp models.Task
	createErr  error
	updateResp models.Task
	updateErr  error
	deleteErr  error

	lastUserID int64
	lastTaskID int64
	lastTitle  string
	lastDesc   *string
	lastPatch  models.TaskPatch
}

func (m *mockTasks) List(_ context.Context, userID int64) ([]models.Task, error) {
	m.lastUserID = userID
	return m.listResp, m.listErr
}

func (m *mockTasks) Create(_ context.Context, userID int64, title string, description *string) (models.Task, error) {
	m.lastUserID = userID
	m.lastTitle = title
	m.lastDesc = description
	return m.createResp, m.createErr
}

func (m *mockTasks) Update(_ context.Context, userID, taskID int64, patch models.TaskPatch) (models.Task, error) {
	m.lastUserID = userID
	m.lastTaskID = taskID
	m.lastPatch = patch
	return m.updateResp, m.updateErr
}

func (m *mockTasks) Delete(_ context.Context, userID, taskID int64) error {
	m.lastUserID = userID
	m.lastTaskID = taskID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
