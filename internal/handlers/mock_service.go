package handlers

import (
	"context"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpUser service.CreatedUser
	signUpErr  error
	signInPair service.TokenPair
	signInErr  error
	parseRes   service.Claims
	parseErr   error

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignInUsername string
	lastSignInPassword string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (service.CreatedUser, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, username, password string) (service.TokenPair, error) {
	m.lastSignInUsername = username
	m.lastSignInPassword = password
	return m.signInPair, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (service.Claims, error) {
	m.lastParseToken = token
	return m.parseRes, m.parseErr
}

type mockTasks struct {
	createRes service.TaskView
	createErr error
	getRes    service.TaskView
	getErr    error
	listRes   []service.TaskView
	listErr   error
	updateErr error
	deleteErr error

	lastCreateInput service.TaskInput
	lastUpdateInput service.TaskInput
	lastFilter      service.TaskListFilter
	lastID          string
	listCalls       int
}

func (m *mockTasks) Create(_ context.Context, in service.TaskInput) (service.TaskView, error) {
	m.lastCreateInput = in
	return m.createRes, m.createErr
}

func (m *mockTasks) GetByID(_ context.Context, id string) (service.TaskView, error) {
	m.lastID = id
	return m.getRes, m.getErr
}

func (m *mockTasks) List(_ context.Context, f service.TaskListFilter) ([]service.TaskView, error) {
	m.listCalls++
	m.lastFilter = f
	return m.listRes, m.listErr
}

func (m *mockTasks) Update(_ context.Context, id string, in service.TaskInput) error {
	m.lastID = id
	m.lastUpdateInput = in
	return m.updateErr
}

func (m *mockTasks) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
