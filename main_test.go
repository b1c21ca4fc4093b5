package main_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"journal/internal/handlers"
	"journal/internal/middleware"
	"journal/internal/repositories"
	"journal/internal/services"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event string, body []byte) error {
	args := m.Called(event, body)
	return args.Error(0)
}

// newTestApp wires the application the way main does, but on top of the
// in-memory repositories and a mocked event publisher.
func newTestApp(events services.EventPublisher) *fiber.App {
	userRepo := repositories.NewMockUserRepository()
	entryRepo := repositories.NewMockEntryRepository()

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	userService := services.NewUserService(userRepo, entryRepo, authService, events)
	entryService := services.NewEntryService(entryRepo, events)

	app := fiber.New()
	authRequired := middleware.AuthRequired(authService)
	handlers.NewAuthHandler(authService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app, authRequired)
	handlers.NewEntryHandler(entryService).RegisterRoutes(app, authRequired)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, token string, payload map[string]string) *http.Response {
	t.Helper()

	jsonBody, err := json.Marshal(payload)
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func TestAppWiringPublishesJournalEvents(t *testing.T) {
	mockEvents := new(MockEventPublisher)
	mockEvents.On("Publish", "user.registered", mock.Anything).Return(nil).Once()
	mockEvents.On("Publish", "entry.created", mock.Anything).Return(nil).Once()

	app := newTestApp(mockEvents)

	resp := postJSON(t, app, "/users", "", map[string]string{
		"FirstName": "A",
		"LastName":  "L",
		"UserName":  "alice1",
		"Password":  "secretpw",
		"Email":     "a@b.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, app, "/login", "", map[string]string{
		"UserName": "alice1",
		"Password": "secretpw",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()
	token, _ := loginResp["token"].(string)
	assert.NotEmpty(t, token)

	resp = postJSON(t, app, "/entries", token, map[string]string{
		"Title":   "MyDay01",
		"Content": "Today was fine.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	mockEvents.AssertExpectations(t)
}

func TestAppWiringSurvivesWithoutPublisher(t *testing.T) {
	// A nil publisher disables events without affecting request outcomes.
	app := newTestApp(nil)

	resp := postJSON(t, app, "/users", "", map[string]string{
		"FirstName": "B",
		"LastName":  "M",
		"UserName":  "bobby2",
		"Password":  "secretpw",
		"Email":     "b@m.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}
