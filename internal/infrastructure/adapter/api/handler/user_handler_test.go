package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cacheport "github.com/avesta-dev/backend-template/internal/domain/port/cache"
	userUseCase "github.com/avesta-dev/backend-template/internal/domain/usecase/user"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/handler"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/routes"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/logger"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/memory"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/messaging"
	timeadapter "github.com/avesta-dev/backend-template/internal/infrastructure/adapter/time"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p *stubPinger) Ping(context.Context) error { return p.err }

type nullCache struct{}

func (nullCache) Get(context.Context, string) ([]byte, error) {
	return nil, cacheport.ErrCacheMiss
}
func (nullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nullCache) Delete(context.Context, string) error                     { return nil }

func setupRouter(t *testing.T, dbErr error) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewUserStore()
	noop := logger.NewNoopLogger()
	useCase := userUseCase.NewUserUseCase(
		memory.NewUnitOfWorkManager(store),
		memory.NewUserRepository(store),
		nullCache{},
		messaging.NewNoopPublisher(),
		timeadapter.NewRealTimeProvider(),
		noop,
	)

	router := gin.New()
	routes.SetupMiddlewares(router, noop)
	routes.SetupRoutes(router,
		handler.NewUserHandler(useCase, noop),
		handler.NewHealthHandler(&stubPinger{err: dbErr}, noop),
	)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, router *gin.Engine, email string) map[string]any {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/users", gin.H{
		"email": email,
		"name":  "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateUserEndpoint(t *testing.T) {
	router := setupRouter(t, nil)

	body := createUser(t, router, "alice@example.com")
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "Test User", body["name"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, true, body["is_active"])
}

func TestCreateUserEndpointValidation(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/users", gin.H{
		"email": "not-an-email",
		"name":  "Test User",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error_code"])
}

func TestCreateUserEndpointConflict(t *testing.T) {
	router := setupRouter(t, nil)
	createUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/users", gin.H{
		"email": "alice@example.com",
		"name":  "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "user_already_exists", body["error_code"])
}

func TestGetUserEndpoint(t *testing.T) {
	router := setupRouter(t, nil)
	created := createUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodGet, "/users/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, created["id"], body["id"])
}

func TestGetUserEndpointNotFound(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/users/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetUserEndpointInvalidID(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/users/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListUsersEndpoint(t *testing.T) {
	router := setupRouter(t, nil)
	createUser(t, router, "a@example.com")
	createUser(t, router, "b@example.com")

	rec := doJSON(t, router, http.MethodGet, "/users?limit=1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["total"])
	assert.Len(t, body["users"], 1)
}

func TestUpdateUserEndpoint(t *testing.T) {
	router := setupRouter(t, nil)
	created := createUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPatch, "/users/"+created["id"].(string), gin.H{
		"name": "Alice Cooper",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Alice Cooper", body["name"])
}

func TestDeleteUserEndpoint(t *testing.T) {
	router := setupRouter(t, nil)
	created := createUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodDelete, "/users/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/users/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeactivateUserEndpoint(t *testing.T) {
	router := setupRouter(t, nil)
	created := createUser(t, router, "alice@example.com")

	rec := doJSON(t, router, http.MethodPost, "/users/"+created["id"].(string)+"/deactivate", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["is_active"])
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthEndpointUnhealthy(t *testing.T) {
	router := setupRouter(t, errors.New("connection refused"))

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
