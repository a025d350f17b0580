package handler

import (
	"net/http"
	"strconv"

	domainerr "github.com/avesta-dev/backend-template/internal/domain/error"
	coreport "github.com/avesta-dev/backend-template/internal/domain/port/core"
	"github.com/avesta-dev/backend-template/internal/domain/port/usecase"
	userUseCase "github.com/avesta-dev/backend-template/internal/domain/usecase/user"
	"github.com/avesta-dev/backend-template/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(
	userUseCase usecase.UserUseCase,
	logger coreport.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// statusForCode maps domain error codes to HTTP status codes
func statusForCode(code string) int {
	switch code {
	case domainerr.CodeUserNotFound:
		return http.StatusNotFound
	case domainerr.CodeUserAlreadyExists:
		return http.StatusConflict
	case domainerr.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the failure carried by a result
func (h *UserHandler) respondError(c *gin.Context, err *domainerr.Error) {
	h.logger.Warn("Request failed", map[string]any{
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"error_code": err.Code,
		"error_id":   err.ID,
	})
	c.JSON(statusForCode(err.Code), dto.FromDomainError(err))
}

// parseUserID validates the userId path parameter
func parseUserID(c *gin.Context) (string, bool) {
	id := c.Param("userId")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: domainerr.CodeValidation,
			Message:   "Invalid user ID format",
		})
		return "", false
	}
	return id, true
}

// CreateUser handles the POST /users endpoint
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: domainerr.CodeValidation,
			Message:   "Invalid request body",
			Reason:    err.Error(),
		})
		return
	}

	res := h.userUseCase.CreateUser(c.Request.Context(), userUseCase.CreateUserCommand{
		Email: req.Email,
		Name:  req.Name,
	})
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.JSON(http.StatusCreated, res.Unwrap())
}

// GetUser handles the GET /users/:userId endpoint
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	res := h.userUseCase.GetUser(c.Request.Context(), id)
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.JSON(http.StatusOK, res.Unwrap())
}

// ListUsers handles the GET /users endpoint
func (h *UserHandler) ListUsers(c *gin.Context) {
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: domainerr.CodeValidation,
			Message:   "Invalid offset parameter",
		})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: domainerr.CodeValidation,
			Message:   "Invalid limit parameter",
		})
		return
	}

	res := h.userUseCase.ListUsers(c.Request.Context(), userUseCase.ListUsersQuery{
		Offset: offset,
		Limit:  limit,
	})
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.JSON(http.StatusOK, res.Unwrap())
}

// UpdateUser handles the PATCH /users/:userId endpoint
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			ErrorCode: domainerr.CodeValidation,
			Message:   "Invalid request body",
			Reason:    err.Error(),
		})
		return
	}

	res := h.userUseCase.UpdateUser(c.Request.Context(), userUseCase.UpdateUserCommand{
		ID:     id,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.JSON(http.StatusOK, res.Unwrap())
}

// DeleteUser handles the DELETE /users/:userId endpoint
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	res := h.userUseCase.DeleteUser(c.Request.Context(), id)
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.Status(http.StatusNoContent)
}

// DeactivateUser handles the POST /users/:userId/deactivate endpoint
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	res := h.userUseCase.DeactivateUser(c.Request.Context(), id)
	if res.IsErr() {
		h.respondError(c, res.UnwrapErr())
		return
	}

	c.JSON(http.StatusOK, res.Unwrap())
}
