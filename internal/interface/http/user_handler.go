package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/seuhd/campuscoffee/internal/domain"
	"github.com/seuhd/campuscoffee/internal/domain/entity"
	"github.com/seuhd/campuscoffee/pkg/response"
	"github.com/seuhd/campuscoffee/pkg/validation"
)

// UserService is the domain-service contract the handler depends on.
// *application.Service satisfies it.
type UserService interface {
	ListAll(ctx context.Context) ([]entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByName(ctx context.Context, name string) (*entity.User, error)
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}

// UserHandler maps REST verbs onto the domain service and translates
// domain failures into status-coded responses. It performs no
// persistence logic itself.
type UserHandler struct {
	Svc    UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainList(users))
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(u))
}

// Filter handles GET /users/filter?name=X.
func (h *UserHandler) Filter(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		response.Error(c, http.StatusBadRequest, response.CodeValidationFailed,
			"query parameter 'name' is required", nil)
		return
	}
	u, err := h.Svc.GetByName(c.Request.Context(), name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(u))
}

// Create handles POST /users. The body must not carry an id; the store
// assigns one and the response carries a Location reference to it.
func (h *UserHandler) Create(c *gin.Context) {
	var dto UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationFailed,
			"validation failed", validation.ToDetails(err))
		return
	}
	if dto.ID != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationFailed,
			"id must not be set when creating a user", nil)
		return
	}

	created, err := h.Svc.Upsert(c.Request.Context(), dto.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/users/%d", *created.ID))
	c.JSON(http.StatusCreated, fromDomain(created))
}

// Update handles PUT /users/:id. Path and body ids must match.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dto UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationFailed,
			"validation failed", validation.ToDetails(err))
		return
	}
	if dto.ID == nil || *dto.ID != id {
		response.Error(c, http.StatusBadRequest, response.CodeIDMismatch,
			"user id in path and body do not match", nil)
		return
	}

	updated, err := h.Svc.Upsert(c.Request.Context(), dto.toDomain())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomain(updated))
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail is the single place domain failures become transport statuses.
func (h *UserHandler) fail(c *gin.Context, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		response.Error(c, http.StatusNotFound, response.CodeUserNotFound, nf.Error(), nil)
		return
	}
	var dup *domain.DuplicationError
	if errors.As(err, &dup) {
		response.Error(c, http.StatusBadRequest, response.CodeDuplication, dup.Error(),
			map[string]string{"field": dup.Field})
		return
	}
	h.Logger.WithError(err).Error("unexpected error handling user request")
	response.Error(c, http.StatusInternalServerError, response.CodeInternal,
		"internal server error", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidationFailed,
			"path parameter 'id' must be an integer", nil)
		return 0, false
	}
	return id, true
}
