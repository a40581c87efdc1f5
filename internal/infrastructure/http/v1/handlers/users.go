package handlers

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/domain/table"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/http/v1/dto"
)

// UsersHandler serves the users table and account management.
type UsersHandler struct {
	*BaseHandler
	service *users.Service
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(base *BaseHandler, service *users.Service) *UsersHandler {
	return &UsersHandler{BaseHandler: base, service: service}
}

// List handles GET /users
func (h *UsersHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	page, err := h.service.List(c.Request.Context(), req.ToQuery(
		table.Predicate{Field: users.FieldRole.Key, Value: req.Role},
		table.Predicate{Field: users.FieldStatus.Key, Value: req.Status},
	))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPage(page, dto.FromUser))
}

// Get handles GET /users/:id
func (h *UsersHandler) Get(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(*user))
}

// Create handles POST /users
func (h *UsersHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromUser(*user))
}

// Update handles PUT /users/:id
func (h *UsersHandler) Update(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.service.Update(c.Request.Context(), userID, req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(*user))
}

// Delete handles DELETE /users/:id
func (h *UsersHandler) Delete(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// History handles GET /users/:id/history
func (h *UsersHandler) History(c *gin.Context) {
	userID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req dto.HistoryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	entries, err := h.service.History(c.Request.Context(), userID, req.Limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.HistoryResponse{Items: entries})
}
