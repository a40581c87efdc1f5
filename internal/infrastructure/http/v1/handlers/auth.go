package handlers

import (
	"github.com/gin-gonic/gin"

	"adminsuite/internal/core/apperror"
	appctx "adminsuite/internal/core/context"
	"adminsuite/internal/core/id"
	"adminsuite/internal/domain/auth"
	"adminsuite/internal/domain/users"
	"adminsuite/internal/infrastructure/http/v1/dto"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service *auth.Service
	users   *users.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, usersService *users.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, service: service, users: usersService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Login(c.Request.Context(), req.ToCredentials())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSession(session))
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	session, err := h.service.Register(c.Request.Context(), req.ToRegistration())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromSession(session))
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.service.Logout(c.Request.Context())
	h.OK(c, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := c.Request.Context()

	principal := appctx.GetUser(ctx)
	if principal == nil {
		h.Error(c, apperror.NewUnauthorized("not authenticated"))
		return
	}

	userID, err := id.Parse(principal.UserID)
	if err != nil {
		h.Error(c, apperror.NewUnauthorized("invalid subject"))
		return
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromUser(*user))
}

// RegisterRoutes registers auth routes. Sign-up goes through idempotent,
// which may be a no-op middleware.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup, idempotent gin.HandlerFunc) {
	public.POST("/login", h.Login)
	public.POST("/register", idempotent, h.Register)
	protected.POST("/logout", h.Logout)
	protected.GET("/me", h.Me)
}
