package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zankoclinic/clinic-api/internal/handler"
	"github.com/zankoclinic/clinic-api/internal/middleware"
	"github.com/zankoclinic/clinic-api/internal/model"
	"github.com/zankoclinic/clinic-api/internal/service/auth"
)

type Handler struct {
	service    *auth.Service
	cookieName string
	cookieTTL  time.Duration
}

func NewHandler(service *auth.Service, cookieName string, cookieTTL time.Duration) *Handler {
	return &Handler{service: service, cookieName: cookieName, cookieTTL: cookieTTL}
}

// RegisterPublicRoutes mounts the login endpoints under /auth, outside the
// authenticated group.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/admin/login", h.LoginAdmin)
	rg.POST("/doctor/login", h.LoginDoctor)
}

// RegisterRoutes mounts the session endpoints under /auth, behind
// authentication.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/check", h.Check)
	rg.POST("/logout", h.Logout)
}

func (h *Handler) LoginAdmin(c *gin.Context) {
	h.login(c, h.service.LoginAdmin)
}

func (h *Handler) LoginDoctor(c *gin.Context) {
	h.login(c, h.service.LoginDoctor)
}

func (h *Handler) login(c *gin.Context, fn func(ctx context.Context, email, password string) (*model.SessionUser, string, error)) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid request payload"))
		return
	}

	user, token, err := fn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid credentials"))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to log in"))
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(user))
}

// Check reports who the current cookie belongs to. Pollers hit this
// endpoint periodically to detect expiry.
func (h *Handler) Check(c *gin.Context) {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("No active session"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(&model.SessionUser{
		ID:    sess.UserID,
		Name:  sess.Name,
		Email: sess.Email,
		Role:  sess.Role,
	}))
}

func (h *Handler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil {
		if err := h.service.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, auth.ErrNoSession) {
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to log out"))
			return
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"loggedOut": true}))
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(h.cookieName, token, int(h.cookieTTL.Seconds()), "/", "", false, true)
}
