package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/server/http/dto"
	"github.com/khanhng/orderflow/internal/server/http/middleware"
)

// AuthHandler processes registration and login.
type AuthHandler struct {
	facade AuthFacade
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade) *AuthHandler {
	return &AuthHandler{facade: facade}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	roles := make(model.RoleSet, 0, len(req.Roles))
	for _, r := range req.Roles {
		roles = append(roles, model.Role(r))
	}

	usr, token, err := h.facade.Register(c.Request.Context(), req.Login, req.Password, req.Name, roles)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.OK(userPayload(usr, token)))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid payload"))
		return
	}

	usr, token, err := h.facade.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, dto.OK(userPayload(usr, token)))
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	usr := CurrentUser(c)
	c.JSON(http.StatusOK, dto.OK(userPayload(usr, "")))
}

func userPayload(usr *model.User, token string) gin.H {
	payload := gin.H{
		"id":    usr.ID,
		"login": usr.Login,
		"name":  usr.Name,
		"roles": usr.Roles,
	}
	if token != "" {
		payload["token"] = token
	}
	return payload
}
