package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/khanhng/orderflow/internal/domain/errors"
	"github.com/khanhng/orderflow/internal/domain/model"
	"github.com/khanhng/orderflow/internal/server/http/dto"
	"github.com/khanhng/orderflow/internal/server/http/middleware"
)

// CurrentUser extracts the authenticated worker from context.
func CurrentUser(c *gin.Context) *model.User {
	val, ok := c.Get(middleware.UserContextKey)
	if !ok {
		return nil
	}
	usr, _ := val.(*model.User)
	return usr
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid order id"))
		return 0, false
	}
	return id, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound), errors.Is(err, domainErrors.ErrNoPendingDraft):
		c.JSON(http.StatusNotFound, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrForbidden), errors.Is(err, domainErrors.ErrSecretMismatch):
		c.JSON(http.StatusForbidden, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrConflict), errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.Fail(err.Error()))
	case errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.Fail("invalid credentials"))
	default:
		c.JSON(http.StatusInternalServerError, dto.Fail("internal error"))
	}
}
