package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"urban-explorer/logger"
	"urban-explorer/web/entity"
	"urban-explorer/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonError sends an error payload with the given status code.
func jsonError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"error": msg})
}

// jsonObj wraps an object in the admin Msg envelope.
func jsonObj(c *gin.Context, obj any) {
	c.JSON(http.StatusOK, entity.Msg{
		Success: true,
		Obj:     obj,
	})
}

// serviceError maps service-layer sentinels onto HTTP statuses. Unknown
// errors are logged and surfaced as the generic localized message, never the
// raw error text.
func serviceError(c *gin.Context, err error, notFoundKey, fallbackKey string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		jsonError(c, http.StatusNotFound, I18nWeb(c, notFoundKey))
	case errors.Is(err, service.ErrValidation):
		jsonError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		jsonError(c, http.StatusConflict, I18nWeb(c, "api.signup.emailTaken"))
	case errors.Is(err, service.ErrSignupClosed):
		jsonError(c, http.StatusForbidden, I18nWeb(c, "api.signup.closed"))
	default:
		logger.Warning(I18nWeb(c, fallbackKey)+": ", err)
		jsonError(c, http.StatusInternalServerError, I18nWeb(c, fallbackKey))
	}
}
