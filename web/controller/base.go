// Package controller provides the HTTP handlers for the urban-explorer API:
// authentication, spots and their images, uploads, settings and the admin
// endpoints.
package controller

import (
	"urban-explorer/logger"
	"urban-explorer/web/locale"

	"github.com/gin-gonic/gin"
)

// I18nWeb retrieves a localized message for the current request.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(i18nType locale.I18nType, key string, keyParams ...string) string)
	msg := i18nFunc(locale.Web, name, params...)
	return msg
}
