package controller

import (
	"net/http"

	"urban-explorer/database/model"
	"urban-explorer/web/middleware"
	"urban-explorer/web/service"

	"github.com/gin-gonic/gin"
)

type allowSignupForm struct {
	AllowSignup bool `json:"allowSignup" form:"allowSignup"`
}

// SettingController exposes the sign-up gate. Reading is open to any
// session so the sign-in screens can adapt; writing is admin-only.
type SettingController struct {
	settingService *service.SettingService
}

func NewSettingController(g *gin.RouterGroup, settingService *service.SettingService) *SettingController {
	a := &SettingController{settingService: settingService}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin/settings")

	g.GET("", a.getSettings)

	admin := g.Group("")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", a.updateSettings)
	}
}

func (a *SettingController) getSettings(c *gin.Context) {
	allowSignup, err := a.settingService.GetAllowSignup()
	if err != nil {
		serviceError(c, err, "api.settings.getFailed", "api.settings.getFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"allowSignup": allowSignup})
}

func (a *SettingController) updateSettings(c *gin.Context) {
	var form allowSignupForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	setting, err := a.settingService.SetAllowSignup(form.AllowSignup)
	if err != nil {
		serviceError(c, err, "api.settings.updateFailed", "api.settings.updateFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "setting": setting})
}
