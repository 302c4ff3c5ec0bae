package controller

import (
	"strconv"

	"urban-explorer/database/model"
	"urban-explorer/logger"
	"urban-explorer/web/middleware"
	"urban-explorer/web/service"

	"github.com/gin-gonic/gin"
)

// ServerController exposes host status and recent logs to admins.
type ServerController struct {
	serverService *service.ServerService
}

func NewServerController(g *gin.RouterGroup, serverService *service.ServerService) *ServerController {
	a := &ServerController{serverService: serverService}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/status", a.status)
		admin.GET("/logs", a.getLogs)
	}
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus())
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count < 1 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, logger.GetLogs(count, level))
}
