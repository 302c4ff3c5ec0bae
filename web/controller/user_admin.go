package controller

import (
	"net/http"
	"strconv"

	"urban-explorer/database/model"
	"urban-explorer/web/middleware"
	"urban-explorer/web/service"

	"github.com/gin-gonic/gin"
)

type createUserForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type updateRoleForm struct {
	Role string `json:"role" form:"role" binding:"required"`
}

// UserAdminController covers the admin account-management screen.
type UserAdminController struct {
	userService *service.UserService
}

func NewUserAdminController(g *gin.RouterGroup, userService *service.UserService) *UserAdminController {
	a := &UserAdminController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	admin := g.Group("/admin/users")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("", a.listUsers)
		admin.POST("", a.createUser)
		admin.PATCH("/:id", a.updateRole)
		admin.DELETE("/:id", a.deleteUser)
	}
}

func (a *UserAdminController) listUsers(c *gin.Context) {
	users, err := a.userService.ListUsers()
	if err != nil {
		serviceError(c, err, "api.users.notFound", "api.users.listFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (a *UserAdminController) createUser(c *gin.Context) {
	var form createUserForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	user, err := a.userService.CreateUser(form.Email, form.Password, form.Role)
	if err != nil {
		serviceError(c, err, "api.users.notFound", "api.users.createFailed")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (a *UserAdminController) updateRole(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	var form updateRoleForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	user, err := a.userService.UpdateUserRole(id, form.Role)
	if err != nil {
		serviceError(c, err, "api.users.notFound", "api.users.updateFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (a *UserAdminController) deleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	if err := a.userService.DeleteUser(id); err != nil {
		serviceError(c, err, "api.users.notFound", "api.users.deleteFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
