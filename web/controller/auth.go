package controller

import (
	"net/http"
	"strconv"

	"urban-explorer/config"
	"urban-explorer/logger"
	"urban-explorer/web/middleware"
	"urban-explorer/web/service"
	"urban-explorer/web/session"

	"github.com/gin-gonic/gin"
)

type loginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type signupForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthController handles sign-up, login and logout.
type AuthController struct {
	userService *service.UserService
}

func NewAuthController(g *gin.RouterGroup, userService *service.UserService) *AuthController {
	a := &AuthController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/signup", a.signup)
	g.POST("/login", a.login)

	authed := g.Group("/")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/logout", a.logout)
		authed.GET("/me", a.me)
	}
}

// signup creates a new account while the sign-up gate is open.
func (a *AuthController) signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	user, err := a.userService.SignUp(form.Email, form.Password)
	if err != nil {
		serviceError(c, err, "api.signup.emailTaken", "api.users.createFailed")
		return
	}
	logger.Infof("new account %s signed up, IP: %s", user.Email, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// login verifies credentials and opens a session.
func (a *AuthController) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	if form.Email == "" {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.login.emptyEmail"))
		return
	}
	if form.Password == "" {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.login.emptyPassword"))
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q, IP: %s", form.Email, getRemoteIp(c))
		jsonError(c, http.StatusUnauthorized, I18nWeb(c, "api.login.wrongCredentials"))
		return
	}

	maxAgeMinutes, err := strconv.Atoi(config.GetSessionMaxAge())
	if err != nil {
		maxAgeMinutes = 60
	}
	if err := session.SetMaxAge(c, maxAgeMinutes*60); err != nil {
		logger.Warning("unable to set session max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Email, getRemoteIp(c))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// logout clears the session.
func (a *AuthController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// me returns the identity of the current session.
func (a *AuthController) me(c *gin.Context) {
	user := session.GetLoginUser(c)
	c.JSON(http.StatusOK, gin.H{
		"id":    user.Id,
		"email": user.Email,
		"role":  user.Role,
	})
}
