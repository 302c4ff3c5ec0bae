package session

import (
	"encoding/gob"

	"urban-explorer/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUserKey = "LOGIN_USER"

// LoginUser is the identity snapshot carried by the session cookie. Only
// id, email and role travel to the client; the password hash never does.
type LoginUser struct {
	Id    int
	Email string
	Role  string
}

func init() {
	gob.Register(LoginUser{})
}

func SetLoginUser(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(loginUserKey, LoginUser{
		Id:    user.Id,
		Email: user.Email,
		Role:  user.Role,
	})
	return s.Save()
}

func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

func GetLoginUser(c *gin.Context) *LoginUser {
	s := sessions.Default(c)
	if obj := s.Get(loginUserKey); obj != nil {
		if user, ok := obj.(LoginUser); ok {
			return &user
		}
	}
	return nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
