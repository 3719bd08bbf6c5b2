package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"photoserver/auth"
	"photoserver/models"
)

type UserRegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

type UserLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserInfo struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func validateRegistration(r *UserRegisterRequest) string {
	if len(r.Username) < 3 {
		return "username must be at least 3 characters"
	}
	if !strings.Contains(r.Email, "@") || !strings.Contains(r.Email, ".") {
		return "invalid email format"
	}
	if len(r.Password) < 8 {
		return "password must be at least 8 characters"
	}
	if r.Password != r.PasswordConfirm {
		return "passwords do not match"
	}
	if strings.EqualFold(r.Password, r.Username) {
		return "password cannot equal the username"
	}
	if models.UserNameTaken(r.Username) {
		return "a user with that username already exists"
	}
	if models.UserEmailTaken(r.Email) {
		return "a user with that email already exists"
	}
	return ""
}

func UserRegister(c *gin.Context) {
	postReq := UserRegisterRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if reason := validateRegistration(&postReq); reason != "" {
		c.JSON(http.StatusBadRequest, Response{reason})
		return
	}
	user, err := models.UserCreate(postReq.Username, postReq.Email, postReq.Password)
	if err != nil {
		// Unique indexes on name and email catch a registration race
		c.JSON(http.StatusBadRequest, Response{"user already exists"})
		return
	}
	c.JSON(http.StatusCreated, UserInfo{ID: user.ID, Username: user.Name, Email: user.Email})
}

func UserLogin(c *gin.Context) {
	postReq := UserLoginRequest{}
	if err := c.ShouldBindJSON(&postReq); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, err := models.UserLogin(postReq.Email, postReq.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, Response{err.Error()})
		return
	}
	token, err := auth.IssueToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{"cannot issue token"})
		return
	}
	session := auth.LoadSession(c)
	session.Set("id", user.ID)
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"error": "", "token": token, "name": user.Name})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}
