package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"telegram_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

const cookieMaxAge = 1296000 // seconds, per §6's persisted-cookie contract

type registerRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// Register implements the REGISTER operation over HTTP.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": authErrorCode(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID, "user_name": u.Username})
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

// LoginByName implements log_in_by_name over HTTP and sets the sessdata,
// user_name, and id cookies described in §6.
func (h *Handler) LoginByName(c *gin.Context) {
	var req loginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	id, token, err := h.Auth.LoginByName(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErrorCode(err)})
		return
	}

	setSessionCookies(c, id, req.UserName, token)
	jwt, err := service.GenerateJWT(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "sessdata": token, "jwt": jwt})
}

func (h *Handler) Logout(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.SetCookie("sessdata", "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}

func setSessionCookies(c *gin.Context, id int64, userName string, token uint32) {
	c.SetCookie("sessdata", itoa(int64(token)), cookieMaxAge, "/", "", false, true)
	c.SetCookie("user_name", userName, cookieMaxAge, "/", "", false, false)
	c.SetCookie("id", itoa(id), cookieMaxAge, "/", "", false, false)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

func authErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameDuplicate):
		return "USERNAME_DUPLICATE"
	case errors.Is(err, service.ErrUsernameInvalid):
		return "USERNAME_INVALID"
	case errors.Is(err, service.ErrPasswordEmpty):
		return "PASSWORD_EMPTY"
	case errors.Is(err, service.ErrPasswordIncorrect):
		return "PASSWORD_INCORRECT"
	case errors.Is(err, service.ErrUserNotFound):
		return "USER_DONOT_EXIST"
	default:
		return "FAILED"
	}
}
