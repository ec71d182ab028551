package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"telegram_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListFriends(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	friends, err := h.Auth.ListFriends(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

func (h *Handler) ListFriendRequests(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	reqs, err := h.Auth.ListRequests(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": reqs})
}

type friendTargetRequest struct {
	TargetID int64 `json:"target_id"`
}

func (h *Handler) CreateFriendRequest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req friendTargetRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if err := h.Auth.FriendRequest(c.Request.Context(), userID, req.TargetID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": friendErrorCode(err)})
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) AcceptFriendRequest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	requesterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if err := h.Auth.Accept(c.Request.Context(), requesterID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) RejectFriendRequest(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	requesterID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if err := h.Auth.Reject(c.Request.Context(), requesterID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.Status(http.StatusOK)
}

func friendErrorCode(err error) string {
	switch {
	case errors.Is(err, service.ErrCannotRequestSelf):
		return "CANNOT_REQUEST_SELF"
	case errors.Is(err, service.ErrAlreadyFriend):
		return "ALREADY_FRIEND"
	case errors.Is(err, service.ErrAlreadyRequested):
		return "ALREADY_REQUESTED"
	case errors.Is(err, service.ErrUserNotFound):
		return "USER_DONOT_EXIST"
	default:
		return "FAILED"
	}
}
