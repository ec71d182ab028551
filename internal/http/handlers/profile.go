package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxIconBytes = 1 << 20 // 1 MiB

type setSloganRequest struct {
	Slogan string `json:"slogan"`
}

func (h *Handler) SetSlogan(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req setSloganRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}
	if err := h.Auth.SetSlogan(c.Request.Context(), userID, req.Slogan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.Status(http.StatusOK)
}

// SetIcon accepts a raw image body, per §1's "file I/O for uploaded avatars"
// external-collaborator note: the core just stores whatever bytes arrive.
func (h *Handler) SetIcon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxIconBytes+1))
	if err != nil || len(body) == 0 || len(body) > maxIconBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "SET_ICON_FAILED"})
		return
	}

	if err := h.Auth.SetIcon(c.Request.Context(), userID, body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "SET_ICON_FAILED"})
		return
	}
	c.Status(http.StatusOK)
}

func (h *Handler) GetIcon(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	icon, err := h.Auth.GetIcon(c.Request.Context(), userID)
	if err != nil || len(icon) == 0 {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/png", icon)
}
