package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ChatHistory implements the paginated get_chat_message HTTP surface:
// ?peer_id=&before_ts=, 20 messages per peer, newest first.
func (h *Handler) ChatHistory(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	peerID, err := strconv.ParseInt(c.Query("peer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	var beforeTS int64
	if v := c.Query("before_ts"); v != "" {
		beforeTS, _ = strconv.ParseInt(v, 10, 64)
	}

	msgs, err := h.Chat.GetHistory(c.Request.Context(), userID, peerID, beforeTS)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAILED"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
