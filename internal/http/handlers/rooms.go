package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListRooms mirrors GET_ROOM_LIST over HTTP, for clients that want a
// lobby view before opening the game socket.
func (h *Handler) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": h.Rooms.GetRoomList()})
}
