package api

import (
	"net/http"
	"time"

	"github.com/campuslib/roombooking/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomUseCase
}

func NewRoomHandler(service rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router gin.IRoutes) {
	router.GET("/getRooms", h.list)
	router.GET("/getRoomSchedules", h.schedules)
}

func (h *RoomHandler) list(c *gin.Context) {
	result, err := h.service.ListRooms(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RoomHandler) schedules(c *gin.Context) {
	schedule, err := h.service.ListSchedule(c.Request.Context(), time.Now())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}
