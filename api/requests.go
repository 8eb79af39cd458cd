package api

import (
	"net/http"
	"time"

	"github.com/campuslib/roombooking/internal/service/request"
	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	service request.RequestUseCase
}

type submitBookingRequest struct {
	StudentID string `json:"student_id"`
	RoomID    int64  `json:"room_id"`
	StartTime string `json:"start_time"`
	Duration  int    `json:"duration"`
}

type submitBookingResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

func NewRequestHandler(service request.RequestUseCase) *RequestHandler {
	return &RequestHandler{service: service}
}

func (h *RequestHandler) Register(router gin.IRoutes) {
	router.POST("/submitBookingRequest", h.submit)
}

func (h *RequestHandler) submit(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body", "error": err.Error()})
		return
	}

	created, err := h.service.Submit(c.Request.Context(), request.SubmitInput{
		StudentID:       req.StudentID,
		RoomID:          req.RoomID,
		StartClock:      req.StartTime,
		DurationMinutes: req.Duration,
		Now:             time.Now(),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, submitBookingResponse{
		Message:   "booking request submitted",
		RequestID: created.ID,
	})
}
