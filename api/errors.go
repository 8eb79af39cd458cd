package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/campuslib/roombooking/internal/domain"
	"github.com/gin-gonic/gin"
)

var validationErrors = []error{
	domain.ErrMissingFields,
	domain.ErrInvalidStudentID,
	domain.ErrInvalidDuration,
	domain.ErrInvalidStartTime,
	domain.ErrInvalidRoom,
	domain.ErrInactiveRoom,
	domain.ErrStartTimeInPast,
	domain.ErrEndsAfterMidnight,
}

// writeError maps taxonomy errors to HTTP statuses. Validation failures are
// reported verbatim; 500-class detail goes to the log only.
func writeError(c *gin.Context, err error) {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
	}
	if errors.Is(err, domain.ErrRoomAlreadyBooked) || errors.Is(err, domain.ErrPendingRequestConflict) {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error, try again"})
}
