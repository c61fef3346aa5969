package controllers

import (
	"errors"
	"log"
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError translates domain sentinels into HTTP codes; anything
// unrecognized is a store failure, logged and surfaced as a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHostelNotFound),
		errors.Is(err, services.ErrFloorNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrAllocationNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrApplicationNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrFloorExists),
		errors.Is(err, services.ErrAlreadyAllocated),
		errors.Is(err, services.ErrRoomConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrRoomChangesOff),
		errors.Is(err, services.ErrCapacityExceeded),
		errors.Is(err, services.ErrPaymentNotEditable),
		errors.Is(err, services.ErrInvalidStatus):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
