package controllers

import (
	"net/http"

	"hostel-backend/middleware"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Hostels     *services.HostelService
	Allocations *services.AllocationService
}

func NewRoomController(hostels *services.HostelService, allocations *services.AllocationService) *RoomController {
	return &RoomController{Hostels: hostels, Allocations: allocations}
}

// GetAvailableRooms lists rooms with free beds, optionally filtered by gender.
func (rc *RoomController) GetAvailableRooms(c *gin.Context) {
	rooms, err := rc.Hostels.AvailableRooms(c.Query("gender"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

type reserveRoomPayload struct {
	Days int `json:"days" validate:"omitempty,min=1,max=90"`
}

func (rc *RoomController) ReserveRoom(c *gin.Context) {
	var payload reserveRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.Days == 0 {
		payload.Days = 7
	}

	room, err := rc.Allocations.Reserve(c.Param("roomId"), middleware.AdminEmail(c), payload.Days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (rc *RoomController) UnreserveRoom(c *gin.Context) {
	room, err := rc.Allocations.Unreserve(c.Param("roomId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
