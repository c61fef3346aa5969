package controllers

import (
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type AllocationController struct {
	Service *services.AllocationService
}

func NewAllocationController(service *services.AllocationService) *AllocationController {
	return &AllocationController{Service: service}
}

type allocatePayload struct {
	StudentRegNumber string `json:"studentRegNumber" validate:"required"`
	RoomID           string `json:"roomId" validate:"required"`
	HostelID         string `json:"hostelId" validate:"required"`
}

func (ac *AllocationController) AllocateRoom(c *gin.Context) {
	var payload allocatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	allocation, err := ac.Service.Allocate(payload.StudentRegNumber, payload.RoomID, payload.HostelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, allocation)
}

type transferPayload struct {
	NewRoomID   string `json:"newRoomId" validate:"required"`
	NewHostelID string `json:"newHostelId" validate:"required"`
}

func (ac *AllocationController) TransferAllocation(c *gin.Context) {
	var payload transferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	allocation, err := ac.Service.Change(c.Param("id"), payload.NewRoomID, payload.NewHostelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, allocation)
}

// GetAllocations lists allocations, optionally filtered to one student via
// the ?student= query parameter.
func (ac *AllocationController) GetAllocations(c *gin.Context) {
	if regNumber := c.Query("student"); regNumber != "" {
		allocations, err := ac.Service.FetchStudentAllocations(regNumber)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, allocations)
		return
	}

	allocations, err := ac.Service.FetchAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, allocations)
}

func (ac *AllocationController) GetAllocationByID(c *gin.Context) {
	allocation, err := ac.Service.FetchByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, allocation)
}

func (ac *AllocationController) GetAllocationRoomDetails(c *gin.Context) {
	allocation, err := ac.Service.FetchByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	details, err := ac.Service.RoomDetails(allocation)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, details)
}

func (ac *AllocationController) RevokeAllocation(c *gin.Context) {
	if err := ac.Service.Revoke(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"revoked": c.Param("id")})
}

type removeOccupantPayload struct {
	HostelID         string `json:"hostelId" validate:"required"`
	RoomID           string `json:"roomId" validate:"required"`
	StudentRegNumber string `json:"studentRegNumber" validate:"required"`
}

func (ac *AllocationController) RemoveOccupant(c *gin.Context) {
	var payload removeOccupantPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := ac.Service.RemoveOccupant(payload.HostelID, payload.RoomID, payload.StudentRegNumber); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"removed": payload.StudentRegNumber})
}
