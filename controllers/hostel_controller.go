package controllers

import (
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type HostelController struct {
	Service *services.HostelService
}

func NewHostelController(service *services.HostelService) *HostelController {
	return &HostelController{Service: service}
}

// GetHostels returns the full directory: every hostel with floors and rooms.
func (hc *HostelController) GetHostels(c *gin.Context) {
	hostels, err := hc.Service.FetchAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostels)
}

func (hc *HostelController) GetHostelByID(c *gin.Context) {
	hostel, err := hc.Service.FetchByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostel)
}

func (hc *HostelController) CreateHostel(c *gin.Context) {
	var input services.CreateHostelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := hc.Service.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": id})
}

func (hc *HostelController) UpdateHostel(c *gin.Context) {
	var input services.UpdateHostelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	hostel, err := hc.Service.Update(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hostel)
}

func (hc *HostelController) DeleteHostel(c *gin.Context) {
	if err := hc.Service.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

type addFloorPayload struct {
	Number string `json:"number" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

func (hc *HostelController) AddFloor(c *gin.Context) {
	var payload addFloorPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	floor, err := hc.Service.AddFloor(c.Param("id"), payload.Number, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, floor)
}

func (hc *HostelController) RemoveFloor(c *gin.Context) {
	if err := hc.Service.RemoveFloor(c.Param("id"), c.Param("floorId")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("floorId")})
}

func (hc *HostelController) AddRoom(c *gin.Context) {
	var input services.AddRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	room, err := hc.Service.AddRoom(c.Param("id"), c.Param("floorId"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (hc *HostelController) AddRoomsInRange(c *gin.Context) {
	var input services.AddRoomsInRangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := hc.Service.AddRoomsInRange(c.Param("id"), c.Param("floorId"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"created": created})
}

func (hc *HostelController) RemoveRoom(c *gin.Context) {
	if err := hc.Service.RemoveRoom(c.Param("id"), c.Param("roomId")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("roomId")})
}
