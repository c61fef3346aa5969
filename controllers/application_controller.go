package controllers

import (
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	Service *services.ApplicationService
}

func NewApplicationController(service *services.ApplicationService) *ApplicationController {
	return &ApplicationController{Service: service}
}

func (ac *ApplicationController) GetApplications(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		applications, err := ac.Service.FetchByStatus(status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, applications)
		return
	}

	applications, err := ac.Service.FetchAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, applications)
}

type updateApplicationPayload struct {
	Status string `json:"status" validate:"required"`
}

func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	var payload updateApplicationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	application, err := ac.Service.UpdateStatus(c.Param("regNumber"), payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, application)
}
