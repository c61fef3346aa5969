package controllers

import (
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type DeadlineController struct {
	Service *services.AllocationService
}

func NewDeadlineController(service *services.AllocationService) *DeadlineController {
	return &DeadlineController{Service: service}
}

// GetDeadlineStatus is the read-only monitoring view: how many unpaid
// allocations exist and which ones the next sweep would revoke.
func (dc *DeadlineController) GetDeadlineStatus(c *gin.Context) {
	status, err := dc.Service.DeadlineStatus()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, status)
}

// RunDeadlineCheck flips overdue allocations and then revokes the expired
// ones. Invoked by the scheduler's HTTP twin, guarded by the payment-check
// bearer token.
func (dc *DeadlineController) RunDeadlineCheck(c *gin.Context) {
	overdue, err := dc.Service.CheckAndUpdateOverduePayments()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	sweep, err := dc.Service.SweepExpiredAllocations()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"overdueCheck": overdue,
		"sweep":        sweep,
	})
}
