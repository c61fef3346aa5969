package controllers

import (
	"net/http"

	"hostel-backend/middleware"
	"hostel-backend/models"
	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{Service: service}
}

func (pc *PaymentController) SubmitPayment(c *gin.Context) {
	var input services.SubmitPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := pc.Service.Submit(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (pc *PaymentController) UpdatePayment(c *gin.Context) {
	var input services.UpdateStudentPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := pc.Service.UpdateStudentPayment(c.Param("id"), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (pc *PaymentController) ApprovePayment(c *gin.Context) {
	payment, err := pc.Service.Approve(c.Param("id"), middleware.AdminEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

type rejectPaymentPayload struct {
	Reason string `json:"reason" validate:"required"`
}

func (pc *PaymentController) RejectPayment(c *gin.Context) {
	var payload rejectPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := pc.Service.Reject(c.Param("id"), middleware.AdminEmail(c), payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (pc *PaymentController) AddAdminPayment(c *gin.Context) {
	var input services.AddAdminPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	payment, err := pc.Service.AddAdminPayment(input, middleware.AdminEmail(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func (pc *PaymentController) GetPayments(c *gin.Context) {
	payments, err := pc.Service.FetchAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (pc *PaymentController) GetPendingPayments(c *gin.Context) {
	payments, err := pc.Service.FetchPending()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (pc *PaymentController) GetPaymentByID(c *gin.Context) {
	payment, err := pc.Service.FetchByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (pc *PaymentController) GetStudentPayments(c *gin.Context) {
	payments, err := pc.Service.FetchStudentPayments(c.Param("regNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

func (pc *PaymentController) GetAllocationPayment(c *gin.Context) {
	payment, err := pc.Service.FetchForAllocation(c.Param("allocationId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payment)
}

func (pc *PaymentController) GetDerivedStatus(c *gin.Context) {
	status, err := pc.Service.DeriveStatus(c.Param("regNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, status)
}

func (pc *PaymentController) DeletePayment(c *gin.Context) {
	if err := pc.Service.Delete(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// UploadReceipt accepts a multipart receipt image, uploads it and appends
// the hosted URL to the payment's attachments. Only Pending payments accept
// new attachments.
func (pc *PaymentController) UploadReceipt(c *gin.Context) {
	payment, err := pc.Service.FetchByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if payment.Status != models.PaymentStatusPending {
		respondServiceError(c, services.ErrPaymentNotEditable)
		return
	}

	fileHeader, err := c.FormFile("receipt")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "missing receipt file")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unreadable receipt file")
		return
	}
	defer file.Close()

	url, err := utils.UploadReceiptToCloudinary(file)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "receipt upload failed")
		return
	}

	payment, err = pc.Service.AppendAttachment(payment.ID, url)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}
