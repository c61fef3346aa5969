package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service *services.ExportService
}

func NewExportController(service *services.ExportService) *ExportController {
	return &ExportController{Service: service}
}

// ExportAllocations streams the allocations workbook as an xlsx download.
func (ec *ExportController) ExportAllocations(c *gin.Context) {
	rows, err := ec.Service.AllocationRows()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	tmpl := utils.ExcelTemplate{
		Headers: []string{
			"Allocation ID", "Reg Number", "Name", "Surname", "Gender",
			"Programme", "Hostel", "Room", "Payment Status",
			"Payment Deadline", "Semester", "Academic Year",
		},
		SheetName: "Allocations",
		FileName:  fmt.Sprintf("allocations_%s.xlsx", time.Now().Format("2006-01-02")),
	}
	for _, row := range rows {
		tmpl.Rows = append(tmpl.Rows, []interface{}{
			row.AllocationID, row.StudentRegNumber, row.StudentName,
			row.StudentSurname, row.Gender, row.Programme, row.HostelName,
			row.RoomNumber, row.PaymentStatus, row.PaymentDeadline,
			row.Semester, row.AcademicYear,
		})
	}

	buf, err := utils.GenerateExcelFile(tmpl)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate export")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", tmpl.FileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
