package controllers

import (
	"net/http"

	"hostel-backend/services"
	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

type StudentController struct {
	Service *services.StudentService
}

func NewStudentController(service *services.StudentService) *StudentController {
	return &StudentController{Service: service}
}

// GetStudents lists students, narrowed by at most one of the supported query
// filters: search, programme, gender, part.
func (sc *StudentController) GetStudents(c *gin.Context) {
	var (
		students interface{}
		err      error
	)
	switch {
	case c.Query("search") != "":
		students, err = sc.Service.Search(c.Query("search"))
	case c.Query("programme") != "":
		students, err = sc.Service.ByProgramme(c.Query("programme"))
	case c.Query("gender") != "":
		students, err = sc.Service.ByGender(c.Query("gender"))
	case c.Query("part") != "":
		students, err = sc.Service.ByPart(c.Query("part"))
	default:
		students, err = sc.Service.List()
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, students)
}

func (sc *StudentController) GetStudentByRegNumber(c *gin.Context) {
	student, err := sc.Service.FindByRegNumber(c.Param("regNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, student)
}

func (sc *StudentController) GetStudentStats(c *gin.Context) {
	stats, err := sc.Service.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
