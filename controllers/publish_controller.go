package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"hostel-backend/utils"

	"github.com/gin-gonic/gin"
)

const publishedListPath = "public/publishedList.json"

type PublishController struct{}

func NewPublishController() *PublishController {
	return &PublishController{}
}

type publishPayload struct {
	Lists json.RawMessage `json:"lists"`
}

// PublishLists writes the accepted-students list to the public directory so
// the notice-board page can fetch it without hitting the database.
func (pc *PublishController) PublishLists(c *gin.Context) {
	var payload publishPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(payload.Lists) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "lists is required")
		return
	}

	if err := os.MkdirAll(filepath.Dir(publishedListPath), 0o755); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to publish lists")
		return
	}
	if err := os.WriteFile(publishedListPath, payload.Lists, 0o644); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to publish lists")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"published": true, "path": publishedListPath})
}
