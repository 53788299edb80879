package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	engineerRepo "studiolink/database/repository/engineer"
	"studiolink/models"
	"studiolink/utils"
)

// EngineerHandler manages the engineer slice of a user profile.
type EngineerHandler struct {
	Repo engineerRepo.EngineerRepository
}

func NewEngineerHandler(repo engineerRepo.EngineerRepository) *EngineerHandler {
	return &EngineerHandler{Repo: repo}
}

func (h *EngineerHandler) SaveProfileHandler(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if profile.ID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "profile id is required")
		return
	}
	if err := h.Repo.SaveProfile(c.Request.Context(), &profile); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *EngineerHandler) GetProfileHandler(c *gin.Context) {
	profile, err := h.Repo.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "profile not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch profile", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *EngineerHandler) UpdateSettingsHandler(c *gin.Context) {
	var settings models.EngineerSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Repo.UpdateSettings(c.Request.Context(), c.Param("id"), &settings); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "profile not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update engineer settings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"engineerSettings": settings})
}
