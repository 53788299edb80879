package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	availabilityRepo "studiolink/database/repository/availability"
	studioRepo "studiolink/database/repository/studio"
	"studiolink/models"
	"studiolink/utils"
)

// StudioHandler covers the studio/room CRUD surface plus manual calendar
// blocks. Thin wrappers over the repositories; the booking core reads the
// same collections.
type StudioHandler struct {
	Studios      studioRepo.StudioRepository
	Availability availabilityRepo.AvailabilityRepository
}

func NewStudioHandler(studios studioRepo.StudioRepository, availability availabilityRepo.AvailabilityRepository) *StudioHandler {
	return &StudioHandler{Studios: studios, Availability: availability}
}

func (h *StudioHandler) UpsertStudioHandler(c *gin.Context) {
	var studio models.Studio
	if err := c.ShouldBindJSON(&studio); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := validateSchedule(studio.OperatingSchedule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid operating schedule", err.Error())
		return
	}
	if err := h.Studios.Upsert(c.Request.Context(), &studio); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save studio", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"studio": studio})
}

func (h *StudioHandler) GetStudioHandler(c *gin.Context) {
	studio, err := h.Studios.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "studio not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch studio", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"studio": studio})
}

func (h *StudioHandler) DeleteStudioHandler(c *gin.Context) {
	if err := h.Studios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "studio not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete studio", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StudioHandler) UpsertRoomHandler(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	room.StudioID = c.Param("id")
	if err := h.Studios.UpsertRoom(c.Request.Context(), &room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to save room", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

func (h *StudioHandler) FetchRoomsHandler(c *gin.Context) {
	rooms, err := h.Studios.FetchRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch rooms", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *StudioHandler) DeleteRoomHandler(c *gin.Context) {
	if err := h.Studios.DeleteRoom(c.Request.Context(), c.Param("id"), c.Param("roomId")); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "room not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateManualBlockHandler blocks a time range on an owner's calendar
// without any backing booking.
func (h *StudioHandler) CreateManualBlockHandler(c *gin.Context) {
	var entry models.AvailabilityEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	entry.OwnerID = c.Param("ownerId")
	if !entry.Start.Before(entry.End) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "block start must precede end")
		return
	}
	if err := h.Availability.CreateManualBlock(c.Request.Context(), &entry); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create block", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *StudioHandler) DeleteManualBlockHandler(c *gin.Context) {
	err := h.Availability.DeleteManualBlock(c.Request.Context(), c.Param("ownerId"), c.Param("entryId"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			utils.JSONError(c, http.StatusNotFound, "block not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete block", err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAvailabilityHandler returns an owner's calendar entries for a window,
// defaulting to the next 30 days.
func (h *StudioHandler) ListAvailabilityHandler(c *gin.Context) {
	from := time.Now()
	to := from.AddDate(0, 0, 30)
	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "from must be RFC3339")
			return
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "to must be RFC3339")
			return
		}
		to = parsed
	}

	entries, err := h.Availability.ListForOwner(c.Request.Context(), c.Param("ownerId"), from, to)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// validateSchedule enforces at most one recurring entry per weekday.
func validateSchedule(s models.OperatingSchedule) error {
	seen := map[time.Weekday]bool{}
	for _, dh := range s.Recurring {
		if seen[dh.Weekday] {
			return errors.New("duplicate recurring entry for " + dh.Weekday.String())
		}
		seen[dh.Weekday] = true
		for _, iv := range dh.Intervals {
			if iv.Start < 0 || iv.End > 24*60 || iv.Start >= iv.End {
				return errors.New("open interval out of range for " + dh.Weekday.String())
			}
		}
	}
	return nil
}
