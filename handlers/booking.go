package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"studiolink/middleware"
	"studiolink/models"
	"studiolink/services/booking"
	"studiolink/utils"
)

// BookingHandler exposes the quote/submit flow plus status transitions.
type BookingHandler struct {
	Service  booking.BookingService
	Sessions *booking.SessionStore
	Logger   *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, sessions *booking.SessionStore, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Sessions: sessions, Logger: logger}
}

// QuoteHandler evaluates a candidate request without reserving anything and
// caches a quote session for the follow-up submit call.
func (h *BookingHandler) QuoteHandler(c *gin.Context) {
	var input models.BookingRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if input.ArtistID == "" {
		input.ArtistID = middleware.AuthUserID(c)
	}

	quote, err := h.Service.Quote(c.Request.Context(), input)
	if err != nil {
		h.respondQuoteError(c, err)
		return
	}

	session, err := h.Sessions.Save(c.Request.Context(), input, *quote)
	if err != nil {
		h.Logger.Error("failed to cache quote session", zap.Error(err))
		// The quote itself is still valid; the client just cannot submit by session id.
		c.JSON(http.StatusOK, gin.H{"quote": quote})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessionID": session.SessionID, "quote": quote})
}

type submitRequest struct {
	SessionID string                      `json:"sessionID"`
	Request   *models.BookingRequestInput `json:"request"`
}

// SubmitHandler persists a booking from either a cached quote session or an
// inline request body. The slot is always re-validated server-side.
func (h *BookingHandler) SubmitHandler(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	var input models.BookingRequestInput
	switch {
	case req.SessionID != "":
		session, err := h.Sessions.Load(c.Request.Context(), req.SessionID)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "quote session not found or expired", err.Error())
			return
		}
		input = session.Input
	case req.Request != nil:
		input = *req.Request
	default:
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "either sessionID or request is required")
		return
	}
	if input.ArtistID == "" {
		input.ArtistID = middleware.AuthUserID(c)
	}

	created, err := h.Service.Submit(c.Request.Context(), input)
	if err != nil {
		h.respondQuoteError(c, err)
		return
	}

	if req.SessionID != "" {
		h.Sessions.Delete(c.Request.Context(), req.SessionID)
	}

	c.JSON(http.StatusCreated, gin.H{"booking": created})
}

// ListBookingsHandler lists bookings for one artist or one studio,
// newest session first.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	limit := int64(50)
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var (
		bookings []models.Booking
		err      error
	)
	switch {
	case c.Query("artistId") != "":
		bookings, err = h.Service.ListForArtist(c.Request.Context(), c.Query("artistId"), limit)
	case c.Query("studioId") != "":
		bookings, err = h.Service.ListForStudio(c.Request.Context(), c.Query("studioId"), limit)
	default:
		bookings, err = h.Service.ListForArtist(c.Request.Context(), middleware.AuthUserID(c), limit)
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	found, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": found})
}

func (h *BookingHandler) ApproveBookingHandler(c *gin.Context) {
	h.transition(c, h.Service.Approve)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	h.transition(c, h.Service.Cancel)
}

func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	h.transition(c, h.Service.Complete)
}

func (h *BookingHandler) transition(c *gin.Context, op func(ctx context.Context, id string) (*models.Booking, error)) {
	updated, err := op(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrBookingNotFound):
			utils.JSONError(c, http.StatusNotFound, "booking not found", "")
		case errors.Is(err, booking.ErrInvalidTransition):
			utils.JSONError(c, http.StatusConflict, "invalid booking status transition", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to update booking", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": updated})
}

// respondQuoteError maps quote failure kinds onto distinct statuses so the
// app can explain why a slot failed: outside hours vs already taken vs no
// room.
func (h *BookingHandler) respondQuoteError(c *gin.Context, err error) {
	switch booking.QuoteCode(err) {
	case booking.CodeSlotUnavailable:
		utils.JSONError(c, http.StatusConflict, "slot unavailable", err.Error())
	case booking.CodeOutsideOperatingHours:
		utils.JSONError(c, http.StatusUnprocessableEntity, "outside operating hours", err.Error())
	case booking.CodeNoRoomAvailable:
		utils.JSONError(c, http.StatusUnprocessableEntity, "no room available", err.Error())
	case booking.CodeInvalidDuration:
		utils.JSONError(c, http.StatusBadRequest, "invalid duration", err.Error())
	default:
		h.Logger.Error("quote evaluation failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to evaluate request", err.Error())
	}
}
