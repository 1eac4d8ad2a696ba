package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"volunteer-api/internal/dto"
	"volunteer-api/internal/middleware"
	"volunteer-api/internal/response"
	"volunteer-api/internal/service"
)

// ParticipantHandler handles signup and attendance endpoints
type ParticipantHandler struct {
	participantService service.ParticipantService
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantService service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantService: participantService}
}

// Signup godoc
// @Summary      Register for time slots of an activity
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        activityId path string true "Activity ID (UUID)"
// @Param        request body dto.RegisterSlotsRequest true "Slot selections"
// @Success      201 {object} response.SuccessResponse
// @Failure      400 {object} response.ErrorResponse "Invalid request or full slot"
// @Failure      404 {object} response.ErrorResponse
// @Router       /activities/{activityId}/signup [post]
func (h *ParticipantHandler) Signup(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	var req dto.RegisterSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.participantService.RegisterSlots(c.Request.Context(), userID, activityID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, response.SuccessResponse{Message: "Registered"})
}

// Cancel godoc
// @Summary      Cancel registrations for time slots of an activity
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        activityId path string true "Activity ID (UUID)"
// @Param        request body dto.CancelSlotsRequest true "Slot ids to cancel"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /activities/{activityId}/cancel [post]
func (h *ParticipantHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	var req dto.CancelSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.participantService.CancelSlots(c.Request.Context(), userID, activityID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, response.SuccessResponse{Message: "Cancelled"})
}

// CheckRegistration godoc
// @Summary      Check the caller's registration state for an activity
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        activityId path string true "Activity ID (UUID)"
// @Success      200 {object} dto.RegistrationCheckResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /activities/{activityId}/registration [get]
func (h *ParticipantHandler) CheckRegistration(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	result, err := h.participantService.CheckRegistration(c.Request.Context(), userID, activityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// SlotCount godoc
// @Summary      Get the registration count for one time slot
// @Tags         participants
// @Produce      json
// @Param        slotId path string true "Time slot ID (UUID)"
// @Success      200 {object} dto.SlotCountResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /slots/{slotId}/count [get]
func (h *ParticipantHandler) SlotCount(c *gin.Context) {
	slotID, err := uuid.Parse(c.Param("slotId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid slot ID")
		return
	}

	result, err := h.participantService.SlotCount(c.Request.Context(), slotID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListParticipants godoc
// @Summary      List the participants of an activity
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        activityId path string true "Activity ID (UUID)"
// @Success      200 {array} dto.ActivityParticipantResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /activities/{activityId}/participants [get]
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	result, err := h.participantService.ListParticipants(c.Request.Context(), userID, activityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// UpdateSlotStatus godoc
// @Summary      Update attendance tracking on one registration
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        participantSlotId path string true "Participant slot ID (UUID)"
// @Param        request body dto.UpdateSlotStatusRequest true "Fields to update"
// @Success      200 {object} dto.ParticipantSlotResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /participant-slots/{participantSlotId} [patch]
func (h *ParticipantHandler) UpdateSlotStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	participantSlotID, err := uuid.Parse(c.Param("participantSlotId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid participant slot ID")
		return
	}

	var req dto.UpdateSlotStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.participantService.UpdateSlotStatus(c.Request.Context(), userID, participantSlotID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// Kick godoc
// @Summary      Remove a participant from an activity
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.KickParticipantRequest true "Removal details"
// @Success      200 {object} response.SuccessResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /participants/kick [post]
func (h *ParticipantHandler) Kick(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.KickParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.participantService.Kick(c.Request.Context(), userID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, response.SuccessResponse{Message: "Participant removed"})
}
