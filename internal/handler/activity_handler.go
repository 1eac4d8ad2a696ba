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

// ActivityHandler handles activity management endpoints
type ActivityHandler struct {
	activityService service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// Create godoc
// @Summary      Create an activity under a news post
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateActivityRequest true "Activity"
// @Success      201 {object} dto.CreateActivityResponse
// @Failure      403 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.activityService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Get godoc
// @Summary      Get one activity with its facilities and time slots
// @Tags         activities
// @Produce      json
// @Param        activityId path string true "Activity ID (UUID)"
// @Success      200 {object} dto.ActivityResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /activities/{activityId} [get]
func (h *ActivityHandler) Get(c *gin.Context) {
	activityID, err := uuid.Parse(c.Param("activityId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid activity ID")
		return
	}

	result, err := h.activityService.Get(c.Request.Context(), activityID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListByNews godoc
// @Summary      List activities attached to a news post
// @Tags         activities
// @Produce      json
// @Param        newsId path string true "News ID (UUID)"
// @Success      200 {array} dto.ActivityResponse
// @Router       /activities/by-news/{newsId} [get]
func (h *ActivityHandler) ListByNews(c *gin.Context) {
	newsID, err := uuid.Parse(c.Param("newsId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid news ID")
		return
	}

	result, err := h.activityService.ListByNews(c.Request.Context(), newsID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
