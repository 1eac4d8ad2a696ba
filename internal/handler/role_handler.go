package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"volunteer-api/internal/domain"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/middleware"
	"volunteer-api/internal/response"
	"volunteer-api/internal/service"
)

// RoleHandler handles role catalog, application and review endpoints
type RoleHandler struct {
	roleService service.RoleService
}

// NewRoleHandler creates a new RoleHandler
func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// ListRoles godoc
// @Summary      List all roles with the caller's status against each
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.RoleWithStatusResponse
// @Failure      401 {object} response.ErrorResponse
// @Router       /roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	roles, err := h.roleService.ListWithStatus(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, roles)
}

// SubmitRequest godoc
// @Summary      Apply for a role or renew an expiring one
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.SubmitRoleRequestRequest true "Application"
// @Success      201 {object} dto.SubmitRoleRequestResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /roles/requests [post]
func (h *RoleHandler) SubmitRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.SubmitRoleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.roleService.SubmitRequest(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// ListPendingRequests godoc
// @Summary      List pending role requests for review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search query string false "Filter by applicant email or username"
// @Param        page query int false "Page number"
// @Param        rows query int false "Rows per page"
// @Success      200 {object} dto.PendingRoleRequestListResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /admin/role-requests [get]
func (h *RoleHandler) ListPendingRequests(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	rows, _ := strconv.Atoi(c.DefaultQuery("rows", "20"))

	result, err := h.roleService.ListPending(c.Request.Context(), search, page, rows)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// GetRequestDetail godoc
// @Summary      Get one role request for review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        requestId path string true "Request ID (UUID)"
// @Success      200 {object} dto.PendingRoleRequestResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /admin/role-requests/{requestId} [get]
func (h *RoleHandler) GetRequestDetail(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request ID")
		return
	}

	result, err := h.roleService.RequestDetail(c.Request.Context(), requestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// DecideRequest godoc
// @Summary      Approve or reject a pending role request
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        requestId path string true "Request ID (UUID)"
// @Param        request body dto.DecideRoleRequestRequest true "Decision"
// @Success      200 {object} response.SuccessResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Router       /admin/role-requests/{requestId}/decision [post]
func (h *RoleHandler) DecideRequest(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request ID")
		return
	}

	var req dto.DecideRoleRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	if err := h.roleService.Decide(c.Request.Context(), requestID, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, response.SuccessResponse{Message: "Decision recorded"})
}

// requireAdmin aborts with 403 unless the caller holds the admin role
func (h *RoleHandler) requireAdmin(c *gin.Context) bool {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return false
	}

	isAdmin, err := h.roleService.HasActiveRole(c.Request.Context(), userID, domain.RoleAdmin)
	if err != nil {
		handleServiceError(c, err)
		return false
	}
	if !isAdmin {
		response.SendError(c, http.StatusForbidden, response.ErrCodeForbidden, "Admin role is required")
		return false
	}
	return true
}
