package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"volunteer-api/internal/dto"
	"volunteer-api/internal/middleware"
	"volunteer-api/internal/response"
	"volunteer-api/internal/service"
)

// NewsHandler handles news post endpoints
type NewsHandler struct {
	newsService service.NewsService
}

// NewNewsHandler creates a new NewsHandler
func NewNewsHandler(newsService service.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// Create godoc
// @Summary      Publish a news post
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateNewsRequest true "News post"
// @Success      201 {object} dto.NewsResponse
// @Failure      403 {object} response.ErrorResponse
// @Router       /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	var req dto.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid request body")
		return
	}

	result, err := h.newsService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, result)
}

// Get godoc
// @Summary      Get one news post
// @Tags         news
// @Produce      json
// @Param        newsId path string true "News ID (UUID)"
// @Success      200 {object} dto.NewsResponse
// @Failure      404 {object} response.ErrorResponse
// @Router       /news/{newsId} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	newsID, err := uuid.Parse(c.Param("newsId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid news ID")
		return
	}

	result, err := h.newsService.Get(c.Request.Context(), newsID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}

// ListLatest godoc
// @Summary      List the most recent news posts
// @Tags         news
// @Produce      json
// @Param        limit query int false "Maximum number of posts"
// @Success      200 {array} dto.NewsSummaryResponse
// @Router       /news/latest [get]
func (h *NewsHandler) ListLatest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.newsService.ListLatest(c.Request.Context(), limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, result)
}
