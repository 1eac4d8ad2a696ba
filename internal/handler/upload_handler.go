package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"volunteer-api/internal/client"
	"volunteer-api/internal/dto"
	"volunteer-api/internal/middleware"
	"volunteer-api/internal/response"
	"volunteer-api/internal/service"
)

// UploadHandler handles proof file uploads for role requests
type UploadHandler struct {
	s3Client client.S3ClientInterface
	logger   *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(s3Client client.S3ClientInterface, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{s3Client: s3Client, logger: logger}
}

// UploadRoleProof godoc
// @Summary      Upload a proof file for a role request
// @Description  Accepts jpeg, png and pdf files up to 5MB
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Proof file"
// @Success      201 {object} dto.UploadResponse
// @Failure      400 {object} response.ErrorResponse "Missing, oversized or disallowed file"
// @Router       /uploads/role-proof [post]
func (h *UploadHandler) UploadRoleProof(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "File is required")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := service.ValidateAttachment(contentType, fileHeader.Size); err != nil {
		handleServiceError(c, err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to read file")
		return
	}
	defer file.Close()

	key, err := h.s3Client.GenerateFileKey("proofs", fileHeader.Filename)
	if err != nil {
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Failed to generate file key")
		return
	}

	fileURL, err := h.s3Client.UploadFile(c.Request.Context(), key, file, contentType)
	if err != nil {
		h.logger.Error("proof upload failed",
			zap.String("user_id", userID.String()),
			zap.String("key", key),
			zap.Error(err),
		)
		response.SendError(c, http.StatusBadGateway, response.ErrCodeUpstream, "Failed to store file")
		return
	}

	response.SendSuccess(c, http.StatusCreated, dto.UploadResponse{
		FileURL:  fileURL,
		FileKey:  key,
		FileType: contentType,
		FileSize: fileHeader.Size,
	})
}
