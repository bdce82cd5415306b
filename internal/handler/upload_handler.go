package handler

import (
	"net/http"

	"snapvault/internal/services"
	"snapvault/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// UploadHandler handles the two backend legs of the upload protocol.
type UploadHandler struct {
	service *services.UploadService
}

func NewUploadHandler(service *services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// CreateUploadURL handles POST /media/upload-url.
func (h *UploadHandler) CreateUploadURL(c *gin.Context) {
	var req httpdto.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	url, err := h.service.CreateUploadURL(c.Request.Context(), req.FileName, req.MimeType)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.UploadURLResponse{URL: url})
}

// NotifyUpload handles POST /media/notify-upload.
func (h *UploadHandler) NotifyUpload(c *gin.Context) {
	viewer, ok := services.ViewerFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	var req httpdto.NotifyUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	item, err := h.service.NotifyUpload(c.Request.Context(), req.FileName, req.MimeType, req.OriginalFilename, viewer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}
