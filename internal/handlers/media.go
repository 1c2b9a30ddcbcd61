package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/services"
)

type MediaHandler struct {
	log          *logger.Logger
	mediaService services.MediaService
}

func NewMediaHandler(log *logger.Logger, mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{
		log:          log.With("handler", "MediaHandler"),
		mediaService: mediaService,
	}
}

// POST /api/media
func (h *MediaHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "no_file", err)
		return
	}
	defer file.Close()

	upload := services.MediaUpload{
		FileName:       header.Filename,
		ContentType:    header.Header.Get("Content-Type"),
		SizeBytes:      header.Size,
		Body:           file,
		Title:          c.PostForm("title"),
		Description:    c.PostForm("description"),
		Classification: c.PostForm("classification"),
		Creator:        c.PostForm("creator"),
		CreatorName:    c.PostForm("creator_name"),
	}
	if rawAssetID := c.PostForm("asset_id"); rawAssetID != "" {
		assetID, err := uuid.Parse(rawAssetID)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
			return
		}
		upload.AssetID = &assetID
	}

	media, err := h.mediaService.Upload(c.Request.Context(), viewerFrom(c), upload)
	if err != nil {
		if errors.Is(err, gallery.ErrAssetNotFound) {
			RespondError(c, http.StatusNotFound, "asset_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "upload_failed", err)
		return
	}
	RespondOK(c, media)
}

// DELETE /api/media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.mediaService.Delete(c.Request.Context(), viewerFrom(c), mediaID); err != nil {
		if errors.Is(err, gallery.ErrNotAuthorized) {
			RespondError(c, http.StatusForbidden, "forbidden", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/user/media
func (h *MediaHandler) ListMine(c *gin.Context) {
	viewer := viewerFrom(c)
	if viewer.UserID == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	media, err := h.mediaService.ListByUser(c.Request.Context(), *viewer.UserID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "media_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"media": media})
}
