package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/services"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type ModerationHandler struct {
	log               *logger.Logger
	moderationService services.ModerationService
}

func NewModerationHandler(log *logger.Logger, moderationService services.ModerationService) *ModerationHandler {
	return &ModerationHandler{
		log:               log.With("handler", "ModerationHandler"),
		moderationService: moderationService,
	}
}

// PUT /api/admin/assets/:id/admin-status
func (h *ModerationHandler) SetAssetAdminStatus(c *gin.Context) {
	h.setAdminStatus(c, services.TargetKindAsset)
}

// PUT /api/admin/media/:id/admin-status
func (h *ModerationHandler) SetMediaAdminStatus(c *gin.Context) {
	h.setAdminStatus(c, services.TargetKindMedia)
}

func (h *ModerationHandler) setAdminStatus(c *gin.Context, kind string) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Status types.AdminStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	viewer := viewerFrom(c)
	if kind == services.TargetKindAsset {
		err = h.moderationService.SetAssetAdminStatus(c.Request.Context(), viewer, targetID, req.Status)
	} else {
		err = h.moderationService.SetMediaAdminStatus(c.Request.Context(), viewer, targetID, req.Status)
	}
	if err != nil {
		if errors.Is(err, gallery.ErrNotAuthorized) {
			RespondError(c, http.StatusForbidden, "forbidden", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "moderation_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// GET /api/admin/:kind/:id/history
func (h *ModerationHandler) History(c *gin.Context) {
	kind := c.Param("kind")
	if kind != services.TargetKindAsset && kind != services.TargetKindMedia {
		RespondError(c, http.StatusBadRequest, "invalid_kind", nil)
		return
	}
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	events, err := h.moderationService.History(c.Request.Context(), viewerFrom(c), kind, targetID)
	if err != nil {
		if errors.Is(err, gallery.ErrNotAuthorized) {
			RespondError(c, http.StatusForbidden, "forbidden", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "history_failed", err)
		return
	}
	RespondOK(c, gin.H{"events": events})
}
