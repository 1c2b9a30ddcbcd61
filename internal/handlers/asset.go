package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/logger"
	"github.com/openmuse/openmuse-backend/internal/repos"
	"github.com/openmuse/openmuse-backend/internal/services"
	"github.com/openmuse/openmuse-backend/internal/types"
)

type AssetHandler struct {
	log          *logger.Logger
	assetService services.AssetService
	galleryStore gallery.Store
	urlResolver  gallery.URLResolver
}

func NewAssetHandler(log *logger.Logger, assetService services.AssetService, galleryStore gallery.Store, urlResolver gallery.URLResolver) *AssetHandler {
	return &AssetHandler{
		log:          log.With("handler", "AssetHandler"),
		assetService: assetService,
		galleryStore: galleryStore,
		urlResolver:  urlResolver,
	}
}

type assetDetailsReq struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Creator       string `json:"creator"`
	LoraType      string `json:"lora_type"`
	LoraBaseModel string `json:"lora_base_model"`
	ModelVariant  string `json:"model_variant"`
	LoraLink      string `json:"lora_link"`
}

func (r assetDetailsReq) toDetails() services.AssetDetails {
	return services.AssetDetails{
		Name:          r.Name,
		Description:   r.Description,
		Creator:       r.Creator,
		LoraType:      r.LoraType,
		LoraBaseModel: r.LoraBaseModel,
		ModelVariant:  r.ModelVariant,
		LoraLink:      r.LoraLink,
	}
}

// POST /api/assets
func (h *AssetHandler) Create(c *gin.Context) {
	var req assetDetailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	asset, err := h.assetService.Create(c.Request.Context(), viewerFrom(c), req.toDetails())
	if err != nil {
		RespondError(c, http.StatusBadRequest, "asset_create_failed", err)
		return
	}
	RespondOK(c, asset)
}

// GET /api/assets
func (h *AssetHandler) List(c *gin.Context) {
	filter := repos.AssetListFilter{
		Text:      c.Query("text"),
		BaseModel: c.Query("model"),
	}
	if approval := c.Query("approval"); approval != "" {
		filter.AdminStatus = types.AdminStatus(approval)
	}
	if c.Query("mine") == "true" {
		viewer := viewerFrom(c)
		if viewer.UserID == nil {
			RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		filter.UserID = viewer.UserID
	}
	assets, err := h.assetService.List(c.Request.Context(), filter)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "asset_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"assets": assets})
}

// GET /api/assets/:id
//
// Runs the full derivation pipeline and returns the render-ready read
// model: ordered, access-filtered entries plus the asset itself.
func (h *AssetHandler) Detail(c *gin.Context) {
	session, ok := h.fetchSession(c)
	if !ok {
		return
	}
	RespondOK(c, session.ReadModel())
}

// PATCH /api/assets/:id
func (h *AssetHandler) Update(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req assetDetailsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.assetService.UpdateDetails(c.Request.Context(), viewerFrom(c), assetID, req.toDetails()); err != nil {
		respondAssetErr(c, "asset_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// DELETE /api/assets/:id
func (h *AssetHandler) Delete(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	if err := h.assetService.Delete(c.Request.Context(), viewerFrom(c), assetID); err != nil {
		respondAssetErr(c, "asset_delete_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// PUT /api/assets/:id/status
func (h *AssetHandler) SetUserStatus(c *gin.Context) {
	var req struct {
		Status types.DisplayStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	session, ok := h.fetchSession(c)
	if !ok {
		return
	}
	if err := session.SetAssetUserStatus(c.Request.Context(), req.Status); err != nil {
		respondAssetErr(c, "asset_status_failed", err)
		return
	}
	RespondOK(c, session.ReadModel())
}

// PUT /api/assets/:id/primary-media
func (h *AssetHandler) SetPrimaryMedia(c *gin.Context) {
	var req struct {
		MediaID *uuid.UUID `json:"media_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	session, ok := h.fetchSession(c)
	if !ok {
		return
	}
	if !session.Authorized() {
		RespondError(c, http.StatusForbidden, "forbidden", gallery.ErrNotAuthorized)
		return
	}
	if err := session.SetPrimaryMedia(c.Request.Context(), req.MediaID); err != nil {
		respondAssetErr(c, "set_primary_failed", err)
		return
	}
	RespondOK(c, session.ReadModel())
}

// PUT /api/assets/:id/videos/:mediaId/status
func (h *AssetHandler) SetVideoStatus(c *gin.Context) {
	mediaID, err := uuid.Parse(c.Param("mediaId"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	var req struct {
		Status types.DisplayStatus `json:"status"`
		Axis   gallery.StatusAxis  `json:"axis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	session, ok := h.fetchSession(c)
	if !ok {
		return
	}
	viewer := viewerFrom(c)
	if req.Axis == gallery.AxisUser {
		if !h.viewerOwnsVideo(session, viewer, mediaID) {
			RespondError(c, http.StatusForbidden, "forbidden", gallery.ErrNotAuthorized)
			return
		}
	} else if !session.Authorized() {
		RespondError(c, http.StatusForbidden, "forbidden", gallery.ErrNotAuthorized)
		return
	}
	if err := session.SetVideoStatus(c.Request.Context(), mediaID, req.Status, req.Axis); err != nil {
		respondAssetErr(c, "video_status_failed", err)
		return
	}
	RespondOK(c, session.ReadModel())
}

func (h *AssetHandler) viewerOwnsVideo(session *gallery.Session, viewer gallery.Viewer, mediaID uuid.UUID) bool {
	if viewer.IsAdmin {
		return true
	}
	for _, e := range session.Entries() {
		if e.ID == mediaID {
			return viewer.UserID != nil && e.UserID != nil && *viewer.UserID == *e.UserID
		}
	}
	return false
}

// fetchSession builds a per-request gallery session for the :id asset and
// runs the fetch. On failure it writes the error response and returns
// ok=false.
func (h *AssetHandler) fetchSession(c *gin.Context) (*gallery.Session, bool) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", gallery.ErrNoAssetID)
		return nil, false
	}
	session := gallery.NewSession(h.log, h.galleryStore, h.urlResolver, viewerFrom(c))
	if err := session.Fetch(c.Request.Context(), assetID); err != nil {
		if errors.Is(err, gallery.ErrAssetNotFound) {
			RespondError(c, http.StatusNotFound, "asset_not_found", err)
		} else {
			RespondError(c, http.StatusInternalServerError, "asset_fetch_failed", err)
		}
		return nil, false
	}
	return session, true
}

func respondAssetErr(c *gin.Context, code string, err error) {
	switch {
	case errors.Is(err, gallery.ErrNotAuthorized):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, gallery.ErrAssetNotFound):
		RespondError(c, http.StatusNotFound, "asset_not_found", err)
	default:
		RespondError(c, http.StatusInternalServerError, code, err)
	}
}
