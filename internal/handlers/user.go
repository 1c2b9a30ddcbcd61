package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openmuse/openmuse-backend/internal/requestdata"
	"github.com/openmuse/openmuse-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user_not_found", err)
		return
	}
	RespondOK(c, user)
}

// GetProfile is the public profile lookup: account id in, display name out.
func (uh *UserHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	name, err := uh.userService.GetDisplayName(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "profile_lookup_failed", err)
		return
	}
	RespondOK(c, gin.H{"id": userID, "display_name": name})
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req struct {
		DisplayName string `json:"display_name"`
		Username    string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := uh.userService.UpdateProfile(c.Request.Context(), rd.UserID, req.DisplayName, req.Username); err != nil {
		RespondError(c, http.StatusInternalServerError, "profile_update_failed", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
