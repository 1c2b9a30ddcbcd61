package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openmuse/openmuse-backend/internal/gallery"
	"github.com/openmuse/openmuse-backend/internal/requestdata"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// viewerFrom builds the explicit viewer argument the gallery pipeline and
// services take. Unauthenticated requests yield the anonymous viewer.
func viewerFrom(c *gin.Context) gallery.Viewer {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		return gallery.Anonymous
	}
	userID := rd.UserID
	return gallery.Viewer{UserID: &userID, IsAdmin: rd.IsAdmin}
}
